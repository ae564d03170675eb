package types

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTimeStringFromString(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    TimeString
		wantErr bool
	}{
		{name: "plain HH:MM", input: "10:00", want: "10:00"},
		{name: "seconds truncated", input: "10:00:59", want: "10:00"},
		{name: "subseconds truncated", input: "10:00:59.123", want: "10:00"},
		{name: "midnight", input: "00:00", want: "00:00"},
		{name: "last minute of day", input: "23:59", want: "23:59"},
		{name: "surrounding whitespace", input: " 09:30 ", want: "09:30"},
		{name: "hour out of range", input: "24:00", wantErr: true},
		{name: "missing leading zero", input: "9:00", wantErr: true},
		{name: "minute out of range", input: "10:60", wantErr: true},
		{name: "not a time", input: "abcde", wantErr: true},
		{name: "empty", input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NewTimeStringFromString(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, ErrInvalidFormat)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNewTimeString_TruncatesSeconds(t *testing.T) {
	moment := time.Date(2025, 10, 15, 14, 30, 45, 999, time.UTC)
	assert.Equal(t, TimeString("14:30"), NewTimeString(moment))
}

func TestTimeString_AddMinutes(t *testing.T) {
	tests := []struct {
		name    string
		start   TimeString
		minutes int
		want    TimeString
		wantErr error
	}{
		{name: "simple add", start: "10:00", minutes: 60, want: "11:00"},
		{name: "cross hour", start: "10:45", minutes: 30, want: "11:15"},
		{name: "up to last minute", start: "23:00", minutes: 59, want: "23:59"},
		{name: "exactly midnight is out of range", start: "23:30", minutes: 30, wantErr: ErrTimeOutOfRange},
		{name: "past midnight", start: "23:00", minutes: 120, wantErr: ErrTimeOutOfRange},
		{name: "negative below zero", start: "00:30", minutes: -60, wantErr: ErrTimeOutOfRange},
		{name: "invalid base value", start: "99:99", minutes: 10, wantErr: ErrInvalidFormat},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.start.AddMinutes(tt.minutes)
			if tt.wantErr != nil {
				require.Error(t, err)
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTimeString_Minutes(t *testing.T) {
	assert.Equal(t, 0, TimeString("00:00").Minutes())
	assert.Equal(t, 630, TimeString("10:30").Minutes())
	assert.Equal(t, 1439, TimeString("23:59").Minutes())
}

func TestTimeString_Ordering(t *testing.T) {
	assert.True(t, TimeString("09:00").IsBefore("10:00"))
	assert.True(t, TimeString("09:59").IsBefore("10:00"))
	assert.False(t, TimeString("10:00").IsBefore("10:00"))
	assert.True(t, TimeString("10:01").IsAfter("10:00"))
}

func TestOverlaps(t *testing.T) {
	tests := []struct {
		name                       string
		aStart, aEnd, bStart, bEnd TimeString
		want                       bool
	}{
		{name: "identical intervals", aStart: "10:00", aEnd: "11:00", bStart: "10:00", bEnd: "11:00", want: true},
		{name: "partial overlap", aStart: "10:00", aEnd: "11:00", bStart: "10:30", bEnd: "11:30", want: true},
		{name: "containment", aStart: "10:00", aEnd: "12:00", bStart: "10:30", bEnd: "11:00", want: true},
		{name: "touching at boundary", aStart: "10:00", aEnd: "11:00", bStart: "11:00", bEnd: "12:00", want: false},
		{name: "touching at boundary reversed", aStart: "11:00", aEnd: "12:00", bStart: "10:00", bEnd: "11:00", want: false},
		{name: "disjoint", aStart: "09:00", aEnd: "10:00", bStart: "12:00", bEnd: "13:00", want: false},
		{name: "one minute overlap", aStart: "10:00", aEnd: "11:01", bStart: "11:00", bEnd: "12:00", want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Overlaps(tt.aStart, tt.aEnd, tt.bStart, tt.bEnd))
			// Предикат симметричен
			assert.Equal(t, tt.want, Overlaps(tt.bStart, tt.bEnd, tt.aStart, tt.aEnd))
		})
	}
}
