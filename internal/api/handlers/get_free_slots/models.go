package get_free_slots

import (
	listFreeSlots "github.com/m04kA/SMC-SlotService/internal/usecase/list_free_slots"
)

// SlotResponse HTTP модель свободного слота
type SlotResponse struct {
	StartTime         string `json:"startTime"`
	EndTime           string `json:"endTime"`
	AvailableCapacity int    `json:"availableCapacity"`
	TotalCapacity     int    `json:"totalCapacity"`
}

// FreeSlotsResponse HTTP response model
type FreeSlotsResponse struct {
	ServiceID int64          `json:"serviceId"`
	Weekday   string         `json:"weekday"`
	Slots     []SlotResponse `json:"slots"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *listFreeSlots.Response) *FreeSlotsResponse {
	slots := make([]SlotResponse, 0, len(resp.Slots))
	for _, s := range resp.Slots {
		slots = append(slots, SlotResponse{
			StartTime:         s.StartTime.String(),
			EndTime:           s.EndTime.String(),
			AvailableCapacity: s.AvailableCapacity,
			TotalCapacity:     s.TotalCapacity,
		})
	}

	return &FreeSlotsResponse{
		ServiceID: resp.ServiceID,
		Weekday:   resp.Weekday,
		Slots:     slots,
	}
}
