// Package txmanager управляет сериализуемыми транзакциями над обёрткой dbmetrics.DB
package txmanager

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/lib/pq"

	"github.com/m04kA/SMC-SlotService/pkg/dbmetrics"
)

const (
	// maxRetries максимальное число повторов транзакции при конфликте сериализации
	maxRetries = 3

	// Коды ошибок PostgreSQL, при которых транзакцию безопасно повторить целиком:
	// серверная сторона гарантирует, что ни одна запись не зафиксирована
	pqSerializationFailure = "40001"
	pqDeadlockDetected     = "40P01"
)

// ErrTxFailed возвращается, когда транзакция не удалась после всех повторов
var ErrTxFailed = errors.New("txmanager: transaction failed")

// TxBeginner интерфейс источника транзакций
type TxBeginner interface {
	BeginTx(ctx context.Context, opts *sql.TxOptions) (dbmetrics.TxExecutor, error)
}

// TransactionManager выполняет функции в сериализуемых транзакциях
type TransactionManager struct {
	db TxBeginner
}

// NewTransactionManager создает новый transaction manager
func NewTransactionManager(db TxBeginner) *TransactionManager {
	return &TransactionManager{db: db}
}

// DoSerializable выполняет fn в транзакции с уровнем изоляции SERIALIZABLE
// Транзакция кладется в контекст (dbmetrics.ContextWithTx), репозитории
// подхватывают её автоматически.
//
// При конфликте сериализации (SQLSTATE 40001) или deadlock (40P01) транзакция
// откатывается и повторяется целиком, до maxRetries раз. Бизнес-ошибки fn
// не повторяются — транзакция откатывается, ошибка возвращается как есть
func (m *TransactionManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	var lastErr error

	for attempt := 0; attempt < maxRetries; attempt++ {
		err := m.runOnce(ctx, fn)
		if err == nil {
			return nil
		}

		if !isRetryable(err) {
			return err
		}

		lastErr = err
	}

	return fmt.Errorf("%w: retries exhausted: %v", ErrTxFailed, lastErr)
}

func (m *TransactionManager) runOnce(ctx context.Context, fn func(ctx context.Context) error) error {
	tx, err := m.db.BeginTx(ctx, &sql.TxOptions{Isolation: sql.LevelSerializable})
	if err != nil {
		return fmt.Errorf("%w: begin: %v", ErrTxFailed, err)
	}

	txCtx := dbmetrics.ContextWithTx(ctx, tx)

	if err := fn(txCtx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return fmt.Errorf("%w: rollback after %v: %v", ErrTxFailed, err, rbErr)
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("txmanager: commit: %w", err)
	}

	return nil
}

// isRetryable проверяет, является ли ошибка конфликтом сериализации или deadlock
// Репозитории оборачивают ошибки драйвера через %v, поэтому помимо errors.As
// проверяем SQLSTATE в тексте ошибки
func isRetryable(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return string(pqErr.Code) == pqSerializationFailure || string(pqErr.Code) == pqDeadlockDetected
	}

	msg := err.Error()
	return strings.Contains(msg, pqSerializationFailure) || strings.Contains(msg, pqDeadlockDetected)
}
