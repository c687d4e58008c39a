package services

import (
	"time"

	"budgetvault/internal/models"
)

// noopMetrics satisfies MetricsRecorderInterface without a registry, so
// tests never collide on prometheus metric registration.
type noopMetrics struct{}

func (noopMetrics) IncrementCounter(string, map[string]string)     {}
func (noopMetrics) RecordProcessingTime(string, time.Duration)     {}
func (noopMetrics) RecordGauge(string, float64, map[string]string) {}

// mockTransactionRepo lets a test fail specific repository calls.
type mockTransactionRepo struct {
	bulkAddFunc func([]models.Transaction) (uint, error)
	getAllFunc  func() ([]models.Transaction, error)
}

func (m *mockTransactionRepo) Create(txn *models.Transaction) (uint, error) {
	return 0, nil
}
func (m *mockTransactionRepo) GetByID(id uint) (*models.Transaction, error) { return nil, nil }
func (m *mockTransactionRepo) GetAll() ([]models.Transaction, error) {
	if m.getAllFunc != nil {
		return m.getAllFunc()
	}
	return nil, nil
}
func (m *mockTransactionRepo) GetByCategory(categoryID uint) ([]models.Transaction, error) {
	return nil, nil
}
func (m *mockTransactionRepo) CountByCategory(categoryID uint) (int64, error) { return 0, nil }
func (m *mockTransactionRepo) CountByPayee(payeeID uint) (int64, error)       { return 0, nil }
func (m *mockTransactionRepo) CountUncategorized() (int64, error)             { return 0, nil }
func (m *mockTransactionRepo) Update(txn *models.Transaction) error           { return nil }
func (m *mockTransactionRepo) Delete(id uint) error                           { return nil }
func (m *mockTransactionRepo) BulkAdd(txns []models.Transaction) (uint, error) {
	if m.bulkAddFunc != nil {
		return m.bulkAddFunc(txns)
	}
	return 0, nil
}
func (m *mockTransactionRepo) Clear() error { return nil }
