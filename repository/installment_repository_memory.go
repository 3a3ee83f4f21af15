package repository

import (
	"sort"
	"sync"

	"pinklegion-contracts/domain"
)

// InstallmentRepositoryMemory is an in-memory implementation of
// InstallmentRepository, used in tests and when no database is configured.
type InstallmentRepositoryMemory struct {
	mu   sync.RWMutex
	data map[string][]domain.Installment
}

// NewInstallmentRepositoryMemory creates a new in-memory installment
// repository.
func NewInstallmentRepositoryMemory() *InstallmentRepositoryMemory {
	return &InstallmentRepositoryMemory{
		data: make(map[string][]domain.Installment),
	}
}

func (r *InstallmentRepositoryMemory) ReplaceSchedule(contractID string, entries []domain.Installment) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	copied := make([]domain.Installment, len(entries))
	copy(copied, entries)
	sort.Slice(copied, func(i, j int) bool {
		return copied[i].SequenceNumber < copied[j].SequenceNumber
	})
	r.data[contractID] = copied
	return nil
}

func (r *InstallmentRepositoryMemory) ListByContract(contractID string) ([]domain.Installment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	stored := r.data[contractID]
	out := make([]domain.Installment, len(stored))
	copy(out, stored)
	return out, nil
}

func (r *InstallmentRepositoryMemory) SetPaid(contractID string, sequenceNumber int, paid bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.data[contractID] {
		if r.data[contractID][i].SequenceNumber == sequenceNumber {
			r.data[contractID][i].Paid = paid
			return nil
		}
	}
	return ErrInstallmentNotFound
}
