package repository

import (
	"errors"

	"pinklegion-contracts/domain"
)

// ErrInstallmentNotFound is returned when a paid/pending toggle targets a
// schedule entry that does not exist.
var ErrInstallmentNotFound = errors.New("installment not found")

// InstallmentRepository persists contract payment schedules. The only mutable
// fact per entry is the paid flag; everything else is replaced wholesale when
// a schedule is regenerated.
type InstallmentRepository interface {
	// ReplaceSchedule atomically discards any stored schedule for the
	// contract and stores the given entries in its place.
	ReplaceSchedule(contractID string, entries []domain.Installment) error

	// ListByContract returns the stored schedule ordered by sequence number.
	// A contract with no schedule yields an empty slice, not an error.
	ListByContract(contractID string) ([]domain.Installment, error)

	// SetPaid updates the paid flag of one entry.
	SetPaid(contractID string, sequenceNumber int, paid bool) error
}
