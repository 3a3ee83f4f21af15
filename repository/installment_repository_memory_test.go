package repository

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pinklegion-contracts/domain"
)

func sampleSchedule(contractID string, n int) []domain.Installment {
	entries := make([]domain.Installment, n)
	base := time.Date(2024, time.January, 15, 0, 0, 0, 0, time.UTC)
	for i := range entries {
		entries[i] = domain.Installment{
			ID:             contractID + "-" + string(rune('a'+i)),
			ContractID:     contractID,
			SequenceNumber: i + 1,
			DueDate:        base.AddDate(0, i, 0),
			Amount:         250,
		}
	}
	return entries
}

func TestMemoryRepository_ReplaceAndList(t *testing.T) {
	repo := NewInstallmentRepositoryMemory()

	require.NoError(t, repo.ReplaceSchedule("c1", sampleSchedule("c1", 3)))

	entries, err := repo.ListByContract("c1")
	require.NoError(t, err)
	require.Len(t, entries, 3)
	assert.Equal(t, 1, entries[0].SequenceNumber)
	assert.Equal(t, 3, entries[2].SequenceNumber)

	// Replacing discards the old schedule entirely.
	require.NoError(t, repo.ReplaceSchedule("c1", sampleSchedule("c1", 2)))
	entries, err = repo.ListByContract("c1")
	require.NoError(t, err)
	assert.Len(t, entries, 2)
}

func TestMemoryRepository_ListUnknownContract(t *testing.T) {
	repo := NewInstallmentRepositoryMemory()

	entries, err := repo.ListByContract("missing")
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestMemoryRepository_SetPaid(t *testing.T) {
	repo := NewInstallmentRepositoryMemory()
	require.NoError(t, repo.ReplaceSchedule("c1", sampleSchedule("c1", 2)))

	require.NoError(t, repo.SetPaid("c1", 2, true))

	entries, err := repo.ListByContract("c1")
	require.NoError(t, err)
	assert.False(t, entries[0].Paid)
	assert.True(t, entries[1].Paid)

	assert.ErrorIs(t, repo.SetPaid("c1", 99, true), ErrInstallmentNotFound)
	assert.ErrorIs(t, repo.SetPaid("other", 1, true), ErrInstallmentNotFound)
}

func TestMemoryRepository_ListReturnsCopies(t *testing.T) {
	repo := NewInstallmentRepositoryMemory()
	require.NoError(t, repo.ReplaceSchedule("c1", sampleSchedule("c1", 1)))

	entries, err := repo.ListByContract("c1")
	require.NoError(t, err)
	entries[0].Paid = true

	fresh, err := repo.ListByContract("c1")
	require.NoError(t, err)
	assert.False(t, fresh[0].Paid, "mutating a listing must not touch stored state")
}
