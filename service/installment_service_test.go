package service

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"pinklegion-contracts/domain"
	"pinklegion-contracts/repository"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestComputePlan(t *testing.T) {
	plan := ComputePlan(10000, 2000, 4)

	assert.Equal(t, 8000.0, plan.RemainingBalance)
	assert.Equal(t, 2000.0, plan.InstallmentAmount)
	assert.Equal(t, 4, plan.InstallmentCount)
}

func TestComputePlan_NonPositiveCountCoercedToOne(t *testing.T) {
	plan := ComputePlan(10000, 2000, 0)

	assert.Equal(t, 1, plan.InstallmentCount)
	assert.Equal(t, plan.RemainingBalance, plan.InstallmentAmount)

	plan = ComputePlan(10000, 2000, -3)
	assert.Equal(t, 1, plan.InstallmentCount)
}

func TestComputePlan_OverpaidBalanceIsNotClamped(t *testing.T) {
	// The UI flags the negative balance; the calculator must not hide it.
	plan := ComputePlan(1000, 1500, 2)

	assert.Equal(t, -500.0, plan.RemainingBalance)
	assert.Equal(t, -250.0, plan.InstallmentAmount)
}

func TestComputePlan_RoundsToCents(t *testing.T) {
	plan := ComputePlan(10000, 0, 3)

	assert.Equal(t, 3333.33, plan.InstallmentAmount)
}

func TestGenerateSchedule_MonthlyDueDates(t *testing.T) {
	repo := repository.NewInstallmentRepositoryMemory()
	svc := NewInstallmentService(repo, zap.NewNop())

	plan := ComputePlan(10000, 2500, 3)
	entries, err := svc.GenerateSchedule("contract-1", plan, date(2024, time.January, 15))
	require.NoError(t, err)
	require.Len(t, entries, 3)

	assert.Equal(t, date(2024, time.January, 15), entries[0].DueDate)
	assert.Equal(t, date(2024, time.February, 15), entries[1].DueDate)
	assert.Equal(t, date(2024, time.March, 15), entries[2].DueDate)

	for i, inst := range entries {
		assert.Equal(t, i+1, inst.SequenceNumber)
		assert.Equal(t, 2500.0, inst.Amount)
		assert.False(t, inst.Paid)
		assert.NotEmpty(t, inst.ID)
		assert.Equal(t, "contract-1", inst.ContractID)
	}
}

func TestGenerateSchedule_ReplacesPreviousSchedule(t *testing.T) {
	repo := repository.NewInstallmentRepositoryMemory()
	svc := NewInstallmentService(repo, zap.NewNop())

	_, err := svc.GenerateSchedule("contract-1", ComputePlan(9000, 0, 6), date(2024, time.March, 1))
	require.NoError(t, err)

	// Mark one paid, then regenerate: the paid mark must not survive.
	require.NoError(t, svc.SetPaid("contract-1", 1, true))

	_, err = svc.GenerateSchedule("contract-1", ComputePlan(9000, 3000, 2), date(2024, time.April, 1))
	require.NoError(t, err)

	views, err := svc.ListSchedule("contract-1", date(2024, time.March, 15))
	require.NoError(t, err)
	require.Len(t, views, 2)
	for _, v := range views {
		assert.False(t, v.Paid)
	}
}

func TestGenerateSchedule_Validation(t *testing.T) {
	repo := repository.NewInstallmentRepositoryMemory()
	svc := NewInstallmentService(repo, zap.NewNop())

	_, err := svc.GenerateSchedule("", ComputePlan(100, 0, 1), date(2024, time.May, 1))
	assert.Error(t, err)

	_, err = svc.GenerateSchedule("contract-1", ComputePlan(100, 0, 1), time.Time{})
	assert.Error(t, err)

	_, err = svc.GenerateSchedule("contract-1", ComputePlan(100, 0, MaxInstallmentCount+1), date(2024, time.May, 1))
	assert.Error(t, err)
}

func TestDeriveCurrentStatus(t *testing.T) {
	today := date(2024, time.June, 10)

	pendingFuture := domain.Installment{DueDate: date(2024, time.July, 1)}
	assert.Equal(t, domain.StatusPending, DeriveCurrentStatus(pendingFuture, today))

	pendingPast := domain.Installment{DueDate: date(2024, time.May, 1)}
	assert.Equal(t, domain.StatusOverdue, DeriveCurrentStatus(pendingPast, today))

	// Paid is sticky regardless of the due date.
	paidPast := domain.Installment{DueDate: date(2024, time.May, 1), Paid: true}
	assert.Equal(t, domain.StatusPaid, DeriveCurrentStatus(paidPast, today))

	dueToday := domain.Installment{DueDate: today}
	assert.Equal(t, domain.StatusPending, DeriveCurrentStatus(dueToday, today))
}

func TestListSchedule_DerivesStatusAtReadTime(t *testing.T) {
	repo := repository.NewInstallmentRepositoryMemory()
	svc := NewInstallmentService(repo, zap.NewNop())

	_, err := svc.GenerateSchedule("contract-1", ComputePlan(3000, 0, 3), date(2024, time.January, 15))
	require.NoError(t, err)
	require.NoError(t, svc.SetPaid("contract-1", 1, true))

	views, err := svc.ListSchedule("contract-1", date(2024, time.February, 20))
	require.NoError(t, err)
	require.Len(t, views, 3)

	assert.Equal(t, domain.StatusPaid, views[0].Status)
	assert.Equal(t, domain.StatusOverdue, views[1].Status)
	assert.Equal(t, domain.StatusPending, views[2].Status)
}

func TestSetPaid_Toggle(t *testing.T) {
	repo := repository.NewInstallmentRepositoryMemory()
	svc := NewInstallmentService(repo, zap.NewNop())

	_, err := svc.GenerateSchedule("contract-1", ComputePlan(1000, 0, 1), date(2024, time.January, 1))
	require.NoError(t, err)

	require.NoError(t, svc.SetPaid("contract-1", 1, true))
	views, err := svc.ListSchedule("contract-1", date(2024, time.June, 1))
	require.NoError(t, err)
	assert.Equal(t, domain.StatusPaid, views[0].Status)

	// Toggling back re-derives overdue from the date; overdue itself was
	// never stored.
	require.NoError(t, svc.SetPaid("contract-1", 1, false))
	views, err = svc.ListSchedule("contract-1", date(2024, time.June, 1))
	require.NoError(t, err)
	assert.Equal(t, domain.StatusOverdue, views[0].Status)

	err = svc.SetPaid("contract-1", 99, true)
	assert.True(t, errors.Is(err, repository.ErrInstallmentNotFound))
}
