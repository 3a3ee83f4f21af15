package service

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"pinklegion-contracts/domain"
	"pinklegion-contracts/repository"
)

// roundTo2Decimals redonda um float64 a 2 casas decimais
func roundTo2Decimals(value float64) float64 {
	return math.Round(value*100) / 100
}

// ComputePlan derives the financing split for a contract. The remaining
// balance is not clamped: an over-paid down payment surfaces as a negative
// balance for the UI to flag. A non-positive installment count is coerced to
// 1, matching the form's behavior of treating a missing count as cash-plus-
// one-payment.
func ComputePlan(totalPrice, downPayment float64, installmentCount int) domain.InstallmentPlan {
	if installmentCount < 1 {
		installmentCount = 1
	}
	balance := totalPrice - downPayment
	return domain.InstallmentPlan{
		TotalPrice:        totalPrice,
		DownPayment:       downPayment,
		InstallmentCount:  installmentCount,
		RemainingBalance:  roundTo2Decimals(balance),
		InstallmentAmount: roundTo2Decimals(balance / float64(installmentCount)),
	}
}

// DeriveCurrentStatus computes the status a reader should see right now.
// Paid is sticky regardless of date; everything else is overdue once the due
// date is behind today. Never cache the result across a date boundary.
func DeriveCurrentStatus(inst domain.Installment, today time.Time) domain.InstallmentStatus {
	if inst.Paid {
		return domain.StatusPaid
	}
	if inst.DueDate.Before(today) {
		return domain.StatusOverdue
	}
	return domain.StatusPending
}

// InstallmentView is an Installment with its read-time status attached.
type InstallmentView struct {
	domain.Installment
	Status domain.InstallmentStatus `json:"status"`
}

type InstallmentService struct {
	repo   repository.InstallmentRepository
	logger *zap.Logger
}

// NewInstallmentService creates a new InstallmentService backed by the given
// repository.
func NewInstallmentService(repo repository.InstallmentRepository, logger *zap.Logger) *InstallmentService {
	return &InstallmentService{repo: repo, logger: logger}
}

// GenerateSchedule builds a fresh schedule of monthly installments starting
// at firstPayment and persists it, discarding any schedule previously stored
// for the contract. Regeneration is destructive; callers are expected to have
// confirmed it explicitly with the operator.
func (s *InstallmentService) GenerateSchedule(
	contractID string,
	plan domain.InstallmentPlan,
	firstPayment time.Time,
) ([]domain.Installment, error) {

	if contractID == "" {
		return nil, errors.New("contrato inválido")
	}
	if firstPayment.IsZero() {
		return nil, errors.New("data da primeira prestação inválida")
	}
	if plan.InstallmentCount > MaxInstallmentCount {
		return nil, fmt.Errorf("número de prestações excede o máximo de %d", MaxInstallmentCount)
	}

	count := plan.InstallmentCount
	if count < 1 {
		count = 1
	}

	entries := make([]domain.Installment, count)
	for i := 0; i < count; i++ {
		entries[i] = domain.Installment{
			ID:             uuid.NewString(),
			ContractID:     contractID,
			SequenceNumber: i + 1,
			DueDate:        firstPayment.AddDate(0, i, 0),
			Amount:         plan.InstallmentAmount,
			Paid:           false,
		}
	}

	if err := s.repo.ReplaceSchedule(contractID, entries); err != nil {
		return nil, fmt.Errorf("failed to store schedule: %w", err)
	}

	s.logger.Info("installment schedule regenerated",
		zap.String("contract_id", contractID),
		zap.Int("installments", count),
		zap.Float64("installment_amount", plan.InstallmentAmount),
	)

	return entries, nil
}

// ListSchedule returns the persisted schedule with statuses derived against
// today.
func (s *InstallmentService) ListSchedule(contractID string, today time.Time) ([]InstallmentView, error) {
	if contractID == "" {
		return nil, errors.New("contrato inválido")
	}

	entries, err := s.repo.ListByContract(contractID)
	if err != nil {
		return nil, fmt.Errorf("failed to load schedule: %w", err)
	}

	views := make([]InstallmentView, len(entries))
	for i, inst := range entries {
		views[i] = InstallmentView{
			Installment: inst,
			Status:      DeriveCurrentStatus(inst, today),
		}
	}
	return views, nil
}

// SetPaid toggles the one persisted fact about an installment. Overdue is
// never written; it is always derived on read.
func (s *InstallmentService) SetPaid(contractID string, sequenceNumber int, paid bool) error {
	if contractID == "" {
		return errors.New("contrato inválido")
	}
	if err := s.repo.SetPaid(contractID, sequenceNumber, paid); err != nil {
		return err
	}
	s.logger.Info("installment payment state changed",
		zap.String("contract_id", contractID),
		zap.Int("sequence_number", sequenceNumber),
		zap.Bool("paid", paid),
	)
	return nil
}
