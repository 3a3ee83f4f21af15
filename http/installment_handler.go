package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"go.uber.org/zap"

	"pinklegion-contracts/repository"
	"pinklegion-contracts/service"
)

// scheduleDateLayout is how the back office submits the first-payment date.
const scheduleDateLayout = "2006-01-02"

type InstallmentHandler struct {
	service *service.InstallmentService
	logger  *zap.Logger
}

func NewInstallmentHandler(service *service.InstallmentService, logger *zap.Logger) *InstallmentHandler {
	return &InstallmentHandler{service: service, logger: logger}
}

type computePlanRequest struct {
	TotalPrice       float64 `json:"total_price"`
	DownPayment      float64 `json:"down_payment"`
	InstallmentCount int     `json:"installment_count"`
}

// ComputePlan handles POST /installments/plan. Pure derivation, nothing is
// stored; the form calls it on every input change.
func (h *InstallmentHandler) ComputePlan(w http.ResponseWriter, r *http.Request) {

	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req computePlanRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	plan := service.ComputePlan(req.TotalPrice, req.DownPayment, req.InstallmentCount)

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(plan)
}

type generateScheduleRequest struct {
	ContractID       string  `json:"contract_id"`
	TotalPrice       float64 `json:"total_price"`
	DownPayment      float64 `json:"down_payment"`
	InstallmentCount int     `json:"installment_count"`
	FirstPaymentDate string  `json:"first_payment_date"`
	Confirm          bool    `json:"confirm"`
}

// Schedule handles /installments/schedule: POST regenerates a schedule, GET
// lists the stored one with statuses derived against today.
func (h *InstallmentHandler) Schedule(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodPost:
		h.generateSchedule(w, r)
	case http.MethodGet:
		h.listSchedule(w, r)
	default:
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
	}
}

func (h *InstallmentHandler) generateSchedule(w http.ResponseWriter, r *http.Request) {

	var req generateScheduleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	// Regenerating discards the existing schedule, including paid marks.
	// The UI asks the operator first and sends the confirmation along.
	if !req.Confirm {
		http.Error(w, "schedule regeneration must be explicitly confirmed", http.StatusBadRequest)
		return
	}

	firstPayment, err := time.Parse(scheduleDateLayout, req.FirstPaymentDate)
	if err != nil {
		http.Error(w, "invalid first_payment_date, expected YYYY-MM-DD", http.StatusBadRequest)
		return
	}

	plan := service.ComputePlan(req.TotalPrice, req.DownPayment, req.InstallmentCount)

	entries, err := h.service.GenerateSchedule(req.ContractID, plan, firstPayment)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(entries)
}

func (h *InstallmentHandler) listSchedule(w http.ResponseWriter, r *http.Request) {

	contractID := r.URL.Query().Get("contract_id")
	if contractID == "" {
		http.Error(w, "missing contract_id", http.StatusBadRequest)
		return
	}

	views, err := h.service.ListSchedule(contractID, time.Now())
	if err != nil {
		h.logger.Error("failed to list schedule", zap.String("contract_id", contractID), zap.Error(err))
		http.Error(w, "failed to load schedule", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(views)
}

type markPaidRequest struct {
	ContractID     string `json:"contract_id"`
	SequenceNumber int    `json:"sequence_number"`
	Paid           bool   `json:"paid"`
}

// MarkPaid handles POST /installments/mark, the paid/pending toggle.
func (h *InstallmentHandler) MarkPaid(w http.ResponseWriter, r *http.Request) {

	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req markPaidRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	err := h.service.SetPaid(req.ContractID, req.SequenceNumber, req.Paid)
	if err != nil {
		if errors.Is(err, repository.ErrInstallmentNotFound) {
			http.Error(w, "installment not found", http.StatusNotFound)
			return
		}
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]bool{"paid": req.Paid})
}
