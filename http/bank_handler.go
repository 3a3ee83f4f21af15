package http

import (
	"encoding/json"
	"net/http"

	"pinklegion-contracts/service"
)

// BankHandler exposes progressive bank detection for the IBAN field: the
// form queries it on every keystroke past the bank-code positions.
type BankHandler struct{}

func NewBankHandler() *BankHandler {
	return &BankHandler{}
}

type bankResolveResponse struct {
	Valid     bool   `json:"valid"`
	Formatted string `json:"formatted"`
	BankName  string `json:"bank_name,omitempty"`
	BIC       string `json:"bic,omitempty"`
}

// Resolve handles GET /bank/resolve?iban=. An unknown bank code is a normal
// answer with empty bank fields, not an error.
func (h *BankHandler) Resolve(w http.ResponseWriter, r *http.Request) {

	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	iban := r.URL.Query().Get("iban")
	if iban == "" {
		http.Error(w, "missing iban", http.StatusBadRequest)
		return
	}

	resp := bankResolveResponse{
		Valid:     service.IsValidIBAN(iban),
		Formatted: service.FormatIBAN(iban),
	}
	if entry, ok := service.ResolveBank(iban); ok {
		resp.BankName = entry.Name
		resp.BIC = entry.BIC
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(resp)
}
