package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"go.uber.org/zap"

	"pinklegion-contracts/domain"
	"pinklegion-contracts/service"
)

type ContractHandler struct {
	service *service.ContractService
	logger  *zap.Logger
}

func NewContractHandler(service *service.ContractService, logger *zap.Logger) *ContractHandler {
	return &ContractHandler{service: service, logger: logger}
}

type generateContractRequest struct {
	Type string               `json:"type"`
	Data *domain.ContractData `json:"data"`
}

// GenerateContract handles POST /contracts/generate. The body must name a
// document type and carry the contract data; both are validated here, before
// the pipeline runs. The response streams the PDF.
func (h *ContractHandler) GenerateContract(w http.ResponseWriter, r *http.Request) {

	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req generateContractRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if req.Type == "" || req.Data == nil {
		http.Error(w, "missing type or data", http.StatusBadRequest)
		return
	}

	contractType := domain.ContractType(req.Type)
	if contractType != domain.ContractSale && contractType != domain.ContractDebtConfession {
		http.Error(w, "unknown contract type", http.StatusBadRequest)
		return
	}

	doc, err := h.service.GenerateDocument(r.Context(), contractType, *req.Data)
	if err != nil {
		if errors.Is(err, service.ErrRasterize) {
			h.logger.Error("rasterization failed", zap.Error(err))
			http.Error(w, "document rasterization failed", http.StatusBadGateway)
			return
		}
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("X-Document-ID", doc.ID)
	w.Header().Set("Content-Disposition",
		fmt.Sprintf("attachment; filename=contrato-%s.pdf", contractType))
	if _, err := w.Write(doc.PDF); err != nil {
		h.logger.Warn("failed to write pdf response", zap.Error(err))
	}
}
