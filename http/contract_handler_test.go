package http

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"pinklegion-contracts/domain"
	"pinklegion-contracts/pdf"
	"pinklegion-contracts/repository"
	"pinklegion-contracts/service"
)

type stubEngine struct {
	fail bool
}

func (e *stubEngine) GeneratePDF(_ context.Context, _ string, _ pdf.Options) ([]byte, error) {
	if e.fail {
		return nil, context.DeadlineExceeded
	}
	return []byte("%PDF-1.4 stub"), nil
}

func newContractHandler(engine pdf.Engine) *ContractHandler {
	templates := map[domain.ContractType]string{
		domain.ContractSale:           "<p>{{CLIENT_NAME}} - {{TOTAL_PRICE}}</p>",
		domain.ContractDebtConfession: "<p>{{CLIENT_NAME}} deve {{REMAINING_BALANCE_WORDS}}</p>",
	}
	svc := service.NewContractService(templates, engine, repository.NewMockCache(), zap.NewNop())
	return NewContractHandler(svc, zap.NewNop())
}

const validGenerateBody = `{
	"type": "sale",
	"data": {
		"client": {"name": "Maria Albuquerque", "nif": "231456789"},
		"car": {"brand": "Renault", "model": "Clio"},
		"total_price": 10000,
		"down_payment": 2000,
		"installment_count": 4,
		"iban": "PT50003506460000123456789",
		"city": "Vila Nova de Gaia",
		"date": "15/01/2024"
	}
}`

func TestGenerateContract_OK(t *testing.T) {
	handler := newContractHandler(&stubEngine{})

	req := httptest.NewRequest(http.MethodPost, "/contracts/generate",
		bytes.NewBufferString(validGenerateBody))
	w := httptest.NewRecorder()

	handler.GenerateContract(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/pdf", w.Header().Get("Content-Type"))
	assert.NotEmpty(t, w.Header().Get("X-Document-ID"))
	assert.True(t, strings.HasPrefix(w.Body.String(), "%PDF"))
}

func TestGenerateContract_MissingTypeOrData(t *testing.T) {
	handler := newContractHandler(&stubEngine{})

	for _, body := range []string{
		`{"data": {"total_price": 100}}`,
		`{"type": "sale"}`,
		`{}`,
	} {
		req := httptest.NewRequest(http.MethodPost, "/contracts/generate",
			bytes.NewBufferString(body))
		w := httptest.NewRecorder()

		handler.GenerateContract(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code, "body %s", body)
	}
}

func TestGenerateContract_UnknownType(t *testing.T) {
	handler := newContractHandler(&stubEngine{})

	req := httptest.NewRequest(http.MethodPost, "/contracts/generate",
		bytes.NewBufferString(`{"type": "lease", "data": {"total_price": 100}}`))
	w := httptest.NewRecorder()

	handler.GenerateContract(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGenerateContract_InvalidJSON(t *testing.T) {
	handler := newContractHandler(&stubEngine{})

	req := httptest.NewRequest(http.MethodPost, "/contracts/generate",
		bytes.NewBufferString(`{invalid-json}`))
	w := httptest.NewRecorder()

	handler.GenerateContract(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGenerateContract_MethodNotAllowed(t *testing.T) {
	handler := newContractHandler(&stubEngine{})

	req := httptest.NewRequest(http.MethodGet, "/contracts/generate", nil)
	w := httptest.NewRecorder()

	handler.GenerateContract(w, req)

	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
}

func TestGenerateContract_RasterizerFailure(t *testing.T) {
	handler := newContractHandler(&stubEngine{fail: true})

	req := httptest.NewRequest(http.MethodPost, "/contracts/generate",
		bytes.NewBufferString(validGenerateBody))
	w := httptest.NewRecorder()

	handler.GenerateContract(w, req)

	assert.Equal(t, http.StatusBadGateway, w.Code)
}
