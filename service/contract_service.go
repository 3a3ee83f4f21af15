package service

import (
	"context"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"pinklegion-contracts/domain"
	"pinklegion-contracts/pdf"
	"pinklegion-contracts/repository"
)

// Placeholder tokens look like {{CLIENT_NAME}} in the template files.
const (
	tokenOpen  = "{{"
	tokenClose = "}}"
)

// ErrRasterize wraps failures of the headless-browser engine so the HTTP
// layer can distinguish them from bad input.
var ErrRasterize = errors.New("document rasterization failed")

// cacheTTL bounds how long a generated PDF stays reusable. Re-printing the
// same contract within a shift is common; days later it is not.
const cacheTTL = 12 * time.Hour

// BuildPlaceholders assembles the full substitution set for a contract
// template. The recognized keys are exactly:
//
//	CLIENT_NAME, CLIENT_NIF, CLIENT_ID_DOCUMENT, CLIENT_ADDRESS,
//	CLIENT_POSTAL_CODE, CLIENT_CITY,
//	CAR_BRAND, CAR_MODEL, CAR_PLATE, CAR_VIN, CAR_YEAR, CAR_MILEAGE,
//	CAR_COLOR,
//	TOTAL_PRICE, TOTAL_PRICE_WORDS, DOWN_PAYMENT, DOWN_PAYMENT_WORDS,
//	REMAINING_BALANCE, REMAINING_BALANCE_WORDS, INSTALLMENT_COUNT,
//	INSTALLMENT_AMOUNT, INSTALLMENT_AMOUNT_WORDS,
//	IBAN, BANK_NAME, BANK_BIC,
//	CONTRACT_CITY, CONTRACT_DATE, FIRST_PAYMENT_DATE,
//	SELLER_NAME, SELLER_NIF, SELLER_ADDRESS
//
// Absent optional source fields become empty strings, never a literal "null".
// Monetary amounts must be non-negative and the remaining balance must not be
// negative, otherwise the legal amount-in-words cannot be produced and an
// error is returned.
func BuildPlaceholders(data domain.ContractData) (map[string]string, error) {
	if data.TotalPrice > MaxContractAmount {
		return nil, fmt.Errorf("preço excede o máximo permitido de %.2f", MaxContractAmount)
	}

	plan := ComputePlan(data.TotalPrice, data.DownPayment, data.InstallmentCount)

	totalWords, err := AmountInWords(data.TotalPrice)
	if err != nil {
		return nil, fmt.Errorf("preço total: %w", err)
	}
	downWords, err := AmountInWords(data.DownPayment)
	if err != nil {
		return nil, fmt.Errorf("sinal: %w", err)
	}
	balanceWords, err := AmountInWords(plan.RemainingBalance)
	if err != nil {
		return nil, fmt.Errorf("valor em dívida: %w", err)
	}
	installmentWords, err := AmountInWords(plan.InstallmentAmount)
	if err != nil {
		return nil, fmt.Errorf("valor da prestação: %w", err)
	}

	// Unknown bank is a legitimate outcome: the fields print empty.
	bankName, bankBIC := "", ""
	if entry, ok := ResolveBank(data.IBAN); ok {
		bankName, bankBIC = entry.Name, entry.BIC
	}

	return map[string]string{
		"CLIENT_NAME":        data.Client.Name,
		"CLIENT_NIF":         data.Client.NIF,
		"CLIENT_ID_DOCUMENT": data.Client.IDDocument,
		"CLIENT_ADDRESS":     data.Client.Address,
		"CLIENT_POSTAL_CODE": data.Client.PostalCode,
		"CLIENT_CITY":        data.Client.City,

		"CAR_BRAND":   data.Car.Brand,
		"CAR_MODEL":   data.Car.Model,
		"CAR_PLATE":   data.Car.Plate,
		"CAR_VIN":     data.Car.VIN,
		"CAR_YEAR":    data.Car.Year,
		"CAR_MILEAGE": data.Car.Mileage,
		"CAR_COLOR":   data.Car.Color,

		"TOTAL_PRICE":              FormatEuro(data.TotalPrice),
		"TOTAL_PRICE_WORDS":        totalWords,
		"DOWN_PAYMENT":             FormatEuro(data.DownPayment),
		"DOWN_PAYMENT_WORDS":       downWords,
		"REMAINING_BALANCE":        FormatEuro(plan.RemainingBalance),
		"REMAINING_BALANCE_WORDS":  balanceWords,
		"INSTALLMENT_COUNT":        strconv.Itoa(plan.InstallmentCount),
		"INSTALLMENT_AMOUNT":       FormatEuro(plan.InstallmentAmount),
		"INSTALLMENT_AMOUNT_WORDS": installmentWords,

		"IBAN":      FormatIBAN(data.IBAN),
		"BANK_NAME": bankName,
		"BANK_BIC":  bankBIC,

		"CONTRACT_CITY":      data.City,
		"CONTRACT_DATE":      data.Date,
		"FIRST_PAYMENT_DATE": data.FirstPaymentDate,

		"SELLER_NAME":    SellerName,
		"SELLER_NIF":     SellerNIF,
		"SELLER_ADDRESS": SellerAddress,
	}, nil
}

// FormatEuro renders an amount the way the documents print it: dot thousands
// separators, comma decimals, trailing € sign. E.g. 12345.6 -> "12.345,60 €".
func FormatEuro(amount float64) string {
	sign := ""
	if amount < 0 {
		sign = "-"
		amount = -amount
	}

	whole := fmt.Sprintf("%.2f", amount)
	intPart := whole[:len(whole)-3]
	decPart := whole[len(whole)-2:]

	var b strings.Builder
	for i, digit := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte('.')
		}
		b.WriteRune(digit)
	}
	return sign + b.String() + "," + decPart + " €"
}

// Render substitutes every {{KEY}} token in the template. It scans the
// template once, so keys that prefix each other cannot collide: a token is
// always matched whole between its delimiters. Any token without a
// placeholder entry is a defect in BuildPlaceholders and fails the render;
// the output is guaranteed to contain no unresolved tokens.
func Render(template string, placeholders map[string]string) (string, error) {
	var b strings.Builder
	rest := template
	for {
		start := strings.Index(rest, tokenOpen)
		if start < 0 {
			b.WriteString(rest)
			break
		}
		b.WriteString(rest[:start])

		end := strings.Index(rest[start:], tokenClose)
		if end < 0 {
			return "", errors.New("unterminated placeholder token in template")
		}

		key := rest[start+len(tokenOpen) : start+end]
		value, ok := placeholders[key]
		if !ok {
			return "", fmt.Errorf("unresolved placeholder %q in template", key)
		}
		b.WriteString(value)
		rest = rest[start+end+len(tokenClose):]
	}
	return b.String(), nil
}

// GeneratedDocument is the outcome of a contract render.
type GeneratedDocument struct {
	ID  string
	PDF []byte
}

// ContractService runs the full document pipeline: placeholders, template
// substitution, headless-browser rasterization, and a cache in front of the
// rasterizer.
type ContractService struct {
	templates map[domain.ContractType]string
	engine    pdf.Engine
	cache     repository.CacheRepository
	logger    *zap.Logger
}

// NewContractService creates a ContractService over the given pre-loaded
// templates.
func NewContractService(
	templates map[domain.ContractType]string,
	engine pdf.Engine,
	cache repository.CacheRepository,
	logger *zap.Logger,
) *ContractService {
	return &ContractService{
		templates: templates,
		engine:    engine,
		cache:     cache,
		logger:    logger,
	}
}

// GenerateDocument produces the PDF for one contract. Identical content hits
// the cache and skips Chromium entirely.
func (s *ContractService) GenerateDocument(
	ctx context.Context,
	contractType domain.ContractType,
	data domain.ContractData,
) (GeneratedDocument, error) {

	template, ok := s.templates[contractType]
	if !ok {
		return GeneratedDocument{}, fmt.Errorf("tipo de documento desconhecido: %s", contractType)
	}

	placeholders, err := BuildPlaceholders(data)
	if err != nil {
		return GeneratedDocument{}, err
	}

	html, err := Render(template, placeholders)
	if err != nil {
		return GeneratedDocument{}, err
	}

	docID := uuid.NewString()
	key := cacheKey(contractType, html)

	if cached, ok := s.cache.Get(key); ok {
		raw, err := base64.StdEncoding.DecodeString(cached)
		if err == nil {
			s.logger.Info("serving cached document",
				zap.String("document_id", docID),
				zap.String("type", string(contractType)),
			)
			return GeneratedDocument{ID: docID, PDF: raw}, nil
		}
		// Corrupt cache entry: fall through and regenerate.
		s.logger.Warn("discarding corrupt cache entry", zap.String("key", key))
	}

	raw, err := s.engine.GeneratePDF(ctx, html, pdf.DefaultOptions())
	if err != nil {
		return GeneratedDocument{}, fmt.Errorf("%w: %v", ErrRasterize, err)
	}

	// Caching is best effort; a miss just costs a re-render.
	if err := s.cache.Set(key, base64.StdEncoding.EncodeToString(raw), cacheTTL); err != nil {
		s.logger.Warn("failed to cache document", zap.String("key", key), zap.Error(err))
	}

	s.logger.Info("document generated",
		zap.String("document_id", docID),
		zap.String("type", string(contractType)),
		zap.Int("pdf_bytes", len(raw)),
	)

	return GeneratedDocument{ID: docID, PDF: raw}, nil
}

func cacheKey(contractType domain.ContractType, html string) string {
	sum := sha256.Sum256([]byte(string(contractType) + "\x00" + html))
	return "document:" + hex.EncodeToString(sum[:])
}
