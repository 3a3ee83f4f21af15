package domain

// BankDirectoryEntry is one row of the static Portuguese bank directory,
// keyed by the 4-digit bank code embedded in the IBAN. Several historical or
// merged institutions may share a BIC.
type BankDirectoryEntry struct {
	Code string `json:"code"` // 4-digit bank code
	Name string `json:"name"`
	BIC  string `json:"bic"` // 8 or 11 characters
}
