package service

import (
	"strings"
	"unicode"

	"pinklegion-contracts/domain"
)

// Portuguese IBANs are fixed length: PT + 2 check digits + 21 BBAN digits.
const ibanLength = 25

// cleanIBAN strips all whitespace and uppercases, so the resolver accepts
// IBANs pasted with display grouping.
func cleanIBAN(iban string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return unicode.ToUpper(r)
	}, iban)
}

// ExtractBankCode returns the 4-digit bank code embedded in a Portuguese
// IBAN. Partial IBANs are accepted as long as the code positions are present,
// which lets the UI detect the bank while the user is still typing. Returns
// false for anything shorter than 8 characters or not prefixed "PT".
func ExtractBankCode(iban string) (string, bool) {
	cleaned := cleanIBAN(iban)
	if len(cleaned) < 8 || !strings.HasPrefix(cleaned, "PT") {
		return "", false
	}
	return cleaned[4:8], true
}

// ResolveBank looks the IBAN's bank code up in the static directory.
// An unknown code is a legitimate "no bank on file" outcome, not an error.
func ResolveBank(iban string) (domain.BankDirectoryEntry, bool) {
	code, ok := ExtractBankCode(iban)
	if !ok {
		return domain.BankDirectoryEntry{}, false
	}
	entry, ok := bankByCode[code]
	return entry, ok
}

// ResolveBIC returns the BIC/SWIFT code for the IBAN's issuing bank.
func ResolveBIC(iban string) (string, bool) {
	entry, ok := ResolveBank(iban)
	if !ok {
		return "", false
	}
	return entry.BIC, true
}

// IsValidIBAN reports whether the IBAN has the full Portuguese length, the
// "PT" prefix and a bank code present in the directory. It deliberately does
// not run the mod-97 checksum; the back office already holds IBANs that were
// accepted on format alone, and rejecting them now would break re-printing
// existing contracts.
func IsValidIBAN(iban string) bool {
	cleaned := cleanIBAN(iban)
	if len(cleaned) != ibanLength || !strings.HasPrefix(cleaned, "PT") {
		return false
	}
	_, known := bankByCode[cleaned[4:8]]
	return known
}

// FormatIBAN groups a full-length IBAN into blocks of 4 separated by spaces
// for display. Anything that is not exactly 25 characters after cleaning is
// returned unchanged.
func FormatIBAN(iban string) string {
	cleaned := cleanIBAN(iban)
	if len(cleaned) != ibanLength {
		return iban
	}
	var b strings.Builder
	for i := 0; i < len(cleaned); i += 4 {
		if i > 0 {
			b.WriteByte(' ')
		}
		end := i + 4
		if end > len(cleaned) {
			end = len(cleaned)
		}
		b.WriteString(cleaned[i:end])
	}
	return b.String()
}
