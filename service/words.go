package service

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

// Portuguese (pt-PT) number words. Contracts spell legal amounts out in full,
// so these tables follow notarial usage: "catorze", "dezasseis", "dezassete".
var unitWords = []string{
	"", "um", "dois", "três", "quatro", "cinco", "seis", "sete", "oito", "nove",
}

var teenWords = []string{
	"dez", "onze", "doze", "treze", "catorze", "quinze",
	"dezasseis", "dezassete", "dezoito", "dezanove",
}

var tenWords = []string{
	"", "", "vinte", "trinta", "quarenta", "cinquenta",
	"sessenta", "setenta", "oitenta", "noventa",
}

// hundredWords[1] is "cento"; the bare "cem" for exactly 100 is special-cased
// in groupToWords.
var hundredWords = []string{
	"", "cento", "duzentos", "trezentos", "quatrocentos", "quinhentos",
	"seiscentos", "setecentos", "oitocentos", "novecentos",
}

// maxWordsAmount bounds the converter at the "bilhões" scale; no dealership
// amount comes anywhere near it.
const maxWordsAmount = 999_999_999_999.99

// AmountInWords spells a euro amount out in Portuguese, e.g.
// 15000.50 -> "quinze mil euros e cinquenta cêntimos". Cents are rounded, not
// truncated, so the written amount never understates the numeric one.
// Negative or non-finite input is a precondition violation and fails with an
// error: a malformed legal amount on a contract is worse than no contract.
func AmountInWords(amount float64) (string, error) {
	if math.IsNaN(amount) || math.IsInf(amount, 0) {
		return "", errors.New("montante inválido")
	}
	if amount < 0 {
		return "", errors.New("montante negativo")
	}
	if amount > maxWordsAmount {
		return "", fmt.Errorf("montante excede o máximo suportado de %.2f", maxWordsAmount)
	}

	integer := int64(math.Floor(amount))
	cents := int64(math.Round((amount - math.Floor(amount)) * 100))
	if cents == 100 {
		// 19.999 rounds up into the next euro.
		integer++
		cents = 0
	}

	result := integerToWords(integer) + " euros"
	if cents > 0 {
		if cents == 1 {
			result += " e um cêntimo"
		} else {
			result += " e " + integerToWords(cents) + " cêntimos"
		}
	}
	return result, nil
}

// integerToWords converts a non-negative integer, processing thousand-groups
// most-significant-first and skipping empty groups ("um milhão e", never
// "um milhão zero mil").
func integerToWords(n int64) string {
	if n == 0 {
		return "zero"
	}

	// groups[0] = ones, groups[1] = thousands, ...
	var groups [4]int64
	for i := 0; i < len(groups); i++ {
		groups[i] = n % 1000
		n /= 1000
	}

	var parts []string
	for i := len(groups) - 1; i >= 0; i-- {
		g := groups[i]
		if g == 0 {
			continue
		}
		switch i {
		case 0:
			parts = append(parts, groupToWords(int(g)))
		case 1:
			// "mil" is invariant and never takes "um".
			if g == 1 {
				parts = append(parts, "mil")
			} else {
				parts = append(parts, groupToWords(int(g))+" mil")
			}
		case 2:
			if g == 1 {
				parts = append(parts, "um milhão")
			} else {
				parts = append(parts, groupToWords(int(g))+" milhões")
			}
		case 3:
			if g == 1 {
				parts = append(parts, "um bilhão")
			} else {
				parts = append(parts, groupToWords(int(g))+" bilhões")
			}
		}
	}
	return strings.Join(parts, " ")
}

// groupToWords handles 1..999.
func groupToWords(n int) string {
	if n == 100 {
		return "cem"
	}

	var b strings.Builder
	hundreds := n / 100
	rest := n % 100
	if hundreds > 0 {
		b.WriteString(hundredWords[hundreds])
		if rest > 0 {
			b.WriteString(" e ")
		}
	}

	switch {
	case rest == 0:
	case rest < 10:
		b.WriteString(unitWords[rest])
	case rest < 20:
		b.WriteString(teenWords[rest-10])
	default:
		b.WriteString(tenWords[rest/10])
		if rest%10 > 0 {
			b.WriteString(" e ")
			b.WriteString(unitWords[rest%10])
		}
	}
	return b.String()
}
