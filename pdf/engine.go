// Package pdf turns fully-resolved HTML into PDF bytes. The rest of the
// system only depends on the Engine interface; the one real implementation
// drives headless Chromium.
package pdf

import "context"

// Options control the printed page. Dimensions are in inches, as the
// DevTools print protocol expects.
type Options struct {
	PaperWidth      float64
	PaperHeight     float64
	MarginTop       float64
	MarginBottom    float64
	MarginLeft      float64
	MarginRight     float64
	PrintBackground bool
	Landscape       bool
}

// DefaultOptions is A4 portrait with the margins the contract templates were
// laid out for.
func DefaultOptions() Options {
	return Options{
		PaperWidth:      8.27,
		PaperHeight:     11.69,
		MarginTop:       0.4,
		MarginBottom:    0.4,
		MarginLeft:      0.4,
		MarginRight:     0.4,
		PrintBackground: true,
	}
}

// Engine rasterizes an HTML string into a PDF document. The input must
// contain no unresolved template tokens; that is the caller's contract.
type Engine interface {
	GeneratePDF(ctx context.Context, html string, opts Options) ([]byte, error)
}
