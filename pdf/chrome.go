package pdf

import (
	"context"
	"fmt"
	"io"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
	"go.uber.org/zap"
)

// ChromeEngine renders documents with a headless Chromium instance that is
// launched once and reused for every request. Pages are throwaway: one per
// render, closed when the render finishes.
type ChromeEngine struct {
	browser  *rod.Browser
	launcher *launcher.Launcher
	logger   *zap.Logger
}

// NewChromeEngine launches headless Chromium and connects to it. binPath
// overrides the browser binary; leave it empty to use the launcher's
// auto-detected one.
func NewChromeEngine(binPath string, logger *zap.Logger) (*ChromeEngine, error) {
	l := launcher.New().Headless(true)
	if binPath != "" {
		l = l.Bin(binPath)
	}

	controlURL, err := l.Launch()
	if err != nil {
		return nil, fmt.Errorf("failed to launch chromium: %w", err)
	}

	browser := rod.New().ControlURL(controlURL)
	if err := browser.Connect(); err != nil {
		l.Cleanup()
		return nil, fmt.Errorf("failed to connect to chromium: %w", err)
	}

	logger.Info("chromium ready", zap.String("control_url", controlURL))

	return &ChromeEngine{
		browser:  browser,
		launcher: l,
		logger:   logger,
	}, nil
}

// Close shuts the browser down and cleans its temporary profile up.
func (e *ChromeEngine) Close() error {
	err := e.browser.Close()
	e.launcher.Cleanup()
	return err
}

func (e *ChromeEngine) GeneratePDF(ctx context.Context, html string, opts Options) ([]byte, error) {
	page, err := e.browser.Page(proto.TargetCreateTarget{URL: "about:blank"})
	if err != nil {
		return nil, fmt.Errorf("failed to open page: %w", err)
	}
	defer func() { _ = page.Close() }()

	page = page.Context(ctx)

	if err := page.SetDocumentContent(html); err != nil {
		return nil, fmt.Errorf("failed to set document content: %w", err)
	}
	if err := page.WaitLoad(); err != nil {
		return nil, fmt.Errorf("failed waiting for document load: %w", err)
	}

	reader, err := page.PDF(&proto.PagePrintToPDF{
		Landscape:       opts.Landscape,
		PrintBackground: opts.PrintBackground,
		PaperWidth:      &opts.PaperWidth,
		PaperHeight:     &opts.PaperHeight,
		MarginTop:       &opts.MarginTop,
		MarginBottom:    &opts.MarginBottom,
		MarginLeft:      &opts.MarginLeft,
		MarginRight:     &opts.MarginRight,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to print page: %w", err)
	}

	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("failed to read pdf stream: %w", err)
	}
	return data, nil
}
