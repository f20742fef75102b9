package service

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"os"
	"path/filepath"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"

	"dye-atelier/catalog"
	"dye-atelier/utils"
)

// ExportService renders dye swatch sheets as HTML and turns them into
// PNG or PDF files with headless Chrome.
type ExportService struct {
	catalogService *CatalogService
	locale         *LocaleService
	baseURL        string // Base URL the render endpoint is reachable on (e.g. "http://localhost:8080")
	templatesDir   string
}

// NewExportService creates a new ExportService
func NewExportService(catalogService *CatalogService, locale *LocaleService, baseURL string) *ExportService {
	return &ExportService{
		catalogService: catalogService,
		locale:         locale,
		baseURL:        baseURL,
		templatesDir:   "templates",
	}
}

// detectChromePath detects the path to Chrome/Chromium executable
// Checks CHROME_PATH env var first, then common installation paths
func detectChromePath() string {
	if chromePath := os.Getenv("CHROME_PATH"); chromePath != "" {
		if _, err := os.Stat(chromePath); err == nil {
			return chromePath
		}
	}

	paths := []string{
		"/usr/bin/chromium",
		"/usr/bin/chromium-browser",
		"/usr/bin/google-chrome",
		"/usr/bin/google-chrome-stable",
		"/snap/bin/chromium",
	}

	for _, path := range paths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}

	return ""
}

// swatchRow is one dye on the rendered sheet.
type swatchRow struct {
	Name        string
	Hex         string
	Category    string
	Acquisition string
	Cost        string
}

// RenderSheetHTML renders the swatch sheet template for the given dyes.
// lang localizes the displayed names; an empty lang keeps the source
// names.
func (s *ExportService) RenderSheetHTML(dyes []catalog.Dye, lang string) (string, error) {
	rows := make([]swatchRow, 0, len(dyes))
	for _, dye := range dyes {
		name := dye.Name
		if lang != "" {
			name = s.locale.Name(lang, dye)
		}
		cost := ""
		if dye.Cost > 0 {
			cost = utils.FormatGil(int64(dye.Cost))
		}
		rows = append(rows, swatchRow{
			Name:        name,
			Hex:         dye.Hex,
			Category:    dye.Category,
			Acquisition: dye.Acquisition,
			Cost:        cost,
		})
	}

	templateData := struct {
		Rows        []swatchRow
		GeneratedAt string
	}{
		Rows:        rows,
		GeneratedAt: time.Now().UTC().Format("2006-01-02 15:04"),
	}

	templatePath := filepath.Join(s.templatesDir, "swatches.html")
	tmpl, err := template.ParseFiles(templatePath)
	if err != nil {
		return "", fmt.Errorf("failed to parse template: %w", err)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, templateData); err != nil {
		return "", fmt.Errorf("failed to execute template: %w", err)
	}

	return buf.String(), nil
}

// newChromeContext builds an allocator and browser context, honoring a
// detected Chrome path. The returned cancel function releases both.
func newChromeContext(ctx context.Context) (context.Context, context.CancelFunc) {
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.NoSandbox, // Required for running in Docker/containers
	)
	if chromePath := detectChromePath(); chromePath != "" {
		opts = append(opts, chromedp.ExecPath(chromePath))
	}

	allocCtx, allocCancel := chromedp.NewExecAllocator(ctx, opts...)
	chromedpCtx, chromedpCancel := chromedp.NewContext(allocCtx)

	cancel := func() {
		chromedpCancel()
		allocCancel()
	}
	return chromedpCtx, cancel
}

// renderURL constructs the URL Chrome navigates to for a sheet.
func (s *ExportService) renderURL(idsParam, lang string) string {
	url := fmt.Sprintf("%s/admin/export/render?ids=%s", s.baseURL, idsParam)
	if lang != "" {
		url += "&lang=" + lang
	}
	return url
}

// GeneratePDF renders the swatch sheet for idsParam and prints it to PDF.
func (s *ExportService) GeneratePDF(ctx context.Context, idsParam, lang string) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	chromedpCtx, chromeCancel := newChromeContext(ctx)
	defer chromeCancel()

	var pdfBuf []byte
	err := chromedp.Run(chromedpCtx,
		chromedp.EmulateViewport(794, 1123), // A4 at 96 DPI
		chromedp.Navigate(s.renderURL(idsParam, lang)),
		chromedp.WaitReady("body"),
		chromedp.ActionFunc(func(ctx context.Context) error {
			var err error
			pdfBuf, _, err = page.PrintToPDF().
				WithPrintBackground(true).
				WithPaperWidth(8.27).   // 210mm in inches
				WithPaperHeight(11.69). // 297mm in inches
				WithMarginTop(0.4).
				WithMarginBottom(0.4).
				WithMarginLeft(0.4).
				WithMarginRight(0.4).
				Do(ctx)
			return err
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to generate PDF: %w", err)
	}

	return pdfBuf, nil
}

// GeneratePNG renders the swatch sheet for idsParam and screenshots the
// full page.
func (s *ExportService) GeneratePNG(ctx context.Context, idsParam, lang string) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	chromedpCtx, chromeCancel := newChromeContext(ctx)
	defer chromeCancel()

	var pngBuf []byte
	err := chromedp.Run(chromedpCtx,
		chromedp.EmulateViewport(794, 1123),
		chromedp.Navigate(s.renderURL(idsParam, lang)),
		chromedp.WaitReady("body"),
		chromedp.FullScreenshot(&pngBuf, 100),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to generate PNG: %w", err)
	}

	return pngBuf, nil
}
