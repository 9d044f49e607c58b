package render

import (
	"context"
	"encoding/base64"
	"fmt"
	"html"
	"os"
	"strings"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"

	"github.com/fleetwise-id/armada-insight/internal/analysis"
)

// ChromiumPDFRenderer prints the report markdown through headless Chromium.
type ChromiumPDFRenderer struct {
	chromePath string
}

func NewChromiumPDFRenderer() *ChromiumPDFRenderer {
	return &ChromiumPDFRenderer{chromePath: detectChromePath()}
}

func (r *ChromiumPDFRenderer) Render(ctx context.Context, rep analysis.Report) ([]byte, error) {
	htmlDoc, err := buildHTML(rep)
	if err != nil {
		return nil, err
	}

	timeoutCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	opts := []chromedp.ExecAllocatorOption{
		chromedp.NoSandbox,
		chromedp.DisableGPU,
		chromedp.Flag("disable-dev-shm-usage", true),
	}
	if r.chromePath != "" {
		opts = append(opts, chromedp.ExecPath(r.chromePath))
	}
	allocCtx, allocCancel := chromedp.NewExecAllocator(timeoutCtx, append(chromedp.DefaultExecAllocatorOptions[:], opts...)...)
	defer allocCancel()

	taskCtx, taskCancel := chromedp.NewContext(allocCtx)
	defer taskCancel()

	var pdf []byte
	dataURL := "data:text/html;base64," + base64.StdEncoding.EncodeToString([]byte(htmlDoc))
	if err := chromedp.Run(taskCtx,
		chromedp.Navigate(dataURL),
		chromedp.WaitReady("body", chromedp.ByQuery),
		chromedp.ActionFunc(func(ctx context.Context) error {
			footer := `<div style="width:100%;text-align:center;font-size:9px;color:#666;padding-right:8px;">` +
				`Halaman <span class="pageNumber"></span> dari <span class="totalPages"></span></div>`
			out, _, err := page.PrintToPDF().
				WithPrintBackground(true).
				WithDisplayHeaderFooter(true).
				WithHeaderTemplate(`<div></div>`).
				WithFooterTemplate(footer).
				WithPaperWidth(8.27).
				WithPaperHeight(11.69).
				WithMarginTop(0.5).
				WithMarginBottom(0.75).
				WithMarginLeft(0.45).
				WithMarginRight(0.45).
				Do(ctx)
			if err != nil {
				return err
			}
			pdf = out
			return nil
		}),
	); err != nil {
		return nil, err
	}
	return pdf, nil
}

const styleCSS = `
body{font-family:'Segoe UI',Arial,sans-serif;color:#1c1917;background:#fff;padding:0.6rem;line-height:1.55;}
.pdf-wrap{max-width:1000px;margin:0 auto;}
.report-header{display:flex;justify-content:space-between;align-items:flex-start;border-bottom:2px solid #1e3a5f;padding-bottom:0.5rem;margin-bottom:0.8rem;}
.report-meta{color:#44403c;font-size:0.85rem;}
.report-meta strong{color:#1c1917;}
.report-badge{display:inline-block;background:#dbeafe;color:#1e3a5f;border:1px solid #93c5fd;border-radius:4px;padding:0.15rem 0.5rem;font-size:0.75rem;font-weight:700;}
.report-badge.degraded{background:#fef3c7;color:#78350f;border-color:#fcd34d;}
.report-html h1{font-size:1.4rem;color:#1e3a5f;}
.report-html h2{font-size:1.05rem;color:#1e3a5f;border-bottom:1px solid #cbd5e1;padding-bottom:0.2rem;margin-top:1.1rem;}
.report-html table{width:100%;border-collapse:collapse;border:1px solid #a8a29e;font-size:0.8rem;}
.report-html th,.report-html td{border:1px solid #a8a29e;padding:0.35rem 0.45rem;text-align:left;vertical-align:top;}
.report-html thead th{background:#f1f5f9;font-weight:700;}
.report-html blockquote{border-left:3px solid #fcd34d;background:#fffbeb;margin:0.6rem 0;padding:0.4rem 0.7rem;color:#78350f;}
html,body,*{-webkit-print-color-adjust:exact !important;print-color-adjust:exact !important;}
@media print{ @page{size:auto;margin:12mm;} body{padding:0;} .pdf-wrap{max-width:none;} }
`

func buildHTML(rep analysis.Report) (string, error) {
	var content strings.Builder
	md := goldmark.New(goldmark.WithExtensions(extension.GFM))
	if err := md.Convert([]byte(rep.ReportMarkdown), &content); err != nil {
		return "", fmt.Errorf("markdown convert: %w", err)
	}

	return "<!doctype html><html><head><meta charset='utf-8'><title>Laporan Analisis Armada</title>" +
		"<style>" + styleCSS + "</style></head><body>" +
		"<div class='pdf-wrap'><div class='report-header'>" +
		"<div class='report-meta'>" + buildMetaHTML(rep) + "</div>" +
		"<div class='report-badges'>" + buildBadgeHTML(rep) + "</div>" +
		"</div><div class='report-html'>" + content.String() + "</div></div>" +
		"</body></html>", nil
}

func buildMetaHTML(rep analysis.Report) string {
	var out strings.Builder
	out.WriteString("<div><strong>Unit:</strong> " + html.EscapeString(rep.UnitInfo.Name) + "</div>")
	out.WriteString("<div><strong>Segmen:</strong> " + html.EscapeString(rep.UnitInfo.Segment) + "</div>")
	if !rep.Metadata.CompletedAt.IsZero() {
		out.WriteString("<div><strong>Tanggal:</strong> " +
			html.EscapeString(rep.Metadata.CompletedAt.In(time.Local).Format("2 January 2006 15:04")) + "</div>")
	}
	return out.String()
}

func buildBadgeHTML(rep analysis.Report) string {
	var out strings.Builder
	out.WriteString("<span class='report-badge'>ROI: " + html.EscapeString(rep.ROI.Category) + "</span> ")
	if rep.ReportMode == analysis.ReportModeDegraded {
		out.WriteString("<span class='report-badge degraded'>" + html.EscapeString(string(rep.ReportMode)) + "</span>")
	}
	return out.String()
}

func detectChromePath() string {
	candidates := []string{
		"/usr/bin/chromium-browser",
		"/usr/bin/chromium",
		"/usr/bin/google-chrome",
	}
	for _, p := range candidates {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return ""
}
