package handlers

import (
	"context"
	"log/slog"
	"mime"
	"net/http"

	"github.com/gin-gonic/gin"

	"medisupply.com/portal/internal/http/flash"
	"medisupply.com/portal/internal/http/render"
	"medisupply.com/portal/internal/modules/reports"
	"medisupply.com/portal/pkg/view"
	"medisupply.com/portal/templates/pages"
)

type ReportHandlers struct {
	reports *reports.Service
	flash   *flash.Codec
	logger  *slog.Logger
}

func NewReportHandlers(rs *reports.Service, flashCodec *flash.Codec, logger *slog.Logger) *ReportHandlers {
	return &ReportHandlers{reports: rs, flash: flashCodec, logger: logger}
}

// Index renders the seller performance report for the filters in the query
// string. Unknown or malformed filters are passed through to the backend.
func (h *ReportHandlers) Index(c *gin.Context) {
	ctx := c.Request.Context()
	f := filtersOf(c)

	page := view.ReportsPage{
		Filters: f,
		Options: h.reports.GetFilterOptions(ctx),
		Report:  h.reports.GetSellerReport(ctx, f),
		Details: h.reports.GetSellerDetails(ctx, f),
	}
	qs := f.Query().Encode()
	page.ExportPDFURL = withQuery("/reports/export/pdf", qs)
	page.ExportExcelURL = withQuery("/reports/export/excel", qs)

	render.Component(c, http.StatusOK, pages.Reports(render.NewPage(c, "reports.title"), page))
}

func (h *ReportHandlers) ExportPDF(c *gin.Context) {
	h.export(c, h.reports.ExportPDF)
}

func (h *ReportHandlers) ExportExcel(c *gin.Context) {
	h.export(c, h.reports.ExportExcel)
}

func (h *ReportHandlers) export(c *gin.Context, fn func(context.Context, reports.Filters) (reports.Export, error)) {
	f := filtersOf(c)
	doc, err := fn(c.Request.Context(), f)
	if err != nil {
		h.logger.ErrorContext(c.Request.Context(), "report_export_failed", slog.String("err", err.Error()))
		render.RedirectWithFlash(c, h.flash, withQuery("/reports", f.Query().Encode()), view.FlashError, "reports.exportFailed")
		return
	}

	c.Header("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": doc.Filename}))
	c.Header("Cache-Control", "no-store")
	c.Data(http.StatusOK, doc.ContentType, doc.Body)
}

func filtersOf(c *gin.Context) reports.Filters {
	var f reports.Filters
	_ = c.ShouldBindQuery(&f)
	return f
}

func withQuery(path, qs string) string {
	if qs == "" {
		return path
	}
	return path + "?" + qs
}
