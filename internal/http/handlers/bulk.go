package handlers

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"

	"medisupply.com/portal/internal/http/middleware"
	"medisupply.com/portal/internal/http/render"
	"medisupply.com/portal/internal/modules/products"
	"medisupply.com/portal/internal/modules/suppliers"
	"medisupply.com/portal/internal/shared/apperr"
	"medisupply.com/portal/pkg/view"
	"medisupply.com/portal/templates/pages"
)

// MaxBulkBytes caps an uploaded CSV or spreadsheet.
const MaxBulkBytes = 10 << 20

var bulkExtensions = map[string]bool{".csv": true, ".xlsx": true, ".xls": true}

type uploadFunc func(ctx context.Context, filename string, r io.Reader) (map[string]any, error)

// BulkHandlers forwards product and supplier files to their services and
// shows what the backend reported.
type BulkHandlers struct {
	products  *products.Service
	suppliers *suppliers.Service
	logger    *slog.Logger
}

func NewBulkHandlers(ps *products.Service, sups *suppliers.Service, logger *slog.Logger) *BulkHandlers {
	return &BulkHandlers{products: ps, suppliers: sups, logger: logger}
}

func (h *BulkHandlers) ProductsForm(c *gin.Context) {
	h.render(c, http.StatusOK, productsBulkPage(nil), nil)
}

func (h *BulkHandlers) SuppliersForm(c *gin.Context) {
	h.render(c, http.StatusOK, suppliersBulkPage(nil), nil)
}

func (h *BulkHandlers) UploadProducts(c *gin.Context) {
	h.upload(c, productsBulkPage, func(ctx context.Context, name string, r io.Reader) (map[string]any, error) {
		res, err := h.products.CreateBulkProduct(ctx, name, r)
		return map[string]any(res), err
	})
}

func (h *BulkHandlers) UploadSuppliers(c *gin.Context) {
	h.upload(c, suppliersBulkPage, h.suppliers.CreateBulkSupplier)
}

func (h *BulkHandlers) upload(c *gin.Context, page func(map[string]any) view.BulkPage, fn uploadFunc) {
	empty := page(nil)
	fail := func(status int, key string) {
		h.render(c, status, empty, map[string]string{"file": middleware.T(c, key)})
	}

	fh, err := c.FormFile("file")
	if err != nil {
		fail(http.StatusBadRequest, "bulk.missingFile")
		return
	}
	if !bulkExtensions[strings.ToLower(filepath.Ext(fh.Filename))] || fh.Size > MaxBulkBytes {
		fail(http.StatusBadRequest, "bulk.failed")
		return
	}
	f, err := fh.Open()
	if err != nil {
		fail(http.StatusBadRequest, "bulk.failed")
		return
	}
	defer f.Close()

	res, err := fn(c.Request.Context(), filepath.Base(fh.Filename), f)
	if err != nil {
		h.logger.ErrorContext(c.Request.Context(), "bulk_upload_failed",
			slog.String("filename", fh.Filename),
			slog.String("err", err.Error()))
		fail(apperr.HTTPStatus(err), "bulk.failed")
		return
	}
	if res == nil {
		res = map[string]any{}
	}
	h.render(c, http.StatusOK, page(res), nil)
}

func (h *BulkHandlers) render(c *gin.Context, status int, page view.BulkPage, errs map[string]string) {
	render.Component(c, status, pages.Bulk(render.NewPage(c, page.TitleKey).WithErrors(errs), page))
}

func productsBulkPage(res map[string]any) view.BulkPage {
	return view.BulkPage{TitleKey: "bulk.productsTitle", Action: "/products/bulk", Result: res}
}

func suppliersBulkPage(res map[string]any) view.BulkPage {
	return view.BulkPage{TitleKey: "bulk.suppliersTitle", Action: "/suppliers/bulk", Result: res}
}
