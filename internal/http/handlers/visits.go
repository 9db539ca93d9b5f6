package handlers

import (
	"log/slog"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"medisupply.com/portal/internal/config"
	"medisupply.com/portal/internal/http/flash"
	"medisupply.com/portal/internal/http/middleware"
	"medisupply.com/portal/internal/http/render"
	"medisupply.com/portal/internal/http/validation"
	"medisupply.com/portal/internal/modules/sellers"
	"medisupply.com/portal/internal/modules/visits"
	"medisupply.com/portal/internal/shared/apperr"
	"medisupply.com/portal/internal/shared/dates"
	"medisupply.com/portal/internal/storage"
	"medisupply.com/portal/pkg/view"
	"medisupply.com/portal/templates/pages"
)

// MaxMediaBytes caps a single uploaded photo or video.
const MaxMediaBytes = 25 << 20

type VisitHandlers struct {
	visits  *visits.Service
	sellers *sellers.Service
	media   storage.Storage
	flash   *flash.Codec
	forms   *validation.Translator
	logger  *slog.Logger
	now     func() time.Time

	// mediaUploads is false on targets without camera or file access.
	mediaUploads bool
}

func NewVisitHandlers(vs *visits.Service, ss *sellers.Service, media storage.Storage, features config.Features, flashCodec *flash.Codec, forms *validation.Translator, logger *slog.Logger) *VisitHandlers {
	return &VisitHandlers{
		visits:       vs,
		sellers:      ss,
		media:        media,
		flash:        flashCodec,
		forms:        forms,
		logger:       logger,
		now:          time.Now,
		mediaUploads: features.Camera || features.FileSystem,
	}
}

// List shows the visits of one day, today unless ?date is given.
func (h *VisitHandlers) List(c *gin.Context) {
	date := strings.TrimSpace(c.Query("date"))
	if date == "" {
		date = h.now().UTC().Format(dates.DayLayout)
	}

	res, err := h.visits.Search(c.Request.Context(), date)
	if err != nil {
		if apperr.HTTPStatus(err) == http.StatusBadRequest {
			p := render.NewPage(c, "visits.title").WithErrors(map[string]string{"date": middleware.T(c, "visits.invalidDate")})
			render.Component(c, http.StatusBadRequest, pages.Visits(p, view.VisitsPage{Date: date}))
			return
		}
		middleware.Fail(c, err)
		return
	}
	render.Component(c, http.StatusOK, pages.Visits(render.NewPage(c, "visits.title"), view.VisitsPage{Date: date, Result: res}))
}

func (h *VisitHandlers) New(c *gin.Context) {
	h.renderForm(c, http.StatusOK, view.VisitForm{}, nil)
}

// Create stores the uploaded media first and then registers the visit with
// the links of the stored files.
func (h *VisitHandlers) Create(c *gin.Context) {
	ctx := c.Request.Context()
	u, _ := middleware.CurrentUser(c)

	var in view.VisitForm
	if err := c.ShouldBind(&in); err != nil {
		h.renderForm(c, http.StatusBadRequest, in, h.forms.FromBindError(err, &in, middleware.Lang(c)))
		return
	}
	if _, err := dates.Parse(in.VisitDatetime); err != nil {
		h.renderForm(c, http.StatusBadRequest, in, map[string]string{"visit_datetime": middleware.T(c, "visits.invalidDate")})
		return
	}

	var files []*multipart.FileHeader
	if form, err := c.MultipartForm(); err == nil && form != nil {
		files = form.File["media"]
	}
	if len(files) > 0 && !h.mediaUploads {
		h.renderForm(c, http.StatusBadRequest, in, map[string]string{"media": middleware.T(c, "visits.mediaUnavailable")})
		return
	}
	media := make([]visits.MediaItem, 0, len(files))
	for _, fh := range files {
		item, err := h.store(c, fh)
		if err != nil {
			h.logger.ErrorContext(ctx, "visit_media_failed",
				slog.String("filename", fh.Filename),
				slog.String("err", err.Error()))
			h.cleanup(c, media)
			h.renderForm(c, apperr.HTTPStatus(err), in, map[string]string{"media": middleware.T(c, "visits.uploadFailed")})
			return
		}
		media = append(media, item)
	}

	_, err := h.visits.Create(ctx, visits.CreateRequest{
		ClientID:      in.ClientID,
		VendorID:      u.ID,
		ContactName:   strings.TrimSpace(in.ContactName),
		ContactPhone:  strings.TrimSpace(in.ContactPhone),
		VisitDatetime: in.VisitDatetime,
		Observations:  strings.TrimSpace(in.Observations),
		BucketData:    media,
	})
	if err != nil {
		h.cleanup(c, media)
		h.renderForm(c, apperr.HTTPStatus(err), in, fieldsOf(c, err, "visits.createFailed"))
		return
	}
	render.RedirectWithFlash(c, h.flash, "/visits", view.FlashSuccess, "visits.created")
}

func (h *VisitHandlers) store(c *gin.Context, fh *multipart.FileHeader) (visits.MediaItem, error) {
	ct := fh.Header.Get("Content-Type")
	if !strings.HasPrefix(ct, "image/") && !strings.HasPrefix(ct, "video/") {
		return visits.MediaItem{}, apperr.InvalidErr("Only photos and videos can be attached.", map[string]string{"media": "type"})
	}
	if fh.Size > MaxMediaBytes {
		return visits.MediaItem{}, apperr.InvalidErr("The file is too large.", map[string]string{"media": "size"})
	}

	f, err := fh.Open()
	if err != nil {
		return visits.MediaItem{}, apperr.Wrap(err)
	}
	defer f.Close()

	res, err := h.media.Put(c.Request.Context(), f, storage.PutInput{
		Filename:    fh.Filename,
		ContentType: ct,
		Size:        fh.Size,
	})
	if err != nil {
		return visits.MediaItem{}, err
	}
	return visits.MediaItem{Key: res.Key, URL: res.URL, Name: fh.Filename, ContentType: ct}, nil
}

// cleanup removes media stored for a visit that was never registered.
func (h *VisitHandlers) cleanup(c *gin.Context, media []visits.MediaItem) {
	for _, m := range media {
		if err := h.media.Delete(c.Request.Context(), m.Key); err != nil {
			h.logger.WarnContext(c.Request.Context(), "visit_media_cleanup_failed",
				slog.String("key", m.Key), slog.String("err", err.Error()))
		}
	}
}

func (h *VisitHandlers) renderForm(c *gin.Context, status int, form view.VisitForm, errs map[string]string) {
	u, _ := middleware.CurrentUser(c)
	render.Component(c, status, pages.VisitNew(render.NewPage(c, "visits.newTitle").WithErrors(errs), view.VisitFormPage{
		Form:         form,
		Clients:      h.sellers.GetMyClients(c.Request.Context(), u.ID),
		MediaUploads: h.mediaUploads,
	}))
}
