package series

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/tvcatalog/internal/platform/ctxutil"
	"github.com/taibuivan/tvcatalog/internal/platform/form"
	"github.com/taibuivan/tvcatalog/internal/platform/middleware"
	requestutil "github.com/taibuivan/tvcatalog/internal/platform/request"
	"github.com/taibuivan/tvcatalog/internal/platform/respond"
	"github.com/taibuivan/tvcatalog/pkg/pagination"
)

type Handler struct {
	service *Service
	baseURL string
	uploads form.Options
}

// NewHandler creates a handler. uploads configures multipart decoding; its
// FileFields are replaced with the image field.
func NewHandler(service *Service, baseURL string, uploads form.Options) *Handler {
	uploads.FileFields = []string{FieldImage}
	return &Handler{service: service, baseURL: baseURL, uploads: uploads}
}

func (handler *Handler) RegisterRoutes(router chi.Router) {
	// Public
	router.Get("/", handler.listSeries)
	router.Get("/{id}", handler.getSeries)

	// Admin only
	router.Group(func(admin chi.Router) {
		admin.Use(middleware.RequireAdmin)

		admin.Post("/", handler.createSeries)
		admin.Patch("/{id}", handler.updateSeries)
		admin.Delete("/{id}", handler.deleteSeries)
		admin.Post("/{id}/genres", handler.attachGenre)
	})
}

func (handler *Handler) listSeries(writer http.ResponseWriter, request *http.Request) {
	page, err := handler.service.ListSeries(request.Context(), pagination.FromRequest(request))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Page(writer, request, handler.baseURL, page)
}

func (handler *Handler) getSeries(writer http.ResponseWriter, request *http.Request) {
	id, err := requestutil.IntParam(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	// Anonymous callers get the public view.
	userID, _ := ctxutil.GetUserID(request.Context())

	series, err := handler.service.GetSeries(request.Context(), id, userID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, series)
}

func (handler *Handler) createSeries(writer http.ResponseWriter, request *http.Request) {
	values, err := form.Decode(writer, request, handler.uploads)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	defer values.Close()

	series, err := handler.service.CreateSeries(request.Context(), values)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, series)
}

func (handler *Handler) updateSeries(writer http.ResponseWriter, request *http.Request) {
	id, err := requestutil.IntParam(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	values, err := form.Decode(writer, request, handler.uploads)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	defer values.Close()

	series, err := handler.service.UpdateSeries(request.Context(), id, values)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, series)
}

func (handler *Handler) deleteSeries(writer http.ResponseWriter, request *http.Request) {
	id, err := requestutil.IntParam(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.DeleteSeries(request.Context(), id); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}

func (handler *Handler) attachGenre(writer http.ResponseWriter, request *http.Request) {
	id, err := requestutil.IntParam(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	values, err := form.Decode(writer, request, form.Options{})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	defer values.Close()

	attached, err := handler.service.AttachGenre(request.Context(), id, values)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, attached)
}
