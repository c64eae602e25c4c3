package season

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/tvcatalog/internal/platform/form"
	"github.com/taibuivan/tvcatalog/internal/platform/middleware"
	requestutil "github.com/taibuivan/tvcatalog/internal/platform/request"
	"github.com/taibuivan/tvcatalog/internal/platform/respond"
	"github.com/taibuivan/tvcatalog/pkg/pagination"
)

// Handler serves seasons under a series route that binds {id}.
type Handler struct {
	service *Service
	baseURL string
	uploads form.Options
}

// NewHandler creates a handler. uploads configures multipart decoding; its
// FileFields are replaced with the poster field.
func NewHandler(service *Service, baseURL string, uploads form.Options) *Handler {
	uploads.FileFields = []string{FieldPoster}
	return &Handler{service: service, baseURL: baseURL, uploads: uploads}
}

func (handler *Handler) RegisterRoutes(router chi.Router) {
	// Public
	router.Get("/", handler.listSeasons)
	router.Get("/{number}", handler.getSeason)

	// Admin only
	router.With(middleware.RequireAdmin).Post("/", handler.createSeason)
	router.With(middleware.RequireAdmin).Delete("/{number}", handler.deleteSeason)
}

func (handler *Handler) listSeasons(writer http.ResponseWriter, request *http.Request) {
	seriesID, err := requestutil.IntParam(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	page, err := handler.service.ListSeasons(request.Context(), seriesID, pagination.FromRequest(request))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Page(writer, request, handler.baseURL, page)
}

func seasonParams(request *http.Request) (seriesID, number int, err error) {
	if seriesID, err = requestutil.IntParam(request, "id"); err != nil {
		return 0, 0, err
	}
	number, err = requestutil.IntParam(request, "number")
	return seriesID, number, err
}

func (handler *Handler) getSeason(writer http.ResponseWriter, request *http.Request) {
	seriesID, number, err := seasonParams(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	season, err := handler.service.GetSeason(request.Context(), seriesID, number)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, season)
}

func (handler *Handler) createSeason(writer http.ResponseWriter, request *http.Request) {
	seriesID, err := requestutil.IntParam(request, "id")
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

	season, err := handler.service.CreateSeason(request.Context(), seriesID, values)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, season)
}

func (handler *Handler) deleteSeason(writer http.ResponseWriter, request *http.Request) {
	seriesID, number, err := seasonParams(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.DeleteSeason(request.Context(), seriesID, number); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}
