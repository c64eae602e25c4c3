package episode

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/tvcatalog/internal/platform/form"
	"github.com/taibuivan/tvcatalog/internal/platform/middleware"
	requestutil "github.com/taibuivan/tvcatalog/internal/platform/request"
	"github.com/taibuivan/tvcatalog/internal/platform/respond"
)

// Handler serves episodes under a route that binds {id} (series) and {number} (season).
type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (handler *Handler) RegisterRoutes(router chi.Router) {
	// Public
	router.Get("/{episode}", handler.getEpisode)

	// Admin only
	router.With(middleware.RequireAdmin).Post("/", handler.createEpisode)
	router.With(middleware.RequireAdmin).Delete("/{episode}", handler.deleteEpisode)
}

func seasonParams(request *http.Request) (seriesID, season int, err error) {
	if seriesID, err = requestutil.IntParam(request, "id"); err != nil {
		return 0, 0, err
	}
	season, err = requestutil.IntParam(request, "number")
	return seriesID, season, err
}

func episodeParams(request *http.Request) (seriesID, season, number int, err error) {
	if seriesID, season, err = seasonParams(request); err != nil {
		return 0, 0, 0, err
	}
	number, err = requestutil.IntParam(request, "episode")
	return seriesID, season, number, err
}

func (handler *Handler) getEpisode(writer http.ResponseWriter, request *http.Request) {
	seriesID, season, number, err := episodeParams(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	episode, err := handler.service.GetEpisode(request.Context(), seriesID, season, number)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, episode)
}

func (handler *Handler) createEpisode(writer http.ResponseWriter, request *http.Request) {
	seriesID, season, err := seasonParams(request)
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

	episode, err := handler.service.CreateEpisode(request.Context(), seriesID, season, values)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, episode)
}

func (handler *Handler) deleteEpisode(writer http.ResponseWriter, request *http.Request) {
	seriesID, season, number, err := episodeParams(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.DeleteEpisode(request.Context(), seriesID, season, number); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}
