package rating

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/tvcatalog/internal/platform/form"
	"github.com/taibuivan/tvcatalog/internal/platform/middleware"
	requestutil "github.com/taibuivan/tvcatalog/internal/platform/request"
	"github.com/taibuivan/tvcatalog/internal/platform/respond"
)

// Handler serves one facet under a series route that binds {id}.
type Handler struct {
	service *Service
	facet   Facet
}

func NewHandler(service *Service, facet Facet) *Handler {
	return &Handler{service: service, facet: facet}
}

func (handler *Handler) RegisterRoutes(router chi.Router) {
	router.Use(middleware.RequireAuth)

	router.Get("/", handler.getFact)
	router.Post("/", handler.createFact)
	router.Patch("/", handler.updateFact)
	router.Delete("/", handler.deleteFact)
}

// target resolves the caller and the series id. A malformed id is rejected
// before any store access.
func target(request *http.Request) (userID, seriesID int, err error) {
	seriesID, err = requestutil.IntParam(request, "id")
	if err != nil {
		return 0, 0, err
	}
	userID, err = requestutil.RequiredUserID(request)
	return userID, seriesID, err
}

func (handler *Handler) getFact(writer http.ResponseWriter, request *http.Request) {
	userID, seriesID, err := target(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	fact, err := handler.service.Get(request.Context(), userID, seriesID, handler.facet)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, fact)
}

func (handler *Handler) createFact(writer http.ResponseWriter, request *http.Request) {
	userID, seriesID, err := target(request)
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

	fact, err := handler.service.Create(request.Context(), userID, seriesID, handler.facet, values)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, fact)
}

func (handler *Handler) updateFact(writer http.ResponseWriter, request *http.Request) {
	userID, seriesID, err := target(request)
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

	fact, err := handler.service.Update(request.Context(), userID, seriesID, handler.facet, values)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, fact)
}

func (handler *Handler) deleteFact(writer http.ResponseWriter, request *http.Request) {
	userID, seriesID, err := target(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.Delete(request.Context(), userID, seriesID, handler.facet); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}
