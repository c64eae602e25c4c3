package genre

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/tvcatalog/internal/platform/form"
	"github.com/taibuivan/tvcatalog/internal/platform/middleware"
	"github.com/taibuivan/tvcatalog/internal/platform/respond"
	"github.com/taibuivan/tvcatalog/pkg/pagination"
)

type Handler struct {
	service *Service
	baseURL string
}

func NewHandler(service *Service, baseURL string) *Handler {
	return &Handler{service: service, baseURL: baseURL}
}

func (handler *Handler) RegisterRoutes(router chi.Router) {
	// Public
	router.Get("/", handler.listGenres)

	// Admin only
	router.With(middleware.RequireAdmin).Post("/", handler.createGenre)
}

func (handler *Handler) listGenres(writer http.ResponseWriter, request *http.Request) {
	page, err := handler.service.ListGenres(request.Context(), pagination.FromRequest(request))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Page(writer, request, handler.baseURL, page)
}

func (handler *Handler) createGenre(writer http.ResponseWriter, request *http.Request) {
	values, err := form.Decode(writer, request, form.Options{})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	defer values.Close()

	genre, err := handler.service.CreateGenre(request.Context(), values)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, genre)
}
