// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package account

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/tvcatalog/internal/platform/form"
	"github.com/taibuivan/tvcatalog/internal/platform/middleware"
	requestutil "github.com/taibuivan/tvcatalog/internal/platform/request"
	"github.com/taibuivan/tvcatalog/internal/platform/respond"
	"github.com/taibuivan/tvcatalog/pkg/pagination"
)

// Handler implements the HTTP layer for user account management.
type Handler struct {
	accountService *Service
	baseURL        string
}

// NewHandler constructs a new account [Handler].
func NewHandler(service *Service, baseURL string) *Handler {
	return &Handler{accountService: service, baseURL: baseURL}
}

// RegisterRoutes mounts the account endpoints under the users prefix.
func (handler *Handler) RegisterRoutes(router chi.Router) {
	// Signed-in user
	router.Group(func(user chi.Router) {
		user.Use(middleware.RequireAuth)

		user.Get("/me", handler.getMe)
		user.Patch("/me", handler.updateMe)
	})

	// Administration
	router.Group(func(admin chi.Router) {
		admin.Use(middleware.RequireAdmin)

		admin.Get("/", handler.listUsers)
		admin.Get("/{id}", handler.getUser)
		admin.Patch("/{id}", handler.updateUser)
	})
}

func (handler *Handler) getMe(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	user, err := handler.accountService.GetProfile(request.Context(), userID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, user)
}

func (handler *Handler) updateMe(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
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

	user, err := handler.accountService.UpdateProfile(request.Context(), userID, values)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, user)
}

func (handler *Handler) listUsers(writer http.ResponseWriter, request *http.Request) {
	page, err := handler.accountService.ListUsers(request.Context(), pagination.FromRequest(request))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Page(writer, request, handler.baseURL, page)
}

func (handler *Handler) getUser(writer http.ResponseWriter, request *http.Request) {
	id, err := requestutil.IntParam(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	user, err := handler.accountService.GetUser(request.Context(), id)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, user)
}

func (handler *Handler) updateUser(writer http.ResponseWriter, request *http.Request) {
	id, err := requestutil.IntParam(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	actorID, err := requestutil.RequiredUserID(request)
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

	user, err := handler.accountService.SetAdmin(request.Context(), actorID, id, values)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, user)
}
