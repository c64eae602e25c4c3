// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package api

import (
	"net/http"

	"github.com/taibuivan/tvcatalog/internal/platform/respond"
)

// endpoint describes one resource in the index document.
type endpoint struct {
	Href    string   `json:"href"`
	Methods []string `json:"methods"`
}

// index is the discovery document served at the root, grouped by area.
var index = map[string]map[string]endpoint{
	"tv": {
		"series": {Href: "/tv", Methods: []string{http.MethodGet, http.MethodPost}},
		"serie":  {Href: "/tv/{id}", Methods: []string{http.MethodGet, http.MethodPatch, http.MethodDelete}},
		"genres": {Href: "/tv/{id}/genres", Methods: []string{http.MethodPost}},
		"rate":   {Href: "/tv/{id}/rate", Methods: []string{http.MethodGet, http.MethodPost, http.MethodPatch, http.MethodDelete}},
		"state":  {Href: "/tv/{id}/state", Methods: []string{http.MethodGet, http.MethodPost, http.MethodPatch, http.MethodDelete}},
	},
	"seasons": {
		"seasons": {Href: "/tv/{id}/season", Methods: []string{http.MethodGet, http.MethodPost}},
		"season":  {Href: "/tv/{id}/season/{number}", Methods: []string{http.MethodGet, http.MethodDelete}},
	},
	"episodes": {
		"episodes": {Href: "/tv/{id}/season/{number}/episode", Methods: []string{http.MethodPost}},
		"episode":  {Href: "/tv/{id}/season/{number}/episode/{episode}", Methods: []string{http.MethodGet, http.MethodDelete}},
	},
	"genres": {
		"genres": {Href: "/genres", Methods: []string{http.MethodGet, http.MethodPost}},
	},
	"users": {
		"users":    {Href: "/users", Methods: []string{http.MethodGet}},
		"user":     {Href: "/users/{id}", Methods: []string{http.MethodGet, http.MethodPatch}},
		"register": {Href: "/users/register", Methods: []string{http.MethodPost}},
		"login":    {Href: "/users/login", Methods: []string{http.MethodPost}},
		"me":       {Href: "/users/me", Methods: []string{http.MethodGet, http.MethodPatch}},
	},
}

// indexHandler handles GET / with the list of available endpoints.
func indexHandler(writer http.ResponseWriter, _ *http.Request) {
	respond.OK(writer, index)
}
