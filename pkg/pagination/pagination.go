// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package pagination provides shared types and helpers for API list endpoints.
//
// # Overview
//
// It standardizes how offset/limit windows are requested via query parameters
// and how the resulting page is delivered, including navigation links.
package pagination

import (
	"net/http"

	"github.com/taibuivan/tvcatalog/pkg/convert"
)

const (
	// DefaultLimit is the number of items per page if not specified.
	DefaultLimit = 10
	// DefaultOffset is the starting offset if not specified.
	DefaultOffset = 0

	// ParamOffset and ParamLimit are the query parameter names.
	ParamOffset = "offset"
	ParamLimit  = "limit"
)

// Params holds the resolved offset and limit of a listing request.
type Params struct {
	Offset int
	Limit  int
}

// Normalize replaces any non-positive value with its default.
//
// # Policy
//
// Out-of-range values silently fall back to the defaults; they never produce
// an error.
func (p Params) Normalize() Params {
	if p.Offset <= 0 {
		p.Offset = DefaultOffset
	}
	if p.Limit <= 0 {
		p.Limit = DefaultLimit
	}
	return p
}

// Resolve builds [Params] from raw textual offset and limit values.
func Resolve(rawOffset, rawLimit string) Params {
	return Params{
		Offset: convert.ToPositiveIntD(rawOffset, DefaultOffset),
		Limit:  convert.ToPositiveIntD(rawLimit, DefaultLimit),
	}
}

// FromRequest parses "offset" and "limit" query parameters from an HTTP request.
func FromRequest(r *http.Request) Params {
	query := r.URL.Query()
	return Resolve(query.Get(ParamOffset), query.Get(ParamLimit))
}

// Page is one window of a listing.
type Page[T any] struct {
	Offset int    `json:"offset"`
	Limit  int    `json:"limit"`
	Items  []T    `json:"items"`
	Links  *Links `json:"links,omitempty"`
}

// NewPage wraps items with the resolved window they were fetched with.
func NewPage[T any](params Params, items []T) *Page[T] {
	if items == nil {
		items = []T{}
	}
	return &Page[T]{Offset: params.Offset, Limit: params.Limit, Items: items}
}
