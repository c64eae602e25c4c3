// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package pagination

import (
	"net/url"
	"strconv"
	"strings"
)

// Link is a single navigation link.
type Link struct {
	Href string `json:"href"`
}

// Links holds the navigation links of a page.
type Links struct {
	Self Link  `json:"self"`
	Prev *Link `json:"prev,omitempty"`
	Next *Link `json:"next,omitempty"`
}

// BaseURL turns a configured host ("127.0.0.1:3000") into an absolute base URL.
// Hosts that already carry a scheme are returned without a trailing slash.
func BaseURL(host string) string {
	host = strings.TrimRight(host, "/")
	if strings.HasPrefix(host, "http://") || strings.HasPrefix(host, "https://") {
		return host
	}
	return "http://" + host
}

/*
BuildLinks computes the self/prev/next links of a window.

Rules:
  - self is always present.
  - prev is present only when offset > 0; its offset is clamped at 0.
  - next is present only when the page was full (length >= limit).
*/
func BuildLinks(baseURL, path string, offset, limit, length int) Links {
	links := Links{Self: link(baseURL, path, offset, limit)}

	if offset > 0 {
		prev := link(baseURL, path, max(offset-limit, 0), limit)
		links.Prev = &prev
	}

	if length >= limit {
		next := link(baseURL, path, offset+limit, limit)
		links.Next = &next
	}

	return links
}

// Decorate attaches navigation links to page. A page that already has links is
// returned unchanged.
func Decorate[T any](page *Page[T], baseURL, path string) *Page[T] {
	if page == nil || page.Links != nil {
		return page
	}

	links := BuildLinks(baseURL, path, page.Offset, page.Limit, len(page.Items))
	page.Links = &links
	return page
}

func link(baseURL, path string, offset, limit int) Link {
	query := url.Values{}
	query.Set(ParamOffset, strconv.Itoa(offset))
	query.Set(ParamLimit, strconv.Itoa(limit))

	return Link{Href: baseURL + path + "?" + query.Encode()}
}
