// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/taibuivan/tvcatalog/internal/platform/dberr"
	"github.com/taibuivan/tvcatalog/pkg/pagination"
)

// # Paged Listing

// WindowClause returns the LIMIT/OFFSET clause for a query that already binds
// boundCount parameters, so the window placeholders never collide with them.
func WindowClause(boundCount int) string {
	return fmt.Sprintf(" LIMIT $%d OFFSET $%d", boundCount+1, boundCount+2)
}

/*
PagedQuery runs query restricted to the window described by params.

The base query must not contain its own LIMIT/OFFSET. Offset and limit are
normalized first (non-positive values fall back to the defaults) and the
returned page carries the resolved values.

Parameters:
  - context: context.Context
  - db: Querier
  - query: base SELECT statement, ordered by the caller
  - args: values bound to the base statement's placeholders
  - params: requested window

Returns:
  - *pagination.Page[T]: the window rows scanned by column name
  - error: wrapped store failure
*/
func PagedQuery[T any](context context.Context, db Querier, query string, args []any, params pagination.Params) (*pagination.Page[T], error) {
	params = params.Normalize()

	bound := make([]any, 0, len(args)+2)
	bound = append(bound, args...)
	bound = append(bound, params.Limit, params.Offset)

	rows, err := db.Query(context, query+WindowClause(len(args)), bound...)
	if err != nil {
		return nil, dberr.Wrap(err, "paged_query")
	}

	items, err := pgx.CollectRows(rows, pgx.RowToStructByName[T])
	if err != nil {
		return nil, dberr.Wrap(err, "paged_query_collect")
	}

	return pagination.NewPage(params, items), nil
}
