// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/taibuivan/tvcatalog/internal/platform/dberr"
)

// InTx runs fn inside a transaction that is committed when fn returns nil and
// rolled back otherwise.
func InTx(context context.Context, db Beginner, action string, fn func(tx pgx.Tx) error) error {
	return dberr.Wrap(pgx.BeginFunc(context, db, fn), action)
}

// Exists reports whether query (a SELECT returning one boolean) yields true.
func Exists(context context.Context, db Querier, query string, args ...any) (bool, error) {
	var exists bool
	if err := db.QueryRow(context, query, args...).Scan(&exists); err != nil {
		return false, dberr.Wrap(err, "exists")
	}
	return exists, nil
}
