// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/taibuivan/tvcatalog/internal/platform/apperr"
	"github.com/taibuivan/tvcatalog/internal/platform/dberr"
)

// # Conditional Update

var (
	// ErrNothingToPatch is returned when no assignment names a column.
	ErrNothingToPatch = apperr.NothingToPatch()

	// ErrUpdateContract is returned when the supplied columns and concrete values
	// do not pair up. It signals a programming error in the caller.
	ErrUpdateContract = errors.New("postgres: conditional update columns and values do not match")
)

// Assignment is one (column, value) candidate of a partial update. The zero
// Assignment stands for "the caller did not supply this field".
type Assignment struct {
	Column string
	Value  any
}

// Set builds an assignment for a supplied field.
func Set(column string, value any) Assignment {
	return Assignment{Column: column, Value: value}
}

// SetIf builds an assignment only when supplied is true.
func SetIf(supplied bool, column string, value any) Assignment {
	if !supplied {
		return Assignment{}
	}
	return Set(column, value)
}

// Statement is a rendered SQL statement with its bound arguments.
type Statement struct {
	SQL  string
	Args []any
}

/*
BuildUpdate renders an UPDATE touching only the supplied columns.

Columns and values are filtered independently: a column survives when it is a
non-empty name, a value survives when it is concrete (see [concreteValue]). The
key is bound as $1 and the surviving values as $2.. in order.

Returns:
  - Statement: UPDATE <table> SET c1 = $2, ... WHERE <key> = $1 RETURNING <columns>
  - error: ErrNothingToPatch when no column survives, ErrUpdateContract on a length mismatch
*/
func BuildUpdate(target Target, id any, assignments []Assignment) (Statement, error) {
	columns := make([]string, 0, len(assignments))
	values := make([]any, 0, len(assignments))

	for _, assignment := range assignments {
		if assignment.Column != "" {
			columns = append(columns, assignment.Column)
		}
		if value, ok := concreteValue(assignment.Value); ok {
			values = append(values, value)
		}
	}

	if len(columns) == 0 {
		return Statement{}, ErrNothingToPatch
	}

	if len(columns) != len(values) {
		return Statement{}, fmt.Errorf("%w: %d columns, %d values", ErrUpdateContract, len(columns), len(values))
	}

	sets := make([]string, len(columns))
	for i, column := range columns {
		sets[i] = fmt.Sprintf("%s = $%d", pgx.Identifier{column}.Sanitize(), i+2)
	}

	returning := "*"
	if len(target.Columns) > 0 {
		returning = strings.Join(quoteAll(target.Columns), ", ")
	}

	sql := fmt.Sprintf("UPDATE %s SET %s WHERE %s = $1 RETURNING %s",
		pgx.Identifier{target.Table}.Sanitize(),
		strings.Join(sets, ", "),
		pgx.Identifier{target.Key}.Sanitize(),
		returning,
	)

	args := make([]any, 0, len(values)+1)
	args = append(args, id)
	args = append(args, values...)

	return Statement{SQL: sql, Args: args}, nil
}

/*
ConditionalUpdate applies a partial update to the row identified by id and
returns the updated row.

Parameters:
  - context: context.Context
  - db: Querier (pool or transaction)
  - target: Target (table, key and returned columns)
  - id: the key value
  - assignments: the sparse candidate list

Returns:
  - *T: the updated row, scanned by column name
  - error: ErrNothingToPatch, NotFound when no row matched, Internal otherwise
*/
func ConditionalUpdate[T any](context context.Context, db Querier, target Target, id any, assignments ...Assignment) (*T, error) {
	statement, err := BuildUpdate(target, id, assignments)
	if err != nil {
		if errors.Is(err, ErrUpdateContract) {
			return nil, apperr.Internal(err)
		}
		return nil, err
	}

	rows, err := db.Query(context, statement.SQL, statement.Args...)
	if err != nil {
		return nil, dberr.Wrap(err, "conditional_update_"+target.Table)
	}

	row, err := pgx.CollectExactlyOneRow(rows, pgx.RowToAddrOfStructByName[T])
	if err != nil {
		return nil, dberr.Wrap(err, "conditional_update_"+target.Table)
	}

	return row, nil
}

// concreteValue reports whether v is a storable scalar: a string, number,
// boolean or time instant, or a non-nil pointer to one. Pointers are dereferenced.
func concreteValue(v any) (any, bool) {
	switch value := v.(type) {
	case nil:
		return nil, false
	case string, bool, time.Time,
		int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64,
		float32, float64:
		return value, true
	case *string:
		return deref(value)
	case *bool:
		return deref(value)
	case *int:
		return deref(value)
	case *int64:
		return deref(value)
	case *float64:
		return deref(value)
	case *time.Time:
		return deref(value)
	default:
		return nil, false
	}
}

func deref[T any](p *T) (any, bool) {
	if p == nil {
		return nil, false
	}
	return *p, true
}
