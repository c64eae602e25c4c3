// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/tvcatalog/internal/platform/apperr"
	"github.com/taibuivan/tvcatalog/internal/platform/database/schema"
	"github.com/taibuivan/tvcatalog/internal/platform/dberr"
	"github.com/taibuivan/tvcatalog/internal/platform/postgres"
	"github.com/taibuivan/tvcatalog/pkg/pagination"
)

// # User Repository

// PostgresUserRepository implements the UserRepository interface using pgx.
type PostgresUserRepository struct {
	pool *pgxpool.Pool
}

// NewUserRepository creates a new PostgreSQL implementation of the UserRepository.
func NewUserRepository(pool *pgxpool.Pool) *PostgresUserRepository {
	return &PostgresUserRepository{pool: pool}
}

// accountColumns extends the public columns with the password hash so rows
// scan into [User]. The hash never leaves the process since it is not serialized.
func accountColumns() []string {
	return append(schema.User.Columns(), schema.User.Password)
}

func accountTarget() postgres.Target {
	target := schema.User.Target()
	target.Columns = accountColumns()
	return target
}

func selectColumns() string {
	return strings.Join(accountColumns(), ", ")
}

/*
FindByID retrieves a user record by its id.

Returns:
  - *User: Hydrated account entity
  - error: apperr.NotFound("User") or database errors
*/
func (repository *PostgresUserRepository) FindByID(context context.Context, id int) (*User, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1`,
		selectColumns(), schema.User.Table, schema.User.ID,
	)

	rows, err := repository.pool.Query(context, query, id)
	if err != nil {
		return nil, dberr.Wrap(err, "find_user_by_id")
	}

	user, err := pgx.CollectExactlyOneRow(rows, pgx.RowToAddrOfStructByName[User])
	if err != nil {
		return nil, dberr.WrapAs(err, "User", "find_user_by_id")
	}
	return user, nil
}

func (repository *PostgresUserRepository) FindByUsername(context context.Context, username string) (*User, error) {
	return repository.findBy(context, schema.User.Username, username, "find_user_by_username")
}

func (repository *PostgresUserRepository) FindByEmail(context context.Context, email string) (*User, error) {
	return repository.findBy(context, schema.User.Email, email, "find_user_by_email")
}

// findBy looks an account up by a unique column, returning nil when absent.
func (repository *PostgresUserRepository) findBy(context context.Context, column, value, action string) (*User, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1`,
		selectColumns(), schema.User.Table, column,
	)

	rows, err := repository.pool.Query(context, query, value)
	if err != nil {
		return nil, dberr.Wrap(err, action)
	}

	user, err := pgx.CollectExactlyOneRow(rows, pgx.RowToAddrOfStructByName[User])
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, dberr.Wrap(err, action)
	}
	return user, nil
}

/*
Create persists a new user record into the users table.

Returns:
  - *User: The stored account
  - error: apperr.Conflict on a username or email collision, or database errors
*/
func (repository *PostgresUserRepository) Create(context context.Context, user *User) (*User, error) {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s)
		VALUES ($1, $2, $3, $4)
		RETURNING %s
	`,
		schema.User.Table,
		schema.User.Username, schema.User.Email, schema.User.Password, schema.User.Admin,
		selectColumns(),
	)

	rows, err := repository.pool.Query(context, query, user.Username, user.Email, user.PasswordHash, user.Admin)
	if err != nil {
		return nil, dberr.Wrap(err, "create_user")
	}

	created, err := pgx.CollectExactlyOneRow(rows, pgx.RowToAddrOfStructByName[User])
	if dberr.IsUniqueViolation(err) {
		return nil, apperr.Conflict("Username or email already exists")
	}
	if err != nil {
		return nil, dberr.Wrap(err, "create_user")
	}
	return created, nil
}

func (repository *PostgresUserRepository) ListUsers(context context.Context, params pagination.Params) (*pagination.Page[User], error) {
	query := fmt.Sprintf(`SELECT %s FROM %s ORDER BY %s ASC`,
		selectColumns(), schema.User.Table, schema.User.ID,
	)
	return postgres.PagedQuery[User](context, repository.pool, query, nil, params)
}

/*
Update modifies the supplied account columns.

Returns:
  - *User: The updated account
  - error: NothingToPatch, NotFound("User"), Conflict on an email collision
*/
func (repository *PostgresUserRepository) Update(context context.Context, id int, patch Patch) (*User, error) {
	updated, err := postgres.ConditionalUpdate[User](context, repository.pool, accountTarget(), id,
		postgres.SetIf(patch.Email != nil, schema.User.Email, patch.Email),
		postgres.SetIf(patch.PasswordHash != nil, schema.User.Password, patch.PasswordHash),
		postgres.SetIf(patch.Admin != nil, schema.User.Admin, patch.Admin),
	)
	if apperr.IsNotFound(err) {
		return nil, apperr.NotFound("User")
	}
	if dberr.IsUniqueViolation(err) {
		return nil, apperr.Conflict("Email exists")
	}
	if err != nil {
		return nil, err
	}
	return updated, nil
}
