package rating

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
)

type PostgresRepository struct {
	db *pgxpool.Pool
}

func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func column(facet Facet) string {
	if facet == FacetState {
		return schema.UserSeries.State
	}
	return schema.UserSeries.Rating
}

func returning() string {
	return strings.Join(schema.UserSeries.Columns(), ", ")
}

func collectFact(rows pgx.Rows, action string) (*Fact, error) {
	fact, err := pgx.CollectExactlyOneRow(rows, pgx.RowToAddrOfStructByName[Fact])
	if err != nil {
		return nil, dberr.Wrap(err, action)
	}
	return fact, nil
}

func (repository *PostgresRepository) Find(context context.Context, userID, seriesID int) (*Fact, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1 AND %s = $2`,
		returning(), schema.UserSeries.Table, schema.UserSeries.UserID, schema.UserSeries.SeriesID,
	)

	rows, err := repository.db.Query(context, query, userID, seriesID)
	if err != nil {
		return nil, dberr.Wrap(err, "find_user_series")
	}

	fact, err := pgx.CollectExactlyOneRow(rows, pgx.RowToAddrOfStructByName[Fact])
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, dberr.Wrap(err, "find_user_series")
	}
	return fact, nil
}

func (repository *PostgresRepository) Insert(context context.Context, userID, seriesID int, facet Facet, value any) (*Fact, error) {
	query := fmt.Sprintf(`INSERT INTO %s (%s, %s, %s) VALUES ($1, $2, $3) RETURNING %s`,
		schema.UserSeries.Table, schema.UserSeries.UserID, schema.UserSeries.SeriesID, column(facet), returning(),
	)

	rows, err := repository.db.Query(context, query, userID, seriesID, value)
	if err != nil {
		return nil, dberr.Wrap(err, "insert_user_series")
	}

	fact, err := pgx.CollectExactlyOneRow(rows, pgx.RowToAddrOfStructByName[Fact])
	if dberr.IsUniqueViolation(err) {
		return nil, apperr.Conflict(facet.Label() + " already exists")
	}
	if err != nil {
		return nil, dberr.Wrap(err, "insert_user_series")
	}
	return fact, nil
}

func (repository *PostgresRepository) Set(context context.Context, factID int, facet Facet, value any) (*Fact, error) {
	return postgres.ConditionalUpdate[Fact](context, repository.db, schema.UserSeries.Target(), factID,
		postgres.Set(column(facet), value),
	)
}

func (repository *PostgresRepository) Clear(context context.Context, factID int, facet Facet) (*Fact, error) {
	query := fmt.Sprintf(`UPDATE %s SET %s = NULL WHERE %s = $1 RETURNING %s`,
		schema.UserSeries.Table, column(facet), schema.UserSeries.ID, returning(),
	)

	rows, err := repository.db.Query(context, query, factID)
	if err != nil {
		return nil, dberr.Wrap(err, "clear_user_series")
	}
	return collectFact(rows, "clear_user_series")
}

func (repository *PostgresRepository) Delete(context context.Context, factID int) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`, schema.UserSeries.Table, schema.UserSeries.ID)

	tag, err := repository.db.Exec(context, query, factID)
	if err != nil {
		return dberr.Wrap(err, "delete_user_series")
	}
	if tag.RowsAffected() == 0 {
		return dberr.ErrNotFound
	}
	return nil
}

func (repository *PostgresRepository) Summary(context context.Context, seriesID int) (Summary, error) {
	query := fmt.Sprintf(`SELECT AVG(%s)::float8, COUNT(%s) FROM %s WHERE %s = $1`,
		schema.UserSeries.Rating, schema.UserSeries.Rating, schema.UserSeries.Table, schema.UserSeries.SeriesID,
	)

	var summary Summary
	if err := repository.db.QueryRow(context, query, seriesID).Scan(&summary.Average, &summary.Count); err != nil {
		return Summary{}, dberr.Wrap(err, "summarize_ratings")
	}
	return summary, nil
}
