package series

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

type PostgresRepository struct {
	db *pgxpool.Pool
}

func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func selectColumns() string {
	return strings.Join(schema.Series.Columns(), ", ")
}

func (repository *PostgresRepository) ListSeries(context context.Context, params pagination.Params) (*pagination.Page[Series], error) {
	query := fmt.Sprintf(`SELECT %s FROM %s ORDER BY %s ASC`,
		selectColumns(), schema.Series.Table, schema.Series.ID,
	)
	return postgres.PagedQuery[Series](context, repository.db, query, nil, params)
}

func (repository *PostgresRepository) Get(context context.Context, id int) (*Series, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1`,
		selectColumns(), schema.Series.Table, schema.Series.ID,
	)

	rows, err := repository.db.Query(context, query, id)
	if err != nil {
		return nil, dberr.Wrap(err, "get_series")
	}

	series, err := pgx.CollectExactlyOneRow(rows, pgx.RowToAddrOfStructByName[Series])
	if err != nil {
		return nil, dberr.WrapAs(err, "Series", "get_series")
	}
	return series, nil
}

func (repository *PostgresRepository) FindByName(context context.Context, name string) (*Series, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1`,
		selectColumns(), schema.Series.Table, schema.Series.Name,
	)

	rows, err := repository.db.Query(context, query, name)
	if err != nil {
		return nil, dberr.Wrap(err, "find_series_by_name")
	}

	series, err := pgx.CollectExactlyOneRow(rows, pgx.RowToAddrOfStructByName[Series])
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, dberr.Wrap(err, "find_series_by_name")
	}
	return series, nil
}

func (repository *PostgresRepository) Create(context context.Context, series *Series) (*Series, error) {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING %s
	`,
		schema.Series.Table,
		schema.Series.Name, schema.Series.AirDate, schema.Series.InProduction,
		schema.Series.Tagline, schema.Series.Image, schema.Series.Description,
		schema.Series.Language, schema.Series.Network, schema.Series.URL,
		selectColumns(),
	)

	rows, err := repository.db.Query(context, query,
		series.Name, series.AirDate, series.InProduction,
		series.Tagline, series.Image, series.Description,
		series.Language, series.Network, series.URL,
	)
	if err != nil {
		return nil, dberr.Wrap(err, "create_series")
	}

	created, err := pgx.CollectExactlyOneRow(rows, pgx.RowToAddrOfStructByName[Series])
	if dberr.IsUniqueViolation(err) {
		return nil, apperr.Conflict(fmt.Sprintf("Series %q already exists", series.Name))
	}
	if err != nil {
		return nil, dberr.Wrap(err, "create_series")
	}
	return created, nil
}

func (repository *PostgresRepository) Update(context context.Context, id int, patch Patch) (*Series, error) {
	updated, err := postgres.ConditionalUpdate[Series](context, repository.db, schema.Series.Target(), id,
		postgres.SetIf(patch.Name != nil, schema.Series.Name, patch.Name),
		postgres.SetIf(patch.AirDate != nil, schema.Series.AirDate, patch.AirDate),
		postgres.SetIf(patch.InProduction != nil, schema.Series.InProduction, patch.InProduction),
		postgres.SetIf(patch.Tagline != nil, schema.Series.Tagline, patch.Tagline),
		postgres.SetIf(patch.Image != nil, schema.Series.Image, patch.Image),
		postgres.SetIf(patch.Description != nil, schema.Series.Description, patch.Description),
		postgres.SetIf(patch.Language != nil, schema.Series.Language, patch.Language),
		postgres.SetIf(patch.Network != nil, schema.Series.Network, patch.Network),
		postgres.SetIf(patch.URL != nil, schema.Series.URL, patch.URL),
	)
	if apperr.IsNotFound(err) {
		return nil, apperr.NotFound("Series")
	}
	if dberr.IsUniqueViolation(err) {
		return nil, apperr.Conflict("Series name already exists")
	}
	return updated, err
}

func (repository *PostgresRepository) Exists(context context.Context, id int) (bool, error) {
	query := fmt.Sprintf(`SELECT EXISTS (SELECT 1 FROM %s WHERE %s = $1)`, schema.Series.Table, schema.Series.ID)
	return postgres.Exists(context, repository.db, query, id)
}

func (repository *PostgresRepository) HasSeasons(context context.Context, id int) (bool, error) {
	query := fmt.Sprintf(`SELECT EXISTS (SELECT 1 FROM %s WHERE %s = $1)`, schema.Season.Table, schema.Season.SeriesID)
	return postgres.Exists(context, repository.db, query, id)
}

func (repository *PostgresRepository) Delete(context context.Context, id int) error {
	return postgres.InTx(context, repository.db, "delete_series", func(tx pgx.Tx) error {
		unlink := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`, schema.SeriesGenre.Table, schema.SeriesGenre.SeriesID)
		if _, err := tx.Exec(context, unlink, id); err != nil {
			return err
		}

		remove := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`, schema.Series.Table, schema.Series.ID)
		tag, err := tx.Exec(context, remove, id)
		if err != nil {
			return err
		}
		if tag.RowsAffected() == 0 {
			return apperr.NotFound("Series")
		}
		return nil
	})
}
