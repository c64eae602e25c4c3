package season

import (
	"context"
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
	return strings.Join(schema.Season.Columns(), ", ")
}

func bySeriesQuery() string {
	return fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1 ORDER BY %s ASC`,
		selectColumns(), schema.Season.Table, schema.Season.SeriesID, schema.Season.Number,
	)
}

func (repository *PostgresRepository) ListSeasons(context context.Context, seriesID int, params pagination.Params) (*pagination.Page[Season], error) {
	return postgres.PagedQuery[Season](context, repository.db, bySeriesQuery(), []any{seriesID}, params)
}

func (repository *PostgresRepository) ListAll(context context.Context, seriesID int) ([]Season, error) {
	rows, err := repository.db.Query(context, bySeriesQuery(), seriesID)
	if err != nil {
		return nil, dberr.Wrap(err, "list_seasons")
	}

	seasons, err := pgx.CollectRows(rows, pgx.RowToStructByName[Season])
	if err != nil {
		return nil, dberr.Wrap(err, "scan_seasons")
	}
	return seasons, nil
}

func (repository *PostgresRepository) Get(context context.Context, seriesID, number int) (*Season, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1 AND %s = $2`,
		selectColumns(), schema.Season.Table, schema.Season.SeriesID, schema.Season.Number,
	)

	rows, err := repository.db.Query(context, query, seriesID, number)
	if err != nil {
		return nil, dberr.Wrap(err, "get_season")
	}

	season, err := pgx.CollectExactlyOneRow(rows, pgx.RowToAddrOfStructByName[Season])
	if err != nil {
		return nil, dberr.WrapAs(err, "Season", "get_season")
	}
	return season, nil
}

func (repository *PostgresRepository) Create(context context.Context, season *Season) (*Season, error) {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING %s
	`,
		schema.Season.Table,
		schema.Season.Name, schema.Season.Number, schema.Season.AirDate,
		schema.Season.Overview, schema.Season.Poster, schema.Season.SeriesID,
		selectColumns(),
	)

	rows, err := repository.db.Query(context, query,
		season.Name, season.Number, season.AirDate, season.Overview, season.Poster, season.SeriesID,
	)
	if err != nil {
		return nil, dberr.Wrap(err, "create_season")
	}

	created, err := pgx.CollectExactlyOneRow(rows, pgx.RowToAddrOfStructByName[Season])
	if dberr.IsUniqueViolation(err) {
		return nil, apperr.Conflict(fmt.Sprintf("Season %d already exists", season.Number))
	}
	if err != nil {
		return nil, dberr.Wrap(err, "create_season")
	}
	return created, nil
}

func (repository *PostgresRepository) HasEpisodes(context context.Context, seasonID int) (bool, error) {
	query := fmt.Sprintf(`SELECT EXISTS (SELECT 1 FROM %s WHERE %s = $1)`,
		schema.Episode.Table, schema.Episode.SeasonID,
	)
	return postgres.Exists(context, repository.db, query, seasonID)
}

func (repository *PostgresRepository) Delete(context context.Context, id int) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`, schema.Season.Table, schema.Season.ID)

	tag, err := repository.db.Exec(context, query, id)
	if err != nil {
		return dberr.Wrap(err, "delete_season")
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("Season")
	}
	return nil
}
