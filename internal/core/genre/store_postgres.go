package genre

import (
	"context"
	"errors"
	"fmt"

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

func (repository *PostgresRepository) ListGenres(context context.Context, params pagination.Params) (*pagination.Page[Genre], error) {
	query := fmt.Sprintf(`SELECT %s, %s FROM %s ORDER BY %s ASC`,
		schema.Genre.ID, schema.Genre.Name, schema.Genre.Table, schema.Genre.ID,
	)
	return postgres.PagedQuery[Genre](context, repository.db, query, nil, params)
}

func (repository *PostgresRepository) GetGenre(context context.Context, id int) (*Genre, error) {
	query := fmt.Sprintf(`SELECT %s, %s FROM %s WHERE %s = $1`,
		schema.Genre.ID, schema.Genre.Name, schema.Genre.Table, schema.Genre.ID,
	)

	genre := &Genre{}
	err := repository.db.QueryRow(context, query, id).Scan(&genre.ID, &genre.Name)
	if err != nil {
		return nil, dberr.WrapAs(err, "Genre", "get_genre")
	}
	return genre, nil
}

func (repository *PostgresRepository) FindByName(context context.Context, name string) (*Genre, error) {
	query := fmt.Sprintf(`SELECT %s, %s FROM %s WHERE %s = $1`,
		schema.Genre.ID, schema.Genre.Name, schema.Genre.Table, schema.Genre.Name,
	)

	genre := &Genre{}
	err := repository.db.QueryRow(context, query, name).Scan(&genre.ID, &genre.Name)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, dberr.Wrap(err, "find_genre_by_name")
	}
	return genre, nil
}

func (repository *PostgresRepository) CreateGenre(context context.Context, name string) (*Genre, error) {
	query := fmt.Sprintf(`INSERT INTO %s (%s) VALUES ($1) RETURNING %s, %s`,
		schema.Genre.Table, schema.Genre.Name, schema.Genre.ID, schema.Genre.Name,
	)

	genre := &Genre{}
	err := repository.db.QueryRow(context, query, name).Scan(&genre.ID, &genre.Name)
	if err != nil {
		return nil, dberr.Wrap(err, "create_genre")
	}
	return genre, nil
}

func (repository *PostgresRepository) ListBySeries(context context.Context, seriesID int) ([]Genre, error) {
	query := fmt.Sprintf(`
		SELECT g.%s, g.%s
		FROM %s g
		JOIN %s sg ON sg.%s = g.%s
		WHERE sg.%s = $1
		ORDER BY g.%s ASC
	`,
		schema.Genre.ID, schema.Genre.Name,
		schema.Genre.Table,
		schema.SeriesGenre.Table, schema.SeriesGenre.GenreID, schema.Genre.ID,
		schema.SeriesGenre.SeriesID,
		schema.Genre.Name,
	)

	rows, err := repository.db.Query(context, query, seriesID)
	if err != nil {
		return nil, dberr.Wrap(err, "list_series_genres")
	}

	genres, err := pgx.CollectRows(rows, pgx.RowToStructByName[Genre])
	if err != nil {
		return nil, dberr.Wrap(err, "scan_series_genres")
	}
	return genres, nil
}

func (repository *PostgresRepository) AttachToSeries(context context.Context, seriesID, genreID int) error {
	query := fmt.Sprintf(`INSERT INTO %s (%s, %s) VALUES ($1, $2)`,
		schema.SeriesGenre.Table, schema.SeriesGenre.SeriesID, schema.SeriesGenre.GenreID,
	)

	_, err := repository.db.Exec(context, query, seriesID, genreID)
	if dberr.IsUniqueViolation(err) {
		return apperr.Conflict("Genre is already attached to series")
	}
	return dberr.Wrap(err, "attach_genre")
}
