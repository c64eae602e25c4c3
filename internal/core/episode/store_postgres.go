package episode

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
)

type PostgresRepository struct {
	db *pgxpool.Pool
}

func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func selectColumns() string {
	return strings.Join(schema.Episode.Columns(), ", ")
}

func (repository *PostgresRepository) ListBySeason(context context.Context, seasonID int) ([]Episode, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1 ORDER BY %s ASC`,
		selectColumns(), schema.Episode.Table, schema.Episode.SeasonID, schema.Episode.Number,
	)

	rows, err := repository.db.Query(context, query, seasonID)
	if err != nil {
		return nil, dberr.Wrap(err, "list_episodes")
	}

	episodes, err := pgx.CollectRows(rows, pgx.RowToStructByName[Episode])
	if err != nil {
		return nil, dberr.Wrap(err, "scan_episodes")
	}
	return episodes, nil
}

func (repository *PostgresRepository) Get(context context.Context, seriesID, season, number int) (*Episode, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1 AND %s = $2 AND %s = $3`,
		selectColumns(), schema.Episode.Table,
		schema.Episode.SeriesID, schema.Episode.SeasonNumber, schema.Episode.Number,
	)

	rows, err := repository.db.Query(context, query, seriesID, season, number)
	if err != nil {
		return nil, dberr.Wrap(err, "get_episode")
	}

	episode, err := pgx.CollectExactlyOneRow(rows, pgx.RowToAddrOfStructByName[Episode])
	if err != nil {
		return nil, dberr.WrapAs(err, "Episode", "get_episode")
	}
	return episode, nil
}

func (repository *PostgresRepository) FindByNumber(context context.Context, seasonID, number int) (*Episode, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1 AND %s = $2`,
		selectColumns(), schema.Episode.Table, schema.Episode.SeasonID, schema.Episode.Number,
	)

	rows, err := repository.db.Query(context, query, seasonID, number)
	if err != nil {
		return nil, dberr.Wrap(err, "find_episode")
	}

	episode, err := pgx.CollectExactlyOneRow(rows, pgx.RowToAddrOfStructByName[Episode])
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, dberr.Wrap(err, "find_episode")
	}
	return episode, nil
}

func (repository *PostgresRepository) Create(context context.Context, episode *Episode) (*Episode, error) {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING %s
	`,
		schema.Episode.Table,
		schema.Episode.Name, schema.Episode.Number, schema.Episode.AirDate, schema.Episode.Overview,
		schema.Episode.SeasonNumber, schema.Episode.SeriesID, schema.Episode.SeasonID,
		selectColumns(),
	)

	rows, err := repository.db.Query(context, query,
		episode.Name, episode.Number, episode.AirDate, episode.Overview,
		episode.Season, episode.SeriesID, episode.SeasonID,
	)
	if err != nil {
		return nil, dberr.Wrap(err, "create_episode")
	}

	created, err := pgx.CollectExactlyOneRow(rows, pgx.RowToAddrOfStructByName[Episode])
	if dberr.IsUniqueViolation(err) {
		return nil, apperr.Conflict(fmt.Sprintf("Episode %d already exists in season", episode.Number))
	}
	if err != nil {
		return nil, dberr.Wrap(err, "create_episode")
	}
	return created, nil
}

func (repository *PostgresRepository) Delete(context context.Context, id int) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`, schema.Episode.Table, schema.Episode.ID)

	tag, err := repository.db.Exec(context, query, id)
	if err != nil {
		return dberr.Wrap(err, "delete_episode")
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("Episode")
	}
	return nil
}
