// Package roadmap implements the roadmap store using PostgreSQL.
// A roadmap owns its levels; both are keyed by the roadmap slug.
package roadmap

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	postgres "github.com/heartmarshall/skillquest-backend/internal/adapter/postgres"
	"github.com/heartmarshall/skillquest-backend/internal/domain"
)

// Repo provides roadmap persistence backed by PostgreSQL.
type Repo struct {
	db postgres.Querier
}

// New creates a new roadmap repository.
func New(db postgres.Querier) *Repo {
	return &Repo{db: db}
}

const findBySlugSQL = `
SELECT id, slug, title, created_at
FROM roadmaps
WHERE slug = $1`

const activeLevelsSQL = `
SELECT id, roadmap_id, level_no, title, short_description, theory_status, is_active, created_at
FROM levels
WHERE roadmap_id = $1 AND is_active
ORDER BY level_no ASC
LIMIT $2`

const createSQL = `
INSERT INTO roadmaps (slug, title)
VALUES ($1, $2)
RETURNING id, slug, title, created_at`

const addLevelSQL = `
INSERT INTO levels (roadmap_id, level_no, title, short_description, theory_status, is_active)
VALUES ($1, $2, $3, $4, $5, TRUE)`

const listSlugsSQL = `
SELECT slug
FROM roadmaps
ORDER BY slug`

// FindBySlug returns the roadmap and its active levels ordered by level_no,
// at most domain.MaxLevels of them.
// Returns domain.ErrNotFound if no roadmap has this slug.
func (r *Repo) FindBySlug(ctx context.Context, slug string) (*domain.Roadmap, []domain.Level, error) {
	q := postgres.QuerierFromCtx(ctx, r.db)

	var rm domain.Roadmap
	err := q.QueryRow(ctx, findBySlugSQL, slug).Scan(&rm.ID, &rm.Slug, &rm.Title, &rm.CreatedAt)
	if err != nil {
		return nil, nil, postgres.MapError(err, "roadmap", slug)
	}

	rows, err := q.Query(ctx, activeLevelsSQL, rm.ID, domain.MaxLevels)
	if err != nil {
		return nil, nil, fmt.Errorf("query levels of roadmap %s: %w", slug, err)
	}
	defer rows.Close()

	levels, err := scanLevels(rows)
	if err != nil {
		return nil, nil, fmt.Errorf("scan levels of roadmap %s: %w", slug, err)
	}

	return &rm, levels, nil
}

// Create inserts a roadmap and returns it with its store-assigned identity.
// Returns domain.ErrAlreadyExists if a roadmap with this slug exists.
func (r *Repo) Create(ctx context.Context, slug, title string) (*domain.Roadmap, error) {
	q := postgres.QuerierFromCtx(ctx, r.db)

	var rm domain.Roadmap
	err := q.QueryRow(ctx, createSQL, slug, title).Scan(&rm.ID, &rm.Slug, &rm.Title, &rm.CreatedAt)
	if err != nil {
		return nil, postgres.MapError(err, "roadmap", slug)
	}

	return &rm, nil
}

// AddLevel inserts one active level with a pending theory status.
func (r *Repo) AddLevel(ctx context.Context, roadmapID uuid.UUID, level domain.LevelDraft) error {
	q := postgres.QuerierFromCtx(ctx, r.db)

	_, err := q.Exec(ctx, addLevelSQL,
		roadmapID, level.LevelNo, level.Title, level.ShortDescription, domain.TheoryStatusPending,
	)
	if err != nil {
		return postgres.MapError(err, "level", fmt.Sprintf("%s/%d", roadmapID, level.LevelNo))
	}

	return nil
}

// ListSlugs returns the slugs of all stored roadmaps in lexical order.
func (r *Repo) ListSlugs(ctx context.Context) ([]string, error) {
	rows, err := postgres.QuerierFromCtx(ctx, r.db).Query(ctx, listSlugsSQL)
	if err != nil {
		return nil, fmt.Errorf("list roadmap slugs: %w", err)
	}

	slugs, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, fmt.Errorf("list roadmap slugs: %w", err)
	}

	return slugs, nil
}

func scanLevels(rows pgx.Rows) ([]domain.Level, error) {
	levels := make([]domain.Level, 0, domain.MaxLevels)
	for rows.Next() {
		var lv domain.Level
		if err := rows.Scan(
			&lv.ID, &lv.RoadmapID, &lv.LevelNo, &lv.Title, &lv.ShortDescription,
			&lv.TheoryStatus, &lv.IsActive, &lv.CreatedAt,
		); err != nil {
			return nil, err
		}
		levels = append(levels, lv)
	}
	return levels, rows.Err()
}
