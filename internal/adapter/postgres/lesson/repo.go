// Package lesson implements the lesson content table using PostgreSQL.
// Lessons are projected from roadmap levels and read by lesson browsing.
package lesson

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	postgres "github.com/heartmarshall/skillquest-backend/internal/adapter/postgres"
	"github.com/heartmarshall/skillquest-backend/internal/domain"
)

const table = "lessons"

var columns = []string{
	"id", "title", "english_content", "level", "category", "skill_tag", "xp_reward", "created_at", "updated_at",
}

var insertColumns = []string{
	"id", "title", "english_content", "level", "category", "skill_tag", "xp_reward",
}

// Re-projection overwrites the fields derived from the level; category and
// XP reward keep whatever value the row already has.
const upsertSuffix = `ON CONFLICT (id) DO UPDATE SET
    title = EXCLUDED.title,
    english_content = EXCLUDED.english_content,
    level = EXCLUDED.level,
    skill_tag = EXCLUDED.skill_tag,
    updated_at = now()`

// Repo provides lesson persistence backed by PostgreSQL.
type Repo struct {
	db postgres.Querier
}

// New creates a new lesson repository.
func New(db postgres.Querier) *Repo {
	return &Repo{db: db}
}

// Upsert inserts or overwrites lessons by id in a single statement.
// Lesson ids must be unique within one call.
func (r *Repo) Upsert(ctx context.Context, lessons []domain.Lesson) error {
	if len(lessons) == 0 {
		return nil
	}

	insert := postgres.Builder().
		Insert(table).
		Columns(insertColumns...).
		Suffix(upsertSuffix)
	for _, l := range lessons {
		insert = insert.Values(l.ID, l.Title, l.EnglishContent, l.Level, l.Category, l.SkillTag, l.XPReward)
	}

	query, args, err := insert.ToSql()
	if err != nil {
		return fmt.Errorf("build lesson upsert: %w", err)
	}

	if _, err := postgres.QuerierFromCtx(ctx, r.db).Exec(ctx, query, args...); err != nil {
		return postgres.MapError(err, "lessons", lessons[0].SkillTag)
	}

	return nil
}

// GetByID returns a lesson by id.
// Returns domain.ErrNotFound if it does not exist.
func (r *Repo) GetByID(ctx context.Context, id string) (*domain.Lesson, error) {
	query, args, err := postgres.Builder().
		Select(columns...).
		From(table).
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build lesson select: %w", err)
	}

	var l domain.Lesson
	if err := pgxscan.Get(ctx, postgres.QuerierFromCtx(ctx, r.db), &l, query, args...); err != nil {
		if pgxscan.NotFound(err) {
			return nil, fmt.Errorf("lesson %s: %w", id, domain.ErrNotFound)
		}
		return nil, postgres.MapError(err, "lesson", id)
	}

	return &l, nil
}

// List returns lessons matching the filter ordered by level, then id.
// Returns an empty slice (not nil) when nothing matches.
func (r *Repo) List(ctx context.Context, filter domain.LessonFilter) ([]domain.Lesson, error) {
	sel := postgres.Builder().
		Select(columns...).
		From(table).
		OrderBy("level ASC", "id ASC")

	if len(filter.SkillTags) > 0 {
		sel = sel.Where(sq.Eq{"skill_tag": filter.SkillTags})
	}
	if filter.Category != "" {
		sel = sel.Where(sq.Eq{"category": filter.Category})
	}
	if filter.Limit > 0 {
		sel = sel.Limit(uint64(filter.Limit))
	}

	query, args, err := sel.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build lesson list: %w", err)
	}

	lessons := []domain.Lesson{}
	if err := pgxscan.Select(ctx, postgres.QuerierFromCtx(ctx, r.db), &lessons, query, args...); err != nil {
		return nil, fmt.Errorf("list lessons: %w", err)
	}

	return lessons, nil
}
