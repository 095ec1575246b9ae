// Package translation stores machine translations of lessons using PostgreSQL.
// A lesson has at most one stored translation per target language.
package translation

import (
	"context"
	"fmt"

	"github.com/georgysavva/scany/v2/pgxscan"

	postgres "github.com/heartmarshall/skillquest-backend/internal/adapter/postgres"
	"github.com/heartmarshall/skillquest-backend/internal/domain"
)

// Repo provides lesson translation persistence backed by PostgreSQL.
type Repo struct {
	db postgres.Querier
}

// New creates a new lesson translation repository.
func New(db postgres.Querier) *Repo {
	return &Repo{db: db}
}

const getSQL = `
SELECT lesson_id, lang, translated_title, translated_text
FROM lesson_translations
WHERE lesson_id = $1 AND lang = $2`

// First writer wins; a concurrent translation of the same lesson is discarded.
const saveSQL = `
INSERT INTO lesson_translations (lesson_id, lang, translated_title, translated_text)
VALUES ($1, $2, $3, $4)
ON CONFLICT (lesson_id, lang) DO NOTHING`

// Get returns the stored translation of a lesson into lang.
// Returns domain.ErrNotFound if none is stored.
func (r *Repo) Get(ctx context.Context, lessonID, lang string) (*domain.LessonTranslation, error) {
	var tr domain.LessonTranslation
	if err := pgxscan.Get(ctx, postgres.QuerierFromCtx(ctx, r.db), &tr, getSQL, lessonID, lang); err != nil {
		if pgxscan.NotFound(err) {
			return nil, fmt.Errorf("lesson translation %s/%s: %w", lessonID, lang, domain.ErrNotFound)
		}
		return nil, postgres.MapError(err, "lesson translation", lessonID)
	}

	tr.Cached = true
	return &tr, nil
}

// Save stores a translation. Saving over an existing one is a no-op.
// Returns domain.ErrNotFound if the lesson does not exist.
func (r *Repo) Save(ctx context.Context, tr domain.LessonTranslation) error {
	_, err := postgres.QuerierFromCtx(ctx, r.db).Exec(ctx, saveSQL, tr.LessonID, tr.Lang, tr.Title, tr.Content)
	if err != nil {
		return postgres.MapError(err, "lesson translation", tr.LessonID)
	}
	return nil
}
