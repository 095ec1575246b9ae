package testhelper

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/heartmarshall/skillquest-backend/internal/domain"
)

// UniqueSlug returns a slug that does not collide with other tests sharing the database.
func UniqueSlug(prefix string) string {
	return prefix + "-" + uuid.New().String()[:8]
}

// SeedRoadmap inserts a roadmap with levelCount active levels numbered 1..levelCount.
func SeedRoadmap(t *testing.T, pool *pgxpool.Pool, slug string, levelCount int) domain.Roadmap {
	t.Helper()
	ctx := context.Background()

	r := domain.Roadmap{Slug: slug, Title: slug + " Roadmap"}
	err := pool.QueryRow(ctx,
		`INSERT INTO roadmaps (slug, title) VALUES ($1, $2) RETURNING id, created_at`,
		r.Slug, r.Title,
	).Scan(&r.ID, &r.CreatedAt)
	if err != nil {
		t.Fatalf("testhelper: SeedRoadmap insert roadmap: %v", err)
	}

	for i := 1; i <= levelCount; i++ {
		SeedLevel(t, pool, r.ID, i, true)
	}

	return r
}

// SeedLevel inserts one level of a roadmap.
func SeedLevel(t *testing.T, pool *pgxpool.Pool, roadmapID uuid.UUID, levelNo int, active bool) {
	t.Helper()

	_, err := pool.Exec(context.Background(),
		`INSERT INTO levels (roadmap_id, level_no, title, short_description, theory_status, is_active)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		roadmapID, levelNo, fmt.Sprintf("Level %d", levelNo), fmt.Sprintf("Description %d", levelNo),
		domain.TheoryStatusPending, active,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedLevel insert level %d: %v", levelNo, err)
	}
}

// SeedLesson inserts a lesson row.
func SeedLesson(t *testing.T, pool *pgxpool.Pool, l domain.Lesson) domain.Lesson {
	t.Helper()

	err := pool.QueryRow(context.Background(),
		`INSERT INTO lessons (id, title, english_content, level, category, skill_tag, xp_reward)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 RETURNING created_at, updated_at`,
		l.ID, l.Title, l.EnglishContent, l.Level, l.Category, l.SkillTag, l.XPReward,
	).Scan(&l.CreatedAt, &l.UpdatedAt)
	if err != nil {
		t.Fatalf("testhelper: SeedLesson insert %s: %v", l.ID, err)
	}

	return l
}
