package lesson

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heartmarshall/skillquest-backend/internal/domain"
)

type mockLessonRepo struct {
	GetByIDFunc func(ctx context.Context, id string) (*domain.Lesson, error)
	ListFunc    func(ctx context.Context, filter domain.LessonFilter) ([]domain.Lesson, error)
}

func (m *mockLessonRepo) GetByID(ctx context.Context, id string) (*domain.Lesson, error) {
	return m.GetByIDFunc(ctx, id)
}

func (m *mockLessonRepo) List(ctx context.Context, filter domain.LessonFilter) ([]domain.Lesson, error) {
	return m.ListFunc(ctx, filter)
}

func TestService_List_NormalizesFilter(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		in        domain.LessonFilter
		wantLimit int
		wantTags  []string
	}{
		{"defaults", domain.LessonFilter{}, 50, []string{}},
		{"negative limit", domain.LessonFilter{Limit: -3}, 50, []string{}},
		{"in range", domain.LessonFilter{Limit: 7}, 7, []string{}},
		{"lower bound", domain.LessonFilter{Limit: 1}, 1, []string{}},
		{"above max", domain.LessonFilter{Limit: 1000}, 100, []string{}},
		{"blank tags dropped", domain.LessonFilter{SkillTags: []string{" go ", "", "  "}}, 50, []string{"go"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var got domain.LessonFilter
			repo := &mockLessonRepo{ListFunc: func(_ context.Context, f domain.LessonFilter) ([]domain.Lesson, error) {
				got = f
				return []domain.Lesson{}, nil
			}}

			_, err := NewService(slogDiscard(), repo).List(context.Background(), tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.wantLimit, got.Limit)
			assert.Equal(t, tt.wantTags, got.SkillTags)
		})
	}
}

func TestService_Get(t *testing.T) {
	t.Parallel()

	repo := &mockLessonRepo{GetByIDFunc: func(_ context.Context, id string) (*domain.Lesson, error) {
		if id == "go-level-1" {
			return &domain.Lesson{ID: id, Title: "Basics"}, nil
		}
		return nil, domain.ErrNotFound
	}}
	svc := NewService(slogDiscard(), repo)

	l, err := svc.Get(context.Background(), "go-level-1")
	require.NoError(t, err)
	assert.Equal(t, "Basics", l.Title)

	_, err = svc.Get(context.Background(), "missing")
	require.ErrorIs(t, err, domain.ErrNotFound)

	_, err = svc.Get(context.Background(), "")
	require.ErrorIs(t, err, domain.ErrValidation)
}
