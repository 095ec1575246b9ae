package translation

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heartmarshall/skillquest-backend/internal/domain"
)

// ---------------------------------------------------------------------------
// Manual mocks (moq-style with func fields)
// ---------------------------------------------------------------------------

type mockTranslator struct {
	TranslateFunc func(ctx context.Context, q, source, target string) (string, error)
	calls         atomic.Int32
}

func (m *mockTranslator) Translate(ctx context.Context, q, source, target string) (string, error) {
	m.calls.Add(1)
	return m.TranslateFunc(ctx, q, source, target)
}

type mockCache struct {
	GetFunc func(ctx context.Context, source, target, q string) (string, bool, error)
	SetFunc func(ctx context.Context, source, target, q, translated string) error
}

func (m *mockCache) Get(ctx context.Context, source, target, q string) (string, bool, error) {
	return m.GetFunc(ctx, source, target, q)
}

func (m *mockCache) Set(ctx context.Context, source, target, q, translated string) error {
	return m.SetFunc(ctx, source, target, q, translated)
}

type mockLessonRepo struct {
	GetByIDFunc func(ctx context.Context, id string) (*domain.Lesson, error)
}

func (m *mockLessonRepo) GetByID(ctx context.Context, id string) (*domain.Lesson, error) {
	return m.GetByIDFunc(ctx, id)
}

type mockTranslationRepo struct {
	GetFunc  func(ctx context.Context, lessonID, lang string) (*domain.LessonTranslation, error)
	SaveFunc func(ctx context.Context, tr domain.LessonTranslation) error
}

func (m *mockTranslationRepo) Get(ctx context.Context, lessonID, lang string) (*domain.LessonTranslation, error) {
	return m.GetFunc(ctx, lessonID, lang)
}

func (m *mockTranslationRepo) Save(ctx context.Context, tr domain.LessonTranslation) error {
	return m.SaveFunc(ctx, tr)
}

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

var spanish = map[string]string{
	"Basics":                  "Fundamentos",
	"Start with fundamentals": "Empieza por lo básico",
}

func dictionaryTranslator() *mockTranslator {
	return &mockTranslator{TranslateFunc: func(_ context.Context, q, _, _ string) (string, error) {
		return spanish[q], nil
	}}
}

func basics() *domain.Lesson {
	return &domain.Lesson{ID: "go-level-1", Title: "Basics", EnglishContent: "Start with fundamentals"}
}

func lessonRepo() *mockLessonRepo {
	return &mockLessonRepo{GetByIDFunc: func(_ context.Context, id string) (*domain.Lesson, error) {
		if id == "go-level-1" {
			return basics(), nil
		}
		return nil, domain.ErrNotFound
	}}
}

func emptyStore() *mockTranslationRepo {
	var mu sync.Mutex
	saved := map[string]domain.LessonTranslation{}
	return &mockTranslationRepo{
		GetFunc: func(_ context.Context, lessonID, lang string) (*domain.LessonTranslation, error) {
			mu.Lock()
			defer mu.Unlock()
			tr, ok := saved[lessonID+"/"+lang]
			if !ok {
				return nil, domain.ErrNotFound
			}
			tr.Cached = true
			return &tr, nil
		},
		SaveFunc: func(_ context.Context, tr domain.LessonTranslation) error {
			mu.Lock()
			defer mu.Unlock()
			saved[tr.LessonID+"/"+tr.Lang] = tr
			return nil
		},
	}
}

// ---------------------------------------------------------------------------
// TranslateText
// ---------------------------------------------------------------------------

func TestService_TranslateText_MissingFields(t *testing.T) {
	t.Parallel()

	svc := NewService(discardLogger(), dictionaryTranslator(), nil, lessonRepo(), emptyStore())

	_, err := svc.TranslateText(context.Background(), "", "en", "es")
	require.ErrorIs(t, err, domain.ErrValidation)

	_, err = svc.TranslateText(context.Background(), "Basics", "en", "")
	require.ErrorIs(t, err, domain.ErrValidation)
}

func TestService_TranslateText_ReturnsInputWithoutProviderSuccess(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		target    string
		translate func(ctx context.Context, q, source, target string) (string, error)
		wantCalls int32
	}{
		{"english target", "en", nil, 0},
		{"provider error", "es", func(context.Context, string, string, string) (string, error) {
			return "", errors.New("timeout")
		}, 1},
		{"empty answer", "es", func(context.Context, string, string, string) (string, error) {
			return "", nil
		}, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			tr := &mockTranslator{TranslateFunc: tt.translate}
			svc := NewService(discardLogger(), tr, nil, lessonRepo(), emptyStore())

			got, err := svc.TranslateText(context.Background(), "Hello", "", tt.target)
			require.NoError(t, err)
			assert.Equal(t, "Hello", got)
			assert.Equal(t, tt.wantCalls, tr.calls.Load())
		})
	}
}

func TestService_TranslateText_DefaultsSourceToEnglish(t *testing.T) {
	t.Parallel()

	tr := &mockTranslator{TranslateFunc: func(_ context.Context, q, source, target string) (string, error) {
		assert.Equal(t, "en", source)
		assert.Equal(t, "de", target)
		return "Hallo", nil
	}}
	svc := NewService(discardLogger(), tr, nil, lessonRepo(), emptyStore())

	got, err := svc.TranslateText(context.Background(), "Hello", "", "de")
	require.NoError(t, err)
	assert.Equal(t, "Hallo", got)
}

func TestService_TranslateText_Cache(t *testing.T) {
	t.Parallel()

	store := map[string]string{}
	cache := &mockCache{
		GetFunc: func(_ context.Context, source, target, q string) (string, bool, error) {
			v, ok := store[source+target+q]
			return v, ok, nil
		},
		SetFunc: func(_ context.Context, source, target, q, translated string) error {
			store[source+target+q] = translated
			return nil
		},
	}
	tr := dictionaryTranslator()
	svc := NewService(discardLogger(), tr, cache, lessonRepo(), emptyStore())

	for range 3 {
		got, err := svc.TranslateText(context.Background(), "Basics", "en", "es")
		require.NoError(t, err)
		assert.Equal(t, "Fundamentos", got)
	}
	assert.EqualValues(t, 1, tr.calls.Load())
}

func TestService_TranslateText_CacheErrorsAreIgnored(t *testing.T) {
	t.Parallel()

	cache := &mockCache{
		GetFunc: func(context.Context, string, string, string) (string, bool, error) {
			return "", false, errors.New("redis down")
		},
		SetFunc: func(context.Context, string, string, string, string) error {
			return errors.New("redis down")
		},
	}
	svc := NewService(discardLogger(), dictionaryTranslator(), cache, lessonRepo(), emptyStore())

	got, err := svc.TranslateText(context.Background(), "Basics", "en", "es")
	require.NoError(t, err)
	assert.Equal(t, "Fundamentos", got)
}

// ---------------------------------------------------------------------------
// TranslateLesson
// ---------------------------------------------------------------------------

func TestService_TranslateLesson_MissingFields(t *testing.T) {
	t.Parallel()

	svc := NewService(discardLogger(), dictionaryTranslator(), nil, lessonRepo(), emptyStore())

	_, err := svc.TranslateLesson(context.Background(), "", "es")
	require.ErrorIs(t, err, domain.ErrValidation)
	_, err = svc.TranslateLesson(context.Background(), "go-level-1", "")
	require.ErrorIs(t, err, domain.ErrValidation)
}

func TestService_TranslateLesson_English_NoProviderCall(t *testing.T) {
	t.Parallel()

	tr := dictionaryTranslator()
	store := &mockTranslationRepo{
		GetFunc: func(context.Context, string, string) (*domain.LessonTranslation, error) {
			t.Fatal("stored translations are not consulted for English")
			return nil, nil
		},
	}
	svc := NewService(discardLogger(), tr, nil, lessonRepo(), store)

	got, err := svc.TranslateLesson(context.Background(), "go-level-1", "en")
	require.NoError(t, err)
	assert.Equal(t, "Basics", got.Title)
	assert.Equal(t, "Start with fundamentals", got.Content)
	assert.False(t, got.Cached)
	assert.Zero(t, tr.calls.Load())
}

func TestService_TranslateLesson_TranslatesThenServesCached(t *testing.T) {
	t.Parallel()

	tr := dictionaryTranslator()
	svc := NewService(discardLogger(), tr, nil, lessonRepo(), emptyStore())

	first, err := svc.TranslateLesson(context.Background(), "go-level-1", "es")
	require.NoError(t, err)
	assert.Equal(t, "Fundamentos", first.Title)
	assert.Equal(t, "Empieza por lo básico", first.Content)
	assert.False(t, first.Cached)
	assert.EqualValues(t, 2, tr.calls.Load())

	second, err := svc.TranslateLesson(context.Background(), "go-level-1", "es")
	require.NoError(t, err)
	assert.Equal(t, first.Title, second.Title)
	assert.Equal(t, first.Content, second.Content)
	assert.True(t, second.Cached)
	assert.EqualValues(t, 2, tr.calls.Load(), "cache hit performs no provider call")
}

func TestService_TranslateLesson_NotFound(t *testing.T) {
	t.Parallel()

	svc := NewService(discardLogger(), dictionaryTranslator(), nil, lessonRepo(), emptyStore())

	_, err := svc.TranslateLesson(context.Background(), "nope", "es")
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestService_TranslateLesson_ProviderFailure(t *testing.T) {
	t.Parallel()

	tr := &mockTranslator{TranslateFunc: func(_ context.Context, q, _, _ string) (string, error) {
		if q == "Basics" {
			return "", errors.New("503")
		}
		return "ok", nil
	}}
	saved := false
	store := emptyStore()
	store.SaveFunc = func(context.Context, domain.LessonTranslation) error {
		saved = true
		return nil
	}
	svc := NewService(discardLogger(), tr, nil, lessonRepo(), store)

	_, err := svc.TranslateLesson(context.Background(), "go-level-1", "es")
	require.ErrorIs(t, err, ErrTranslationFailed)
	assert.False(t, saved)
}

func TestService_TranslateLesson_EmptyAnswerKeepsOriginal_NotStored(t *testing.T) {
	t.Parallel()

	tr := &mockTranslator{TranslateFunc: func(context.Context, string, string, string) (string, error) {
		return "", nil
	}}
	saved := false
	store := emptyStore()
	store.SaveFunc = func(context.Context, domain.LessonTranslation) error {
		saved = true
		return nil
	}
	svc := NewService(discardLogger(), tr, nil, lessonRepo(), store)

	got, err := svc.TranslateLesson(context.Background(), "go-level-1", "es")
	require.NoError(t, err)
	assert.Equal(t, "Basics", got.Title)
	assert.Equal(t, "Start with fundamentals", got.Content)
	assert.False(t, saved)
}

func TestService_TranslateLesson_SaveErrorIsNotFatal(t *testing.T) {
	t.Parallel()

	store := emptyStore()
	store.SaveFunc = func(context.Context, domain.LessonTranslation) error {
		return errors.New("disk full")
	}
	svc := NewService(discardLogger(), dictionaryTranslator(), nil, lessonRepo(), store)

	got, err := svc.TranslateLesson(context.Background(), "go-level-1", "es")
	require.NoError(t, err)
	assert.Equal(t, "Fundamentos", got.Title)
}
