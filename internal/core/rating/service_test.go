package rating_test

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/tvcatalog/internal/core/rating"
	"github.com/taibuivan/tvcatalog/internal/platform/apperr"
	"github.com/taibuivan/tvcatalog/internal/platform/ctxutil"
	"github.com/taibuivan/tvcatalog/internal/platform/form"
	"github.com/taibuivan/tvcatalog/internal/platform/sec"
)

// # Fakes

type memoryRepository struct {
	facts  map[int]*rating.Fact
	nextID int
}

func newMemoryRepository() *memoryRepository {
	return &memoryRepository{facts: map[int]*rating.Fact{}}
}

func (repository *memoryRepository) Find(_ context.Context, userID, seriesID int) (*rating.Fact, error) {
	for _, fact := range repository.facts {
		if fact.UserID == userID && fact.SeriesID == seriesID {
			copied := *fact
			return &copied, nil
		}
	}
	return nil, nil
}

func (repository *memoryRepository) Insert(_ context.Context, userID, seriesID int, facet rating.Facet, value any) (*rating.Fact, error) {
	repository.nextID++
	fact := &rating.Fact{ID: repository.nextID, UserID: userID, SeriesID: seriesID}
	assign(fact, facet, value)
	repository.facts[fact.ID] = fact
	copied := *fact
	return &copied, nil
}

func (repository *memoryRepository) Set(_ context.Context, factID int, facet rating.Facet, value any) (*rating.Fact, error) {
	fact, ok := repository.facts[factID]
	if !ok {
		return nil, apperr.NotFound("Resource")
	}
	assign(fact, facet, value)
	copied := *fact
	return &copied, nil
}

func (repository *memoryRepository) Clear(_ context.Context, factID int, facet rating.Facet) (*rating.Fact, error) {
	fact, ok := repository.facts[factID]
	if !ok {
		return nil, apperr.NotFound("Resource")
	}
	assign(fact, facet, nil)
	copied := *fact
	return &copied, nil
}

func (repository *memoryRepository) Delete(_ context.Context, factID int) error {
	if _, ok := repository.facts[factID]; !ok {
		return apperr.NotFound("Resource")
	}
	delete(repository.facts, factID)
	return nil
}

func (repository *memoryRepository) Summary(_ context.Context, seriesID int) (rating.Summary, error) {
	var total, count int
	for _, fact := range repository.facts {
		if fact.SeriesID == seriesID && fact.Rating != nil {
			total += *fact.Rating
			count++
		}
	}
	if count == 0 {
		return rating.Summary{}, nil
	}
	average := float64(total) / float64(count)
	return rating.Summary{Average: &average, Count: count}, nil
}

func assign(fact *rating.Fact, facet rating.Facet, value any) {
	switch facet {
	case rating.FacetRating:
		if value == nil {
			fact.Rating = nil
			return
		}
		n := value.(int)
		fact.Rating = &n
	case rating.FacetState:
		if value == nil {
			fact.State = nil
			return
		}
		s := value.(string)
		fact.State = &s
	}
}

type knownSeries map[int]bool

func (series knownSeries) Exists(_ context.Context, id int) (bool, error) {
	return series[id], nil
}

const (
	userID   = 3
	seriesID = 1
)

func newService(repository rating.Repository) *rating.Service {
	return rating.NewService(repository, knownSeries{seriesID: true}, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func body(key string, value any) *form.Values {
	return form.New(map[string]any{key: value})
}

// # Validation

func TestValidate(t *testing.T) {
	tests := []struct {
		name  string
		facet rating.Facet
		input map[string]any
		want  any
	}{
		{"rating_number", rating.FacetRating, map[string]any{"rating": 4}, 4},
		{"rating_string", rating.FacetRating, map[string]any{"rating": "0"}, 0},
		{"rating_too_high", rating.FacetRating, map[string]any{"rating": 6}, nil},
		{"rating_negative", rating.FacetRating, map[string]any{"rating": -1}, nil},
		{"rating_fraction", rating.FacetRating, map[string]any{"rating": "2.5"}, nil},
		{"rating_missing", rating.FacetRating, map[string]any{}, nil},
		{"state_label", rating.FacetState, map[string]any{"state": "Hef horft"}, "Hef horft"},
		{"state_unknown", rating.FacetState, map[string]any{"state": "Watching"}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			failures, value := rating.Validate(tt.facet, form.New(tt.input).Get(tt.facet.Field()))

			assert.Equal(t, tt.want, value)
			if tt.want == nil {
				require.Len(t, failures, 1)
				assert.Equal(t, tt.facet.Field(), failures[0].Field)
			} else {
				assert.Empty(t, failures)
			}
		})
	}
}

func TestFact_HasOnMissingRow(t *testing.T) {
	var missing *rating.Fact
	assert.False(t, missing.Has(rating.FacetRating))
	assert.False(t, missing.Has(rating.FacetState))

	score := 4
	fact := &rating.Fact{Rating: &score}
	assert.True(t, fact.Has(rating.FacetRating))
	assert.False(t, fact.Has(rating.FacetState))
}

func TestStateMessage_ListsLabels(t *testing.T) {
	assert.Equal(t, "State must be one of Langar að horfa, Er að horfa, Hef horft", rating.StateMessage())
	assert.Equal(t, "Rating must be an integer, one of 0, 1, 2, 3, 4, 5", rating.RatingMessage())
}

// # Dispatcher

/*
TestCreate_StateMachine walks a facet from absent to present and rejects a
second submission.
*/
func TestCreate_StateMachine(t *testing.T) {
	repository := newMemoryRepository()
	service := newService(repository)
	ctx := context.Background()

	fact, err := service.Create(ctx, userID, seriesID, rating.FacetRating, body("rating", 4))
	require.NoError(t, err)
	require.NotNil(t, fact.Rating)
	assert.Equal(t, 4, *fact.Rating)
	assert.Nil(t, fact.State)

	_, err = service.Create(ctx, userID, seriesID, rating.FacetRating, body("rating", 2))
	assert.True(t, apperr.HasCode(err, apperr.CodeConflict))
	assert.Equal(t, "Rating already exists", apperr.As(err).Message)

	// The state fills the existing row instead of inserting a second one.
	fact, err = service.Create(ctx, userID, seriesID, rating.FacetState, body("state", "Er að horfa"))
	require.NoError(t, err)
	assert.Equal(t, 1, fact.ID)
	assert.Equal(t, 4, *fact.Rating)
	assert.Equal(t, "Er að horfa", *fact.State)
	assert.Len(t, repository.facts, 1)
}

func TestCreate_UnknownSeries(t *testing.T) {
	_, err := newService(newMemoryRepository()).Create(context.Background(), userID, 99, rating.FacetRating, body("rating", 1))
	assert.True(t, apperr.IsNotFound(err))
}

func TestCreate_InvalidValue(t *testing.T) {
	repository := newMemoryRepository()
	_, err := newService(repository).Create(context.Background(), userID, seriesID, rating.FacetState, body("state", "nope"))

	require.True(t, apperr.HasCode(err, apperr.CodeValidation))
	assert.Equal(t, rating.StateMessage(), apperr.As(err).Details[0].Message)
	assert.Empty(t, repository.facts)
}

func TestUpdate(t *testing.T) {
	repository := newMemoryRepository()
	service := newService(repository)
	ctx := context.Background()

	_, err := service.Update(ctx, userID, seriesID, rating.FacetRating, body("rating", 3))
	assert.True(t, apperr.IsNotFound(err))

	_, err = service.Create(ctx, userID, seriesID, rating.FacetRating, body("rating", 1))
	require.NoError(t, err)

	// Another series rated by the same user must stay untouched.
	other, err := repository.Insert(ctx, userID, 2, rating.FacetRating, 5)
	require.NoError(t, err)

	fact, err := service.Update(ctx, userID, seriesID, rating.FacetRating, body("rating", 3))
	require.NoError(t, err)
	assert.Equal(t, 3, *fact.Rating)
	assert.Equal(t, 5, *repository.facts[other.ID].Rating)

	_, err = service.Update(ctx, userID, seriesID, rating.FacetRating, form.New(nil))
	assert.True(t, apperr.HasCode(err, apperr.CodeNothingToPatch))

	_, err = service.Update(ctx, userID, seriesID, rating.FacetRating, body("rating", 9))
	assert.True(t, apperr.HasCode(err, apperr.CodeValidation))
}

func TestDelete_KeepsRowWhileOtherFacetIsSet(t *testing.T) {
	repository := newMemoryRepository()
	service := newService(repository)
	ctx := context.Background()

	_, err := service.Create(ctx, userID, seriesID, rating.FacetRating, body("rating", 5))
	require.NoError(t, err)
	_, err = service.Create(ctx, userID, seriesID, rating.FacetState, body("state", "Hef horft"))
	require.NoError(t, err)

	require.NoError(t, service.Delete(ctx, userID, seriesID, rating.FacetRating))

	fact, err := service.Get(ctx, userID, seriesID, rating.FacetState)
	require.NoError(t, err)
	assert.Nil(t, fact.Rating)

	_, err = service.Get(ctx, userID, seriesID, rating.FacetRating)
	assert.True(t, apperr.IsNotFound(err))
}

func TestDelete_RemovesRowWithLastFacet(t *testing.T) {
	repository := newMemoryRepository()
	service := newService(repository)
	ctx := context.Background()

	_, err := service.Create(ctx, userID, seriesID, rating.FacetRating, body("rating", 2))
	require.NoError(t, err)

	require.NoError(t, service.Delete(ctx, userID, seriesID, rating.FacetRating))
	assert.Empty(t, repository.facts)

	err = service.Delete(ctx, userID, seriesID, rating.FacetRating)
	assert.True(t, apperr.IsNotFound(err))
}

func TestSummary(t *testing.T) {
	repository := newMemoryRepository()
	ctx := context.Background()
	_, _ = repository.Insert(ctx, 1, seriesID, rating.FacetRating, 2)
	_, _ = repository.Insert(ctx, 2, seriesID, rating.FacetRating, 5)

	summary, err := newService(repository).Summary(ctx, seriesID)
	require.NoError(t, err)
	assert.Equal(t, 2, summary.Count)
	assert.InDelta(t, 3.5, *summary.Average, 0.0001)
}

// # HTTP

func newRouter(service *rating.Service) http.Handler {
	router := chi.NewRouter()
	router.Route("/tv/{id}/rate", rating.NewHandler(service, rating.FacetRating).RegisterRoutes)
	return router
}

func serve(router http.Handler, method, target, payload string, authenticated bool) *httptest.ResponseRecorder {
	request := httptest.NewRequest(method, target, strings.NewReader(payload))
	request.Header.Set("Content-Type", "application/json")
	if authenticated {
		request = request.WithContext(ctxutil.WithAuthUser(request.Context(), &sec.AuthClaims{UserID: userID}))
	}
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, request)
	return recorder
}

func TestHandler_Lifecycle(t *testing.T) {
	router := newRouter(newService(newMemoryRepository()))

	assert.Equal(t, http.StatusUnauthorized, serve(router, http.MethodPost, "/tv/1/rate", `{"rating":4}`, false).Code)

	recorder := serve(router, http.MethodPost, "/tv/1/rate", `{"rating":4}`, true)
	assert.Equal(t, http.StatusCreated, recorder.Code)
	assert.JSONEq(t, `{"id":1,"user":3,"serie":1,"rating":4,"state":null}`, recorder.Body.String())

	assert.Equal(t, http.StatusBadRequest, serve(router, http.MethodPost, "/tv/1/rate", `{"rating":4}`, true).Code)
	assert.Equal(t, http.StatusOK, serve(router, http.MethodPatch, "/tv/1/rate", `{"rating":1}`, true).Code)
	assert.Equal(t, http.StatusOK, serve(router, http.MethodGet, "/tv/1/rate", "", true).Code)
	assert.Equal(t, http.StatusNoContent, serve(router, http.MethodDelete, "/tv/1/rate", "", true).Code)
	assert.Equal(t, http.StatusNotFound, serve(router, http.MethodGet, "/tv/1/rate", "", true).Code)
}

func TestHandler_RejectsNonIntegerID(t *testing.T) {
	recorder := serve(newRouter(newService(newMemoryRepository())), http.MethodDelete, "/tv/abc/rate", "", true)

	assert.Equal(t, http.StatusBadRequest, recorder.Code)
	assert.Contains(t, recorder.Body.String(), "id must be an integer")
}
