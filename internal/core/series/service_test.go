package series_test

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/tvcatalog/internal/core/genre"
	"github.com/taibuivan/tvcatalog/internal/core/rating"
	"github.com/taibuivan/tvcatalog/internal/core/season"
	"github.com/taibuivan/tvcatalog/internal/core/series"
	"github.com/taibuivan/tvcatalog/internal/platform/apperr"
	"github.com/taibuivan/tvcatalog/internal/platform/ctxutil"
	"github.com/taibuivan/tvcatalog/internal/platform/form"
	"github.com/taibuivan/tvcatalog/internal/platform/sec"
	"github.com/taibuivan/tvcatalog/internal/platform/validate"
	"github.com/taibuivan/tvcatalog/pkg/pagination"
)

// # Fakes

type memoryRepository struct {
	rows       []series.Series
	nextID     int
	hasSeasons func(id int) bool
}

func (repository *memoryRepository) ListSeries(_ context.Context, params pagination.Params) (*pagination.Page[series.Series], error) {
	params = params.Normalize()
	start := min(params.Offset, len(repository.rows))
	end := min(start+params.Limit, len(repository.rows))
	return pagination.NewPage(params, repository.rows[start:end]), nil
}

func (repository *memoryRepository) index(id int) int {
	for i, row := range repository.rows {
		if row.ID == id {
			return i
		}
	}
	return -1
}

func (repository *memoryRepository) Get(_ context.Context, id int) (*series.Series, error) {
	if i := repository.index(id); i >= 0 {
		row := repository.rows[i]
		return &row, nil
	}
	return nil, apperr.NotFound("Series")
}

func (repository *memoryRepository) FindByName(_ context.Context, name string) (*series.Series, error) {
	for _, row := range repository.rows {
		if row.Name == name {
			return &row, nil
		}
	}
	return nil, nil
}

func (repository *memoryRepository) Create(_ context.Context, s *series.Series) (*series.Series, error) {
	repository.nextID++
	created := *s
	created.ID = repository.nextID
	repository.rows = append(repository.rows, created)
	return &created, nil
}

func (repository *memoryRepository) Update(_ context.Context, id int, patch series.Patch) (*series.Series, error) {
	i := repository.index(id)
	if i < 0 {
		return nil, apperr.NotFound("Series")
	}

	row := &repository.rows[i]
	touched := false
	if patch.Name != nil {
		row.Name, touched = *patch.Name, true
	}
	if patch.InProduction != nil {
		row.InProduction, touched = *patch.InProduction, true
	}
	if patch.AirDate != nil {
		row.AirDate, touched = patch.AirDate, true
	}
	for _, pair := range []struct {
		target **string
		value  *string
	}{
		{&row.Tagline, patch.Tagline}, {&row.Image, patch.Image}, {&row.Description, patch.Description},
		{&row.Language, patch.Language}, {&row.Network, patch.Network}, {&row.URL, patch.URL},
	} {
		if pair.value != nil {
			*pair.target, touched = pair.value, true
		}
	}
	if !touched {
		return nil, apperr.NothingToPatch()
	}

	updated := *row
	return &updated, nil
}

func (repository *memoryRepository) Exists(_ context.Context, id int) (bool, error) {
	return repository.index(id) >= 0, nil
}

func (repository *memoryRepository) HasSeasons(_ context.Context, id int) (bool, error) {
	return repository.hasSeasons != nil && repository.hasSeasons(id), nil
}

func (repository *memoryRepository) Delete(_ context.Context, id int) error {
	i := repository.index(id)
	if i < 0 {
		return apperr.NotFound("Series")
	}
	repository.rows = append(repository.rows[:i], repository.rows[i+1:]...)
	return nil
}

type seasonList []season.Season

func (seasons seasonList) ListAll(_ context.Context, seriesID int) ([]season.Season, error) {
	list := []season.Season{}
	for _, s := range seasons {
		if s.SeriesID == seriesID {
			list = append(list, s)
		}
	}
	return list, nil
}

type genreCatalog struct {
	attached map[int][]genre.Genre
}

func (catalog *genreCatalog) ListBySeries(_ context.Context, seriesID int) ([]genre.Genre, error) {
	return append([]genre.Genre{}, catalog.attached[seriesID]...), nil
}

func (catalog *genreCatalog) AttachToSeries(_ context.Context, seriesID int, values *form.Values) (*genre.Genre, error) {
	id, ok := validate.ToInt(values.Get("genre").Value)
	if !ok {
		return nil, validate.RequiredError("genre", "Must be a positive integer")
	}
	attached := genre.Genre{ID: id, Name: "Drama"}
	catalog.attached[seriesID] = append(catalog.attached[seriesID], attached)
	return &attached, nil
}

type ratingTable map[[2]int]*rating.Fact

func (facts ratingTable) Summary(_ context.Context, seriesID int) (rating.Summary, error) {
	var total float64
	count := 0
	for key, fact := range facts {
		if key[1] == seriesID && fact.Rating != nil {
			total += float64(*fact.Rating)
			count++
		}
	}
	if count == 0 {
		return rating.Summary{}, nil
	}
	average := total / float64(count)
	return rating.Summary{Average: &average, Count: count}, nil
}

func (facts ratingTable) Find(_ context.Context, userID, seriesID int) (*rating.Fact, error) {
	return facts[[2]int{userID, seriesID}], nil
}

type fakeUploader struct{}

func (fakeUploader) UploadIfNotUploaded(context.Context, string) (string, error) {
	return "https://images.example.com/a.png", nil
}

func discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type fixture struct {
	repository *memoryRepository
	genres     *genreCatalog
	ratings    ratingTable
	service    *series.Service
}

func newFixture(seasons ...season.Season) *fixture {
	f := &fixture{
		repository: &memoryRepository{},
		genres:     &genreCatalog{attached: map[int][]genre.Genre{}},
		ratings:    ratingTable{},
	}
	f.service = series.NewService(f.repository, seasonList(seasons), f.genres, f.ratings, fakeUploader{}, discard())
	return f
}

func create(t *testing.T, service *series.Service, input map[string]any) *series.Series {
	t.Helper()
	created, err := service.CreateSeries(context.Background(), form.New(input))
	require.NoError(t, err)
	return created
}

func fieldsOf(failures []apperr.FieldError) []string {
	fields := []string{}
	for _, failure := range failures {
		fields = append(fields, failure.Field)
	}
	return fields
}

// # Validation

/*
TestValidate exercises the create and patch rules of the series validator.
*/
func TestValidate(t *testing.T) {
	f := newFixture()
	create(t, f.service, map[string]any{"name": "Taken", "inProduction": false})

	tests := []struct {
		name       string
		input      map[string]any
		mode       validate.Mode
		selfID     int
		wantFields []string
	}{
		{"valid_minimal", map[string]any{"name": "New", "inProduction": true}, validate.Create, 0, nil},
		{"multipart_strings", map[string]any{"name": "New", "inProduction": "false", "airDate": "2019-01-01"}, validate.Create, 0, nil},
		{"missing_required", map[string]any{}, validate.Create, 0, []string{"name", "inProduction"}},
		{"empty_name", map[string]any{"name": "", "inProduction": true}, validate.Create, 0, []string{"name"}},
		{"long_name", map[string]any{"name": strings.Repeat("n", 256), "inProduction": true}, validate.Create, 0, []string{"name"}},
		{"duplicate_name", map[string]any{"name": "Taken", "inProduction": true}, validate.Create, 0, []string{"name"}},
		{"own_name_on_patch", map[string]any{"name": "Taken"}, validate.Patch, 1, nil},
		{"duplicate_name_on_patch", map[string]any{"name": "Taken"}, validate.Patch, 2, []string{"name"}},
		{"bad_boolean", map[string]any{"name": "New", "inProduction": "yes"}, validate.Create, 0, []string{"inProduction"}},
		{"bad_date", map[string]any{"name": "New", "inProduction": true, "airDate": "soon"}, validate.Create, 0, []string{"airDate"}},
		{"language_length", map[string]any{"name": "New", "inProduction": true, "language": "eng"}, validate.Create, 0, []string{"language"}},
		{"language_empty", map[string]any{"name": "New", "inProduction": true, "language": ""}, validate.Create, 0, nil},
		{"language_known", map[string]any{"language": "is"}, validate.Patch, 1, nil},
		{"text_fields", map[string]any{"tagline": 1, "description": true, "network": 2, "url": false}, validate.Patch, 1,
			[]string{"tagline", "description", "network", "url"}},
		{"image_url", map[string]any{"image": "ftp//nope"}, validate.Patch, 1, []string{"image"}},
		{"long_varchar_fields", map[string]any{
			"name": "New", "inProduction": true,
			"network": strings.Repeat("n", 300),
			"url":     "https://example.com/" + strings.Repeat("u", 289),
		}, validate.Create, 0, []string{"network", "url"}},
		{"long_varchar_fields_on_patch", map[string]any{
			"network": strings.Repeat("n", 256),
			"image":   "https://example.com/" + strings.Repeat("i", 250),
		}, validate.Patch, 1, []string{"network", "image"}},
		{"varchar_fields_at_limit", map[string]any{"network": strings.Repeat("n", 255)}, validate.Patch, 1, nil},
		{"patch_nothing", map[string]any{}, validate.Patch, 1, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			failures, err := f.service.Validate(context.Background(), form.New(tt.input), tt.mode, tt.selfID)
			require.NoError(t, err)

			if tt.wantFields == nil {
				assert.Empty(t, failures)
			} else {
				assert.Equal(t, tt.wantFields, fieldsOf(failures))
			}
		})
	}
}

func TestValidate_Messages(t *testing.T) {
	f := newFixture()
	create(t, f.service, map[string]any{"name": "Taken", "inProduction": false})

	failures, err := f.service.Validate(context.Background(), form.New(map[string]any{
		"name": "Taken", "inProduction": "maybe", "language": "eng",
	}), validate.Create, 0)
	require.NoError(t, err)

	assert.Equal(t, []apperr.FieldError{
		{Field: "name", Message: `Series "Taken" already exists`},
		{Field: "language", Message: "Language must be a string of length 2"},
		{Field: "inProduction", Message: "inProduction must be of type boolean"},
	}, failures)
}

// # Service

func TestCreateSeries_RoundTrip(t *testing.T) {
	f := newFixture()

	created := create(t, f.service, map[string]any{
		"name":         "Example",
		"inProduction": true,
		"language":     "en",
		"airDate":      "2010-04-17",
		"tagline":      "Tag",
	})

	assert.Equal(t, 1, created.ID)
	assert.Equal(t, "Example", created.Name)
	assert.True(t, created.InProduction)
	assert.Equal(t, "en", *created.Language)
	assert.Equal(t, "Tag", *created.Tagline)
	assert.True(t, created.AirDate.Equal(time.Date(2010, 4, 17, 0, 0, 0, 0, time.UTC)))
	assert.Nil(t, created.Network)
}

func TestCreateSeries_Invalid(t *testing.T) {
	_, err := newFixture().service.CreateSeries(context.Background(), form.New(map[string]any{"inProduction": true}))

	require.True(t, apperr.HasCode(err, apperr.CodeValidation))
	assert.Equal(t, []string{"name"}, fieldsOf(apperr.As(err).Details))
}

/*
TestUpdateSeries_OnlySuppliedFields verifies a patch leaves other columns alone
and that patching a field to its current value succeeds.
*/
func TestUpdateSeries_OnlySuppliedFields(t *testing.T) {
	f := newFixture()
	created := create(t, f.service, map[string]any{"name": "Example", "inProduction": true, "network": "RÚV"})
	ctx := context.Background()

	updated, err := f.service.UpdateSeries(ctx, created.ID, form.New(map[string]any{"tagline": "New tagline"}))
	require.NoError(t, err)
	assert.Equal(t, "New tagline", *updated.Tagline)
	assert.Equal(t, "RÚV", *updated.Network)
	assert.True(t, updated.InProduction)

	again, err := f.service.UpdateSeries(ctx, created.ID, form.New(map[string]any{"name": "Example"}))
	require.NoError(t, err)
	assert.Equal(t, updated.Tagline, again.Tagline)

	_, err = f.service.UpdateSeries(ctx, created.ID, form.New(nil))
	assert.True(t, apperr.HasCode(err, apperr.CodeNothingToPatch))

	_, err = f.service.UpdateSeries(ctx, 99, form.New(map[string]any{"name": "x"}))
	assert.True(t, apperr.IsNotFound(err))
}

func TestGetSeries_Detail(t *testing.T) {
	f := newFixture(
		season.Season{ID: 1, Name: "S1", Number: 1, SeriesID: 1},
		season.Season{ID: 2, Name: "Other", Number: 1, SeriesID: 2},
	)
	created := create(t, f.service, map[string]any{"name": "Example", "inProduction": true})
	ctx := context.Background()

	four, two := 4, 2
	state := "Er að horfa"
	f.ratings[[2]int{7, created.ID}] = &rating.Fact{UserID: 7, SeriesID: created.ID, Rating: &four, State: &state}
	f.ratings[[2]int{8, created.ID}] = &rating.Fact{UserID: 8, SeriesID: created.ID, Rating: &two}

	_, err := f.service.AttachGenre(ctx, created.ID, form.New(map[string]any{"genre": 3}))
	require.NoError(t, err)

	anonymous, err := f.service.GetSeries(ctx, created.ID, 0)
	require.NoError(t, err)
	assert.Len(t, anonymous.Seasons, 1)
	assert.Len(t, anonymous.Genres, 1)
	assert.Equal(t, 2, anonymous.RatingCount)
	assert.InDelta(t, 3.0, *anonymous.AverageRating, 0.0001)
	assert.Nil(t, anonymous.Rating)

	mine, err := f.service.GetSeries(ctx, created.ID, 7)
	require.NoError(t, err)
	assert.Equal(t, 4, *mine.Rating)
	assert.Equal(t, "Er að horfa", *mine.State)
}

func TestAttachGenre_UnknownSeries(t *testing.T) {
	_, err := newFixture().service.AttachGenre(context.Background(), 5, form.New(map[string]any{"genre": 1}))
	assert.True(t, apperr.IsNotFound(err))
}

func TestDeleteSeries_Guard(t *testing.T) {
	f := newFixture()
	created := create(t, f.service, map[string]any{"name": "Example", "inProduction": true})
	ctx := context.Background()

	f.repository.hasSeasons = func(int) bool { return true }
	err := f.service.DeleteSeries(ctx, created.ID)
	require.True(t, apperr.HasCode(err, apperr.CodeConflict))
	assert.Equal(t, "Serie is not empty", apperr.As(err).Message)

	f.repository.hasSeasons = nil
	require.NoError(t, f.service.DeleteSeries(ctx, created.ID))

	_, err = f.service.GetSeries(ctx, created.ID, 0)
	assert.True(t, apperr.IsNotFound(err))
}

// # HTTP

func newRouter(service *series.Service) http.Handler {
	router := chi.NewRouter()
	router.Route("/tv", series.NewHandler(service, "http://localhost:3000", form.Options{}).RegisterRoutes)
	return router
}

func send(router http.Handler, method, target, payload string, claims *sec.AuthClaims) *httptest.ResponseRecorder {
	request := httptest.NewRequest(method, target, strings.NewReader(payload))
	request.Header.Set("Content-Type", "application/json")
	if claims != nil {
		request = request.WithContext(ctxutil.WithAuthUser(request.Context(), claims))
	}
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, request)
	return recorder
}

func TestHandler(t *testing.T) {
	router := newRouter(newFixture().service)
	admin := &sec.AuthClaims{UserID: 1, Admin: true}
	user := &sec.AuthClaims{UserID: 2}

	assert.Equal(t, http.StatusUnauthorized, send(router, http.MethodPost, "/tv", `{"name":"A","inProduction":true}`, nil).Code)
	assert.Equal(t, http.StatusForbidden, send(router, http.MethodPost, "/tv", `{"name":"A","inProduction":true}`, user).Code)

	recorder := send(router, http.MethodPost, "/tv", `{"name":"A","inProduction":true,"language":"en"}`, admin)
	require.Equal(t, http.StatusCreated, recorder.Code)
	assert.Contains(t, recorder.Body.String(), `"name":"A"`)

	recorder = send(router, http.MethodPost, "/tv", `{"name":`, admin)
	assert.Equal(t, http.StatusBadRequest, recorder.Code)
	assert.Contains(t, recorder.Body.String(), apperr.CodeInvalidJSON)

	recorder = send(router, http.MethodPost, "/tv", `{}`, admin)
	assert.Equal(t, http.StatusBadRequest, recorder.Code)
	assert.Contains(t, recorder.Body.String(), `"field":"name"`)

	recorder = send(router, http.MethodGet, "/tv?limit=1", "", nil)
	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Contains(t, recorder.Body.String(), `"next":{"href":"http://localhost:3000/tv?limit=1&offset=1"}`)

	recorder = send(router, http.MethodGet, "/tv/1", "", nil)
	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Contains(t, recorder.Body.String(), `"genres":[]`)

	assert.Equal(t, http.StatusBadRequest, send(router, http.MethodGet, "/tv/abc", "", nil).Code)

	recorder = send(router, http.MethodPatch, "/tv/1", `{"network":"HBO"}`, admin)
	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Contains(t, recorder.Body.String(), `"network":"HBO"`)

	recorder = send(router, http.MethodPatch, "/tv/1", `{}`, admin)
	assert.Equal(t, http.StatusBadRequest, recorder.Code)
	assert.Contains(t, recorder.Body.String(), "Nothing to patch")

	assert.Equal(t, http.StatusCreated, send(router, http.MethodPost, "/tv/1/genres", `{"genre":1}`, admin).Code)
	assert.Equal(t, http.StatusNoContent, send(router, http.MethodDelete, "/tv/1", "", admin).Code)
	assert.Equal(t, http.StatusNotFound, send(router, http.MethodGet, "/tv/1", "", nil).Code)
}
