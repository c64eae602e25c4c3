package season_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/tvcatalog/internal/core/episode"
	"github.com/taibuivan/tvcatalog/internal/core/season"
	"github.com/taibuivan/tvcatalog/internal/platform/apperr"
	"github.com/taibuivan/tvcatalog/internal/platform/assets"
	"github.com/taibuivan/tvcatalog/internal/platform/ctxutil"
	"github.com/taibuivan/tvcatalog/internal/platform/form"
	"github.com/taibuivan/tvcatalog/internal/platform/sec"
	"github.com/taibuivan/tvcatalog/internal/platform/validate"
	"github.com/taibuivan/tvcatalog/pkg/pagination"
)

// # Fakes

type memoryRepository struct {
	seasons  []season.Season
	episodes map[int]int
}

func newMemoryRepository(seasons ...season.Season) *memoryRepository {
	return &memoryRepository{seasons: seasons, episodes: map[int]int{}}
}

func (repository *memoryRepository) ListSeasons(ctx context.Context, seriesID int, params pagination.Params) (*pagination.Page[season.Season], error) {
	all, _ := repository.ListAll(ctx, seriesID)
	params = params.Normalize()
	start := min(params.Offset, len(all))
	end := min(start+params.Limit, len(all))
	return pagination.NewPage(params, all[start:end]), nil
}

func (repository *memoryRepository) ListAll(_ context.Context, seriesID int) ([]season.Season, error) {
	var list []season.Season
	for _, s := range repository.seasons {
		if s.SeriesID == seriesID {
			list = append(list, s)
		}
	}
	return list, nil
}

func (repository *memoryRepository) Get(_ context.Context, seriesID, number int) (*season.Season, error) {
	for _, s := range repository.seasons {
		if s.SeriesID == seriesID && s.Number == number {
			return &s, nil
		}
	}
	return nil, apperr.NotFound("Season")
}

func (repository *memoryRepository) Create(_ context.Context, s *season.Season) (*season.Season, error) {
	created := *s
	created.ID = len(repository.seasons) + 1
	repository.seasons = append(repository.seasons, created)
	return &created, nil
}

func (repository *memoryRepository) HasEpisodes(_ context.Context, seasonID int) (bool, error) {
	return repository.episodes[seasonID] > 0, nil
}

func (repository *memoryRepository) Delete(_ context.Context, id int) error {
	for i, s := range repository.seasons {
		if s.ID == id {
			repository.seasons = append(repository.seasons[:i], repository.seasons[i+1:]...)
			return nil
		}
	}
	return apperr.NotFound("Season")
}

type knownSeries map[int]bool

func (series knownSeries) Exists(_ context.Context, id int) (bool, error) {
	return series[id], nil
}

type episodeList []episode.Episode

func (episodes episodeList) ListBySeason(_ context.Context, seasonID int) ([]episode.Episode, error) {
	var list []episode.Episode
	for _, e := range episodes {
		if e.SeasonID == seasonID {
			list = append(list, e)
		}
	}
	return list, nil
}

type fakeUploader struct {
	uploaded []string
	err      error
}

func (uploader *fakeUploader) UploadIfNotUploaded(_ context.Context, path string) (string, error) {
	if uploader.err != nil {
		return "", uploader.err
	}
	uploader.uploaded = append(uploader.uploaded, path)
	return "https://images.example.com/" + filepath.Base(path), nil
}

var pngHeader = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR\x00\x00\x00\x01\x00\x00\x00\x01\x08\x02\x00\x00\x00")

func newService(repository season.Repository, uploader *fakeUploader, episodes ...episode.Episode) *season.Service {
	return season.NewService(repository, knownSeries{1: true}, episodeList(episodes), uploader,
		slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func attach(t *testing.T, values *form.Values, content []byte) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "poster.bin")
	require.NoError(t, os.WriteFile(path, content, 0o600))
	values.AttachFile(&form.File{Field: season.FieldPoster, Filename: "poster.bin", Path: path, Size: int64(len(content))})
}

// # Service

func TestCreateSeason(t *testing.T) {
	repository := newMemoryRepository()
	service := newService(repository, &fakeUploader{})

	created, err := service.CreateSeason(context.Background(), 1, form.New(map[string]any{
		"name":     "S1",
		"number":   1,
		"overview": "First",
	}))
	require.NoError(t, err)
	assert.Equal(t, 1, created.SeriesID)
	assert.Equal(t, "S1", created.Name)
	assert.Equal(t, "First", *created.Overview)
	assert.Nil(t, created.Poster)

	_, err = service.CreateSeason(context.Background(), 1, form.New(map[string]any{"name": "Again", "number": 1}))
	require.True(t, apperr.HasCode(err, apperr.CodeValidation))
	assert.Equal(t, "Season 1 already exists", apperr.As(err).Details[0].Message)
}

func TestCreateSeason_Validation(t *testing.T) {
	_, err := newService(newMemoryRepository(), &fakeUploader{}).CreateSeason(context.Background(), 1, form.New(map[string]any{
		"name":    "",
		"number":  "abc",
		"airDate": "31/12/2020",
		"poster":  "not a url",
	}))
	require.True(t, apperr.HasCode(err, apperr.CodeValidation))

	fields := []string{}
	for _, detail := range apperr.As(err).Details {
		fields = append(fields, detail.Field)
	}
	assert.Equal(t, []string{"name", "number", "airDate", "poster"}, fields)
}

func TestValidate_Bounds(t *testing.T) {
	service := newService(newMemoryRepository(), &fakeUploader{})

	tests := []struct {
		name       string
		input      map[string]any
		mode       validate.Mode
		wantFields []string
	}{
		{"long_poster", map[string]any{"name": "S1", "number": 1, "poster": "https://example.com/" + strings.Repeat("p", 250)},
			validate.Create, []string{"poster"}},
		{"long_poster_on_patch", map[string]any{"poster": "https://example.com/" + strings.Repeat("p", 250)},
			validate.Patch, []string{"poster"}},
		{"number_above_column_range", map[string]any{"name": "S1", "number": json.Number("3000000000")},
			validate.Create, []string{"number"}},
		{"number_at_column_limit", map[string]any{"name": "S1", "number": json.Number("2147483647")},
			validate.Create, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			failures, err := service.Validate(context.Background(), form.New(tt.input), tt.mode, 1, 0)
			require.NoError(t, err)

			fields := []string{}
			for _, failure := range failures {
				fields = append(fields, failure.Field)
			}
			if tt.wantFields == nil {
				assert.Empty(t, fields)
			} else {
				assert.Equal(t, tt.wantFields, fields)
			}
		})
	}
}

func TestCreateSeason_UnknownSeries(t *testing.T) {
	_, err := newService(newMemoryRepository(), &fakeUploader{}).CreateSeason(context.Background(), 42, form.New(map[string]any{"name": "S1", "number": 1}))
	assert.True(t, apperr.IsNotFound(err))
}

func TestCreateSeason_UploadsPoster(t *testing.T) {
	uploader := &fakeUploader{}
	values := form.New(map[string]any{"name": "S1", "number": "1"})
	attach(t, values, pngHeader)

	created, err := newService(newMemoryRepository(), uploader).CreateSeason(context.Background(), 1, values)
	require.NoError(t, err)

	require.Len(t, uploader.uploaded, 1)
	require.NotNil(t, created.Poster)
	assert.Equal(t, "https://images.example.com/poster.bin", *created.Poster)
}

func TestCreateSeason_RejectsNonImagePoster(t *testing.T) {
	uploader := &fakeUploader{}
	values := form.New(map[string]any{"name": "S1", "number": 1})
	attach(t, values, []byte("plain text, not an image"))

	_, err := newService(newMemoryRepository(), uploader).CreateSeason(context.Background(), 1, values)
	require.True(t, apperr.HasCode(err, apperr.CodeValidation))
	assert.Equal(t, season.FieldPoster, apperr.As(err).Details[0].Field)
	assert.Contains(t, apperr.As(err).Details[0].Message, "is not legal")
	assert.Empty(t, uploader.uploaded)
}

func TestCreateSeason_HostRejection(t *testing.T) {
	uploader := &fakeUploader{err: &assets.RejectedError{Message: "Invalid image file"}}
	values := form.New(map[string]any{"name": "S1", "number": 1})
	attach(t, values, pngHeader)

	_, err := newService(newMemoryRepository(), uploader).CreateSeason(context.Background(), 1, values)
	require.True(t, apperr.HasCode(err, apperr.CodeValidation))
	assert.Equal(t, "Invalid image file", apperr.As(err).Details[0].Message)
}

func TestGetSeason_IncludesEpisodes(t *testing.T) {
	repository := newMemoryRepository(season.Season{ID: 4, Name: "S1", Number: 1, SeriesID: 1})
	service := newService(repository, &fakeUploader{},
		episode.Episode{ID: 1, Name: "Pilot", Number: 1, SeasonID: 4},
		episode.Episode{ID: 2, Name: "Elsewhere", Number: 1, SeasonID: 5},
	)

	detail, err := service.GetSeason(context.Background(), 1, 1)
	require.NoError(t, err)
	require.Len(t, detail.Episodes, 1)
	assert.Equal(t, "Pilot", detail.Episodes[0].Name)

	id, err := service.ResolveSeasonID(context.Background(), 1, 1)
	require.NoError(t, err)
	assert.Equal(t, 4, id)
}

/*
TestDeleteSeason_Guard verifies a season with episodes cannot be deleted.
*/
func TestDeleteSeason_Guard(t *testing.T) {
	repository := newMemoryRepository(season.Season{ID: 1, Name: "S1", Number: 1, SeriesID: 1})
	repository.episodes[1] = 2
	service := newService(repository, &fakeUploader{})
	ctx := context.Background()

	err := service.DeleteSeason(ctx, 1, 1)
	require.True(t, apperr.HasCode(err, apperr.CodeConflict))
	assert.Equal(t, "Season is not empty", apperr.As(err).Message)

	repository.episodes[1] = 0
	require.NoError(t, service.DeleteSeason(ctx, 1, 1))

	_, err = service.GetSeason(ctx, 1, 1)
	assert.True(t, apperr.IsNotFound(err))
}

// # HTTP

func newRouter(service *season.Service) http.Handler {
	router := chi.NewRouter()
	router.Route("/tv/{id}/season", season.NewHandler(service, "http://localhost:3000", form.Options{TempDir: os.TempDir()}).RegisterRoutes)
	return router
}

func asAdmin(request *http.Request) *http.Request {
	return request.WithContext(ctxutil.WithAuthUser(request.Context(), &sec.AuthClaims{UserID: 1, Admin: true}))
}

func TestHandler_CreateMultipart(t *testing.T) {
	uploader := &fakeUploader{}
	router := newRouter(newService(newMemoryRepository(), uploader))

	var buffer bytes.Buffer
	writer := multipart.NewWriter(&buffer)
	require.NoError(t, writer.WriteField("name", "S1"))
	require.NoError(t, writer.WriteField("number", "1"))
	part, err := writer.CreateFormFile("poster", "poster.png")
	require.NoError(t, err)
	_, err = part.Write(pngHeader)
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	request := httptest.NewRequest(http.MethodPost, "/tv/1/season", &buffer)
	request.Header.Set("Content-Type", writer.FormDataContentType())
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, asAdmin(request))

	require.Equal(t, http.StatusCreated, recorder.Code, recorder.Body.String())
	assert.Contains(t, recorder.Body.String(), `"poster":"https://images.example.com/`)
	require.Len(t, uploader.uploaded, 1)

	// The spooled upload is removed once the request completes.
	_, err = os.Stat(uploader.uploaded[0])
	assert.True(t, os.IsNotExist(err))
}

func TestHandler_ListAndDelete(t *testing.T) {
	repository := newMemoryRepository(
		season.Season{ID: 1, Name: "S1", Number: 1, SeriesID: 1},
		season.Season{ID: 2, Name: "S2", Number: 2, SeriesID: 1},
	)
	router := newRouter(newService(repository, &fakeUploader{}))

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/tv/1/season?limit=1", nil))
	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Contains(t, recorder.Body.String(), `"next":{"href":"http://localhost:3000/tv/1/season?limit=1&offset=1"}`)

	recorder = httptest.NewRecorder()
	router.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/tv/9/season", nil))
	assert.Equal(t, http.StatusNotFound, recorder.Code)

	recorder = httptest.NewRecorder()
	router.ServeHTTP(recorder, asAdmin(httptest.NewRequest(http.MethodDelete, "/tv/1/season/2", nil)))
	assert.Equal(t, http.StatusNoContent, recorder.Code)

	recorder = httptest.NewRecorder()
	router.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/tv/1/season/2", strings.NewReader("")))
	assert.Equal(t, http.StatusNotFound, recorder.Code)
}
