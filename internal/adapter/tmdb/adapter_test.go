package tmdb

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"MovieSync/internal/config"
	"MovieSync/internal/model"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetLevel(logrus.ErrorLevel)
	return logger
}

func TestFetchMovies_FailsFastWithoutAPIKey(t *testing.T) {
	adp := NewTMDBAdapter(&config.SourceConfig{BaseURL: "https://api.themoviedb.org/3"}, testLogger())

	_, err := adp.FetchMovies(context.Background(), 20)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "API Key")
}

func TestFetchMovies_ParsesPopularPage(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "test-key", r.URL.Query().Get("api_key"))
		resp := model.TMDBPageResponse{
			Page:       1,
			TotalPages: 1,
			Results: []model.TMDBMovie{
				{
					ID:          27205,
					Title:       "Inception",
					GenreIDs:    []int{28, 878},
					ReleaseDate: "2010-07-16",
					VoteAverage: 8.8,
					VoteCount:   2100000,
					Popularity:  88.5,
					Overview:    "A thief who steals corporate secrets.",
				},
			},
		}
		_ = json.NewEncoder(w).Encode(resp)
	}))
	defer server.Close()

	adp := NewTMDBAdapter(&config.SourceConfig{BaseURL: server.URL, APIKey: "test-key"}, testLogger())

	table, err := adp.FetchMovies(context.Background(), 20)
	require.NoError(t, err)
	require.Equal(t, 1, table.NumRows())

	row := table.Rows[0]
	assert.Equal(t, "TMDB27205", row["id"])
	assert.Equal(t, "Inception", row["title"])
	assert.Equal(t, "Genre28|Genre878", row["genres"])
	assert.Equal(t, "2010-07-16", row["release_date"])
	assert.Equal(t, "8.8", row["vote_average"])
	assert.Equal(t, "2100000", row["vote_count"])
}

func TestFetchMovies_BadStatusCode(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer server.Close()

	adp := NewTMDBAdapter(&config.SourceConfig{BaseURL: server.URL, APIKey: "bad-key"}, testLogger())

	_, err := adp.FetchMovies(context.Background(), 20)
	assert.Error(t, err)
}
