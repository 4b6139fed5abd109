package omdb

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"moviecompare/internal/config"
	"moviecompare/internal/domain"
)

type fakeOMDb struct {
	mu      sync.Mutex
	queries []url.Values
	status  int
	body    string
}

func (f *fakeOMDb) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	f.queries = append(f.queries, r.URL.Query())
	status, body := f.status, f.body
	f.mu.Unlock()

	if status == 0 {
		status = http.StatusOK
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write([]byte(body))
}

func newTestClient(t *testing.T, body string) (*HTTPClient, *fakeOMDb) {
	t.Helper()
	fake := &fakeOMDb{body: body}
	srv := httptest.NewServer(fake)
	t.Cleanup(srv.Close)

	return NewHTTPClient(config.APIConfig{
		BaseURL:        srv.URL + "/",
		APIKey:         "test-key",
		TimeoutSeconds: 5,
	}), fake
}

func TestSearch_ReturnsResultsInOrder(t *testing.T) {
	c, fake := newTestClient(t, `{
		"Search": [
			{"Title":"Alien","Year":"1979","imdbID":"tt0078748","Type":"movie","Poster":"https://img/alien.jpg"},
			{"Title":"Aliens","Year":"1986","imdbID":"tt0090605","Type":"movie","Poster":"N/A"}
		],
		"totalResults":"2","Response":"True"}`)

	movies, err := c.Search(context.Background(), "  alien ")
	require.NoError(t, err)
	require.Len(t, movies, 2)
	assert.Equal(t, domain.Movie{Title: "Alien", Year: "1979", IMDbID: "tt0078748", Type: "movie", Poster: "https://img/alien.jpg"}, movies[0])
	assert.True(t, movies[0].HasPoster())
	assert.False(t, movies[1].HasPoster())

	require.Len(t, fake.queries, 1)
	assert.Equal(t, "alien", fake.queries[0].Get("s"))
	assert.Equal(t, "test-key", fake.queries[0].Get("apikey"))
}

func TestSearch_NotFoundIsEmpty(t *testing.T) {
	for _, msg := range []string{"Movie not found!", "Too many results."} {
		t.Run(msg, func(t *testing.T) {
			c, _ := newTestClient(t, `{"Response":"False","Error":"`+msg+`"}`)
			movies, err := c.Search(context.Background(), "zzzz")
			require.NoError(t, err)
			assert.Empty(t, movies)
		})
	}
}

func TestSearch_BlankTermSkipsRequest(t *testing.T) {
	c, fake := newTestClient(t, `{}`)

	movies, err := c.Search(context.Background(), "   ")
	require.NoError(t, err)
	assert.Empty(t, movies)
	assert.Empty(t, fake.queries)
}

func TestSearch_APIError(t *testing.T) {
	c, _ := newTestClient(t, `{"Response":"False","Error":"Invalid API key!"}`)

	_, err := c.Search(context.Background(), "alien")
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "Invalid API key!", apiErr.Message)
}

func TestSearch_HTTPStatusError(t *testing.T) {
	c, fake := newTestClient(t, `upstream down`)
	fake.status = http.StatusBadGateway

	_, err := c.Search(context.Background(), "alien")
	var statusErr *StatusError
	require.ErrorAs(t, err, &statusErr)
	assert.Equal(t, http.StatusBadGateway, statusErr.StatusCode)
}

func TestSearch_MalformedBody(t *testing.T) {
	c, _ := newTestClient(t, `{"Search": [`)

	_, err := c.Search(context.Background(), "alien")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decode omdb response")
}

func TestSearch_ContextCanceled(t *testing.T) {
	c, _ := newTestClient(t, `{"Response":"True","Search":[]}`)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := c.Search(ctx, "alien")
	require.Error(t, err)
	assert.True(t, errors.Is(err, context.Canceled))
}

func TestDetails(t *testing.T) {
	c, fake := newTestClient(t, `{
		"Title":"Alien","Year":"1979","Genre":"Horror, Sci-Fi","Plot":"In space...",
		"Awards":"Won 1 Oscar. 18 wins & 22 nominations total","Poster":"https://img/alien.jpg",
		"Metascore":"89","imdbRating":"8.5","imdbVotes":"1,004,707","imdbID":"tt0078748",
		"BoxOffice":"$84,206,106","Response":"True"}`)

	d, err := c.Details(context.Background(), "tt0078748")
	require.NoError(t, err)
	assert.Equal(t, "Alien", d.Title)
	assert.Equal(t, "Horror, Sci-Fi", d.Genre)
	assert.Equal(t, "$84,206,106", d.BoxOffice)
	assert.Equal(t, "1,004,707", d.IMDbVotes)
	assert.Equal(t, "8.5", d.IMDbRating)
	assert.Equal(t, "tt0078748", fake.queries[0].Get("i"))
}

func TestDetails_UnknownID(t *testing.T) {
	c, _ := newTestClient(t, `{"Response":"False","Error":"Incorrect IMDb ID."}`)

	_, err := c.Details(context.Background(), "tt0")
	assert.ErrorIs(t, err, ErrNoResults)
}
