//go:build e2e && unix

package main

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
)

type fakeMovie struct {
	Title  string `json:"Title"`
	Year   string `json:"Year"`
	IMDbID string `json:"imdbID"`
	Type   string `json:"Type"`
	Poster string `json:"Poster"`
}

var fixtureMovies = []fakeMovie{
	{Title: "Alien", Year: "1979", IMDbID: "tt0078748", Type: "movie", Poster: "N/A"},
	{Title: "Aliens", Year: "1986", IMDbID: "tt0090605", Type: "movie", Poster: "N/A"},
}

var fixtureDetails = map[string]map[string]string{
	"tt0078748": {
		"Title": "Alien", "Year": "1979", "Genre": "Horror, Sci-Fi",
		"Plot":       "The crew of a commercial spacecraft encounters a deadly lifeform.",
		"Awards":     "Won 1 Oscar. 18 wins & 22 nominations total",
		"BoxOffice":  "$84,206,106",
		"Metascore":  "89",
		"imdbRating": "8.5",
		"imdbVotes":  "1,004,707",
		"imdbID":     "tt0078748",
		"Response":   "True",
	},
	"tt0090605": {
		"Title": "Aliens", "Year": "1986", "Genre": "Action, Adventure, Sci-Fi",
		"Plot":       "Decades later, Ripley returns to the planet.",
		"Awards":     "Won 2 Oscars. 20 wins & 23 nominations total",
		"BoxOffice":  "$85,160,248",
		"Metascore":  "84",
		"imdbRating": "8.4",
		"imdbVotes":  "778,423",
		"imdbID":     "tt0090605",
		"Response":   "True",
	},
}

// fakeOMDb serves the fixtures and records the search terms it saw
type fakeOMDb struct {
	*httptest.Server

	mu       sync.Mutex
	searches []string
}

func newFakeOMDb(t *testing.T) *fakeOMDb {
	t.Helper()
	f := &fakeOMDb{}
	f.Server = httptest.NewServer(http.HandlerFunc(f.serve))
	t.Cleanup(f.Close)
	return f
}

func (f *fakeOMDb) serve(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	w.Header().Set("Content-Type", "application/json")

	if id := q.Get("i"); id != "" {
		d, ok := fixtureDetails[id]
		if !ok {
			_ = json.NewEncoder(w).Encode(map[string]string{"Response": "False", "Error": "Incorrect IMDb ID."})
			return
		}
		_ = json.NewEncoder(w).Encode(d)
		return
	}

	term := q.Get("s")
	f.mu.Lock()
	f.searches = append(f.searches, term)
	f.mu.Unlock()

	var hits []fakeMovie
	for _, m := range fixtureMovies {
		if strings.Contains(strings.ToLower(m.Title), strings.ToLower(term)) {
			hits = append(hits, m)
		}
	}
	if len(hits) == 0 {
		_ = json.NewEncoder(w).Encode(map[string]string{"Response": "False", "Error": "Movie not found!"})
		return
	}
	_ = json.NewEncoder(w).Encode(map[string]any{"Search": hits, "totalResults": "2", "Response": "True"})
}

func (f *fakeOMDb) Searches() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.searches...)
}
