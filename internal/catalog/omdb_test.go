package catalog

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"movie-reservation/pkg/utils"

	"go.uber.org/zap"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *OMDbClient {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	return NewOMDbClient(utils.OMDbConfig{URL: server.URL, APIKey: "test-key"}, zap.NewNop())
}

func TestSearch(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("apikey"); got != "test-key" {
			t.Errorf("apikey = %q, want test-key", got)
		}
		if got := r.URL.Query().Get("s"); got != "inception" {
			t.Errorf("search term = %q, want inception", got)
		}

		w.Write([]byte(`{
			"Search": [
				{"Title": "Inception", "Year": "2010", "imdbID": "tt1375666", "Poster": "poster.jpg"}
			],
			"totalResults": "1",
			"Response": "True"
		}`))
	})

	results, err := client.Search(context.Background(), "inception")
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if len(results) != 1 {
		t.Fatalf("got %d results, want 1", len(results))
	}
	if results[0].ImdbID != "tt1375666" {
		t.Errorf("ImdbID = %q, want tt1375666", results[0].ImdbID)
	}
}

func TestSearchNoMatches(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"Response": "False", "Error": "Movie not found!"}`))
	})

	_, err := client.Search(context.Background(), "zzzz")
	if err == nil {
		t.Fatal("expected error for Response=False")
	}
}

func TestDetail(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("i"); got != "tt1375666" {
			t.Errorf("imdb id = %q, want tt1375666", got)
		}

		w.Write([]byte(`{
			"Title": "Inception",
			"Year": "2010",
			"Genre": "Action, Adventure, Sci-Fi",
			"Plot": "A thief who steals corporate secrets.",
			"Poster": "poster.jpg",
			"imdbRating": "8.8",
			"imdbID": "tt1375666",
			"Response": "True"
		}`))
	})

	detail, err := client.Detail(context.Background(), "tt1375666")
	if err != nil {
		t.Fatalf("Detail failed: %v", err)
	}
	if detail.Title != "Inception" {
		t.Errorf("Title = %q, want Inception", detail.Title)
	}
	if detail.ImdbRating != "8.8" {
		t.Errorf("ImdbRating = %q, want 8.8", detail.ImdbRating)
	}
}

func TestDetailServerError(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})

	_, err := client.Detail(context.Background(), "tt1375666")
	if err == nil {
		t.Fatal("expected error for non-200 status")
	}
}
