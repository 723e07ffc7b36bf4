package github

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"
)

func pull(number int, repo, author string, labels ...string) PullRequest {
	pr := PullRequest{
		Number:  number,
		Title:   fmt.Sprintf("PR %d", number),
		HTMLURL: fmt.Sprintf("https://github.com/%s/pull/%d", repo, number),
		User:    User{Login: author},
		Base:    Base{Repo: Repository{FullName: repo}},
	}
	for _, l := range labels {
		pr.Labels = append(pr.Labels, Label{Name: l})
	}
	return pr
}

func newTestClient(t *testing.T, handler http.Handler) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := NewClient(Config{
		BaseURL: server.URL,
		Token:   "test-token",
		Timeout: 5 * time.Second,
		Logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
	})
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	return client
}

func TestNewClient_RequiresToken(t *testing.T) {
	if _, err := NewClient(Config{}); err == nil {
		t.Error("expected error without token")
	}
}

func TestListOpenPulls_FollowsPagination(t *testing.T) {
	var serverURL string
	mux := http.NewServeMux()
	mux.HandleFunc("GET /repos/felipesere/journal/pulls", func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer test-token" {
			t.Errorf("Authorization = %q", got)
		}
		if got := r.URL.Query().Get("state"); got != "open" {
			t.Errorf("state = %q", got)
		}
		if got := r.URL.Query().Get("per_page"); got != "50" {
			t.Errorf("per_page = %q", got)
		}
		var page []PullRequest
		switch r.URL.Query().Get("page") {
		case "":
			w.Header().Set("Link", fmt.Sprintf(`<%s/repos/felipesere/journal/pulls?state=open&per_page=50&page=2>; rel="next"`, serverURL))
			page = []PullRequest{pull(1, "felipesere/journal", "felipe")}
		case "2":
			page = []PullRequest{pull(2, "felipesere/journal", "anna")}
		}
		json.NewEncoder(w).Encode(page)
	})
	client := newTestClient(t, mux)
	serverURL = client.baseURL

	pulls, err := client.ListOpenPulls(context.Background(), "felipesere/journal")
	if err != nil {
		t.Fatalf("ListOpenPulls: %v", err)
	}
	if len(pulls) != 2 || pulls[0].Number != 1 || pulls[1].Number != 2 {
		t.Errorf("pulls = %+v", pulls)
	}
	if pulls[1].User.Login != "anna" || pulls[0].Base.Repo.FullName != "felipesere/journal" {
		t.Errorf("decoded fields wrong: %+v", pulls)
	}
}

func TestListOpenPulls_InvalidRepo(t *testing.T) {
	client := newTestClient(t, http.NotFoundHandler())
	for _, repo := range []string{"journal", "a/b/c", "/name"} {
		_, err := client.ListOpenPulls(context.Background(), repo)
		if err == nil || !strings.Contains(err.Error(), "did not have exactly 2 components") {
			t.Errorf("ListOpenPulls(%q) error = %v", repo, err)
		}
	}
}

func TestListOpenPulls_APIError(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		io.WriteString(w, `{"message":"Bad credentials"}`)
	}))

	_, err := client.ListOpenPulls(context.Background(), "o/r")
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("error = %v, want *APIError", err)
	}
	if apiErr.StatusCode != http.StatusUnauthorized || apiErr.Message != "Bad credentials" {
		t.Errorf("apiErr = %+v", apiErr)
	}
}

func TestSelectorMatches(t *testing.T) {
	tests := []struct {
		name     string
		selector Selector
		pr       PullRequest
		want     bool
	}{
		{"no filters", Selector{Repo: "o/r"}, pull(1, "o/r", "felipe"), true},
		{"author matches", Selector{Authors: []string{"felipe"}}, pull(1, "o/r", "felipe"), true},
		{"author differs", Selector{Authors: []string{"felipe"}}, pull(1, "o/r", "anna"), false},
		{"label intersects", Selector{Labels: []string{"foo", "bar"}}, pull(1, "o/r", "anna", "bar"), true},
		{"no shared label", Selector{Labels: []string{"foo"}}, pull(1, "o/r", "anna", "baz"), false},
		{"unlabelled pr", Selector{Labels: []string{"foo"}}, pull(1, "o/r", "anna"), false},
		{
			"author and label both required",
			Selector{Authors: []string{"felipe"}, Labels: []string{"foo"}},
			pull(1, "o/r", "anna", "foo"),
			false,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.selector.Matches(tt.pr); got != tt.want {
				t.Errorf("Matches() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestFetch_KeepsSelectorOrder(t *testing.T) {
	var calls atomic.Int32
	mux := http.NewServeMux()
	mux.HandleFunc("GET /repos/o/slow/pulls", func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		time.Sleep(20 * time.Millisecond)
		json.NewEncoder(w).Encode([]PullRequest{pull(1, "o/slow", "felipe"), pull(2, "o/slow", "anna")})
	})
	mux.HandleFunc("GET /repos/o/fast/pulls", func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		json.NewEncoder(w).Encode([]PullRequest{pull(3, "o/fast", "anna", "urgent")})
	})
	client := newTestClient(t, mux)

	pulls, err := client.Fetch(context.Background(), []Selector{
		{Repo: "o/slow", Authors: []string{"felipe"}},
		{Repo: "o/fast", Labels: []string{"urgent"}},
	})
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if calls.Load() != 2 {
		t.Errorf("calls = %d, want 2", calls.Load())
	}
	if len(pulls) != 2 || pulls[0].Number != 1 || pulls[1].Number != 3 {
		t.Errorf("pulls = %+v", pulls)
	}
}

func TestFetch_ReturnsFailure(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /repos/o/ok/pulls", func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, "[]")
	})
	client := newTestClient(t, mux)

	_, err := client.Fetch(context.Background(), []Selector{{Repo: "o/ok"}, {Repo: "o/missing"}})
	if err == nil || !strings.Contains(err.Error(), "o/missing") {
		t.Errorf("Fetch error = %v", err)
	}
}
