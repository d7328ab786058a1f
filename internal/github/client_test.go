package github

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/sstitle/public-explanation/internal/explain"
)

func testClient(t *testing.T, handler http.Handler) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	c := New("", false)
	c.BaseURL = srv.URL
	c.Warn = io.Discard
	return c
}

func TestRepo(t *testing.T) {
	c := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/repos/octocat/Hello-World" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		w.Write([]byte(`{
			"name": "Hello-World",
			"owner": {"login": "octocat"},
			"description": "My first repository",
			"stargazers_count": 2000,
			"size": 524,
			"language": "C",
			"private": false
		}`))
	}))

	repo, err := c.Repo(context.Background(), "octocat", "Hello-World")
	if err != nil {
		t.Fatalf("Repo failed: %v", err)
	}
	if repo.FullName() != "octocat/Hello-World" {
		t.Errorf("expected octocat/Hello-World, got %q", repo.FullName())
	}
	if repo.SizeBytes != 524*1024 {
		t.Errorf("expected size %d bytes, got %d", 524*1024, repo.SizeBytes)
	}
	if repo.Stars != 2000 {
		t.Errorf("expected 2000 stars, got %d", repo.Stars)
	}
}

func TestRepoNotFound(t *testing.T) {
	c := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))

	_, err := c.Repo(context.Background(), "nobody", "nothing")
	if !errors.Is(err, explain.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestRepoPrivateIsNotFound(t *testing.T) {
	c := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"name": "secret", "owner": {"login": "acme"}, "private": true}`))
	}))

	_, err := c.Repo(context.Background(), "acme", "secret")
	if !errors.Is(err, explain.ErrNotFound) {
		t.Errorf("expected ErrNotFound for private repo, got %v", err)
	}
}

func TestRepoRateLimited(t *testing.T) {
	c := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Ratelimit-Remaining", "0")
		w.WriteHeader(http.StatusForbidden)
	}))

	_, err := c.Repo(context.Background(), "octocat", "Hello-World")
	if !errors.Is(err, explain.ErrRateLimited) {
		t.Errorf("expected ErrRateLimited, got %v", err)
	}
}

func TestSearchSkipsPrivateResults(t *testing.T) {
	c := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/rate_limit":
			w.Write([]byte(`{"resources": {"search": {"remaining": 30, "reset": 0}}}`))
		case "/search/repositories":
			if got := r.URL.Query().Get("sort"); got != "stars" {
				t.Errorf("expected sort=stars, got %q", got)
			}
			w.Write([]byte(`{
				"total_count": 2,
				"items": [
					{"name": "react", "owner": {"login": "facebook"}, "size": 100, "private": false},
					{"name": "hidden", "owner": {"login": "acme"}, "size": 1, "private": true}
				]
			}`))
		default:
			t.Errorf("unexpected path %q", r.URL.Path)
		}
	}))

	repos, err := c.Search(context.Background(), "react", 5)
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if len(repos) != 1 {
		t.Fatalf("expected 1 result, got %d", len(repos))
	}
	if repos[0].FullName() != "facebook/react" {
		t.Errorf("expected facebook/react, got %q", repos[0].FullName())
	}
}

func TestTokenHeader(t *testing.T) {
	var gotAuth string
	c := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Write([]byte(`{"name": "x", "owner": {"login": "y"}}`))
	}))
	c.Token = "abc123"

	if _, err := c.Repo(context.Background(), "y", "x"); err != nil {
		t.Fatalf("Repo failed: %v", err)
	}
	if gotAuth != "token abc123" {
		t.Errorf("expected token header, got %q", gotAuth)
	}
}
