package resolve

import (
	"context"
	"errors"
	"testing"

	"github.com/sstitle/public-explanation/internal/explain"
)

// fakeClient records calls and serves canned results.
type fakeClient struct {
	repos         map[string]explain.Repository
	searchResults []explain.Repository
	searchCalls   int
	repoCalls     int
}

func (f *fakeClient) Repo(ctx context.Context, owner, name string) (explain.Repository, error) {
	f.repoCalls++
	if repo, ok := f.repos[owner+"/"+name]; ok {
		return repo, nil
	}
	return explain.Repository{}, explain.ErrNotFound
}

func (f *fakeClient) Search(ctx context.Context, query string, limit int) ([]explain.Repository, error) {
	f.searchCalls++
	return f.searchResults, nil
}

func TestResolveOwnerName(t *testing.T) {
	client := &fakeClient{repos: map[string]explain.Repository{
		"octocat/Hello-World": {Owner: "octocat", Name: "Hello-World", SizeBytes: 1024},
	}}
	r := New(client, false)

	res, err := r.Resolve(context.Background(), "octocat/Hello-World")
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if res.Ambiguous() {
		t.Fatal("expected a single resolution")
	}
	if res.Repo.Owner != "octocat" || res.Repo.Name != "Hello-World" {
		t.Errorf("got %s", res.Repo.FullName())
	}
	if res.Repo.Source != explain.SourceOwnerName {
		t.Errorf("expected owner/name source, got %s", res.Repo.Source)
	}
	if client.searchCalls != 0 {
		t.Errorf("direct form must not invoke search, got %d calls", client.searchCalls)
	}
}

func TestResolveURLForms(t *testing.T) {
	client := &fakeClient{repos: map[string]explain.Repository{
		"owner/repo": {Owner: "owner", Name: "repo"},
	}}
	r := New(client, false)

	for _, input := range []string{
		"https://github.com/owner/repo",
		"http://github.com/owner/repo",
		"https://github.com/owner/repo/",
		"https://github.com/owner/repo.git",
	} {
		res, err := r.Resolve(context.Background(), input)
		if err != nil {
			t.Errorf("Resolve(%q) failed: %v", input, err)
			continue
		}
		if res.Repo.FullName() != "owner/repo" {
			t.Errorf("Resolve(%q): got %s", input, res.Repo.FullName())
		}
		if res.Repo.Source != explain.SourceURL {
			t.Errorf("Resolve(%q): expected url source, got %s", input, res.Repo.Source)
		}
	}
	if client.searchCalls != 0 {
		t.Errorf("URL forms must not invoke search, got %d calls", client.searchCalls)
	}
}

func TestResolveOfflineDirectOnly(t *testing.T) {
	r := New(nil, true)

	res, err := r.Resolve(context.Background(), "facebook/react")
	if err != nil {
		t.Fatalf("offline owner/name resolve failed: %v", err)
	}
	if res.Repo.SizeBytes != 0 {
		t.Errorf("offline metadata should stay zero, got %d", res.Repo.SizeBytes)
	}

	_, err = r.Resolve(context.Background(), "react router")
	if !errors.Is(err, explain.ErrNotFound) {
		t.Errorf("offline free text should fail with ErrNotFound, got %v", err)
	}
}

func TestResolveSearchEmpty(t *testing.T) {
	client := &fakeClient{}
	r := New(client, false)

	_, err := r.Resolve(context.Background(), "definitely no such project")
	if !errors.Is(err, explain.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
	if client.searchCalls != 1 {
		t.Errorf("expected 1 search call, got %d", client.searchCalls)
	}
}

func TestResolveSearchAutoSelect(t *testing.T) {
	client := &fakeClient{searchResults: []explain.Repository{
		{Owner: "remix-run", Name: "react-router"},
		{Owner: "someone", Name: "unrelated-thing"},
	}}
	r := New(client, false)

	res, err := r.Resolve(context.Background(), "react-router")
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if res.Ambiguous() {
		t.Fatalf("expected auto-selection, got %d candidates", len(res.Candidates))
	}
	if res.Repo.FullName() != "remix-run/react-router" {
		t.Errorf("got %s", res.Repo.FullName())
	}
	if res.Repo.Source != explain.SourceSearch {
		t.Errorf("expected search source, got %s", res.Repo.Source)
	}
}

func TestResolveSearchAmbiguous(t *testing.T) {
	// Two near-identical names: neither should lead by enough to auto-select.
	client := &fakeClient{searchResults: []explain.Repository{
		{Owner: "a", Name: "router"},
		{Owner: "b", Name: "router"},
	}}
	r := New(client, false)

	res, err := r.Resolve(context.Background(), "router")
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if !res.Ambiguous() {
		t.Fatal("expected ambiguous resolution")
	}
	if len(res.Candidates) != 2 {
		t.Errorf("expected 2 candidates, got %d", len(res.Candidates))
	}
}

func TestRankOrdering(t *testing.T) {
	results := []explain.Repository{
		{Owner: "z", Name: "barely-related"},
		{Owner: "facebook", Name: "react"},
		{Owner: "other", Name: "react-clone"},
	}

	ranked := Rank("react", results)
	if ranked[0].Repo.Name != "react" {
		t.Errorf("expected exact match first, got %s", ranked[0].Repo.FullName())
	}
	if ranked[0].Score != 1.0 {
		t.Errorf("exact match should score 1.0, got %f", ranked[0].Score)
	}
	for i := 1; i < len(ranked); i++ {
		if ranked[i].Score > ranked[i-1].Score {
			t.Errorf("candidates not sorted: %f after %f", ranked[i].Score, ranked[i-1].Score)
		}
	}
}

func TestRankEditDistanceScoring(t *testing.T) {
	// Neither an exact nor a substring match: the edit-distance branch
	// must score these, closer names higher.
	results := []explain.Repository{
		{Owner: "pallets", Name: "flask"},
		{Owner: "tiangolo", Name: "fastapi"},
	}

	ranked := Rank("flsk", results)
	if ranked[0].Repo.Name != "flask" {
		t.Errorf("expected flask ranked first for 'flsk', got %s", ranked[0].Repo.FullName())
	}
	for _, c := range ranked {
		if c.Score <= 0 || c.Score >= 0.9 {
			t.Errorf("%s: edit-distance score %f outside (0, 0.9)", c.Repo.FullName(), c.Score)
		}
	}
}

func TestSanitize(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"  facebook/react  ", "facebook/react"},
		{"owner/repo; rm -rf /", "owner/repo rm -rf /"},
		{"a`b$c|d&e>f<g", "abcdefg"},
	}
	for _, tt := range tests {
		if got := Sanitize(tt.in); got != tt.want {
			t.Errorf("Sanitize(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestValidateNameParts(t *testing.T) {
	client := &fakeClient{}
	r := New(client, true)

	for _, input := range []string{"null/repo", "owner/undefined"} {
		if _, err := r.Resolve(context.Background(), input); !errors.Is(err, explain.ErrNotFound) {
			t.Errorf("Resolve(%q): expected ErrNotFound, got %v", input, err)
		}
	}
}
