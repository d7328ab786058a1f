// Package resolve turns a free-form repository reference into a concrete
// repository target, or a ranked list of candidates when the reference is a
// search term.
package resolve

import (
	"context"
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/agext/levenshtein"

	"github.com/sstitle/public-explanation/internal/explain"
)

var (
	urlPattern       = regexp.MustCompile(`^https?://github\.com/([a-zA-Z0-9._-]+)/([a-zA-Z0-9._-]+?)(?:\.git)?/?$`)
	ownerNamePattern = regexp.MustCompile(`^([a-zA-Z0-9._-]+)/([a-zA-Z0-9._-]+)$`)
	namePartPattern  = regexp.MustCompile(`^[a-zA-Z0-9._-]+$`)
)

// Ranking constants. A search result is auto-selected only when its score
// clears autoSelectThreshold and leads the runner-up by at least
// autoSelectMargin; anything less is surfaced for interactive selection.
const (
	autoSelectThreshold = 0.8
	autoSelectMargin    = 0.1
	searchLimit         = 10
)

// SearchClient is the slice of the GitHub API the resolver needs.
type SearchClient interface {
	Repo(ctx context.Context, owner, name string) (explain.Repository, error)
	Search(ctx context.Context, query string, limit int) ([]explain.Repository, error)
}

// Candidate is a search result paired with its similarity score.
type Candidate struct {
	Repo  explain.Repository
	Score float64
}

// Resolution is the tagged result of resolving a reference: either a single
// repository, or a ranked candidate set awaiting selection.
type Resolution struct {
	Repo       explain.Repository
	Candidates []Candidate
}

// Ambiguous reports whether the caller must select among candidates.
func (r Resolution) Ambiguous() bool {
	return len(r.Candidates) > 0
}

// Resolver resolves repository references. In offline mode no network calls
// are made: only URL and owner/name forms are accepted and metadata fields
// stay zero.
type Resolver struct {
	Client  SearchClient
	Offline bool
}

// New returns a resolver backed by the given client.
func New(client SearchClient, offline bool) *Resolver {
	return &Resolver{Client: client, Offline: offline}
}

// Resolve parses input as a GitHub URL, an owner/name pair, or a free-text
// search query, in that order. Direct forms never hit the search API.
func (r *Resolver) Resolve(ctx context.Context, input string) (Resolution, error) {
	input = Sanitize(input)

	if m := urlPattern.FindStringSubmatch(input); m != nil {
		return r.direct(ctx, m[1], m[2], explain.SourceURL)
	}

	if m := ownerNamePattern.FindStringSubmatch(input); m != nil {
		return r.direct(ctx, m[1], m[2], explain.SourceOwnerName)
	}

	if r.Offline {
		return Resolution{}, fmt.Errorf("cannot search for %q without API access (use owner/name or a URL): %w",
			input, explain.ErrNotFound)
	}
	return r.search(ctx, input)
}

// direct builds a resolution for an explicitly named repository, fetching
// metadata unless running offline.
func (r *Resolver) direct(ctx context.Context, owner, name string, source explain.SourceType) (Resolution, error) {
	if err := validateNamePart(owner); err != nil {
		return Resolution{}, err
	}
	if err := validateNamePart(name); err != nil {
		return Resolution{}, err
	}

	repo := explain.Repository{Owner: owner, Name: name, Source: source}
	if r.Offline {
		return Resolution{Repo: repo}, nil
	}

	fetched, err := r.Client.Repo(ctx, owner, name)
	if err != nil {
		return Resolution{}, fmt.Errorf("resolving %s/%s: %w", owner, name, err)
	}
	fetched.Source = source
	return Resolution{Repo: fetched}, nil
}

func (r *Resolver) search(ctx context.Context, query string) (Resolution, error) {
	results, err := r.Client.Search(ctx, query, searchLimit)
	if err != nil {
		return Resolution{}, fmt.Errorf("searching for %q: %w", query, err)
	}
	if len(results) == 0 {
		return Resolution{}, fmt.Errorf("no repositories match %q: %w", query, explain.ErrNotFound)
	}

	candidates := Rank(query, results)

	best := candidates[0]
	lead := best.Score
	if len(candidates) > 1 {
		lead = best.Score - candidates[1].Score
	}
	if best.Score >= autoSelectThreshold && lead >= autoSelectMargin {
		repo := best.Repo
		repo.Source = explain.SourceSearch
		return Resolution{Repo: repo}, nil
	}

	for i := range candidates {
		candidates[i].Repo.Source = explain.SourceSearch
	}
	return Resolution{Candidates: candidates}, nil
}

// Rank scores results against the query and sorts them best-first. The sort
// is stable so equal scores keep GitHub's stars order.
func Rank(query string, results []explain.Repository) []Candidate {
	candidates := make([]Candidate, len(results))
	for i, repo := range results {
		candidates[i] = Candidate{Repo: repo, Score: similarity(query, repo)}
	}
	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].Score > candidates[j].Score
	})
	return candidates
}

// similarity scores a repository against the query: 1.0 for an exact match
// on full name or name, 0.9 for a substring match, otherwise the mean of the
// Levenshtein similarities against full name and bare name.
func similarity(query string, repo explain.Repository) float64 {
	q := strings.ToLower(strings.TrimSpace(query))
	full := strings.ToLower(repo.FullName())
	name := strings.ToLower(repo.Name)

	if q == full || q == name {
		return 1.0
	}
	if strings.Contains(full, q) {
		return 0.9
	}

	fullSim := levenshtein.Similarity(q, full, nil)
	nameSim := levenshtein.Similarity(q, name, nil)
	return (fullSim + nameSim) / 2
}

// Sanitize trims whitespace and strips shell-risk characters from user input.
func Sanitize(input string) string {
	input = strings.TrimSpace(input)
	for _, c := range []string{"`", "$", ";", "|", "&", ">", "<"} {
		input = strings.ReplaceAll(input, c, "")
	}
	return input
}

func validateNamePart(part string) error {
	if !namePartPattern.MatchString(part) {
		return fmt.Errorf("invalid repository reference segment %q: %w", part, explain.ErrNotFound)
	}
	switch strings.ToLower(part) {
	case "null", "undefined":
		return fmt.Errorf("invalid repository reference segment %q: %w", part, explain.ErrNotFound)
	}
	return nil
}
