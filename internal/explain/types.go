// Package explain defines the core data types shared across public-explanation.
package explain

import "fmt"

// SourceType records which input form a repository reference was parsed from.
type SourceType int

const (
	SourceURL SourceType = iota
	SourceOwnerName
	SourceSearch
)

func (s SourceType) String() string {
	switch s {
	case SourceURL:
		return "url"
	case SourceOwnerName:
		return "owner/name"
	case SourceSearch:
		return "search"
	default:
		return "unknown"
	}
}

// Repository is a resolved GitHub repository with the metadata this tool
// cares about. Size and descriptive fields are zero when resolved offline.
type Repository struct {
	Owner       string
	Name        string
	Description string
	Stars       int
	SizeBytes   int64
	Language    string
	UpdatedAt   string
	Private     bool
	Source      SourceType
}

// FullName returns the repository in owner/name form.
func (r Repository) FullName() string {
	return r.Owner + "/" + r.Name
}

// URL returns the canonical GitHub URL.
func (r Repository) URL() string {
	return "https://github.com/" + r.FullName()
}

// SizeMB returns the repository size in megabytes.
func (r Repository) SizeMB() float64 {
	return float64(r.SizeBytes) / (1024 * 1024)
}

// Describe returns the description, or a placeholder when none is set.
func (r Repository) Describe() string {
	if r.Description == "" {
		return "No description"
	}
	return r.Description
}

func (r Repository) String() string {
	return fmt.Sprintf("%s (%.1fMB)", r.FullName(), r.SizeMB())
}
