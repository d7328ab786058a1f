package collab

import (
	"context"
	"fmt"
	"strconv"
)

const truncationNotice = "\n\n[CONTENT TRUNCATED - repository exceeded the total size limit]"

// Extract runs gitingest against the repository URL and returns the digest.
// Per-file filtering happens inside gitingest via its max-size flag; the
// total cap is enforced here by truncation.
func (t *Tools) Extract(ctx context.Context, repoURL string, maxFileKB, maxTotalKB int) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, extractTimeout)
	defer cancel()

	args := []string{repoURL, "-o", "-", "-s", strconv.Itoa(maxFileKB * 1024)}
	t.logf("extracting: %s %v", t.Gitingest, args)

	res, err := t.run(ctx, invocation{name: t.Gitingest, args: args})
	if err != nil {
		return "", collabError(t.Gitingest, res, err)
	}
	if res.stdout == "" {
		return "", collabError(t.Gitingest, res, fmt.Errorf("produced no output"))
	}

	t.logf("digest: %d bytes", len(res.stdout))
	return capDigest(res.stdout, maxTotalKB), nil
}

// capDigest truncates a digest that exceeds the total size limit, leaving
// headroom for the truncation notice and multi-byte characters.
func capDigest(digest string, maxTotalKB int) string {
	limit := maxTotalKB * 1024
	if len(digest) <= limit {
		return digest
	}
	cut := limit * 8 / 10
	return digest[:cut] + truncationNotice
}
