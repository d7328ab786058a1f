package collab

import (
	"fmt"
	"io"
	"strings"

	"github.com/alecthomas/chroma/v2/quick"

	"github.com/sstitle/public-explanation/internal/explain"
)

// BuildPrompt assembles the explanation prompt from repository metadata, the
// user's question, and the extracted digest.
func BuildPrompt(repo explain.Repository, question, digest string) string {
	var b strings.Builder

	b.WriteString("You are an expert software engineer helping someone understand a GitHub repository.\n\n")

	b.WriteString("REPOSITORY INFORMATION:\n")
	fmt.Fprintf(&b, "- Name: %s\n", repo.FullName())
	fmt.Fprintf(&b, "- URL: %s\n", repo.URL())
	fmt.Fprintf(&b, "- Description: %s\n", orUnknown(repo.Description))
	fmt.Fprintf(&b, "- Primary Language: %s\n", orUnknown(repo.Language))
	if repo.Stars > 0 {
		fmt.Fprintf(&b, "- Stars: %d\n", repo.Stars)
	} else {
		b.WriteString("- Stars: Unknown\n")
	}

	fmt.Fprintf(&b, "\nUSER QUESTION: %s\n", question)

	b.WriteString("\nREPOSITORY CONTENT:\n")
	b.WriteString(digest)
	b.WriteString("\n")

	b.WriteString(`
INSTRUCTIONS:
1. Answer the user's question about this repository in detail
2. Use specific examples from the actual code when relevant
3. Explain concepts clearly for someone trying to understand or use this repository
4. If the question is about usage, provide practical examples
5. If the question is about architecture, explain the design patterns and structure
6. Format your response in clear, well-structured Markdown
7. Use code blocks with appropriate syntax highlighting when showing examples
8. Be thorough but concise - focus on what's most relevant to the question

`)
	fmt.Fprintf(&b, "Please provide a comprehensive explanation that directly addresses: %q\n", question)

	return b.String()
}

func orUnknown(s string) string {
	if s == "" {
		return "Unknown"
	}
	return s
}

// PreviewPrompt writes a syntax-highlighted preview of the prompt, used in
// verbose mode. Falls back to plain text when highlighting fails.
func PreviewPrompt(w io.Writer, prompt string) {
	if err := quick.Highlight(w, prompt, "markdown", "terminal256", "dracula"); err != nil {
		fmt.Fprint(w, prompt)
	}
}
