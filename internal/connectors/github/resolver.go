// Package github acquires repositories from GitHub: URL parsing, local
// clones via the git binary, and optional API metadata.
package github

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/bhumika152/GitAssistant-Ollama/internal/core/domain"
)

// urlPatterns match the accepted GitHub repository URL forms:
// https://github.com/owner/repo, git@github.com:owner/repo.git and
// bare owner/repo shorthands prefixed with github.com.
var urlPatterns = []*regexp.Regexp{
	regexp.MustCompile(`github\.com[:/]([^/]+)/([^/.]+)`),
	regexp.MustCompile(`github\.com/([^/]+)/([^/]+)\.git`),
}

// bareRef matches an owner/repo shorthand with no host.
var bareRef = regexp.MustCompile(`^([\w.-]+)/([\w.-]+)$`)

// ParseURL extracts the owner and repository name from a GitHub URL or
// an owner/repo shorthand.
func ParseURL(url string) (domain.RepoRef, error) {
	url = strings.TrimSpace(url)
	if url == "" {
		return domain.RepoRef{}, domain.ErrInvalidRepoURL
	}

	for _, pattern := range urlPatterns {
		if m := pattern.FindStringSubmatch(url); m != nil {
			return newRef(m[1], m[2]), nil
		}
	}

	if !strings.Contains(url, "://") && !strings.Contains(url, "github.com") {
		if m := bareRef.FindStringSubmatch(url); m != nil {
			return newRef(m[1], m[2]), nil
		}
	}

	return domain.RepoRef{}, fmt.Errorf("%w: %s", domain.ErrInvalidRepoURL, url)
}

func newRef(owner, name string) domain.RepoRef {
	name = strings.TrimSuffix(name, ".git")
	return domain.RepoRef{
		Owner:    owner,
		Name:     name,
		FullName: owner + "/" + name,
	}
}

// CloneURL returns the https clone URL for a ref, embedding the token
// when one is given so private repositories clone without prompting.
func CloneURL(ref domain.RepoRef, token string) string {
	if token != "" {
		return fmt.Sprintf("https://%s@github.com/%s.git", token, ref.FullName)
	}
	return fmt.Sprintf("https://github.com/%s.git", ref.FullName)
}
