package domain

import (
	"regexp"
	"strings"
	"testing"
)

var namePattern = regexp.MustCompile(`^[a-z0-9_.-]{1,63}$`)

func TestCollectionName(t *testing.T) {
	t.Run("simple name", func(t *testing.T) {
		got := CollectionName("myrepo")
		if got != "repo_myrepo" {
			t.Errorf("expected repo_myrepo, got %q", got)
		}
	})

	t.Run("dashes and dots replaced", func(t *testing.T) {
		got := CollectionName("my-repo.js")
		if got != "repo_my_repo_js" {
			t.Errorf("expected repo_my_repo_js, got %q", got)
		}
	})

	t.Run("lowercased", func(t *testing.T) {
		got := CollectionName("MyRepo")
		if got != "repo_myrepo" {
			t.Errorf("expected repo_myrepo, got %q", got)
		}
	})

	t.Run("invalid characters stripped", func(t *testing.T) {
		got := CollectionName("re po!@#$")
		if !namePattern.MatchString(got) {
			t.Errorf("name %q does not match charset", got)
		}
	})

	t.Run("truncated to 63", func(t *testing.T) {
		got := CollectionName(strings.Repeat("a", 100))
		if len(got) != MaxCollectionNameLen {
			t.Errorf("expected length %d, got %d", MaxCollectionNameLen, len(got))
		}
	})

	t.Run("deterministic", func(t *testing.T) {
		inputs := []string{"repo", "My-Repo", "x.y-z", strings.Repeat("q", 80)}
		for _, in := range inputs {
			a, b := CollectionName(in), CollectionName(in)
			if a != b {
				t.Errorf("CollectionName(%q) not deterministic: %q vs %q", in, a, b)
			}
			if !namePattern.MatchString(a) {
				t.Errorf("CollectionName(%q) = %q violates pattern", in, a)
			}
		}
	})
}
