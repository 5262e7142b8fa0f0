package github

import (
	"errors"
	"testing"

	"github.com/bhumika152/GitAssistant-Ollama/internal/core/domain"
)

func TestParseURL(t *testing.T) {
	cases := []struct {
		name  string
		url   string
		owner string
		repo  string
	}{
		{"https", "https://github.com/acme/widgets", "acme", "widgets"},
		{"https with .git", "https://github.com/acme/widgets.git", "acme", "widgets"},
		{"https trailing slash", "https://github.com/acme/widgets/", "acme", "widgets"},
		{"ssh", "git@github.com:acme/widgets.git", "acme", "widgets"},
		{"no scheme", "github.com/acme/widgets", "acme", "widgets"},
		{"shorthand", "acme/widgets", "acme", "widgets"},
		{"dotted repo", "https://github.com/acme/widgets.go.git", "acme", "widgets"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			ref, err := ParseURL(tc.url)
			if err != nil {
				t.Fatalf("ParseURL(%q): %v", tc.url, err)
			}
			if ref.Owner != tc.owner || ref.Name != tc.repo {
				t.Errorf("got %s/%s, want %s/%s", ref.Owner, ref.Name, tc.owner, tc.repo)
			}
			if ref.FullName != tc.owner+"/"+tc.repo {
				t.Errorf("FullName = %q", ref.FullName)
			}
		})
	}
}

func TestParseURLInvalid(t *testing.T) {
	for _, url := range []string{"", "not a url", "https://gitlab.com/acme/widgets", "justaname"} {
		t.Run(url, func(t *testing.T) {
			_, err := ParseURL(url)
			if !errors.Is(err, domain.ErrInvalidRepoURL) {
				t.Errorf("ParseURL(%q) = %v, want ErrInvalidRepoURL", url, err)
			}
		})
	}
}

func TestCloneURL(t *testing.T) {
	ref := domain.RepoRef{Owner: "acme", Name: "widgets", FullName: "acme/widgets"}

	if got := CloneURL(ref, ""); got != "https://github.com/acme/widgets.git" {
		t.Errorf("anonymous clone URL = %q", got)
	}
	if got := CloneURL(ref, "tok123"); got != "https://tok123@github.com/acme/widgets.git" {
		t.Errorf("authenticated clone URL = %q", got)
	}
}

func TestRedactToken(t *testing.T) {
	cases := map[string]string{
		"https://tok123@github.com/acme/widgets.git": "https://github.com/acme/widgets.git",
		"https://github.com/acme/widgets.git":        "https://github.com/acme/widgets.git",
		"git@github.com:acme/widgets.git":            "git@github.com:acme/widgets.git",
	}
	for in, want := range cases {
		if got := redactToken(in); got != want {
			t.Errorf("redactToken(%q) = %q, want %q", in, got, want)
		}
	}
}
