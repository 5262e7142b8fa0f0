package domain

import "strings"

// MaxCollectionNameLen caps collection names to the common backend
// limit so names stay stable across storage engines.
const MaxCollectionNameLen = 63

// CollectionName derives the vector collection name for a repository.
// It is a pure function of the repository short name: the same
// repository always resolves to the same collection, which is what
// makes index reuse across runs possible.
//
// The derived name matches ^[a-z0-9_.-]{1,63}$.
func CollectionName(repoName string) string {
	name := "repo_" + repoName
	name = strings.ReplaceAll(name, "-", "_")
	name = strings.ReplaceAll(name, ".", "_")

	var b strings.Builder
	b.Grow(len(name))
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == '_' || r == '-' || r == '.':
			b.WriteRune(r)
		}
	}

	name = strings.ToLower(b.String())
	if len(name) > MaxCollectionNameLen {
		name = name[:MaxCollectionNameLen]
	}
	return name
}
