package domain

// RepoRef identifies a repository on the code host.
type RepoRef struct {
	// Owner is the user or organisation.
	Owner string

	// Name is the repository short name. The collection identity is
	// derived from it, see CollectionName.
	Name string

	// FullName is "owner/name".
	FullName string
}

// RepositoryInfo describes a locally cloned repository.
// Only Name feeds retrieval; the rest is display metadata.
type RepositoryInfo struct {
	Name      string
	Branch    string
	Commit    string
	RemoteURL string
	Path      string

	// Description and RemoteLanguages come from the code host API when
	// a client is configured; both may be empty.
	Description     string
	RemoteLanguages []string
}

// IndexOptions controls one IndexRepository run. The two flags are
// independent: a fresh clone reuses an existing index when the content
// is unchanged, and a rebuilt index can work off the existing clone.
type IndexOptions struct {
	// FreshClone removes the local clone and clones again.
	FreshClone bool

	// RebuildIndex discards the existing collection and re-embeds.
	RebuildIndex bool
}

// IndexReport summarises one IndexRepository run.
type IndexReport struct {
	Repository RepositoryInfo

	// Files is the number of processable files scanned.
	Files int

	// Chunks is the number of document chunks produced.
	Chunks int

	// Languages maps language tag to chunk count.
	Languages map[string]int

	// CacheHit is true when the collection was already populated and
	// no embedding work was performed.
	CacheHit bool
}

// Answer is a generated response grounded in retrieved chunks.
type Answer struct {
	Text string

	// Sources are the chunks the answer was grounded on, in retrieval
	// order (most relevant first).
	Sources []RetrievedDocument
}
