// Package domain contains the core types for the repository question
// answering pipeline: chunked documents, retrieval results, repository
// metadata and the collection naming rule.
package domain
