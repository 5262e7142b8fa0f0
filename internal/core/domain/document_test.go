package domain

import "testing"

func TestDocumentRoundTrip(t *testing.T) {
	doc := Document{
		Content:  "func main() {}",
		FilePath: "cmd/main.go",
		Language: "go",
		ChunkID:  3,
	}

	got := Reconstruct(doc.Content, doc.Meta())
	if got != doc {
		t.Errorf("reconstructed document differs: %+v vs %+v", got, doc)
	}
}

func TestDocumentString(t *testing.T) {
	doc := Document{Content: "abc", FilePath: "a.py", Language: "python"}
	want := "Document(file=a.py, chunk=0, len=3)"
	if doc.String() != want {
		t.Errorf("expected %q, got %q", want, doc.String())
	}
}
