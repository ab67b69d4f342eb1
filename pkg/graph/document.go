package graph

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"
)

// DocumentVersion is the current serialization format version.
const DocumentVersion = 1

// DocumentMeta carries document-level metadata.
type DocumentMeta struct {
	Title   string    `json:"title" bson:"title"`
	Created time.Time `json:"created" bson:"created"`
	Version int       `json:"version" bson:"version"`
}

// Document is the canonical serialization format for a mind map: the
// full graph state as one blob. Used for persistence, export and the
// HTTP preview.
//
// The format is human-readable and designed for round-trip fidelity:
// load → edit → save → re-load produces an equivalent graph. Node order
// is preserved because insertion order is significant for layout.
type Document struct {
	Nodes    []Node       `json:"nodes" bson:"nodes"`
	Edges    []Edge       `json:"edges" bson:"edges"`
	Selected string       `json:"selected,omitempty" bson:"selected,omitempty"`
	Viewport Viewport     `json:"viewport" bson:"viewport"`
	Meta     DocumentMeta `json:"meta" bson:"meta"`
}

// NewDocument returns an empty document with a default viewport and
// metadata stamped with the current time.
func NewDocument(title string) Document {
	return Document{
		Viewport: Viewport{Scale: 1},
		Meta: DocumentMeta{
			Title:   title,
			Created: time.Now().UTC(),
			Version: DocumentVersion,
		},
	}
}

// Clone returns a deep copy of the document.
func (d Document) Clone() Document {
	c := d
	c.Nodes = CloneNodes(d.Nodes)
	c.Edges = CloneEdges(d.Edges)
	return c
}

// MarshalDocument converts a document to pretty-printed JSON bytes.
func MarshalDocument(d Document) ([]byte, error) {
	var buf bytes.Buffer
	if err := writeDocumentTo(d, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// UnmarshalDocument deserializes JSON bytes into a document. A zero
// viewport scale is normalized to 1 so older or hand-edited blobs stay
// renderable.
func UnmarshalDocument(data []byte) (Document, error) {
	var d Document
	if err := json.Unmarshal(data, &d); err != nil {
		return Document{}, fmt.Errorf("decode document: %w", err)
	}
	if d.Viewport.Scale == 0 {
		d.Viewport.Scale = 1
	}
	if d.Meta.Version == 0 {
		d.Meta.Version = DocumentVersion
	}
	return d, nil
}

// WriteDocument writes a document as JSON to an io.Writer.
func WriteDocument(d Document, w io.Writer) error {
	return writeDocumentTo(d, w)
}

// WriteDocumentFile writes a document to a JSON file with 0644
// permissions.
func WriteDocumentFile(d Document, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return writeDocumentTo(d, f)
}

// ReadDocument decodes a JSON document from an io.Reader.
func ReadDocument(r io.Reader) (Document, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return Document{}, fmt.Errorf("read document: %w", err)
	}
	return UnmarshalDocument(data)
}

// ReadDocumentFile reads a JSON file and returns the decoded document.
func ReadDocumentFile(path string) (Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return Document{}, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return ReadDocument(f)
}

func writeDocumentTo(d Document, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(d); err != nil {
		return fmt.Errorf("encode document: %w", err)
	}
	return nil
}
