package blob

import (
	"context"

	"github.com/mindweave/mindweave/pkg/graph"
	"github.com/mindweave/mindweave/pkg/observability"
)

// DocumentKey is the single fixed key the engine persists under.
const DocumentKey = "mindweave:document"

// Persister implements the engine's load/save contract against a blob
// store: one document, one fixed key.
type Persister struct {
	store Store
	key   string
}

// NewPersister wraps a store. A nil store degrades to the null store so
// callers never have to branch.
func NewPersister(store Store) *Persister {
	if store == nil {
		store = NewNullStore()
	}
	return &Persister{store: store, key: DocumentKey}
}

// Load returns the persisted document, or nil when no usable state
// exists. Backend errors and unparsable blobs are both treated as
// absence of saved state - Load never surfaces an error to the caller,
// so the engine can always fall back to an empty default graph.
func (p *Persister) Load(ctx context.Context) *graph.Document {
	data, ok, err := p.store.Get(ctx, p.key)
	if err != nil || !ok {
		observability.Persist().OnLoad(ctx, false)
		return nil
	}
	doc, err := graph.UnmarshalDocument(data)
	if err != nil {
		observability.Persist().OnLoad(ctx, false)
		return nil
	}
	observability.Persist().OnLoad(ctx, true)
	return &doc
}

// Save serializes the document and writes it to the fixed key.
func (p *Persister) Save(ctx context.Context, doc graph.Document) error {
	data, err := graph.MarshalDocument(doc)
	if err != nil {
		observability.Persist().OnSave(ctx, 0, err)
		return err
	}
	err = p.store.Set(ctx, p.key, data)
	observability.Persist().OnSave(ctx, len(data), err)
	return err
}

// Close closes the underlying store.
func (p *Persister) Close() error { return p.store.Close() }
