package loadingpaper

import (
	"errors"
	"sync"

	"github.com/zubbicodes/adsonsLab/internal/entity"
)

// ErrNoDocument is returned by session operations when nothing has been
// ingested yet (or the session was reset).
var ErrNoDocument = errors.New("no active loading paper")

// The transition functions below are pure: each takes the current document and
// returns the next one without touching the input. The serial density and
// totals-equals-fold invariants hold after every transition.

// SetHeaderNote replaces the free-text header annotation. No other header
// field is editable after ingestion.
func SetHeaderNote(doc *entity.Document, value string) *entity.Document {
	next := cloneDocument(doc)
	next.Header.HeaderNote = value
	return next
}

// SetItemRemark sets the remark on the item with the given serial. Unknown
// serials leave the document unchanged. Totals are untouched: remarks carry no
// numeric weight.
func SetItemRemark(doc *entity.Document, sr int, value string) *entity.Document {
	next := cloneDocument(doc)
	for i := range next.Items {
		if next.Items[i].SR == sr {
			next.Items[i].Remarks = value
			break
		}
	}
	return next
}

// SetItemDisplayName overrides the rendered item name on the matching item.
// Same no-op and no-totals-impact rules as SetItemRemark.
func SetItemDisplayName(doc *entity.Document, sr int, value string) *entity.Document {
	next := cloneDocument(doc)
	for i := range next.Items {
		if next.Items[i].SR == sr {
			next.Items[i].EditedItemName = value
			break
		}
	}
	return next
}

// DeleteItem removes the item with the given serial, renumbers the remaining
// items 1..N in their existing relative order (no re-sort), and recomputes
// totals. Unknown serials leave the document unchanged.
func DeleteItem(doc *entity.Document, sr int) *entity.Document {
	next := cloneDocument(doc)
	items := next.Items[:0]
	for _, it := range next.Items {
		if it.SR != sr {
			items = append(items, it)
		}
	}
	for i := range items {
		items[i].SR = i + 1
	}
	next.Items = items
	next.Totals = ComputeTotals(items)
	return next
}

func cloneDocument(doc *entity.Document) *entity.Document {
	next := *doc
	next.Items = make([]entity.LineItem, len(doc.Items))
	copy(next.Items, doc.Items)
	return &next
}

// Session holds the single live document. Exactly one document exists at a
// time; re-ingestion replaces it wholesale. The mutex serializes concurrent
// HTTP handlers, so operations apply in arrival order.
type Session struct {
	mu  sync.RWMutex
	doc *entity.Document
}

func NewSession() *Session {
	return &Session{}
}

// Ingest parses and normalizes raw DC JSON and installs the result as the live
// document. On failure the previous document is kept.
func (s *Session) Ingest(raw []byte) (*entity.Document, error) {
	parsed, err := Parse(raw)
	if err != nil {
		return nil, err
	}
	doc := Normalize(parsed.Rows)

	s.mu.Lock()
	s.doc = doc
	s.mu.Unlock()
	return doc, nil
}

// Current returns a snapshot of the live document.
func (s *Session) Current() (*entity.Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.doc == nil {
		return nil, ErrNoDocument
	}
	return cloneDocument(s.doc), nil
}

// Reset discards the live document.
func (s *Session) Reset() {
	s.mu.Lock()
	s.doc = nil
	s.mu.Unlock()
}

// Apply runs a pure transition against the live document and installs the
// result, returning a snapshot of it.
func (s *Session) Apply(fn func(*entity.Document) *entity.Document) (*entity.Document, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.doc == nil {
		return nil, ErrNoDocument
	}
	s.doc = fn(s.doc)
	return cloneDocument(s.doc), nil
}

func (s *Session) SetHeaderNote(value string) (*entity.Document, error) {
	return s.Apply(func(doc *entity.Document) *entity.Document {
		return SetHeaderNote(doc, value)
	})
}

func (s *Session) SetItemRemark(sr int, value string) (*entity.Document, error) {
	return s.Apply(func(doc *entity.Document) *entity.Document {
		return SetItemRemark(doc, sr, value)
	})
}

func (s *Session) SetItemDisplayName(sr int, value string) (*entity.Document, error) {
	return s.Apply(func(doc *entity.Document) *entity.Document {
		return SetItemDisplayName(doc, sr, value)
	})
}

func (s *Session) DeleteItem(sr int) (*entity.Document, error) {
	return s.Apply(func(doc *entity.Document) *entity.Document {
		return DeleteItem(doc, sr)
	})
}
