// Package memory RecordStore en memoria para el sandbox (se pierde al reiniciar).
package memory

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/jhoicas/backoffice-umkm/internal/domain"
	"github.com/jhoicas/backoffice-umkm/internal/domain/repository"
)

var _ repository.RecordStore = (*RecordStore)(nil)

type collection struct {
	order []string
	docs  map[string]repository.Document
	seq   int64
}

// RecordStore colecciones en memoria protegidas por un RWMutex. Los documentos se copian
// al entrar y al salir para que nadie comparta mapas con el store.
type RecordStore struct {
	mu   sync.RWMutex
	data map[string]*collection
}

func NewRecordStore() *RecordStore {
	return &RecordStore{data: make(map[string]*collection)}
}

func (s *RecordStore) coll(name string) *collection {
	c, ok := s.data[name]
	if !ok {
		c = &collection{docs: make(map[string]repository.Document)}
		s.data[name] = c
	}
	return c
}

func (s *RecordStore) List(_ context.Context, name string) ([]repository.Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	c, ok := s.data[name]
	if !ok {
		return []repository.Document{}, nil
	}
	out := make([]repository.Document, 0, len(c.order))
	for _, id := range c.order {
		out = append(out, clone(c.docs[id]))
	}
	return out, nil
}

func (s *RecordStore) Get(_ context.Context, name, id string) (repository.Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	c, ok := s.data[name]
	if !ok {
		return nil, domain.ErrNotFound
	}
	doc, ok := c.docs[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return clone(doc), nil
}

func (s *RecordStore) Insert(_ context.Context, name, id string, doc repository.Document) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	c := s.coll(name)
	if _, exists := c.docs[id]; exists {
		return fmt.Errorf("%s/%s: %w", name, id, domain.ErrDuplicate)
	}
	c.docs[id] = clone(doc)
	c.order = append(c.order, id)
	return nil
}

func (s *RecordStore) Replace(_ context.Context, name, id string, doc repository.Document) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.data[name]
	if !ok {
		return domain.ErrNotFound
	}
	if _, exists := c.docs[id]; !exists {
		return domain.ErrNotFound
	}
	c.docs[id] = clone(doc)
	return nil
}

func (s *RecordStore) Delete(_ context.Context, name, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.data[name]
	if !ok {
		return domain.ErrNotFound
	}
	if _, exists := c.docs[id]; !exists {
		return domain.ErrNotFound
	}
	delete(c.docs, id)
	for i, v := range c.order {
		if v == id {
			c.order = append(c.order[:i], c.order[i+1:]...)
			break
		}
	}
	return nil
}

func (s *RecordStore) Count(_ context.Context, name string) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	c, ok := s.data[name]
	if !ok {
		return 0, nil
	}
	return len(c.docs), nil
}

// NextSeq nunca reutiliza un número, aunque se borre el último registro.
func (s *RecordStore) NextSeq(_ context.Context, name string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c := s.coll(name)
	c.seq++
	return c.seq, nil
}

// clone copia profunda vía JSON; los documentos siempre son JSON válido.
func clone(doc repository.Document) repository.Document {
	if doc == nil {
		return nil
	}
	b, err := json.Marshal(doc)
	if err != nil {
		out := make(repository.Document, len(doc))
		for k, v := range doc {
			out[k] = v
		}
		return out
	}
	var out repository.Document
	dec := json.NewDecoder(bytes.NewReader(b))
	dec.UseNumber()
	_ = dec.Decode(&out)
	return out
}
