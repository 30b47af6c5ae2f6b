// Package sandbox casos de uso del backend local de desarrollo: CRUD de documentos JSON por
// recurso, autenticación con bcrypt + JWT y contadores del dashboard.
package sandbox

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/backoffice-umkm/internal/application/resource"
	"github.com/jhoicas/backoffice-umkm/internal/domain"
	"github.com/jhoicas/backoffice-umkm/internal/domain/entity"
	"github.com/jhoicas/backoffice-umkm/internal/domain/repository"
	"github.com/jhoicas/backoffice-umkm/pkg/logger"
)

const (
	fieldPassword = "password"
	fieldHash     = "password_hash"
)

// RecordService CRUD genérico sobre RecordStore. La colección es el nombre del recurso.
type RecordService struct {
	store repository.RecordStore
	log   *logger.Logger
}

// NewRecordService construye el servicio.
func NewRecordService(store repository.RecordStore, log *logger.Logger) *RecordService {
	if log == nil {
		log = logger.Nop()
	}
	return &RecordService{store: store, log: log.Named("sandbox")}
}

// List documentos del recurso sin campos de password.
func (s *RecordService) List(ctx context.Context, desc resource.Descriptor) ([]repository.Document, error) {
	docs, err := s.store.List(ctx, string(desc.Name))
	if err != nil {
		return nil, fmt.Errorf("sandbox: listar %s: %w", desc.Name, err)
	}
	for i := range docs {
		docs[i] = sanitize(docs[i])
	}
	return docs, nil
}

// Get un documento (sin password).
func (s *RecordService) Get(ctx context.Context, desc resource.Descriptor, id string) (repository.Document, error) {
	doc, err := s.store.Get(ctx, string(desc.Name), id)
	if err != nil {
		return nil, err
	}
	return sanitize(doc), nil
}

// Create asigna id si falta (secuencial o uuid según el recurso) y hashea el password.
func (s *RecordService) Create(ctx context.Context, desc resource.Descriptor, doc repository.Document) (repository.Document, error) {
	if doc == nil {
		return nil, fmt.Errorf("%w: cuerpo vacío", domain.ErrInvalidInput)
	}
	doc = copyDoc(doc)

	id := DocID(doc, desc.IDField)
	if id == "" {
		if desc.SequentialID {
			n, err := s.store.NextSeq(ctx, string(desc.Name))
			if err != nil {
				return nil, fmt.Errorf("sandbox: secuencia %s: %w", desc.Name, err)
			}
			doc[desc.IDField] = n
			id = strconv.FormatInt(n, 10)
		} else {
			id = uuid.NewString()
			doc[desc.IDField] = id
		}
	}

	if err := hashPassword(doc); err != nil {
		return nil, err
	}
	if err := s.store.Insert(ctx, string(desc.Name), id, doc); err != nil {
		return nil, err
	}
	s.log.Debug().Str("resource", string(desc.Name)).Str("id", id).Msg("registro creado")
	return sanitize(doc), nil
}

// Update mezcla los campos enviados sobre el documento guardado. PATCH y PUT se comportan igual.
// El id del path manda; un password vacío se ignora.
func (s *RecordService) Update(ctx context.Context, desc resource.Descriptor, id string, patch repository.Document) (repository.Document, error) {
	current, err := s.store.Get(ctx, string(desc.Name), id)
	if err != nil {
		return nil, err
	}
	for k, v := range patch {
		if k == desc.IDField || k == fieldHash {
			continue
		}
		if k == fieldPassword {
			if str, _ := v.(string); str == "" {
				continue
			}
		}
		current[k] = v
	}
	if err := hashPassword(current); err != nil {
		return nil, err
	}
	if err := s.store.Replace(ctx, string(desc.Name), id, current); err != nil {
		return nil, err
	}
	return sanitize(current), nil
}

// Delete borra por id.
func (s *RecordService) Delete(ctx context.Context, desc resource.Descriptor, id string) error {
	return s.store.Delete(ctx, string(desc.Name), id)
}

// Counts los seis totales, consultados en paralelo.
func (s *RecordService) Counts(ctx context.Context) (entity.DashboardCounts, error) {
	names := []resource.Name{resource.Users, resource.Customers, resource.Products, resource.Orders, resource.OrderItems, resource.Categories}

	type countResult struct {
		idx int
		n   int
		err error
	}
	ch := make(chan countResult, len(names))
	for i, n := range names {
		go func(i int, name resource.Name) {
			c, err := s.store.Count(ctx, string(name))
			ch <- countResult{i, c, err}
		}(i, n)
	}

	values := make([]int, len(names))
	for range names {
		r := <-ch
		if r.err != nil {
			return entity.DashboardCounts{}, fmt.Errorf("sandbox: contar %s: %w", names[r.idx], r.err)
		}
		values[r.idx] = r.n
	}
	return entity.DashboardCounts{
		Users: values[0], Customers: values[1], Products: values[2],
		Orders: values[3], OrderItems: values[4], Categories: values[5],
	}, nil
}

// DocID id del documento como string ("" si falta). Acepta string o número.
func DocID(doc repository.Document, field string) string {
	switch v := doc[field].(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(v)
	case json.Number:
		return v.String()
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case int64:
		return strconv.FormatInt(v, 10)
	case int:
		return strconv.Itoa(v)
	default:
		return fmt.Sprint(v)
	}
}

func hashPassword(doc repository.Document) error {
	pw, ok := doc[fieldPassword].(string)
	if !ok {
		delete(doc, fieldPassword)
		return nil
	}
	delete(doc, fieldPassword)
	if pw == "" {
		return nil
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(pw), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("sandbox: hash de password: %w", err)
	}
	doc[fieldHash] = string(hash)
	return nil
}

func sanitize(doc repository.Document) repository.Document {
	out := copyDoc(doc)
	delete(out, fieldPassword)
	delete(out, fieldHash)
	return out
}

func copyDoc(doc repository.Document) repository.Document {
	out := make(repository.Document, len(doc))
	for k, v := range doc {
		out[k] = v
	}
	return out
}
