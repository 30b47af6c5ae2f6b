package postgres

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/backoffice-umkm/internal/domain"
	"github.com/jhoicas/backoffice-umkm/internal/domain/repository"
)

var _ repository.RecordStore = (*RecordStore)(nil)

const schema = `
CREATE TABLE IF NOT EXISTS sandbox_records (
	pos        BIGSERIAL,
	collection TEXT  NOT NULL,
	id         TEXT  NOT NULL,
	doc        JSONB NOT NULL,
	PRIMARY KEY (collection, id)
);
CREATE TABLE IF NOT EXISTS sandbox_sequences (
	collection TEXT PRIMARY KEY,
	value      BIGINT NOT NULL
);`

// RecordStore implementación del puerto RecordStore sobre PostgreSQL (usable con pool o tx).
type RecordStore struct {
	q Querier
}

// NewRecordStore construye el adaptador. Pasar pool o tx (Querier).
func NewRecordStore(q Querier) *RecordStore {
	return &RecordStore{q: q}
}

// Migrate crea las tablas si no existen.
func Migrate(ctx context.Context, pool *pgxpool.Pool) error {
	return NewTxRunner(pool).Run(ctx, func(q Querier) error {
		if _, err := q.Exec(ctx, schema); err != nil {
			return fmt.Errorf("migrar esquema sandbox: %w", err)
		}
		return nil
	})
}

func (r *RecordStore) List(ctx context.Context, collection string) ([]repository.Document, error) {
	rows, err := r.q.Query(ctx,
		`SELECT doc FROM sandbox_records WHERE collection = $1 ORDER BY pos`, collection)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", collection, err)
	}
	defer rows.Close()

	out := []repository.Document{}
	for rows.Next() {
		var raw []byte
		if err := rows.Scan(&raw); err != nil {
			return nil, fmt.Errorf("scan %s: %w", collection, err)
		}
		doc, err := decodeDoc(raw)
		if err != nil {
			return nil, err
		}
		out = append(out, doc)
	}
	return out, rows.Err()
}

func (r *RecordStore) Get(ctx context.Context, collection, id string) (repository.Document, error) {
	var raw []byte
	err := r.q.QueryRow(ctx,
		`SELECT doc FROM sandbox_records WHERE collection = $1 AND id = $2`, collection, id).Scan(&raw)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get %s/%s: %w", collection, id, err)
	}
	return decodeDoc(raw)
}

func (r *RecordStore) Insert(ctx context.Context, collection, id string, doc repository.Document) error {
	raw, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("serializar %s: %w", collection, err)
	}
	_, err = r.q.Exec(ctx,
		`INSERT INTO sandbox_records (collection, id, doc) VALUES ($1, $2, $3)`, collection, id, raw)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%s/%s: %w", collection, id, domain.ErrDuplicate)
		}
		return fmt.Errorf("insert %s: %w", collection, err)
	}
	return nil
}

func (r *RecordStore) Replace(ctx context.Context, collection, id string, doc repository.Document) error {
	raw, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("serializar %s: %w", collection, err)
	}
	tag, err := r.q.Exec(ctx,
		`UPDATE sandbox_records SET doc = $3 WHERE collection = $1 AND id = $2`, collection, id, raw)
	if err != nil {
		return fmt.Errorf("update %s/%s: %w", collection, id, err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *RecordStore) Delete(ctx context.Context, collection, id string) error {
	tag, err := r.q.Exec(ctx,
		`DELETE FROM sandbox_records WHERE collection = $1 AND id = $2`, collection, id)
	if err != nil {
		return fmt.Errorf("delete %s/%s: %w", collection, id, err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *RecordStore) Count(ctx context.Context, collection string) (int, error) {
	var n int
	err := r.q.QueryRow(ctx,
		`SELECT COUNT(*) FROM sandbox_records WHERE collection = $1`, collection).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count %s: %w", collection, err)
	}
	return n, nil
}

// NextSeq contador por colección; nunca reutiliza valores.
func (r *RecordStore) NextSeq(ctx context.Context, collection string) (int64, error) {
	var n int64
	err := r.q.QueryRow(ctx, `
		INSERT INTO sandbox_sequences (collection, value) VALUES ($1, 1)
		ON CONFLICT (collection) DO UPDATE SET value = sandbox_sequences.value + 1
		RETURNING value`, collection).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("secuencia %s: %w", collection, err)
	}
	return n, nil
}

// decodeDoc conserva los números como json.Number (sin pérdida de precisión en precios).
func decodeDoc(raw []byte) (repository.Document, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var doc repository.Document
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("decodificar documento: %w", err)
	}
	return doc, nil
}
