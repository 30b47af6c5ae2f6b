package repository

import "context"

// Document registro genérico del sandbox: el JSON del recurso tal cual, incluido su campo id.
type Document map[string]any

// RecordStore persistencia del backend sandbox. Una colección por recurso ("products", "user"...).
// List devuelve los documentos en orden de inserción.
type RecordStore interface {
	List(ctx context.Context, collection string) ([]Document, error)
	Get(ctx context.Context, collection, id string) (Document, error)
	Insert(ctx context.Context, collection, id string, doc Document) error
	Replace(ctx context.Context, collection, id string, doc Document) error
	Delete(ctx context.Context, collection, id string) error
	Count(ctx context.Context, collection string) (int, error)
	NextSeq(ctx context.Context, collection string) (int64, error)
}
