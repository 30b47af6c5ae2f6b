package entity

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"
)

func init() {
	// El backend espera price y total_amount como números JSON, no strings.
	decimal.MarshalJSONWithoutQuotes = true
}

// ID identificador de un registro. El backend envía algunos como número (id autoincremental)
// y otros como string (product_id "P1"); en el cliente siempre se maneja como string.
type ID string

// UnmarshalJSON acepta string, número o null.
func (id *ID) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		*id = ""
		return nil
	}
	if b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*id = ID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("id: valor no soportado %s", string(b))
	}
	*id = ID(n.String())
	return nil
}

func (id ID) String() string { return string(id) }

// IsZero indica un registro todavía no persistido.
func (id ID) IsZero() bool { return id == "" }

// Record contrato común de las seis entidades: la clave usada en Update, Delete y el filtro local.
type Record interface {
	Key() ID
}
