// Package form implementa el modal de alta/edición genérico: los campos, reglas y mensajes
// de cada recurso son datos (Schema), no código por recurso.
package form

// Kind tipo de entrada de un campo.
type Kind int

const (
	KindText Kind = iota
	KindEmail
	KindPassword
	KindInt
	KindDecimal
	KindDate
	KindEnum
	KindReference // id de otro recurso; las opciones las carga la vista
)

// Numeric indica si el valor se convierte a número al construir el registro.
func (k Kind) Numeric() bool { return k == KindInt || k == KindDecimal }

// Rule restricción numérica adicional.
type Rule int

const (
	RuleNone Rule = iota
	RulePositive
	RuleNonNegative
)

// Field un campo del formulario. Key es la clave JSON del recurso.
type Field struct {
	Key      string
	Label    string
	Kind     Kind
	Required bool
	// RequiredOnCreate solo se exige al crear (password de usuario).
	RequiredOnCreate bool
	// CreateOnly el campo no se muestra ni se envía al editar.
	CreateOnly bool
	// WriteOnly nunca se precarga; vacío en edición significa "no cambiar" y se omite.
	WriteOnly bool
	Rule      Rule
	Options   []string // KindEnum
	Ref       string   // KindReference: nombre del recurso que provee las opciones
	Default   string
}

// Schema formulario completo de un recurso.
type Schema struct {
	TitleCreate string
	TitleEdit   string
	Fields      []Field
	// Alert mensaje de la alerta cuando la validación falla; vacío = mensaje genérico.
	Alert string
}

// Field busca un campo por clave.
func (s Schema) Field(key string) (Field, bool) {
	for _, f := range s.Fields {
		if f.Key == key {
			return f, true
		}
	}
	return Field{}, false
}

// Visible campos que se muestran en el modo indicado.
func (s Schema) Visible(mode Mode) []Field {
	out := make([]Field, 0, len(s.Fields))
	for _, f := range s.Fields {
		if mode == ModeEdit && f.CreateOnly {
			continue
		}
		out = append(out, f)
	}
	return out
}
