package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jhoicas/backoffice-umkm/internal/application/crud"
	"github.com/jhoicas/backoffice-umkm/internal/application/form"
)

// formView el modal de alta/edición: un textinput por campo visible.
// Los campos enum y referencia se eligen con ←/→ entre sus opciones.
type formView struct {
	screen  int
	editor  form.Editor
	fields  []form.Field
	inputs  []textinput.Model
	focus   int
	options map[string][]crud.Option
}

func newFormView(screen int, ed form.Editor) formView {
	fields := ed.Fields()
	inputs := make([]textinput.Model, len(fields))
	for i, f := range fields {
		in := textinput.New()
		in.Prompt = ""
		in.CharLimit = 200
		in.Width = 40
		in.Cursor.SetMode(cursor.CursorStatic)
		in.SetValue(ed.Value(f.Key))
		switch f.Kind {
		case form.KindPassword:
			in.EchoMode = textinput.EchoPassword
			if ed.Mode() == form.ModeEdit {
				in.Placeholder = "kosongkan jika tidak diubah"
			}
		case form.KindDate:
			in.Placeholder = "YYYY-MM-DD"
		}
		inputs[i] = in
	}
	fv := formView{screen: screen, editor: ed, fields: fields, inputs: inputs, options: map[string][]crud.Option{}}
	if len(inputs) > 0 {
		fv.inputs[0].Focus()
	}
	return fv
}

// sync copia lo tecleado al modal.
func (f *formView) sync() error {
	for i, fl := range f.fields {
		if err := f.editor.Set(fl.Key, f.inputs[i].Value()); err != nil {
			return err
		}
	}
	return nil
}

func (f *formView) move(delta int) {
	if len(f.inputs) == 0 {
		return
	}
	f.inputs[f.focus].Blur()
	f.focus = (f.focus + delta + len(f.inputs)) % len(f.inputs)
	f.inputs[f.focus].Focus()
}

// choices opciones del campo enfocado, o nil si es de texto libre.
func (f *formView) choices(i int) []crud.Option {
	fl := f.fields[i]
	switch fl.Kind {
	case form.KindEnum:
		out := make([]crud.Option, len(fl.Options))
		for j, o := range fl.Options {
			out[j] = crud.Option{Value: o, Label: o}
		}
		return out
	case form.KindReference:
		return f.options[fl.Key]
	}
	return nil
}

func (f *formView) cycle(delta int) bool {
	opts := f.choices(f.focus)
	if len(opts) == 0 {
		return false
	}
	cur := f.inputs[f.focus].Value()
	idx := -1
	for j, o := range opts {
		if o.Value == cur {
			idx = j
			break
		}
	}
	switch {
	case idx < 0 && delta < 0:
		idx = len(opts) - 1
	case idx < 0:
		idx = 0
	default:
		idx = (idx + delta + len(opts)) % len(opts)
	}
	f.inputs[f.focus].SetValue(opts[idx].Value)
	return true
}

func (f *formView) setOptions(field string, opts []crud.Option) {
	f.options[field] = opts
}

// update teclas que no cierran el modal.
func (f *formView) update(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "tab", "down":
		f.move(1)
		return nil
	case "shift+tab", "up":
		f.move(-1)
		return nil
	case "left":
		if f.cycle(-1) {
			return nil
		}
	case "right":
		if f.cycle(1) {
			return nil
		}
	}
	if len(f.inputs) == 0 {
		return nil
	}
	var cmd tea.Cmd
	f.inputs[f.focus], cmd = f.inputs[f.focus].Update(msg)
	return cmd
}

func (f formView) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(f.editor.Title()))
	b.WriteString("\n")
	if alert := f.editor.Alert(); alert != "" {
		b.WriteString(alertStyle.Render(alert))
		b.WriteString("\n")
	}
	for i, fl := range f.fields {
		label := fl.Label
		if fl.Required || (fl.RequiredOnCreate && f.editor.Mode() == form.ModeCreate) {
			label += " *"
		}
		ls := labelStyle
		if i == f.focus {
			ls = focusedLabelStyle
		}
		b.WriteString(ls.Render(label))
		b.WriteString(f.inputs[i].View())
		if hint := f.hint(i); hint != "" {
			b.WriteString("  ")
			b.WriteString(mutedStyle.Render(hint))
		}
		b.WriteString("\n")
	}
	b.WriteString(helpStyle.Render(
		FormatKey("tab", "pindah") + " • " + FormatKey("←/→", "pilih opsi") + " • " +
			FormatKey("enter", "simpan") + " • " + FormatKey("esc", "batal")))
	return activeBoxStyle.Render(b.String())
}

func (f formView) hint(i int) string {
	fl := f.fields[i]
	if fl.Kind != form.KindReference {
		return ""
	}
	opts := f.options[fl.Key]
	if opts == nil {
		return "memuat opsi..."
	}
	cur := f.inputs[i].Value()
	for _, o := range opts {
		if o.Value == cur {
			return "→ " + o.Label
		}
	}
	return ""
}
