package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// form is a vertical stack of labelled text inputs with one focused at a time.
type form struct {
	title  string
	labels []string
	inputs []textinput.Model
	focus  int
}

func newForm(title string, fields ...formField) *form {
	f := &form{title: title}
	for i, field := range fields {
		input := textinput.New()
		input.Placeholder = field.placeholder
		input.CharLimit = 120
		if field.secret {
			input.EchoMode = textinput.EchoPassword
			input.EchoCharacter = '•'
		}
		if i == 0 {
			input.Focus()
		}
		f.labels = append(f.labels, field.label)
		f.inputs = append(f.inputs, input)
	}
	return f
}

type formField struct {
	label       string
	placeholder string
	secret      bool
}

// next advances focus, wrapping to the first field. Returns true when the
// focus was on the last field, i.e. the form should submit.
func (f *form) next() bool {
	if f.focus == len(f.inputs)-1 {
		return true
	}
	f.inputs[f.focus].Blur()
	f.focus++
	f.inputs[f.focus].Focus()
	return false
}

func (f *form) prev() {
	f.inputs[f.focus].Blur()
	f.focus--
	if f.focus < 0 {
		f.focus = len(f.inputs) - 1
	}
	f.inputs[f.focus].Focus()
}

func (f *form) update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	f.inputs[f.focus], cmd = f.inputs[f.focus].Update(msg)
	return cmd
}

func (f *form) value(i int) string {
	return strings.TrimSpace(f.inputs[i].Value())
}

func (f *form) reset() {
	for i := range f.inputs {
		f.inputs[i].SetValue("")
		f.inputs[i].Blur()
	}
	f.focus = 0
	f.inputs[0].Focus()
}

func (f *form) render() string {
	var b strings.Builder
	b.WriteString(styles.title.Render(f.title))
	b.WriteString("\n\n")
	for i, input := range f.inputs {
		b.WriteString(fmt.Sprintf("%s\n%s\n\n", f.labels[i], input.View()))
	}
	return b.String()
}
