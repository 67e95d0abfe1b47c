package ui

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"cradio/internal/radio"
)

type filterField int

const (
	fieldName filterField = iota
	fieldTags
	fieldCountry
	fieldLanguage
	fieldCount
)

func (f filterField) label() string {
	switch f {
	case fieldName:
		return "Name"
	case fieldTags:
		return "Tags"
	case fieldCountry:
		return "Country"
	case fieldLanguage:
		return "Language"
	}
	return ""
}

// filterForm owns the in-progress filter edit, separate from the committed
// criteria the session searches with. Esc restores the snapshot taken when
// the form was opened.
type filterForm struct {
	inputs   [fieldCount]textinput.Model
	focus    filterField
	snapshot [fieldCount]string
}

func newFilterForm() filterForm {
	var form filterForm

	name := textinput.New()
	name.Prompt = "Name: "
	name.Placeholder = "substring"
	name.Width = 24

	tags := textinput.New()
	tags.Prompt = "Tags: "
	tags.Placeholder = "jazz, smooth"
	tags.Width = 24

	country := textinput.New()
	country.Prompt = "Country: "
	country.Placeholder = "US"
	country.CharLimit = 8
	country.Width = 10

	language := textinput.New()
	language.Prompt = "Language: "
	language.Placeholder = "english"
	language.Width = 16

	form.inputs[fieldName] = name
	form.inputs[fieldTags] = tags
	form.inputs[fieldCountry] = country
	form.inputs[fieldLanguage] = language
	return form
}

// open snapshots the current values and focuses the name field.
func (f *filterForm) open() tea.Cmd {
	for i := range f.inputs {
		f.snapshot[i] = f.inputs[i].Value()
	}
	return f.setFocus(fieldName)
}

// cancel restores the snapshot and blurs every field.
func (f *filterForm) cancel() {
	for i := range f.inputs {
		f.inputs[i].SetValue(f.snapshot[i])
		f.inputs[i].Blur()
	}
}

// close blurs every field, keeping the edited values.
func (f *filterForm) close() {
	for i := range f.inputs {
		f.inputs[i].Blur()
	}
}

// nextField advances focus Name -> Tags -> Country -> Language -> Name.
func (f *filterForm) nextField() tea.Cmd {
	return f.setFocus((f.focus + 1) % fieldCount)
}

func (f *filterForm) setFocus(field filterField) tea.Cmd {
	f.focus = field
	var cmd tea.Cmd
	for i := range f.inputs {
		if filterField(i) == field {
			cmd = f.inputs[i].Focus()
			f.inputs[i].CursorEnd()
		} else {
			f.inputs[i].Blur()
		}
	}
	return cmd
}

// update routes a message to the focused field.
func (f *filterForm) update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	f.inputs[f.focus], cmd = f.inputs[f.focus].Update(msg)
	return cmd
}

// commit normalizes the edit buffers into search criteria.
func (f *filterForm) commit() radio.SearchCriteria {
	return radio.NormalizeCriteria(
		f.inputs[fieldName].Value(),
		f.inputs[fieldTags].Value(),
		f.inputs[fieldCountry].Value(),
		f.inputs[fieldLanguage].Value(),
	)
}

func (f *filterForm) value(field filterField) string {
	return f.inputs[field].Value()
}

func (f *filterForm) setValue(field filterField, value string) {
	f.inputs[field].SetValue(value)
}
