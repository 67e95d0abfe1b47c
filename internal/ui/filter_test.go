package ui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

func TestFilterForm_CommitNormalizes(t *testing.T) {
	form := newFilterForm()
	form.setValue(fieldName, "  Jazz FM  ")
	form.setValue(fieldTags, " jazz , smooth ,, ")
	form.setValue(fieldCountry, "us")
	form.setValue(fieldLanguage, "English")

	criteria := form.commit()

	if criteria.Name != "Jazz FM" {
		t.Errorf("Name = %q, want %q", criteria.Name, "Jazz FM")
	}
	if criteria.Tags != "jazz,smooth" {
		t.Errorf("Tags = %q, want %q", criteria.Tags, "jazz,smooth")
	}
	if criteria.CountryCode != "US" {
		t.Errorf("CountryCode = %q, want %q", criteria.CountryCode, "US")
	}
	if criteria.Language != "english" {
		t.Errorf("Language = %q, want %q", criteria.Language, "english")
	}
}

func TestFilterForm_CommitEmpty(t *testing.T) {
	form := newFilterForm()
	if !form.commit().IsZero() {
		t.Error("empty form should commit zero criteria")
	}
}

func TestFilterForm_OpenFocusesName(t *testing.T) {
	form := newFilterForm()
	form.focus = fieldCountry

	form.open()
	if form.focus != fieldName {
		t.Errorf("focus = %v, want name field", form.focus)
	}
	if !form.inputs[fieldName].Focused() {
		t.Error("name input should be focused after open")
	}
	if form.inputs[fieldCountry].Focused() {
		t.Error("country input should be blurred after open")
	}
}

func TestFilterForm_UpdateRoutesToFocusedField(t *testing.T) {
	form := newFilterForm()
	form.open()
	form.nextField() // tags

	form.update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("j")})
	form.update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("azz")})

	if got := form.value(fieldTags); got != "jazz" {
		t.Errorf("tags buffer = %q, want %q", got, "jazz")
	}
	if got := form.value(fieldName); got != "" {
		t.Errorf("name buffer = %q, want empty", got)
	}
}

func TestFilterForm_CancelAfterEdits(t *testing.T) {
	form := newFilterForm()
	form.setValue(fieldTags, "rock")
	form.open()

	form.setValue(fieldTags, "metal")
	form.setValue(fieldName, "scratch")
	form.cancel()

	if got := form.value(fieldTags); got != "rock" {
		t.Errorf("tags buffer = %q, want restored %q", got, "rock")
	}
	if got := form.value(fieldName); got != "" {
		t.Errorf("name buffer = %q, want restored empty", got)
	}
	if form.inputs[fieldName].Focused() {
		t.Error("cancel should blur every field")
	}
}

func TestFilterField_Labels(t *testing.T) {
	labels := map[filterField]string{
		fieldName:     "Name",
		fieldTags:     "Tags",
		fieldCountry:  "Country",
		fieldLanguage: "Language",
	}
	for field, want := range labels {
		if got := field.label(); got != want {
			t.Errorf("label(%v) = %q, want %q", field, got, want)
		}
	}
}
