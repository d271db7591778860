package cli

import (
	"slices"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/matzehuels/vamsha/pkg/family"
)

type formField int

const (
	fieldName formField = iota
	fieldRegional
	fieldRelation
	fieldGender
	fieldBirth
	fieldDeath
	fieldSpouse
	fieldSpouseRegional
	fieldPhoto
	fieldCount
)

var fieldLabels = [fieldCount]string{
	fieldName:           "Name",
	fieldRegional:       "Regional",
	fieldRelation:       "Relation",
	fieldGender:         "Gender",
	fieldBirth:          "Born",
	fieldDeath:          "Died",
	fieldSpouse:         "Spouse",
	fieldSpouseRegional: "Spouse (reg.)",
	fieldPhoto:          "Photo",
}

var (
	formLabelStyle  = lipgloss.NewStyle().Foreground(colorGray).Width(14)
	formActiveStyle = lipgloss.NewStyle().Foreground(colorRed).Bold(true).Width(14)
)

// memberForm edits one member's fields.
type memberForm struct {
	id     string
	base   family.Member
	inputs [fieldCount]textinput.Model
	focus  formField
}

func newMemberForm(m family.Member) memberForm {
	f := memberForm{id: m.ID, base: m}
	values := [fieldCount]string{
		fieldName:           m.Name,
		fieldRegional:       m.RegionalName,
		fieldRelation:       m.Relation,
		fieldGender:         string(m.Gender),
		fieldBirth:          m.BirthDate,
		fieldDeath:          m.DeathDate,
		fieldSpouse:         m.SpouseName,
		fieldSpouseRegional: m.SpouseRegionalName,
		fieldPhoto:          m.PhotoURL,
	}
	for i := range f.inputs {
		in := textinput.New()
		in.Prompt = ""
		in.CharLimit = 200
		in.SetValue(values[i])
		f.inputs[i] = in
	}
	f.inputs[fieldRelation].Placeholder = strings.Join(family.SuggestedRelations, ", ")
	f.inputs[fieldGender].Placeholder = "male, female, other"
	f.inputs[fieldBirth].Placeholder = "YYYY-MM-DD"
	f.inputs[fieldDeath].Placeholder = "YYYY-MM-DD"
	f.inputs[fieldPhoto].Placeholder = "file path or data: URI"
	return f
}

// focusField moves the cursor to field i, wrapping around.
func (f *memberForm) focusField(i formField) tea.Cmd {
	i = (i%fieldCount + fieldCount) % fieldCount
	for j := range f.inputs {
		f.inputs[j].Blur()
	}
	f.focus = i
	return f.inputs[i].Focus()
}

// cycle replaces the relation or gender value with the next suggestion.
func (f *memberForm) cycle() {
	var options []string
	switch f.focus {
	case fieldRelation:
		options = family.SuggestedRelations
	case fieldGender:
		for _, g := range family.Genders {
			options = append(options, string(g))
		}
	default:
		return
	}
	in := &f.inputs[f.focus]
	next := options[(slices.Index(options, in.Value())+1)%len(options)]
	in.SetValue(next)
	in.CursorEnd()
}

// setRegional refreshes the regional fields after a translation landed.
func (f *memberForm) setRegional(m family.Member) {
	f.inputs[fieldRegional].SetValue(m.RegionalName)
	f.inputs[fieldSpouseRegional].SetValue(m.SpouseRegionalName)
	f.base.RegionalName = m.RegionalName
	f.base.SpouseRegionalName = m.SpouseRegionalName
}

func (f memberForm) value(i formField) string {
	return strings.TrimSpace(f.inputs[i].Value())
}

// member returns the edited member. Identity and parent are never edited.
func (f memberForm) member() (family.Member, error) {
	gender, err := family.ParseGender(f.value(fieldGender))
	if err != nil {
		return family.Member{}, err
	}
	m := f.base
	m.Name = f.value(fieldName)
	m.RegionalName = f.value(fieldRegional)
	m.Relation = f.value(fieldRelation)
	m.Gender = gender
	m.BirthDate = f.value(fieldBirth)
	m.DeathDate = f.value(fieldDeath)
	m.SpouseName = f.value(fieldSpouse)
	m.SpouseRegionalName = f.value(fieldSpouseRegional)
	m.PhotoURL = f.value(fieldPhoto)
	return m, nil
}

func (f memberForm) update(msg tea.Msg) (memberForm, tea.Cmd) {
	var cmd tea.Cmd
	f.inputs[f.focus], cmd = f.inputs[f.focus].Update(msg)
	return f, cmd
}

func (f memberForm) view(width int, editing bool) string {
	inputWidth := max(width-16, 8)
	lines := make([]string, 0, fieldCount)
	for i := range f.inputs {
		label := formLabelStyle.Render(fieldLabels[i])
		if editing && formField(i) == f.focus {
			label = formActiveStyle.Render(fieldLabels[i])
		}
		in := f.inputs[i]
		in.Width = inputWidth
		value := in.View()
		if !editing {
			value = runewidth.Truncate(in.Value(), inputWidth, "…")
			if formField(i) == fieldRegional || formField(i) == fieldSpouseRegional {
				value = StyleRegional.Render(value)
			}
		}
		lines = append(lines, label+" "+value)
	}
	return strings.Join(lines, "\n")
}
