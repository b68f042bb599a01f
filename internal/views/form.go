package views

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"rolodex/internal/models"
	"rolodex/internal/utils"
	"rolodex/internal/validation"
)

type FormField int

const (
	FormFieldFirstName FormField = iota
	FormFieldLastName
	FormFieldEmail
	FormFieldPhone
	FormFieldAge
	FormFieldSubmit
)

var formFieldOrder = []validation.Field{
	validation.FieldFirstName,
	validation.FieldLastName,
	validation.FieldEmail,
	validation.FieldPhone,
	validation.FieldAge,
}

// ContactForm is the modal's field set. The marks from the last validation
// pass drive the green/red input highlighting; a fresh form carries no
// marks.
type ContactForm struct {
	inputs       map[validation.Field]*textinput.Model
	marks        validation.Marks
	currentField int
}

func newContactForm(phoneLength int) ContactForm {
	firstName := textinput.New()
	firstName.Placeholder = "First name"
	firstName.CharLimit = 50
	firstName.Focus()

	lastName := textinput.New()
	lastName.Placeholder = "Last name"
	lastName.CharLimit = 50

	email := textinput.New()
	email.Placeholder = "name@example.com"
	email.CharLimit = 100

	phone := textinput.New()
	phone.Placeholder = "Phone"
	phone.CharLimit = phoneLength

	age := textinput.New()
	age.Placeholder = "Age"
	age.CharLimit = validation.AgeLength

	form := ContactForm{
		inputs: map[validation.Field]*textinput.Model{
			validation.FieldFirstName: &firstName,
			validation.FieldLastName:  &lastName,
			validation.FieldEmail:     &email,
			validation.FieldPhone:     &phone,
			validation.FieldAge:       &age,
		},
		marks:        make(validation.Marks),
		currentField: int(FormFieldFirstName),
	}
	form.styleInputs()
	return form
}

// populate fills the inputs from an existing contact for edit mode.
func (f *ContactForm) populate(contact models.Contact) {
	f.inputs[validation.FieldFirstName].SetValue(contact.FirstName)
	f.inputs[validation.FieldLastName].SetValue(contact.LastName)
	f.inputs[validation.FieldEmail].SetValue(contact.Email)
	f.inputs[validation.FieldPhone].SetValue(contact.Phone)
	f.inputs[validation.FieldAge].SetValue(contact.Age)
}

// values snapshots the raw input contents for a validation pass.
func (f *ContactForm) values() validation.Values {
	out := make(validation.Values, len(f.inputs))
	for field, input := range f.inputs {
		out[field] = input.Value()
	}
	return out
}

// setMarks applies the visual result of a validation pass to the inputs.
func (f *ContactForm) setMarks(marks validation.Marks) {
	f.marks = marks
	f.styleInputs()
}

func (f *ContactForm) styleInputs() {
	for field, input := range f.inputs {
		colour := utils.Colours.Blue
		switch f.marks.Mark(field) {
		case validation.MarkValid:
			colour = utils.Colours.Green
		case validation.MarkInvalid:
			colour = utils.Colours.Red
		}
		input.PromptStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(colour))
		input.TextStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(utils.Colours.Text))
	}
}

func (f *ContactForm) nextField() {
	if f.currentField < int(FormFieldSubmit) {
		f.currentField++
	}
}

func (f *ContactForm) prevField() {
	if f.currentField > 0 {
		f.currentField--
	}
}

func (f *ContactForm) fieldAt(index int) (validation.Field, bool) {
	if index < 0 || index >= len(formFieldOrder) {
		return "", false
	}
	return formFieldOrder[index], true
}

func (f *ContactForm) focusCurrentField() tea.Cmd {
	for _, input := range f.inputs {
		input.Blur()
	}
	if field, ok := f.fieldAt(f.currentField); ok {
		return f.inputs[field].Focus()
	}
	return nil
}

// updateCurrentField forwards a message to whichever input is focused.
func (f *ContactForm) updateCurrentField(msg tea.Msg) tea.Cmd {
	field, ok := f.fieldAt(f.currentField)
	if !ok {
		return nil
	}
	updated, cmd := f.inputs[field].Update(msg)
	*f.inputs[field] = updated
	return cmd
}

func (f *ContactForm) onSubmitButton() bool {
	return f.currentField == int(FormFieldSubmit)
}
