package views

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"rolodex/internal/models"
	"rolodex/internal/remote"
	"rolodex/internal/search"
	"rolodex/internal/store"
	"rolodex/internal/utils"
	"rolodex/internal/validation"
)

// ModalState is the contact form's lifecycle: closed, open for a new
// contact, or open editing an existing one. In edit mode the marker id
// travels in ContactsModel.editingID.
type ModalState int

const (
	ModalClosed ModalState = iota
	ModalCreate
	ModalEdit
)

// narrowWidth is the terminal width below which the list and detail panes
// stop fitting side by side and selection swaps between them instead.
const narrowWidth = 80

// SearchTickMsg fires when a debounce window elapses. Only the tick whose
// sequence is still current runs a filter pass.
type SearchTickMsg struct {
	Seq int
}

// RemoteErrorMsg surfaces a failed remote mutation. Operation is the
// gerund used in the message ("adding", "updating", "deleting").
type RemoteErrorMsg struct {
	Operation string
	Err       error
}

type ContactsModel struct {
	store      *store.Store
	collection remote.Collection
	validator  *validation.Validator
	registry   *validation.Registry
	debouncer  *search.Debouncer
	timeout    time.Duration

	phoneLength int

	contacts []models.Contact
	filtered []models.Contact
	selected int

	searchInput textinput.Model
	searchQuery string

	modal     ModalState
	editingID string
	form      ContactForm

	confirmingDelete bool
	deleteTarget     models.Contact

	detailFocused bool
	spinner       spinner.Model

	width  int
	height int
}

func NewContactsModel(st *store.Store, collection remote.Collection, validator *validation.Validator, debounceWindow, timeout time.Duration) *ContactsModel {
	searchInput := textinput.New()
	searchInput.Placeholder = "Search contacts..."
	searchInput.CharLimit = 50

	loadingSpinner := spinner.New(
		spinner.WithSpinner(spinner.Dot),
		spinner.WithStyle(lipgloss.NewStyle().Foreground(lipgloss.Color(utils.Colours.Yellow))),
	)

	return &ContactsModel{
		store:       st,
		collection:  collection,
		validator:   validator,
		registry:    validation.NewRegistry(),
		debouncer:   search.NewDebouncer(debounceWindow),
		timeout:     timeout,
		phoneLength: validator.PhoneLength,
		searchInput: searchInput,
		spinner:     loadingSpinner,
	}
}

// Init starts the loading spinner; its ticks stop once the first snapshot
// arrives.
func (m *ContactsModel) Init() tea.Cmd {
	return m.spinner.Tick
}

// SetSnapshot replaces the rendered collection after the app model has
// committed a snapshot to the store. The active query is re-applied so the
// filtered view stays consistent with the new data.
func (m *ContactsModel) SetSnapshot(contacts []models.Contact) {
	m.contacts = contacts
	m.applyFilter()
}

func (m *ContactsModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}

func (m *ContactsModel) Update(msg tea.Msg) (*ContactsModel, tea.Cmd) {
	switch msg := msg.(type) {
	case SearchTickMsg:
		// A superseded tick compares stale and is dropped.
		if m.debouncer.Fire(msg.Seq) {
			m.searchQuery = m.searchInput.Value()
			m.applyFilter()
		}
		return m, nil

	case RemoteErrorMsg:
		m.registry.SetOperation(fmt.Sprintf("Error %s contact: %s", msg.Operation, userMessage(msg.Err)))
		return m, nil

	case spinner.TickMsg:
		if m.store.Loaded() {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		switch {
		case m.confirmingDelete:
			return m.updateDeleteConfirm(msg)
		case m.modal != ModalClosed:
			return m.updateModal(msg)
		default:
			return m.updateList(msg)
		}
	}

	// Everything else (cursor blink and friends) goes to whichever input
	// currently has focus.
	if m.modal != ModalClosed {
		return m, m.form.updateCurrentField(msg)
	}
	if m.searchInput.Focused() {
		var cmd tea.Cmd
		m.searchInput, cmd = m.searchInput.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m *ContactsModel) updateList(msg tea.KeyMsg) (*ContactsModel, tea.Cmd) {
	if m.searchInput.Focused() {
		switch msg.String() {
		case "enter":
			// Dedicated search path: no debounce, filter right away.
			m.debouncer.Flush()
			m.searchQuery = m.searchInput.Value()
			m.applyFilter()
			m.searchInput.Blur()
			return m, nil

		case "esc":
			m.searchInput.Blur()
			m.searchInput.SetValue("")
			m.debouncer.Flush()
			m.searchQuery = ""
			m.applyFilter()
			return m, nil

		default:
			previous := m.searchInput.Value()
			var cmd tea.Cmd
			m.searchInput, cmd = m.searchInput.Update(msg)
			if m.searchInput.Value() == previous {
				return m, cmd
			}
			seq := m.debouncer.Trigger()
			tick := tea.Tick(m.debouncer.Window(), func(time.Time) tea.Msg {
				return SearchTickMsg{Seq: seq}
			})
			return m, tea.Batch(cmd, tick)
		}
	}

	switch msg.String() {
	case "up", "k":
		if m.selected > 0 {
			m.selected--
		}

	case "down", "j":
		if m.selected < len(m.filtered)-1 {
			m.selected++
		}

	case "enter":
		if len(m.filtered) > 0 {
			m.detailFocused = true
		}

	case "esc":
		switch {
		case m.detailFocused:
			m.detailFocused = false
		case m.searchQuery != "":
			m.searchQuery = ""
			m.searchInput.SetValue("")
			m.applyFilter()
		}

	case "n":
		return m.openCreateModal()

	case "e":
		return m.openEditModal()

	case "d", "delete":
		if len(m.filtered) > 0 {
			m.confirmingDelete = true
			m.deleteTarget = m.filtered[m.selected]
		}

	case "/", "ctrl+s":
		return m, m.searchInput.Focus()
	}

	return m, nil
}

func (m *ContactsModel) openCreateModal() (*ContactsModel, tea.Cmd) {
	m.modal = ModalCreate
	m.editingID = ""
	m.form = newContactForm(m.phoneLength)
	m.registry.Reset()
	return m, textinput.Blink
}

func (m *ContactsModel) openEditModal() (*ContactsModel, tea.Cmd) {
	if len(m.filtered) == 0 {
		return m, nil
	}

	id := m.filtered[m.selected].ID
	contact, state := m.store.Find(id)
	if state != store.Found {
		// The record vanished between render and keypress; the next
		// snapshot already removed it from the list.
		m.registry.SetOperation("Error updating contact: " + remote.NewNotFoundError(id).UserMessage())
		return m, nil
	}

	m.modal = ModalEdit
	m.editingID = id
	m.form = newContactForm(m.phoneLength)
	m.form.populate(contact)
	m.registry.Reset()
	return m, textinput.Blink
}

func (m *ContactsModel) updateModal(msg tea.KeyMsg) (*ContactsModel, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.closeModal()
		return m, nil

	case "tab", "down":
		m.form.nextField()
		return m, m.form.focusCurrentField()

	case "shift+tab", "up":
		m.form.prevField()
		return m, m.form.focusCurrentField()

	case "enter":
		if m.form.onSubmitButton() {
			return m.submitForm()
		}
		m.form.nextField()
		return m, m.form.focusCurrentField()
	}

	return m, m.form.updateCurrentField(msg)
}

// submitForm runs the full validation pass and, when the registry comes out
// empty, dispatches the mutation and closes the modal. The close is
// optimistic: it happens when the call is issued, not when it resolves, so
// a remote failure lands on the list view as an operation error.
func (m *ContactsModel) submitForm() (*ContactsModel, tea.Cmd) {
	values := m.form.values()

	registry, marks := m.validator.Validate(values)
	m.registry = registry
	m.form.setMarks(marks)

	if !registry.Empty() {
		return m, nil
	}

	fields := models.NewContactFields(
		values[validation.FieldFirstName],
		values[validation.FieldLastName],
		values[validation.FieldEmail],
		values[validation.FieldPhone],
		values[validation.FieldAge],
	)

	var cmd tea.Cmd
	if m.modal == ModalEdit {
		cmd = m.updateContact(m.editingID, fields)
	} else {
		cmd = m.createContact(fields)
	}

	m.closeModal()
	return m, cmd
}

func (m *ContactsModel) closeModal() {
	m.modal = ModalClosed
	m.editingID = ""
	// Field errors belong to the form; they must not follow it onto the
	// list view. Operation errors stay until the next pass.
	m.registry.ClearFields()
}

func (m *ContactsModel) updateDeleteConfirm(msg tea.KeyMsg) (*ContactsModel, tea.Cmd) {
	switch msg.String() {
	case "y", "Y", "enter":
		m.confirmingDelete = false
		// Selection and detail stay as they are; the list goes stale
		// until the next snapshot lands.
		return m, m.deleteContact(m.deleteTarget.ID)

	case "n", "N", "esc":
		m.confirmingDelete = false
	}

	return m, nil
}

func (m *ContactsModel) createContact(fields models.ContactFields) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), m.timeout)
		defer cancel()

		if err := m.collection.Create(ctx, fields); err != nil {
			return RemoteErrorMsg{Operation: "adding", Err: err}
		}
		return nil
	}
}

func (m *ContactsModel) updateContact(id string, fields models.ContactFields) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), m.timeout)
		defer cancel()

		if err := m.collection.Update(ctx, id, fields); err != nil {
			return RemoteErrorMsg{Operation: "updating", Err: err}
		}
		return nil
	}
}

func (m *ContactsModel) deleteContact(id string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), m.timeout)
		defer cancel()

		if err := m.collection.Delete(ctx, id); err != nil {
			return RemoteErrorMsg{Operation: "deleting", Err: err}
		}
		return nil
	}
}

func (m *ContactsModel) applyFilter() {
	m.filtered = search.Filter(m.searchQuery, m.contacts)
	if m.selected >= len(m.filtered) {
		m.selected = len(m.filtered) - 1
	}
	if m.selected < 0 {
		m.selected = 0
	}
}

func userMessage(err error) string {
	if remoteErr, ok := err.(*remote.Error); ok {
		return remoteErr.UserMessage()
	}
	return remote.ClassifyError(err).UserMessage()
}

func (m *ContactsModel) View() string {
	switch {
	case m.confirmingDelete:
		return m.renderDeleteConfirm()
	case m.modal != ModalClosed:
		return m.renderModal()
	default:
		return m.renderMasterDetail()
	}
}

func (m *ContactsModel) renderMasterDetail() string {
	var content strings.Builder

	title := "Contacts"
	if m.store.Loaded() {
		title = fmt.Sprintf("Contacts (%d)", len(m.contacts))
	}
	headerStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(utils.Colours.Text)).
		Background(lipgloss.Color(utils.Colours.Surface0)).
		Padding(0, 1).
		Width(m.width)
	content.WriteString(headerStyle.Render(title))
	content.WriteString("\n")

	content.WriteString(m.renderSearchBar())
	content.WriteString("\n")

	list := m.renderList()
	detail := m.renderDetail()

	if m.width >= narrowWidth {
		listPane := lipgloss.NewStyle().Width(m.width / 2).Render(list)
		detailPane := lipgloss.NewStyle().Width(m.width - m.width/2).Render(detail)
		content.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, listPane, detailPane))
	} else if m.detailFocused {
		content.WriteString(detail)
	} else {
		content.WriteString(list)
	}

	if errorList := m.renderErrors(); errorList != "" {
		content.WriteString("\n")
		content.WriteString(errorList)
	}

	content.WriteString("\n")
	content.WriteString(m.renderFooter())

	return content.String()
}

func (m *ContactsModel) renderSearchBar() string {
	searchStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(utils.Colours.Surface1)).
		Padding(0, 1).
		Width(40)

	return lipgloss.JoinHorizontal(
		lipgloss.Left,
		"Search: ",
		searchStyle.Render(m.searchInput.View()),
	)
}

func (m *ContactsModel) renderList() string {
	if !m.store.Loaded() {
		loadingStyle := lipgloss.NewStyle().
			Foreground(lipgloss.Color(utils.Colours.Yellow)).
			Padding(2, 0)
		return loadingStyle.Render(m.spinner.View() + " Loading contacts...")
	}

	if len(m.filtered) == 0 {
		emptyStyle := lipgloss.NewStyle().
			Foreground(lipgloss.Color(utils.Colours.Overlay1)).
			Padding(2, 0)
		if m.searchQuery != "" {
			return emptyStyle.Render("No contacts match your search.")
		}
		return emptyStyle.Render("No contacts yet. Press N to add one.")
	}

	highlight := lipgloss.NewStyle().
		Foreground(lipgloss.Color(utils.Colours.Base)).
		Background(lipgloss.Color(utils.Colours.Yellow))

	var rows []string
	for i, contact := range m.filtered {
		name := search.Highlight(contact.FullName(), m.searchQuery, highlight)
		email := search.Highlight(contact.Email, m.searchQuery, highlight)
		line := fmt.Sprintf("%s  %s", name, email)

		style := lipgloss.NewStyle().Padding(0, 1)
		if i == m.selected {
			style = style.
				Background(lipgloss.Color(utils.Colours.Surface1)).
				Bold(true)
			line = "▶ " + line
		} else {
			line = "  " + line
		}
		rows = append(rows, style.Render(line))
	}

	return strings.Join(rows, "\n")
}

func (m *ContactsModel) renderDetail() string {
	if len(m.filtered) == 0 {
		return ""
	}

	contact := m.filtered[m.selected]

	labelStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(utils.Colours.Overlay1)).
		Width(8)
	valueStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(utils.Colours.Text))

	lines := []string{
		lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(utils.Colours.Lavender)).Render(contact.FullName()),
		"",
		labelStyle.Render("Email") + valueStyle.Render(contact.Email),
		labelStyle.Render("Phone") + valueStyle.Render(contact.Phone),
		labelStyle.Render("Age") + valueStyle.Render(contact.Age),
	}

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(utils.Colours.Surface1)).
		Padding(0, 1).
		Render(strings.Join(lines, "\n"))
}

// renderErrors presents the registry as an ordered list, fully rebuilt on
// every render.
func (m *ContactsModel) renderErrors() string {
	entries := m.registry.Entries()
	if len(entries) == 0 {
		return ""
	}

	errorStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(utils.Colours.Red)).
		Padding(0, 1)

	var lines []string
	for _, entry := range entries {
		lines = append(lines, errorStyle.Render("✗ "+entry.Message))
	}
	return strings.Join(lines, "\n")
}

func (m *ContactsModel) renderFooter() string {
	controls := "[N]ew [E]dit [D]elete [/]Search [↑↓]Select [Enter]Detail [Q]uit"
	if m.width < narrowWidth && m.detailFocused {
		controls = "[E]dit [D]elete [Esc]Back [Q]uit"
	}
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color(utils.Colours.Overlay1)).
		Padding(0, 1).
		Render(controls)
}

func (m *ContactsModel) renderModal() string {
	var content strings.Builder

	title := "New Contact"
	if m.modal == ModalEdit {
		title = "Edit Contact"
	}
	headerStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(utils.Colours.Text)).
		Background(lipgloss.Color(utils.Colours.Surface0)).
		Padding(0, 1).
		Width(m.width)
	content.WriteString(headerStyle.Render(title))
	content.WriteString("\n\n")

	fieldStyle := lipgloss.NewStyle().Padding(0, 2)

	for i, field := range formFieldOrder {
		label := field.Label()
		if m.form.currentField == i {
			label = lipgloss.NewStyle().
				Foreground(lipgloss.Color(utils.Colours.Blue)).
				Bold(true).
				Render("▶ " + label)
		} else {
			label = "  " + label
		}
		content.WriteString(fieldStyle.Render(label))
		content.WriteString("\n")
		content.WriteString(fieldStyle.Render(m.form.inputs[field].View()))
		content.WriteString("\n")
	}

	content.WriteString("\n")

	submitLabel := "Save Contact"
	if m.modal == ModalEdit {
		submitLabel = "Update Contact"
	}
	submitStyle := lipgloss.NewStyle().
		Background(lipgloss.Color(utils.Colours.Green)).
		Foreground(lipgloss.Color(utils.Colours.Base)).
		Padding(0, 2)
	if m.form.onSubmitButton() {
		submitLabel = "▶ " + submitLabel
	}
	content.WriteString(fieldStyle.Render(submitStyle.Render(submitLabel)))
	content.WriteString("\n")

	if errorList := m.renderErrors(); errorList != "" {
		content.WriteString("\n")
		content.WriteString(errorList)
	}

	content.WriteString("\n")
	content.WriteString(lipgloss.NewStyle().
		Foreground(lipgloss.Color(utils.Colours.Overlay1)).
		Padding(0, 1).
		Render("[Tab] Next [Shift+Tab] Previous [Enter] Submit [Esc] Cancel"))

	return content.String()
}

func (m *ContactsModel) renderDeleteConfirm() string {
	var content strings.Builder

	headerStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(utils.Colours.Red)).
		Background(lipgloss.Color(utils.Colours.Surface0)).
		Padding(0, 1).
		Width(m.width)
	content.WriteString(headerStyle.Render("Delete Contact"))
	content.WriteString("\n\n")

	warningStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(utils.Colours.Red)).
		Padding(0, 2)
	content.WriteString(warningStyle.Render(
		fmt.Sprintf("Delete the contact '%s'?", m.deleteTarget.FullName())))
	content.WriteString("\n\n")

	infoStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(utils.Colours.Text)).
		Padding(0, 2)
	content.WriteString(infoStyle.Render("Email: " + m.deleteTarget.Email))
	content.WriteString("\n\n")

	content.WriteString(lipgloss.NewStyle().
		Foreground(lipgloss.Color(utils.Colours.Overlay1)).
		Padding(0, 1).
		Render("[Y] Yes, Delete [N] Cancel"))

	return content.String()
}
