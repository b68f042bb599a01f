package views

import (
	"errors"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rolodex/internal/models"
	"rolodex/internal/remote"
	"rolodex/internal/remote/memory"
	"rolodex/internal/store"
	"rolodex/internal/validation"
)

func newTestModel(t *testing.T, contacts ...models.Contact) (*ContactsModel, *memory.Collection) {
	t.Helper()

	collection := memory.New()
	collection.Seed(contacts...)

	st := store.New()
	st.ReplaceAll(collection.Contacts())

	model := NewContactsModel(st, collection, validation.New(10), 300*time.Millisecond, time.Second)
	model.SetSize(100, 40)
	model.SetSnapshot(st.All())

	return model, collection
}

func keyRunes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func fillForm(m *ContactsModel, first, last, email, phone, age string) {
	m.form.inputs[validation.FieldFirstName].SetValue(first)
	m.form.inputs[validation.FieldLastName].SetValue(last)
	m.form.inputs[validation.FieldEmail].SetValue(email)
	m.form.inputs[validation.FieldPhone].SetValue(phone)
	m.form.inputs[validation.FieldAge].SetValue(age)
}

func submit(m *ContactsModel) tea.Cmd {
	m.form.currentField = int(FormFieldSubmit)
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	return cmd
}

func TestCreateModalOpensAndCancels(t *testing.T) {
	m, collection := newTestModel(t)

	m, _ = m.Update(keyRunes("n"))
	assert.Equal(t, ModalCreate, m.modal)

	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	assert.Equal(t, ModalClosed, m.modal)
	assert.Nil(t, cmd)
	assert.Empty(t, collection.Contacts())
}

func TestSubmitWithMissingLastNameKeepsModalOpen(t *testing.T) {
	m, collection := newTestModel(t)

	m, _ = m.Update(keyRunes("n"))
	fillForm(m, "Ada", "", "ada@example.com", "0123456789", "36")

	cmd := submit(m)

	assert.Nil(t, cmd, "invalid form must not dispatch")
	assert.Equal(t, ModalCreate, m.modal, "modal stays open on validation failure")
	assert.Equal(t, 1, m.registry.Len())

	message, ok := m.registry.FieldMessage(validation.FieldLastName)
	require.True(t, ok)
	assert.Equal(t, "Last name is required", message)
	assert.Empty(t, collection.Contacts())
}

func TestSuccessfulSubmitDispatchesCreateAndClosesModal(t *testing.T) {
	m, collection := newTestModel(t)

	m, _ = m.Update(keyRunes("n"))
	fillForm(m, "  Ada  ", "Lovelace", "ada@example.com", "0123456789", "36")

	cmd := submit(m)

	// The close is optimistic: it happens on dispatch, before the remote
	// call resolves.
	require.NotNil(t, cmd)
	assert.Equal(t, ModalClosed, m.modal)
	assert.True(t, m.registry.Empty())

	assert.Nil(t, cmd(), "successful create produces no message")

	contacts := collection.Contacts()
	require.Len(t, contacts, 1)
	assert.Equal(t, "Ada", contacts[0].FirstName)
	assert.Equal(t, "Lovelace", contacts[0].LastName)
	assert.NotEmpty(t, contacts[0].ID)
}

func TestEditWithBadEmailNeverDispatchesUpdate(t *testing.T) {
	seeded := models.Contact{
		ID: "c1", FirstName: "Ada", LastName: "Lovelace",
		Email: "ada@example.com", Phone: "0123456789", Age: "36",
	}
	m, collection := newTestModel(t, seeded)

	m, _ = m.Update(keyRunes("e"))
	require.Equal(t, ModalEdit, m.modal)
	assert.Equal(t, "c1", m.editingID)
	assert.Equal(t, "Ada", m.form.inputs[validation.FieldFirstName].Value())

	m.form.inputs[validation.FieldEmail].SetValue("bad-email")
	cmd := submit(m)

	assert.Nil(t, cmd)
	assert.Equal(t, ModalEdit, m.modal)

	message, ok := m.registry.FieldMessage(validation.FieldEmail)
	require.True(t, ok)
	assert.Equal(t, "Email is not valid", message)
	assert.Equal(t, 1, m.registry.Len())

	assert.Equal(t, "ada@example.com", collection.Contacts()[0].Email)
}

func TestSuccessfulEditDispatchesUpdate(t *testing.T) {
	seeded := models.Contact{
		ID: "c1", FirstName: "Ada", LastName: "Lovelace",
		Email: "ada@example.com", Phone: "0123456789", Age: "36",
	}
	m, collection := newTestModel(t, seeded)

	m, _ = m.Update(keyRunes("e"))
	m.form.inputs[validation.FieldPhone].SetValue("0987654321")
	cmd := submit(m)

	require.NotNil(t, cmd)
	assert.Equal(t, ModalClosed, m.modal)
	assert.Nil(t, cmd())

	contacts := collection.Contacts()
	require.Len(t, contacts, 1)
	assert.Equal(t, "c1", contacts[0].ID)
	assert.Equal(t, "0987654321", contacts[0].Phone)
}

func TestDeclinedDeleteChangesNothing(t *testing.T) {
	seeded := models.Contact{ID: "c1", FirstName: "Ada", LastName: "Lovelace"}
	m, collection := newTestModel(t, seeded)

	m, _ = m.Update(keyRunes("d"))
	require.True(t, m.confirmingDelete)
	assert.Equal(t, "c1", m.deleteTarget.ID)

	m, cmd := m.Update(keyRunes("n"))
	assert.False(t, m.confirmingDelete)
	assert.Nil(t, cmd)
	assert.Len(t, collection.Contacts(), 1)
}

func TestConfirmedDeleteDispatches(t *testing.T) {
	seeded := models.Contact{ID: "c1", FirstName: "Ada", LastName: "Lovelace"}
	m, collection := newTestModel(t, seeded)

	m, _ = m.Update(keyRunes("d"))
	m, cmd := m.Update(keyRunes("y"))

	assert.False(t, m.confirmingDelete)
	require.NotNil(t, cmd)
	assert.Nil(t, cmd())
	assert.Empty(t, collection.Contacts())
}

func TestRemoteErrorBecomesOperationEntry(t *testing.T) {
	m, _ := newTestModel(t)

	m, _ = m.Update(RemoteErrorMsg{
		Operation: "deleting",
		Err:       remote.NewConnectionError("connection refused", errors.New("dial tcp: refused")),
	})

	entries := m.registry.Entries()
	require.Len(t, entries, 1)
	assert.Equal(t, validation.KindOperation, entries[0].Kind)
	assert.Contains(t, entries[0].Message, "Error deleting contact")
}

func TestSearchDebounceDropsStaleTicks(t *testing.T) {
	m, _ := newTestModel(t,
		models.Contact{ID: "c1", FirstName: "Ada", LastName: "Lovelace"},
		models.Contact{ID: "c2", FirstName: "Grace", LastName: "Hopper"},
	)

	m, _ = m.Update(keyRunes("/"))
	require.True(t, m.searchInput.Focused())

	// Three keystrokes, three pending ticks. Sequences count up from 1.
	for _, r := range []string{"a", "d", "a"} {
		m, _ = m.Update(keyRunes(r))
	}

	m, _ = m.Update(SearchTickMsg{Seq: 1})
	assert.Len(t, m.filtered, 2, "stale tick must not filter")

	m, _ = m.Update(SearchTickMsg{Seq: 3})
	require.Len(t, m.filtered, 1)
	assert.Equal(t, "c1", m.filtered[0].ID)
}

func TestEnterFiltersImmediately(t *testing.T) {
	m, _ := newTestModel(t,
		models.Contact{ID: "c1", FirstName: "Ada", LastName: "Lovelace"},
		models.Contact{ID: "c2", FirstName: "Grace", LastName: "Hopper"},
	)

	m, _ = m.Update(keyRunes("/"))
	for _, r := range []string{"g", "r"} {
		m, _ = m.Update(keyRunes(r))
	}

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.Len(t, m.filtered, 1)
	assert.Equal(t, "c2", m.filtered[0].ID)

	// The pending tick was flushed and must not re-filter with stale state.
	m, _ = m.Update(SearchTickMsg{Seq: 2})
	assert.Len(t, m.filtered, 1)
}

func TestSnapshotClampsSelection(t *testing.T) {
	m, _ := newTestModel(t,
		models.Contact{ID: "c1", FirstName: "Ada"},
		models.Contact{ID: "c2", FirstName: "Grace"},
		models.Contact{ID: "c3", FirstName: "Edsger"},
	)

	m.selected = 2
	m.SetSnapshot([]models.Contact{{ID: "c1", FirstName: "Ada"}})

	assert.Equal(t, 0, m.selected)
	assert.Len(t, m.filtered, 1)
}

func TestCancellingInvalidFormDropsFieldErrors(t *testing.T) {
	m, _ := newTestModel(t)

	m, _ = m.Update(keyRunes("n"))
	cmd := submit(m)
	require.Nil(t, cmd)
	require.Equal(t, 5, m.registry.Len(), "empty form fails every required check")

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyEsc})

	assert.Equal(t, ModalClosed, m.modal)
	assert.True(t, m.registry.Empty(), "field errors must not outlive the form")
}

func TestCancellingFormKeepsOperationError(t *testing.T) {
	m, _ := newTestModel(t)

	m, _ = m.Update(keyRunes("n"))
	cmd := submit(m)
	require.Nil(t, cmd)

	// A failure from an earlier optimistic dispatch lands while the form
	// is open; cancelling drops the field errors but not the failure.
	m, _ = m.Update(RemoteErrorMsg{
		Operation: "deleting",
		Err:       remote.NewConnectionError("connection refused", errors.New("dial tcp: refused")),
	})
	require.Equal(t, 6, m.registry.Len())

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyEsc})

	entries := m.registry.Entries()
	require.Len(t, entries, 1)
	assert.Equal(t, validation.KindOperation, entries[0].Kind)
}

func TestSpinnerTicksOnlyBeforeFirstSnapshot(t *testing.T) {
	collection := memory.New()
	st := store.New()
	m := NewContactsModel(st, collection, validation.New(10), 300*time.Millisecond, time.Second)
	m.SetSize(100, 40)

	_, cmd := m.Update(m.spinner.Tick())
	assert.NotNil(t, cmd, "spinner keeps ticking while loading")

	st.ReplaceAll(nil)
	_, cmd = m.Update(m.spinner.Tick())
	assert.Nil(t, cmd, "spinner stops once a snapshot has arrived")
}

func TestSelectionNavigation(t *testing.T) {
	m, _ := newTestModel(t,
		models.Contact{ID: "c1", FirstName: "Ada"},
		models.Contact{ID: "c2", FirstName: "Grace"},
	)

	m, _ = m.Update(keyRunes("j"))
	assert.Equal(t, 1, m.selected)

	// Never runs past the end.
	m, _ = m.Update(keyRunes("j"))
	assert.Equal(t, 1, m.selected)

	m, _ = m.Update(keyRunes("k"))
	assert.Equal(t, 0, m.selected)
}
