package views

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"rolodex/internal/config"
	"rolodex/internal/models"
	"rolodex/internal/remote"
	"rolodex/internal/store"
	"rolodex/internal/utils"
	"rolodex/internal/validation"
)

// SubscribedMsg carries the unsubscribe handle once the snapshot
// subscription is live.
type SubscribedMsg struct {
	Unsubscribe remote.UnsubscribeFunc
}

// SubscribeFailedMsg reports that the subscription could not be
// established. The app stays up and shows the failure.
type SubscribeFailedMsg struct {
	Err error
}

// SnapshotMsg delivers one full collection snapshot into the update loop.
type SnapshotMsg struct {
	Contacts []models.Contact
}

// AppModel is the program root. It owns the store and the subscription;
// snapshots cross from the backend's goroutine into the update loop over a
// channel, so the store is only ever written from Update.
type AppModel struct {
	store      *store.Store
	collection remote.Collection
	logger     *zap.Logger

	contactsView *ContactsModel

	// Buffered so a backend that delivers the initial snapshot inside
	// Subscribe never blocks before the listen command starts draining.
	snapshots   chan []models.Contact
	unsubscribe remote.UnsubscribeFunc
	err         error

	width  int
	height int
}

func NewAppModel(cfg *config.Config, collection remote.Collection, logger *zap.Logger) *AppModel {
	st := store.New()
	validator := validation.New(cfg.PhoneLength)

	return &AppModel{
		store:        st,
		collection:   collection,
		logger:       logger,
		contactsView: NewContactsModel(st, collection, validator, cfg.SearchDelay, cfg.Timeout),
		snapshots:    make(chan []models.Contact, 16),
	}
}

func (m *AppModel) Init() tea.Cmd {
	return tea.Batch(m.subscribe(), m.listenForSnapshots(), m.contactsView.Init())
}

// subscribe registers the snapshot callback. The callback runs on the
// backend's goroutine and only forwards into the channel.
func (m *AppModel) subscribe() tea.Cmd {
	return func() tea.Msg {
		unsubscribe, err := m.collection.Subscribe(context.Background(), func(contacts []models.Contact) {
			m.snapshots <- contacts
		})
		if err != nil {
			return SubscribeFailedMsg{Err: err}
		}
		return SubscribedMsg{Unsubscribe: unsubscribe}
	}
}

// listenForSnapshots blocks on the channel for the next snapshot. It is
// re-issued after every delivery so the loop keeps draining.
func (m *AppModel) listenForSnapshots() tea.Cmd {
	return func() tea.Msg {
		contacts, ok := <-m.snapshots
		if !ok {
			return nil
		}
		return SnapshotMsg{Contacts: contacts}
	}
}

func (m *AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.contactsView.SetSize(msg.Width, msg.Height)
		return m, nil

	case SubscribedMsg:
		m.unsubscribe = msg.Unsubscribe
		m.logger.Info("subscribed to contact snapshots")
		return m, nil

	case SubscribeFailedMsg:
		m.err = msg.Err
		m.logger.Error("subscription failed", zap.Error(msg.Err))
		return m, nil

	case SnapshotMsg:
		m.store.ReplaceAll(msg.Contacts)
		m.contactsView.SetSnapshot(m.store.All())
		m.logger.Debug("snapshot applied", zap.Int("contacts", len(msg.Contacts)))
		return m, m.listenForSnapshots()

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, m.quit()
		case "q":
			// Quit only from the list; inside the modal or search, q is
			// just a letter.
			if m.contactsView.modal == ModalClosed &&
				!m.contactsView.confirmingDelete &&
				!m.contactsView.searchInput.Focused() {
				return m, m.quit()
			}
		}
	}

	var cmd tea.Cmd
	m.contactsView, cmd = m.contactsView.Update(msg)
	return m, cmd
}

func (m *AppModel) quit() tea.Cmd {
	if m.unsubscribe != nil {
		m.unsubscribe()
		m.unsubscribe = nil
	}
	m.logger.Info("shutting down")
	return tea.Quit
}

func (m *AppModel) View() string {
	view := m.contactsView.View()

	if m.err != nil {
		errStyle := lipgloss.NewStyle().
			Foreground(lipgloss.Color(utils.Colours.Red)).
			Padding(0, 1)
		view += "\n" + errStyle.Render("Connection problem: "+userMessage(m.err))
	}

	return view
}
