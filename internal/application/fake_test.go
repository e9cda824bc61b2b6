package application

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/WaekyTV/Poxel-bot-futur-dashboard/internal/domain"
	"github.com/WaekyTV/Poxel-bot-futur-dashboard/internal/domain/entities"
	"github.com/WaekyTV/Poxel-bot-futur-dashboard/internal/infrastructure/storage"
	"github.com/WaekyTV/Poxel-bot-futur-dashboard/internal/ports/output"
)

// memPersister garde le document en mémoire, sans fichier ni base.
type memPersister struct {
	doc   *entities.Document
	saves int
}

func (m *memPersister) Load(context.Context) (*entities.Document, error) { return m.doc, nil }

func (m *memPersister) Save(_ context.Context, doc *entities.Document) error {
	m.doc = doc
	m.saves++
	return nil
}

func newTestStore(t *testing.T) *storage.Store {
	t.Helper()
	store, err := storage.Open(context.Background(), &memPersister{})
	if err != nil {
		t.Fatalf("ouverture du store: %v", err)
	}
	return store
}

// fakeClock renvoie un instant contrôlé par le test.
type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Set(t time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = t
}

// fakeTranslator renvoie la clé telle quelle, les tests s'appuyant sur les
// clés plutôt que sur les textes traduits.
type fakeTranslator struct{}

func (fakeTranslator) T(_, key string, _ map[string]any) string { return key }

type broadcastCall struct {
	ChannelID string
	Content   string
}

type editCall struct {
	ChannelID string
	MessageID string
	Payload   output.DisplayPayload
}

// fakeMessenger enregistre tous les effets de bord et simule les
// défaillances distantes configurées.
type fakeMessenger struct {
	mu sync.Mutex

	nextID     int
	Broadcasts []broadcastCall
	Edits      []editCall
	DMs        map[string][]string
	DMPayloads map[string][]output.DisplayPayload
	Granted    map[string]string // userID -> roleID
	Revoked    map[string]string

	UnresolvableChannels map[string]bool
	MissingMessages      map[string]bool
	BroadcastErr         error
	GrantErr             error
	DMErr                error
}

func newFakeMessenger() *fakeMessenger {
	return &fakeMessenger{
		DMs:                  make(map[string][]string),
		DMPayloads:           make(map[string][]output.DisplayPayload),
		Granted:              make(map[string]string),
		Revoked:              make(map[string]string),
		UnresolvableChannels: make(map[string]bool),
		MissingMessages:      make(map[string]bool),
	}
}

func (m *fakeMessenger) ChannelResolvable(_ context.Context, channelID string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return !m.UnresolvableChannels[channelID]
}

func (m *fakeMessenger) Publish(_ context.Context, channelID, content string, _ output.DisplayPayload) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.UnresolvableChannels[channelID] {
		return "", domain.ErrRemoteUnavailable
	}
	m.nextID++
	m.Broadcasts = append(m.Broadcasts, broadcastCall{ChannelID: channelID, Content: content})
	return fmt.Sprintf("msg-%d", m.nextID), nil
}

func (m *fakeMessenger) Edit(_ context.Context, channelID, messageID string, p output.DisplayPayload) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.UnresolvableChannels[channelID] || m.MissingMessages[messageID] {
		return domain.ErrRemoteUnavailable
	}
	m.Edits = append(m.Edits, editCall{ChannelID: channelID, MessageID: messageID, Payload: p})
	return nil
}

func (m *fakeMessenger) Broadcast(_ context.Context, channelID, content string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.BroadcastErr != nil {
		return m.BroadcastErr
	}
	m.Broadcasts = append(m.Broadcasts, broadcastCall{ChannelID: channelID, Content: content})
	return nil
}

func (m *fakeMessenger) SendDM(_ context.Context, userID, content string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.DMErr != nil {
		return m.DMErr
	}
	m.DMs[userID] = append(m.DMs[userID], content)
	return nil
}

func (m *fakeMessenger) SendDMPayload(_ context.Context, userID string, p output.DisplayPayload) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.DMErr != nil {
		return m.DMErr
	}
	m.DMPayloads[userID] = append(m.DMPayloads[userID], p)
	return nil
}

func (m *fakeMessenger) GrantRole(_ context.Context, _, userID, roleID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.GrantErr != nil {
		return m.GrantErr
	}
	m.Granted[userID] = roleID
	return nil
}

func (m *fakeMessenger) RevokeRole(_ context.Context, _, userID, roleID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Revoked[userID] = roleID
	return nil
}

func (m *fakeMessenger) RoleName(_ context.Context, _, roleID string) string {
	return "role-" + roleID
}

func (m *fakeMessenger) broadcastContents() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]string, 0, len(m.Broadcasts))
	for _, b := range m.Broadcasts {
		out = append(out, b.Content)
	}
	return out
}
