package discord

import (
	"sync"
	"time"

	"github.com/WaekyTV/Poxel-bot-futur-dashboard/internal/clock"
	"github.com/WaekyTV/Poxel-bot-futur-dashboard/internal/ports/input"
	"github.com/WaekyTV/Poxel-bot-futur-dashboard/internal/ports/output"
)

// eventDraft accumule la configuration d'un événement entre l'étape 1
// (formulaire) et l'étape 2 (sélecteurs). Indexé par id d'utilisateur : un
// administrateur ne configure qu'un événement à la fois.
type eventDraft struct {
	name       string
	startTime  time.Time
	duration   time.Duration
	announceID string
	waitingID  string
	roleID     string
	maxSlots   int
}

func (d *eventDraft) complete() bool {
	return d.announceID != "" && d.waitingID != "" && d.roleID != "" && d.maxSlots > 0
}

// Handler traite les interactions Discord via les cas d'usage.
type Handler struct {
	events        input.EventUseCase
	contests      input.ContestUseCase
	clock         *clock.Clock
	translator    output.T
	defaultLocale string

	mu     sync.Mutex
	drafts map[string]*eventDraft
}

// NewHandler creates a Handler.
func NewHandler(
	events input.EventUseCase,
	contests input.ContestUseCase,
	clk *clock.Clock,
	translator output.T,
	defaultLocale string,
) *Handler {
	return &Handler{
		events:        events,
		contests:      contests,
		clock:         clk,
		translator:    translator,
		defaultLocale: defaultLocale,
		drafts:        make(map[string]*eventDraft),
	}
}

// translate résout une clé dans la locale de l'interaction, avec repli sur
// la locale par défaut.
func (h *Handler) translate(locale, key string, data map[string]any) string {
	if locale == "" {
		locale = h.defaultLocale
	}
	return h.translator.T(locale, key, data)
}

func (h *Handler) draft(userID string) (*eventDraft, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	d, ok := h.drafts[userID]
	return d, ok
}

func (h *Handler) putDraft(userID string, d *eventDraft) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.drafts[userID] = d
}

func (h *Handler) dropDraft(userID string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.drafts, userID)
}
