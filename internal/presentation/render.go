// Package presentation rend l'état courant des entités en payloads
// d'affichage. Les fonctions sont pures (état + instant courant), sans effet
// de bord : elles peuvent être appelées à chaque tick sans risque.
package presentation

import (
	"fmt"
	"strings"
	"time"

	"github.com/WaekyTV/Poxel-bot-futur-dashboard/internal/domain/entities"
	"github.com/WaekyTV/Poxel-bot-futur-dashboard/internal/ports/output"
	"github.com/WaekyTV/Poxel-bot-futur-dashboard/pkg/timefmt"
	"github.com/WaekyTV/Poxel-bot-futur-dashboard/pkg/tz"
)

const (
	neonPurple = 0x6441a5
	neonBlue   = 0x027afa

	eventImageURL = "https://cdn.lospec.com/gallery/loading-727267.gif"
)

// Renderer construit les payloads d'affichage localisés.
type Renderer struct {
	t      output.T
	locale string
}

func NewRenderer(t output.T, locale string) *Renderer {
	return &Renderer{t: t, locale: locale}
}

func (r *Renderer) tr(key string, data map[string]any) string {
	return r.t.T(r.locale, key, data)
}

// Event rend l'annonce d'un événement selon sa phase courante.
func (r *Renderer) Event(e *entities.Event, now time.Time) output.DisplayPayload {
	if e.Started() {
		return r.eventStarted(e, now)
	}
	return r.eventPending(e, now)
}

func (r *Renderer) eventPending(e *entities.Event, now time.Time) output.DisplayPayload {
	startParis := e.StartTime.In(tz.Paris)
	p := output.DisplayPayload{
		Title:       r.tr("render.event.title", map[string]any{"Name": e.Name}),
		Description: r.tr("render.event.description", nil),
		Color:       neonPurple,
		ImageURL:    eventImageURL,
		Fields: []output.FieldPayload{
			{Name: r.tr("render.field.rally_point", nil), Value: "<#" + string(e.WaitingChannelID) + ">", Inline: true},
			{Name: r.tr("render.field.role", nil), Value: "<@&" + string(e.RoleID) + ">", Inline: true},
			{Name: r.tr("render.field.scheduled_start", nil), Value: r.tr("render.scheduled_at", map[string]any{
				"Date": startParis.Format("02/01/2006"),
				"Time": startParis.Format("15h04"),
			})},
			{Name: r.tr("render.field.starts_in", nil), Value: timefmt.Until(e.StartTime, now)},
			{
				Name:  r.tr("render.field.participants", map[string]any{"Count": len(e.Participants), "Max": e.MaxParticipants}),
				Value: r.eventRoster(e, true),
			},
		},
		Affordances: []output.Affordance{
			{Kind: output.AffordanceJoin, Disabled: e.IsFull()},
			{Kind: output.AffordanceQuit},
		},
	}
	return p
}

func (r *Renderer) eventStarted(e *entities.Event, now time.Time) output.DisplayPayload {
	return output.DisplayPayload{
		Title:       r.tr("render.event.started.title", map[string]any{"Name": e.Name}),
		Description: r.tr("render.event.started.description", nil),
		Color:       neonPurple,
		Fields: []output.FieldPayload{
			{Name: r.tr("render.field.state", nil), Value: r.tr("render.state.in_progress", nil)},
			{Name: r.tr("render.field.time_left", nil), Value: timefmt.Until(e.EndTime, now)},
			{
				Name:  r.tr("render.field.participants_count", map[string]any{"Count": len(e.Participants)}),
				Value: r.eventRoster(e, false),
			},
		},
	}
}

// EventCancelled rend l'affichage terminal d'un événement annulé faute de
// participants.
func (r *Renderer) EventCancelled(e *entities.Event) output.DisplayPayload {
	return output.DisplayPayload{
		Title:       r.tr("render.event.cancelled.title", map[string]any{"Name": e.Name}),
		Description: r.tr("render.event.cancelled.description", nil),
		Color:       neonPurple,
		Fields: []output.FieldPayload{
			{Name: r.tr("render.field.state", nil), Value: r.tr("render.state.cancelled", nil)},
		},
	}
}

// EventFinished rend l'affichage terminal d'un événement terminé.
func (r *Renderer) EventFinished(e *entities.Event) output.DisplayPayload {
	return output.DisplayPayload{
		Title:       r.tr("render.event.finished.title", map[string]any{"Name": e.Name}),
		Description: r.tr("render.event.finished.description", nil),
		Color:       neonPurple,
		Fields: []output.FieldPayload{
			{Name: r.tr("render.field.state", nil), Value: r.tr("render.state.finished", nil)},
		},
	}
}

// Contest rend l'annonce d'un concours selon sa phase courante.
func (r *Renderer) Contest(c *entities.Contest, now time.Time) output.DisplayPayload {
	if c.Finished() {
		return r.contestFinished(c, true)
	}
	endParis := c.EndTime.In(tz.Paris)
	return output.DisplayPayload{
		Title:       c.Title,
		Description: c.Description,
		Color:       neonBlue,
		Fields: []output.FieldPayload{
			{Name: r.tr("render.field.registered", nil), Value: r.contestRoster(c)},
			{Name: r.tr("render.field.contest_end", nil), Value: r.tr("render.scheduled_at", map[string]any{
				"Date": endParis.Format("02/01/2006"),
				"Time": endParis.Format("15:04"),
			})},
			{Name: r.tr("render.field.time_left", nil), Value: timefmt.Until(c.EndTime, now)},
		},
		Affordances: []output.Affordance{{Kind: output.AffordanceEnter}},
	}
}

func (r *Renderer) contestFinished(c *entities.Contest, withDraw bool) output.DisplayPayload {
	p := output.DisplayPayload{
		Title:       r.tr("render.contest.finished.title", map[string]any{"Title": c.Title}),
		Description: r.tr("render.contest.finished.description", nil),
		Color:       neonBlue,
		Fields: []output.FieldPayload{
			{Name: r.tr("render.field.state", nil), Value: r.tr("render.state.finished", nil)},
		},
	}
	if withDraw {
		p.Affordances = []output.Affordance{{Kind: output.AffordanceDraw}}
	}
	return p
}

// ContestDrawn rend l'affichage final après tirage : identique à la phase
// terminée, sans l'affordance de tirage.
func (r *Renderer) ContestDrawn(c *entities.Contest) output.DisplayPayload {
	return r.contestFinished(c, false)
}

// ContestCancelled rend l'affichage terminal d'un concours annulé par un
// administrateur.
func (r *Renderer) ContestCancelled(c *entities.Contest, reason string) output.DisplayPayload {
	return output.DisplayPayload{
		Title:       r.tr("render.contest.cancelled.title", map[string]any{"Title": c.Title}),
		Description: r.tr("render.contest.cancelled.description", map[string]any{"Reason": reason}),
		Color:       neonBlue,
		Fields: []output.FieldPayload{
			{Name: r.tr("render.field.state", nil), Value: r.tr("render.state.cancelled", nil)},
		},
	}
}

// ContestCancelledEmpty rend l'affichage terminal d'un concours annulé faute
// d'inscrits à l'échéance.
func (r *Renderer) ContestCancelledEmpty(c *entities.Contest) output.DisplayPayload {
	return output.DisplayPayload{
		Title:       r.tr("render.contest.cancelled.title", map[string]any{"Title": c.Title}),
		Description: r.tr("render.contest.cancelled_empty.description", nil),
		Color:       neonBlue,
		Fields: []output.FieldPayload{
			{Name: r.tr("render.field.registered", nil), Value: r.tr("render.no_participants_short", nil)},
		},
	}
}

// WinnerDM rend l'embed privé envoyé au gagnant du tirage.
func (r *Renderer) WinnerDM(c *entities.Contest) output.DisplayPayload {
	return output.DisplayPayload{
		Title:       r.tr("dm.winner.title", nil),
		Description: r.tr("dm.winner.description", map[string]any{"Title": c.Title}),
		Color:       neonBlue,
	}
}

func (r *Renderer) eventRoster(e *entities.Event, withPseudo bool) string {
	if len(e.Participants) == 0 {
		return r.tr("render.no_participants", nil)
	}
	lines := make([]string, 0, len(e.Participants))
	for _, p := range e.Participants {
		if withPseudo {
			lines = append(lines, fmt.Sprintf("- **%s** (%s)", p.DisplayName, p.Pseudo))
		} else {
			lines = append(lines, fmt.Sprintf("- **%s**", p.DisplayName))
		}
	}
	return strings.Join(lines, "\n")
}

func (r *Renderer) contestRoster(c *entities.Contest) string {
	if len(c.Participants) == 0 {
		return r.tr("render.no_participants", nil)
	}
	lines := make([]string, 0, len(c.Participants))
	for _, p := range c.Participants {
		lines = append(lines, "- "+p.Mention())
	}
	return strings.Join(lines, "\n")
}
