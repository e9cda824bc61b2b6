package entities

import "time"

// EventPhase est la phase de vie explicite d'un événement. Les phases
// terminales (annulé, terminé, orphelin) ne sont pas persistées : l'entité est
// retirée du document au même tick.
type EventPhase string

const (
	EventPending EventPhase = "pending"
	EventStarted EventPhase = "started"
)

// Event est un événement planifié, clé par son nom d'affichage (unique,
// sensible à la casse). MessageID reste vide tant que l'annonce n'a pas été
// publiée, puis ne change plus.
type Event struct {
	Name                  string        `json:"-"`
	StartTime             time.Time     `json:"start_time"`
	EndTime               time.Time     `json:"end_time"`
	AnnouncementChannelID Snowflake     `json:"announcement_channel_id"`
	WaitingChannelID      Snowflake     `json:"waiting_channel_id"`
	RoleID                Snowflake     `json:"role_id"`
	MessageID             Snowflake     `json:"message_id,omitempty"`
	MaxParticipants       int           `json:"max_participants"`
	Participants          []Participant `json:"participants"`
	LastParticipantCount  int           `json:"last_participant_count"`
	Phase                 EventPhase    `json:"phase,omitempty"`
	// LegacyStarted reflète Phase pour rester lisible par l'ancien format
	// de données (is_started). Maintenu via MarkStarted/Normalize.
	LegacyStarted bool `json:"is_started"`
	Reminded30m   bool `json:"reminded_30m"`
}

func (e *Event) Started() bool { return e.Phase == EventStarted }

// MarkStarted passe l'événement en phase démarrée. Transition monotone :
// aucune opération ne ramène un événement démarré en attente.
func (e *Event) MarkStarted() {
	e.Phase = EventStarted
	e.LegacyStarted = true
}

func (e *Event) IsFull() bool {
	return e.MaxParticipants > 0 && len(e.Participants) >= e.MaxParticipants
}

func (e *Event) HasParticipant(userID Snowflake) bool {
	for _, p := range e.Participants {
		if p.ID == userID {
			return true
		}
	}
	return false
}

// RemoveParticipant retire userID du roster et indique s'il y était.
func (e *Event) RemoveParticipant(userID Snowflake) bool {
	for i, p := range e.Participants {
		if p.ID == userID {
			e.Participants = append(e.Participants[:i], e.Participants[i+1:]...)
			return true
		}
	}
	return false
}

// Clone renvoie une copie détachée (roster inclus) utilisable hors du verrou
// du store.
func (e *Event) Clone() *Event {
	cp := *e
	cp.Participants = make([]Participant, len(e.Participants))
	copy(cp.Participants, e.Participants)
	return &cp
}
