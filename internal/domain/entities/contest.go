package entities

import "time"

// ContestPhase est la phase de vie explicite d'un concours. Un concours est
// ouvert dès sa création ; "finished" attend le tirage au sort. Les états
// terminaux (tiré, annulé, orphelin) retirent l'entité du document.
type ContestPhase string

const (
	ContestOpen     ContestPhase = "open"
	ContestFinished ContestPhase = "finished"
)

// Contest est un concours clé par son titre (unique).
type Contest struct {
	Title                 string        `json:"-"`
	Description           string        `json:"description"`
	EndTime               time.Time     `json:"end_time"`
	AnnouncementChannelID Snowflake     `json:"announcement_channel_id"`
	MessageID             Snowflake     `json:"message_id,omitempty"`
	Participants          []Participant `json:"participants"`
	Phase                 ContestPhase  `json:"phase,omitempty"`
	// LegacyFinished reflète Phase pour l'ancien format (is_finished).
	LegacyFinished bool `json:"is_finished"`
}

func (c *Contest) Finished() bool { return c.Phase == ContestFinished }

// MarkFinished passe le concours en phase terminée (monotone).
func (c *Contest) MarkFinished() {
	c.Phase = ContestFinished
	c.LegacyFinished = true
}

func (c *Contest) HasParticipant(userID Snowflake) bool {
	for _, p := range c.Participants {
		if p.ID == userID {
			return true
		}
	}
	return false
}

// Clone renvoie une copie détachée utilisable hors du verrou du store.
func (c *Contest) Clone() *Contest {
	cp := *c
	cp.Participants = make([]Participant, len(c.Participants))
	copy(cp.Participants, c.Participants)
	return &cp
}
