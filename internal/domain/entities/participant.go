package entities

import "encoding/json"

// Snowflake is a Discord identifier. The legacy data file stored ids as JSON
// numbers; the reader accepts both forms and always writes strings.
type Snowflake string

func (s Snowflake) String() string { return string(s) }

func (s *Snowflake) UnmarshalJSON(b []byte) error {
	if len(b) > 0 && b[0] == '"' {
		var str string
		if err := json.Unmarshal(b, &str); err != nil {
			return err
		}
		*s = Snowflake(str)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return err
	}
	*s = Snowflake(n.String())
	return nil
}

// Participant est une entrée du roster d'un événement ou d'un concours.
// Pseudo n'est renseigné que pour les événements (pseudo de jeu choisi à
// l'inscription, par défaut le nom d'affichage Discord).
type Participant struct {
	ID          Snowflake `json:"id"`
	DisplayName string    `json:"name"`
	Pseudo      string    `json:"pseudo,omitempty"`
}

// Mention renvoie la mention Discord du participant.
func (p Participant) Mention() string { return "<@" + string(p.ID) + ">" }
