package entities

// Settings regroupe les réglages globaux persistés.
type Settings struct {
	// TimeOffsetSeconds est appliqué uniformément à chaque lecture de
	// l'horloge (voir clock.Clock). Modifié uniquement par action admin.
	TimeOffsetSeconds int64 `json:"time_offset_seconds"`
}

// Document est l'unique document d'état persisté : tous les événements, tous
// les concours et les réglages. Chargé entier au démarrage, réécrit entier
// après chaque mutation.
type Document struct {
	Events   map[string]*Event   `json:"events"`
	Contests map[string]*Contest `json:"contests"`
	Settings Settings            `json:"settings"`
}

// NewDocument renvoie le document vide par défaut.
func NewDocument() *Document {
	return &Document{
		Events:   map[string]*Event{},
		Contests: map[string]*Contest{},
	}
}

// Normalize remet le document dans un état cohérent après désérialisation :
// cartes non nil, clés recopiées dans les entités, phases déduites des
// anciens booléens is_started/is_finished quand le champ phase est absent.
// Les champs optionnels absents gardent leur valeur zéro (compatibilité
// ascendante du format).
func (d *Document) Normalize() {
	if d.Events == nil {
		d.Events = map[string]*Event{}
	}
	if d.Contests == nil {
		d.Contests = map[string]*Contest{}
	}
	for name, e := range d.Events {
		e.Name = name
		if e.Phase == "" {
			e.Phase = EventPending
			if e.LegacyStarted {
				e.Phase = EventStarted
			}
		}
		e.LegacyStarted = e.Phase == EventStarted
		if e.Participants == nil {
			e.Participants = []Participant{}
		}
	}
	for title, c := range d.Contests {
		c.Title = title
		if c.Phase == "" {
			c.Phase = ContestOpen
			if c.LegacyFinished {
				c.Phase = ContestFinished
			}
		}
		c.LegacyFinished = c.Phase == ContestFinished
		if c.Participants == nil {
			c.Participants = []Participant{}
		}
	}
}
