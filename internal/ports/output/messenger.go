package output

import "context"

// FieldPayload est un champ structuré d'un affichage.
type FieldPayload struct {
	Name   string
	Value  string
	Inline bool
}

// AffordanceKind identifie une interaction proposée par l'affichage. Le
// collaborateur externe (adaptateur Discord) est responsable du câblage vers
// les opérations des moteurs de cycle de vie.
type AffordanceKind int

const (
	AffordanceJoin AffordanceKind = iota
	AffordanceQuit
	AffordanceEnter
	AffordanceDraw
)

// Affordance est une interaction valide pour la phase courante de l'entité.
type Affordance struct {
	Kind     AffordanceKind
	Disabled bool
}

// DisplayPayload est le rendu d'une entité : fonction pure de l'état et de
// l'instant courant, consommée par la frontière d'affichage.
type DisplayPayload struct {
	Title       string
	Description string
	Color       int
	Fields      []FieldPayload
	ImageURL    string
	Affordances []Affordance
}

// Messenger est la frontière d'affichage et de notification Discord.
// Publish crée le message d'annonce persistant et renvoie son id ; Edit ne
// fait ensuite que des éditions. Edit renvoie une erreur de code
// remote_unavailable quand la cible a disparu (salon ou message), signal
// d'orphelinage pour les moteurs. Broadcast, SendDM, SendDMPayload,
// GrantRole et RevokeRole sont utilisés en best-effort par les moteurs :
// l'appelant journalise et continue.
type Messenger interface {
	ChannelResolvable(ctx context.Context, channelID string) bool
	Publish(ctx context.Context, channelID, content string, p DisplayPayload) (messageID string, err error)
	Edit(ctx context.Context, channelID, messageID string, p DisplayPayload) error
	Broadcast(ctx context.Context, channelID, content string) error
	SendDM(ctx context.Context, userID, content string) error
	SendDMPayload(ctx context.Context, userID string, p DisplayPayload) error
	GrantRole(ctx context.Context, channelID, userID, roleID string) error
	RevokeRole(ctx context.Context, channelID, userID, roleID string) error
	RoleName(ctx context.Context, channelID, roleID string) string
}
