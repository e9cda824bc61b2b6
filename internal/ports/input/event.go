package input

import (
	"context"
	"time"
)

// CreateEventCommand porte la configuration complète d'un événement à créer.
type CreateEventCommand struct {
	Name                  string
	StartTime             time.Time
	EndTime               time.Time
	AnnouncementChannelID string
	WaitingChannelID      string
	RoleID                string
	MaxParticipants       int
}

// JoinResult est le résultat d'une inscription réussie.
type JoinResult struct {
	// Pseudo est le pseudo de jeu retenu (le nom d'affichage si le champ
	// du formulaire était vide).
	Pseudo string
}

type EventUseCase interface {
	CreateEvent(ctx context.Context, cmd CreateEventCommand) error
	Join(ctx context.Context, name, userID, displayName, pseudo string) (JoinResult, error)
	Quit(ctx context.Context, name, userID string) error
	// FindByMessageID retrouve le nom de l'événement annoncé par messageID.
	FindByMessageID(messageID string) (string, bool)
	// Tick exécute une passe de réconciliation complète.
	Tick(ctx context.Context)
}
