package input

import (
	"context"
	"time"

	"github.com/WaekyTV/Poxel-bot-futur-dashboard/internal/domain/entities"
)

// CreateContestCommand porte la configuration d'un concours à créer.
// Un concours est ouvert aux inscriptions dès sa création.
type CreateContestCommand struct {
	Title                 string
	Description           string
	EndTime               time.Time
	AnnouncementChannelID string
}

type ContestUseCase interface {
	CreateContest(ctx context.Context, cmd CreateContestCommand) error
	Enter(ctx context.Context, title, userID, displayName string) error
	// Draw tire un gagnant uniformément au hasard, notifie, puis supprime
	// le concours (terminal : un concours ne peut être tiré qu'une fois).
	Draw(ctx context.Context, title, requesterID string) (entities.Participant, error)
	// Cancel annule administrativement un concours, quelle que soit sa
	// phase non terminale.
	Cancel(ctx context.Context, title, reason string) error
	FindByMessageID(messageID string) (string, bool)
	Tick(ctx context.Context)
}
