package clock

import (
	"context"
	"time"

	"github.com/WaekyTV/Poxel-bot-futur-dashboard/internal/domain/entities"
	"github.com/WaekyTV/Poxel-bot-futur-dashboard/internal/ports/output"
)

// Clock lit l'heure réelle UTC et lui applique le décalage global persisté
// dans les réglages. Le décalage est relu à chaque appel : un changement
// prend effet immédiatement, y compris au milieu d'une passe de
// réconciliation en cours.
type Clock struct {
	store output.StateStore
}

func New(store output.StateStore) *Clock {
	return &Clock{store: store}
}

// Now renvoie l'instant courant ajusté (UTC).
func (c *Clock) Now() time.Time {
	var offset int64
	c.store.View(func(d *entities.Document) {
		offset = d.Settings.TimeOffsetSeconds
	})
	return time.Now().UTC().Add(time.Duration(offset) * time.Second)
}

// SetOffset remplace le décalage global et le persiste.
func (c *Clock) SetOffset(ctx context.Context, seconds int64) error {
	return c.store.Update(ctx, func(d *entities.Document) error {
		d.Settings.TimeOffsetSeconds = seconds
		return nil
	})
}

// Offset renvoie le décalage courant.
func (c *Clock) Offset() time.Duration {
	var offset int64
	c.store.View(func(d *entities.Document) {
		offset = d.Settings.TimeOffsetSeconds
	})
	return time.Duration(offset) * time.Second
}
