package application

import (
	"context"
	"time"
)

// DefaultReconcileInterval est la période des deux boucles de réconciliation.
const DefaultReconcileInterval = 10 * time.Second

// ticker est implémenté par les moteurs de cycle de vie.
type ticker interface {
	Tick(ctx context.Context)
}

// Reconciler pilote les deux boucles de fond, une par type d'entité. Chaque
// boucle est indépendante et ses ticks ne se chevauchent jamais : le tick
// suivant n'est lancé qu'après la fin du précédent.
type Reconciler struct {
	events   ticker
	contests ticker
	interval time.Duration
}

func NewReconciler(events, contests ticker, interval time.Duration) *Reconciler {
	if interval <= 0 {
		interval = DefaultReconcileInterval
	}
	return &Reconciler{events: events, contests: contests, interval: interval}
}

// Run démarre les deux boucles et rend la main. Elles tournent jusqu'à
// l'annulation du contexte.
func (r *Reconciler) Run(ctx context.Context) {
	go r.loop(ctx, r.events)
	go r.loop(ctx, r.contests)
}

func (r *Reconciler) loop(ctx context.Context, t ticker) {
	tick := time.NewTicker(r.interval)
	defer tick.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-tick.C:
			t.Tick(ctx)
		}
	}
}
