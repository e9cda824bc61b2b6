package output

import "time"

// Clock fournit l'instant courant ajusté du décalage global persisté.
// Évalué à chaque appel, jamais mis en cache.
type Clock interface {
	Now() time.Time
}
