package output

import (
	"context"

	"github.com/WaekyTV/Poxel-bot-futur-dashboard/internal/domain/entities"
)

// StateStore expose le document d'état sous exclusion mutuelle. View lit,
// Update mute puis persiste le document entier de façon synchrone. Un échec
// de persistance est journalisé par l'implémentation mais ne défait pas la
// mutation : l'état mémoire reste la référence jusqu'à la prochaine
// sauvegarde réussie.
type StateStore interface {
	View(fn func(doc *entities.Document))
	Update(ctx context.Context, fn func(doc *entities.Document) error) error
}
