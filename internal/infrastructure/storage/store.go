package storage

import (
	"context"
	"fmt"
	"log"
	"sync"

	"github.com/WaekyTV/Poxel-bot-futur-dashboard/internal/domain"
	"github.com/WaekyTV/Poxel-bot-futur-dashboard/internal/domain/entities"
	"github.com/WaekyTV/Poxel-bot-futur-dashboard/internal/ports/output"
)

// Persister charge et sauvegarde le document d'état complet. Load renvoie
// (nil, nil) quand aucun document n'a encore été persisté.
type Persister interface {
	Load(ctx context.Context) (*entities.Document, error)
	Save(ctx context.Context, doc *entities.Document) error
}

// Store détient le document d'état en mémoire sous un verrou unique.
// Toutes les mutations (interactions et boucles de réconciliation) passent
// par Update, qui persiste le document entier après chaque mutation réussie.
// Un échec de sauvegarde est journalisé mais ne défait pas la mutation :
// l'état mémoire reste la référence et la prochaine sauvegarde sert de
// nouvelle tentative.
type Store struct {
	mu        sync.RWMutex
	doc       *entities.Document
	persister Persister
}

var _ output.StateStore = (*Store)(nil)

// Open charge le document persisté (ou le document vide par défaut) et
// renvoie le store prêt à l'emploi.
func Open(ctx context.Context, p Persister) (*Store, error) {
	doc, err := p.Load(ctx)
	if err != nil {
		return nil, err
	}
	if doc == nil {
		doc = entities.NewDocument()
	}
	doc.Normalize()
	return &Store{doc: doc, persister: p}, nil
}

// View exécute fn en lecture sous le verrou. fn ne doit pas conserver de
// référence vers le document ; cloner ce qui doit survivre à l'appel.
func (s *Store) View(fn func(doc *entities.Document)) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	fn(s.doc)
}

// Update exécute fn sous le verrou puis sauvegarde. Si fn renvoie une
// erreur, rien n'est persisté et l'erreur est propagée telle quelle.
func (s *Store) Update(ctx context.Context, fn func(doc *entities.Document) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := fn(s.doc); err != nil {
		return err
	}
	s.doc.Normalize()
	if err := s.persister.Save(ctx, s.doc); err != nil {
		log.Printf("❌ Sauvegarde de l'état impossible (l'état mémoire reste valide): %v", err)
	}
	return nil
}

// Flush force une sauvegarde, typiquement à l'arrêt du processus.
func (s *Store) Flush(ctx context.Context) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if err := s.persister.Save(ctx, s.doc); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrPersistenceFailure, err)
	}
	return nil
}
