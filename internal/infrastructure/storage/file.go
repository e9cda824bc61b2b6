package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/WaekyTV/Poxel-bot-futur-dashboard/internal/domain/entities"
)

// FilePersister persiste le document dans un fichier JSON unique, réécrit en
// entier à chaque sauvegarde. Le format est celui du fichier historique
// events_contests.json du bot.
type FilePersister struct {
	path string
}

func NewFilePersister(path string) *FilePersister {
	return &FilePersister{path: path}
}

func (f *FilePersister) Load(_ context.Context) (*entities.Document, error) {
	raw, err := os.ReadFile(f.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("lecture de %s: %w", f.path, err)
	}
	var doc entities.Document
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("décodage de %s: %w", f.path, err)
	}
	return &doc, nil
}

func (f *FilePersister) Save(_ context.Context, doc *entities.Document) error {
	raw, err := json.MarshalIndent(doc, "", "    ")
	if err != nil {
		return fmt.Errorf("encodage de l'état: %w", err)
	}
	tmp := f.path + ".tmp"
	if err := os.WriteFile(tmp, raw, 0o644); err != nil {
		return fmt.Errorf("écriture de %s: %w", tmp, err)
	}
	if err := os.Rename(tmp, f.path); err != nil {
		return fmt.Errorf("remplacement de %s: %w", f.path, err)
	}
	return nil
}
