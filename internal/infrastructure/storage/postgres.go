package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/WaekyTV/Poxel-bot-futur-dashboard/internal/domain/entities"
)

// PostgresPersister persiste le document d'état dans une unique ligne jsonb
// (table bot_state, id = 1). C'est un blob clé-valeur, pas un modèle
// relationnel : le document est lu et réécrit en entier, comme le fichier.
type PostgresPersister struct {
	pool *pgxpool.Pool
}

// NewPostgresPersister ouvre un pool pgx vers PostgreSQL et vérifie la
// connexion.
func NewPostgresPersister(ctx context.Context, dsn string) (*PostgresPersister, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, err
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, err
	}
	log.Println("✅ Base de données PostgreSQL connectée.")
	return &PostgresPersister{pool: pool}, nil
}

func (p *PostgresPersister) Load(ctx context.Context) (*entities.Document, error) {
	var raw []byte
	err := p.pool.QueryRow(ctx, `SELECT doc FROM bot_state WHERE id = 1`).Scan(&raw)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("lecture de bot_state: %w", err)
	}
	var doc entities.Document
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("décodage de bot_state: %w", err)
	}
	return &doc, nil
}

func (p *PostgresPersister) Save(ctx context.Context, doc *entities.Document) error {
	raw, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("encodage de l'état: %w", err)
	}
	_, err = p.pool.Exec(ctx, `
		INSERT INTO bot_state (id, doc, updated_at)
		VALUES (1, $1, now())
		ON CONFLICT (id) DO UPDATE SET doc = EXCLUDED.doc, updated_at = now()
	`, raw)
	if err != nil {
		return fmt.Errorf("écriture de bot_state: %w", err)
	}
	return nil
}

func (p *PostgresPersister) Close() {
	p.pool.Close()
}
