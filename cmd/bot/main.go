package main

import (
	"context"
	"log"
	"math/rand"
	"os"
	"time"

	"github.com/WaekyTV/Poxel-bot-futur-dashboard/internal/adapters/discord"
	"github.com/WaekyTV/Poxel-bot-futur-dashboard/internal/adapters/keepalive"
	"github.com/WaekyTV/Poxel-bot-futur-dashboard/internal/application"
	"github.com/WaekyTV/Poxel-bot-futur-dashboard/internal/clock"
	"github.com/WaekyTV/Poxel-bot-futur-dashboard/internal/config"
	"github.com/WaekyTV/Poxel-bot-futur-dashboard/internal/infrastructure/i18n"
	"github.com/WaekyTV/Poxel-bot-futur-dashboard/internal/infrastructure/storage"
	"github.com/WaekyTV/Poxel-bot-futur-dashboard/internal/presentation"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("❌ Erreur de configuration: %v", err)
	}

	ctx := context.Background()

	var persister storage.Persister
	if cfg.UsesPostgres() {
		if err := storage.RunMigrations(cfg.DatabaseURL, cfg.MigrationsPath); err != nil {
			log.Fatalf("❌ Erreur lors des migrations: %v", err)
		}
		pg, err := storage.NewPostgresPersister(ctx, cfg.DatabaseURL)
		if err != nil {
			log.Fatalf("❌ Erreur lors de l'initialisation de la base de données: %v", err)
		}
		defer pg.Close()
		persister = pg
	} else {
		persister = storage.NewFilePersister(cfg.DataFile)
	}

	store, err := storage.Open(ctx, persister)
	if err != nil {
		log.Fatalf("❌ Erreur lors du chargement de l'état: %v", err)
	}

	translator := i18n.NewTranslator(cfg.DefaultLocale)
	clk := clock.New(store)
	renderer := presentation.NewRenderer(translator, cfg.DefaultLocale)

	session, err := discord.NewSession(cfg)
	if err != nil {
		log.Fatalf("❌ %v", err)
	}
	messenger := discord.NewMessenger(session)

	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	events := application.NewEventService(store, clk, messenger, renderer, translator, cfg.DefaultLocale)
	contests := application.NewContestService(store, clk, messenger, renderer, translator, cfg.DefaultLocale, rng)

	handler := discord.NewHandler(events, contests, clk, translator, cfg.DefaultLocale)
	bot := discord.NewBot(cfg, session, handler)

	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	reconciler := application.NewReconciler(events, contests, application.DefaultReconcileInterval)
	reconciler.Run(runCtx)

	go func() {
		if err := keepalive.Run(cfg.Port); err != nil {
			log.Printf("⚠️ Serveur keepalive arrêté: %v", err)
		}
	}()

	if err := bot.Start(runCtx); err != nil {
		log.Printf("❌ Erreur lors du démarrage du bot: %v", err)
		os.Exit(1)
	}

	cancel()
	if err := store.Flush(context.Background()); err != nil {
		log.Printf("❌ Erreur lors de la sauvegarde finale: %v", err)
	}
}
