package discord

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/bwmarrin/discordgo"

	"github.com/WaekyTV/Poxel-bot-futur-dashboard/internal/config"
)

// Bot is the Discord adapter.
type Bot struct {
	session *discordgo.Session
	config  *config.Config
	handler *Handler
}

// NewBot crée la session Discord et branche le routage des interactions.
func NewBot(cfg *config.Config, session *discordgo.Session, handler *Handler) *Bot {
	bot := &Bot{
		session: session,
		config:  cfg,
		handler: handler,
	}
	bot.setupHandlers()
	return bot
}

// NewSession ouvre une session configurée avec les intents du bot.
func NewSession(cfg *config.Config) (*discordgo.Session, error) {
	s, err := discordgo.New("Bot " + cfg.Token)
	if err != nil {
		return nil, fmt.Errorf("erreur lors de la création de la session Discord: %w", err)
	}
	s.Identify.Intents = discordgo.IntentsGuilds | discordgo.IntentsGuildMessages | discordgo.IntentsGuildMembers
	return s, nil
}

func (b *Bot) setupHandlers() {
	b.session.AddHandler(b.handleInteraction)
}

func (b *Bot) handleInteraction(s *discordgo.Session, i *discordgo.InteractionCreate) {
	switch i.Type {
	case discordgo.InteractionApplicationCommand:
		b.handler.HandleCommand(s, i)
	case discordgo.InteractionModalSubmit:
		customID := i.ModalSubmitData().CustomID
		switch {
		case customID == "modal_event_step1":
			b.handler.HandleEventStep1Submit(s, i, false)
		case customID == "modal_event_step1_plan":
			b.handler.HandleEventStep1Submit(s, i, true)
		case customID == "modal_evt_slots":
			b.handler.HandleSlotsSubmit(s, i)
		case strings.HasPrefix(customID, "modal_join_"):
			b.handler.HandleJoinSubmit(s, i)
		case strings.HasPrefix(customID, "modal_contest_"):
			b.handler.HandleContestModalSubmit(s, i)
		}
	case discordgo.InteractionMessageComponent:
		customID := i.MessageComponentData().CustomID
		switch customID {
		case "btn_event_join":
			b.handler.HandleEventJoin(s, i)
		case "btn_event_quit":
			b.handler.HandleEventQuit(s, i)
		case "btn_contest_enter":
			b.handler.HandleContestEnter(s, i)
		case "btn_contest_draw":
			b.handler.HandleContestDraw(s, i)
		case "evt_announce_select", "evt_waiting_select", "evt_role_select":
			b.handler.HandleEventSelect(s, i)
		case "btn_evt_slots":
			b.handler.HandleSlotsButton(s, i)
		case "btn_evt_confirm":
			b.handler.HandleEventConfirm(s, i)
		}
	}
}

// Start ouvre la session, enregistre les commandes et bloque jusqu'à
// interruption ou annulation du contexte.
func (b *Bot) Start(ctx context.Context) error {
	if err := b.session.Open(); err != nil {
		return fmt.Errorf("erreur lors de l'ouverture de la session: %w", err)
	}
	defer b.session.Close()

	for _, cmd := range applicationCommands() {
		if _, err := b.session.ApplicationCommandCreate(b.session.State.User.ID, b.config.GuildID, cmd); err != nil {
			log.Printf("⚠️ Erreur lors de l'enregistrement de la commande %s: %v", cmd.Name, err)
		}
	}

	fmt.Println("🤖 Bot en ligne ! Appuyez sur CTRL+C pour quitter.")
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	select {
	case <-stop:
	case <-ctx.Done():
	}

	return nil
}
