package discord

import (
	"context"
	"fmt"
	"strings"

	"github.com/bwmarrin/discordgo"

	"github.com/WaekyTV/Poxel-bot-futur-dashboard/internal/domain"
	pkgdiscord "github.com/WaekyTV/Poxel-bot-futur-dashboard/pkg/discord"
)

// HandleEventJoin ouvre le formulaire de pseudo. L'inscription effective se
// fait à la soumission du formulaire.
func (h *Handler) HandleEventJoin(s *discordgo.Session, i *discordgo.InteractionCreate) {
	_ = s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseModal,
		Data: &discordgo.InteractionResponseData{
			CustomID: fmt.Sprintf("modal_join_%s", i.Message.ID),
			Title:    "Inscription à l'événement",
			Components: []discordgo.MessageComponent{
				discordgo.ActionsRow{Components: []discordgo.MessageComponent{
					discordgo.TextInput{
						CustomID:    "pseudo",
						Label:       "Entrez votre pseudo pour le jeu",
						Style:       discordgo.TextInputShort,
						Required:    false,
						Placeholder: "Vide = votre nom d'affichage",
					},
				}},
			},
		},
	})
}

func (h *Handler) HandleJoinSubmit(s *discordgo.Session, i *discordgo.InteractionCreate) {
	messageID := strings.TrimPrefix(i.ModalSubmitData().CustomID, "modal_join_")
	name, ok := h.events.FindByMessageID(messageID)
	if !ok {
		h.respondError(s, i, domain.ErrEventNotFound)
		return
	}
	pseudo := strings.TrimSpace(pkgdiscord.ExtractModalValues(i.ModalSubmitData())["pseudo"])
	res, err := h.events.Join(context.Background(), name, i.Member.User.ID, resolveDisplayName(i.Member), pseudo)
	if err != nil {
		h.respondError(s, i, err)
		return
	}
	respondEphemeral(s, i.Interaction, h.translate(string(i.Locale), "reply.join_success", map[string]any{
		"Name":   name,
		"Pseudo": res.Pseudo,
	}))
}

func (h *Handler) HandleEventQuit(s *discordgo.Session, i *discordgo.InteractionCreate) {
	name, ok := h.events.FindByMessageID(i.Message.ID)
	if !ok {
		h.respondError(s, i, domain.ErrEventNotFound)
		return
	}
	if err := h.events.Quit(context.Background(), name, i.Member.User.ID); err != nil {
		h.respondError(s, i, err)
		return
	}
	respondEphemeral(s, i.Interaction, h.translate(string(i.Locale), "reply.quit_success", nil))
}

func (h *Handler) HandleContestEnter(s *discordgo.Session, i *discordgo.InteractionCreate) {
	title, ok := h.contests.FindByMessageID(i.Message.ID)
	if !ok {
		h.respondError(s, i, domain.ErrContestNotFound)
		return
	}
	if err := h.contests.Enter(context.Background(), title, i.Member.User.ID, resolveDisplayName(i.Member)); err != nil {
		h.respondError(s, i, err)
		return
	}
	respondEphemeral(s, i.Interaction, h.translate(string(i.Locale), "reply.enter_success", nil))
}

// HandleContestDraw exécute le tirage depuis le bouton de l'annonce. Réservé
// aux administrateurs, le bouton étant visible de tous.
func (h *Handler) HandleContestDraw(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if !isAdmin(i) {
		respondEphemeral(s, i.Interaction, h.translate(string(i.Locale), "errors.admin_only", nil))
		return
	}
	title, ok := h.contests.FindByMessageID(i.Message.ID)
	if !ok {
		h.respondError(s, i, domain.ErrContestNotFound)
		return
	}
	if _, err := h.contests.Draw(context.Background(), title, i.Member.User.ID); err != nil {
		h.respondError(s, i, err)
		return
	}
	respondEphemeral(s, i.Interaction, h.translate(string(i.Locale), "reply.draw_success", map[string]any{"Title": title}))
}

