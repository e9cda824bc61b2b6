package discord

import (
	"context"
	"strings"

	"github.com/bwmarrin/discordgo"

	"github.com/WaekyTV/Poxel-bot-futur-dashboard/internal/ports/input"
	pkgdiscord "github.com/WaekyTV/Poxel-bot-futur-dashboard/pkg/discord"
)

// HandleContestModalSubmit crée le concours configuré. Le salon d'annonce
// est porté par le CustomID du formulaire.
func (h *Handler) HandleContestModalSubmit(s *discordgo.Session, i *discordgo.InteractionCreate) {
	channelID := strings.TrimPrefix(i.ModalSubmitData().CustomID, "modal_contest_")
	values := pkgdiscord.ExtractModalValues(i.ModalSubmitData())

	end, err := pkgdiscord.ParsePlannedStart(values["end_date"], values["end_time"])
	if err != nil {
		h.respondError(s, i, err)
		return
	}

	cmd := input.CreateContestCommand{
		Title:                 strings.TrimSpace(values["title"]),
		Description:           values["desc"],
		EndTime:               end,
		AnnouncementChannelID: channelID,
	}
	if err := h.contests.CreateContest(context.Background(), cmd); err != nil {
		h.respondError(s, i, err)
		return
	}
	respondEphemeral(s, i.Interaction, h.translate(string(i.Locale), "reply.contest_created", map[string]any{"Title": cmd.Title}))
}
