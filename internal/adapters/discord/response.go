package discord

import (
	"github.com/bwmarrin/discordgo"

	"github.com/WaekyTV/Poxel-bot-futur-dashboard/internal/domain"
)

// Nick > GlobalName > Username
func resolveDisplayName(member *discordgo.Member) string {
	if member == nil || member.User == nil {
		return ""
	}
	if member.Nick != "" {
		return member.Nick
	}
	if member.User.GlobalName != "" {
		return member.User.GlobalName
	}
	return member.User.Username
}

func respondEphemeral(s *discordgo.Session, i *discordgo.Interaction, content string) {
	_ = s.InteractionRespond(i, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Content: content,
			Flags:   discordgo.MessageFlagsEphemeral,
		},
	})
}

// respondError traduit un code d'erreur du domaine en message éphémère.
func (h *Handler) respondError(s *discordgo.Session, i *discordgo.InteractionCreate, err error) {
	key := "errors.generic"
	if code := domain.Code(err); code != "" {
		key = "errors." + code
	}
	respondEphemeral(s, i.Interaction, h.translate(string(i.Locale), key, nil))
}

func isAdmin(i *discordgo.InteractionCreate) bool {
	return i.Member != nil && i.Member.Permissions&discordgo.PermissionAdministrator != 0
}
