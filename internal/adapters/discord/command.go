package discord

import (
	"context"
	"fmt"

	"github.com/bwmarrin/discordgo"

	"github.com/WaekyTV/Poxel-bot-futur-dashboard/internal/domain"
)

const (
	placeholderName     = "Ex: Soirée Among Us"
	placeholderDate     = "Ex: 31/12/2025"
	placeholderClock    = "Ex: 21h30"
	placeholderDuration = "Ex: 2h ou 90min"
	placeholderSlots    = "Ex: 25"
)

var adminPermission int64 = discordgo.PermissionAdministrator

// applicationCommands est la surface de commandes du bot. Les commandes
// d'administration portent la permission par défaut administrateur.
func applicationCommands() []*discordgo.ApplicationCommand {
	return []*discordgo.ApplicationCommand{
		{
			Name:                     "create_event",
			Description:              "Configurer un événement pour le jour même",
			DefaultMemberPermissions: &adminPermission,
		},
		{
			Name:                     "create_event_plan",
			Description:              "Configurer un événement à une date future",
			DefaultMemberPermissions: &adminPermission,
		},
		{
			Name:                     "concours",
			Description:              "Configurer et créer un nouveau concours",
			DefaultMemberPermissions: &adminPermission,
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:         discordgo.ApplicationCommandOptionChannel,
					Name:         "salon",
					Description:  "Salon d'annonce du concours",
					Required:     true,
					ChannelTypes: []discordgo.ChannelType{discordgo.ChannelTypeGuildText},
				},
			},
		},
		{
			Name:                     "tirage",
			Description:              "Effectuer le tirage au sort d'un concours",
			DefaultMemberPermissions: &adminPermission,
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionString,
					Name:        "titre",
					Description: "Titre du concours",
					Required:    true,
				},
			},
		},
		{
			Name:                     "end_concours",
			Description:              "Annuler un concours en cours",
			DefaultMemberPermissions: &adminPermission,
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionString,
					Name:        "titre",
					Description: "Titre du concours",
					Required:    true,
				},
				{
					Type:        discordgo.ApplicationCommandOptionString,
					Name:        "raison",
					Description: "Raison de l'annulation",
					Required:    false,
				},
			},
		},
		{
			Name:                     "decalage",
			Description:              "Régler le décalage global de l'horloge du bot",
			DefaultMemberPermissions: &adminPermission,
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionInteger,
					Name:        "secondes",
					Description: "Décalage en secondes (0 pour revenir à l'heure réelle)",
					Required:    true,
				},
			},
		},
		{
			Name:        "helpoxel",
			Description: "Afficher le guide des commandes",
		},
	}
}

func (h *Handler) HandleCommand(s *discordgo.Session, i *discordgo.InteractionCreate) {
	switch i.ApplicationCommandData().Name {
	case "create_event":
		h.handleCreateEventCommand(s, i, false)
	case "create_event_plan":
		h.handleCreateEventCommand(s, i, true)
	case "concours":
		h.handleConcoursCommand(s, i)
	case "tirage":
		h.handleTirageCommand(s, i)
	case "end_concours":
		h.handleEndConcoursCommand(s, i)
	case "decalage":
		h.handleDecalageCommand(s, i)
	case "helpoxel":
		h.handleHelpCommand(s, i)
	}
}

func commandOptions(i *discordgo.InteractionCreate) map[string]*discordgo.ApplicationCommandInteractionDataOption {
	opts := i.ApplicationCommandData().Options
	m := make(map[string]*discordgo.ApplicationCommandInteractionDataOption, len(opts))
	for _, o := range opts {
		m[o.Name] = o
	}
	return m
}

func (h *Handler) handleTirageCommand(s *discordgo.Session, i *discordgo.InteractionCreate) {
	title := commandOptions(i)["titre"].StringValue()
	if _, err := h.contests.Draw(context.Background(), title, i.Member.User.ID); err != nil {
		h.respondError(s, i, err)
		return
	}
	respondEphemeral(s, i.Interaction, h.translate(string(i.Locale), "reply.draw_success", map[string]any{"Title": title}))
}

func (h *Handler) handleEndConcoursCommand(s *discordgo.Session, i *discordgo.InteractionCreate) {
	opts := commandOptions(i)
	title := opts["titre"].StringValue()
	reason := ""
	if o, ok := opts["raison"]; ok {
		reason = o.StringValue()
	}
	if err := h.contests.Cancel(context.Background(), title, reason); err != nil {
		h.respondError(s, i, err)
		return
	}
	respondEphemeral(s, i.Interaction, h.translate(string(i.Locale), "reply.cancel_success", map[string]any{"Title": title}))
}

func (h *Handler) handleDecalageCommand(s *discordgo.Session, i *discordgo.InteractionCreate) {
	seconds := commandOptions(i)["secondes"].IntValue()
	if err := h.clock.SetOffset(context.Background(), seconds); err != nil {
		h.respondError(s, i, err)
		return
	}
	respondEphemeral(s, i.Interaction, h.translate(string(i.Locale), "reply.offset_success", map[string]any{
		"Seconds": seconds,
		"Now":     h.clock.Now().Format("02/01/2006 15:04:05"),
	}))
}

func (h *Handler) handleHelpCommand(s *discordgo.Session, i *discordgo.InteractionCreate) {
	locale := string(i.Locale)
	tr := func(key string) string { return h.translate(locale, "help."+key, nil) }
	embed := &discordgo.MessageEmbed{
		Title:       tr("title"),
		Description: tr("description"),
		Color:       0x6441a5,
		Fields: []*discordgo.MessageEmbedField{
			{Name: tr("events_header"), Value: "---"},
			{Name: "`/create_event`", Value: tr("create_event")},
			{Name: "`/create_event_plan`", Value: tr("create_event_plan")},
			{Name: tr("contests_header"), Value: "---"},
			{Name: "`/concours`", Value: tr("concours")},
			{Name: "`/end_concours`", Value: tr("end_concours")},
			{Name: "`/tirage`", Value: tr("tirage")},
			{Name: tr("util_header"), Value: "---"},
			{Name: "`/helpoxel`", Value: tr("helpoxel")},
			{Name: "`/decalage`", Value: tr("decalage")},
		},
	}
	_ = s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Embeds: []*discordgo.MessageEmbed{embed},
			Flags:  discordgo.MessageFlagsEphemeral,
		},
	})
}

func (h *Handler) handleConcoursCommand(s *discordgo.Session, i *discordgo.InteractionCreate) {
	channel := commandOptions(i)["salon"].ChannelValue(s)
	if channel == nil {
		h.respondError(s, i, domain.ErrInvalidInput)
		return
	}
	_ = s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseModal,
		Data: &discordgo.InteractionResponseData{
			CustomID: fmt.Sprintf("modal_contest_%s", channel.ID),
			Title:    "Configurer le concours",
			Components: []discordgo.MessageComponent{
				discordgo.ActionsRow{Components: []discordgo.MessageComponent{
					discordgo.TextInput{CustomID: "title", Label: "Titre du concours", Style: discordgo.TextInputShort, Required: true},
				}},
				discordgo.ActionsRow{Components: []discordgo.MessageComponent{
					discordgo.TextInput{CustomID: "desc", Label: "Description du concours", Style: discordgo.TextInputParagraph, Required: true},
				}},
				discordgo.ActionsRow{Components: []discordgo.MessageComponent{
					discordgo.TextInput{CustomID: "end_date", Label: "Date de fin (JJ/MM/AAAA)", Style: discordgo.TextInputShort, Required: true, Placeholder: placeholderDate},
				}},
				discordgo.ActionsRow{Components: []discordgo.MessageComponent{
					discordgo.TextInput{CustomID: "end_time", Label: "Heure de fin (HHhMM)", Style: discordgo.TextInputShort, Required: true, Placeholder: placeholderClock},
				}},
			},
		},
	})
}
