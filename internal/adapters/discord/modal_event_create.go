package discord

import (
	"time"

	"github.com/bwmarrin/discordgo"

	"github.com/WaekyTV/Poxel-bot-futur-dashboard/internal/domain"
	pkgdiscord "github.com/WaekyTV/Poxel-bot-futur-dashboard/pkg/discord"
	"github.com/WaekyTV/Poxel-bot-futur-dashboard/pkg/tz"
)

func (h *Handler) handleCreateEventCommand(s *discordgo.Session, i *discordgo.InteractionCreate, planned bool) {
	customID := "modal_event_step1"
	title := "Événement du jour (1/2)"
	components := []discordgo.MessageComponent{
		discordgo.ActionsRow{Components: []discordgo.MessageComponent{
			discordgo.TextInput{CustomID: "name", Label: "Nom de l'événement", Style: discordgo.TextInputShort, Required: true, Placeholder: placeholderName},
		}},
	}
	if planned {
		customID = "modal_event_step1_plan"
		title = "Événement planifié (1/2)"
		components = append(components, discordgo.ActionsRow{Components: []discordgo.MessageComponent{
			discordgo.TextInput{CustomID: "date", Label: "Date de début (JJ/MM/AAAA)", Style: discordgo.TextInputShort, Required: true, Placeholder: placeholderDate},
		}})
	}
	components = append(components,
		discordgo.ActionsRow{Components: []discordgo.MessageComponent{
			discordgo.TextInput{CustomID: "clock", Label: "Heure de début (HHhMM)", Style: discordgo.TextInputShort, Required: true, Placeholder: placeholderClock},
		}},
		discordgo.ActionsRow{Components: []discordgo.MessageComponent{
			discordgo.TextInput{CustomID: "duration", Label: "Durée", Style: discordgo.TextInputShort, Required: true, Placeholder: placeholderDuration},
		}},
	)
	_ = s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseModal,
		Data: &discordgo.InteractionResponseData{
			CustomID:   customID,
			Title:      title,
			Components: components,
		},
	})
}

// HandleEventStep1Submit valide le formulaire de l'étape 1, mémorise le
// brouillon et propose l'étape 2 (salons, rôle, places).
func (h *Handler) HandleEventStep1Submit(s *discordgo.Session, i *discordgo.InteractionCreate, planned bool) {
	values := pkgdiscord.ExtractModalValues(i.ModalSubmitData())

	// La vérification de date passée se fait sur l'heure réelle, pas sur
	// l'horloge décalée : le décalage sert aux tests de réconciliation,
	// pas à autoriser des créations dans le passé.
	nowParis := time.Now().In(tz.Paris)

	var start time.Time
	var err error
	if planned {
		start, err = pkgdiscord.ParsePlannedStart(values["date"], values["clock"])
		if err == nil && start.Before(nowParis.UTC()) {
			h.respondError(s, i, domain.ErrDateTimeInPast)
			return
		}
	} else {
		start, err = pkgdiscord.SameDayStart(nowParis, values["clock"])
	}
	if err != nil {
		h.respondError(s, i, err)
		return
	}
	duration, err := pkgdiscord.ParseDuration(values["duration"])
	if err != nil {
		h.respondError(s, i, err)
		return
	}

	h.putDraft(i.Member.User.ID, &eventDraft{
		name:      values["name"],
		startTime: start,
		duration:  duration,
	})

	_ = s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Content:    h.translate(string(i.Locale), "reply.step2_intro", nil),
			Flags:      discordgo.MessageFlagsEphemeral,
			Components: eventStep2Components(),
		},
	})
}

func eventStep2Components() []discordgo.MessageComponent {
	textChannels := []discordgo.ChannelType{discordgo.ChannelTypeGuildText}
	return []discordgo.MessageComponent{
		discordgo.ActionsRow{Components: []discordgo.MessageComponent{
			discordgo.SelectMenu{
				MenuType:     discordgo.ChannelSelectMenu,
				CustomID:     "evt_announce_select",
				Placeholder:  "1. Salon d'annonce",
				ChannelTypes: textChannels,
			},
		}},
		discordgo.ActionsRow{Components: []discordgo.MessageComponent{
			discordgo.SelectMenu{
				MenuType:     discordgo.ChannelSelectMenu,
				CustomID:     "evt_waiting_select",
				Placeholder:  "2. Point de ralliement",
				ChannelTypes: []discordgo.ChannelType{discordgo.ChannelTypeGuildText, discordgo.ChannelTypeGuildVoice},
			},
		}},
		discordgo.ActionsRow{Components: []discordgo.MessageComponent{
			discordgo.SelectMenu{
				MenuType:    discordgo.RoleSelectMenu,
				CustomID:    "evt_role_select",
				Placeholder: "3. Rôle attribué",
			},
		}},
		discordgo.ActionsRow{Components: []discordgo.MessageComponent{
			discordgo.Button{Label: "4. Définir le nombre de participants", Style: discordgo.SecondaryButton, CustomID: "btn_evt_slots"},
			discordgo.Button{Label: "Créer l'événement", Style: discordgo.PrimaryButton, CustomID: "btn_evt_confirm"},
		}},
	}
}
