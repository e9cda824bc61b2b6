package discord

import (
	"context"
	"strconv"

	"github.com/bwmarrin/discordgo"

	"github.com/WaekyTV/Poxel-bot-futur-dashboard/internal/domain"
	"github.com/WaekyTV/Poxel-bot-futur-dashboard/internal/ports/input"
	pkgdiscord "github.com/WaekyTV/Poxel-bot-futur-dashboard/pkg/discord"
)

// HandleEventSelect enregistre un choix de salon ou de rôle de l'étape 2
// dans le brouillon de l'utilisateur.
func (h *Handler) HandleEventSelect(s *discordgo.Session, i *discordgo.InteractionCreate) {
	data := i.MessageComponentData()
	if len(data.Values) == 0 {
		return
	}
	draft, ok := h.draft(i.Member.User.ID)
	if !ok {
		respondEphemeral(s, i.Interaction, h.translate(string(i.Locale), "reply.draft_missing", nil))
		return
	}
	switch data.CustomID {
	case "evt_announce_select":
		draft.announceID = data.Values[0]
	case "evt_waiting_select":
		draft.waitingID = data.Values[0]
	case "evt_role_select":
		draft.roleID = data.Values[0]
	}
	_ = s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseDeferredMessageUpdate,
	})
}

func (h *Handler) HandleSlotsButton(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if _, ok := h.draft(i.Member.User.ID); !ok {
		respondEphemeral(s, i.Interaction, h.translate(string(i.Locale), "reply.draft_missing", nil))
		return
	}
	_ = s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseModal,
		Data: &discordgo.InteractionResponseData{
			CustomID: "modal_evt_slots",
			Title:    "Nombre de participants",
			Components: []discordgo.MessageComponent{
				discordgo.ActionsRow{Components: []discordgo.MessageComponent{
					discordgo.TextInput{CustomID: "slots", Label: "Nombre maximum de participants", Style: discordgo.TextInputShort, Required: true, Placeholder: placeholderSlots},
				}},
			},
		},
	})
}

func (h *Handler) HandleSlotsSubmit(s *discordgo.Session, i *discordgo.InteractionCreate) {
	draft, ok := h.draft(i.Member.User.ID)
	if !ok {
		respondEphemeral(s, i.Interaction, h.translate(string(i.Locale), "reply.draft_missing", nil))
		return
	}
	values := pkgdiscord.ExtractModalValues(i.ModalSubmitData())
	n, err := strconv.Atoi(values["slots"])
	if err != nil || n <= 0 {
		h.respondError(s, i, domain.ErrInvalidInput)
		return
	}
	draft.maxSlots = n
	_ = s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseDeferredMessageUpdate,
	})
}

// HandleEventConfirm matérialise le brouillon en événement. Le brouillon
// n'est consommé qu'en cas de succès : une erreur transitoire (salon disparu
// entre-temps) laisse la configuration réutilisable.
func (h *Handler) HandleEventConfirm(s *discordgo.Session, i *discordgo.InteractionCreate) {
	userID := i.Member.User.ID
	draft, ok := h.draft(userID)
	if !ok {
		respondEphemeral(s, i.Interaction, h.translate(string(i.Locale), "reply.draft_missing", nil))
		return
	}
	if !draft.complete() {
		respondEphemeral(s, i.Interaction, h.translate(string(i.Locale), "reply.draft_incomplete", nil))
		return
	}

	cmd := input.CreateEventCommand{
		Name:                  draft.name,
		StartTime:             draft.startTime,
		EndTime:               draft.startTime.Add(draft.duration),
		AnnouncementChannelID: draft.announceID,
		WaitingChannelID:      draft.waitingID,
		RoleID:                draft.roleID,
		MaxParticipants:       draft.maxSlots,
	}
	if err := h.events.CreateEvent(context.Background(), cmd); err != nil {
		h.respondError(s, i, err)
		return
	}
	h.dropDraft(userID)
	respondEphemeral(s, i.Interaction, h.translate(string(i.Locale), "reply.event_created", map[string]any{"Name": draft.name}))
}
