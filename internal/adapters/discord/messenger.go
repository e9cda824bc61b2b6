package discord

import (
	"context"
	"errors"
	"fmt"

	"github.com/bwmarrin/discordgo"

	"github.com/WaekyTV/Poxel-bot-futur-dashboard/internal/domain"
	"github.com/WaekyTV/Poxel-bot-futur-dashboard/internal/ports/output"
)

// Messenger réalise la frontière d'affichage sur une session Discord.
type Messenger struct {
	session *discordgo.Session
}

var _ output.Messenger = (*Messenger)(nil)

func NewMessenger(session *discordgo.Session) *Messenger {
	return &Messenger{session: session}
}

// mapRemoteErr traduit la disparition de la cible (salon ou message supprimé
// à la main) en signal d'orphelinage pour les moteurs.
func mapRemoteErr(err error) error {
	if err == nil {
		return nil
	}
	var rerr *discordgo.RESTError
	if errors.As(err, &rerr) && rerr.Message != nil {
		switch rerr.Message.Code {
		case discordgo.ErrCodeUnknownMessage, discordgo.ErrCodeUnknownChannel:
			return fmt.Errorf("%w: %v", domain.ErrRemoteUnavailable, err)
		}
	}
	return err
}

func (m *Messenger) ChannelResolvable(ctx context.Context, channelID string) bool {
	if channelID == "" {
		return false
	}
	if ch, err := m.session.State.Channel(channelID); err == nil && ch != nil {
		return true
	}
	_, err := m.session.Channel(channelID, discordgo.WithContext(ctx))
	return err == nil
}

func (m *Messenger) Publish(ctx context.Context, channelID, content string, p output.DisplayPayload) (string, error) {
	msg, err := m.session.ChannelMessageSendComplex(channelID, &discordgo.MessageSend{
		Content:    content,
		Embeds:     []*discordgo.MessageEmbed{buildEmbed(p)},
		Components: buildComponents(p.Affordances),
	}, discordgo.WithContext(ctx))
	if err != nil {
		return "", mapRemoteErr(err)
	}
	return msg.ID, nil
}

func (m *Messenger) Edit(ctx context.Context, channelID, messageID string, p output.DisplayPayload) error {
	embeds := []*discordgo.MessageEmbed{buildEmbed(p)}
	components := buildComponents(p.Affordances)
	_, err := m.session.ChannelMessageEditComplex(&discordgo.MessageEdit{
		ID:         messageID,
		Channel:    channelID,
		Embeds:     &embeds,
		Components: &components,
	}, discordgo.WithContext(ctx))
	return mapRemoteErr(err)
}

func (m *Messenger) Broadcast(ctx context.Context, channelID, content string) error {
	_, err := m.session.ChannelMessageSend(channelID, content, discordgo.WithContext(ctx))
	return mapRemoteErr(err)
}

func (m *Messenger) SendDM(ctx context.Context, userID, content string) error {
	ch, err := m.session.UserChannelCreate(userID, discordgo.WithContext(ctx))
	if err != nil {
		return err
	}
	_, err = m.session.ChannelMessageSend(ch.ID, content, discordgo.WithContext(ctx))
	return err
}

func (m *Messenger) SendDMPayload(ctx context.Context, userID string, p output.DisplayPayload) error {
	ch, err := m.session.UserChannelCreate(userID, discordgo.WithContext(ctx))
	if err != nil {
		return err
	}
	_, err = m.session.ChannelMessageSendEmbed(ch.ID, buildEmbed(p), discordgo.WithContext(ctx))
	return err
}

// guildOfChannel retrouve la guilde d'un salon, les opérations de rôle
// passant par l'API guilde.
func (m *Messenger) guildOfChannel(ctx context.Context, channelID string) (string, error) {
	if ch, err := m.session.State.Channel(channelID); err == nil && ch != nil {
		return ch.GuildID, nil
	}
	ch, err := m.session.Channel(channelID, discordgo.WithContext(ctx))
	if err != nil {
		return "", mapRemoteErr(err)
	}
	return ch.GuildID, nil
}

func (m *Messenger) GrantRole(ctx context.Context, channelID, userID, roleID string) error {
	guildID, err := m.guildOfChannel(ctx, channelID)
	if err != nil {
		return err
	}
	return m.session.GuildMemberRoleAdd(guildID, userID, roleID, discordgo.WithContext(ctx))
}

func (m *Messenger) RevokeRole(ctx context.Context, channelID, userID, roleID string) error {
	guildID, err := m.guildOfChannel(ctx, channelID)
	if err != nil {
		return err
	}
	return m.session.GuildMemberRoleRemove(guildID, userID, roleID, discordgo.WithContext(ctx))
}

func (m *Messenger) RoleName(ctx context.Context, channelID, roleID string) string {
	guildID, err := m.guildOfChannel(ctx, channelID)
	if err != nil {
		return roleID
	}
	if role, err := m.session.State.Role(guildID, roleID); err == nil && role != nil {
		return role.Name
	}
	roles, err := m.session.GuildRoles(guildID, discordgo.WithContext(ctx))
	if err != nil {
		return roleID
	}
	for _, role := range roles {
		if role.ID == roleID {
			return role.Name
		}
	}
	return roleID
}

func buildEmbed(p output.DisplayPayload) *discordgo.MessageEmbed {
	embed := &discordgo.MessageEmbed{
		Title:       p.Title,
		Description: p.Description,
		Color:       p.Color,
	}
	for _, f := range p.Fields {
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:   f.Name,
			Value:  f.Value,
			Inline: f.Inline,
		})
	}
	if p.ImageURL != "" {
		embed.Image = &discordgo.MessageEmbedImage{URL: p.ImageURL}
	}
	return embed
}

func buildComponents(affordances []output.Affordance) []discordgo.MessageComponent {
	if len(affordances) == 0 {
		return []discordgo.MessageComponent{}
	}
	buttons := make([]discordgo.MessageComponent, 0, len(affordances))
	for _, a := range affordances {
		switch a.Kind {
		case output.AffordanceJoin:
			btn := discordgo.Button{
				Label:    "START",
				Style:    discordgo.SuccessButton,
				CustomID: "btn_event_join",
				Emoji:    &discordgo.ComponentEmoji{Name: "✅"},
			}
			if a.Disabled {
				btn.Label = "INSCRIPTIONS CLOSES"
				btn.Disabled = true
			}
			buttons = append(buttons, btn)
		case output.AffordanceQuit:
			buttons = append(buttons, discordgo.Button{
				Label:    "QUIT",
				Style:    discordgo.DangerButton,
				CustomID: "btn_event_quit",
				Emoji:    &discordgo.ComponentEmoji{Name: "❌"},
				Disabled: a.Disabled,
			})
		case output.AffordanceEnter:
			buttons = append(buttons, discordgo.Button{
				Label:    "START",
				Style:    discordgo.SuccessButton,
				CustomID: "btn_contest_enter",
				Emoji:    &discordgo.ComponentEmoji{Name: "✅"},
				Disabled: a.Disabled,
			})
		case output.AffordanceDraw:
			buttons = append(buttons, discordgo.Button{
				Label:    "Tirage au sort",
				Style:    discordgo.SuccessButton,
				CustomID: "btn_contest_draw",
				Emoji:    &discordgo.ComponentEmoji{Name: "🏆"},
				Disabled: a.Disabled,
			})
		}
	}
	return []discordgo.MessageComponent{discordgo.ActionsRow{Components: buttons}}
}
