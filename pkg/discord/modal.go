package discord

import "github.com/bwmarrin/discordgo"

// ExtractModalValues collecte les champs texte d'un modal, indexés par leur
// CustomID.
func ExtractModalValues(data discordgo.ModalSubmitInteractionData) map[string]string {
	values := make(map[string]string, len(data.Components))
	for _, c := range data.Components {
		row, ok := c.(*discordgo.ActionsRow)
		if !ok {
			continue
		}
		for _, inner := range row.Components {
			if input, ok := inner.(*discordgo.TextInput); ok {
				values[input.CustomID] = input.Value
			}
		}
	}
	return values
}
