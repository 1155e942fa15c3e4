package def

import "github.com/bwmarrin/discordgo"

var SubmitCommand = &discordgo.ApplicationCommand{
	Name:        "submit",
	Description: "Start handing in your final project from step 1",
	NameLocalizations: &map[discordgo.Locale]string{
		discordgo.Russian: "сдать",
	},
}
