package def

import "github.com/bwmarrin/discordgo"

var StartCommand = &discordgo.ApplicationCommand{
	Name:        "start",
	Description: "Show the main menu",
	NameLocalizations: &map[discordgo.Locale]string{
		discordgo.Russian: "старт",
	},
}
