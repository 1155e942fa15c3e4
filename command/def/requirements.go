package def

import "github.com/bwmarrin/discordgo"

var RequirementsCommand = &discordgo.ApplicationCommand{
	Name:        "requirements",
	Description: "List what a final project submission must contain",
}
