package def

import "github.com/bwmarrin/discordgo"

var MyIDCommand = &discordgo.ApplicationCommand{
	Name:        "myid",
	Description: "Show your user ID and the current chat ID",
}

var ChatIDCommand = &discordgo.ApplicationCommand{
	Name:        "chatid",
	Description: "Show the current chat ID",
}
