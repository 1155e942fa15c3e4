package command

import (
	"handin/command/def"

	"github.com/bwmarrin/discordgo"
)

// AllCommands contains all of the commands
var AllCommands = []*discordgo.ApplicationCommand{
	def.StartCommand,
	def.SubmitCommand,
	def.RequirementsCommand,
	def.MyIDCommand,
	def.ChatIDCommand,
}
