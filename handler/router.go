package handler

import (
	"strings"

	"github.com/bwmarrin/discordgo"
)

// InteractionFunc handles one Discord interaction.
type InteractionFunc func(s *discordgo.Session, i *discordgo.InteractionCreate)

// Router dispatches interactions by command name or component prefix.
type Router struct {
	commandHandlers   map[string]InteractionFunc
	componentHandlers map[string]InteractionFunc
}

// NewRouter returns an empty Router.
func NewRouter() *Router {
	return &Router{
		commandHandlers:   make(map[string]InteractionFunc),
		componentHandlers: make(map[string]InteractionFunc),
	}
}

// AddCommandHandler registers a handler for a slash command.
func (r *Router) AddCommandHandler(name string, handler InteractionFunc) {
	r.commandHandlers[name] = handler
}

// AddComponentHandler registers a handler for a message component. The key is
// matched against the part of the custom ID before the first ":".
func (r *Router) AddComponentHandler(key string, handler InteractionFunc) {
	r.componentHandlers[key] = handler
}

// ComponentKey returns the routing key of a component custom ID.
func ComponentKey(customID string) string {
	parts := strings.SplitN(customID, ":", 2)
	return parts[0]
}

// OnInteractionCreate is the main interaction router.
func (r *Router) OnInteractionCreate(s *discordgo.Session, i *discordgo.InteractionCreate) {
	switch i.Type {
	case discordgo.InteractionApplicationCommand:
		if handler, ok := r.commandHandlers[i.ApplicationCommandData().Name]; ok {
			handler(s, i)
		}
	case discordgo.InteractionMessageComponent:
		if handler, ok := r.componentHandlers[ComponentKey(i.MessageComponentData().CustomID)]; ok {
			handler(s, i)
		}
	}
}
