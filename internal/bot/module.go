package bot

import "github.com/bwmarrin/discordgo"

// InteractionHandler handles a slash command interaction. Responses go
// through the Responder so handlers stay testable without a session.
type InteractionHandler func(s *discordgo.Session, i *discordgo.InteractionCreate, r Responder) error

// EventHandler is a gateway event handler. It must match one of
// discordgo's handler signatures, e.g.
// func(s *discordgo.Session, e *discordgo.VoiceStateUpdate).
type EventHandler any

// ModuleDependencies carries what a module may need during Init.
type ModuleDependencies struct {
	Session *discordgo.Session
}

// Module is the contract every bot module implements.
type Module interface {
	// Name returns the unique identifier for this module.
	Name() string

	// Commands returns the slash commands this module provides.
	Commands() []*discordgo.ApplicationCommand

	// CommandHandlers maps command names to their handlers.
	CommandHandlers() map[string]InteractionHandler

	// EventHandlers returns the module's gateway event handlers.
	EventHandlers() []EventHandler

	// Init initializes the module. Called after the gateway connection
	// is open, so the session in deps is usable.
	Init(deps ModuleDependencies) error

	// Shutdown releases the module's resources.
	Shutdown() error
}

// ConfigurableModule is an optional interface for modules that read
// configuration. LoadConfig runs before the Discord connection is
// established, so missing required settings fail the startup early.
type ConfigurableModule interface {
	LoadConfig() error
}
