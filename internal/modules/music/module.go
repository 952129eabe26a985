package music

import (
	"context"
	"log/slog"

	"github.com/bwmarrin/discordgo"
	"github.com/caarlos0/env/v11"
	"github.com/npcx42/icutils/internal/bot"
	"github.com/npcx42/icutils/internal/modules/music/application/events"
	"github.com/npcx42/icutils/internal/modules/music/application/ports"
	"github.com/npcx42/icutils/internal/modules/music/application/usecases"
	"github.com/npcx42/icutils/internal/modules/music/infrastructure"
	"github.com/npcx42/icutils/internal/modules/music/presentation"
)

func init() {
	bot.Register(&Module{})
}

// Compile-time interface checks.
var (
	_ bot.Module             = (*Module)(nil)
	_ bot.ConfigurableModule = (*Module)(nil)
)

// Module provides per-guild music playback commands.
type Module struct {
	config          *Config
	commandHandlers *presentation.CommandHandlers
	lavalinkAdapter *infrastructure.LavalinkAdapter

	eventBus     *events.Bus
	continuation *events.ContinuationEngine

	ctx    context.Context
	cancel context.CancelFunc
}

// Name returns the module name.
func (m *Module) Name() string {
	return "music"
}

// Commands returns the slash commands for this module.
func (m *Module) Commands() []*discordgo.ApplicationCommand {
	return presentation.Commands()
}

// CommandHandlers returns the command handlers for this module.
func (m *Module) CommandHandlers() map[string]bot.InteractionHandler {
	return map[string]bot.InteractionHandler{
		"play":       m.commandHandlers.HandlePlay,
		"pause":      m.commandHandlers.HandlePause,
		"resume":     m.commandHandlers.HandleResume,
		"skip":       m.commandHandlers.HandleSkip,
		"stop":       m.commandHandlers.HandleStop,
		"queue":      m.commandHandlers.HandleQueue,
		"seek":       m.commandHandlers.HandleSeek,
		"loop":       m.commandHandlers.HandleLoop,
		"shuffle":    m.commandHandlers.HandleShuffle,
		"remove":     m.commandHandlers.HandleRemove,
		"move":       m.commandHandlers.HandleMove,
		"clear":      m.commandHandlers.HandleClear,
		"nowplaying": m.commandHandlers.HandleNowPlaying,
		"volume":     m.commandHandlers.HandleVolume,
		"back":       m.commandHandlers.HandleBack,
		"save":       m.commandHandlers.HandleSave,
	}
}

// EventHandlers returns the event handlers for this module. The voice
// updates are forwarded to the Lavalink adapter, which pairs them into
// player voice state.
func (m *Module) EventHandlers() []bot.EventHandler {
	return []bot.EventHandler{
		func(_ *discordgo.Session, event *discordgo.VoiceServerUpdate) {
			if m.lavalinkAdapter != nil {
				m.lavalinkAdapter.OnVoiceServerUpdate(event)
			}
		},
		func(_ *discordgo.Session, event *discordgo.VoiceStateUpdate) {
			if m.lavalinkAdapter != nil {
				m.lavalinkAdapter.OnVoiceStateUpdate(event)
			}
		},
	}
}

// LoadConfig loads module-specific configuration from environment variables.
func (m *Module) LoadConfig() error {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return err
	}
	m.config = cfg
	return nil
}

// Init initializes the module.
func (m *Module) Init(deps bot.ModuleDependencies) error {
	if deps.Session == nil {
		slog.Warn("music module initialized without session, playback disabled")
		return nil
	}

	m.ctx, m.cancel = context.WithCancel(context.Background())

	m.eventBus = events.NewBus(events.DefaultEventBufferSize)

	lavalinkAdapter, err := infrastructure.NewLavalinkAdapter(
		deps.Session,
		m.eventBus,
		infrastructure.LavalinkConfig{
			Address:  m.config.LavalinkAddress,
			Password: m.config.LavalinkPassword,
		},
	)
	if err != nil {
		return err
	}
	m.lavalinkAdapter = lavalinkAdapter

	registry := infrastructure.NewMemoryRegistry()
	voiceState := infrastructure.NewVoiceStateProvider(deps.Session)
	notifier := infrastructure.NewNotifier(deps.Session)

	var catalog ports.CatalogProvider
	if m.config.SpotifyEnabled() {
		catalog = infrastructure.NewSpotifyCatalog(m.ctx, infrastructure.SpotifyConfig{
			ClientID:     m.config.SpotifyClientID,
			ClientSecret: m.config.SpotifyClientSecret,
		})
	} else {
		slog.Warn("spotify credentials not configured, catalog features disabled")
	}

	resolver := usecases.NewResolverService(lavalinkAdapter, catalog)

	playback := usecases.NewPlaybackService(
		registry,
		lavalinkAdapter,
		lavalinkAdapter,
		voiceState,
		resolver,
		notifier,
	)
	queue := usecases.NewQueueService(registry)
	bulkEnqueue := usecases.NewBulkEnqueueService(resolver, playback)

	m.continuation = events.NewContinuationEngine(registry, lavalinkAdapter, m.eventBus)
	m.continuation.Start(m.ctx)

	m.commandHandlers = presentation.NewCommandHandlers(playback, queue, bulkEnqueue)

	slog.Info("music module initialized")

	return nil
}

// Shutdown cleans up module resources.
func (m *Module) Shutdown() error {
	if m.cancel != nil {
		m.cancel()
	}
	if m.continuation != nil {
		m.continuation.Stop()
	}
	if m.eventBus != nil {
		m.eventBus.Close()
	}
	if m.lavalinkAdapter != nil {
		m.lavalinkAdapter.Link().Close()
	}
	return nil
}
