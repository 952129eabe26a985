package presentation

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/disgoorg/snowflake/v2"
	"github.com/npcx42/icutils/internal/bot"
	"github.com/npcx42/icutils/internal/modules/music/application/usecases"
	"github.com/npcx42/icutils/internal/modules/music/domain"
)

// Embed colors.
const (
	colorSuccess = 0x2ECC71
	colorInfo    = 0x3498DB
	colorError   = 0xE74C3C
)

// CommandHandlers holds all the music command handlers.
type CommandHandlers struct {
	playback    *usecases.PlaybackService
	queue       *usecases.QueueService
	bulkEnqueue *usecases.BulkEnqueueService
}

// NewCommandHandlers creates new CommandHandlers.
func NewCommandHandlers(
	playback *usecases.PlaybackService,
	queue *usecases.QueueService,
	bulkEnqueue *usecases.BulkEnqueueService,
) *CommandHandlers {
	return &CommandHandlers{
		playback:    playback,
		queue:       queue,
		bulkEnqueue: bulkEnqueue,
	}
}

// requestIDs carries parsed snowflakes common to all handlers.
type requestIDs struct {
	guildID snowflake.ID
	userID  snowflake.ID
}

func parseRequest(i *discordgo.InteractionCreate) (requestIDs, error) {
	guildID, err := snowflake.Parse(i.GuildID)
	if err != nil {
		return requestIDs{}, fmt.Errorf("invalid guild id: %w", err)
	}
	userID, err := snowflake.Parse(i.Member.User.ID)
	if err != nil {
		return requestIDs{}, fmt.Errorf("invalid user id: %w", err)
	}
	return requestIDs{guildID: guildID, userID: userID}, nil
}

func respondError(r bot.Responder, message string) error {
	return respondEmbed(r, &discordgo.MessageEmbed{
		Description: message,
		Color:       colorError,
	})
}

func respondEmbed(r bot.Responder, embed *discordgo.MessageEmbed) error {
	return r.Respond(&discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Embeds: []*discordgo.MessageEmbed{embed},
		},
	})
}

func editEmbed(s *discordgo.Session, i *discordgo.InteractionCreate, embed *discordgo.MessageEmbed) {
	_, err := s.InteractionResponseEdit(i.Interaction, &discordgo.WebhookEdit{
		Embeds: &[]*discordgo.MessageEmbed{embed},
	})
	if err != nil {
		slog.Warn("failed to edit interaction response", "error", err)
	}
}

// trackEmbed renders a queue entry, preferring catalog metadata when present.
func trackEmbed(title string, entry *domain.QueueEntry, color int) *discordgo.MessageEmbed {
	embed := &discordgo.MessageEmbed{
		Title: title,
		Color: color,
	}

	metadata := entry.Metadata
	if metadata == nil {
		embed.Description = entry.Track.Title
		return embed
	}

	embed.Fields = []*discordgo.MessageEmbedField{
		{Name: "Track", Value: metadata.Title, Inline: true},
	}
	if metadata.Artist != "" {
		embed.Fields = append(embed.Fields,
			&discordgo.MessageEmbedField{Name: "Artist", Value: metadata.Artist, Inline: true})
	}
	if metadata.Album != "" {
		embed.Fields = append(embed.Fields,
			&discordgo.MessageEmbedField{Name: "Album", Value: metadata.Album, Inline: true})
	}
	if metadata.CoverURL != "" {
		embed.Thumbnail = &discordgo.MessageEmbedThumbnail{URL: metadata.CoverURL}
	}
	if metadata.CatalogURL != "" {
		embed.URL = metadata.CatalogURL
	}
	return embed
}

// HandlePlay handles the /play command: a track search, a Spotify album
// URL, or a Spotify playlist URL.
func (h *CommandHandlers) HandlePlay(
	s *discordgo.Session,
	i *discordgo.InteractionCreate,
	r bot.Responder,
) error {
	ctx := context.Background()

	ids, err := parseRequest(i)
	if err != nil {
		return respondError(r, "Invalid request")
	}

	var query string
	limit := 0
	for _, opt := range i.ApplicationCommandData().Options {
		switch opt.Name {
		case "query":
			query = opt.StringValue()
		case "limit":
			limit = int(opt.IntValue())
		}
	}

	// Resolution can take a while; defer so the interaction does not expire.
	if err := r.Respond(&discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseDeferredChannelMessageWithSource,
	}); err != nil {
		return err
	}

	if kind, _ := usecases.ParseCatalogURL(query); kind != usecases.CatalogNone {
		h.runBulkEnqueue(ctx, s, i, ids, query, limit)
		return nil
	}

	output, err := h.playback.PlayOrEnqueue(ctx, usecases.PlayInput{
		GuildID: ids.guildID,
		UserID:  ids.userID,
		Query:   query,
	})
	if err != nil {
		editEmbed(s, i, &discordgo.MessageEmbed{Description: userMessage(err), Color: colorError})
		return nil
	}

	title := "Added to Queue"
	color := colorInfo
	if output.Started {
		title = "Now Playing"
		color = colorSuccess
	}
	editEmbed(s, i, trackEmbed(title, output.Entry, color))
	return nil
}

// runBulkEnqueue imports a catalog, editing the deferred response as
// progress comes in.
func (h *CommandHandlers) runBulkEnqueue(
	ctx context.Context,
	s *discordgo.Session,
	i *discordgo.InteractionCreate,
	ids requestIDs,
	url string,
	limit int,
) {
	editEmbed(s, i, &discordgo.MessageEmbed{
		Title:       "Importing Catalog",
		Description: "Loading tracks...",
		Color:       colorInfo,
	})

	output, err := h.bulkEnqueue.Run(ctx, usecases.BulkEnqueueInput{
		GuildID: ids.guildID,
		UserID:  ids.userID,
		URL:     url,
		Limit:   limit,
		Progress: func(added, total int) {
			editEmbed(s, i, &discordgo.MessageEmbed{
				Title:       "Importing Catalog",
				Description: fmt.Sprintf("Added %d/%d tracks...", added, total),
				Color:       colorInfo,
			})
		},
	})
	if err != nil {
		editEmbed(s, i, &discordgo.MessageEmbed{Description: userMessage(err), Color: colorError})
		return
	}

	editEmbed(s, i, &discordgo.MessageEmbed{
		Title:       "Catalog Added",
		Description: fmt.Sprintf("Added %d of %d tracks to the queue.", output.Added, output.Total),
		Color:       colorSuccess,
	})
}

// HandlePause handles the /pause command.
func (h *CommandHandlers) HandlePause(
	_ *discordgo.Session,
	i *discordgo.InteractionCreate,
	r bot.Responder,
) error {
	ids, err := parseRequest(i)
	if err != nil {
		return respondError(r, "Invalid request")
	}

	if err := h.playback.Pause(context.Background(), ids.guildID); err != nil {
		return respondError(r, userMessage(err))
	}
	return respondEmbed(r, &discordgo.MessageEmbed{Description: "Paused.", Color: colorSuccess})
}

// HandleResume handles the /resume command.
func (h *CommandHandlers) HandleResume(
	_ *discordgo.Session,
	i *discordgo.InteractionCreate,
	r bot.Responder,
) error {
	ids, err := parseRequest(i)
	if err != nil {
		return respondError(r, "Invalid request")
	}

	if err := h.playback.Resume(context.Background(), ids.guildID); err != nil {
		return respondError(r, userMessage(err))
	}
	return respondEmbed(r, &discordgo.MessageEmbed{Description: "Resumed.", Color: colorSuccess})
}

// HandleSkip handles the /skip command.
func (h *CommandHandlers) HandleSkip(
	_ *discordgo.Session,
	i *discordgo.InteractionCreate,
	r bot.Responder,
) error {
	ids, err := parseRequest(i)
	if err != nil {
		return respondError(r, "Invalid request")
	}

	output, err := h.playback.Skip(context.Background(), ids.guildID)
	if err != nil {
		return respondError(r, userMessage(err))
	}

	description := fmt.Sprintf("Skipped **%s**.", output.Skipped.DisplayTitle())
	if output.Next != nil {
		description += fmt.Sprintf(" Now playing **%s**.", output.Next.DisplayTitle())
	}
	return respondEmbed(r, &discordgo.MessageEmbed{Description: description, Color: colorSuccess})
}

// HandleStop handles the /stop command.
func (h *CommandHandlers) HandleStop(
	_ *discordgo.Session,
	i *discordgo.InteractionCreate,
	r bot.Responder,
) error {
	ids, err := parseRequest(i)
	if err != nil {
		return respondError(r, "Invalid request")
	}

	if err := h.playback.Stop(context.Background(), ids.guildID); err != nil {
		return respondError(r, userMessage(err))
	}
	return respondEmbed(r, &discordgo.MessageEmbed{
		Description: "Stopped playback and cleared the queue.",
		Color:       colorSuccess,
	})
}

// HandleQueue handles the /queue command.
func (h *CommandHandlers) HandleQueue(
	_ *discordgo.Session,
	i *discordgo.InteractionCreate,
	r bot.Responder,
) error {
	ids, err := parseRequest(i)
	if err != nil {
		return respondError(r, "Invalid request")
	}

	output, err := h.queue.List(ids.guildID)
	if err != nil {
		return respondError(r, userMessage(err))
	}
	if output.Current == nil && output.Total == 0 {
		return respondError(r, "The queue is empty.")
	}

	var sb strings.Builder
	if output.Current != nil {
		fmt.Fprintf(&sb, "Now playing: **%s**\n\n", output.Current.DisplayTitle())
	}
	for idx, entry := range output.Entries {
		fmt.Fprintf(&sb, "%d. %s `%s`\n", idx+1, entry.DisplayTitle(), entry.Track.FormattedDuration())
	}
	if output.Remaining > 0 {
		fmt.Fprintf(&sb, "...and %d more tracks", output.Remaining)
	}

	return respondEmbed(r, &discordgo.MessageEmbed{
		Title:       "Queue",
		Description: sb.String(),
		Color:       colorInfo,
	})
}

// HandleSeek handles the /seek command.
func (h *CommandHandlers) HandleSeek(
	_ *discordgo.Session,
	i *discordgo.InteractionCreate,
	r bot.Responder,
) error {
	ids, err := parseRequest(i)
	if err != nil {
		return respondError(r, "Invalid request")
	}

	position := i.ApplicationCommandData().Options[0].StringValue()
	target, err := h.playback.Seek(context.Background(), ids.guildID, position)
	if err != nil {
		return respondError(r, userMessage(err))
	}
	return respondEmbed(r, &discordgo.MessageEmbed{
		Description: fmt.Sprintf("Seeked to %s.", domain.FormatDuration(target)),
		Color:       colorSuccess,
	})
}

// HandleLoop handles the /loop command.
func (h *CommandHandlers) HandleLoop(
	_ *discordgo.Session,
	i *discordgo.InteractionCreate,
	r bot.Responder,
) error {
	ids, err := parseRequest(i)
	if err != nil {
		return respondError(r, "Invalid request")
	}

	mode := i.ApplicationCommandData().Options[0].StringValue()
	parsed, err := h.playback.SetLoopMode(ids.guildID, mode)
	if err != nil {
		return respondError(r, userMessage(err))
	}

	descriptions := map[domain.LoopMode]string{
		domain.LoopModeNone:  "Repeat off.",
		domain.LoopModeTrack: "Repeating the current track.",
		domain.LoopModeQueue: "Repeating the queue.",
	}
	return respondEmbed(r, &discordgo.MessageEmbed{
		Description: descriptions[parsed],
		Color:       colorSuccess,
	})
}

// HandleShuffle handles the /shuffle command.
func (h *CommandHandlers) HandleShuffle(
	_ *discordgo.Session,
	i *discordgo.InteractionCreate,
	r bot.Responder,
) error {
	ids, err := parseRequest(i)
	if err != nil {
		return respondError(r, "Invalid request")
	}

	if err := h.queue.Shuffle(ids.guildID); err != nil {
		return respondError(r, userMessage(err))
	}
	return respondEmbed(r, &discordgo.MessageEmbed{Description: "Queue shuffled.", Color: colorSuccess})
}

// HandleRemove handles the /remove command.
func (h *CommandHandlers) HandleRemove(
	_ *discordgo.Session,
	i *discordgo.InteractionCreate,
	r bot.Responder,
) error {
	ids, err := parseRequest(i)
	if err != nil {
		return respondError(r, "Invalid request")
	}

	position := int(i.ApplicationCommandData().Options[0].IntValue())
	removed, err := h.queue.Remove(ids.guildID, position)
	if err != nil {
		return respondError(r, userMessage(err))
	}
	return respondEmbed(r, &discordgo.MessageEmbed{
		Description: fmt.Sprintf("Removed **%s**.", removed.DisplayTitle()),
		Color:       colorSuccess,
	})
}

// HandleMove handles the /move command.
func (h *CommandHandlers) HandleMove(
	_ *discordgo.Session,
	i *discordgo.InteractionCreate,
	r bot.Responder,
) error {
	ids, err := parseRequest(i)
	if err != nil {
		return respondError(r, "Invalid request")
	}

	var from, to int
	for _, opt := range i.ApplicationCommandData().Options {
		switch opt.Name {
		case "from":
			from = int(opt.IntValue())
		case "to":
			to = int(opt.IntValue())
		}
	}

	moved, err := h.queue.Move(ids.guildID, from, to)
	if err != nil {
		return respondError(r, userMessage(err))
	}
	return respondEmbed(r, &discordgo.MessageEmbed{
		Description: fmt.Sprintf("Moved **%s**.", moved.DisplayTitle()),
		Color:       colorSuccess,
	})
}

// HandleClear handles the /clear command.
func (h *CommandHandlers) HandleClear(
	_ *discordgo.Session,
	i *discordgo.InteractionCreate,
	r bot.Responder,
) error {
	ids, err := parseRequest(i)
	if err != nil {
		return respondError(r, "Invalid request")
	}

	count, err := h.queue.Clear(ids.guildID)
	if err != nil {
		return respondError(r, userMessage(err))
	}
	return respondEmbed(r, &discordgo.MessageEmbed{
		Description: fmt.Sprintf("Cleared %d tracks from the queue.", count),
		Color:       colorSuccess,
	})
}

// HandleNowPlaying handles the /nowplaying command.
func (h *CommandHandlers) HandleNowPlaying(
	_ *discordgo.Session,
	i *discordgo.InteractionCreate,
	r bot.Responder,
) error {
	ids, err := parseRequest(i)
	if err != nil {
		return respondError(r, "Invalid request")
	}

	output, err := h.playback.NowPlaying(ids.guildID)
	if err != nil {
		return respondError(r, userMessage(err))
	}

	embed := trackEmbed("Now Playing", output.Entry, colorInfo)
	if !output.Entry.Track.IsStream {
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name: "Progress",
			Value: fmt.Sprintf("`%s %s %s`",
				domain.FormatDuration(output.Position),
				progressBar(output.Position, output.Entry.Track.Duration),
				output.Entry.Track.FormattedDuration(),
			),
			Inline: false,
		})
	}
	return respondEmbed(r, embed)
}

// HandleVolume handles the /volume command.
func (h *CommandHandlers) HandleVolume(
	_ *discordgo.Session,
	i *discordgo.InteractionCreate,
	r bot.Responder,
) error {
	ids, err := parseRequest(i)
	if err != nil {
		return respondError(r, "Invalid request")
	}

	level := int(i.ApplicationCommandData().Options[0].IntValue())
	if err := h.playback.SetVolume(context.Background(), ids.guildID, level); err != nil {
		return respondError(r, userMessage(err))
	}
	return respondEmbed(r, &discordgo.MessageEmbed{
		Description: fmt.Sprintf("Volume set to %d%%.", level),
		Color:       colorSuccess,
	})
}

// HandleBack handles the /back command.
func (h *CommandHandlers) HandleBack(
	_ *discordgo.Session,
	i *discordgo.InteractionCreate,
	r bot.Responder,
) error {
	ids, err := parseRequest(i)
	if err != nil {
		return respondError(r, "Invalid request")
	}

	prev, err := h.playback.Back(context.Background(), ids.guildID)
	if err != nil {
		return respondError(r, userMessage(err))
	}
	return respondEmbed(r, trackEmbed(
		fmt.Sprintf("Replaying %s", prev.DisplayTitle()), prev, colorSuccess))
}

// HandleSave handles the /save command.
func (h *CommandHandlers) HandleSave(
	_ *discordgo.Session,
	i *discordgo.InteractionCreate,
	r bot.Responder,
) error {
	ids, err := parseRequest(i)
	if err != nil {
		return respondError(r, "Invalid request")
	}

	if err := h.playback.SaveTrack(ids.guildID, ids.userID); err != nil {
		return respondError(r, userMessage(err))
	}
	return respondEmbed(r, &discordgo.MessageEmbed{
		Description: "Track details sent to your DMs.",
		Color:       colorSuccess,
	})
}

// progressBar renders a text progress bar for the current position.
func progressBar(position, duration time.Duration) string {
	const barLength = 20
	if duration <= 0 {
		return strings.Repeat("▬", barLength)
	}
	filled := int(float64(barLength) * float64(position) / float64(duration))
	if filled > barLength {
		filled = barLength
	}
	return strings.Repeat("▬", filled) + "🔘" + strings.Repeat("▬", barLength-filled)
}

// userMessage maps a usecase error to a user-facing message. Expected
// errors pass through; anything else gets a generic message.
func userMessage(err error) string {
	switch {
	case errors.Is(err, usecases.ErrNoResults),
		errors.Is(err, usecases.ErrNotConnected),
		errors.Is(err, usecases.ErrUserNotInVoice),
		errors.Is(err, usecases.ErrNotPlaying),
		errors.Is(err, usecases.ErrAlreadyPaused),
		errors.Is(err, usecases.ErrNotPaused),
		errors.Is(err, usecases.ErrQueueEmpty),
		errors.Is(err, usecases.ErrInvalidPosition),
		errors.Is(err, usecases.ErrInvalidSeekFormat),
		errors.Is(err, usecases.ErrInvalidVolume),
		errors.Is(err, usecases.ErrNoHistory),
		errors.Is(err, usecases.ErrUnsupportedCatalogURL),
		errors.Is(err, usecases.ErrCatalogUnavailable),
		errors.Is(err, usecases.ErrNoTracksAdded):
		return capitalize(err.Error()) + "."
	default:
		slog.Error("command failed", "error", err)
		return "Something went wrong while processing your command."
	}
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
