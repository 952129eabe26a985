package infrastructure

import (
	"fmt"

	"github.com/bwmarrin/discordgo"
	"github.com/disgoorg/snowflake/v2"
	"github.com/npcx42/icutils/internal/modules/music/application/ports"
	"github.com/npcx42/icutils/internal/modules/music/domain"
)

const colorGreen = 0x2ECC71

// Notifier sends Discord messages outside the interaction response cycle.
type Notifier struct {
	session *discordgo.Session
}

// NewNotifier creates a new Notifier.
func NewNotifier(session *discordgo.Session) *Notifier {
	return &Notifier{session: session}
}

// SendTrackToUser DMs the track's details to the given user.
func (n *Notifier) SendTrackToUser(userID snowflake.ID, entry *domain.QueueEntry) error {
	channel, err := n.session.UserChannelCreate(userID.String())
	if err != nil {
		return fmt.Errorf("failed to open DM channel: %w", err)
	}

	embed := &discordgo.MessageEmbed{
		Title: "Saved Track",
		Color: colorGreen,
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Title", Value: entry.DisplayTitle(), Inline: true},
			{Name: "Duration", Value: entry.Track.FormattedDuration(), Inline: true},
		},
	}

	if metadata := entry.Metadata; metadata != nil {
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
		if metadata.CatalogURL != "" && entry.Track.URI != "" {
			embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
				Name:   "Links",
				Value:  fmt.Sprintf("[Source](%s)\n[Spotify](%s)", entry.Track.URI, metadata.CatalogURL),
				Inline: true,
			})
		}
	} else if entry.Track.URI != "" {
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:   "Link",
			Value:  fmt.Sprintf("[Source](%s)", entry.Track.URI),
			Inline: true,
		})
	}

	if _, err := n.session.ChannelMessageSendEmbed(channel.ID, embed); err != nil {
		return fmt.Errorf("failed to send DM: %w", err)
	}
	return nil
}

// Ensure Notifier implements the port interface.
var _ ports.Notifier = (*Notifier)(nil)
