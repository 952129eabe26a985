package usecases

import (
	"context"
	"log/slog"

	"github.com/disgoorg/snowflake/v2"
	"github.com/google/uuid"
	"github.com/npcx42/icutils/internal/modules/music/domain"
)

// progressInterval is how many successfully-added entries pass between
// progress reports, so a long import is not silent.
const progressInterval = 5

// ProgressFunc reports incremental import progress to the user.
type ProgressFunc func(added, total int)

// BulkEnqueueInput contains the input for a catalog import.
type BulkEnqueueInput struct {
	GuildID  snowflake.ID
	UserID   snowflake.ID
	URL      string
	Limit    int          // playlist entry limit; clamped by the resolver
	Progress ProgressFunc // optional
}

// BulkEnqueueOutput contains the result of a catalog import.
type BulkEnqueueOutput struct {
	Added int
	Total int
}

// BulkEnqueueService imports an album or playlist into a guild's queue.
//
// Entries are resolved sequentially to respect provider rate limits and to
// keep the append order deterministic. The tenant lock is held only for
// each append; a concurrently issued clear or stop simply wins against any
// appends that land after it.
type BulkEnqueueService struct {
	resolver *ResolverService
	playback *PlaybackService
}

// NewBulkEnqueueService creates a new BulkEnqueueService.
func NewBulkEnqueueService(
	resolver *ResolverService,
	playback *PlaybackService,
) *BulkEnqueueService {
	return &BulkEnqueueService{
		resolver: resolver,
		playback: playback,
	}
}

// Run resolves the catalog reference and enqueues its entries one at a
// time. A catalog-level failure aborts the whole import; a per-entry
// resolution failure skips that entry and continues.
func (s *BulkEnqueueService) Run(ctx context.Context, input BulkEnqueueInput) (*BulkEnqueueOutput, error) {
	state, err := s.playback.EnsureConnected(ctx, input.GuildID, input.UserID)
	if err != nil {
		return nil, err
	}

	entries, err := s.resolver.ResolveCatalog(ctx, input.URL, input.Limit)
	if err != nil {
		return nil, err
	}

	total := len(entries)
	if total == 0 {
		return &BulkEnqueueOutput{}, nil
	}

	jobID := uuid.NewString()
	logger := slog.With("job", jobID, "guild", input.GuildID)
	logger.Info("starting catalog import", "entries", total)

	added := 0
	for _, entry := range entries {
		if ctx.Err() != nil {
			logger.Warn("catalog import cancelled", "added", added)
			break
		}

		// Resolution happens outside the tenant lock; only the append
		// below takes it.
		track, err := s.resolver.ResolveQuery(ctx, entry.Query)
		if err != nil {
			logger.Debug("skipping catalog entry", "query", entry.Query, "error", err)
			continue
		}

		// The catalog already supplied display metadata; no extra lookup.
		metadata := entry.Metadata
		queueEntry := &domain.QueueEntry{Track: track, Metadata: &metadata}

		if state.EnqueueOrStart(queueEntry) {
			if err := s.playback.startPlayback(ctx, state, queueEntry); err != nil {
				logger.Warn("failed to start playback during import", "error", err)
				continue
			}
		}

		added++
		if input.Progress != nil && added%progressInterval == 0 {
			input.Progress(added, total)
		}
	}

	logger.Info("finished catalog import", "added", added, "total", total)

	if added == 0 {
		return nil, ErrNoTracksAdded
	}
	return &BulkEnqueueOutput{Added: added, Total: total}, nil
}
