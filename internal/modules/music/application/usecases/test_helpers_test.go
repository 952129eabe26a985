package usecases

import (
	"context"
	"time"

	"github.com/disgoorg/snowflake/v2"
	"github.com/npcx42/icutils/internal/modules/music/application/ports"
	"github.com/npcx42/icutils/internal/modules/music/domain"
)

const (
	testGuildID   = snowflake.ID(100)
	testUserID    = snowflake.ID(200)
	testChannelID = snowflake.ID(300)
)

func mockTrack(title string) *domain.Track {
	return &domain.Track{
		Encoded:  "encoded-" + title,
		Title:    title,
		Artist:   "Artist",
		Duration: 3 * time.Minute,
	}
}

type mockRegistry struct {
	states  map[snowflake.ID]*domain.PlayerState
	removed []snowflake.ID
}

func newMockRegistry() *mockRegistry {
	return &mockRegistry{states: make(map[snowflake.ID]*domain.PlayerState)}
}

func (m *mockRegistry) GetOrCreate(guildID snowflake.ID) *domain.PlayerState {
	if state, ok := m.states[guildID]; ok {
		return state
	}
	state := domain.NewPlayerState(guildID)
	m.states[guildID] = state
	return state
}

func (m *mockRegistry) Get(guildID snowflake.ID) *domain.PlayerState {
	return m.states[guildID]
}

func (m *mockRegistry) Remove(guildID snowflake.ID) {
	m.removed = append(m.removed, guildID)
	delete(m.states, guildID)
}

// createConnectedState seeds a state that already has a voice session, so
// tests can skip the join path.
func (m *mockRegistry) createConnectedState(guildID snowflake.ID) *domain.PlayerState {
	state := m.GetOrCreate(guildID)
	state.SetVoiceChannelID(testChannelID)
	return state
}

type mockAudioPlayer struct {
	playErr   error
	stopErr   error
	pauseErr  error
	resumeErr error
	seekErr   error
	volumeErr error

	// pauseGate, when set, blocks Pause until the channel is closed.
	pauseGate chan struct{}

	played   []*domain.Track
	stopped  int
	paused   int
	resumed  int
	seeks    []time.Duration
	volumes  []int
	position time.Duration
}

func (m *mockAudioPlayer) Play(_ context.Context, _ snowflake.ID, track *domain.Track) error {
	if m.playErr != nil {
		return m.playErr
	}
	m.played = append(m.played, track)
	return nil
}

func (m *mockAudioPlayer) Stop(_ context.Context, _ snowflake.ID) error {
	if m.stopErr != nil {
		return m.stopErr
	}
	m.stopped++
	return nil
}

func (m *mockAudioPlayer) Pause(_ context.Context, _ snowflake.ID) error {
	if m.pauseGate != nil {
		<-m.pauseGate
	}
	if m.pauseErr != nil {
		return m.pauseErr
	}
	m.paused++
	return nil
}

func (m *mockAudioPlayer) Resume(_ context.Context, _ snowflake.ID) error {
	if m.resumeErr != nil {
		return m.resumeErr
	}
	m.resumed++
	return nil
}

func (m *mockAudioPlayer) Seek(_ context.Context, _ snowflake.ID, position time.Duration) error {
	if m.seekErr != nil {
		return m.seekErr
	}
	m.seeks = append(m.seeks, position)
	return nil
}

func (m *mockAudioPlayer) SetVolume(_ context.Context, _ snowflake.ID, volume int) error {
	if m.volumeErr != nil {
		return m.volumeErr
	}
	m.volumes = append(m.volumes, volume)
	return nil
}

func (m *mockAudioPlayer) Position(_ snowflake.ID) time.Duration {
	return m.position
}

type mockVoiceConnection struct {
	joinErr  error
	leaveErr error
	joined   []snowflake.ID
	left     []snowflake.ID
}

func (m *mockVoiceConnection) JoinChannel(_ context.Context, _, channelID snowflake.ID) error {
	if m.joinErr != nil {
		return m.joinErr
	}
	m.joined = append(m.joined, channelID)
	return nil
}

func (m *mockVoiceConnection) LeaveChannel(_ context.Context, guildID snowflake.ID) error {
	if m.leaveErr != nil {
		return m.leaveErr
	}
	m.left = append(m.left, guildID)
	return nil
}

type mockVoiceState struct {
	channelID snowflake.ID
	err       error
}

func (m *mockVoiceState) GetUserVoiceChannel(_, _ snowflake.ID) (snowflake.ID, error) {
	return m.channelID, m.err
}

// mockTrackResolver resolves each query to a single synthetic track. Queries
// listed in failing come back empty.
type mockTrackResolver struct {
	loadErr error
	failing map[string]bool
	queries []string
}

func (m *mockTrackResolver) LoadTracks(_ context.Context, query string) (*ports.LoadResult, error) {
	if m.loadErr != nil {
		return nil, m.loadErr
	}
	m.queries = append(m.queries, query)

	if m.failing[query] {
		return &ports.LoadResult{Type: ports.LoadTypeEmpty}, nil
	}
	return &ports.LoadResult{
		Type: ports.LoadTypeSearch,
		Tracks: []*ports.TrackInfo{{
			Encoded:  "encoded-" + query,
			Title:    query,
			Artist:   "Artist",
			Duration: 3 * time.Minute,
		}},
	}, nil
}

type mockCatalog struct {
	searchResult    *domain.TrackMetadata
	searchErr       error
	playlistEntries []domain.CatalogEntry
	playlistErr     error
	albumEntries    []domain.CatalogEntry
	albumErr        error

	playlistLimit int
}

func (m *mockCatalog) SearchTrack(_ context.Context, _ string) (*domain.TrackMetadata, error) {
	return m.searchResult, m.searchErr
}

func (m *mockCatalog) PlaylistEntries(
	_ context.Context,
	_ string,
	limit int,
) ([]domain.CatalogEntry, error) {
	m.playlistLimit = limit
	if m.playlistErr != nil {
		return nil, m.playlistErr
	}
	if limit < len(m.playlistEntries) {
		return m.playlistEntries[:limit], nil
	}
	return m.playlistEntries, nil
}

func (m *mockCatalog) AlbumEntries(_ context.Context, _ string) ([]domain.CatalogEntry, error) {
	return m.albumEntries, m.albumErr
}

type mockNotifier struct {
	err  error
	sent []*domain.QueueEntry
}

func (m *mockNotifier) SendTrackToUser(_ snowflake.ID, entry *domain.QueueEntry) error {
	if m.err != nil {
		return m.err
	}
	m.sent = append(m.sent, entry)
	return nil
}

// testEnv bundles a fully wired service set over mocks.
type testEnv struct {
	registry    *mockRegistry
	audioPlayer *mockAudioPlayer
	voiceConn   *mockVoiceConnection
	voiceState  *mockVoiceState
	resolver    *mockTrackResolver
	catalog     *mockCatalog
	notifier    *mockNotifier

	playback    *PlaybackService
	queue       *QueueService
	bulkEnqueue *BulkEnqueueService
}

func newTestEnv() *testEnv {
	env := &testEnv{
		registry:    newMockRegistry(),
		audioPlayer: &mockAudioPlayer{},
		voiceConn:   &mockVoiceConnection{},
		voiceState:  &mockVoiceState{channelID: testChannelID},
		resolver:    &mockTrackResolver{},
		catalog:     &mockCatalog{},
		notifier:    &mockNotifier{},
	}

	resolverService := NewResolverService(env.resolver, env.catalog)
	env.playback = NewPlaybackService(
		env.registry,
		env.audioPlayer,
		env.voiceConn,
		env.voiceState,
		resolverService,
		env.notifier,
	)
	env.queue = NewQueueService(env.registry)
	env.bulkEnqueue = NewBulkEnqueueService(resolverService, env.playback)

	return env
}
