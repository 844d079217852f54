package ops

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/covertbagel/compendium/internal/catalog"
	"github.com/covertbagel/compendium/internal/errors"
)

func TestList_Order(t *testing.T) {
	s, _ := newTestService(t, &fakeSource{episodes: threeEpisodes()})

	out, err := s.List(context.Background(), ListInput{})
	require.NoError(t, err)
	require.Len(t, out.Items, 3)
	require.Equal(t, "vid3", out.Items[0].VideoID)
	require.Equal(t, "vid1", out.Items[2].VideoID)
}

func TestList_AttachesResolvedNotes(t *testing.T) {
	s, _ := newTestService(t, &fakeSource{episodes: threeEpisodes()})
	ctx := context.Background()

	submit(t, s, "vid1", "", "egg 10")
	submit(t, s, "vid3", "", "!egg found another")

	out, err := s.List(ctx, ListInput{})
	require.NoError(t, err)

	byID := make(map[string]string)
	for _, item := range out.Items {
		byID[item.VideoID] = item.Notes
	}
	require.Equal(t, "egg 10", byID["vid1"])
	require.Empty(t, byID["vid2"])
	require.Equal(t, "egg 11ʹ found another", byID["vid3"])
}

func TestList_CachesEpisodeFetch(t *testing.T) {
	source := &fakeSource{episodes: threeEpisodes()}
	s, _ := newTestService(t, source)
	ctx := context.Background()

	_, err := s.List(ctx, ListInput{})
	require.NoError(t, err)
	_, err = s.List(ctx, ListInput{})
	require.NoError(t, err)
	require.Equal(t, 1, source.calls)
}

func TestList_UpstreamFailureNotCached(t *testing.T) {
	source := &fakeSource{err: context.DeadlineExceeded}
	s, _ := newTestService(t, source)
	ctx := context.Background()

	_, err := s.List(ctx, ListInput{})
	require.True(t, errors.Is(err, errors.ErrUpstream))

	source.err = nil
	source.episodes = threeEpisodes()
	out, err := s.List(ctx, ListInput{})
	require.NoError(t, err)
	require.Len(t, out.Items, 3)
	require.Equal(t, 2, source.calls)
}

func TestList_PlaylistSetsCacheSeparately(t *testing.T) {
	source := &fakeSource{episodes: threeEpisodes()}
	s, _ := newTestService(t, source)
	ctx := context.Background()

	_, err := s.List(ctx, ListInput{})
	require.NoError(t, err)
	_, err = s.List(ctx, ListInput{Playlist: PlaylistComplete})
	require.NoError(t, err)
	require.Equal(t, 2, source.calls)
}

func TestDetail_ReturnsHistoryAndEtag(t *testing.T) {
	s, _ := newTestService(t, &fakeSource{episodes: threeEpisodes()})
	ctx := context.Background()

	etag := submit(t, s, "vid2", "", "egg 10")

	out, err := s.Detail(ctx, DetailInput{VideoID: "vid2"})
	require.NoError(t, err)
	require.Equal(t, "vid2", out.Episode.VideoID)
	require.Len(t, out.Entries, 1)
	require.Equal(t, etag, out.Etag)
	require.Equal(t, 200, out.NotesMaxChars)

	require.NotNil(t, out.Next)
	require.Equal(t, "vid3", out.Next.VideoID)
	require.NotNil(t, out.Prev)
	require.Equal(t, "vid1", out.Prev.VideoID)
}

func TestDetail_FreshEpisodeHasEmptyEtag(t *testing.T) {
	s, _ := newTestService(t, &fakeSource{episodes: threeEpisodes()})

	out, err := s.Detail(context.Background(), DetailInput{VideoID: "vid1"})
	require.NoError(t, err)
	require.Empty(t, out.Entries)
	require.Empty(t, out.Etag)
}

func TestDetail_UnknownEpisode(t *testing.T) {
	s, _ := newTestService(t, &fakeSource{episodes: threeEpisodes()})

	_, err := s.Detail(context.Background(), DetailInput{VideoID: "missing"})
	require.True(t, errors.Is(err, errors.ErrNotFound))
}

func TestDetail_RequiresVideoID(t *testing.T) {
	s, _ := newTestService(t, &fakeSource{episodes: threeEpisodes()})

	_, err := s.Detail(context.Background(), DetailInput{})
	require.True(t, errors.Is(err, errors.ErrInvalidRequest))
}

func TestPlaylistIDs(t *testing.T) {
	s, _ := newTestService(t, &fakeSource{})

	require.Equal(t, []string{"pl-default"}, s.playlistIDs(PlaylistDefault))
	require.Equal(t, []string{"pl-default", "pl-archive"}, s.playlistIDs(PlaylistComplete))

	s.cfg.CompletePlaylistIDs = nil
	require.Equal(t, []string{"pl-default"}, s.playlistIDs(PlaylistComplete))
}

var _ EpisodeSource = (*catalog.Client)(nil)
