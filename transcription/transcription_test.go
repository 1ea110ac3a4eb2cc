package transcription

import (
	"context"
	"fmt"
	"testing"

	apperrors "github.com/nijaru/yt-transcript/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockProvider struct {
	FetchFunc      func(ctx context.Context, videoID string, languages []string) ([]Caption, error)
	ListFunc       func(ctx context.Context, videoID string) (*TrackList, error)
	FetchTrackFunc func(ctx context.Context, track Track) ([]Caption, error)

	fetchCalls, listCalls, fetchTrackCalls int
}

func (m *mockProvider) Fetch(ctx context.Context, videoID string, languages []string) ([]Caption, error) {
	m.fetchCalls++
	return m.FetchFunc(ctx, videoID, languages)
}

func (m *mockProvider) List(ctx context.Context, videoID string) (*TrackList, error) {
	m.listCalls++
	return m.ListFunc(ctx, videoID)
}

func (m *mockProvider) FetchTrack(ctx context.Context, track Track) ([]Caption, error) {
	m.fetchTrackCalls++
	return m.FetchTrackFunc(ctx, track)
}

func seconds(v float64) *float64 { return &v }

func notFound(context.Context, string, []string) ([]Caption, error) {
	return nil, apperrors.NotFound("test", nil, "no transcript in requested languages")
}

func TestFetch_PreferredLanguage(t *testing.T) {
	provider := &mockProvider{
		FetchFunc: func(ctx context.Context, videoID string, languages []string) ([]Caption, error) {
			assert.Equal(t, "abc123", videoID)
			assert.Equal(t, []string{"en", "en-US", "en-GB"}, languages)
			return []Caption{
				{Text: "  Hello  ", Start: seconds(0), Duration: seconds(1.5)},
				{Text: "world\n", Start: seconds(1.5), Duration: seconds(2)},
			}, nil
		},
	}

	svc := NewTranscriptionService(provider, []string{"en", "en-US", "en-GB"})
	result, err := svc.Fetch(context.Background(), "abc123")
	require.NoError(t, err)

	assert.Equal(t, "abc123", result.VideoID)
	assert.Equal(t, "Hello world", result.Transcript)
	require.Len(t, result.Segments, 2)
	assert.Equal(t, "Hello", result.Segments[0].Text)
	assert.Equal(t, 1.5, result.Segments[1].Start)
	assert.Equal(t, 2.0, result.Segments[1].Duration)
	assert.Zero(t, provider.listCalls)
}

func TestFetch_FallbackToFirstAvailable(t *testing.T) {
	german := Track{VideoID: "abc123", LanguageCode: "de", Language: "German"}
	provider := &mockProvider{
		FetchFunc: notFound,
		ListFunc: func(ctx context.Context, videoID string) (*TrackList, error) {
			return &TrackList{
				VideoID:   videoID,
				Manual:    []Track{german},
				Generated: []Track{{VideoID: videoID, LanguageCode: "fr", IsGenerated: true}},
			}, nil
		},
		FetchTrackFunc: func(ctx context.Context, track Track) ([]Caption, error) {
			assert.Equal(t, german, track)
			return []Caption{{Text: "Hallo", Start: seconds(0.5), Duration: seconds(1)}}, nil
		},
	}

	result, err := NewTranscriptionService(provider, []string{"en"}).Fetch(context.Background(), "abc123")
	require.NoError(t, err)

	assert.Equal(t, "Hallo", result.Transcript)
	assert.Equal(t, 1, provider.fetchCalls)
	assert.Equal(t, 1, provider.listCalls)
	assert.Equal(t, 1, provider.fetchTrackCalls)
}

func TestFetch_FallbackEmptyListing(t *testing.T) {
	provider := &mockProvider{
		FetchFunc: notFound,
		ListFunc: func(ctx context.Context, videoID string) (*TrackList, error) {
			return &TrackList{VideoID: videoID}, nil
		},
	}

	_, err := NewTranscriptionService(provider, []string{"en"}).Fetch(context.Background(), "abc123")
	require.Error(t, err)
	assert.Equal(t, apperrors.KindNotFound, apperrors.KindOf(err))
	assert.Equal(t, apperrors.MsgNotFound, apperrors.UserMessage(err))
	assert.Zero(t, provider.fetchTrackCalls)
}

func TestFetch_FallbackListError(t *testing.T) {
	provider := &mockProvider{
		FetchFunc: notFound,
		ListFunc: func(ctx context.Context, videoID string) (*TrackList, error) {
			return nil, fmt.Errorf("connection reset by peer")
		},
	}

	_, err := NewTranscriptionService(provider, []string{"en"}).Fetch(context.Background(), "abc123")
	require.Error(t, err)
	assert.Equal(t, "connection reset by peer", apperrors.UserMessage(err))
}

func TestFetch_ErrorsAreFinal(t *testing.T) {
	tests := []struct {
		name string
		err  error
	}{
		{"disabled", apperrors.Disabled("test", "abc123")},
		{"unavailable", apperrors.Unavailable("test", "abc123")},
		{"network", fmt.Errorf("dial tcp: i/o timeout")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			provider := &mockProvider{
				FetchFunc: func(context.Context, string, []string) ([]Caption, error) {
					return nil, tt.err
				},
			}

			_, err := NewTranscriptionService(provider, []string{"en"}).Fetch(context.Background(), "abc123")
			assert.Equal(t, tt.err, err)
			assert.Equal(t, 1, provider.fetchCalls)
			assert.Zero(t, provider.listCalls)
		})
	}
}

func TestBuildResult(t *testing.T) {
	captions := []Caption{
		{Text: "first", Start: seconds(0), Duration: seconds(1)},
		{Text: "   ", Start: seconds(1), Duration: seconds(1)},
		{Text: "", Start: seconds(2), Duration: seconds(1)},
		{Text: "\tsecond line ", Start: seconds(3)},
		{Text: "third"},
	}

	result := BuildResult("vid", captions)

	assert.Equal(t, "first second line third", result.Transcript)
	require.Len(t, result.Segments, 3)
	assert.Equal(t, "second line", result.Segments[1].Text)
	assert.Equal(t, 3.0, result.Segments[1].Start)
	assert.Equal(t, 0.0, result.Segments[1].Duration)
	assert.Equal(t, 0.0, result.Segments[2].Start)
	assert.Equal(t, 0.0, result.Segments[2].Duration)
}

func TestBuildResult_Empty(t *testing.T) {
	result := BuildResult("vid", nil)

	assert.Equal(t, "", result.Transcript)
	assert.NotNil(t, result.Segments)
	assert.Empty(t, result.Segments)
}
