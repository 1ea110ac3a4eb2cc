package transcription

import (
	"context"
	"fmt"
	"strings"

	apperrors "github.com/nijaru/yt-transcript/errors"
	"github.com/nijaru/yt-transcript/models"
	"github.com/sirupsen/logrus"
)

type TranscriptionService struct {
	provider  Provider
	languages []string
}

func NewTranscriptionService(provider Provider, languages []string) *TranscriptionService {
	return &TranscriptionService{
		provider:  provider,
		languages: languages,
	}
}

// Fetch returns the transcript of videoID in the first preferred language
// available. When none of them exists it falls back to the first
// transcript YouTube lists, whatever its language.
func (s *TranscriptionService) Fetch(ctx context.Context, videoID string) (*models.TranscriptResult, error) {
	logger := logrus.WithFields(logrus.Fields{
		"video_id":  videoID,
		"languages": s.languages,
	})
	logger.Info("Fetching transcript")

	captions, err := s.provider.Fetch(ctx, videoID, s.languages)
	if err != nil {
		if apperrors.KindOf(err) != apperrors.KindNotFound {
			logger.WithError(err).Error("Failed to fetch transcript")
			return nil, err
		}

		logger.WithError(err).Info("No transcript in preferred languages, falling back to first available")
		captions, err = s.fetchFirstAvailable(ctx, videoID)
		if err != nil {
			logger.WithError(err).Error("Fallback transcript fetch failed")
			return nil, err
		}
	}

	result := BuildResult(videoID, captions)
	logger.WithField("segments", len(result.Segments)).Info("Transcript fetched successfully")
	return result, nil
}

// fetchFirstAvailable picks the first track in listing order. Which track
// that is depends on YouTube's ordering; nothing else breaks the tie.
func (s *TranscriptionService) fetchFirstAvailable(ctx context.Context, videoID string) ([]Caption, error) {
	const op = "TranscriptionService.fetchFirstAvailable"

	list, err := s.provider.List(ctx, videoID)
	if err != nil {
		return nil, err
	}

	tracks := list.All()
	if len(tracks) == 0 {
		return nil, apperrors.NotFound(op, nil, fmt.Sprintf("no transcripts are listed for video %s", videoID))
	}

	logrus.WithFields(logrus.Fields{
		"video_id": videoID,
		"track":    tracks[0].String(),
	}).Info("Using first available transcript")
	return s.provider.FetchTrack(ctx, tracks[0])
}

// BuildResult trims caption text, drops empty captions and joins the
// rest with single spaces. Missing timings default to zero.
func BuildResult(videoID string, captions []Caption) *models.TranscriptResult {
	segments := make([]models.Segment, 0, len(captions))
	texts := make([]string, 0, len(captions))

	for _, caption := range captions {
		text := strings.TrimSpace(caption.Text)
		if text == "" {
			continue
		}

		texts = append(texts, text)
		segments = append(segments, models.Segment{
			Text:     text,
			Start:    valueOrZero(caption.Start),
			Duration: valueOrZero(caption.Duration),
		})
	}

	return &models.TranscriptResult{
		VideoID:    videoID,
		Transcript: strings.Join(texts, " "),
		Segments:   segments,
	}
}

func valueOrZero(v *float64) float64 {
	if v == nil {
		return 0
	}
	return *v
}
