package transcription

import (
	"fmt"
	"strings"

	apperrors "github.com/nijaru/yt-transcript/errors"
)

// Caption is one caption unit as YouTube returned it. Start and Duration
// are nil when the timedtext element omitted them.
type Caption struct {
	Text     string
	Start    *float64
	Duration *float64
}

// Track is one transcript available for a video.
type Track struct {
	VideoID        string
	Language       string
	LanguageCode   string
	IsGenerated    bool
	IsTranslatable bool
	URL            string
}

func (t Track) String() string {
	kind := "manual"
	if t.IsGenerated {
		kind = "generated"
	}
	return fmt.Sprintf("%s (%s) - %s", t.LanguageCode, t.Language, kind)
}

// TrackList holds the transcripts of a video, manually created ones
// and generated ones each in the order YouTube listed them.
type TrackList struct {
	VideoID   string
	Manual    []Track
	Generated []Track
}

func newTrackList(videoID string, tracks []captionTrack) *TrackList {
	list := &TrackList{VideoID: videoID}
	for _, ct := range tracks {
		track := Track{
			VideoID:        videoID,
			Language:       ct.displayName(),
			LanguageCode:   ct.LanguageCode,
			IsGenerated:    ct.Kind == "asr",
			IsTranslatable: ct.IsTranslatable,
			URL:            strings.Replace(ct.BaseURL, srv3FormatParam, "", 1),
		}
		if track.IsGenerated {
			list.Generated = append(list.Generated, track)
		} else {
			list.Manual = append(list.Manual, track)
		}
	}
	return list
}

// All returns manual tracks followed by generated ones. This is the
// listing order the first-available fallback picks from.
func (l *TrackList) All() []Track {
	all := make([]Track, 0, len(l.Manual)+len(l.Generated))
	all = append(all, l.Manual...)
	return append(all, l.Generated...)
}

// Find returns the track for the first language code that has one,
// preferring a manual track over a generated one for the same code.
func (l *TrackList) Find(languageCodes ...string) (Track, error) {
	const op = "TrackList.Find"

	for _, code := range languageCodes {
		for _, group := range [][]Track{l.Manual, l.Generated} {
			for _, track := range group {
				if track.LanguageCode == code {
					return track, nil
				}
			}
		}
	}

	return Track{}, apperrors.NotFound(op, nil, fmt.Sprintf(
		"no transcripts were found for any of the requested language codes %v for video %s (available: %s)",
		languageCodes, l.VideoID, l.describe(),
	))
}

func (l *TrackList) describe() string {
	all := l.All()
	if len(all) == 0 {
		return "none"
	}
	parts := make([]string, len(all))
	for i, track := range all {
		parts[i] = track.String()
	}
	return strings.Join(parts, ", ")
}
