package transcription

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"regexp"
	"strings"

	apperrors "github.com/nijaru/yt-transcript/errors"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

const (
	maxPageSize      = 8 * 1024 * 1024
	maxTimedTextSize = 4 * 1024 * 1024
)

var (
	innertubeAPIKeyRE = regexp.MustCompile(`"INNERTUBE_API_KEY":\s*"([a-zA-Z0-9_-]+)"`)
	consentValueRE    = regexp.MustCompile(`name="v" value="(.*?)"`)
)

// Provider is the transcript source TranscriptionService talks to.
type Provider interface {
	// Fetch returns the captions of the first transcript matching languages.
	Fetch(ctx context.Context, videoID string, languages []string) ([]Caption, error)
	// List returns every transcript available for the video.
	List(ctx context.Context, videoID string) (*TrackList, error)
	// FetchTrack downloads the captions of a single track.
	FetchTrack(ctx context.Context, track Track) ([]Caption, error)
}

// Client fetches transcripts from YouTube: the watch page for the
// Innertube API key, the ANDROID /player endpoint for the caption
// tracks, then the timedtext XML of the chosen track.
type Client struct {
	httpClient *http.Client
	baseURL    string
}

// NewClient returns a Client using httpClient, which is given a cookie
// jar if it has none. baseURL defaults to DefaultBaseURL.
func NewClient(httpClient *http.Client, baseURL string) *Client {
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	if httpClient.Jar == nil {
		jar, _ := cookiejar.New(nil)
		withJar := *httpClient
		withJar.Jar = jar
		httpClient = &withJar
	}
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		httpClient: httpClient,
		baseURL:    strings.TrimRight(baseURL, "/"),
	}
}

func (c *Client) Fetch(ctx context.Context, videoID string, languages []string) ([]Caption, error) {
	list, err := c.List(ctx, videoID)
	if err != nil {
		return nil, err
	}

	track, err := list.Find(languages...)
	if err != nil {
		return nil, err
	}

	return c.FetchTrack(ctx, track)
}

func (c *Client) List(ctx context.Context, videoID string) (*TrackList, error) {
	logger := logrus.WithField("video_id", videoID)

	page, err := c.fetchWatchPage(ctx, videoID)
	if err != nil {
		return nil, err
	}

	apiKey, err := c.extractAPIKey(videoID, page)
	if err != nil {
		return nil, err
	}

	player, err := c.fetchPlayer(ctx, videoID, apiKey)
	if err != nil {
		return nil, err
	}

	if err := c.checkPlayability(videoID, player.PlayabilityStatus); err != nil {
		return nil, err
	}

	if player.Captions == nil ||
		player.Captions.PlayerCaptionsTracklistRenderer == nil ||
		len(player.Captions.PlayerCaptionsTracklistRenderer.CaptionTracks) == 0 {
		return nil, apperrors.Disabled("Client.List", videoID)
	}

	list := newTrackList(videoID, player.Captions.PlayerCaptionsTracklistRenderer.CaptionTracks)
	logger.WithFields(logrus.Fields{
		"manual":    len(list.Manual),
		"generated": len(list.Generated),
	}).Debug("Listed caption tracks")
	return list, nil
}

func (c *Client) FetchTrack(ctx context.Context, track Track) ([]Caption, error) {
	if strings.Contains(track.URL, poTokenMarker) {
		return nil, c.retrievalError("Client.FetchTrack", track.VideoID,
			"the requested transcript can only be downloaded with a PO token")
	}

	data, err := c.get(ctx, track.VideoID, track.URL, maxTimedTextSize)
	if err != nil {
		return nil, err
	}

	captions, err := parseTimedText(data)
	if err != nil {
		return nil, err
	}

	logrus.WithFields(logrus.Fields{
		"video_id": track.VideoID,
		"language": track.LanguageCode,
		"captions": len(captions),
	}).Debug("Fetched caption track")
	return captions, nil
}

func (c *Client) watchURL(videoID string) string {
	return c.baseURL + "/watch?v=" + url.QueryEscape(videoID)
}

func (c *Client) fetchWatchPage(ctx context.Context, videoID string) (string, error) {
	const op = "Client.fetchWatchPage"

	page, err := c.get(ctx, videoID, c.watchURL(videoID), maxPageSize)
	if err != nil {
		return "", err
	}
	if !bytes.Contains(page, []byte(consentFormMarker)) {
		return string(page), nil
	}

	if err := c.giveConsent(videoID, page); err != nil {
		return "", err
	}

	page, err = c.get(ctx, videoID, c.watchURL(videoID), maxPageSize)
	if err != nil {
		return "", err
	}
	if bytes.Contains(page, []byte(consentFormMarker)) {
		return "", c.retrievalError(op, videoID, "failed to automatically give consent to saving cookies")
	}
	return string(page), nil
}

// giveConsent answers the EU cookie consent interstitial by storing the
// CONSENT cookie the form would have set.
func (c *Client) giveConsent(videoID string, page []byte) error {
	m := consentValueRE.FindSubmatch(page)
	if m == nil {
		return c.retrievalError("Client.giveConsent", videoID, "failed to automatically give consent to saving cookies")
	}

	u, err := url.Parse(c.baseURL)
	if err != nil {
		return errors.Wrap(err, "invalid base URL")
	}
	c.httpClient.Jar.SetCookies(u, []*http.Cookie{{
		Name:  "CONSENT",
		Value: "YES+" + string(m[1]),
		Path:  "/",
	}})
	logrus.WithField("video_id", videoID).Debug("Gave cookie consent")
	return nil
}

func (c *Client) extractAPIKey(videoID, page string) (string, error) {
	const op = "Client.extractAPIKey"

	if m := innertubeAPIKeyRE.FindStringSubmatch(page); m != nil {
		return m[1], nil
	}
	if strings.Contains(page, recaptchaMarker) {
		return "", c.retrievalError(op, videoID, "YouTube is blocking requests from your IP")
	}
	return "", c.retrievalError(op, videoID, "the data required to fetch the transcript is not parsable")
}

func (c *Client) fetchPlayer(ctx context.Context, videoID, apiKey string) (*playerResponse, error) {
	body, err := json.Marshal(playerRequest{
		Context: playerContext{
			Client: playerClient{
				ClientName:    androidClientName,
				ClientVersion: androidClientVersion,
			},
		},
		VideoID: videoID,
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to marshal player request")
	}

	endpoint := c.baseURL + "/youtubei/v1/player?key=" + url.QueryEscape(apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, errors.Wrap(err, "failed to create player request")
	}
	req.Header.Set("Content-Type", "application/json")

	data, err := c.do(req, videoID, maxPageSize)
	if err != nil {
		return nil, err
	}

	var player playerResponse
	if err := json.Unmarshal(data, &player); err != nil {
		return nil, errors.Wrap(err, "failed to unmarshal player response")
	}
	return &player, nil
}

func (c *Client) checkPlayability(videoID string, status *playabilityStatus) error {
	const op = "Client.checkPlayability"

	if status == nil || status.Status == "" || status.Status == playabilityOK {
		return nil
	}

	switch {
	case status.Status == playabilityLogin && status.Reason == reasonBotDetected:
		return c.retrievalError(op, videoID, "YouTube is blocking requests from your IP")
	case status.Status == playabilityLogin && status.Reason == reasonAgeRestricted:
		return c.retrievalError(op, videoID, "this video is age-restricted and cannot be accessed without authentication")
	case status.Status == playabilityError && status.Reason == reasonUnavailable:
		if strings.HasPrefix(videoID, "http://") || strings.HasPrefix(videoID, "https://") {
			return c.retrievalError(op, videoID, "you provided an invalid video id; pass the video id, not the URL")
		}
		return apperrors.Unavailable(op, videoID)
	}

	reason := "the video is unplayable"
	if status.Reason != "" {
		reason += ": " + status.Reason
	}
	var subreasons []string
	for _, run := range status.ErrorScreen.PlayerErrorMessageRenderer.Subreason.Runs {
		if run.Text != "" {
			subreasons = append(subreasons, run.Text)
		}
	}
	if len(subreasons) > 0 {
		reason += " (" + strings.Join(subreasons, " ") + ")"
	}
	return c.retrievalError(op, videoID, reason)
}

func (c *Client) get(ctx context.Context, videoID, rawURL string, limit int64) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create request")
	}
	return c.do(req, videoID, limit)
}

func (c *Client) do(req *http.Request, videoID string, limit int64) ([]byte, error) {
	const op = "Client.do"

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, errors.Wrap(err, "request to YouTube failed")
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusTooManyRequests {
		return nil, c.retrievalError(op, videoID, "YouTube is blocking requests from your IP")
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, c.retrievalError(op, videoID, fmt.Sprintf("request to YouTube failed: %s", resp.Status))
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, limit))
	if err != nil {
		return nil, errors.Wrap(err, "failed to read response from YouTube")
	}
	return body, nil
}

func (c *Client) retrievalError(op, videoID, cause string) error {
	return apperrors.Unknown(op, nil, fmt.Sprintf(
		"could not retrieve a transcript for the video %s: %s", c.watchURL(videoID), cause,
	))
}
