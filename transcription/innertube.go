package transcription

// YouTube Innertube wire types. Only the fields the client reads are mapped.

const (
	DefaultBaseURL = "https://www.youtube.com"

	androidClientName    = "ANDROID"
	androidClientVersion = "20.10.38"

	consentFormMarker   = `action="https://consent.youtube.com/s"`
	recaptchaMarker     = `class="g-recaptcha"`
	poTokenMarker       = "&exp=xpe"
	srv3FormatParam     = "&fmt=srv3"
	playabilityOK       = "OK"
	playabilityError    = "ERROR"
	playabilityLogin    = "LOGIN_REQUIRED"
	reasonUnavailable   = "This video is unavailable"
	reasonBotDetected   = "Sign in to confirm you’re not a bot"
	reasonAgeRestricted = "This video may be inappropriate for some users."
)

type playerRequest struct {
	Context playerContext `json:"context"`
	VideoID string        `json:"videoId"`
}

type playerContext struct {
	Client playerClient `json:"client"`
}

type playerClient struct {
	ClientName    string `json:"clientName"`
	ClientVersion string `json:"clientVersion"`
}

type playerResponse struct {
	PlayabilityStatus *playabilityStatus `json:"playabilityStatus"`
	Captions          *struct {
		PlayerCaptionsTracklistRenderer *struct {
			CaptionTracks []captionTrack `json:"captionTracks"`
		} `json:"playerCaptionsTracklistRenderer"`
	} `json:"captions"`
}

type playabilityStatus struct {
	Status      string `json:"status"`
	Reason      string `json:"reason"`
	ErrorScreen struct {
		PlayerErrorMessageRenderer struct {
			Subreason struct {
				Runs []textRun `json:"runs"`
			} `json:"subreason"`
		} `json:"playerErrorMessageRenderer"`
	} `json:"errorScreen"`
}

type captionTrack struct {
	BaseURL string `json:"baseUrl"`
	Name    struct {
		SimpleText string    `json:"simpleText"`
		Runs       []textRun `json:"runs"`
	} `json:"name"`
	LanguageCode   string `json:"languageCode"`
	Kind           string `json:"kind"` // "asr" = auto-generated
	IsTranslatable bool   `json:"isTranslatable"`
}

type textRun struct {
	Text string `json:"text"`
}

func (t captionTrack) displayName() string {
	if len(t.Name.Runs) > 0 && t.Name.Runs[0].Text != "" {
		return t.Name.Runs[0].Text
	}
	if t.Name.SimpleText != "" {
		return t.Name.SimpleText
	}
	return t.LanguageCode
}
