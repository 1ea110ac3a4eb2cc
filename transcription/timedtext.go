package transcription

import (
	"encoding/xml"
	"regexp"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"golang.org/x/net/html"
)

var markupTagRE = regexp.MustCompile(`<[^>]*>`)

type timedText struct {
	Lines []timedTextLine `xml:"text"`
}

type timedTextLine struct {
	Start string `xml:"start,attr"`
	Dur   string `xml:"dur,attr"`
	Text  string `xml:",chardata"`
}

// parseTimedText decodes a timedtext XML document into captions, in
// document order. Elements without text are skipped.
func parseTimedText(data []byte) ([]Caption, error) {
	var tt timedText
	if err := xml.Unmarshal(data, &tt); err != nil {
		return nil, errors.Wrap(err, "failed to parse timedtext XML")
	}

	captions := make([]Caption, 0, len(tt.Lines))
	for _, line := range tt.Lines {
		if line.Text == "" {
			continue
		}

		start, err := parseSeconds(line.Start)
		if err != nil {
			return nil, errors.Wrapf(err, "invalid start %q", line.Start)
		}
		dur, err := parseSeconds(line.Dur)
		if err != nil {
			return nil, errors.Wrapf(err, "invalid dur %q", line.Dur)
		}

		captions = append(captions, Caption{
			Text:     cleanCaptionText(line.Text),
			Start:    start,
			Duration: dur,
		})
	}
	return captions, nil
}

func parseSeconds(raw string) (*float64, error) {
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

// cleanCaptionText resolves the HTML entities YouTube leaves in caption
// text and drops complete markup tags such as <i> or <font>. A bare "<"
// that opens no tag is kept as text.
func cleanCaptionText(s string) string {
	s = html.UnescapeString(s)
	if !strings.Contains(s, "<") {
		return s
	}
	return markupTagRE.ReplaceAllString(s, "")
}
