package models

// Segment is one timed caption unit in the output.
type Segment struct {
	Text     string  `json:"text"`
	Start    float64 `json:"start"`
	Duration float64 `json:"duration"`
}

type TranscriptResult struct {
	VideoID    string    `json:"videoId"`
	Transcript string    `json:"transcript"`
	Segments   []Segment `json:"segments"`
}

type ErrorResult struct {
	Error string `json:"error"`
}
