package errors

import (
	"fmt"

	pkgerrors "github.com/pkg/errors"
)

// Kind is the closed set of failure categories surfaced to the user.
type Kind int

const (
	KindUnknown Kind = iota
	KindUsage
	KindDisabled
	KindNotFound
	KindUnavailable
)

func (k Kind) String() string {
	switch k {
	case KindUsage:
		return "usage"
	case KindDisabled:
		return "transcripts_disabled"
	case KindNotFound:
		return "transcript_not_found"
	case KindUnavailable:
		return "video_unavailable"
	default:
		return "unknown"
	}
}

// User-facing messages for the categorized failures.
const (
	MsgVideoIDRequired = "Video ID is required"
	MsgDisabled        = "Transcripts are disabled for this video"
	MsgNotFound        = "No transcript available for this video"
	MsgUnavailable     = "Video not found or unavailable"
)

type AppError struct {
	Kind    Kind   `json:"-"`
	Message string `json:"error"`
	Op      string `json:"-"`
	Err     error  `json:"-"`
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func Usage(op string, message string) *AppError {
	return &AppError{
		Kind:    KindUsage,
		Message: message,
		Op:      op,
	}
}

func Disabled(op string, videoID string) *AppError {
	return &AppError{
		Kind:    KindDisabled,
		Message: fmt.Sprintf("subtitles are disabled for video %s", videoID),
		Op:      op,
	}
}

func NotFound(op string, err error, message string) *AppError {
	return &AppError{
		Kind:    KindNotFound,
		Message: message,
		Op:      op,
		Err:     err,
	}
}

func Unavailable(op string, videoID string) *AppError {
	return &AppError{
		Kind:    KindUnavailable,
		Message: fmt.Sprintf("video %s is no longer available", videoID),
		Op:      op,
	}
}

func Unknown(op string, err error, message string) *AppError {
	return &AppError{
		Kind:    KindUnknown,
		Message: message,
		Op:      op,
		Err:     err,
	}
}

// KindOf reports the kind of the first AppError in err's chain.
func KindOf(err error) Kind {
	var appErr *AppError
	if pkgerrors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindUnknown
}

// UserMessage maps err to the single message printed for it.
// Uncategorized errors pass their text through verbatim.
func UserMessage(err error) string {
	var appErr *AppError
	if !pkgerrors.As(err, &appErr) {
		return err.Error()
	}

	switch appErr.Kind {
	case KindUsage:
		return appErr.Message
	case KindDisabled:
		return MsgDisabled
	case KindNotFound:
		return MsgNotFound
	case KindUnavailable:
		return MsgUnavailable
	default:
		return err.Error()
	}
}
