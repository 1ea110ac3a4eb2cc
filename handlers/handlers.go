package handlers

import (
	"context"
	"io"

	"github.com/google/uuid"
	apperrors "github.com/nijaru/yt-transcript/errors"
	"github.com/nijaru/yt-transcript/models"
	"github.com/nijaru/yt-transcript/utils"
	"github.com/nijaru/yt-transcript/validation"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// Fetcher returns the transcript of a single video.
type Fetcher interface {
	Fetch(ctx context.Context, videoID string) (*models.TranscriptResult, error)
}

// NewRootCommand builds the command that prints the transcript of the
// video named by its first argument. Flag parsing is off so ids that
// start with a dash reach the fetcher untouched; extra arguments are
// ignored. The result echoes the argument as given, even when it was a
// URL resolved to a video id.
func NewRootCommand(svc Fetcher) *cobra.Command {
	return &cobra.Command{
		Use:   "yt-transcript <videoId>",
		Short: "Print the transcript of a YouTube video as JSON",
		Example: `  yt-transcript dQw4w9WgXcQ
  yt-transcript "https://www.youtube.com/watch?v=dQw4w9WgXcQ"`,
		Args:               requireVideoID,
		DisableFlagParsing: true,
		SilenceErrors:      true,
		SilenceUsage:       true,
		RunE: func(cmd *cobra.Command, args []string) error {
			args = commandArgs(args)
			videoID := validation.ExtractVideoID(args[0])

			logger := logrus.WithField("video_id", videoID)
			if runID, ok := cmd.Context().Value(runIDKey{}).(string); ok {
				logger = logger.WithField("run_id", runID)
			}
			logger.Info("Received transcript request")

			result, err := svc.Fetch(cmd.Context(), videoID)
			if err != nil {
				return err
			}
			result.VideoID = args[0]

			if err := utils.WriteJSON(cmd.OutOrStdout(), result); err != nil {
				logger.WithError(err).Error("Failed to write transcript")
				return err
			}
			logger.Info("Transcript written")
			return nil
		},
	}
}

type runIDKey struct{}

// Execute runs the root command against args and returns the process
// exit code. Every failure becomes a single {"error": ...} line on stderr.
func Execute(ctx context.Context, svc Fetcher, args []string, stdout, stderr io.Writer) int {
	runID := uuid.NewString()
	logger := logrus.WithField("run_id", runID)

	// The leading "--" keeps cobra from matching the video id against its
	// built-in help and __complete commands.
	cmd := NewRootCommand(svc)
	cmd.SetArgs(append([]string{argsTerminator}, args...))
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	err := cmd.ExecuteContext(context.WithValue(ctx, runIDKey{}, runID))
	if err == nil {
		return 0
	}

	message := apperrors.UserMessage(err)
	logger.WithError(err).WithField("kind", apperrors.KindOf(err).String()).Error("Transcript request failed")

	if werr := utils.WriteError(stderr, message); werr != nil {
		logger.WithError(werr).Error("Failed to write error response")
	}
	return 1
}

const argsTerminator = "--"

// commandArgs drops the terminator Execute puts in front of the
// arguments. Only one is dropped, so a literal "--" argument survives.
func commandArgs(args []string) []string {
	if len(args) > 0 && args[0] == argsTerminator {
		return args[1:]
	}
	return args
}

func requireVideoID(cmd *cobra.Command, args []string) error {
	if len(commandArgs(args)) == 0 {
		return apperrors.Usage("handlers.requireVideoID", apperrors.MsgVideoIDRequired)
	}
	return nil
}
