// Package ingest turns meeting audio into a transcript via AssemblyAI.
// Submission and polling happen inline; the caller feeds the resulting text
// straight into the workflow engine.
package ingest

import (
	"context"
	"fmt"
	"strings"
	"time"

	aai "github.com/AssemblyAI/assemblyai-go-sdk"
	backoff "github.com/cenkalti/backoff/v4"
	"go.uber.org/zap"

	apperrors "github.com/johnquangdev/team-assistant/errors"
	"github.com/johnquangdev/team-assistant/pkg/config"
)

// Service wraps the AssemblyAI SDK client
type Service struct {
	client       *aai.Client
	pollInterval time.Duration
	pollTimeout  time.Duration
	logger       *zap.Logger
}

// NewService creates the ingest service. Returns nil when no API key is
// configured; callers treat a nil service as "audio ingest disabled".
func NewService(cfg *config.AssemblyConfig, logger *zap.Logger) *Service {
	if cfg.APIKey == "" {
		return nil
	}
	return &Service{
		client:       aai.NewClient(cfg.APIKey),
		pollInterval: cfg.PollInterval,
		pollTimeout:  cfg.PollTimeout,
		logger:       logger,
	}
}

// TranscribeFromURL submits the audio and polls until the transcript is
// ready. Speaker labels are requested so the transcript keeps its turn
// structure for downstream chunking.
func (s *Service) TranscribeFromURL(ctx context.Context, audioURL string) (string, error) {
	params := &aai.TranscriptOptionalParams{
		SpeakerLabels: aai.Bool(true),
	}

	s.logger.Info("🎙️ Starting transcription", zap.String("audio_url", audioURL))

	// Submission is retried on transient failures; resubmitting the same URL
	// just creates a fresh job, so retries are safe.
	var submitted aai.Transcript
	submitFn := func() error {
		var err error
		submitted, err = s.client.Transcripts.SubmitFromURL(ctx, audioURL, params)
		return err
	}
	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = time.Second
	if err := backoff.Retry(submitFn, backoff.WithContext(backoff.WithMaxRetries(bo, 3), ctx)); err != nil {
		return "", apperrors.ErrIngestFailed(err)
	}
	if submitted.ID == nil {
		return "", apperrors.ErrIngestFailed(fmt.Errorf("no transcript id returned"))
	}
	transcriptID := *submitted.ID

	pollCtx, cancel := context.WithTimeout(ctx, s.pollTimeout)
	defer cancel()

	ticker := time.NewTicker(s.pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-pollCtx.Done():
			return "", apperrors.ErrIngestFailed(fmt.Errorf("transcription %s timed out: %w", transcriptID, pollCtx.Err()))
		case <-ticker.C:
		}

		transcript, err := s.client.Transcripts.Get(pollCtx, transcriptID)
		if err != nil {
			// Transient API errors keep polling until the timeout decides.
			s.logger.Warn("⚠️ Transcript poll failed",
				zap.String("transcript_id", transcriptID),
				zap.Error(err),
			)
			continue
		}

		switch transcript.Status {
		case aai.TranscriptStatusCompleted:
			s.logger.Info("✅ Transcription completed",
				zap.String("transcript_id", transcriptID),
			)
			return renderTranscript(&transcript), nil

		case aai.TranscriptStatusError:
			msg := "transcription failed"
			if transcript.Error != nil {
				msg = *transcript.Error
			}
			return "", apperrors.ErrIngestFailed(fmt.Errorf("%s", msg))

		case aai.TranscriptStatusQueued, aai.TranscriptStatusProcessing:
			continue
		}
	}
}

// renderTranscript prefers speaker-labelled utterances so the output reads
// like a meeting transcript rather than one block of text
func renderTranscript(transcript *aai.Transcript) string {
	if len(transcript.Utterances) > 0 {
		var sb strings.Builder
		for _, u := range transcript.Utterances {
			speaker := "Speaker"
			if u.Speaker != nil {
				speaker = "Speaker " + *u.Speaker
			}
			text := ""
			if u.Text != nil {
				text = *u.Text
			}
			fmt.Fprintf(&sb, "%s: %s\n", speaker, text)
		}
		return strings.TrimSpace(sb.String())
	}
	if transcript.Text != nil {
		return *transcript.Text
	}
	return ""
}
