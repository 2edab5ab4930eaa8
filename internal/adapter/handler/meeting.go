package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/johnquangdev/team-assistant/errors"
	meetingdto "github.com/johnquangdev/team-assistant/internal/adapter/dto/meeting"
	"github.com/johnquangdev/team-assistant/internal/adapter/presenter"
	"github.com/johnquangdev/team-assistant/internal/domain/repositories"
	"github.com/johnquangdev/team-assistant/internal/usecase/workflow"
)

// Transcriber turns an audio URL into transcript text. Satisfied by
// ingest.Service; nil means audio ingest is disabled.
type Transcriber interface {
	TranscribeFromURL(ctx context.Context, audioURL string) (string, error)
}

// Meeting handles transcript processing endpoints
type Meeting struct {
	engine      *workflow.Engine
	transcriber Transcriber
	runs        repositories.RunRepository
	logger      *zap.Logger
}

// NewMeetingHandler creates the meeting handler
func NewMeetingHandler(engine *workflow.Engine, transcriber Transcriber, runs repositories.RunRepository, logger *zap.Logger) *Meeting {
	return &Meeting{
		engine:      engine,
		transcriber: transcriber,
		runs:        runs,
		logger:      logger,
	}
}

// Process runs a raw transcript through the workflow
// POST /v1/meetings/process
func (h *Meeting) Process(c echo.Context) error {
	var req meetingdto.ProcessTranscriptRequest
	if err := c.Bind(&req); err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidArgument("invalid request body"))
	}
	if err := c.Validate(&req); err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidArgument(err.Error()))
	}

	source := req.Source
	if source == "" {
		source = "upload"
	}

	report, err := h.engine.Process(c.Request().Context(), req.Transcript, source, h.meetingDate(req.MeetingDate, req.Transcript))
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	return HandleSuccess(h.logger, c, http.StatusOK, presenter.ToReportResponse(report))
}

// Ingest transcribes a recording and runs the transcript through the
// workflow
// POST /v1/meetings/ingest
func (h *Meeting) Ingest(c echo.Context) error {
	if h.transcriber == nil {
		return HandleError(h.logger, c, errors.ErrInvalidArgument("audio ingest is not configured"))
	}

	var req meetingdto.IngestAudioRequest
	if err := c.Bind(&req); err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidArgument("invalid request body"))
	}
	if err := c.Validate(&req); err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidArgument(err.Error()))
	}

	transcript, err := h.transcriber.TranscribeFromURL(c.Request().Context(), req.AudioURL)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	report, err := h.engine.Process(c.Request().Context(), transcript, "audio", h.meetingDate(req.MeetingDate, transcript))
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	return HandleSuccess(h.logger, c, http.StatusOK, presenter.ToReportResponse(report))
}

// GetRun returns the stored status of one workflow run
// GET /v1/runs/:id
func (h *Meeting) GetRun(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidArgument("invalid run id"))
	}

	run, err := h.runs.FindByID(c.Request().Context(), id)
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	return HandleSuccess(h.logger, c, http.StatusOK, presenter.ToRunStatusResponse(run))
}

// meetingDate prefers an explicit request date, then the transcript header,
// then zero (the engine substitutes the run start time)
func (h *Meeting) meetingDate(explicit, transcript string) time.Time {
	if explicit != "" {
		if t, err := time.Parse("2006-01-02", explicit); err == nil {
			return t
		}
	}
	return workflow.ExtractMeetingDate(transcript)
}
