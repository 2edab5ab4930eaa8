package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/johnquangdev/team-assistant/errors"
	assistantdto "github.com/johnquangdev/team-assistant/internal/adapter/dto/assistant"
	"github.com/johnquangdev/team-assistant/internal/adapter/presenter"
	"github.com/johnquangdev/team-assistant/internal/usecase/assistant"
)

// Assistant handles question answering endpoints
type Assistant struct {
	service *assistant.Service
	logger  *zap.Logger
}

// NewAssistantHandler creates the assistant handler
func NewAssistantHandler(service *assistant.Service, logger *zap.Logger) *Assistant {
	return &Assistant{
		service: service,
		logger:  logger,
	}
}

// Ask classifies and answers a question
// POST /v1/assistant/ask
func (h *Assistant) Ask(c echo.Context) error {
	var req assistantdto.AskRequest
	if err := c.Bind(&req); err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidArgument("invalid request body"))
	}
	if err := c.Validate(&req); err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidArgument(err.Error()))
	}

	answer, err := h.service.Ask(c.Request().Context(), req.SessionID, req.Question)
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	return HandleSuccess(h.logger, c, http.StatusOK, presenter.ToAskResponse(answer))
}
