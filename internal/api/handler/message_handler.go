package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/thehex/board/internal/api/metrics"
	"github.com/thehex/board/internal/core/ports"
)

// MessageHandler serves the board feed and message submission.
type MessageHandler struct {
	service ports.MessageService
}

func NewMessageHandler(service ports.MessageService) *MessageHandler {
	return &MessageHandler{service: service}
}

// List returns every message, newest first. Author names are included only
// for members.
//
// @Summary      List messages
// @Tags         messages
// @Produce      json
// @Security     BearerAuth
// @Success      200   {object}  feedResponse
// @Failure      401   {object}  map[string]string
// @Failure      503   {object}  map[string]string
// @Router       /messages [get]
func (h *MessageHandler) List(c echo.Context) error {
	viewer := ctxViewer(c)

	feed, err := h.service.List(c.Request().Context(), viewer)
	if err != nil {
		return err
	}

	viewerKind := "non_member"
	switch {
	case viewer.Anonymous():
		viewerKind = "anonymous"
	case feed.ViewerIsMember:
		viewerKind = "member"
	}
	metrics.FeedReadsTotal.WithLabelValues(feed.Mode.String(), viewerKind).Inc()

	return c.JSON(http.StatusOK, feedResponse{
		ViewerIsMember: feed.ViewerIsMember,
		Mode:           feed.Mode.String(),
		Messages:       feed.Messages,
	})
}

// Create posts a new message authored by the current account.
//
// @Summary      Post a message
// @Tags         messages
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createMessageRequest  true  "Title and content"
// @Success      201   {object}  messageResponse
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Failure      422   {object}  map[string]string
// @Failure      503   {object}  map[string]string
// @Router       /messages [post]
func (h *MessageHandler) Create(c echo.Context) error {
	viewer, err := requireViewer(c)
	if err != nil {
		return err
	}

	var req createMessageRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	msg, err := h.service.Post(c.Request().Context(), viewer, req.Title, req.Content)
	if err != nil {
		return err
	}
	metrics.MessagesPostedTotal.Inc()

	c.Response().Header().Set(echo.HeaderLocation, "/v1/messages")
	return c.JSON(http.StatusCreated, messageResponse{
		ID:        msg.ID,
		Title:     msg.Title,
		Content:   msg.Content,
		CreatedAt: msg.CreatedAt,
	})
}
