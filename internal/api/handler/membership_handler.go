package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/thehex/board/internal/api/metrics"
	"github.com/thehex/board/internal/core/domain"
	"github.com/thehex/board/internal/core/ports"
)

type MembershipHandler struct {
	service ports.MembershipService
}

func NewMembershipHandler(service ports.MembershipService) *MembershipHandler {
	return &MembershipHandler{service: service}
}

// Join elevates the current account to member when the passcode matches.
//
// @Summary      Join the club
// @Tags         membership
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      membershipRequest  true  "Secret passcode"
// @Success      200   {object}  membershipResponse
// @Failure      401   {object}  map[string]string
// @Failure      409   {object}  map[string]string
// @Failure      422   {object}  map[string]string
// @Failure      503   {object}  map[string]string
// @Router       /membership [post]
func (h *MembershipHandler) Join(c echo.Context) error {
	viewer, err := requireViewer(c)
	if err != nil {
		return err
	}

	var req membershipRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	account, err := h.service.Elevate(c.Request().Context(), viewer, req.Passcode)
	metrics.ElevationAttemptsTotal.WithLabelValues(elevationResult(err)).Inc()
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, membershipResponse{
		Message: "welcome to the club",
		Account: toAccountResponse(account),
	})
}

func elevationResult(err error) string {
	switch {
	case err == nil:
		return "granted"
	case errors.Is(err, domain.ErrInvalidPasscode):
		return "rejected"
	case errors.Is(err, domain.ErrAlreadyMember):
		return "already_member"
	default:
		return "error"
	}
}
