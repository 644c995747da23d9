package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	roastUC "github.com/chirraaggggg/github-roaster/internal/application/usecase/roast"
	"github.com/chirraaggggg/github-roaster/pkg/apperror"
	"github.com/chirraaggggg/github-roaster/pkg/logger"
)

type RoastHandler struct {
	roastUseCase *roastUC.RoastUseCase
	logger       logger.Logger
}

func NewRoastHandler(uc *roastUC.RoastUseCase, log logger.Logger) *RoastHandler {
	return &RoastHandler{
		roastUseCase: uc,
		logger:       log,
	}
}

// Roast handles POST /api/roast: fetch (or reuse) the profile for the
// requested username and generate a roast.
func (h *RoastHandler) Roast(c *gin.Context) {
	sessionID, ok := GetSessionIDFromGinContext(c)
	if !ok {
		c.Error(apperror.NewInternal("sessionID not found in context", nil))
		return
	}

	var req RoastRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.NewInvalidInput("invalid JSON body", err))
		return
	}

	input := roastUC.RoastInput{
		SessionID: sessionID,
		Username:  req.Username,
	}

	output, err := h.roastUseCase.GetRoast(c.Request.Context(), input)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, RoastResponse{
		Profile:  ToProfileDTO(output.Profile),
		Roast:    output.Roast,
		CacheHit: output.CacheHit,
	})
}

// NewRoast handles POST /api/roast/new: another roast for the profile
// already cached in this session, without refetching it.
func (h *RoastHandler) NewRoast(c *gin.Context) {
	sessionID, ok := GetSessionIDFromGinContext(c)
	if !ok {
		c.Error(apperror.NewInternal("sessionID not found in context", nil))
		return
	}

	roast, err := h.roastUseCase.GetNewRoast(c.Request.Context(), sessionID)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, NewRoastResponse{Roast: roast})
}
