package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/venuedate/venuedate-backend/internal/delivery/http/middleware"
	"github.com/venuedate/venuedate-backend/internal/usecase/discover"
)

type DiscoverHandler struct {
	discoverUseCase *discover.DiscoverUseCase
}

func NewDiscoverHandler(discoverUseCase *discover.DiscoverUseCase) *DiscoverHandler {
	return &DiscoverHandler{discoverUseCase: discoverUseCase}
}

func (h *DiscoverHandler) Candidates(c *gin.Context) {
	resp, err := h.discoverUseCase.Candidates(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, resp)
}
