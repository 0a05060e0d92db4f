package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/venuedate/venuedate-backend/internal/delivery/http/middleware"
	"github.com/venuedate/venuedate-backend/internal/usecase/match"
	"github.com/venuedate/venuedate-backend/internal/usecase/swipe"
)

type SwipeHandler struct {
	swipeUseCase *swipe.SwipeUseCase
	matchUseCase *match.MatchUseCase
}

func NewSwipeHandler(swipeUseCase *swipe.SwipeUseCase, matchUseCase *match.MatchUseCase) *SwipeHandler {
	return &SwipeHandler{swipeUseCase: swipeUseCase, matchUseCase: matchUseCase}
}

func (h *SwipeHandler) Left(c *gin.Context) {
	var req swipe.SwipeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "target_user_id required")
		return
	}
	if err := h.swipeUseCase.Left(c.Request.Context(), middleware.UserID(c), &req); err != nil {
		respondError(c, err)
		return
	}
	respondMessage(c, "passed")
}

func (h *SwipeHandler) Right(c *gin.Context) {
	var req swipe.SwipeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "target_user_id required")
		return
	}
	resp, err := h.swipeUseCase.Right(c.Request.Context(), middleware.UserID(c), &req)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, resp)
}

func (h *SwipeHandler) Matches(c *gin.Context) {
	resp, err := h.matchUseCase.List(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, resp)
}

func (h *SwipeHandler) AllMatches(c *gin.Context) {
	resp, err := h.matchUseCase.ListAll(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, resp)
}
