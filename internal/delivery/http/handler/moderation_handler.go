package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/venuedate/venuedate-backend/internal/delivery/http/middleware"
	"github.com/venuedate/venuedate-backend/internal/usecase/moderation"
)

type ModerationHandler struct {
	moderationUseCase *moderation.ModerationUseCase
}

func NewModerationHandler(moderationUseCase *moderation.ModerationUseCase) *ModerationHandler {
	return &ModerationHandler{moderationUseCase: moderationUseCase}
}

func (h *ModerationHandler) Block(c *gin.Context) {
	var req moderation.BlockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "target_user_id required")
		return
	}
	if err := h.moderationUseCase.Block(c.Request.Context(), middleware.UserID(c), &req); err != nil {
		respondError(c, err)
		return
	}
	respondMessage(c, "user blocked")
}

func (h *ModerationHandler) Unblock(c *gin.Context) {
	var req moderation.BlockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "target_user_id required")
		return
	}
	if err := h.moderationUseCase.Unblock(c.Request.Context(), middleware.UserID(c), &req); err != nil {
		respondError(c, err)
		return
	}
	respondMessage(c, "user unblocked")
}

func (h *ModerationHandler) Report(c *gin.Context) {
	var req moderation.ReportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "invalid request body: "+err.Error())
		return
	}
	report, err := h.moderationUseCase.Report(c.Request.Context(), middleware.UserID(c), &req)
	if err != nil {
		respondError(c, err)
		return
	}
	respondCreated(c, report)
}

func (h *ModerationHandler) ListReports(c *gin.Context) {
	reports, err := h.moderationUseCase.ListReports(c.Request.Context(), c.Query("status"))
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, gin.H{"reports": reports})
}

func (h *ModerationHandler) UpdateReport(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req moderation.UpdateReportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "invalid request body: "+err.Error())
		return
	}
	report, err := h.moderationUseCase.UpdateReport(c.Request.Context(), id, &req)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, report)
}
