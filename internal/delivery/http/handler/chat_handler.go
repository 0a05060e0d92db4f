package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/venuedate/venuedate-backend/internal/delivery/http/middleware"
	"github.com/venuedate/venuedate-backend/internal/usecase/chat"
)

type ChatHandler struct {
	chatUseCase *chat.ChatUseCase
}

func NewChatHandler(chatUseCase *chat.ChatUseCase) *ChatHandler {
	return &ChatHandler{chatUseCase: chatUseCase}
}

func (h *ChatHandler) Send(c *gin.Context) {
	var req chat.SendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "match_id and text required")
		return
	}
	msg, err := h.chatUseCase.Send(c.Request.Context(), middleware.UserID(c), &req)
	if err != nil {
		respondError(c, err)
		return
	}
	respondCreated(c, msg)
}

func (h *ChatHandler) Messages(c *gin.Context) {
	matchID := c.Param("match_id")
	if matchID == "" {
		respondBadRequest(c, "invalid match_id")
		return
	}
	resp, err := h.chatUseCase.Messages(c.Request.Context(), middleware.UserID(c), matchID)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, resp)
}

func (h *ChatHandler) List(c *gin.Context) {
	resp, err := h.chatUseCase.List(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, resp)
}
