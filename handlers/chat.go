package handlers

import (
	"net/http"

	"slotwise/models"
	"slotwise/services/scheduling"
	"slotwise/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ChatHandler serves the conversational scheduling endpoint.
type ChatHandler struct {
	Assistant scheduling.Assistant
}

func NewChatHandler(assistant scheduling.Assistant) *ChatHandler {
	return &ChatHandler{Assistant: assistant}
}

// HandleChat runs one conversation turn. Only malformed JSON is an HTTP error;
// every scheduling outcome, including failures, is a 200 with a reply.
func (h *ChatHandler) HandleChat(c *gin.Context) {
	logger := getLogger(c)

	var req models.ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, logger, http.StatusBadRequest, "Invalid request body", err.Error())
		return
	}

	resp := h.Assistant.HandleTurn(c.Request.Context(), req)
	logger.Debug("chat turn",
		zap.Bool("hadSuggestion", req.LastSuggested != nil),
		zap.Bool("suggested", resp.LastSuggested != nil),
	)
	c.JSON(http.StatusOK, resp)
}
