package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/yungbote/neurotutor-backend/internal/http/response"
	"github.com/yungbote/neurotutor-backend/internal/platform/apierr"
	"github.com/yungbote/neurotutor-backend/internal/platform/ctxutil"
	"github.com/yungbote/neurotutor-backend/internal/platform/dbctx"
	"github.com/yungbote/neurotutor-backend/internal/services"
)

type ChatHandler struct {
	chat services.ChatService
}

func NewChatHandler(chat services.ChatService) *ChatHandler {
	return &ChatHandler{chat: chat}
}

type postChatRequest struct {
	TopicID uint   `json:"topicId" validate:"required"`
	Message string `json:"message" validate:"notblank"`
}

// POST /api/chat
func (h *ChatHandler) PostMessage(c *gin.Context) {
	p, ok := ctxutil.GetPrincipal(c.Request.Context())
	if !ok {
		response.RespondAPIError(c, apierr.Unauthorized(nil))
		return
	}
	var req postChatRequest
	if err := bindJSON(c, &req); err != nil {
		response.RespondAPIError(c, err)
		return
	}
	reply, err := h.chat.PostMessage(dbctx.Context{Ctx: c.Request.Context()}, p, services.PostChatInput{
		TopicID: req.TopicID,
		Message: req.Message,
	})
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondOK(c, reply)
}

// GET /api/topics/:id/chat
func (h *ChatHandler) ListHistory(c *gin.Context) {
	p, ok := ctxutil.GetPrincipal(c.Request.Context())
	if !ok {
		response.RespondAPIError(c, apierr.Unauthorized(nil))
		return
	}
	topicID, err := parseIDParam(c, "id")
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	history, err := h.chat.ListHistory(dbctx.Context{Ctx: c.Request.Context()}, p, topicID)
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondOK(c, history)
}
