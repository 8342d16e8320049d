package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/yungbote/neurotutor-backend/internal/http/response"
	"github.com/yungbote/neurotutor-backend/internal/platform/apierr"
	"github.com/yungbote/neurotutor-backend/internal/platform/ctxutil"
	"github.com/yungbote/neurotutor-backend/internal/platform/dbctx"
	"github.com/yungbote/neurotutor-backend/internal/services"
)

type TopicHandler struct {
	topics services.TopicService
}

func NewTopicHandler(topics services.TopicService) *TopicHandler {
	return &TopicHandler{topics: topics}
}

type createTopicRequest struct {
	Name        string `json:"name" validate:"notblank"`
	Description string `json:"description" validate:"notblank"`
}

// POST /api/topics
func (h *TopicHandler) CreateTopic(c *gin.Context) {
	p, ok := ctxutil.GetPrincipal(c.Request.Context())
	if !ok {
		response.RespondAPIError(c, apierr.Unauthorized(nil))
		return
	}
	var req createTopicRequest
	if err := bindJSON(c, &req); err != nil {
		response.RespondAPIError(c, err)
		return
	}
	topic, err := h.topics.CreateTopic(dbctx.Context{Ctx: c.Request.Context()}, p, services.CreateTopicInput{
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondOK(c, topic)
}

// GET /api/topics
func (h *TopicHandler) ListTopics(c *gin.Context) {
	p, ok := ctxutil.GetPrincipal(c.Request.Context())
	if !ok {
		response.RespondAPIError(c, apierr.Unauthorized(nil))
		return
	}
	topics, err := h.topics.ListTopics(dbctx.Context{Ctx: c.Request.Context()}, p)
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondOK(c, topics)
}

// DELETE /api/topics/:id
func (h *TopicHandler) DeleteTopic(c *gin.Context) {
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
	if err := h.topics.DeleteTopic(dbctx.Context{Ctx: c.Request.Context()}, p, topicID); err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"message": "Topic deleted successfully"})
}
