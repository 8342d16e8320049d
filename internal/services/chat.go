package services

import (
	"fmt"
	"strings"

	"github.com/yungbote/neurotutor-backend/internal/data/repos"
	types "github.com/yungbote/neurotutor-backend/internal/domain"
	"github.com/yungbote/neurotutor-backend/internal/generation"
	"github.com/yungbote/neurotutor-backend/internal/platform/apierr"
	"github.com/yungbote/neurotutor-backend/internal/platform/dbctx"
	"github.com/yungbote/neurotutor-backend/internal/platform/logger"
)

type PostChatInput struct {
	TopicID uint
	Message string
}

type ChatService interface {
	// PostMessage stores the caller's message, asks the tutor with the prior conversation as
	// context and stores the reply. The caller's message is kept when the tutor call fails.
	PostMessage(dbc dbctx.Context, p types.Principal, in PostChatInput) (*types.ChatMessage, error)
	ListHistory(dbc dbctx.Context, p types.Principal, topicID uint) ([]*types.ChatMessage, error)
}

type chatService struct {
	log      *logger.Logger
	topics   repos.TopicRepo
	messages repos.ChatMessageRepo
	gen      generation.Client
}

func NewChatService(
	baseLog *logger.Logger,
	topicRepo repos.TopicRepo,
	messageRepo repos.ChatMessageRepo,
	gen generation.Client,
) ChatService {
	return &chatService{
		log:      baseLog.With("service", "ChatService"),
		topics:   topicRepo,
		messages: messageRepo,
		gen:      gen,
	}
}

func (s *chatService) PostMessage(dbc dbctx.Context, p types.Principal, in PostChatInput) (*types.ChatMessage, error) {
	if !p.Valid() {
		return nil, apierr.Unauthorized(nil)
	}
	text := strings.TrimSpace(in.Message)
	if text == "" {
		return nil, apierr.InvalidInput(apierr.FieldError{Field: "message", Message: "is required"})
	}

	topic, err := s.topics.GetByIDForUser(dbc, p.UserID, in.TopicID)
	if err != nil {
		return nil, fmt.Errorf("load topic: %w", err)
	}
	if topic == nil {
		return nil, topicNotFound()
	}

	prior, err := s.messages.ListByUserTopic(dbc, p.UserID, topic.ID)
	if err != nil {
		return nil, fmt.Errorf("load chat history: %w", err)
	}
	history := make([]generation.Message, 0, len(prior))
	for _, m := range prior {
		history = append(history, generation.Message{Role: generation.Role(m.Role()), Content: m.Message})
	}

	human := &types.ChatMessage{UserID: p.UserID, TopicID: topic.ID, Message: text, IsAI: false}
	if _, err := s.messages.Create(dbc, []*types.ChatMessage{human}); err != nil {
		return nil, fmt.Errorf("store message: %w", err)
	}

	reply, err := s.gen.GetTutorResponse(dbc.Ctx, text, topic.Name, history)
	if err != nil {
		return nil, err
	}

	ai := &types.ChatMessage{UserID: p.UserID, TopicID: topic.ID, Message: reply, IsAI: true}
	if _, err := s.messages.Create(dbc, []*types.ChatMessage{ai}); err != nil {
		return nil, fmt.Errorf("store tutor reply: %w", err)
	}
	return ai, nil
}

func (s *chatService) ListHistory(dbc dbctx.Context, p types.Principal, topicID uint) ([]*types.ChatMessage, error) {
	if !p.Valid() {
		return nil, apierr.Unauthorized(nil)
	}
	topic, err := s.topics.GetByIDForUser(dbc, p.UserID, topicID)
	if err != nil {
		return nil, fmt.Errorf("load topic: %w", err)
	}
	if topic == nil {
		return nil, topicNotFound()
	}
	out, err := s.messages.ListByUserTopic(dbc, p.UserID, topic.ID)
	if err != nil {
		return nil, fmt.Errorf("load chat history: %w", err)
	}
	return out, nil
}
