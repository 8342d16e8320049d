package services

import (
	"errors"
	"fmt"
	"strings"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/yungbote/neurotutor-backend/internal/data/repos"
	types "github.com/yungbote/neurotutor-backend/internal/domain"
	"github.com/yungbote/neurotutor-backend/internal/generation"
	"github.com/yungbote/neurotutor-backend/internal/platform/apierr"
	"github.com/yungbote/neurotutor-backend/internal/platform/dbctx"
	"github.com/yungbote/neurotutor-backend/internal/platform/logger"
)

type CreateTopicInput struct {
	Name        string
	Description string
}

type TopicService interface {
	CreateTopic(dbc dbctx.Context, p types.Principal, in CreateTopicInput) (*types.Topic, error)
	ListTopics(dbc dbctx.Context, p types.Principal) ([]*types.Topic, error)
	// DeleteTopic removes the topic with its chat history, quiz results and quizzes in one transaction.
	DeleteTopic(dbc dbctx.Context, p types.Principal, topicID uint) error
}

type topicService struct {
	db       *gorm.DB
	log      *logger.Logger
	users    repos.UserRepo
	topics   repos.TopicRepo
	quizzes  repos.QuizRepo
	results  repos.QuizResultRepo
	messages repos.ChatMessageRepo
	gen      generation.Client
}

func NewTopicService(
	db *gorm.DB,
	baseLog *logger.Logger,
	userRepo repos.UserRepo,
	topicRepo repos.TopicRepo,
	quizRepo repos.QuizRepo,
	resultRepo repos.QuizResultRepo,
	messageRepo repos.ChatMessageRepo,
	gen generation.Client,
) TopicService {
	return &topicService{
		db:       db,
		log:      baseLog.With("service", "TopicService"),
		users:    userRepo,
		topics:   topicRepo,
		quizzes:  quizRepo,
		results:  resultRepo,
		messages: messageRepo,
		gen:      gen,
	}
}

func topicNotFound() error {
	return apierr.NotFoundCode("topic_not_found", "topic")
}

func (s *topicService) CreateTopic(dbc dbctx.Context, p types.Principal, in CreateTopicInput) (*types.Topic, error) {
	if !p.Valid() {
		return nil, apierr.Unauthorized(nil)
	}
	name := strings.TrimSpace(in.Name)
	description := strings.TrimSpace(in.Description)

	goal := description
	users, err := s.users.GetByIDs(dbc, []uint{p.UserID})
	if err != nil {
		return nil, fmt.Errorf("load user: %w", err)
	}
	if len(users) == 0 {
		return nil, apierr.Unauthorized(errors.New("user no longer exists"))
	}
	if g := strings.TrimSpace(users[0].LearningGoals); g != "" {
		goal = g
	}

	curriculum, err := s.gen.GenerateCurriculum(dbc.Ctx, name, goal)
	if err != nil {
		return nil, err
	}

	topic := &types.Topic{
		UserID:      p.UserID,
		Name:        name,
		Description: description,
		Curriculum:  datatypes.NewJSONType(*curriculum),
	}
	if _, err := s.topics.Create(dbc, []*types.Topic{topic}); err != nil {
		return nil, fmt.Errorf("create topic: %w", err)
	}
	s.log.Debug("Topic created", "topic_id", topic.ID, "sections", len(curriculum.Sections))
	return topic, nil
}

func (s *topicService) ListTopics(dbc dbctx.Context, p types.Principal) ([]*types.Topic, error) {
	if !p.Valid() {
		return nil, apierr.Unauthorized(nil)
	}
	out, err := s.topics.ListByUser(dbc, p.UserID)
	if err != nil {
		return nil, fmt.Errorf("list topics: %w", err)
	}
	return out, nil
}

func (s *topicService) DeleteTopic(dbc dbctx.Context, p types.Principal, topicID uint) error {
	if !p.Valid() {
		return apierr.Unauthorized(nil)
	}
	run := func(tx *gorm.DB) error {
		txc := dbctx.Context{Ctx: dbc.Ctx, Tx: tx}
		topic, err := s.topics.GetByIDForUser(txc, p.UserID, topicID)
		if err != nil {
			return fmt.Errorf("load topic: %w", err)
		}
		if topic == nil {
			return topicNotFound()
		}
		if err := s.messages.DeleteByTopicID(txc, topicID); err != nil {
			return fmt.Errorf("delete chat history: %w", err)
		}
		if err := s.results.DeleteByTopicID(txc, topicID); err != nil {
			return fmt.Errorf("delete quiz results: %w", err)
		}
		if err := s.quizzes.DeleteByTopicID(txc, topicID); err != nil {
			return fmt.Errorf("delete quizzes: %w", err)
		}
		if err := s.topics.DeleteByID(txc, topicID); err != nil {
			return fmt.Errorf("delete topic: %w", err)
		}
		return nil
	}
	if dbc.Tx != nil {
		return run(dbc.Tx)
	}
	return s.db.WithContext(dbc.Ctx).Transaction(run)
}
