package services

import (
	"fmt"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/yungbote/neurotutor-backend/internal/data/repos"
	types "github.com/yungbote/neurotutor-backend/internal/domain"
	"github.com/yungbote/neurotutor-backend/internal/domain/learning"
	"github.com/yungbote/neurotutor-backend/internal/generation"
	"github.com/yungbote/neurotutor-backend/internal/platform/apierr"
	"github.com/yungbote/neurotutor-backend/internal/platform/dbctx"
	"github.com/yungbote/neurotutor-backend/internal/platform/logger"
)

type CreateQuizInput struct {
	TopicID    uint
	Difficulty types.Difficulty
}

type SubmitQuizResultInput struct {
	QuizID  uint
	Score   int
	Answers []int
}

type QuizService interface {
	CreateQuiz(dbc dbctx.Context, p types.Principal, in CreateQuizInput) (*types.Quiz, error)
	// SubmitResult stores the caller's answers for one of their quizzes. The score is kept as submitted.
	SubmitResult(dbc dbctx.Context, p types.Principal, in SubmitQuizResultInput) (*types.QuizResult, error)
}

type quizService struct {
	db      *gorm.DB
	log     *logger.Logger
	topics  repos.TopicRepo
	quizzes repos.QuizRepo
	results repos.QuizResultRepo
	gen     generation.Client
}

func NewQuizService(
	db *gorm.DB,
	baseLog *logger.Logger,
	topicRepo repos.TopicRepo,
	quizRepo repos.QuizRepo,
	resultRepo repos.QuizResultRepo,
	gen generation.Client,
) QuizService {
	return &quizService{
		db:      db,
		log:     baseLog.With("service", "QuizService"),
		topics:  topicRepo,
		quizzes: quizRepo,
		results: resultRepo,
		gen:     gen,
	}
}

func (s *quizService) CreateQuiz(dbc dbctx.Context, p types.Principal, in CreateQuizInput) (*types.Quiz, error) {
	if !p.Valid() {
		return nil, apierr.Unauthorized(nil)
	}
	difficulty := in.Difficulty
	if difficulty == "" {
		difficulty = learning.DifficultyMedium
	}
	if !difficulty.Valid() {
		return nil, apierr.InvalidInput(apierr.FieldError{Field: "difficulty", Message: "must be one of easy, medium, hard"})
	}

	topic, err := s.topics.GetByIDForUser(dbc, p.UserID, in.TopicID)
	if err != nil {
		return nil, fmt.Errorf("load topic: %w", err)
	}
	if topic == nil {
		return nil, topicNotFound()
	}

	questions, err := s.gen.GenerateQuiz(dbc.Ctx, topic.Name, difficulty)
	if err != nil {
		return nil, err
	}

	quiz := &types.Quiz{
		TopicID:   topic.ID,
		UserID:    p.UserID,
		Questions: datatypes.NewJSONSlice(questions),
	}
	if _, err := s.quizzes.Create(dbc, []*types.Quiz{quiz}); err != nil {
		return nil, fmt.Errorf("create quiz: %w", err)
	}
	return quiz, nil
}

func (s *quizService) SubmitResult(dbc dbctx.Context, p types.Principal, in SubmitQuizResultInput) (*types.QuizResult, error) {
	if !p.Valid() {
		return nil, apierr.Unauthorized(nil)
	}
	quiz, err := s.quizzes.GetByIDForUser(dbc, p.UserID, in.QuizID)
	if err != nil {
		return nil, fmt.Errorf("load quiz: %w", err)
	}
	if quiz == nil {
		return nil, apierr.NotFoundCode("quiz_not_found", "quiz")
	}

	if fields := checkSubmission(len(quiz.Questions), in); len(fields) > 0 {
		return nil, apierr.InvalidInput(fields...)
	}

	result := &types.QuizResult{
		QuizID:  quiz.ID,
		UserID:  p.UserID,
		Score:   in.Score,
		Answers: datatypes.NewJSONSlice(append([]int(nil), in.Answers...)),
	}
	if _, err := s.results.Create(dbc, []*types.QuizResult{result}); err != nil {
		return nil, fmt.Errorf("create quiz result: %w", err)
	}
	return result, nil
}

func checkSubmission(questionCount int, in SubmitQuizResultInput) []apierr.FieldError {
	var fields []apierr.FieldError
	if len(in.Answers) != questionCount {
		fields = append(fields, apierr.FieldError{
			Field:   "answers",
			Message: fmt.Sprintf("must contain exactly %d answers", questionCount),
		})
	} else {
		for i, a := range in.Answers {
			if a < 0 || a >= learning.OptionsPerQuestion {
				fields = append(fields, apierr.FieldError{
					Field:   fmt.Sprintf("answers[%d]", i),
					Message: fmt.Sprintf("must be between 0 and %d", learning.OptionsPerQuestion-1),
				})
			}
		}
	}
	if in.Score < 0 || in.Score > questionCount {
		fields = append(fields, apierr.FieldError{
			Field:   "score",
			Message: fmt.Sprintf("must be between 0 and %d", questionCount),
		})
	}
	return fields
}
