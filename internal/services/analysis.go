package services

import (
	"fmt"

	"github.com/yungbote/neurotutor-backend/internal/data/repos"
	types "github.com/yungbote/neurotutor-backend/internal/domain"
	"github.com/yungbote/neurotutor-backend/internal/generation"
	"github.com/yungbote/neurotutor-backend/internal/platform/apierr"
	"github.com/yungbote/neurotutor-backend/internal/platform/dbctx"
	"github.com/yungbote/neurotutor-backend/internal/platform/logger"
)

type AnalysisService interface {
	// GetAnalysis summarizes the caller's quiz results. With no results it returns an empty
	// analysis without calling the generation service.
	GetAnalysis(dbc dbctx.Context, p types.Principal) (*types.WeaknessAnalysis, error)
}

type analysisService struct {
	log     *logger.Logger
	quizzes repos.QuizRepo
	results repos.QuizResultRepo
	gen     generation.Client
}

func NewAnalysisService(
	baseLog *logger.Logger,
	quizRepo repos.QuizRepo,
	resultRepo repos.QuizResultRepo,
	gen generation.Client,
) AnalysisService {
	return &analysisService{
		log:     baseLog.With("service", "AnalysisService"),
		quizzes: quizRepo,
		results: resultRepo,
		gen:     gen,
	}
}

func (s *analysisService) GetAnalysis(dbc dbctx.Context, p types.Principal) (*types.WeaknessAnalysis, error) {
	if !p.Valid() {
		return nil, apierr.Unauthorized(nil)
	}
	results, err := s.results.ListByUser(dbc, p.UserID)
	if err != nil {
		return nil, fmt.Errorf("list quiz results: %w", err)
	}
	if len(results) == 0 {
		return &types.WeaknessAnalysis{WeakAreas: map[string]string{}, Recommendations: []string{}}, nil
	}

	seen := make(map[uint]struct{}, len(results))
	quizIDs := make([]uint, 0, len(results))
	for _, r := range results {
		if _, ok := seen[r.QuizID]; ok {
			continue
		}
		seen[r.QuizID] = struct{}{}
		quizIDs = append(quizIDs, r.QuizID)
	}
	quizzes, err := s.quizzes.GetByIDs(dbc, quizIDs)
	if err != nil {
		return nil, fmt.Errorf("load quizzes: %w", err)
	}
	byID := make(map[uint]*types.Quiz, len(quizzes))
	for _, q := range quizzes {
		byID[q.ID] = q
	}

	input := make([]types.ResultWithQuiz, 0, len(results))
	for _, r := range results {
		row := types.ResultWithQuiz{
			QuizID:  r.QuizID,
			Score:   r.Score,
			Answers: []int(r.Answers),
		}
		if q := byID[r.QuizID]; q != nil {
			row.Questions = []types.Question(q.Questions)
			if q.Topic != nil {
				row.TopicName = q.Topic.Name
			}
		}
		input = append(input, row)
	}

	return s.gen.AnalyzeWeakness(dbc.Ctx, input)
}
