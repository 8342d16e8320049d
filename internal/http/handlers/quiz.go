package handlers

import (
	"github.com/gin-gonic/gin"

	types "github.com/yungbote/neurotutor-backend/internal/domain"
	"github.com/yungbote/neurotutor-backend/internal/http/response"
	"github.com/yungbote/neurotutor-backend/internal/platform/apierr"
	"github.com/yungbote/neurotutor-backend/internal/platform/ctxutil"
	"github.com/yungbote/neurotutor-backend/internal/platform/dbctx"
	"github.com/yungbote/neurotutor-backend/internal/services"
)

type QuizHandler struct {
	quizzes services.QuizService
}

func NewQuizHandler(quizzes services.QuizService) *QuizHandler {
	return &QuizHandler{quizzes: quizzes}
}

type createQuizRequest struct {
	TopicID    uint   `json:"topicId" validate:"required"`
	Difficulty string `json:"difficulty" validate:"omitempty,oneof=easy medium hard"`
}

type submitQuizResultRequest struct {
	QuizID  uint  `json:"quizId" validate:"required"`
	Score   *int  `json:"score" validate:"required"`
	Answers []int `json:"answers" validate:"required"`
}

// POST /api/quizzes
func (h *QuizHandler) CreateQuiz(c *gin.Context) {
	p, ok := ctxutil.GetPrincipal(c.Request.Context())
	if !ok {
		response.RespondAPIError(c, apierr.Unauthorized(nil))
		return
	}
	var req createQuizRequest
	if err := bindJSON(c, &req); err != nil {
		response.RespondAPIError(c, err)
		return
	}
	quiz, err := h.quizzes.CreateQuiz(dbctx.Context{Ctx: c.Request.Context()}, p, services.CreateQuizInput{
		TopicID:    req.TopicID,
		Difficulty: types.Difficulty(req.Difficulty),
	})
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondOK(c, quiz)
}

// POST /api/quiz-results
func (h *QuizHandler) SubmitResult(c *gin.Context) {
	p, ok := ctxutil.GetPrincipal(c.Request.Context())
	if !ok {
		response.RespondAPIError(c, apierr.Unauthorized(nil))
		return
	}
	var req submitQuizResultRequest
	if err := bindJSON(c, &req); err != nil {
		response.RespondAPIError(c, err)
		return
	}
	result, err := h.quizzes.SubmitResult(dbctx.Context{Ctx: c.Request.Context()}, p, services.SubmitQuizResultInput{
		QuizID:  req.QuizID,
		Score:   *req.Score,
		Answers: req.Answers,
	})
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondOK(c, result)
}
