package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/yungbote/neurotutor-backend/internal/data/repos"
	"github.com/yungbote/neurotutor-backend/internal/data/repos/testutil"
	types "github.com/yungbote/neurotutor-backend/internal/domain"
	"github.com/yungbote/neurotutor-backend/internal/generation"
	"github.com/yungbote/neurotutor-backend/internal/platform/dbctx"
	"github.com/yungbote/neurotutor-backend/internal/platform/logger"
)

type testEnv struct {
	db       *gorm.DB
	log      *logger.Logger
	provider *generation.MockProvider

	users    repos.UserRepo
	sessions repos.UserSessionRepo
	topics   repos.TopicRepo
	quizzes  repos.QuizRepo
	results  repos.QuizResultRepo
	messages repos.ChatMessageRepo

	topicSvc    TopicService
	quizSvc     QuizService
	analysisSvc AnalysisService
	chatSvc     ChatService
	userSvc     UserService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	db := testutil.DB(t)
	log := testutil.Logger(t)
	provider := generation.NewMockProvider()
	gen, err := generation.NewGenerator(provider, log)
	require.NoError(t, err)

	env := &testEnv{
		db:       db,
		log:      log,
		provider: provider,
		users:    repos.NewUserRepo(db, log),
		sessions: repos.NewUserSessionRepo(db, log),
		topics:   repos.NewTopicRepo(db, log),
		quizzes:  repos.NewQuizRepo(db, log),
		results:  repos.NewQuizResultRepo(db, log),
		messages: repos.NewChatMessageRepo(db, log),
	}
	env.topicSvc = NewTopicService(db, log, env.users, env.topics, env.quizzes, env.results, env.messages, gen)
	env.quizSvc = NewQuizService(db, log, env.topics, env.quizzes, env.results, gen)
	env.analysisSvc = NewAnalysisService(log, env.quizzes, env.results, gen)
	env.chatSvc = NewChatService(log, env.topics, env.messages, gen)
	env.userSvc = NewUserService(log, env.users)
	return env
}

func (e *testEnv) dbc() dbctx.Context {
	return dbctx.Context{Ctx: context.Background()}
}

func (e *testEnv) seedUser(t *testing.T, goals string) types.Principal {
	t.Helper()
	u := &types.User{Username: testutil.Username("svc"), Password: "x", LearningGoals: goals}
	require.NoError(t, e.db.Create(u).Error)
	return types.Principal{UserID: u.ID, Username: u.Username, SessionID: "sess"}
}

func sampleCurriculum() types.Curriculum {
	return types.Curriculum{
		Sections: []types.CurriculumSection{{
			Title:       "Foundations",
			Description: "Core ideas",
			Objectives:  []string{"Understand the basics"},
			Resources:   []string{"Intro text"},
		}},
		EstimatedDuration: "2 weeks",
		Prerequisites:     []string{},
	}
}

func sampleQuestions() []types.Question {
	out := make([]types.Question, 0, types.QuestionsPerQuiz)
	for i := 0; i < types.QuestionsPerQuiz; i++ {
		out = append(out, types.Question{
			Question:      "Which option is right?",
			Options:       []string{"a", "b", "c", "d"},
			CorrectAnswer: i % types.OptionsPerQuestion,
			Explanation:   "Because.",
		})
	}
	return out
}

func (e *testEnv) createTopic(t *testing.T, p types.Principal, name string) *types.Topic {
	t.Helper()
	e.provider.AddResponse(generation.JSONResponse(sampleCurriculum()))
	topic, err := e.topicSvc.CreateTopic(e.dbc(), p, CreateTopicInput{Name: name, Description: name + " basics"})
	require.NoError(t, err)
	return topic
}

func (e *testEnv) createQuiz(t *testing.T, p types.Principal, topicID uint) *types.Quiz {
	t.Helper()
	e.provider.AddResponse(generation.JSONResponse(map[string]any{"questions": sampleQuestions()}))
	quiz, err := e.quizSvc.CreateQuiz(e.dbc(), p, CreateQuizInput{TopicID: topicID})
	require.NoError(t, err)
	return quiz
}

func requireAPIStatus(t *testing.T, err error, status int) {
	t.Helper()
	require.Error(t, err)
	ae := apierrFrom(err)
	require.Equal(t, status, ae.Status, "error: %v", err)
}
