package services

import (
	"errors"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	types "github.com/yungbote/neurotutor-backend/internal/domain"
	"github.com/yungbote/neurotutor-backend/internal/generation"
	"github.com/yungbote/neurotutor-backend/internal/platform/apierr"
)

func apierrFrom(err error) *apierr.Error { return apierr.From(err) }

func TestCreateTopicStoresGeneratedCurriculum(t *testing.T) {
	env := newTestEnv(t)
	p := env.seedUser(t, "")

	topic := env.createTopic(t, p, "Linear Algebra")
	require.NotZero(t, topic.ID)
	assert.Equal(t, "Linear Algebra", topic.Name)
	assert.Equal(t, sampleCurriculum(), topic.Curriculum.Data())

	call, ok := env.provider.LastCall()
	require.True(t, ok)
	assert.Equal(t, generation.OpCurriculum, call.Operation)
	require.NotNil(t, call.Schema)
	assert.Contains(t, call.Messages[0].Content, "Linear Algebra basics")

	list, err := env.topicSvc.ListTopics(env.dbc(), p)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, sampleCurriculum(), list[0].Curriculum.Data())
}

func TestCreateTopicPrefersLearningGoals(t *testing.T) {
	env := newTestEnv(t)
	p := env.seedUser(t, "Pass the university entrance exam")

	env.createTopic(t, p, "Calculus")
	call, ok := env.provider.LastCall()
	require.True(t, ok)
	assert.Contains(t, call.Messages[0].Content, "Pass the university entrance exam")
}

func TestCreateTopicGenerationFailurePersistsNothing(t *testing.T) {
	env := newTestEnv(t)
	p := env.seedUser(t, "")

	env.provider.AddResponse(generation.MockResponse{Content: "not json"})
	_, err := env.topicSvc.CreateTopic(env.dbc(), p, CreateTopicInput{Name: "Chemistry"})
	var genErr *generation.GenerationError
	require.True(t, errors.As(err, &genErr))
	assert.True(t, strings.HasPrefix(err.Error(), "failed to generate curriculum"))

	env.provider.AddResponse(generation.JSONResponse(map[string]any{"sections": "nope"}))
	_, err = env.topicSvc.CreateTopic(env.dbc(), p, CreateTopicInput{Name: "Chemistry"})
	var valErr *generation.ValidationError
	require.True(t, errors.As(err, &valErr))

	list, err := env.topicSvc.ListTopics(env.dbc(), p)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestListTopicsIsScopedToCaller(t *testing.T) {
	env := newTestEnv(t)
	alice := env.seedUser(t, "")
	bob := env.seedUser(t, "")

	env.createTopic(t, alice, "History")
	env.createTopic(t, alice, "Physics")
	env.createTopic(t, bob, "Music")

	list, err := env.topicSvc.ListTopics(env.dbc(), alice)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "History", list[0].Name)
	assert.Equal(t, "Physics", list[1].Name)

	_, err = env.topicSvc.ListTopics(env.dbc(), types.Principal{})
	requireAPIStatus(t, err, http.StatusUnauthorized)
}

func TestDeleteTopicCascades(t *testing.T) {
	env := newTestEnv(t)
	p := env.seedUser(t, "")
	topic := env.createTopic(t, p, "Biology")
	keep := env.createTopic(t, p, "Geology")

	quiz := env.createQuiz(t, p, topic.ID)
	_, err := env.quizSvc.SubmitResult(env.dbc(), p, SubmitQuizResultInput{QuizID: quiz.ID, Score: 3, Answers: []int{0, 1, 2, 3, 0}})
	require.NoError(t, err)
	env.provider.AddResponse(generation.MockResponse{Content: "Cells are the unit of life."})
	_, err = env.chatSvc.PostMessage(env.dbc(), p, PostChatInput{TopicID: topic.ID, Message: "What is a cell?"})
	require.NoError(t, err)

	require.NoError(t, env.topicSvc.DeleteTopic(env.dbc(), p, topic.ID))

	list, err := env.topicSvc.ListTopics(env.dbc(), p)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, keep.ID, list[0].ID)

	var count int64
	require.NoError(t, env.db.Model(&types.Quiz{}).Where("topic_id = ?", topic.ID).Count(&count).Error)
	assert.Zero(t, count)
	require.NoError(t, env.db.Model(&types.QuizResult{}).Where("quiz_id = ?", quiz.ID).Count(&count).Error)
	assert.Zero(t, count)
	require.NoError(t, env.db.Model(&types.ChatMessage{}).Where("topic_id = ?", topic.ID).Count(&count).Error)
	assert.Zero(t, count)
}

func TestDeleteTopicOfAnotherUserIsNotFound(t *testing.T) {
	env := newTestEnv(t)
	owner := env.seedUser(t, "")
	intruder := env.seedUser(t, "")
	topic := env.createTopic(t, owner, "Art")

	err := env.topicSvc.DeleteTopic(env.dbc(), intruder, topic.ID)
	requireAPIStatus(t, err, http.StatusNotFound)

	list, err := env.topicSvc.ListTopics(env.dbc(), owner)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}
