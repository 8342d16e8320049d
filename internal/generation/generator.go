package generation

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/yungbote/neurotutor-backend/internal/domain/learning"
	"github.com/yungbote/neurotutor-backend/internal/platform/ctxutil"
	"github.com/yungbote/neurotutor-backend/internal/platform/logger"
)

// Client is the tutoring-facing surface of the generation adapter. Every call is
// synchronous and never retried; failures come back as *GenerationError or *ValidationError.
type Client interface {
	GenerateCurriculum(ctx context.Context, topicName, goal string) (*learning.Curriculum, error)
	GenerateQuiz(ctx context.Context, topicName string, difficulty learning.Difficulty) ([]learning.Question, error)
	GetTutorResponse(ctx context.Context, message, topicContext string, prior []Message) (string, error)
	AnalyzeWeakness(ctx context.Context, results []learning.ResultWithQuiz) (*learning.WeaknessAnalysis, error)
}

// Observer receives one callback per provider call.
type Observer interface {
	ObserveGeneration(operation, outcome string, elapsed time.Duration)
}

const (
	OutcomeOK            = "ok"
	OutcomeProviderError = "provider_error"
	OutcomeEmpty         = "empty"
	OutcomeInvalidJSON   = "invalid_json"
	OutcomeInvalidShape  = "invalid_shape"
)

type Generator struct {
	provider    Provider
	prompts     *Prompts
	log         *logger.Logger
	observer    Observer
	maxTokens   int
	temperature float64
}

type Option func(*Generator)

func WithObserver(o Observer) Option {
	return func(g *Generator) { g.observer = o }
}

func WithMaxTokens(n int) Option {
	return func(g *Generator) { g.maxTokens = n }
}

func WithTemperature(t float64) Option {
	return func(g *Generator) { g.temperature = t }
}

func WithPrompts(p *Prompts) Option {
	return func(g *Generator) { g.prompts = p }
}

func NewGenerator(provider Provider, baseLog *logger.Logger, opts ...Option) (*Generator, error) {
	if provider == nil {
		return nil, fmt.Errorf("generation provider is required")
	}
	g := &Generator{
		provider:    provider,
		log:         baseLog.With("service", "Generator", "model", provider.ModelID()),
		temperature: 0.7,
	}
	for _, opt := range opts {
		opt(g)
	}
	if g.prompts == nil {
		p, err := LoadPrompts()
		if err != nil {
			return nil, err
		}
		g.prompts = p
	}
	return g, nil
}

var _ Client = (*Generator)(nil)

func (g *Generator) GenerateCurriculum(ctx context.Context, topicName, goal string) (*learning.Curriculum, error) {
	data := map[string]any{"Topic": topicName, "Goal": goal}
	c, err := g.complete(ctx, OpCurriculum, data, CurriculumSchema, nil)
	if err != nil {
		return nil, err
	}
	out, err := decodeValidated[learning.Curriculum](OpCurriculum, CurriculumSchema, c.content)
	g.observe(OpCurriculum, outcomeOf(err), c.elapsed)
	return out, err
}

type quizEnvelope struct {
	Questions []learning.Question `json:"questions"`
}

func (g *Generator) GenerateQuiz(ctx context.Context, topicName string, difficulty learning.Difficulty) ([]learning.Question, error) {
	if !difficulty.Valid() {
		difficulty = learning.DifficultyMedium
	}
	data := map[string]any{"Topic": topicName, "Difficulty": string(difficulty)}
	c, err := g.complete(ctx, OpQuiz, data, QuizSchema, nil)
	if err != nil {
		return nil, err
	}
	out, err := decodeValidated[quizEnvelope](OpQuiz, QuizSchema, c.content)
	g.observe(OpQuiz, outcomeOf(err), c.elapsed)
	if err != nil {
		return nil, err
	}
	return out.Questions, nil
}

// GetTutorResponse replays prior in order, appends message as the newest user turn and
// returns the completion text.
func (g *Generator) GetTutorResponse(ctx context.Context, message, topicContext string, prior []Message) (string, error) {
	data := map[string]any{"Topic": topicContext}
	history := make([]Message, 0, len(prior)+1)
	history = append(history, prior...)
	history = append(history, Message{Role: RoleUser, Content: message})
	c, err := g.complete(ctx, OpTutor, data, nil, history)
	if err != nil {
		return "", err
	}
	g.observe(OpTutor, OutcomeOK, c.elapsed)
	return c.content, nil
}

func (g *Generator) AnalyzeWeakness(ctx context.Context, results []learning.ResultWithQuiz) (*learning.WeaknessAnalysis, error) {
	payload, err := json.Marshal(results)
	if err != nil {
		return nil, &GenerationError{Op: opLabel(OpAnalysis), Err: fmt.Errorf("marshal results: %w", err)}
	}
	data := map[string]any{"Results": string(payload)}
	c, err := g.complete(ctx, OpAnalysis, data, AnalysisSchema, nil)
	if err != nil {
		return nil, err
	}
	out, err := decodeValidated[learning.WeaknessAnalysis](OpAnalysis, AnalysisSchema, c.content)
	g.observe(OpAnalysis, outcomeOf(err), c.elapsed)
	if err != nil {
		return nil, err
	}
	if out.WeakAreas == nil {
		out.WeakAreas = map[string]string{}
	}
	if out.Recommendations == nil {
		out.Recommendations = []string{}
	}
	return out, nil
}

type completion struct {
	content string
	elapsed time.Duration
}

// complete renders the prompts for op, calls the provider once and returns trimmed,
// non-empty content. When history is nil the rendered user prompt is the only message.
// Failures are observed here; callers observe the outcome of decoding a success.
func (g *Generator) complete(ctx context.Context, op string, data any, schema *Schema, history []Message) (completion, error) {
	mode := "text"
	if schema != nil {
		mode = "json"
	}
	system, user, err := g.prompts.Render(op, data, mode)
	if err != nil {
		return completion{}, &GenerationError{Op: opLabel(op), Err: err}
	}
	messages := history
	if messages == nil {
		messages = []Message{{Role: RoleUser, Content: user}}
	}

	req := Request{
		Operation:   op,
		System:      system,
		Messages:    messages,
		Schema:      schema,
		MaxTokens:   g.maxTokens,
		Temperature: g.temperature,
	}

	start := time.Now()
	resp, err := g.provider.Generate(ctx, req)
	elapsed := time.Since(start)
	if err != nil {
		g.observe(op, OutcomeProviderError, elapsed)
		g.log.Warn("Generation call failed", withTrace(ctx, "operation", op, "elapsed_ms", elapsed.Milliseconds(), "error", err)...)
		return completion{}, &GenerationError{Op: opLabel(op), Err: err}
	}

	content := ""
	if resp != nil {
		content = strings.TrimSpace(resp.Content)
	}
	if content == "" {
		g.observe(op, OutcomeEmpty, elapsed)
		return completion{}, &GenerationError{Op: opLabel(op), Err: ErrNoContent}
	}

	g.log.Debug("Generation call completed", withTrace(ctx,
		"operation", op,
		"elapsed_ms", elapsed.Milliseconds(),
		"input_tokens", resp.Usage.InputTokens,
		"output_tokens", resp.Usage.OutputTokens,
	)...)
	return completion{content: content, elapsed: elapsed}, nil
}

// decodeValidated parses content, checks it against schema and decodes it into T.
// Non-JSON content is a GenerationError; JSON of the wrong shape is a ValidationError.
func decodeValidated[T any](op string, schema *Schema, content string) (*T, error) {
	var parsed any
	if err := json.Unmarshal([]byte(content), &parsed); err != nil {
		return nil, &GenerationError{Op: opLabel(op), Err: fmt.Errorf("invalid JSON: %w", err)}
	}
	if err := validateAgainst(schema, parsed); err != nil {
		return nil, &ValidationError{Op: opLabel(op), Content: content, Err: err}
	}
	var out T
	if err := json.Unmarshal([]byte(content), &out); err != nil {
		return nil, &ValidationError{Op: opLabel(op), Content: content, Err: err}
	}
	return &out, nil
}

// withTrace appends the request identifiers carried by ctx to kv.
func withTrace(ctx context.Context, kv ...interface{}) []interface{} {
	return append(kv, ctxutil.TraceFields(ctx)...)
}

func opLabel(op string) string {
	switch op {
	case OpCurriculum:
		return "generate curriculum"
	case OpQuiz:
		return "generate quiz"
	case OpTutor:
		return "get tutor response"
	case OpAnalysis:
		return "analyze weakness"
	}
	return op
}

func outcomeOf(err error) string {
	var genErr *GenerationError
	var valErr *ValidationError
	switch {
	case err == nil:
		return OutcomeOK
	case errors.As(err, &valErr):
		return OutcomeInvalidShape
	case errors.As(err, &genErr):
		return OutcomeInvalidJSON
	}
	return OutcomeProviderError
}

func (g *Generator) observe(op, outcome string, elapsed time.Duration) {
	if g.observer != nil {
		g.observer.ObserveGeneration(op, outcome, elapsed)
	}
}
