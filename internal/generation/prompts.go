package generation

import (
	_ "embed"
	"fmt"
	"os"
	"strings"
	"text/template"

	"gopkg.in/yaml.v3"

	"github.com/yungbote/neurotutor-backend/internal/platform/promptstyle"
)

const promptsOverrideEnv = "GENERATION_PROMPTS_YAML"

const (
	OpCurriculum = "generate_curriculum"
	OpQuiz       = "generate_quiz"
	OpTutor      = "tutor_response"
	OpAnalysis   = "analyze_weakness"
)

//go:embed prompts.yaml
var embeddedPrompts []byte

type yamlPromptFile struct {
	Version int                       `yaml:"version"`
	Prompts map[string]yamlPromptSpec `yaml:"prompts"`
}

type yamlPromptSpec struct {
	System string `yaml:"system"`
	User   string `yaml:"user"`
}

type promptTemplate struct {
	system *template.Template
	user   *template.Template
}

// Prompts holds the parsed system/user templates for every operation.
type Prompts struct {
	byOp map[string]promptTemplate
}

// LoadPrompts parses the embedded prompt file, or the file named by
// GENERATION_PROMPTS_YAML when that is set.
func LoadPrompts() (*Prompts, error) {
	data := embeddedPrompts
	if path := strings.TrimSpace(os.Getenv(promptsOverrideEnv)); path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read prompts override: %w", err)
		}
		data = b
	}
	return ParsePrompts(data)
}

func ParsePrompts(data []byte) (*Prompts, error) {
	var file yamlPromptFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse prompts: %w", err)
	}
	out := &Prompts{byOp: make(map[string]promptTemplate, len(file.Prompts))}
	for _, op := range []string{OpCurriculum, OpQuiz, OpTutor, OpAnalysis} {
		spec, ok := file.Prompts[op]
		if !ok || strings.TrimSpace(spec.System) == "" {
			return nil, fmt.Errorf("prompts: missing system prompt for %s", op)
		}
		sys, err := template.New(op + ".system").Option("missingkey=error").Parse(spec.System)
		if err != nil {
			return nil, fmt.Errorf("prompts: %s system: %w", op, err)
		}
		pt := promptTemplate{system: sys}
		if strings.TrimSpace(spec.User) != "" {
			usr, err := template.New(op + ".user").Option("missingkey=error").Parse(spec.User)
			if err != nil {
				return nil, fmt.Errorf("prompts: %s user: %w", op, err)
			}
			pt.user = usr
		}
		out.byOp[op] = pt
	}
	return out, nil
}

// Render executes the templates for op. The user prompt is empty when the operation has none.
func (p *Prompts) Render(op string, data any, mode string) (system string, user string, err error) {
	pt, ok := p.byOp[op]
	if !ok {
		return "", "", fmt.Errorf("prompts: unknown operation %q", op)
	}
	var b strings.Builder
	if err := pt.system.Execute(&b, data); err != nil {
		return "", "", fmt.Errorf("render %s system: %w", op, err)
	}
	system = promptstyle.ApplySystem(b.String(), mode)
	if pt.user != nil {
		b.Reset()
		if err := pt.user.Execute(&b, data); err != nil {
			return "", "", fmt.Errorf("render %s user: %w", op, err)
		}
		user = strings.TrimSpace(b.String())
	}
	return system, user, nil
}
