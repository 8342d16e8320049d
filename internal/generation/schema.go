package generation

import "github.com/yungbote/neurotutor-backend/internal/domain/learning"

func stringArray() map[string]any {
	return map[string]any{"type": "array", "items": map[string]any{"type": "string"}}
}

var CurriculumSchema = &Schema{
	Name:        "curriculum",
	Description: "A structured learning path for one topic.",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"sections": map[string]any{
				"type":     "array",
				"minItems": 1,
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"title":       map[string]any{"type": "string", "minLength": 1},
						"description": map[string]any{"type": "string"},
						"objectives":  stringArray(),
						"resources":   stringArray(),
					},
					"required": []string{"title", "description", "objectives", "resources"},
				},
			},
			"estimatedDuration": map[string]any{"type": "string", "minLength": 1},
			"prerequisites":     stringArray(),
		},
		"required": []string{"sections", "estimatedDuration", "prerequisites"},
	},
}

var QuizSchema = &Schema{
	Name:        "quiz",
	Description: "A multiple choice quiz.",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"questions": map[string]any{
				"type":     "array",
				"minItems": learning.QuestionsPerQuiz,
				"maxItems": learning.QuestionsPerQuiz,
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"question": map[string]any{"type": "string", "minLength": 1},
						"options": map[string]any{
							"type":     "array",
							"minItems": learning.OptionsPerQuestion,
							"maxItems": learning.OptionsPerQuestion,
							"items":    map[string]any{"type": "string"},
						},
						"correctAnswer": map[string]any{
							"type":    "integer",
							"minimum": 0,
							"maximum": learning.OptionsPerQuestion - 1,
						},
						"explanation": map[string]any{"type": "string"},
					},
					"required": []string{"question", "options", "correctAnswer"},
				},
			},
		},
		"required": []string{"questions"},
	},
}

var AnalysisSchema = &Schema{
	Name:        "weakness_analysis",
	Description: "Weak areas keyed by concept, plus recommendations.",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"weakAreas": map[string]any{
				"type":                 "object",
				"additionalProperties": map[string]any{"type": "string"},
			},
			"recommendations": stringArray(),
		},
		"required": []string{"weakAreas", "recommendations"},
	},
}
