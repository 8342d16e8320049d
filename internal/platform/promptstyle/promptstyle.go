package promptstyle

import "strings"

const marker = "NEUROTUTOR_PROMPT_STYLE_V1"

// ApplySystem prepends a short guidance block to a system prompt. mode "json" adds the
// output-format rule; anything else gets the conversational rule.
func ApplySystem(system string, mode string) string {
	base := strings.TrimSpace(system)
	if base == "" {
		return base
	}
	if strings.Contains(base, marker) {
		return base
	}
	mode = strings.ToLower(strings.TrimSpace(mode))

	var b strings.Builder
	b.WriteString(marker)
	b.WriteString("\nYou are part of an AI tutoring application for self-directed learners.")
	if mode == "json" {
		b.WriteString("\nReturn a single JSON object matching the requested shape, with no surrounding prose or code fences.")
	} else {
		b.WriteString("\nWrite plain conversational text suited to a student. Keep answers focused on the question asked.")
	}
	b.WriteString("\nDo not invent citations or URLs you are not confident exist.")
	b.WriteString("\n---\n")
	b.WriteString(base)
	return strings.TrimSpace(b.String())
}
