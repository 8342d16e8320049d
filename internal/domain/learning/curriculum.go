package learning

type CurriculumSection struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Objectives  []string `json:"objectives"`
	Resources   []string `json:"resources"`
}

type Curriculum struct {
	Sections          []CurriculumSection `json:"sections"`
	EstimatedDuration string              `json:"estimatedDuration"`
	Prerequisites     []string            `json:"prerequisites"`
}
