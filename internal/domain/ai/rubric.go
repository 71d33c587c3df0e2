package ai

// Rubric dimensions requested from the provider.
const (
	DimensionStructure = "structure"
	DimensionContent   = "content"
	DimensionGrammar   = "grammar"
	DimensionStyle     = "style"
)

// Dimensions lists the rubric dimensions in prompt order.
var Dimensions = []string{DimensionStructure, DimensionContent, DimensionGrammar, DimensionStyle}

// Rubric is the shape the system prompt asks the provider to return.
// Replies are not validated against it.
type Rubric struct {
	Overall        Scores   `json:"overall"`
	Details        Sections `json:"details"`
	OverallComment string   `json:"overall_comment"`
}

// Scores holds one number per dimension.
type Scores struct {
	Structure float64 `json:"structure"`
	Content   float64 `json:"content"`
	Grammar   float64 `json:"grammar"`
	Style     float64 `json:"style"`
}

// Sections holds the detailed review per dimension.
type Sections struct {
	Grammar   Section `json:"grammar"`
	Structure Section `json:"structure"`
	Content   Section `json:"content"`
	Style     Section `json:"style"`
}

type Section struct {
	Score  float64 `json:"score"`
	Issues []Issue `json:"issues"`
}

type Issue struct {
	Text           string `json:"text"`
	Recommendation string `json:"recommendation"`
}
