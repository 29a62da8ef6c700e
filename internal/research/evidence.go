// Package research gathers and ranks external evidence for one question per
// run. Retrieval failures degrade to an empty bundle, never a pipeline abort.
package research

// Item is one ranked piece of evidence. Idx is 1-based and assigned after
// ranking.
type Item struct {
	Idx     int     `json:"idx"`
	Title   string  `json:"title"`
	URL     string  `json:"url"`
	Snippet string  `json:"snippet"`
	Score   float64 `json:"score"`
}

// Bundle owns the ordered evidence gathered for one question in one run.
// Bundles are never persisted.
type Bundle struct {
	QuestionID int    `json:"question_id"`
	Items      []Item `json:"items"`
}
