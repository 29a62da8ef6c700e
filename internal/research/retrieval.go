package research

import (
	"context"
	"log/slog"

	"metacbot/internal/question"
	"metacbot/internal/search"
)

const (
	maxEvidenceItems = 6
	snippetMaxChars  = 400
	querySuffix      = "latest evidence"
)

// Searcher is the search collaborator consumed by retrieval.
type Searcher interface {
	Search(ctx context.Context, query string) ([]search.Result, error)
}

// BuildQueries returns the fixed query set for a question: its title, and the
// title with an elaboration suffix.
func BuildQueries(q question.Question) []string {
	return []string{q.Title, q.Title + " " + querySuffix}
}

// Retrieve fans out over the question's queries, tolerating per-query
// failure: a failing query logs and contributes no rows while the others
// still run. Surviving rows are deduplicated by URL, ranked by score and
// truncated to the evidence budget.
func Retrieve(ctx context.Context, q question.Question, searcher Searcher) Bundle {
	var rows []search.Result
	for _, query := range BuildQueries(q) {
		results, err := searcher.Search(ctx, query)
		if err != nil {
			slog.Warn("evidence query failed", "question_id", q.ID, "query", query, "error", err)
			continue
		}
		rows = append(rows, results...)
	}

	ranked := dedupeAndRank(rows)
	items := make([]Item, 0, len(ranked))
	for i, row := range ranked {
		title := row.Title
		if title == "" {
			title = "Untitled"
		}
		snippet := truncateSnippet(row.Text, snippetMaxChars)
		items = append(items, Item{
			Idx:     i + 1,
			Title:   title,
			URL:     row.URL,
			Snippet: snippet,
			Score:   row.Score,
		})
	}
	return Bundle{QuestionID: q.ID, Items: items}
}

// truncateSnippet caps text at maxChars characters without splitting a
// multibyte rune.
func truncateSnippet(text string, maxChars int) string {
	count := 0
	for i := range text {
		if count == maxChars {
			return text[:i]
		}
		count++
	}
	return text
}

// dedupeAndRank sorts rows by descending score, drops rows with empty or
// previously-seen URLs (first occurrence wins) and keeps the top entries.
func dedupeAndRank(rows []search.Result) []search.Result {
	sorted := make([]search.Result, len(rows))
	copy(sorted, rows)
	search.SortByScore(sorted)

	seen := make(map[string]bool, len(sorted))
	out := make([]search.Result, 0, maxEvidenceItems)
	for _, row := range sorted {
		if row.URL == "" || seen[row.URL] {
			continue
		}
		seen[row.URL] = true
		out = append(out, row)
		if len(out) == maxEvidenceItems {
			break
		}
	}
	return out
}
