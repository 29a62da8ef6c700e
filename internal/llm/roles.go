package llm

import (
	"context"
	"embed"
	"fmt"
	"log/slog"

	"metacbot/internal/question"
	"metacbot/internal/research"
)

//go:embed prompts/*.md
var promptFiles embed.FS

// Roles are the fixed reasoning personas, invoked in this order.
var Roles = []string{"researcher", "parser", "summarizer", "forecaster"}

// Chatter is the reasoning backend consumed by the role runner.
type Chatter interface {
	ChatJSON(ctx context.Context, prompt, systemPrompt string) (map[string]any, error)
}

func rolePrompt(role string) string {
	data, err := promptFiles.ReadFile("prompts/" + role + ".md")
	if err != nil {
		return ""
	}
	return string(data)
}

// RunRoles invokes the backend once per role with the role instruction plus a
// shared fact block. Each role call is isolated: a failing role yields an
// empty object for that role only and the others still execute.
func RunRoles(ctx context.Context, q question.Question, bundle research.Bundle, backend Chatter) map[string]map[string]any {
	base := fmt.Sprintf("Question: %s\nEvidence count: %d", q.Title, len(bundle.Items))

	outputs := make(map[string]map[string]any, len(Roles))
	for _, role := range Roles {
		obj, err := backend.ChatJSON(ctx, rolePrompt(role)+"\n"+base, "")
		if err != nil {
			slog.Warn("role call failed", "role", role, "question_id", q.ID, "error", err)
			outputs[role] = map[string]any{}
			continue
		}
		outputs[role] = obj
	}
	return outputs
}
