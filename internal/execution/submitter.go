// Package execution ties the pipeline together: the per-question submission
// state machine and the run orchestrator.
package execution

import (
	"context"
	"log/slog"
	"strconv"
	"time"

	"metacbot/internal/config"
	"metacbot/internal/forecast"
	"metacbot/internal/question"
	"metacbot/internal/risk"
	"metacbot/internal/state"
)

// Status is the terminal state of one question's submission attempt.
type Status string

const (
	StatusSubmitted        Status = "SUBMITTED"
	StatusDryRun           Status = "DRY_RUN"
	StatusSkippedUnchanged Status = "SKIPPED_UNCHANGED"
	StatusSkippedNotOpen   Status = "SKIPPED_NOT_OPEN"
)

// Record is the transient per-question submission outcome. Every terminal
// state carries the content hash for audit.
type Record struct {
	Status    Status         `json:"status"`
	Submitted bool           `json:"submitted"`
	Hash      string         `json:"hash"`
	Response  map[string]any `json:"response,omitempty"`
}

// Submitter is the platform surface needed to transmit one forecast.
type Submitter interface {
	Submit(ctx context.Context, q question.Question, f forecast.Forecast, reasoning string) (map[string]any, error)
	PostComment(ctx context.Context, postID int, text string) (map[string]any, error)
}

// MaybeSubmit walks the per-question state machine: window/rate-limit gate,
// dry-run short-circuit, resubmission gate, then the actual submission. On
// success the state entry for the question is replaced with the new hash and
// timestamp; the reasoning is additionally posted as a private comment on the
// originating post (falling back to the question id when there is no post).
func MaybeSubmit(
	ctx context.Context,
	client Submitter,
	cfg *config.Settings,
	st *state.State,
	q question.Question,
	final forecast.Forecast,
	reasoning string,
	canSubmit bool,
	now time.Time,
) (Record, error) {
	digest := risk.SubmissionHash(q.ID, final, reasoning, config.ModelVersion)

	if !canSubmit {
		return Record{Status: StatusSkippedNotOpen, Hash: digest}, nil
	}
	if cfg.DryRun() {
		return Record{Status: StatusDryRun, Hash: digest}, nil
	}

	qid := strconv.Itoa(q.ID)
	var last *risk.Submission
	if prior, ok := st.Submissions[qid]; ok {
		last = &prior
	}
	if !risk.ShouldSubmit(last, digest, cfg.CooldownMinutes, now) {
		return Record{Status: StatusSkippedUnchanged, Hash: digest}, nil
	}

	response, err := client.Submit(ctx, q, final, reasoning)
	if err != nil {
		return Record{Hash: digest}, err
	}

	postID := q.PostID
	if postID == 0 {
		postID = q.ID
	}
	if _, err := client.PostComment(ctx, postID, reasoning); err != nil {
		// The forecast is already placed; a lost comment is not worth failing
		// the question over.
		slog.Warn("failed to post reasoning comment", "post_id", postID, "error", err)
	}

	st.Submissions[qid] = risk.Submission{
		Hash:      digest,
		Timestamp: now.UTC().Format(time.RFC3339),
	}
	return Record{Status: StatusSubmitted, Submitted: true, Hash: digest, Response: response}, nil
}
