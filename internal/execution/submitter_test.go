package execution

import (
	"context"
	"errors"
	"testing"
	"time"

	"metacbot/internal/config"
	"metacbot/internal/forecast"
	"metacbot/internal/question"
	"metacbot/internal/risk"
	"metacbot/internal/state"
)

type fakeSubmitter struct {
	submitCalls  int
	commentCalls int
	lastPostID   int
	submitErr    error
	commentErr   error
}

func (f *fakeSubmitter) Submit(_ context.Context, _ question.Question, _ forecast.Forecast, _ string) (map[string]any, error) {
	f.submitCalls++
	if f.submitErr != nil {
		return nil, f.submitErr
	}
	return map[string]any{"ok": true}, nil
}

func (f *fakeSubmitter) PostComment(_ context.Context, postID int, _ string) (map[string]any, error) {
	f.commentCalls++
	f.lastPostID = postID
	if f.commentErr != nil {
		return nil, f.commentErr
	}
	return map[string]any{"id": 1}, nil
}

func liveSettings() *config.Settings {
	cfg := config.DefaultSettings()
	cfg.LiveMode = true
	return cfg
}

func emptyState() *state.State {
	return &state.State{Submissions: make(map[string]risk.Submission)}
}

func binaryForecast(p float64) forecast.Forecast {
	return forecast.Forecast{Kind: forecast.KindBinary, Probability: p}
}

func TestMaybeSubmit_SkippedNotOpen(t *testing.T) {
	client := &fakeSubmitter{}
	q := question.Question{ID: 101, Type: question.TypeBinary}
	now := time.Date(2026, 1, 10, 12, 0, 0, 0, time.UTC)

	record, err := MaybeSubmit(context.Background(), client, liveSettings(), emptyState(), q, binaryForecast(0.7), "r", false, now)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if record.Status != StatusSkippedNotOpen || record.Submitted {
		t.Errorf("closed window should skip, got %+v", record)
	}
	if record.Hash == "" {
		t.Error("skipped record should still carry the content hash")
	}
	if client.submitCalls != 0 {
		t.Error("closed window must not transmit")
	}
}

func TestMaybeSubmit_DryRun(t *testing.T) {
	client := &fakeSubmitter{}
	q := question.Question{ID: 101, Type: question.TypeBinary}
	now := time.Date(2026, 1, 10, 12, 0, 0, 0, time.UTC)
	st := emptyState()

	record, err := MaybeSubmit(context.Background(), client, config.DefaultSettings(), st, q, binaryForecast(0.7), "r", true, now)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if record.Status != StatusDryRun || record.Submitted {
		t.Errorf("dry run should simulate, got %+v", record)
	}
	if client.submitCalls != 0 {
		t.Error("dry run must not transmit")
	}
	if len(st.Submissions) != 0 {
		t.Error("dry run must not mutate state")
	}
}

func TestMaybeSubmit_LiveSubmitUpdatesState(t *testing.T) {
	client := &fakeSubmitter{}
	q := question.Question{ID: 101, PostID: 90001, Type: question.TypeBinary}
	now := time.Date(2026, 1, 10, 12, 0, 0, 0, time.UTC)
	st := emptyState()

	record, err := MaybeSubmit(context.Background(), client, liveSettings(), st, q, binaryForecast(0.7), "r", true, now)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if record.Status != StatusSubmitted || !record.Submitted {
		t.Errorf("expected a live submission, got %+v", record)
	}
	if client.submitCalls != 1 || client.commentCalls != 1 {
		t.Errorf("expected one submit and one comment, got %d/%d", client.submitCalls, client.commentCalls)
	}
	if client.lastPostID != 90001 {
		t.Errorf("comment should target the post id, got %d", client.lastPostID)
	}

	entry, ok := st.Submissions["101"]
	if !ok {
		t.Fatal("successful submission should be recorded")
	}
	if entry.Hash != record.Hash {
		t.Error("state hash should match the record hash")
	}
	if entry.Timestamp != "2026-01-10T12:00:00Z" {
		t.Errorf("state timestamp should be UTC RFC3339, got %s", entry.Timestamp)
	}
}

func TestMaybeSubmit_CommentTargetsQuestionWithoutPost(t *testing.T) {
	client := &fakeSubmitter{}
	q := question.Question{ID: 101, Type: question.TypeBinary}
	now := time.Date(2026, 1, 10, 12, 0, 0, 0, time.UTC)

	if _, err := MaybeSubmit(context.Background(), client, liveSettings(), emptyState(), q, binaryForecast(0.7), "r", true, now); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if client.lastPostID != 101 {
		t.Errorf("missing post id should fall back to the question id, got %d", client.lastPostID)
	}
}

func TestMaybeSubmit_UnchangedWithinCooldown(t *testing.T) {
	client := &fakeSubmitter{}
	q := question.Question{ID: 101, Type: question.TypeBinary}
	now := time.Date(2026, 1, 10, 12, 0, 0, 0, time.UTC)
	cfg := liveSettings()
	st := emptyState()

	first, err := MaybeSubmit(context.Background(), client, cfg, st, q, binaryForecast(0.7), "r", true, now)
	if err != nil {
		t.Fatalf("first submit failed: %v", err)
	}

	second, err := MaybeSubmit(context.Background(), client, cfg, st, q, binaryForecast(0.7), "r", true, now.Add(time.Hour))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if second.Status != StatusSkippedUnchanged {
		t.Errorf("unchanged content inside the cooldown should skip, got %+v", second)
	}
	if second.Hash != first.Hash {
		t.Error("skip record should carry the same content hash")
	}
	if client.submitCalls != 1 {
		t.Errorf("expected exactly one transmission, got %d", client.submitCalls)
	}
}

func TestMaybeSubmit_ChangedForecastResubmits(t *testing.T) {
	client := &fakeSubmitter{}
	q := question.Question{ID: 101, Type: question.TypeBinary}
	now := time.Date(2026, 1, 10, 12, 0, 0, 0, time.UTC)
	cfg := liveSettings()
	st := emptyState()

	if _, err := MaybeSubmit(context.Background(), client, cfg, st, q, binaryForecast(0.7), "r", true, now); err != nil {
		t.Fatalf("first submit failed: %v", err)
	}
	record, err := MaybeSubmit(context.Background(), client, cfg, st, q, binaryForecast(0.8), "r", true, now.Add(time.Minute))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if record.Status != StatusSubmitted {
		t.Errorf("changed forecast should bypass the cooldown, got %+v", record)
	}
	if client.submitCalls != 2 {
		t.Errorf("expected two transmissions, got %d", client.submitCalls)
	}
}

func TestMaybeSubmit_SubmitErrorLeavesStateUntouched(t *testing.T) {
	client := &fakeSubmitter{submitErr: errors.New("api down")}
	q := question.Question{ID: 101, Type: question.TypeBinary}
	now := time.Date(2026, 1, 10, 12, 0, 0, 0, time.UTC)
	st := emptyState()

	_, err := MaybeSubmit(context.Background(), client, liveSettings(), st, q, binaryForecast(0.7), "r", true, now)
	if err == nil {
		t.Fatal("submit failure should propagate")
	}
	if len(st.Submissions) != 0 {
		t.Error("failed submission must not be recorded")
	}
	if client.commentCalls != 0 {
		t.Error("no comment should be posted after a failed submission")
	}
}

func TestMaybeSubmit_CommentFailureIsNonFatal(t *testing.T) {
	client := &fakeSubmitter{commentErr: errors.New("comment api down")}
	q := question.Question{ID: 101, Type: question.TypeBinary}
	now := time.Date(2026, 1, 10, 12, 0, 0, 0, time.UTC)
	st := emptyState()

	record, err := MaybeSubmit(context.Background(), client, liveSettings(), st, q, binaryForecast(0.7), "r", true, now)
	if err != nil {
		t.Fatalf("comment failure should not fail the question: %v", err)
	}
	if record.Status != StatusSubmitted {
		t.Errorf("forecast was placed, expected SUBMITTED, got %+v", record)
	}
	if _, ok := st.Submissions["101"]; !ok {
		t.Error("state should still record the placed forecast")
	}
}
