package execution

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"metacbot/internal/clock"
	"metacbot/internal/config"
	"metacbot/internal/forecast"
	"metacbot/internal/llm"
	"metacbot/internal/question"
	"metacbot/internal/research"
	"metacbot/internal/risk"
	"metacbot/internal/state"
	"metacbot/internal/storage"
)

// Exit codes for one run. ExitNothingOpen distinguishes "ran fine but the
// tournament window was closed" under strict_open_window.
const (
	ExitOK          = 0
	ExitError       = 1
	ExitNothingOpen = 2
)

// Platform is the question-source collaborator consumed by the runner.
type Platform interface {
	TournamentMeta(ctx context.Context) (question.TournamentMeta, error)
	Questions(ctx context.Context) ([]question.Question, error)
	Submitter
}

// Runner executes one full forecasting pass. Questions are processed
// sequentially; all state mutation happens on this goroutine.
type Runner struct {
	cfg      *config.Settings
	platform Platform
	searcher research.Searcher
	backend  llm.Chatter
}

func NewRunner(cfg *config.Settings, platform Platform, searcher research.Searcher, backend llm.Chatter) *Runner {
	return &Runner{
		cfg:      cfg,
		platform: platform,
		searcher: searcher,
		backend:  backend,
	}
}

// QuestionRecord is the full per-question audit record appended to the JSONL
// log.
type QuestionRecord struct {
	RunID            string                    `json:"run_id"`
	RunTimeUTC       string                    `json:"run_time_utc"`
	RunTimeUS        string                    `json:"run_time_us"`
	QuestionID       int                       `json:"question_id"`
	QuestionTitle    string                    `json:"question_title"`
	QuestionType     string                    `json:"question_type"`
	OpenStatus       string                    `json:"open_status"`
	TournamentStatus string                    `json:"tournament_status"`
	Baseline         forecast.Estimate         `json:"baseline"`
	Stats            forecast.Estimate         `json:"stats"`
	LLM              forecast.Estimate         `json:"llm"`
	Roles            map[string]map[string]any `json:"roles,omitempty"`
	FinalForecast    forecast.Forecast         `json:"final_forecast"`
	Reasoning        string                    `json:"reasoning"`
	Submission       Record                    `json:"submission"`
	Evidence         []research.Item           `json:"evidence"`
}

// Run performs one forecasting pass and returns the process exit code.
func (r *Runner) Run(ctx context.Context) int {
	if errs := r.cfg.Preflight(); len(errs) > 0 {
		slog.Error("preflight failed", "errors", strings.Join(errs, "; "))
		return ExitError
	}

	now := clock.NowUTC()
	nowUS := clock.ToEastern(now)
	utcISO, usISO := clock.PairISO(now)
	runID := uuid.NewString()
	slog.Info("run start", "run_id", runID, "utc", utcISO, "us", usISO, "live", r.cfg.LiveMode)

	store := state.NewStore(filepath.Join(r.cfg.DataDir, "state.json"))
	st, err := store.Load()
	if err != nil {
		slog.Error("failed to load submission state", "error", err)
		return ExitError
	}

	tournament, err := r.platform.TournamentMeta(ctx)
	if err != nil {
		slog.Error("failed to fetch tournament metadata", "error", err)
		return ExitError
	}
	tournamentOpen, tournamentStatus := question.IsTournamentOpen(tournament, nowUS)
	slog.Info("tournament window evaluated", "open", tournamentOpen, "status", tournamentStatus)

	questions, err := r.platform.Questions(ctx)
	if err != nil {
		slog.Error("failed to list questions", "error", err)
		return ExitError
	}
	chosen := question.Select(questions, now, r.cfg.MaxQuestions)
	slog.Info("questions selected", "available", len(questions), "chosen", len(chosen))

	limiter := risk.NewRateLimiter(r.cfg.MaxQuestions)
	lines := make([]storage.SummaryLine, 0, len(chosen))
	submitted := 0
	var runErr error

	for _, q := range chosen {
		qOpen, qStatus := question.IsQuestionOpen(q, nowUS)
		canSubmit := tournamentOpen && qOpen && limiter.Allow()

		bundle := research.Retrieve(ctx, q, r.searcher)
		roleOutputs := llm.RunRoles(ctx, q, bundle, r.backend)

		baseline := forecast.Baseline(q)
		features := forecast.ExtractFeatures(q, len(bundle.Items))
		statistical := forecast.Stats(q, features.EvidenceCount, now)
		llmEstimate := forecast.FromRole(roleOutputs["forecaster"])
		final := forecast.Combine(q, baseline, statistical, llmEstimate, r.cfg.MinProb, r.cfg.MaxProb)
		reasoning := reasoningText(q, bundle)

		record, err := MaybeSubmit(ctx, r.platform, r.cfg, st, q, final, reasoning, canSubmit, now)
		if err != nil {
			// Live-mode submission failures must stay visible; finish the
			// bookkeeping for this question, then stop the run.
			slog.Error("submission failed", "question_id", q.ID, "error", err)
			runErr = err
		}
		if !canSubmit && record.Status == StatusSkippedNotOpen {
			slog.Info("question window closed", "question_id", q.ID, "status", qStatus)
		}
		if record.Submitted {
			submitted++
		}

		r.logQuestion(QuestionRecord{
			RunID:            runID,
			RunTimeUTC:       utcISO,
			RunTimeUS:        usISO,
			QuestionID:       q.ID,
			QuestionTitle:    q.Title,
			QuestionType:     string(q.Type),
			OpenStatus:       string(qStatus),
			TournamentStatus: string(tournamentStatus),
			Baseline:         baseline,
			Stats:            statistical,
			LLM:              llmEstimate,
			Roles:            roleOutputs,
			FinalForecast:    final,
			Reasoning:        reasoning,
			Submission:       record,
		}, bundle)
		lines = append(lines, storage.SummaryLine{
			QuestionID:       q.ID,
			OpenStatus:       string(qStatus),
			SubmissionStatus: string(record.Status),
		})

		if runErr != nil {
			break
		}
	}

	if err := store.Save(st); err != nil {
		slog.Error("failed to save submission state", "error", err)
		runErr = err
	}

	runStatus := "SUCCESS"
	if runErr != nil {
		runStatus = "FAILED"
	}
	if err := storage.AppendRunRow(filepath.Join(r.cfg.DataDir, "runs.csv"), storage.RunRow{
		RunID:          runID,
		StartTimeUTC:   utcISO,
		StartTimeUS:    usISO,
		Status:         runStatus,
		QuestionCount:  len(chosen),
		SubmittedCount: submitted,
	}); err != nil {
		slog.Warn("failed to append run row", "error", err)
	}
	if err := storage.WriteSummary(filepath.Join(r.cfg.DataDir, "latest_summary.md"), lines, submitted, utcISO, usISO); err != nil {
		slog.Warn("failed to write summary", "error", err)
	}
	storage.CommitDataChanges(r.cfg.DataDir)

	slog.Info("run complete", "run_id", runID, "questions", len(chosen), "submitted", submitted, "status", runStatus)

	if runErr != nil {
		return ExitError
	}
	if r.cfg.StrictOpenWindow && !tournamentOpen {
		return ExitNothingOpen
	}
	return ExitOK
}

func (r *Runner) logQuestion(record QuestionRecord, bundle research.Bundle) {
	record.Evidence = bundle.Items

	if err := storage.AppendForecastRow(filepath.Join(r.cfg.DataDir, "forecasts.csv"), storage.ForecastRow{
		RunTimeUTC:       record.RunTimeUTC,
		RunTimeUS:        record.RunTimeUS,
		QuestionID:       record.QuestionID,
		QuestionTitle:    record.QuestionTitle,
		QuestionType:     record.QuestionType,
		OpenStatus:       record.OpenStatus,
		TournamentStatus: record.TournamentStatus,
		Submission:       string(record.Submission.Status),
	}); err != nil {
		slog.Warn("failed to append forecast row", "question_id", record.QuestionID, "error", err)
	}
	if err := storage.AppendRecord(filepath.Join(r.cfg.DataDir, "forecasts.jsonl"), record); err != nil {
		slog.Warn("failed to append forecast record", "question_id", record.QuestionID, "error", err)
	}
}

// reasoningText builds the submission comment from the top-ranked evidence.
func reasoningText(q question.Question, bundle research.Bundle) string {
	top := bundle.Items
	if len(top) > 3 {
		top = top[:3]
	}

	citations := make([]string, 0, len(top))
	refs := make([]string, 0, len(top))
	for _, item := range top {
		citations = append(citations, fmt.Sprintf("[%d]", item.Idx))
		refs = append(refs, fmt.Sprintf("[%d] %s (%s)", item.Idx, item.Title, item.URL))
	}
	citationIDs := strings.Join(citations, " ")
	if citationIDs == "" {
		citationIDs = "[1]"
	}

	return fmt.Sprintf(
		"Forecast for '%s' is based on recent evidence %s. Key drivers were extracted from external sources with uncertainty retained.\n\nSources:\n%s",
		q.Title, citationIDs, strings.Join(refs, "\n"),
	)
}
