// Package storage writes the run's audit surfaces: append-only CSV and JSONL
// logs, a markdown summary and a best-effort git commit of the data
// directory. Nothing here feeds back into forecasting.
package storage

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
)

// RunRow is one run-level summary line in runs.csv.
type RunRow struct {
	RunID          string
	StartTimeUTC   string
	StartTimeUS    string
	Status         string
	QuestionCount  int
	SubmittedCount int
}

// ForecastRow is one per-question line in forecasts.csv.
type ForecastRow struct {
	RunTimeUTC       string
	RunTimeUS        string
	QuestionID       int
	QuestionTitle    string
	QuestionType     string
	OpenStatus       string
	TournamentStatus string
	Submission       string
}

func AppendRunRow(path string, row RunRow) error {
	return appendCSV(path,
		[]string{"run_id", "start_time_utc", "start_time_us", "status", "question_count", "submitted_count"},
		[]string{row.RunID, row.StartTimeUTC, row.StartTimeUS, row.Status,
			strconv.Itoa(row.QuestionCount), strconv.Itoa(row.SubmittedCount)})
}

func AppendForecastRow(path string, row ForecastRow) error {
	return appendCSV(path,
		[]string{"run_time_utc", "run_time_us", "question_id", "question_title", "question_type", "open_status", "tournament_status", "submission"},
		[]string{row.RunTimeUTC, row.RunTimeUS, strconv.Itoa(row.QuestionID), row.QuestionTitle,
			row.QuestionType, row.OpenStatus, row.TournamentStatus, row.Submission})
}

// appendCSV appends one record, writing the header first when the file is
// new.
func appendCSV(path string, header, record []string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("creating log directory: %w", err)
	}

	_, statErr := os.Stat(path)
	isNew := os.IsNotExist(statErr)

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("opening csv log: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if isNew {
		if err := w.Write(header); err != nil {
			return fmt.Errorf("writing csv header: %w", err)
		}
	}
	if err := w.Write(record); err != nil {
		return fmt.Errorf("writing csv record: %w", err)
	}
	w.Flush()
	return w.Error()
}
