// Package state persists the submission deduplication state as a flat JSON
// file, loaded once at run start and rewritten atomically at run end.
package state

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"metacbot/internal/risk"
)

// State maps question ids (as strings) to their last accepted submission.
type State struct {
	Submissions map[string]risk.Submission `json:"submissions"`
}

// Store reads and writes the state file.
type Store struct {
	path string
}

func NewStore(path string) *Store {
	return &Store{path: path}
}

// Load reads the state file. A missing file yields an empty state, not an
// error.
func (s *Store) Load() (*State, error) {
	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return &State{Submissions: make(map[string]risk.Submission)}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading state: %w", err)
	}

	var st State
	if err := json.Unmarshal(data, &st); err != nil {
		return nil, fmt.Errorf("parsing state: %w", err)
	}
	if st.Submissions == nil {
		st.Submissions = make(map[string]risk.Submission)
	}
	return &st, nil
}

// Save rewrites the whole state file atomically (temp file + rename). Keys
// are emitted sorted so successive runs produce stable diffs.
func (s *Store) Save(st *State) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return fmt.Errorf("creating state directory: %w", err)
	}

	data, err := json.MarshalIndent(st, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding state: %w", err)
	}
	data = append(data, '\n')

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return fmt.Errorf("writing state: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("replacing state: %w", err)
	}
	return nil
}
