// Package risk gates outbound submissions: content-hash deduplication with a
// cooldown window, and a per-run submission budget.
package risk

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"
)

// Submission is the persisted record of the last accepted submission for a
// question.
type Submission struct {
	Hash      string `json:"hash"`
	Timestamp string `json:"timestamp"`
}

// SubmissionHash digests the (question, payload, reasoning, model-version)
// tuple. Any change to any field changes the hash; identical inputs always
// produce the same hash.
func SubmissionHash(questionID int, payload any, reasoning, modelVersion string) string {
	encoded, err := json.Marshal(payload)
	if err != nil {
		encoded = []byte(fmt.Sprintf("%+v", payload))
	}
	raw := fmt.Sprintf("%d|%s|%s|%s", questionID, encoded, reasoning, modelVersion)
	sum := sha256.Sum256([]byte(raw))
	return hex.EncodeToString(sum[:])
}

// ShouldSubmit decides whether a new submission is allowed given the last
// one: always when there is no prior or the content hash changed, otherwise
// only once the cooldown has elapsed since the prior submission. A prior
// record with an unreadable timestamp counts as no prior.
func ShouldSubmit(last *Submission, newHash string, cooldownMinutes int, now time.Time) bool {
	if last == nil {
		return true
	}
	if last.Hash != newHash {
		return true
	}
	ts, err := time.Parse(time.RFC3339, last.Timestamp)
	if err != nil {
		return true
	}
	return !now.Before(ts.Add(time.Duration(cooldownMinutes) * time.Minute))
}
