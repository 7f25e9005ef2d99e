package trace

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
)

// DomainStep separates step digests from any other use of SHA-256.
const DomainStep = "scenecore/step/v1"

// Step is the observable state after one scenario step.
type Step struct {
	Index          int      `json:"index"`
	Op             string   `json:"op"`
	Selected       []string `json:"selected"`
	Groups         []string `json:"groups"`
	EditingGroup   string   `json:"editing_group,omitempty"`
	Outlined       []string `json:"outlined"`
	Created        []string `json:"created,omitempty"`
	MutationNonce  int64    `json:"mutation_nonce"`
	SelectionNonce int64    `json:"selection_nonce"`
	StaticPaint    bool     `json:"static_paint"`
	InteractPaint  bool     `json:"interactive_paint"`
	Flushed        int      `json:"flushed,omitempty"`
}

// Snapshot is the full trace of one scenario run.
type Snapshot struct {
	Scenario string `json:"scenario"`
	KeyMode  string `json:"key_mode"`
	Steps    []Step `json:"steps"`
}

// canonicalMap converts s into the value tree MarshalCanonical accepts.
// Empty optional fields are omitted.
func (s Step) canonicalMap() map[string]any {
	m := map[string]any{
		"index":             s.Index,
		"op":                s.Op,
		"selected":          nonNil(s.Selected),
		"groups":            nonNil(s.Groups),
		"outlined":          nonNil(s.Outlined),
		"mutation_nonce":    s.MutationNonce,
		"selection_nonce":   s.SelectionNonce,
		"static_paint":      s.StaticPaint,
		"interactive_paint": s.InteractPaint,
	}
	if s.EditingGroup != "" {
		m["editing_group"] = s.EditingGroup
	}
	if len(s.Created) > 0 {
		m["created"] = s.Created
	}
	if s.Flushed > 0 {
		m["flushed"] = s.Flushed
	}
	return m
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

// MarshalStep encodes one step canonically.
func MarshalStep(s Step) ([]byte, error) {
	return MarshalCanonical(s.canonicalMap())
}

// MarshalSnapshot encodes a whole run canonically.
func MarshalSnapshot(s Snapshot) ([]byte, error) {
	steps := make([]any, len(s.Steps))
	for i, step := range s.Steps {
		steps[i] = step.canonicalMap()
	}
	return MarshalCanonical(map[string]any{
		"scenario": s.Scenario,
		"key_mode": s.KeyMode,
		"steps":    steps,
	})
}

// Digest returns the domain-separated SHA-256 of a step's canonical form.
func Digest(s Step) (string, error) {
	data, err := MarshalStep(s)
	if err != nil {
		return "", fmt.Errorf("digest step %d: %w", s.Index, err)
	}
	return DigestCanonical(data), nil
}

// DigestCanonical hashes an already canonical step encoding.
// Format: SHA256(domain + 0x00 + data)
func DigestCanonical(data []byte) string {
	h := sha256.New()
	h.Write([]byte(DomainStep))
	h.Write([]byte{0x00})
	h.Write(data)
	return hex.EncodeToString(h.Sum(nil))
}
