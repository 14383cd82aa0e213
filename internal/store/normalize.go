package store

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Persisted frameworks drifted in shape over time: criterion entries were
// stored as plain strings early on, as {question, description} records later,
// and occasionally as a string-encoded record (a record that was serialized
// into a string field by an old editor). All of that is absorbed here, once,
// at unmarshal time. Downstream code only ever sees the canonical shape.

// UnmarshalJSON normalizes every legacy criterion encoding into a Criterion.
func (s *CriterionSet) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*s = nil
		return nil
	}
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("criterion set: %w", err)
	}
	out := make(CriterionSet, len(raw))
	for key, val := range raw {
		c, err := normalizeCriterion(val)
		if err != nil {
			return fmt.Errorf("criterion %q: %w", key, err)
		}
		out[key] = c
	}
	*s = out
	return nil
}

func normalizeCriterion(raw json.RawMessage) (Criterion, error) {
	var c Criterion
	if err := json.Unmarshal(raw, &c); err == nil {
		return c, nil
	}

	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return Criterion{}, fmt.Errorf("neither record nor string")
	}
	return criterionFromString(s), nil
}

// criterionFromString handles the two legacy string encodings: a bare
// question string, and a record that was itself serialized into a string.
func criterionFromString(s string) Criterion {
	trimmed := strings.TrimSpace(s)
	if strings.HasPrefix(trimmed, "{") && strings.Contains(trimmed, "question") {
		var c Criterion
		if err := json.Unmarshal([]byte(trimmed), &c); err == nil {
			return c
		}
		// Old editors wrote the record with single quotes. One lenient pass.
		requoted := strings.ReplaceAll(trimmed, `'`, `"`)
		if err := json.Unmarshal([]byte(requoted), &c); err == nil {
			return c
		}
	}
	return Criterion{Question: s}
}

// UnmarshalJSON normalizes additional criteria so every entry carries both a
// question and a description, deriving the question from the description when
// only one was stored.
func (s *AdditionalCriterionSet) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*s = nil
		return nil
	}
	type plain AdditionalCriterion
	var raw map[string]plain
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("additional criterion set: %w", err)
	}
	out := make(AdditionalCriterionSet, len(raw))
	for key, val := range raw {
		ac := AdditionalCriterion(val)
		if ac.Question == "" && ac.Description != "" {
			ac.Question = ac.Description
		}
		out[key] = ac
	}
	*s = out
	return nil
}

// UnmarshalJSON defaults a weight snapshot that predates explicit weights:
// missing weight becomes 0.5 and missing type becomes positive.
func (w *AdditionalWeight) UnmarshalJSON(data []byte) error {
	var raw struct {
		Weight *float64      `json:"weight"`
		Type   CriterionType `json:"type"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("additional weight: %w", err)
	}
	w.Weight = 0.5
	if raw.Weight != nil {
		w.Weight = *raw.Weight
	}
	w.Type = raw.Type
	if w.Type == "" {
		w.Type = TypePositive
	}
	return nil
}

// UnmarshalJSON defaults the active flag to true for frameworks saved before
// the flag existed.
func (f *Framework) UnmarshalJSON(data []byte) error {
	type plain Framework
	aux := struct {
		Active *bool `json:"active"`
		*plain
	}{plain: (*plain)(f)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	f.Active = aux.Active == nil || *aux.Active
	return nil
}
