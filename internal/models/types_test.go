// Viatrix - Travel Search Session Analytics
// Copyright 2026 Viatrix Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/viatrixhq/viatrix

package models

import (
	"testing"

	"github.com/goccy/go-json"
)

func TestIntentLabelString(t *testing.T) {
	tests := []struct {
		label IntentLabel
		want  string
	}{
		{IntentHigh, "High Intent"},
		{IntentLow, "Low Intent"},
		{IntentLabel(99), "unknown"},
	}

	for _, tt := range tests {
		if got := tt.label.String(); got != tt.want {
			t.Errorf("IntentLabel(%d).String() = %q, want %q", tt.label, got, tt.want)
		}
	}
}

func TestSessionIntentJSON(t *testing.T) {
	si := SessionIntent{
		SessionID:   "s-42",
		IntentScore: 0.125,
		IntentLabel: IntentHigh,
	}

	data, err := json.Marshal(si)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}

	var decoded SessionIntent
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if decoded.IntentLabel != IntentHigh {
		t.Errorf("IntentLabel = %v, want IntentHigh", decoded.IntentLabel)
	}
	if decoded.SessionID != si.SessionID || decoded.IntentScore != si.IntentScore {
		t.Errorf("round trip = %+v, want %+v", decoded, si)
	}
}

func TestIntentLabelUnmarshalRejectsUnknown(t *testing.T) {
	var l IntentLabel
	if err := l.UnmarshalJSON([]byte(`"Medium Intent"`)); err == nil {
		t.Error("UnmarshalJSON() accepted an unknown label, want error")
	}
}

func TestSessionDistinctCityCount(t *testing.T) {
	s := Session{
		ID:           "s-1",
		Cities:       []string{"Paris", "Lyon"},
		SearchCounts: map[string]int{"Paris": 3, "Lyon": 1},
	}
	if got := s.DistinctCityCount(); got != 2 {
		t.Errorf("DistinctCityCount() = %d, want 2", got)
	}
}
