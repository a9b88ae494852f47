// Viatrix - Travel Search Session Analytics
// Copyright 2026 Viatrix Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/viatrixhq/viatrix

package intent

import (
	"context"
	"errors"
	"testing"

	"github.com/viatrixhq/viatrix/internal/models"
	"github.com/viatrixhq/viatrix/internal/similarity"
)

func buildMatrix(t *testing.T, sessions []models.Session) *similarity.Matrix {
	t.Helper()
	m, err := similarity.BuildMatrix(context.Background(), similarity.BuildVectorSet(sessions), similarity.Options{NumWorkers: 1})
	if err != nil {
		t.Fatalf("BuildMatrix() error = %v", err)
	}
	return m
}

func scenarioSessions() []models.Session {
	return []models.Session{
		{ID: "S1", Cities: []string{"Aachen", "Bergen"}, SearchCounts: map[string]int{"Aachen": 1, "Bergen": 1}},
		{ID: "S2", Cities: []string{"Aachen", "Bergen"}, SearchCounts: map[string]int{"Aachen": 1, "Bergen": 1}},
		{ID: "S3", Cities: []string{"Cork"}, SearchCounts: map[string]int{"Cork": 1}},
	}
}

func TestScoreScenario(t *testing.T) {
	sessions := scenarioSessions()
	m := buildMatrix(t, sessions)

	got, err := Score(&sessions[0], m)
	if err != nil {
		t.Fatalf("Score() error = %v", err)
	}
	if got != 1.0 {
		t.Errorf("Score(S1) = %v, want 1.0", got)
	}
}

func TestScoreSingleCityFails(t *testing.T) {
	sessions := scenarioSessions()
	m := buildMatrix(t, sessions)

	if _, err := Score(&sessions[2], m); !errors.Is(err, ErrInsufficientCities) {
		t.Errorf("Score() error = %v, want ErrInsufficientCities", err)
	}
}

func TestScoreUnknownCityPropagates(t *testing.T) {
	m := buildMatrix(t, scenarioSessions())
	s := models.Session{ID: "SX", Cities: []string{"Aachen", "Zagreb"}}

	if _, err := Score(&s, m); !errors.Is(err, similarity.ErrUnknownCity) {
		t.Errorf("Score() error = %v, want ErrUnknownCity", err)
	}
}

func TestScoreMeanOverPairs(t *testing.T) {
	// Three cities where only one pair ever co-occurs: the three pair
	// similarities are sim(A,B)=1, sim(A,C)=0, sim(B,C)=0, mean 1/3.
	sessions := []models.Session{
		{ID: "S1", Cities: []string{"A", "B"}, SearchCounts: map[string]int{"A": 1, "B": 1}},
		{ID: "S2", Cities: []string{"C"}, SearchCounts: map[string]int{"C": 1}},
	}
	m := buildMatrix(t, sessions)

	s := models.Session{ID: "SX", Cities: []string{"A", "B", "C"}}
	got, err := Score(&s, m)
	if err != nil {
		t.Fatalf("Score() error = %v", err)
	}
	if want := 1.0 / 3.0; got != want {
		t.Errorf("Score() = %v, want %v", got, want)
	}
}

func TestClassifyExcludesSingleCitySessions(t *testing.T) {
	sessions := scenarioSessions()
	m := buildMatrix(t, sessions)

	res, err := Classify(sessions, m, Config{})
	if err != nil {
		t.Fatalf("Classify() error = %v", err)
	}

	if len(res.Intents) != 2 {
		t.Fatalf("len(Intents) = %d, want 2 (S3 excluded)", len(res.Intents))
	}
	for _, si := range res.Intents {
		if si.SessionID == "S3" {
			t.Error("single-city session S3 was labeled")
		}
	}
}

func TestClassifyLabelsAgainstDerivedCutoff(t *testing.T) {
	// Two disjoint city pairs plus one mixed session produce a spread of
	// scores; the bottom quantile must come out Low Intent.
	sessions := []models.Session{
		{ID: "S1", Cities: []string{"A", "B"}, SearchCounts: map[string]int{"A": 1, "B": 1}},
		{ID: "S2", Cities: []string{"A", "B"}, SearchCounts: map[string]int{"A": 1, "B": 1}},
		{ID: "S3", Cities: []string{"C", "D"}, SearchCounts: map[string]int{"C": 1, "D": 1}},
		{ID: "S4", Cities: []string{"A", "C"}, SearchCounts: map[string]int{"A": 1, "C": 1}},
	}
	m := buildMatrix(t, sessions)

	res, err := Classify(sessions, m, Config{CutoffQuantile: 0.25})
	if err != nil {
		t.Fatalf("Classify() error = %v", err)
	}
	if len(res.Intents) != 4 {
		t.Fatalf("len(Intents) = %d, want 4", len(res.Intents))
	}

	byID := make(map[string]models.SessionIntent)
	var high, low int
	for _, si := range res.Intents {
		byID[si.SessionID] = si
		switch si.IntentLabel {
		case models.IntentHigh:
			high++
		case models.IntentLow:
			low++
		}
	}

	// S4's cities never co-occur elsewhere: lowest score, Low Intent.
	if byID["S4"].IntentLabel != models.IntentLow {
		t.Errorf("S4 label = %v, want Low Intent", byID["S4"].IntentLabel)
	}
	if high == 0 || low == 0 {
		t.Errorf("labels all on one side: %d high, %d low", high, low)
	}
	for _, si := range res.Intents {
		if si.IntentScore > res.Cutoff && si.IntentLabel != models.IntentHigh {
			t.Errorf("%s: score %v > cutoff %v but labeled %v", si.SessionID, si.IntentScore, res.Cutoff, si.IntentLabel)
		}
		if si.IntentScore <= res.Cutoff && si.IntentLabel != models.IntentLow {
			t.Errorf("%s: score %v <= cutoff %v but labeled %v", si.SessionID, si.IntentScore, res.Cutoff, si.IntentLabel)
		}
	}
}

func TestClassifyEmptyInput(t *testing.T) {
	m := buildMatrix(t, nil)

	res, err := Classify(nil, m, Config{})
	if err != nil {
		t.Fatalf("Classify() error = %v", err)
	}
	if len(res.Intents) != 0 {
		t.Errorf("len(Intents) = %d, want 0", len(res.Intents))
	}
}

func TestClassifyOnlySingleCitySessions(t *testing.T) {
	sessions := []models.Session{
		{ID: "S1", Cities: []string{"A"}, SearchCounts: map[string]int{"A": 1}},
		{ID: "S2", Cities: []string{"B"}, SearchCounts: map[string]int{"B": 1}},
	}
	m := buildMatrix(t, sessions)

	res, err := Classify(sessions, m, Config{})
	if err != nil {
		t.Fatalf("Classify() error = %v", err)
	}
	if len(res.Intents) != 0 {
		t.Errorf("len(Intents) = %d, want 0", len(res.Intents))
	}
}

func TestClassifyDefaultsBadQuantile(t *testing.T) {
	sessions := scenarioSessions()
	m := buildMatrix(t, sessions)

	for _, q := range []float64{0, -1, 1, 2} {
		if _, err := Classify(sessions, m, Config{CutoffQuantile: q}); err != nil {
			t.Errorf("Classify(q=%v) error = %v, want nil (default applied)", q, err)
		}
	}
}
