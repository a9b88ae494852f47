// Viatrix - Travel Search Session Analytics
// Copyright 2026 Viatrix Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/viatrixhq/viatrix

package metrics

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	dto "github.com/prometheus/client_model/go"

	"github.com/viatrixhq/viatrix/internal/models"
)

func TestRecordRun(t *testing.T) {
	before := testutil.ToFloat64(PipelineRuns.WithLabelValues("success"))
	RecordRun(nil)
	if got := testutil.ToFloat64(PipelineRuns.WithLabelValues("success")); got != before+1 {
		t.Errorf("success runs = %v, want %v", got, before+1)
	}

	beforeErr := testutil.ToFloat64(PipelineRuns.WithLabelValues("error"))
	RecordRun(errors.New("boom"))
	if got := testutil.ToFloat64(PipelineRuns.WithLabelValues("error")); got != beforeErr+1 {
		t.Errorf("error runs = %v, want %v", got, beforeErr+1)
	}
}

func TestRecordIntents(t *testing.T) {
	beforeHigh := testutil.ToFloat64(IntentSessions.WithLabelValues("High Intent"))
	beforeLow := testutil.ToFloat64(IntentSessions.WithLabelValues("Low Intent"))

	RecordIntents([]models.SessionIntent{
		{SessionID: "S1", IntentLabel: models.IntentHigh},
		{SessionID: "S2", IntentLabel: models.IntentHigh},
		{SessionID: "S3", IntentLabel: models.IntentLow},
	})

	if got := testutil.ToFloat64(IntentSessions.WithLabelValues("High Intent")); got != beforeHigh+2 {
		t.Errorf("high intent count = %v, want %v", got, beforeHigh+2)
	}
	if got := testutil.ToFloat64(IntentSessions.WithLabelValues("Low Intent")); got != beforeLow+1 {
		t.Errorf("low intent count = %v, want %v", got, beforeLow+1)
	}
}

func TestRecordStageObserved(t *testing.T) {
	RecordStage("similarity", 50*time.Millisecond)

	families, err := prometheus.DefaultGatherer.Gather()
	if err != nil {
		t.Fatalf("Gather() error = %v", err)
	}

	var found *dto.MetricFamily
	for _, mf := range families {
		if mf.GetName() == "viatrix_pipeline_stage_duration_seconds" {
			found = mf
			break
		}
	}
	if found == nil {
		t.Fatal("stage duration metric not registered")
	}
	if found.GetType() != dto.MetricType_HISTOGRAM {
		t.Errorf("metric type = %v, want HISTOGRAM", found.GetType())
	}

	for _, m := range found.GetMetric() {
		for _, label := range m.GetLabel() {
			if label.GetName() == "stage" && label.GetValue() == "similarity" {
				if m.GetHistogram().GetSampleCount() == 0 {
					t.Error("similarity stage histogram has no samples")
				}
				return
			}
		}
	}
	t.Error("similarity stage sample not found")
}

func TestGaugesSettable(t *testing.T) {
	SessionsIngested.Set(42)
	if got := testutil.ToFloat64(SessionsIngested); got != 42 {
		t.Errorf("SessionsIngested = %v, want 42", got)
	}

	VocabularySize.Set(7)
	if got := testutil.ToFloat64(VocabularySize); got != 7 {
		t.Errorf("VocabularySize = %v, want 7", got)
	}
}
