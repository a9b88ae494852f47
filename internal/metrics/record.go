// Viatrix - Travel Search Session Analytics
// Copyright 2026 Viatrix Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/viatrixhq/viatrix

package metrics

import (
	"time"

	"github.com/viatrixhq/viatrix/internal/models"
)

// RecordStage records the duration of one pipeline stage.
func RecordStage(stage string, duration time.Duration) {
	StageDuration.WithLabelValues(stage).Observe(duration.Seconds())
}

// RecordRun records a completed pipeline run outcome.
func RecordRun(err error) {
	status := "success"
	if err != nil {
		status = "error"
	}
	PipelineRuns.WithLabelValues(status).Inc()
}

// RecordIntents records classified session counts by label.
func RecordIntents(intents []models.SessionIntent) {
	var high, low float64
	for _, si := range intents {
		if si.IntentLabel == models.IntentHigh {
			high++
		} else {
			low++
		}
	}
	IntentSessions.WithLabelValues(models.IntentHigh.String()).Add(high)
	IntentSessions.WithLabelValues(models.IntentLow.String()).Add(low)
}
