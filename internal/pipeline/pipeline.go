// Viatrix - Travel Search Session Analytics
// Copyright 2026 Viatrix Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/viatrixhq/viatrix

// Package pipeline orchestrates one batch analysis run: session
// ingestion, vector and matrix construction, neighbor recommendation,
// and intent classification.
//
// The run is all-or-nothing. Any stage error aborts with no partial
// outputs; a failed run never leaves a result file behind.
package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/viatrixhq/viatrix/internal/config"
	"github.com/viatrixhq/viatrix/internal/intent"
	"github.com/viatrixhq/viatrix/internal/logging"
	"github.com/viatrixhq/viatrix/internal/metrics"
	"github.com/viatrixhq/viatrix/internal/models"
	"github.com/viatrixhq/viatrix/internal/recommend"
	"github.com/viatrixhq/viatrix/internal/session"
	"github.com/viatrixhq/viatrix/internal/similarity"
)

// Pipeline runs the full analysis over one session source.
type Pipeline struct {
	cfg    *config.Config
	source session.Source
}

// New creates a pipeline over the given source.
func New(cfg *config.Config, source session.Source) *Pipeline {
	return &Pipeline{cfg: cfg, source: source}
}

// Result holds the outputs of one completed run.
type Result struct {
	// RunID identifies the run in logs and outputs.
	RunID string `json:"run_id"`

	// SessionCount is the number of normalized sessions analyzed.
	SessionCount int `json:"session_count"`

	// VocabularySize is the number of distinct cities.
	VocabularySize int `json:"vocabulary_size"`

	// Recommendations holds one record per city, ordered by city name.
	Recommendations []models.CityRecommendation `json:"recommendations"`

	// Intent is the classifier output with the derived cutoff and the
	// score distribution summary.
	Intent *intent.Result `json:"intent"`
}

// Run executes one full pass. The similarity matrix and all derived
// outputs are recomputed wholesale from the current session population;
// nothing is reused between runs.
func (p *Pipeline) Run(ctx context.Context) (result *Result, err error) {
	defer func() { metrics.RecordRun(err) }()

	runID := logging.NewRunID()
	ctx = logging.ContextWithRunID(ctx, runID)
	logger := logging.Ctx(ctx)

	start := time.Now()
	logger.Info().Msg("pipeline run started")

	sessions, err := p.ingest(ctx)
	if err != nil {
		return nil, err
	}
	metrics.SessionsIngested.Set(float64(len(sessions)))

	vecStart := time.Now()
	vs := similarity.BuildVectorSet(sessions)
	metrics.RecordStage("vectorize", time.Since(vecStart))
	metrics.VocabularySize.Set(float64(vs.Len()))
	logger.Info().
		Int("sessions", len(sessions)).
		Int("cities", vs.Len()).
		Msg("city vectors built")

	matStart := time.Now()
	matrix, err := similarity.BuildMatrix(ctx, vs, similarity.Options{
		NumWorkers: p.cfg.Similarity.NumWorkers,
	})
	if err != nil {
		return nil, fmt.Errorf("building similarity matrix: %w", err)
	}
	metrics.RecordStage("similarity", time.Since(matStart))
	logger.Info().
		Dur("elapsed", time.Since(matStart)).
		Msg("similarity matrix built")

	recStart := time.Now()
	recs, err := recommend.Neighbors(matrix)
	if err != nil {
		return nil, fmt.Errorf("computing neighbors: %w", err)
	}
	metrics.RecordStage("recommend", time.Since(recStart))

	clsStart := time.Now()
	intentResult, err := intent.Classify(sessions, matrix, intent.Config{
		CutoffQuantile: p.cfg.Intent.CutoffQuantile,
	})
	if err != nil {
		return nil, fmt.Errorf("classifying sessions: %w", err)
	}
	metrics.RecordStage("classify", time.Since(clsStart))
	metrics.RecordIntents(intentResult.Intents)
	logger.Info().
		Int("classified", len(intentResult.Intents)).
		Float64("cutoff", intentResult.Cutoff).
		Msg("sessions classified")

	result = &Result{
		RunID:           runID,
		SessionCount:    len(sessions),
		VocabularySize:  vs.Len(),
		Recommendations: recs,
		Intent:          intentResult,
	}

	if err := p.writeOutputs(result); err != nil {
		return nil, err
	}

	logger.Info().
		Dur("elapsed", time.Since(start)).
		Msg("pipeline run finished")
	return result, nil
}

// ingest reads and normalizes the session table.
func (p *Pipeline) ingest(ctx context.Context) ([]models.Session, error) {
	start := time.Now()

	records, err := p.source.Records(ctx)
	if err != nil {
		return nil, fmt.Errorf("reading session records: %w", err)
	}
	sessions, err := session.Build(records)
	if err != nil {
		return nil, fmt.Errorf("normalizing sessions: %w", err)
	}

	metrics.RecordStage("ingest", time.Since(start))
	return sessions, nil
}
