package main

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"

	"github.com/rxtech-lab/argo-signal/internal/backtest"
	"github.com/rxtech-lab/argo-signal/internal/config"
	"github.com/rxtech-lab/argo-signal/internal/datasource"
	"github.com/rxtech-lab/argo-signal/internal/logger"
	"github.com/rxtech-lab/argo-signal/internal/pipeline"
	"github.com/rxtech-lab/argo-signal/internal/types"
	"github.com/rxtech-lab/argo-signal/internal/validator"
	"github.com/rxtech-lab/argo-signal/internal/version"
	"github.com/rxtech-lab/argo-signal/internal/writer"
	"github.com/rxtech-lab/argo-signal/pkg/errors"
	"github.com/schollz/progressbar/v3"
	"github.com/urfave/cli/v3"
	"go.uber.org/zap"
)

// session holds what both run and validate need.
type session struct {
	config   config.RunConfig
	log      *logger.Logger
	ds       *datasource.DuckDBDataSource
	pipeline *pipeline.Pipeline
	bars     []types.Bar
	table    []types.SignalRow
}

func newSession(path string) (*session, error) {
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}

	log, err := logger.NewLoggerWithLevel(cfg.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}

	ds, err := datasource.NewDataSource(cfg.TimeColumn, log)
	if err != nil {
		return nil, err
	}

	s := &session{config: cfg, log: log, ds: ds}

	if err := s.compute(); err != nil {
		s.close()

		return nil, err
	}

	return s, nil
}

func (s *session) compute() error {
	if err := s.ds.Initialize(s.config.DataPath); err != nil {
		return err
	}

	start, end, err := s.config.TimeRange()
	if err != nil {
		return err
	}

	s.bars, err = datasource.LoadBars(s.ds, start, end)
	if err != nil {
		return err
	}

	s.log.Info("Loaded bars", zap.String("path", s.config.DataPath), zap.Int("bars", len(s.bars)))

	s.pipeline, err = pipeline.NewFromConfig(s.config.Indicators, s.config.Strategy, s.log)
	if err != nil {
		return err
	}

	s.table, err = s.pipeline.RunTable(s.bars)

	return err
}

func (s *session) records() []types.SignalRecord {
	records := make([]types.SignalRecord, len(s.table))
	for i, row := range s.table {
		records[i] = row.Record
	}

	return records
}

func (s *session) validate(ctx context.Context) (validator.Report, error) {
	progress := &validationProgress{}

	v, err := validator.NewValidator(s.pipeline, s.config.Validation, s.log, validator.WithProgress(progress.update))
	if err != nil {
		return validator.Report{}, err
	}

	report, err := v.Validate(ctx, s.bars, s.records())
	progress.finish()

	return report, err
}

func (s *session) close() {
	if err := s.ds.Close(); err != nil {
		s.log.Warn("Failed to close data source", zap.Error(err))
	}

	_ = s.log.Sync()
}

// validationProgress draws a bar once the number of checks is known.
type validationProgress struct {
	once sync.Once
	bar  *progressbar.ProgressBar
}

func (p *validationProgress) update(done, total int) {
	p.once.Do(func() {
		p.bar = progressbar.Default(int64(total), "Validating signals")
	})

	_ = p.bar.Set(done)
}

func (p *validationProgress) finish() {
	if p.bar != nil {
		_ = p.bar.Finish()
	}
}

func lookaheadError(report validator.Report) error {
	first := report.Violations[0]

	return errors.Newf(errors.ErrCodeLookaheadViolation,
		"lookahead bias detected at bar %d: expected %s, got %s on the truncated series (%d violations)",
		first.Index, first.Expected.TradeType, first.Actual.TradeType, len(report.Violations))
}

func validateAction(ctx context.Context, cmd *cli.Command) error {
	s, err := newSession(cmd.String("config"))
	if err != nil {
		return err
	}
	defer s.close()

	if mode := cmd.String("mode"); mode != "" {
		s.config.Validation.Mode = validator.Mode(mode)
	}

	report, err := s.validate(ctx)
	if err != nil {
		return err
	}

	fmt.Println(renderReport(report))

	if !report.NoBias {
		return lookaheadError(report)
	}

	return nil
}

func runAction(ctx context.Context, cmd *cli.Command) error {
	s, err := newSession(cmd.String("config"))
	if err != nil {
		return err
	}
	defer s.close()

	report, err := s.validate(ctx)
	if err != nil {
		return err
	}

	fmt.Println(renderReport(report))

	if !report.NoBias {
		return lookaheadError(report)
	}

	signalsPath := filepath.Join(s.config.ResultsFolder, "signals."+string(s.config.OutputFormat))

	w, err := writer.NewSignalTableWriter(s.config.OutputFormat, signalsPath, s.log)
	if err != nil {
		return err
	}

	if err := w.Write(s.table); err != nil {
		return err
	}

	bt, err := backtest.NewBacktester(backtest.Config{
		Symbol:         s.config.Symbol,
		SignalDataPath: w.Path(),
		MasterDataPath: w.Path(),
		Compound:       s.config.Compound,
		PeriodsPerYear: s.config.Backtest.PeriodsPerYear,
	}, s.ds, s.log)
	if err != nil {
		return err
	}

	trades, err := bt.ComputeTrades(s.config.InitialCapital)
	if err != nil {
		return err
	}

	stats, err := bt.WriteResults(s.config.ResultsFolder, types.StrategyInfo{
		Variant:        string(s.config.Strategy.Variant),
		EngineVersion:  version.GetVersion(),
		WarmupOffset:   s.pipeline.Engine().WarmupOffset(),
		LookaheadValid: report.NoBias,
	})
	if err != nil {
		return err
	}

	fmt.Println(renderTrades(trades, 10))
	fmt.Println(renderStatistics(bt.ComputeStatistics()))
	fmt.Println(HelpStyle.Render("Results written to " + filepath.Dir(stats.TradesFilePath)))

	return nil
}

func schemaAction(_ context.Context, _ *cli.Command) error {
	schema, err := config.GenerateSchemaJSON()
	if err != nil {
		return fmt.Errorf("failed to generate schema: %w", err)
	}

	fmt.Println(schema)

	return nil
}
