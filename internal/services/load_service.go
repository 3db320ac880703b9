package services

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/vvka-141/pgload/internal/loader"
	"github.com/vvka-141/pgload/internal/schema"
	"github.com/vvka-141/pgload/pkg/pgload"
)

// rollbackTimeout bounds the rollback issued after a failed file. It runs on
// a context detached from the file's own, which may already be expired.
const rollbackTimeout = 30 * time.Second

// ParserFactory builds the parser for a run's delimiter.
type ParserFactory func(delimiter rune) pgload.Parser

// LoadService loads every matching file of a directory into its own table,
// one transaction per file.
//
// Thread-Safety: NOT safe for concurrent Run() calls on the same instance.
type LoadService struct {
	connector     pgload.Connector
	fileScanner   pgload.FileScanner
	parserFactory ParserFactory
	logger        pgload.Logger
}

// NewLoadService creates a new LoadService with all dependencies injected.
// Panics on nil dependencies; runtime conditions are returned as errors from Run.
func NewLoadService(
	connector pgload.Connector,
	fileScanner pgload.FileScanner,
	parserFactory ParserFactory,
	logger pgload.Logger,
) *LoadService {
	if connector == nil {
		panic("connector cannot be nil")
	}
	if fileScanner == nil {
		panic("fileScanner cannot be nil")
	}
	if parserFactory == nil {
		panic("parserFactory cannot be nil")
	}
	if logger == nil {
		panic("logger cannot be nil")
	}

	return &LoadService{
		connector:     connector,
		fileScanner:   fileScanner,
		parserFactory: parserFactory,
		logger:        logger,
	}
}

// Run loads the files selected by cfg in name order and returns one result
// per attempted file. A failing file is rolled back and the run moves on.
//
// The returned error is non-nil only when the run as a whole could not
// proceed: invalid config, missing directory, no input files, connection
// failure, or cancellation of ctx before or while connecting or between
// files (ErrInterrupted, with the partial summary).
func (s *LoadService) Run(ctx context.Context, cfg pgload.LoadConfig) (pgload.RunSummary, error) {
	cfg = cfg.WithDefaults()
	summary := pgload.RunSummary{RunID: cfg.RunID}

	if err := cfg.Validate(); err != nil {
		return summary, err
	}

	files, err := s.fileScanner.ListFiles(cfg.SourcePath, cfg.Pattern)
	if err != nil {
		return summary, err
	}
	if len(files) == 0 {
		return summary, fmt.Errorf("%w: no files matching %q in %s", pgload.ErrNoInputFiles, cfg.Pattern, cfg.SourcePath)
	}
	s.logger.Verbose("Found %d file(s) matching %q in %s", len(files), cfg.Pattern, cfg.SourcePath)

	if ctx.Err() != nil {
		summary.Interrupted = true
		return summary, fmt.Errorf("%w: stopped before connecting", pgload.ErrInterrupted)
	}

	conn, err := s.connector.Connect(ctx)
	if err != nil {
		if ctx.Err() != nil {
			summary.Interrupted = true
			return summary, fmt.Errorf("%w: stopped while connecting: %v", pgload.ErrInterrupted, err)
		}
		if errors.Is(err, pgload.ErrConnectionFailed) {
			return summary, err
		}
		return summary, fmt.Errorf("%w: %w", pgload.ErrConnectionFailed, err)
	}
	defer func() {
		if err := conn.Close(context.WithoutCancel(ctx)); err != nil {
			s.logger.Verbose("Closing connection: %v", err)
		}
	}()

	parser := s.parserFactory(cfg.Delimiter)

	for i, path := range files {
		if ctx.Err() != nil {
			summary.Interrupted = true
			return summary, fmt.Errorf("%w: stopped after %d of %d files", pgload.ErrInterrupted, i, len(files))
		}

		result := s.loadFile(ctx, conn, parser, path, cfg)
		summary.Results = append(summary.Results, result)

		if result.Succeeded() {
			s.logger.Info("✓ %s → %s (%d rows, %d columns, %v)",
				result.FileName, result.TableName, result.Rows, result.Columns, result.Duration.Round(time.Millisecond))
		} else {
			s.logger.Error("✗ %s: %v", result.FileName, result.Err)
		}
	}

	return summary, nil
}

// loadFile runs one file through parse, schema, provision and insert inside
// a single transaction. The file's context ignores interrupts, so a file
// that has started is finished or rolled back, and is bounded by
// cfg.FileTimeout when set.
func (s *LoadService) loadFile(ctx context.Context, conn pgload.DBConnection, parser pgload.Parser, path string, cfg pgload.LoadConfig) pgload.LoadResult {
	start := time.Now()
	name := filepath.Base(path)
	result := pgload.LoadResult{
		FileName:  name,
		TableName: schema.SanitizeTableName(strings.TrimSuffix(name, filepath.Ext(name))),
	}

	fileCtx := context.WithoutCancel(ctx)
	if cfg.FileTimeout > 0 {
		var cancel context.CancelFunc
		fileCtx, cancel = context.WithTimeout(fileCtx, cfg.FileTimeout)
		defer cancel()
	}

	rows, columns, err := s.loadInTransaction(fileCtx, conn, parser, path, result.TableName, cfg.BatchSize)
	result.Duration = time.Since(start)
	if err != nil {
		result.Status = pgload.StatusFailed
		result.Err = err
		return result
	}

	result.Status = pgload.StatusSuccess
	result.Rows = rows
	result.Columns = columns
	return result
}

func (s *LoadService) loadInTransaction(ctx context.Context, conn pgload.DBConnection, parser pgload.Parser, path, table string, batchSize int) (rows, columns int, err error) {
	s.logger.Verbose("%s: BEGIN", table)
	tx, err := conn.Begin(ctx)
	if err != nil {
		return 0, 0, fmt.Errorf("%w: failed to begin transaction: %w", pgload.ErrDatabase, err)
	}
	defer func() {
		if err == nil {
			return
		}
		rbCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), rollbackTimeout)
		defer cancel()
		if rbErr := tx.Rollback(rbCtx); rbErr != nil {
			s.logger.Error("%s: rollback failed: %v", table, rbErr)
			return
		}
		s.logger.Verbose("%s: ROLLED_BACK", table)
	}()

	s.logger.Verbose("%s: PARSING %s", table, path)
	ds, err := parser.Parse(path)
	if err != nil {
		return 0, 0, err
	}

	s.logger.Verbose("%s: SCHEMA_BUILDING (%d columns, %d rows)", table, len(ds.Columns), ds.RowCount())
	ts, err := schema.Build(table, ds)
	if err != nil {
		return 0, 0, err
	}
	s.logger.Verbose("%s: schema %s", table, ts)

	s.logger.Verbose("%s: PROVISIONING", table)
	if err := loader.Provision(ctx, tx, ts); err != nil {
		return 0, 0, err
	}

	s.logger.Verbose("%s: LOADING", table)
	inserted, err := loader.LoadRows(ctx, tx, ts, ds, batchSize, func(done, total int) {
		s.logger.Verbose("%s: Inserted %d/%d rows", table, done, total)
	})
	if err != nil {
		return 0, 0, err
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, 0, fmt.Errorf("%w: failed to commit: %w", pgload.ErrDatabase, err)
	}
	s.logger.Verbose("%s: COMMITTED", table)

	return inserted, len(ts.Columns), nil
}
