package main

import (
	"context"
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jonathan/resume-scorer/internal/batch"
	"github.com/jonathan/resume-scorer/internal/experience"
)

type batchOptions struct {
	target    targetFlags
	jsonOut   bool
	workers   int
	tolerance float64
}

func newBatchCmd(root *rootOptions) *cobra.Command {
	opts := &batchOptions{}

	cmd := &cobra.Command{
		Use:   "batch DIR",
		Short: "Score every resume in a directory and report the score distribution",
		Long: `Scores every *.json resume in DIR concurrently with the same target and mode, then compares
the distribution of overall scores with the calibration target bands. Files that fail to load are
skipped with a warning.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, root, func(ctx context.Context, a *app) error {
				return runBatch(ctx, cmd, a, opts, args[0])
			})
		},
	}

	opts.target.bind(cmd)
	cmd.Flags().BoolVar(&opts.jsonOut, "json", false, "Print the batch report as JSON")
	cmd.Flags().IntVarP(&opts.workers, "workers", "w", 0, "Concurrent scorers (default from config)")
	cmd.Flags().Float64Var(&opts.tolerance, "tolerance", 0, "Fail when any band share deviates from its target by more than this fraction (0 disables)")
	return cmd
}

func runBatch(ctx context.Context, cmd *cobra.Command, a *app, opts *batchOptions, dir string) error {
	paths, err := filepath.Glob(filepath.Join(dir, "*.json"))
	if err != nil {
		return fmt.Errorf("failed to list %s: %w", dir, err)
	}
	sort.Strings(paths)
	if len(paths) == 0 {
		return fmt.Errorf("no resume files found in %s", dir)
	}

	jdText, err := opts.target.jobDescription(ctx, a)
	if err != nil {
		return err
	}

	items := make([]batch.Item, 0, len(paths))
	for _, path := range paths {
		resume, err := experience.LoadResume(path)
		if err != nil {
			a.logger.Warn("skipping resume", zap.String("path", path), zap.Error(err))
			continue
		}
		req, err := opts.target.request(resume, jdText)
		if err != nil {
			return err
		}
		items = append(items, batch.Item{
			ID:      strings.TrimSuffix(filepath.Base(path), filepath.Ext(path)),
			Request: req,
		})
	}

	workers := a.cfg.Workers
	if opts.workers > 0 {
		workers = opts.workers
	}
	runner := batch.NewRunner(a.engine,
		batch.WithWorkers(workers),
		batch.WithLogger(a.logger),
		batch.WithRecorder(a.metrics),
	)

	report, err := runner.Run(ctx, items)
	if err != nil {
		return err
	}

	if opts.jsonOut {
		if err := writeJSON(cmd.OutOrStdout(), report); err != nil {
			return err
		}
	} else {
		a.printer.PrintBatchReport(report, batch.DefaultTarget())
	}

	if opts.tolerance > 0 {
		cmp := report.Distribution.Compare(batch.DefaultTarget())
		if !cmp.Within(opts.tolerance) {
			return fmt.Errorf("score distribution outside tolerance %.2f: %s", opts.tolerance, cmp)
		}
	}
	return nil
}
