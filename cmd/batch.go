package main

import (
	"context"
	"os"
	"os/signal"
	"path/filepath"
	"sort"
	"strings"
	"sync/atomic"
	"syscall"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/sells-group/lead-agent/internal/campaign"
	"github.com/sells-group/lead-agent/internal/model"
)

var (
	batchDir         string
	batchOutputDir   string
	batchConcurrency int
)

var batchCmd = &cobra.Command{
	Use:   "batch",
	Short: "Rank the catalog for every campaign file in a directory",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		if batchConcurrency > 0 {
			cfg.Batch.MaxConcurrentCampaigns = batchConcurrency
		}

		env, err := initPipeline(ctx, "batch")
		if err != nil {
			return err
		}

		files, err := campaignFiles(batchDir)
		if err != nil {
			return err
		}

		outDir := batchOutputDir
		if outDir == "" {
			outDir = batchDir
		}

		_, err = processBatch(ctx, files, outDir, cfg.Batch.MaxConcurrentCampaigns, env.Pipeline.Run)
		return err
	},
}

func init() {
	batchCmd.Flags().StringVar(&batchDir, "dir", "", "directory of campaign files")
	batchCmd.Flags().StringVar(&batchOutputDir, "output-dir", "", "directory for result files (default --dir)")
	batchCmd.Flags().IntVar(&batchConcurrency, "concurrency", 0, "max campaigns run at once (default from config)")
	_ = batchCmd.MarkFlagRequired("dir")
	rootCmd.AddCommand(batchCmd)
}

// runFunc is the callback signature for running one campaign.
type runFunc func(c model.Campaign) (*model.Result, error)

type batchSummary struct {
	Succeeded int64
	Failed    int64
}

// campaignFiles lists campaign files in dir, sorted by name. Result files
// written by a previous batch are skipped.
func campaignFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, eris.Wrapf(err, "batch: read dir %s", dir)
	}
	var files []string
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !campaign.IsCampaignFile(name) || strings.HasSuffix(name, resultSuffix) {
			continue
		}
		files = append(files, filepath.Join(dir, name))
	}
	sort.Strings(files)
	return files, nil
}

const resultSuffix = ".result.json"

// resultPath maps a campaign file to its result file in outDir. The source
// extension is kept so q1.json and q1.yaml never share a result file.
func resultPath(outDir, campaignFile string) string {
	return filepath.Join(outDir, filepath.Base(campaignFile)+resultSuffix)
}

// processBatch runs every campaign file concurrently and writes one JSON
// result per file. Individual failures are logged and counted; the batch
// returns an error if any campaign failed.
func processBatch(ctx context.Context, files []string, outDir string, concurrency int, run runFunc) (batchSummary, error) {
	var summary batchSummary
	if len(files) == 0 {
		zap.L().Info("no campaign files found")
		return summary, nil
	}
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return summary, eris.Wrapf(err, "batch: create output dir %s", outDir)
	}
	if concurrency < 1 {
		concurrency = 1
	}

	zap.L().Info("processing batch",
		zap.Int("campaigns", len(files)),
		zap.Int("concurrency", concurrency),
	)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	var succeeded, failed atomic.Int64

	for _, file := range files {
		g.Go(func() error {
			log := zap.L().With(zap.String("file", file))
			if gctx.Err() != nil {
				failed.Add(1)
				return nil
			}

			out, err := runCampaignFile(file, outDir, run)
			if err != nil {
				failed.Add(1)
				log.Error("campaign failed", zap.Error(err))
				return nil // don't abort batch on individual failure
			}

			succeeded.Add(1)
			log.Info("campaign complete", zap.String("output", out))
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return summary, eris.Wrap(err, "batch processing")
	}

	summary = batchSummary{Succeeded: succeeded.Load(), Failed: failed.Load()}
	zap.L().Info("batch complete",
		zap.Int64("succeeded", summary.Succeeded),
		zap.Int64("failed", summary.Failed),
	)
	if summary.Failed > 0 {
		return summary, eris.Errorf("batch: %d of %d campaigns failed", summary.Failed, len(files))
	}
	return summary, nil
}

func runCampaignFile(file, outDir string, run runFunc) (string, error) {
	c, err := campaign.LoadFile(file)
	if err != nil {
		return "", err
	}
	result, err := run(c)
	if err != nil {
		return "", err
	}
	out := resultPath(outDir, file)
	return out, writeResultFile(out, formatJSON, result)
}
