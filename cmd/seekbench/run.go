package main

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/spf13/cobra"

	"github.com/hupe1980/seekbench"
	"github.com/hupe1980/seekbench/archive"
	"github.com/hupe1980/seekbench/recorder"
	"github.com/hupe1980/seekbench/resource"
)

var (
	flagSize        int
	flagMin         int32
	flagMax         int32
	flagSeed        int64
	flagOut         string
	flagCompression string
	flagMemBudget   int64

	flagArchiveBackend string
	flagArchiveBucket  string
	flagArchivePrefix  string
	flagMinioEndpoint  string
	flagManifestTable  string

	runCmd = &cobra.Command{
		Use:   "run",
		Short: "Execute one benchmark run",
		RunE:  runBenchmark,
	}
)

func init() {
	runCmd.Flags().IntVar(&flagSize, "size", 1_000_000, "dataset length")
	runCmd.Flags().Int32Var(&flagMin, "min", 1000, "inclusive lower value bound")
	runCmd.Flags().Int32Var(&flagMax, "max", 10000, "exclusive upper value bound")
	runCmd.Flags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = time-derived)")
	runCmd.Flags().StringVar(&flagOut, "out", "seekbench_metrics.csv", "durable metrics file")
	runCmd.Flags().StringVar(&flagCompression, "compression", "none", "metrics sink compression (none, zstd, lz4)")
	runCmd.Flags().Int64Var(&flagMemBudget, "memory-budget", 0, "dataset memory budget in bytes (0 = unlimited)")

	runCmd.Flags().StringVar(&flagArchiveBackend, "archive-backend", "", "archive backend (s3, minio)")
	runCmd.Flags().StringVar(&flagArchiveBucket, "archive-bucket", "", "archive bucket")
	runCmd.Flags().StringVar(&flagArchivePrefix, "archive-prefix", "seekbench/", "archive key prefix")
	runCmd.Flags().StringVar(&flagMinioEndpoint, "minio-endpoint", "", "MinIO endpoint (archive-backend=minio)")
	runCmd.Flags().StringVar(&flagManifestTable, "manifest-table", "", "DynamoDB table for run manifests")
}

func runBenchmark(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	fileCfg, err := loadFileConfig(cfgPath)
	if err != nil {
		return err
	}
	applyFileConfig(cmd, fileCfg)

	logger := seekbench.NewTextLogger(parseLogLevel(logLevel))

	cfg := seekbench.Config{
		Size:        flagSize,
		Min:         flagMin,
		Max:         flagMax,
		Seed:        flagSeed,
		MetricsPath: flagOut,
	}

	opts := []seekbench.Option{seekbench.WithLogger(logger)}
	if flagMemBudget > 0 {
		opts = append(opts, seekbench.WithResourceController(resource.NewController(resource.Config{
			MemoryBudgetBytes: flagMemBudget,
		})))
	}
	if comp, err := parseCompression(flagCompression); err != nil {
		return err
	} else if comp != recorder.CompressionNone {
		opts = append(opts, seekbench.WithSinkOptions(func(o *recorder.Options) {
			o.Compression = comp
		}))
	}

	report, err := seekbench.NewRunner(opts...).Run(ctx, cfg)
	if err != nil {
		return fmt.Errorf("run failed: %w", err)
	}

	fmt.Printf("run complete: %d records (%d failed) in %s, metrics at %s\n",
		report.Records, len(report.Failed), report.Elapsed, report.MetricsPath)
	for _, verr := range report.Violations() {
		fmt.Printf("  violation: %v\n", verr)
	}

	return archiveRun(ctx, logger, report)
}

// applyFileConfig fills in config-file values for flags the user did not
// set explicitly.
func applyFileConfig(cmd *cobra.Command, cfg *fileConfig) {
	if cfg.Size > 0 && !cmd.Flags().Changed("size") {
		flagSize = cfg.Size
	}
	if cfg.Max > cfg.Min && !cmd.Flags().Changed("min") && !cmd.Flags().Changed("max") {
		flagMin, flagMax = cfg.Min, cfg.Max
	}
	if cfg.Seed != 0 && !cmd.Flags().Changed("seed") {
		flagSeed = cfg.Seed
	}
	if cfg.Metrics != "" && !cmd.Flags().Changed("out") {
		flagOut = cfg.Metrics
	}
	if cfg.Archive.Backend != "" && !cmd.Flags().Changed("archive-backend") {
		flagArchiveBackend = cfg.Archive.Backend
		flagArchiveBucket = cfg.Archive.Bucket
		if cfg.Archive.Prefix != "" {
			flagArchivePrefix = cfg.Archive.Prefix
		}
		flagMinioEndpoint = cfg.Archive.Endpoint
	}
	if cfg.Archive.Table != "" && !cmd.Flags().Changed("manifest-table") {
		flagManifestTable = cfg.Archive.Table
	}
}

// archiveRun uploads the metrics file and commits a run manifest, when
// configured. Archive failures are reported but do not fail the run:
// the durable local sink already holds the data.
func archiveRun(ctx context.Context, logger *seekbench.Logger, report *seekbench.RunReport) error {
	runID := time.Now().UTC().Format("20060102T150405.000000000Z")
	metricsKey := ""

	if flagArchiveBackend != "" && report.MetricsPath != "" {
		store, err := buildArchiveStore(ctx)
		if err != nil {
			return err
		}
		metricsKey = runID + "/" + filepath.Base(report.MetricsPath)
		if err := archive.UploadFile(ctx, store, report.MetricsPath, metricsKey); err != nil {
			logger.ErrorContext(ctx, "metrics archive upload failed", "error", err)
		} else {
			logger.InfoContext(ctx, "metrics archived", "bucket", flagArchiveBucket, "key", metricsKey)
		}
	}

	if flagManifestTable != "" {
		awsCfg, err := awsconfig.LoadDefaultConfig(ctx)
		if err != nil {
			return fmt.Errorf("failed to load AWS config: %w", err)
		}
		manifests := archive.NewManifestStore(dynamodb.NewFromConfig(awsCfg), flagManifestTable)
		err = manifests.Commit(ctx, archive.RunManifest{
			RunID:       runID,
			StartedAt:   time.Now().Add(-report.Elapsed),
			DatasetSize: report.DatasetSize,
			Seed:        report.Seed,
			Records:     report.Records,
			MetricsKey:  metricsKey,
		})
		if err != nil {
			logger.ErrorContext(ctx, "run manifest commit failed", "error", err)
		}
	}

	return nil
}

func buildArchiveStore(ctx context.Context) (archive.Store, error) {
	switch flagArchiveBackend {
	case "s3":
		awsCfg, err := awsconfig.LoadDefaultConfig(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to load AWS config: %w", err)
		}
		return archive.NewS3Store(s3.NewFromConfig(awsCfg), flagArchiveBucket, flagArchivePrefix), nil
	case "minio":
		client, err := minio.New(flagMinioEndpoint, &minio.Options{
			Creds: credentials.NewEnvMinio(),
		})
		if err != nil {
			return nil, fmt.Errorf("failed to create MinIO client: %w", err)
		}
		return archive.NewMinIOStore(client, flagArchiveBucket, flagArchivePrefix), nil
	default:
		return nil, fmt.Errorf("unknown archive backend %q", flagArchiveBackend)
	}
}

func parseCompression(s string) (recorder.Compression, error) {
	switch strings.ToLower(s) {
	case "", "none":
		return recorder.CompressionNone, nil
	case "zstd":
		return recorder.CompressionZstd, nil
	case "lz4":
		return recorder.CompressionLZ4, nil
	default:
		return recorder.CompressionNone, fmt.Errorf("unknown compression %q", s)
	}
}

func parseLogLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
