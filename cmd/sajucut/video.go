package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/dokkaebi/sajucut/internal/export"
	"github.com/dokkaebi/sajucut/internal/files"
	"github.com/dokkaebi/sajucut/internal/logger"
	"github.com/dokkaebi/sajucut/internal/metadata"
	"github.com/dokkaebi/sajucut/internal/veo"
)

type videoOptions struct {
	modelName   string
	scriptPath  string
	outputPath  string
	srt         bool
	pollBound   int
	yes         bool
	allowEnv    bool
	envOnly     bool
	debug       bool
	logFilePath string
}

func newVideoCmd() *cobra.Command {
	opts := videoOptions{}
	cmd := &cobra.Command{
		Use:   "video",
		Short: "Generate a zodiac background video from a fortune script",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runVideo(cmd, &opts)
		},
	}

	cmd.SetUsageTemplate(subcommandUsageTemplate)
	cmd.Flags().StringVar(&opts.modelName, "model", metadata.DefaultVideoModel, "Veo model name")
	cmd.Flags().StringVar(&opts.scriptPath, "script", "", "Path to the fortune script text file (required)")
	cmd.Flags().StringVarP(&opts.outputPath, "output", "o", "fortune-background.mp4", "Output video path")
	cmd.Flags().BoolVar(&opts.srt, "srt", true, "Also export the script as an .srt next to the video")
	cmd.Flags().IntVar(&opts.pollBound, "poll-bound", veo.DefaultMaxPollAttempts, "Maximum status checks before giving up")
	cmd.Flags().BoolVarP(&opts.yes, "yes", "y", false, "Skip the paid-tier confirmation prompt")
	cmd.Flags().BoolVar(&opts.allowEnv, "allow-env", false, "Allow reading API key from environment variables")
	cmd.Flags().BoolVar(&opts.envOnly, "env-only", false, "Use only environment variables for API keys")
	cmd.Flags().BoolVar(&opts.debug, "debug", false, "Enable debug logging")
	cmd.Flags().StringVar(&opts.logFilePath, "log-file", "", "Path to save machine-readable JSONL logs")
	_ = cmd.MarkFlagRequired("script")
	return cmd
}

func runVideo(cmd *cobra.Command, opts *videoOptions) error {
	if err := initCommandLogger(opts.debug, opts.logFilePath); err != nil {
		return err
	}

	raw, err := os.ReadFile(opts.scriptPath)
	if err != nil {
		return fmt.Errorf("failed to read script %s: %w", opts.scriptPath, err)
	}
	fortuneScript := strings.TrimSpace(string(raw))
	if fortuneScript == "" {
		return fmt.Errorf("script file %s is empty", opts.scriptPath)
	}

	if metadata.IsPaidTierOnly(opts.modelName) {
		confirmed, err := confirmPaidTier(opts.yes)
		if err != nil {
			return err
		}
		if !confirmed {
			fmt.Fprintln(cmd.OutOrStdout(), "Canceled.")
			return nil
		}
	}

	key, source, err := resolveAPIKey(opts.allowEnv, opts.envOnly)
	if err != nil {
		return err
	}
	logger.Info("Using API Key", "source", source)

	ctx, stop := signalContext()
	defer stop()

	start := time.Now()
	client := veo.NewClient(staticKeyProvider{key: key}, opts.modelName, veo.Options{
		MaxPollAttempts: opts.pollBound,
	})
	tempPath, err := client.Generate(ctx, fortuneScript)
	if err != nil {
		if ctx.Err() != nil {
			logger.Warn("Video generation canceled")
			return nil
		}
		return err
	}

	if err := files.CopyAtomic(tempPath, opts.outputPath, 0o644); err != nil {
		return fmt.Errorf("failed to save video to %s: %w", opts.outputPath, err)
	}
	logger.Info("Video saved", "path", opts.outputPath, "duration", time.Since(start).Round(time.Second))

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Video saved to %s\n", opts.outputPath)

	if opts.srt {
		srtPath := strings.TrimSuffix(opts.outputPath, filepath.Ext(opts.outputPath)) + ".srt"
		if err := export.WriteSRT(srtPath, fortuneScript); err != nil {
			return fmt.Errorf("video saved, but subtitle export failed: %w", err)
		}
		fmt.Fprintf(out, "Subtitles saved to %s\n", srtPath)
	}
	return nil
}
