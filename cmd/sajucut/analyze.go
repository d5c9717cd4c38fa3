package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/dokkaebi/sajucut/internal/cleanup"
	"github.com/dokkaebi/sajucut/internal/files"
	"github.com/dokkaebi/sajucut/internal/gemini"
	"github.com/dokkaebi/sajucut/internal/logger"
	"github.com/dokkaebi/sajucut/internal/metadata"
	"github.com/dokkaebi/sajucut/internal/script"
)

type analyzeOptions struct {
	modelName   string
	scriptPath  string
	jsonOutput  bool
	allowEnv    bool
	envOnly     bool
	debug       bool
	logFilePath string
}

func newAnalyzeCmd() *cobra.Command {
	opts := analyzeOptions{}
	cmd := &cobra.Command{
		Use:   "analyze <screenshot>",
		Short: "Analyze a shorts screenshot and produce a fortune script",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAnalyze(cmd, args[0], &opts)
		},
	}

	cmd.SetUsageTemplate(subcommandUsageTemplate)
	cmd.Flags().StringVar(&opts.modelName, "model", metadata.DefaultAnalysisModel, "Gemini model name")
	cmd.Flags().StringVar(&opts.scriptPath, "script-out", "", "Write the fortune script to this file")
	cmd.Flags().BoolVar(&opts.jsonOutput, "json", false, "Print the full analysis as JSON")
	cmd.Flags().BoolVar(&opts.allowEnv, "allow-env", false, "Allow reading API key from environment variables")
	cmd.Flags().BoolVar(&opts.envOnly, "env-only", false, "Use only environment variables for API keys")
	cmd.Flags().BoolVar(&opts.debug, "debug", false, "Enable debug logging")
	cmd.Flags().StringVar(&opts.logFilePath, "log-file", "", "Path to save machine-readable JSONL logs")
	return cmd
}

func initCommandLogger(debug bool, logFilePath string) error {
	logLevel := logger.LevelInfo
	if debug {
		logLevel = logger.LevelDebug
	}
	var logFileW io.Writer
	if logFilePath != "" {
		f, err := os.OpenFile(logFilePath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o600)
		if err != nil {
			return fmt.Errorf("failed to open log file: %w", err)
		}
		cleanup.Register(f.Close)
		logFileW = f
	}
	logger.Init(logLevel, logFileW)
	return nil
}

func runAnalyze(cmd *cobra.Command, imagePath string, opts *analyzeOptions) error {
	mimeType, err := imageMIMEFromPath(imagePath)
	if err != nil {
		return err
	}
	if err := initCommandLogger(opts.debug, opts.logFilePath); err != nil {
		return err
	}

	image, err := os.ReadFile(imagePath)
	if err != nil {
		return fmt.Errorf("failed to read screenshot %s: %w", imagePath, err)
	}

	key, source, err := resolveAPIKey(opts.allowEnv, opts.envOnly)
	if err != nil {
		return err
	}
	logger.Info("Using API Key", "source", source)

	ctx, stop := signalContext()
	defer stop()

	start := time.Now()
	client := gemini.NewClient(staticKeyProvider{key: key}, opts.modelName)
	analysis, err := client.Analyze(ctx, image, mimeType)
	if err != nil {
		if ctx.Err() != nil {
			logger.Warn("Analysis canceled")
			return nil
		}
		return err
	}
	logger.Info("Analysis finished", "model", opts.modelName, "duration", time.Since(start).Round(time.Millisecond))

	out := cmd.OutOrStdout()
	if opts.jsonOutput {
		encoded, err := json.MarshalIndent(analysis, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to encode analysis: %w", err)
		}
		fmt.Fprintln(out, string(encoded))
	} else {
		printAnalysis(out, analysis)
	}

	if opts.scriptPath != "" {
		if err := files.AtomicWrite(opts.scriptPath, []byte(analysis.FortuneScript+"\n"), 0o644); err != nil {
			return fmt.Errorf("failed to write script file: %w", err)
		}
		fmt.Fprintf(out, "\nScript written to %s\n", opts.scriptPath)
	}
	return nil
}

func printAnalysis(out io.Writer, analysis *gemini.Analysis) {
	fmt.Fprintf(out, "Title:      %s\n", analysis.SuggestedTitle)
	fmt.Fprintf(out, "Hook:       %s\n", analysis.Hook)
	fmt.Fprintf(out, "Visuals:    %s\n", analysis.VisualStyle)
	fmt.Fprintf(out, "Pacing:     %s\n", analysis.Pacing)
	fmt.Fprintf(out, "Overlays:   %s\n", analysis.TextOverlayStrategy)
	fmt.Fprintf(out, "Engagement: %s\n", analysis.EngagementFactor)

	years := script.ExtractBirthYears(analysis.FortuneScript)
	script.SortChronological(years)
	if len(years) > 0 {
		fmt.Fprintf(out, "Birth years (%d): %v\n", len(years), script.Literals(years))
	}

	fmt.Fprintln(out, "\n--- Fortune Script ---")
	fmt.Fprintln(out, analysis.FortuneScript)
}
