package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/keagan/clipforge/internal/config"
	"github.com/keagan/clipforge/internal/ffmpeg"
	"github.com/keagan/clipforge/internal/logging"
	"github.com/keagan/clipforge/internal/pipeline"
	"github.com/keagan/clipforge/internal/reframe"
	"github.com/keagan/clipforge/internal/scene"
)

var (
	cfgFile string
	verbose bool
)

func main() {
	ctx := context.Background()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "clipforge",
	Short: "clipforge - highlight detection and platform edit toolkit",
	Long:  "Finds the most engaging moments in a video and produces platform-tailored short-form edits with burned-in subtitles and thumbnails.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		logging.Init(verbose)

		cfg, err := config.Load(cfgFile)
		if err != nil {
			return err
		}

		ctx := config.WithConfig(cmd.Context(), cfg)
		cmd.SetContext(ctx)

		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: ./config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")

	rootCmd.AddCommand(processCmd)
	rootCmd.AddCommand(scenesCmd)
	rootCmd.AddCommand(platformsCmd)

	processCmd.Flags().StringSliceVar(&processPlatforms, "platforms", nil, "target platforms (default: tiktok,youtube_shorts,instagram_reels)")
	processCmd.Flags().Float64Var(&processDuration, "duration", reframe.DefaultEditDuration, "edit clip duration in seconds")
	processCmd.Flags().StringVar(&processJSONOut, "json", "", "write the result record to this file instead of stdout")
}

var (
	processPlatforms []string
	processDuration  float64
	processJSONOut   string
)

var processCmd = &cobra.Command{
	Use:   "process [input video]",
	Short: "Detect highlights and build edits for all target platforms",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.FromContext(cmd.Context())

		pipe, err := pipeline.New(log.Logger, cfg)
		if err != nil {
			return err
		}

		opts := pipeline.ProcessOptions{
			Platforms:    processPlatforms,
			EditDuration: processDuration,
		}

		result, err := pipe.Process(cmd.Context(), args[0], opts)
		if err != nil {
			return err
		}

		data, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to encode result: %w", err)
		}

		if processJSONOut != "" {
			if err := os.WriteFile(processJSONOut, data, 0644); err != nil {
				return fmt.Errorf("failed to write result: %w", err)
			}
			log.Info().Str("path", processJSONOut).Msg("result written")
			return nil
		}

		fmt.Println(string(data))
		return nil
	},
}

var scenesCmd = &cobra.Command{
	Use:   "scenes [input video]",
	Short: "Detect scene boundaries and print them as JSON",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.FromContext(cmd.Context())

		ffmpegExec, err := ffmpeg.New(log.Logger, cfg.FFmpeg.Threads)
		if err != nil {
			return err
		}

		info, err := ffmpegExec.ProbeVideo(cmd.Context(), args[0])
		if err != nil {
			return fmt.Errorf("failed to open video: %w", err)
		}

		detector := scene.NewDetector(log.Logger, ffmpegExec, cfg.Scenes.ChangeThreshold)
		result, err := detector.Detect(cmd.Context(), args[0], info)
		if err != nil {
			return err
		}

		data, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			return err
		}

		fmt.Println(string(data))
		return nil
	},
}

var platformsCmd = &cobra.Command{
	Use:   "platforms",
	Short: "List supported platforms and their aspect ratios",
	RunE: func(cmd *cobra.Command, args []string) error {
		for _, name := range reframe.Platforms() {
			ratio := reframe.RatioFor(name)
			fmt.Printf("%-16s %d:%d\n", name, ratio.W, ratio.H)
		}
		return nil
	},
}
