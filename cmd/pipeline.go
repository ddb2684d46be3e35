package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/ChaudharyUsman/Transcript-Generate/internal/config"
	"github.com/ChaudharyUsman/Transcript-Generate/internal/model"
	"github.com/ChaudharyUsman/Transcript-Generate/internal/repository/artifact"
	"github.com/ChaudharyUsman/Transcript-Generate/internal/repository/subscription"
	"github.com/ChaudharyUsman/Transcript-Generate/internal/service/ai"
	"github.com/ChaudharyUsman/Transcript-Generate/internal/service/captions"
	"github.com/ChaudharyUsman/Transcript-Generate/internal/service/catalog"
	"github.com/ChaudharyUsman/Transcript-Generate/internal/service/pipeline"
	"github.com/ChaudharyUsman/Transcript-Generate/internal/service/resolver"
	"github.com/ChaudharyUsman/Transcript-Generate/internal/service/transcript"
)

// pipelineCmd represents the pipeline command
var pipelineCmd = &cobra.Command{
	Use:   "pipeline",
	Short: "Transcript enrichment pipeline operations",
	Long:  `Run the full transcript acquisition and enrichment pipeline for a video.`,
}

// pipelineRunCmd runs the pipeline for one video URL
var pipelineRunCmd = &cobra.Command{
	Use:   "run [YOUTUBE_URL]",
	Short: "Run the enrichment pipeline for a YouTube video",
	Long: `Fetch the transcript for a YouTube video (captions first, audio
transcription as fallback), enrich it and persist the resulting artifact.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		videoURL := args[0]

		// A full run downloads audio and makes many model calls; allow
		// plenty of time
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Minute)
		defer cancel()

		// Load configuration
		cfg, err := config.NewConfig()
		if err != nil {
			return fmt.Errorf("failed to load configuration: %w", err)
		}

		// Create database connection
		dbPool, err := config.NewDatabasePool(ctx, cfg)
		if err != nil {
			return fmt.Errorf("failed to connect to database: %w", err)
		}
		defer dbPool.Close()

		// Create the AI client; it serves both text generation and
		// audio transcription
		aiClient, err := ai.NewClient(ctx, cfg.GeminiAPIKey, cfg.GeminiModel)
		if err != nil {
			return fmt.Errorf("failed to create AI client: %w", err)
		}

		// Create catalog service
		catalogSvc, err := catalog.NewService(ctx, cfg.YouTubeAPIKey)
		if err != nil {
			return fmt.Errorf("failed to create catalog service: %w", err)
		}

		// Create acquisition service
		acquisitionSvc := transcript.NewService(
			captions.NewService(),
			transcript.NewAudioDownloader(),
			aiClient,
		)

		// Create pipeline service
		pipelineSvc := pipeline.NewService(
			resolver.Resolve,
			acquisitionSvc,
			catalogSvc,
			ai.NewMapper(aiClient),
			ai.NewReducer(aiClient),
			ai.NewGlobalEnricher(aiClient),
			artifact.NewRepository(dbPool),
			subscription.NewRepository(dbPool),
			cfg.ChunkSize,
		)

		// Get flags
		userID, _ := cmd.Flags().GetInt64("user")
		visibility, _ := cmd.Flags().GetString("visibility")
		if visibility != string(model.VisibilityPrivate) && visibility != string(model.VisibilityPublic) {
			return fmt.Errorf("invalid visibility %q: must be PRIVATE or PUBLIC", visibility)
		}

		// Run the pipeline
		result, err := pipelineSvc.Run(ctx, userID, videoURL, model.Visibility(visibility))
		if err != nil {
			return fmt.Errorf("pipeline failed: %w", err)
		}

		// Display result as JSON
		output, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to format result: %w", err)
		}

		fmt.Printf("Artifact %d created:\n%s\n", result.ID, string(output))
		return nil
	},
}

func init() {
	pipelineRunCmd.Flags().Int64("user", 1, "ID of the user running the pipeline")
	pipelineRunCmd.Flags().String("visibility", string(model.VisibilityPrivate), "Artifact visibility (PRIVATE or PUBLIC)")

	pipelineCmd.AddCommand(pipelineRunCmd)
	rootCmd.AddCommand(pipelineCmd)
}
