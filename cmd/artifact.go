package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/ChaudharyUsman/Transcript-Generate/internal/config"
	"github.com/ChaudharyUsman/Transcript-Generate/internal/model"
	"github.com/ChaudharyUsman/Transcript-Generate/internal/repository/artifact"
	"github.com/ChaudharyUsman/Transcript-Generate/internal/repository/social"
)

// artifactCmd represents the artifact command
var artifactCmd = &cobra.Command{
	Use:   "artifact",
	Short: "Enriched artifact operations",
	Long:  `Operations for viewing, sharing and managing enriched transcript artifacts.`,
}

// withArtifactRepo loads config, opens the pool and hands an artifact
// repository to the callback
func withArtifactRepo(fn func(ctx context.Context, repo artifact.Repository) error) error {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	cfg, err := config.NewConfig()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	dbPool, err := config.NewDatabasePool(ctx, cfg)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer dbPool.Close()

	return fn(ctx, artifact.NewRepository(dbPool))
}

// withSocialRepo loads config, opens the pool and hands a social
// repository to the callback
func withSocialRepo(fn func(ctx context.Context, repo social.Repository) error) error {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	cfg, err := config.NewConfig()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	dbPool, err := config.NewDatabasePool(ctx, cfg)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer dbPool.Close()

	return fn(ctx, social.NewRepository(dbPool))
}

func parseArtifactID(arg string) (int64, error) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid artifact ID %q", arg)
	}
	return id, nil
}

func printJSON(header string, v any) error {
	output, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to format result: %w", err)
	}
	fmt.Printf("%s\n%s\n", header, string(output))
	return nil
}

// artifactGetCmd shows one artifact
var artifactGetCmd = &cobra.Command{
	Use:   "get [ARTIFACT_ID]",
	Short: "Show an artifact",
	Long:  `Display a single artifact with its social engagement counts.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseArtifactID(args[0])
		if err != nil {
			return err
		}

		return withArtifactRepo(func(ctx context.Context, repo artifact.Repository) error {
			result, err := repo.GetByID(ctx, id)
			if err != nil {
				return fmt.Errorf("failed to get artifact: %w", err)
			}
			return printJSON(fmt.Sprintf("Artifact %d:", id), result)
		})
	},
}

// artifactListCmd lists a user's artifacts
var artifactListCmd = &cobra.Command{
	Use:   "list",
	Short: "List your artifacts",
	Long:  `List artifacts created by a user, newest first.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		userID, _ := cmd.Flags().GetInt64("user")
		limit, _ := cmd.Flags().GetInt("limit")
		offset, _ := cmd.Flags().GetInt("offset")

		return withArtifactRepo(func(ctx context.Context, repo artifact.Repository) error {
			artifacts, err := repo.ListByUser(ctx, userID, limit, offset)
			if err != nil {
				return fmt.Errorf("failed to list artifacts: %w", err)
			}
			if len(artifacts) == 0 {
				fmt.Println("No artifacts found.")
				return nil
			}
			return printJSON(fmt.Sprintf("Found %d artifact(s):", len(artifacts)), artifacts)
		})
	},
}

// artifactFeedCmd lists publicly visible artifacts
var artifactFeedCmd = &cobra.Command{
	Use:   "feed",
	Short: "Browse the public artifact feed",
	Long:  `List publicly visible artifacts with their social engagement counts.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")
		offset, _ := cmd.Flags().GetInt("offset")

		return withArtifactRepo(func(ctx context.Context, repo artifact.Repository) error {
			artifacts, err := repo.ListPublic(ctx, limit, offset)
			if err != nil {
				return fmt.Errorf("failed to load feed: %w", err)
			}
			if len(artifacts) == 0 {
				fmt.Println("The public feed is empty.")
				return nil
			}
			return printJSON(fmt.Sprintf("Found %d artifact(s):", len(artifacts)), artifacts)
		})
	},
}

// artifactPublishCmd makes an artifact publicly visible
var artifactPublishCmd = &cobra.Command{
	Use:   "publish [ARTIFACT_ID]",
	Short: "Publish an artifact to the public feed",
	Long:  `Change an artifact's visibility to PUBLIC. Use --private to revert.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseArtifactID(args[0])
		if err != nil {
			return err
		}
		userID, _ := cmd.Flags().GetInt64("user")
		private, _ := cmd.Flags().GetBool("private")

		visibility := model.VisibilityPublic
		if private {
			visibility = model.VisibilityPrivate
		}

		return withArtifactRepo(func(ctx context.Context, repo artifact.Repository) error {
			if err := repo.UpdateVisibility(ctx, id, userID, visibility); err != nil {
				return fmt.Errorf("failed to update visibility: %w", err)
			}
			fmt.Printf("Artifact %d is now %s.\n", id, visibility)
			return nil
		})
	},
}

// artifactDeleteCmd deletes an artifact
var artifactDeleteCmd = &cobra.Command{
	Use:   "delete [ARTIFACT_ID]",
	Short: "Delete an artifact",
	Long:  `Delete an artifact you own, together with its social engagement records.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseArtifactID(args[0])
		if err != nil {
			return err
		}
		userID, _ := cmd.Flags().GetInt64("user")

		return withArtifactRepo(func(ctx context.Context, repo artifact.Repository) error {
			if err := repo.Delete(ctx, id, userID); err != nil {
				return fmt.Errorf("failed to delete artifact: %w", err)
			}
			fmt.Printf("Artifact %d deleted.\n", id)
			return nil
		})
	},
}

// artifactLikeCmd likes an artifact
var artifactLikeCmd = &cobra.Command{
	Use:   "like [ARTIFACT_ID]",
	Short: "Like a public artifact",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseArtifactID(args[0])
		if err != nil {
			return err
		}
		userID, _ := cmd.Flags().GetInt64("user")
		undo, _ := cmd.Flags().GetBool("undo")

		return withSocialRepo(func(ctx context.Context, repo social.Repository) error {
			if undo {
				if err := repo.Unlike(ctx, id, userID); err != nil {
					return fmt.Errorf("failed to unlike artifact: %w", err)
				}
				fmt.Printf("Removed like from artifact %d.\n", id)
				return nil
			}
			if err := repo.Like(ctx, id, userID); err != nil {
				return fmt.Errorf("failed to like artifact: %w", err)
			}
			fmt.Printf("Liked artifact %d.\n", id)
			return nil
		})
	},
}

// artifactFavoriteCmd favorites an artifact
var artifactFavoriteCmd = &cobra.Command{
	Use:   "favorite [ARTIFACT_ID]",
	Short: "Favorite a public artifact",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseArtifactID(args[0])
		if err != nil {
			return err
		}
		userID, _ := cmd.Flags().GetInt64("user")
		undo, _ := cmd.Flags().GetBool("undo")

		return withSocialRepo(func(ctx context.Context, repo social.Repository) error {
			if undo {
				if err := repo.Unfavorite(ctx, id, userID); err != nil {
					return fmt.Errorf("failed to unfavorite artifact: %w", err)
				}
				fmt.Printf("Removed favorite from artifact %d.\n", id)
				return nil
			}
			if err := repo.Favorite(ctx, id, userID); err != nil {
				return fmt.Errorf("failed to favorite artifact: %w", err)
			}
			fmt.Printf("Favorited artifact %d.\n", id)
			return nil
		})
	},
}

// artifactCommentCmd comments on an artifact
var artifactCommentCmd = &cobra.Command{
	Use:   "comment [ARTIFACT_ID] [TEXT]",
	Short: "Comment on a public artifact",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseArtifactID(args[0])
		if err != nil {
			return err
		}
		userID, _ := cmd.Flags().GetInt64("user")

		return withSocialRepo(func(ctx context.Context, repo social.Repository) error {
			comment := &model.Comment{ArtifactID: id, UserID: userID, Content: args[1]}
			if err := repo.AddComment(ctx, comment); err != nil {
				return fmt.Errorf("failed to add comment: %w", err)
			}
			fmt.Printf("Comment %d added to artifact %d.\n", comment.ID, id)
			return nil
		})
	},
}

// artifactCommentsCmd lists comments on an artifact
var artifactCommentsCmd = &cobra.Command{
	Use:   "comments [ARTIFACT_ID]",
	Short: "List comments on an artifact",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseArtifactID(args[0])
		if err != nil {
			return err
		}
		limit, _ := cmd.Flags().GetInt("limit")
		offset, _ := cmd.Flags().GetInt("offset")

		return withSocialRepo(func(ctx context.Context, repo social.Repository) error {
			comments, err := repo.ListComments(ctx, id, limit, offset)
			if err != nil {
				return fmt.Errorf("failed to list comments: %w", err)
			}
			if len(comments) == 0 {
				fmt.Printf("No comments on artifact %d.\n", id)
				return nil
			}
			return printJSON(fmt.Sprintf("Found %d comment(s):", len(comments)), comments)
		})
	},
}

// artifactShareCmd records a share of an artifact
var artifactShareCmd = &cobra.Command{
	Use:   "share [ARTIFACT_ID]",
	Short: "Record a share of a public artifact",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseArtifactID(args[0])
		if err != nil {
			return err
		}
		userID, _ := cmd.Flags().GetInt64("user")

		return withSocialRepo(func(ctx context.Context, repo social.Repository) error {
			if err := repo.RecordShare(ctx, id, userID); err != nil {
				return fmt.Errorf("failed to record share: %w", err)
			}
			fmt.Printf("Share of artifact %d recorded.\n", id)
			return nil
		})
	},
}

func init() {
	artifactListCmd.Flags().Int64("user", 1, "ID of the owning user")
	artifactListCmd.Flags().Int("limit", 20, "Maximum number of artifacts to retrieve")
	artifactListCmd.Flags().Int("offset", 0, "Number of artifacts to skip")

	artifactFeedCmd.Flags().Int("limit", 20, "Maximum number of artifacts to retrieve")
	artifactFeedCmd.Flags().Int("offset", 0, "Number of artifacts to skip")

	artifactPublishCmd.Flags().Int64("user", 1, "ID of the owning user")
	artifactPublishCmd.Flags().Bool("private", false, "Revert the artifact to PRIVATE")

	artifactDeleteCmd.Flags().Int64("user", 1, "ID of the owning user")

	artifactLikeCmd.Flags().Int64("user", 1, "ID of the acting user")
	artifactLikeCmd.Flags().Bool("undo", false, "Remove an existing like")

	artifactFavoriteCmd.Flags().Int64("user", 1, "ID of the acting user")
	artifactFavoriteCmd.Flags().Bool("undo", false, "Remove an existing favorite")

	artifactCommentCmd.Flags().Int64("user", 1, "ID of the acting user")

	artifactCommentsCmd.Flags().Int("limit", 20, "Maximum number of comments to retrieve")
	artifactCommentsCmd.Flags().Int("offset", 0, "Number of comments to skip")

	artifactShareCmd.Flags().Int64("user", 1, "ID of the acting user")

	artifactCmd.AddCommand(artifactGetCmd)
	artifactCmd.AddCommand(artifactListCmd)
	artifactCmd.AddCommand(artifactFeedCmd)
	artifactCmd.AddCommand(artifactPublishCmd)
	artifactCmd.AddCommand(artifactDeleteCmd)
	artifactCmd.AddCommand(artifactLikeCmd)
	artifactCmd.AddCommand(artifactFavoriteCmd)
	artifactCmd.AddCommand(artifactCommentCmd)
	artifactCmd.AddCommand(artifactCommentsCmd)
	artifactCmd.AddCommand(artifactShareCmd)
	rootCmd.AddCommand(artifactCmd)
}
