package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"dhi-migrate/pkg/config"
	"dhi-migrate/pkg/dockerfile"
	"dhi-migrate/pkg/filetree"
	"dhi-migrate/pkg/logger"
)

var (
	outputPath string
	namespace  string
	configPath string
	verbose    bool
	dryRun     bool
)

var rootCmd = &cobra.Command{
	Use:   "dhi-migrate",
	Short: "Migrate Dockerfiles from generic base images to Docker Hardened Images",
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Help()
	},
}

var migrateCmd = &cobra.Command{
	Use:   "migrate <dockerfile> <dhi-image>",
	Short: "Migrate a single Dockerfile to a hardened base image",
	Long: `The migrate command rewrites a Dockerfile to reference the given hardened
image, remapping privileged ports, normalizing CMD/ENTRYPOINT to exec form and
restructuring package-installing builds into a multi-stage layout.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		logger.SetVerbose(verbose)

		migrator, err := newMigrator(args[1])
		if err != nil {
			return err
		}

		fmt.Printf("Migrating %s to hardened base images...\n", args[0])
		result, err := migrator.MigrateFile(args[0])
		if err != nil {
			return err
		}

		if dryRun {
			fmt.Println("\n--- Migrated Dockerfile (DRY RUN) ---")
			fmt.Println(result.Content)
		} else {
			if err := os.WriteFile(outputPath, []byte(result.Content), 0644); err != nil {
				return fmt.Errorf("writing migrated Dockerfile %q: %w", outputPath, err)
			}
			fmt.Printf("✅ Migration complete! Generated: %s\n", outputPath)
		}

		if verbose || dryRun {
			fmt.Println("\n--- Migration Notes ---")
			for _, note := range result.Log {
				fmt.Printf("  - %s\n", note)
			}
		}

		printSummary(args[0], migrator.Target(), outputPath, len(result.Log))
		return nil
	},
}

var batchCmd = &cobra.Command{
	Use:   "batch <dir> <dhi-image>",
	Short: "Migrate every Dockerfile under a directory tree",
	Long: `The batch command discovers Dockerfiles under the given directory,
honoring .gitignore, and migrates each one to a <name>.dhi sibling file.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		logger.SetVerbose(verbose)

		migrator, err := newMigrator(args[1])
		if err != nil {
			return err
		}

		root := args[0]
		paths, err := filetree.FindDockerfiles(root)
		if err != nil {
			return fmt.Errorf("discovering Dockerfiles under %q: %w", root, err)
		}
		if len(paths) == 0 {
			fmt.Printf("No Dockerfiles found under %s\n", root)
			return nil
		}

		for _, rel := range paths {
			src := filepath.Join(root, rel)
			result, err := migrator.MigrateFile(src)
			if err != nil {
				return err
			}
			dest := src + ".dhi"
			if dryRun {
				fmt.Printf("Would migrate %s -> %s (%d changes)\n", src, dest, len(result.Log))
				continue
			}
			if err := os.WriteFile(dest, []byte(result.Content), 0644); err != nil {
				return fmt.Errorf("writing migrated Dockerfile %q: %w", dest, err)
			}
			fmt.Printf("✅ %s -> %s (%d changes)\n", src, dest, len(result.Log))
		}
		return nil
	},
}

func newMigrator(targetImage string) (*dockerfile.Migrator, error) {
	opts := []dockerfile.Option{dockerfile.WithNamespace(namespace)}
	if configPath != "" {
		cfg, err := config.Load(configPath)
		if err != nil {
			return nil, err
		}
		opts = append(opts, dockerfile.WithConfig(cfg))
	}
	return dockerfile.New(targetImage, opts...), nil
}

func printSummary(source, targetImage, generated string, changes int) {
	fmt.Println("\nMigration Summary:")
	fmt.Printf("  Source:    %s\n", source)
	fmt.Printf("  DHI Image: %s\n", targetImage)
	fmt.Printf("  Generated: %s\n", generated)
	fmt.Printf("  Notes:     %d changes applied\n", changes)

	fmt.Println("\nImportant Reminders:")
	fmt.Println("  - Test the migrated Dockerfile thoroughly")
	fmt.Println("  - Verify the application works with a non-root user")
	fmt.Println("  - Check that all required files are accessible")
	fmt.Println("  - Update port mappings if privileged ports were changed")
}

func Execute() {
	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(batchCmd)
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		logger.Errorf("Migration failed: %v", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Show detailed migration notes")
	rootCmd.PersistentFlags().BoolVar(&dryRun, "dry-run", false, "Show what would be migrated without writing files")
	rootCmd.PersistentFlags().StringVarP(&namespace, "namespace", "n", "", "Registry namespace for hardened images")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to a YAML config overriding engine defaults")
	migrateCmd.Flags().StringVarP(&outputPath, "output", "o", "dhi.dockerfile", "Output file path")
}
