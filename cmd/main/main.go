package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"kbarticle/enhancer/internal/config"
	"kbarticle/enhancer/internal/container"
	"kbarticle/enhancer/internal/service"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

func main() {
	var (
		configPath string
		verbose    bool
	)

	rootCmd := &cobra.Command{
		Use:   "kbarticle",
		Short: "Knowledge base article enhancer",
		Long:  "Serves and renders enhanced knowledge base article pages with nav tags, ratings and view history",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if verbose {
				log.SetLevel(log.DebugLevel)
			}
		},
		SilenceUsage: true,
	}
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "path to config file (default ./config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	rootCmd.AddCommand(newServeCmd(&configPath))
	rootCmd.AddCommand(newRenderCmd(&configPath))

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newServeCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API and background workers",
		RunE: func(cmd *cobra.Command, args []string) error {
			log.Info("Starting kbarticle enhancer...")

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			app, err := newContainer(ctx, *configPath)
			if err != nil {
				return err
			}
			defer app.Close()

			if err := app.Run(ctx); err != nil {
				return fmt.Errorf("application exited with error: %w", err)
			}

			log.Info("Application finished successfully")
			return nil
		},
	}
}

func newRenderCmd(configPath *string) *cobra.Command {
	var (
		file   string
		mobile bool
	)

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Enhance a saved article page and print the result",
		RunE: func(cmd *cobra.Command, args []string) error {
			html, err := readPage(file)
			if err != nil {
				return err
			}

			app, err := newContainer(cmd.Context(), *configPath)
			if err != nil {
				return err
			}
			defer app.Close()

			enhanced, err := app.Service.EnhancePage(cmd.Context(), html, service.EnhanceOptions{Mobile: mobile})
			if err != nil {
				return err
			}

			if _, err := io.WriteString(cmd.OutOrStdout(), enhanced.HTML); err != nil {
				return err
			}

			// Without Redis the view history and impression run in the background
			app.Service.Wait()
			return nil
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "-", "article page HTML, - for stdin")
	cmd.Flags().BoolVar(&mobile, "mobile", false, "render for a mobile client")

	return cmd
}

func newContainer(ctx context.Context, configPath string) (*container.Container, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	log.Info("Configuration loaded successfully")

	app, err := container.New(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize container: %w", err)
	}
	return app, nil
}

func readPage(file string) (string, error) {
	if file == "-" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", fmt.Errorf("failed to read page from stdin: %w", err)
		}
		return string(data), nil
	}

	data, err := os.ReadFile(file)
	if err != nil {
		return "", fmt.Errorf("failed to read page: %w", err)
	}
	return string(data), nil
}
