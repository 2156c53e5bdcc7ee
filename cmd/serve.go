package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/spacecanva/spacecanva/internal/laboratory"
	"github.com/spacecanva/spacecanva/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the dashboard HTTP and WebSocket server",
	Long: `Starts the spacecanva server with the catalog, scene, search, laboratory
and backend gateway APIs, plus the laboratory WebSocket at /ws/lab.`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().Int("port", 0, "port to listen on (overrides config)")
	serveCmd.Flags().Bool("allow-all", false, "allow all CORS origins (dev mode)")
	serveCmd.Flags().Bool("no-lab", false, "serve without the AI laboratory")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if port, _ := cmd.Flags().GetInt("port"); port > 0 {
		cfg.Server.Port = port
	}
	if allowAll, _ := cmd.Flags().GetBool("allow-all"); allowAll {
		cfg.Server.AllowAll = true
	}

	// Graceful shutdown.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, closeCache, err := openCache(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeCache()

	idx, err := loadSearchIndex(cfg)
	if err != nil {
		return err
	}

	deps := server.Deps{
		Catalog: newCatalogClient(cfg, store),
		Scene:   cfg.Scene,
		Search:  idx,
		Backend: newBackendClient(cfg, ""),
	}

	if noLab, _ := cmd.Flags().GetBool("no-lab"); !noLab {
		service, err := newLaboratoryService(cfg)
		if err != nil {
			return fmt.Errorf("%w\nUse --no-lab to serve without the laboratory", err)
		}
		deps.Laboratory = laboratory.NewHandler(
			service,
			laboratory.NewSessions(),
			laboratory.BackendPredictor{Client: deps.Backend},
			laboratory.Typewriter{Delay: cfg.Laboratory.TypingDelay, ChunkWords: cfg.Laboratory.TypingChunk},
			logger.Named("laboratory"),
		)
	}

	srv := server.New(server.Config{
		Port:           cfg.Server.Port,
		AllowAll:       cfg.Server.AllowAll,
		AllowedOrigins: cfg.Server.AllowedOrigins,
	}, deps, logger.Named("server"))

	logger.Info("starting spacecanva server",
		zap.String("version", Version),
		zap.Int("port", cfg.Server.Port),
		zap.String("cache", cfg.Cache.Backend),
		zap.Int("indexed_planets", idx.Count()),
		zap.Bool("laboratory", deps.Laboratory != nil))

	return srv.Run(ctx)
}
