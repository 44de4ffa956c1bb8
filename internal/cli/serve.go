package cli

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/SeamusWaldron/cubesolver/internal/cache"
	"github.com/SeamusWaldron/cubesolver/internal/server"
)

var serveAddress string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the solver over HTTP and websocket",
	Long: `Start the solver service.

  POST /solve_cube   {"scrambled_cube": [[[...]]]}
  GET  /solves/{id}
  GET  /ws           websocket, streams one message per move

Solutions are cached in redis when cache.url is set, and recorded in the
configured history store.`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringVar(&serveAddress, "address", "", "Listen address (default from config, :8000)")
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	srvCfg := cfg.Server
	if serveAddress != "" {
		srvCfg.Address = serveAddress
	}

	opts := []server.Option{
		server.WithLogger(logger),
		server.WithSolverOptions(solverOptions()...),
	}

	if cfg.Cache.URL != "" {
		c, err := cache.Open(ctx, cfg.Cache.URL, cfg.Cache.TTL)
		if err != nil {
			logger.Warn("solution cache disabled", zap.Error(err))
		} else {
			defer c.Close()
			opts = append(opts, server.WithCache(c))
			logger.Info("solution cache enabled", zap.Duration("ttl", cfg.Cache.TTL))
		}
	}

	st, err := openStore(ctx)
	if err != nil {
		logger.Warn("solve history disabled", zap.Error(err))
	} else if st != nil {
		defer st.Close()
		opts = append(opts, server.WithStore(st))
		logger.Info("solve history enabled", zap.String("driver", cfg.Storage.Driver))
	}

	logger.Info("starting cubesolver server",
		zap.String("version", version),
		zap.String("address", srvCfg.Address),
		zap.Int("max_rotations", cfg.Solver.MaxRotations),
	)

	err = server.New(srvCfg, opts...).Run(ctx)
	logger.Info("cubesolver server stopped")
	return err
}
