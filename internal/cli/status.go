package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/SeamusWaldron/cubesolver/internal/cache"
	"github.com/SeamusWaldron/cubesolver/internal/storage"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show configuration, history and cache status",
	Args:  cobra.NoArgs,
	RunE:  runStatus,
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

func runStatus(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	ctx := cmd.Context()

	fmt.Fprintln(out, "cubesolver status")
	fmt.Fprintln(out, "=================")
	fmt.Fprintln(out)
	fmt.Fprintf(out, "Rotation limit: %d\n", cfg.Solver.MaxRotations)
	fmt.Fprintf(out, "Storage:        %s\n", cfg.Storage.Driver)

	switch cfg.Storage.Driver {
	case "sqlite":
		path := cfg.Storage.Path
		if path == "" {
			path, _ = storage.DefaultDBPath()
		}
		fmt.Fprintf(out, "Database:       %s\n", path)
	case "postgres":
		fmt.Fprintf(out, "Database:       postgres\n")
	}

	st, err := openStore(ctx)
	switch {
	case err != nil:
		fmt.Fprintf(out, "History:        unavailable (%v)\n", err)
	case st != nil:
		defer st.Close()
		if sq, ok := st.(*storage.SQLiteStore); ok {
			if v, err := sq.DB().CurrentVersion(); err == nil {
				fmt.Fprintf(out, "Schema version: %d\n", v)
			}
		}
		solves, _ := st.ListSolves(ctx, 10000)
		fmt.Fprintf(out, "Total solves:   %d\n", len(solves))
		if len(solves) > 0 {
			fmt.Fprintf(out, "Last solve:     %s\n", solves[0].CreatedAt.Local().Format(time.RFC3339))
		}
	}

	fmt.Fprintln(out)
	if cfg.Cache.URL == "" {
		fmt.Fprintln(out, "Cache:          disabled")
		return nil
	}
	pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	c, err := cache.Open(pingCtx, cfg.Cache.URL, cfg.Cache.TTL)
	if err != nil {
		fmt.Fprintf(out, "Cache:          unreachable (%v)\n", err)
		return nil
	}
	defer c.Close()
	fmt.Fprintf(out, "Cache:          %s (ttl %s)\n", cfg.Cache.URL, cfg.Cache.TTL)
	return nil
}
