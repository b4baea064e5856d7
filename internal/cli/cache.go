package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/riskflow/internal/config"
	"github.com/matzehuels/riskflow/pkg/cache"
	"github.com/matzehuels/riskflow/pkg/session"
)

// cacheCommand creates the cache management command.
func (c *CLI) cacheCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage the scene and artifact cache",
	}

	cmd.AddCommand(c.cacheClearCommand())
	cmd.AddCommand(c.cachePathCommand())

	return cmd
}

// cacheClearCommand creates the "cache clear" subcommand.
func (c *CLI) cacheClearCommand() *cobra.Command {
	var sessions bool

	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Clear cached scenes and rendered artifacts",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg := c.settings()
			if cfg.Cache.Backend == config.CacheNone {
				printInfo("Caching is disabled")
			} else {
				cc, err := cfg.OpenCache(ctx)
				if err != nil {
					return fmt.Errorf("open cache: %w", err)
				}
				defer cc.Close()

				clearer, ok := cc.(cache.Clearer)
				if !ok {
					return fmt.Errorf("cache backend %q cannot be cleared", cfg.Cache.Backend)
				}
				if err := clearer.Clear(ctx); err != nil {
					return fmt.Errorf("clear cache: %w", err)
				}
				printSuccess("Cache cleared")
				printDetail("Location: %s", cacheLocation(cfg))
			}

			if sessions {
				store, err := session.NewFileStore("")
				if err != nil {
					return err
				}
				if err := os.RemoveAll(store.Path()); err != nil {
					return fmt.Errorf("remove explorer state: %w", err)
				}
				printSuccess("Explorer state cleared")
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&sessions, "sessions", false, "also forget the explorer's saved selections")

	return cmd
}

// cachePathCommand creates the "cache path" subcommand.
func (c *CLI) cachePathCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the cache location",
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintln(cmd.OutOrStdout(), cacheLocation(c.settings()))
			return nil
		},
	}
}

// cacheLocation describes where the configured backend keeps its entries:
// a directory for the file cache, an address and key prefix for Redis.
func cacheLocation(cfg *config.Config) string {
	switch cfg.Cache.Backend {
	case config.CacheNone:
		return "(disabled)"
	case config.CacheRedis:
		return fmt.Sprintf("redis://%s/%d %s*", cfg.Redis.Addr, cfg.Redis.DB, cfg.Redis.Prefix)
	}
	if cfg.Cache.Dir != "" {
		return cfg.Cache.Dir
	}
	dir, err := cache.DefaultDir()
	if err != nil {
		return "(unavailable)"
	}
	return dir
}
