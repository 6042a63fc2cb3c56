package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/trieviz/pkg/cache"
)

// cacheCommand creates the cache management command.
func (c *CLI) cacheCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage the artifact cache",
	}

	cmd.AddCommand(c.cacheClearCommand())
	cmd.AddCommand(c.cachePathCommand())

	return cmd
}

// cacheClearCommand creates the "cache clear" subcommand.
func (c *CLI) cacheClearCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Remove all cached graphs and artifacts",
		RunE: func(cmd *cobra.Command, args []string) error {
			backend, err := c.newCache(cmd.Context(), false)
			if err != nil {
				return err
			}
			defer backend.Close()

			var count int
			switch b := backend.(type) {
			case *cache.FileCache:
				count, err = b.Clear()
				if err == nil {
					printSuccess("Cleared %d cached entries", count)
					printDetail("Directory: %s", b.Dir())
				}
			case *cache.RedisCache:
				count, err = b.Clear(cmd.Context())
				if err == nil {
					printSuccess("Cleared %d cached entries", count)
					printDetail("Redis: %s", c.cfg().Cache.RedisAddr)
				}
			case *cache.MemoryCache:
				count = b.Len()
				err = b.Close()
				if err == nil {
					printSuccess("Cleared %d in-memory entries", count)
				}
			default:
				printInfo("Cache is disabled")
			}
			return err
		},
	}
}

// cachePathCommand creates the "cache path" subcommand.
func (c *CLI) cachePathCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the cache location",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := c.cfg().Cache
			if cfg.RedisAddr != "" {
				fmt.Fprintln(cmd.OutOrStdout(), "redis://"+cfg.RedisAddr)
				return nil
			}
			dir := cfg.Dir
			if dir == "" {
				d, err := cacheDir()
				if err != nil {
					return fmt.Errorf("get cache dir: %w", err)
				}
				dir = d
			}
			fmt.Fprintln(cmd.OutOrStdout(), dir)
			return nil
		},
	}
}
