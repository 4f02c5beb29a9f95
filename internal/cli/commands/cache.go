package commands

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/Polkas/styler/internal/cache"
	"github.com/Polkas/styler/internal/cli/config"
)

// NewCacheCommand creates the cache command group
func NewCacheCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Inspect or clear the styling cache",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "info",
		Short: "Show cache backend, location and entry count",
		RunE:  runCacheInfo,
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "clear",
		Short: "Remove every cache entry",
		RunE:  runCacheClear,
	})
	return cmd
}

// openStore builds the configured cache store
func openStore() (cache.Store, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if !cfg.Cache.Enabled {
		return nil, fmt.Errorf("cache is disabled; enable it in .styler.yml")
	}
	if cfg.Cache.Backend == "redis" {
		return cache.NewRedisStore(cache.RedisConfig{
			Addr:     cfg.Cache.Redis.Addr,
			Password: cfg.Cache.Redis.Password,
			DB:       cfg.Cache.Redis.DB,
			Prefix:   "styler:",
		})
	}
	if cfg.Cache.Dir == "" {
		return nil, fmt.Errorf("cache.dir is not configured")
	}
	return cache.NewFSStore(cfg.Cache.Dir)
}

func runCacheInfo(cmd *cobra.Command, args []string) error {
	store, err := openStore()
	if err != nil {
		return err
	}
	info, err := store.Info()
	if err != nil {
		return err
	}

	titleColor := color.New(color.FgCyan, color.Bold)
	titleColor.Fprint(cmd.OutOrStdout(), "Backend: ")
	fmt.Fprintln(cmd.OutOrStdout(), info.Backend)
	if info.Path != "" {
		titleColor.Fprint(cmd.OutOrStdout(), "Location: ")
		fmt.Fprintln(cmd.OutOrStdout(), info.Path)
	}
	titleColor.Fprint(cmd.OutOrStdout(), "Entries: ")
	fmt.Fprintln(cmd.OutOrStdout(), info.Entries)
	return nil
}

func runCacheClear(cmd *cobra.Command, args []string) error {
	store, err := openStore()
	if err != nil {
		return err
	}
	if err := store.Clear(); err != nil {
		return err
	}
	color.New(color.FgGreen).Fprintln(cmd.OutOrStdout(), "✓ cache cleared")
	return nil
}
