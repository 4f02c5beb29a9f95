package commands

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Polkas/styler/internal/cache"
	"github.com/Polkas/styler/internal/cli/config"
	"github.com/Polkas/styler/internal/diff"
	"github.com/Polkas/styler/pkg/styler"
)

var (
	styleWrite    bool
	styleCheck    bool
	styleScope    string
	styleStrict   bool
	styleIndentBy int
	styleBase     int
	styleNoCache  bool
	styleCacheDir string
	stylePkg      bool
	styleVerbose  bool
)

// NewStyleCommand creates the style command
func NewStyleCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "style [paths...]",
		Short: "Style R source files",
		Long: `Style R source files following the tidyverse style guide.

By default, shows a diff preview of what would change without modifying
files. Use --write to apply changes, or --check to verify styling.

Examples:
  styler style                      # Preview changes for the current directory
  styler style --write              # Style and save all R files
  styler style --check              # Exit with error if anything needs styling
  styler style script.R             # Preview one file
  styler style --pkg .              # Style an R package (R/, tests/, data-raw/)
  styler style --scope line_breaks  # Leave token rewrites alone`,
		RunE: runStyle,
	}

	cmd.Flags().BoolVarP(&styleWrite, "write", "w", false, "Write styled output to files")
	cmd.Flags().BoolVarP(&styleCheck, "check", "c", false, "Check if files are styled (exit 1 if not)")
	cmd.Flags().StringVar(&styleScope, "scope", "", "Invasiveness: spaces, indention, line_breaks or tokens")
	cmd.Flags().BoolVar(&styleStrict, "strict", true, "Force exact whitespace instead of minimums")
	cmd.Flags().IntVar(&styleIndentBy, "indent-by", 0, "Spaces per indention level")
	cmd.Flags().IntVar(&styleBase, "base-indention", 0, "Indention added to every line")
	cmd.Flags().BoolVar(&styleNoCache, "no-cache", false, "Disable the styling cache")
	cmd.Flags().StringVar(&styleCacheDir, "cache-dir", "", "Directory for the styling cache")
	cmd.Flags().BoolVar(&stylePkg, "pkg", false, "Treat the path as an R package root")
	cmd.Flags().BoolVarP(&styleVerbose, "verbose", "v", false, "Log engine warnings")

	return cmd
}

// newStyler assembles an engine from config file and flags
func newStyler(dry string) (*styler.Styler, *config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}

	opts := styler.DefaultOptions()
	opts.Scope = cfg.Style.Scope
	if styleScope != "" {
		opts.Scope = styleScope
	}
	opts.Strict = cfg.Style.Strict && styleStrict
	opts.IndentBy = cfg.Style.IndentBy
	if styleIndentBy > 0 {
		opts.IndentBy = styleIndentBy
	}
	opts.BaseIndention = cfg.Style.BaseIndention
	if styleBase > 0 {
		opts.BaseIndention = styleBase
	}
	opts.IncludeRoxygenExamples = cfg.Style.RoxygenExample
	opts.IgnoreStart = cfg.Style.IgnoreStart
	opts.IgnoreStop = cfg.Style.IgnoreStop
	opts.Filetypes = cfg.Walk.Filetypes
	opts.ExcludeFiles = cfg.Walk.ExcludeFiles
	opts.ExcludeDirs = cfg.Walk.ExcludeDirs
	opts.Dry = dry

	if cfg.Cache.Enabled && !styleNoCache {
		opts.CacheDir = cfg.Cache.Dir
		if styleCacheDir != "" {
			opts.CacheDir = styleCacheDir
		}
		opts.UseCacheEnv = true
	}

	if styleVerbose {
		logger, lerr := zap.NewDevelopment()
		if lerr == nil {
			opts.Logger = logger
		}
	}

	s, err := styler.New(opts)
	if err != nil {
		return nil, nil, err
	}

	if cfg.Cache.Enabled && !styleNoCache && cfg.Cache.Backend == "redis" {
		store, rerr := cache.NewRedisStore(cache.RedisConfig{
			Addr:     cfg.Cache.Redis.Addr,
			Password: cfg.Cache.Redis.Password,
			DB:       cfg.Cache.Redis.DB,
			Prefix:   "styler:",
		})
		if rerr != nil {
			fmt.Fprintf(os.Stderr, "warning: redis cache unavailable: %v\n", rerr)
		} else {
			s.WithStore(store)
		}
	}

	return s, cfg, nil
}

func runStyle(cmd *cobra.Command, args []string) error {
	dry := styler.DryOn
	if styleWrite {
		dry = styler.DryOff
	}

	s, _, err := newStyler(dry)
	if err != nil {
		return err
	}

	if len(args) == 0 {
		args = []string{"."}
	}

	titleColor := color.New(color.FgCyan, color.Bold)
	successColor := color.New(color.FgGreen)
	errorColor := color.New(color.FgRed, color.Bold)

	hasChanges := false
	errorCount := 0

	for _, path := range args {
		var results []styler.FileResult
		var rerr error

		info, statErr := os.Stat(path)
		switch {
		case statErr != nil:
			rerr = statErr
		case stylePkg:
			results, rerr = s.StylePkg(path)
		case info.IsDir():
			results, rerr = s.StyleDir(path, true)
		default:
			changed, ferr := s.StyleFile(path)
			results = []styler.FileResult{{Path: path, Changed: changed, Err: ferr}}
		}
		if rerr != nil {
			return rerr
		}

		for _, r := range results {
			switch {
			case r.Err != nil:
				errorColor.Fprintf(cmd.ErrOrStderr(), "✗ %s: %v\n", r.Path, r.Err)
				errorCount++
			case !r.Changed:
				if !styleCheck && styleVerbose {
					successColor.Fprintf(cmd.OutOrStdout(), "✓ %s (no changes)\n", r.Path)
				}
			case styleCheck:
				hasChanges = true
				errorColor.Fprintf(cmd.ErrOrStderr(), "✗ %s needs styling\n", r.Path)
			case styleWrite:
				hasChanges = true
				successColor.Fprintf(cmd.OutOrStdout(), "✓ %s styled\n", r.Path)
			default:
				hasChanges = true
				if err := previewDiff(cmd, s, r.Path); err != nil {
					errorColor.Fprintf(cmd.ErrOrStderr(), "✗ %s: %v\n", r.Path, err)
					errorCount++
				}
			}
		}
	}

	if !styleWrite && !styleCheck && hasChanges {
		fmt.Fprintln(cmd.OutOrStdout())
		titleColor.Fprintln(cmd.OutOrStdout(), "Run 'styler style --write' to apply changes")
	}
	if styleCheck && hasChanges {
		return fmt.Errorf("files need styling")
	}
	if errorCount > 0 {
		return fmt.Errorf("%d files had errors", errorCount)
	}
	return nil
}

// previewDiff prints the would-be changes of one file
func previewDiff(cmd *cobra.Command, s *styler.Styler, path string) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	styled, _, err := s.StyleText(string(raw))
	if err != nil {
		return err
	}
	titleColor := color.New(color.FgCyan, color.Bold)
	titleColor.Fprintf(cmd.OutOrStdout(), "\n=== %s ===\n", path)
	fmt.Fprintln(cmd.OutOrStdout(), diff.New(string(raw), styled).String())
	return nil
}
