package commands

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Polkas/styler/internal/watch"
	"github.com/Polkas/styler/pkg/styler"
)

// NewWatchCommand creates the watch command
func NewWatchCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "watch [dir]",
		Short: "Restyle R files as they change",
		Long: `Watch a directory tree and restyle R files whenever they are
written. Stop with Ctrl-C.`,
		Args: cobra.MaximumNArgs(1),
		RunE: runWatch,
	}
}

func runWatch(cmd *cobra.Command, args []string) error {
	root := "."
	if len(args) == 1 {
		root = args[0]
	}

	s, cfg, err := newStyler(styler.DryOff)
	if err != nil {
		return err
	}

	logger, err := zap.NewDevelopment()
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	successColor := color.New(color.FgGreen)
	errorColor := color.New(color.FgRed)

	fw, err := watch.NewFileWatcher(cfg.Walk.ExcludeDirs, logger, func(files []string) error {
		for _, f := range files {
			changed, ferr := s.StyleFile(f)
			switch {
			case ferr != nil:
				errorColor.Fprintf(cmd.ErrOrStderr(), "✗ %s: %v\n", f, ferr)
			case changed:
				successColor.Fprintf(cmd.OutOrStdout(), "✓ %s styled\n", f)
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	if err := fw.Start(root); err != nil {
		return err
	}
	defer func() { _ = fw.Stop() }()

	fmt.Fprintf(cmd.OutOrStdout(), "Watching %s for changes, Ctrl-C to stop\n", root)

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
	<-sig
	return nil
}
