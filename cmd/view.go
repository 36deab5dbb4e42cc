package cmd

import (
	"fmt"
	"os"
	"os/signal"

	"github.com/gdamore/tcell/v2"
	"github.com/spf13/cobra"

	"taskgrapher/logging"
	"taskgrapher/terminal"
)

func viewCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "view",
		Short: "Open the interactive task graph",
		Long: "Open the seed task tree in an interactive view.\n\n" +
			"  left drag     move a task and its subtasks\n" +
			"  middle drag   pan, arrow keys also pan\n" +
			"  wheel, +/-    zoom at the pointer\n" +
			"  right click   add a child or delete a subtree\n" +
			"  q, Esc        quit",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.load(cmd)
			if err != nil {
				return err
			}
			logger, closer, err := logging.OpenFile(cfg.Log.File, cfg.Log.Level, cfg.Log.Format)
			if err != nil {
				return fmt.Errorf("opening log file: %w", err)
			}
			defer closer.Close()

			s, err := newSession(cfg, logger)
			if err != nil {
				return err
			}
			palette, err := cfg.Theme.Palette()
			if err != nil {
				return err
			}

			screen, err := tcell.NewScreen()
			if err != nil {
				return fmt.Errorf("opening terminal: %w", err)
			}
			if err := screen.Init(); err != nil {
				return fmt.Errorf("initialising terminal: %w", err)
			}
			defer screen.Fini()

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()

			shell := terminal.NewShell(screen, s.scene, s.ctrl,
				terminal.WithCellSize(cfg.View.CellWidth, cfg.View.CellHeight),
				terminal.WithPalette(palette),
				terminal.WithLogger(logger),
				terminal.WithChecks(cfg.Log.Level == "debug"),
			)
			return shell.Run(ctx)
		},
	}
}
