package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/mobicorp/spaceplanner-backend/pkg/config"
	"github.com/mobicorp/spaceplanner-backend/pkg/logger"
)

// app carries what every subcommand needs once the root command resolved config.
type app struct {
	cfg  *config.Config
	logg *logger.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:           "planner-cli",
		Short:         "Talk to the SpacePlanner API from a terminal",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			a.cfg = cfg
			a.logg = logger.New(logger.Options{
				ServiceName: "planner-cli",
				Level:       logger.ParseLevel(cfg.App.LogLevel),
				Format:      cfg.App.LogFormat,
				Output:      cmd.ErrOrStderr(),
			})
			return nil
		},
	}
	root.AddCommand(newAdviseCmd(a), newCatalogCmd(a))
	return root
}

func main() {
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
