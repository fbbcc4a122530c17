// Command sssd-example is a small HTTP service whose lifecycle is driven by sssd:
//
//	sssd-example daemon   run in the background, output in logs/sssd-example.log
//	sssd-example status
//	sssd-example stop
//	sssd-example start    run in the foreground
//
// Settings come from SSSD_* environment variables (see internal/config).
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/loykin/sssd"
	"github.com/loykin/sssd/internal/server"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
)

func main() {
	root := newRootCommand()
	if err := root.ExecuteContext(context.Background()); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// newRootCommand passes every argument through untouched; the lifecycle
// keyword may appear anywhere on the command line.
func newRootCommand() *cobra.Command {
	return &cobra.Command{
		Use:                "sssd-example [status|start|stop|daemon]",
		Short:              "Demo HTTP service with start/stop/status/daemon lifecycle",
		Args:               cobra.ArbitraryArgs,
		DisableFlagParsing: true,
		SilenceUsage:       true,
		SilenceErrors:      true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context(), append([]string{os.Args[0]}, args...), cmd.OutOrStdout())
		},
	}
}

func run(ctx context.Context, args []string, stdout io.Writer) error {
	cfg, err := sssd.LoadConfig()
	if err != nil {
		return err
	}
	log := sssd.NewLogger(cfg)
	if err := sssd.RegisterMetrics(prometheus.DefaultRegisterer); err != nil {
		return err
	}
	d, err := sssd.NewDispatcher(
		sssd.WithStdout(stdout),
		sssd.WithLogger(log),
		sssd.WithLogDir(cfg.LogDir),
	)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()
	return d.Run(ctx, args, func(ctx context.Context) error {
		log.Info("starting workload", "name", d.Name(), "pid", os.Getpid(), "listen", cfg.Listen)
		if err := sssd.RegisterInstanceMetrics(prometheus.DefaultRegisterer, d.Name()); err != nil {
			return err
		}
		return server.ListenAndServe(ctx, cfg.Listen, server.NewRouter(d, "").Handler(), log)
	})
}
