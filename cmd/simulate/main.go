package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := defaultOptions()
	cmd := &cobra.Command{
		Use:   "simulate",
		Short: "Run a bandit policy against a casino and report regret",
		Long: `simulate drives a selection policy against a local casino, or a remote
one over gRPC with --remote, then evaluates the run against the machines'
hidden probabilities.`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return simulate(cmd.Context(), opts, cmd.OutOrStdout())
		},
	}

	f := cmd.Flags()
	f.IntVar(&opts.Arms, "arms", opts.Arms, "number of slot machines (local mode)")
	f.IntVar(&opts.TrialCap, "cap", opts.TrialCap, "lifetime play cap, 0 for none (local mode)")
	f.IntVar(&opts.MaxTrials, "max-trials", opts.MaxTrials, "per-game budget, negative for unbounded")
	f.IntVar(&opts.Plays, "plays", opts.Plays, "plays to attempt, 0 to run until the casino refuses")
	f.StringVar((*string)(&opts.Policy.Kind), "policy", string(opts.Policy.Kind), "random, epsilon-greedy or thompson")
	f.Float64Var(&opts.Policy.Epsilon, "epsilon", opts.Policy.Epsilon, "exploration rate for epsilon-greedy")
	f.Float64Var(&opts.Policy.Alpha, "alpha", opts.Policy.Alpha, "Beta prior alpha for thompson")
	f.Float64Var(&opts.Policy.Beta, "beta", opts.Policy.Beta, "Beta prior beta for thompson")
	f.Uint64Var(&opts.Seed, "seed", opts.Seed, "catalogue and policy seed, 0 for a random one")
	f.StringVar(&opts.CatalogDSN, "catalog", opts.CatalogDSN, "SQLite catalogue DSN (local mode)")
	f.StringVar(&opts.Remote, "remote", opts.Remote, "gRPC address of a running casino")
	f.StringVar(&opts.LogLevel, "log-level", opts.LogLevel, "log level")
	return cmd
}
