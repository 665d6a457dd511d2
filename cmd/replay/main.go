package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"

	"github.com/danielpatrickdp/slot-bandit/internal/logging"
	"github.com/danielpatrickdp/slot-bandit/internal/replay"
)

// #region main

func main() {
	fixturePath := flag.String("fixture", "", "path to fixture (.json, .yaml or .yml)")
	logLevel := flag.String("log-level", "warn", "log level")
	flag.Parse()

	if *fixturePath == "" {
		fmt.Fprintln(os.Stderr, "usage: replay --fixture path/to/fixture.json")
		os.Exit(2)
	}
	os.Exit(run(*fixturePath, *logLevel))
}

// #endregion main

// #region run

func run(path, level string) int {
	log, err := logging.New(level, "text")
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger: %v\n", err)
		return 2
	}

	f, err := replay.LoadFixture(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "load fixture: %v\n", err)
		return 2
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	s, err := replay.RunFixture(ctx, f, log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "replay fixture: %v\n", err)
		return 2
	}

	if f.Description != "" {
		fmt.Printf("%s\n\n", f.Description)
	}
	fmt.Printf("run %s: policy=%s plays=%d score=%g\n", s.RunID, f.Policy, len(s.Run.Steps), s.Run.Score())
	if s.Run.Err != nil {
		fmt.Printf("stopped: %v\n", s.Run.Err)
	}
	fmt.Printf("regret=%.4f best_arm=%d best_arm_rate=%.3f eval=%s\n\n",
		s.Eval.Regret, s.Eval.BestArm, s.Eval.BestArmRate, passFail(s.Eval.Passed))

	return printComparison(replay.Compare(f, s), f.Expected != nil)
}

// #endregion run

// #region output

// printComparison outputs the mismatch table and returns the exit code.
func printComparison(mismatches []replay.Mismatch, hasExpectation bool) int {
	if !hasExpectation {
		fmt.Println("No expectation in fixture; nothing to compare.")
		return 0
	}

	fmt.Printf("%-12s| %-15s| %-15s\n", "Field", "Expected", "Replayed")
	fmt.Printf("%-12s+%-15s+%-15s\n", "------------", "----------------", "----------------")
	for _, m := range mismatches {
		fmt.Printf("%-12s| %-15s| %-15s\n", m.Field, m.Expected, m.Replayed)
	}

	fmt.Printf("\nSummary: %d diverge\n", len(mismatches))
	if len(mismatches) > 0 {
		return 1
	}
	return 0
}

func passFail(ok bool) string {
	if ok {
		return "PASS"
	}
	return "FAIL"
}

// #endregion output
