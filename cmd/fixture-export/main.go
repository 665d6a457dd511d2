package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/danielpatrickdp/slot-bandit/internal/casino"
	"github.com/danielpatrickdp/slot-bandit/internal/catalog"
	"github.com/danielpatrickdp/slot-bandit/internal/logging"
	"github.com/danielpatrickdp/slot-bandit/internal/policy"
	"github.com/danielpatrickdp/slot-bandit/internal/replay"
	"github.com/danielpatrickdp/slot-bandit/internal/reward"
)

// #region main

func main() {
	dbPath := flag.String("db", "", "path to a SQLite slot catalogue")
	offset := flag.Int("offset", 0, "first catalogue index to use as arm 0")
	arms := flag.Int("arms", 4, "number of catalogue entries to export as arms")
	steps := flag.Int("steps", 100, "plays to record")
	kind := flag.String("policy", string(policy.KindThompson), "random, epsilon-greedy or thompson")
	seed := flag.Uint64("seed", 1, "policy seed")
	outPath := flag.String("out", "", "output fixture JSON path")
	flag.Parse()

	if *dbPath == "" || *outPath == "" || *arms <= 0 {
		fmt.Fprintln(os.Stderr, "usage: fixture-export --db path/to/catalog.db --out path/to/fixture.json [--offset N] [--arms N]")
		os.Exit(2)
	}

	spec := policy.Spec{Kind: policy.Kind(*kind), Epsilon: 0.1, Alpha: 1, Beta: 1, Seed: *seed}
	if err := run(*dbPath, *offset, *arms, *steps, spec, *outPath); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

// #endregion main

// #region extract

func run(dbPath string, offset, arms, steps int, spec policy.Spec, outPath string) error {
	if arms <= 0 {
		return fmt.Errorf("--arms must be positive, got %d", arms)
	}
	if _, err := os.Stat(dbPath); err != nil {
		return fmt.Errorf("open db: %w", err)
	}
	cat, err := catalog.Open(dbPath, 0)
	if err != nil {
		return fmt.Errorf("open db: %w", err)
	}
	defer cat.Close()

	entries, err := cat.List(offset, arms)
	if err != nil {
		return err
	}
	if len(entries) < arms {
		return fmt.Errorf("catalogue has %d entries from index %d, need %d", len(entries), offset, arms)
	}

	cfgs := make([]reward.Config, len(entries))
	for i, e := range entries {
		cfgs[i] = e.Config
	}

	f := &replay.Fixture{
		Description: fmt.Sprintf("catalogue entries %d..%d of %s", offset, offset+arms-1, dbPath),
		Casino:      replay.FixtureCasino{Arms: cfgs},
		Policy:      spec,
		Steps:       steps,
	}

	// Record the reference outcome so later replays can detect drift.
	s, err := replay.RunFixture(context.Background(), f, logging.Discard())
	if err != nil {
		return fmt.Errorf("record fixture: %w", err)
	}
	exp := &replay.FixtureExpect{Plays: len(s.Run.Steps), Indices: make([]int, len(s.Run.Steps))}
	score := s.Run.Score()
	exp.Score = &score
	for i, st := range s.Run.Steps {
		exp.Indices[i] = st.Index
	}
	if s.Run.Err != nil {
		exp.StopErr = casino.Outcome(s.Run.Err)
	}
	f.Expected = exp

	data, err := json.MarshalIndent(f, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal fixture: %w", err)
	}
	if err := os.WriteFile(outPath, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("write fixture: %w", err)
	}

	fmt.Printf("wrote %s: %d arms, %d plays, score %g\n", outPath, arms, exp.Plays, score)
	return nil
}

// #endregion extract
