package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/danielpatrickdp/slot-bandit/internal/catalog"
	"gonum.org/v1/gonum/stat"
)

// #region main

func main() {
	dbPath := flag.String("db", "", "path to a SQLite slot catalogue")
	offset := flag.Int("offset", 0, "first catalogue index to show")
	limit := flag.Int("limit", 20, "show at most N entries")
	jsonOut := flag.Bool("json", false, "output as JSON instead of table")
	flag.Parse()

	if *dbPath == "" {
		fmt.Fprintln(os.Stderr, "usage: inspect --db path/to/catalog.db [--offset N] [--limit N] [--json]")
		os.Exit(2)
	}

	cat, err := openCatalog(*dbPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "open db: %v\n", err)
		os.Exit(1)
	}
	defer cat.Close()

	if err := runListMode(cat, *offset, *limit, *jsonOut); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

// #endregion main

// #region list-mode

// openCatalog opens an existing catalogue file. catalog.Open would create a
// missing one.
func openCatalog(path string) (*catalog.Catalog, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, err
	}
	return catalog.Open(path, 0)
}

type listRow struct {
	Index       int     `json:"index"`
	Probability float64 `json:"probability"`
	Seed        uint64  `json:"seed"`
	CreatedAt   string  `json:"created_at"`
}

func runListMode(cat *catalog.Catalog, offset, limit int, jsonOut bool) error {
	entries, err := cat.List(offset, limit)
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		fmt.Fprintln(os.Stderr, "no catalogue entries found")
		return nil
	}

	rows := make([]listRow, len(entries))
	for i, e := range entries {
		rows[i] = listRow{
			Index:       e.Index,
			Probability: e.Config.Probability,
			Seed:        e.Config.Seed,
			CreatedAt:   e.CreatedAt.Format("2006-01-02T15:04:05Z"),
		}
	}

	if jsonOut {
		return printJSON(rows)
	}
	printListTable(rows, cat.Len())
	return nil
}

func printListTable(rows []listRow, total int) {
	fmt.Printf("%-6s  %11s  %20s  %s\n", "Index", "Probability", "Seed", "Time")
	fmt.Printf("%-6s+-%11s+-%20s+-%s\n", "------", "-----------", "--------------------", "--------------------")

	probs := make([]float64, len(rows))
	for i, r := range rows {
		probs[i] = r.Probability
		fmt.Printf("%-6d  %11.4f  %20d  %s\n", r.Index, r.Probability, r.Seed, r.CreatedAt)
	}

	mean, std := stat.MeanStdDev(probs, nil)
	fmt.Printf("\n%d of %d entries, probability mean %.4f sd %.4f\n", len(rows), total, mean, std)
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// #endregion list-mode
