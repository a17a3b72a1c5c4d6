package main

import (
	"fmt"
	"math/rand/v2"
	"os"
	"time"

	"github.com/bytedance/sonic"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/imgajeed76/dataview/internal/metrics"
	"github.com/imgajeed76/dataview/internal/record"
	"github.com/imgajeed76/dataview/internal/replay"
	"github.com/imgajeed76/dataview/internal/sorting"
	"github.com/imgajeed76/dataview/internal/ui"
	"github.com/imgajeed76/dataview/internal/ui/styles"
	"github.com/imgajeed76/dataview/internal/util"
	"github.com/imgajeed76/dataview/internal/view"
)

// ═══════════════════════════════════════════════════════════════════════════
// dataview-bench: cached vs recomputed list views
//
// Usage:
//   dataview-bench [--records N] [--per-page N] [--rounds N] [--json]
//
// Builds a synthetic collection, replays the same interaction script
// (every sort state of every column, every page, expand and collapse) on a
// cached and on a recomputing controller, and reports timings and cache
// hit rates per stage.
// ═══════════════════════════════════════════════════════════════════════════

var (
	stBold    = lipgloss.NewStyle().Bold(true)
	stDim     = lipgloss.NewStyle().Foreground(styles.Muted)
	stSuccess = lipgloss.NewStyle().Foreground(styles.Success)
	stWarning = lipgloss.NewStyle().Foreground(styles.Warning)
)

type options struct {
	records int
	perPage int
	rounds  int
	seed    uint64
	json    bool
}

// Result is the JSON report.
type Result struct {
	Records    int                  `json:"records"`
	PerPage    int                  `json:"perPage"`
	Steps      int                  `json:"steps"`
	Rounds     int                  `json:"rounds"`
	Cached     time.Duration        `json:"cachedNs"`
	Recomputed time.Duration        `json:"recomputedNs"`
	Speedup    float64              `json:"speedup"`
	Mismatches int                  `json:"mismatches"`
	Stages     []metrics.StageCount `json:"stages"`
}

func main() {
	var opts options
	cmd := &cobra.Command{
		Use:           "dataview-bench",
		Short:         "Compare cached and recomputed list view pipelines",
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			styles.Configure(!term.IsTerminal(int(os.Stdout.Fd())), false)
			return run(opts)
		},
	}
	cmd.Flags().IntVar(&opts.records, "records", 5000, "Synthetic records to generate")
	cmd.Flags().IntVar(&opts.perPage, "per-page", 25, "Rows per page")
	cmd.Flags().IntVar(&opts.rounds, "rounds", 5, "Times to replay the script")
	cmd.Flags().Uint64Var(&opts.seed, "seed", 1, "Random seed")
	cmd.Flags().BoolVar(&opts.json, "json", false, "Output the result as JSON")

	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, styles.ErrorMsg(err.Error()))
		os.Exit(1)
	}
}

func run(opts options) error {
	records := synthesize(opts.records, opts.seed)
	fields := []string{"nombre", "total", "is_active", "created_at"}
	script := replay.Script(fields, len(records), opts.perPage, true)

	cfg := view.Config{
		SortField:     "created_at",
		SortDirection: sorting.Desc,
		ItemsPerPage:  opts.perPage,
	}
	rec := metrics.New(nil)
	cachedCfg := cfg
	cachedCfg.Observer = rec
	recomputedCfg := cfg
	recomputedCfg.DisableMemo = true

	res := Result{
		Records: len(records),
		PerPage: opts.perPage,
		Steps:   len(script),
		Rounds:  opts.rounds,
	}

	progress := ui.NewProgress("replaying", opts.rounds*2)
	for range opts.rounds {
		res.Cached += timeScript(view.New(cachedCfg, records), script)
		progress.Increment()
		res.Recomputed += timeScript(view.New(recomputedCfg, records), script)
		progress.Increment()
	}
	progress.Done()

	_, mismatches, err := replay.Compare(view.New(recomputedCfg, records), view.New(cfg, records), script)
	if err != nil {
		return err
	}
	res.Mismatches = len(mismatches)
	if res.Cached > 0 {
		res.Speedup = float64(res.Recomputed) / float64(res.Cached)
	}
	if res.Stages, err = rec.Summary(); err != nil {
		return err
	}

	if opts.json {
		data, err := sonic.ConfigStd.MarshalIndent(res, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(data))
		return nil
	}
	printResult(res)
	return nil
}

// timeScript replays script and reads every derived value after each step,
// the way a renderer would.
func timeScript(ctl *view.Controller, script []replay.Action) time.Duration {
	start := time.Now()
	for _, action := range script {
		action.Apply(ctl)
		_ = ctl.Paginated()
		_ = ctl.PageNumbers()
		_ = ctl.DisplayRange()
		_ = ctl.Stats()
	}
	return time.Since(start)
}

var (
	benchNames = []string{"Ventas", "Árbol", "logística", "Compras", "Éxito", "atención", "Zona", "ñandú"}
	benchBase  = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
)

func synthesize(n int, seed uint64) []record.Record {
	rng := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	out := make([]record.Record, n)
	for i := range out {
		created := benchBase.Add(time.Duration(rng.IntN(365*24)) * time.Hour)
		r := record.Record{
			"id":         util.NewULIDWithTime(created),
			"nombre":     fmt.Sprintf("%s %d", benchNames[rng.IntN(len(benchNames))], i),
			"total":      float64(rng.IntN(1000)),
			"is_active":  rng.IntN(3) != 0,
			"created_at": created.Format(time.RFC3339),
		}
		if rng.IntN(10) == 0 {
			delete(r, "total")
		}
		out[i] = r
	}
	return out
}

func render(s lipgloss.Style, text string) string {
	if styles.NoColor() {
		return text
	}
	return s.Render(text)
}

func printResult(res Result) {
	fmt.Println()
	fmt.Println(render(stBold, fmt.Sprintf("%d records, %d per page, %d steps x %d rounds",
		res.Records, res.PerPage, res.Steps, res.Rounds)))
	fmt.Println()
	fmt.Printf("  %-12s %s\n", "cached", res.Cached.Round(time.Microsecond))
	fmt.Printf("  %-12s %s\n", "recomputed", res.Recomputed.Round(time.Microsecond))
	fmt.Printf("  %-12s %s\n", "speedup", render(stSuccess, fmt.Sprintf("%.1fx", res.Speedup)))
	fmt.Println()

	fmt.Println(render(stBold, "Stages"))
	for _, sc := range res.Stages {
		fmt.Printf("  %-10s %s\n", sc.Stage,
			render(stDim, fmt.Sprintf("%8d hits %8d misses  %5.1f%%", sc.Hits, sc.Misses, sc.HitRate()*100)))
	}
	fmt.Println()

	if res.Mismatches > 0 {
		fmt.Println(render(stWarning, fmt.Sprintf("%d steps rendered differently; run 'dataview check' on an export", res.Mismatches)))
		return
	}
	fmt.Println(render(stSuccess, "cached and recomputed views agree"))
}
