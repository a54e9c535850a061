package main

import (
	"fmt"
	"math/rand"
	"os"
	"runtime"
	"runtime/pprof"
	"time"

	"github.com/urfave/cli/v2"
	"golang.org/x/exp/slog"

	"github.com/viniciusth/blockindex"
)

type variant struct {
	name   string
	config func(*blockindex.Builder) *blockindex.Builder
}

var variants = map[string]variant{
	"lookup":       {name: "lookup", config: func(b *blockindex.Builder) *blockindex.Builder { return b.Backend(blockindex.LookupTable) }},
	"bitvector":    {name: "bitvector", config: func(b *blockindex.Builder) *blockindex.Builder { return b.Backend(blockindex.BitVector) }},
	"search":       {name: "search", config: func(b *blockindex.Builder) *blockindex.Builder { return b.Backend(blockindex.Search) }},
	"search_nolcp": {name: "search_nolcp", config: func(b *blockindex.Builder) *blockindex.Builder { return b.Backend(blockindex.Search).SkipLCP() }},
}

var logger = slog.New(slog.NewTextHandler(os.Stderr, nil))

type memMonitor struct {
	maxAlloc uint64
	stop     chan struct{}
	done     chan struct{}
}

func newMemMonitor() *memMonitor {
	mm := &memMonitor{stop: make(chan struct{}), done: make(chan struct{})}
	go func() {
		defer close(mm.done)
		for {
			var m runtime.MemStats
			runtime.ReadMemStats(&m)
			if m.Alloc > mm.maxAlloc {
				mm.maxAlloc = m.Alloc
			}
			select {
			case <-mm.stop:
				return
			default:
				time.Sleep(10 * time.Millisecond)
			}
		}
	}()
	return mm
}

func (mm *memMonitor) Stop() uint64 {
	close(mm.stop)
	<-mm.done
	return mm.maxAlloc
}

func getCurrentAlloc() uint64 {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	return m.Alloc
}

func measureBuild(text string, blockLen int, config func(*blockindex.Builder) *blockindex.Builder) (time.Duration, uint64, uint64, *blockindex.Index, error) {
	runtime.GC()
	mm := newMemMonitor()
	start := time.Now()
	idx, err := config(blockindex.NewBuilder(text, blockLen)).Build()
	dur := time.Since(start)
	peak := mm.Stop()
	if err != nil {
		return 0, 0, 0, nil, err
	}
	runtime.GC()
	return dur, peak, getCurrentAlloc(), idx, nil
}

func measureQuery(idx *blockindex.Index, words []string) (time.Duration, int, error) {
	start := time.Now()
	matches := 0
	for _, w := range words {
		n, err := idx.Count(w)
		if err != nil {
			return 0, 0, err
		}
		matches += n
	}
	return time.Since(start), matches, nil
}

func randomText(r *rand.Rand, n int) string {
	text := make([]byte, n)
	for i := range text {
		text[i] = "ACGT"[r.Intn(4)]
	}
	return string(text)
}

func runBenchmark(v variant, n, blockLen, wordLen, q, runs int) error {
	for run := 0; run < runs; run++ {
		r := rand.New(rand.NewSource(int64(run)))
		text := randomText(r, n)
		bt, bp, ba, idx, err := measureBuild(text, blockLen, v.config)
		if err != nil {
			return err
		}
		words := make([]string, q)
		for i := range words {
			b := r.Intn(idx.Len())
			words[i] = idx.Block(b)[:min(wordLen, len(idx.Block(b)))]
		}
		qt, matches, err := measureQuery(idx, words)
		if err != nil {
			return err
		}
		logger.Debug("run finished", "variant", v.name, "run", run, "matches", matches)
		fmt.Printf("%s,%d,%d,%d,%d,%.0f,%d,%d,%d,%.0f\n",
			v.name, n, blockLen, wordLen, q,
			float64(bt.Nanoseconds()), bp, ba, idx.SizeInBytes(),
			float64(qt.Nanoseconds()))
	}
	return nil
}

func benchAction(c *cli.Context) error {
	if path := c.String("cpuprofile"); path != "" {
		f, err := os.Create(path)
		if err != nil {
			return fmt.Errorf("could not create CPU profile: %w", err)
		}
		defer f.Close()
		if err := pprof.StartCPUProfile(f); err != nil {
			return fmt.Errorf("could not start CPU profile: %w", err)
		}
		defer pprof.StopCPUProfile()
	}

	n, l, p, q := c.Int("n"), c.Int("l"), c.Int("p"), c.Int("q")
	if n <= 0 || l <= 0 || p <= 0 || q <= 0 || p > l {
		return cli.Exit("n, l, p and q must be positive and p <= l", 1)
	}
	v, ok := variants[c.String("variant")]
	if !ok {
		return cli.Exit(fmt.Sprintf("invalid variant %q", c.String("variant")), 1)
	}
	logger.Info("benchmark", "variant", v.name, "n", n, "l", l, "p", p, "q", q, "runs", c.Int("runs"))
	return runBenchmark(v, n, l, p, q, c.Int("runs"))
}

func demoAction(c *cli.Context) error {
	text, word := c.String("text"), c.String("word")
	for _, name := range []string{"lookup", "bitvector", "search"} {
		idx, err := variants[name].config(blockindex.NewBuilder(text, c.Int("l"))).Build()
		if err != nil {
			return err
		}
		got, err := idx.Query(word)
		if err != nil {
			return err
		}
		fmt.Printf("the %s result is %v\n", name, got)
	}
	return nil
}

func main() {
	app := &cli.App{
		Name:  "bench",
		Usage: "measure block index construction and queries",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "variant", Usage: "backend variant: lookup, bitvector, search or search_nolcp", Value: "lookup"},
			&cli.IntFlag{Name: "n", Usage: "text length"},
			&cli.IntFlag{Name: "l", Usage: "block length"},
			&cli.IntFlag{Name: "p", Usage: "query word length"},
			&cli.IntFlag{Name: "q", Usage: "number of queries"},
			&cli.IntFlag{Name: "runs", Usage: "number of runs for averaging", Value: 3},
			&cli.StringFlag{Name: "cpuprofile", Usage: "write CPU profile to file"},
		},
		Action: benchAction,
		Commands: []*cli.Command{
			{
				Name:  "demo",
				Usage: "query a fixed text with every backend",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "text", Value: "ACGACGTACACGGTAACG"},
					&cli.StringFlag{Name: "word", Value: "ACG"},
					&cli.IntFlag{Name: "l", Value: 3},
				},
				Action: demoAction,
			},
		},
	}
	if err := app.Run(os.Args); err != nil {
		logger.Error("bench failed", "err", err)
		os.Exit(1)
	}
}
