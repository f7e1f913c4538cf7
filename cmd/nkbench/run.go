package main

import (
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/joshuapare/nativekit/cmd/nkbench/logger"
	"github.com/joshuapare/nativekit/cmd/nkbench/workload"
	"github.com/joshuapare/nativekit/native/alloc"
)

func init() {
	rootCmd.AddCommand(newRunCmd())
}

func newRunCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "run <workload.yaml>",
		Short: "Run the workloads in a YAML file",
		Long: `The run command executes each workload on the native container and on the
matching emirpasic/gods container, checks both produce the same element order,
and reports the timings.

Example:
  nkbench run workloads.yaml
  nkbench run workloads.yaml --json --log-file nkbench.log`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFile(args[0])
		},
	}
}

// result is the outcome of one workload.
type result struct {
	Name      string  `json:"name"`
	Container string  `json:"container"`
	Allocator string  `json:"allocator"`
	Count     int     `json:"count"`
	Stride    int     `json:"stride"`
	Sort      string  `json:"sort,omitempty"`
	NativeNs  int64   `json:"native_ns"`
	ManagedNs int64   `json:"managed_ns"`
	Ratio     float64 `json:"ratio"`
}

func runFile(path string) error {
	printVerbose("Loading workloads: %s\n", path)
	f, err := workload.Load(path)
	if err != nil {
		return err
	}

	results, err := runWorkloads(alloc.Default(), f)
	if err != nil {
		return err
	}

	if jsonOut {
		return printJSON(results)
	}
	printResults(results)
	return nil
}

func runWorkloads(r *alloc.Registry, f *workload.File) ([]result, error) {
	results := make([]result, 0, len(f.Workloads))
	for i, w := range f.Workloads {
		h, ok := r.Find(w.Allocator)
		if !ok {
			return nil, fmt.Errorf("workload %s: unknown allocator %q", w.Name, w.Allocator)
		}

		vals := inputs(f.Seed, uint64(i), w.Count)
		logger.Debug("workload start", "name", w.Name, "container", w.Container,
			"allocator", w.Allocator, "count", w.Count, "stride", w.Stride)
		printVerbose("Running %s (%s on %s)\n", w.Name, w.Container, w.Allocator)

		res, err := runOne(r, h, w, vals)
		if err != nil {
			logger.Error("workload failed", "name", w.Name, "error", err)
			return nil, fmt.Errorf("workload %s: %w", w.Name, err)
		}
		logger.Info("workload done", "name", w.Name,
			"native_ns", res.NativeNs, "managed_ns", res.ManagedNs)
		results = append(results, res)
	}
	return results, nil
}

// inputs returns count deterministic values for workload index i.
func inputs(seed, i uint64, count int) []int64 {
	rng := rand.New(rand.NewPCG(seed, i))
	vals := make([]int64, count)
	for j := range vals {
		vals[j] = rng.Int64N(1 << 40)
	}
	return vals
}

func runOne(r *alloc.Registry, h alloc.Handle, w workload.Workload, vals []int64) (result, error) {
	start := time.Now()
	native, err := runNative(r, h, w, vals)
	if err != nil {
		return result{}, err
	}
	nativeDur := time.Since(start)

	start = time.Now()
	managed := runManaged(w, vals)
	managedDur := time.Since(start)

	if native != managed {
		return result{}, fmt.Errorf("native and managed results differ (%#x != %#x)", native, managed)
	}

	res := result{
		Name:      w.Name,
		Container: w.Container,
		Allocator: w.Allocator,
		Count:     w.Count,
		Stride:    w.Stride,
		Sort:      w.Sort,
		NativeNs:  nativeDur.Nanoseconds(),
		ManagedNs: managedDur.Nanoseconds(),
	}
	if res.ManagedNs > 0 {
		res.Ratio = float64(res.NativeNs) / float64(res.ManagedNs)
	}
	return res, nil
}

func printResults(results []result) {
	p := message.NewPrinter(language.English)
	printInfo("%s", p.Sprintf("%-20s %-8s %-10s %12s %14s %14s %7s\n",
		"WORKLOAD", "KIND", "ALLOCATOR", "COUNT", "NATIVE", "MANAGED", "RATIO"))
	for _, r := range results {
		printInfo("%s", p.Sprintf("%-20s %-8s %-10s %12d %14v %14v %7.2f\n",
			r.Name, r.Container, r.Allocator, r.Count,
			time.Duration(r.NativeNs), time.Duration(r.ManagedNs), r.Ratio))
	}
}
