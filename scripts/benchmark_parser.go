package main

import (
	"bufio"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"
)

// BenchmarkResult represents a parsed benchmark result.
type BenchmarkResult struct {
	Name        string
	Operation   string
	Impl        string // sub-benchmark name: "native", "gods", "recursive", ...
	Iterations  int
	NsPerOp     float64
	BytesPerOp  int64
	AllocsPerOp int64
}

// ComparisonResult pairs one native implementation with the managed baseline
// of the same operation.
type ComparisonResult struct {
	Operation    string
	Impl         string
	NativeNs     float64
	BaselineNs   float64
	Baseline     string
	Speedup      float64
	NativeAllocs int64
	BaseAllocs   int64
	NativeOnly   bool
}

// baselines are the sub-benchmark names that time managed containers.
var baselines = []string{"gods", "slices"}

var (
	inputFile = flag.String(
		"input",
		"",
		"Input file with benchmark output (stdin if not specified)",
	)
	outputFile = flag.String("output", "", "Output markdown file (stdout if not specified)")
	quiet      = flag.Bool("quiet", false, "Suppress progress output")
)

func main() {
	flag.Parse()

	var in io.Reader = os.Stdin
	if *inputFile != "" {
		f, err := os.Open(*inputFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error opening input file: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
		in = f
	}

	results := parseBenchmarks(bufio.NewScanner(in))
	if !*quiet {
		fmt.Fprintf(os.Stderr, "Parsed %d benchmark results\n", len(results))
	}

	comparisons := generateComparisons(results)
	if !*quiet {
		fmt.Fprintf(os.Stderr, "Generated %d comparisons\n", len(comparisons))
	}

	report := generateMarkdownReport(comparisons, time.Now())

	if *outputFile == "" {
		fmt.Fprint(os.Stdout, report)
		return
	}
	if err := os.WriteFile(*outputFile, []byte(report), 0644); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing output file: %v\n", err)
		os.Exit(1)
	}
	if !*quiet {
		fmt.Fprintf(os.Stderr, "Report written to %s\n", *outputFile)
	}
}

// BenchmarkQueue/native-8    1200    981234 ns/op    65536 B/op    12 allocs/op
var benchmarkRegex = regexp.MustCompile(
	`^(Benchmark\S+)\s+(\d+)\s+([\d.]+)\s+ns/op(?:\s+([\d.]+)\s+B/op)?(?:\s+([\d.]+)\s+allocs/op)?`,
)

func parseBenchmarks(scanner *bufio.Scanner) []BenchmarkResult {
	var results []BenchmarkResult

	for scanner.Scan() {
		line := scanner.Text()

		// Accept `go test -json` events too
		var testEvent map[string]any
		if err := json.Unmarshal([]byte(line), &testEvent); err == nil {
			if output, ok := testEvent["Output"].(string); ok {
				line = output
			}
		}

		matches := benchmarkRegex.FindStringSubmatch(strings.TrimSpace(line))
		if matches == nil {
			continue
		}

		name := matches[1]
		iterations, _ := strconv.Atoi(matches[2])
		nsPerOp, _ := strconv.ParseFloat(matches[3], 64)

		var bytesPerOp, allocsPerOp int64
		if matches[4] != "" {
			bytesPerOp, _ = strconv.ParseInt(matches[4], 10, 64)
		}
		if matches[5] != "" {
			allocsPerOp, _ = strconv.ParseInt(matches[5], 10, 64)
		}

		operation, impl := splitName(name)
		results = append(results, BenchmarkResult{
			Name:        name,
			Operation:   operation,
			Impl:        impl,
			Iterations:  iterations,
			NsPerOp:     nsPerOp,
			BytesPerOp:  bytesPerOp,
			AllocsPerOp: allocsPerOp,
		})
	}

	return results
}

// splitName turns BenchmarkListAdd/native-8 into ("ListAdd", "native").
// Benchmarks without a sub-benchmark get the impl "native".
func splitName(name string) (string, string) {
	name = strings.TrimPrefix(name, "Benchmark")
	if i := strings.LastIndex(name, "-"); i > 0 {
		if _, err := strconv.Atoi(name[i+1:]); err == nil {
			name = name[:i]
		}
	}
	op, impl, ok := strings.Cut(name, "/")
	if !ok {
		return op, "native"
	}
	return op, impl
}

func isBaseline(impl string) bool {
	for _, b := range baselines {
		if impl == b {
			return true
		}
	}
	return false
}

func generateComparisons(results []BenchmarkResult) []ComparisonResult {
	grouped := make(map[string][]BenchmarkResult)
	for _, r := range results {
		grouped[r.Operation] = append(grouped[r.Operation], r)
	}

	var comparisons []ComparisonResult
	for op, rs := range grouped {
		var base *BenchmarkResult
		for i := range rs {
			if isBaseline(rs[i].Impl) {
				base = &rs[i]
				break
			}
		}

		for _, r := range rs {
			if isBaseline(r.Impl) {
				continue
			}
			c := ComparisonResult{
				Operation:    op,
				Impl:         r.Impl,
				NativeNs:     r.NsPerOp,
				NativeAllocs: r.AllocsPerOp,
				NativeOnly:   base == nil,
			}
			if base != nil {
				c.Baseline = base.Impl
				c.BaselineNs = base.NsPerOp
				c.BaseAllocs = base.AllocsPerOp
				if r.NsPerOp > 0 {
					c.Speedup = base.NsPerOp / r.NsPerOp
				}
			}
			comparisons = append(comparisons, c)
		}
	}

	sort.Slice(comparisons, func(i, j int) bool {
		if comparisons[i].Operation != comparisons[j].Operation {
			return comparisons[i].Operation < comparisons[j].Operation
		}
		return comparisons[i].Impl < comparisons[j].Impl
	})
	return comparisons
}

func generateMarkdownReport(comparisons []ComparisonResult, now time.Time) string {
	var sb strings.Builder

	sb.WriteString("# Benchmark Report\n\n")
	fmt.Fprintf(&sb, "Generated: %s\n\n", now.Format("2006-01-02 15:04:05"))

	faster, slower, nativeOnly := 0, 0, 0
	for _, c := range comparisons {
		switch {
		case c.NativeOnly:
			nativeOnly++
		case c.Speedup >= 1.0:
			faster++
		default:
			slower++
		}
	}

	sb.WriteString("## Summary\n\n")
	fmt.Fprintf(&sb, "- **Total benchmarks**: %d\n", len(comparisons))
	fmt.Fprintf(&sb, "- **Native faster than baseline**: %d\n", faster)
	fmt.Fprintf(&sb, "- **Baseline faster**: %d\n", slower)
	fmt.Fprintf(&sb, "- **Native only**: %d\n\n", nativeOnly)

	sb.WriteString("## Detailed Results\n\n")
	sb.WriteString("| Operation | Impl | ns/op | Baseline | Baseline ns/op | Speedup | Allocs |\n")
	sb.WriteString("|-----------|------|-------|----------|----------------|---------|--------|\n")

	for _, c := range comparisons {
		if c.NativeOnly {
			fmt.Fprintf(&sb, "| %s | %s | %s | *N/A* | *N/A* | *native only* | %s |\n",
				c.Operation, c.Impl, formatNumber(c.NativeNs), formatNumber(float64(c.NativeAllocs)))
			continue
		}
		indicator := "✓"
		if c.Speedup < 1.0 {
			indicator = "✗"
		}
		fmt.Fprintf(&sb, "| %s | %s | %s | %s | %s | %.2fx %s | %s vs %s |\n",
			c.Operation, c.Impl, formatNumber(c.NativeNs), c.Baseline, formatNumber(c.BaselineNs),
			c.Speedup, indicator,
			formatNumber(float64(c.NativeAllocs)), formatNumber(float64(c.BaseAllocs)))
	}

	sb.WriteString("\n## Notes\n\n")
	sb.WriteString("- **Speedup > 1.0**: the native container is faster ✓\n")
	sb.WriteString("- **Baselines**: emirpasic/gods containers and the slices package\n")
	sb.WriteString("- **Allocations**: Go heap allocations only; blocks from the platform and mmap backends are not counted\n")

	return sb.String()
}

func formatNumber(n float64) string {
	if n >= 1000000 {
		return fmt.Sprintf("%.2fM", n/1000000)
	} else if n >= 1000 {
		return fmt.Sprintf("%.1fK", n/1000)
	}
	return fmt.Sprintf("%.0f", n)
}
