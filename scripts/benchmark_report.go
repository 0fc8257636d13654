// Command benchmark_report turns `go test -bench` output into a markdown
// report. Sub-benchmarks of the same case are compared against the first
// variant listed, e.g. BenchmarkLoadBytes/workers=4 against workers=1.
//
//	go test -run=^$ -bench=. -benchmem ./... | go run ./scripts -output bench.md
package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"os"
	"regexp"
	"strconv"
	"strings"
	"time"

	json "github.com/goccy/go-json"
)

// BenchmarkResult is one parsed benchmark line.
type BenchmarkResult struct {
	Package     string
	Name        string
	Case        string
	Variant     string
	Iterations  int
	NsPerOp     float64
	MBPerSec    float64
	BytesPerOp  int64
	AllocsPerOp int64
}

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
	report := generateMarkdownReport(results, time.Now())

	if *outputFile == "" {
		fmt.Fprint(os.Stdout, report)
		return
	}
	if err := os.WriteFile(*outputFile, []byte(report), 0o644); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing output file: %v\n", err)
		os.Exit(1)
	}
	if !*quiet {
		fmt.Fprintf(os.Stderr, "Report written to %s\n", *outputFile)
	}
}

// BenchmarkDecode/rle-8   1234   956789 ns/op   1284.33 MB/s   1228800 B/op   1 allocs/op
var benchmarkRegex = regexp.MustCompile(
	`^(Benchmark\S+)\s+(\d+)\s+([\d.]+)\s+ns/op(?:\s+([\d.]+)\s+MB/s)?(?:\s+(\d+)\s+B/op)?(?:\s+(\d+)\s+allocs/op)?`,
)

// testEvent is the subset of `go test -json` events the report needs.
type testEvent struct {
	Action  string `json:"Action"`
	Package string `json:"Package"`
	Output  string `json:"Output"`
}

func parseBenchmarks(scanner *bufio.Scanner) []BenchmarkResult {
	var results []BenchmarkResult
	pkg := ""
	for scanner.Scan() {
		line := scanner.Text()

		var ev testEvent
		if strings.HasPrefix(line, "{") && json.Unmarshal([]byte(line), &ev) == nil {
			if ev.Action != "output" {
				continue
			}
			line, pkg = ev.Output, ev.Package
		}
		line = strings.TrimSpace(line)
		if p, ok := strings.CutPrefix(line, "pkg: "); ok {
			pkg = p
			continue
		}

		m := benchmarkRegex.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		r := BenchmarkResult{Package: pkg, Name: trimProcs(m[1])}
		r.Iterations, _ = strconv.Atoi(m[2])
		r.NsPerOp, _ = strconv.ParseFloat(m[3], 64)
		if m[4] != "" {
			r.MBPerSec, _ = strconv.ParseFloat(m[4], 64)
		}
		if m[5] != "" {
			r.BytesPerOp, _ = strconv.ParseInt(m[5], 10, 64)
		}
		if m[6] != "" {
			r.AllocsPerOp, _ = strconv.ParseInt(m[6], 10, 64)
		}
		r.Case, r.Variant = splitName(r.Name)
		results = append(results, r)
	}
	return results
}

// trimProcs drops the -GOMAXPROCS suffix go test appends.
func trimProcs(name string) string {
	i := strings.LastIndex(name, "-")
	if i < 0 {
		return name
	}
	if _, err := strconv.Atoi(name[i+1:]); err != nil {
		return name
	}
	return name[:i]
}

// splitName separates the last sub-benchmark element from the case.
func splitName(name string) (string, string) {
	name = strings.TrimPrefix(name, "Benchmark")
	i := strings.LastIndex(name, "/")
	if i < 0 {
		return name, ""
	}
	return name[:i], name[i+1:]
}

func generateMarkdownReport(results []BenchmarkResult, now time.Time) string {
	var sb strings.Builder
	sb.WriteString("# Benchmark Report\n\n")
	fmt.Fprintf(&sb, "Generated: %s\n\n", now.Format("2006-01-02 15:04:05"))
	fmt.Fprintf(&sb, "- **Total benchmarks**: %d\n\n", len(results))

	sb.WriteString("## Results\n\n")
	sb.WriteString("| Package | Benchmark | ns/op | MB/s | Memory (B/op) | Allocs | vs baseline |\n")
	sb.WriteString("|---------|-----------|-------|------|---------------|--------|-------------|\n")

	baseline := make(map[string]BenchmarkResult)
	for _, r := range results {
		key := r.Package + " " + r.Case
		base, seen := baseline[key]
		if !seen {
			baseline[key] = r
		}
		speedup := "baseline"
		if seen && r.Variant != "" && r.NsPerOp > 0 {
			speedup = fmt.Sprintf("%.2fx", base.NsPerOp/r.NsPerOp)
		}
		if r.Variant == "" {
			speedup = ""
		}
		mbs := ""
		if r.MBPerSec > 0 {
			mbs = fmt.Sprintf("%.1f", r.MBPerSec)
		}
		fmt.Fprintf(&sb, "| %s | %s | %s | %s | %s | %s | %s |\n",
			shortPackage(r.Package),
			r.Name,
			formatNumber(r.NsPerOp),
			mbs,
			formatBytes(r.BytesPerOp),
			formatNumber(float64(r.AllocsPerOp)),
			speedup,
		)
	}
	return sb.String()
}

func shortPackage(pkg string) string {
	if i := strings.Index(pkg, "/castkit/"); i >= 0 {
		return pkg[i+len("/castkit/"):]
	}
	return pkg
}

func formatNumber(n float64) string {
	switch {
	case n >= 1e9:
		return fmt.Sprintf("%.2fG", n/1e9)
	case n >= 1e6:
		return fmt.Sprintf("%.2fM", n/1e6)
	case n >= 1e3:
		return fmt.Sprintf("%.2fK", n/1e3)
	}
	return fmt.Sprintf("%.0f", n)
}

func formatBytes(b int64) string {
	switch {
	case b >= 1<<20:
		return fmt.Sprintf("%.1f MiB", float64(b)/(1<<20))
	case b >= 1<<10:
		return fmt.Sprintf("%.1f KiB", float64(b)/(1<<10))
	}
	return fmt.Sprintf("%d B", b)
}
