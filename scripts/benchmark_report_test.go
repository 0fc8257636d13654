package main

import (
	"bufio"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

const sampleOutput = `goos: linux
goarch: amd64
pkg: github.com/joshuapare/castkit/internal/bitmap
BenchmarkDecode/rle-8         	    1500	    800000 ns/op	1536.00 MB/s	 1228800 B/op	       2 allocs/op
BenchmarkDecode/direct-8      	    3000	    400000 ns/op	3072.00 MB/s	 1228800 B/op	       2 allocs/op
PASS
{"Action":"output","Package":"github.com/joshuapare/castkit/pkg/assets","Output":"BenchmarkLoadBytes/workers=1-8    100   2000000 ns/op   500000 B/op   900 allocs/op\n"}
{"Action":"output","Package":"github.com/joshuapare/castkit/pkg/assets","Output":"BenchmarkLoadBytes/workers=4-8    400    500000 ns/op   510000 B/op   920 allocs/op\n"}
{"Action":"pass","Package":"github.com/joshuapare/castkit/pkg/assets"}
`

func TestParseBenchmarks(t *testing.T) {
	results := parseBenchmarks(bufio.NewScanner(strings.NewReader(sampleOutput)))
	require.Len(t, results, 4)

	rle := results[0]
	require.Equal(t, "github.com/joshuapare/castkit/internal/bitmap", rle.Package)
	require.Equal(t, "BenchmarkDecode/rle", rle.Name)
	require.Equal(t, "Decode", rle.Case)
	require.Equal(t, "rle", rle.Variant)
	require.Equal(t, 1500, rle.Iterations)
	require.InDelta(t, 1536.0, rle.MBPerSec, 0.001)
	require.Equal(t, int64(1228800), rle.BytesPerOp)
	require.Equal(t, int64(2), rle.AllocsPerOp)

	par := results[3]
	require.Equal(t, "github.com/joshuapare/castkit/pkg/assets", par.Package)
	require.Equal(t, "workers=4", par.Variant)
	require.Equal(t, int64(920), par.AllocsPerOp)
}

func TestGenerateMarkdownReport(t *testing.T) {
	results := parseBenchmarks(bufio.NewScanner(strings.NewReader(sampleOutput)))
	report := generateMarkdownReport(results, time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC))

	require.Contains(t, report, "Generated: 2026-01-02 03:04:05")
	require.Contains(t, report, "| internal/bitmap | BenchmarkDecode/direct | 400.00K | 3072.0 | 1.2 MiB | 2 | 2.00x |")
	require.Contains(t, report, "| pkg/assets | BenchmarkLoadBytes/workers=4 | 500.00K |  | 498.0 KiB | 920 | 4.00x |")
	require.Contains(t, report, "BenchmarkLoadBytes/workers=1 | 2.00M |  | 488.3 KiB | 900 | baseline |")
}

func TestTrimProcs(t *testing.T) {
	require.Equal(t, "BenchmarkX/a", trimProcs("BenchmarkX/a-16"))
	require.Equal(t, "BenchmarkX/workers=4", trimProcs("BenchmarkX/workers=4"))
	require.Equal(t, "BenchmarkX/a-b", trimProcs("BenchmarkX/a-b"))
}
