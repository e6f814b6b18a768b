package perft

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/klauspost/compress/zstd"

	"github.com/hailam/chessfork/internal/board"
)

// ErrMismatch is returned when a node count differs from the expected one.
var ErrMismatch = errors.New("perft: node count mismatch")

// Expectation is a known node count at one depth.
type Expectation struct {
	Depth int
	Nodes uint64
}

// Case is one EPD line: a position and its known counts.
type Case struct {
	FEN      string
	Expected []Expectation
}

// Suite is an ordered list of cases.
type Suite []Case

// Result is one checked (position, depth) pair.
type Result struct {
	FEN     string
	Depth   int
	Got     uint64
	Want    uint64
	Elapsed time.Duration
}

// OK reports whether the count matched.
func (r Result) OK() bool {
	return r.Got == r.Want
}

// standardSuite holds the well-known perft positions.
const standardSuite = `
rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1 ;D1 20 ;D2 400 ;D3 8902 ;D4 197281 ;D5 4865609
r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1 ;D1 48 ;D2 2039 ;D3 97862 ;D4 4085603
8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - - 0 1 ;D1 14 ;D2 191 ;D3 2812 ;D4 43238 ;D5 674624
r3k2r/Pppp1ppp/1b3nbN/nP6/BBP1P3/q4N2/Pp1P2PP/R2Q1RK1 w kq - 0 1 ;D1 6 ;D2 264 ;D3 9467 ;D4 422333
rnbq1k1r/pp1Pbppp/2p5/8/2B5/8/PPP1NnPP/RNBQK2R w KQ - 1 8 ;D1 44 ;D2 1486 ;D3 62379 ;D4 2103487
r4rk1/1pp1qppp/p1np1n2/2b1p1B1/2B1P1b1/P1NP1N2/1PP1QPPP/R4RK1 w - - 0 10 ;D1 46 ;D2 2079 ;D3 89890 ;D4 3894594
`

// StandardSuite returns the built-in suite of well-known positions.
func StandardSuite() Suite {
	s, err := ParseEPD(strings.NewReader(standardSuite))
	if err != nil {
		panic(err)
	}
	return s
}

// ParseEPD reads lines of the form "<fen> ;D1 20 ;D2 400". Blank lines and
// lines starting with '#' are skipped.
func ParseEPD(r io.Reader) (Suite, error) {
	var suite Suite
	sc := bufio.NewScanner(r)
	lineNo := 0

	for sc.Scan() {
		lineNo++
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		fields := strings.Split(line, ";")
		c := Case{FEN: strings.TrimSpace(fields[0])}
		if _, err := board.ParseFEN(c.FEN); err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNo, err)
		}

		for _, f := range fields[1:] {
			parts := strings.Fields(f)
			if len(parts) != 2 || len(parts[0]) < 2 || parts[0][0] != 'D' {
				return nil, fmt.Errorf("line %d: bad depth field %q", lineNo, strings.TrimSpace(f))
			}
			depth, err := strconv.Atoi(parts[0][1:])
			if err != nil || depth < 1 {
				return nil, fmt.Errorf("line %d: bad depth %q", lineNo, parts[0])
			}
			nodes, err := strconv.ParseUint(parts[1], 10, 64)
			if err != nil {
				return nil, fmt.Errorf("line %d: bad node count %q", lineNo, parts[1])
			}
			c.Expected = append(c.Expected, Expectation{Depth: depth, Nodes: nodes})
		}
		suite = append(suite, c)
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return suite, nil
}

// LoadSuite reads an EPD file. Files ending in .zst are zstd-compressed.
func LoadSuite(path string) (Suite, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var r io.Reader = f
	if strings.HasSuffix(path, ".zst") {
		zr, err := zstd.NewReader(f, zstd.WithDecoderConcurrency(1))
		if err != nil {
			return nil, fmt.Errorf("open %s: %w", path, err)
		}
		defer zr.Close()
		r = zr
	}

	suite, err := ParseEPD(r)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return suite, nil
}

// RunSuite checks every expectation up to maxDepth (0 for all) and returns
// the results. If any count differs the error wraps ErrMismatch.
func RunSuite(suite Suite, maxDepth int) ([]Result, error) {
	var results []Result
	var errs []error

	for _, c := range suite {
		pos, err := board.ParseFEN(c.FEN)
		if err != nil {
			return results, err
		}
		for _, e := range c.Expected {
			if maxDepth > 0 && e.Depth > maxDepth {
				continue
			}
			start := time.Now()
			r := Result{
				FEN:   c.FEN,
				Depth: e.Depth,
				Got:   Count(pos, e.Depth),
				Want:  e.Nodes,
			}
			r.Elapsed = time.Since(start)
			results = append(results, r)

			if !r.OK() {
				errs = append(errs, fmt.Errorf("%w: %s perft(%d) = %d, want %d",
					ErrMismatch, c.FEN, r.Depth, r.Got, r.Want))
			}
		}
	}
	return results, errors.Join(errs...)
}
