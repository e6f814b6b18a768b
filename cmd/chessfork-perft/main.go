package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/hailam/chessfork/internal/board"
	"github.com/hailam/chessfork/internal/logx"
	"github.com/hailam/chessfork/internal/perft"
)

var (
	fen      = flag.String("fen", board.StartFEN, "position to count")
	depth    = flag.Int("depth", 4, "perft depth")
	divide   = flag.Bool("divide", false, "print counts per root move")
	suite    = flag.String("suite", "", "EPD suite to check (.epd or .epd.zst); \"standard\" for the built-in one")
	maxDepth = flag.Int("max-depth", 0, "skip suite entries deeper than this (0: all)")
	oracle   = flag.Bool("oracle", false, "cross-check the count against dragontoothmg")
	logLevel = flag.String("log-level", "info", "log level: debug, info, warn, error")
)

func main() {
	flag.Parse()
	log := logx.New(os.Stderr, *logLevel)

	if *suite != "" {
		s := perft.StandardSuite()
		if *suite != "standard" {
			var err error
			if s, err = perft.LoadSuite(*suite); err != nil {
				log.Fatal().Err(err).Msg("loading suite")
			}
		}

		results, err := perft.RunSuite(s, *maxDepth)
		for _, r := range results {
			status := "ok"
			if !r.OK() {
				status = "FAIL"
			}
			fmt.Printf("%-4s perft(%d) = %-10d %8v  %s\n", status, r.Depth, r.Got, r.Elapsed.Round(time.Millisecond), r.FEN)
		}
		if errors.Is(err, perft.ErrMismatch) {
			log.Error().Err(err).Msg("suite mismatch")
			os.Exit(1)
		}
		if err != nil {
			log.Fatal().Err(err).Msg("running suite")
		}
		return
	}

	pos, err := board.ParseFEN(*fen)
	if err != nil {
		log.Fatal().Err(err).Msg("bad position")
	}

	start := time.Now()
	var nodes uint64
	if *divide {
		entries := perft.Divide(pos, *depth)
		for _, e := range entries {
			fmt.Printf("%s: %d\n", e.Move, e.Nodes)
		}
		fmt.Println()
		nodes = perft.Total(entries)
	} else {
		nodes = perft.Count(pos, *depth)
	}
	elapsed := time.Since(start)

	fmt.Printf("Nodes: %d\n", nodes)
	fmt.Printf("Time: %v\n", elapsed)
	if elapsed > 0 {
		fmt.Printf("NPS: %.0f\n", float64(nodes)/elapsed.Seconds())
	}

	if *oracle {
		if err := perft.CrossCheck(*fen, *depth); err != nil {
			log.Error().Err(err).Msg("oracle disagrees")
			os.Exit(1)
		}
		log.Info().Msg("oracle agrees")
	}
}
