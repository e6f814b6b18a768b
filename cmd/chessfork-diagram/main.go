package main

import (
	"flag"
	"os"

	"github.com/hailam/chessfork/internal/board"
	"github.com/hailam/chessfork/internal/engine"
	"github.com/hailam/chessfork/internal/logx"
	"github.com/hailam/chessfork/internal/render"
)

var (
	fen      = flag.String("fen", board.StartFEN, "position to draw")
	out      = flag.String("o", "board.png", "output PNG file")
	size     = flag.Int("size", 64, "square size in pixels")
	flip     = flag.Bool("flip", false, "draw from black's side")
	move     = flag.String("move", "", "highlight this move (coordinate notation)")
	best     = flag.Int("best", 0, "search to this depth and highlight the best move")
	logLevel = flag.String("log-level", "info", "log level: debug, info, warn, error")
)

func main() {
	flag.Parse()
	log := logx.New(os.Stderr, *logLevel)

	pos, err := board.ParseFEN(*fen)
	if err != nil {
		log.Fatal().Err(err).Msg("bad position")
	}

	opts := render.Options{SquareSize: *size, Flip: *flip}
	switch {
	case *move != "":
		m, err := board.ParseMove(*move, pos)
		if err != nil {
			log.Fatal().Err(err).Msg("bad move")
		}
		opts.Highlight = m
	case *best > 0:
		res := engine.NewEngine(nil).SearchWithLimits(pos, engine.Limits{Depth: *best})
		if res.BestMove.Equal(board.NoMove) {
			log.Warn().Msg("no legal moves to highlight")
			break
		}
		opts.Highlight = res.BestMove
		log.Info().
			Str("best", res.BestMove.ToSAN(pos)).
			Str("score", engine.ScoreToString(res.Score)).
			Strs("pv", board.MovesToSAN(pos, res.PV)).
			Msg("search finished")
	}

	img, err := render.Diagram(pos, opts)
	if err != nil {
		log.Fatal().Err(err).Msg("drawing diagram")
	}
	if err := render.SavePNG(*out, img); err != nil {
		log.Fatal().Err(err).Msg("writing diagram")
	}
	log.Info().Str("path", *out).Msg("diagram written")
}
