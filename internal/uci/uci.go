// Package uci implements the Universal Chess Interface protocol.
package uci

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/hailam/chessfork/internal/board"
	"github.com/hailam/chessfork/internal/engine"
	"github.com/hailam/chessfork/internal/eval"
	"github.com/hailam/chessfork/internal/perft"
	"github.com/hailam/chessfork/internal/render"
	"github.com/hailam/chessfork/internal/storage"
)

const (
	engineName   = "ChessFork"
	engineAuthor = "ChessFork Team"
	maxMoveTime  = 600000
)

// UCI implements the Universal Chess Interface protocol.
type UCI struct {
	engine   *engine.Engine
	position *board.Position
	lastMove board.Move

	out   io.Writer
	outMu sync.Mutex
	log   zerolog.Logger

	// store is nil when persistence is disabled.
	store *storage.Storage
	prefs *storage.Preferences

	search *searchState
}

// searchState tracks the search running in the background.
type searchState struct {
	timer   *engine.Timer
	done    chan struct{}
	release chan struct{} // closed by stop; holds bestmove of an infinite search
}

// New creates a protocol handler writing responses to out. A nil store keeps
// preferences in memory only.
func New(eng *engine.Engine, out io.Writer, log zerolog.Logger, store *storage.Storage) *UCI {
	u := &UCI{
		engine:   eng,
		position: board.NewPosition(),
		out:      out,
		log:      log,
		store:    store,
		prefs:    storage.DefaultPreferences(),
	}

	if store != nil {
		prefs, err := store.LoadPreferences()
		if err != nil {
			log.Warn().Err(err).Msg("loading preferences, using defaults")
		} else {
			u.prefs = prefs
		}
	}
	if f, err := eval.ByName(u.prefs.Evaluation); err == nil {
		eng.SetEval(f)
	} else {
		log.Warn().Err(err).Msg("stored evaluation ignored")
		u.prefs.Evaluation = eval.NamePSQT
	}
	return u
}

// Run reads commands from in until "quit" or end of input. A running search
// is stopped and its bestmove printed before Run returns.
func (u *UCI) Run(in io.Reader) error {
	scanner := bufio.NewScanner(in)
	defer u.stopSearch()

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		parts := strings.Fields(line)
		cmd := parts[0]
		args := parts[1:]

		switch cmd {
		case "uci":
			u.handleUCI()
		case "isready":
			u.send("readyok")
		case "ucinewgame":
			u.stopSearch()
			u.position = board.NewPosition()
			u.lastMove = board.NoMove
		case "position":
			u.stopSearch()
			u.handlePosition(args)
		case "go":
			u.handleGo(args)
		case "stop":
			u.stopSearch()
		case "quit":
			return nil
		case "setoption":
			u.handleSetOption(args)
		// Debug commands
		case "d":
			u.send("%s", u.position.String())
		case "eval":
			score := u.engine.Evaluate(u.position)
			u.send("eval cp %d (%s, side to move)", score, engine.ScoreToString(score))
		case "perft":
			u.handlePerft(args)
		case "diagram":
			u.handleDiagram(args)
		case "analyses":
			u.handleAnalyses(args)
		default:
			u.log.Warn().Str("command", cmd).Msg("unknown command")
		}
	}
	return scanner.Err()
}

// send writes one line of protocol output.
func (u *UCI) send(format string, args ...any) {
	u.outMu.Lock()
	defer u.outMu.Unlock()
	fmt.Fprintf(u.out, format+"\n", args...)
}

// handleUCI responds to the "uci" command.
func (u *UCI) handleUCI() {
	u.send("id name %s", engineName)
	u.send("id author %s", engineAuthor)
	u.send("")
	u.send("option name Evaluation type combo default %s var %s var %s", u.prefs.Evaluation, eval.NamePSQT, eval.NameMaterial)
	u.send("option name SaveAnalysis type check default %t", u.prefs.SaveAnalysis)
	u.send("option name DefaultDepth type spin default %d min 1 max %d", u.prefs.DefaultDepth, engine.MaxPly)
	u.send("option name DefaultMoveTime type spin default %d min 0 max %d", u.prefs.DefaultMoveTime.Milliseconds(), maxMoveTime)
	u.send("uciok")
}

// handlePosition parses and sets up a position.
// Formats:
//   - position startpos
//   - position startpos moves e2e4 e7e5
//   - position fen <fen>
//   - position fen <fen> moves e2e4
//
// The current position is left unchanged if anything fails to parse.
func (u *UCI) handlePosition(args []string) {
	if len(args) == 0 {
		return
	}

	movesAt := len(args)
	for i, arg := range args {
		if arg == "moves" {
			movesAt = i
			break
		}
	}

	var pos *board.Position
	switch args[0] {
	case "startpos":
		pos = board.NewPosition()
	case "fen":
		fen := strings.Join(args[1:movesAt], " ")
		var err error
		if pos, err = board.ParseFEN(fen); err != nil {
			u.log.Warn().Err(err).Str("fen", fen).Msg("rejected position")
			return
		}
	default:
		u.log.Warn().Str("arg", args[0]).Msg("position needs startpos or fen")
		return
	}

	last := board.NoMove
	if movesAt < len(args) {
		for _, s := range args[movesAt+1:] {
			m, err := u.parseMove(pos, s)
			if err != nil {
				u.log.Warn().Err(err).Str("fen", pos.ToFEN()).Msg("rejected move")
				return
			}
			pos.MakeMoveChecked(m)
			last = m
		}
	}

	u.position = pos
	u.lastMove = last
}

// parseMove converts a coordinate move string to a legal move of pos.
func (u *UCI) parseMove(pos *board.Position, s string) (board.Move, error) {
	m, err := board.ParseMove(s, pos)
	if err != nil {
		return board.NoMove, err
	}
	if !pos.GenerateLegalMoves().Contains(m) {
		return board.NoMove, fmt.Errorf("%w: %s is not legal", board.ErrInvalidMove, s)
	}
	return m, nil
}

// GoOptions holds parsed "go" command options.
type GoOptions struct {
	Depth     int
	Nodes     uint64
	MoveTime  time.Duration
	Infinite  bool
	WTime     time.Duration
	BTime     time.Duration
	WInc      time.Duration
	BInc      time.Duration
	MovesToGo int
}

// hasLimit reports whether any search bound was given.
func (o GoOptions) hasLimit() bool {
	return o.Depth > 0 || o.Nodes > 0 || o.MoveTime > 0 || o.Infinite || o.WTime > 0 || o.BTime > 0
}

// ParseGoOptions parses "go" command arguments. Malformed numbers are read
// as zero.
func ParseGoOptions(args []string) GoOptions {
	opts := GoOptions{}

	ms := func(s string) time.Duration {
		n, _ := strconv.Atoi(s)
		return time.Duration(n) * time.Millisecond
	}

	for i := 0; i < len(args); i++ {
		var next string
		if i+1 < len(args) {
			next = args[i+1]
		}

		switch args[i] {
		case "depth":
			opts.Depth, _ = strconv.Atoi(next)
			i++
		case "nodes":
			opts.Nodes, _ = strconv.ParseUint(next, 10, 64)
			i++
		case "movetime":
			opts.MoveTime = ms(next)
			i++
		case "infinite":
			opts.Infinite = true
		case "wtime":
			opts.WTime = ms(next)
			i++
		case "btime":
			opts.BTime = ms(next)
			i++
		case "winc":
			opts.WInc = ms(next)
			i++
		case "binc":
			opts.BInc = ms(next)
			i++
		case "movestogo":
			opts.MovesToGo, _ = strconv.Atoi(next)
			i++
		}
	}

	return opts
}

// limits converts GoOptions to engine limits. A bare "go" uses the stored
// default depth and move time.
func (u *UCI) limits(opts GoOptions) engine.Limits {
	l := engine.Limits{
		MovesToGo: opts.MovesToGo,
		MoveTime:  opts.MoveTime,
		Depth:     opts.Depth,
		Nodes:     opts.Nodes,
		Infinite:  opts.Infinite,
	}
	l.Time[board.White], l.Time[board.Black] = opts.WTime, opts.BTime
	l.Inc[board.White], l.Inc[board.Black] = opts.WInc, opts.BInc

	if !opts.hasLimit() {
		l.Depth = u.prefs.DefaultDepth
		l.MoveTime = u.prefs.DefaultMoveTime
	}
	return l
}

// handleGo starts a search in the background.
func (u *UCI) handleGo(args []string) {
	u.stopSearch()

	limits := u.limits(ParseGoOptions(args))
	pos := u.position.Copy()
	timer := engine.NewTimer(limits, pos.SideToMove)
	save := u.prefs.SaveAnalysis && u.store != nil

	u.log.Debug().
		Bool("timed", timer.Timed()).
		Dur("budget", timer.Budget()).
		Int("max_depth", timer.MaxDepth()).
		Msg("search started")

	u.engine.OnInfo = func(info engine.SearchInfo) {
		u.sendInfo(pos, info)
	}

	s := &searchState{
		timer:   timer,
		done:    make(chan struct{}),
		release: make(chan struct{}),
	}
	u.search = s

	go func() {
		defer close(s.done)

		res := u.engine.Search(pos, timer)
		if limits.Infinite {
			<-s.release
		}
		u.finishSearch(pos, res, save)
	}()
}

// finishSearch prints bestmove and records the analysis.
func (u *UCI) finishSearch(pos *board.Position, res engine.Result, save bool) {
	legal := pos.GenerateLegalMoves()
	best := res.BestMove

	if !legal.Contains(best) {
		if !best.Equal(board.NoMove) {
			u.log.Error().Str("move", best.String()).Str("fen", pos.ToFEN()).Msg("search returned an illegal move")
		}
		best = board.NoMove
		if legal.Len() > 0 {
			best = legal.Get(0)
		}
	}

	u.log.Debug().
		Int("depth", res.Depth).
		Uint64("nodes", res.Nodes).
		Dur("elapsed", res.Elapsed).
		Str("best", best.String()).
		Msg("search finished")

	if best.Equal(board.NoMove) {
		u.send("bestmove 0000")
		return
	}
	u.send("bestmove %s", best)

	if save {
		u.saveAnalysis(pos, res, best)
	}
}

func (u *UCI) saveAnalysis(pos *board.Position, res engine.Result, best board.Move) {
	pv := make([]string, len(res.PV))
	for i, m := range res.PV {
		pv[i] = m.String()
	}
	rec := storage.AnalysisRecord{
		Hash:     pos.Hash,
		FEN:      pos.ToFEN(),
		Depth:    res.Depth,
		Score:    res.Score,
		BestMove: best.String(),
		PV:       pv,
		SAN:      board.MovesToSAN(pos, res.PV),
		Nodes:    res.Nodes,
		Elapsed:  res.Elapsed,
	}
	if err := u.store.SaveAnalysis(rec); err != nil {
		u.log.Warn().Err(err).Msg("saving analysis")
	}
}

// sendInfo outputs search info in UCI format.
func (u *UCI) sendInfo(root *board.Position, info engine.SearchInfo) {
	var parts []string

	parts = append(parts, fmt.Sprintf("depth %d", info.Depth))
	parts = append(parts, "score "+engine.ScoreToUCI(info.Score))
	parts = append(parts, fmt.Sprintf("nodes %d", info.Nodes))
	parts = append(parts, fmt.Sprintf("nps %d", info.NPS))
	parts = append(parts, fmt.Sprintf("time %d", info.Time.Milliseconds()))

	// Stop the PV at the first move that is not legal where it is played.
	if len(info.PV) > 0 {
		valid := make([]string, 0, len(info.PV))
		p := root.Copy()
		for _, m := range info.PV {
			if !p.GenerateLegalMoves().Contains(m) {
				break
			}
			valid = append(valid, m.String())
			p.MakeMoveChecked(m)
		}
		if len(valid) > 0 {
			parts = append(parts, "pv "+strings.Join(valid, " "))
		}
	}

	u.send("info %s", strings.Join(parts, " "))
}

// stopSearch stops the running search, if any, and waits for its bestmove.
func (u *UCI) stopSearch() {
	s := u.search
	if s == nil {
		return
	}
	s.timer.ForceStop()
	close(s.release)
	<-s.done
	u.search = nil
}

// handleSetOption processes "setoption" commands.
func (u *UCI) handleSetOption(args []string) {
	// Format: setoption name <name> value <value>
	var name, value []string
	var target *[]string

	for _, arg := range args {
		switch arg {
		case "name":
			target = &name
		case "value":
			target = &value
		default:
			if target != nil {
				*target = append(*target, arg)
			}
		}
	}
	opt := strings.Join(name, " ")
	val := strings.Join(value, " ")

	switch strings.ToLower(opt) {
	case "evaluation":
		f, err := eval.ByName(strings.ToLower(val))
		if err != nil {
			u.log.Warn().Err(err).Msg("rejected option")
			return
		}
		u.engine.SetEval(f)
		u.prefs.Evaluation = strings.ToLower(val)
	case "saveanalysis":
		u.prefs.SaveAnalysis = strings.EqualFold(val, "true")
	case "defaultdepth":
		depth, err := strconv.Atoi(val)
		if err != nil || depth < 1 || depth > engine.MaxPly {
			u.log.Warn().Str("value", val).Msg("rejected DefaultDepth")
			return
		}
		u.prefs.DefaultDepth = depth
	case "defaultmovetime":
		ms, err := strconv.Atoi(val)
		if err != nil || ms < 0 || ms > maxMoveTime {
			u.log.Warn().Str("value", val).Msg("rejected DefaultMoveTime")
			return
		}
		u.prefs.DefaultMoveTime = time.Duration(ms) * time.Millisecond
	default:
		u.log.Warn().Str("name", opt).Msg("unknown option")
		return
	}

	if u.store != nil {
		if err := u.store.SavePreferences(u.prefs); err != nil {
			u.log.Warn().Err(err).Msg("saving preferences")
		}
	}
}

// Preferences returns the current preferences.
func (u *UCI) Preferences() storage.Preferences {
	return *u.prefs
}

// handlePerft prints a divide of the current position.
func (u *UCI) handlePerft(args []string) {
	depth := 5
	if len(args) > 0 {
		if d, err := strconv.Atoi(args[0]); err == nil && d > 0 {
			depth = d
		}
	}

	start := time.Now()
	entries := perft.Divide(u.position, depth)
	elapsed := time.Since(start)

	for _, e := range entries {
		u.send("%s: %d", e.Move, e.Nodes)
	}
	nodes := perft.Total(entries)
	u.send("")
	u.send("Nodes: %d", nodes)
	u.send("Time: %v", elapsed)
	if elapsed > 0 {
		u.send("NPS: %.0f", float64(nodes)/elapsed.Seconds())
	}
}

// handleDiagram writes the current position as a PNG, highlighting the last
// move played.
func (u *UCI) handleDiagram(args []string) {
	if len(args) == 0 {
		u.log.Warn().Msg("diagram needs a file name")
		return
	}
	path := strings.Join(args, " ")

	img, err := render.Diagram(u.position, render.Options{Highlight: u.lastMove})
	if err == nil {
		err = render.SavePNG(path, img)
	}
	if err != nil {
		u.log.Warn().Err(err).Str("path", path).Msg("diagram failed")
		return
	}
	u.send("info string diagram written to %s", path)
}

// handleAnalyses lists the most recent stored analyses.
func (u *UCI) handleAnalyses(args []string) {
	if u.store == nil {
		u.send("info string storage disabled")
		return
	}
	limit := 10
	if len(args) > 0 {
		if n, err := strconv.Atoi(args[0]); err == nil {
			limit = n
		}
	}

	recs, err := u.store.ListAnalyses(limit)
	if err != nil {
		u.log.Warn().Err(err).Msg("listing analyses")
		return
	}
	for _, r := range recs {
		u.send("info string %016x depth %d score %s bestmove %s pv %s fen %s",
			r.Hash, r.Depth, engine.ScoreToUCI(r.Score), r.BestMove, strings.Join(r.SAN, " "), r.FEN)
	}
}
