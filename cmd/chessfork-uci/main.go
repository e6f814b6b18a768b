package main

import (
	"flag"
	"os"
	"runtime/pprof"

	"github.com/hailam/chessfork/internal/engine"
	"github.com/hailam/chessfork/internal/logx"
	"github.com/hailam/chessfork/internal/storage"
	"github.com/hailam/chessfork/internal/uci"
)

var version = "dev"

var (
	cpuprofile = flag.String("cpuprofile", "", "write cpu profile to file")
	dataDir    = flag.String("data", "", "data directory (default: platform data dir)")
	logLevel   = flag.String("log-level", "info", "log level: debug, info, warn, error")
	noStore    = flag.Bool("no-store", false, "do not open the preferences and analysis database")
)

func main() {
	flag.Parse()

	// Protocol output owns stdout.
	log := logx.New(os.Stderr, *logLevel)

	// Start CPU profiling if requested (via flag or environment variable)
	profilePath := *cpuprofile
	if profilePath == "" {
		profilePath = os.Getenv("CPUPROFILE")
	}
	if profilePath != "" {
		f, err := os.Create(profilePath)
		if err != nil {
			log.Fatal().Err(err).Msg("could not create CPU profile")
		}
		defer f.Close()
		if err := pprof.StartCPUProfile(f); err != nil {
			log.Fatal().Err(err).Msg("could not start CPU profile")
		}
		defer pprof.StopCPUProfile()
		log.Info().Str("path", profilePath).Msg("CPU profiling enabled")
	}

	var store *storage.Storage
	if !*noStore {
		var err error
		store, err = storage.Open(*dataDir)
		if err != nil {
			log.Warn().Err(err).Msg("storage unavailable, preferences will not persist")
		} else {
			defer func() {
				if err := store.Close(); err != nil {
					log.Error().Err(err).Msg("closing storage")
				}
			}()
		}
	}

	log.Info().Str("version", version).Str("data", *dataDir).Bool("store", store != nil).Msg("engine starting")

	protocol := uci.New(engine.NewEngine(nil), os.Stdout, log, store)
	if err := protocol.Run(os.Stdin); err != nil {
		log.Error().Err(err).Msg("reading input")
	}
}
