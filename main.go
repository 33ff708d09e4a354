package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	flag "github.com/spf13/pflag"

	"tunelog/internal/config"
	"tunelog/internal/errmsg"
)

var (
	playID      = flag.Int64P("play", "p", 0, "play a song by id on the active player")
	addManual   = flag.Bool("add", false, "add a song manually (with --title and --artist)")
	addFile     = flag.String("add-file", "", "add a song from a music file's tags")
	addTitle    = flag.String("title", "", "song title for --add")
	addArtist   = flag.String("artist", "", "song artist for --add")
	addAlbum    = flag.String("album", "", "song album for --add")
	deleteID    = flag.Int64P("delete", "d", 0, "delete a song by id")
	clearID     = flag.Int64("clear-ratings", 0, "clear all ratings for a song id")
	listN       = flag.IntP("list", "l", 0, "list the N most recent songs (0 = all)")
	alpha       = flag.BoolP("alpha", "a", false, "sort listing by artist and title")
	dupesOnly   = flag.Bool("dupes", false, "list only duplicate (title, artist) pairs")
	showAvg     = flag.Bool("avg", false, "show average instead of latest rating")
	resetAll    = flag.Bool("reset", false, "wipe everything and recreate the schema")
	wipeRatings = flag.Bool("wipe-ratings", false, "delete all rating events")
	rating      = flag.IntP("rate", "r", 0, "rating 0-5 for the recorded track")
	verbose     = flag.BoolP("verbose", "v", false, "debug logging")
)

func main() {
	flag.Parse()

	zerolog.SetGlobalLevel(zerolog.WarnLevel)
	if *verbose {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	// .env may carry TUNELOG_DB; absence is fine
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		fatal(errmsg.OpConfigLoad, err)
	}

	// Actions are mutually exclusive, evaluated in fixed priority order.
	// Each returns having fully handled its branch.
	switch {
	case *playID > 0:
		err = actionPlay(cfg, *playID)
	case *addManual || *addFile != "":
		err = actionAdd(cfg)
	case *deleteID > 0:
		err = actionDelete(cfg, *deleteID)
	case *clearID > 0:
		err = actionClearRatings(cfg, *clearID)
	case flag.CommandLine.Changed("list") || *dupesOnly || *alpha:
		err = actionList(cfg, *listN, *alpha, *dupesOnly)
	case *resetAll:
		err = actionReset(cfg)
	case *wipeRatings:
		err = actionWipeRatings(cfg)
	default:
		var rate *int
		if flag.CommandLine.Changed("rate") {
			rate = rating
		}
		err = actionRecord(cfg, rate)
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func fatal(op errmsg.Op, err error) {
	fmt.Fprintln(os.Stderr, errmsg.Format(op, err))
	os.Exit(1)
}
