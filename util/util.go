package util

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const INTERNAL_ERROR = 1

// Bail never writes to stdout, a failed run prints no result.
func Bail(err error) {
	if err != nil {
		log.Error().Err(err).Msg("analysis failed")
		exit(err.Error())
	}
}

func exit(msg string) {
	// logging is off by default but the diagnostic still has to reach stderr
	if zerolog.GlobalLevel() > zerolog.ErrorLevel {
		fmt.Fprintf(os.Stderr, "error: %s\n", msg)
	}
	os.Exit(INTERNAL_ERROR)
}

// Tolerate logs err and swallows it unless mandatory is set.
func Tolerate(mandatory bool, step string, err error) error {
	if err == nil || mandatory {
		return err
	}

	log.Warn().Err(err).Str("step", step).Msg("sandbox step skipped")
	return nil
}
