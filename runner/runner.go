package runner

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"codeberg.org/iklabib/metriccull/analyzer"
	"codeberg.org/iklabib/metriccull/configs"
	"codeberg.org/iklabib/metriccull/report"
	"codeberg.org/iklabib/metriccull/restrict"
	"codeberg.org/iklabib/metriccull/util"
	"github.com/rs/zerolog/log"
)

type Variant int

const (
	// Insights prints a score with insights and treats empty input as a
	// no-op.
	Insights Variant = iota
	// Memory prints a single memory suggestion and rejects empty input.
	Memory
)

func (v Variant) String() string {
	switch v {
	case Insights:
		return "insights"
	case Memory:
		return "memory"
	default:
		return fmt.Sprintf("variant(%d)", int(v))
	}
}

type CLI struct {
	LogLevel      string `help:"Log level written to stderr." enum:"debug,info,warn,error,disabled" default:"disabled"`
	NoSandbox     bool   `help:"Do not restrict the process before reading input."`
	SandboxConfig string `help:"Sandbox profile replacing the built-in one." type:"path"`
}

// Execute is the whole program behind each binary. It exits the process on
// failure.
func Execute(cli CLI, variant Variant) {
	util.InitLogging(cli.LogLevel, os.Stderr)

	if cli.NoSandbox {
		log.Debug().Msg("sandbox disabled")
	} else {
		sandbox, err := configs.LoadConfig(cli.SandboxConfig)
		util.Bail(err)
		util.Bail(restrict.Apply(sandbox))
	}

	util.Bail(Run(os.Stdin, os.Stdout, variant))
}

// Run reads one report from in and writes its assessment to out as a
// single JSON line.
func Run(in io.Reader, out io.Writer, variant Variant) error {
	buf, err := io.ReadAll(in)
	if err != nil {
		return fmt.Errorf("failed to read input: %w", err)
	}

	log.Debug().Int("bytes", len(buf)).Stringer("variant", variant).Msg("input read")

	if len(buf) == 0 && variant == Insights {
		log.Debug().Msg("empty input, nothing to analyse")
		return nil
	}

	rep, err := report.Decode(buf)
	if err != nil {
		return err
	}

	log.Debug().
		Float64("total_time_ms", rep.TotalTimeMs).
		Float64("peak_memory_kb", rep.PeakMemoryKb).
		Msg("report decoded")

	var result any
	switch variant {
	case Insights:
		result = analyzer.Analyze(rep)
	case Memory:
		result = analyzer.AnalyzePerformance(rep)
	default:
		return fmt.Errorf("unknown %s", variant)
	}

	// keep '>' in insights literal instead of \u003e
	enc := json.NewEncoder(out)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(result); err != nil {
		return fmt.Errorf("failed to write result: %w", err)
	}

	return nil
}
