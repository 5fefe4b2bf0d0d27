package main

import (
	"codeberg.org/iklabib/metriccull/runner"
	"github.com/alecthomas/kong"
)

func main() {
	var cli runner.CLI
	kong.Parse(&cli,
		kong.Name("analyser"),
		kong.Description("Reads a run report on stdin and prints a score with optimisation insights."),
	)

	runner.Execute(cli, runner.Insights)
}
