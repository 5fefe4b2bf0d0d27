package main

import (
	"codeberg.org/iklabib/metriccull/runner"
	"github.com/alecthomas/kong"
)

func main() {
	var cli runner.CLI
	kong.Parse(&cli,
		kong.Name("memcheck"),
		kong.Description("Reads a run report on stdin and prints a verdict on its peak memory."),
	)

	runner.Execute(cli, runner.Memory)
}
