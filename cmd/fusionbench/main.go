// Command fusionbench is the CLI entry point for the benchmark/profiler
// interface spec.md §6 describes.
package main

import "github.com/qecsim/fusionmatch/cmd/fusionbench/cmd"

func main() {
	cmd.Execute()
}
