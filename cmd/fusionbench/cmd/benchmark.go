package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/qecsim/fusionmatch/bench"
	"github.com/qecsim/fusionmatch/config"
	"github.com/qecsim/fusionmatch/partition"
	"github.com/qecsim/fusionmatch/profiler"
)

var (
	inputFile          string
	codeDistance       int
	rounds             int
	physicalErrorRate  float64
	codeType           string
	codeConfigStr      string
	primalDualType     string
	partitionStrategy  string
	partitionConfigStr string
	partitionConfigFile string
	verifierEnabled    bool
	profilerOutput     string
	maxTreeSize        int
	maxWorkers         int
)

// benchmarkCmd represents the benchmark command.
var benchmarkCmd = &cobra.Command{
	Use:   "benchmark",
	Short: "Decode a batch of syndromes and report a benchmark profile",
	Long: `benchmark reads a JSON payload describing a decoding graph and a
list of syndrome rounds (see --input), runs them through the selected
solver backend, and writes the spec's profile format to
--benchmark-profiler-output (default: stdout).

Graph and syndrome generation are out of scope for this tool; --input
is the seam through which an external generator's output is fed in.`,
	RunE: runBenchmark,
}

func init() {
	rootCmd.AddCommand(benchmarkCmd)

	benchmarkCmd.Flags().StringVarP(&inputFile, "input", "i", "", "JSON payload with {initializer, syndromes} (default: stdin)")

	benchmarkCmd.Flags().IntVar(&codeDistance, "code-distance", 0, "Code distance, recorded in the profile header")
	benchmarkCmd.Flags().IntVarP(&rounds, "rounds", "n", 0, "Number of syndrome rounds, recorded in the profile header")
	benchmarkCmd.Flags().Float64Var(&physicalErrorRate, "p", 0, "Physical error rate, recorded in the profile header")
	benchmarkCmd.Flags().StringVar(&codeType, "code-type", "", "Code family identifier, recorded in the profile header")
	benchmarkCmd.Flags().StringVar(&codeConfigStr, "code-config", "", "code-config DSL, e.g. d=5,rounds=7,p=0.001")

	benchmarkCmd.Flags().StringVar(&primalDualType, "primal-dual-type", "serial", `Solver backend: "serial" or "parallel"`)
	benchmarkCmd.Flags().StringVar(&partitionStrategy, "partition-strategy", "", "Partition strategy identifier, recorded in the profile header")
	benchmarkCmd.Flags().StringVar(&partitionConfigStr, "partition-config", "", "Inline JSON partition.PlanSpec (required when --primal-dual-type=parallel)")
	benchmarkCmd.Flags().StringVar(&partitionConfigFile, "partition-config-file", "", "Path to a JSON partition.PlanSpec file, alternative to --partition-config")
	benchmarkCmd.Flags().IntVar(&maxTreeSize, "max-tree-size", 0, "Cap on alternating-tree size before union-find degradation (0 = unlimited)")
	benchmarkCmd.Flags().IntVar(&maxWorkers, "max-workers", 0, "Worker count used for the profile's event_time_vec thread_index with --primal-dual-type=parallel (0 = 1); it does not set the scheduler's pool size")

	benchmarkCmd.Flags().BoolVar(&verifierEnabled, "verifier", false, "Cross-check every round against the reference matcher")
	benchmarkCmd.Flags().StringVar(&profilerOutput, "benchmark-profiler-output", "", "Profile output file (default: stdout)")
}

func runBenchmark(c *cobra.Command, args []string) error {
	if codeConfigStr != "" {
		if _, err := config.Parse(codeConfigStr); err != nil {
			return fmt.Errorf("--code-config: %w", err)
		}
	}

	var in io.Reader = os.Stdin
	if inputFile != "" {
		f, err := os.Open(inputFile)
		if err != nil {
			return fmt.Errorf("--input: %w", err)
		}
		defer f.Close()
		in = f
	}

	var payload bench.Input
	if err := json.NewDecoder(in).Decode(&payload); err != nil {
		return fmt.Errorf("decoding --input payload: %w", err)
	}

	cfg := bench.Config{
		PrimalDualType: primalDualType,
		MaxTreeSize:    maxTreeSize,
		Verifier:       verifierEnabled,
		MaxWorkers:     maxWorkers,
	}

	var plan partition.PlanSpec
	switch {
	case partitionConfigStr != "":
		p, err := config.ParsePartitionConfig([]byte(partitionConfigStr))
		if err != nil {
			return fmt.Errorf("--partition-config: %w", err)
		}
		plan = p
		cfg.Partition = &plan
	case partitionConfigFile != "":
		data, err := os.ReadFile(partitionConfigFile)
		if err != nil {
			return fmt.Errorf("--partition-config-file: %w", err)
		}
		p, err := config.ParsePartitionConfig(data)
		if err != nil {
			return fmt.Errorf("--partition-config-file: %w", err)
		}
		plan = p
		cfg.Partition = &plan
	}

	var out io.Writer = os.Stdout
	if profilerOutput != "" {
		f, err := os.Create(profilerOutput)
		if err != nil {
			return fmt.Errorf("--benchmark-profiler-output: %w", err)
		}
		defer f.Close()
		out = f
	}

	writer, err := profiler.NewWriter(out, plan, profiler.BenchmarkConfig{
		CodeDistance:      codeDistance,
		Rounds:            rounds,
		P:                 physicalErrorRate,
		CodeType:          codeType,
		PrimalDualType:    primalDualType,
		PartitionStrategy: partitionStrategy,
		Verifier:          verifierEnabled,
	})
	if err != nil {
		return fmt.Errorf("writing profile header: %w", err)
	}

	_, err = bench.Run(payload, cfg, writer)
	return err
}
