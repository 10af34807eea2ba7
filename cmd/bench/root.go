package bench

import (
	"fmt"

	"github.com/ValentinKolb/dBin/cmd/util"
	"github.com/ValentinKolb/dBin/lib/archive"
	"github.com/ValentinKolb/dBin/lib/serializer"
	"github.com/lni/dragonboat/v4/logger"
	gometrics "github.com/rcrowley/go-metrics"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var plog = logger.GetLogger("bench")

var (
	BenchCmd = &cobra.Command{
		Use:     "bench",
		Short:   "Compare dBin with gob and json",
		Long:    util.WrapString("Serialize a generated sensor dataset with every serializer (binary, gob, json) and report payload sizes and encode/decode latencies. Set --serializer to time a single one. Archive sizes for all compressions are reported for the binary format."),
		PreRunE: processBenchConfig,
		RunE:    run,
	}
	benchRecords    = 1000
	benchReadings   = 32
	benchIterations = 20
)

func init() {
	key := "records"
	BenchCmd.Flags().Int(key, 1000, util.WrapString("Number of records in the dataset"))
	key = "readings"
	BenchCmd.Flags().Int(key, 32, util.WrapString("Number of readings per record"))
	key = "iterations"
	BenchCmd.Flags().Int(key, 20, util.WrapString("How many round trips to time per serializer"))
	key = "csv"
	BenchCmd.Flags().String(key, "", util.WrapString("Optional path to save benchmark results as CSV"))
}

func processBenchConfig(cmd *cobra.Command, _ []string) error {
	if err := util.BindCommandFlags(cmd); err != nil {
		return err
	}

	benchRecords = viper.GetInt("records")
	benchReadings = viper.GetInt("readings")
	benchIterations = viper.GetInt("iterations")
	if benchRecords < 0 || benchReadings < 0 || benchIterations < 1 {
		return fmt.Errorf("records and readings must not be negative, iterations must be positive")
	}
	return nil
}

func run(cmd *cobra.Command, _ []string) error {
	out := cmd.OutOrStdout()

	fmt.Fprintf(out, "Dataset: %d records x %d readings, %d iterations\n\n", benchRecords, benchReadings, benchIterations)
	dataset := generateDataset(benchRecords, benchReadings)

	names := serializer.Names()
	// an explicit --serializer (or DBIN_SERIALIZER) narrows the run to one serializer
	if viper.IsSet("serializer") {
		names = []string{util.GetToolConfig().Serializer}
	}

	registry := gometrics.NewRegistry()
	results := make([]result, 0, len(names))
	for _, name := range names {
		s, err := serializer.New(name, datasetCodec)
		if err != nil {
			return err
		}
		plog.Infof("running %s", name)
		r, err := runSerializer(s, dataset, benchIterations, registry)
		if err != nil {
			return err
		}
		results = append(results, r)
		printResult(out, r)
	}

	fmt.Fprintln(out)
	for _, c := range []archive.Compression{archive.CompressionNone, archive.CompressionLZ4, archive.CompressionZstd} {
		size, err := archiveSize(dataset, c)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "archive %-6s%10d B\n", c, size)
	}

	if csvPath := viper.GetString("csv"); csvPath != "" {
		fmt.Fprintf(out, "\nExporting results to CSV: %s\n", csvPath)
		if err := writeResultsToCSV(csvPath, results, benchRecords, benchReadings); err != nil {
			return fmt.Errorf("failed to export results to CSV: %v", err)
		}
	}
	return nil
}
