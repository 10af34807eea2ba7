package cmd

import (
	"fmt"
	"os"

	"github.com/ValentinKolb/dBin/cmd/bench"
	"github.com/ValentinKolb/dBin/cmd/pack"
	"github.com/ValentinKolb/dBin/cmd/util"
	"github.com/ValentinKolb/dBin/lib/common"
	"github.com/lni/dragonboat/v4/logger"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const (
	Version = "0.3.0"
)

var (
	plog = logger.GetLogger("cli")

	// RootCmd represents the base command when called without any subcommands
	RootCmd = &cobra.Command{
		Use:   "dbin",
		Short: "recursive binary codec toolkit",
		Long: fmt.Sprintf(`dBin (v%s)

A compact binary codec for Go values, composed from primitives, sequences,
associative containers, fixed-size arrays and self-encoding types.`, Version),
		SilenceUsage:       true,
		PersistentPreRunE:  setup,
		PersistentPostRunE: teardown,
	}
	versionCmd = &cobra.Command{
		Use:   "version",
		Short: "Print the version number of dBin",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "dBin v%s\n", Version)
		},
	}
)

func init() {
	cobra.OnInitialize(util.InitConfig)

	// Add Commands
	RootCmd.AddCommand(pack.PackCmd)
	RootCmd.AddCommand(pack.UnpackCmd)
	RootCmd.AddCommand(bench.BenchCmd)
	RootCmd.AddCommand(versionCmd)

	// Add Flags
	key := "log-level"
	RootCmd.PersistentFlags().String(key, "warn", util.WrapString("Level at which logs will be output (debug, info, warn, error)"))
	key = "compression"
	RootCmd.PersistentFlags().String(key, "none", util.WrapString("Archive compression (none, lz4, zstd)"))
	key = "serializer"
	RootCmd.PersistentFlags().String(key, "binary", util.WrapString("Serializer to use where a command supports several (binary, gob, json)"))
	key = "metrics"
	RootCmd.PersistentFlags().String(key, "", util.WrapString("File to write metrics to in Prometheus text format after the command finished ('-' for stdout)"))
}

// setup binds the global flags and initializes the loggers. It reaches the global
// flags through cmd.Root() since RootCmd itself refers to setup.
func setup(cmd *cobra.Command, _ []string) error {
	if err := viper.BindPFlags(cmd.Flags()); err != nil {
		return err
	}
	if err := viper.BindPFlags(cmd.Root().PersistentFlags()); err != nil {
		return err
	}

	conf := util.GetToolConfig()
	if err := common.InitLoggers(conf.LogLevel); err != nil {
		return err
	}
	plog.Debugf("configuration:%s", conf)
	return nil
}

// teardown writes the metrics if requested
func teardown(_ *cobra.Command, _ []string) error {
	return util.WriteMetrics(viper.GetString("metrics"))
}

// Execute adds all child commands to the root command and sets flags appropriately.
// It only needs to happen once to the RootCmd.
func Execute() {
	if err := RootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
