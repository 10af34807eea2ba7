package util

import (
	"os"
	"strings"

	"github.com/ValentinKolb/dBin/lib/archive"
	"github.com/ValentinKolb/dBin/lib/common"
	"github.com/VictoriaMetrics/metrics"
	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const (
	// Wrap is the number of characters to Wrap the help text at
	Wrap int = 50

	// EnvPrefix is the prefix of all environment variables read by dbin
	EnvPrefix = "dbin"
)

// WrapString wraps a string at Wrap characters
func WrapString(text string) string {
	var wrappedLines []string
	var currentLine strings.Builder
	lineWidth := 0

	for _, word := range strings.Fields(text) {
		wordWidth := len(word)

		// Check if we need to wrap
		if lineWidth > 0 && lineWidth+1+wordWidth > Wrap {
			wrappedLines = append(wrappedLines, currentLine.String())
			currentLine.Reset()
			lineWidth = 0
		}

		if lineWidth > 0 {
			currentLine.WriteString(" ")
			lineWidth++
		}

		currentLine.WriteString(word)
		lineWidth += wordWidth
	}

	if currentLine.Len() > 0 {
		wrappedLines = append(wrappedLines, currentLine.String())
	}

	return strings.Join(wrappedLines, "\n")
}

// InitConfig loads .env files and makes viper read DBIN_* environment variables
func InitConfig() {
	// load env files
	_ = godotenv.Load(".env")
	_ = godotenv.Load(".env.local")

	viper.SetEnvPrefix(EnvPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()
}

// BindCommandFlags binds a command's flags to viper
func BindCommandFlags(cmd *cobra.Command) error {
	return viper.BindPFlags(cmd.Flags())
}

// GetToolConfig reads the shared configuration from viper
func GetToolConfig() *common.ToolConfig {
	return &common.ToolConfig{
		LogLevel:      viper.GetString("log-level"),
		Compression:   viper.GetString("compression"),
		Serializer:    viper.GetString("serializer"),
		MetricsOutput: viper.GetString("metrics"),
	}
}

// GetCompression parses the configured archive compression
func GetCompression() (archive.Compression, error) {
	return archive.ParseCompression(viper.GetString("compression"))
}

// WriteMetrics dumps all VictoriaMetrics counters in Prometheus text format to path.
// "-" writes to stdout.
func WriteMetrics(path string) error {
	if path == "" {
		return nil
	}
	if path == "-" {
		metrics.WritePrometheus(os.Stdout, false)
		return nil
	}

	file, err := os.Create(path)
	if err != nil {
		return errors.Wrap(err, "failed to create metrics file")
	}
	defer file.Close()

	metrics.WritePrometheus(file, false)
	return nil
}
