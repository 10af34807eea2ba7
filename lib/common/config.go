package common

import (
	"fmt"
	"strings"
)

// --------------------------------------------------------------------------
// Tool configuration struct
// --------------------------------------------------------------------------

// ToolConfig holds the settings shared by all dbin commands
type ToolConfig struct {
	// Logging configuration
	LogLevel string

	// Archive settings: none, lz4 or zstd
	Compression string

	// Serializer used by commands that can choose one: binary, gob or json
	Serializer string

	// File to dump metrics to in Prometheus text format, empty to disable
	MetricsOutput string
}

// String returns a formatted string representation of the configuration
func (c *ToolConfig) String() string {
	var sb strings.Builder

	addSection := func(title string) {
		sb.WriteString("\n")
		sb.WriteString(fmt.Sprintf("%s\n", strings.ToUpper(title)))
	}

	addField := func(name, value string) {
		sb.WriteString(fmt.Sprintf("  %-22s: %s\n", name, value))
	}

	addSection("Logging")
	addField("Log Level", c.LogLevel)

	addSection("Encoding")
	addField("Compression", c.Compression)
	addField("Serializer", c.Serializer)

	addSection("Metrics")
	if c.MetricsOutput == "" {
		addField("Output", "disabled")
	} else {
		addField("Output", c.MetricsOutput)
	}

	return sb.String()
}
