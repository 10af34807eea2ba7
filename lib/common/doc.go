// Package common holds the logging setup and the configuration shared by the dbin
// commands and libraries.
//
// All loggers are dragonboat loggers (github.com/lni/dragonboat/v4/logger) created
// through a custom factory that writes "LEVEL | pkg | message" lines to stderr.
package common
