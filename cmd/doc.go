// Package cmd implements the dbin command-line tool. It provides commands to pack
// dotenv files into dBin archives, to print them again and to benchmark the codec
// against gob and json.
//
// The package is organized into several subpackages:
//
//   - pack: pack and unpack commands for dotenv archives
//   - bench: serializer benchmark over a generated dataset
//   - util: Shared utilities for command-line processing and configuration (internal use)
//
// All flags can also be set as DBIN_<FLAG> environment variables or in .env files.
// See dbin -help for a list of all commands.
package cmd
