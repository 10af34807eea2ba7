package pack

import (
	"fmt"
	"os"
	"time"

	"github.com/ValentinKolb/dBin/cmd/util"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	PackCmd = &cobra.Command{
		Use:   "pack <in.env> <out.dbin>",
		Short: "Pack a dotenv file into a dBin archive",
		Long:  util.WrapString("Parse a dotenv file and store its entries, together with a small manifest, in a dBin archive. The archive is compressed as configured with --compression."),
		Args:  cobra.ExactArgs(2),
		RunE:  runPack,
	}

	UnpackCmd = &cobra.Command{
		Use:   "unpack <in.dbin>",
		Short: "Print the entries of a dBin env archive",
		Long:  util.WrapString("Read an archive written by pack and print its entries in dotenv syntax, sorted by key. Use --manifest to print the manifest as well."),
		Args:  cobra.ExactArgs(1),
		RunE:  runUnpack,
	}
)

func init() {
	key := "manifest"
	UnpackCmd.Flags().Bool(key, false, util.WrapString("Print the archive manifest before the entries"))
}

func runPack(cmd *cobra.Command, args []string) error {
	compression, err := util.GetCompression()
	if err != nil {
		return err
	}

	out, err := createFile(args[1])
	if err != nil {
		return err
	}
	defer out.Close()

	m, err := packEnv(args[0], out, compression)
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "packed %d entries into %s\n", m.Entries, args[1])
	return nil
}

func runUnpack(cmd *cobra.Command, args []string) error {
	if err := util.BindCommandFlags(cmd); err != nil {
		return err
	}

	in, err := os.Open(args[0])
	if err != nil {
		return errors.Wrapf(err, "failed to open %s", args[0])
	}
	defer in.Close()

	m, entries, err := unpackEnv(in)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if viper.GetBool("manifest") {
		fmt.Fprintf(out, "# source:  %s\n", m.Source)
		fmt.Fprintf(out, "# created: %s\n", time.Unix(m.Created, 0).UTC().Format(time.RFC3339))
		fmt.Fprintf(out, "# entries: %d\n", m.Entries)
	}

	text, err := formatEnv(entries)
	if err != nil {
		return err
	}
	if text != "" {
		fmt.Fprintln(out, text)
	}
	return nil
}
