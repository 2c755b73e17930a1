package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/SerjaoM/txtai/internal/output"
	"github.com/SerjaoM/txtai/internal/version"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	RunE:  runVersion,
}

func init() {
	rootCmd.AddCommand(versionCmd)

	versionCmd.Flags().String("format", "text", "output format: text, json, yaml")
}

func runVersion(cmd *cobra.Command, args []string) error {
	formatStr, _ := cmd.Flags().GetString("format")
	if formatStr == "text" || formatStr == "" {
		fmt.Println(version.Full())
		return nil
	}

	writer, err := output.NewWriter(cmd.OutOrStdout(), output.Format(formatStr))
	if err != nil {
		return err
	}
	if err := writer.Write(version.Get()); err != nil {
		return err
	}
	return writer.Flush()
}
