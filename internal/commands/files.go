package commands

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/bankview/bankview/internal/loader"
)

func newFilesCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "files",
		Short: "List data files in the data directory",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			files, err := loader.Scan(a.cfg.Data.Dir)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if len(files) == 0 {
				fmt.Fprintf(out, "No data files in %s\n", a.cfg.Data.Dir)
				return nil
			}

			tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
			fmt.Fprintln(tw, "NAME\tFORMAT\tSIZE")
			for _, f := range files {
				fmt.Fprintf(tw, "%s\t%s\t%d\n", f.Name, f.Format, f.Size)
			}
			return tw.Flush()
		},
	}
}
