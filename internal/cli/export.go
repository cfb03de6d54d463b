package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"campaign-ids/internal/export"
)

func newExportCmd(a *app) *cobra.Command {
	var (
		ff     filterFlags
		as     string
		output string
	)
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export recorded campaigns as csv or json",
		Long:  "Export the filtered campaign history. Writes to stdout unless --output is given.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			format, err := export.ParseFormat(as)
			if err != nil {
				return err
			}
			filter, err := ff.filter()
			if err != nil {
				return err
			}
			svc, err := a.service(cmd)
			if err != nil {
				return err
			}
			payload, err := svc.Export(cmd.Context(), format, filter)
			if err != nil {
				return fmt.Errorf("export: %w", err)
			}
			if output == "" {
				_, err = cmd.OutOrStdout().Write(payload)
				return err
			}
			return os.WriteFile(output, payload, 0o644)
		},
	}
	ff.register(cmd)
	cmd.Flags().StringVar(&as, "as", "csv", "Export format: csv or json")
	cmd.Flags().StringVar(&output, "output", "", "Write to this file instead of stdout")
	return cmd
}

func newImportCmd(a *app) *cobra.Command {
	var as string
	cmd := &cobra.Command{
		Use:   "import [file]",
		Short: "Import a previous export",
		Long:  "Import campaigns from a csv or json export (file or stdin). Records whose ID already exists are skipped.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var (
				payload []byte
				err     error
			)
			if len(args) == 1 {
				if as == "" && strings.EqualFold(filepath.Ext(args[0]), ".json") {
					as = string(export.JSON)
				}
				payload, err = os.ReadFile(args[0])
			} else {
				payload, err = io.ReadAll(cmd.InOrStdin())
			}
			if err != nil {
				return fmt.Errorf("read input: %w", err)
			}
			format, err := export.ParseFormat(as)
			if err != nil {
				return err
			}

			svc, err := a.service(cmd)
			if err != nil {
				return err
			}
			res, err := svc.Import(cmd.Context(), format, payload)
			if err != nil {
				return fmt.Errorf("import: %w", err)
			}
			return a.print(cmd.OutOrStdout(), res,
				[]string{"Imported", "Skipped"},
				[][]string{{fmt.Sprint(res.Imported), fmt.Sprint(res.Skipped)}},
			)
		},
	}
	cmd.Flags().StringVar(&as, "as", "", "Input format: csv or json (default: from file extension, else csv)")
	return cmd
}
