// Package cli implements the campaignctl commands.
package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"campaign-ids/internal/adapter/usecase"
	"campaign-ids/internal/config"
	"campaign-ids/internal/core/idcode"
	"campaign-ids/internal/core/port"
	"campaign-ids/internal/storage"
)

// Output formats for command results.
const (
	formatJSON  = "json"
	formatTable = "table"
)

// Opener opens the campaign store described by cfg.
type Opener func(ctx context.Context, cfg config.Config, logger *slog.Logger) (*storage.Store, error)

type app struct {
	open    Opener
	format  string
	backend string
	dbPath  string

	store *storage.Store
	svc   port.CampaignUseCase
}

// Execute runs campaignctl with the process arguments. The store opened by
// the command is closed afterwards, also when the command failed.
func Execute() error {
	root, a := newRootCmd(storage.Open)
	return a.execute(root)
}

func newRootCmd(open Opener) (*cobra.Command, *app) {
	a := &app{open: open}
	root := &cobra.Command{
		Use:           "campaignctl",
		Short:         "Generate and track advertising campaign IDs",
		Long:          "Generate unique, decodable campaign IDs from targeting criteria and manage the record history.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			switch a.format {
			case formatJSON, formatTable:
				return nil
			default:
				return fmt.Errorf("unknown output format %q (want json or table)", a.format)
			}
		},
	}

	root.PersistentFlags().StringVarP(&a.format, "format", "f", formatJSON, "Output format: json or table")
	root.PersistentFlags().StringVar(&a.backend, "store", "", "Store backend: memory, sqlite or postgres (default: $STORE_BACKEND)")
	root.PersistentFlags().StringVarP(&a.dbPath, "db", "d", "", "SQLite database path (default: $SQLITE_PATH)")

	root.AddCommand(
		newGenerateCmd(a),
		newListCmd(a),
		newGetCmd(a),
		newRmCmd(a),
		newExportCmd(a),
		newImportCmd(a),
		newDecodeCmd(a),
		newOptionsCmd(a),
		newSeedCmd(a),
	)
	return root, a
}

func (a *app) execute(root *cobra.Command) (err error) {
	defer func() {
		if cerr := a.closeStore(); err == nil {
			err = cerr
		}
	}()
	return root.Execute()
}

func (a *app) closeStore() error {
	if a.store == nil {
		return nil
	}
	s := a.store
	a.store, a.svc = nil, nil
	return s.Close()
}

// service opens the configured store on first use and returns the use case
// built on it.
func (a *app) service(cmd *cobra.Command) (port.CampaignUseCase, error) {
	if a.svc != nil {
		return a.svc, nil
	}
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if a.backend != "" {
		cfg.Store.Backend = a.backend
	}
	if a.dbPath != "" {
		cfg.SQLite.Path = a.dbPath
	}
	suffix, err := idcode.ParseSuffix(cfg.IDs.Suffix)
	if err != nil {
		return nil, err
	}

	logger := cfg.Log.New(cmd.ErrOrStderr())
	a.store, err = a.open(cmd.Context(), cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}
	a.svc = usecase.NewCampaignUseCase(a.store.Repo, idcode.NewEncoder(suffix), cfg.IDs.MaxAttempts)
	return a.svc, nil
}

// print writes v as indented JSON, or as a table of header plus rows when the
// table format is selected.
func (a *app) print(w io.Writer, v any, header []string, rows [][]string) error {
	if a.format == formatTable {
		return renderTable(w, header, rows)
	}
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(b))
	return err
}

func renderTable(w io.Writer, header []string, rows [][]string) error {
	table := tablewriter.NewWriter(w)
	if err := table.Append(header); err != nil {
		return err
	}
	for _, row := range rows {
		if err := table.Append(row); err != nil {
			return err
		}
	}
	return table.Render()
}

func join(values []string) string {
	return strings.Join(values, ", ")
}
