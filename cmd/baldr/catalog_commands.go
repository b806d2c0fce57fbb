package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"baldr/internal/catalog"
	"baldr/internal/config"
	"baldr/internal/mediauri"
	"baldr/internal/services"
)

func newCatalogCommand(ctx *commandContext) *cobra.Command {
	catalogCmd := &cobra.Command{
		Use:   "catalog",
		Short: "Manage the local media catalog",
	}

	catalogCmd.AddCommand(newCatalogImportCommand(ctx))
	catalogCmd.AddCommand(newCatalogListCommand(ctx))
	catalogCmd.AddCommand(newCatalogShowCommand(ctx))
	catalogCmd.AddCommand(newCatalogRemoveCommand(ctx))

	return catalogCmd
}

func newCatalogImportCommand(ctx *commandContext) *cobra.Command {
	var writeBack bool

	cmd := &cobra.Command{
		Use:   "import [dir]",
		Short: "Import media sidecars into the catalog database",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(func(cfg *config.Config, store *catalog.SQLiteStore) error {
				root := cfg.Catalog.MediaDir
				if len(args) == 1 {
					expanded, err := config.ExpandPath(args[0])
					if err != nil {
						return err
					}
					root = expanded
				}
				if strings.TrimSpace(root) == "" {
					return services.Wrap(services.ErrConfiguration, "catalog", "import",
						"no media directory given and catalog.media_dir is not set", nil)
				}

				report, err := catalog.Import(cmd.Context(), store, root, catalog.ImportOptions{
					WriteBack: writeBack,
					Logger:    ctx.loggerValue(),
				})
				if err != nil {
					return err
				}

				out := cmd.OutOrStdout()
				fmt.Fprintf(out, "Scanned %d sidecars: %d created, %d updated, %d ids generated\n",
					report.Scanned, report.Created, report.Updated, report.Minted)
				for _, rejected := range report.Rejected {
					fmt.Fprintf(out, "Rejected %s: %s\n", rejected.Path, rejected.Reason)
				}
				return nil
			})
		},
	}
	cmd.Flags().BoolVar(&writeBack, "write-back", false, "Store generated refs and uuids in the sidecar files")
	return cmd
}

func newCatalogListCommand(ctx *commandContext) *cobra.Command {
	var query string
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List catalog records",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(func(_ *config.Config, store *catalog.SQLiteStore) error {
				entries, err := store.List(cmd.Context())
				if err != nil {
					return err
				}
				if strings.TrimSpace(query) != "" {
					entries = catalog.Search(entries, query)
				}
				if jsonOutput {
					if entries == nil {
						entries = []catalog.Entry{}
					}
					return writeJSON(cmd, entries)
				}

				out := cmd.OutOrStdout()
				if len(entries) == 0 {
					fmt.Fprintln(out, "Catalog is empty")
					return nil
				}
				rows := make([][]string, 0, len(entries))
				for _, e := range entries {
					rows = append(rows, []string{
						mediauri.SchemeRef + ":" + e.Ref,
						e.Category,
						e.Title,
						e.Path,
					})
				}
				fmt.Fprintln(out, renderTable([]string{"Ref", "Category", "Title", "Path"}, rows, nil))
				return nil
			})
		},
	}
	cmd.Flags().StringVarP(&query, "query", "q", "", "Rank records by title and ref")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Emit records as JSON")
	return cmd
}

func newCatalogShowCommand(ctx *commandContext) *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "show <uri>",
		Short: "Show one catalog record in sidecar format",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			uri, err := mediauri.Parse(args[0])
			if err != nil {
				return err
			}
			return ctx.withStore(func(_ *config.Config, store *catalog.SQLiteStore) error {
				rec, err := store.FetchAssetByAuthority(cmd.Context(), uri)
				if err != nil {
					return err
				}
				if jsonOutput {
					return writeJSON(cmd, rec)
				}
				enc := yaml.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent(2)
				if err := enc.Encode(rec); err != nil {
					return fmt.Errorf("encode record: %w", err)
				}
				return enc.Close()
			})
		},
	}
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Emit the record as JSON")
	return cmd
}

func newCatalogRemoveCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "remove <ref>",
		Short: "Remove a record from the catalog database",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(func(_ *config.Config, store *catalog.SQLiteStore) error {
				if err := store.Delete(cmd.Context(), args[0]); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Removed %s\n", mediauri.SchemeRef+":"+mediauri.RemoveScheme(args[0]))
				return nil
			})
		},
	}
}
