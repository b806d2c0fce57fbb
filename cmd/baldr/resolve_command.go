package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"baldr/internal/media"
	"baldr/internal/presentation"
	"baldr/internal/resolver"
)

type assetView struct {
	URI       string   `json:"uri"`
	UUID      string   `json:"uuid"`
	Shortcut  string   `json:"shortcut,omitempty"`
	Category  string   `json:"category"`
	Title     string   `json:"title"`
	HTTPURL   string   `json:"httpUrl"`
	PartCount int      `json:"multiPartCount,omitempty"`
	Samples   []string `json:"samples,omitempty"`
}

type resolvedView struct {
	presentationView
	Assets []assetView `json:"assets"`
}

func newResolveCommand(ctx *commandContext) *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "resolve <file>",
		Short: "Parse a presentation and resolve its media against the catalog",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			pres, err := ctx.parsePresentation(args[0])
			if err != nil {
				return err
			}
			return ctx.withResolver(func(r *resolver.Resolver) error {
				if err := pres.Resolve(cmd.Context(), r); err != nil {
					return err
				}
				assets := assetViews(r.Assets())
				if jsonOutput {
					return writeJSON(cmd, resolvedView{
						presentationView: presentationView{Meta: pres.Meta, Slides: pres.Slides},
						Assets:           assets,
					})
				}
				printResolved(cmd, pres, assets)
				return nil
			})
		},
	}
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Emit the resolved presentation and its assets as JSON")
	return cmd
}

func assetViews(assets []*media.Asset) []assetView {
	views := make([]assetView, 0, len(assets))
	for _, asset := range assets {
		view := assetView{
			URI:       asset.Ref,
			UUID:      asset.UUID,
			Shortcut:  asset.Shortcut,
			Category:  string(asset.Category),
			Title:     asset.TitleSafe(),
			HTTPURL:   asset.HTTPURL,
			PartCount: asset.PartCount,
		}
		if asset.Samples != nil {
			for _, sample := range asset.Samples.All() {
				view.Samples = append(view.Samples, sample.Ref)
			}
		}
		views = append(views, view)
	}
	return views
}

func printResolved(cmd *cobra.Command, pres *presentation.Presentation, assets []assetView) {
	printPresentation(cmd, pres)

	out := cmd.OutOrStdout()
	if len(assets) == 0 {
		fmt.Fprintln(out, "No media assets")
		return
	}
	rows := make([][]string, 0, len(assets))
	for _, a := range assets {
		parts := ""
		if a.PartCount > 1 {
			parts = strconv.Itoa(a.PartCount)
		}
		rows = append(rows, []string{a.Shortcut, a.URI, a.Category, a.Title, parts, strconv.Itoa(len(a.Samples))})
	}
	fmt.Fprintln(out, renderTable(
		[]string{"Key", "URI", "Category", "Title", "Parts", "Samples"},
		rows,
		[]columnAlignment{alignLeft, alignLeft, alignLeft, alignLeft, alignRight, alignRight},
	))
}
