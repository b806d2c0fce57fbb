package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"baldr/internal/presentation"
	"baldr/internal/textutil"
)

type presentationView struct {
	Meta   presentation.Meta     `json:"meta"`
	Slides []*presentation.Slide `json:"slides"`
}

func newParseCommand(ctx *commandContext) *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "parse <file>",
		Short: "Parse a presentation and list its slides",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			pres, err := ctx.parsePresentation(args[0])
			if err != nil {
				return err
			}
			if jsonOutput {
				return writeJSON(cmd, presentationView{Meta: pres.Meta, Slides: pres.Slides})
			}
			printPresentation(cmd, pres)
			return nil
		},
	}
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Emit the normalized presentation as JSON")
	return cmd
}

func printPresentation(cmd *cobra.Command, pres *presentation.Presentation) {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%s (%s, Klasse %d)\n", pres.Meta.Title, pres.Meta.Ref, pres.Meta.Grade)
	if pres.Meta.Subtitle != "" {
		fmt.Fprintln(out, pres.Meta.Subtitle)
	}

	rows := make([][]string, 0, pres.Len())
	for _, slide := range pres.Flat() {
		title := strings.Repeat("  ", slide.Level-1) + textutil.ShortenText(slide.Title(), 48)
		rows = append(rows, []string{
			strconv.Itoa(slide.No),
			strconv.Itoa(slide.Level),
			slide.MasterName,
			title,
			strconv.Itoa(len(slide.Steps())),
			strconv.Itoa(len(slide.MediaURIs)),
		})
	}
	fmt.Fprintln(out, renderTable(
		[]string{"No", "Level", "Master", "Title", "Steps", "Media"},
		rows,
		[]columnAlignment{alignRight, alignRight, alignLeft, alignLeft, alignRight, alignRight},
	))
}
