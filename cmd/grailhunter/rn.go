package main

import (
	"fmt"
	json "github.com/goccy/go-json"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
	"grailhunter/internal/services"
	"io"
	"strconv"
	"strings"
)

func newRNCmd() *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "rn <label text>",
		Short: "Date a garment from the RN printed on its care label",
		Example: `  grailhunter rn 14806
  grailhunter rn "RN# 29685" --json`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRNLookup(cmd.OutOrStdout(), services.NewRNService(), strings.Join(args, " "), asJSON)
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the full lookup as JSON")
	cmd.AddCommand(newRNBrandsCmd())
	return cmd
}

func newRNBrandsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "brands",
		Short: "List the known brand RNs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			renderBrands(cmd.OutOrStdout(), services.NewRNService())
			return nil
		},
	}
}

func runRNLookup(out io.Writer, service services.RNServiceInterface, input string, asJSON bool) error {
	lookup, err := service.Lookup(input)
	if err != nil {
		return err
	}

	if asJSON {
		data, err := json.MarshalIndent(lookup, "", "  ")
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(out, string(data))
		return err
	}

	fmt.Fprintf(out, "RN %d\n%s\n", lookup.RN, lookup.Summary)
	if lookup.Dating.IsValid {
		fmt.Fprintf(out, "Formula: %s\n", lookup.Dating.Formula)
	}
	if lookup.BrandMatch != nil {
		fmt.Fprintf(out, "Brand match: %s (%s)\n", lookup.BrandMatch.Brand, lookup.BrandMatch.Notes)
	}
	return nil
}

func renderBrands(out io.Writer, service services.RNServiceInterface) {
	t := table.NewWriter()
	t.SetOutputMirror(out)
	t.SetStyle(table.StyleRounded)
	t.AppendHeader(table.Row{"Brand", "RN", "Est. year", "Notes"})
	for _, b := range service.Brands() {
		year := "-"
		if lookup, err := service.Lookup(strconv.Itoa(b.RN)); err == nil && lookup.Dating.IsValid {
			year = strconv.Itoa(lookup.Year)
		}
		t.AppendRow(table.Row{b.Brand, b.RN, year, b.Notes})
	}
	t.Render()
}
