package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"teamreel/internal/country"
)

type resolution struct {
	Input  string `json:"input"`
	Code   string `json:"code,omitempty"`
	Name   string `json:"name,omitempty"`
	Alpha2 string `json:"alpha2,omitempty"`
	Flag   string `json:"flag,omitempty"`
}

func newResolveCommand() *cobra.Command {
	var codeOnly, asJSON bool

	cmd := &cobra.Command{
		Use:         "resolve TEXT...",
		Short:       "Resolve delegation labels to country codes",
		Args:        cobra.MinimumNArgs(1),
		Annotations: map[string]string{"skipConfigLoad": "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			results := make([]resolution, 0, len(args))
			for _, arg := range args {
				var (
					code country.Code
					ok   bool
				)
				if codeOnly {
					code, ok = country.NormalizeCode(arg)
				} else {
					code, ok = country.Normalize(arg)
				}
				r := resolution{Input: arg}
				if ok {
					r.Code = code.String()
					r.Name = country.DisplayName(code)
					r.Alpha2 = country.Alpha2(code)
					r.Flag = country.Flag(code)
				}
				results = append(results, r)
			}

			if asJSON {
				return writeJSON(cmd, results)
			}
			rows := make([][]string, 0, len(results))
			for _, r := range results {
				if r.Code == "" {
					rows = append(rows, []string{r.Input, "-", "unresolved", "", ""})
					continue
				}
				rows = append(rows, []string{r.Input, r.Code, r.Name, r.Alpha2, r.Flag})
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable(cmd.OutOrStdout(),
				[]string{"Input", "Code", "Name", "Alpha-2", "Flag"}, rows, nil))
			return nil
		},
	}

	cmd.Flags().BoolVar(&codeOnly, "code", false, "Treat inputs as structured alpha-2/alpha-3 codes only")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print results as JSON")
	return cmd
}
