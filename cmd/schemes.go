package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/smazurov/lightnode/internal/lights"
	"github.com/spf13/cobra"
)

// tableDump is the machine-readable form of the lookup tables.
type tableDump struct {
	Schemes  []schemeDump   `json:"schemes"`
	Patterns []string       `json:"patterns"`
	Widths   map[string]any `json:"widths"`
	SpeedsMs []int64        `json:"speeds_ms"`
}

type schemeDump struct {
	Index  int      `json:"index"`
	Name   string   `json:"name"`
	Colors []string `json:"colors"`
}

// CreateSchemesCmd creates the schemes command, which prints the palette
// registry and the width and speed tables with their control indices.
func CreateSchemesCmd() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "schemes",
		Short: "List color schemes, patterns, widths and speeds",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			dump := buildTableDump()
			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(dump)
			}
			return printTables(cmd.OutOrStdout(), dump)
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print as JSON")
	return cmd
}

func buildTableDump() tableDump {
	var dump tableDump

	for i, s := range lights.Schemes() {
		colors := make([]string, len(s.Colors))
		for j, c := range s.Colors {
			colors[j] = c.String()
		}
		dump.Schemes = append(dump.Schemes, schemeDump{Index: i, Name: s.Name, Colors: colors})
	}

	dump.Widths = make(map[string]any)
	for p := lights.Pattern(0); p < lights.PatternCount; p++ {
		dump.Patterns = append(dump.Patterns, p.String())
		widths := make([]int, lights.WidthCount)
		for i := range widths {
			widths[i], _ = lights.Width(p, i)
		}
		dump.Widths[p.String()] = widths
	}

	for i := 0; i < lights.SpeedCount; i++ {
		d, _ := lights.Speed(i)
		dump.SpeedsMs = append(dump.SpeedsMs, d.Milliseconds())
	}
	return dump
}

func printTables(out io.Writer, dump tableDump) error {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)

	fmt.Fprintln(w, "SCHEME\tNAME\tCOLORS")
	for _, s := range dump.Schemes {
		fmt.Fprintf(w, "%d\t%s\t%s\n", s.Index, s.Name, strings.Join(s.Colors, " "))
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, "PATTERN\tNAME\tWIDTHS (px)")
	for i, name := range dump.Patterns {
		fmt.Fprintf(w, "%d\t%s\t%v\n", i, name, dump.Widths[name])
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, "SPEED\tINTERVAL")
	for i, ms := range dump.SpeedsMs {
		interval := "static"
		if ms > 0 {
			interval = (time.Duration(ms) * time.Millisecond).String()
		}
		fmt.Fprintf(w, "%d\t%s\n", i, interval)
	}
	return w.Flush()
}
