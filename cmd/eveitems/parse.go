// SPDX-License-Identifier: MIT
package main

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"gitlab.com/fisherprime/eveitems"
)

const (
	formatMultibuy = "multibuy"
	formatTab      = "tab"
	formatJSON     = "json"
	formatTable    = "table"
)

var (
	withIDs      bool
	outputFormat string
	interactive  bool
)

var errUnknownFormat = errors.New("unknown output format")

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	numberStyle = cellStyle.Align(lipgloss.Right)
	borderStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
)

var parseCmd = &cobra.Command{
	Use:   "parse [file]",
	Short: "Parse pasted inventory text",
	Long: `Parse inventory text read from a file, or stdin when no file is given.

The whole input is parsed as one batch: a single invalid line fails the batch.
With --interactive, stdin is parsed line by line until an empty line.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) (err error) {
		cfg, err := loadConfig()
		if err != nil {
			return
		}
		parser, release, err := newParser(cfg)
		if err != nil {
			return
		}
		defer release()

		if interactive {
			return parseInteractive(cmd, parser)
		}

		var src io.Reader = cmd.InOrStdin()
		if len(args) == 1 {
			var f *os.File
			if f, err = os.Open(args[0]); err != nil {
				return
			}
			defer f.Close()
			src = f
		}

		data, err := io.ReadAll(src)
		if err != nil {
			return
		}

		out := cmd.OutOrStdout()
		if withIDs {
			var items []eveitems.ItemWithID
			if items, err = parser.ParseWithID(cmd.Context(), string(data)); err != nil {
				return fmt.Errorf("failed to parse: %w", err)
			}

			return writeItems(out, items, func(i eveitems.ItemWithID) []string {
				return []string{i.Name, strconv.FormatInt(i.Quantity, 10), strconv.FormatUint(i.TypeID, 10)}
			}, "Name", "Quantity", "Type ID")
		}

		var items []eveitems.Item
		if items, err = parser.Parse(cmd.Context(), string(data)); err != nil {
			return fmt.Errorf("failed to parse: %w", err)
		}

		return writeItems(out, items, func(i eveitems.Item) []string {
			return []string{i.Name, strconv.FormatInt(i.Quantity, 10)}
		}, "Name", "Quantity")
	},
}

func init() {
	parseCmd.Flags().BoolVar(&withIDs, "ids", false, "Join the items with their type IDs")
	parseCmd.Flags().StringVarP(&outputFormat, "format", "f", formatMultibuy, "Output format: multibuy, tab, json or table")
	parseCmd.Flags().BoolVarP(&interactive, "interactive", "i", false, "Parse stdin line by line until an empty line")
}

// parseInteractive prints the items of each stdin line as it is entered.
func parseInteractive(cmd *cobra.Command, parser *eveitems.Parser) error {
	scanner := bufio.NewScanner(cmd.InOrStdin())
	out := cmd.OutOrStdout()

	for scanner.Scan() {
		line := scanner.Text()
		if strings.TrimSpace(line) == "" {
			return nil
		}

		items, err := parser.ParseLine(line)
		if err != nil {
			return fmt.Errorf("failed to parse: %w", err)
		}
		for _, item := range items {
			fmt.Fprintln(out, item)
		}
	}

	return scanner.Err()
}

// writeItems renders entries in the selected output format.
func writeItems[E eveitems.Entry](w io.Writer, entries []E, row func(E) []string, headers ...string) (err error) {
	switch outputFormat {
	case formatMultibuy:
		_, err = fmt.Fprintln(w, eveitems.Multibuy(entries))
	case formatTab:
		_, err = fmt.Fprintln(w, eveitems.Tabular(entries))
	case formatJSON:
		encoder := json.NewEncoder(w)
		encoder.SetIndent("", "  ")
		err = encoder.Encode(entries)
	case formatTable:
		rows := make([][]string, len(entries))
		for index := range entries {
			rows[index] = row(entries[index])
		}

		t := table.New().
			Border(lipgloss.RoundedBorder()).
			BorderStyle(borderStyle).
			Headers(headers...).
			Rows(rows...).
			StyleFunc(func(r, c int) lipgloss.Style {
				switch {
				case r == table.HeaderRow:
					return headerStyle
				case c > 0:
					return numberStyle
				default:
					return cellStyle
				}
			})
		_, err = fmt.Fprintln(w, t.Render())
	default:
		err = fmt.Errorf("%w: %q", errUnknownFormat, outputFormat)
	}

	return
}
