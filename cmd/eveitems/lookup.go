// SPDX-License-Identifier: MIT
package main

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
)

var errUnknownType = errors.New("unknown types")

var lookupCmd = &cobra.Command{
	Use:   "lookup <name|type ID>...",
	Short: "Resolve item names & type IDs",
	Long:  `Resolve item names to type IDs & type IDs to item names, printing "id<TAB>name" lines.`,
	Args:  cobra.MinimumNArgs(1),
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

		table := parser.Config().Table
		out := cmd.OutOrStdout()

		var unknown []string
		for _, arg := range args {
			if id, parseErr := strconv.ParseUint(arg, 10, 64); parseErr == nil {
				if name, ok := table.Name(id); ok {
					fmt.Fprintf(out, "%d\t%s\n", id, name)
					continue
				}
			}

			if id, ok := table.ID(arg); ok {
				fmt.Fprintf(out, "%d\t%s\n", id, arg)
				continue
			}
			unknown = append(unknown, strconv.Quote(arg))
		}

		if len(unknown) > 0 {
			err = fmt.Errorf("%w: %s", errUnknownType, strings.Join(unknown, ", "))
		}

		return
	},
}
