// SPDX-License-Identifier: MIT
package main

import (
	"bytes"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gitlab.com/fisherprime/eveitems"
)

func TestWriteItems(t *testing.T) {
	items := []eveitems.Item{
		{Name: "Paladin", Quantity: 1},
		{Name: "Republic Fleet EMP S", Quantity: 1200},
	}
	row := func(i eveitems.Item) []string { return []string{i.Name, strconv.FormatInt(i.Quantity, 10)} }

	tests := []struct {
		name     string
		format   string
		contains []string
		wantErr  bool
	}{
		{name: "multibuy", format: formatMultibuy, contains: []string{"Paladin x1\nRepublic Fleet EMP S x1200\n"}},
		{name: "tab", format: formatTab, contains: []string{"Paladin\t1\nRepublic Fleet EMP S\t1200\n"}},
		{name: "json", format: formatJSON, contains: []string{`"name": "Paladin"`, `"quantity": 1200`}},
		{name: "table", format: formatTable, contains: []string{"Name", "Quantity", "Republic Fleet EMP S", "1200"}},
		{name: "unknown", format: "xml", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			outputFormat = tt.format
			defer func() { outputFormat = formatMultibuy }()

			var out bytes.Buffer
			err := writeItems(&out, items, row, "Name", "Quantity")
			if tt.wantErr {
				assert.ErrorIs(t, err, errUnknownFormat)
				return
			}
			require.NoError(t, err)

			for _, want := range tt.contains {
				assert.Contains(t, out.String(), want)
			}
		})
	}
}

func TestParseCmd(t *testing.T) {
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetIn(strings.NewReader("Paladin\nShield Command Burst II x2"))
	rootCmd.SetArgs([]string{"parse", "--format", "tab"})
	defer func() { rootCmd.SetArgs(nil); outputFormat = formatMultibuy }()

	require.NoError(t, rootCmd.Execute())
	assert.Equal(t, "Paladin\t1\nShield Command Burst II\t2\n", out.String())
}

func TestLookupCmd(t *testing.T) {
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs([]string{"lookup", "Paladin", "21894"})
	defer rootCmd.SetArgs(nil)

	require.NoError(t, rootCmd.Execute())
	assert.Equal(t, "28659\tPaladin\n21894\tRepublic Fleet EMP S\n", out.String())

	rootCmd.SetArgs([]string{"lookup", "Not An Item"})
	assert.ErrorIs(t, rootCmd.Execute(), errUnknownType)
}

func TestParseCmd_interactive(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr error
	}{
		{
			name:  "stops at an empty line",
			input: "Paladin x2\nRifter\n\nDrake",
			want:  "Paladin x2\nRifter x1\n",
		},
		{
			name:    "fails on the first invalid line",
			input:   "Paladin x2\n2x Paladin\nDrake",
			want:    "Paladin x2\n",
			wantErr: eveitems.ErrUnexpectedToken,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			rootCmd.SetOut(&out)
			rootCmd.SetIn(strings.NewReader(tt.input))
			rootCmd.SetArgs([]string{"parse", "--interactive"})
			defer func() { rootCmd.SetArgs(nil); interactive = false }()

			err := rootCmd.Execute()
			if tt.wantErr != nil {
				require.Error(t, err)
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Contains(t, err.Error(), "failed to parse")
				assert.NotErrorIs(t, err, eveitems.ErrParse)
			} else {
				require.NoError(t, err)
			}

			assert.Equal(t, tt.want, out.String())
			assert.NotContains(t, out.String(), "Drake")
		})
	}
}
