// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/aclements/go-gg/table"
)

// readCSV reads a CSV file with a header row into a table. A column
// whose non-empty cells all parse as numbers becomes a []float64 with
// NaN for empty cells; any other column is a []string.
func readCSV(r io.Reader) (*table.Table, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true
	rows, err := cr.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("empty CSV input")
	}
	header, rows := rows[0], rows[1:]

	tab := new(table.Builder)
	seen := make(map[string]bool)
	for col, name := range header {
		name = strings.TrimSpace(name)
		if name == "" {
			name = fmt.Sprintf("V%d", col+1)
		}
		if seen[name] {
			return nil, fmt.Errorf("duplicate column %q", name)
		}
		seen[name] = true

		strs := make([]string, len(rows))
		for i, row := range rows {
			if col < len(row) {
				strs[i] = strings.TrimSpace(row[col])
			}
		}
		if nums, ok := parseFloats(strs); ok {
			tab.Add(name, nums)
		} else {
			tab.Add(name, strs)
		}
	}
	return tab.Done(), nil
}

func parseFloats(strs []string) ([]float64, bool) {
	nums := make([]float64, len(strs))
	found := false
	for i, s := range strs {
		if s == "" || s == "NA" {
			nums[i] = math.NaN()
			continue
		}
		x, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return nil, false
		}
		nums[i] = x
		found = true
	}
	return nums, found
}
