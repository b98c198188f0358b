// Copyright 2010-2024 Google LLC
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package report renders lot-sizing solutions as text lines, JSON documents and tables.
package report

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/fom-or/lotsizing/lotsizing/lsp/go/lsp"
)

// labelWidth aligns the variant labels in line output.
const labelWidth = 8

// Line returns the one-line summary of a solved variant, e.g.
//
//	ULSP_TVP solution: costs=330, with setups [0, 1, 0, 1, 1, 0, 0]
func Line(label string, sol *lsp.Solution) string {
	setups := make([]string, len(sol.Setups))
	for i, s := range sol.Setups {
		setups[i] = strconv.Itoa(s)
	}
	return fmt.Sprintf("%-*s solution: costs=%s, with setups [%s]",
		labelWidth, label, FormatCost(sol.Objective), strings.Join(setups, ", "))
}

// Failure returns the line printed instead of Line when a variant could not be solved.
func Failure(label string, err error) string {
	return fmt.Sprintf("%-*s failed: %v", labelWidth, label, err)
}

// FormatCost prints v with at most six decimals and no trailing zeros.
func FormatCost(v float64) string {
	r := math.Round(v*1e6) / 1e6
	if r == 0 {
		r = 0 // drops the sign of -0
	}
	return strconv.FormatFloat(r, 'f', -1, 64)
}

// Struct converts a solution to a protobuf Struct with the keys label, status, objective,
// relative_gap, wall_time_seconds, setups, production and inventory.
func Struct(label string, sol *lsp.Solution) *structpb.Struct {
	setups := make([]*structpb.Value, len(sol.Setups))
	for i, s := range sol.Setups {
		setups[i] = structpb.NewNumberValue(float64(s))
	}
	return &structpb.Struct{Fields: map[string]*structpb.Value{
		"label":             structpb.NewStringValue(label),
		"status":            structpb.NewStringValue(sol.Status.String()),
		"objective":         structpb.NewNumberValue(sol.Objective),
		"relative_gap":      structpb.NewNumberValue(sol.RelativeGap),
		"wall_time_seconds": structpb.NewNumberValue(sol.WallTime.Seconds()),
		"setups":            structpb.NewListValue(&structpb.ListValue{Values: setups}),
		"production":        matrix(sol.Production),
		"inventory":         matrix(sol.Inventory),
	}}
}

func matrix(rows [][]float64) *structpb.Value {
	vals := make([]*structpb.Value, len(rows))
	for i, row := range rows {
		cells := make([]*structpb.Value, len(row))
		for j, v := range row {
			cells[j] = structpb.NewNumberValue(v)
		}
		vals[i] = structpb.NewListValue(&structpb.ListValue{Values: cells})
	}
	return structpb.NewListValue(&structpb.ListValue{Values: vals})
}

// JSON renders the Struct of a solution as indented JSON.
func JSON(label string, sol *lsp.Solution) ([]byte, error) {
	b, err := protojson.MarshalOptions{Multiline: true, Indent: "  "}.Marshal(Struct(label, sol))
	if err != nil {
		return nil, fmt.Errorf("report: %s: %w", label, err)
	}
	return b, nil
}

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("63")).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1).Align(lipgloss.Right)
	setupStyle  = cellStyle.Foreground(lipgloss.Color("212"))
	borderStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
)

// Table renders the plan period by period: the setup, then production and end inventory of
// every product.
func Table(label string, sol *lsp.Solution) string {
	headers := []string{"period", "setup"}
	for p := range sol.Production {
		if len(sol.Production) == 1 {
			headers = append(headers, "produce", "stock")
			break
		}
		headers = append(headers, fmt.Sprintf("produce %d", p+1), fmt.Sprintf("stock %d", p+1))
	}

	rows := make([][]string, len(sol.Setups))
	for t, s := range sol.Setups {
		row := []string{strconv.Itoa(t + 1), strconv.Itoa(s)}
		for p := range sol.Production {
			row = append(row, FormatCost(sol.Production[p][t]), FormatCost(sol.Inventory[p][t]))
		}
		rows[t] = row
	}

	tbl := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(borderStyle).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return headerStyle
			case col == 1 && row < len(sol.Setups) && sol.Setups[row] != 0:
				return setupStyle
			default:
				return cellStyle
			}
		})
	return lipgloss.JoinVertical(lipgloss.Left, Line(label, sol), tbl.Render())
}
