// Package render turns result envelopes into tables and re-keyed raw
// documents.
package render

import (
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"ucs/internal/envelope"
)

// NoDataMessage replaces the table for a successful envelope without rows.
const NoDataMessage = "No data returned."

// Options controls table rendering.
type Options struct {
	// Width is the total row width. Zero detects the terminal width.
	Width int
	// Strict turns a requested key missing from the schema into a
	// *MissingColumnError instead of skipping it.
	Strict bool
	// Decoder replaces enum codes; nil uses envelope.DefaultDecoder.
	Decoder envelope.Decoder
}

// Table renders env using the logical keys in columns, in that order. A nil
// columns slice renders the full schema. Error envelopes always render their
// error rows in schema order.
func Table(env *envelope.Envelope, columns []string, opts Options) (string, error) {
	if len(env.Schema) == 0 {
		return "", &MissingSchemaError{}
	}
	if !env.Failed() && len(env.Rows) == 0 {
		return NoDataMessage, nil
	}

	if env.Failed() {
		columns = nil
	}
	indexes, err := resolveColumns(env, columns, opts.Strict)
	if err != nil {
		return "", err
	}

	decoder := opts.Decoder
	if decoder == nil {
		decoder = envelope.DefaultDecoder
	}

	header := make([]string, len(indexes))
	for i, idx := range indexes {
		header[i] = env.Schema[idx].DisplayHeading()
	}

	rows := make([][]string, 0, len(env.Rows))
	for _, row := range env.Rows {
		out := make([]string, len(indexes))
		for i, idx := range indexes {
			cell := row[idx]
			value := cell.String()
			if cell.IsString() {
				value = decoder.Decode(env.Schema[idx].Key, value)
			}
			out[i] = value
		}
		rows = append(rows, out)
	}

	return Rows(header, rows, ResolveWidth(opts.Width)), nil
}

// Rows renders a bordered table of pre-formatted cells, wrapping columns so
// that every line fits into width.
func Rows(header []string, rows [][]string, width int) string {
	t := newTableWriter()

	headerRow := make(table.Row, len(header))
	natural := make([]int, len(header))
	for i, h := range header {
		headerRow[i] = h
		natural[i] = cellWidth(h)
	}
	t.AppendHeader(headerRow)

	for _, row := range rows {
		r := make(table.Row, len(header))
		for i := range header {
			if i < len(row) {
				r[i] = row[i]
				if w := cellWidth(row[i]); w > natural[i] {
					natural[i] = w
				}
			} else {
				r[i] = ""
			}
		}
		t.AppendRow(r)
	}

	if widths := fitColumns(natural, width); widths != nil {
		configs := make([]table.ColumnConfig, len(widths))
		for i, w := range widths {
			configs[i] = table.ColumnConfig{
				Number:           i + 1,
				WidthMax:         w,
				WidthMaxEnforcer: text.WrapSoft,
			}
		}
		t.SetColumnConfigs(configs)
	}

	return t.Render()
}

func newTableWriter() table.Writer {
	t := table.NewWriter()
	t.SetStyle(table.StyleDefault)
	t.Style().Format.Header = text.FormatDefault
	return t
}

func cellWidth(s string) int {
	widest := 0
	for _, line := range strings.Split(s, "\n") {
		if w := text.RuneWidthWithoutEscSequences(line); w > widest {
			widest = w
		}
	}
	return widest
}

func resolveColumns(env *envelope.Envelope, columns []string, strict bool) ([]int, error) {
	if columns == nil {
		indexes := make([]int, len(env.Schema))
		for i := range indexes {
			indexes[i] = i
		}
		return indexes, nil
	}

	indexes := make([]int, 0, len(columns))
	for _, key := range columns {
		idx := env.Index(key)
		if idx < 0 {
			if strict {
				return nil, &MissingColumnError{Key: key}
			}
			continue
		}
		indexes = append(indexes, idx)
	}
	if len(indexes) == 0 {
		return resolveColumns(env, nil, strict)
	}
	return indexes, nil
}
