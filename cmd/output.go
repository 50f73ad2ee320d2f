package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/itchyny/gojq"
	jsoniter "github.com/json-iterator/go"
	"github.com/olekukonko/tablewriter"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// table is a rendered view of a result for the table output format.
type table struct {
	headers []string
	rows    [][]string
}

// printer writes results in the configured format.
type printer struct {
	w      io.Writer
	format string
	jq     string
}

func newPrinter(w io.Writer) *printer {
	format := "table"
	if cfg != nil && cfg.Output.Format != "" {
		format = cfg.Output.Format
	}
	return &printer{w: w, format: format, jq: jqExpr}
}

// print writes data as JSON when requested (or when a jq expression is set)
// and as a table otherwise. A nil table always falls back to JSON.
func (p *printer) print(data any, t *table) error {
	if p.format == "json" || p.jq != "" || t == nil {
		return p.printJSON(data)
	}
	return p.printTable(t)
}

func (p *printer) printJSON(data any) error {
	value, err := normalize(data)
	if err != nil {
		return err
	}

	if p.jq != "" {
		value, err = applyJQ(value, p.jq)
		if err != nil {
			return err
		}
	}

	out, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode output: %w", err)
	}
	_, err = fmt.Fprintln(p.w, string(out))
	return err
}

func (p *printer) printTable(t *table) error {
	if len(t.rows) == 0 {
		_, err := io.WriteString(p.w, "No results found\n")
		return err
	}

	tw := tablewriter.NewWriter(p.w)
	tw.Header(toAny(t.headers)...)
	for _, row := range t.rows {
		if err := tw.Append(row); err != nil {
			return fmt.Errorf("failed to render row: %w", err)
		}
	}
	return tw.Render()
}

func toAny(values []string) []any {
	out := make([]any, len(values))
	for i, v := range values {
		out[i] = v
	}
	return out
}

// normalize converts data into the plain maps, slices and float64 numbers
// that gojq understands.
func normalize(data any) (any, error) {
	raw, err := json.Marshal(data)
	if err != nil {
		return nil, fmt.Errorf("failed to encode output: %w", err)
	}
	var value any
	if err := json.Unmarshal(raw, &value); err != nil {
		return nil, fmt.Errorf("failed to decode output: %w", err)
	}
	return value, nil
}

// applyJQ runs expression against value. Multiple results are returned as a list.
func applyJQ(value any, expression string) (any, error) {
	expression = strings.ReplaceAll(expression, `\!`, `!`)

	query, err := gojq.Parse(expression)
	if err != nil {
		return nil, fmt.Errorf("invalid jq expression: %w", err)
	}

	var results []any
	iter := query.Run(value)
	for {
		v, ok := iter.Next()
		if !ok {
			break
		}
		if err, ok := v.(error); ok {
			return nil, fmt.Errorf("jq error: %w", err)
		}
		results = append(results, v)
	}

	if len(results) == 1 {
		return results[0], nil
	}
	return results, nil
}
