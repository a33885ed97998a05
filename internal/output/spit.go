// Copyright © 2026 Steve Taranto staranto@gmail.com
// SPDX-License-Identifier: MIT

package output

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"reflect"
	"sort"
	"strconv"
	"strings"

	"github.com/apex/log"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/tidwall/gjson"
	"github.com/urfave/cli/v3"
	"gopkg.in/yaml.v2"

	"github.com/staranto/heroctl/internal/attrs"
	"github.com/staranto/heroctl/internal/config"
	"github.com/staranto/heroctl/internal/hero"
)

func init() {
	// @total sums the numeric members of an object, so powerstats|@total is
	// the total power score.
	gjson.AddModifier("total", func(jsonStr, _ string) string {
		var sum float64
		gjson.Parse(jsonStr).ForEach(func(_, value gjson.Result) bool {
			if value.Type == gjson.Number {
				sum += value.Num
			}
			return true
		})
		return strconv.FormatFloat(sum, 'f', -1, 64)
	})

	// @unknown substitutes the Unknown placeholder for null, empty and "-".
	gjson.AddModifier("unknown", func(jsonStr, _ string) string {
		res := gjson.Parse(jsonStr)
		if s := strings.TrimSpace(res.String()); res.Type == gjson.Null || s == "" || s == hero.Sentinel {
			return strconv.Quote(hero.Unknown)
		}
		return jsonStr
	})
}

// Tag is a discovered json struct tag, used when emitting the record schema
// (--schema flag).
type Tag struct {
	Name      string
	OmitEmpty bool
}

// NewTag constructs a Tag from a raw json tag value and an optional holder
// prefix used to build dotted attribute names.
func NewTag(h string, s string) Tag {
	parts := strings.Split(s, ",")
	if parts[0] == "" || parts[0] == "-" {
		return Tag{}
	}

	tag := Tag{Name: parts[0]}
	if h != "" {
		tag.Name = fmt.Sprintf("%s.%s", h, parts[0])
	}

	for _, opt := range parts[1:] {
		if opt == "omitempty" {
			tag.OmitEmpty = true
		}
	}

	return tag
}

// Print renders the tag into its display form.
func (t Tag) Print() string {
	return t.Name
}

// DumpExamples renders a table of example command usages.
func DumpExamples(w io.Writer, examples [][2]string) {
	if len(examples) == 0 {
		return
	}

	var rows [][]string
	for _, ex := range examples {
		rows = append(rows, []string{ex[0], ex[1]})
	}

	t := table.New().
		BorderBottom(false).
		BorderTop(false).
		BorderLeft(false).
		BorderRight(false).
		Border(lipgloss.HiddenBorder()).
		Headers("Command", "Description").
		BorderHeader(false).
		Rows(rows...)

	fmt.Fprintln(w, t)
}

// DumpSchema prints a sorted list of the attribute paths available to the
// --attrs flag for the provided type.
func DumpSchema(w io.Writer, typ reflect.Type) {
	tags := DumpSchemaWalker("", typ, 0)
	if len(tags) == 0 {
		log.Debugf("No tags found for type: %s", typ.Name())
		return
	}

	sort.Slice(tags, func(i, j int) bool {
		return tags[i].Name < tags[j].Name
	})

	fmt.Fprintln(w, "Schema for", typ.Name(), "--")
	for _, tag := range tags {
		fmt.Fprintln(w, tag.Print())
	}

	fmt.Fprintln(w, "")
	fmt.Fprintln(w,
		`Record attributes that are available to the --attrs flag. Any gjson path
works, including the @total and @unknown modifiers, e.g. powerstats|@total.`)
}

const maxSchemaDepth = 1

// DumpSchemaWalker recursively walks a struct type discovering json tags.
func DumpSchemaWalker(holder string, typ reflect.Type, depth int) []Tag {
	tags := make([]Tag, 0)

	for i := 0; i < typ.NumField(); i++ {
		field := typ.Field(i)

		tagValue, ok := field.Tag.Lookup("json")
		if !ok {
			continue
		}

		tag := NewTag(holder, tagValue)
		if tag.Name == "" {
			continue
		}

		ft := field.Type
		if ft.Kind() == reflect.Ptr {
			ft = ft.Elem()
		}

		// hero.Text is a struct on the Go side but a plain string on the wire.
		if ft.Kind() == reflect.Struct && ft != reflect.TypeOf(hero.Text{}) && depth < maxSchemaDepth {
			tags = append(tags, DumpSchemaWalker(tag.Name, ft, depth+1)...)
			continue
		}

		log.Debugf("field: %s, type: %s", tag.Name, ft)
		tags = append(tags, tag)
	}

	return tags
}

// SliceDiceSpit projects each record in raw onto attrs, transforms and sorts
// the rows and renders them per the --output flag.
func SliceDiceSpit(raw bytes.Buffer,
	attrs attrs.AttrList,
	cmd *cli.Command,
	w io.Writer) error {

	if w == nil {
		w = os.Stdout
	}

	// If raw, just dump it and go home.
	format := cmd.String("output")
	if format == "raw" {
		_, err := w.Write(raw.Bytes())
		return err
	}

	if err := attrs.SetGlobalTransformSpec(); err != nil {
		return err
	}

	dataset := ProjectDataset(gjson.ParseBytes(raw.Bytes()), attrs)

	// Transform each value in each row.
	for _, row := range dataset {
		for _, attr := range attrs {
			if attr.TransformSpec != "" && attr.Key != "*" {
				row[attr.OutputKey] = attr.Transform(row[attr.OutputKey])
			}
		}
	}

	SortDataset(dataset, cmd.String("sort"))

	return Emit(dataset, attrs, cmd, w)
}

// ProjectDataset extracts one row per element of candidates holding the value
// at each attr's Key under its OutputKey.
func ProjectDataset(candidates gjson.Result, attrs attrs.AttrList) []map[string]interface{} {
	//nolint:prealloc // Don't prealloc because we don't know what len will be.
	var rows []map[string]interface{}

	for _, candidate := range candidates.Array() {
		row := make(map[string]interface{}, len(attrs))
		for _, attr := range attrs {
			if attr.Key == "*" {
				continue
			}
			row[attr.OutputKey] = candidate.Get(attr.Key).Value()
		}
		rows = append(rows, row)
	}

	return rows
}

// Emit writes the dataset as json, yaml or a table.
func Emit(dataset []map[string]interface{}, attrs attrs.AttrList, cmd *cli.Command, w io.Writer) error {
	switch cmd.String("output") {
	case "json":
		// Only included attrs are emitted.
		out := make([]map[string]interface{}, 0, len(dataset))
		for _, row := range dataset {
			out = append(out, included(row, attrs))
		}
		jsonOutput, err := json.Marshal(out)
		if err != nil {
			return fmt.Errorf("encoding json: %w", err)
		}
		_, err = fmt.Fprintln(w, string(jsonOutput))
		return err
	case "yaml":
		out := make([]yaml.MapSlice, 0, len(dataset))
		for _, row := range dataset {
			var ms yaml.MapSlice
			for _, attr := range attrs {
				if attr.Include {
					ms = append(ms, yaml.MapItem{Key: attr.OutputKey, Value: row[attr.OutputKey]})
				}
			}
			out = append(out, ms)
		}
		yamlOutput, err := yaml.Marshal(out)
		if err != nil {
			return fmt.Errorf("encoding yaml: %w", err)
		}
		_, err = w.Write(yamlOutput)
		return err
	default:
		TableWriter(dataset, attrs, cmd, w)
		return nil
	}
}

func included(row map[string]interface{}, attrs attrs.AttrList) map[string]interface{} {
	out := make(map[string]interface{}, len(attrs))
	for _, attr := range attrs {
		if attr.Include {
			out[attr.OutputKey] = row[attr.OutputKey]
		}
	}
	return out
}

// TableWriter renders the result set in a tabular form honoring color,
// titles and padding options.
func TableWriter(
	resultSet []map[string]interface{},
	attrs attrs.AttrList,
	cmd *cli.Command,
	w io.Writer) {

	if len(resultSet) == 0 {
		return
	}

	var (
		headerStyle  = lipgloss.NewStyle().Align(lipgloss.Left)
		cellStyle    = lipgloss.NewStyle().Padding(0, 0).Align(lipgloss.Left)
		evenRowStyle = cellStyle
		oddRowStyle  = cellStyle
	)

	if cmd.Bool("color") {
		headerColor, evenColor, oddColor := getColors("colors")

		headerStyle = headerStyle.Foreground(lipgloss.Color(headerColor))
		evenRowStyle = evenRowStyle.Foreground(lipgloss.Color(evenColor))
		oddRowStyle = oddRowStyle.Foreground(lipgloss.Color(oddColor))
	}

	pad, _ := config.GetInt("padding", 1)
	log.Debugf("padding: %v", pad)

	var rows [][]string
	for _, result := range resultSet {
		row := make([]string, 0, len(result))
		for _, attr := range attrs {
			if !attr.Include {
				continue
			}
			row = append(row, InterfaceToString(result[attr.OutputKey], "-"))
		}
		rows = append(rows, row)
	}

	t := table.New().
		BorderBottom(false).
		BorderTop(false).
		BorderLeft(false).
		BorderRight(false).
		Border(lipgloss.HiddenBorder()).
		StyleFunc(func(row, col int) lipgloss.Style {
			var style lipgloss.Style
			switch {
			case row == table.HeaderRow:
				style = headerStyle
			case row%2 == 0:
				style = evenRowStyle
			default:
				style = oddRowStyle
			}

			if col > 0 {
				style = style.PaddingLeft(pad)
			}

			return style
		}).
		Rows(rows...)

	if cmd.Bool("titles") {
		var headers []string
		for _, attr := range attrs {
			if attr.Include {
				headers = append(headers, attr.OutputKey)
			}
		}

		// https://github.com/charmbracelet/lipgloss/issues/261
		t = t.Headers(headers...).BorderHeader(false)
	}

	fmt.Fprintln(w, t)
}

// getColors returns configured color values for table rendering.
func getColors(key string) (header string, even string, odd string) {
	header, _ = config.GetString(fmt.Sprintf("%s.title", key), "#f6be00")
	even, _ = config.GetString(fmt.Sprintf("%s.even", key), "#ffffff")
	odd, _ = config.GetString(fmt.Sprintf("%s.odd", key), "#00c8f0")
	return
}

// InterfaceToString converts supported primitive or composite values to a
// string. A custom empty value may be provided.
func InterfaceToString(value interface{}, emptyValue ...string) string {
	if len(emptyValue) == 0 {
		emptyValue = []string{""}
	}

	if value == nil || reflect.ValueOf(value).IsZero() {
		return emptyValue[0]
	}

	switch value := value.(type) {
	case string:
		return value
	case int:
		return strconv.Itoa(value)
	case float64:
		// Every number in a hero record is an integer.
		return fmt.Sprintf("%.0f", value)
	case bool:
		return strconv.FormatBool(value)
	default:
		jsonBytes, err := json.Marshal(value)
		if err != nil {
			return fmt.Sprintf("%v", value)
		}
		return string(jsonBytes)
	}
}

// EmitDocument writes v whole, rather than projected onto attrs, as indented
// json (json and raw) or yaml.
func EmitDocument(v any, format string, w io.Writer) error {
	switch format {
	case "json", "raw":
		b, err := json.MarshalIndent(v, "", "  ")
		if err != nil {
			return fmt.Errorf("encoding json: %w", err)
		}
		_, err = fmt.Fprintln(w, string(b))
		return err
	case "yaml":
		b, err := yaml.Marshal(v)
		if err != nil {
			return fmt.Errorf("encoding yaml: %w", err)
		}
		_, err = w.Write(b)
		return err
	default:
		return fmt.Errorf("unsupported document format %q", format)
	}
}
