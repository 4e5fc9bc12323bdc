package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/samber/lo"

	"github.com/hedeqiang/dynabi/abitype"
	"github.com/hedeqiang/dynabi/decoder"
	"github.com/hedeqiang/dynabi/descriptor"
	"github.com/hedeqiang/dynabi/value"
)

var (
	headerStyle = color.New(color.Bold, color.FgHiWhite)
	typeStyle   = color.New(color.FgCyan)
	indexedMark = color.New(color.FgYellow)
)

func newTable(w io.Writer) table.Writer {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	t.SetColumnConfigs([]table.ColumnConfig{
		{Number: 1, Align: text.AlignRight},
	})
	return t
}

// renderValues prints vals against the params they were decoded for.
func renderValues(w io.Writer, title string, params []descriptor.Param, vals []value.Value) {
	if len(vals) == 0 {
		fmt.Fprintf(w, "%s: none\n", title)
		return
	}
	fmt.Fprintln(w, headerStyle.Sprint(title))

	t := newTable(w)
	t.AppendHeader(table.Row{"#", "Name", "Type", "Value"})
	for i, val := range vals {
		name := ""
		if i < len(params) {
			name = params[i].Name
		}
		t.AppendRow(table.Row{i, name, typeStyle.Sprint(val.TypeName()), display(val)})
	}
	t.Render()
}

// renderNamed prints log parameters, marking the ones read from topics.
func renderNamed(w io.Writer, ev *descriptor.Event, params []value.Named) {
	fmt.Fprintln(w, headerStyle.Sprint(ev.Canonical()))

	indexed := lo.SliceToMap(ev.Inputs, func(p descriptor.Param) (string, bool) {
		return p.Name, p.Indexed
	})

	t := newTable(w)
	t.AppendHeader(table.Row{"#", "Name", "Type", "Indexed", "Value"})
	for i, p := range params {
		mark := ""
		if indexed[p.Name] {
			mark = indexedMark.Sprint("yes")
		}
		t.AppendRow(table.Row{i, p.Name, typeStyle.Sprint(p.Value.TypeName()), mark, display(p.Value)})
	}
	t.Render()
}

// renderEvents prints one row per decoded log.
func renderEvents(w io.Writer, events []*decoder.DecodedEvent) {
	if len(events) == 0 {
		fmt.Fprintln(w, "No events decoded")
		return
	}

	t := newTable(w)
	t.AppendHeader(table.Row{"Block", "Tx", "Log", "Address", "Event", "Params"})
	t.SetColumnConfigs([]table.ColumnConfig{
		{Number: 1, Align: text.AlignRight},
		{Number: 3, Align: text.AlignRight},
		{Number: 6, WidthMax: 80},
	})
	for _, e := range events {
		params := lo.Map(e.Params, func(p value.Named, _ int) string {
			return p.Name + "=" + display(p.Value)
		})
		t.AppendRow(table.Row{
			strconv.FormatUint(e.Raw.BlockNumber, 10),
			shortHash(e.Raw.TxHash.Hex()),
			e.Raw.LogIndex,
			e.Raw.Address.Hex(),
			e.Name,
			strings.Join(params, "\n"),
		})
	}
	t.AppendFooter(table.Row{"", "", "", "", "Total", len(events)})
	t.Render()
}

// writeJSONLines prints one JSON document per decoded log.
func writeJSONLines(w io.Writer, events []*decoder.DecodedEvent) error {
	enc := json.NewEncoder(w)
	for _, e := range events {
		if err := enc.Encode(e); err != nil {
			return err
		}
	}
	return nil
}

// display renders integers in decimal and byte values as 0x hex.
func display(v value.Value) string {
	switch v.Kind() {
	case abitype.KindInt, abitype.KindUint:
		return v.AsBig().String()
	case abitype.KindAddress:
		return v.AsAddress().Hex()
	case abitype.KindFixedBytes:
		return hexutil.Encode(v.FixedBytesPayload())
	case abitype.KindFunction:
		f := v.AsFunction()
		return hexutil.Encode(f[:])
	case abitype.KindBytes:
		return hexutil.Encode(v.AsBytes())
	case abitype.KindArray, abitype.KindFixedArray:
		return "[" + strings.Join(lo.Map(v.Elems(), func(e value.Value, _ int) string { return display(e) }), ", ") + "]"
	case abitype.KindTuple:
		return "(" + strings.Join(lo.Map(v.Elems(), func(e value.Value, _ int) string { return display(e) }), ", ") + ")"
	}
	return v.String()
}

func shortHash(h string) string {
	if len(h) <= 14 {
		return h
	}
	return h[:8] + "…" + h[len(h)-6:]
}
