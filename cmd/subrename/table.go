package main

import (
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"subrename/internal/renamer"
)

// nameWidth caps file name columns; longer names wrap inside the cell.
const nameWidth = 48

type column struct {
	title    string
	align    text.Align
	maxWidth int
	// status marks a column holding renamer.Status or renamer.UndoStatus
	// values, which are colored on terminals.
	status bool
}

var (
	actionColumns = []column{
		{title: "Signature"},
		{title: "Subtitle", maxWidth: nameWidth},
		{title: "Target", maxWidth: nameWidth},
		{title: "Status", status: true},
	}
	runColumns = []column{
		{title: "Run"},
		{title: "Started"},
		{title: "Directory"},
		{title: "Renames", align: text.AlignRight},
		{title: "Reverted", align: text.AlignRight},
		{title: "Skipped", align: text.AlignRight},
	}
	entryColumns = []column{
		{title: "Signature"},
		{title: "Original", maxWidth: nameWidth},
		{title: "Renamed To", maxWidth: nameWidth},
		{title: "Renamed"},
		{title: "Undo"},
	}
	undoColumns = []column{
		{title: "Current", maxWidth: nameWidth},
		{title: "Restored To", maxWidth: nameWidth},
		{title: "Status", status: true},
	}
)

func renderTable(columns []column, rows []table.Row, colorize bool) string {
	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)

	header := make(table.Row, len(columns))
	configs := make([]table.ColumnConfig, len(columns))
	for i, col := range columns {
		header[i] = col.title
		cfg := table.ColumnConfig{
			Number:      i + 1,
			Align:       col.align,
			AlignHeader: text.AlignLeft,
		}
		if col.maxWidth > 0 {
			cfg.WidthMax = col.maxWidth
			cfg.WidthMaxEnforcer = text.WrapSoft
		}
		if col.status && colorize {
			cfg.Transformer = colorStatusCell
		}
		configs[i] = cfg
	}
	tw.AppendHeader(header)
	tw.AppendRows(rows)
	tw.SetColumnConfigs(configs)
	return tw.Render()
}

func colorStatusCell(value any) string {
	s, _ := value.(string)
	color := statusKindColor(statusCellKind(s))
	if color == "" || s == "" {
		return s
	}
	return color + s + ansiReset
}

func statusCellKind(value string) statusKind {
	switch value {
	case string(renamer.StatusRenamed), string(renamer.UndoRestored):
		return statusOK
	case string(renamer.StatusConflict), string(renamer.UndoMissing): // UndoConflict == StatusConflict ("conflict")
		return statusWarn
	default:
		return statusInfo
	}
}
