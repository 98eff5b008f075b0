package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/1broseidon/tilewm/internal/wm"
)

var (
	tableHeaderStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("62")).
				Padding(0, 1)

	tableCellStyle = lipgloss.NewStyle().
			Padding(0, 1)

	tableBorderStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("238"))
)

func newTable(headers ...string) *table.Table {
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(tableBorderStyle).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return tableHeaderStyle
			}
			return tableCellStyle
		}).
		Headers(headers...)
}

func renderScreensTable(screens []wm.ScreenSnapshot) string {
	t := newTable("ID", "NAME", "GEOMETRY", "MAIN", "WORKSPACE")
	for _, s := range screens {
		t.Row(
			s.ID,
			s.Name,
			fmt.Sprintf("%dx%d+%d+%d", s.Frame.Width, s.Frame.Height, s.Frame.X, s.Frame.Y),
			mark(s.IsMain),
			s.FocusedWorkspace,
		)
	}
	return t.Render()
}

func renderWorkspacesTable(workspaces []wm.WorkspaceSnapshot) string {
	t := newTable("NAME", "SCREEN", "LAYOUT", "WINDOWS", "VISIBLE", "FOCUSED")
	for _, ws := range workspaces {
		t.Row(
			ws.Name,
			ws.Screen,
			ws.Layout,
			strconv.Itoa(len(ws.Windows)),
			mark(ws.Visible),
			mark(ws.Focused),
		)
	}
	return t.Render()
}

func renderWindowsTable(windows []wm.WindowSnapshot) string {
	t := newTable("ID", "APP", "TITLE", "WORKSPACE", "STATE", "FOCUSED")
	for _, w := range windows {
		t.Row(
			strconv.FormatUint(w.ID, 10),
			w.AppID,
			truncate(w.Title, 40),
			w.Workspace,
			windowState(w),
			mark(w.Focused),
		)
	}
	return t.Render()
}

func windowState(w wm.WindowSnapshot) string {
	var states []string
	if w.Floating {
		states = append(states, "floating")
	}
	if w.Hidden {
		states = append(states, "hidden")
	}
	if w.Minimized {
		states = append(states, "minimized")
	}
	if w.Fullscreen {
		states = append(states, "fullscreen")
	}
	if len(states) == 0 {
		return "tiled"
	}
	return strings.Join(states, ",")
}

func mark(b bool) string {
	if b {
		return "*"
	}
	return ""
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-1] + "…"
}
