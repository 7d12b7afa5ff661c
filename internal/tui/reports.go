package tui

import (
	"fmt"
	"strings"

	"github.com/NimbleMarkets/ntcharts/barchart"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/sadopc/casedesk/internal/report"
	"github.com/sadopc/casedesk/internal/store"
)

type reportMode int

const (
	reportByCase reportMode = iota
	reportByMember
)

var barColors = []lipgloss.Color{"#6C63FF", "#2EC4B6", "#FF6B6B", "#F39C12", "#2ECC71", "#E74C3C", "#9B59B6", "#3498DB"}

// maxBars caps the chart; the table below it lists every row.
const maxBars = 8

type reportsModel struct {
	width  int
	height int

	mode    reportMode
	entries []store.TimeEntry
	cases   []store.Case
	members []store.TeamMember
	rows    []report.Breakdown

	chart barchart.Model
}

func newReportsModel() reportsModel {
	return reportsModel{chart: barchart.New(60, 12)}
}

func (r *reportsModel) setSize(w, h int) {
	r.width = w
	r.height = h
	r.buildChart()
}

func (r *reportsModel) setData(snap store.Snapshot) {
	r.entries = snap.TimeEntries
	r.cases = snap.Cases
	r.members = snap.TeamMembers
	r.buildChart()
}

func (r reportsModel) update(msg tea.Msg) (reportsModel, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok && key.Matches(msg, keys.Mode) {
		if r.mode == reportByCase {
			r.mode = reportByMember
		} else {
			r.mode = reportByCase
		}
		r.buildChart()
	}
	return r, nil
}

func (r *reportsModel) buildChart() {
	if r.mode == reportByMember {
		r.rows = report.HoursByMember(r.entries, r.members)
	} else {
		r.rows = report.HoursByCase(r.entries, r.cases)
	}

	chartWidth := r.width - 8
	if chartWidth < 20 {
		chartWidth = 20
	}
	chartHeight := 12
	if r.height > 30 {
		chartHeight = 16
	}

	r.chart = barchart.New(chartWidth, chartHeight)

	var bars []barchart.BarData
	for i, row := range head(r.rows, maxBars) {
		style := lipgloss.NewStyle().Foreground(barColors[i%len(barColors)])
		bars = append(bars, barchart.BarData{
			Label: truncate(row.Label, max(4, chartWidth/maxBars-1)),
			Values: []barchart.BarValue{{
				Name:  row.Label,
				Value: row.Hours,
				Style: style,
			}},
		})
	}
	if len(bars) == 0 {
		bars = []barchart.BarData{{
			Label:  "",
			Values: []barchart.BarValue{{Name: "", Value: 0, Style: lipgloss.NewStyle().Foreground(colorSubtle)}},
		}}
	}

	r.chart.PushAll(bars)
	r.chart.Draw()
}

func head[T any](items []T, n int) []T {
	if len(items) > n {
		return items[:n]
	}
	return items
}

func (r reportsModel) view() string {
	w := r.width - 4

	caseTab := inactiveTabStyle.Render("By Case")
	memberTab := inactiveTabStyle.Render("By Member")
	if r.mode == reportByCase {
		caseTab = activeTabStyle.Render("By Case")
	} else {
		memberTab = activeTabStyle.Render("By Member")
	}
	header := lipgloss.JoinHorizontal(lipgloss.Bottom,
		titleStyle.Render("Billable Hours"), "  ", caseTab, memberTab,
	)

	return panelStyle.Width(w).Render(
		lipgloss.JoinVertical(lipgloss.Left,
			header, "", r.chart.View(), "", r.renderLegend(), "", r.renderTable(w), "",
			mutedStyle.Render("  m: switch case/member"),
		),
	)
}

func (r reportsModel) renderTable(w int) string {
	if len(r.rows) == 0 {
		return mutedStyle.Render("  No billable time recorded")
	}

	label := "Case"
	if r.mode == reportByMember {
		label = "Member"
	}

	var rows []string
	rows = append(rows, mutedStyle.Render(fmt.Sprintf("  %-36s %10s %14s", label, "Hours", "Revenue")))
	rows = append(rows, mutedStyle.Render("  "+strings.Repeat("─", clamp(w-6, 10, 62))))

	var hours, revenue float64
	for _, row := range r.rows {
		rows = append(rows, fmt.Sprintf("  %-36s %10s %14s",
			truncate(row.Label, 36), formatHours(row.Hours), formatMoney(row.Revenue)))
		hours += row.Hours
		revenue += row.Revenue
	}
	rows = append(rows, highlightStyle.Render(fmt.Sprintf("  %-36s %10s %14s",
		"Total", formatHours(hours), formatMoney(revenue))))
	return strings.Join(rows, "\n")
}

func (r reportsModel) renderLegend() string {
	var items []string
	for i, row := range head(r.rows, maxBars) {
		dot := lipgloss.NewStyle().Foreground(barColors[i%len(barColors)]).Render("●")
		items = append(items, dot+" "+truncate(row.Label, 24))
	}
	if len(items) == 0 {
		return ""
	}
	return "  " + strings.Join(items, "  ")
}
