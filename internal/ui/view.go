package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

func (m Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	contentWidth := m.width - 4
	if contentWidth < 20 {
		contentWidth = m.width
	}

	header := m.renderHeader(contentWidth)
	status := m.renderStatus()

	var filterPanel string
	if m.filtering {
		filterPanel = m.styles.Panel.Width(contentWidth).Render(m.renderFilterForm())
	}

	var errLine string
	if m.errMsg != "" {
		errLine = m.styles.Error.Width(contentWidth).Render(m.errMsg)
	}

	hints := m.styles.KeyHint.Width(contentWidth).Render(m.renderKeyHints())
	footer := m.renderFooter()

	used := lipgloss.Height(header) + lipgloss.Height(status) + lipgloss.Height(hints) + lipgloss.Height(footer) + 2
	if filterPanel != "" {
		used += lipgloss.Height(filterPanel)
	}
	if errLine != "" {
		used += lipgloss.Height(errLine)
	}

	listRows := m.height - used
	if listRows < 3 {
		listRows = 3
	}
	list := m.renderList(contentWidth, listRows)

	sections := []string{header, status}
	if filterPanel != "" {
		sections = append(sections, filterPanel)
	}
	sections = append(sections, list, footer)
	if errLine != "" {
		sections = append(sections, errLine)
	}
	sections = append(sections, hints)

	return m.styles.App.Render(lipgloss.JoinVertical(lipgloss.Left, sections...))
}

func (m Model) renderHeader(width int) string {
	title := "cradio"
	var mode string
	switch m.view {
	case viewFavorites:
		mode = "favorites"
		if m.favLoading {
			mode += " (refreshing...)"
		}
	case viewHistory:
		mode = "history"
	default:
		mode = m.criteriaSummary()
		if m.loading {
			mode += " (loading...)"
		}
	}

	left := m.styles.Header.Render(title)
	right := m.styles.Muted.Render(mode)
	gap := width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		gap = 1
	}
	return left + strings.Repeat(" ", gap) + right
}

func (m Model) criteriaSummary() string {
	var parts []string
	if m.criteria.Name != "" {
		parts = append(parts, "name="+m.criteria.Name)
	}
	if m.criteria.Tags != "" {
		parts = append(parts, "tags="+m.criteria.Tags)
	}
	if m.criteria.CountryCode != "" {
		parts = append(parts, "country="+m.criteria.CountryCode)
	}
	if m.criteria.Language != "" {
		parts = append(parts, "lang="+m.criteria.Language)
	}
	if len(parts) == 0 {
		return "all stations"
	}
	return strings.Join(parts, " ")
}

func (m Model) renderStatus() string {
	if m.playing {
		return m.styles.Status.Render(fmt.Sprintf("♪ %s  [vol %d%%]", m.playingName, m.volume))
	}
	return m.styles.Muted.Render("stopped")
}

func (m Model) renderFilterForm() string {
	lines := make([]string, 0, int(fieldCount))
	for i := filterField(0); i < fieldCount; i++ {
		line := m.filter.inputs[i].View()
		if i == m.filter.focus {
			line = m.styles.ListActive.Render("▌ ") + line
		} else {
			line = "  " + line
		}
		lines = append(lines, line)
	}
	lines = append(lines, m.styles.KeyHint.Render("tab next field · enter search · esc cancel"))
	return strings.Join(lines, "\n")
}

func (m Model) renderList(width, rows int) string {
	if m.view == viewHistory {
		return m.renderHistoryList(width, rows)
	}
	return m.renderStationList(width, rows)
}

func (m Model) renderStationList(width, rows int) string {
	stations := m.page.Stations
	if m.view == viewFavorites {
		stations = m.favStations
	}

	if len(stations) == 0 {
		if m.loading {
			return m.styles.Muted.Render("  fetching stations...")
		}
		if m.view == viewFavorites {
			return m.styles.Muted.Render("  no favorites yet (press space on a station)")
		}
		return m.styles.Muted.Render("  no stations match")
	}

	nameWidth := width * 2 / 5
	if nameWidth < 16 {
		nameWidth = 16
	}
	tagsWidth := width - nameWidth - 22
	if tagsWidth < 8 {
		tagsWidth = 8
	}

	start, end := windowBounds(m.selected, len(stations), rows)

	var b strings.Builder
	header := fmt.Sprintf("  %-*s %-*s %-4s %-8s %s", nameWidth, "Station", tagsWidth, "Tags", "CC", "Lang", "kbps")
	b.WriteString(m.styles.ListHeader.Render(truncate(header, width)))
	b.WriteString("\n")

	for i := start; i < end; i++ {
		station := stations[i]

		marker := " "
		if m.favorites != nil && m.favorites.IsFavorite(station.UUID) {
			marker = m.styles.Favorite.Render("★")
		}
		playing := " "
		if m.playing && station.UUID == m.playingUUID {
			playing = m.styles.Status.Render("♪")
		}

		bitrate := ""
		if station.Bitrate > 0 {
			bitrate = fmt.Sprintf("%d", station.Bitrate)
		}
		row := fmt.Sprintf("%-*s %-*s %-4s %-8s %s",
			nameWidth, truncate(station.Name, nameWidth),
			tagsWidth, truncate(station.Tags, tagsWidth),
			truncate(station.CountryCode, 4),
			truncate(station.Language, 8),
			bitrate,
		)
		row = marker + playing + " " + truncate(row, width-3)

		if i == m.selected {
			b.WriteString(m.styles.ListActive.Render("> " + row))
		} else {
			b.WriteString(m.styles.ListItem.Render("  " + row))
		}
		b.WriteString("\n")
	}

	return strings.TrimRight(b.String(), "\n")
}

func (m Model) renderHistoryList(width, rows int) string {
	if len(m.recent) == 0 {
		return m.styles.Muted.Render("  nothing played yet")
	}

	nameWidth := width - 24
	if nameWidth < 16 {
		nameWidth = 16
	}

	start, end := windowBounds(m.selected, len(m.recent), rows)

	var b strings.Builder
	b.WriteString(m.styles.ListHeader.Render("  Recently played"))
	b.WriteString("\n")
	for i := start; i < end; i++ {
		entry := m.recent[i]
		row := fmt.Sprintf("%-*s %s", nameWidth, truncate(entry.Name, nameWidth), entry.PlayedAt.Format("2006-01-02 15:04"))
		row = truncate(row, width)
		if i == m.selected {
			b.WriteString(m.styles.ListActive.Render("> " + row))
		} else {
			b.WriteString(m.styles.ListItem.Render("  " + row))
		}
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

func (m Model) renderFooter() string {
	if m.view != viewStations {
		return m.styles.Muted.Render(" ")
	}

	page := fmt.Sprintf("page %d", m.page.Index+1)
	if m.page.HasMore {
		page += " · n next"
	}
	if m.page.Index > 0 {
		page += " · p prev"
	}
	return m.styles.Muted.Render(page)
}

func (m Model) renderKeyHints() string {
	if m.filtering {
		return "typing filters · tab field · enter search · esc cancel"
	}
	return "↑/↓ move · enter play · s stop · +/- volume · space favorite · / filter · f favorites · h history · q quit"
}

// windowBounds picks the visible slice so the selection stays on screen.
func windowBounds(selected, length, rows int) (int, int) {
	if rows >= length {
		return 0, length
	}
	start := selected - rows/2
	if start < 0 {
		start = 0
	}
	if start+rows > length {
		start = length - rows
	}
	return start, start + rows
}

func truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= width {
		return s
	}
	if width <= 1 {
		return string(runes[:width])
	}
	return string(runes[:width-1]) + "…"
}
