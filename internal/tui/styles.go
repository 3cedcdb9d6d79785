package tui

import (
	"github.com/charmbracelet/lipgloss"

	"taskboard/internal/board"
	"taskboard/internal/domain"
)

const (
	colorPrimary = "#7C3AED"
	colorSuccess = "#10B981"
	colorWarning = "#F59E0B"
	colorError   = "#EF4444"
	colorMuted   = "#6B7280"
	colorText    = "#E5E7EB"
	colorBorder  = "#374151"
)

var (
	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(colorPrimary)).
			Bold(true)

	mutedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(colorMuted))

	selectedStyle = lipgloss.NewStyle().
			Bold(true)

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(colorMuted)).
			Width(13)

	dialogStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(colorPrimary)).
			Padding(1, 2)

	editStyle = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder(), false, false, false, true).
			BorderForeground(lipgloss.Color(colorBorder)).
			PaddingLeft(1)

	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(colorSuccess))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color(colorError)).Bold(true)
)

// categoryStyles colours a row by its due-date category.
var categoryStyles = map[domain.Category]lipgloss.Style{
	domain.CategoryCompleted: lipgloss.NewStyle().Foreground(lipgloss.Color(colorSuccess)).Strikethrough(true),
	domain.CategoryDueToday:  lipgloss.NewStyle().Foreground(lipgloss.Color(colorWarning)),
	domain.CategoryOverdue:   lipgloss.NewStyle().Foreground(lipgloss.Color(colorError)),
	domain.CategoryDefault:   lipgloss.NewStyle().Foreground(lipgloss.Color(colorText)),
}

func noticeStyle(k board.Kind) lipgloss.Style {
	if k == board.Failure {
		return errorStyle
	}
	return successStyle
}
