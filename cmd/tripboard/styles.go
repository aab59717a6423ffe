package main

import (
	"github.com/charmbracelet/lipgloss"

	"tripboard/internal/model"
)

var (
	colorText  = lipgloss.Color("#cdd6f4")
	colorMuted = lipgloss.Color("#a6adc8")
	colorBlue  = lipgloss.Color("#74c7ec")
	colorGreen = lipgloss.Color("#a6e3a1")
	colorPeach = lipgloss.Color("#fab387")
	colorRed   = lipgloss.Color("#f38ba8")

	titleStyle  = lipgloss.NewStyle().Foreground(colorBlue).Bold(true)
	mutedStyle  = lipgloss.NewStyle().Foreground(colorMuted)
	textStyle   = lipgloss.NewStyle().Foreground(colorText)
	todayStyle  = lipgloss.NewStyle().Foreground(colorGreen).Bold(true)
	passedStyle = mutedStyle.Strikethrough(true)
)

func urgencyStyle(u model.Urgency) lipgloss.Style {
	switch u {
	case model.UrgencyHigh:
		return lipgloss.NewStyle().Foreground(colorRed).Bold(true)
	case model.UrgencyMedium:
		return lipgloss.NewStyle().Foreground(colorPeach)
	default:
		return mutedStyle
	}
}
