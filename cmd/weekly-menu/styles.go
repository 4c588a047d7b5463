package main

import "github.com/charmbracelet/lipgloss"

const (
	colorPrimary = lipgloss.Color("#7C3AED")
	colorMuted   = lipgloss.Color("#6B7280")
	colorSuccess = lipgloss.Color("#10B981")
	colorError   = lipgloss.Color("#EF4444")
	colorSpecial = lipgloss.Color("#F59E0B")
)

var (
	TitleStyle   = lipgloss.NewStyle().Bold(true).Foreground(colorPrimary)
	MutedStyle   = lipgloss.NewStyle().Foreground(colorMuted)
	SuccessStyle = lipgloss.NewStyle().Foreground(colorSuccess)
	ErrorStyle   = lipgloss.NewStyle().Bold(true).Foreground(colorError)
	SpecialStyle = lipgloss.NewStyle().Foreground(colorSpecial)
)
