package main

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

var (
	styleStep = lipgloss.NewStyle().Bold(true)
	styleOK   = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	styleWarn = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
	styleDim  = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)

func stepf(format string, args ...any) {
	fmt.Println(styleStep.Render(fmt.Sprintf(format, args...)))
}

func okf(format string, args ...any) {
	fmt.Println(styleOK.Render(fmt.Sprintf(format, args...)))
}

func warnf(format string, args ...any) {
	fmt.Println(styleWarn.Render(fmt.Sprintf(format, args...)))
}

func dimf(format string, args ...any) {
	fmt.Println(styleDim.Render("   " + fmt.Sprintf(format, args...)))
}
