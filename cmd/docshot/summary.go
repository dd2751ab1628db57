package main

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/vapvarun/docshot/pkg/capture"
)

var (
	mintGreen  = lipgloss.Color("#A8E6CF")
	salmonPink = lipgloss.Color("#FFB3BA")
	mutedGray  = lipgloss.Color("#6B7280")

	headerStyle = lipgloss.NewStyle().
			Foreground(mintGreen).
			Bold(true)

	successStyle = lipgloss.NewStyle().
			Foreground(mintGreen)

	errorStyle = lipgloss.NewStyle().
			Foreground(salmonPink)

	skippedStyle = lipgloss.NewStyle().
			Foreground(mutedGray)

	pathStyle = lipgloss.NewStyle().
			Foreground(mutedGray).
			Italic(true)
)

// printSummary reports the run outcome per capture.
func printSummary(plan *capture.Plan, results *capture.Results) {
	fmt.Println()
	fmt.Println(headerStyle.Render("Capture summary"))

	for _, name := range results.Success() {
		fmt.Println(successStyle.Render("  ✓ " + name))
	}
	for _, name := range results.Skipped() {
		fmt.Println(skippedStyle.Render("  - " + name + " (skipped)"))
	}
	for _, name := range results.Failed() {
		fmt.Println(errorStyle.Render("  ✗ " + name))
	}

	fmt.Printf("\n%d captured, %d skipped, %d failed\n",
		len(results.Success()), len(results.Skipped()), len(results.Failed()))
	fmt.Printf("Screenshots: %s\n", pathStyle.Render(plan.Output.ImagesDir))
}
