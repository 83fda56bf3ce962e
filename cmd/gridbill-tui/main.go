package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/gridbill/gridbill/internal/config"
	"github.com/gridbill/gridbill/internal/domain"
	"github.com/gridbill/gridbill/internal/tui"
)

func main() {
	var input *domain.ProjectionInput
	if len(os.Args) > 1 {
		parser := config.NewInputParser()
		loaded, err := parser.LoadFromFile(os.Args[1])
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading %s: %v\n", os.Args[1], err)
			os.Exit(1)
		}
		input = loaded
	}

	model := tui.NewModel(input)
	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithMouseCellMotion())
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error running program: %v\n", err)
		os.Exit(1)
	}
}
