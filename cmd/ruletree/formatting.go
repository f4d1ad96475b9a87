package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"

	"github.com/loaderkit/ruletree/pkg/rules"
)

var stdoutIsTerminal = isatty.IsTerminal(os.Stdout.Fd())

func errorStyle() lipgloss.Style {
	if !stdoutIsTerminal {
		return lipgloss.NewStyle()
	}
	return lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
}

func mutedStyle() lipgloss.Style {
	if !stdoutIsTerminal {
		return lipgloss.NewStyle()
	}
	return lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
}

func phaseStyle() lipgloss.Style {
	if !stdoutIsTerminal {
		return lipgloss.NewStyle()
	}
	return lipgloss.NewStyle().Foreground(lipgloss.Color("12")).Bold(true)
}

// describeRule renders one rule as a single line: phase, processors, and a
// short summary of its resource spec and children
func describeRule(rule *rules.Rule) string {
	var parts []string

	phase := rule.Phase
	if phase == "" {
		phase = rules.PhaseNormal
	}
	parts = append(parts, phaseStyle().Render(string(phase)))

	switch {
	case rule.Processor != "":
		parts = append(parts, rule.Processor)
	case len(rule.Processors) > 0:
		parts = append(parts, strings.Join(rule.Processors, ", "))
	default:
		parts = append(parts, mutedStyle().Render("(no processor)"))
	}

	if summary := describeResource(rule.Resource); summary != "" {
		parts = append(parts, summary)
	}

	if len(rule.Sequence) > 0 {
		parts = append(parts, mutedStyle().Render(fmt.Sprintf("sequence(%d)", len(rule.Sequence))))
	}
	if len(rule.OneOf) > 0 {
		parts = append(parts, mutedStyle().Render(fmt.Sprintf("one_of(%d)", len(rule.OneOf))))
	}

	return strings.Join(parts, "  ")
}

func describeResource(spec *rules.ResourceSpec) string {
	if spec == nil {
		return ""
	}

	var constraints []string
	if len(spec.Extensions) > 0 {
		constraints = append(constraints, strings.Join(spec.Extensions, "|"))
	}
	if spec.Test != "" {
		constraints = append(constraints, spec.Test)
	}
	if spec.PathPattern != "" {
		constraints = append(constraints, spec.PathPattern)
	}
	if len(spec.Include) > 0 {
		constraints = append(constraints, "in:"+strings.Join(spec.Include, ","))
	}
	if len(spec.Exclude) > 0 {
		constraints = append(constraints, "not:"+strings.Join(spec.Exclude, ","))
	}
	if len(constraints) == 0 {
		return "[*]"
	}
	return "[" + strings.Join(constraints, " ") + "]"
}
