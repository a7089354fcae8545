package main

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
)

const barWidth = 20

// progressBar renders p (0-100) as a fixed-width bar.
func progressBar(p int) string {
	if p < 0 {
		p = 0
	}
	if p > 100 {
		p = 100
	}
	filled := p * barWidth / 100
	return "[" + strings.Repeat("#", filled) + strings.Repeat(".", barWidth-filled) + "]"
}

// colorPercent formats p with a color reflecting how far along it is.
func colorPercent(p int) string {
	s := fmt.Sprintf("%3d%%", p)
	switch {
	case p >= 80:
		return color.New(color.FgGreen).Sprint(s)
	case p >= 50:
		return color.New(color.FgYellow).Sprint(s)
	default:
		return color.New(color.FgRed).Sprint(s)
	}
}

// colorIssues highlights a non-zero issue count.
func colorIssues(n int) string {
	if n == 0 {
		return "0"
	}
	return color.New(color.FgRed).Sprint(n)
}

func warnText(s string) string {
	return color.New(color.FgYellow).Sprint(s)
}

func okText(s string) string {
	return color.New(color.FgGreen).Sprint(s)
}

func errText(s string) string {
	return color.New(color.FgRed).Sprint(s)
}

// truncate shortens s to at most n runes.
func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	if n <= 1 {
		return string(r[:n])
	}
	return string(r[:n-1]) + "…"
}
