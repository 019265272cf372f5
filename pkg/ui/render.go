package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/vctt94/pokerlut/pkg/lookup"
	"github.com/vctt94/pokerlut/pkg/poker"
)

// FormatCard creates a visual representation of a playing card.
func FormatCard(card poker.Card) string {
	value := card.GetValue().String()
	if value == "T" {
		value = "10"
	}
	return value + card.GetSuit().Symbol()
}

// RenderCard draws one card, red suits in red.
func RenderCard(card poker.Card) string {
	if card.GetSuit().IsRed() {
		return RedCardStyle.Render(FormatCard(card))
	}
	return CardStyle.Render(FormatCard(card))
}

// RenderCards draws cards side by side.
func RenderCards(cards []poker.Card) string {
	if len(cards) == 0 {
		return HelpStyle.Render("No cards")
	}
	rendered := make([]string, len(cards))
	for i, c := range cards {
		rendered[i] = RenderCard(c)
	}
	return lipgloss.JoinHorizontal(lipgloss.Center, rendered...)
}

// RenderHandValue draws a hand's category and tie-break values.
func RenderHandValue(v poker.HandValue) string {
	return HandValueStyle.Render(fmt.Sprintf("🏆 %s", v))
}

// RenderEvaluation draws a hand followed by its value.
func RenderEvaluation(cards []poker.Card, v poker.HandValue) string {
	return lipgloss.JoinVertical(lipgloss.Left, RenderCards(cards), RenderHandValue(v))
}

// RenderComparison draws two evaluated hands with the stronger one
// highlighted. cmp is the result of comparing a against b.
func RenderComparison(a, b []poker.Card, va, vb poker.HandValue, cmp int) string {
	left := RenderEvaluation(a, va)
	right := RenderEvaluation(b, vb)

	var verdict string
	switch {
	case cmp > 0:
		left, right = WinnerStyle.Render(left), LoserStyle.Render(right)
		verdict = "First hand wins"
	case cmp < 0:
		left, right = LoserStyle.Render(left), WinnerStyle.Render(right)
		verdict = "Second hand wins"
	default:
		left, right = LoserStyle.Render(left), LoserStyle.Render(right)
		verdict = "Split pot"
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.JoinHorizontal(lipgloss.Top, left, " vs ", right),
		TitleStyle.Render(verdict),
	)
}

// RenderBuildStats draws the summary of a table build.
func RenderBuildStats(stats lookup.BuildStats) string {
	var rows []string
	row := func(label, value string) {
		rows = append(rows, statLabelStyle.Render(label)+statValueStyle.Render(value))
	}

	row("Entries", fmt.Sprintf("%d", stats.Entries))
	row("Memory", fmt.Sprintf("%d MiB", stats.Bytes>>20))
	row("Workers", fmt.Sprintf("%d", stats.Workers))
	row("Elapsed", stats.Elapsed.Round(time.Millisecond).String())
	rows = append(rows, "")
	for r := poker.StraightFlush; ; r-- {
		row(r.String(), fmt.Sprintf("%d", stats.Category[r]))
		if r == poker.HighCard {
			break
		}
	}

	return StatsStyle.Render(strings.Join(rows, "\n"))
}
