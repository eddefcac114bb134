// Package cli provides styled terminal output using lipgloss.
package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/kiltahuone/paperclip/internal/model"
)

var (
	// PrimaryColor is the main theme color.
	PrimaryColor = lipgloss.Color("#7AA2F7")
	// SuccessColor indicates successful operations.
	SuccessColor = lipgloss.Color("#9ECE6A")
	// ErrorColor indicates errors or failure messages.
	ErrorColor = lipgloss.Color("#F7768E")
	// SubtleColor indicates less prominent UI elements.
	SubtleColor = lipgloss.Color("#565F89")

	// TitleStyle is used for section titles.
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(PrimaryColor).
			MarginBottom(1)

	// SuccessStyle formats success messages.
	SuccessStyle = lipgloss.NewStyle().
			Foreground(SuccessColor)

	// ErrorStyle formats error messages.
	ErrorStyle = lipgloss.NewStyle().
			Foreground(ErrorColor)

	// SubtleStyle formats less prominent text.
	SubtleStyle = lipgloss.NewStyle().
			Foreground(SubtleColor)

	labelStyle = lipgloss.NewStyle().
			Foreground(SubtleColor).
			Width(13)
)

// RenderContext formats a resolved financial context for terminal display.
func RenderContext(resolved *model.FinancialContext) string {
	var b strings.Builder

	renderField(&b, "Source", string(resolved.ValueSource))
	if resolved.Date != nil {
		renderField(&b, "Date", resolved.Date.Format("2006-01-02"))
	}
	if resolved.TotalAmount != nil {
		currency := model.DefaultCurrency
		if resolved.Currency != nil {
			currency = *resolved.Currency
		}
		renderField(&b, "Amount", fmt.Sprintf("%.2f %s", *resolved.TotalAmount, currency))
	}
	if resolved.Description != nil {
		renderField(&b, "Description", *resolved.Description)
	}
	if resolved.Category != nil {
		renderField(&b, "Category", *resolved.Category)
	}
	if resolved.PurchaserID != nil {
		renderField(&b, "Purchaser", *resolved.PurchaserID)
	}

	for _, item := range resolved.LineItems {
		b.WriteString(fmt.Sprintf("  %s %s\n",
			SubtleStyle.Render("·"),
			fmt.Sprintf("%s ×%.0f  %.2f", item.Name, item.Quantity, item.TotalPrice)))
	}

	return b.String()
}

// RenderRelationship formats one relationship row as seen from focal.
func RenderRelationship(rel *model.Relationship, focal model.EntityRef) string {
	other, _ := rel.Other(focal)
	return fmt.Sprintf("%s  %s %s %s",
		SubtleStyle.Render(rel.ID),
		focal.String(),
		SubtleStyle.Render("↔"),
		other.String())
}

func renderField(b *strings.Builder, label, value string) {
	if value == "" {
		value = SubtleStyle.Render("(none)")
	}
	b.WriteString(labelStyle.Render(label) + " " + value + "\n")
}
