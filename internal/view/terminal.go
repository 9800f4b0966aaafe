package view

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/weatherwidget/backend/internal/domain"
)

var (
	colorAccent = lipgloss.Color("#2f6fde")
	colorMuted  = lipgloss.Color("#7a8899")
	colorError  = lipgloss.Color("#e5534b")

	cardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorAccent).
			Padding(1, 2)

	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorAccent)

	tempStyle = lipgloss.NewStyle().Bold(true)

	mutedStyle = lipgloss.NewStyle().Foreground(colorMuted)

	errorStyle = lipgloss.NewStyle().
			Foreground(colorError).
			Bold(true)

	dayStyle = lipgloss.NewStyle().
			Width(10).
			Align(lipgloss.Center)
)

// RenderTerminal renders state as a bordered card. Icons are shown as their
// image URL since terminals cannot display them.
func RenderTerminal(state domain.SessionState, iconTemplate string) string {
	var b strings.Builder

	switch {
	case state.Loading:
		b.WriteString(mutedStyle.Render("Loading…"))
	case state.Error != "":
		b.WriteString(errorStyle.Render(state.Error))
	case !state.HasResult():
		b.WriteString(mutedStyle.Render("Search for a city to see the weather."))
	default:
		writeCurrent(&b, state.Current, iconTemplate)
		if len(state.Forecast) > 0 {
			b.WriteString("\n\n")
			b.WriteString(forecastRow(state.Forecast))
		}
	}

	return cardStyle.Render(b.String())
}

func writeCurrent(b *strings.Builder, c *domain.CurrentConditions, iconTemplate string) {
	title := c.City
	if c.Country != "" {
		title += ", " + c.Country
	}
	b.WriteString(titleStyle.Render(title))
	b.WriteString("\n")
	b.WriteString(tempStyle.Render(fmt.Sprintf("%d°C", c.Temperature)))
	b.WriteString("  " + c.Condition + "\n")
	b.WriteString(mutedStyle.Render(fmt.Sprintf("Humidity %d%%  Wind %.1f m/s", c.Humidity, c.WindSpeed)))
	b.WriteString("\n")
	b.WriteString(mutedStyle.Render(domain.IconURL(iconTemplate, c.Icon)))
}

func forecastRow(days []domain.ForecastDay) string {
	cells := make([]string, 0, len(days))
	for _, d := range days {
		cells = append(cells, dayStyle.Render(fmt.Sprintf("%s\n%d°C\n%s", d.Weekday, d.Temperature, d.Icon)))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, cells...)
}
