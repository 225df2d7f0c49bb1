package status

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	// Colors and styles
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("12"))

	sectionStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("14"))

	keyStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	valueStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("15"))

	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("10"))

	warningStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("11"))

	subtleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))
)

// Render renders the status data to a string
func Render(data *Data) string {
	var b strings.Builder

	b.WriteString(renderHeader(data))
	b.WriteString("\n\n")

	b.WriteString(renderSettings(data))
	b.WriteString("\n\n")

	b.WriteString(sectionStyle.Render("⌨️  Commands:") + "\n")
	b.WriteString(RenderCommands(data.Commands))

	return b.String()
}

func renderHeader(data *Data) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("📦 Version: ") + valueStyle.Render(data.Version) + "\n")

	b.WriteString(titleStyle.Render("📝 Configuration: "))
	if data.ConfigFound {
		b.WriteString(valueStyle.Render(data.ConfigPath) + " " + successStyle.Render("✓"))
	} else {
		b.WriteString(subtleStyle.Render("No configuration file found, using defaults"))
	}
	return b.String()
}

func renderSettings(data *Data) string {
	var b strings.Builder
	b.WriteString(sectionStyle.Render("⚙️  Session:") + "\n")

	logFile := data.LogFile
	if logFile == "" {
		logFile = "(discarded)"
	}
	navigation := "off"
	if data.HistoryNavigation {
		navigation = "Left/Right"
	}

	b.WriteString("   " + keyStyle.Render("Log level: ") + valueStyle.Render(data.LogLevel) + "\n")
	b.WriteString("   " + keyStyle.Render("Log file: ") + subtleStyle.Render(logFile) + "\n")
	b.WriteString("   " + keyStyle.Render("History: ") + valueStyle.Render(fmt.Sprintf("%d entries, navigation %s", data.HistorySize, navigation)) + "\n")
	b.WriteString("   " + keyStyle.Render("Dropdown rows: ") + valueStyle.Render(fmt.Sprintf("%d", data.WindowSize)) + "\n")
	b.WriteString("   " + keyStyle.Render("Spinner interval: ") + valueStyle.Render(data.SpinnerInterval.String()))
	return b.String()
}

// RenderCommands renders the command list, one block per command
func RenderCommands(commands []CommandInfo) string {
	if len(commands) == 0 {
		return "   " + subtleStyle.Render("No commands configured")
	}

	var b strings.Builder
	for _, cmd := range commands {
		b.WriteString(RenderCommand(cmd))
		b.WriteString("\n")
	}
	return strings.TrimSuffix(b.String(), "\n")
}

// RenderCommand renders the usage, description and arguments of cmd
func RenderCommand(cmd CommandInfo) string {
	var b strings.Builder

	b.WriteString("   " + valueStyle.Render(cmd.Usage()))
	if cmd.Builtin {
		b.WriteString(" " + subtleStyle.Render("(built-in)"))
	}
	if cmd.Description != "" {
		b.WriteString("\n      " + subtleStyle.Render(cmd.Description))
	}

	for _, arg := range cmd.Args {
		b.WriteString("\n      " + keyStyle.Render(arg.Name+": "))
		switch arg.Source {
		case "free":
			b.WriteString(subtleStyle.Render("any value"))
		case "exec":
			b.WriteString(valueStyle.Render("$(" + truncateString(arg.Detail, 50) + ")"))
		default:
			b.WriteString(valueStyle.Render(truncateString(arg.Detail, 50)))
		}

		var flags []string
		if arg.Masked {
			flags = append(flags, "masked")
		}
		if arg.ShowAlways {
			flags = append(flags, "always shown")
		}
		if arg.OnAccept {
			flags = append(flags, "rewritten on accept")
		}
		if len(flags) > 0 {
			b.WriteString(" " + warningStyle.Render("["+strings.Join(flags, ", ")+"]"))
		}
	}

	return b.String()
}

func truncateString(s string, maxLen int) string {
	if len([]rune(s)) > maxLen {
		return string([]rune(s)[:maxLen-3]) + "..."
	}
	return s
}
