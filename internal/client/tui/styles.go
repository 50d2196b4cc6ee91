package tui

import "github.com/charmbracelet/lipgloss"

var (
	// Paleta institucional
	Primary   = lipgloss.Color("#39A900") // verde
	Secondary = lipgloss.Color("#00AFAF")
	Accent    = lipgloss.Color("#FFAD00")
	ErrorCol  = lipgloss.Color("#FF3131")
	Text      = lipgloss.Color("#FFFFFF")
	Muted     = lipgloss.Color("#888888")

	HeaderStyle = lipgloss.NewStyle().
			Foreground(Primary).
			Bold(true).
			Padding(1, 1).
			MarginLeft(1)

	SubHeaderStyle = lipgloss.NewStyle().
			Foreground(Muted).
			PaddingLeft(2).
			MarginBottom(1)

	CardStyle = lipgloss.NewStyle().
			Padding(1, 2).
			Border(lipgloss.NormalBorder(), false, false, false, true).
			BorderForeground(Muted).
			MarginLeft(2)

	DialogStyle = lipgloss.NewStyle().
			Padding(1, 2).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Accent).
			MarginLeft(2).
			Width(64)

	LabelStyle = lipgloss.NewStyle().
			Foreground(Muted).
			Width(18)

	ValueStyle = lipgloss.NewStyle().
			Foreground(Text)

	InputStyle = lipgloss.NewStyle().
			Foreground(Accent).
			Bold(true)

	FocusedLabelStyle = lipgloss.NewStyle().
				Foreground(Accent).
				Bold(true).
				Width(18)

	MutedStyle = lipgloss.NewStyle().
			Foreground(Muted)

	ErrorTextStyle = lipgloss.NewStyle().
			Foreground(ErrorCol).
			PaddingLeft(2)

	SuccessTextStyle = lipgloss.NewStyle().
				Foreground(Primary).
				PaddingLeft(2)

	FooterStyle = lipgloss.NewStyle().
			Foreground(Muted).
			MarginTop(1).
			PaddingLeft(4).
			Faint(true)

	SectionTitleStyle = lipgloss.NewStyle().
				Foreground(Secondary).
				Bold(true).
				MarginBottom(1)
)
