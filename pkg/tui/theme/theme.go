package theme

import "github.com/charmbracelet/lipgloss/v2"

// Theme centralizes Lip Gloss styles for the Bubble Tea UI.
type Theme struct {
	Header HeaderTheme
	Card   CardTheme
	Footer FooterTheme
	Modal  ModalTheme
}

// HeaderTheme styles the title line and the filter bar.
type HeaderTheme struct {
	Title       lipgloss.Style
	User        lipgloss.Style
	Chip        lipgloss.Style
	ActiveChip  lipgloss.Style
	Clear       lipgloss.Style
	SearchLabel lipgloss.Style
}

// CardTheme styles one entry in the list.
type CardTheme struct {
	Title         lipgloss.Style
	SelectedTitle lipgloss.Style
	Marker        lipgloss.Style
	Date          lipgloss.Style
	Excerpt       lipgloss.Style
	Meta          lipgloss.Style
	Empty         lipgloss.Style
}

// FooterTheme groups styles used by the bottom status bar.
type FooterTheme struct {
	Help   lipgloss.Style
	Status lipgloss.Style
	Error  lipgloss.Style
}

// ModalTheme styles centered modal overlays (delete confirmation, help).
type ModalTheme struct {
	Frame lipgloss.Style
	Title lipgloss.Style
	Body  lipgloss.Style
}

// Default returns the built-in theme used across the UI.
func Default() Theme {
	chip := lipgloss.NewStyle().
		Foreground(lipgloss.Color("244")).
		Padding(0, 1)

	return Theme{
		Header: HeaderTheme{
			Title:       lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212")),
			User:        lipgloss.NewStyle().Foreground(lipgloss.Color("244")),
			Chip:        chip,
			ActiveChip:  chip.Foreground(lipgloss.Color("230")).Background(lipgloss.Color("62")),
			Clear:       lipgloss.NewStyle().Foreground(lipgloss.Color("203")).Bold(true),
			SearchLabel: lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
		},
		Card: CardTheme{
			Title:         lipgloss.NewStyle().Bold(true),
			SelectedTitle: lipgloss.NewStyle().Bold(true).Reverse(true),
			Marker:        lipgloss.NewStyle().Foreground(lipgloss.Color("212")),
			Date:          lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
			Excerpt:       lipgloss.NewStyle().Foreground(lipgloss.Color("250")),
			Meta:          lipgloss.NewStyle().Foreground(lipgloss.Color("244")),
			Empty:         lipgloss.NewStyle().Italic(true).Foreground(lipgloss.Color("245")),
		},
		Footer: FooterTheme{
			Help:   lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
			Status: lipgloss.NewStyle().Foreground(lipgloss.Color("244")),
			Error:  lipgloss.NewStyle().Foreground(lipgloss.Color("203")),
		},
		Modal: ModalTheme{
			Frame: lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				Padding(1, 2),
			Title: lipgloss.NewStyle().Bold(true),
			Body:  lipgloss.NewStyle(),
		},
	}
}
