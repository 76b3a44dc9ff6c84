package style

import (
	"image/color"

	"charm.land/lipgloss/v2"
)

// Palette. Starts as the dark theme; SetTheme swaps it.
var (
	Primary   color.Color = lipgloss.Color("#7C3AED")
	Secondary color.Color = lipgloss.Color("#06B6D4")
	Success   color.Color = lipgloss.Color("#22C55E")
	Warning   color.Color = lipgloss.Color("#F59E0B")
	Error     color.Color = lipgloss.Color("#EF4444")
	Muted     color.Color = lipgloss.Color("#6B7280")
	Dim       color.Color = lipgloss.Color("#374151")
	Border    color.Color = lipgloss.Color("#4B5563")

	HeaderBgColor    color.Color = lipgloss.Color("#1F2937")
	MenuBgColor      color.Color = lipgloss.Color("#111827")
	HighlightBgColor color.Color = lipgloss.Color("#312E81")

	GradColorA color.Color = lipgloss.Color("#7C3AED")
	GradColorB color.Color = lipgloss.Color("#06B6D4")
)

// Derived styles, rebuilt by rebuildStyles after every palette change.
var (
	Bold      lipgloss.Style
	Faint     lipgloss.Style
	ErrorText lipgloss.Style
	Hint      lipgloss.Style

	// -------------------------------------------------------------------------
	// Dropdown header
	// -------------------------------------------------------------------------

	DropdownHeader        lipgloss.Style
	DropdownHeaderFocused lipgloss.Style
	DropdownHeaderOpen    lipgloss.Style
	DropdownChevron       lipgloss.Style
	DropdownPlaceholder   lipgloss.Style

	// -------------------------------------------------------------------------
	// Dropdown menu
	// -------------------------------------------------------------------------

	DropdownMenu          lipgloss.Style // frame around the item list
	DropdownItem          lipgloss.Style
	DropdownItemHighlight lipgloss.Style // keyboard preselection
	DropdownItemSelected  lipgloss.Style // committed value
	ScrollbarTrack        lipgloss.Style
	ScrollbarThumb        lipgloss.Style

	// -------------------------------------------------------------------------
	// Lab chrome
	// -------------------------------------------------------------------------

	PanelBorder      lipgloss.Style
	PanelTitle       lipgloss.Style
	SectionBorder    lipgloss.Style
	CellLabel        lipgloss.Style
	InputBorder      lipgloss.Style
	InputPlaceholder lipgloss.Style

	// -------------------------------------------------------------------------
	// Status bar / help
	// -------------------------------------------------------------------------

	StatusBar     lipgloss.Style
	StatusValue   lipgloss.Style
	HelpKey       lipgloss.Style
	HelpDesc      lipgloss.Style
	HelpSeparator lipgloss.Style
)

func init() {
	rebuildStyles()
}

// SetTheme applies a named theme, updating all color vars and rebuilding styles.
func SetTheme(name string) bool {
	t, ok := Themes[name]
	if !ok {
		return false
	}
	CurrentThemeName = name
	Primary = t.Primary
	Secondary = t.Secondary
	Success = t.Success
	Warning = t.Warning
	Error = t.Error
	Muted = t.Muted
	Dim = t.Dim
	Border = t.Border
	HeaderBgColor = t.HeaderBg
	MenuBgColor = t.MenuBg
	HighlightBgColor = t.HighlightBg
	GradColorA = t.GradA
	GradColorB = t.GradB
	rebuildStyles()
	return true
}

// IsDark returns whether the current theme is dark.
func IsDark() bool {
	return CurrentThemeName != "light"
}

func rebuildStyles() {
	Bold = lipgloss.NewStyle().Bold(true)
	Faint = lipgloss.NewStyle().Foreground(Muted)
	ErrorText = lipgloss.NewStyle().Foreground(Error).Bold(true)
	Hint = lipgloss.NewStyle().Foreground(Dim)

	DropdownHeader = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Border).
		Padding(0, 1)
	DropdownHeaderFocused = DropdownHeader.
		BorderForeground(Secondary)
	DropdownHeaderOpen = DropdownHeader.
		BorderForeground(Primary)
	DropdownChevron = lipgloss.NewStyle().Foreground(Muted)
	DropdownPlaceholder = lipgloss.NewStyle().Foreground(Muted).Italic(true)

	DropdownMenu = lipgloss.NewStyle().
		Border(lipgloss.NormalBorder(), false, true, true, true).
		BorderForeground(Primary).
		Background(MenuBgColor)
	DropdownItem = lipgloss.NewStyle().Foreground(Muted).PaddingLeft(1)
	DropdownItemHighlight = lipgloss.NewStyle().
		Foreground(Primary).
		Background(HighlightBgColor).
		Bold(true).
		PaddingLeft(1)
	DropdownItemSelected = lipgloss.NewStyle().Foreground(Success).PaddingLeft(1)
	ScrollbarTrack = lipgloss.NewStyle().Foreground(Dim)
	ScrollbarThumb = lipgloss.NewStyle().Foreground(Muted)

	PanelBorder = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Border).
		Padding(0, 1)
	PanelTitle = lipgloss.NewStyle().Foreground(Primary).Bold(true)
	SectionBorder = lipgloss.NewStyle().Foreground(Border)
	CellLabel = lipgloss.NewStyle().Foreground(Muted)
	InputBorder = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Border)
	InputPlaceholder = lipgloss.NewStyle().Foreground(Dim)

	StatusBar = lipgloss.NewStyle().Foreground(Muted).PaddingLeft(1)
	StatusValue = lipgloss.NewStyle().Foreground(Secondary)
	HelpKey = lipgloss.NewStyle().Foreground(Secondary).Bold(true)
	HelpDesc = lipgloss.NewStyle().Foreground(Muted)
	HelpSeparator = lipgloss.NewStyle().Foreground(Dim)
}
