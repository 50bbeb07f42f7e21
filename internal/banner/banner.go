package banner

import (
	"github.com/charmbracelet/lipgloss"

	"httplatencies/internal/tui/styles"
)

func GetString() string {
	renderer := lipgloss.DefaultRenderer()

	style := renderer.NewStyle().
		Foreground(styles.ColorBanner).
		Bold(true)

	ascii := `
 _     _   _         _       _                  _
| |__ | |_| |_ _ __ | | __ _| |_ ___ _ __   ___(_) ___  ___
| '_ \| __| __| '_ \| |/ _' | __/ _ \ '_ \ / __| |/ _ \/ __|
| | | | |_| |_| |_) | | (_| | ||  __/ | | | (__| |  __/\__ \
|_| |_|\__|\__| .__/|_|\__,_|\__\___|_| |_|\___|_|\___||___/
              |_|                                          `

	return "\n" + style.Render(ascii) + "\n"
}
