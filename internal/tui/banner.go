package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var bannerLines = []string{
	"                     $$a.",
	"                      `$$$",
	" .a&$$$&a, a$$a..a$$a. `$$bd$$$&a,    .a&$\"\"$&a     .a$$a..a$$a.",
	"d#7^' `^^' `Q$$bd$$$^   1$#7^' `^Q$, d#7@Qbd@'' d$   Q$$$$$$$$P",
	"Y$b,. .,,.    Q$$$$'   .$$$b.. .,d7' Q$&a,..,a&$P'  .d$$$PQ$$$b",
	" `@Q$$$P@'    d$$$'    `^@Q$$$$$@\"'   `^@Q$$$P@^'   @Q$P@  @Q$P@",
	"              @$$P",
}

const bannerTitle = "                      C Y B E X   I N S T A L L E R"

var (
	bannerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#cba6f7"))

	bannerTitleStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("#f5c2e7"))
)

func renderBanner() string {
	art := bannerStyle.Render(strings.Join(bannerLines, "\n"))
	return art + "\n\n" + bannerTitleStyle.Render(bannerTitle)
}
