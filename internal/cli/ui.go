package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	jsoniter "github.com/json-iterator/go"

	chatService "github.com/moosemarche/moosebot/backend/internal/service/chat"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#00BFA5")).
			Padding(0, 1).
			MarginBottom(1)

	botStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#E5E7EB")).
			Padding(0, 1)

	userStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#00BFA5")).
			Bold(true)

	hintStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#6B7280")).
			Italic(true)

	toastStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FFFFFF")).
			Background(lipgloss.Color("#10B981")).
			Padding(0, 1)

	debugStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.NormalBorder()).
			BorderForeground(lipgloss.Color("#F59E0B")).
			Padding(0, 1)

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#EF4444")).
			Bold(true)
)

type ui struct {
	out io.Writer
}

func (u ui) banner() {
	fmt.Fprintln(u.out, titleStyle.Render("🫎 Moosemarche Intelligent Assistant (BETA) · Simulation Mode: ACTIVE"))
}

func (u ui) bot(text string) {
	fmt.Fprintln(u.out, botStyle.Render("🫎 "+text))
}

func (u ui) user(text string) {
	fmt.Fprintln(u.out, userStyle.Render("you ▸ "+text))
}

func (u ui) hint(text string) {
	fmt.Fprintln(u.out, hintStyle.Render(text))
}

func (u ui) info(text string) {
	fmt.Fprintln(u.out, hintStyle.Render(text))
}

func (u ui) toast(n *chatService.Notification) {
	if n == nil {
		return
	}
	fmt.Fprintln(u.out, toastStyle.Render(n.Icon+" "+n.Title))
}

func (u ui) debug(state *chatService.DebugState) {
	if state == nil {
		return
	}
	var b strings.Builder
	fmt.Fprintf(&b, "🛠️ Internal Logic State\nIntent Detected: %s", state.Intent)

	var payload interface{}
	switch {
	case state.Pricing != nil:
		payload = state.Pricing
	case state.Vendors != nil:
		payload = state.Vendors
	}
	if payload != nil {
		raw, err := jsoniter.ConfigCompatibleWithStandardLibrary.MarshalIndent(payload, "", "  ")
		if err == nil {
			b.WriteString("\n")
			b.Write(raw)
		}
	}
	fmt.Fprintln(u.out, debugStyle.Render(b.String()))
}

func (u ui) fail(err error) {
	fmt.Fprintln(u.out, errorStyle.Render("error: "+err.Error()))
}
