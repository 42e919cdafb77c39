package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/mmcdole/kindred/internal/domain"
	"github.com/mmcdole/kindred/internal/tui/styles"
)

const nameWidth = 28

func printProgress(w io.Writer, slice string, done, total int, err error) {
	mark := styles.DoneChar
	line := slice
	if err != nil {
		mark = styles.FailedChar
		line += ": " + domain.Message(err, "failed")
	}
	fmt.Fprintf(w, "[%d/%d] %s %s\n", done, total, mark, line)
}

// printContacts writes one contact per line. marks, when set, holds the
// matched name offsets of each contact for highlighting.
func printContacts(w io.Writer, contacts []domain.Contact, marks [][]int) {
	if len(contacts) == 0 {
		fmt.Fprintln(w, styles.DimStyle.Render("No contacts"))
		return
	}
	fmt.Fprintln(w, styles.HeaderStyle.Render(styles.Pad("NAME", nameWidth)+"  "+styles.Pad("EMAIL", nameWidth)+"  PHONE"))
	for i, c := range contacts {
		name := styles.Truncate(c.FullName(), nameWidth)
		if marks != nil && name == c.FullName() {
			name = styles.Highlight(name, marks[i])
		}
		fmt.Fprintln(w, styles.Pad(name, nameWidth)+"  "+styles.Pad(styles.Truncate(c.Email, nameWidth), nameWidth)+"  "+c.Phone)
	}
}

func printEvents(w io.Writer, events []domain.Event) {
	if len(events) == 0 {
		fmt.Fprintln(w, styles.DimStyle.Render("No events"))
		return
	}
	for _, e := range events {
		when := "unscheduled"
		if !e.StartsAt.IsZero() {
			when = e.StartsAt.Local().Format("Mon Jan 2 15:04")
		}
		seats := fmt.Sprintf("%d registered", e.RegisteredCount)
		if e.Capacity > 0 {
			seats = fmt.Sprintf("%d/%d registered", e.RegisteredCount, e.Capacity)
		}
		line := styles.Pad(styles.Truncate(e.Name, nameWidth), nameWidth) + "  " +
			styles.DimStyle.Render(styles.Pad(when, 16)) + "  " + seats
		if e.IsFull() {
			line += " " + styles.BadgeStyle.Render("full")
		}
		fmt.Fprintln(w, line)
	}
}

func printSettings(w io.Writer, org domain.OrganizationProfile, branding domain.Branding, email domain.EmailSettings, sms domain.SMSSettings) {
	section := func(title string, rows ...[2]string) string {
		var b strings.Builder
		b.WriteString(styles.HeaderStyle.Render(title))
		for _, r := range rows {
			if r[1] == "" {
				continue
			}
			b.WriteString("\n" + styles.DimStyle.Render(styles.Pad(r[0], 14)) + r[1])
		}
		return styles.PanelStyle.Render(b.String())
	}
	configured := func(ok bool) string {
		if ok {
			return styles.SuccessStyle.Render("configured")
		}
		return styles.WarningStyle.Render("not configured")
	}

	fmt.Fprintln(w, lipgloss.JoinVertical(lipgloss.Left,
		section("Organization",
			[2]string{"Name", org.Name},
			[2]string{"Legal name", org.LegalName},
			[2]string{"Email", org.Email},
			[2]string{"Phone", org.Phone},
			[2]string{"Timezone", org.Timezone},
		),
		section("Branding",
			[2]string{"App name", branding.AppName},
			[2]string{"Primary", branding.PrimaryColor},
			[2]string{"Secondary", branding.SecondaryColor},
		),
		section("Email",
			[2]string{"Status", configured(email.IsConfigured)},
			[2]string{"Provider", email.Provider},
			[2]string{"From", strings.TrimSpace(email.FromName + " <" + email.FromAddress + ">")},
		),
		section("SMS",
			[2]string{"Status", configured(sms.IsConfigured)},
			[2]string{"Provider", sms.Provider},
			[2]string{"From", sms.FromNumber},
		),
	))
}
