// Package notify composes and dispatches outcome notifications to agents.
// Dispatch is fire-and-forget: a failed delivery is logged and never turns a
// successful status transition into a reported failure.
package notify

import (
	"fmt"
	"html"
	"strings"

	"github.com/Experiencepwunkr/globomail/internal/domain/request"
)

const (
	dashboardURL   = "https://globomail.site/dashboard"
	supportAddress = "support@globomail.site"

	defaultCompletedMessage = "Your request has been processed successfully."
	defaultFailedMessage    = "We were unable to complete your request. Please try again or contact support."
)

// Message is a composed notification ready for delivery
type Message struct {
	To       string
	ToName   string
	Subject  string
	TextBody string
	HTMLBody string
}

// Compose builds the outcome notification for a terminal request. The
// subject and framing follow the outcome; the body carries the service
// label, the final status, the result message (with a per-outcome fallback)
// and, for completions, the list of deliverable links.
func Compose(req *request.Request, agentName, agentEmail string) Message {
	completed := req.Status == request.StatusCompleted

	message := ""
	var fileURLs []string
	if req.Result != nil {
		message = req.Result.Message
		fileURLs = req.Result.FileURLs
	}
	if message == "" {
		if completed {
			message = defaultCompletedMessage
		} else {
			message = defaultFailedMessage
		}
	}

	label := req.ServiceType.Label()
	var subject string
	if completed {
		subject = fmt.Sprintf("Globomail: Your %s request is completed", label)
	} else {
		subject = fmt.Sprintf("Globomail: Your %s request failed", label)
	}

	return Message{
		To:       agentEmail,
		ToName:   agentName,
		Subject:  subject,
		TextBody: composeText(agentName, label, string(req.Status), message, fileURLs),
		HTMLBody: composeHTML(agentName, label, string(req.Status), message, fileURLs, completed),
	}
}

func composeText(name, label, status, message string, fileURLs []string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Hi %s,\n\n", name)
	fmt.Fprintf(&b, "Your %s request is %s.\n\n%s\n", label, status, message)
	if len(fileURLs) > 0 {
		b.WriteString("\nDeliverables:\n")
		for _, url := range fileURLs {
			fmt.Fprintf(&b, "- %s\n", url)
		}
	}
	fmt.Fprintf(&b, "\nView your dashboard: %s\n", dashboardURL)
	fmt.Fprintf(&b, "Need help? Contact %s\n", supportAddress)
	return b.String()
}

func composeHTML(name, label, status, message string, fileURLs []string, completed bool) string {
	accent := "#ef4444"
	if completed {
		accent = "#10b981"
	}

	var b strings.Builder
	b.WriteString(`<div style="font-family: sans-serif; max-width: 600px; margin: 20px auto;">`)
	b.WriteString(`<div style="background: #1f2937; color: white; padding: 20px; text-align: center;"><h1 style="margin: 0;">Globomail</h1></div>`)
	b.WriteString(`<div style="padding: 24px;">`)
	fmt.Fprintf(&b, `<h2 style="margin-top: 0;">Hi %s,</h2>`, html.EscapeString(name))
	fmt.Fprintf(&b, `<p>Your <strong>%s</strong> request is <strong style="color: %s">%s</strong>.</p>`,
		html.EscapeString(label), accent, html.EscapeString(status))
	fmt.Fprintf(&b, `<div style="border-left: 4px solid %s; padding: 12px 16px; margin: 16px 0;"><p style="margin: 0;">%s</p></div>`,
		accent, html.EscapeString(message))
	if len(fileURLs) > 0 {
		b.WriteString(`<p><strong>Deliverables:</strong></p><ul>`)
		for _, url := range fileURLs {
			escaped := html.EscapeString(url)
			fmt.Fprintf(&b, `<li><a href="%s">%s</a></li>`, escaped, escaped)
		}
		b.WriteString(`</ul>`)
	}
	fmt.Fprintf(&b, `<p><a href="%s" style="display: inline-block; background: #1d4ed8; color: white; text-decoration: none; padding: 10px 20px; border-radius: 6px;">View in Dashboard</a></p>`, dashboardURL)
	fmt.Fprintf(&b, `<p style="font-size: 13px; color: #6b7280;">Need help? Contact %s</p>`, supportAddress)
	b.WriteString(`</div></div>`)
	return b.String()
}
