package gateways

import (
	"context"
	"fmt"
	"io"
	"net/smtp"
	"strings"

	"github.com/ochairo/distcheck/internal/domain/entities"
	"github.com/ochairo/distcheck/internal/domain/interfaces"
)

// FormatReport renders a project report as the notification body: one
// block per file, each error line bulleted, in report order.
func FormatReport(report *entities.Report) string {
	var b strings.Builder
	for _, path := range report.Paths() {
		fmt.Fprintf(&b, "Errors were found while verifying %s:\n", path)
		for _, line := range report.Errors(path) {
			fmt.Fprintf(&b, " - %s\n", line)
		}
		b.WriteString("\n")
	}
	return b.String()
}

// Subject returns the notification subject line for a project.
func Subject(project string) string {
	return fmt.Sprintf("Verification of download artefacts FAILED for %s!", project)
}

// MailNotifier delivers project reports to the project's private list
// over SMTP, resolving the list name through the committee mail map
// when one is configured.
type MailNotifier struct {
	cfg     entities.NotifyConfig
	mailMap *MailMapGateway
	logger  interfaces.Logger
}

// NewMailNotifier creates a new mail notifier
func NewMailNotifier(cfg entities.NotifyConfig, mailMap *MailMapGateway, logger interfaces.Logger) *MailNotifier {
	return &MailNotifier{
		cfg:     cfg,
		mailMap: mailMap,
		logger:  logger,
	}
}

// Notify sends the report to private@<list>.<domain> plus any extra
// recipients. The list name defaults to the project identifier and is
// overridden by the committee mail map when it has an entry.
func (n *MailNotifier) Notify(ctx context.Context, project string, report *entities.Report) error {
	list := project
	if n.mailMap != nil {
		resolved, err := n.mailMap.ResolveList(ctx, project)
		switch {
		case err != nil:
			n.logger.Warn("Mail map lookup failed, using standard list naming",
				interfaces.F("project", project), interfaces.F("error", err))
		case resolved != "":
			list = resolved
		}
	}
	projectList := fmt.Sprintf("private@%s.%s", list, n.cfg.Domain)

	recipients := append([]string{projectList}, n.cfg.ExtraRecipients...)
	n.logger.Info("Dispatching notification", interfaces.F("to", projectList))

	msg := n.compose(project, recipients, report)
	if err := smtp.SendMail(n.cfg.SMTPHost, nil, n.cfg.Sender, recipients, msg); err != nil {
		return fmt.Errorf("failed to send notification: %w", err)
	}
	return nil
}

func (n *MailNotifier) compose(project string, recipients []string, report *entities.Report) []byte {
	var b strings.Builder
	fmt.Fprintf(&b, "From: %s\r\n", n.cfg.Sender)
	fmt.Fprintf(&b, "To: %s\r\n", strings.Join(recipients, ", "))
	fmt.Fprintf(&b, "Subject: %s\r\n", Subject(project))
	b.WriteString("\r\n")
	b.WriteString(FormatReport(report))
	return []byte(b.String())
}

// ConsoleNotifier prints the notification instead of mailing it.
// Used with --debug so scans never send mail during testing.
type ConsoleNotifier struct {
	Out io.Writer
}

// Notify writes the rendered notification to the writer.
func (n *ConsoleNotifier) Notify(_ context.Context, project string, report *entities.Report) error {
	fmt.Fprintf(n.Out, "Debug mode active, not sending email. But it would have looked like this:\n\n")
	fmt.Fprintf(n.Out, "Subject: %s\n\n", Subject(project))
	fmt.Fprint(n.Out, FormatReport(report))
	return nil
}
