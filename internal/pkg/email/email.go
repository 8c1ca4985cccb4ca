package email

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"log/slog"
	"net/smtp"
	"time"

	"github.com/paneldesk/timetrack-backend-go/internal/config"
)

//go:embed templates/*.html
var templateFS embed.FS

const maxRetries = 3

// EmailService defines the interface for sending emails
type EmailService interface {
	SendAutoAllocation(to, managerName, memberName, memberEmail, projectName, allocatedAt string) error
	SendLeaveRequestCreated(to, approverName, requesterName, requestType, startDate, endDate, reason string) error
}

type emailServiceImpl struct {
	cfg       config.SMTPConfig
	templates *template.Template
}

// NewEmailService creates a new email service instance
func NewEmailService(cfg config.SMTPConfig) (EmailService, error) {
	tmpl, err := template.ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse email templates: %w", err)
	}

	return &emailServiceImpl{
		cfg:       cfg,
		templates: tmpl,
	}, nil
}

type autoAllocationEmailData struct {
	ManagerName string
	MemberName  string
	MemberEmail string
	ProjectName string
	AllocatedAt string
}

// SendAutoAllocation notifies a project manager that a member clocked in
// without an allocation and was auto-assigned to their project.
func (s *emailServiceImpl) SendAutoAllocation(to, managerName, memberName, memberEmail, projectName, allocatedAt string) error {
	data := autoAllocationEmailData{
		ManagerName: managerName,
		MemberName:  memberName,
		MemberEmail: memberEmail,
		ProjectName: projectName,
		AllocatedAt: allocatedAt,
	}

	var body bytes.Buffer
	if err := s.templates.ExecuteTemplate(&body, "auto_allocation.html", data); err != nil {
		return fmt.Errorf("failed to execute template: %w", err)
	}

	return s.sendHTML(to, fmt.Sprintf("Auto-allocation: %s added to %s", memberName, projectName), body.String())
}

type leaveRequestEmailData struct {
	ApproverName  string
	RequesterName string
	RequestType   string
	StartDate     string
	EndDate       string
	Reason        string
}

// SendLeaveRequestCreated notifies an approver that a new leave request is
// waiting for review.
func (s *emailServiceImpl) SendLeaveRequestCreated(to, approverName, requesterName, requestType, startDate, endDate, reason string) error {
	data := leaveRequestEmailData{
		ApproverName:  approverName,
		RequesterName: requesterName,
		RequestType:   requestType,
		StartDate:     startDate,
		EndDate:       endDate,
		Reason:        reason,
	}

	var body bytes.Buffer
	if err := s.templates.ExecuteTemplate(&body, "leave_request.html", data); err != nil {
		return fmt.Errorf("failed to execute template: %w", err)
	}

	return s.sendHTML(to, fmt.Sprintf("Leave request from %s", requesterName), body.String())
}

func (s *emailServiceImpl) sendHTML(to, subject, htmlBody string) error {
	// Skip sending if SMTP is not configured
	if s.cfg.Host == "" {
		slog.Warn("SMTP not configured, skipping email send", "to", to, "subject", subject)
		return nil
	}

	from := s.cfg.From

	headers := fmt.Sprintf("From: %s <%s>\r\n", s.cfg.FromName, from)
	headers += fmt.Sprintf("To: %s\r\n", to)
	headers += fmt.Sprintf("Subject: %s\r\n", subject)
	headers += "MIME-Version: 1.0\r\n"
	headers += "Content-Type: text/html; charset=\"UTF-8\"\r\n"
	headers += "\r\n"

	message := []byte(headers + htmlBody)

	auth := smtp.PlainAuth("", s.cfg.Username, s.cfg.Password, s.cfg.Host)
	addr := fmt.Sprintf("%s:%d", s.cfg.Host, s.cfg.Port)

	var lastErr error
	for attempt := 1; attempt <= maxRetries; attempt++ {
		err := smtp.SendMail(addr, auth, from, []string{to}, message)
		if err == nil {
			slog.Info("Email sent successfully", "to", to, "subject", subject, "attempt", attempt)
			return nil
		}

		lastErr = err
		slog.Error("Failed to send email",
			"to", to,
			"subject", subject,
			"attempt", attempt,
			"max_retries", maxRetries,
			"error", err,
		)

		// Wait before retrying (exponential backoff: 1s, 2s, 4s)
		if attempt < maxRetries {
			time.Sleep(time.Duration(1<<(attempt-1)) * time.Second)
		}
	}

	return fmt.Errorf("failed to send email after %d attempts: %w", maxRetries, lastErr)
}
