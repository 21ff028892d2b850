package api

import (
	"context"
	"fmt"
	"net/url"
	"time"
)

// DefaultPollInterval is how often AwaitReport re-checks a pending report.
const DefaultPollInterval = 2 * time.Second

// ErrReportFailed is returned when the backend marks a report as failed.
var ErrReportFailed = &Error{Op: "await report", Kind: KindApplication, Message: "report generation failed"}

// GenerateReport asks the backend to (re)generate the assessment report
// for a manager. Generation is asynchronous; poll GetReport or use
// AwaitReport for completion.
func (c *Client) GenerateReport(ctx context.Context, name string) error {
	var resp Envelope
	path := "/api/manager/" + url.PathEscape(name) + "/generate-report"
	return c.postJSON(ctx, "generate report", path, nil, &resp)
}

type reportResponse struct {
	Envelope
	Report Report `json:"report"`
}

// GetReport fetches the current report for a manager, whatever its status.
func (c *Client) GetReport(ctx context.Context, name string) (Report, error) {
	var resp reportResponse
	path := "/api/manager/" + url.PathEscape(name) + "/report"
	if err := c.getJSON(ctx, "get report", path, nil, &resp); err != nil {
		return Report{}, err
	}
	return resp.Report, nil
}

// AwaitReport polls GetReport until the report leaves the pending state.
// It returns the report when ready, ErrReportFailed when generation
// failed, and the context error when ctx expires first. The interval
// defaults to DefaultPollInterval when non-positive.
func (c *Client) AwaitReport(ctx context.Context, name string, interval time.Duration) (Report, error) {
	if interval <= 0 {
		interval = DefaultPollInterval
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		report, err := c.GetReport(ctx, name)
		if err != nil {
			return Report{}, err
		}

		switch report.Status {
		case ReportReady:
			return report, nil
		case ReportFailed:
			return report, ErrReportFailed
		case ReportPending:
			// Keep polling.
		default:
			return report, &Error{
				Op:      "await report",
				Kind:    KindDecode,
				Message: fmt.Sprintf("unknown report status %q", report.Status),
			}
		}

		select {
		case <-ctx.Done():
			return Report{}, ctx.Err()
		case <-ticker.C:
		}
	}
}

// emailReportRequest is the email dispatch payload.
type emailReportRequest struct {
	Emails  []string `json:"emails"`
	Message string   `json:"message"`
}

// EmailReport asks the backend to email a manager's report to the given
// recipients with an optional cover message.
func (c *Client) EmailReport(ctx context.Context, name string, emails []string, message string) error {
	if len(emails) == 0 {
		return &Error{Op: "email report", Kind: KindApplication, Message: "at least one recipient is required"}
	}
	var resp Envelope
	path := "/api/report/" + url.PathEscape(name) + "/email"
	return c.postJSON(ctx, "email report", path, emailReportRequest{Emails: emails, Message: message}, &resp)
}

// DownloadReportPDF downloads a manager's report as PDF to dest and
// returns the number of bytes written.
func (c *Client) DownloadReportPDF(ctx context.Context, name, dest string) (int64, error) {
	path := "/api/manager/" + url.PathEscape(name) + "/report/pdf"
	return c.download(ctx, "download report pdf", path, dest)
}
