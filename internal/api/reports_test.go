package api

import (
	"context"
	"encoding/json"
	"net/http"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func reportHandler(calls *atomic.Int32, statuses ...ReportStatus) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		n := int(calls.Add(1)) - 1
		if n >= len(statuses) {
			n = len(statuses) - 1
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"success": true,
			"report": map[string]any{
				"manager_name": "Jane Smith",
				"status":       statuses[n],
				"summary":      "strong tending scores",
			},
		})
	})
}

func TestGenerateReport(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/api/manager/Jane Smith/generate-report", r.URL.Path)
		_ = json.NewEncoder(w).Encode(map[string]any{"success": true})
	}))

	require.NoError(t, client.GenerateReport(context.Background(), "Jane Smith"))
}

func TestAwaitReport_PendingThenReady(t *testing.T) {
	var calls atomic.Int32
	client := newTestClient(t, reportHandler(&calls, ReportPending, ReportPending, ReportReady))

	report, err := client.AwaitReport(context.Background(), "Jane Smith", time.Millisecond)
	require.NoError(t, err)
	assert.Equal(t, ReportReady, report.Status)
	assert.Equal(t, "strong tending scores", report.Summary)
	assert.Equal(t, int32(3), calls.Load())
}

func TestAwaitReport_Failed(t *testing.T) {
	var calls atomic.Int32
	client := newTestClient(t, reportHandler(&calls, ReportPending, ReportFailed))

	_, err := client.AwaitReport(context.Background(), "Jane Smith", time.Millisecond)
	require.ErrorIs(t, err, ErrReportFailed)
	assert.True(t, IsApplicationError(err))
}

func TestAwaitReport_UnknownStatus(t *testing.T) {
	var calls atomic.Int32
	client := newTestClient(t, reportHandler(&calls, ReportStatus("exploded")))

	_, err := client.AwaitReport(context.Background(), "Jane Smith", time.Millisecond)
	require.Error(t, err)

	var apiErr *Error
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, KindDecode, apiErr.Kind)
	assert.Contains(t, apiErr.Message, "exploded")
}

func TestAwaitReport_ContextCancelled(t *testing.T) {
	var calls atomic.Int32
	client := newTestClient(t, reportHandler(&calls, ReportPending))

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := client.AwaitReport(ctx, "Jane Smith", time.Hour)
	require.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestEmailReport(t *testing.T) {
	var got emailReportRequest
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/api/report/Jane Smith/email", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		_ = json.NewEncoder(w).Encode(map[string]any{"success": true})
	}))

	err := client.EmailReport(context.Background(), "Jane Smith",
		[]string{"hr@example.com"}, "Q1 review attached")
	require.NoError(t, err)
	assert.Equal(t, []string{"hr@example.com"}, got.Emails)
	assert.Equal(t, "Q1 review attached", got.Message)
}

func TestEmailReport_NoRecipients(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		t.Fatal("no request expected")
	}))

	err := client.EmailReport(context.Background(), "Jane Smith", nil, "")
	require.Error(t, err)
	assert.True(t, IsApplicationError(err))
}

func TestDownloadReportPDF(t *testing.T) {
	pdf := []byte("%PDF-1.7 stub")
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/manager/Jane Smith/report/pdf", r.URL.Path)
		w.Header().Set("Content-Type", "application/pdf")
		_, _ = w.Write(pdf)
	}))

	dest := filepath.Join(t.TempDir(), "report.pdf")
	n, err := client.DownloadReportPDF(context.Background(), "Jane Smith", dest)
	require.NoError(t, err)
	assert.Equal(t, int64(len(pdf)), n)

	data, err := os.ReadFile(dest)
	require.NoError(t, err)
	assert.Equal(t, pdf, data)
}
