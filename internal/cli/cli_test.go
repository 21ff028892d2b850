package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// executeCommand runs the root command against the given backend URL and
// returns stdout, stderr, and the execution error.
func executeCommand(t *testing.T, backendURL string, stdin io.Reader, args ...string) (string, string, error) {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	root := NewRootCmd("test")
	var out, errOut bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&errOut)
	if stdin != nil {
		root.SetIn(stdin)
	}
	root.SetArgs(append([]string{"--base-url", backendURL}, args...))

	err := root.ExecuteContext(context.Background())
	return out.String(), errOut.String(), err
}

func newBackend(t *testing.T, handler http.HandlerFunc) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return srv
}

func TestManagersList(t *testing.T) {
	var gotQuery map[string]string
	srv := newBackend(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/managers", r.URL.Path)
		gotQuery = map[string]string{
			"skip":       r.URL.Query().Get("skip"),
			"limit":      r.URL.Query().Get("limit"),
			"sort_by":    r.URL.Query().Get("sort_by"),
			"sort_order": r.URL.Query().Get("sort_order"),
			"department": r.URL.Query().Get("department"),
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"success": true,
			"managers": []map[string]any{
				{
					"manager_name":      "Jane Smith",
					"department":        "Engineering",
					"total_assessments": 25,
					"category_averages": map[string]float64{"trusting": 7.5, "tasking": 8.2, "tending": 6.8},
				},
			},
			"pagination": map[string]int{"total": 95},
		})
	})

	out, _, err := executeCommand(t, srv.URL, nil,
		"managers", "list", "--page", "3", "--sort", "overall:asc", "--department", "Engineering")
	require.NoError(t, err)

	assert.Equal(t, "20", gotQuery["skip"], "page 3 with default page size 10")
	assert.Equal(t, "10", gotQuery["limit"])
	assert.Equal(t, "overall", gotQuery["sort_by"])
	assert.Equal(t, "asc", gotQuery["sort_order"])
	assert.Equal(t, "Engineering", gotQuery["department"])

	assert.Contains(t, out, "Jane Smith")
	assert.Contains(t, out, "MANAGER")
	assert.Contains(t, out, "page 3 of 10")
}

func TestManagersList_InvalidSortField(t *testing.T) {
	srv := newBackend(t, func(http.ResponseWriter, *http.Request) {
		t.Fatal("no request expected for an invalid sort expression")
	})

	_, _, err := executeCommand(t, srv.URL, nil, "managers", "list", "--sort", "salary:asc")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "sort field")
}

func TestManagersList_JSONOutput(t *testing.T) {
	srv := newBackend(t, func(w http.ResponseWriter, _ *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{
			"success":    true,
			"managers":   []map[string]any{{"manager_name": "Jane Smith"}},
			"pagination": map[string]int{"total": 1},
		})
	})

	out, _, err := executeCommand(t, srv.URL, nil, "managers", "list", "--output", "json")
	require.NoError(t, err)

	var payload struct {
		Managers   []map[string]any `json:"managers"`
		Pagination map[string]any   `json:"pagination"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &payload))
	require.Len(t, payload.Managers, 1)
	assert.Equal(t, "Jane Smith", payload.Managers[0]["manager_name"])
}

func TestManagersShow(t *testing.T) {
	srv := newBackend(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/manager/Jane Smith", r.URL.Path)
		assert.Equal(t, "true", r.URL.Query().Get("include_assessments"))
		_ = json.NewEncoder(w).Encode(map[string]any{
			"success": true,
			"manager": map[string]any{
				"manager_name":      "Jane Smith",
				"reporting_to":      "Alice Admin",
				"total_assessments": 25,
				"assessments": []map[string]any{
					{"overall_score": 7.2, "submitted_at": "2024-01-10T00:00:00Z"},
				},
			},
		})
	})

	out, _, err := executeCommand(t, srv.URL, nil, "managers", "show", "Jane Smith", "--include-assessments")
	require.NoError(t, err)
	assert.Contains(t, out, "Jane Smith")
	assert.Contains(t, out, "Alice Admin")
	assert.Contains(t, out, "History:")
	assert.Contains(t, out, "2024-01-10")
}

func TestStats(t *testing.T) {
	srv := newBackend(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/stats", r.URL.Path)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"success":  true,
			"stats":    map[string]int{"total_managers": 42, "total_assessments": 1234},
			"averages": map[string]float64{"trusting": 7.1, "tasking": 6.9, "tending": 7.4},
		})
	})

	out, _, err := executeCommand(t, srv.URL, nil, "stats")
	require.NoError(t, err)
	assert.Contains(t, out, "42")
	assert.Contains(t, out, "1,234", "large counters are digit-grouped")
	assert.Contains(t, out, "trusting 7.1")
}

func TestHierarchy(t *testing.T) {
	srv := newBackend(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/hierarchy", r.URL.Path)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"success": true,
			"roots":   []map[string]any{{"manager_name": "Alice"}},
			"children": map[string][]map[string]any{
				"Alice": {{"manager_name": "Bob", "reporting_to": "Alice"}},
			},
		})
	})

	out, _, err := executeCommand(t, srv.URL, nil, "hierarchy")
	require.NoError(t, err)
	assert.Contains(t, out, "Alice")
	assert.Contains(t, out, "Bob")
}

func TestHierarchy_Tree(t *testing.T) {
	srv := newBackend(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/hierarchy/tree", r.URL.Path)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"success":    true,
			"tree":       []map[string]any{{"manager_name": "Alice"}},
			"statistics": map[string]int{"root_count": 1, "total_managers": 1, "max_depth": 0},
		})
	})

	out, _, err := executeCommand(t, srv.URL, nil, "hierarchy", "--tree")
	require.NoError(t, err)
	assert.Contains(t, out, "1 roots, 1 managers, max depth 0")
}

func TestHealth(t *testing.T) {
	srv := newBackend(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/health", r.URL.Path)
		_ = json.NewEncoder(w).Encode(map[string]string{"status": "healthy", "version": "3.1.0"})
	})

	out, _, err := executeCommand(t, srv.URL, nil, "health")
	require.NoError(t, err)
	assert.Contains(t, out, "3.1.0")
	assert.Contains(t, out, "Supported:  yes")
}

func TestHealth_IncompatibleVersionFails(t *testing.T) {
	srv := newBackend(t, func(w http.ResponseWriter, _ *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]string{"status": "healthy", "version": "2.0.0"})
	})

	out, _, err := executeCommand(t, srv.URL, nil, "health")
	require.Error(t, err)
	assert.Contains(t, out, "Supported:  no")
}

func TestMigrate_DeclinedPrompt(t *testing.T) {
	srv := newBackend(t, func(http.ResponseWriter, *http.Request) {
		t.Fatal("declining the prompt must not hit the backend")
	})

	out, _, err := executeCommand(t, srv.URL, bytes.NewBufferString("n\n"), "migrate")
	require.NoError(t, err)
	assert.Contains(t, out, "aborted")
}

func TestMigrate_Yes(t *testing.T) {
	srv := newBackend(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/api/migrate", r.URL.Path)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"success": true,
			"data":    map[string]int{"created": 5, "updated": 7, "total": 12},
		})
	})

	out, _, err := executeCommand(t, srv.URL, nil, "migrate", "--yes")
	require.NoError(t, err)
	assert.Contains(t, out, "5 created, 7 updated, 12 total")
}

func TestReportEmail_RequiresRecipients(t *testing.T) {
	srv := newBackend(t, func(http.ResponseWriter, *http.Request) {
		t.Fatal("no request expected without --to")
	})

	_, _, err := executeCommand(t, srv.URL, nil, "report", "email", "Jane Smith")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "to")
}

func TestReportGenerate_NoWait(t *testing.T) {
	srv := newBackend(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/manager/Jane Smith/generate-report", r.URL.Path)
		_ = json.NewEncoder(w).Encode(map[string]any{"success": true})
	})

	out, _, err := executeCommand(t, srv.URL, nil, "report", "generate", "Jane Smith")
	require.NoError(t, err)
	assert.Contains(t, out, "generation started")
}

func TestReportGenerate_Wait(t *testing.T) {
	polls := 0
	srv := newBackend(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/manager/Jane Smith/generate-report":
			_ = json.NewEncoder(w).Encode(map[string]any{"success": true})
		case "/api/manager/Jane Smith/report":
			polls++
			status := "pending"
			if polls >= 2 {
				status = "ready"
			}
			_ = json.NewEncoder(w).Encode(map[string]any{
				"success": true,
				"report": map[string]any{
					"manager_name": "Jane Smith",
					"status":       status,
					"summary":      "steady improvement in tending",
				},
			})
		default:
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
	})

	out, _, err := executeCommand(t, srv.URL, nil,
		"report", "generate", "Jane Smith", "--wait", "--poll-interval", "1ms")
	require.NoError(t, err)
	assert.GreaterOrEqual(t, polls, 2)
	assert.Contains(t, out, "steady improvement in tending")
}

func TestDashboard_PlainSnapshot(t *testing.T) {
	srv := newBackend(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/health":
			_ = json.NewEncoder(w).Encode(map[string]string{"status": "healthy", "version": "3.0.0"})
		case "/api/stats":
			_ = json.NewEncoder(w).Encode(map[string]any{
				"success":  true,
				"stats":    map[string]int{"total_managers": 2},
				"averages": map[string]float64{"trusting": 7, "tasking": 7, "tending": 7},
			})
		case "/api/managers":
			_ = json.NewEncoder(w).Encode(map[string]any{
				"success":    true,
				"managers":   []map[string]any{{"manager_name": "Jane Smith"}},
				"pagination": map[string]int{"total": 2},
			})
		default:
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
	})

	out, _, err := executeCommand(t, srv.URL, nil, "dashboard", "--plain")
	require.NoError(t, err)
	assert.Contains(t, out, "Managers:    2")
	assert.Contains(t, out, "Jane Smith")
}

func TestExportCSV(t *testing.T) {
	const csv = "manager_name,overall\nJane Smith,7.5\n"
	srv := newBackend(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/export/managers/csv", r.URL.Path)
		_, _ = w.Write([]byte(csv))
	})

	dest := t.TempDir() + "/managers.csv"
	out, _, err := executeCommand(t, srv.URL, nil, "export", "csv", "-o", dest)
	require.NoError(t, err)
	assert.Contains(t, out, dest)

	data, err := os.ReadFile(dest)
	require.NoError(t, err)
	assert.Equal(t, csv, string(data))
}
