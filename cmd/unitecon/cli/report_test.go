package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/unitecon/unitecon/internal/report"
)

func writeSnapshot(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write snapshot: %v", err)
	}
	return path
}

func TestReportCLIWritesSummary(t *testing.T) {
	path := writeSnapshot(t, `{
		"currency": "USD",
		"tax": {"profit_tax_rate": 0.2},
		"jewelry": {"channels": [{"name": "online", "units": 10, "avg_price": 100, "unit_cost": 40}], "overheads": {"rent": 200}},
		"yoga": {},
		"retail": {"categories": [], "overheads": {}}
	}`)

	var out bytes.Buffer
	cli, err := NewReportCLI(report.NewService(report.NewCache(nil, 0), false), &out)
	if err != nil {
		t.Fatalf("NewReportCLI() error = %v", err)
	}

	if err := cli.Run(context.Background(), path); err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	var decoded map[string]json.RawMessage
	if err := json.Unmarshal(out.Bytes(), &decoded); err != nil {
		t.Fatalf("output is not JSON: %v", err)
	}
	for _, key := range []string{"currency", "jewelry", "yoga", "retail", "aggregate", "notes"} {
		if _, ok := decoded[key]; !ok {
			t.Fatalf("output missing key %q", key)
		}
	}
}

func TestReportCLIRejectsMissingFile(t *testing.T) {
	var out bytes.Buffer
	cli, err := NewReportCLI(report.NewService(report.NewCache(nil, 0), false), &out)
	if err != nil {
		t.Fatalf("NewReportCLI() error = %v", err)
	}

	if err := cli.Run(context.Background(), filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Fatalf("expected error for missing file")
	}
}

func TestReportCLIRejectsMalformedSnapshot(t *testing.T) {
	path := writeSnapshot(t, "{broken")

	var out bytes.Buffer
	cli, err := NewReportCLI(report.NewService(report.NewCache(nil, 0), false), &out)
	if err != nil {
		t.Fatalf("NewReportCLI() error = %v", err)
	}

	if err := cli.Run(context.Background(), path); err == nil {
		t.Fatalf("expected parse error")
	}
	if out.Len() != 0 {
		t.Fatalf("expected no output on failure, got %q", out.String())
	}
}

func TestReportCLIStrictMode(t *testing.T) {
	path := writeSnapshot(t, `{"jewelry": {"channels": [{"units": 10, "avg_price": 50, "return_rate": 2}]}}`)

	var out bytes.Buffer
	strict, err := NewReportCLI(report.NewService(report.NewCache(nil, 0), true), &out)
	if err != nil {
		t.Fatalf("NewReportCLI() error = %v", err)
	}
	if err := strict.Run(context.Background(), path); err == nil {
		t.Fatalf("expected strict mode rejection")
	}

	lenient, err := NewReportCLI(report.NewService(report.NewCache(nil, 0), false), &out)
	if err != nil {
		t.Fatalf("NewReportCLI() error = %v", err)
	}
	if err := lenient.Run(context.Background(), path); err != nil {
		t.Fatalf("permissive mode should compute: %v", err)
	}
}
