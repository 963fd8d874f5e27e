package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/unitecon/unitecon/internal/report"
)

// ReportCLI builds a projection summary from a JSON snapshot file and
// writes the pretty-printed report, mirroring the web API output.
type ReportCLI struct {
	service *report.Service
	out     io.Writer
}

// NewReportCLI constructs the helper. The service may run without a cache;
// a one-shot CLI run gains nothing from memoisation.
func NewReportCLI(service *report.Service, out io.Writer) (*ReportCLI, error) {
	if service == nil {
		return nil, errors.New("report cli: service required")
	}
	if out == nil {
		out = os.Stdout
	}
	return &ReportCLI{service: service, out: out}, nil
}

// Run loads the snapshot at path and writes the summary as indented JSON.
func (c *ReportCLI) Run(ctx context.Context, path string) error {
	if c == nil || c.service == nil {
		return errors.New("report cli: not configured")
	}
	if path == "" {
		return errors.New("report cli: config path required")
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("report cli: read config: %w", err)
	}

	summary, err := c.service.BuildFromJSON(ctx, raw)
	if err != nil {
		return err
	}

	encoded, err := json.MarshalIndent(summary, "", "  ")
	if err != nil {
		return fmt.Errorf("report cli: encode summary: %w", err)
	}
	if _, err := c.out.Write(append(encoded, '\n')); err != nil {
		return fmt.Errorf("report cli: write summary: %w", err)
	}
	return nil
}
