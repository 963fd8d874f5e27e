package http

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/unitecon/unitecon/internal/report"
	"github.com/unitecon/unitecon/internal/segment"
)

const (
	csvFlushEvery = 200
	csvBufferSize = 32 * 1024
)

// csvStreamer interleaves section comments with CSV rows on one buffered
// writer, flushing periodically so large exports stream instead of
// accumulating.
type csvStreamer struct {
	buf  *bufio.Writer
	csv  *csv.Writer
	rows int
}

func newCSVStreamer(w io.Writer) *csvStreamer {
	buf := bufio.NewWriterSize(w, csvBufferSize)
	writer := csv.NewWriter(buf)
	writer.UseCRLF = true
	return &csvStreamer{buf: buf, csv: writer}
}

// drainRows pushes rows buffered inside the csv writer down to buf.
// Required before writing a comment, otherwise earlier rows would land
// after it.
func (s *csvStreamer) drainRows() error {
	s.csv.Flush()
	return s.csv.Error()
}

func (s *csvStreamer) writeComment(line string) error {
	if err := s.drainRows(); err != nil {
		return err
	}
	line = strings.TrimSuffix(line, "\n")
	_, err := s.buf.WriteString(line + "\r\n")
	return err
}

func (s *csvStreamer) writeRow(row []string) error {
	if err := s.csv.Write(row); err != nil {
		return err
	}
	s.rows++
	if s.rows >= csvFlushEvery {
		return s.Flush()
	}
	return nil
}

func (s *csvStreamer) Flush() error {
	if err := s.drainRows(); err != nil {
		return err
	}
	if err := s.buf.Flush(); err != nil {
		return err
	}
	s.rows = 0
	return nil
}

func (s *csvStreamer) Close() error {
	return s.Flush()
}

// writeSummaryCSV streams the full projection as CSV: per-segment line
// item detail, overheads, and the consolidated statement.
func writeSummaryCSV(w io.Writer, summary report.Summary) error {
	streamer := newCSVStreamer(w)
	if err := streamer.writeComment(fmt.Sprintf("# Unit economics projection (%s, monthly)", summary.Currency)); err != nil {
		return err
	}

	if err := writeLineItemSection(streamer, "Jewelry", summary.Jewelry.Channels, summary.Jewelry.PnL, summary.Jewelry.FixedCostsDetail); err != nil {
		return err
	}
	if err := writeYogaSection(streamer, summary.Yoga); err != nil {
		return err
	}
	if err := writeLineItemSection(streamer, "Retail", summary.Retail.Categories, summary.Retail.PnL, summary.Retail.FixedCostsDetail); err != nil {
		return err
	}

	if err := streamer.writeComment("# Consolidated"); err != nil {
		return err
	}
	if err := streamer.writeRow([]string{"Metric", "Amount"}); err != nil {
		return err
	}
	rows := [][]string{
		{"Revenue", formatCSVAmount(summary.Aggregate.Revenue)},
		{"Variable costs", formatCSVAmount(summary.Aggregate.VariableCosts)},
		{"Fixed costs", formatCSVAmount(summary.Aggregate.FixedCosts)},
		{"Contribution margin", formatCSVAmount(summary.Aggregate.ContributionMargin)},
		{"Profit before tax", formatCSVAmount(summary.Aggregate.ProfitBeforeTax)},
		{"Tax expense", formatCSVAmount(summary.Aggregate.TaxExpense)},
		{"Profit after tax", formatCSVAmount(summary.Aggregate.ProfitAfterTax)},
	}
	for _, row := range rows {
		if err := streamer.writeRow(row); err != nil {
			return err
		}
	}
	return streamer.Close()
}

func writeLineItemSection(s *csvStreamer, name string, items []segment.LineItemResult, pnl segment.PnL, overheads segment.Overheads) error {
	if err := s.writeComment("# " + name); err != nil {
		return err
	}
	if err := s.writeRow([]string{"Item", "Gross Revenue", "Net Revenue", "Sold Units", "Variable Costs", "Contribution", "Margin/Unit", "Break-even Units"}); err != nil {
		return err
	}
	for _, item := range items {
		if err := s.writeRow([]string{
			item.Name,
			formatCSVAmount(item.GrossRevenue),
			formatCSVAmount(item.NetRevenue),
			formatCSVAmount(item.SoldUnits),
			formatCSVAmount(item.VariableCosts),
			formatCSVAmount(item.Contribution),
			formatCSVAmount(item.MarginPerUnit),
			formatCSVOptional(item.BreakEvenUnits),
		}); err != nil {
			return err
		}
	}
	if err := writeOverheads(s, overheads); err != nil {
		return err
	}
	return writePnLRows(s, pnl)
}

func writeYogaSection(s *csvStreamer, yoga segment.YogaResult) error {
	if err := s.writeComment("# Yoga studio"); err != nil {
		return err
	}
	if err := s.writeRow([]string{"Assumption", "Value"}); err != nil {
		return err
	}
	assumptions := [][]string{
		{"Total slots", formatCSVAmount(yoga.OperatingAssumptions.TotalSlots)},
		{"Public slots", formatCSVAmount(yoga.OperatingAssumptions.PublicSlots)},
		{"Average attendees", formatCSVAmount(yoga.OperatingAssumptions.AvgAttendees)},
		{"Total attendees", formatCSVAmount(yoga.OperatingAssumptions.TotalAttendees)},
		{"Corporate revenue", formatCSVAmount(yoga.Corporate.Revenue)},
		{"Corporate contribution", formatCSVAmount(yoga.Corporate.Contribution)},
	}
	for _, row := range assumptions {
		if err := s.writeRow(row); err != nil {
			return err
		}
	}
	if err := writeOverheads(s, yoga.FixedCostsDetail); err != nil {
		return err
	}
	return writePnLRows(s, yoga.PnL)
}

func writeOverheads(s *csvStreamer, overheads segment.Overheads) error {
	if len(overheads) == 0 {
		return nil
	}
	labels := make([]string, 0, len(overheads))
	for label := range overheads {
		labels = append(labels, label)
	}
	sort.Strings(labels)
	if err := s.writeRow([]string{"Overhead", "Monthly Amount"}); err != nil {
		return err
	}
	for _, label := range labels {
		if err := s.writeRow([]string{label, formatCSVAmount(overheads[label])}); err != nil {
			return err
		}
	}
	return nil
}

func writePnLRows(s *csvStreamer, pnl segment.PnL) error {
	rows := [][]string{
		{"Revenue", formatCSVAmount(pnl.Revenue)},
		{"Variable costs", formatCSVAmount(pnl.VariableCosts)},
		{"Fixed costs", formatCSVAmount(pnl.FixedCosts)},
		{"Contribution margin", formatCSVAmount(pnl.ContributionMargin)},
		{"Profit before tax", formatCSVAmount(pnl.ProfitBeforeTax)},
	}
	if pnl.BreakEvenUnits != nil || pnl.BreakEvenFillRate != nil {
		if pnl.BreakEvenUnits != nil {
			rows = append(rows, []string{"Break-even units", formatCSVOptional(pnl.BreakEvenUnits)})
		} else {
			rows = append(rows, []string{"Break-even fill rate", formatCSVOptional(pnl.BreakEvenFillRate)})
		}
	}
	for _, row := range rows {
		if err := s.writeRow(row); err != nil {
			return err
		}
	}
	return nil
}

func formatCSVAmount(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

func formatCSVOptional(v *float64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatFloat(*v, 'f', 4, 64)
}
