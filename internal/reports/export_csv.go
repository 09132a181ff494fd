package reports

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

const (
	csvFlushEvery = 200
	csvBufferSize = 32 * 1024
)

type csvStreamer struct {
	buf          *bufio.Writer
	csv          *csv.Writer
	flushEvery   int
	pendingLines int
}

func newCSVStreamer(w io.Writer) *csvStreamer {
	buf := bufio.NewWriterSize(w, csvBufferSize)
	writer := csv.NewWriter(buf)
	writer.UseCRLF = true
	return &csvStreamer{buf: buf, csv: writer, flushEvery: csvFlushEvery}
}

func (s *csvStreamer) writeComment(line string) error {
	if s == nil || s.buf == nil {
		return fmt.Errorf("csv streamer not initialised")
	}
	if !strings.HasSuffix(line, "\r\n") {
		line = strings.TrimSuffix(line, "\n")
		line += "\r\n"
	}
	if _, err := s.buf.WriteString(line); err != nil {
		return err
	}
	return nil
}

func (s *csvStreamer) writeRow(row []string) error {
	if s == nil || s.csv == nil {
		return fmt.Errorf("csv streamer not initialised")
	}
	if err := s.csv.Write(row); err != nil {
		return err
	}
	s.pendingLines++
	if s.flushEvery > 0 && s.pendingLines >= s.flushEvery {
		return s.Flush()
	}
	return nil
}

func (s *csvStreamer) Flush() error {
	if s == nil || s.csv == nil || s.buf == nil {
		return fmt.Errorf("csv streamer not initialised")
	}
	s.csv.Flush()
	if err := s.csv.Error(); err != nil {
		return err
	}
	if err := s.buf.Flush(); err != nil {
		return err
	}
	s.pendingLines = 0
	return nil
}

var amountPrinter = message.NewPrinter(language.English)

func formatAmount(v int64) string {
	return amountPrinter.Sprintf("%d", v)
}

// writeReportCSV streams one report as CSV: a metadata comment block,
// the summary rows, then the three top tables.
func writeReportCSV(w io.Writer, report ReportData) error {
	streamer := newCSVStreamer(w)
	if err := streamer.writeComment(fmt.Sprintf("# Century Soap Sales Report,%s,%s",
		report.From.Format("2006-01-02"), report.To.Format("2006-01-02"))); err != nil {
		return err
	}

	if err := streamer.writeRow([]string{"Metric", "Count", "Revenue (RWF)"}); err != nil {
		return err
	}
	summary := []struct {
		label   string
		count   int
		revenue int64
	}{
		{"Total", report.TotalSales, report.TotalRevenue},
		{"Cash", report.CashSales, report.CashRevenue},
		{"MoMo", report.MomoSales, report.MomoRevenue},
		{"Regular clients", report.RegularSales, report.RegularRevenue},
		{"Random clients", report.RandomSales, report.RandomRevenue},
	}
	for _, row := range summary {
		if err := streamer.writeRow([]string{row.label, strconv.Itoa(row.count), formatAmount(row.revenue)}); err != nil {
			return err
		}
	}
	if err := streamer.writeRow([]string{"Units sold", strconv.Itoa(report.TotalUnits), ""}); err != nil {
		return err
	}
	if err := streamer.writeRow([]string{"Paid", "", formatAmount(report.PaidRevenue)}); err != nil {
		return err
	}
	if err := streamer.writeRow([]string{"Not Paid", "", formatAmount(report.UnpaidRevenue)}); err != nil {
		return err
	}

	if err := streamer.writeComment("# Top Products"); err != nil {
		return err
	}
	if err := streamer.writeRow([]string{"Product", "Quantity", "Revenue (RWF)"}); err != nil {
		return err
	}
	for _, p := range report.TopProducts {
		if err := streamer.writeRow([]string{p.Name, strconv.Itoa(p.Quantity), formatAmount(p.Revenue)}); err != nil {
			return err
		}
	}

	if err := streamer.writeComment("# Top Sellers"); err != nil {
		return err
	}
	if err := streamer.writeRow([]string{"Seller", "Sales", "Revenue (RWF)"}); err != nil {
		return err
	}
	for _, s := range report.TopSellers {
		if err := streamer.writeRow([]string{s.Name, strconv.Itoa(s.Count), formatAmount(s.Revenue)}); err != nil {
			return err
		}
	}

	if err := streamer.writeComment("# Top Clients"); err != nil {
		return err
	}
	if err := streamer.writeRow([]string{"Client", "Sales In Window", "All-Time Purchases (RWF)"}); err != nil {
		return err
	}
	for _, c := range report.TopClients {
		if err := streamer.writeRow([]string{c.Name, strconv.Itoa(c.SalesCount), formatAmount(c.Revenue)}); err != nil {
			return err
		}
	}

	return streamer.Flush()
}
