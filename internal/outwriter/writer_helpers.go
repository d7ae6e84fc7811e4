package outwriter

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/castinsight/castdash/internal/contract"
	"github.com/castinsight/castdash/schema"
	"github.com/dustin/go-humanize"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// writeWithFile handles the common pattern of opening a file, writing to it, and cleaning up.
// It accepts a writer function that takes an io.Writer and returns an error.
func writeWithFile(outputFile string, writer func(io.Writer) error, successMsg string) error {
	file, err := contract.SelectOutputFile(outputFile)
	if err != nil {
		return err
	}
	// Only close if it's not stdout
	if file != os.Stdout {
		defer func() { _ = file.Close() }()
	}

	if err := writer(file); err != nil {
		return err
	}

	if file != os.Stdout {
		_, _ = fmt.Fprintf(os.Stderr, "💾 %s to %s\n", successMsg, outputFile)
	}
	return nil
}

// writeJSON is a generic JSON encoder that handles indentation consistently.
func writeJSON(w io.Writer, data any) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(data); err != nil {
		return fmt.Errorf("failed to encode JSON: %w", err)
	}
	return nil
}

// writeCSVWithHeader handles the common pattern of creating a CSV writer,
// writing a header, and writing data rows.
func writeCSVWithHeader(w io.Writer, header []string, writeRows func(*csv.Writer) error) error {
	csvWriter := csv.NewWriter(w)
	defer csvWriter.Flush()

	if err := csvWriter.Write(header); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	if err := writeRows(csvWriter); err != nil {
		return err
	}

	return nil
}

// panelTable is the format-neutral rendering of one panel. Columns are the
// snake_case CSV keys; the table header is derived from them.
type panelTable struct {
	title   string
	columns []string
	rows    [][]string
	footer  []string
}

// writeTable renders a panel as a right-aligned table followed by its footer lines.
func writeTable(w io.Writer, t panelTable) error {
	if t.title != "" {
		if _, err := fmt.Fprintln(w, t.title); err != nil {
			return err
		}
	}

	headers := make([]string, len(t.columns))
	for i, col := range t.columns {
		headers[i] = headerTitle(col)
	}

	table := tablewriter.NewWriter(w)
	table.Header(headers)
	table.Configure(func(cfg *tablewriter.Config) {
		cfg.Row.Alignment.Global = tw.AlignRight
	})
	if err := table.Bulk(t.rows); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}

	for _, line := range t.footer {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

// writeCSVTable writes the columns as the header and every row below it.
func writeCSVTable(w io.Writer, t panelTable) error {
	return writeCSVWithHeader(w, t.columns, func(cw *csv.Writer) error {
		for _, row := range t.rows {
			if err := cw.Write(row); err != nil {
				return err
			}
		}
		return nil
	})
}

// headerTitle turns "health_score" into "Health Score".
func headerTitle(col string) string {
	words := strings.Split(col, "_")
	for i, word := range words {
		if word == "" {
			continue
		}
		words[i] = strings.ToUpper(word[:1]) + word[1:]
	}
	return strings.Join(words, " ")
}

// formatter renders cell values. Plain output (CSV) keeps raw numbers and
// labels; table output groups digits, colors labels and truncates names.
type formatter struct {
	precision int
	plain     bool
	nameWidth int
}

// newFormatter builds the formatter for a configuration and output kind.
func newFormatter(cfg *contract.Config, plain bool) formatter {
	f := formatter{precision: cfg.Precision, plain: plain}
	if f.precision <= 0 {
		f.precision = contract.DefaultPrecision
	}
	if !plain {
		f.nameWidth = GetMaxTableNameWidth(cfg)
	}
	return f
}

func (f formatter) float(v float64) string {
	return strconv.FormatFloat(v, 'f', f.precision, 64)
}

func (f formatter) count(n int) string {
	if f.plain {
		return strconv.Itoa(n)
	}
	return humanize.Comma(int64(n))
}

// money formats technical debt, which is a currency amount.
func (f formatter) money(v float64) string {
	if f.plain {
		return strconv.FormatFloat(v, 'f', 2, 64)
	}
	return humanize.CommafWithDigits(v, 0)
}

func (f formatter) percent(pct int) string {
	if f.plain {
		return strconv.Itoa(pct)
	}
	return strconv.Itoa(pct) + "%"
}

func (f formatter) risk(level schema.RiskLevel) string {
	if f.plain {
		return string(level)
	}
	return contract.GetColorRiskLabel(level)
}

func (f formatter) grade(grade schema.QualityGrade) string {
	if f.plain {
		return string(grade)
	}
	return contract.GetColorGradeLabel(grade)
}

func (f formatter) letter(grade schema.Grade) string {
	if f.plain {
		return string(grade)
	}
	return contract.GetColorLetterLabel(grade)
}

func (f formatter) name(s string) string {
	if f.plain || f.nameWidth <= 0 {
		return s
	}
	return contract.TruncateName(s, f.nameWidth)
}

func (f formatter) text(s *string) string {
	if s != nil {
		return *s
	}
	if f.plain {
		return ""
	}
	return "-"
}

func (f formatter) date(t *time.Time) string {
	switch {
	case t == nil && f.plain:
		return ""
	case t == nil:
		return "-"
	case f.plain:
		return t.UTC().Format(contract.DateTimeFormat)
	default:
		return t.Format(time.DateOnly)
	}
}
