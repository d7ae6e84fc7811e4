// Package outwriter has output and writer logic.
package outwriter

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/castinsight/castdash/internal/contract"
	"github.com/castinsight/castdash/internal/datamart"
	"github.com/castinsight/castdash/internal/parquet"
	"github.com/castinsight/castdash/schema"
)

// ErrParquetUnsupported is returned for panels that have no columnar form.
var ErrParquetUnsupported = errors.New("parquet output is only supported by the application summaries panel")

// OutWriter provides a unified interface for all output operations.
// It encapsulates the various output formats and provides a clean API for the core logic.
type OutWriter struct{}

// NewOutWriter creates a new instance of the output writer.
func NewOutWriter() *OutWriter {
	return &OutWriter{}
}

// panelBuilder renders a panel into one or more tables with the given formatter.
type panelBuilder func(f formatter) []panelTable

// renderPanel writes data in the configured output format. JSON encodes the
// panel value itself; CSV and text go through the panel tables.
func renderPanel(w io.Writer, cfg *contract.Config, duration time.Duration, data any, build panelBuilder) error {
	switch cfg.Output {
	case schema.JSONOut:
		return writeJSON(w, data)
	case schema.CSVOut:
		for i, t := range build(newFormatter(cfg, true)) {
			if i > 0 {
				if _, err := fmt.Fprintln(w); err != nil {
					return err
				}
			}
			if err := writeCSVTable(w, t); err != nil {
				return err
			}
		}
		return nil
	case schema.ParquetOut:
		return ErrParquetUnsupported
	default:
		for i, t := range build(newFormatter(cfg, false)) {
			if i > 0 {
				if _, err := fmt.Fprintln(w); err != nil {
					return err
				}
			}
			if err := writeTable(w, t); err != nil {
				return err
			}
		}
		_, err := fmt.Fprintf(w, "Panel computed in %v. Datamart backend: %s\n", duration, cfg.DBBackend)
		return err
	}
}

// writePanel renders a panel to the configured output file (stdout by default).
func writePanel(cfg *contract.Config, duration time.Duration, data any, build panelBuilder) error {
	if cfg.Output == schema.ParquetOut {
		return ErrParquetUnsupported
	}
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		return renderPanel(w, cfg, duration, data, build)
	}, successMessage(cfg.Output))
}

func successMessage(mode schema.OutputMode) string {
	switch mode {
	case schema.JSONOut:
		return "Wrote JSON"
	case schema.CSVOut:
		return "Wrote CSV"
	default:
		return "Wrote table"
	}
}

func single(table panelTable) []panelTable {
	return []panelTable{table}
}

// WritePortfolio prints the executive portfolio headline.
func (ow *OutWriter) WritePortfolio(m schema.PortfolioMetrics, cfg *contract.Config, duration time.Duration) error {
	return writePanel(cfg, duration, m, func(f formatter) []panelTable { return single(portfolioTable(m, f)) })
}

// WriteRiskDistribution prints the non-empty risk tiers of the portfolio.
func (ow *OutWriter) WriteRiskDistribution(buckets []schema.RiskBucket, cfg *contract.Config, duration time.Duration) error {
	return writePanel(cfg, duration, buckets, func(f formatter) []panelTable { return single(riskDistributionTable(buckets, f)) })
}

// WriteSummaries prints the application summaries panel. It is the only
// panel that also supports Parquet output.
func (ow *OutWriter) WriteSummaries(summaries []schema.ApplicationSummary, cfg *contract.Config, duration time.Duration) error {
	if cfg.Output == schema.ParquetOut {
		if err := parquet.WriteApplicationSummariesParquet(parquet.ConvertApplicationSummaries(summaries), cfg.OutputFile); err != nil {
			return err
		}
		_, _ = fmt.Fprintf(os.Stderr, "💾 Wrote Parquet to %s\n", cfg.OutputFile)
		return nil
	}
	return writePanel(cfg, duration, summaries, func(f formatter) []panelTable { return single(summariesTable(summaries, f)) })
}

// WriteHealthTrend prints the monthly Total Quality Index series.
func (ow *OutWriter) WriteHealthTrend(trend schema.HealthTrend, cfg *contract.Config, duration time.Duration) error {
	return writePanel(cfg, duration, trend, func(f formatter) []panelTable { return single(healthTrendTable(trend, f)) })
}

// WriteQualityTrend prints the monthly multi-criterion series.
func (ow *OutWriter) WriteQualityTrend(trend schema.QualityTrend, cfg *contract.Config, duration time.Duration) error {
	return writePanel(cfg, duration, trend, func(f formatter) []panelTable { return single(qualityTrendTable(trend, f)) })
}

// WriteTechnologyHealth prints the average health per technology.
func (ow *OutWriter) WriteTechnologyHealth(techs []schema.TechnologyHealth, cfg *contract.Config, duration time.Duration) error {
	return writePanel(cfg, duration, techs, func(f formatter) []panelTable { return single(technologyTable(techs, f)) })
}

// WriteArchitecture prints the architecture complexity panel.
func (ow *OutWriter) WriteArchitecture(arch schema.ArchitectureComplexity, cfg *contract.Config, duration time.Duration) error {
	return writePanel(cfg, duration, arch, func(f formatter) []panelTable { return single(architectureTable(arch, f)) })
}

// WriteSecurity prints the security panel.
func (ow *OutWriter) WriteSecurity(sec schema.SecurityMetrics, cfg *contract.Config, duration time.Duration) error {
	return writePanel(cfg, duration, sec, func(f formatter) []panelTable { return single(securityTable(sec, f)) })
}

// WritePerformance prints the performance panel.
func (ow *OutWriter) WritePerformance(perf schema.PerformanceMetrics, cfg *contract.Config, duration time.Duration) error {
	return writePanel(cfg, duration, perf, func(f formatter) []panelTable { return single(performanceTable(perf, f)) })
}

// WriteApplications prints the applications that have a latest snapshot.
func (ow *OutWriter) WriteApplications(apps []schema.ApplicationRef, cfg *contract.Config, duration time.Duration) error {
	return writePanel(cfg, duration, apps, func(f formatter) []panelTable { return single(applicationsTable(apps, f)) })
}

// WriteApplicationHealth prints the health scorecard of one application.
func (ow *OutWriter) WriteApplicationHealth(h schema.ApplicationHealth, cfg *contract.Config, duration time.Duration) error {
	return writePanel(cfg, duration, h, func(f formatter) []panelTable { return single(applicationHealthTable(h, f)) })
}

// WriteApplicationViolations prints the violations of one application by technology.
func (ow *OutWriter) WriteApplicationViolations(v schema.ApplicationViolations, cfg *contract.Config, duration time.Duration) error {
	return writePanel(cfg, duration, v, func(f formatter) []panelTable { return single(violationsTable(v, f)) })
}

// WriteApplicationRisk prints the source object risk analysis of one application.
func (ow *OutWriter) WriteApplicationRisk(r schema.ApplicationRisk, cfg *contract.Config, duration time.Duration) error {
	return writePanel(cfg, duration, r, func(f formatter) []panelTable { return single(applicationRiskTable(r, f)) })
}

// WriteApplicationProductivity prints the productivity panel of one application.
func (ow *OutWriter) WriteApplicationProductivity(p schema.ApplicationProductivity, cfg *contract.Config, duration time.Duration) error {
	return writePanel(cfg, duration, p, func(f formatter) []panelTable { return single(productivityTable(p, f)) })
}

// WriteISOTrends prints the ISO-5055 compliance history of one application.
func (ow *OutWriter) WriteISOTrends(points []schema.ISOTrendPoint, cfg *contract.Config, duration time.Duration) error {
	return writePanel(cfg, duration, points, func(f formatter) []panelTable { return single(isoTrendTable(points, f)) })
}

// WriteCWEFindings prints the CWE weakness categories of one application.
func (ow *OutWriter) WriteCWEFindings(findings []schema.CWEFinding, cfg *contract.Config, duration time.Duration) error {
	return writePanel(cfg, duration, findings, func(f formatter) []panelTable { return single(cweTable(findings, f)) })
}

// WriteOverview prints the executive panels one after another.
func (ow *OutWriter) WriteOverview(o schema.Overview, cfg *contract.Config, duration time.Duration) error {
	return writePanel(cfg, duration, o, func(f formatter) []panelTable { return overviewTables(o, f) })
}

// WriteStatus prints the datamart status. Only JSON differs from the plain report.
func (ow *OutWriter) WriteStatus(status schema.DatamartStatus, cfg *contract.Config) error {
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		if cfg.Output == schema.JSONOut {
			return writeJSON(w, status)
		}
		datamart.PrintStatus(w, status)
		return nil
	}, "Wrote status")
}
