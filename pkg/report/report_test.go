package report_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/kubesched/schedeval/pkg/metrics"
	"github.com/kubesched/schedeval/pkg/report"
)

func sampleReport(power float64) metrics.Report {
	return metrics.Report{
		LBFCPU:           0.5,
		LBFMem:           0.4,
		LBFPod:           0.3,
		ActiveMachines:   4,
		TotalPower:       power,
		AvgFragmentation: 0.1,
	}
}

func TestImprovement(t *testing.T) {
	scenarios := []struct {
		name      string
		baseline  float64
		candidate float64
		expected  float64
	}{
		{name: "Halved", baseline: 100, candidate: 50, expected: 50},
		{name: "Doubled", baseline: 100, candidate: 200, expected: -100},
		{name: "Identical", baseline: 42, candidate: 42, expected: 0},
		{name: "ZeroBaseline", baseline: 0, candidate: 10, expected: 0},
	}
	for _, tc := range scenarios {
		t.Run(tc.name, func(t *testing.T) {
			if got := report.Improvement(tc.baseline, tc.candidate); got != tc.expected {
				t.Errorf("Improvement(%v, %v) = %v, want %v",
					tc.baseline, tc.candidate, got, tc.expected)
			}
		})
	}
}

func TestCompareIdenticalReports(t *testing.T) {
	reports := []report.LabeledReport{
		{Label: "default", Report: sampleReport(500)},
		{Label: "aware", Report: sampleReport(500)},
	}
	table, err := report.Compare(reports, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if table.Baseline != "default" {
		t.Errorf("first label must become the baseline, got %q", table.Baseline)
	}
	for _, row := range table.Rows {
		for i, imp := range row.Improvements {
			if imp != 0 {
				t.Errorf("metric %q improvement for %q = %v, want 0 for identical reports",
					row.Metric, table.Labels[i], imp)
			}
		}
	}
}

func TestCompareThreeRuns(t *testing.T) {
	reports := []report.LabeledReport{
		{Label: "default", Report: sampleReport(500)},
		{Label: "aware", Report: sampleReport(250)},
		{Label: "packed", Report: sampleReport(1000)},
	}
	table, err := report.Compare(reports, "default")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if diff := cmp.Diff([]string{"default", "aware", "packed"}, table.Labels); diff != "" {
		t.Fatalf("labels mismatch (-want +got):\n%s", diff)
	}

	var powerRow *report.Row
	for i := range table.Rows {
		if table.Rows[i].Metric == "Total Power" {
			powerRow = &table.Rows[i]
		}
	}
	if powerRow == nil {
		t.Fatal("Total Power row missing")
	}
	if powerRow.Improvements[1] != 50 {
		t.Errorf("aware power improvement = %v, want 50", powerRow.Improvements[1])
	}
	if powerRow.Improvements[2] != -100 {
		t.Errorf("packed power improvement = %v, want -100", powerRow.Improvements[2])
	}
}

func TestCompareUnknownBaseline(t *testing.T) {
	reports := []report.LabeledReport{{Label: "default", Report: sampleReport(500)}}
	if _, err := report.Compare(reports, "missing"); err == nil {
		t.Fatal("expected an error for an unknown baseline label")
	}
}

func TestCompareEmpty(t *testing.T) {
	if _, err := report.Compare(nil, ""); err == nil {
		t.Fatal("expected an error for an empty report sequence")
	}
}

const testSnapshot = `
nodes:
- metadata:
    name: node-1
  status:
    capacity:
      cpu: "4"
      memory: 8Gi
pods:
- spec:
    nodeName: node-1
    containers:
    - resources:
        requests:
          cpu: "1"
          memory: 2Gi
`

func writeSnapshot(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "snap.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestRunEndToEnd(t *testing.T) {
	path := writeSnapshot(t, testSnapshot)
	lr, err := report.Run("default", path, metrics.DefaultConfig())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if lr.Label != "default" {
		t.Errorf("label = %q, want default", lr.Label)
	}
	if lr.Report.ActiveMachines != 1 {
		t.Errorf("ActiveMachines = %d, want 1", lr.Report.ActiveMachines)
	}
}

func TestRunAllSurfacesFailingLabel(t *testing.T) {
	good := writeSnapshot(t, testSnapshot)
	bad := writeSnapshot(t, "pods: []\n")

	_, err := report.RunAll([]report.Input{
		{Label: "good", Path: good},
		{Label: "broken", Path: bad},
	}, metrics.DefaultConfig())
	if err == nil {
		t.Fatal("expected the malformed run to fail the batch")
	}
	if !strings.Contains(err.Error(), "broken") {
		t.Errorf("error must name the failing run, got: %v", err)
	}
}

func TestTextSink(t *testing.T) {
	reports := []report.LabeledReport{
		{Label: "default", Report: sampleReport(500)},
		{Label: "aware", Report: sampleReport(250)},
	}
	table, err := report.Compare(reports, "")
	if err != nil {
		t.Fatal(err)
	}

	var sb strings.Builder
	if err := (report.TextSink{Out: &sb}).Write(table); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	out := sb.String()
	for _, want := range []string{"Metric", "default", "aware", "Total Power", "50.00"} {
		if !strings.Contains(out, want) {
			t.Errorf("text output missing %q:\n%s", want, out)
		}
	}
}

func TestCSVSink(t *testing.T) {
	reports := []report.LabeledReport{
		{Label: "default", Report: sampleReport(500)},
		{Label: "aware", Report: sampleReport(250)},
	}
	table, err := report.Compare(reports, "")
	if err != nil {
		t.Fatal(err)
	}

	path := filepath.Join(t.TempDir(), "comparison_results.csv")
	if err := (report.CSVSink{Path: path}).Write(table); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 7 { // header + six metrics
		t.Fatalf("expected 7 CSV lines, got %d:\n%s", len(lines), data)
	}
	if lines[0] != "Metric,default,aware,aware vs default (%)" {
		t.Errorf("unexpected header: %s", lines[0])
	}
}

func TestChartSink(t *testing.T) {
	reports := []report.LabeledReport{
		{Label: "default", Report: sampleReport(500)},
		{Label: "aware", Report: sampleReport(250)},
	}
	table, err := report.Compare(reports, "")
	if err != nil {
		t.Fatal(err)
	}

	path := filepath.Join(t.TempDir(), "comparison.html")
	if err := (report.ChartSink{Path: path, Title: "Default vs Power-Aware"}).Write(table); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	html := string(data)
	for _, want := range []string{"Default vs Power-Aware", "LBF CPU", "Avg RF"} {
		if !strings.Contains(html, want) {
			t.Errorf("chart output missing %q", want)
		}
	}
}
