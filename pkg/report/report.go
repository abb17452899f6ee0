// Package report orchestrates metric pipeline runs over labeled
// snapshots and tabulates pairwise percentage improvements between
// them. The comparison is plain structured data; rendering is left to
// injected sinks.
package report

import (
	"fmt"

	"k8s.io/klog/v2"

	"github.com/kubesched/schedeval/pkg/metrics"
	"github.com/kubesched/schedeval/pkg/snapshot"
)

// LabeledReport pairs a run label with its computed metrics.
type LabeledReport struct {
	Label  string
	Report metrics.Report
}

// Row is one metric across all labeled runs. Values and Improvements
// are aligned with ComparisonTable.Labels; the baseline's own
// improvement entry is zero.
type Row struct {
	Metric       string
	Values       []float64
	Improvements []float64
}

// ComparisonTable is the derived comparison over a sequence of
// labeled reports against one baseline.
type ComparisonTable struct {
	Labels   []string
	Baseline string
	Rows     []Row
}

// Run executes the full pipeline for one labeled snapshot file:
// load, aggregate, compute.
func Run(label, path string, cfg metrics.Config) (LabeledReport, error) {
	doc, err := snapshot.Load(path)
	if err != nil {
		return LabeledReport{}, fmt.Errorf("run %q: %w", label, err)
	}
	cs, err := snapshot.Aggregate(doc)
	if err != nil {
		return LabeledReport{}, fmt.Errorf("run %q: %w", label, err)
	}
	report := metrics.Compute(cs, cfg)
	klog.V(2).InfoS("Computed metrics", "run", label, "snapshot", path,
		"activeMachines", report.ActiveMachines, "totalPower", report.TotalPower)
	return LabeledReport{Label: label, Report: report}, nil
}

// RunAll executes the pipeline once per labeled snapshot. Each run is
// independent; the first failure is returned with its label and no
// partial results are substituted.
func RunAll(runs []Input, cfg metrics.Config) ([]LabeledReport, error) {
	reports := make([]LabeledReport, 0, len(runs))
	for _, in := range runs {
		lr, err := Run(in.Label, in.Path, cfg)
		if err != nil {
			return nil, err
		}
		reports = append(reports, lr)
	}
	return reports, nil
}

// Input names one snapshot file to evaluate.
type Input struct {
	Label string
	Path  string
}

// Improvement is the relative gain of candidate over baseline in
// percent. A zero baseline yields zero by convention, not a failure.
func Improvement(baseline, candidate float64) float64 {
	if baseline == 0 {
		return 0
	}
	return (baseline - candidate) / baseline * 100
}

// Compare tabulates the given reports against the named baseline.
// With an empty baseline label the first report is the baseline.
func Compare(reports []LabeledReport, baseline string) (*ComparisonTable, error) {
	if len(reports) == 0 {
		return nil, fmt.Errorf("no reports to compare")
	}
	if baseline == "" {
		baseline = reports[0].Label
	}
	baseIdx := -1
	for i, lr := range reports {
		if lr.Label == baseline {
			baseIdx = i
			break
		}
	}
	if baseIdx < 0 {
		return nil, fmt.Errorf("baseline %q is not among the labeled reports", baseline)
	}

	table := &ComparisonTable{
		Labels:   make([]string, len(reports)),
		Baseline: baseline,
	}
	for i, lr := range reports {
		table.Labels[i] = lr.Label
	}

	baseFields := reports[baseIdx].Report.Fields()
	for fi, bf := range baseFields {
		row := Row{
			Metric:       bf.Name,
			Values:       make([]float64, len(reports)),
			Improvements: make([]float64, len(reports)),
		}
		for ri, lr := range reports {
			v := lr.Report.Fields()[fi].Value
			row.Values[ri] = v
			if ri != baseIdx {
				row.Improvements[ri] = Improvement(bf.Value, v)
			}
		}
		table.Rows = append(table.Rows, row)
	}
	return table, nil
}
