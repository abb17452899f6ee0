package exporter_test

import (
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/kubesched/schedeval/pkg/exporter"
	"github.com/kubesched/schedeval/pkg/metrics"
	"github.com/kubesched/schedeval/pkg/report"
)

func TestCollector(t *testing.T) {
	reports := []report.LabeledReport{
		{Label: "default", Report: metrics.Report{
			LBFCPU: 0.5, LBFMem: 0.4, LBFPod: 0.3,
			ActiveMachines: 4, TotalPower: 500, AvgFragmentation: 0.1,
		}},
		{Label: "aware", Report: metrics.Report{
			LBFCPU: 0.2, LBFMem: 0.2, LBFPod: 0.1,
			ActiveMachines: 3, TotalPower: 400, AvgFragmentation: 0.05,
		}},
	}

	c := exporter.NewCollector(reports)

	// Six metrics, two runs each.
	if got := testutil.CollectAndCount(c); got != 12 {
		t.Fatalf("expected 12 metric samples, got %d", got)
	}

	expected := strings.NewReader(`
# HELP schedeval_total_power_watts Aggregate modeled power draw
# TYPE schedeval_total_power_watts gauge
schedeval_total_power_watts{run="aware"} 400
schedeval_total_power_watts{run="default"} 500
`)
	if err := testutil.CollectAndCompare(c, expected, "schedeval_total_power_watts"); err != nil {
		t.Errorf("unexpected total power series: %v", err)
	}

	expected = strings.NewReader(`
# HELP schedeval_active_nodes Number of nodes hosting at least one pod
# TYPE schedeval_active_nodes gauge
schedeval_active_nodes{run="aware"} 3
schedeval_active_nodes{run="default"} 4
`)
	if err := testutil.CollectAndCompare(c, expected, "schedeval_active_nodes"); err != nil {
		t.Errorf("unexpected active nodes series: %v", err)
	}
}
