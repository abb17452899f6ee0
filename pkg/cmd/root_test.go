package cmd

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/kubesched/schedeval/pkg/metrics"
	"github.com/kubesched/schedeval/pkg/report"
)

func TestParseInputs(t *testing.T) {
	scenarios := []struct {
		name     string
		values   []string
		expected []report.Input
		wantErr  bool
	}{
		{
			name:   "LabeledPairs",
			values: []string{"default=a.yml", "aware=b.yml"},
			expected: []report.Input{
				{Label: "default", Path: "a.yml"},
				{Label: "aware", Path: "b.yml"},
			},
		},
		{
			name:     "BarePathIsItsOwnLabel",
			values:   []string{"a.yml"},
			expected: []report.Input{{Label: "a.yml", Path: "a.yml"}},
		},
		{name: "Empty", values: nil, wantErr: true},
		{name: "DuplicateLabel", values: []string{"x=a.yml", "x=b.yml"}, wantErr: true},
		{name: "EmptyPath", values: []string{"x="}, wantErr: true},
	}

	for _, tc := range scenarios {
		t.Run(tc.name, func(t *testing.T) {
			got, err := parseInputs(tc.values)
			if tc.wantErr {
				if err == nil {
					t.Fatal("expected an error")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if diff := cmp.Diff(tc.expected, got); diff != "" {
				t.Errorf("inputs mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestModelFlagsValidation(t *testing.T) {
	f := modelFlags{k0: 150, k1: 100, k2: 3, powerCurve: "Dynamic", powerScope: "Active", lbfBasis: "Usage"}
	cfg, err := f.config()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.PowerCurve != metrics.PowerCurveDynamic {
		t.Errorf("PowerCurve = %q, want Dynamic", cfg.PowerCurve)
	}

	f.powerCurve = "Sideways"
	if _, err := f.config(); err == nil {
		t.Fatal("expected an error for an unknown power curve")
	}
}
