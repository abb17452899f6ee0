/*
Copyright 2025 The Kubernetes Authors.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

// Package cmd wires the schedeval command tree: compare, capture and
// serve.
package cmd

import (
	"flag"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"k8s.io/klog/v2"

	"github.com/kubesched/schedeval/pkg/metrics"
	"github.com/kubesched/schedeval/pkg/report"
)

// NewSchedEvalCommand returns the root command.
func NewSchedEvalCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "schedeval",
		Short: "Evaluate and compare scheduling quality from cluster snapshots",
		Long: `schedeval turns static cluster snapshots (nodes + pods) into
comparable scalar metrics: load imbalance, modeled power draw,
resource fragmentation and active-node count, and tabulates the
relative improvement between labeled scheduler runs.`,
		SilenceUsage: true,
	}

	logFlags := flag.NewFlagSet("logging", flag.ContinueOnError)
	klog.InitFlags(logFlags)
	cmd.PersistentFlags().AddGoFlagSet(logFlags)

	cmd.AddCommand(newCompareCommand())
	cmd.AddCommand(newCaptureCommand())
	cmd.AddCommand(newServeCommand())
	return cmd
}

// modelFlags binds the power-model parameters and the documented
// formula-variant selectors.
type modelFlags struct {
	k0         float64
	k1         float64
	k2         float64
	powerCurve string
	powerScope string
	lbfBasis   string
}

func (f *modelFlags) addFlags(fs *pflag.FlagSet) {
	defaults := metrics.DefaultConfig()
	fs.Float64Var(&f.k0, "power-k0", defaults.K0, "baseline per-node power draw in watts")
	fs.Float64Var(&f.k1, "power-k1", defaults.K1, "load-dependent power range in watts")
	fs.Float64Var(&f.k2, "power-k2", defaults.K2, "saturation rate of the power curve")
	fs.StringVar(&f.powerCurve, "power-curve", string(defaults.PowerCurve),
		"power curve variant: Dynamic (rises with load) or Idle (falls with load)")
	fs.StringVar(&f.powerScope, "power-scope", string(defaults.PowerScope),
		"nodes summed for total power: Active or All")
	fs.StringVar(&f.lbfBasis, "lbf-basis", string(defaults.LBFBasis),
		"LBF sample basis: Usage (raw amounts) or Ratio (utilization)")
}

func (f *modelFlags) config() (metrics.Config, error) {
	cfg := metrics.Config{
		K0:         f.k0,
		K1:         f.k1,
		K2:         f.k2,
		PowerCurve: metrics.PowerCurve(f.powerCurve),
		PowerScope: metrics.PowerScope(f.powerScope),
		LBFBasis:   metrics.LBFBasis(f.lbfBasis),
	}
	switch cfg.PowerCurve {
	case metrics.PowerCurveDynamic, metrics.PowerCurveIdle:
	default:
		return cfg, fmt.Errorf("unknown power curve %q", f.powerCurve)
	}
	switch cfg.PowerScope {
	case metrics.PowerScopeActive, metrics.PowerScopeAll:
	default:
		return cfg, fmt.Errorf("unknown power scope %q", f.powerScope)
	}
	switch cfg.LBFBasis {
	case metrics.LBFBasisUsage, metrics.LBFBasisRatio:
	default:
		return cfg, fmt.Errorf("unknown LBF basis %q", f.lbfBasis)
	}
	return cfg, nil
}

// parseInputs turns repeated "label=path" flag values into run
// inputs. A bare path gets its own value as label.
func parseInputs(values []string) ([]report.Input, error) {
	if len(values) == 0 {
		return nil, fmt.Errorf("at least one --snapshot label=path is required")
	}
	inputs := make([]report.Input, 0, len(values))
	seen := make(map[string]bool, len(values))
	for _, v := range values {
		label, path, found := strings.Cut(v, "=")
		if !found {
			label, path = v, v
		}
		if label == "" || path == "" {
			return nil, fmt.Errorf("invalid snapshot %q, expected label=path", v)
		}
		if seen[label] {
			return nil, fmt.Errorf("duplicate snapshot label %q", label)
		}
		seen[label] = true
		inputs = append(inputs, report.Input{Label: label, Path: path})
	}
	return inputs, nil
}
