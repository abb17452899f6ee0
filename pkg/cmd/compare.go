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

package cmd

import (
	"github.com/spf13/cobra"
	"k8s.io/klog/v2"

	"github.com/kubesched/schedeval/pkg/report"
)

func newCompareCommand() *cobra.Command {
	var (
		snapshots []string
		baseline  string
		csvPath   string
		chartPath string
		title     string
		model     modelFlags
	)

	cmd := &cobra.Command{
		Use:   "compare",
		Short: "Evaluate labeled snapshots and tabulate relative improvement",
		Example: `  schedeval compare \
    --snapshot default=normaloutput.yml \
    --snapshot power-aware=poweroutput.yml \
    --csv results/comparison_results.csv --chart results/comparison.html`,
		RunE: func(cmd *cobra.Command, args []string) error {
			inputs, err := parseInputs(snapshots)
			if err != nil {
				return err
			}
			cfg, err := model.config()
			if err != nil {
				return err
			}

			reports, err := report.RunAll(inputs, cfg)
			if err != nil {
				return err
			}
			table, err := report.Compare(reports, baseline)
			if err != nil {
				return err
			}

			sinks := []report.Sink{report.TextSink{Out: cmd.OutOrStdout()}}
			if csvPath != "" {
				sinks = append(sinks, report.CSVSink{Path: csvPath})
			}
			if chartPath != "" {
				sinks = append(sinks, report.ChartSink{Path: chartPath, Title: title})
			}
			for _, sink := range sinks {
				if err := sink.Write(table); err != nil {
					return err
				}
			}
			klog.V(1).InfoS("Comparison complete", "runs", len(reports), "baseline", table.Baseline)
			return nil
		},
	}

	fs := cmd.Flags()
	fs.StringArrayVar(&snapshots, "snapshot", nil, "labeled snapshot as label=path, repeatable")
	fs.StringVar(&baseline, "baseline", "", "label of the baseline run (default: first snapshot)")
	fs.StringVar(&csvPath, "csv", "", "write the comparison table to this CSV file")
	fs.StringVar(&chartPath, "chart", "", "render a grouped bar chart to this HTML file")
	fs.StringVar(&title, "title", "", "chart title")
	model.addFlags(fs)
	return cmd
}
