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
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	"k8s.io/klog/v2"

	"github.com/kubesched/schedeval/pkg/exporter"
	"github.com/kubesched/schedeval/pkg/report"
)

func newServeCommand() *cobra.Command {
	var (
		snapshots []string
		listen    string
		model     modelFlags
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Evaluate snapshots and expose the reports as Prometheus gauges",
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

			registry := prometheus.NewRegistry()
			registry.MustRegister(exporter.NewCollector(reports))

			mux := http.NewServeMux()
			mux.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))

			klog.InfoS("Serving evaluation metrics", "listen", listen, "runs", len(reports))
			return http.ListenAndServe(listen, mux)
		},
	}

	fs := cmd.Flags()
	fs.StringArrayVar(&snapshots, "snapshot", nil, "labeled snapshot as label=path, repeatable")
	fs.StringVar(&listen, "listen", ":9090", "address to serve /metrics on")
	model.addFlags(fs)
	return cmd
}
