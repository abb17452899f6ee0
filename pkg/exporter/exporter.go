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

// Package exporter exposes computed scheduling-quality reports as
// Prometheus gauges so dashboards can scrape A/B evaluation results.
package exporter

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/kubesched/schedeval/pkg/report"
)

const namespace = "schedeval"

// Collector serves one gauge per metric, labeled by run.
type Collector struct {
	reports []report.LabeledReport

	lbfCPU        *prometheus.Desc
	lbfMem        *prometheus.Desc
	lbfPod        *prometheus.Desc
	activeNodes   *prometheus.Desc
	totalPower    *prometheus.Desc
	fragmentation *prometheus.Desc
}

var _ prometheus.Collector = &Collector{}

// NewCollector builds a collector over an already-computed report
// set. The reports are immutable; re-evaluation means a new collector.
func NewCollector(reports []report.LabeledReport) *Collector {
	labels := []string{"run"}
	return &Collector{
		reports: reports,
		lbfCPU: prometheus.NewDesc(
			prometheus.BuildFQName(namespace, "", "lbf_cpu"),
			"Load balancing factor over per-node CPU usage", labels, nil),
		lbfMem: prometheus.NewDesc(
			prometheus.BuildFQName(namespace, "", "lbf_memory"),
			"Load balancing factor over per-node memory usage", labels, nil),
		lbfPod: prometheus.NewDesc(
			prometheus.BuildFQName(namespace, "", "lbf_pods"),
			"Load balancing factor over per-node pod counts", labels, nil),
		activeNodes: prometheus.NewDesc(
			prometheus.BuildFQName(namespace, "", "active_nodes"),
			"Number of nodes hosting at least one pod", labels, nil),
		totalPower: prometheus.NewDesc(
			prometheus.BuildFQName(namespace, "", "total_power_watts"),
			"Aggregate modeled power draw", labels, nil),
		fragmentation: prometheus.NewDesc(
			prometheus.BuildFQName(namespace, "", "avg_fragmentation"),
			"Average resource fragmentation index", labels, nil),
	}
}

func (c *Collector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.lbfCPU
	ch <- c.lbfMem
	ch <- c.lbfPod
	ch <- c.activeNodes
	ch <- c.totalPower
	ch <- c.fragmentation
}

func (c *Collector) Collect(ch chan<- prometheus.Metric) {
	for _, lr := range c.reports {
		r := lr.Report
		ch <- prometheus.MustNewConstMetric(c.lbfCPU, prometheus.GaugeValue, r.LBFCPU, lr.Label)
		ch <- prometheus.MustNewConstMetric(c.lbfMem, prometheus.GaugeValue, r.LBFMem, lr.Label)
		ch <- prometheus.MustNewConstMetric(c.lbfPod, prometheus.GaugeValue, r.LBFPod, lr.Label)
		ch <- prometheus.MustNewConstMetric(c.activeNodes, prometheus.GaugeValue, float64(r.ActiveMachines), lr.Label)
		ch <- prometheus.MustNewConstMetric(c.totalPower, prometheus.GaugeValue, r.TotalPower, lr.Label)
		ch <- prometheus.MustNewConstMetric(c.fragmentation, prometheus.GaugeValue, r.AvgFragmentation, lr.Label)
	}
}
