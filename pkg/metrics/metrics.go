// Package metrics computes scheduling-quality metrics over an
// aggregated cluster snapshot: per-dimension load-balancing factors,
// active machine count, total power draw under a configurable power
// model, and the average resource fragmentation index.
package metrics

import (
	"math"

	"github.com/kubesched/schedeval/pkg/snapshot"
)

// PowerCurve selects the shape of the per-machine power model. The
// source material for this metric family uses both conventions; they
// produce opposite-signed comparative results, so the choice is
// explicit configuration rather than an implementation detail.
type PowerCurve string

const (
	// PowerCurveDynamic models power rising with load:
	// K0 + K1*(1 - exp(-K2*util)).
	PowerCurveDynamic PowerCurve = "Dynamic"
	// PowerCurveIdle models power falling with load (idle penalty):
	// K0 + K1*exp(-K2*util).
	PowerCurveIdle PowerCurve = "Idle"
)

// PowerScope selects which machines contribute to total power.
type PowerScope string

const (
	// PowerScopeActive sums power only over machines hosting at
	// least one workload.
	PowerScopeActive PowerScope = "Active"
	// PowerScopeAll sums power over every machine.
	PowerScopeAll PowerScope = "All"
)

// LBFBasis selects the per-machine sample used for the CPU and memory
// load-balancing factors. The two bases differ materially when
// machine capacities are heterogeneous.
type LBFBasis string

const (
	// LBFBasisUsage samples raw usage amounts (cores, GiB).
	LBFBasisUsage LBFBasis = "Usage"
	// LBFBasisRatio samples utilization ratios (usage over the
	// machine's own capacity, clamped to [0,1]).
	LBFBasisRatio LBFBasis = "Ratio"
)

// Config carries the tunable power-model parameters and the variant
// selectors. The zero value of each selector means its default.
type Config struct {
	K0 float64 // baseline power draw per machine, watts
	K1 float64 // load-dependent power range, watts
	K2 float64 // saturation rate of the power curve, dimensionless

	PowerCurve PowerCurve
	PowerScope PowerScope
	LBFBasis   LBFBasis
}

// DefaultConfig returns the configuration matching the reference
// evaluation: dynamic curve, active-only summation, raw-usage LBF.
func DefaultConfig() Config {
	return Config{
		K0:         150.0,
		K1:         100.0,
		K2:         3.0,
		PowerCurve: PowerCurveDynamic,
		PowerScope: PowerScopeActive,
		LBFBasis:   LBFBasisUsage,
	}
}

func (c Config) complete() Config {
	if c.PowerCurve == "" {
		c.PowerCurve = PowerCurveDynamic
	}
	if c.PowerScope == "" {
		c.PowerScope = PowerScopeActive
	}
	if c.LBFBasis == "" {
		c.LBFBasis = LBFBasisUsage
	}
	return c
}

// Report is the fixed set of metrics computed from one snapshot. It
// is a pure derived value with no reference back to the snapshot.
type Report struct {
	LBFCPU           float64
	LBFMem           float64
	LBFPod           float64
	ActiveMachines   int
	TotalPower       float64
	AvgFragmentation float64
}

// Field is one named metric value, in report order.
type Field struct {
	Name  string
	Value float64
}

// Fields returns the report as ordered name/value pairs for
// tabulation and export.
func (r Report) Fields() []Field {
	return []Field{
		{Name: "LBF CPU", Value: r.LBFCPU},
		{Name: "LBF Mem", Value: r.LBFMem},
		{Name: "LBF Pod", Value: r.LBFPod},
		{Name: "Active Machines", Value: float64(r.ActiveMachines)},
		{Name: "Total Power", Value: r.TotalPower},
		{Name: "Avg RF", Value: r.AvgFragmentation},
	}
}

// Compute evaluates all metrics over an aggregated snapshot. It is
// total over every structurally valid snapshot: empty machine sets,
// zero capacities and zero totals all yield zero-valued metrics, never
// an error or a NaN.
func Compute(cs *snapshot.ClusterSnapshot, cfg Config) Report {
	cfg = cfg.complete()

	var r Report
	machines := cs.Machines
	if len(machines) == 0 {
		return r
	}

	cpuSamples := make([]float64, len(machines))
	memSamples := make([]float64, len(machines))
	podSamples := make([]float64, len(machines))
	for i, m := range machines {
		switch cfg.LBFBasis {
		case LBFBasisRatio:
			cpuSamples[i] = utilization(m.UsedCPU, m.CapacityCPU)
			memSamples[i] = utilization(m.UsedMem, m.CapacityMem)
		default:
			cpuSamples[i] = m.UsedCPU
			memSamples[i] = m.UsedMem
		}
		podSamples[i] = float64(m.WorkloadCount)
	}
	r.LBFCPU = coefficientOfVariation(cpuSamples)
	r.LBFMem = coefficientOfVariation(memSamples)
	r.LBFPod = coefficientOfVariation(podSamples)

	unscheduledRatio := 0.0
	if cs.TotalWorkloads > 0 {
		unscheduledRatio = float64(cs.Unscheduled) / float64(cs.TotalWorkloads)
	}

	fragSum := 0.0
	for _, m := range machines {
		if m.WorkloadCount > 0 {
			r.ActiveMachines++
		}

		if cfg.PowerScope == PowerScopeAll || m.WorkloadCount > 0 {
			r.TotalPower += cfg.machinePower(utilization(m.UsedCPU, m.CapacityCPU))
		}

		fragSum += fragmentation(m, unscheduledRatio)
	}
	r.AvgFragmentation = fragSum / float64(len(machines))

	return r
}

// utilization is usage over capacity clamped to [0,1]; zero capacity
// yields zero rather than NaN.
func utilization(used, capacity float64) float64 {
	if capacity <= 0 {
		return 0
	}
	return math.Min(1.0, used/capacity)
}

func (c Config) machinePower(util float64) float64 {
	if c.PowerCurve == PowerCurveIdle {
		return c.K0 + c.K1*math.Exp(-c.K2*util)
	}
	return c.K0 + c.K1*(1-math.Exp(-c.K2*util))
}

// fragmentation is the normalized remaining-capacity magnitude of one
// machine scaled by the cluster-wide unscheduled ratio. Zero-capacity
// machines contribute zero.
func fragmentation(m *snapshot.MachineRecord, unscheduledRatio float64) float64 {
	capNorm := math.Hypot(m.CapacityCPU, m.CapacityMem)
	if capNorm == 0 {
		return 0
	}
	leftNorm := math.Hypot(m.CapacityCPU-m.UsedCPU, m.CapacityMem-m.UsedMem)
	return leftNorm / capNorm * unscheduledRatio
}

// coefficientOfVariation is population standard deviation over mean,
// zero when the mean is not positive.
func coefficientOfVariation(samples []float64) float64 {
	if len(samples) == 0 {
		return 0
	}
	mean := 0.0
	for _, v := range samples {
		mean += v
	}
	mean /= float64(len(samples))
	if mean <= 0 {
		return 0
	}
	variance := 0.0
	for _, v := range samples {
		d := v - mean
		variance += d * d
	}
	variance /= float64(len(samples))
	return math.Sqrt(variance) / mean
}
