package snapshot

import (
	"fmt"

	"k8s.io/klog/v2"

	"github.com/kubesched/schedeval/pkg/quantity"
)

// MachineRecord is the aggregated view of one machine: declared
// capacity plus the usage accumulated from the pods assigned to it.
// Usage may exceed capacity; overcommit is representable and only
// utilization ratios are clamped downstream, never these raw values.
type MachineRecord struct {
	Name          string
	CapacityCPU   float64 // cores
	CapacityMem   float64 // GiB
	UsedCPU       float64 // cores
	UsedMem       float64 // GiB
	WorkloadCount int
}

// ClusterSnapshot is the fully aggregated state of one snapshot
// document. It is built once by Aggregate and read-only afterward.
// Machines preserves the document's node order so repeated runs
// produce identical output.
type ClusterSnapshot struct {
	Machines       []*MachineRecord
	Unscheduled    int
	TotalWorkloads int

	byName map[string]*MachineRecord
}

// Machine looks up a record by machine name.
func (cs *ClusterSnapshot) Machine(name string) (*MachineRecord, bool) {
	rec, ok := cs.byName[name]
	return rec, ok
}

// Aggregate builds the per-machine usage records from a validated
// document.
//
// Policy choices, deliberate and load-bearing for comparisons:
//   - duplicate node names overwrite the prior record (last-write-wins);
//   - pods with no nodeName count as unscheduled and are skipped;
//   - pods referencing an unknown node are a defined no-op, since the
//     snapshot may be partial.
func Aggregate(doc *Document) (*ClusterSnapshot, error) {
	cs := &ClusterSnapshot{
		Machines: make([]*MachineRecord, 0, len(doc.Nodes)),
		byName:   make(map[string]*MachineRecord, len(doc.Nodes)),
	}

	for _, n := range doc.Nodes {
		name := n.Metadata.Name
		capCPU, err := quantity.ParseCPU(string(n.Status.Capacity.CPU))
		if err != nil {
			return nil, fmt.Errorf("node %q capacity: %w", name, err)
		}
		capMem, err := quantity.ParseMemory(string(n.Status.Capacity.Memory))
		if err != nil {
			return nil, fmt.Errorf("node %q capacity: %w", name, err)
		}

		if prev, ok := cs.byName[name]; ok {
			klog.V(2).InfoS("Duplicate node name in snapshot, keeping the later entry", "node", name)
			*prev = MachineRecord{Name: name, CapacityCPU: capCPU, CapacityMem: capMem}
			continue
		}
		rec := &MachineRecord{Name: name, CapacityCPU: capCPU, CapacityMem: capMem}
		cs.Machines = append(cs.Machines, rec)
		cs.byName[name] = rec
	}

	unknown := 0
	for _, p := range doc.Pods {
		cs.TotalWorkloads++

		if p.Spec.NodeName == "" {
			cs.Unscheduled++
			continue
		}

		rec, ok := cs.byName[p.Spec.NodeName]
		if !ok {
			unknown++
			klog.V(4).InfoS("Pod references a node not in the snapshot, skipping",
				"pod", p.Metadata.Name, "node", p.Spec.NodeName)
			continue
		}

		rec.WorkloadCount++
		for _, c := range p.Spec.Containers {
			cpu, err := quantity.ParseCPU(string(c.Resources.Requests.CPU))
			if err != nil {
				return nil, fmt.Errorf("pod %q container %q requests: %w", p.Metadata.Name, c.Name, err)
			}
			mem, err := quantity.ParseMemory(string(c.Resources.Requests.Memory))
			if err != nil {
				return nil, fmt.Errorf("pod %q container %q requests: %w", p.Metadata.Name, c.Name, err)
			}
			rec.UsedCPU += cpu
			rec.UsedMem += mem
		}
	}

	klog.V(3).InfoS("Aggregated snapshot",
		"machines", len(cs.Machines),
		"workloads", cs.TotalWorkloads,
		"unscheduled", cs.Unscheduled,
		"unknownNodeRefs", unknown)
	return cs, nil
}
