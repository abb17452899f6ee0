// Package snapshot defines the cluster snapshot document consumed by
// the metrics engine: a nodes list and a pods list, as dumped from a
// scheduler run, plus the aggregation that turns the document into
// per-machine usage records.
package snapshot

import (
	"encoding/json"
	"fmt"
	"os"

	"sigs.k8s.io/yaml"
)

// MalformedSnapshotError reports a snapshot document that lacks the
// required top-level structure. It aborts a run before aggregation.
type MalformedSnapshotError struct {
	Reason string
}

func (e *MalformedSnapshotError) Error() string {
	return fmt.Sprintf("malformed snapshot: %s", e.Reason)
}

// RawQuantity is a quantity value exactly as it appears in the
// document. Producers emit both quoted strings and bare numbers, so
// both are accepted.
type RawQuantity string

func (q *RawQuantity) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*q = RawQuantity(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("quantity must be a string or number, got %s", string(data))
	}
	*q = RawQuantity(n.String())
	return nil
}

// Document is the top-level snapshot structure.
type Document struct {
	Nodes []Node `json:"nodes"`
	Pods  []Pod  `json:"pods"`
}

// Node is one machine entry.
type Node struct {
	Metadata Metadata   `json:"metadata"`
	Status   NodeStatus `json:"status"`
}

// Metadata carries the identifying fields of a node or pod entry.
type Metadata struct {
	Name      string `json:"name"`
	Namespace string `json:"namespace,omitempty"`
}

// NodeStatus holds the declared capacity of a node.
type NodeStatus struct {
	Capacity ResourceList `json:"capacity"`
}

// ResourceList is a cpu/memory quantity pair. Absent fields parse to
// zero downstream.
type ResourceList struct {
	CPU    RawQuantity `json:"cpu,omitempty"`
	Memory RawQuantity `json:"memory,omitempty"`
}

// Pod is one workload entry.
type Pod struct {
	Metadata Metadata `json:"metadata,omitempty"`
	Spec     PodSpec  `json:"spec"`
}

// PodSpec carries the assignment and the resource-consuming units. An
// absent or empty NodeName marks the pod unscheduled.
type PodSpec struct {
	NodeName   string      `json:"nodeName,omitempty"`
	Containers []Container `json:"containers,omitempty"`
}

// Container is one resource-consuming unit inside a pod.
type Container struct {
	Name      string               `json:"name,omitempty"`
	Resources ResourceRequirements `json:"resources,omitempty"`
}

// ResourceRequirements holds the requested quantities of a container.
type ResourceRequirements struct {
	Requests ResourceList `json:"requests,omitempty"`
}

// Load reads and parses a snapshot document from a file.
func Load(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading snapshot %s: %w", path, err)
	}
	return Parse(data)
}

// Parse decodes a snapshot document and validates its structure.
// Structural problems surface as MalformedSnapshotError before any
// aggregation happens.
func Parse(data []byte) (*Document, error) {
	var doc Document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, &MalformedSnapshotError{Reason: err.Error()}
	}
	if err := doc.Validate(); err != nil {
		return nil, err
	}
	return &doc, nil
}

// Validate checks the document for the required top-level structure:
// both lists present (empty is fine) and every node named.
func (d *Document) Validate() error {
	if d.Nodes == nil {
		return &MalformedSnapshotError{Reason: "missing nodes list"}
	}
	if d.Pods == nil {
		return &MalformedSnapshotError{Reason: "missing pods list"}
	}
	for i, n := range d.Nodes {
		if n.Metadata.Name == "" {
			return &MalformedSnapshotError{Reason: fmt.Sprintf("node at index %d has no metadata.name", i)}
		}
	}
	return nil
}
