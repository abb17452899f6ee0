package capture_test

import (
	"bytes"
	"context"
	"testing"

	v1 "k8s.io/api/core/v1"
	"k8s.io/apimachinery/pkg/api/resource"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/client-go/kubernetes/fake"

	"github.com/kubesched/schedeval/pkg/capture"
	"github.com/kubesched/schedeval/pkg/snapshot"
)

func TestWriteProducesLoadableSnapshot(t *testing.T) {
	client := fake.NewSimpleClientset(
		&v1.Node{
			ObjectMeta: metav1.ObjectMeta{Name: "node-1"},
			Status: v1.NodeStatus{
				Capacity: v1.ResourceList{
					v1.ResourceCPU:    resource.MustParse("4"),
					v1.ResourceMemory: resource.MustParse("8Gi"),
				},
			},
		},
		&v1.Pod{
			ObjectMeta: metav1.ObjectMeta{Name: "web-1", Namespace: "default"},
			Spec: v1.PodSpec{
				NodeName: "node-1",
				Containers: []v1.Container{
					{
						Name: "app",
						Resources: v1.ResourceRequirements{
							Requests: v1.ResourceList{
								v1.ResourceCPU:    resource.MustParse("500m"),
								v1.ResourceMemory: resource.MustParse("1Gi"),
							},
						},
					},
				},
			},
		},
		&v1.Pod{
			ObjectMeta: metav1.ObjectMeta{Name: "pending-1", Namespace: "default"},
			Spec: v1.PodSpec{
				Containers: []v1.Container{{Name: "app"}},
			},
		},
	)

	var buf bytes.Buffer
	if err := capture.Write(context.Background(), client, &buf); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// The captured document must round-trip through the evaluation
	// pipeline's own loader.
	doc, err := snapshot.Parse(buf.Bytes())
	if err != nil {
		t.Fatalf("captured snapshot failed to parse: %v", err)
	}
	cs, err := snapshot.Aggregate(doc)
	if err != nil {
		t.Fatalf("captured snapshot failed to aggregate: %v", err)
	}

	if len(cs.Machines) != 1 {
		t.Fatalf("expected 1 machine, got %d", len(cs.Machines))
	}
	rec := cs.Machines[0]
	if rec.CapacityCPU != 4 || rec.CapacityMem != 8 {
		t.Errorf("capacity = (%v, %v), want (4, 8)", rec.CapacityCPU, rec.CapacityMem)
	}
	if rec.UsedCPU != 0.5 || rec.UsedMem != 1 {
		t.Errorf("usage = (%v, %v), want (0.5, 1)", rec.UsedCPU, rec.UsedMem)
	}
	if cs.Unscheduled != 1 {
		t.Errorf("Unscheduled = %d, want 1", cs.Unscheduled)
	}
}
