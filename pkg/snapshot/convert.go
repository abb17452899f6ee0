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

package snapshot

import (
	"strconv"

	v1 "k8s.io/api/core/v1"
	"k8s.io/apimachinery/pkg/api/resource"
)

// FromNodes converts typed core/v1 nodes into snapshot node entries.
// Memory capacities are canonicalized to GiB so that kubelet-reported
// values (usually Ki) fit the snapshot quantity grammar.
func FromNodes(nodes []v1.Node) []Node {
	out := make([]Node, 0, len(nodes))
	for _, n := range nodes {
		out = append(out, Node{
			Metadata: Metadata{Name: n.Name},
			Status: NodeStatus{
				Capacity: fromResourceList(n.Status.Capacity),
			},
		})
	}
	return out
}

// FromPods converts typed core/v1 pods into snapshot pod entries,
// keeping only the fields the aggregator reads: assignment and
// per-container requests.
func FromPods(pods []v1.Pod) []Pod {
	out := make([]Pod, 0, len(pods))
	for _, p := range pods {
		containers := make([]Container, 0, len(p.Spec.Containers))
		for _, c := range p.Spec.Containers {
			containers = append(containers, Container{
				Name: c.Name,
				Resources: ResourceRequirements{
					Requests: fromResourceList(c.Resources.Requests),
				},
			})
		}
		out = append(out, Pod{
			Metadata: Metadata{Name: p.Name, Namespace: p.Namespace},
			Spec: PodSpec{
				NodeName:   p.Spec.NodeName,
				Containers: containers,
			},
		})
	}
	return out
}

func fromResourceList(rl v1.ResourceList) ResourceList {
	out := ResourceList{}
	if q, ok := rl[v1.ResourceCPU]; ok {
		out.CPU = RawQuantity(q.String())
	}
	if q, ok := rl[v1.ResourceMemory]; ok {
		out.Memory = RawQuantity(formatGiB(q))
	}
	return out
}

// formatGiB renders a memory quantity as "<n>Gi". resource.Quantity
// strings such as "16386980Ki" are not part of the snapshot grammar,
// so the value is converted rather than passed through.
func formatGiB(q resource.Quantity) string {
	gib := float64(q.Value()) / float64(1<<30)
	return strconv.FormatFloat(gib, 'g', -1, 64) + "Gi"
}
