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

// Package capture dumps a live cluster's nodes and pods into the
// snapshot document format, producing the files the evaluation
// pipeline consumes.
package capture

import (
	"context"
	"fmt"
	"io"

	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/client-go/kubernetes"
	"k8s.io/client-go/rest"
	"k8s.io/client-go/tools/clientcmd"
	"k8s.io/klog/v2"
	"sigs.k8s.io/yaml"

	"github.com/kubesched/schedeval/pkg/snapshot"
)

// NewClient builds a clientset from the given kubeconfig path, or
// from in-cluster config when the path is empty.
func NewClient(kubeconfig string) (kubernetes.Interface, error) {
	var config *rest.Config
	var err error
	if kubeconfig == "" {
		config, err = rest.InClusterConfig()
	} else {
		config, err = clientcmd.BuildConfigFromFlags("", kubeconfig)
	}
	if err != nil {
		return nil, fmt.Errorf("building client config: %w", err)
	}
	return kubernetes.NewForConfig(config)
}

// Snapshot lists all nodes and all pods and converts them into a
// snapshot document.
func Snapshot(ctx context.Context, client kubernetes.Interface) (*snapshot.Document, error) {
	nodes, err := client.CoreV1().Nodes().List(ctx, metav1.ListOptions{})
	if err != nil {
		return nil, fmt.Errorf("listing nodes: %w", err)
	}
	pods, err := client.CoreV1().Pods(metav1.NamespaceAll).List(ctx, metav1.ListOptions{})
	if err != nil {
		return nil, fmt.Errorf("listing pods: %w", err)
	}

	doc := &snapshot.Document{
		Nodes: snapshot.FromNodes(nodes.Items),
		Pods:  snapshot.FromPods(pods.Items),
	}
	klog.V(2).InfoS("Captured cluster snapshot", "nodes", len(doc.Nodes), "pods", len(doc.Pods))
	return doc, nil
}

// Write captures a snapshot and writes it as YAML.
func Write(ctx context.Context, client kubernetes.Interface, w io.Writer) error {
	doc, err := Snapshot(ctx, client)
	if err != nil {
		return err
	}
	data, err := yaml.Marshal(doc)
	if err != nil {
		return fmt.Errorf("encoding snapshot: %w", err)
	}
	_, err = w.Write(data)
	return err
}
