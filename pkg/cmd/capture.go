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
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/kubesched/schedeval/pkg/capture"
)

func newCaptureCommand() *cobra.Command {
	var (
		kubeconfig string
		output     string
	)

	cmd := &cobra.Command{
		Use:   "capture",
		Short: "Dump a live cluster's nodes and pods as a snapshot document",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := capture.NewClient(kubeconfig)
			if err != nil {
				return err
			}

			var w io.Writer = cmd.OutOrStdout()
			if output != "" && output != "-" {
				f, err := os.Create(output)
				if err != nil {
					return err
				}
				defer f.Close()
				w = f
			}
			return capture.Write(cmd.Context(), client, w)
		},
	}

	fs := cmd.Flags()
	fs.StringVar(&kubeconfig, "kubeconfig", "", "path to kubeconfig (default: in-cluster config)")
	fs.StringVar(&output, "output", "-", "output file, or - for stdout")
	return cmd
}
