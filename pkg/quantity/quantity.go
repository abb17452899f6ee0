// Package quantity normalizes the resource-quantity strings found in
// scheduler snapshot documents into canonical units: CPU in cores,
// memory in GiB.
//
// The grammar here is the snapshot grammar, not the Kubernetes
// resource.Quantity grammar: the binary marker "i" is ignored, "G"
// means GiB, "M" means MiB, and a bare memory number is already GiB.
package quantity

import (
	"fmt"
	"strconv"
	"strings"
)

// MalformedQuantityError reports a quantity value that is non-empty
// but not numeric after unit normalization. The raw value is kept so
// callers can surface the record it belonged to.
type MalformedQuantityError struct {
	Raw      string
	Resource string
}

func (e *MalformedQuantityError) Error() string {
	return fmt.Sprintf("malformed %s quantity %q", e.Resource, e.Raw)
}

// ParseCPU converts a CPU quantity string to cores. A trailing "m"
// denotes millicores. Empty input parses to zero.
func ParseCPU(raw string) (float64, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return 0, nil
	}
	div := 1.0
	if strings.HasSuffix(s, "m") {
		s = s[:len(s)-1]
		div = 1000.0
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || v < 0 {
		return 0, &MalformedQuantityError{Raw: raw, Resource: "cpu"}
	}
	return v / div, nil
}

// ParseMemory converts a memory quantity string to GiB. A trailing
// "G" is GiB as-is, a trailing "M" is MiB, no suffix is already GiB.
// Empty input parses to zero.
func ParseMemory(raw string) (float64, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return 0, nil
	}
	// The binary marker carries no information in this grammar.
	s = strings.ReplaceAll(s, "i", "")
	div := 1.0
	switch {
	case strings.HasSuffix(s, "G"):
		s = s[:len(s)-1]
	case strings.HasSuffix(s, "M"):
		s = s[:len(s)-1]
		div = 1024.0
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || v < 0 {
		return 0, &MalformedQuantityError{Raw: raw, Resource: "memory"}
	}
	return v / div, nil
}
