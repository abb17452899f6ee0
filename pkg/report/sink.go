package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"text/tabwriter"
)

// Sink consumes a finished comparison table. The metrics pipeline
// itself performs no output; all rendering goes through sinks
// injected by the caller.
type Sink interface {
	Write(table *ComparisonTable) error
}

// TextSink renders an aligned plain-text table, one row per metric.
type TextSink struct {
	Out io.Writer
}

func (s TextSink) Write(table *ComparisonTable) error {
	w := tabwriter.NewWriter(s.Out, 0, 0, 2, ' ', 0)
	fmt.Fprint(w, "Metric")
	for _, label := range table.Labels {
		fmt.Fprintf(w, "\t%s", label)
	}
	for _, label := range table.Labels {
		if label != table.Baseline {
			fmt.Fprintf(w, "\t%s vs %s (%%)", label, table.Baseline)
		}
	}
	fmt.Fprintln(w)

	for _, row := range table.Rows {
		fmt.Fprint(w, row.Metric)
		for _, v := range row.Values {
			fmt.Fprintf(w, "\t%.4f", v)
		}
		for i, label := range table.Labels {
			if label != table.Baseline {
				fmt.Fprintf(w, "\t%.2f", row.Improvements[i])
			}
		}
		fmt.Fprintln(w)
	}
	return w.Flush()
}

// CSVSink writes the comparison table as CSV: one column per labeled
// run, then one improvement column per non-baseline run.
type CSVSink struct {
	Path string
}

func (s CSVSink) Write(table *ComparisonTable) error {
	f, err := os.Create(s.Path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", s.Path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	header := append([]string{"Metric"}, table.Labels...)
	for _, label := range table.Labels {
		if label != table.Baseline {
			header = append(header, fmt.Sprintf("%s vs %s (%%)", label, table.Baseline))
		}
	}
	if err := w.Write(header); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	for _, row := range table.Rows {
		rec := []string{row.Metric}
		for _, v := range row.Values {
			rec = append(rec, strconv.FormatFloat(v, 'f', -1, 64))
		}
		for i, label := range table.Labels {
			if label != table.Baseline {
				rec = append(rec, strconv.FormatFloat(row.Improvements[i], 'f', -1, 64))
			}
		}
		if err := w.Write(rec); err != nil {
			return fmt.Errorf("writing row %q: %w", row.Metric, err)
		}
	}
	w.Flush()
	return w.Error()
}
