package metrics

import (
	"bytes"
	"fmt"
	"text/tabwriter"
)

// Collector observes the predictions and losses of every batch of an epoch
type Collector struct {
	Confusion *Confusion
	Losses    []float64
}

// NewCollector ...
func NewCollector(numClasses int) *Collector {
	return &Collector{Confusion: NewConfusion(numClasses)}
}

// Observe records the predictions and the loss of one batch
func (c *Collector) Observe(preds, labels []int64, loss float64) error {
	for i, label := range labels {
		if err := c.Confusion.Add(label, preds[i]); err != nil {
			return err
		}
	}
	c.Losses = append(c.Losses, loss)
	return nil
}

// ClassReport holds the metrics of one class
type ClassReport struct {
	Class     int     `json:"class"`
	Precision float64 `json:"precision"`
	Recall    float64 `json:"recall"`
	F1        float64 `json:"f1"`
	Support   int     `json:"support"`
}

// Report summarizes the collected predictions
type Report struct {
	Classes []ClassReport `json:"classes"`
	// Accuracy is in percent
	Accuracy float64     `json:"accuracy"`
	MacroF1  float64     `json:"macro_f1"`
	Support  int         `json:"support"`
	Loss     LossSummary `json:"loss"`
}

// Report computes per-class precision, recall and F1. Undefined ratios are 0.
func (c *Collector) Report() Report {
	conf := c.Confusion
	r := Report{
		Support: conf.Total(),
		Loss:    Summarize(c.Losses),
	}
	if r.Support > 0 {
		r.Accuracy = 100 * float64(conf.Correct()) / float64(r.Support)
	}

	for k := 0; k < conf.NumClasses(); k++ {
		tp := float64(conf.Count(k, k))
		cr := ClassReport{
			Class:     k,
			Precision: ratio(tp, float64(conf.Predicted(k))),
			Recall:    ratio(tp, float64(conf.Support(k))),
			Support:   conf.Support(k),
		}
		cr.F1 = ratio(2*cr.Precision*cr.Recall, cr.Precision+cr.Recall)
		r.MacroF1 += cr.F1
		r.Classes = append(r.Classes, cr)
	}
	if len(r.Classes) > 0 {
		r.MacroF1 /= float64(len(r.Classes))
	}
	return r
}

func ratio(num, den float64) float64 {
	if den == 0 {
		return 0
	}
	return num / den
}

// String formats the report as a table
func (r Report) String() string {
	var b bytes.Buffer
	tw := tabwriter.NewWriter(&b, 4, 4, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintf(tw, "class\tprecision\trecall\tf1\tsupport\t\n")
	for _, c := range r.Classes {
		fmt.Fprintf(tw, "%d\t%.2f\t%.2f\t%.2f\t%d\t\n", c.Class, c.Precision, c.Recall, c.F1, c.Support)
	}
	fmt.Fprintf(tw, "accuracy\t\t\t%.2f%%\t%d\t\n", r.Accuracy, r.Support)
	fmt.Fprintf(tw, "macro f1\t\t\t%.2f\t\t\n", r.MacroF1)
	tw.Flush()
	return b.String()
}
