package batch

import (
	"fmt"
	"math"
)

// Band is a calibration score range. Max is inclusive; a score belongs to the first band
// whose Max it does not exceed.
type Band struct {
	Label string  `json:"label"`
	Min   float64 `json:"min"`
	Max   float64 `json:"max"`
}

// Bands are the calibration bands in ascending order
var Bands = []Band{
	{Label: "0-40", Min: 0, Max: 40},
	{Label: "41-60", Min: 41, Max: 60},
	{Label: "61-75", Min: 61, Max: 75},
	{Label: "76-85", Min: 76, Max: 85},
	{Label: "86-100", Min: 86, Max: 100},
}

// Target is the expected share of scores per band, in band order
type Target [5]float64

// DefaultTarget is the calibration target for a realistic applicant population
func DefaultTarget() Target {
	return Target{0.30, 0.40, 0.20, 0.08, 0.02}
}

// BandIndex returns the band a score falls in
func BandIndex(score float64) int {
	for i, b := range Bands {
		if score <= b.Max {
			return i
		}
	}
	return len(Bands) - 1
}

// Distribution counts scores per band
type Distribution struct {
	Total  int      `json:"total"`
	Counts [5]int   `json:"counts"`
	Mean   float64  `json:"mean"`
	Bands  []string `json:"bands"`
}

// NewDistribution summarizes scores
func NewDistribution(scores []float64) Distribution {
	d := Distribution{Total: len(scores), Bands: bandLabels()}
	sum := 0.0
	for _, s := range scores {
		d.Counts[BandIndex(s)]++
		sum += s
	}
	if d.Total > 0 {
		d.Mean = math.Round(sum/float64(d.Total)*10) / 10
	}
	return d
}

// Shares returns the fraction of scores in each band
func (d Distribution) Shares() [5]float64 {
	var shares [5]float64
	if d.Total == 0 {
		return shares
	}
	for i, c := range d.Counts {
		shares[i] = float64(c) / float64(d.Total)
	}
	return shares
}

// BandDelta compares one band with its target
type BandDelta struct {
	Band   string  `json:"band"`
	Actual float64 `json:"actual"`
	Target float64 `json:"target"`
	Delta  float64 `json:"delta"`
}

// Comparison is a distribution checked against a target
type Comparison struct {
	Deltas       []BandDelta `json:"deltas"`
	MaxDeviation float64     `json:"max_deviation"`
}

// Within reports whether every band is within tolerance of its target share
func (c Comparison) Within(tolerance float64) bool {
	return c.MaxDeviation <= tolerance+1e-9
}

// Compare checks the distribution against target
func (d Distribution) Compare(target Target) Comparison {
	shares := d.Shares()
	cmp := Comparison{Deltas: make([]BandDelta, len(Bands))}
	for i, b := range Bands {
		delta := shares[i] - target[i]
		cmp.Deltas[i] = BandDelta{Band: b.Label, Actual: shares[i], Target: target[i], Delta: delta}
		cmp.MaxDeviation = math.Max(cmp.MaxDeviation, math.Abs(delta))
	}
	return cmp
}

// String renders the comparison as one line per band
func (c Comparison) String() string {
	out := ""
	for _, d := range c.Deltas {
		out += fmt.Sprintf("%-7s actual %5.1f%%  target %5.1f%%  delta %+5.1f%%\n",
			d.Band, d.Actual*100, d.Target*100, d.Delta*100)
	}
	return out
}

func bandLabels() []string {
	labels := make([]string, len(Bands))
	for i, b := range Bands {
		labels[i] = b.Label
	}
	return labels
}
