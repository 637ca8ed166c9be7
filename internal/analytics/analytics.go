// Package analytics computes aggregate stock metrics over location
// collections. Every function is pure: inputs are never mutated and identical
// inputs always produce identical, deterministically ordered outputs.
package analytics

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"go-warehouse-ws/internal/model"
)

// Error definitions
var (
	ErrInvalidThreshold = errors.New("overstock threshold must be >= understock threshold and both non-negative")
	ErrUnknownDimension = errors.New("unknown grouping dimension")
)

// Dimension selects the categorical axis for group-by style aggregations.
type Dimension string

const (
	DimensionZone        Dimension = "zone"
	DimensionProductType Dimension = "product_type"
	DimensionStorageType Dimension = "storage_type"
)

// ParseDimension validates a dimension name from the API surface.
func ParseDimension(s string) (Dimension, error) {
	switch Dimension(s) {
	case DimensionZone, DimensionProductType, DimensionStorageType:
		return Dimension(s), nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownDimension, s)
	}
}

func dimensionKey(loc *model.Location, dim Dimension) string {
	switch dim {
	case DimensionZone:
		return string(loc.Zone)
	case DimensionProductType:
		return string(loc.ProductType)
	case DimensionStorageType:
		return string(loc.StorageType)
	}
	return ""
}

// Summary holds the headline occupancy metrics for a location collection.
type Summary struct {
	TotalLocations  int     `json:"total_locations"`
	FilledLocations int     `json:"filled_locations"`
	EmptyLocations  int     `json:"empty_locations"`
	TotalQuantity   int     `json:"total_quantity"`
	UtilizationPct  float64 `json:"utilization_pct"`
}

// Summarize computes headline metrics. Filled and empty counts always sum to
// the total; utilization is 0 for an empty collection, never a division fault.
func Summarize(locations []model.Location) Summary {
	s := Summary{TotalLocations: len(locations)}
	for i := range locations {
		if locations[i].IsEmpty() {
			s.EmptyLocations++
		} else {
			s.FilledLocations++
		}
		s.TotalQuantity += locations[i].Quantity
	}
	if s.TotalLocations > 0 {
		s.UtilizationPct = float64(s.FilledLocations) / float64(s.TotalLocations) * 100
	}
	return s
}

// GroupMetric is one row of a group-by aggregation.
type GroupMetric struct {
	Key           string  `json:"key"`
	Count         int     `json:"count"`
	TotalQuantity int     `json:"total_quantity"`
	AvgQuantity   float64 `json:"avg_quantity"`
}

// GroupBy aggregates count, total and average quantity along one categorical
// dimension. Groups are returned sorted by key so output order is stable.
func GroupBy(locations []model.Location, dim Dimension) ([]GroupMetric, error) {
	if _, err := ParseDimension(string(dim)); err != nil {
		return nil, err
	}

	byKey := make(map[string]*GroupMetric)
	for i := range locations {
		key := dimensionKey(&locations[i], dim)
		g, ok := byKey[key]
		if !ok {
			g = &GroupMetric{Key: key}
			byKey[key] = g
		}
		g.Count++
		g.TotalQuantity += locations[i].Quantity
	}

	out := make([]GroupMetric, 0, len(byKey))
	for _, g := range byKey {
		g.AvgQuantity = float64(g.TotalQuantity) / float64(g.Count)
		out = append(out, *g)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })
	return out, nil
}

// IssueReport partitions a collection by stock-level condition. Empty
// locations are a distinct condition, reported as a count rather than folded
// into the understock list.
type IssueReport struct {
	Understocked []model.Location `json:"understocked"`
	Overstocked  []model.Location `json:"overstocked"`
	EmptyCount   int              `json:"empty_count"`
	NormalCount  int              `json:"normal_count"`
}

// ClassifyIssues flags understocked (0 < qty < under) and overstocked
// (qty > over) locations. The two sets are disjoint whenever over >= under,
// which is enforced up front.
func ClassifyIssues(locations []model.Location, understock, overstock int) (*IssueReport, error) {
	if understock < 0 || overstock < 0 || overstock < understock {
		return nil, fmt.Errorf("%w: understock=%d overstock=%d", ErrInvalidThreshold, understock, overstock)
	}

	report := &IssueReport{
		Understocked: []model.Location{},
		Overstocked:  []model.Location{},
	}
	for i := range locations {
		q := locations[i].Quantity
		switch {
		case q == 0:
			report.EmptyCount++
		case q < understock:
			report.Understocked = append(report.Understocked, locations[i])
		case q > overstock:
			report.Overstocked = append(report.Overstocked, locations[i])
		default:
			report.NormalCount++
		}
	}
	return report, nil
}

// BalanceStat reports the stock dispersion of one group. CV is the
// coefficient of variation (population stddev / mean): 0 by convention for a
// single-location group, nil when the mean is 0 since the ratio is undefined.
type BalanceStat struct {
	Key    string   `json:"key"`
	Count  int      `json:"count"`
	Mean   float64  `json:"mean"`
	StdDev float64  `json:"std_dev"`
	CV     *float64 `json:"cv"`
}

// BalanceStatistics computes per-group mean and coefficient of variation
// along one dimension. A high CV flags a group with uneven stock distribution
// even when its mean looks acceptable.
func BalanceStatistics(locations []model.Location, dim Dimension) ([]BalanceStat, error) {
	if _, err := ParseDimension(string(dim)); err != nil {
		return nil, err
	}

	byKey := make(map[string][]int)
	for i := range locations {
		key := dimensionKey(&locations[i], dim)
		byKey[key] = append(byKey[key], locations[i].Quantity)
	}

	out := make([]BalanceStat, 0, len(byKey))
	for key, quantities := range byKey {
		stat := BalanceStat{Key: key, Count: len(quantities)}

		sum := 0
		for _, q := range quantities {
			sum += q
		}
		stat.Mean = float64(sum) / float64(len(quantities))

		var sqDiff float64
		for _, q := range quantities {
			d := float64(q) - stat.Mean
			sqDiff += d * d
		}
		stat.StdDev = math.Sqrt(sqDiff / float64(len(quantities)))

		switch {
		case len(quantities) == 1:
			cv := 0.0
			stat.CV = &cv
		case stat.Mean == 0:
			stat.CV = nil
		default:
			cv := stat.StdDev / stat.Mean
			stat.CV = &cv
		}

		out = append(out, stat)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })
	return out, nil
}
