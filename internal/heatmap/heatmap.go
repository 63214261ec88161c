// Package heatmap turns daily contribution counts into a fixed 53 by 7 grid
// of color buckets, the way GitHub draws its contribution graph.
package heatmap

import "github.com/xvierd/discipline-tracker/internal/domain"

// Grid dimensions and cell geometry in pixels.
const (
	Weeks    = 53
	Days     = 7
	CellSize = 14
	CellGap  = 3
)

// Bucket is a discrete intensity level.
type Bucket int

const (
	BucketEmpty Bucket = iota
	BucketLow
	BucketMedium
	BucketHigh
	BucketMax
)

var bucketColors = [...]string{
	BucketEmpty:  "#161b22",
	BucketLow:    "#0e4429",
	BucketMedium: "#006d32",
	BucketHigh:   "#26a641",
	BucketMax:    "#39d353",
}

// BucketFor classifies a day's count.
func BucketFor(count int) Bucket {
	switch {
	case count <= 0:
		return BucketEmpty
	case count <= 2:
		return BucketLow
	case count <= 4:
		return BucketMedium
	case count <= 6:
		return BucketHigh
	default:
		return BucketMax
	}
}

// Color returns the hex color of the bucket.
func (b Bucket) Color() string {
	if b < BucketEmpty || b > BucketMax {
		return bucketColors[BucketEmpty]
	}
	return bucketColors[b]
}

// Cell is one day of the grid.
type Cell struct {
	Date   domain.Date
	Count  int
	Bucket Bucket
}

// Grid is indexed by week then day. Week 0, day 0 is today and each step
// goes one day further back.
type Grid [Weeks][Days]Cell

// Build derives the grid for the 371 days ending at today.
func Build(contributions map[domain.Date]int, today domain.Date) Grid {
	var g Grid
	for w := 0; w < Weeks; w++ {
		for d := 0; d < Days; d++ {
			day := today.AddDays(-(w*Days + d))
			count := contributions[day]
			g[w][d] = Cell{Date: day, Count: count, Bucket: BucketFor(count)}
		}
	}
	return g
}

// Total returns the sum of all counts shown in the grid.
func (g *Grid) Total() int {
	total := 0
	for w := range g {
		for d := range g[w] {
			total += g[w][d].Count
		}
	}
	return total
}

// Rect is a single fill instruction.
type Rect struct {
	X, Y   float32
	Width  float32
	Height float32
	Color  string
}

// Rects returns one fill rectangle per cell, laid out with weeks as columns
// and days as rows.
func (g *Grid) Rects() []Rect {
	rects := make([]Rect, 0, Weeks*Days)
	for w := 0; w < Weeks; w++ {
		for d := 0; d < Days; d++ {
			rects = append(rects, Rect{
				X:      float32(w * (CellSize + CellGap)),
				Y:      float32(d * (CellSize + CellGap)),
				Width:  CellSize,
				Height: CellSize,
				Color:  g[w][d].Bucket.Color(),
			})
		}
	}
	return rects
}

// Width is the pixel width of the drawn grid.
func Width() int {
	return Weeks*CellSize + (Weeks-1)*CellGap
}

// Height is the pixel height of the drawn grid.
func Height() int {
	return Days*CellSize + (Days-1)*CellGap
}
