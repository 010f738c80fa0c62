// Copyright 2020 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package strategy applies the calibrated cost model to choose between the
// Sparse and Rectangle transmission strategies (spec.md §4.5). This is a
// closed two-variant choice, implemented as a tagged branch rather than a
// polymorphic dispatch (spec.md §9).
package strategy

// HeuristicCostPerPixel is the calibrated bytes-equivalent cost of one
// sparse pixel command: an 8-byte on-wire minimum plus the per-message
// latency the panel exhibits at low occupancy (spec.md §4.5).
const HeuristicCostPerPixel = 12

// Strategy is the closed set of transmission strategies.
type Strategy int

const (
	Sparse Strategy = iota
	Rectangle
)

func (s Strategy) String() string {
	switch s {
	case Sparse:
		return "Sparse"
	case Rectangle:
		return "Rectangle"
	default:
		return "Unknown"
	}
}

// Select returns the strategy for a scan outcome, plus the cost values that
// drove the decision (for logging/testing). diffW and diffH are the
// bounding box dimensions; changeCount is the number of differing pixels.
func Select(changeCount, diffW, diffH int) (strat Strategy, boxCost, pointCost int) {
	boxCost = 6 + diffW*diffH*2
	pointCost = changeCount * HeuristicCostPerPixel
	if pointCost < boxCost {
		return Sparse, boxCost, pointCost
	}
	return Rectangle, boxCost, pointCost
}
