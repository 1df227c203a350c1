package solution

import (
	"math"

	"github.com/arcflow/arcflow/graph"
	"github.com/arcflow/arcflow/problem"
)

// defaultDualPrecision is the number of decimal digits duals are rounded to
// by default, trading a little accuracy for numerical stability across
// repeated column-generation iterations.
const defaultDualPrecision = 9

// DualSolution is the dual side of a restricted master solve: one value
// per demand row, one per capacity row, one per arc-capacity row and one
// per side-constraint row, rounded to a configured decimal precision.
type DualSolution struct {
	precision int

	demand         map[int]float64 // commodity index -> dual on the demand row
	capacity       map[int]float64 // commodity index -> dual on the capacity row
	arcCapacity    map[int]float64 // arc index -> dual on the arc-capacity row
	sideConstraint map[int]float64 // constraint row id -> dual
}

// NewDualSolution returns an empty dual solution rounding to the given
// decimal precision, or defaultDualPrecision if precision <= 0.
func NewDualSolution(precision int) *DualSolution {
	if precision <= 0 {
		precision = defaultDualPrecision
	}
	return &DualSolution{
		precision:      precision,
		demand:         map[int]float64{},
		capacity:       map[int]float64{},
		arcCapacity:    map[int]float64{},
		sideConstraint: map[int]float64{},
	}
}

func (d *DualSolution) round(v float64) float64 {
	scale := math.Pow(10, float64(d.precision))
	return math.Round(v*scale) / scale
}

// SetDemandDual records commodity c's demand-row dual.
func (d *DualSolution) SetDemandDual(c problem.Commodity, v float64) { d.demand[c.Index()] = d.round(v) }

// DemandDual returns commodity c's demand-row dual.
func (d *DualSolution) DemandDual(c problem.Commodity) float64 { return d.demand[c.Index()] }

// SetCapacityDual records commodity c's capacity-row dual.
func (d *DualSolution) SetCapacityDual(c problem.Commodity, v float64) {
	d.capacity[c.Index()] = d.round(v)
}

// CapacityDual returns commodity c's capacity-row dual.
func (d *DualSolution) CapacityDual(c problem.Commodity) float64 { return d.capacity[c.Index()] }

// SetArcCapacityDual records arc a's capacity-row dual.
func (d *DualSolution) SetArcCapacityDual(a graph.Arc, v float64) {
	d.arcCapacity[a.Index()] = d.round(v)
}

// ArcCapacityDual returns arc a's capacity-row dual (0 if a is uncapacitated
// or slack).
func (d *DualSolution) ArcCapacityDual(a graph.Arc) float64 { return d.arcCapacity[a.Index()] }

// SetSideConstraintDual records side-constraint row id's dual.
func (d *DualSolution) SetSideConstraintDual(rowID int, v float64) {
	d.sideConstraint[rowID] = d.round(v)
}

// SideConstraintDual returns side-constraint row id's dual.
func (d *DualSolution) SideConstraintDual(rowID int) float64 { return d.sideConstraint[rowID] }

// ReducedCostOfArc returns the reduced cost the pricing oracle should
// charge arc a, the same for every commodity: its own cost, less the arc-capacity dual,
// less the sum of side-constraint duals weighted by the arc's coefficient
// in each row that references it. It does not include the demand/capacity
// duals, which apply once per column rather than once per arc.
func (d *DualSolution) ReducedCostOfArc(p *problem.Problem, a graph.Arc) float64 {
	rc := p.Cost(a) - d.arcCapacity[a.Index()]
	for _, row := range p.ArcConstraints(a) {
		rc -= d.sideConstraint[row.Index] * row.Coefficient(a.Index())
	}
	return rc
}
