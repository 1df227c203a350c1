package solution

import (
	"fmt"

	"github.com/arcflow/arcflow/graph"
	"github.com/arcflow/arcflow/problem"
)

// PrimalSolution is the full primal result of a restricted master solve:
// one ArcFlowSolution per commodity, plus the shortfall the RMP's
// artificial slacks absorbed against each commodity's demand and capacity
// rows and against each side-constraint row.
type PrimalSolution struct {
	byCommodity map[int]*ArcFlowSolution

	demandShortfall map[int]float64 // commodity index -> artificial on the demand row
	capacitySlack   map[int]float64 // commodity index -> artificial on the capacity row
	constraintSlack map[int]float64 // constraint row id -> artificial on that row
}

// NewPrimalSolution returns an empty primal solution.
func NewPrimalSolution() *PrimalSolution {
	return &PrimalSolution{
		byCommodity:     map[int]*ArcFlowSolution{},
		demandShortfall: map[int]float64{},
		capacitySlack:   map[int]float64{},
		constraintSlack: map[int]float64{},
	}
}

// SetCommodityFlow installs (or overwrites) the arc-flow solution for one
// commodity.
func (s *PrimalSolution) SetCommodityFlow(c problem.Commodity, flow *ArcFlowSolution) {
	s.byCommodity[c.Index()] = flow
}

// CommodityFlow returns the arc-flow solution for commodity c, or nil if
// none was recorded.
func (s *PrimalSolution) CommodityFlow(c problem.Commodity) *ArcFlowSolution {
	return s.byCommodity[c.Index()]
}

// SetDemandShortfall records the artificial absorbing commodity c's unmet
// demand.
func (s *PrimalSolution) SetDemandShortfall(c problem.Commodity, amount float64) {
	s.demandShortfall[c.Index()] = amount
}

// DemandShortfall returns the artificial absorbing commodity c's unmet
// demand.
func (s *PrimalSolution) DemandShortfall(c problem.Commodity) float64 { return s.demandShortfall[c.Index()] }

// SetCapacitySlack records the value of the artificial on commodity c's
// capacity row: the amount by which the delivered flow exceeds c's
// capacity.
func (s *PrimalSolution) SetCapacitySlack(c problem.Commodity, amount float64) {
	s.capacitySlack[c.Index()] = amount
}

// CapacitySlack returns the artificial absorbing commodity c's capacity row.
func (s *PrimalSolution) CapacitySlack(c problem.Commodity) float64 { return s.capacitySlack[c.Index()] }

// SetConstraintSlack records the artificial absorbing side-constraint row
// id's violation.
func (s *PrimalSolution) SetConstraintSlack(rowID int, amount float64) { s.constraintSlack[rowID] = amount }

// ConstraintSlack returns the artificial absorbing side-constraint row id's
// violation.
func (s *PrimalSolution) ConstraintSlack(rowID int) float64 { return s.constraintSlack[rowID] }

// Flow returns the flow commodity c delivers on arc a, or an error if c is
// unrecorded.
func (s *PrimalSolution) Flow(c problem.Commodity, a graph.Arc) (float64, error) {
	f, ok := s.byCommodity[c.Index()]
	if !ok {
		return 0, fmt.Errorf("solution: commodity %d: %w", c.Index(), ErrUnknownCommodity)
	}
	return f.Flow(a), nil
}

// TotalFlow returns the sum, across every recorded commodity, of the flow
// on arc a.
func (s *PrimalSolution) TotalFlow(a graph.Arc) float64 {
	var total float64
	for _, f := range s.byCommodity {
		total += f.Flow(a)
	}
	return total
}

// ObjectiveValue computes the LP objective: Σ cost(a)*totalFlow(a) over the
// problem's arcs, plus Σ violationPenalty(c)*(demandShortfall(c) +
// capacitySlack(c)) over commodities, plus Σ row.Penalty*slack(row) over
// side-constraint rows.
func (s *PrimalSolution) ObjectiveValue(p *problem.Problem) float64 {
	var total float64
	for _, a := range p.Network().Arcs() {
		total += p.Cost(a) * s.TotalFlow(a)
	}
	for _, c := range p.Commodities() {
		total += c.ViolationPenalty() * (s.demandShortfall[c.Index()] + s.capacitySlack[c.Index()])
	}
	for _, row := range p.Constraints() {
		total += row.Penalty * s.constraintSlack[row.Index]
	}
	return total
}
