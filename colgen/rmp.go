package colgen

import (
	"math"

	"github.com/arcflow/arcflow/graph"
	"github.com/arcflow/arcflow/mip"
	"github.com/arcflow/arcflow/problem"
	"github.com/arcflow/arcflow/solution"
)

// zeroFlowTolerance bounds how close to zero a column's primal value must
// be to count as a "zero-flow iteration" for the retention policy, and how
// close to zero a flow must be to be worth recording in a PrimalSolution.
const zeroFlowTolerance = 1e-9

type conservationKey struct {
	commodity, vertex int
}

// RMP is the restricted master problem built over a Problem: its demand,
// capacity, flow-conservation, arc-capacity and side-constraint rows, and
// the columns admitted against them so far.
type RMP struct {
	p     *problem.Problem
	model mip.Model
	basis BasisKind

	demandRow   map[int]mip.RowHandle
	capacityRow map[int]mip.RowHandle

	demandArtificial   map[int]mip.VarHandle
	capacityArtificial map[int]mip.VarHandle
	sideArtificial     map[int][]mip.VarHandle

	conservationRow map[conservationKey]mip.RowHandle
	arcCapRow       map[int]mip.RowHandle
	sideRow         map[int]mip.RowHandle

	columns map[string]*Column
	order   []*Column
}

// NewRMP builds the RMP's fixed rows (demand/capacity per commodity,
// arc-capacity per capacitated arc, one row or pair per pushed side
// constraint) over model. Demand, capacity and side-constraint rows each
// get a penalized artificial slack; arc-capacity rows get none.
// Flow-conservation rows are created lazily, on first touch by an admitted
// column, since the spec scopes them to "vertices touched by at least one
// column" rather than the whole vertex set.
func NewRMP(p *problem.Problem, model mip.Model, basis BasisKind) (*RMP, error) {
	r := &RMP{
		p:     p,
		model: model,
		basis: basis,

		demandRow:   map[int]mip.RowHandle{},
		capacityRow: map[int]mip.RowHandle{},

		demandArtificial:   map[int]mip.VarHandle{},
		capacityArtificial: map[int]mip.VarHandle{},
		sideArtificial:     map[int][]mip.VarHandle{},

		conservationRow: map[conservationKey]mip.RowHandle{},
		arcCapRow:       map[int]mip.RowHandle{},
		sideRow:         map[int]mip.RowHandle{},

		columns: map[string]*Column{},
	}

	for _, c := range p.Commodities() {
		demand := r.model.AddRow(problem.GE, c.Demand())
		r.demandArtificial[c.Index()] = r.addArtificial(demand, 1, c.ViolationPenalty())
		r.demandRow[c.Index()] = demand

		capacity := r.model.AddRow(problem.LE, c.Capacity())
		r.capacityArtificial[c.Index()] = r.addArtificial(capacity, -1, c.ViolationPenalty())
		r.capacityRow[c.Index()] = capacity
	}

	for _, a := range p.Network().Arcs() {
		if !p.IsCapacitated(a) {
			continue
		}
		row := r.model.AddRow(problem.LE, p.Capacity(a))
		r.arcCapRow[a.Index()] = row
	}

	for _, row := range p.Constraints() {
		switch row.Kind {
		case problem.GE:
			h := r.model.AddRow(problem.GE, row.RHS)
			r.sideArtificial[row.Index] = []mip.VarHandle{r.addArtificial(h, 1, row.Penalty)}
			r.sideRow[row.Index] = h
		case problem.LE:
			h := r.model.AddRow(problem.LE, row.RHS)
			r.sideArtificial[row.Index] = []mip.VarHandle{r.addArtificial(h, -1, row.Penalty)}
			r.sideRow[row.Index] = h
		case problem.EQ:
			h := r.model.AddRow(problem.EQ, row.RHS)
			plus := r.addArtificial(h, 1, row.Penalty)
			minus := r.addArtificial(h, -1, row.Penalty)
			r.sideArtificial[row.Index] = []mip.VarHandle{plus, minus}
			r.sideRow[row.Index] = h
		}
	}

	return r, nil
}

func (r *RMP) addArtificial(row mip.RowHandle, coeff, penalty float64) mip.VarHandle {
	v := r.model.AddVariable(penalty, math.Inf(1), graph.Continuous)
	_ = r.model.SetCoefficient(row, v, coeff) // row and v were both just allocated; cannot fail.
	return v
}

func (r *RMP) ensureConservationRow(commodityIndex, vertexIndex int) mip.RowHandle {
	key := conservationKey{commodityIndex, vertexIndex}
	if h, ok := r.conservationRow[key]; ok {
		return h
	}
	h := r.model.AddRow(problem.EQ, 0)
	r.conservationRow[key] = h
	return h
}

// AdmitColumn applies the Column admission rule: skip (admitted=false,
// err=nil) if tree is not fully contained in the current network, or if an
// equal (tree, commodity) column already exists; otherwise allocate a new
// RMP variable and wire its coefficients into every row the tree touches.
// It returns ErrUnknownCommodity if c does not belong to the RMP's problem.
func (r *RMP) AdmitColumn(c problem.Commodity, tree *graph.HyperTree, varType graph.VarType, cost float64) (*Column, bool, error) {
	if _, ok := r.demandRow[c.Index()]; !ok {
		return nil, false, ErrUnknownCommodity
	}
	if !tree.ContainsOnly(r.p.Network().HasArc) {
		return nil, false, nil
	}
	key := columnKey(c.Index(), tree)
	if existing, ok := r.columns[key]; ok {
		return existing, false, nil
	}

	vh := r.model.AddVariable(cost, math.Inf(1), varType)
	col := &Column{Tree: tree, Commodity: c, VarType: varType, Cost: cost, varHandle: vh}

	head := tree.Head()
	if head == c.Sink() {
		if err := r.model.SetCoefficient(r.demandRow[c.Index()], vh, 1); err != nil {
			return nil, false, err
		}
		if err := r.model.SetCoefficient(r.capacityRow[c.Index()], vh, 1); err != nil {
			return nil, false, err
		}
	} else {
		row := r.ensureConservationRow(c.Index(), head.Index())
		if err := r.model.SetCoefficient(row, vh, 1); err != nil {
			return nil, false, err
		}
	}

	for _, t := range tree.Tails() {
		if t == c.Source() {
			continue
		}
		mu, _ := tree.TailMultiplier(t)
		row := r.ensureConservationRow(c.Index(), t.Index())
		if err := r.model.SetCoefficient(row, vh, -mu); err != nil {
			return nil, false, err
		}
	}

	for _, a := range tree.Arcs() {
		row, ok := r.arcCapRow[a.Index()]
		if !ok {
			continue
		}
		if err := r.model.SetCoefficient(row, vh, tree.Multiplicity(a)); err != nil {
			return nil, false, err
		}
	}

	sideAgg := map[int]float64{}
	for _, a := range tree.Arcs() {
		mu := tree.Multiplicity(a)
		for _, row := range r.p.ArcConstraints(a) {
			sideAgg[row.Index] += row.Coefficient(a.Index()) * mu
		}
	}
	for rowID, coeff := range sideAgg {
		if coeff == 0 {
			continue
		}
		rh, ok := r.sideRow[rowID]
		if !ok {
			continue
		}
		if err := r.model.SetCoefficient(rh, vh, coeff); err != nil {
			return nil, false, err
		}
	}

	r.columns[key] = col
	r.order = append(r.order, col)
	return col, true, nil
}

// ApplyRetentionPolicy bumps every active column's consecutive-zero-flow
// streak (resetting it on non-zero flow) and fixes a column's upper bound
// to 0 once its streak reaches the configured threshold, dropping it from
// future pricing consideration without disturbing the already-solved
// basis. A threshold <= 0 disables deletion entirely. Columns admitted
// after res was solved have no value in res and are kept unchanged.
func (r *RMP) ApplyRetentionPolicy(res mip.Result, threshold int) {
	if threshold <= 0 {
		return
	}
	kept := r.order[:0]
	for _, col := range r.order {
		if int(col.varHandle) >= len(res.Primal) {
			kept = append(kept, col)
			continue
		}
		val := res.Primal[col.varHandle]
		if val > -zeroFlowTolerance && val < zeroFlowTolerance {
			col.zeroStreak++
		} else {
			col.zeroStreak = 0
		}
		if col.zeroStreak >= threshold {
			_ = r.model.SetUpperBound(col.varHandle, 0) // col.varHandle was allocated by this RMP; cannot fail.
			delete(r.columns, columnKey(col.Commodity.Index(), col.Tree))
			continue
		}
		kept = append(kept, col)
	}
	r.order = kept
}

// ExtractPrimal reads res's variable values back into a PrimalSolution:
// one ArcFlowSolution per commodity (flow = column value * arc
// multiplicity, summed over every active column of that commodity) plus
// the demand/capacity/side-constraint artificial values.
func (r *RMP) ExtractPrimal(res mip.Result) *solution.PrimalSolution {
	ps := solution.NewPrimalSolution()
	byCommodity := map[int]*solution.ArcFlowSolution{}

	for _, col := range r.order {
		if int(col.varHandle) >= len(res.Primal) {
			continue
		}
		val := res.Primal[col.varHandle]
		if val > -zeroFlowTolerance && val < zeroFlowTolerance {
			continue
		}
		af, ok := byCommodity[col.Commodity.Index()]
		if !ok {
			af = solution.NewArcFlowSolution(col.Commodity)
			byCommodity[col.Commodity.Index()] = af
		}
		for _, a := range col.Tree.Arcs() {
			af.AddFlow(a, val*col.Tree.Multiplicity(a))
		}
	}
	for _, c := range r.p.Commodities() {
		if af, ok := byCommodity[c.Index()]; ok {
			ps.SetCommodityFlow(c, af)
		} else {
			ps.SetCommodityFlow(c, solution.NewArcFlowSolution(c))
		}
		if h, ok := r.demandArtificial[c.Index()]; ok && int(h) < len(res.Primal) {
			ps.SetDemandShortfall(c, res.Primal[h])
		}
		if h, ok := r.capacityArtificial[c.Index()]; ok && int(h) < len(res.Primal) {
			ps.SetCapacitySlack(c, res.Primal[h])
		}
	}
	for _, row := range r.p.Constraints() {
		var slack float64
		for _, h := range r.sideArtificial[row.Index] {
			if int(h) < len(res.Primal) {
				slack += res.Primal[h]
			}
		}
		ps.SetConstraintSlack(row.Index, slack)
	}
	return ps
}

// ExtractDual reads res's row duals back into a DualSolution, rounded to
// precision decimal digits. linearRelaxation must be true: a solve with
// integrality enforced carries no well-defined dual, and ExtractDual
// returns ErrNotLinear rather than a meaningless DualSolution in that case.
func (r *RMP) ExtractDual(res mip.Result, precision int, linearRelaxation bool) (*solution.DualSolution, error) {
	if !linearRelaxation {
		return nil, ErrNotLinear
	}
	d := solution.NewDualSolution(precision)
	for _, c := range r.p.Commodities() {
		if h, ok := r.demandRow[c.Index()]; ok && int(h) < len(res.RowDual) {
			d.SetDemandDual(c, res.RowDual[h])
		}
		if h, ok := r.capacityRow[c.Index()]; ok && int(h) < len(res.RowDual) {
			d.SetCapacityDual(c, res.RowDual[h])
		}
	}
	for _, a := range r.p.Network().Arcs() {
		if h, ok := r.arcCapRow[a.Index()]; ok && int(h) < len(res.RowDual) {
			d.SetArcCapacityDual(a, res.RowDual[h])
		}
	}
	for _, row := range r.p.Constraints() {
		if h, ok := r.sideRow[row.Index]; ok && int(h) < len(res.RowDual) {
			d.SetSideConstraintDual(row.Index, res.RowDual[h])
		}
	}
	return d, nil
}
