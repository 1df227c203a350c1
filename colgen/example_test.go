package colgen_test

import (
	"fmt"

	"github.com/arcflow/arcflow/colgen"
	"github.com/arcflow/arcflow/problem"
)

// ExampleSolve_simpleMinCostFlow runs column generation directly on the
// same two-route network as the root package's example: the cheap route
// v1->v2->v4 (cost 2/unit) draws all 5 units of the commodity's flow away
// from the expensive detour through v3.
func ExampleSolve_simpleMinCostFlow() {
	b := problem.NewBuilder()
	v1 := b.NewVertex()
	v2 := b.NewVertex()
	v3 := b.NewVertex()
	v4 := b.NewVertex()

	a1, _ := b.NewArc(v1, 1, v2, problem.WithCost(1))
	b.NewArc(v1, 1, v3, problem.WithCost(1))
	b.NewArc(v2, 1, v3, problem.WithCost(1))
	a4, _ := b.NewArc(v2, 1, v4, problem.WithCost(1))
	b.NewArc(v3, 1, v4, problem.WithCost(20))

	c1, _ := b.NewCommodity(v1, v4, 5, 5)

	p, _ := b.GetProblem()

	res, err := colgen.Solve(p, colgen.Params{Basis: colgen.PathFlow})
	if err != nil {
		fmt.Println(err)
		return
	}

	flow := res.Primal.CommodityFlow(c1)
	fmt.Println(flow.Flow(a1), flow.Flow(a4))
	// Output:
	// 5 5
}
