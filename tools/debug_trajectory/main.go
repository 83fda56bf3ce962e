package main

import (
	"context"
	"fmt"
	"os"

	"github.com/shopspring/decimal"

	calc "github.com/gridbill/gridbill/internal/calculation"
	"github.com/gridbill/gridbill/internal/config"
	"github.com/gridbill/gridbill/internal/domain"
	"github.com/gridbill/gridbill/internal/reference"
	"github.com/gridbill/gridbill/internal/tariff"
)

func main() {
	input := &domain.ProjectionInput{
		Utility:     reference.DefaultUtility(),
		DataCenter:  reference.DefaultDataCenter(),
		Assumptions: reference.DefaultAssumptions(),
	}
	if len(os.Args) > 1 {
		p := config.NewInputParser()
		loaded, err := p.LoadFromFile(os.Args[1])
		if err != nil {
			panic(err)
		}
		input = loaded
	}

	var largeLoad *domain.Tariff
	if input.TariffID != "" {
		if t, ok := tariff.ByID(input.TariffID); ok {
			largeLoad = &t
		}
	}

	engine := calc.NewTrajectoryEngine()
	set, err := engine.ProjectAll(context.Background(), &input.Utility, &input.DataCenter, largeLoad, &input.Assumptions)
	if err != nil {
		panic(err)
	}

	// Header
	header := "Year"
	for _, id := range domain.ScenarioOrder {
		header += fmt.Sprintf(",%s_Bill,%s_Impact", id, id)
	}
	fmt.Println(header)

	base, _ := set.Get(domain.ScenarioBaseline)
	for i := range base.Points {
		row := fmt.Sprintf("%d", base.Points[i].Year)
		for _, id := range domain.ScenarioOrder {
			traj, _ := set.Get(id)
			p := traj.Points[i]
			row += fmt.Sprintf(",%s,%s", p.MonthlyBill.StringFixed(2), p.DCImpact.StringFixed(2))
		}
		fmt.Println(row)
	}

	// Cumulative annual delta of the firm scenario over the baseline
	firm, _ := set.Get(domain.ScenarioUnoptimized)
	twelve := decimal.NewFromInt(12)
	cumBase := decimal.Zero
	cumFirm := decimal.Zero
	for i := range base.Points {
		cumBase = cumBase.Add(base.Points[i].MonthlyBill)
		cumFirm = cumFirm.Add(firm.Points[i].MonthlyBill)
		fmt.Printf("Cumulative Year %d: base=%s firm=%s delta=%s\n",
			base.Points[i].Year,
			cumBase.Mul(twelve).StringFixed(0),
			cumFirm.Mul(twelve).StringFixed(0),
			cumFirm.Sub(cumBase).Mul(twelve).StringFixed(0),
		)
	}
}
