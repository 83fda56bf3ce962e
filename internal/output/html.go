package output

import (
	"fmt"
	"html/template"
	"time"

	"github.com/shopspring/decimal"

	"github.com/gridbill/gridbill/internal/domain"
	"github.com/gridbill/gridbill/internal/reference"
)

type htmlScenario struct {
	Name      string
	Color     string
	Final     decimal.Decimal
	DeltaText string
	PctText   string
}

type htmlYearRow struct {
	Year  int
	Bills []string
}

type htmlReportData struct {
	RunName      string
	Generated    string
	UtilityName  string
	State        string
	MarketType   string
	Customers    int64
	CurrentBill  decimal.Decimal
	CapacityMW   decimal.Decimal
	OnsiteMW     decimal.Decimal
	FinalYear    int
	Scenarios    []htmlScenario
	Labels       []string
	Rows         []htmlYearRow
	TariffID     string
	AdequacyText string
	Assumptions  []string
}

var htmlReport = template.Must(template.New("report").Funcs(template.FuncMap{
	"curr": FormatCurrency,
	"pct":  FormatPercentage,
}).Parse(htmlReportSource))

// GenerateHTMLReport writes a self-contained HTML report.
func (rg *ReportGenerator) GenerateHTMLReport(report *Report) error {
	data := buildHTMLData(report)
	if err := htmlReport.Execute(rg.Out, data); err != nil {
		return fmt.Errorf("failed to render HTML report: %w", err)
	}
	return nil
}

func buildHTMLData(report *Report) *htmlReportData {
	data := &htmlReportData{
		Generated: time.Now().Format("January 2, 2006"),
	}

	if report.Input != nil {
		data.RunName = report.Input.Name
		data.UtilityName = report.Input.Utility.Name
		data.State = report.Input.Utility.State
		data.MarketType = string(report.Input.Utility.Market.Type)
		data.Customers = report.Input.Utility.ResidentialCustomers
		data.CurrentBill = report.Input.Utility.AvgMonthlyBill
		data.CapacityMW = report.Input.DataCenter.CapacityMW
		data.OnsiteMW = report.Input.DataCenter.OnsiteGenerationMW
		data.TariffID = report.Input.TariffID
		data.Assumptions = AssumptionLines(&report.Input.Assumptions)
	}

	if report.Set != nil {
		data.FinalYear = report.Set.BaseYear + report.Set.Horizon
		for _, id := range domain.ScenarioOrder {
			data.Labels = append(data.Labels, scenarioLabel(id))
		}
		if baseline, ok := report.Set.Get(domain.ScenarioBaseline); ok {
			for i, point := range baseline.Points {
				row := htmlYearRow{Year: point.Year}
				for _, id := range domain.ScenarioOrder {
					cell := "-"
					if t, ok := report.Set.Get(id); ok && i < len(t.Points) {
						cell = FormatCurrency(t.Points[i].MonthlyBill)
					}
					row.Bills = append(row.Bills, cell)
				}
				data.Rows = append(data.Rows, row)
			}
		}
	}

	if report.Summary != nil {
		baselineFinal := report.Summary.FinalYearBills[domain.ScenarioBaseline]
		for _, id := range domain.ScenarioOrder {
			final, ok := report.Summary.FinalYearBills[id]
			if !ok {
				continue
			}
			card := htmlScenario{
				Name:  scenarioLabel(id),
				Color: scenarioColor(id),
				Final: final,
			}
			if id != domain.ScenarioBaseline {
				diff := report.Summary.FinalYearDifference[id]
				card.DeltaText = signedCurrency(diff) + "/mo vs baseline"
				if baselineFinal.GreaterThan(decimal.Zero) {
					card.PctText = signedPercent(diff.Div(baselineFinal).Mul(hundred))
				}
			}
			data.Scenarios = append(data.Scenarios, card)
		}
		if report.Summary.RevenueAdequacyPct != nil {
			data.AdequacyText = FormatPercentage(*report.Summary.RevenueAdequacyPct)
		}
	}

	return data
}

func scenarioColor(id domain.ScenarioID) string {
	if s, ok := reference.ScenarioByID(id); ok {
		return s.Color
	}
	return "#6B7280"
}

const htmlReportSource = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>Community Energy Bill Projection</title>
<style>
body { font-family: -apple-system, "Segoe UI", Roboto, sans-serif; margin: 0; background: #f3f4f6; color: #111827; }
.header { background: #1f2937; color: #f9fafb; padding: 24px 32px; }
.header h1 { margin: 0 0 4px 0; font-size: 22px; }
.header .sub { color: #9ca3af; font-size: 13px; }
.content { max-width: 960px; margin: 0 auto; padding: 24px 32px; }
.section { background: #ffffff; border-radius: 8px; padding: 20px 24px; margin-bottom: 20px; box-shadow: 0 1px 2px rgba(0,0,0,0.06); }
.section h2 { margin: 0 0 12px 0; font-size: 15px; text-transform: uppercase; letter-spacing: 0.05em; color: #6b7280; }
.cards { display: grid; grid-template-columns: repeat(auto-fit, minmax(200px, 1fr)); gap: 16px; }
.card { background: #ffffff; border-radius: 8px; padding: 16px; box-shadow: 0 1px 2px rgba(0,0,0,0.06); }
.card h3 { margin: 0 0 8px 0; font-size: 14px; }
.card .metric { font-size: 24px; font-weight: 600; }
.card .metric span { font-size: 13px; font-weight: 400; color: #6b7280; }
.card .delta { font-size: 13px; color: #6b7280; margin-top: 4px; }
table { width: 100%; border-collapse: collapse; font-size: 13px; }
th, td { text-align: right; padding: 6px 10px; border-bottom: 1px solid #e5e7eb; }
th:first-child, td:first-child { text-align: left; }
th { color: #6b7280; font-weight: 600; }
.facts { font-size: 14px; }
.facts dt { float: left; clear: left; width: 220px; color: #6b7280; }
.facts dd { margin: 0 0 6px 0; }
.assumptions li { font-size: 13px; color: #374151; margin-bottom: 4px; }
.footer { text-align: center; color: #9ca3af; font-size: 12px; padding: 16px; }
</style>
</head>
<body>
<div class="header">
<h1>Community Energy Bill Projection</h1>
<div class="sub">{{if .RunName}}{{.RunName}} &middot; {{end}}Generated {{.Generated}}</div>
</div>
<div class="content">

<div class="section">
<h2>Setup</h2>
<dl class="facts">
<dt>Utility</dt><dd>{{.UtilityName}}{{if .State}} ({{.State}}){{end}}</dd>
<dt>Residential customers</dt><dd>{{.Customers}}</dd>
<dt>Current monthly bill</dt><dd>{{curr .CurrentBill}}</dd>
<dt>Market</dt><dd>{{.MarketType}}</dd>
<dt>Data center capacity</dt><dd>{{.CapacityMW}} MW</dd>
<dt>Onsite generation</dt><dd>{{.OnsiteMW}} MW</dd>
{{if .TariffID}}<dt>Large-load tariff</dt><dd>{{.TariffID}}</dd>{{end}}
</dl>
</div>

{{if .Scenarios}}
<div class="section">
<h2>Final Bills ({{.FinalYear}})</h2>
<div class="cards">
{{range .Scenarios}}
<div class="card" style="border-top: 4px solid {{.Color}}">
<h3>{{.Name}}</h3>
<div class="metric">{{curr .Final}}<span>/mo</span></div>
{{if .DeltaText}}<div class="delta">{{.DeltaText}}{{if .PctText}} ({{.PctText}}){{end}}</div>{{end}}
</div>
{{end}}
</div>
</div>
{{end}}

{{if .Rows}}
<div class="section">
<h2>Monthly Bill Trajectories</h2>
<table>
<tr><th>Year</th>{{range .Labels}}<th>{{.}}</th>{{end}}</tr>
{{range .Rows}}<tr><td>{{.Year}}</td>{{range .Bills}}<td>{{.}}</td>{{end}}</tr>
{{end}}</table>
</div>
{{end}}

{{if .AdequacyText}}
<div class="section">
<h2>Tariff Revenue Adequacy</h2>
<p>Tariff revenue covers {{.AdequacyText}} of the incremental infrastructure cost.</p>
</div>
{{end}}

{{if .Assumptions}}
<div class="section">
<h2>Assumptions</h2>
<ul class="assumptions">
{{range .Assumptions}}<li>{{.}}</li>
{{end}}</ul>
</div>
{{end}}

</div>
<div class="footer">Planning estimates, not rate filings. Actual outcomes depend on regulatory proceedings.</div>
</body>
</html>
`
