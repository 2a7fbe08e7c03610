// Package report renders the run results into self-contained HTML pages,
// one light and one dark variant, each linking to the other.
package report

import (
	"fmt"
	"html/template"
	"os"
	"path/filepath"
	"sort"
	"time"

	"MarketPulse/internal/model"
)

// palette holds the per-variant colors.
type palette struct {
	Mode       string
	Background string
	Text       string
	CardBg     string
	HeaderBg   string
	ButtonText string
	LinkTarget string
}

var palettes = []palette{
	{
		Mode:       "light",
		Background: "#f4f4f9",
		Text:       "#333",
		CardBg:     "white",
		HeaderBg:   "#e8f5e9",
		ButtonText: "Dark mode",
		LinkTarget: "report_dark.html",
	},
	{
		Mode:       "dark",
		Background: "#121212",
		Text:       "#e0e0e0",
		CardBg:     "#2d2d2d",
		HeaderBg:   "#333",
		ButtonText: "Light mode",
		LinkTarget: "report_light.html",
	},
}

// row adapts an IndicatorResult for the template.
type row struct {
	model.IndicatorResult
	ChangeColor string
	RSIText     string
}

// histRow is one pre-formatted history line; absent observations render
// as a dash.
type histRow struct {
	Key   string
	Cells []string
	Ratio float64
}

type pageData struct {
	palette
	GeneratedAt    string
	RatioName      string
	Ratio          float64
	Rows           []row
	HistoryColumns []string
	HistoryRows    []histRow
}

// Renderer writes the report files for each run.
type Renderer struct {
	OutputDir string
	RatioName string
}

// NewRenderer creates a renderer targeting outputDir.
func NewRenderer(outputDir, ratioName string) *Renderer {
	return &Renderer{OutputDir: outputDir, RatioName: ratioName}
}

// Render writes report_light.html and report_dark.html from the run's
// results and the recent history window.
func (r *Renderer) Render(results []model.IndicatorResult, ratio float64, recent []model.Snapshot) error {
	if err := os.MkdirAll(r.OutputDir, 0755); err != nil {
		return fmt.Errorf("create report dir: %w", err)
	}

	rows := make([]row, len(results))
	for i, res := range results {
		rows[i] = row{IndicatorResult: res, ChangeColor: "#4caf50", RSIText: "–"}
		if res.Change < 0 {
			rows[i].ChangeColor = "#ff5252"
		}
		if res.RSIValid {
			rows[i].RSIText = fmt.Sprintf("%.1f", res.RSI)
		}
	}

	columns, histRows := buildHistory(recent)

	for _, pal := range palettes {
		data := pageData{
			palette:        pal,
			GeneratedAt:    time.Now().Format("2006-01-02 15:04"),
			RatioName:      r.RatioName,
			Ratio:          ratio,
			Rows:           rows,
			HistoryColumns: columns,
			HistoryRows:    histRows,
		}
		path := filepath.Join(r.OutputDir, "report_"+pal.Mode+".html")
		f, err := os.Create(path)
		if err != nil {
			return fmt.Errorf("create %s: %w", path, err)
		}
		if err := pageTmpl.Execute(f, data); err != nil {
			f.Close()
			return fmt.Errorf("render %s: %w", path, err)
		}
		if err := f.Close(); err != nil {
			return fmt.Errorf("close %s: %w", path, err)
		}
	}
	return nil
}

// buildHistory flattens the recent window into a fixed column set (union of
// observed instrument names, sorted) and per-row formatted cells.
func buildHistory(recent []model.Snapshot) ([]string, []histRow) {
	seen := make(map[string]bool)
	var columns []string
	for _, snap := range recent {
		for name := range snap.Prices {
			if !seen[name] {
				seen[name] = true
				columns = append(columns, name)
			}
		}
	}
	sort.Strings(columns)

	histRows := make([]histRow, len(recent))
	for i, snap := range recent {
		cells := make([]string, len(columns))
		for j, name := range columns {
			if v, ok := snap.Prices[name]; ok {
				cells[j] = fmt.Sprintf("%.2f", v)
			} else {
				cells[j] = "–"
			}
		}
		histRows[i] = histRow{Key: snap.Key, Cells: cells, Ratio: snap.Ratio}
	}
	return columns, histRows
}

var pageTmpl = template.Must(template.New("report").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="UTF-8">
<meta name="viewport" content="width=device-width, initial-scale=1.0">
<title>Market Risk Report ({{.Mode}})</title>
<style>
body { font-family: Arial, sans-serif; background-color: {{.Background}}; color: {{.Text}}; margin: 0; padding: 20px; }
.container { display: flex; flex-wrap: wrap; gap: 20px; justify-content: center; }
.card { background: {{.CardBg}}; width: 100%; max-width: 450px; border-radius: 10px; margin-bottom: 10px; padding-bottom: 10px; box-shadow: 0 4px 6px rgba(0,0,0,0.3); }
.header { background: {{.HeaderBg}}; padding: 15px; font-weight: bold; display: flex; justify-content: space-between; color: {{.Text}}; }
.content { padding: 15px; display: flex; justify-content: space-between; }
.price { font-size: 1.8em; font-weight: bold; }
.badge { color: white; padding: 2px 10px; border-radius: 10px; font-size: 0.8em; }
.meta { font-size: 0.85em; opacity: 0.8; padding: 0 15px; }
a.button { display: inline-block; padding: 10px 20px; background: #007bff; color: white; text-decoration: none; border-radius: 20px; font-weight: bold; }
table.history { margin: 20px auto; border-collapse: collapse; background: {{.CardBg}}; }
table.history th, table.history td { padding: 6px 12px; border-bottom: 1px solid rgba(128,128,128,0.3); text-align: right; }
</style>
</head>
<body>
<div style="text-align: right; margin-bottom: 20px;"><a href="{{.LinkTarget}}" class="button">{{.ButtonText}}</a></div>
<h1 style="text-align:center">Market Risk Report</h1>
<p style="text-align:center">{{.GeneratedAt}}</p>
<div style="text-align:center; margin-bottom: 20px; padding: 10px; background: {{.CardBg}}; border-radius: 10px;">
<h3>{{.RatioName}} ratio: {{printf "%.4f" .Ratio}}</h3>
</div>
<div class="container">
{{range .Rows}}
<div class="card">
  <div class="header">
    <span>{{.Name}}</span>
    <span class="badge" style="background:{{.Tier.Color}}">{{.Tier.Label}}</span>
  </div>
  <div class="content">
    <div>
      <div class="price">{{printf "%.2f" .Price}}</div>
      <div style="color:{{.ChangeColor}}">{{printf "%.2f" .Change}} ({{printf "%.2f" .PctChange}}%)</div>
    </div>
    <div style="text-align:right">
      <div>Conversion probability</div>
      <div style="font-size:2em; font-weight:bold; color:{{.Tier.Color}}">{{printf "%.0f" .ConversionProb}}%</div>
    </div>
  </div>
  <div class="meta">z {{printf "%+.2f" .ZScore}} · RSI {{.RSIText}} · drawdown {{printf "%.1f" .Drawdown}}%</div>
</div>
{{end}}
</div>
{{if .HistoryRows}}
<h3 style="text-align:center">Recent history</h3>
<table class="history">
<tr><th>Time</th>{{range .HistoryColumns}}<th>{{.}}</th>{{end}}<th>{{.RatioName}}</th></tr>
{{range .HistoryRows}}
<tr><td>{{.Key}}</td>{{range .Cells}}<td>{{.}}</td>{{end}}<td>{{printf "%.4f" .Ratio}}</td></tr>
{{end}}
</table>
{{end}}
</body>
</html>
`))
