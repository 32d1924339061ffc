package domain

// ChartType discriminates the rendering shape a chart descriptor asks for.
type ChartType string

const (
	ChartPie     ChartType = "pie"
	ChartBar     ChartType = "bar"
	ChartLine    ChartType = "line"
	ChartScatter ChartType = "scatter"
	ChartGauge   ChartType = "gauge"
	ChartHeatmap ChartType = "heatmap"
	ChartRadar   ChartType = "radar"
)

// ChartPoint is one labeled value of a chart's inline data.
type ChartPoint struct {
	Name  string  `json:"name"`
	Value float64 `json:"value"`
}

// Chart is a downstream-facing chart descriptor. Data is always non-nil so
// consumers never dereference a missing field; Option carries an opaque
// renderer configuration when inline data is not enough.
type Chart struct {
	Type   ChartType      `json:"type"`
	Title  string         `json:"title"`
	Data   []ChartPoint   `json:"data"`
	Option map[string]any `json:"option,omitempty"`
}

// NewChart returns a chart descriptor with an empty (non-nil) data slice.
func NewChart(t ChartType, title string) Chart {
	return Chart{Type: t, Title: title, Data: []ChartPoint{}}
}
