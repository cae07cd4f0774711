package dashboard

import "github.com/pradeepsavadi/snowflake-observability/internal/snowflake"

// NoDataMessage is the placeholder shown when a metric has no rows for the
// selected period. An empty result is a valid state, not an error.
const NoDataMessage = "No data available for this period"

const defaultChartHeight = 300

// FieldType mirrors the encoding types of the frontend charting library.
type FieldType string

const (
	FieldTemporal     FieldType = "temporal"
	FieldQuantitative FieldType = "quantitative"
	FieldNominal      FieldType = "nominal"
)

type Axis struct {
	Field string    `json:"field"`
	Type  FieldType `json:"type"`
	Title string    `json:"title,omitempty"`
	Sort  string    `json:"sort,omitempty"`
}

// ChartSpec is a renderer-agnostic chart description the frontend turns
// into an actual chart. The server never draws anything itself.
type ChartSpec struct {
	Type   string `json:"type"`
	Title  string `json:"title"`
	X      Axis   `json:"x"`
	Y      Axis   `json:"y"`
	Color  *Axis  `json:"color,omitempty"`
	Height int    `json:"height"`
}

// TrendChart describes a line chart of a measure over time. Returns nil
// for an empty table; callers render the placeholder instead.
func TrendChart(t snowflake.Table, xField, yField, title string) *ChartSpec {
	if t.Empty() {
		return nil
	}
	return &ChartSpec{
		Type:   "line",
		Title:  title,
		X:      Axis{Field: xField, Type: FieldTemporal, Title: xField},
		Y:      Axis{Field: yField, Type: FieldQuantitative, Title: yField},
		Height: defaultChartHeight,
	}
}

// BarChart describes a horizontal bar chart of a measure per category,
// sorted descending by the measure. colorField is optional.
func BarChart(t snowflake.Table, catField, measureField, colorField, title string) *ChartSpec {
	if t.Empty() {
		return nil
	}
	spec := &ChartSpec{
		Type:   "bar",
		Title:  title,
		X:      Axis{Field: measureField, Type: FieldQuantitative, Title: measureField},
		Y:      Axis{Field: catField, Type: FieldNominal, Title: catField, Sort: "-x"},
		Height: defaultChartHeight,
	}
	if colorField != "" {
		spec.Color = &Axis{Field: colorField, Type: FieldQuantitative}
	}
	return spec
}
