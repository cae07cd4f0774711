package dashboard

import "github.com/pradeepsavadi/snowflake-observability/internal/snowflake"

// Alert levels shown as badges next to a section.
const (
	AlertInfo    = "info"
	AlertWarning = "warning"
	AlertError   = "error"
	AlertSuccess = "success"
)

type Alert struct {
	Level   string `json:"level"`
	Message string `json:"message"`
}

// MetricTile is a single headline number.
type MetricTile struct {
	Label      string `json:"label"`
	Value      string `json:"value"`
	Delta      string `json:"delta,omitempty"`
	DeltaColor string `json:"delta_color,omitempty"`
}

// Section is the response payload for one metric section of a page. A
// failed section carries only an advisory; a successful but empty one
// carries the placeholder. Either way the section renders and its siblings
// are unaffected.
type Section struct {
	Data        *snowflake.Table `json:"data,omitempty"`
	Chart       *ChartSpec       `json:"chart,omitempty"`
	Tiles       []MetricTile     `json:"tiles,omitempty"`
	Alerts      []Alert          `json:"alerts,omitempty"`
	Placeholder string           `json:"placeholder,omitempty"`
	Advisory    string           `json:"advisory,omitempty"`
}

// NewSection wraps a query result, attaching the placeholder when empty.
func NewSection(t snowflake.Table, chart *ChartSpec) Section {
	s := Section{Data: &t, Chart: chart}
	if t.Empty() {
		s.Placeholder = NoDataMessage
	}
	return s
}

// AdvisorySection reports a contained failure: the section renders an
// inline notice instead of data.
func AdvisorySection(message string) Section {
	return Section{Advisory: message}
}

func (s Section) WithTiles(tiles ...MetricTile) Section {
	s.Tiles = append(s.Tiles, tiles...)
	return s
}

func (s Section) WithAlerts(alerts ...Alert) Section {
	s.Alerts = append(s.Alerts, alerts...)
	return s
}
