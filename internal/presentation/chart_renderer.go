package presentation

import (
	"github.com/bytedance/sonic"
	"github.com/cockroachdb/errors"

	"github.com/riskibarqy/ftc-team-stats/internal/domain/chart"
)

// ChartRenderer turns a chart series into the config the page draws.
type ChartRenderer interface {
	Render(series chart.Series) (ChartView, error)
}

// ChartJSRenderer emits Chart.js configuration objects.
type ChartJSRenderer struct{}

func NewChartJSRenderer() ChartJSRenderer {
	return ChartJSRenderer{}
}

type chartJSConfig struct {
	Type    string         `json:"type"`
	Data    chartJSData    `json:"data"`
	Options chartJSOptions `json:"options"`
}

type chartJSData struct {
	Labels   []string         `json:"labels"`
	Datasets []chartJSDataset `json:"datasets"`
}

type chartJSDataset struct {
	Label           string    `json:"label"`
	Data            []float64 `json:"data"`
	BackgroundColor any       `json:"backgroundColor,omitempty"`
	BorderColor     string    `json:"borderColor,omitempty"`
	BorderWidth     int       `json:"borderWidth"`
	Fill            bool      `json:"fill,omitempty"`
	Tension         float64   `json:"tension,omitempty"`
}

type chartJSOptions struct {
	Responsive          bool           `json:"responsive"`
	MaintainAspectRatio bool           `json:"maintainAspectRatio"`
	Plugins             chartJSPlugins `json:"plugins"`
	Scales              *chartJSScales `json:"scales,omitempty"`
}

type chartJSPlugins struct {
	Legend chartJSLegend `json:"legend"`
}

type chartJSLegend struct {
	Display  bool   `json:"display"`
	Position string `json:"position,omitempty"`
}

type chartJSScales struct {
	Y chartJSAxis `json:"y"`
}

type chartJSAxis struct {
	BeginAtZero bool     `json:"beginAtZero"`
	Max         *float64 `json:"max,omitempty"`
	TickSuffix  string   `json:"tickSuffix,omitempty"`
}

func (ChartJSRenderer) Render(series chart.Series) (ChartView, error) {
	view := ChartView{ID: series.ID, Kind: string(series.Kind)}
	if series.Empty() {
		view.Placeholder = series.Placeholder
		return view, nil
	}

	cfg, err := chartJSConfigFor(series)
	if err != nil {
		return ChartView{}, err
	}
	raw, err := sonic.ConfigStd.Marshal(cfg)
	if err != nil {
		return ChartView{}, errors.Wrapf(err, "encode chart %s", series.ID)
	}
	view.Config = raw
	return view, nil
}

func chartJSConfigFor(series chart.Series) (chartJSConfig, error) {
	style := series.Style
	dataset := chartJSDataset{
		Label:       style.DatasetLabel,
		Data:        series.Data,
		BorderColor: style.BorderColor,
		BorderWidth: style.BorderWidth,
		Fill:        style.Fill,
		Tension:     style.Tension,
	}
	cfg := chartJSConfig{
		Data: chartJSData{Labels: series.Labels, Datasets: []chartJSDataset{dataset}},
		Options: chartJSOptions{
			Responsive:          true,
			MaintainAspectRatio: false,
			Plugins:             chartJSPlugins{Legend: chartJSLegend{Display: style.ShowLegend}},
		},
	}

	switch series.Kind {
	case chart.KindDonut:
		cfg.Type = "doughnut"
		cfg.Data.Datasets[0].BackgroundColor = style.BackgroundColors
		cfg.Options.Plugins.Legend.Position = "bottom"
	case chart.KindBar:
		cfg.Type = "bar"
		cfg.Data.Datasets[0].BackgroundColor = singleColor(style.BackgroundColors)
		cfg.Options.Scales = &chartJSScales{Y: yAxis(style)}
	case chart.KindLine:
		cfg.Type = "line"
		cfg.Data.Datasets[0].BackgroundColor = singleColor(style.BackgroundColors)
		cfg.Options.Scales = &chartJSScales{Y: yAxis(style)}
	default:
		return chartJSConfig{}, errors.Newf("unsupported chart kind %q", series.Kind)
	}
	return cfg, nil
}

func singleColor(colors []string) any {
	if len(colors) == 0 {
		return nil
	}
	return colors[0]
}

func yAxis(style chart.Style) chartJSAxis {
	axis := chartJSAxis{BeginAtZero: true, TickSuffix: style.ValueSuffix}
	if style.YMax > 0 {
		limit := style.YMax
		axis.Max = &limit
	}
	return axis
}
