package parser

import (
	"archive/zip"
	"encoding/xml"
	"strconv"
	"strings"

	"github.com/PANDASANG1231/risk-model-tool/pkg/riskkit/models"
)

// ChartTypeMap maps OOXML chart element tags to chart type names.
var ChartTypeMap = map[string]string{
	"lineChart":      "Line",
	"line3DChart":    "3DLine",
	"barChart":       "Bar",
	"bar3DChart":     "3DBar",
	"areaChart":      "Area",
	"area3DChart":    "3DArea",
	"pieChart":       "Pie",
	"pie3DChart":     "3DPie",
	"doughnutChart":  "Doughnut",
	"scatterChart":   "XYScatter",
	"bubbleChart":    "Bubble",
	"radarChart":     "Radar",
	"surfaceChart":   "Surface",
	"surface3DChart": "3DSurface",
	"stockChart":     "Stock",
	"ofPieChart":     "PieOfPie",
}

type xmlRich struct {
	Runs []string `xml:"tx>rich>p>r>t"`
}

func (t *xmlRich) text() string {
	if t == nil {
		return ""
	}
	return strings.TrimSpace(strings.Join(t.Runs, ""))
}

type xmlRef struct {
	StrRef string `xml:"strRef>f"`
	NumRef string `xml:"numRef>f"`
}

func (r *xmlRef) formula() string {
	if r == nil {
		return ""
	}
	if r.NumRef != "" {
		return strings.TrimSpace(r.NumRef)
	}
	return strings.TrimSpace(r.StrRef)
}

type xmlSeries struct {
	Tx struct {
		Ref   string   `xml:"strRef>f"`
		Cache []string `xml:"strRef>strCache>pt>v"`
		V     string   `xml:"v"`
	} `xml:"tx"`
	Cat  *xmlRef `xml:"cat"`
	Val  *xmlRef `xml:"val"`
	XVal *xmlRef `xml:"xVal"`
	YVal *xmlRef `xml:"yVal"`
}

type xmlPlot struct {
	XMLName xml.Name
	Series  []xmlSeries `xml:"ser"`
}

type xmlScale struct {
	Val string `xml:"val,attr"`
}

type xmlValAx struct {
	Title *xmlRich  `xml:"title"`
	Min   *xmlScale `xml:"scaling>min"`
	Max   *xmlScale `xml:"scaling>max"`
}

type xmlChartSpace struct {
	Chart struct {
		Title    *xmlRich `xml:"title"`
		PlotArea struct {
			ValAx []xmlValAx `xml:"valAx"`
			Plots []xmlPlot  `xml:",any"`
		} `xml:"plotArea"`
	} `xml:"chart"`
}

// parseChartPart reads a chart part and returns the chart it describes.
// Placement (name, anchor, size) is filled in by the drawing that references it.
func parseChartPart(r *zip.Reader, part string) (*models.Chart, error) {
	var cs xmlChartSpace
	ok, err := decodePart(r, part, &cs)
	if err != nil || !ok {
		return nil, err
	}

	chart := &models.Chart{
		ChartType: "unknown",
		Title:     cs.Chart.Title.text(),
	}

	for _, plot := range cs.Chart.PlotArea.Plots {
		ct, ok := ChartTypeMap[plot.XMLName.Local]
		if !ok {
			continue
		}
		chart.ChartType = ct
		for _, s := range plot.Series {
			chart.Series = append(chart.Series, seriesFromXML(s))
		}
		break
	}

	if len(cs.Chart.PlotArea.ValAx) > 0 {
		ax := cs.Chart.PlotArea.ValAx[0]
		chart.YAxisTitle = ax.Title.text()
		chart.YAxisRange = axisRange(ax)
	}

	return chart, nil
}

func seriesFromXML(s xmlSeries) models.ChartSeries {
	out := models.ChartSeries{
		NameRange: strings.TrimSpace(s.Tx.Ref),
		Name:      strings.TrimSpace(s.Tx.V),
	}
	if out.Name == "" && len(s.Tx.Cache) > 0 {
		out.Name = strings.TrimSpace(s.Tx.Cache[0])
	}

	out.CategoryRange = s.Cat.formula()
	if out.CategoryRange == "" {
		out.CategoryRange = s.XVal.formula()
	}
	out.ValueRange = s.Val.formula()
	if out.ValueRange == "" {
		out.ValueRange = s.YVal.formula()
	}
	return out
}

func axisRange(ax xmlValAx) []float64 {
	if ax.Min == nil || ax.Max == nil {
		return nil
	}
	lo, err := strconv.ParseFloat(ax.Min.Val, 64)
	if err != nil {
		return nil
	}
	hi, err := strconv.ParseFloat(ax.Max.Val, 64)
	if err != nil {
		return nil
	}
	return []float64{lo, hi}
}
