package parser

import (
	"archive/zip"
	"sort"

	"github.com/xuri/excelize/v2"

	"github.com/PANDASANG1231/risk-model-tool/pkg/riskkit/models"
)

type xmlMarker struct {
	Col    int   `xml:"col"`
	ColOff int64 `xml:"colOff"`
	Row    int   `xml:"row"`
	RowOff int64 `xml:"rowOff"`
}

type xmlNonVisual struct {
	Name  string `xml:"name,attr"`
	Descr string `xml:"descr,attr"`
}

type xmlXfrm struct {
	Ext struct {
		Cx int64 `xml:"cx,attr"`
		Cy int64 `xml:"cy,attr"`
	} `xml:"ext"`
}

// xmlRelRef is an element pointing at a relationship of the drawing part,
// such as a:blip r:embed or c:chart r:id.
type xmlRelRef struct {
	Embed string `xml:"embed,attr"`
	ID    string `xml:"id,attr"`
}

type xmlPic struct {
	CNvPr    xmlNonVisual `xml:"nvPicPr>cNvPr"`
	BlipFill struct {
		Blip xmlRelRef `xml:"blip"`
	} `xml:"blipFill"`
	Xfrm xmlXfrm `xml:"spPr>xfrm"`
}

type xmlGraphicFrame struct {
	CNvPr   xmlNonVisual `xml:"nvGraphicFramePr>cNvPr"`
	Xfrm    xmlXfrm      `xml:"xfrm"`
	Graphic struct {
		Data struct {
			Chart *xmlRelRef `xml:"chart"`
		} `xml:"graphicData"`
	} `xml:"graphic"`
}

// chartID returns the relationship id of the chart part, empty when the
// frame holds something other than a chart.
func (g *xmlGraphicFrame) chartID() string {
	if g == nil || g.Graphic.Data.Chart == nil {
		return ""
	}
	return g.Graphic.Data.Chart.ID
}

type xmlAnchor struct {
	From         xmlMarker        `xml:"from"`
	Pic          *xmlPic          `xml:"pic"`
	GraphicFrame *xmlGraphicFrame `xml:"graphicFrame"`
}

type xmlDrawing struct {
	TwoCell []xmlAnchor `xml:"twoCellAnchor"`
	OneCell []xmlAnchor `xml:"oneCellAnchor"`
}

// anchorCell converts a 0-based drawing marker to a cell name.
func anchorCell(m xmlMarker) string {
	cell, err := excelize.CoordinatesToCellName(m.Col+1, m.Row+1)
	if err != nil {
		return ""
	}
	return cell
}

// emuPerPixel is 914400 EMU per inch at 96 pixels per inch.
const emuPerPixel = 9525

func emuToPixels(emu int64) int {
	return int(emu / emuPerPixel)
}

func pixels(emu int64) *int {
	px := emuToPixels(emu)
	return &px
}

// ExtractDrawings returns the native charts and anchored pictures of every
// sheet in the xlsx file at xlsxPath. Light mode returns empty maps.
func ExtractDrawings(xlsxPath string, mode string) (map[string][]models.Chart, map[string][]models.Picture, error) {
	charts := make(map[string][]models.Chart)
	pictures := make(map[string][]models.Picture)
	if mode == "light" {
		return charts, pictures, nil
	}

	r, err := zip.OpenReader(xlsxPath)
	if err != nil {
		return nil, nil, err
	}
	defer r.Close()

	drawings, err := sheetDrawings(&r.Reader)
	if err != nil {
		return nil, nil, err
	}

	for sheetName, drawingPart := range drawings {
		var d xmlDrawing
		ok, err := decodePart(&r.Reader, drawingPart, &d)
		if err != nil {
			return nil, nil, err
		}
		if !ok {
			continue
		}
		targets, _, err := readRels(&r.Reader, drawingPart)
		if err != nil {
			return nil, nil, err
		}

		anchors := append(append([]xmlAnchor{}, d.TwoCell...), d.OneCell...)
		for _, a := range anchors {
			switch {
			case a.Pic != nil:
				pictures[sheetName] = append(pictures[sheetName], pictureFromAnchor(a, targets, mode))
			case a.GraphicFrame.chartID() != "":
				chart, err := chartFromAnchor(&r.Reader, a, targets, mode)
				if err != nil {
					return nil, nil, err
				}
				if chart != nil {
					charts[sheetName] = append(charts[sheetName], *chart)
				}
			}
		}
		sort.SliceStable(pictures[sheetName], func(i, j int) bool {
			return pictures[sheetName][i].Name < pictures[sheetName][j].Name
		})
	}

	return charts, pictures, nil
}

func pictureFromAnchor(a xmlAnchor, targets map[string]string, mode string) models.Picture {
	p := models.Picture{
		Name:        a.Pic.CNvPr.Name,
		Description: a.Pic.CNvPr.Descr,
		Anchor:      anchorCell(a.From),
		Target:      targets[a.Pic.BlipFill.Blip.Embed],
		OffsetX:     emuToPixels(a.From.ColOff),
		OffsetY:     emuToPixels(a.From.RowOff),
	}
	if mode == "verbose" {
		p.W = pixels(a.Pic.Xfrm.Ext.Cx)
		p.H = pixels(a.Pic.Xfrm.Ext.Cy)
	}
	return p
}

func chartFromAnchor(r *zip.Reader, a xmlAnchor, targets map[string]string, mode string) (*models.Chart, error) {
	part, ok := targets[a.GraphicFrame.chartID()]
	if !ok {
		return nil, nil
	}
	chart, err := parseChartPart(r, part)
	if err != nil || chart == nil {
		return nil, err
	}
	chart.Name = a.GraphicFrame.CNvPr.Name
	chart.Anchor = anchorCell(a.From)
	if mode == "verbose" {
		chart.W = pixels(a.GraphicFrame.Xfrm.Ext.Cx)
		chart.H = pixels(a.GraphicFrame.Xfrm.Ext.Cy)
	}
	return chart, nil
}
