package parser

import (
	"encoding/xml"
	"testing"
)

const drawingXML = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<xdr:wsDr xmlns:xdr="http://schemas.openxmlformats.org/drawingml/2006/spreadsheetDrawing"
  xmlns:a="http://schemas.openxmlformats.org/drawingml/2006/main"
  xmlns:r="http://schemas.openxmlformats.org/officeDocument/2006/relationships"
  xmlns:c="http://schemas.openxmlformats.org/drawingml/2006/chart">
  <xdr:twoCellAnchor>
    <xdr:from><xdr:col>4</xdr:col><xdr:colOff>0</xdr:colOff><xdr:row>0</xdr:row><xdr:rowOff>0</xdr:rowOff></xdr:from>
    <xdr:graphicFrame macro="">
      <xdr:nvGraphicFramePr><xdr:cNvPr id="2" name="Chart 1"/><xdr:cNvGraphicFramePr/></xdr:nvGraphicFramePr>
      <xdr:xfrm><a:off x="0" y="0"/><a:ext cx="4572000" cy="2743200"/></xdr:xfrm>
      <a:graphic><a:graphicData uri="http://schemas.openxmlformats.org/drawingml/2006/chart">
        <c:chart r:id="rId1"/>
      </a:graphicData></a:graphic>
    </xdr:graphicFrame>
  </xdr:twoCellAnchor>
  <xdr:oneCellAnchor>
    <xdr:from><xdr:col>1</xdr:col><xdr:colOff>19050</xdr:colOff><xdr:row>7</xdr:row><xdr:rowOff>0</xdr:rowOff></xdr:from>
    <xdr:pic>
      <xdr:nvPicPr><xdr:cNvPr id="3" name="Picture 2" descr="logo"/><xdr:cNvPicPr/></xdr:nvPicPr>
      <xdr:blipFill><a:blip r:embed="rId2"/></xdr:blipFill>
      <xdr:spPr><a:xfrm><a:ext cx="190500" cy="95250"/></a:xfrm></xdr:spPr>
    </xdr:pic>
  </xdr:oneCellAnchor>
</xdr:wsDr>`

func TestDecodeDrawingAnchors(t *testing.T) {
	var d xmlDrawing
	if err := xml.Unmarshal([]byte(drawingXML), &d); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}
	if len(d.TwoCell) != 1 || len(d.OneCell) != 1 {
		t.Fatalf("Expected 1 two-cell and 1 one-cell anchor, got %d and %d", len(d.TwoCell), len(d.OneCell))
	}

	frame := d.TwoCell[0].GraphicFrame
	if got := frame.chartID(); got != "rId1" {
		t.Errorf("Expected chart id rId1, got %q", got)
	}
	if frame.CNvPr.Name != "Chart 1" {
		t.Errorf("Expected name Chart 1, got %q", frame.CNvPr.Name)
	}
	if got := anchorCell(d.TwoCell[0].From); got != "E1" {
		t.Errorf("Expected chart anchor E1, got %q", got)
	}

	a := d.OneCell[0]
	if a.Pic == nil {
		t.Fatal("Expected a picture anchor")
	}
	targets := map[string]string{"rId2": "xl/media/image1.png"}
	p := pictureFromAnchor(a, targets, "verbose")
	if p.Anchor != "B8" || p.Target != "xl/media/image1.png" || p.Description != "logo" {
		t.Errorf("unexpected picture %+v", p)
	}
	if p.OffsetX != 2 || p.W == nil || *p.W != 20 || p.H == nil || *p.H != 10 {
		t.Errorf("unexpected picture geometry %+v", p)
	}
	if a.GraphicFrame.chartID() != "" {
		t.Error("Expected no chart id on a picture anchor")
	}
}
