package models

// ChartSeries describes one series of a native workbook chart.
type ChartSeries struct {
	// Name is the literal series name, when cached in the chart part.
	Name string `json:"name,omitempty"`
	// NameRange is the formula reference of the series name (e.g. Sheet1!$B$1).
	NameRange string `json:"name_range,omitempty"`
	// CategoryRange is the formula reference of the category axis values.
	CategoryRange string `json:"category_range,omitempty"`
	// ValueRange is the formula reference of the series values.
	ValueRange string `json:"value_range,omitempty"`
}

// Chart describes a native chart found in a worksheet drawing.
type Chart struct {
	// Name is the drawing object name.
	Name string `json:"name"`
	// ChartType is the plot type, e.g. Line, Bar, Pie.
	ChartType string `json:"chart_type"`
	Title     string `json:"title,omitempty"`
	// YAxisTitle is the value axis title.
	YAxisTitle string `json:"y_axis_title,omitempty"`
	// YAxisRange is [min, max] when the value axis scaling is fixed.
	YAxisRange []float64 `json:"y_axis_range,omitempty"`
	// Anchor is the top-left cell the chart is anchored to.
	Anchor string        `json:"anchor,omitempty"`
	Series []ChartSeries `json:"series"`
	// W and H are the frame size in pixels, verbose mode only.
	W *int `json:"w,omitempty"`
	H *int `json:"h,omitempty"`
}
