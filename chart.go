package benchcsv

import (
	"io"
	"strconv"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"
)

// Chart collects emitted values and renders them as one scatter plot. It only
// sees the values, never the CSV stream, so it cannot change what is written.
type Chart struct {
	Title string
	XName string

	order  []string
	series map[string][]opts.ScatterData
}

func NewChart(title, xName string) *Chart {
	return &Chart{Title: title, XName: xName, series: make(map[string][]opts.ScatterData)}
}

// Add records one point. Values that are not numbers are dropped and Add
// returns false.
func (c *Chart) Add(series, x, y string) bool {
	xv, err := strconv.ParseFloat(x, 64)
	if err != nil {
		return false
	}
	yv, err := strconv.ParseFloat(y, 64)
	if err != nil {
		return false
	}
	if _, ok := c.series[series]; !ok {
		c.order = append(c.order, series)
	}
	c.series[series] = append(c.series[series], opts.ScatterData{Value: []float64{xv, yv}})
	return true
}

// AddRecord plots every field of r against its identifier. names[i] is the
// series of r.Fields[i].
func (c *Chart) AddRecord(r Record, names []string) {
	if !r.HasID {
		return
	}
	for i, f := range r.Fields {
		c.Add(names[i], r.ID, f)
	}
}

func (c *Chart) AddPair(p Pair) {
	c.Add("value", p.Size, p.Value)
}

// Len is the number of plotted points.
func (c *Chart) Len() int {
	n := 0
	for _, d := range c.series {
		n += len(d)
	}
	return n
}

func (c *Chart) Render(w io.Writer) error {
	scatter := charts.NewScatter()
	scatter.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{Title: c.Title}),
		charts.WithXAxisOpts(opts.XAxis{Name: c.XName, Type: "value"}),
		charts.WithYAxisOpts(opts.YAxis{Type: "value"}),
	)
	for _, name := range c.order {
		scatter.AddSeries(name, c.series[name])
	}

	page := components.NewPage()
	page.PageTitle = c.Title
	page.AddCharts(scatter)
	return page.Render(w)
}

// SeriesNames names each selected column after the header token at the same
// index, or "col<N>" when the header is shorter.
func SeriesNames(headings []string, columns []int) []string {
	header := Row{Tokens: headings}
	names := make([]string, len(columns))
	for i, c := range columns {
		if h, err := header.Token(c); err == nil {
			names[i] = h
		} else {
			names[i] = "col" + strconv.Itoa(c)
		}
	}
	return names
}
