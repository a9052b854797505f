package prep

import (
	"encoding/csv"
	"fmt"
	"image/color"
	"io"
	"log"
	"math"
	"strconv"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

var (
	plotLineColor  = color.RGBA{R: 37, G: 150, B: 190, A: 255}
	plotMarkerShap = draw.SquareGlyph{}
)

const (
	plotH = 4 * vg.Inch
	plotW = 6 * vg.Inch

	maxTicks = 10
)

// Per-tree decomposition summary, assembled at emission time.
type DecompStats struct {
	Gene         string // gene name (line number for newick input)
	NumClades    int    // clades emitted
	NumTrivial   int    // trivial clades discarded (or emitted with -t)
	LargestClade int    // leaves in the largest maximal clade
	NumLeaves    int    // leaves in the input tree
}

// Fraction of the gene tree's leaves retained by its largest clade.
func (st DecompStats) Coverage() float64 {
	if st.NumLeaves == 0 {
		return math.NaN()
	}
	return 100 * float64(st.LargestClade) / float64(st.NumLeaves)
}

// Write per-tree decomposition stats csv file to writer.
//
// Columns: "gene", "clades", "trivial", "largest clade", "leaves"
func WriteDecompStatsToCSV(stats []DecompStats, w io.Writer) (err error) {
	data := make([][]string, len(stats)+1)
	data[0] = []string{"gene", "clades", "trivial", "largest clade", "leaves"}
	for i, st := range stats {
		data[i+1] = []string{
			st.Gene,
			strconv.Itoa(st.NumClades),
			strconv.Itoa(st.NumTrivial),
			strconv.Itoa(st.LargestClade),
			strconv.Itoa(st.NumLeaves),
		}
	}
	writer := csv.NewWriter(w)
	defer func() {
		writer.Flush()
		if err == nil {
			err = writer.Error()
		} else if writer.Error() != nil {
			log.Printf("error when flushing output csv, %s", writer.Error())
		}
	}()
	if err = writer.WriteAll(data); err != nil {
		err = fmt.Errorf("%w, %s", ErrWritingFile, err)
		return
	}
	return
}

// Writes a lineplot of the largest-clade coverage per gene tree to
// "<prefix>.png".
func WriteCoveragePlot(stats []DecompStats, prefix string) error {
	p := plot.New()
	p.X.Label.Text = "Gene Tree"
	p.Y.Label.Text = "Percent of Leaves in Largest Clade"
	p.X.Min = 0
	p.X.Max = float64(len(stats) + 1)
	p.X.Tick.Marker = plot.TickerFunc(func(_, max float64) []plot.Tick {
		step := 1
		if int(max) > maxTicks {
			step = int(math.Ceil(max / maxTicks))
		}
		ticks := make([]plot.Tick, 0, int(max)/step+2)
		for i := range int(max) + 1 {
			if i%step == 0 {
				ticks = append(ticks, plot.Tick{Value: float64(i), Label: fmt.Sprintf("%d", i)})
			} else {
				ticks = append(ticks, plot.Tick{Value: float64(i)})
			}
		}
		return ticks
	})
	p.Y.Min = 0
	p.Y.Max = 100
	pts := make(plotter.XYs, len(stats))
	for i, st := range stats {
		pts[i].X = float64(i + 1)
		pts[i].Y = st.Coverage()
	}
	line, points, err := plotter.NewLinePoints(pts)
	if err != nil {
		return err
	}
	line.Color = plotLineColor
	line.Dashes = []vg.Length{vg.Points(6), vg.Points(3)}
	points.Color = plotLineColor
	points.Shape = plotMarkerShap
	points.Radius = vg.Points(4)
	p.Add(line, points)
	return p.Save(plotW, plotH, fmt.Sprintf("%s.png", prefix))
}
