package telemetry

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"
)

// errNoRows is returned when there is nothing to plot.
var errNoRows = errors.New("no trajectory rows")

// SavePlots renders path.png (top-down x/y) and speed.png (speed over time)
// into dir.
func SavePlots(dir string, rows []TrajectoryRow) error {
	if len(rows) == 0 {
		return errNoRows
	}

	path := make(plotter.XYs, len(rows))
	speed := make(plotter.XYs, len(rows))
	for i, r := range rows {
		path[i].X, path[i].Y = r.X, r.Y
		speed[i].X, speed[i].Y = r.Time, r.Speed*3.6
	}

	if err := saveLine(filepath.Join(dir, "path.png"), "Vehicle path", "x (m)", "y (m)", path); err != nil {
		return err
	}
	return saveLine(filepath.Join(dir, "speed.png"), "Speed", "time (s)", "speed (km/h)", speed)
}

func saveLine(filename, title, xlabel, ylabel string, pts plotter.XYs) error {
	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = xlabel
	p.Y.Label.Text = ylabel
	p.Add(plotter.NewGrid())

	line, err := plotter.NewLine(pts)
	if err != nil {
		return fmt.Errorf("plotting %s: %w", filepath.Base(filename), err)
	}
	line.LineStyle.Width = vg.Points(1.5)
	p.Add(line)

	return savePNG(p, 6*vg.Inch, 4*vg.Inch, filename)
}

func savePNG(p *plot.Plot, w, h vg.Length, filename string) error {
	c := vgimg.NewWith(vgimg.UseWH(w, h), vgimg.UseDPI(150))
	p.Draw(draw.New(c))

	f, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("creating %s: %w", filepath.Base(filename), err)
	}
	defer f.Close()

	bw := bufio.NewWriter(f)
	if _, err := (vgimg.PngCanvas{Canvas: c}).WriteTo(bw); err != nil {
		return fmt.Errorf("writing %s: %w", filepath.Base(filename), err)
	}
	return bw.Flush()
}
