package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/alecthomas/kong"
	"github.com/dustin/go-humanize"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/pkg/errors"
	"github.com/samber/lo"
	"github.com/sirupsen/logrus"

	"plan-measure/engine"
	"plan-measure/export"
	"plan-measure/measure"
	"plan-measure/server"
	"plan-measure/store"
)

var cli struct {
	Data     string `default:"./data" help:"Directory holding project data." type:"path"`
	Store    string `default:"yaml" enum:"yaml,sqlite" help:"Project storage backend (${enum})."`
	LogLevel string `default:"info" enum:"debug,info,warn,error" help:"Log level."`

	Edit   EditCmd   `cmd:"" default:"withargs" help:"Open the measuring editor."`
	Serve  ServeCmd  `cmd:"" help:"Serve projects over HTTP."`
	Export ExportCmd `cmd:"" help:"Export the measurements of a project."`
	List   ListCmd   `cmd:"" help:"List stored projects."`
}

type runContext struct {
	ctx   context.Context
	log   *logrus.Logger
	store store.Store
}

type EditCmd struct {
	Project   string `arg:"" optional:"" default:"default" help:"Project id."`
	Image     string `help:"Plan image to load." type:"path"`
	Scale     string `help:"Pixels per metre, as an expression (e.g. 300/7.5)."`
	ExportDir string `default:"." help:"Directory for exported tables." type:"path"`
	Format    string `default:"xlsx" enum:"csv,xlsx" help:"Export format (${enum})."`
	Autosave  bool   `default:"true" negatable:"" help:"Save after every change."`
}

func (c *EditCmd) Run(rc *runContext) error {
	g := NewGame(rc.ctx, Options{
		Store:        rc.store,
		Log:          rc.log,
		ExportDir:    c.ExportDir,
		ExportFormat: c.Format,
		Autosave:     c.Autosave,
	})
	if err := g.OpenProject(c.Project); err != nil {
		return err
	}
	if c.Image != "" {
		if err := g.LoadPlan(c.Image); err != nil {
			return err
		}
	}
	if c.Scale != "" {
		scale, err := engine.EvalNumber(c.Scale)
		if err != nil {
			return err
		}
		if _, err := measure.Calibrate(scale, 1); err != nil {
			return errors.Wrapf(err, "--scale %s", c.Scale)
		}
		g.applyScale(scale)
	}

	ebiten.SetWindowSize(DefaultWindowWidth, DefaultWindowHeight)
	ebiten.SetWindowTitle(WindowTitle + " - " + c.Project)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	err := ebiten.RunGame(g)
	if g.dirty {
		if serr := g.Save(); serr != nil && err == nil {
			err = serr
		}
	}
	return err
}

type ServeCmd struct {
	Port uint `default:"2428" help:"Port to listen on."`
}

func (c *ServeCmd) Run(rc *runContext) error {
	return server.Run(rc.ctx, rc.store, rc.log, &server.Options{Port: c.Port})
}

type ExportCmd struct {
	Project string `arg:"" help:"Project id."`
	Format  string `default:"csv" enum:"csv,xlsx" help:"Export format (${enum})."`
	Output  string `short:"o" default:"-" help:"Output file, - for stdout."`
}

func (c *ExportCmd) Run(rc *runContext) error {
	snap, err := rc.store.Load(rc.ctx, c.Project)
	if err != nil {
		return err
	}

	if c.Output == "-" {
		return export.Write(os.Stdout, c.Format, snap.Measurements)
	}
	if err := writeExport(c.Output, c.Format, snap.Measurements); err != nil {
		return err
	}
	rc.log.WithField("file", c.Output).Info("exported")
	return nil
}

type ListCmd struct{}

func (c *ListCmd) Run(rc *runContext) error {
	return listProjects(rc.ctx, rc.store, os.Stdout)
}

func listProjects(ctx context.Context, st store.Store, w io.Writer) error {
	ids, err := st.List(ctx)
	if err != nil {
		return err
	}
	for _, id := range ids {
		snap, err := st.Load(ctx, id)
		if err != nil {
			return err
		}
		total := lo.SumBy(snap.Measurements, func(m measure.Measurement) float64 { return m.AreaM2 })
		fmt.Fprintf(w, "%s\t%d measurements\t%s m²\t%s\n",
			id, len(snap.Measurements), humanize.FormatFloat("#,###.##", total), humanize.Time(snap.UpdatedAt))
	}
	return nil
}

func newLogger(level string) (*logrus.Logger, error) {
	log := logrus.New()
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		return nil, err
	}
	log.SetLevel(lvl)
	log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	return log, nil
}

func main() {
	ctx := kong.Parse(&cli, kong.ShortUsageOnError())

	log, err := newLogger(cli.LogLevel)
	ctx.FatalIfErrorf(err)

	st, err := store.Open(cli.Store, cli.Data)
	ctx.FatalIfErrorf(err)
	defer st.Close()

	sig, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	err = ctx.Run(&runContext{
		ctx:   sig,
		log:   log,
		store: st,
	})
	if err != nil {
		log.WithError(err).Error(ctx.Command())
	}
	ctx.FatalIfErrorf(err)
}
