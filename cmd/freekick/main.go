package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/davecgh/go-spew/spew"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/pkg/errors"
	"github.com/ttacon/chalk"
	"github.com/urfave/cli"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/brenero/3d-free-kick-game/internal/config"
	"github.com/brenero/3d-free-kick-game/internal/shared/logger"
	"github.com/brenero/3d-free-kick-game/internal/shared/types"
	"github.com/brenero/3d-free-kick-game/internal/simulation"
)

const frameRate = 60

func main() {
	app := makeapp()
	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, chalk.Red.Color(err.Error()))
		os.Exit(1)
	}
}

func makeapp() *cli.App {
	app := cli.NewApp()
	app.Name = "freekick"
	app.Usage = "Headless free-kick simulator"

	configFlag := cli.StringFlag{Name: "config", Usage: "TOML file overriding the default constants", EnvVar: "FREEKICK_CONFIG"}
	seedFlag := cli.Int64Flag{Name: "seed", Value: time.Now().UnixNano(), Usage: "Seed for barrier placement and wind", EnvVar: "FREEKICK_SEED"}

	app.Commands = []cli.Command{
		{
			Name:    "kick",
			Aliases: []string{"k"},
			Usage:   "Take one free kick and print the flight",
			Flags: []cli.Flag{
				configFlag,
				seedFlag,
				cli.Float64Flag{Name: "aim", Value: 0, Usage: "Aim in degrees, positive turns left"},
				cli.Float64Flag{Name: "power", Value: 40, Usage: "Power bar reading, 0..100"},
				cli.Float64Flag{Name: "height", Value: -1, Usage: "Launch height factor (default from config)"},
				cli.Float64Flag{Name: "curve", Value: 0, Usage: "Spin, -1..1"},
				cli.IntFlag{Name: "frames", Value: 600, Usage: "Maximum number of frames to simulate"},
				cli.IntFlag{Name: "settle", Value: 3 * frameRate, Usage: "Frames to keep simulating the ball in the net after a goal"},
				cli.IntFlag{Name: "every", Value: 10, Usage: "Print one text line every N frames"},
				cli.StringFlag{Name: "format", Value: "text", Usage: "Output format: text, json or msgpack"},
				cli.BoolFlag{Name: "no-wind", Usage: "Disable wind"},
				cli.BoolFlag{Name: "no-keeper", Usage: "Remove the goalkeeper"},
				cli.BoolFlag{Name: "no-barrier", Usage: "Remove the barrier"},
				cli.BoolFlag{Name: "realtime", Usage: "Pace frames at the game frame rate"},
				cli.BoolFlag{Name: "dump", Usage: "Dump the final world snapshot"},
				cli.BoolFlag{Name: "debug", Usage: "Enable debug logging"},
			},
			Action: kickAction,
		},
		{
			Name:  "wind",
			Usage: "Sample random winds",
			Flags: []cli.Flag{
				configFlag,
				seedFlag,
				cli.IntFlag{Name: "samples", Value: 8, Usage: "Number of rounds to sample"},
			},
			Action: windAction,
		},
		{
			Name:  "session",
			Usage: "Take many random kicks and report the tally",
			Flags: []cli.Flag{
				configFlag,
				seedFlag,
				cli.IntFlag{Name: "kicks", Value: 100, Usage: "Number of kicks"},
				cli.IntFlag{Name: "workers", Value: 4, Usage: "Worlds simulated in parallel"},
				cli.IntFlag{Name: "frames", Value: 600, Usage: "Frame limit per kick"},
				cli.BoolFlag{Name: "metrics", Usage: "Print the tally in the Prometheus text format"},
				cli.BoolFlag{Name: "debug", Usage: "Enable debug logging"},
			},
			Action: sessionAction,
		},
		{
			Name:  "config",
			Usage: "Print the effective configuration as TOML",
			Flags: []cli.Flag{configFlag},
			Action: func(c *cli.Context) error {
				cfg, err := loadConfig(c.String("config"))
				if err != nil {
					return err
				}
				return config.Encode(os.Stdout, cfg)
			},
		},
	}

	return app
}

func loadConfig(path string) (config.Config, error) {
	if path == "" {
		return config.Default(), nil
	}
	return config.Load(path)
}

func kickAction(c *cli.Context) error {
	log := logger.New("freekick")
	logger.SetDebug(log, c.Bool("debug"))

	cfg, err := loadConfig(c.String("config"))
	if err != nil {
		return err
	}
	if c.Bool("no-wind") {
		cfg.Wind.Enabled = false
	}
	if c.Bool("no-keeper") {
		cfg.Goalkeeper.Enabled = false
	}
	if c.Bool("no-barrier") {
		cfg.Barrier.Enabled = false
	}

	out, err := newFrameWriter(c.String("format"), os.Stdout, c.Int("every"))
	if err != nil {
		return err
	}

	seed := c.Int64("seed")
	world, err := simulation.NewWorld(cfg, seed, log)
	if err != nil {
		return err
	}

	height := c.Float64("height")
	if height < 0 {
		height = cfg.Kick.DefaultHeight
	}
	kick, err := simulation.KickFromAim(cfg.Kick, simulation.Aim{
		Yaw:    mgl64.DegToRad(c.Float64("aim")),
		Power:  c.Float64("power"),
		Height: height,
		Curve:  c.Float64("curve"),
	})
	if err != nil {
		return err
	}

	start := world.Snapshot()
	log.Info("round ready",
		"seed", seed,
		"barrier_x", start.Barrier.Position[types.AxisX],
		"keeper_x", start.Keeper.Position[types.AxisX],
		"wind", fmt.Sprintf("%s %d%%", start.Wind.Cardinal, start.Wind.Percent),
	)
	if err := world.Kick(kick); err != nil {
		return err
	}

	var ticker *time.Ticker
	if c.Bool("realtime") {
		ticker = time.NewTicker(time.Second / frameRate)
		defer ticker.Stop()
	}

	saved := false
	var goalAt uint64
	settle := c.Int("settle")
	for frame := 0; frame < c.Int("frames"); frame++ {
		if ticker != nil {
			<-ticker.C
		}
		world.Tick()
		snap := world.Snapshot()
		for _, e := range snap.Events {
			switch e.Type {
			case "save":
				saved = true
			case "goal":
				goalAt = e.Frame
			}
		}
		if err := out.write(snap); err != nil {
			return err
		}
		if world.Over() {
			if !snap.InNet || settle <= 0 {
				break
			}
			settle--
		}
	}

	final := world.Snapshot()
	if c.Bool("dump") {
		spew.Fdump(os.Stderr, final)
	}
	fmt.Fprintln(os.Stderr, outcome(final, saved, goalAt))
	return nil
}

func outcome(s types.FrameState, saved bool, goalAt uint64) string {
	switch {
	case s.Scored:
		return chalk.Green.Color(fmt.Sprintf("GOAL on frame %d", goalAt))
	case s.Over && saved:
		return chalk.Yellow.Color("SAVED")
	case s.Over:
		return chalk.Red.Color("MISS")
	default:
		return chalk.Blue.Color("still in flight at the frame limit")
	}
}

type frameWriter struct {
	format  string
	w       io.Writer
	every   int
	jsonEnc *json.Encoder
	mpEnc   *msgpack.Encoder
}

func newFrameWriter(format string, w io.Writer, every int) (*frameWriter, error) {
	fw := &frameWriter{format: format, w: w, every: every}
	switch format {
	case "text":
		if fw.every < 1 {
			fw.every = 1
		}
	case "json":
		fw.jsonEnc = json.NewEncoder(w)
	case "msgpack":
		fw.mpEnc = msgpack.NewEncoder(w)
	default:
		return nil, errors.Errorf("unknown output format %q", format)
	}
	return fw, nil
}

func (fw *frameWriter) write(s types.FrameState) error {
	switch fw.format {
	case "json":
		return errors.Wrap(fw.jsonEnc.Encode(s), "could not encode frame")
	case "msgpack":
		return errors.Wrap(fw.mpEnc.Encode(s), "could not encode frame")
	}

	for _, e := range s.Events {
		fmt.Fprintf(fw.w, "%5d  %-8s at (%6.2f, %5.2f, %6.2f)\n", e.Frame, e.Type, e.Position[0], e.Position[1], e.Position[2])
	}
	if s.Frame%uint64(fw.every) != 0 {
		return nil
	}
	b, k := s.Ball.Position, s.Keeper.Position
	_, err := fmt.Fprintf(fw.w, "%5d  ball (%6.2f, %5.2f, %6.2f)  speed %.3f  keeper (%5.2f, %4.2f)\n",
		s.Frame, b[0], b[1], b[2], s.Ball.Speed(), k[0], k[1])
	return err
}

func windAction(c *cli.Context) error {
	cfg, err := loadConfig(c.String("config"))
	if err != nil {
		return err
	}
	world, err := simulation.NewWorld(cfg, c.Int64("seed"), nil)
	if err != nil {
		return err
	}
	for i := 0; i < c.Int("samples"); i++ {
		if i > 0 {
			world.Reset()
		}
		info := world.Snapshot().Wind
		fmt.Printf("%3d  %-2s  %6.1f°  %3d%%  lateral %+.5f  frontal %+.5f\n",
			i+1, info.Cardinal, info.Bearing, info.Percent, info.Lateral, info.Frontal)
	}
	return nil
}
