// Command simdemo runs a short headless simulation and saves its last frame.
package main

import (
	"flag"
	"image/png"
	"log"
	"math"
	"os"

	"github.com/gogpu/sim"
	"github.com/gogpu/sim/canvas"
	"github.com/gogpu/sim/input"
	"github.com/gogpu/sim/platform"
	"github.com/gogpu/sim/platform/headless"
	"github.com/gogpu/sim/timing"
)

func main() {
	var (
		config = flag.String("config", "", "YAML config file")
		width  = flag.Int("width", 0, "frame width (overrides config)")
		height = flag.Int("height", 0, "frame height (overrides config)")
		frames = flag.Int("frames", 0, "frames to run (overrides config)")
		output = flag.String("output", "simdemo.png", "output file")
	)
	flag.Parse()

	cfg, err := loadConfig(*config)
	if err != nil {
		log.Fatal(err)
	}
	if *width > 0 {
		cfg.Width = *width
	}
	if *height > 0 {
		cfg.Height = *height
	}
	if *frames > 0 {
		cfg.MaxFrames = *frames
	}
	if cfg.MaxFrames == 0 {
		cfg.MaxFrames = 120
	}

	h, err := sim.New(sim.WithConfig(cfg))
	if err != nil {
		log.Fatal(err)
	}
	defer func() {
		if err := h.Dispose(); err != nil {
			log.Printf("dispose: %v", err)
		}
	}()

	// Hold space for the second half of the run to switch palettes.
	p, err := headless.New(cfg,
		headless.WithScript(cfg.MaxFrames/2, input.KeyEvent{Key: input.KeySpace, Down: true}),
	)
	if err != nil {
		log.Fatal(err)
	}
	if err := h.Initialize(p); err != nil {
		log.Fatal(err)
	}

	d := &demo{}
	if err := h.Start(d); err != nil {
		log.Fatal(err)
	}

	if err := savePNG(*output, p); err != nil {
		log.Fatalf("Failed to save: %v", err)
	}
	log.Printf("Demo saved to %s (%dx%d, %d frames)\n", *output, cfg.Width, cfg.Height, h.Frames())
}

func loadConfig(path string) (platform.Config, error) {
	if path == "" {
		return platform.DefaultConfig(), nil
	}
	return platform.LoadConfig(path)
}

func savePNG(path string, p *headless.Platform) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := png.Encode(f, p.Graphics().Frame().Snapshot()); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

type demo struct {
	clock    timing.Clock
	keyboard input.Keyboard
}

func (d *demo) OnInitialize(h *sim.Host) error {
	var err error
	if d.clock, err = sim.Component[timing.Clock](h, timing.Capability); err != nil {
		return err
	}
	d.keyboard, err = sim.Component[input.Keyboard](h, input.KeyboardCapability)
	return err
}

func (d *demo) OnRender(c *canvas.Canvas) error {
	w, h := c.Size()
	t := d.clock.Total().Seconds()

	background := canvas.NewLinearGradient(0, 0, 0, float64(h), canvas.ExtendPad,
		canvas.ColorStop{Offset: 0, Color: canvas.RGB(0.1, 0.2, 0.4)},
		canvas.ColorStop{Offset: 1, Color: canvas.RGB(0.5, 0.5, 0.6)},
	)
	if err := c.SetFillGradient(background); err != nil {
		return err
	}
	if err := c.FillRect(0, 0, float64(w), float64(h)); err != nil {
		return err
	}

	dot := canvas.RGBA(1, 0.3, 0.3, 0.8)
	if d.keyboard.IsKeyDown(input.KeySpace) {
		dot = canvas.RGBA(0.3, 1, 0.3, 0.8)
	}
	cx, cy := float64(w)/2, float64(h)/2
	radius := math.Min(cx, cy) / 2

	for i := range 6 {
		s, err := c.Push()
		if err != nil {
			return err
		}
		a := t + float64(i)*math.Pi/3
		if err := c.Translate(cx+radius*math.Cos(a), cy+radius*math.Sin(a)); err != nil {
			return err
		}
		if err := c.SetFillColor(dot); err != nil {
			return err
		}
		if err := c.FillCircle(0, 0, radius/5); err != nil {
			return err
		}
		if err := s.Close(); err != nil {
			return err
		}
	}

	if err := c.SetStrokeColor(canvas.White); err != nil {
		return err
	}
	if err := c.SetStrokeWidth(3); err != nil {
		return err
	}
	if err := c.StrokeCircle(cx, cy, radius); err != nil {
		return err
	}
	if err := c.SetFillColor(canvas.White); err != nil {
		return err
	}
	return c.DrawText("sim", 10, 20)
}

func (d *demo) OnUninitialize(*sim.Host) error { return nil }
