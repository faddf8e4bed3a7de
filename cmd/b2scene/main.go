package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strconv"
	"strings"

	box2d "github.com/Apollo97/MSEmulator-sub002"
)

func main() {
	log.SetFlags(0)
	log.SetPrefix("b2scene: ")

	if err := run(os.Args[1:], os.Stdout); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(2)
		}
		log.Fatal(err)
	}
}

type options struct {
	scene    string
	settings string
	steps    int
	dt       float64
	watch    bool
}

func parseFlags(args []string) (options, error) {
	var opts options
	var dt string

	fs := flag.NewFlagSet("b2scene", flag.ContinueOnError)
	fs.StringVar(&opts.scene, "scene", "", "scene YAML file (required)")
	fs.StringVar(&opts.settings, "settings", "", "settings YAML file overriding the scene settings")
	fs.IntVar(&opts.steps, "steps", 60, "number of steps to run")
	fs.StringVar(&dt, "dt", "1/60", "time step in seconds, a decimal or a fraction like 1/60")
	fs.BoolVar(&opts.watch, "watch", false, "reload -settings between steps when the file changes")

	if err := fs.Parse(args); err != nil {
		return opts, err
	}

	if opts.scene == "" {
		return opts, errors.New("-scene is required")
	}
	if opts.steps < 0 {
		return opts, fmt.Errorf("-steps %d < 0", opts.steps)
	}
	if opts.watch && opts.settings == "" {
		return opts, errors.New("-watch needs -settings")
	}

	v, err := parseDuration(dt)
	if err != nil {
		return opts, fmt.Errorf("-dt: %w", err)
	}
	opts.dt = v

	return opts, nil
}

// "0.016" or "1/60"
func parseDuration(s string) (float64, error) {
	num, den, isFraction := strings.Cut(s, "/")
	n, err := strconv.ParseFloat(strings.TrimSpace(num), 64)
	if err != nil {
		return 0, err
	}
	if isFraction {
		d, err := strconv.ParseFloat(strings.TrimSpace(den), 64)
		if err != nil {
			return 0, err
		}
		if d == 0 {
			return 0, fmt.Errorf("%q divides by zero", s)
		}
		n /= d
	}
	if n < 0 {
		return 0, fmt.Errorf("%q is negative", s)
	}
	return n, nil
}

// Prints one line per begin/end event.
type eventPrinter struct {
	box2d.B2ContactListener

	out  io.Writer
	step int
}

func bodyName(body *box2d.B2Body) string {
	if name, ok := body.GetUserData().(string); ok {
		return name
	}
	return "?"
}

func (p *eventPrinter) print(kind string, c *box2d.B2Contact) {
	fmt.Fprintf(p.out, "step %d %s %s %s\n", p.step, kind,
		bodyName(c.GetFixtureA().GetBody()), bodyName(c.GetFixtureB().GetBody()))
}

func (p *eventPrinter) BeginContact(c *box2d.B2Contact) { p.print("begin", c) }
func (p *eventPrinter) EndContact(c *box2d.B2Contact)   { p.print("end", c) }

func run(args []string, out io.Writer) error {
	opts, err := parseFlags(args)
	if err != nil {
		return err
	}

	spec, err := box2d.LoadB2SceneSpec(opts.scene)
	if err != nil {
		return err
	}

	world, _, err := spec.Build()
	if err != nil {
		return err
	}

	if opts.settings != "" {
		settings, err := box2d.LoadB2Settings(opts.settings)
		if err != nil {
			return err
		}
		if err := world.SetSettings(settings); err != nil {
			return err
		}
	}

	var watcher *box2d.B2SettingsWatcher
	if opts.watch {
		watcher, err = box2d.NewB2SettingsWatcher(opts.settings)
		if err != nil {
			return err
		}
		defer watcher.Close()
	}

	printer := &eventPrinter{out: out}
	world.SetContactListener(printer)

	for i := 0; i < opts.steps; i++ {
		if watcher != nil {
			drainWatcher(watcher, world)
		}
		printer.step = i + 1
		if err := world.Step(opts.dt); err != nil {
			return err
		}
	}

	fmt.Fprintf(out, "bodies %d proxies %d contacts %d\n",
		world.GetBodyCount(), world.GetProxyCount(), world.GetContactCount())
	fmt.Fprintf(out, "tree height %d balance %d quality %.3f\n",
		world.GetTreeHeight(), world.GetTreeBalance(), world.GetTreeQuality())

	return nil
}

func drainWatcher(watcher *box2d.B2SettingsWatcher, world *box2d.B2World) {
	for {
		select {
		case settings := <-watcher.Updates:
			if err := world.SetSettings(settings); err != nil {
				log.Printf("settings rejected: %v", err)
				continue
			}
			log.Printf("settings reloaded from %s", watcher.Path())
		case err := <-watcher.Errors:
			log.Printf("settings watch: %v", err)
		default:
			return
		}
	}
}
