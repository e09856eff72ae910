package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	stdlog "log"
	"os"
	"os/signal"
	"syscall"

	"github.com/peterkuimelis/roulette/internal/app"
	"github.com/peterkuimelis/roulette/internal/cli"
	"github.com/peterkuimelis/roulette/internal/config"
	"github.com/peterkuimelis/roulette/internal/game"
	"github.com/peterkuimelis/roulette/internal/log"
	"github.com/peterkuimelis/roulette/internal/mortality"
)

func main() {
	cmd := "play"
	args := os.Args[1:]
	if len(args) > 0 && len(args[0]) > 0 && args[0][0] != '-' {
		cmd, args = args[0], args[1:]
	}

	var err error
	switch cmd {
	case "play":
		err = runPlay(args)
	case "status":
		err = runStatus(args)
	case "where":
		err = runWhere(args)
	case "revive":
		err = runRevive(args)
	default:
		printUsage()
		os.Exit(1)
	}

	switch {
	case err == nil:
	case errors.Is(err, context.Canceled):
		fmt.Println("\nGame interrupted. You survive... for now.")
	case errors.Is(err, game.ErrAlreadyDead):
		os.Exit(1)
	default:
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println("Usage:")
	fmt.Println("  roulette [play]  [--hardcore] [--config FILE] [--lives DIR] [--seed N] [--debug] [--no-sound] [--no-anim]")
	fmt.Println("  roulette status  [--hardcore] [--config FILE] [--lives DIR]")
	fmt.Println("  roulette where   [--hardcore] [--config FILE]")
	fmt.Println("  roulette revive  [--hardcore] [--config FILE] [--lives DIR]")
	fmt.Println()
	fmt.Println("Commands:")
	fmt.Println("  play    Spin the cylinder until you quit or die (default)")
	fmt.Println("  status  Show whether you are dead and what revival is left")
	fmt.Println("  where   Show where the death marker lives")
	fmt.Println("  revive  Spend a life (or a system file) to come back from the dead")
}

// flags shared by every subcommand.
type options struct {
	hardcore   bool
	configFile string
	livesDir   string
	seed       int64
	debug      bool
	noSound    bool
	noAnim     bool
}

func parseFlags(name string, args []string) options {
	var o options
	fs := flag.NewFlagSet(name, flag.ExitOnError)
	fs.BoolVar(&o.hardcore, "hardcore", false, "play the hardcore variant (revival deletes a system file)")
	fs.StringVar(&o.configFile, "config", "", "path to a roulette YAML config file")
	fs.StringVar(&o.livesDir, "lives", "", "directory holding extra-life files")
	fs.Int64Var(&o.seed, "seed", 0, "random seed (0 = time-based)")
	fs.BoolVar(&o.debug, "debug", false, "print life-token diagnostics")
	fs.BoolVar(&o.noSound, "no-sound", false, "disable sound effects")
	fs.BoolVar(&o.noAnim, "no-anim", false, "disable the spin animation")
	fs.Parse(args)
	return o
}

func (o options) mode() mortality.Mode {
	if o.hardcore {
		return mortality.Hardcore
	}
	return mortality.Normal
}

// loadConfig applies flags on top of file and environment settings.
func (o options) loadConfig() (config.Config, error) {
	cfg, err := config.Load(o.configFile)
	if err != nil {
		return cfg, err
	}
	if o.livesDir != "" {
		cfg.LivesDir = o.livesDir
	}
	if o.seed != 0 {
		cfg.Seed = o.seed
	}
	if o.debug {
		cfg.Debug = true
	}
	if o.noSound {
		cfg.Sound = false
	}
	if o.noAnim {
		cfg.Animation = false
	}
	return cfg, cfg.Validate()
}

func newTerminal(cfg config.Config) (*cli.Terminal, *cli.Sound) {
	opts := cli.Options{FrameDelay: cfg.FrameDelay}
	if cfg.Animation {
		opts.Spinner = cli.ScreenSpinner{}
	}
	var sound *cli.Sound
	if cfg.Sound {
		sound = cli.NewSound()
		if err := sound.Initialize(); err != nil {
			stdlog.Printf("Warning: sound disabled: %v", err)
			sound = nil
		}
	}
	opts.Sound = sound
	return cli.NewTerminal(os.Stdin, os.Stdout, opts), sound
}

func runPlay(args []string) error {
	o := parseFlags("play", args)
	cfg, err := o.loadConfig()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	term, sound := newTerminal(cfg)
	defer sound.Close()

	rt, err := app.Build(cfg, o.mode(), term, log.NewTextLogger(os.Stdout))
	if err != nil {
		return err
	}
	rt.SeedLives()

	term.Welcome(rt.Mode, cfg.Chambers)
	sum, err := game.NewSession(rt.Engine, term).Run(ctx)
	if err != nil {
		return err
	}
	if !sum.Dead {
		fmt.Printf("You walk away after %d round(s).\n", sum.Rounds)
	}
	return nil
}

func runStatus(args []string) error {
	o := parseFlags("status", args)
	cfg, err := o.loadConfig()
	if err != nil {
		return err
	}
	rt, err := app.Build(cfg, o.mode(), nil, nil)
	if err != nil {
		return err
	}
	st, err := rt.Status()
	if err != nil {
		return err
	}
	term := cli.NewTerminal(os.Stdin, os.Stdout, cli.Options{})
	return term.ReportStatus(context.Background(), st)
}

func runWhere(args []string) error {
	o := parseFlags("where", args)
	cfg, err := o.loadConfig()
	if err != nil {
		return err
	}
	rt, err := app.Build(cfg, o.mode(), nil, nil)
	if err != nil {
		return err
	}
	p, err := rt.Where()
	if err != nil {
		return err
	}

	fmt.Printf("Config root:   %s\n", p.ConfigRoot)
	fmt.Printf("Mode dir:      %s\n", p.ModeDir)
	fmt.Printf("Death marker:  %s\n", p.Marker)
	if p.MarkerExists {
		fmt.Println("Marker exists: yes (you are dead)")
	} else {
		fmt.Println("Marker exists: no")
	}
	if p.LivesDir != "" {
		fmt.Printf("Lives dir:     %s\n", p.LivesDir)
	}
	if p.SacrificeLog != "" {
		fmt.Printf("Sacrifice log: %s\n", p.SacrificeLog)
	}
	return nil
}

func runRevive(args []string) error {
	o := parseFlags("revive", args)
	cfg, err := o.loadConfig()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	term := cli.NewTerminal(os.Stdin, os.Stdout, cli.Options{})
	rt, err := app.Build(cfg, o.mode(), term, log.NewTextLogger(os.Stdout))
	if err != nil {
		return err
	}

	dead, err := rt.Player.IsDead()
	if err != nil {
		return err
	}
	if !dead {
		fmt.Println("You are not dead. Nothing to revive.")
		return nil
	}

	alive, err := game.Revive(ctx, rt.Player, rt.Revival)
	if err != nil {
		return err
	}
	if !alive {
		fmt.Println("Nothing could bring you back. You remain dead.")
		return game.ErrAlreadyDead
	}
	fmt.Println("You have been revived.")
	return nil
}
