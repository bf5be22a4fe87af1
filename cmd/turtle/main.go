// Command turtle runs a persisted turtle program and prints the path drawn by
// the turtle.
//
// Usage:
//
//	turtle [-config config.yaml] [-optimize] -program program.yaml
//
// Each segment of the path is printed on its own line as "x0 y0 x1 y1".
// Runtime errors are reported on standard error, and the exit status is 1.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"os"
	"strconv"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"

	"github.com/zephyrtronium/turtle"
	"github.com/zephyrtronium/turtle/coreext"
	"github.com/zephyrtronium/turtle/coreext/graphics"
)

func main() {
	var (
		configPath  string
		programPath string
		optimize    bool
		version     bool
	)
	flag.StringVar(&configPath, "config", "", "YAML configuration file")
	flag.StringVar(&programPath, "program", "", "YAML program to run")
	flag.BoolVar(&optimize, "optimize", false, "fold constant arithmetic before running")
	flag.BoolVar(&version, "version", false, "print the interpreter version and exit")
	flag.Parse()
	if version {
		fmt.Println("turtle", turtle.Version)
		return
	}
	if programPath == "" {
		flag.Usage()
		os.Exit(2)
	}

	cfg, err := loadConfig(configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	lvl, _ := cfg.Level()
	w := zerolog.ConsoleWriter{Out: os.Stderr, NoColor: !isatty.IsTerminal(os.Stderr.Fd())}
	log := zerolog.New(w).Level(lvl).With().Timestamp().Logger()
	cfg.Logger = &log

	data, err := os.ReadFile(programPath)
	if err != nil {
		log.Fatal().Err(err).Msg("read program")
	}
	prog, err := turtle.UnmarshalProgram(data)
	if err != nil {
		log.Fatal().Err(err).Str("program", programPath).Msg("load program")
	}
	in, err := turtle.New(cfg, prog, coreext.Modules()...)
	if err != nil {
		log.Fatal().Err(err).Msg("load modules")
	}
	if optimize {
		n := in.Optimize()
		log.Info().Int("folds", n).Msg("optimized")
	}
	if err := in.Run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	path, _ := graphics.Path(in.Root())
	out := bufio.NewWriter(os.Stdout)
	for _, s := range path {
		fmt.Fprintln(out, num(s.From.X), num(s.From.Y), num(s.To.X), num(s.To.Y))
	}
	if err := out.Flush(); err != nil {
		log.Fatal().Err(err).Msg("write path")
	}
}

func loadConfig(path string) (turtle.Config, error) {
	if path == "" {
		return turtle.DefaultConfig(), nil
	}
	f, err := os.Open(path)
	if err != nil {
		return turtle.Config{}, err
	}
	defer f.Close()
	return turtle.LoadConfig(f)
}

func num(x float64) string {
	return strconv.FormatFloat(x, 'g', -1, 64)
}
