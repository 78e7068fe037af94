package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/sirupsen/logrus"
	"github.com/urfave/cli"

	cfg "github.com/nora2605/gifscii/internal/config"
	"github.com/nora2605/gifscii/internal/core"
	"github.com/nora2605/gifscii/internal/fit"
	"github.com/nora2605/gifscii/internal/logger"
	"github.com/nora2605/gifscii/internal/term"
)

var app = cli.NewApp()
var log = logger.Log

var (
	keyStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205")).Width(10)
	valueStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	titleStyle = lipgloss.NewStyle().Bold(true).Underline(true).MarginBottom(1)
)

var flags = []cli.Flag{
	cli.StringFlag{
		Name:   "resize-mode, m",
		Value:  cfg.DefaultResizeMode,
		Usage:  "downsampling filter: " + strings.Join(cfg.ResizeModes, ", "),
		EnvVar: cfg.EnvResizeMode,
	},
	cli.BoolFlag{
		Name:  "no-resize",
		Usage: "play at the native size, cropped by the terminal",
	},
	cli.IntFlag{
		Name:  "workers, w",
		Usage: "frames compiled in parallel (default: number of CPUs)",
	},
	cli.BoolFlag{
		Name:  "quiet, q",
		Usage: "hide the progress bar",
	},
	cli.StringFlag{
		Name:   "config, c",
		Usage:  "yaml config file",
		EnvVar: cfg.EnvConfig,
	},
	cli.BoolFlag{
		Name:  "debug",
		Usage: "verbose logging",
	},
}

func init() {
	app.Name = "gifscii"
	app.Usage = "Play an animated gif in the terminal"
	app.UsageText = "gifscii [options] file.gif\n   gifscii info file.gif"
	app.HideVersion = true
	app.ArgsUsage = ""
	app.Flags = flags
	app.Action = func(c *cli.Context) error {
		filename, err := getFilename(c)
		if err != nil {
			return err
		}
		conf, err := loadConfig(c)
		if err != nil {
			return err
		}
		return core.NewCore(context.Background(), conf).Play(filename)
	}
	app.Commands = []cli.Command{
		{
			Name:    "info",
			Aliases: []string{"i"},
			Usage:   "Describe a gif without playing it",
			Flags:   flags,
			Action: func(c *cli.Context) error {
				filename, err := getFilename(c)
				if err != nil {
					return err
				}
				conf, err := loadConfig(c)
				if err != nil {
					return err
				}
				return info(core.NewCore(context.Background(), conf), filename)
			},
		},
	}
}

// loadConfig layers the yaml file and the explicitly set flags over the defaults.
func loadConfig(c *cli.Context) (cfg.Config, error) {
	if c.Bool("debug") {
		log.SetLevel(logrus.DebugLevel)
	}
	conf, err := cfg.Load(c.String("config"))
	if err != nil {
		return conf, err
	}
	// EnvVar counts as set
	if c.IsSet("resize-mode") {
		conf.ResizeMode = c.String("resize-mode")
	}
	if c.IsSet("no-resize") {
		conf.NoResize = c.Bool("no-resize")
	}
	if c.IsSet("workers") {
		conf.Workers = c.Int("workers")
	}
	if c.IsSet("quiet") {
		conf.Quiet = c.Bool("quiet")
	}
	if err := conf.Validate(); err != nil {
		return conf, err
	}
	log.Debugf("config: %+v", conf)
	return conf, nil
}

func info(c *core.Core, filename string) error {
	m, err := c.Info(filename)
	if err != nil {
		return err
	}
	rows := [][2]string{
		{"size", fmt.Sprintf("%dx%d", m.Width, m.Height)},
		{"frames", fmt.Sprintf("%d", m.Frames)},
		{"duration", m.Duration().String()},
		{"fps", fmt.Sprintf("%.2f", m.FPS())},
		{"loops", m.FormatLoop()},
		{"checksum", fmt.Sprintf("%016x", m.Checksum())},
	}
	target, err := c.Target(fit.Size{Width: m.Width, Height: m.Height})
	switch {
	case err == nil:
		rows = append(rows,
			[2]string{"target", target.String()},
			[2]string{"cells", target.Cells().String()},
		)
	case errors.Is(err, term.ErrNotTerminal):
		log.Debug("stdout is not a terminal, skipping target size")
	default:
		return err
	}

	lines := []string{titleStyle.Render(m.Filename)}
	for _, r := range rows {
		lines = append(lines, lipgloss.JoinHorizontal(lipgloss.Top, keyStyle.Render(r[0]), valueStyle.Render(r[1])))
	}
	fmt.Println(lipgloss.JoinVertical(lipgloss.Left, lines...))
	return nil
}

func getFilename(c *cli.Context) (string, error) {
	f := c.Args().Get(0)
	if f == "" {
		return "", fmt.Errorf("Filename is required")
	}
	return f, nil
}

func main() {
	err := app.Run(os.Args)
	if err != nil {
		log.Fatal(err)
	}
}
