package main

import (
	"context"
	"fmt"

	charmlog "github.com/charmbracelet/log"
	"github.com/pkg/errors"
	"github.com/urfave/cli/v3"

	"arrayv-music/codegen"
	"arrayv-music/config"
	"arrayv-music/debug"
	"arrayv-music/midi"
	"arrayv-music/theme"
	"arrayv-music/translate"
	"arrayv-music/tui"
)

func setup(ctx context.Context, c *cli.Command) (context.Context, error) {
	if c.Bool("verbose") {
		logger.SetLevel(charmlog.DebugLevel)
	}
	if path := c.String("debug-log"); path != "" {
		if err := debug.Enable(path); err != nil {
			return ctx, errors.Wrap(err, "enable debug log")
		}
		logger.Debug("debug log enabled", "path", path)
	}
	return ctx, nil
}

// loadConfig reads the config file, if any, and applies flag overrides
func loadConfig(c *cli.Command) (*config.Config, error) {
	cfg, err := config.Load(c.String("config"))
	if err != nil {
		return nil, err
	}
	if c.IsSet("patched") {
		cfg.HighPrecisionTiming = c.Bool("patched")
	}
	if c.IsSet("v4") {
		cfg.LegacyNamespace = c.Bool("v4")
	}
	if c.IsSet("max-slots") {
		cfg.MaxSlots = int(c.Int("max-slots"))
	}
	if c.IsSet("max-lines") {
		cfg.MaxLines = int(c.Int("max-lines"))
	}
	if c.IsSet("class") {
		cfg.ClassName = c.String("class")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func inputPath(c *cli.Command) (string, error) {
	if c.Args().Len() != 1 {
		return "", fmt.Errorf("expected exactly one MIDI file, got %d arguments", c.Args().Len())
	}
	return c.Args().First(), nil
}

// conversion holds every stage of the pipeline for one file
type conversion struct {
	Input      string
	Normalized []midi.Event
	Events     []translate.Event // coalesced
	Stats      translate.Stats
}

func convertFile(path string, cfg *config.Config) (*conversion, error) {
	msgs, err := midi.ReadFile(path)
	if err != nil {
		return nil, err
	}
	normalized := midi.Normalize(msgs)
	raw, stats := translate.Translate(normalized, cfg.MaxSlots)
	events := translate.Coalesce(raw)

	logger.Debug("translated", "messages", len(msgs), "events", len(normalized),
		"instructions", len(raw), "coalesced", len(events))
	return &conversion{
		Input:      path,
		Normalized: normalized,
		Events:     events,
		Stats:      stats,
	}, nil
}

func outputPath(c *cli.Command, cfg *config.Config) string {
	if out := c.String("out"); out != "" {
		return out
	}
	return cfg.ClassName + ".java"
}

func runConvert(ctx context.Context, c *cli.Command) error {
	path, err := inputPath(c)
	if err != nil {
		return err
	}
	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}

	conv, err := convertFile(path, cfg)
	if err != nil {
		return err
	}
	if conv.Stats.Evictions > 0 {
		logger.Warn("not enough slots, some notes were cut short",
			"evictions", conv.Stats.Evictions, "slots", cfg.MaxSlots)
	}

	out := outputPath(c, cfg)
	if err := codegen.WriteFile(out, conv.Events, cfg.Codegen()); err != nil {
		return err
	}

	th, err := loadTheme(cfg)
	if err != nil {
		return err
	}
	fmt.Println(renderSummary(th, conv, cfg, out))
	return nil
}

func loadTheme(cfg *config.Config) (*theme.Theme, error) {
	if cfg.Palette == "" {
		return theme.New(theme.DefaultPalette()), nil
	}
	p, err := theme.LoadGPL(cfg.Palette)
	if err != nil {
		return nil, err
	}
	return theme.New(p), nil
}

func runInspect(ctx context.Context, c *cli.Command) error {
	path, err := inputPath(c)
	if err != nil {
		return err
	}
	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}
	th, err := loadTheme(cfg)
	if err != nil {
		return err
	}

	msgs, err := midi.ReadFile(path)
	if err != nil {
		return err
	}
	steps := translate.Trace(midi.Normalize(msgs), cfg.MaxSlots)
	return tui.Run(path, steps, th)
}

func runEvents(ctx context.Context, c *cli.Command) error {
	path, err := inputPath(c)
	if err != nil {
		return err
	}
	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}

	msgs, err := midi.ReadFile(path)
	if err != nil {
		return err
	}
	for _, step := range translate.Trace(midi.Normalize(msgs), cfg.MaxSlots) {
		fmt.Println(step.Input)
		for _, ev := range step.Emitted {
			fmt.Printf("    %s\n", ev)
		}
	}
	return nil
}

func runInitConfig(ctx context.Context, c *cli.Command) error {
	if c.Args().Len() != 1 {
		return fmt.Errorf("expected the path to write")
	}
	path := c.Args().First()
	if err := config.DefaultConfig().Save(path); err != nil {
		return errors.Wrapf(err, "write %s", path)
	}
	logger.Info("wrote default config", "path", path)
	return nil
}
