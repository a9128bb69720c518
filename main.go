package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"
)

type CLIOpts struct {
	configPath string
	size       int
	logFile    string
	verbose    bool
	initConfig bool
	document   string
}

func parseCLIOpts() CLIOpts {
	var opt CLIOpts
	flag.StringVar(&opt.configPath, "config", defaultConfigPath(), "config file")
	flag.IntVar(&opt.size, "size", 0, "canvas size in cells (overrides canvas_size)")
	flag.StringVar(&opt.logFile, "log", "", "write logs to this file (overrides log_file)")
	flag.BoolVar(&opt.verbose, "v", false, "verbose logging")
	flag.BoolVar(&opt.initConfig, "init-config", false, "write the default config file if it does not exist and exit")
	flag.Parse()
	opt.document = flag.Arg(0)
	return opt
}

func main() {
	opt := parseCLIOpts()

	if opt.initConfig {
		created, err := initializeConfigIfNot(opt.configPath)
		if err != nil {
			log.Fatalf("init config: %v", err)
		}
		if created {
			fmt.Println("wrote", opt.configPath)
		} else {
			fmt.Println(opt.configPath, "already exists")
		}
		return
	}

	config, cfgErr := loadConfig(opt.configPath)
	if opt.size > 0 {
		config.CanvasSize = clampInt(opt.size, 1, 256)
	}
	if opt.logFile != "" {
		config.LogFile = expandPath(opt.logFile)
	}

	l, err := newLogger(config.LogFile, opt.verbose)
	if err != nil {
		log.Fatalf("init logger: %v", err)
	}
	zap.ReplaceGlobals(l)
	defer l.Sync() //nolint:errcheck

	if cfgErr != nil {
		l.Warn("using default config", zap.Error(cfgErr))
	}

	m := initialModel(config, l)
	if opt.document != "" {
		if err := m.openDocument(opt.document); err != nil {
			fmt.Fprintf(os.Stderr, "open %s: %v\n", opt.document, err)
			os.Exit(1)
		}
	}

	l.Info("starting",
		zap.Int("size", m.editor.Document().Size()),
		zap.String("config", opt.configPath),
		zap.String("document", opt.document))

	p := tea.NewProgram(
		m,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)
	if _, err := p.Run(); err != nil {
		l.Error("program exited", zap.Error(err))
		log.Fatal(err)
	}
}

func initialModel(config *Config, l *zap.Logger) model {
	if l == nil {
		l = zap.NewNop()
	}
	editor := NewEditor(config.CanvasSize,
		WithLogger(l),
		WithHistoryLimit(config.HistoryLimit),
		WithPalette(NewPalette(config.Palette)),
		WithBrushSize(config.BrushSize),
	)

	input := textinput.New()
	input.CharLimit = 256

	return model{
		editor:            editor,
		config:            config,
		log:               l,
		mode:              ModeNormal,
		zoom:              clampInt(config.Zoom, minZoom, maxZoom),
		showGrid:          config.ShowGrid,
		input:             input,
		selectedFileIndex: -1,
		confirmLayer:      -1,
	}
}

func (m model) Init() tea.Cmd {
	return nil
}
