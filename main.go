package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/miosa/osa-dropdown/app"
	"github.com/miosa/osa-dropdown/config"
	"github.com/miosa/osa-dropdown/logging"
	"github.com/miosa/osa-dropdown/style"
)

var version = "dev"

func main() {
	profileFlag := flag.String("profile", "", "Named profile for state isolation (~/.osa/profiles/<name>)")
	themeFlag := flag.String("theme", "", "Theme name (dark, light, catppuccin, tokyo-night)")
	itemsFlag := flag.Int("items", 0, "Number of numbered test items")
	menuHeightFlag := flag.Int("menu-height", 0, "Rows visible in an open menu")
	branchesFlag := flag.String("branches", "", "Add a dropdown of the git branches of the repository at this path")
	headerKeys := flag.Bool("header-keys", false, "Up/down on a closed dropdown commit the previous/next item")
	logFlag := flag.String("log", "", "Write a rotating log to this file")
	noColor := flag.Bool("no-color", false, "Disable ANSI colors")
	showVersion := flag.Bool("version", false, "Show version and exit")
	flag.BoolVar(showVersion, "V", false, "Show version and exit")
	flag.Parse()

	if *showVersion {
		fmt.Printf("osa-dropdown %s\n", version)
		os.Exit(0)
	}

	if *noColor {
		// Caller can set NO_COLOR=1 in the shell to disable colors.
		os.Setenv("NO_COLOR", "1")
	}

	home, _ := os.UserHomeDir()
	profileDir := filepath.Join(home, ".osa")
	if *profileFlag != "" {
		profileDir = filepath.Join(home, ".osa", "profiles", *profileFlag)
	}
	if err := os.MkdirAll(profileDir, 0o755); err != nil {
		fmt.Fprintf(os.Stderr, "osa-dropdown: create profile dir: %v\n", err)
		os.Exit(1)
	}

	// Flags override the persisted config.
	cfg := config.Load(profileDir)
	if *themeFlag != "" {
		cfg.Theme = *themeFlag
	}
	if *itemsFlag > 0 {
		cfg.ItemCount = *itemsFlag
	}
	if *menuHeightFlag > 0 {
		cfg.MenuHeight = *menuHeightFlag
	}
	if *headerKeys {
		cfg.HeaderKeyNavigation = true
	}
	if *logFlag != "" {
		cfg.LogFile = *logFlag
	}

	// Auto-detect terminal background unless a theme was chosen.
	switch {
	case cfg.Theme != "":
		if !style.SetTheme(cfg.Theme) {
			fmt.Fprintf(os.Stderr, "osa-dropdown: unknown theme %q\n", cfg.Theme)
			os.Exit(1)
		}
	case lipgloss.HasDarkBackground(os.Stdin, os.Stdout):
		style.SetTheme("dark")
	default:
		style.SetTheme("light")
	}

	logger, closer := logging.New(cfg.LogFile)
	defer closer.Close()
	logger.Printf("osa-dropdown %s starting, profile %s", version, profileDir)

	m := app.New(app.Options{
		Config:     cfg,
		ProfileDir: profileDir,
		BranchPath: *branchesFlag,
		Logger:     logger,
		NoColor:    *noColor,
		Version:    version,
	})

	// In bubbletea v2, alt screen and mouse mode are configured on the View
	// returned by the model, not as ProgramOptions.
	p := tea.NewProgram(m)
	if _, err := p.Run(); err != nil {
		logger.Printf("program: %v", err)
		fmt.Fprintf(os.Stderr, "osa-dropdown: %v\n", err)
		closer.Close()
		os.Exit(1)
	}
}
