// Package main provides the docshot screenshot capture tool. It logs
// into a WordPress site, walks the capture plan, and writes screenshots
// plus annotation command files for the external renderer.
package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/vapvarun/docshot/pkg/browser"
	"github.com/vapvarun/docshot/pkg/capture"
	"github.com/vapvarun/docshot/pkg/logging"
)

const version = "0.1.0"

// CLIConfig holds command-line configuration
type CLIConfig struct {
	PlanFile    string
	Only        string
	Headless    bool
	KeepMeta    bool
	ShowVersion bool
}

func main() {
	config := parseFlags()

	if config.ShowVersion {
		fmt.Printf("docshot v%s\n", version)
		return
	}

	// Close the browser cleanly on Ctrl-C so the persistent profile
	// isn't left locked.
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	if err := run(config, sigChan); err != nil {
		fmt.Fprintln(os.Stderr, errorStyle.Render(fmt.Sprintf("Error: %v", err)))
		os.Exit(1)
	}
}

// parseFlags parses command line flags
func parseFlags() *CLIConfig {
	config := &CLIConfig{}

	flag.StringVar(&config.PlanFile, "plan", "capture-plan.yaml", "Path to the capture plan (YAML)")
	flag.StringVar(&config.Only, "only", "", "Capture only filenames matching this glob, e.g. 'admin-*'")
	flag.BoolVar(&config.Headless, "headless", false, "Run the browser without a window")
	flag.BoolVar(&config.KeepMeta, "keep-metadata", false, "Keep the metadata directory after the run")
	flag.BoolVar(&config.ShowVersion, "version", false, "Show version and exit")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "docshot - WordPress documentation screenshot capture\n\n")
		fmt.Fprintf(os.Stderr, "Usage: docshot [options]\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  # Capture everything in the plan\n")
		fmt.Fprintf(os.Stderr, "  docshot -plan capture-plan.yaml\n\n")
		fmt.Fprintf(os.Stderr, "  # Re-capture only the admin tabs, headless\n")
		fmt.Fprintf(os.Stderr, "  docshot -only 'admin-*' -headless\n\n")
	}

	flag.Parse()
	return config
}

func run(config *CLIConfig, sigChan chan os.Signal) error {
	plan, err := capture.LoadPlan(config.PlanFile)
	if err != nil {
		return err
	}
	if config.Headless {
		plan.Browser.Headless = true
	}

	if err := plan.PrepareDirs(); err != nil {
		return err
	}

	logger, err := logging.NewLogger("docshot")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: file logging unavailable: %v\n", err)
	} else {
		defer logger.Close()
	}

	manager := browser.NewSessionManager()
	fmt.Println(headerStyle.Render("Starting browser..."))
	if err := manager.Initialize(); err != nil {
		return err
	}
	defer manager.Shutdown()

	go func() {
		<-sigChan
		fmt.Println("\n\nShutting down gracefully...")
		manager.Shutdown()
		os.Exit(1)
	}()

	session, err := manager.StartSession("capture", browser.SessionOptions{
		Headless:    plan.Browser.Headless,
		Viewport:    &plan.Browser.Viewport,
		UserDataDir: plan.Browser.SessionDir,
	})
	if err != nil {
		return err
	}

	runner, err := capture.NewRunner(plan, session, capture.RunnerOptions{
		Only: config.Only,
		Log:  logger,
	})
	if err != nil {
		return err
	}

	runErr := runner.Run()
	printSummary(plan, runner.Results())
	if runErr != nil {
		return runErr
	}

	if !config.KeepMeta && runner.Results().Total() == 0 {
		return plan.CleanupMetadata()
	}

	fmt.Printf("\nAnnotation batch file: %s\n",
		pathStyle.Render(filepath.Join(plan.Output.MetadataDir, "_batch_annotate.json")))
	return nil
}
