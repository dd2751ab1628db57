// Package main provides the docshot-discover tool. It inspects a
// WordPress plugin's admin pages, reports the discovered tabs and form
// elements, and generates a starter capture plan.
package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/vapvarun/docshot/pkg/browser"
	"github.com/vapvarun/docshot/pkg/discover"
)

const version = "0.1.0"

// CLIConfig holds command-line configuration
type CLIConfig struct {
	SiteURL     string
	AdminPage   string
	UserID      int
	PlanFile    string
	StructFile  string
	Headless    bool
	ShowVersion bool
}

func main() {
	config := parseFlags()

	if config.ShowVersion {
		fmt.Printf("docshot-discover v%s\n", version)
		return
	}
	if config.SiteURL == "" || config.AdminPage == "" {
		flag.Usage()
		os.Exit(2)
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	if err := run(config, sigChan); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// parseFlags parses command line flags
func parseFlags() *CLIConfig {
	config := &CLIConfig{}

	flag.StringVar(&config.SiteURL, "url", "", "Site base URL, e.g. http://your-site.local (required)")
	flag.StringVar(&config.AdminPage, "page", "", "Plugin admin page slug (required)")
	flag.IntVar(&config.UserID, "user", 1, "Auto-login user id")
	flag.StringVar(&config.PlanFile, "output", "capture-plan.yaml", "Generated capture plan path")
	flag.StringVar(&config.StructFile, "structure", "", "Also dump the raw structure JSON to this path")
	flag.BoolVar(&config.Headless, "headless", false, "Run the browser without a window")
	flag.BoolVar(&config.ShowVersion, "version", false, "Show version and exit")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "docshot-discover - WordPress plugin structure discovery\n\n")
		fmt.Fprintf(os.Stderr, "Usage: docshot-discover -url <site> -page <slug> [options]\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  docshot-discover -url http://demo.local -page bp-member-blog\n\n")
	}

	flag.Parse()
	return config
}

func run(config *CLIConfig, sigChan chan os.Signal) error {
	manager := browser.NewSessionManager()
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

	session, err := manager.StartSession("discover", browser.SessionOptions{
		Headless: config.Headless,
	})
	if err != nil {
		return err
	}

	discoverer := discover.NewDiscoverer(session, os.Stdout)
	structure, err := discoverer.Discover(config.SiteURL, config.AdminPage, config.UserID)
	if err != nil {
		return err
	}

	plan := discover.GeneratePlan(structure)
	if err := discover.WritePlan(config.PlanFile, plan); err != nil {
		return err
	}
	fmt.Printf("\nGenerated capture plan: %s\n", config.PlanFile)
	fmt.Println("Review the plan, add annotations, then run: docshot -plan", config.PlanFile)

	if config.StructFile != "" {
		if err := discover.WriteStructure(config.StructFile, structure); err != nil {
			return err
		}
		fmt.Printf("Structure dump: %s\n", config.StructFile)
	}

	return nil
}
