package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"runtime"
	"syscall"

	"github.com/spf13/pflag"

	"github.com/candex/candex/internal/batch"
	"github.com/candex/candex/internal/config"
	"github.com/candex/candex/internal/mcp"
	"github.com/candex/candex/internal/output"
	"github.com/candex/candex/internal/pdf"
)

var (
	version   = "dev"     // This will be set by build flags
	buildTime = "unknown" // This will be set by build flags
	gitCommit = "unknown" // This will be set by build flags
)

// setupLogging routes logs based on the run mode. In serve mode stdout
// carries the MCP protocol stream, so logs must stay on stderr.
func setupLogging(cfg *config.Config) {
	log.SetOutput(os.Stderr)
	if cfg.IsServeMode() && !cfg.IsDebug() {
		log.SetOutput(io.Discard)
	}
}

// runServeMode runs the MCP stdio server with signal handling.
func runServeMode(ctx context.Context, cancel context.CancelFunc, server *mcp.Server) {
	signalCh := make(chan os.Signal, 1)
	signal.Notify(signalCh, syscall.SIGINT, syscall.SIGTERM, syscall.SIGHUP)

	serverErrCh := make(chan error, 1)
	go func() {
		serverErrCh <- server.Run(ctx)
	}()

	select {
	case sig := <-signalCh:
		log.Printf("Received signal: %s", sig)
		cancel()

		if err := <-serverErrCh; err != nil {
			log.Printf("Server shutdown with error: %v", err)
			os.Exit(1)
		}

	case err := <-serverErrCh:
		if err != nil {
			log.Printf("Server error: %v", err)
			os.Exit(1)
		}
	}
}

// runBatchMode processes the input set once and renders the result.
// Explicit file arguments win over the input directory. An empty batch is
// a warning, not an error.
func runBatchMode(cfg *config.Config, processor *batch.Processor, files []string) error {
	var result batch.Result
	if len(files) > 0 {
		result = processor.ProcessFiles(files)
	} else {
		var err error
		result, err = processor.ProcessDirectory(cfg.InputDirectory)
		if err != nil {
			return err
		}
	}

	if result.Empty() {
		fmt.Fprintln(os.Stderr, "Warning: no PDF documents to process")
		return nil
	}

	fmt.Fprintf(os.Stderr, "%s (run %s)\n", result.Summary(), result.RunID)

	return renderResult(cfg, &result)
}

// renderResult writes the records in the configured format.
func renderResult(cfg *config.Config, result *batch.Result) error {
	if cfg.OutputFormat == config.FormatXLSX {
		data, err := output.WriteXLSX(result.Records)
		if err != nil {
			return err
		}
		if err := os.WriteFile(cfg.OutputPath, data, 0o644); err != nil {
			return fmt.Errorf("cannot write %s: %w", cfg.OutputPath, err)
		}
		return nil
	}

	w := os.Stdout
	if cfg.OutputPath != "-" {
		f, err := os.Create(cfg.OutputPath)
		if err != nil {
			return fmt.Errorf("cannot create %s: %w", cfg.OutputPath, err)
		}
		defer f.Close()
		w = f
	}

	if cfg.OutputFormat == config.FormatCSV {
		return output.WriteCSV(w, result.Records)
	}
	output.WriteTable(w, result.Records)
	return nil
}

func main() {
	// Check for version flag before parsing other flags
	for _, arg := range os.Args[1:] {
		if arg == "-version" || arg == "--version" || arg == "-v" {
			printVersion()
			return
		}
	}

	cfg, err := config.LoadFromFlags()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	setupLogging(cfg)

	if version != "dev" {
		cfg.Version = version
	}

	if cfg.IsDebug() {
		log.Printf("Starting with configuration: %s", cfg.String())
	}

	extractor := pdf.NewExtractor(cfg.MaxFileSize)
	processor := batch.NewProcessor(extractor, cfg.IsDebug())

	if cfg.IsServeMode() {
		server, err := mcp.NewServer(cfg, extractor, processor)
		if err != nil {
			log.Fatalf("Failed to create MCP server: %v", err)
		}

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		runServeMode(ctx, cancel, server)
		return
	}

	if err := runBatchMode(cfg, processor, pflag.Args()); err != nil {
		log.Fatalf("Batch extraction failed: %v", err)
	}
}

// printVersion prints version information
func printVersion() {
	fmt.Printf("candex - candidate PDF field extractor\n")
	fmt.Printf("Version: %s\n", version)
	fmt.Printf("Build Time: %s\n", buildTime)
	fmt.Printf("Git Commit: %s\n", gitCommit)
	fmt.Printf("Built with: %s\n", runtime.Version())
}
