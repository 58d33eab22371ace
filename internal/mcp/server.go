package mcp

import (
	"bytes"
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/candex/candex/internal/batch"
	"github.com/candex/candex/internal/config"
	"github.com/candex/candex/internal/extract"
	"github.com/candex/candex/internal/output"
	"github.com/candex/candex/internal/pdf"
)

// Server exposes candidate field extraction as MCP tools over stdio.
type Server struct {
	config    *config.Config
	extractor *pdf.Extractor
	processor *batch.Processor
	mcpServer *server.MCPServer
}

// NewServer creates a new MCP server instance.
func NewServer(cfg *config.Config, extractor *pdf.Extractor, processor *batch.Processor) (*Server, error) {
	if extractor == nil {
		return nil, fmt.Errorf("extractor cannot be nil")
	}
	if processor == nil {
		return nil, fmt.Errorf("processor cannot be nil")
	}

	mcpServer := server.NewMCPServer(
		cfg.ServerName,
		cfg.Version,
		server.WithToolCapabilities(false),
	)

	s := &Server{
		config:    cfg,
		extractor: extractor,
		processor: processor,
		mcpServer: mcpServer,
	}

	s.registerTools()

	return s, nil
}

// registerTools registers all available MCP tools
func (s *Server) registerTools() {
	extractFileTool := mcp.NewTool(
		"extract_candidate_file",
		mcp.WithDescription("Extract candidate fields (name, contact, IDs, bank details) from one PDF file"),
		mcp.WithString("path",
			mcp.Required(),
			mcp.Description("Full path to the PDF file"),
		),
	)
	s.mcpServer.AddTool(extractFileTool, s.handleExtractFile)

	extractDirectoryTool := mcp.NewTool(
		"extract_candidate_directory",
		mcp.WithDescription("Extract candidate fields from every PDF file in a directory"),
		mcp.WithString("directory",
			mcp.Description("Directory to process (uses default if empty)"),
		),
		mcp.WithString("format",
			mcp.Description("Result format: 'table' (default) or 'csv'"),
		),
	)
	s.mcpServer.AddTool(extractDirectoryTool, s.handleExtractDirectory)

	infoTool := mcp.NewTool(
		"extractor_info",
		mcp.WithDescription("Get server information, the extracted field list, and usage guidance"),
	)
	s.mcpServer.AddTool(infoTool, s.handleInfo)
}

// Handler functions

func (s *Server) handleExtractFile(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path, err := request.RequireString("path")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	if err := pdf.ValidateFile(path); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("not a readable PDF: %v", err)), nil
	}

	text, err := s.extractor.ExtractTextFile(path)
	if err != nil {
		// A valid but unreadable document degrades to an all-empty record.
		text = ""
	}
	rec := extract.ExtractFields(text, filepath.Base(path))

	return mcp.NewToolResultText(s.formatRecord(&rec)), nil
}

func (s *Server) handleExtractDirectory(ctx context.Context, request mcp.CallToolRequest) (
	*mcp.CallToolResult, error,
) {
	args := request.GetArguments()

	directory := s.config.InputDirectory // default
	if dir, ok := args["directory"].(string); ok && dir != "" {
		directory = dir
	}

	format := config.FormatTable
	if f, ok := args["format"].(string); ok && f != "" {
		format = f
	}
	if format != config.FormatTable && format != config.FormatCSV {
		return mcp.NewToolResultError(fmt.Sprintf("unsupported format: %s", format)), nil
	}

	result, err := s.processor.ProcessDirectory(directory)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if result.Empty() {
		return mcp.NewToolResultText(fmt.Sprintf("No PDF documents found in directory: %s", directory)), nil
	}

	var buf bytes.Buffer
	fmt.Fprintf(&buf, "Directory: %s\n", directory)
	fmt.Fprintf(&buf, "%s\n\n", result.Summary())
	if format == config.FormatCSV {
		if err := output.WriteCSV(&buf, result.Records); err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
	} else {
		output.WriteTable(&buf, result.Records)
	}

	return mcp.NewToolResultText(buf.String()), nil
}

func (s *Server) handleInfo(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	text := fmt.Sprintf("%s v%s - Candidate PDF field extractor\n", s.config.ServerName, s.config.Version)
	text += fmt.Sprintf("Default directory: %s\n", s.config.InputDirectory)
	text += fmt.Sprintf("Max file size: %d MB\n\n", s.config.MaxFileSize/(1024*1024))

	text += "Extracted fields:\n"
	for _, col := range output.Columns {
		text += fmt.Sprintf("  - %s\n", col)
	}

	text += "\nAvailable tools:\n"
	text += "  - extract_candidate_file: extract fields from one PDF (parameter: path)\n"
	text += "  - extract_candidate_directory: batch a directory (parameters: directory, format)\n"
	text += "  - extractor_info: this summary\n"
	text += "\nFields that cannot be found in a document are reported as empty, never as errors.\n"

	return mcp.NewToolResultText(text), nil
}

// formatRecord renders one record as aligned key/value lines in the fixed
// column order.
func (s *Server) formatRecord(rec *extract.Record) string {
	values := rec.Values()
	text := fmt.Sprintf("Extracted candidate record from %s\n\n", rec.SourceFileName)
	for i, col := range output.Columns {
		v := values[i]
		if v == "" {
			v = "-"
		}
		text += fmt.Sprintf("%-24s %s\n", col+":", v)
	}
	return text
}

// Run starts the MCP server over stdio. The parent process controls the
// lifecycle; logging must go to stderr to keep the protocol stream clean.
func (s *Server) Run(_ context.Context) error {
	if s.config.IsDebug() {
		log.SetOutput(os.Stderr)
		log.Printf("Starting candex MCP server in stdio mode")
		log.Printf("Input directory: %s", s.config.InputDirectory)
	}

	if err := server.ServeStdio(s.mcpServer); err != nil {
		return fmt.Errorf("failed to serve stdio: %w", err)
	}
	return nil
}
