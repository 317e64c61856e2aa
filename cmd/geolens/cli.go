package main

import (
	"context"
	"io"
	"log/slog"

	"github.com/fwojciec/geolens"
	"github.com/fwojciec/geolens/crawl"
	geogin "github.com/fwojciec/geolens/gin"
	"github.com/fwojciec/geolens/sqlite"
	"github.com/fwojciec/geolens/yaml"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx    context.Context
	Stdout io.Writer
	Stderr io.Writer
	Logger *slog.Logger
	Config *yaml.Config

	DB      *sqlite.DB
	Reports geolens.ReportService
	Audits  geolens.AuditService

	// Analyze pipeline. Fetcher is the static fetcher for the target;
	// Renderer is the browser fetcher, nil when rendering is off or
	// unavailable.
	Fetcher  geolens.Fetcher
	Renderer geolens.Fetcher
	Robots   geolens.RobotsService
	Parser   geolens.Parser
	Analyzer geolens.Analyzer

	// Auditor runs site-wide audits.
	Auditor *crawl.Auditor

	// Server and Queue back the serve command.
	Server *geogin.Server
	Queue  *geogin.JobQueue
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Analyze AnalyzeCmd `cmd:"" help:"Analyze a URL or local HTML file"`
	Audit   AuditCmd   `cmd:"" help:"Audit every discoverable page of a site"`
	Serve   ServeCmd   `cmd:"" help:"Run the HTTP API server"`
	Rules   RulesCmd   `cmd:"" help:"List the rule batteries with their weights"`
	List    ListCmd    `cmd:"" help:"List stored reports"`
	Show    ShowCmd    `cmd:"" help:"Show a stored report"`
	Compare CompareCmd `cmd:"" help:"Compare two stored reports rule by rule"`
	Delete  DeleteCmd  `cmd:"" help:"Delete a stored report"`

	Config  string `help:"Config file path" type:"path"`
	DB      string `help:"Database path" type:"path"`
	Verbose bool   `short:"v" help:"Log each pipeline operation"`
	Quiet   bool   `short:"q" help:"Log errors only"`
}

// AnalyzeCmd is the "analyze" subcommand.
type AnalyzeCmd struct {
	Target    string `arg:"" help:"URL or local HTML file"`
	Format    string `default:"cli" enum:"cli,json,markdown" help:"Output format"`
	Render    string `default:"auto" enum:"auto,on,off" help:"JavaScript rendering probe"`
	Simulate  bool   `help:"Run the AI summary simulation"`
	Model     string `help:"Summarization model name"`
	OllamaURL string `name:"ollama-url" help:"Ollama server URL"`
	Gemini    bool   `help:"Summarize with Gemini instead of Ollama (implies --simulate)"`
	NoRobots  bool   `name:"no-robots" help:"Skip the robots.txt AI-crawler check"`
	Save      bool   `help:"Store the report in the history database"`
	FailUnder int    `name:"fail-under" help:"Exit non-zero when either score is below N"`
}

// AuditCmd is the "audit" subcommand.
type AuditCmd struct {
	SiteURL       string   `arg:"" name:"site-url" help:"Site URL to audit"`
	MaxPages      int      `name:"max-pages" help:"Page cap for the run"`
	Concurrency   int      `short:"c" help:"Concurrent page limit"`
	Rate          float64  `help:"Max requests per second per host"`
	Include       []string `short:"i" help:"Only audit URLs matching the regex (repeatable)"`
	Exclude       []string `short:"x" help:"Skip URLs matching the regex (repeatable)"`
	Out           string   `help:"Write per-page markdown reports to this directory" type:"path"`
	Save          bool     `help:"Record the audit and its reports in the database"`
	SkipUnchanged bool     `name:"skip-unchanged" help:"Reuse stored reports for unchanged pages (needs --save)"`
}

// ServeCmd is the "serve" subcommand.
type ServeCmd struct {
	Addr string `default:":8080" help:"Bind address"`
}

// RulesCmd is the "rules" subcommand.
type RulesCmd struct{}

// ListCmd is the "list" subcommand.
type ListCmd struct {
	Audits bool   `help:"List audit runs instead of reports"`
	URL    string `help:"Filter reports by exact URL"`
	Limit  int    `default:"20" help:"Maximum rows to print"`
}

// ShowCmd is the "show" subcommand.
type ShowCmd struct {
	ID     string `arg:"" help:"Report ID"`
	Format string `default:"cli" enum:"cli,json,markdown" help:"Output format"`
}

// CompareCmd is the "compare" subcommand.
type CompareCmd struct {
	Baseline string `arg:"" help:"Baseline report ID"`
	Current  string `arg:"" help:"Current report ID"`
}

// DeleteCmd is the "delete" subcommand.
type DeleteCmd struct {
	ID    string `arg:"" help:"Report ID"`
	Force bool   `help:"Confirm deletion"`
}
