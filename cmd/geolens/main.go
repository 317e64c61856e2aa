package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
	"github.com/alecthomas/kong"
	"github.com/fwojciec/geolens"
	"github.com/fwojciec/geolens/analyze"
	"github.com/fwojciec/geolens/crawl"
	"github.com/fwojciec/geolens/fs"
	"github.com/fwojciec/geolens/gemini"
	"github.com/fwojciec/geolens/geo"
	geogin "github.com/fwojciec/geolens/gin"
	"github.com/fwojciec/geolens/goquery"
	geohttp "github.com/fwojciec/geolens/http"
	"github.com/fwojciec/geolens/htmltomarkdown"
	"github.com/fwojciec/geolens/ollama"
	"github.com/fwojciec/geolens/prose"
	"github.com/fwojciec/geolens/readability"
	"github.com/fwojciec/geolens/rod"
	"github.com/fwojciec/geolens/seo"
	"github.com/fwojciec/geolens/simulate"
	geoslog "github.com/fwojciec/geolens/slog"
	"github.com/fwojciec/geolens/sqlite"
	"github.com/fwojciec/geolens/trafilatura"
	"github.com/fwojciec/geolens/yaml"
	"google.golang.org/genai"
)

func main() {
	ctx := context.Background()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Database path. Set before calling Run().
	DBPath string

	// Config file path. Empty means the default location, whose absence
	// is tolerated.
	ConfigPath string

	// SQLite database used by SQLite service implementations.
	DB *sqlite.DB

	// Services for end-to-end testing.
	ReportService geolens.ReportService
	AuditService  geolens.AuditService
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{
		DBPath: defaultDBPath(),
	}
}

// Close gracefully stops the program.
func (m *Main) Close() error {
	if m.DB != nil {
		return m.DB.Close()
	}
	return nil
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	// Initialize dependencies struct for Kong binding
	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
	}

	// Create Kong parser with dependency binding
	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("geolens"),
		kong.Description("Explainable SEO and GEO analysis for web content."),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	// Handle help flags using Kong
	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'geolens --help' to see available commands")
	}

	if cmd := args[0]; cmd == "help" || cmd == "--help" || cmd == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	// Parse arguments first to know which command and its flags
	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	deps.Logger = newLogger(stderr, cli.Verbose, cli.Quiet)

	cfg, err := m.loadConfig(cli.Config)
	if err != nil {
		return err
	}
	deps.Config = cfg

	// Open database
	if cli.DB != "" {
		m.DBPath = cli.DB
	}
	m.DB = sqlite.NewDB(m.DBPath)
	if err := m.DB.Open(); err != nil {
		fmt.Fprintf(stderr, "Hint: Set GEOLENS_DB or pass --db to use a different database path\n")
		return fmt.Errorf("failed to open database at %q: %w", m.DBPath, err)
	}
	defer m.Close()

	// Wire core services into dependencies
	m.ReportService = sqlite.NewReportService(m.DB)
	m.AuditService = sqlite.NewAuditService(m.DB)
	deps.DB = m.DB
	deps.Reports = m.ReportService
	deps.Audits = m.AuditService

	// Wire command-specific dependencies based on command
	command := kongCtx.Command()

	if strings.HasPrefix(command, "analyze") {
		isURL := strings.HasPrefix(cli.Analyze.Target, "http://") ||
			strings.HasPrefix(cli.Analyze.Target, "https://")

		if isURL {
			f := newHTTPFetcher(cfg)
			defer f.Close()
			deps.Fetcher = geoslog.NewLoggingFetcher(f, deps.Logger)
			if !cli.Analyze.NoRobots {
				deps.Robots = geohttp.NewRobotsService(nil)
			}
		} else {
			deps.Fetcher = fs.NewFetcher()
		}

		// Local files have nothing to render.
		render := cli.Analyze.Render
		if !isURL {
			render = "off"
		}
		switch render {
		case "on":
			rf, err := rod.NewFetcher()
			if err != nil {
				fmt.Fprintln(stderr, "Hint: Chrome or Chromium must be installed for --render=on")
				return fmt.Errorf("failed to start browser: %w", err)
			}
			defer rf.Close()
			deps.Renderer = rod.NewLoggingFetcher(rf, deps.Logger)
		case "auto":
			rf, err := rod.NewFetcher()
			if err != nil {
				deps.Logger.Warn("rendering probe unavailable, analyzing the static page only", "err", err)
			} else {
				defer rf.Close()
				deps.Renderer = rod.NewLoggingFetcher(rf, deps.Logger)
			}
		}

		deps.Parser = newParser()

		sim, err := buildSimulator(ctx, cfg, simulatorOverrides{
			enabled: cli.Analyze.Simulate,
			gemini:  cli.Analyze.Gemini,
			model:   cli.Analyze.Model,
			url:     cli.Analyze.OllamaURL,
		}, stderr)
		if err != nil {
			return err
		}
		deps.Analyzer = buildAnalyzer(cfg, sim, deps.Logger)
	}

	if strings.HasPrefix(command, "audit") {
		f := newHTTPFetcher(cfg)
		defer f.Close()

		rate := cli.Audit.Rate
		if rate <= 0 {
			rate = cfg.Audit.Rate
		}
		if rate <= 0 {
			rate = 1
		}
		concurrency := cli.Audit.Concurrency
		if concurrency <= 0 {
			concurrency = cfg.Audit.Concurrency
		}
		maxPages := cli.Audit.MaxPages
		if maxPages <= 0 {
			maxPages = cfg.Audit.MaxPages
		}

		auditor := &crawl.Auditor{
			Sitemaps:    geoslog.NewLoggingSitemapService(geohttp.NewSitemapService(nil), deps.Logger),
			Fetcher:     geoslog.NewLoggingFetcher(f, deps.Logger),
			Parser:      newParser(),
			Analyzer:    buildAnalyzer(cfg, nil, deps.Logger),
			Robots:      geohttp.NewRobotsService(nil),
			RateLimiter: crawl.NewDomainLimiter(rate),
			Concurrency: concurrency,
			MaxPages:    maxPages,
		}
		// Token accounting is cosmetic; audits run fine without it.
		if tc, err := gemini.NewTokenCounter(gemini.DefaultModel); err == nil {
			auditor.TokenCounter = tc
		}
		if cli.Audit.Save {
			auditor.Reports = deps.Reports
			auditor.Audits = deps.Audits
			auditor.SkipUnchanged = cli.Audit.SkipUnchanged
		}
		deps.Auditor = auditor
	}

	if strings.HasPrefix(command, "serve") {
		f := newHTTPFetcher(cfg)
		defer f.Close()

		sim, err := buildSimulator(ctx, cfg, simulatorOverrides{}, stderr)
		if err != nil {
			return err
		}

		server := geogin.NewServer()
		server.Fetcher = geoslog.NewLoggingFetcher(f, deps.Logger)
		server.Parser = newParser()
		server.Analyzer = buildAnalyzer(cfg, sim, deps.Logger)
		server.Reports = deps.Reports
		server.Logger = deps.Logger

		queue := geogin.NewJobQueue(server.AnalyzeURL)
		server.Jobs = queue

		deps.Server = server
		deps.Queue = queue
	}

	return kongCtx.Run(deps)
}

// newLogger builds the CLI logger. Pipeline decorators log at Info, so
// the default Warn level keeps normal runs quiet.
func newLogger(stderr io.Writer, verbose, quiet bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	if quiet {
		level = slog.LevelError
	}
	return slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))
}

// loadConfig reads the YAML config file. Only the built-in default
// location tolerates a missing file; an explicit path must exist.
func (m *Main) loadConfig(flagPath string) (*yaml.Config, error) {
	path := flagPath
	if path == "" {
		path = m.ConfigPath
	}
	explicit := path != ""
	if path == "" {
		path = defaultConfigPath()
	}

	cfg, err := yaml.LoadConfig(path)
	if err != nil {
		if !explicit && geolens.ErrorCode(err) == geolens.ENOTFOUND {
			return yaml.DefaultConfig(), nil
		}
		return nil, err
	}
	return cfg, nil
}

func newHTTPFetcher(cfg *yaml.Config) *geohttp.Fetcher {
	return geohttp.NewFetcher(
		geohttp.WithTimeout(cfg.Fetch.Timeout.Std()),
		geohttp.WithUserAgent(cfg.Fetch.UserAgent),
	)
}

// newParser builds the content parser with the full extractor chain.
func newParser() geolens.Parser {
	return goquery.NewParser(trafilatura.NewExtractor(),
		goquery.WithFallbackExtractor(readability.NewExtractor()),
		goquery.WithEntityExtractor(prose.NewExtractor()),
	)
}

// buildAnalyzer assembles the pipeline with configured weight overrides.
func buildAnalyzer(cfg *yaml.Config, sim geolens.Simulator, logger *slog.Logger) geolens.Analyzer {
	pipeline := &analyze.Pipeline{
		SEORules:         geolens.ApplyWeights(seo.Rules(), cfg.Weights),
		GEORules:         geolens.ApplyWeights(geo.Rules(), cfg.Weights),
		Simulator:        sim,
		SimulatorTimeout: cfg.Simulator.Timeout.Std(),
	}
	return geoslog.NewLoggingAnalyzer(pipeline, logger)
}

// simulatorOverrides carries the analyze flags that override the
// simulator section of the config file.
type simulatorOverrides struct {
	enabled bool
	gemini  bool
	model   string
	url     string
}

// buildSimulator wires the configured summarization backend. Returns
// nil when simulation is not requested.
func buildSimulator(ctx context.Context, cfg *yaml.Config, o simulatorOverrides, stderr io.Writer) (geolens.Simulator, error) {
	if !o.enabled && !o.gemini && !cfg.Simulator.Enabled {
		return nil, nil
	}

	backend := cfg.Simulator.Backend
	if o.gemini {
		backend = yaml.BackendGemini
	}
	model := o.model
	if model == "" {
		model = cfg.Simulator.Model
	}

	var summarizer geolens.Summarizer
	var tokenCounter geolens.TokenCounter

	switch backend {
	case yaml.BackendGemini:
		apiKey := os.Getenv("GEMINI_API_KEY")
		if apiKey == "" {
			fmt.Fprintln(stderr, "GEMINI_API_KEY environment variable not set. Get an API key at https://aistudio.google.com/apikey")
			return nil, geolens.Errorf(geolens.EINVALID, "GEMINI_API_KEY not set")
		}
		client, err := genai.NewClient(ctx, &genai.ClientConfig{
			APIKey:  apiKey,
			Backend: genai.BackendGeminiAPI,
		})
		if err != nil {
			fmt.Fprintln(stderr, "Hint: Check your GEMINI_API_KEY is valid")
			return nil, fmt.Errorf("failed to connect to Gemini API: %w", err)
		}
		summarizer = gemini.NewSummarizer(client, model)
		if tc, err := gemini.NewTokenCounter(gemini.DefaultModel); err == nil {
			tokenCounter = tc
		}
	default:
		var opts []ollama.Option
		url := o.url
		if url == "" {
			url = cfg.Simulator.URL
		}
		if url != "" {
			opts = append(opts, ollama.WithBaseURL(url))
		}
		if model != "" {
			opts = append(opts, ollama.WithModel(model))
		}
		if d := cfg.Simulator.Timeout.Std(); d > 0 {
			opts = append(opts, ollama.WithTimeout(d))
		}
		summarizer = ollama.NewSummarizer(opts...)
	}

	return &simulate.Simulator{
		Summarizer:     summarizer,
		Converter:      htmltomarkdown.NewConverter(),
		TokenCounter:   tokenCounter,
		MaxInputTokens: simulate.DefaultMaxInputTokens,
	}, nil
}

func defaultDBPath() string {
	if path := os.Getenv("GEOLENS_DB"); path != "" {
		return path
	}
	dir := filepath.Join(xdg.DataHome, "geolens")
	_ = os.MkdirAll(dir, 0755)
	return filepath.Join(dir, "geolens.db")
}

func defaultConfigPath() string {
	return filepath.Join(xdg.ConfigHome, "geolens", "config.yaml")
}
