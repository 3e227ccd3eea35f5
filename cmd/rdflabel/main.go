package main

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"runtime"
	"runtime/debug"
	"sort"
	"syscall"

	flag "github.com/spf13/pflag"

	"github.com/MikeO7/rdflabel/internal/config"
	"github.com/MikeO7/rdflabel/internal/label"
	"github.com/MikeO7/rdflabel/internal/rdf"
	"github.com/MikeO7/rdflabel/internal/render"
	"github.com/MikeO7/rdflabel/internal/vocab"
	"github.com/MikeO7/rdflabel/pkg/log"
)

const version = "0.1.0"

var (
	// commit is injected at build time
	commit = "unknown"
)

// appConfig holds the parsed command line
type appConfig struct {
	configPath   string
	graphFile    string
	offline      bool
	refresh      bool
	mostSpecific bool
	withTypes    bool
	withTypesSet bool
	logLevel     string
	showVersion  bool
	iris         []string
}

func main() {
	// Panic recovery to ensure logs are flushed and errors captured
	defer func() {
		if r := recover(); r != nil {
			log.Error(fmt.Sprintf("PANIC: %v\nStack Trace:\n%s", r, debug.Stack()))
			os.Exit(1)
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

func parseFlags(args []string) (appConfig, error) {
	var app appConfig

	fs := flag.NewFlagSet("rdflabel", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.Usage = func() {}

	fs.StringVar(&app.configPath, "config", "rdflabel.yml", "Path to config file")
	fs.StringVar(&app.graphFile, "graph", "", "Render a YAML graph document as a PlantUML object diagram")
	fs.BoolVar(&app.offline, "offline", false, "Do not contact the vocabulary service, use the cache only")
	fs.BoolVar(&app.refresh, "refresh", false, "Download the vocabulary list into the cache and exit")
	fs.BoolVar(&app.mostSpecific, "most-specific-type", false, "Qualify resources with several types by their most specific type")
	fs.BoolVar(&app.withTypes, "with-types", true, "Append the rdf:type label to resource labels")
	fs.StringVar(&app.logLevel, "log-level", "", "Logging level (debug, info, warn, error)")
	fs.BoolVar(&app.showVersion, "version", false, "Show version and exit")

	if err := fs.Parse(args); err != nil {
		return appConfig{}, err
	}

	app.withTypesSet = fs.Changed("with-types")
	app.iris = fs.Args()
	return app, nil
}

func usage(w io.Writer) {
	fmt.Fprintln(w, "Usage: rdflabel [flags] [IRI...]")
	fmt.Fprintln(w, "  --config <file>          config file (default rdflabel.yml, env RDFLABEL_CONFIG)")
	fmt.Fprintln(w, "  --graph <file>           render a YAML graph document as PlantUML")
	fmt.Fprintln(w, "  --offline                use the vocabulary cache only")
	fmt.Fprintln(w, "  --refresh                refresh the vocabulary cache and exit")
	fmt.Fprintln(w, "  --most-specific-type     resolve multiple rdf:type values")
	fmt.Fprintln(w, "  --with-types             append type labels (default true)")
	fmt.Fprintln(w, "  --log-level <level>      debug, info, warn or error")
	fmt.Fprintln(w, "  --version                show version and exit")
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	app, err := parseFlags(args)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		usage(stderr)
		return 1
	}

	if app.showVersion {
		fmt.Fprintf(stdout, "rdflabel version %s (commit: %s, %s/%s)\n", version, commit, runtime.GOOS, runtime.GOARCH)
		return 0
	}

	cfg, err := loadConfig(app.configPath)
	if err != nil {
		fmt.Fprintf(stderr, "Failed to load configuration: %v\n", err)
		return 1
	}
	applyFlags(&cfg, app)

	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(stderr, "Invalid configuration: %v\n", err)
		return 1
	}

	if !cfg.Refresh && cfg.GraphFile == "" && len(app.iris) == 0 {
		fmt.Fprintln(stderr, "Error: nothing to label, pass IRIs or --graph")
		usage(stderr)
		return 1
	}

	log.Initialize(log.Config{
		Level:      cfg.Log.Level,
		JSON:       cfg.Log.JSON,
		File:       cfg.Log.File,
		MaxSize:    cfg.Log.MaxSize,
		MaxBackups: cfg.Log.MaxBackups,
		Output:     stderr,
	})

	log.Debugf("rdflabel version %s (commit=%s)", version, commit)

	fetcher := &vocab.Fetcher{
		URL:        cfg.Registry.URL,
		Client:     &http.Client{},
		Timeout:    cfg.Registry.Timeout,
		MaxRetries: cfg.Registry.MaxRetries,
	}

	if cfg.Refresh {
		n, err := vocab.Refresh(ctx, fetcher, cfg.Registry.CacheFile)
		if err != nil {
			log.ErrorErr("Failed to refresh vocabulary cache", err)
			return 1
		}
		log.Infof("Stored %d vocabularies in %s", n, cfg.Registry.CacheFile)
		fmt.Fprintf(stdout, "%d vocabularies cached in %s\n", n, cfg.Registry.CacheFile)
		return 0
	}

	// The registry is built once here and only read afterwards
	registry := vocab.Build(ctx, vocab.BuildOptions{
		Fetcher:   fetcher,
		CacheFile: cfg.Registry.CacheFile,
		Offline:   cfg.Registry.Offline,
	})
	labeler := label.New(registry, label.Options{MostSpecificType: cfg.Labels.MostSpecificType})

	graph := rdf.NewGraph()
	if cfg.GraphFile != "" {
		graph, err = rdf.LoadDocument(cfg.GraphFile)
		if err != nil {
			log.ErrorErr("Failed to load graph", err)
			return 1
		}
		log.Infof("Loaded %d statements from %s", graph.Len(), cfg.GraphFile)
	}
	bindNamespaces(graph, cfg.Namespaces)

	if cfg.GraphFile != "" && len(app.iris) == 0 {
		if err := render.PlantUML(stdout, graph, labeler, render.Options{WithTypes: cfg.Labels.WithTypes}); err != nil {
			log.ErrorErr("Failed to render graph", err)
			return 1
		}
		return 0
	}

	for _, iri := range app.iris {
		r := graph.Node(iri)
		lbl := labeler.ResourceLabel(r)
		if cfg.Labels.WithTypes {
			lbl = labeler.ResourceLabelWithType(r)
		}
		fmt.Fprintf(stdout, "%s\t%s\n", iri, lbl)
	}
	return 0
}

// loadConfig loads and merges configuration from file and environment
func loadConfig(path string) (config.Config, error) {
	// Check if config env var is set
	if envPath := os.Getenv("RDFLABEL_CONFIG"); envPath != "" {
		path = envPath
	}

	// Load from file (or use defaults if file doesn't exist)
	cfg, err := config.LoadFromFile(path)
	if err != nil {
		return config.Config{}, err
	}

	// Apply environment variable overrides
	cfg.ApplyEnvironmentOverrides()

	return cfg, nil
}

// applyFlags applies CLI flag overrides on top of file and environment
func applyFlags(cfg *config.Config, app appConfig) {
	cfg.GraphFile = app.graphFile
	cfg.Refresh = app.refresh
	if app.offline {
		cfg.Registry.Offline = true
	}
	if app.mostSpecific {
		cfg.Labels.MostSpecificType = true
	}
	if app.withTypesSet {
		cfg.Labels.WithTypes = app.withTypes
	}
	if app.logLevel != "" {
		cfg.Log.Level = app.logLevel
	}
}

// bindNamespaces declares the configured prefixes on g unless the graph
// already binds that prefix or namespace
func bindNamespaces(g *rdf.Graph, namespaces map[string]string) {
	prefixes := make([]string, 0, len(namespaces))
	for prefix := range namespaces {
		prefixes = append(prefixes, prefix)
	}
	sort.Strings(prefixes)

	declared := g.Prefixes()
	for _, prefix := range prefixes {
		ns := namespaces[prefix]
		if _, taken := declared[prefix]; taken {
			continue
		}
		if _, bound := declared.PrefixFor(ns); bound {
			continue
		}
		g.SetPrefix(prefix, ns)
	}
}
