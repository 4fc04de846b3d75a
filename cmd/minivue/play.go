package main

import (
	stderrors "errors"
	"fmt"
	"log/slog"
	"os"
	"sort"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/sunnyxujian/minivue"
	"github.com/sunnyxujian/minivue/internal/config"
	"github.com/sunnyxujian/minivue/internal/errors"
	"github.com/sunnyxujian/minivue/pkg/backend/memdom"
	"github.com/sunnyxujian/minivue/pkg/metrics"
	"github.com/sunnyxujian/minivue/pkg/scenario"
)

type playOptions struct {
	configPath  string
	pretty      bool
	showMetrics bool
	verbose     bool
}

func playCmd() *cobra.Command {
	var opts playOptions

	cmd := &cobra.Command{
		Use:   "play <scenario.yaml|dir>...",
		Short: "Play render scenarios",
		Long: `Play YAML render scenarios against an in-memory document and check
every step's expectations.

Directories are expanded to the *.yaml files they contain. The runtime
settings come from --config, or from minivue.yaml in the project root
when one is found.

Examples:
  minivue play testdata/fixtures
  minivue play keyed-reorder.yaml --pretty
  minivue play portal.yaml --metrics`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPlay(args, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.configPath, "config", "c", "", "Path to minivue.yaml")
	cmd.Flags().BoolVarP(&opts.pretty, "pretty", "p", false, "Print the final document as indented HTML")
	cmd.Flags().BoolVarP(&opts.showMetrics, "metrics", "m", false, "Print render counters for each scenario")
	cmd.Flags().BoolVarP(&opts.verbose, "verbose", "v", false, "Log at debug level")

	return cmd
}

func runPlay(args []string, opts playOptions) error {
	cfg, err := playConfig(opts)
	if err != nil {
		return err
	}

	scenarios, err := loadScenarios(args)
	if err != nil {
		return err
	}
	if len(scenarios) == 0 {
		warn("No scenarios found")
		return nil
	}

	failed := 0
	for _, sc := range scenarios {
		if !playOne(sc, cfg, opts) {
			failed++
		}
	}

	fmt.Println()
	if failed > 0 {
		return fmt.Errorf("%d of %d scenarios failed", failed, len(scenarios))
	}
	success("%d scenarios passed", len(scenarios))
	return nil
}

// playConfig resolves the runtime configuration for a play run.
func playConfig(opts playOptions) (minivue.Config, error) {
	var (
		cfg minivue.Config
		err error
	)
	switch {
	case opts.configPath != "":
		cfg, err = minivue.ConfigFromFile(opts.configPath)
	default:
		cfg = minivue.DefaultConfig()
		cfg.Logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
		if wd, wdErr := os.Getwd(); wdErr == nil {
			if root, rootErr := config.FindProjectRoot(wd); rootErr == nil {
				cfg, err = minivue.LoadConfig(root)
			}
		}
	}
	if err != nil {
		return cfg, err
	}

	if opts.verbose {
		cfg.Logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
	}
	if opts.showMetrics && cfg.Metrics == nil {
		m := metrics.DefaultConfig()
		cfg.Metrics = &m
	}
	return cfg, nil
}

// loadScenarios loads files and directories in argument order.
func loadScenarios(args []string) ([]*scenario.Scenario, error) {
	var out []*scenario.Scenario
	for _, arg := range args {
		fi, err := os.Stat(arg)
		if err != nil {
			return nil, err
		}
		if fi.IsDir() {
			scs, err := scenario.LoadDir(arg)
			if err != nil {
				return nil, err
			}
			out = append(out, scs...)
			continue
		}
		sc, err := scenario.Load(arg)
		if err != nil {
			return nil, err
		}
		out = append(out, sc)
	}
	return out, nil
}

// playOne plays sc in a fresh document and runtime and reports whether
// every step met its expectations.
func playOne(sc *scenario.Scenario, cfg minivue.Config, opts playOptions) bool {
	var reg *prometheus.Registry
	if cfg.Metrics != nil {
		reg = prometheus.NewRegistry()
		m := *cfg.Metrics
		m.Registry = reg
		cfg.Metrics = &m
	}

	doc := memdom.NewDocument()
	app := doc.AddContainer(scenario.AppID)
	rt := minivue.New(doc, cfg)
	p := &scenario.Player{Doc: doc, App: app, Renderer: rt.Renderer()}

	fmt.Println()
	fmt.Printf("\033[1m%s\033[0m\n", sc.Name)
	if sc.Description != "" {
		info("%s", sc.Description)
	}

	ok := true
	for i, res := range p.Play(sc) {
		problems := sc.Steps[i].Check(res)
		switch {
		case len(problems) > 0:
			ok = false
			errorMsg("step %d", i)
			for _, err := range problems {
				info("%s", strings.ReplaceAll(err.Error(), "\n", "\n    "))
			}
		case res.Err != nil:
			success("step %d: %s", i, compactError(res.Err))
		default:
			success("step %d: %s", i, res.HTML)
		}
	}

	if opts.pretty {
		fmt.Println()
		fmt.Print(p.Pretty())
	}
	if reg != nil && opts.showMetrics {
		printCounters(reg)
	}
	return ok
}

func compactError(err error) string {
	var e *errors.Error
	if stderrors.As(err, &e) {
		return e.FormatCompact()
	}
	return err.Error()
}

// printCounters prints every non-zero counter series in reg.
func printCounters(reg *prometheus.Registry) {
	families, err := reg.Gather()
	if err != nil {
		warn("Failed to gather metrics: %v", err)
		return
	}

	var lines []string
	for _, f := range families {
		for _, m := range f.GetMetric() {
			c := m.GetCounter()
			if c == nil || c.GetValue() == 0 {
				continue
			}
			labels := make([]string, 0, len(m.GetLabel()))
			for _, lp := range m.GetLabel() {
				labels = append(labels, fmt.Sprintf("%s=%q", lp.GetName(), lp.GetValue()))
			}
			lines = append(lines, fmt.Sprintf("%s{%s} %g", f.GetName(), strings.Join(labels, ","), c.GetValue()))
		}
	}
	sort.Strings(lines)

	fmt.Println()
	for _, l := range lines {
		info("%s", l)
	}
}
