package step

import (
	"errors"
	"fmt"

	"github.com/bitrise-io/go-steputils/v2/stepconf"
	"github.com/bitrise-io/go-utils/v2/fileutil"
	"github.com/bitrise-io/go-utils/v2/log"
	"github.com/bitrise-io/go-utils/v2/pathutil"
	"github.com/bitrise-steplib/steps-android-test-report/junitxml"
	"github.com/bitrise-steplib/steps-android-test-report/output"
	"github.com/bitrise-steplib/steps-android-test-report/render"
	"github.com/bitrise-steplib/steps-android-test-report/report"
	shellquote "github.com/kballard/go-shellquote"
)

const (
	reportBaseName = "android_test_report"
	tempDirPrefix  = "android-test-report"
)

// Input ...
type Input struct {
	// Report discovery
	WorkingDirectory   string `env:"working_directory,required"`
	ReportPathPatterns string `env:"report_path_patterns"`

	// Report content
	ShowSkipped         bool   `env:"show_skipped,opt[yes,no]"`
	ReportHeaderPostfix string `env:"report_header_postfix"`
	ReportFormat        string `env:"report_format,opt[html,markdown]"`
	LinkFragmentPrefix  string `env:"link_fragment_prefix"`

	// Debug
	Verbose bool `env:"verbose,opt[yes,no]"`

	// Output export
	DeployDir string `env:"BITRISE_DEPLOY_DIR"`
}

// Config ...
type Config struct {
	WorkingDirectory   string
	ReportPathPatterns []string

	ShowSkipped         bool
	ReportHeaderPostfix string
	ReportFormat        string
	LinkFragmentPrefix  string

	DeployDir string
}

// ReportConfigParser ...
type ReportConfigParser struct {
	inputParser  stepconf.InputParser
	logger       log.Logger
	pathChecker  pathutil.PathChecker
	pathModifier pathutil.PathModifier
	pathProvider pathutil.PathProvider
}

// NewReportConfigParser ...
func NewReportConfigParser(inputParser stepconf.InputParser, logger log.Logger, pathChecker pathutil.PathChecker, pathModifier pathutil.PathModifier, pathProvider pathutil.PathProvider) ReportConfigParser {
	return ReportConfigParser{
		inputParser:  inputParser,
		logger:       logger,
		pathChecker:  pathChecker,
		pathModifier: pathModifier,
		pathProvider: pathProvider,
	}
}

// ProcessConfig ...
func (p ReportConfigParser) ProcessConfig() (Config, error) {
	var input Input
	if err := p.inputParser.Parse(&input); err != nil {
		return Config{}, err
	}

	stepconf.Print(input)
	p.logger.Println()

	p.logger.EnableDebugLog(input.Verbose)

	workDir, err := p.pathModifier.AbsPath(input.WorkingDirectory)
	if err != nil {
		return Config{}, fmt.Errorf("failed to get absolute working directory path: %w", err)
	}
	if exists, err := p.pathChecker.IsDirExists(workDir); err != nil {
		return Config{}, fmt.Errorf("failed to check working directory (%s): %w", workDir, err)
	} else if !exists {
		return Config{}, fmt.Errorf("working directory (working_directory) does not exist: %s", workDir)
	}

	patterns, err := shellquote.Split(input.ReportPathPatterns)
	if err != nil {
		return Config{}, fmt.Errorf("provided report path patterns (%s) are not valid CLI parameters: %w", input.ReportPathPatterns, err)
	}
	if len(patterns) == 0 {
		patterns = []string{junitxml.DefaultPattern}
	}

	if _, err := render.NewRenderer(input.ReportFormat); err != nil {
		return Config{}, err
	}

	deployDir := input.DeployDir
	if deployDir == "" {
		p.logger.Warnf("BITRISE_DEPLOY_DIR is not set, the report will be written to a temporary directory")
		if deployDir, err = p.pathProvider.CreateTempDir(tempDirPrefix); err != nil {
			return Config{}, fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	return Config{
		WorkingDirectory:   workDir,
		ReportPathPatterns: patterns,

		ShowSkipped:         input.ShowSkipped,
		ReportHeaderPostfix: input.ReportHeaderPostfix,
		ReportFormat:        input.ReportFormat,
		LinkFragmentPrefix:  input.LinkFragmentPrefix,

		DeployDir: deployDir,
	}, nil
}

// ReportGenerator ...
type ReportGenerator struct {
	logger         log.Logger
	reader         junitxml.Reader
	fileManager    fileutil.FileManager
	outputExporter output.Exporter
}

// NewReportGenerator ...
func NewReportGenerator(logger log.Logger, reader junitxml.Reader, fileManager fileutil.FileManager, outputExporter output.Exporter) ReportGenerator {
	return ReportGenerator{
		logger:         logger,
		reader:         reader,
		fileManager:    fileManager,
		outputExporter: outputExporter,
	}
}

// Result ...
type Result struct {
	DeployDir   string
	ReportPath  string
	ReportFiles []string
	SuiteCount  int
	Totals      report.Totals
}

// Run discovers the test reports, then loads and aggregates them one file at a time.
// The first discovery, load or transform error stops the run, whatever was assembled until then is still rendered.
func (g ReportGenerator) Run(cfg Config) (Result, error) {
	result := Result{DeployDir: cfg.DeployDir}

	g.logger.Infof("Searching for test reports in %s", cfg.WorkingDirectory)
	paths, runErr := g.reader.Discover(cfg.WorkingDirectory, cfg.ReportPathPatterns)
	if runErr == nil {
		g.logger.Printf("%d test report(s) found", len(paths))
	}
	result.ReportFiles = paths

	builder := report.NewAggregator(report.NewNamer(cfg.LinkFragmentPrefix), cfg.ShowSkipped, cfg.ReportHeaderPostfix).NewBuilder()
	if runErr == nil {
		for _, pth := range paths {
			if runErr = g.addReport(builder, pth); runErr != nil {
				break
			}
		}
	}

	doc := builder.Report()
	switch {
	case runErr != nil:
		doc.Blocks = append(doc.Blocks, report.RawText{Text: fmt.Sprintf("The report is incomplete: %s", runErr)})
	case doc.SuiteCount == 0:
		doc.Blocks = append(doc.Blocks, report.RawText{Text: report.NoReportsNotice})
		runErr = report.ErrNoReportsFound
	}
	result.SuiteCount = doc.SuiteCount
	result.Totals = doc.Totals

	renderer, err := render.NewRenderer(cfg.ReportFormat)
	if err != nil {
		return result, err
	}
	sink := render.NewFileSink(cfg.DeployDir, reportBaseName, renderer, g.fileManager)
	if err := sink.Render(doc); err != nil {
		return result, errors.Join(runErr, err)
	}
	result.ReportPath = sink.Path

	g.logger.Println()
	if runErr != nil {
		g.logger.Warnf("Partial report written to %s", sink.Path)
		return result, runErr
	}

	g.logger.Donef("Report written to %s", sink.Path)
	printTotals(g.logger, result)

	return result, nil
}

func (g ReportGenerator) addReport(builder *report.Builder, pth string) error {
	g.logger.Debugf("Loading %s", pth)
	suites, err := g.reader.Load(pth)
	if err != nil {
		return err
	}
	for _, suite := range suites {
		if err := builder.Add(suite); err != nil {
			return err
		}
	}
	return nil
}

// Export ...
func (g ReportGenerator) Export(result Result, failed bool) error {
	g.logger.Println()
	g.logger.Infof("Export outputs")

	g.outputExporter.ExportTestRunResult(failed)
	g.outputExporter.ExportTotals(result.Totals)

	if result.ReportPath != "" {
		if err := g.outputExporter.ExportReport(result.ReportPath); err != nil {
			return err
		}
	}

	if err := g.outputExporter.ExportTestResultFiles(result.DeployDir, result.ReportFiles); err != nil {
		return err
	}

	g.outputExporter.ExportTestAddonResults(result.ReportFiles)

	if result.ReportPath != "" {
		printReportHint(g.logger)
	}

	return nil
}
