package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/bitrise-io/go-steputils/v2/export"
	"github.com/bitrise-io/go-steputils/v2/stepconf"
	"github.com/bitrise-io/go-utils/v2/command"
	"github.com/bitrise-io/go-utils/v2/env"
	"github.com/bitrise-io/go-utils/v2/errorutil"
	"github.com/bitrise-io/go-utils/v2/fileutil"
	"github.com/bitrise-io/go-utils/v2/log"
	"github.com/bitrise-io/go-utils/v2/pathutil"
	"github.com/bitrise-steplib/steps-android-test-report/junitxml"
	"github.com/bitrise-steplib/steps-android-test-report/output"
	"github.com/bitrise-steplib/steps-android-test-report/report"
	"github.com/bitrise-steplib/steps-android-test-report/step"
	"github.com/bitrise-steplib/steps-android-test-report/testaddon"
)

func main() {
	os.Exit(run())
}

func run() int {
	logger := log.NewLogger()
	envRepository := env.NewRepository()

	configParser := createConfigParser(envRepository, logger)
	config, err := configParser.ProcessConfig()
	if err != nil {
		logger.Errorf("%s", errorutil.FormattedError(fmt.Errorf("Failed to process Step inputs: %w", err)))
		return 1
	}

	generator := createReportGenerator(envRepository, logger)
	result, runErr := generator.Run(config)
	testsFailed := runErr != nil || result.Totals.HasFailures()

	if err := generator.Export(result, testsFailed); err != nil {
		logger.Errorf("%s", errorutil.FormattedError(fmt.Errorf("Failed to export Step outputs: %w", err)))
		return 1
	}

	if runErr != nil {
		if errors.Is(runErr, report.ErrNoReportsFound) {
			logger.Errorf("No test reports found in %s matching %v, did the tests run?", config.WorkingDirectory, config.ReportPathPatterns)
		}
		logger.Errorf("%s", errorutil.FormattedError(fmt.Errorf("Failed to generate test report: %w", runErr)))
		return 1
	}

	return 0
}

func createConfigParser(envRepository env.Repository, logger log.Logger) step.ReportConfigParser {
	inputParser := stepconf.NewInputParser(envRepository)
	pathChecker := pathutil.NewPathChecker()
	pathModifier := pathutil.NewPathModifier()
	pathProvider := pathutil.NewPathProvider()

	return step.NewReportConfigParser(inputParser, logger, pathChecker, pathModifier, pathProvider)
}

func createReportGenerator(envRepository env.Repository, logger log.Logger) step.ReportGenerator {
	commandFactory := command.NewFactory(envRepository)
	fileManager := fileutil.NewFileManager()
	reader := junitxml.NewReader(logger)

	outputExporter := export.NewExporter(commandFactory)
	testAddonExporter := testaddon.NewExporter(testaddon.NewTestAddon(logger, commandFactory, fileManager))
	exporter := output.NewExporter(envRepository, logger, &outputExporter, testAddonExporter)

	return step.NewReportGenerator(logger, reader, fileManager, exporter)
}
