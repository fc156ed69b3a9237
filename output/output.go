package output

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/bitrise-io/bitrise/configs"
	"github.com/bitrise-io/go-utils/v2/env"
	"github.com/bitrise-io/go-utils/v2/log"
	"github.com/bitrise-steplib/steps-android-test-report/report"
	"github.com/bitrise-steplib/steps-android-test-report/testaddon"
)

// Exported env var keys ...
const (
	TestReportResultKey   = "ANDROID_TEST_REPORT_RESULT"
	TestReportPathKey     = "ANDROID_TEST_REPORT_PATH"
	TestResultsZipPathKey = "ANDROID_TEST_RESULTS_ZIP_PATH"
	TotalTestsKey         = "ANDROID_TEST_TOTAL_TESTS"
	TotalFailuresKey      = "ANDROID_TEST_TOTAL_FAILURES"
	TotalErrorsKey        = "ANDROID_TEST_TOTAL_ERRORS"
	TotalSkippedKey       = "ANDROID_TEST_TOTAL_SKIPPED"
)

const (
	testResultsZipFileName = "android_test_results.zip"
	defaultBundleName      = "android-test-results"
)

// OutputExporter is the part of go-steputils' export.Exporter used for step outputs.
type OutputExporter interface {
	ExportOutput(key, value string) error
	ExportOutputFile(key, sourcePath, destinationPath string) error
	ExportOutputFilesZip(key string, sourcePaths []string, zipPath string) error
}

// Exporter ...
type Exporter interface {
	ExportTestRunResult(failed bool)
	ExportReport(reportPath string) error
	ExportTotals(totals report.Totals)
	ExportTestResultFiles(deployDir string, reportPaths []string) error
	ExportTestAddonResults(reportPaths []string)
}

type exporter struct {
	envRepository     env.Repository
	logger            log.Logger
	outputExporter    OutputExporter
	testAddonExporter testaddon.Exporter
}

// NewExporter ...
func NewExporter(envRepository env.Repository, logger log.Logger, outputExporter OutputExporter, testAddonExporter testaddon.Exporter) Exporter {
	return &exporter{
		envRepository:     envRepository,
		logger:            logger,
		outputExporter:    outputExporter,
		testAddonExporter: testAddonExporter,
	}
}

func (e exporter) ExportTestRunResult(failed bool) {
	status := "succeeded"
	if failed {
		status = "failed"
	}
	if err := e.envRepository.Set(TestReportResultKey, status); err != nil {
		e.logger.Warnf("Failed to export: %s: %s", TestReportResultKey, err)
	}
}

func (e exporter) ExportReport(reportPath string) error {
	if err := e.outputExporter.ExportOutputFile(TestReportPathKey, reportPath, reportPath); err != nil {
		return fmt.Errorf("failed to export %s: %w", TestReportPathKey, err)
	}
	return nil
}

func (e exporter) ExportTotals(totals report.Totals) {
	values := []struct {
		key   string
		value int
	}{
		{TotalTestsKey, totals.Tests},
		{TotalFailuresKey, totals.Failures},
		{TotalErrorsKey, totals.Errors},
		{TotalSkippedKey, totals.Skipped},
	}
	for _, v := range values {
		if err := e.outputExporter.ExportOutput(v.key, strconv.Itoa(v.value)); err != nil {
			e.logger.Warnf("Failed to export: %s: %s", v.key, err)
		}
	}
}

func (e exporter) ExportTestResultFiles(deployDir string, reportPaths []string) error {
	if len(reportPaths) == 0 {
		return nil
	}

	zipPath := filepath.Join(deployDir, testResultsZipFileName)
	if err := e.outputExporter.ExportOutputFilesZip(TestResultsZipPathKey, reportPaths, zipPath); err != nil {
		return fmt.Errorf("failed to export %s: %w", TestResultsZipPathKey, err)
	}
	return nil
}

func (e exporter) ExportTestAddonResults(reportPaths []string) {
	addonResultPath := e.envRepository.Get(configs.BitrisePerStepTestResultDirEnvKey)
	if len(addonResultPath) == 0 || len(reportPaths) == 0 {
		return
	}

	e.logger.Println()
	e.logger.Infof("Exporting test results")

	for _, pth := range reportPaths {
		if err := e.testAddonExporter.CopyAndSaveMetadata(testaddon.AddonCopy{
			SourceTestResultPath:  pth,
			TargetAddonPath:       addonResultPath,
			TargetAddonBundleName: bundleName(pth),
		}); err != nil {
			e.logger.Warnf("Failed to export test results (%s): %s", pth, err)
		}
	}
}

// bundleName is the report file name without the TEST- prefix and the extension:
// TEST-Pixel_6_API_33(AVD) - 13-app-.xml -> Pixel_6_API_33(AVD) - 13-app
func bundleName(reportPath string) string {
	name := strings.TrimSuffix(filepath.Base(reportPath), filepath.Ext(reportPath))
	name = strings.TrimPrefix(name, "TEST-")
	name = strings.Trim(name, "-")
	if name == "" {
		return defaultBundleName
	}
	return name
}
