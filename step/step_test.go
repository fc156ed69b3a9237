package step

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/bitrise-io/go-steputils/v2/stepconf"
	"github.com/bitrise-io/go-utils/v2/fileutil"
	"github.com/bitrise-io/go-utils/v2/log"
	"github.com/bitrise-io/go-utils/v2/pathutil"
	"github.com/bitrise-steplib/steps-android-test-report/junitxml"
	"github.com/bitrise-steplib/steps-android-test-report/render"
	"github.com/bitrise-steplib/steps-android-test-report/report"
	"github.com/bitrise-steplib/steps-android-test-report/step/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const (
	passingReport = `<testsuite name="com.example.app.SettingsTest" tests="5" failures="0" errors="0" skipped="0" time="2.5" timestamp="2024-03-01T10:00:00" hostname="localhost">
  <testcase name="opensSettings" classname="com.example.app.SettingsTest" time="0.5" />
</testsuite>`
	failingReport = `<testsuite name="com.example.app.LoginTest" tests="3" failures="1" errors="0" skipped="1" time="1.25" timestamp="2024-03-01T10:01:00" hostname="localhost">
  <testcase name="loginSucceeds" classname="com.example.app.LoginTest" time="0.25" />
  <testcase name="loginFailsWithWrongPassword" classname="com.example.app.LoginTest" time="0.5">
    <failure message="expected error" type="java.lang.AssertionError">at LoginTest.kt:42</failure>
  </testcase>
  <testcase name="loginIgnored" classname="com.example.app.LoginTest" time="0"><skipped /></testcase>
</testsuite>`
)

func Test_GivenDefaultInputs_WhenProcessConfig_ThenParsesConfig(t *testing.T) {
	// Given
	envValues := defaultEnvValues(t)
	envValues["report_path_patterns"] = `'*/my reports/*.xml' '*androidTest-results/*.xml'`
	envValues["show_skipped"] = "yes"
	envValues["report_header_postfix"] = " (nightly)"
	configParser := createConfigParser(t, envValues)

	// When
	config, err := configParser.ProcessConfig()

	// Then
	require.NoError(t, err)
	require.Equal(t, Config{
		WorkingDirectory:    envValues["working_directory"],
		ReportPathPatterns:  []string{"*/my reports/*.xml", "*androidTest-results/*.xml"},
		ShowSkipped:         true,
		ReportHeaderPostfix: " (nightly)",
		ReportFormat:        "html",
		DeployDir:           envValues["BITRISE_DEPLOY_DIR"],
	}, config)
}

func Test_GivenNoPatterns_WhenProcessConfig_ThenUsesDefaultPattern(t *testing.T) {
	// Given
	configParser := createConfigParser(t, defaultEnvValues(t))

	// When
	config, err := configParser.ProcessConfig()

	// Then
	require.NoError(t, err)
	require.Equal(t, []string{junitxml.DefaultPattern}, config.ReportPathPatterns)
}

func Test_GivenNoDeployDir_WhenProcessConfig_ThenCreatesTempDir(t *testing.T) {
	// Given
	envValues := defaultEnvValues(t)
	envValues["BITRISE_DEPLOY_DIR"] = ""
	configParser := createConfigParser(t, envValues)

	// When
	config, err := configParser.ProcessConfig()

	// Then
	require.NoError(t, err)
	require.NotEmpty(t, config.DeployDir)
	require.DirExists(t, config.DeployDir)
}

func Test_GivenInvalidInputs_WhenProcessConfig_ThenFails(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{name: "missing working directory", key: "working_directory", value: ""},
		{name: "not existing working directory", key: "working_directory", value: "/not/existing/dir"},
		{name: "unsupported format", key: "report_format", value: "pdf"},
		{name: "invalid show_skipped", key: "show_skipped", value: "maybe"},
		{name: "unterminated quote in patterns", key: "report_path_patterns", value: "'*.xml"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Given
			envValues := defaultEnvValues(t)
			envValues[tt.key] = tt.value
			configParser := createConfigParser(t, envValues)

			// When
			_, err := configParser.ProcessConfig()

			// Then
			require.Error(t, err)
		})
	}
}

func Test_GivenReports_WhenRun_ThenWritesLinkedReport(t *testing.T) {
	// Given
	workDir := t.TempDir()
	resultsDir := filepath.Join(workDir, "app", "build", "outputs", "androidTest-results", "connected")
	writeFile(t, filepath.Join(resultsDir, "TEST-Pixel_6-app-1.xml"), passingReport)
	writeFile(t, filepath.Join(resultsDir, "TEST-Pixel_6-app-2.xml"), failingReport)

	generator := NewReportGenerator(log.NewLogger(), junitxml.NewReader(log.NewLogger()), fileutil.NewFileManager(), mocks.NewExporter(t))
	config := defaultConfig(workDir, t.TempDir())
	config.ShowSkipped = true

	// When
	result, err := generator.Run(config)

	// Then
	require.NoError(t, err)
	assert.Equal(t, 2, result.SuiteCount)
	assert.Equal(t, report.Totals{Tests: 8, Failures: 1, Skipped: 1, Time: 3.75}, result.Totals)
	assert.Len(t, result.ReportFiles, 2)
	assert.Equal(t, filepath.Join(config.DeployDir, "android_test_report.html"), result.ReportPath)

	content := readFile(t, result.ReportPath)
	assert.Contains(t, content, `<a id="back-to-login-fails-with-wrong-password-failures" href="#login-fails-with-wrong-password-failures">1</a>`)
	assert.Contains(t, content, `<h3 id="login-fails-with-wrong-password-failures"><a href="#back-to-login-fails-with-wrong-password-failures">loginFailsWithWrongPassword</a></h3>`)
	assert.Contains(t, content, `<h3 id="login-ignored-skipped">`)
}

func Test_GivenNoReports_WhenRun_ThenWritesNoticeAndFails(t *testing.T) {
	// Given
	generator := NewReportGenerator(log.NewLogger(), junitxml.NewReader(log.NewLogger()), fileutil.NewFileManager(), mocks.NewExporter(t))
	config := defaultConfig(t.TempDir(), t.TempDir())
	config.ReportFormat = render.FormatMarkdown

	// When
	result, err := generator.Run(config)

	// Then
	require.True(t, errors.Is(err, report.ErrNoReportsFound))
	assert.Equal(t, "# Android Test Report\n\nNo test reports found.\n", readFile(t, result.ReportPath))
}

func Test_GivenUnparsableReport_WhenRun_ThenStopsAtFirstErrorAndWritesPartialReport(t *testing.T) {
	// Given
	reader := mocks.NewReader(t)
	paths := []string{"first.xml", "broken.xml", "third.xml"}
	parseErr := &report.ParseError{Path: "broken.xml", Reason: "invalid XML"}
	reader.On("Discover", "/work", mock.Anything).Return(paths, nil)
	reader.On("Load", "first.xml").Return([]report.SuiteRecord{{Name: "First", Tests: 1, HasCases: true}}, nil)
	reader.On("Load", "broken.xml").Return(nil, parseErr)

	generator := NewReportGenerator(log.NewLogger(), reader, fileutil.NewFileManager(), mocks.NewExporter(t))
	config := defaultConfig("/work", t.TempDir())
	config.ReportFormat = render.FormatMarkdown

	// When
	result, err := generator.Run(config)

	// Then
	var actualErr *report.ParseError
	require.True(t, errors.As(err, &actualErr))
	assert.Equal(t, "broken.xml", actualErr.Path)
	reader.AssertNotCalled(t, "Load", "third.xml")

	content := readFile(t, result.ReportPath)
	assert.Contains(t, content, "| First | 1 | 0 | 0 | 0 | N/A | 0 |")
	assert.Contains(t, content, "The report is incomplete: failed to parse test report (broken.xml): invalid XML")
}

func Test_GivenSuiteWithoutCasesBeforeUnreadableFile_WhenRun_ThenFirstErrorWins(t *testing.T) {
	// Given
	reader := mocks.NewReader(t)
	paths := []string{"first.xml", "broken.xml"}
	reader.On("Discover", "/work", mock.Anything).Return(paths, nil)
	reader.On("Load", "first.xml").Return([]report.SuiteRecord{{Name: "First", Tests: 2, Path: "first.xml"}}, nil)

	generator := NewReportGenerator(log.NewLogger(), reader, fileutil.NewFileManager(), mocks.NewExporter(t))
	config := defaultConfig("/work", t.TempDir())
	config.ReportFormat = render.FormatMarkdown

	// When
	result, err := generator.Run(config)

	// Then
	var actualErr *report.ParseError
	require.True(t, errors.As(err, &actualErr))
	assert.Equal(t, "first.xml", actualErr.Path)
	reader.AssertNotCalled(t, "Load", "broken.xml")
	assert.Equal(t, 0, result.SuiteCount)
	assert.NotContains(t, readFile(t, result.ReportPath), report.NoReportsNotice)
}

func Test_GivenUnparsableFirstReport_WhenRun_ThenWritesHeadingAndIncompleteNoticeOnly(t *testing.T) {
	// Given
	reader := mocks.NewReader(t)
	reader.On("Discover", "/work", mock.Anything).Return([]string{"broken.xml", "second.xml"}, nil)
	reader.On("Load", "broken.xml").Return(nil, &report.ParseError{Path: "broken.xml", Reason: "invalid XML"})

	generator := NewReportGenerator(log.NewLogger(), reader, fileutil.NewFileManager(), mocks.NewExporter(t))
	config := defaultConfig("/work", t.TempDir())
	config.ReportFormat = render.FormatMarkdown

	// When
	result, err := generator.Run(config)

	// Then
	require.Error(t, err)
	require.False(t, errors.Is(err, report.ErrNoReportsFound))
	reader.AssertNotCalled(t, "Load", "second.xml")
	assert.Equal(t, "# Android Test Report\n\nThe report is incomplete: failed to parse test report (broken.xml): invalid XML\n", readFile(t, result.ReportPath))
}

func Test_GivenUnwritableDeployDir_WhenRun_ThenReturnsSinkWriteError(t *testing.T) {
	// Given
	deployDir := filepath.Join(t.TempDir(), "deploy")
	writeFile(t, deployDir, "not a directory")

	reader := mocks.NewReader(t)
	reader.On("Discover", mock.Anything, mock.Anything).Return([]string{"a.xml"}, nil)
	reader.On("Load", "a.xml").Return([]report.SuiteRecord{{Name: "A", HasCases: true}}, nil)

	generator := NewReportGenerator(log.NewLogger(), reader, fileutil.NewFileManager(), mocks.NewExporter(t))

	// When
	result, err := generator.Run(defaultConfig("/work", filepath.Join(deployDir, "sub")))

	// Then
	var sinkErr *render.SinkWriteError
	require.True(t, errors.As(err, &sinkErr))
	assert.Empty(t, result.ReportPath)
}

func Test_GivenStep_WhenExportsTestResult_ThenSetsCorrectly(t *testing.T) {
	tests := []struct {
		name       string
		testFailed bool
	}{
		{
			name:       "Exports success status",
			testFailed: false,
		},
		{
			name:       "Exports failure status",
			testFailed: true,
		},
	}

	for _, test := range tests {
		t.Log(test.name)

		runExportTest(t, test.testFailed)
	}
}

func runExportTest(t *testing.T, testFailed bool) {
	// Given
	exporter := mocks.NewExporter(t)
	generator := NewReportGenerator(log.NewLogger(), mocks.NewReader(t), fileutil.NewFileManager(), exporter)

	exporter.On("ExportTestRunResult", testFailed)
	exporter.On("ExportTotals", mock.Anything)
	exporter.On("ExportTestResultFiles", mock.Anything, mock.Anything).Return(nil)
	exporter.On("ExportTestAddonResults", mock.Anything)

	// When
	err := generator.Export(Result{}, testFailed)

	// Then
	assert.NoError(t, err)

	exporter.AssertCalled(t, "ExportTestRunResult", testFailed)
	exporter.AssertNotCalled(t, "ExportReport", mock.Anything)
}

func Test_GivenStep_WhenExport_ThenExportsReportAndTestResults(t *testing.T) {
	// Given
	exporter := mocks.NewExporter(t)
	generator := NewReportGenerator(log.NewLogger(), mocks.NewReader(t), fileutil.NewFileManager(), exporter)
	result := defaultResult()

	exporter.On("ExportTestRunResult", true)
	exporter.On("ExportTotals", result.Totals)
	exporter.On("ExportReport", result.ReportPath).Return(nil)
	exporter.On("ExportTestResultFiles", result.DeployDir, result.ReportFiles).Return(nil)
	exporter.On("ExportTestAddonResults", result.ReportFiles)

	// When
	err := generator.Export(result, true)

	// Then
	assert.NoError(t, err)
}

func Test_GivenExportFailure_WhenExport_ThenReturnsError(t *testing.T) {
	// Given
	exporter := mocks.NewExporter(t)
	generator := NewReportGenerator(log.NewLogger(), mocks.NewReader(t), fileutil.NewFileManager(), exporter)
	result := defaultResult()

	exporter.On("ExportTestRunResult", false)
	exporter.On("ExportTotals", result.Totals)
	exporter.On("ExportReport", result.ReportPath).Return(errors.New("envman failed"))

	// When
	err := generator.Export(result, false)

	// Then
	require.Error(t, err)
	exporter.AssertNotCalled(t, "ExportTestResultFiles", mock.Anything, mock.Anything)
}

// Helpers

func defaultEnvValues(t *testing.T) map[string]string {
	return map[string]string{
		"working_directory":     t.TempDir(),
		"report_path_patterns":  "",
		"show_skipped":          "no",
		"report_header_postfix": "",
		"report_format":         "html",
		"link_fragment_prefix":  "",
		"verbose":               "no",
		"BITRISE_DEPLOY_DIR":    t.TempDir(),
	}
}

func defaultConfig(workDir, deployDir string) Config {
	return Config{
		WorkingDirectory:   workDir,
		ReportPathPatterns: []string{junitxml.DefaultPattern},
		ReportFormat:       render.FormatHTML,
		DeployDir:          deployDir,
	}
}

func defaultResult() Result {
	return Result{
		DeployDir:   "DeployDir",
		ReportPath:  "DeployDir/android_test_report.html",
		ReportFiles: []string{"TEST-1.xml", "TEST-2.xml"},
		SuiteCount:  2,
		Totals:      report.Totals{Tests: 3, Failures: 1},
	}
}

func createConfigParser(t *testing.T, envValues map[string]string) ReportConfigParser {
	envRepository := mocks.NewRepository(t)

	call := envRepository.On("Get", mock.Anything)
	call.RunFn = func(arguments mock.Arguments) {
		key := arguments[0].(string)
		value := envValues[key]
		call.ReturnArguments = mock.Arguments{value, nil}
	}

	inputParser := stepconf.NewInputParser(envRepository)

	return NewReportConfigParser(inputParser, log.NewLogger(), pathutil.NewPathChecker(), pathutil.NewPathModifier(), pathutil.NewPathProvider())
}

func writeFile(t *testing.T, pth, content string) {
	require.NoError(t, fileutil.NewFileManager().Write(pth, content, 0600))
}

func readFile(t *testing.T, pth string) string {
	content, err := os.ReadFile(pth)
	require.NoError(t, err)
	return string(content)
}
