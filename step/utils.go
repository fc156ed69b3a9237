package step

import (
	"github.com/bitrise-io/go-utils/colorstring"
	"github.com/bitrise-io/go-utils/v2/log"
)

func printTotals(logger log.Logger, result Result) {
	totals := result.Totals
	logger.Printf("- suites: %d", result.SuiteCount)
	logger.Printf("- tests: %d", totals.Tests)
	logger.Printf("- failures: %d", totals.Failures)
	logger.Printf("- errors: %d", totals.Errors)
	logger.Printf("- skipped: %d", totals.Skipped)
	logger.Printf("- time: %.3fs", totals.Time)

	if totals.HasFailures() {
		logger.Warnf("Some tests failed, see the report for details.")
	}
}

func printReportHint(logger log.Logger) {
	logger.Println()
	logger.Infof("%s", colorstring.Magenta(`
The report is stored in $BITRISE_DEPLOY_DIR, and its full path
is available in the $ANDROID_TEST_REPORT_PATH environment variable.

If you have the Deploy to Bitrise.io step (after this step),
that will attach the file to your build as an artifact!`))
}
