package cli

import "github.com/yaklabco/goqbc/pkg/runner"

// Exit codes for goqbc.
const (
	// ExitSuccess indicates a clean compile.
	ExitSuccess = 0

	// ExitCompileErrors indicates the compile finished with errors.
	ExitCompileErrors = 1
)

// ExitCodeFromResult determines the exit code for a finished compile.
func ExitCodeFromResult(result *runner.Result) int {
	if result.OK() {
		return ExitSuccess
	}
	return ExitCompileErrors
}
