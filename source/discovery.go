package source

import (
	"workbenchpatchi/helpers"

	"os"
	"strings"
)

const (
	WORKBENCH_UNIX_SUFFIX    = "resources/app/out/vs/workbench/workbench.desktop.main.js"
	WORKBENCH_MACOS_SUFFIX   = "Cursor.app/Contents/Resources/app/out/vs/workbench/workbench.desktop.main.js"
	WORKBENCH_WINDOWS_SUFFIX = `resources\app\out\vs\workbench\workbench.desktop.main.js`
)

// CandidatePaths lists the known install locations of the workbench bundle,
// macOS first, then Windows, then Linux. Paths are built by hand since the
// Windows ones must keep backslashes whatever the host OS.
func CandidatePaths(home string) []string {
	home = strings.TrimRight(home, `/\`)
	return []string{
		"/Applications/" + WORKBENCH_MACOS_SUFFIX,
		home + "/Applications/" + WORKBENCH_MACOS_SUFFIX,
		`C:\Program Files\Cursor\` + WORKBENCH_WINDOWS_SUFFIX,
		`C:\Program Files (x86)\Cursor\` + WORKBENCH_WINDOWS_SUFFIX,
		home + `\AppData\Local\Programs\Cursor\` + WORKBENCH_WINDOWS_SUFFIX,
		"/usr/share/cursor/" + WORKBENCH_UNIX_SUFFIX,
		home + "/.local/share/cursor/" + WORKBENCH_UNIX_SUFFIX,
	}
}

// DiscoverWorkbenchFile returns the first candidate that is a regular file.
func DiscoverWorkbenchFile(home string, is_file func(string) bool) (string, error) {
	if is_file == nil {
		is_file = isRegularFile
	}
	for _, candidate := range CandidatePaths(home) {
		if is_file(candidate) {
			return candidate, nil
		}
	}
	return "", helpers.WrapError(helpers.ErrFileNotFound, "no workbench.desktop.main.js in any known install location")
}

func isRegularFile(file_path string) bool {
	info, err := os.Stat(file_path)
	return err == nil && info.Mode().IsRegular()
}
