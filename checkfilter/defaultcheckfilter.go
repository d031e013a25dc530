package checkfilter

import (
	"workbenchpatchi/helpers"
	"workbenchpatchi/patcher"

	"fmt"
	"strings"

	yaml "gopkg.in/yaml.v3"
)

const (
	WARNING_NOOP      = "%s: already patched, left unchanged (%s)"
	WARNING_NOT_FOUND = "%s: pattern drifted, expected construct not found (%s)"
	WARNING_FAILED    = "%s: %s (%s)"
)

type defaultCheckFilter struct {
}

// Finalize cross-checks the patcher's results against the texts before and
// after patching and turns them into a summary.
func (dcf *defaultCheckFilter) Finalize(file_path string, original string, patched string, results []patcher.TransformResult) (Summary, error) {
	summary := Summary{File: file_path, Results: results}
	for _, result := range results {
		if result.Applied {
			summary.Applied++
			continue
		}
		if result.Reason == "" {
			return Summary{}, helpers.GenError("Transform %s failed in state %s without a reason", result.Name, result.State)
		}
		summary.Failed++
		summary.Warnings = append(summary.Warnings, formatWarning(result))
	}
	if summary.Applied == 0 && patched != original {
		return Summary{}, helpers.GenError("Text changed although no transform was applied")
	}
	if summary.Applied > 0 && patched == original {
		return Summary{}, helpers.GenError("%d transform(s) reported as applied but the text is unchanged", summary.Applied)
	}
	return summary, nil
}

func formatWarning(result patcher.TransformResult) string {
	switch result.State {
	case patcher.STATE_SUBSTITUTION_NOOP:
		return fmt.Sprintf(WARNING_NOOP, result.Name, result.Construct)
	case patcher.STATE_NOT_FOUND:
		return fmt.Sprintf(WARNING_NOT_FOUND, result.Name, result.Construct)
	}
	return fmt.Sprintf(WARNING_FAILED, result.Name, result.Reason, result.State)
}

func (s Summary) ToYAML() (string, error) {
	var yaml_res strings.Builder
	yaml_enc := yaml.NewEncoder(&yaml_res)
	yaml_enc.SetIndent(2)
	err := yaml_enc.Encode(&s)
	yaml_enc.Close()
	if err != nil {
		return "", helpers.GenError("Unable to render summary as YAML: %s", err)
	}
	return yaml_res.String(), nil
}
