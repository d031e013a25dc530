package checkfilter

import (
	"workbenchpatchi/patcher"
)

const (
	DEFAULT_CHECK_FILTER = "DEFAULT_CHECK_FILTER"
)

type Summary struct {
	File     string                    `yaml:"file"`
	Applied  int                       `yaml:"applied"`
	Failed   int                       `yaml:"failed"`
	Warnings []string                  `yaml:"warnings,omitempty"`
	Results  []patcher.TransformResult `yaml:"results"`
}

type CheckFilter interface {
	Finalize(string, string, string, []patcher.TransformResult) (Summary, error)
}

func NewCheckFilter(check_filter_type string) CheckFilter {
	return (&defaultCheckFilter{})
}
