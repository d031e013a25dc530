package parser

import (
	"workbenchpatchi/synthesizer"
)

const (
	DEFAULT_CONFIG_FILE_PARSER = "DEFAULT_CONFIG_FILE_PARSER"
	ENV_PREFIX                 = "WORKBENCHPATCHI_"
)

// Config is the merged result of defaults, config file, environment and
// command line. Layers are combined as JSON merge patches, so every field
// carries a json tag.
type Config struct {
	ApiVersion  string `yaml:"apiVersion,omitempty" json:"apiVersion,omitempty"`
	Kind        string `yaml:"kind,omitempty" json:"kind,omitempty"`
	File        string `yaml:"file,omitempty" json:"file,omitempty"`
	TokenScope  string `yaml:"tokenScope" json:"tokenScope"`
	UIStyle     string `yaml:"uiStyle" json:"uiStyle"`
	SkipBackup  bool   `yaml:"skipBackup" json:"skipBackup"`
	DryRun      bool   `yaml:"dryRun" json:"dryRun"`
	TokenLimit  int    `yaml:"tokenLimit" json:"tokenLimit"`
	ModelMarker string `yaml:"modelMarker" json:"modelMarker"`
}

func DefaultConfig() Config {
	return Config{
		TokenScope:  synthesizer.TOKEN_SCOPE_CLAUDE37_ONLY,
		UIStyle:     synthesizer.UI_STYLE_GRADIENT,
		TokenLimit:  synthesizer.DEFAULT_TOKEN_LIMIT,
		ModelMarker: synthesizer.DEFAULT_MODEL_MARKER,
	}
}

type ConfigParserInterface interface {
	GetConfig() (Config, error)
}

// NewConfigParser returns a parser layering overrides, in order, on top of the
// defaults and the config file. An empty config_file_path means no file.
func NewConfigParser(config_parser_type string, config_file_path string, overrides ...[]byte) ConfigParserInterface {
	return (&defaultParser{filepath: "", overrides: overrides}).SetConfigFilePath(config_file_path)
}
