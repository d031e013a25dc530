package parser

import (
	"workbenchpatchi/helpers"
	"workbenchpatchi/synthesizer"

	"bytes"
	"encoding/json"
	"os"

	jsonpatch "github.com/evanphx/json-patch"
	yaml "gopkg.in/yaml.v3"
)

const (
	CORRECT_CONFIG_API_VERSION = "workbenchpatchi.io/v1alpha1"
	CORRECT_CONFIG_KIND        = "WorkbenchPatchi"
)

type defaultParser struct {
	filepath  string
	overrides [][]byte
}

func (cp *defaultParser) SetConfigFilePath(filepath string) *defaultParser {
	cp.filepath = filepath
	return cp
}

func (cp *defaultParser) GetConfig() (Config, error) {
	merged, err := json.Marshal(DefaultConfig())
	if err != nil {
		return Config{}, helpers.GenError("Unable to encode default configuration: %s", err)
	}
	if cp.filepath != "" {
		file_layer, err := cp.readConfigFile()
		if err != nil {
			return Config{}, err
		}
		merged, err = jsonpatch.MergePatch(merged, file_layer)
		if err != nil {
			return Config{}, helpers.WrapError(helpers.ErrInvalidConfig, "unable to merge config file (\"%s\"): %s", cp.filepath, err)
		}
	}
	for i, override := range cp.overrides {
		if len(override) == 0 {
			continue
		}
		merged, err = jsonpatch.MergePatch(merged, override)
		if err != nil {
			return Config{}, helpers.WrapError(helpers.ErrInvalidConfig, "unable to merge override #%d: %s", i, err)
		}
	}

	dec := json.NewDecoder(bytes.NewReader(merged))
	dec.DisallowUnknownFields()
	var cfg Config
	err = dec.Decode(&cfg)
	if err != nil {
		return Config{}, helpers.WrapError(helpers.ErrInvalidConfig, "unable to decode merged configuration: %s", err)
	}
	err = cp.checkConfigCorrectness(&cfg)
	if err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// readConfigFile decodes the YAML file and returns it as a JSON merge patch.
func (cp *defaultParser) readConfigFile() ([]byte, error) {
	fh, err := os.OpenFile(cp.filepath, os.O_RDONLY, 0400)
	if err != nil {
		return nil, helpers.WrapError(helpers.ErrIOFailure, "unable to open config file (\"%s\"): %s", cp.filepath, err)
	}
	defer fh.Close()
	dec := yaml.NewDecoder(fh)
	var unmarshaled map[string]interface{}
	err = dec.Decode(&unmarshaled)
	if err != nil {
		return nil, helpers.WrapError(helpers.ErrInvalidConfig, "unable to decode config file (\"%s\"): %s", cp.filepath, err)
	}
	if unmarshaled["apiVersion"] != CORRECT_CONFIG_API_VERSION {
		return nil, helpers.WrapError(helpers.ErrInvalidConfig, "config file (\"%s\"): wrong apiVersion, expected: %s", cp.filepath, CORRECT_CONFIG_API_VERSION)
	}
	if unmarshaled["kind"] != CORRECT_CONFIG_KIND {
		return nil, helpers.WrapError(helpers.ErrInvalidConfig, "config file (\"%s\"): wrong kind, expected: %s", cp.filepath, CORRECT_CONFIG_KIND)
	}
	json_marshaled, err := json.Marshal(unmarshaled)
	if err != nil {
		return nil, helpers.WrapError(helpers.ErrInvalidConfig, "unable to convert config file (\"%s\") to JSON: %s", cp.filepath, err)
	}
	return json_marshaled, nil
}

func (cp *defaultParser) checkConfigCorrectness(cfg *Config) error {
	scope, err := synthesizer.NormalizeTokenScope(cfg.TokenScope)
	if err != nil {
		return err
	}
	cfg.TokenScope = scope
	err = synthesizer.ValidateUIStyle(cfg.UIStyle)
	if err != nil {
		return err
	}
	if cfg.TokenLimit <= 0 {
		return helpers.WrapError(helpers.ErrInvalidConfig, "tokenLimit must be positive, got %d", cfg.TokenLimit)
	}
	if cfg.ModelMarker == "" {
		return helpers.WrapError(helpers.ErrInvalidConfig, "modelMarker may not be empty")
	}
	return nil
}
