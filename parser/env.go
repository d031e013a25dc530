package parser

import (
	"workbenchpatchi/helpers"

	"encoding/json"
	"strconv"
)

type envKind int

const (
	ENV_STRING envKind = iota
	ENV_BOOL
	ENV_INT
)

var env_keys = []struct {
	name string
	key  string
	kind envKind
}{
	{"FILE", "file", ENV_STRING},
	{"TOKEN_SCOPE", "tokenScope", ENV_STRING},
	{"UI_STYLE", "uiStyle", ENV_STRING},
	{"SKIP_BACKUP", "skipBackup", ENV_BOOL},
	{"DRY_RUN", "dryRun", ENV_BOOL},
	{"TOKEN_LIMIT", "tokenLimit", ENV_INT},
	{"MODEL_MARKER", "modelMarker", ENV_STRING},
}

// EnvOverrides collects the WORKBENCHPATCHI_* variables into a JSON merge
// patch. Unset and empty variables are left out.
func EnvOverrides(getenv func(string) string) ([]byte, error) {
	layer := make(map[string]interface{})
	for _, env_key := range env_keys {
		name := ENV_PREFIX + env_key.name
		value := getenv(name)
		if value == "" {
			continue
		}
		switch env_key.kind {
		case ENV_BOOL:
			parsed, err := strconv.ParseBool(value)
			if err != nil {
				return nil, helpers.WrapError(helpers.ErrInvalidConfig, "%s is not a boolean: %q", name, value)
			}
			layer[env_key.key] = parsed
		case ENV_INT:
			parsed, err := strconv.Atoi(value)
			if err != nil {
				return nil, helpers.WrapError(helpers.ErrInvalidConfig, "%s is not an integer: %q", name, value)
			}
			layer[env_key.key] = parsed
		default:
			layer[env_key.key] = value
		}
	}
	if len(layer) == 0 {
		return nil, nil
	}
	return json.Marshal(layer)
}
