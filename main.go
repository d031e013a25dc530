package main

import (
	"workbenchpatchi/checkfilter"
	"workbenchpatchi/helpers"
	"workbenchpatchi/parser"
	"workbenchpatchi/patcher"
	"workbenchpatchi/source"
	"workbenchpatchi/synthesizer"

	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"os"
	"path"
	"regexp"
	"strings"

	humanize "github.com/dustin/go-humanize"
	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
)

const (
	REGEXP_CONFIG_YAML_FILE = `^(?i)workbenchpatchi\.ya?ml$`
)

// command line flag name -> config key; short and long names share a variable
var flag_config_keys = map[string]string{
	"f": "file", "file": "file",
	"t": "tokenScope", "token-mode": "tokenScope",
	"u": "uiStyle", "ui-style": "uiStyle",
	"s": "skipBackup", "skip-backup": "skipBackup",
	"n": "dryRun", "dry-run": "dryRun",
}

func findConfigYamlFolderSubitem(subitems []os.DirEntry) (string, error) {
	re := regexp.MustCompile(REGEXP_CONFIG_YAML_FILE)
	for _, subitem := range subitems {
		if !subitem.IsDir() && re.MatchString(subitem.Name()) {
			return subitem.Name(), nil
		}
	}
	return "", helpers.GenError("No file matching the expression \"%s\" found", REGEXP_CONFIG_YAML_FILE)
}

// getConfigYamlFilePath looks for an optional config file in the working directory.
func getConfigYamlFilePath() (string, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return "", helpers.GenError("Unable to get current working directory: %s", err)
	}
	cwd_subitems, err := os.ReadDir(cwd)
	if err != nil {
		return "", helpers.GenError("Unable to get subitems of current working directory: %s", err)
	}
	config_yaml_file_name, err := findConfigYamlFolderSubitem(cwd_subitems)
	if err != nil {
		return "", err
	}
	return path.Join(cwd, config_yaml_file_name), nil
}

// cliOverrides turns the flags given explicitly on the command line into a
// JSON merge patch, so unset flags do not shadow the file or environment.
func cliOverrides(flag_set *flag.FlagSet) ([]byte, error) {
	layer := make(map[string]interface{})
	flag_set.Visit(func(f *flag.Flag) {
		key, found := flag_config_keys[f.Name]
		if !found {
			return
		}
		if getter, ok := f.Value.(flag.Getter); ok {
			layer[key] = getter.Get()
		}
	})
	if len(layer) == 0 {
		return nil, nil
	}
	return json.Marshal(layer)
}

// patchFile backs up, reads, patches and writes the bundle behind connector.
// Only I/O problems are returned as errors; transforms that did not apply
// end up as warnings in the summary.
func patchFile(connector source.SourceConnector, transforms []patcher.Transform, skip_backup bool) (checkfilter.Summary, error) {
	if !skip_backup {
		backup_path, err := connector.Backup()
		if err != nil {
			return checkfilter.Summary{}, err
		}
		if backup_path != "" {
			log.Infof("Backup created at: %s", backup_path)
		}
	}

	original, err := connector.GetSourceText()
	if err != nil {
		return checkfilter.Summary{}, err
	}
	log.Infof("Applying modifications to %s (%s)...", connector.Path(), humanize.Bytes(uint64(len(original))))
	patched, results := patcher.NewPatcher(patcher.SEQUENTIAL_PATCHER_TYPE).Apply(original, transforms)
	for _, result := range results {
		if result.Applied {
			log.Infof("%s: %s modified successfully", result.Name, result.Construct)
			continue
		}
		log.Warnf("%s: %s", result.Name, result.Reason)
		for _, hint := range result.Hints {
			log.Warnf("%s: found potential match on %s", result.Name, hint)
		}
	}

	summary, err := checkfilter.NewCheckFilter(checkfilter.DEFAULT_CHECK_FILTER).Finalize(connector.Path(), original, patched, results)
	if err != nil {
		return checkfilter.Summary{}, err
	}
	err = connector.WriteTargetText(patched)
	if err != nil {
		return checkfilter.Summary{}, err
	}
	return summary, nil
}

func describeModifications(cfg parser.Config) []string {
	token_scope := "Claude 3.7 models only"
	if cfg.TokenScope == synthesizer.TOKEN_SCOPE_ALL_MODELS {
		token_scope = "ALL models"
	}
	return []string{
		fmt.Sprintf("Token limit set to %s for %s", humanize.Comma(int64(cfg.TokenLimit)), token_scope),
		fmt.Sprintf("Thinking level set to %s for all conversations", strings.ToUpper(synthesizer.THINKING_LEVEL_HIGH)),
		fmt.Sprintf("UI styling set to %s mode", strings.ToUpper(cfg.UIStyle)),
	}
}

func main() {
	_ = godotenv.Load()

	var file_path, token_mode, ui_style, config_file string
	var skip_backup, dry_run bool
	flag.StringVar(&file_path, "f", "", "Shorthand for -file")
	flag.StringVar(&file_path, "file", "", "Path to the workbench.desktop.main.js file (auto-detected when omitted)")
	flag.StringVar(&token_mode, "t", "", "Shorthand for -token-mode")
	flag.StringVar(&token_mode, "token-mode", "", "Token limit mode: claude37_only or all_models")
	flag.StringVar(&ui_style, "u", "", "Shorthand for -ui-style")
	flag.StringVar(&ui_style, "ui-style", "", "UI styling mode: gradient, red or animated")
	flag.BoolVar(&skip_backup, "s", false, "Shorthand for -skip-backup")
	flag.BoolVar(&skip_backup, "skip-backup", false, "Skip creating a backup file")
	flag.BoolVar(&dry_run, "n", false, "Shorthand for -dry-run")
	flag.BoolVar(&dry_run, "dry-run", false, "Patch in memory only, do not write anything")
	flag.StringVar(&config_file, "c", "", "Shorthand for -config")
	flag.StringVar(&config_file, "config", "", "Path to a workbenchpatchi.yaml file (default: looked up in the working directory)")
	report := flag.Bool("r", false, "Print a YAML report of every transformation")
	debug_mode := flag.Bool("d", false, "Set this flag to activate debug messages (useful for checking located fragments)")
	flag.Parse()
	if *debug_mode {
		log.SetLevel(log.DebugLevel)
	}

	if config_file == "" {
		found_config_file, err := getConfigYamlFilePath()
		if err != nil {
			log.Debugln("No config file used:", err)
		} else {
			config_file = found_config_file
		}
	}
	env_layer, err := parser.EnvOverrides(os.Getenv)
	if err != nil {
		log.Fatal(err)
	}
	cli_layer, err := cliOverrides(flag.CommandLine)
	if err != nil {
		log.Fatal(err)
	}
	cfg, err := parser.NewConfigParser(parser.DEFAULT_CONFIG_FILE_PARSER, config_file, env_layer, cli_layer).GetConfig()
	if err != nil {
		log.Fatal(err)
	}

	if cfg.File == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			log.Fatal(helpers.GenError("Unable to get home directory: %s", err))
		}
		cfg.File, err = source.DiscoverWorkbenchFile(home, nil)
		if err != nil {
			log.Fatal(err, "; please provide the file path using the -file option")
		}
		log.Infof("Found Cursor workbench file at: %s", cfg.File)
	}

	connector_type := source.FILE_CONNECTOR
	if cfg.DryRun {
		connector_type = source.DRY_RUN_CONNECTOR
	}
	connector, err := source.NewSourceConnector(connector_type, cfg.File)
	if err != nil {
		if errors.Is(err, helpers.ErrFileNotFound) {
			log.Fatal("Error: ", err)
		}
		log.Fatal(err)
	}
	transforms, err := patcher.NewWorkbenchTransforms(cfg)
	if err != nil {
		log.Fatal(err)
	}

	summary, err := patchFile(connector, transforms, cfg.SkipBackup)
	if err != nil {
		log.Fatal("Error modifying file: ", err)
	}
	if *report {
		summary_yaml, err := summary.ToYAML()
		if err != nil {
			log.Fatal(err)
		}
		fmt.Println(summary_yaml)
	}
	for _, warning := range summary.Warnings {
		log.Warnln(warning)
	}
	log.Infof("Successfully modified: %s (%d of %d modifications applied)", cfg.File, summary.Applied, len(summary.Results))
	fmt.Println("You may need to restart Cursor for changes to take effect.")
	fmt.Println("Modifications requested:")
	for _, line := range describeModifications(cfg) {
		fmt.Printf("- %s\n", line)
	}
}
