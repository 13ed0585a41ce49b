package hubconfigs

import (
	_ "embed"
	"os"
	"path/filepath"

	"github.com/reusee/hubsim/cmds"
	"github.com/reusee/hubsim/configs"
	"github.com/reusee/hubsim/logs"
)

//go:embed schema.cue
var schema string

var configFileFlag = cmds.Collect[string]("-config", "load a config file, may repeat, earlier files win")

var filenames = []string{
	"hubsim.cue",
	".hubsim.cue",
}

// ConfigsLoader discovers config files, most specific first:
// explicit -config files, the working directory, the user config dir, then /etc.
func (Module) ConfigsLoader(
	logger logs.Logger,
) configs.Loader {

	paths := append([]string(nil), *configFileFlag...)
	defer func() {
		if len(paths) > 0 {
			logger.Info("config file",
				"paths", paths,
			)
		}
	}()

	var dirs []string
	if workingDir, err := os.Getwd(); err == nil {
		dirs = append(dirs, workingDir)
	}
	if configDir, err := os.UserConfigDir(); err == nil {
		dirs = append(dirs, configDir)
	}
	dirs = append(dirs, "/etc")

	for _, dir := range dirs {
		for _, filename := range filenames {
			path := filepath.Join(dir, filename)
			if _, err := os.Stat(path); err == nil {
				paths = append(paths, path)
			}
		}
	}

	return configs.NewLoader(paths, schema)
}
