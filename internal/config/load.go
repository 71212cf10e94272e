package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// Keys under which options are bound in viper. Environment variables use the MD2POUI
// prefix, e.g. MD2POUI_MODULENAME or MD2POUI_LOGGING_LEVEL.
const (
	KeyConfig             = "config"
	KeyExclusions         = "exclusions"
	KeyHighlightClassName = "highlightClassName"
	KeyFlatDirs           = "flatDirs"
	KeyRecursive          = "recursive"
	KeyCreateHelpers      = "createHelpers"
	KeyHome               = "home"
	KeyModuleName         = "moduleName"
	KeyParentRoutePath    = "parentRoutePath"
	KeyCopyExternalFiles  = "copyExternalFiles"
	KeyResourceFolderName = "resourceFolderName"
	KeyResourcePathName   = "resourcePathName"
	KeyPortinariUI        = "portinariUi"
	KeyRespectGitignore   = "respectGitignore"
	KeyDryRun             = "dryRun"
	KeyLogLevel           = "logging.level"
	KeyLogFormat          = "logging.format"

	envPrefix = "MD2POUI"
)

// LoadFile reads a yaml options file over the defaults.
func LoadFile(path string) (*Options, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, path)
		}
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	opts := Default()
	if err := yaml.Unmarshal(data, opts); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrConfigParsing, err)
	}
	return opts, nil
}

// FromViper builds options from v. Values explicitly set through bound flags or
// MD2POUI_* environment variables override the options file named by the "config"
// key, which in turn overrides the defaults.
func FromViper(v *viper.Viper) (*Options, error) {
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	opts := Default()
	if file := v.GetString(KeyConfig); file != "" {
		loaded, err := LoadFile(file)
		if err != nil {
			return nil, err
		}
		opts = loaded
	}

	setStrings(v, KeyExclusions, &opts.Exclusions)
	setString(v, KeyHighlightClassName, &opts.HighlightClassName)
	setBool(v, KeyFlatDirs, &opts.FlatDirs)
	setBool(v, KeyRecursive, &opts.Recursive)
	setBool(v, KeyCreateHelpers, &opts.CreateHelpers)
	setBool(v, KeyHome, &opts.Home)
	setString(v, KeyModuleName, &opts.ModuleName)
	setString(v, KeyParentRoutePath, &opts.ParentRoutePath)
	setBool(v, KeyCopyExternalFiles, &opts.CopyExternalFiles)
	setString(v, KeyResourceFolderName, &opts.ResourceFolderName)
	setString(v, KeyResourcePathName, &opts.ResourcePathName)
	setBool(v, KeyPortinariUI, &opts.PortinariUI)
	setBool(v, KeyRespectGitignore, &opts.RespectGitignore)
	setBool(v, KeyDryRun, &opts.DryRun)
	setString(v, KeyLogLevel, &opts.Logging.Level)
	setString(v, KeyLogFormat, &opts.Logging.Format)

	return opts, nil
}

func setString(v *viper.Viper, key string, dst *string) {
	if v.IsSet(key) {
		*dst = v.GetString(key)
	}
}

func setBool(v *viper.Viper, key string, dst *bool) {
	if v.IsSet(key) {
		*dst = v.GetBool(key)
	}
}

func setStrings(v *viper.Viper, key string, dst *[]string) {
	if v.IsSet(key) {
		*dst = v.GetStringSlice(key)
	}
}
