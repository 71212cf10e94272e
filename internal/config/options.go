// Package config holds the conversion options and the ways to load them.
package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/sevigo/md2poui/internal/logger"
)

var (
	ErrConfigNotFound  = errors.New("config file not found")
	ErrConfigParsing   = errors.New("config parsing failed")
	ErrInvalidOptions  = errors.New("invalid options")
	moduleNameRegexp   = regexp.MustCompile(`^[a-zA-Z][a-zA-Z0-9-]*$`)
	windowsVolumeRegex = regexp.MustCompile(`^[a-zA-Z]:`)
)

const (
	moduleNamePlaceholder         = "{{moduleName}}"
	resourceFolderNamePlaceholder = "{{resourceFolderName}}"
)

// Import is an extra Angular module added to the generated module's imports.
type Import struct {
	Name string `yaml:"name" mapstructure:"name"`
	Path string `yaml:"path" mapstructure:"path"`
}

// Options controls a conversion run.
type Options struct {
	// Exclusions are files or directories left out of the conversion.
	Exclusions []string `yaml:"exclusions" mapstructure:"exclusions"`
	// HighlightClassName is added to every code block next to its language.
	HighlightClassName string `yaml:"highlightClassName" mapstructure:"highlightClassName"`
	// FlatDirs writes every component directly below the destination and keeps the menu flat.
	FlatDirs      bool   `yaml:"flatDirs" mapstructure:"flatDirs"`
	Recursive     bool   `yaml:"recursive" mapstructure:"recursive"`
	CreateHelpers bool   `yaml:"createHelpers" mapstructure:"createHelpers"`
	Home          bool   `yaml:"home" mapstructure:"home"`
	ModuleName    string `yaml:"moduleName" mapstructure:"moduleName"`
	// ParentRoutePath prefixes menu links. May reference {{moduleName}}.
	ParentRoutePath   string `yaml:"parentRoutePath" mapstructure:"parentRoutePath"`
	CopyExternalFiles bool   `yaml:"copyExternalFiles" mapstructure:"copyExternalFiles"`
	// ResourceFolderName is the folder below the destination that receives copied files.
	ResourceFolderName string `yaml:"resourceFolderName" mapstructure:"resourceFolderName"`
	// ResourcePathName is how views reference copied files. May reference
	// {{moduleName}} and {{resourceFolderName}}.
	ResourcePathName string   `yaml:"resourcePathName" mapstructure:"resourcePathName"`
	Imports          []Import `yaml:"imports" mapstructure:"imports"`
	// PortinariUI selects PO UI components; false generates THF components.
	PortinariUI      bool          `yaml:"portinariUi" mapstructure:"portinariUi"`
	RespectGitignore bool          `yaml:"respectGitignore" mapstructure:"respectGitignore"`
	DryRun           bool          `yaml:"dryRun" mapstructure:"dryRun"`
	Logging          logger.Config `yaml:"logging" mapstructure:"logging"`
}

// Default returns the options used when nothing is configured.
func Default() *Options {
	return &Options{
		Exclusions:         []string{},
		HighlightClassName: "highlight",
		FlatDirs:           true,
		Recursive:          true,
		CreateHelpers:      true,
		Home:               true,
		ModuleName:         "docs",
		ParentRoutePath:    moduleNamePlaceholder,
		CopyExternalFiles:  true,
		ResourceFolderName: "assets",
		ResourcePathName:   "app/" + moduleNamePlaceholder + "/" + resourceFolderNamePlaceholder,
		Imports:            []Import{},
		PortinariUI:        true,
		Logging: logger.Config{
			Level:  "info",
			Format: "text",
			Output: "stderr",
		},
	}
}

// Theme names the component library generated views target.
func (o *Options) Theme() string {
	if o.PortinariUI {
		return "po"
	}
	return "thf"
}

// Resolve expands placeholders in ParentRoutePath and ResourcePathName.
func (o *Options) Resolve() {
	r := strings.NewReplacer(
		moduleNamePlaceholder, o.ModuleName,
		resourceFolderNamePlaceholder, o.ResourceFolderName,
	)
	o.ParentRoutePath = r.Replace(o.ParentRoutePath)
	o.ResourcePathName = r.Replace(o.ResourcePathName)
}

// Validate reports every problem found in the options.
func (o *Options) Validate() error {
	var errs []error

	if !moduleNameRegexp.MatchString(o.ModuleName) {
		errs = append(errs, fmt.Errorf("module name %q must start with a letter and contain only letters, digits and dashes", o.ModuleName))
	}

	if o.CopyExternalFiles {
		if err := validateFolder(o.ResourceFolderName); err != nil {
			errs = append(errs, fmt.Errorf("resource folder name: %w", err))
		}
	}

	for i, imp := range o.Imports {
		if strings.TrimSpace(imp.Name) == "" || strings.TrimSpace(imp.Path) == "" {
			errs = append(errs, fmt.Errorf("import #%d must have a name and a path", i+1))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", ErrInvalidOptions, errors.Join(errs...))
	}
	return nil
}

// validateFolder accepts only non-empty paths that stay below the directory they are joined to.
func validateFolder(name string) error {
	if strings.TrimSpace(name) == "" {
		return errors.New("must not be empty")
	}
	normalized := strings.ReplaceAll(name, `\`, "/")
	if windowsVolumeRegex.MatchString(normalized) || !filepath.IsLocal(filepath.FromSlash(normalized)) {
		return fmt.Errorf("%q must be a relative path inside the destination", name)
	}
	return nil
}
