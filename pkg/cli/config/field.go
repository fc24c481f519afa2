package config

import (
	"errors"
	"io/fs"
	"os"
	"regexp"

	"github.com/m-mizutani/goerr/v2"
	"github.com/pelletier/go-toml/v2"
	domainConfig "github.com/secmon-lab/gridcell/pkg/domain/model/config"
	"github.com/secmon-lab/gridcell/pkg/domain/types"
	"github.com/urfave/cli/v3"
)

var idPattern = regexp.MustCompile(`^[a-z0-9]+(-[a-z0-9]+)*$`)

// FieldSchemaFile is the TOML layout of the field schema
type FieldSchemaFile struct {
	Fields []Field `toml:"fields"`
}

// Field is a single field entry of the schema file
type Field struct {
	ID           string   `toml:"id"`
	Name         string   `toml:"name"`
	Type         string   `toml:"type"`
	Description  string   `toml:"description"`
	DisableColor bool     `toml:"disable_color"`
	Options      []Option `toml:"options"`
}

// Option is a select option entry of a field
type Option struct {
	ID    string `toml:"id"`
	Name  string `toml:"name"`
	Color string `toml:"color"`
}

// Validate checks the field and its options
func (f *Field) Validate(index int) error {
	if !idPattern.MatchString(f.ID) {
		return goerr.Wrap(ErrInvalidFieldID, "field ID must be lowercase alphanumeric with hyphens",
			goerr.V(FieldIDKey, f.ID), goerr.V(FieldIndexKey, index))
	}
	if f.Name == "" {
		return goerr.Wrap(ErrMissingName, "field name is required",
			goerr.V(FieldIDKey, f.ID), goerr.V(FieldIndexKey, index))
	}

	fieldType := types.FieldType(f.Type)
	if !fieldType.IsValid() {
		return goerr.Wrap(ErrInvalidFieldType, "unsupported field type",
			goerr.V(FieldIDKey, f.ID), goerr.V(FieldTypeKey, f.Type))
	}
	if !fieldType.IsSelectOption() {
		return nil
	}

	if len(f.Options) == 0 {
		return goerr.Wrap(ErrMissingOptions, "no options defined",
			goerr.V(FieldIDKey, f.ID), goerr.V(FieldTypeKey, f.Type))
	}

	seen := make(map[string]struct{}, len(f.Options))
	for i, opt := range f.Options {
		if !idPattern.MatchString(opt.ID) {
			return goerr.Wrap(ErrInvalidFieldID, "option ID must be lowercase alphanumeric with hyphens",
				goerr.V(FieldIDKey, f.ID), goerr.V(OptionIDKey, opt.ID), goerr.V(OptionIndexKey, i))
		}
		if opt.Name == "" {
			return goerr.Wrap(ErrMissingName, "option name is required",
				goerr.V(FieldIDKey, f.ID), goerr.V(OptionIDKey, opt.ID), goerr.V(OptionIndexKey, i))
		}
		if _, err := types.ParseSelectOptionColor(opt.Color); err != nil {
			return goerr.Wrap(ErrInvalidColor, "unknown option color",
				goerr.V(FieldIDKey, f.ID), goerr.V(OptionIDKey, opt.ID), goerr.V(ColorKey, opt.Color))
		}
		if _, ok := seen[opt.ID]; ok {
			return goerr.Wrap(ErrDuplicateOptionID, "option ID is used twice in a field",
				goerr.V(FieldIDKey, f.ID), goerr.V(OptionIDKey, opt.ID))
		}
		seen[opt.ID] = struct{}{}
	}

	return nil
}

// Validate checks every field and the uniqueness of field IDs
func (s *FieldSchemaFile) Validate() error {
	seen := make(map[string]struct{}, len(s.Fields))
	for i := range s.Fields {
		f := &s.Fields[i]
		if err := f.Validate(i); err != nil {
			return err
		}
		if _, ok := seen[f.ID]; ok {
			return goerr.Wrap(ErrDuplicateFieldID, "field ID is used twice", goerr.V(FieldIDKey, f.ID))
		}
		seen[f.ID] = struct{}{}
	}
	return nil
}

// ToDomain converts the validated file into the domain schema
func (s *FieldSchemaFile) ToDomain() *domainConfig.FieldSchema {
	fields := make([]domainConfig.FieldDefinition, len(s.Fields))
	for i, f := range s.Fields {
		fd := domainConfig.FieldDefinition{
			ID:           f.ID,
			Name:         f.Name,
			Type:         types.FieldType(f.Type),
			Description:  f.Description,
			DisableColor: f.DisableColor,
		}
		if fd.Type.IsSelectOption() {
			fd.Options = make([]domainConfig.SelectOption, len(f.Options))
			for j, opt := range f.Options {
				// Color is validated already
				c, _ := types.ParseSelectOptionColor(opt.Color)
				fd.Options[j] = domainConfig.SelectOption{
					ID:    opt.ID,
					Name:  opt.Name,
					Color: c,
				}
			}
		}
		fields[i] = fd
	}
	return &domainConfig.FieldSchema{Fields: fields}
}

// LoadFieldSchema reads, validates and converts a TOML field schema file
func LoadFieldSchema(path string) (*domainConfig.FieldSchema, error) {
	// #nosec G304 - path is expected to be provided by CLI argument
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, goerr.Wrap(ErrConfigNotFound, "field schema file does not exist",
				goerr.V(ConfigPathKey, path))
		}
		return nil, goerr.Wrap(err, "failed to read field schema file", goerr.V(ConfigPathKey, path))
	}

	var file FieldSchemaFile
	if err := toml.Unmarshal(data, &file); err != nil {
		return nil, goerr.Wrap(ErrInvalidConfig, "failed to parse TOML field schema",
			goerr.V(ConfigPathKey, path), goerr.V("cause", err.Error()))
	}

	if err := file.Validate(); err != nil {
		return nil, goerr.Wrap(err, "field schema validation failed", goerr.V(ConfigPathKey, path))
	}

	return file.ToDomain(), nil
}

// Schema holds the CLI flag pointing at the field schema file
type Schema struct {
	path string
}

// Flags returns CLI flags for the field schema
func (s *Schema) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "schema",
			Aliases:     []string{"c"},
			Usage:       "Path to the field schema TOML file",
			Value:       "./gridcell.toml",
			Sources:     cli.EnvVars("GRIDCELL_SCHEMA"),
			Destination: &s.path,
		},
	}
}

// Path returns the configured schema path
func (s *Schema) Path() string {
	return s.path
}

// Configure loads the field schema from the configured path
func (s *Schema) Configure() (*domainConfig.FieldSchema, error) {
	return LoadFieldSchema(s.path)
}
