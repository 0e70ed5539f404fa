// Package config loads the service configuration that references the SDL
// sources of one datamodel. The file follows the prisma.yml shape: the
// datamodel entry names one file or a list of files, resolved relative to
// the configuration file.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/welevelacademy/prisma/sdl"
)

// Service is the parsed service configuration.
type Service struct {
	// Datamodel lists the SDL files of the service, in order.
	Datamodel FileList `yaml:"datamodel"`
	// Endpoint and Secret belong to the server collaborator; they are
	// carried so a loaded file round-trips, but the compiler ignores them.
	Endpoint string `yaml:"endpoint,omitempty"`
	Secret   string `yaml:"secret,omitempty"`

	dir string
}

// FileList accepts both a single scalar and a sequence in YAML:
//
//	datamodel: datamodel.prisma
//	datamodel:
//	  - types.prisma
//	  - enums.prisma
type FileList []string

// UnmarshalYAML implements the yaml.Unmarshaler interface.
func (f *FileList) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case yaml.ScalarNode:
		var s string
		if err := value.Decode(&s); err != nil {
			return err
		}
		*f = FileList{s}
		return nil
	case yaml.SequenceNode:
		var s []string
		if err := value.Decode(&s); err != nil {
			return err
		}
		*f = FileList(s)
		return nil
	default:
		return fmt.Errorf("config: datamodel must be a file name or a list of file names")
	}
}

// Load reads and parses a service configuration file.
func Load(path string) (*Service, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}
	s, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", path, err)
	}
	s.dir = filepath.Dir(path)
	return s, nil
}

// Parse parses a service configuration from memory.
func Parse(data []byte) (*Service, error) {
	var s Service
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, err
	}
	if len(s.Datamodel) == 0 {
		return nil, fmt.Errorf("missing datamodel entry")
	}
	return &s, nil
}

// Sources reads the datamodel files and returns them as SDL sources in
// the configured order. Paths resolve relative to the configuration file.
func (s *Service) Sources() ([]sdl.Source, error) {
	sources := make([]sdl.Source, 0, len(s.Datamodel))
	for _, name := range s.Datamodel {
		path := name
		if s.dir != "" && !filepath.IsAbs(path) {
			path = filepath.Join(s.dir, name)
		}
		text, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("config: read datamodel %s: %w", name, err)
		}
		sources = append(sources, sdl.Source{Name: name, Text: string(text)})
	}
	return sources, nil
}
