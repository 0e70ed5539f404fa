package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseScalarDatamodel(t *testing.T) {
	s, err := Parse([]byte("datamodel: datamodel.prisma\n"))
	require.NoError(t, err)
	assert.Equal(t, FileList{"datamodel.prisma"}, s.Datamodel)
}

func TestParseListDatamodel(t *testing.T) {
	s, err := Parse([]byte(`
datamodel:
  - types.prisma
  - enums.prisma
endpoint: http://localhost:4466/blog
secret: hush
`))
	require.NoError(t, err)
	assert.Equal(t, FileList{"types.prisma", "enums.prisma"}, s.Datamodel)
	assert.Equal(t, "http://localhost:4466/blog", s.Endpoint)
	assert.Equal(t, "hush", s.Secret)
}

func TestParseMissingDatamodel(t *testing.T) {
	_, err := Parse([]byte("endpoint: http://localhost:4466\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing datamodel entry")
}

func TestParseWrongShape(t *testing.T) {
	_, err := Parse([]byte("datamodel: {file: x}\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "datamodel must be a file name or a list of file names")
}

func TestLoadAndSources(t *testing.T) {
	require := require.New(t)
	dir := t.TempDir()
	model := "type User { id: ID! @id }\n"
	require.NoError(os.WriteFile(filepath.Join(dir, "datamodel.prisma"), []byte(model), 0o644))
	require.NoError(os.WriteFile(filepath.Join(dir, "prisma.yml"), []byte("datamodel: datamodel.prisma\n"), 0o644))

	s, err := Load(filepath.Join(dir, "prisma.yml"))
	require.NoError(err)

	sources, err := s.Sources()
	require.NoError(err)
	require.Len(sources, 1)
	// Source names stay as configured; contents come from the file
	// resolved next to the configuration.
	assert.Equal(t, "datamodel.prisma", sources[0].Name)
	assert.Equal(t, model, sources[0].Text)
}

func TestSourcesMissingFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "prisma.yml"), []byte("datamodel: nope.prisma\n"), 0o644))

	s, err := Load(filepath.Join(dir, "prisma.yml"))
	require.NoError(t, err)
	_, err = s.Sources()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "nope.prisma")
}

func TestLoadMissingConfig(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "prisma.yml"))
	require.Error(t, err)
}
