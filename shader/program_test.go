package shader

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestNewLinksProgram(t *testing.T) {
	gl := newFakeGL()
	logger, logs := testLogger()

	p, err := New(gl, positionVertex, orangeFragment, WithLogger(logger))
	require.NoError(t, err)

	assert.Equal(t, Linked, p.State())
	assert.NotZero(t, p.ID())
	assert.Zero(t, gl.liveShaders(), "stage objects must be released after linking")

	p.Use()
	gl.Draw()
	assert.Empty(t, gl.diagnostics)
	assert.Empty(t, logs.String())
}

func TestNewFragmentCompileError(t *testing.T) {
	gl := newFakeGL()
	logger, logs := testLogger()

	p, err := New(gl, positionVertex, brokenFragment, WithLogger(logger))
	assert.Nil(t, p)

	var compileErr *CompileError
	require.ErrorAs(t, err, &compileErr)
	assert.Equal(t, Fragment, compileErr.Stage)
	assert.Contains(t, compileErr.Log, "syntax error")
	assert.NotContains(t, compileErr.Log, "\x00")

	assert.Contains(t, logs.String(), "stage=FRAGMENT")
	assert.Zero(t, gl.liveShaders())
	assert.Empty(t, gl.programs, "no program object is created when a stage fails")
	assert.Empty(t, gl.diagnostics)
}

func TestNewReportsBothStages(t *testing.T) {
	gl := newFakeGL()
	logger, logs := testLogger()

	_, err := New(gl, "", brokenFragment, WithLogger(logger))
	require.Error(t, err)

	assert.Contains(t, err.Error(), "VERTEX shader failed to compile")
	assert.Contains(t, err.Error(), "FRAGMENT shader failed to compile")
	assert.Contains(t, logs.String(), "stage=VERTEX")
	assert.Contains(t, logs.String(), "stage=FRAGMENT")
	assert.Zero(t, gl.liveShaders())
}

func TestNewLinkError(t *testing.T) {
	gl := newFakeGL()
	gl.linkLog = "error: fragment shader input `ourColor' has no matching output\n"
	logger, logs := testLogger()

	p, err := New(gl, positionVertex, orangeFragment, WithLogger(logger))
	assert.Nil(t, p)

	var linkErr *LinkError
	require.ErrorAs(t, err, &linkErr)
	assert.Equal(t, "error: fragment shader input `ourColor' has no matching output", linkErr.Log)

	assert.Contains(t, logs.String(), "stage=PROGRAM")
	assert.Zero(t, gl.liveShaders())
	assert.Zero(t, gl.livePrograms(), "a program that failed to link is deleted")
}

func TestLoadMissingVertexFile(t *testing.T) {
	gl := newFakeGL()
	logger, logs := testLogger()
	dir := t.TempDir()
	fragment := filepath.Join(dir, "shader.fs")
	writeFile(t, fragment, orangeFragment)

	missing := filepath.Join(dir, "missing.vs")
	p, err := Load(gl, missing, fragment, WithLogger(logger))
	assert.Nil(t, p)

	var readErr *FileReadError
	require.ErrorAs(t, err, &readErr)
	assert.Equal(t, Vertex, readErr.Stage)
	assert.Equal(t, missing, readErr.Path)
	assert.True(t, errors.Is(err, fs.ErrNotExist))

	assert.Contains(t, logs.String(), "stage=VERTEX")
	assert.Empty(t, gl.shaders, "nothing is compiled when a source can't be read")
}

func TestLoadFromDisk(t *testing.T) {
	gl := newFakeGL()
	dir := t.TempDir()
	vertex := filepath.Join(dir, "shader.vs")
	fragment := filepath.Join(dir, "shader.fs")
	writeFile(t, vertex, positionVertex)
	writeFile(t, fragment, orangeFragment)

	p, err := Load(gl, vertex, fragment)
	require.NoError(t, err)

	v, f := p.Paths()
	assert.Equal(t, vertex, v)
	assert.Equal(t, fragment, f)
	assert.Equal(t, positionVertex, gl.shaders[1].source)
	assert.Equal(t, orangeFragment, gl.shaders[2].source)
}

func TestLoadFS(t *testing.T) {
	gl := newFakeGL()
	fsys := fstest.MapFS{
		"shaders/triangle.vert": {Data: []byte(positionVertex)},
		"shaders/orange.frag":   {Data: []byte(orangeFragment)},
	}

	p, err := LoadFS(gl, fsys, "shaders/triangle.vert", "shaders/orange.frag")
	require.NoError(t, err)
	assert.Equal(t, Linked, p.State())

	_, err = LoadFS(gl, fsys, "shaders/triangle.vert", "shaders/missing.frag")
	var readErr *FileReadError
	require.ErrorAs(t, err, &readErr)
	assert.Equal(t, Fragment, readErr.Stage)
}

func TestReload(t *testing.T) {
	gl := newFakeGL()
	dir := t.TempDir()
	vertex := filepath.Join(dir, "shader.vs")
	fragment := filepath.Join(dir, "shader.fs")
	writeFile(t, vertex, positionVertex)
	writeFile(t, fragment, orangeFragment)

	p, err := Load(gl, vertex, fragment)
	require.NoError(t, err)
	p.Use()
	old := p.ID()

	p.SetFloat("alpha", 0.5)
	writeFile(t, fragment, uniformFragment)
	require.NoError(t, p.Reload())

	assert.NotEqual(t, old, p.ID())
	assert.Equal(t, p.ID(), gl.CurrentProgram(), "an active program stays active across reloads")
	assert.True(t, gl.programs[old].deleted)

	p.SetFloat("alpha", 0.5)
	floats, _ := gl.uniform(p.ID(), "alpha")
	assert.Equal(t, []float32{0.5}, floats, "stale location cache entries must be dropped")
	assert.Empty(t, gl.diagnostics)
}

func TestReloadFailureKeepsProgram(t *testing.T) {
	gl := newFakeGL()
	logger, _ := testLogger()
	dir := t.TempDir()
	vertex := filepath.Join(dir, "shader.vs")
	fragment := filepath.Join(dir, "shader.fs")
	writeFile(t, vertex, positionVertex)
	writeFile(t, fragment, orangeFragment)

	p, err := Load(gl, vertex, fragment, WithLogger(logger))
	require.NoError(t, err)
	id := p.ID()

	writeFile(t, fragment, brokenFragment)
	var compileErr *CompileError
	require.ErrorAs(t, p.Reload(), &compileErr)

	assert.Equal(t, id, p.ID())
	assert.Equal(t, Linked, p.State())

	require.NoError(t, os.Remove(vertex))
	var readErr *FileReadError
	require.ErrorAs(t, p.Reload(), &readErr)
	assert.Equal(t, id, p.ID())
}

func TestReloadFromSource(t *testing.T) {
	gl := newFakeGL()
	p, err := New(gl, positionVertex, orangeFragment)
	require.NoError(t, err)
	old := p.ID()

	require.NoError(t, p.Reload())
	assert.NotEqual(t, old, p.ID())

	v, f := p.Paths()
	assert.Empty(t, v)
	assert.Empty(t, f)
}

func TestDelete(t *testing.T) {
	gl := newFakeGL()
	logger, logs := testLogger()
	p, err := New(gl, positionVertex, orangeFragment, WithLogger(logger))
	require.NoError(t, err)
	id := p.ID()

	p.Delete()
	p.Delete()
	assert.Equal(t, Deleted, p.State())
	assert.Zero(t, p.ID())
	assert.True(t, gl.programs[id].deleted)

	p.Use()
	assert.Zero(t, gl.CurrentProgram())
	assert.Contains(t, logs.String(), "not linked")

	p.SetFloat("alpha", 1)
	_, err = p.Bind()
	assert.ErrorIs(t, err, ErrDeleted)
	assert.ErrorIs(t, p.Reload(), ErrDeleted)
	assert.Empty(t, gl.diagnostics)
}

func TestStageString(t *testing.T) {
	assert.Equal(t, "VERTEX", Vertex.String())
	assert.Equal(t, "FRAGMENT", Fragment.String())
	assert.Equal(t, "UNKNOWN", Stage(7).String())
	assert.Equal(t, "linked", Linked.String())
}
