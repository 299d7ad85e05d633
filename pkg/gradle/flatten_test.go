package gradle

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/gradletree/pkg/dag"
)

func TestFlattenFixture(t *testing.T) {
	root, err := ParseFile(filepath.Join("testdata", "dependencies.txt"), Options{})
	require.NoError(t, err)

	g := Flatten(root)
	require.NoError(t, g.Validate())

	conf, ok := g.Node("compileClasspath")
	require.True(t, ok)
	assert.Equal(t, dag.NodeKindConfiguration, conf.Kind)
	assert.Equal(t, 0, conf.Row)

	guava, ok := g.Node("com.google.guava:guava")
	require.True(t, ok)
	assert.Equal(t, 1, guava.Row)
	assert.Equal(t, "31.1-jre", guava.Meta["version"])
	assert.ElementsMatch(t, []string{"compileClasspath", "runtimeClasspath", "org.apache.httpcomponents:httpclient"}, g.Parents("com.google.guava:guava"))

	project, ok := g.Node("project :core")
	require.True(t, ok)
	assert.True(t, project.IsOpaque())
	assert.Equal(t, []string{"org.slf4j:slf4j-api"}, g.Children("project :core"))

	checker, ok := g.Node("org.checkerframework:checker-qual")
	require.True(t, ok)
	assert.Equal(t, 1, checker.Row, "shallowest appearance wins")
	assert.Equal(t, "3.12.0", checker.Meta["requested"])

	databind, ok := g.Node("com.fasterxml.jackson.core:jackson-databind")
	require.True(t, ok)
	assert.Equal(t, true, databind.Meta["constraint"])
}

func TestFlattenMergesVersions(t *testing.T) {
	root, err := ParseString("a - A.\n+--- g:lib:1.0\n\nb - B.\n+--- g:lib:2.0\n\nc - C.\n+--- g:lib:1.0\n")
	require.NoError(t, err)

	g := Flatten(root)
	lib, ok := g.Node("g:lib")
	require.True(t, ok)
	assert.Equal(t, "1.0", lib.Meta["version"])
	assert.Equal(t, []string{"2.0"}, lib.Meta["versions"])
	assert.Equal(t, 3, g.InDegree("g:lib"))
}
