package generator

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/c360/domainequations/equation"
	"github.com/c360/domainequations/errors"
	"github.com/c360/domainequations/graph"
)

func mustTerm(t *testing.T) func(equation.Term, error) equation.Term {
	return func(term equation.Term, err error) equation.Term {
		t.Helper()
		require.NoError(t, err)
		return term
	}
}

// speedGraph registers speed -> (distance, duration).
func speedGraph(t *testing.T) *graph.PropertyGraph {
	t.Helper()
	g := graph.New()
	speed := mustTerm(t)(g.C("speed"))
	distance := mustTerm(t)(g.C("distance"))
	duration := mustTerm(t)(g.C("duration"))
	needs := mustTerm(t)(equation.Sum(distance, duration))
	require.NoError(t, g.Evaluate(mustTerm(t)(equation.Product(speed, needs))))
	return g
}

func TestRenderInterface(t *testing.T) {
	g := speedGraph(t)
	ig := NewInterfaceGenerator(g)

	specs := g.AbstractClasses()
	byType := make(map[string]graph.InterfaceSpec)
	for _, spec := range specs {
		byType[spec.TypeName] = spec
	}

	decl, err := ig.Render(byType["Speed"])
	require.NoError(t, err)

	assert.Contains(t, decl, "type ISpeed interface {")
	assert.Contains(t, decl, "Distance() IDistance")
	assert.Contains(t, decl, "Duration() IDuration")
	assert.Contains(t, decl, "// Distance returns the distance of the speed instance.")
}

func TestRenderInterfaceContainer(t *testing.T) {
	g := graph.New()
	container := mustTerm(t)(g.Relation("knife"))
	knife := mustTerm(t)(g.C("knife"))
	require.NoError(t, g.Evaluate(mustTerm(t)(equation.Product(container, knife, g.O()))))

	ig := NewInterfaceGenerator(g)
	specs := g.AbstractClasses()
	require.Len(t, specs, 2)
	require.Equal(t, "KnifeContainer", specs[1].TypeName)

	decl, err := ig.Render(specs[1])
	require.NoError(t, err)
	assert.Contains(t, decl, "type IKnifeContainer interface {")
	assert.Contains(t, decl, "Knives() []IKnife")
	assert.Contains(t, decl, "// Knives returns all contained knife of the knife container instance.")
}

func TestRenderAllOrdered(t *testing.T) {
	g := speedGraph(t)
	ig := NewInterfaceGenerator(g)

	out, err := ig.RenderAll()
	require.NoError(t, err)

	distanceAt := strings.Index(out, "type IDistance interface {")
	speedAt := strings.Index(out, "type ISpeed interface {")
	require.NotEqual(t, -1, distanceAt)
	require.NotEqual(t, -1, speedAt)
	assert.Less(t, distanceAt, speedAt)
}

func TestRenderUnknownType(t *testing.T) {
	ig := NewInterfaceGenerator(graph.New())
	_, err := ig.Render(graph.InterfaceSpec{TypeName: "Ghost"})
	require.Error(t, err)
	assert.ErrorIs(t, err, errors.ErrUnknownType)
}

func TestCheckImplementation(t *testing.T) {
	spec := graph.InterfaceSpec{
		TypeName:        "Fine",
		RequiredMembers: []string{"monthly_income", "speed", "speed_limit"},
	}

	t.Run("satisfied", func(t *testing.T) {
		err := CheckImplementation(spec, []string{"speed", "speed_limit", "monthly_income", "extra"})
		assert.NoError(t, err)
	})

	t.Run("missing members are all named", func(t *testing.T) {
		err := CheckImplementation(spec, []string{"speed"})
		require.Error(t, err)
		assert.ErrorIs(t, err, errors.ErrUnboundReference)
		assert.Contains(t, err.Error(), "monthly_income")
		assert.Contains(t, err.Error(), "speed_limit")
	})

	t.Run("no requirements", func(t *testing.T) {
		err := CheckImplementation(graph.InterfaceSpec{TypeName: "Distance"}, nil)
		assert.NoError(t, err)
	})
}

// measureGraph registers a two-module model with builtin value types:
// measure.Speed needs measure.Distance and measure.Duration, both backed by
// float, and the default-module Fine needs measure.Speed.
func measureGraph(t *testing.T) *graph.PropertyGraph {
	t.Helper()
	g := graph.New()

	speed := mustTerm(t)(g.Named("speed", equation.WithModule("measure")))
	distance := mustTerm(t)(g.Named("distance", equation.WithModule("measure")))
	duration := mustTerm(t)(g.Named("duration", equation.WithModule("measure")))
	float := mustTerm(t)(g.Builtin("float"))
	fine := mustTerm(t)(g.C("fine"))

	needs := mustTerm(t)(equation.Sum(distance, duration))
	require.NoError(t, g.Evaluate(mustTerm(t)(equation.Product(speed, needs, float))))
	require.NoError(t, g.Evaluate(mustTerm(t)(equation.Product(fine, speed))))
	return g
}

func TestRenderProtoModule(t *testing.T) {
	g := graph.New()

	speed := mustTerm(t)(g.Named("speed", equation.WithModule("measure")))
	distance := mustTerm(t)(g.Named("distance", equation.WithModule("measure")))
	duration := mustTerm(t)(g.Named("duration", equation.WithModule("measure")))
	float := mustTerm(t)(g.Builtin("float"))

	needs := mustTerm(t)(equation.Sum(distance, duration))
	require.NoError(t, g.Evaluate(mustTerm(t)(equation.Product(speed, needs, float))))

	pg := NewProtobufGenerator(g)
	modules := g.Modules()
	require.Len(t, modules, 1)

	content, err := pg.RenderModule(modules[0])
	require.NoError(t, err)
	assert.Equal(t, `syntax = "proto2";
package measure;
message Speed {
    required float distance = 1;
    required float duration = 2;
}`, content)
}

func TestRenderProtoCrossModule(t *testing.T) {
	g := measureGraph(t)
	pg := NewProtobufGenerator(g)

	files, err := pg.RenderAll()
	require.NoError(t, err)
	require.Len(t, files, 2)

	assert.Equal(t, `syntax = "proto2";
import "measure.proto";
message Fine {
    required measure.Speed speed = 1;
}`, files["model.proto"])

	assert.Contains(t, files["measure.proto"], "package measure;")
	assert.NotContains(t, files["measure.proto"], "message Distance",
		"value types render inline, never as messages")
}

func TestRenderProtoContainer(t *testing.T) {
	g := graph.New()

	container := mustTerm(t)(g.Relation("knife", equation.WithItemModule("accessories")))
	knife := mustTerm(t)(g.Named("knife", equation.WithModule("accessories")))
	require.NoError(t, g.Evaluate(mustTerm(t)(equation.Product(container, knife, g.O()))))

	pg := NewProtobufGenerator(g)
	files, err := pg.RenderAll()
	require.NoError(t, err)

	assert.Equal(t, `syntax = "proto2";
import "accessories.proto";
message KnifeContainer {
    repeated accessories.Knife knives = 1;
}`, files["model.proto"])

	assert.Contains(t, files["accessories.proto"], "message Knife {\n}")
}

func TestRenderRecords(t *testing.T) {
	g := speedGraph(t)

	out := RenderRecords(g)
	assert.Equal(t,
		`{"naming": {"type": "Distance", "value": "distance", "plural": "distances", "docstring": "distance"}}
{"naming": {"type": "Duration", "value": "duration", "plural": "durations", "docstring": "duration"}}
{"naming": {"type": "Speed", "value": "speed", "plural": "speeds", "docstring": "speed"}, "properties": ["Distance", "Duration"]}`,
		out)
}

func TestScalars(t *testing.T) {
	assert.Len(t, Scalars, 15)
	assert.True(t, IsScalar("float"))
	assert.True(t, IsScalar("sfixed64"))
	assert.False(t, IsScalar("speed"))
}
