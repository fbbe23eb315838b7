package builder

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/graphtrain/internal/confignode"
	"github.com/vk/graphtrain/internal/expr"
	"github.com/vk/graphtrain/internal/registry"
)

type head struct {
	confignode.Base
	labels    []string
	transform *expr.Function
}

type assembly struct {
	confignode.Base
	name  string
	heads []*head
	optim ClassRef
}

func newHead(args map[string]any) (any, error) {
	h := &head{}
	if v, ok := args["labels"].([]any); ok {
		for _, item := range v {
			h.labels = append(h.labels, item.(string))
		}
	}
	if v, ok := args["transform"].(*expr.Function); ok {
		h.transform = v
	}
	return h, nil
}

func newAssembly(args map[string]any) (any, error) {
	a := &assembly{}
	if v, ok := args["name"].(string); ok {
		a.name = v
	}
	if v, ok := args["heads"].([]any); ok {
		for _, item := range v {
			a.heads = append(a.heads, item.(*head))
		}
	}
	if v, ok := args["optimizer_class"].(ClassRef); ok {
		a.optim = v
	}
	return a, nil
}

func newTestRegistry(t *testing.T) *registry.Registry {
	t.Helper()
	r := registry.New()
	require.NoError(t, r.Register("Head", newHead))
	require.NoError(t, r.Register("Assembly", newAssembly))
	r.Freeze()
	return r
}

func assemblyNode() *confignode.Node {
	headNode := confignode.New("Head").
		Set("labels", confignode.StringsVal("position_x", "position_y")).
		Set("transform", confignode.FunctionVal("x -> x / 1000"))
	return confignode.New("Assembly").
		Set("name", confignode.StringVal("demo")).
		Set("heads", confignode.ListVal(confignode.NodeVal(headNode))).
		Set("optimizer_class", confignode.ClassRefVal("Head"))
}

func TestBuildConstructsDepthFirst(t *testing.T) {
	b := New(newTestRegistry(t))

	obj, err := b.Build(context.Background(), assemblyNode())
	require.NoError(t, err)

	a, ok := obj.(*assembly)
	require.True(t, ok)
	assert.Equal(t, "demo", a.name)
	require.Len(t, a.heads, 1)
	assert.Equal(t, []string{"position_x", "position_y"}, a.heads[0].labels)

	// The embedded callable was compiled during the build.
	require.NotNil(t, a.heads[0].transform)
	y, err := a.heads[0].transform.Call(500)
	require.NoError(t, err)
	assert.InDelta(t, 0.5, y, 1e-12)

	// The class reference resolved to a live constructor.
	assert.Equal(t, "Head", a.optim.Name)
	built, err := a.optim.Instantiate(nil)
	require.NoError(t, err)
	assert.IsType(t, &head{}, built)
}

func TestBuildRoundTrip(t *testing.T) {
	b := New(newTestRegistry(t))
	original := assemblyNode()

	obj, err := b.Build(context.Background(), original)
	require.NoError(t, err)

	described, err := Describe(obj)
	require.NoError(t, err)
	assert.True(t, original.Equal(described))

	// Serialize, reparse, rebuild: the re-described tree must still match.
	data, err := confignode.Marshal(described)
	require.NoError(t, err)
	reparsed, err := confignode.Parse(data)
	require.NoError(t, err)

	rebuilt, err := b.Build(context.Background(), reparsed)
	require.NoError(t, err)
	redescribed, err := Describe(rebuilt)
	require.NoError(t, err)
	assert.True(t, original.Equal(redescribed))
}

func TestBuildDetectsCycles(t *testing.T) {
	b := New(newTestRegistry(t))

	node := confignode.New("Assembly")
	node.Set("heads", confignode.ListVal(confignode.NodeVal(node)))

	_, err := b.Build(context.Background(), node)
	require.Error(t, err)

	var cycle *ConfigCycleError
	require.True(t, errors.As(err, &cycle))
	assert.Equal(t, "Assembly", cycle.ClassName)
	assert.Equal(t, "heads[0]", cycle.Path)
}

func TestBuildSharedSubtreeIsNotACycle(t *testing.T) {
	b := New(newTestRegistry(t))

	shared := confignode.New("Head")
	node := confignode.New("Assembly").
		Set("heads", confignode.ListVal(confignode.NodeVal(shared), confignode.NodeVal(shared)))

	_, err := b.Build(context.Background(), node)
	assert.NoError(t, err, "a diamond-shaped reference is acyclic and must build")
}

func TestBuildUnknownClass(t *testing.T) {
	b := New(newTestRegistry(t))

	node := confignode.New("Assembly").
		Set("heads", confignode.ListVal(confignode.NodeVal(confignode.New("Nonexistent"))))

	_, err := b.Build(context.Background(), node)
	require.Error(t, err)

	var unknown *registry.UnknownClassError
	require.True(t, errors.As(err, &unknown))
	assert.Equal(t, "Nonexistent", unknown.Name)
	assert.Contains(t, err.Error(), "heads[0]")
}

func TestBuildCallableCompilationErrorNamesPath(t *testing.T) {
	b := New(newTestRegistry(t))

	headNode := confignode.New("Head").
		Set("transform", confignode.FunctionVal("x -> x +"))
	node := confignode.New("Assembly").
		Set("tasks", confignode.ListVal(confignode.NodeVal(headNode)))

	_, err := b.Build(context.Background(), node)
	require.Error(t, err)

	var compileErr *CallableCompilationError
	require.True(t, errors.As(err, &compileErr))
	assert.Equal(t, "tasks[0].transform", compileErr.Path)
}

func TestBuildUnresolvableClassRefIsCompilationError(t *testing.T) {
	b := New(newTestRegistry(t))

	node := confignode.New("Assembly").
		Set("optimizer_class", confignode.ClassRefVal("NoSuchOptimizer"))

	_, err := b.Build(context.Background(), node)
	require.Error(t, err)

	var compileErr *CallableCompilationError
	require.True(t, errors.As(err, &compileErr))
	assert.Equal(t, "optimizer_class", compileErr.Path)
}

func TestDescribeRejectsForeignObjects(t *testing.T) {
	_, err := Describe(42)
	require.Error(t, err)

	_, err = Describe(&head{})
	require.Error(t, err)
}
