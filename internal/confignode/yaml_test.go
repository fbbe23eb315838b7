package confignode

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const modelDoc = `
class_name: StandardModel
arguments:
  backbone:
    class_name: EdgeConvNet
    arguments:
      nb_inputs: 4
      dynamic: true
  tasks:
    - class_name: Reconstruction
      arguments:
        target_labels: [position_x, position_y]
        transform_target:
          function: x -> x / 1000
        loss_function:
          class_name: MSELoss
  optimizer_class:
    class_ref: Adam
  optimizer_kwargs:
    lr: 0.001
    eps: 0.001
`

func TestParseModelDocument(t *testing.T) {
	node, err := Parse([]byte(modelDoc))
	require.NoError(t, err)
	assert.Equal(t, "StandardModel", node.ClassName)
	assert.Equal(t, []string{"backbone", "tasks", "optimizer_class", "optimizer_kwargs"}, node.ArgumentNames())

	backbone, ok := node.Argument("backbone")
	require.True(t, ok)
	require.Equal(t, KindNode, backbone.Kind)
	assert.Equal(t, "EdgeConvNet", backbone.Node.ClassName)

	inputs, ok := backbone.Node.Argument("nb_inputs")
	require.True(t, ok)
	assert.Equal(t, KindNumber, inputs.Kind)
	assert.Equal(t, 4.0, inputs.Number)

	tasks, ok := node.Argument("tasks")
	require.True(t, ok)
	require.Equal(t, KindList, tasks.Kind)
	require.Len(t, tasks.List, 1)
	task := tasks.List[0]
	require.Equal(t, KindNode, task.Kind)

	transform, ok := task.Node.Argument("transform_target")
	require.True(t, ok)
	require.Equal(t, KindCallable, transform.Kind)
	assert.True(t, transform.Callable.IsFunction())
	assert.Equal(t, "x -> x / 1000", transform.Callable.Source)

	optim, ok := node.Argument("optimizer_class")
	require.True(t, ok)
	require.Equal(t, KindCallable, optim.Kind)
	assert.True(t, optim.Callable.IsClassRef())
	assert.Equal(t, "Adam", optim.Callable.ClassRef)
}

func TestMarshalRoundTrip(t *testing.T) {
	node, err := Parse([]byte(modelDoc))
	require.NoError(t, err)

	data, err := Marshal(node)
	require.NoError(t, err)

	reparsed, err := Parse(data)
	require.NoError(t, err)
	assert.True(t, node.Equal(reparsed), "round-tripped tree must be structurally equal")
}

func TestParseRejectsUnknownNodeKey(t *testing.T) {
	_, err := Parse([]byte("class_name: X\nextra: 1\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "extra")
}

func TestParseRejectsMissingClassName(t *testing.T) {
	_, err := Parse([]byte("arguments:\n  a: 1\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "class_name")
}

func TestSetReplacesInPlace(t *testing.T) {
	n := New("A").
		Set("first", NumberVal(1)).
		Set("second", NumberVal(2)).
		Set("first", NumberVal(3))

	assert.Equal(t, []string{"first", "second"}, n.ArgumentNames())
	v, ok := n.Argument("first")
	require.True(t, ok)
	assert.Equal(t, 3.0, v.Number)
}

func TestEqualFunctionSourceIsWhitespaceInsensitive(t *testing.T) {
	a := FunctionVal("x ->   x / 1000")
	b := FunctionVal("x -> x / 1000")
	assert.True(t, a.Equal(b))

	c := FunctionVal("x -> x / 500")
	assert.False(t, a.Equal(c))
}
