package builder

import (
	"context"
	"fmt"

	"github.com/vk/graphtrain/internal/confignode"
	"github.com/vk/graphtrain/internal/ctxlog"
	"github.com/vk/graphtrain/internal/expr"
	"github.com/vk/graphtrain/internal/registry"
)

// Builder turns configuration node trees into live objects using a frozen
// class registry.
type Builder struct {
	reg *registry.Registry
}

// New creates a Builder backed by the given registry.
func New(reg *registry.Registry) *Builder {
	return &Builder{reg: reg}
}

// ClassRef is the built form of a class-reference callable literal: the
// resolved constructor together with the name it resolved under, so a live
// object graph can be serialized back into configuration.
type ClassRef struct {
	Name string
	Ctor registry.Constructor
}

// Instantiate invokes the referenced constructor.
func (r ClassRef) Instantiate(args map[string]any) (any, error) {
	return r.Ctor(args)
}

// Build constructs the live object described by the node tree. Construction
// is post-order: every configuration-node-valued argument is built before
// its parent's constructor runs.
func (b *Builder) Build(ctx context.Context, node *confignode.Node) (any, error) {
	active := make(map[*confignode.Node]struct{})
	return b.buildNode(ctx, node, "", active)
}

// Describe returns the configuration node a built object originated from.
// Objects participate by embedding confignode.Base; the builder attaches the
// node after construction.
func Describe(obj any) (*confignode.Node, error) {
	carrier, ok := obj.(confignode.Carrier)
	if !ok {
		return nil, fmt.Errorf("object of type %T does not carry its configuration", obj)
	}
	node := carrier.ConfigNode()
	if node == nil {
		return nil, fmt.Errorf("object of type %T was not constructed through the builder", obj)
	}
	return node, nil
}

func (b *Builder) buildNode(ctx context.Context, node *confignode.Node, path string, active map[*confignode.Node]struct{}) (any, error) {
	if node == nil {
		return nil, fmt.Errorf("nil configuration node at %s", displayPath(path))
	}
	if _, seen := active[node]; seen {
		return nil, &ConfigCycleError{Path: displayPath(path), ClassName: node.ClassName}
	}
	active[node] = struct{}{}
	defer delete(active, node)

	ctor, err := b.reg.Resolve(node.ClassName)
	if err != nil {
		return nil, fmt.Errorf("at %s: %w", displayPath(path), err)
	}

	args := make(map[string]any, len(node.Arguments()))
	for _, e := range node.Arguments() {
		v, err := b.buildValue(ctx, e.Value, childPath(path, e.Key), active)
		if err != nil {
			return nil, err
		}
		args[e.Key] = v
	}

	obj, err := ctor(args)
	if err != nil {
		return nil, fmt.Errorf("failed to construct %q at %s: %w", node.ClassName, displayPath(path), err)
	}

	if carrier, ok := obj.(confignode.Carrier); ok {
		carrier.AttachConfig(node)
	}

	ctxlog.FromContext(ctx).Debug("Constructed object from configuration node.", "class", node.ClassName, "path", displayPath(path))
	return obj, nil
}

func (b *Builder) buildValue(ctx context.Context, v confignode.Value, path string, active map[*confignode.Node]struct{}) (any, error) {
	switch v.Kind {
	case confignode.KindNull:
		return nil, nil
	case confignode.KindBool:
		return v.Bool, nil
	case confignode.KindNumber:
		return v.Number, nil
	case confignode.KindString:
		return v.Str, nil
	case confignode.KindNode:
		return b.buildNode(ctx, v.Node, path, active)
	case confignode.KindCallable:
		return b.buildCallable(v.Callable, path)
	case confignode.KindList:
		list := make([]any, len(v.List))
		for i, item := range v.List {
			built, err := b.buildValue(ctx, item, indexPath(path, i), active)
			if err != nil {
				return nil, err
			}
			list[i] = built
		}
		return list, nil
	case confignode.KindMap:
		m := make(map[string]any, len(v.Entries))
		for _, e := range v.Entries {
			built, err := b.buildValue(ctx, e.Value, childPath(path, e.Key), active)
			if err != nil {
				return nil, err
			}
			m[e.Key] = built
		}
		return m, nil
	}
	return nil, fmt.Errorf("unsupported value kind %d at %s", v.Kind, displayPath(path))
}

func (b *Builder) buildCallable(c *confignode.CallableLiteral, path string) (any, error) {
	if c.IsFunction() {
		fn, err := expr.CompileFunction(c.Source)
		if err != nil {
			return nil, &CallableCompilationError{Path: displayPath(path), Err: err}
		}
		return fn, nil
	}

	ctor, err := b.reg.Resolve(c.ClassRef)
	if err != nil {
		return nil, &CallableCompilationError{Path: displayPath(path), Err: err}
	}
	return ClassRef{Name: c.ClassRef, Ctor: ctor}, nil
}

func childPath(path, key string) string {
	if path == "" {
		return key
	}
	return path + "." + key
}

func indexPath(path string, i int) string {
	return fmt.Sprintf("%s[%d]", path, i)
}

func displayPath(path string) string {
	if path == "" {
		return "(root)"
	}
	return path
}
