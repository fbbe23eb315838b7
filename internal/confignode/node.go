package confignode

// Node is the serialization unit of the configuration layer: a class name
// that must resolve in the class registry, plus an ordered mapping of
// argument names to values.
type Node struct {
	ClassName string
	args      []Entry
}

// Entry is a single named argument of a Node (or a key of a mapping Value).
// Order of entries is significant and survives serialization.
type Entry struct {
	Key   string
	Value Value
}

// New returns a Node for the given class name with no arguments.
func New(className string) *Node {
	return &Node{ClassName: className}
}

// Set appends an argument, replacing an existing one of the same name
// in place so argument order stays stable.
func (n *Node) Set(name string, v Value) *Node {
	for i := range n.args {
		if n.args[i].Key == name {
			n.args[i].Value = v
			return n
		}
	}
	n.args = append(n.args, Entry{Key: name, Value: v})
	return n
}

// Argument returns the value for the named argument and whether it exists.
func (n *Node) Argument(name string) (Value, bool) {
	for _, e := range n.args {
		if e.Key == name {
			return e.Value, true
		}
	}
	return Value{}, false
}

// Arguments returns the node's arguments in declaration order.
func (n *Node) Arguments() []Entry {
	return n.args
}

// ArgumentNames returns the argument names in declaration order.
func (n *Node) ArgumentNames() []string {
	names := make([]string, len(n.args))
	for i, e := range n.args {
		names[i] = e.Key
	}
	return names
}

// Equal reports structural equality: same class name and the same argument
// values, in the same order, at every position.
func (n *Node) Equal(other *Node) bool {
	if n == nil || other == nil {
		return n == other
	}
	if n.ClassName != other.ClassName || len(n.args) != len(other.args) {
		return false
	}
	for i := range n.args {
		if n.args[i].Key != other.args[i].Key {
			return false
		}
		if !n.args[i].Value.Equal(other.args[i].Value) {
			return false
		}
	}
	return true
}

// Carrier is implemented by built objects that retain the Node they were
// constructed from, enabling re-serialization of a live object graph.
// Components embed Base to satisfy it.
type Carrier interface {
	AttachConfig(n *Node)
	ConfigNode() *Node
}

// Base is an embeddable Carrier implementation.
type Base struct {
	node *Node
}

// AttachConfig stores the originating configuration node.
func (b *Base) AttachConfig(n *Node) { b.node = n }

// ConfigNode returns the originating configuration node, or nil if the
// object was constructed directly rather than through the builder.
func (b *Base) ConfigNode() *Node { return b.node }
