package ir

import (
	"strings"

	"github.com/commschamp/dslgen/pkg/textpos"
)

// foldKey implements the "case-insensitive by first character only" key
// comparator spec.md §9 calls out as fragile-but-intentional: the first
// rune of the key is lower-cased, the remainder is left untouched, so
// "fooBar" and "FooBar" collide but "fooBAR" and "fooBar" do not.
func foldKey(name string) string {
	if name == "" {
		return name
	}

	r := []rune(name)
	r[0] = toLowerRune(r[0])

	return string(r)
}

func toLowerRune(r rune) rune {
	if r >= 'A' && r <= 'Z' {
		return r + ('a' - 'A')
	}

	return r
}

// Namespace is a node of the protocol's namespace tree. The anonymous root
// namespace has the empty Name. Fields/messages/interfaces/frames are
// keyed case-insensitively by first character only (see foldKey); child
// namespaces are keyed by exact name.
type Namespace struct {
	Name        string
	Description string
	Parent      *Namespace

	children   map[string]*Namespace
	childOrder []string

	fields     map[string]Field
	fieldOrder []string

	messages     map[string]*Message
	messageOrder []string

	interfaces     map[string]*Interface
	interfaceOrder []string

	frames     map[string]*Frame
	frameOrder []string

	ExtraAttrs    []ExtraAttr
	ExtraChildren []string
	Pos           textpos.Pos
}

// NewNamespace constructs an empty namespace with the given name and
// parent (nil for the root).
func NewNamespace(name string, parent *Namespace) *Namespace {
	return &Namespace{
		Name:       name,
		Parent:     parent,
		children:   map[string]*Namespace{},
		fields:     map[string]Field{},
		messages:   map[string]*Message{},
		interfaces: map[string]*Interface{},
		frames:     map[string]*Frame{},
	}
}

// Path returns the dotted path from the root to this namespace, e.g.
// "ns1.ns2". The root namespace's path is "".
func (n *Namespace) Path() string {
	if n.Parent == nil || n.Name == "" {
		return n.Name
	}

	parentPath := n.Parent.Path()
	if parentPath == "" {
		return n.Name
	}

	return parentPath + "." + n.Name
}

// Child returns the child namespace with the given exact name.
func (n *Namespace) Child(name string) (*Namespace, bool) {
	c, ok := n.children[name]
	return c, ok
}

// Children returns every child namespace in registration order.
func (n *Namespace) Children() []*Namespace {
	out := make([]*Namespace, len(n.childOrder))
	for i, name := range n.childOrder {
		out[i] = n.children[name]
	}

	return out
}

// EnsureChild returns the child namespace with the given name, creating it
// (and registering it) if absent.
func (n *Namespace) EnsureChild(name string) *Namespace {
	if c, ok := n.children[name]; ok {
		return c
	}

	c := NewNamespace(name, n)
	n.children[name] = c
	n.childOrder = append(n.childOrder, name)

	return c
}

// AddField registers a field under its (folded) first-character key.
// Returns false if the key is already occupied by a different field.
func (n *Namespace) AddField(f Field) bool {
	key := foldKey(f.Common().Name)
	if existing, ok := n.fields[key]; ok && existing != f {
		return false
	}

	if _, ok := n.fields[key]; !ok {
		n.fieldOrder = append(n.fieldOrder, key)
	}

	n.fields[key] = f

	return true
}

// Field looks up a field by name, folding the first character per
// foldKey.
func (n *Namespace) Field(name string) (Field, bool) {
	f, ok := n.fields[foldKey(name)]
	return f, ok
}

// Fields returns every field registered directly in this namespace, in
// registration order.
func (n *Namespace) Fields() []Field {
	out := make([]Field, len(n.fieldOrder))
	for i, key := range n.fieldOrder {
		out[i] = n.fields[key]
	}

	return out
}

// AddMessage registers a message under its folded key.
func (n *Namespace) AddMessage(m *Message) bool {
	key := foldKey(m.Name)
	if existing, ok := n.messages[key]; ok && existing != m {
		return false
	}

	if _, ok := n.messages[key]; !ok {
		n.messageOrder = append(n.messageOrder, key)
	}

	n.messages[key] = m

	return true
}

// Message looks up a message by name.
func (n *Namespace) Message(name string) (*Message, bool) {
	m, ok := n.messages[foldKey(name)]
	return m, ok
}

// Messages returns every message registered directly in this namespace.
func (n *Namespace) Messages() []*Message {
	out := make([]*Message, len(n.messageOrder))
	for i, key := range n.messageOrder {
		out[i] = n.messages[key]
	}

	return out
}

// AddInterface registers an interface under its folded key.
func (n *Namespace) AddInterface(i *Interface) bool {
	key := foldKey(i.Name)
	if existing, ok := n.interfaces[key]; ok && existing != i {
		return false
	}

	if _, ok := n.interfaces[key]; !ok {
		n.interfaceOrder = append(n.interfaceOrder, key)
	}

	n.interfaces[key] = i

	return true
}

// Interface looks up an interface by name.
func (n *Namespace) Interface(name string) (*Interface, bool) {
	i, ok := n.interfaces[foldKey(name)]
	return i, ok
}

// Interfaces returns every interface registered directly in this
// namespace.
func (n *Namespace) Interfaces() []*Interface {
	out := make([]*Interface, len(n.interfaceOrder))
	for i, key := range n.interfaceOrder {
		out[i] = n.interfaces[key]
	}

	return out
}

// AddFrame registers a frame under its folded key.
func (n *Namespace) AddFrame(fr *Frame) bool {
	key := foldKey(fr.Name)
	if existing, ok := n.frames[key]; ok && existing != fr {
		return false
	}

	if _, ok := n.frames[key]; !ok {
		n.frameOrder = append(n.frameOrder, key)
	}

	n.frames[key] = fr

	return true
}

// Frame looks up a frame by name.
func (n *Namespace) Frame(name string) (*Frame, bool) {
	fr, ok := n.frames[foldKey(name)]
	return fr, ok
}

// Frames returns every frame registered directly in this namespace.
func (n *Namespace) Frames() []*Frame {
	out := make([]*Frame, len(n.frameOrder))
	for i, key := range n.frameOrder {
		out[i] = n.frames[key]
	}

	return out
}

// Walk visits this namespace and every descendant, depth-first,
// pre-order — the traversal project-level emitters use to walk the
// namespace tree recursively (spec.md §4.8).
func (n *Namespace) Walk(visit func(*Namespace)) {
	visit(n)

	for _, c := range n.Children() {
		c.Walk(visit)
	}
}

// ResolveNamespacePath walks dotted segments of path as child namespace
// names for as long as they match, returning the deepest namespace reached
// and the unconsumed remainder (spec.md §4.4: "walks namespaces until a
// name fails to match a child namespace").
func (n *Namespace) ResolveNamespacePath(path string) (*Namespace, []string) {
	if path == "" {
		return n, nil
	}

	segments := strings.Split(path, ".")
	cur := n

	for i, seg := range segments {
		child, ok := cur.children[seg]
		if !ok {
			return cur, segments[i:]
		}

		cur = child
	}

	return cur, nil
}
