package graph

import (
	"fmt"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/c360/domainequations/equation"
	"github.com/c360/domainequations/errors"
	"github.com/c360/domainequations/metric"
	"github.com/c360/domainequations/naming"
)

// PropertyGraph accumulates the named properties and module groupings
// discovered while evaluating domain equations. One graph spans one modeling
// session: its registry grows monotonically and is never pruned.
//
// Terms are pure values and safe to build and normalize concurrently, but
// the graph itself is a shared mutable registry: every registration and
// query is serialized behind a single mutex.
type PropertyGraph struct {
	id      string
	logger  *slog.Logger
	metrics *metric.Metrics

	mu       sync.Mutex
	leaves   map[string]equation.Leaf
	namings  map[string]naming.Naming
	builtins map[string]naming.TypeDescriptor
	refs     map[string]map[string]naming.TypeDescriptor
}

// Option configures a PropertyGraph.
type Option func(*PropertyGraph)

// WithLogger sets the logger used for registration events.
func WithLogger(logger *slog.Logger) Option {
	return func(g *PropertyGraph) {
		g.logger = logger
	}
}

// WithMetrics attaches evaluation metrics to the graph.
func WithMetrics(m *metric.Metrics) Option {
	return func(g *PropertyGraph) {
		g.metrics = m
	}
}

// New creates an empty property graph.
func New(opts ...Option) *PropertyGraph {
	g := &PropertyGraph{
		id:       uuid.NewString(),
		logger:   slog.Default(),
		leaves:   make(map[string]equation.Leaf),
		namings:  make(map[string]naming.Naming),
		builtins: make(map[string]naming.TypeDescriptor),
		refs:     make(map[string]map[string]naming.TypeDescriptor),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// ID returns the graph's session identifier.
func (g *PropertyGraph) ID() string {
	return g.id
}

// I returns the identity term. Convenience mirror of equation.Identity.
func (g *PropertyGraph) I() equation.Term {
	return equation.Identity()
}

// O returns the terminal term. Convenience mirror of equation.Terminal.
func (g *PropertyGraph) O() equation.Term {
	return equation.Terminal()
}

// C returns a plain leaf term. Convenience mirror of equation.NewLeaf.
func (g *PropertyGraph) C(name string) (equation.Term, error) {
	return equation.NewLeaf(name)
}

// Named returns a leaf term with explicit naming metadata.
func (g *PropertyGraph) Named(name string, opts ...equation.LeafOption) (equation.Term, error) {
	return equation.NewNamedLeaf(name, opts...)
}

// Relation returns a container leaf term for the given item name.
func (g *PropertyGraph) Relation(itemName string, opts ...equation.LeafOption) (equation.Term, error) {
	return equation.NewRelationLeaf(itemName, opts...)
}

// Builtin returns a primitive type leaf term.
func (g *PropertyGraph) Builtin(name string) (equation.Term, error) {
	return equation.NewBuiltinLeaf(name)
}

// stagedEntry is one leaf prepared for commit.
type stagedEntry struct {
	leaf       equation.Leaf
	naming     naming.Naming
	descriptor naming.TypeDescriptor
	builtin    bool
}

// Evaluate normalizes the term and registers every property it names: each
// leaf becomes a registry record and each (source, sink) link of the
// canonical form adds the sink's type to the source's property set.
//
// Registration is all-or-nothing: naming collisions are detected against a
// staged view before anything is committed, so a failed call leaves the
// graph unmodified. Re-evaluating an equivalent term is a no-op.
func (g *PropertyGraph) Evaluate(term equation.Term) error {
	start := time.Now()
	leaves, links := equation.Connections(term)
	if g.metrics != nil {
		g.metrics.RecordNormalizeDuration(time.Since(start))
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	staged := make(map[string]stagedEntry, len(leaves))
	for _, leaf := range leaves {
		if prior, ok := staged[leaf.Name]; ok && prior.leaf != leaf {
			return g.collision(leaf.Name, "conflicting leaves in one equation")
		}
		entry, err := g.stage(leaf)
		if err != nil {
			return err
		}
		staged[leaf.Name] = entry
	}

	registered := 0
	for name, entry := range staged {
		if _, known := g.leaves[name]; !known {
			registered++
		}
		g.leaves[name] = entry.leaf
		if entry.builtin {
			g.builtins[name] = entry.descriptor
			continue
		}
		g.namings[name] = entry.naming
	}

	for _, link := range links {
		set := g.refs[link.Source.Name]
		if set == nil {
			set = make(map[string]naming.TypeDescriptor)
			g.refs[link.Source.Name] = set
		}
		descriptor := staged[link.Sink.Name].descriptor
		set[descriptor.QualifiedName()] = descriptor
	}

	if g.metrics != nil {
		g.metrics.RecordTermEvaluated()
		g.metrics.RecordPropertiesRegistered(registered)
	}
	g.logger.Debug("evaluated equation",
		"graph_id", g.id,
		"leaves", len(leaves),
		"links", len(links),
		"new_properties", registered)

	return nil
}

// stage derives the naming for one leaf and checks it against the registry.
func (g *PropertyGraph) stage(leaf equation.Leaf) (stagedEntry, error) {
	if existing, ok := g.leaves[leaf.Name]; ok && existing != leaf {
		return stagedEntry{}, g.collision(leaf.Name, "already registered with different metadata")
	}

	if leaf.Kind == equation.LeafBuiltin {
		return stagedEntry{
			leaf:       leaf,
			descriptor: naming.TypeDescriptor{ClassName: leaf.Name},
			builtin:    true,
		}, nil
	}

	var opts []naming.Option
	if leaf.Plural != "" {
		opts = append(opts, naming.WithPlural(leaf.Plural))
	}
	if leaf.Module != "" {
		opts = append(opts, naming.WithModule(leaf.Module))
	}
	if leaf.Docstring != "" {
		opts = append(opts, naming.WithDocstring(leaf.Docstring))
	}

	var (
		n   naming.Naming
		err error
	)
	if leaf.Kind == equation.LeafRelation {
		n, err = naming.NewContainer(leaf.ItemName, opts...)
	} else {
		n, err = naming.New(leaf.Name, opts...)
	}
	if err != nil {
		return stagedEntry{}, err
	}

	return stagedEntry{leaf: leaf, naming: n, descriptor: n.Descriptor()}, nil
}

func (g *PropertyGraph) collision(name, detail string) error {
	if g.metrics != nil {
		g.metrics.RecordNamingCollision()
	}
	return errors.WrapInvalid(errors.ErrNamingCollision, "PropertyGraph", "Evaluate",
		fmt.Sprintf("leaf %q: %s", name, detail))
}

// Properties returns one record per registered property, sorted by type
// name. Builtin types never appear; query them with BuiltinTypes.
func (g *PropertyGraph) Properties() []PropertyNode {
	g.mu.Lock()
	defer g.mu.Unlock()

	nodes := make([]PropertyNode, 0, len(g.namings))
	for valueName := range g.namings {
		nodes = append(nodes, g.node(valueName))
	}
	sort.Slice(nodes, func(i, j int) bool {
		return nodes[i].Naming.TypeName() < nodes[j].Naming.TypeName()
	})
	return nodes
}

// Property returns the record for a fully qualified type name.
func (g *PropertyGraph) Property(typeName string) (PropertyNode, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()

	for valueName, n := range g.namings {
		if n.TypeName() == typeName {
			return g.node(valueName), true
		}
	}
	return PropertyNode{}, false
}

// node builds the registry record for one value name. Callers hold the lock.
func (g *PropertyGraph) node(valueName string) PropertyNode {
	n := g.namings[valueName]
	leaf := g.leaves[valueName]

	node := PropertyNode{Naming: n}
	if leaf.Kind == equation.LeafRelation {
		node.Container = true
		node.Item = &naming.TypeDescriptor{
			ClassName:  naming.TypeName(leaf.ItemName),
			ModuleName: leaf.ItemModule,
		}
	}

	refs := g.refs[valueName]
	if len(refs) == 0 {
		return node
	}
	node.Properties = make([]naming.TypeDescriptor, 0, len(refs))
	for _, td := range refs {
		node.Properties = append(node.Properties, td)
	}
	sort.Slice(node.Properties, func(i, j int) bool {
		return node.Properties[i].QualifiedName() < node.Properties[j].QualifiedName()
	})
	return node
}

// ValueName returns the declared value name of a registered type.
func (g *PropertyGraph) ValueName(typeName string) (string, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()

	for valueName, n := range g.namings {
		if n.TypeName() == typeName {
			return valueName, true
		}
	}
	return "", false
}

// Modules returns the module groupings sorted by module name. The implicit
// default module, when populated, has the empty name and sorts first.
func (g *PropertyGraph) Modules() []Module {
	g.mu.Lock()
	defer g.mu.Unlock()

	grouped := make(map[string][]naming.TypeDescriptor)
	for _, n := range g.namings {
		grouped[n.ModuleName] = append(grouped[n.ModuleName], n.Descriptor())
	}

	modules := make([]Module, 0, len(grouped))
	for name, types := range grouped {
		sort.Slice(types, func(i, j int) bool {
			return types[i].QualifiedName() < types[j].QualifiedName()
		})
		modules = append(modules, Module{Name: name, Types: types})
	}
	sort.Slice(modules, func(i, j int) bool {
		return modules[i].Name < modules[j].Name
	})
	return modules
}

// BuiltinTypes returns every referenced builtin type, sorted by type name.
func (g *PropertyGraph) BuiltinTypes() []naming.TypeDescriptor {
	g.mu.Lock()
	defer g.mu.Unlock()

	builtins := make([]naming.TypeDescriptor, 0, len(g.builtins))
	for _, td := range g.builtins {
		builtins = append(builtins, td)
	}
	sort.Slice(builtins, func(i, j int) bool {
		return builtins[i].ClassName < builtins[j].ClassName
	})
	return builtins
}

// IsBuiltin reports whether the qualified type name denotes a builtin type.
func (g *PropertyGraph) IsBuiltin(typeName string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	for _, td := range g.builtins {
		if td.QualifiedName() == typeName {
			return true
		}
	}
	return false
}

// AbstractClasses returns one InterfaceSpec per generated type, ordered by
// type name. Required members are the value names of the referenced
// properties; builtin references contribute no member since they carry no
// value naming. Containers require a single plural member for their items.
func (g *PropertyGraph) AbstractClasses() []InterfaceSpec {
	g.mu.Lock()
	defer g.mu.Unlock()

	valueByType := make(map[string]string, len(g.namings))
	for valueName, n := range g.namings {
		valueByType[n.TypeName()] = valueName
	}

	specs := make([]InterfaceSpec, 0, len(g.namings))
	for valueName := range g.namings {
		node := g.node(valueName)

		spec := InterfaceSpec{TypeName: node.Naming.TypeName()}
		if node.Container {
			spec.RequiredMembers = []string{naming.Pluralize(g.leaves[valueName].ItemName)}
		} else {
			for _, td := range node.Properties {
				if member, ok := valueByType[td.QualifiedName()]; ok {
					spec.RequiredMembers = append(spec.RequiredMembers, member)
				}
			}
		}
		specs = append(specs, spec)
	}

	sort.Slice(specs, func(i, j int) bool {
		return specs[i].TypeName < specs[j].TypeName
	})
	return specs
}
