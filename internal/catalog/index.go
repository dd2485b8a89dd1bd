package catalog

import "github.com/sha1n/mcp-docs-lookup/internal/domain"

// PackageDocs pairs a package selector with its documentation tree.
type PackageDocs struct {
	Package string
	Doc     *domain.Documentation
}

// Index is an insertion-ordered name to entity mapping.
//
// When two entities share a name the later one replaces the earlier one but
// keeps its position. An Index is not modified after Build/BuildAll return,
// so it is safe for concurrent readers.
type Index struct {
	positions map[string]int
	entities  []domain.Entity
}

// Build indexes the documentation of a single package.
func Build(pkg string, doc *domain.Documentation) *Index {
	return BuildAll([]PackageDocs{{Package: pkg, Doc: doc}})
}

// BuildAll indexes several packages in slice order.
func BuildAll(docs []PackageDocs) *Index {
	idx := &Index{positions: make(map[string]int)}
	for _, d := range docs {
		for _, e := range Extract(d.Doc) {
			e.Package = d.Package
			idx.put(e)
		}
	}
	return idx
}

func (idx *Index) put(e domain.Entity) {
	if pos, ok := idx.positions[e.Name]; ok {
		idx.entities[pos] = e
		return
	}
	idx.positions[e.Name] = len(idx.entities)
	idx.entities = append(idx.entities, e)
}

// Get returns the entity with the given name.
func (idx *Index) Get(name string) (domain.Entity, bool) {
	pos, ok := idx.positions[name]
	if !ok {
		return domain.Entity{}, false
	}
	return idx.entities[pos], true
}

// Names returns the entity names in insertion order. Unless includePrivate
// is set, entities whose own node is marked private are left out.
func (idx *Index) Names(includePrivate bool) []string {
	names := make([]string, 0, len(idx.entities))
	for _, e := range idx.entities {
		if !includePrivate && e.IsPrivate() {
			continue
		}
		names = append(names, e.Name)
	}
	return names
}

// Len returns the number of indexed entities.
func (idx *Index) Len() int {
	return len(idx.entities)
}
