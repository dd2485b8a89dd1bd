package catalog

import "github.com/sha1n/mcp-docs-lookup/internal/domain"

// Extract flattens a documentation tree into entities.
//
// Entities are emitted per collection (classes, interfaces, typedefs), per
// item, and per member kind in the order Name, Event, Method, Prop. The
// order is stable so equal-score search results tie-break the same way on
// every run. The returned entities have no Package set.
func Extract(doc *domain.Documentation) []domain.Entity {
	if doc == nil {
		return nil
	}

	var entities []domain.Entity
	for i := range doc.Classes {
		entities = appendClass(entities, domain.ObjectClass, &doc.Classes[i])
	}
	for i := range doc.Interfaces {
		entities = appendClass(entities, domain.ObjectInterface, &doc.Interfaces[i])
	}
	for i := range doc.Typedefs {
		entities = appendTypedef(entities, &doc.Typedefs[i])
	}
	return entities
}

func appendClass(entities []domain.Entity, objectType domain.ObjectType, c *domain.Class) []domain.Entity {
	entities = append(entities, newEntity(objectType, domain.MemberName, c.Name, "", c))
	for i := range c.Events {
		e := &c.Events[i]
		entities = append(entities, newEntity(objectType, domain.MemberEvent, c.Name, e.Name, e))
	}
	for i := range c.Methods {
		m := &c.Methods[i]
		entities = append(entities, newEntity(objectType, domain.MemberMethod, c.Name, m.Name, m))
	}
	for i := range c.Props {
		p := &c.Props[i]
		entities = append(entities, newEntity(objectType, domain.MemberProp, c.Name, p.Name, p))
	}
	return entities
}

func appendTypedef(entities []domain.Entity, t *domain.Typedef) []domain.Entity {
	entities = append(entities, newEntity(domain.ObjectTypedef, domain.MemberName, t.Name, "", t))
	for i := range t.Props {
		p := &t.Props[i]
		entities = append(entities, newEntity(domain.ObjectTypedef, domain.MemberProp, t.Name, p.Name, p))
	}
	return entities
}

func newEntity(objectType domain.ObjectType, memberType domain.MemberType, parent, member string, obj domain.Object) domain.Entity {
	return domain.Entity{
		Name:       MemberName(memberType, parent, member),
		ObjectType: objectType,
		MemberType: memberType,
		Object:     obj,
	}
}
