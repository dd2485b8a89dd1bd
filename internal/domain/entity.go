package domain

// ObjectType is the top-level kind an entity belongs to.
type ObjectType string

// ObjectType values.
const (
	ObjectClass     ObjectType = "Class"
	ObjectInterface ObjectType = "Interface"
	ObjectTypedef   ObjectType = "Typedef"
)

// MemberType tells whether an entity is a top-level object itself or one of its members.
type MemberType string

// MemberType values.
const (
	MemberName   MemberType = "Name"
	MemberEvent  MemberType = "Event"
	MemberMethod MemberType = "Method"
	MemberProp   MemberType = "Prop"
)

// Object is the documentation node behind an entity. It is implemented by
// *Class, *Typedef, *Method, *Event and *Property only.
type Object interface {
	// AccessLevel returns the access marker, empty when public.
	AccessLevel() string
	// Summary returns the node description.
	Summary() string
	// Source returns the source location, nil when unknown.
	Source() *Meta

	isObject()
}

// Entity is one flattened, uniquely named unit of the documentation index.
type Entity struct {
	// Name is the index key, e.g. "Client", "Client#ready",
	// "Client.login()" or "Client.user".
	Name       string     `json:"name"`
	ObjectType ObjectType `json:"objectType"`
	MemberType MemberType `json:"memberType"`
	Object     Object     `json:"-"`
	// Package is the selector the entity was loaded from, e.g. "discord.js/stable".
	Package string `json:"package"`
}

// IsPrivate reports whether the entity's own node is marked private.
func (e Entity) IsPrivate() bool {
	return e.Object != nil && e.Object.AccessLevel() == AccessPrivate
}

// AccessLevel, Summary and Source implement Object for *Class.
func (c *Class) AccessLevel() string { return c.Access }
func (c *Class) Summary() string     { return c.Description }
func (c *Class) Source() *Meta       { return c.Meta }
func (*Class) isObject()             {}

// AccessLevel, Summary and Source implement Object for *Typedef.
func (t *Typedef) AccessLevel() string { return t.Access }
func (t *Typedef) Summary() string     { return t.Description }
func (t *Typedef) Source() *Meta       { return t.Meta }
func (*Typedef) isObject()             {}

// AccessLevel, Summary and Source implement Object for *Method.
func (m *Method) AccessLevel() string { return m.Access }
func (m *Method) Summary() string     { return m.Description }
func (m *Method) Source() *Meta       { return m.Meta }
func (*Method) isObject()             {}

// AccessLevel, Summary and Source implement Object for *Event.
func (e *Event) AccessLevel() string { return e.Access }
func (e *Event) Summary() string     { return e.Description }
func (e *Event) Source() *Meta       { return e.Meta }
func (*Event) isObject()             {}

// AccessLevel, Summary and Source implement Object for *Property.
func (p *Property) AccessLevel() string { return p.Access }
func (p *Property) Summary() string     { return p.Description }
func (p *Property) Source() *Meta       { return p.Meta }
func (*Property) isObject()             {}
