package model

// PropertyDescriptor describes one property exposed by a class at a given
// level. IsReadOnly/IsNullable/IsSequence mirror the NCP datatype metadata a
// controller needs to interpret Get/Set results without out-of-band
// knowledge.
type PropertyDescriptor struct {
	Id           ElementId `json:"id"`
	Name         string    `json:"name"`
	TypeName     string    `json:"typeName"`
	IsReadOnly   bool      `json:"isReadOnly"`
	IsNullable   bool      `json:"isNullable"`
	IsSequence   bool      `json:"isSequence"`
	IsDeprecated bool      `json:"isDeprecated"`
	Description  string    `json:"description,omitempty"`
}

// MethodDescriptor describes one invokable method.
type MethodDescriptor struct {
	Id           ElementId `json:"id"`
	Name         string    `json:"name"`
	ResultType   string    `json:"resultType"`
	IsDeprecated bool      `json:"isDeprecated"`
	Description  string    `json:"description,omitempty"`
}

// EventDescriptor describes one event a class can raise.
type EventDescriptor struct {
	Id            ElementId `json:"id"`
	Name          string    `json:"name"`
	EventDatatype string    `json:"eventDatatype"`
	IsDeprecated  bool      `json:"isDeprecated"`
	Description   string    `json:"description,omitempty"`
}

// ClassDescriptor bundles the reflective description of one class: its
// identity and its own (non-inherited) property/method/event descriptors.
// Parent is the class id of the class this one derives from, or nil for the
// root class; it drives include-inherited expansion.
type ClassDescriptor struct {
	Description string               `json:"description,omitempty"`
	ClassId     ClassId              `json:"classId"`
	Name        string               `json:"name"`
	FixedRole   string               `json:"fixedRole,omitempty"`
	Parent      ClassId              `json:"-"`
	Properties  []PropertyDescriptor `json:"properties"`
	Methods     []MethodDescriptor   `json:"methods"`
	Events      []EventDescriptor    `json:"events"`
}

// Clone returns a deep-enough copy safe to append to without aliasing the
// receiver's slices.
func (c ClassDescriptor) Clone() ClassDescriptor {
	out := c
	out.Properties = append([]PropertyDescriptor(nil), c.Properties...)
	out.Methods = append([]MethodDescriptor(nil), c.Methods...)
	out.Events = append([]EventDescriptor(nil), c.Events...)
	return out
}

// DatatypeKind discriminates the four DatatypeDescriptor variants.
type DatatypeKind int

const (
	DatatypePrimitive DatatypeKind = iota
	DatatypeTypedef
	DatatypeEnum
	DatatypeStruct
)

func (k DatatypeKind) String() string {
	switch k {
	case DatatypePrimitive:
		return "Primitive"
	case DatatypeTypedef:
		return "Typedef"
	case DatatypeEnum:
		return "Enum"
	case DatatypeStruct:
		return "Struct"
	default:
		return "Unknown"
	}
}

// EnumItem is one named, valued member of an Enum datatype.
type EnumItem struct {
	Name  string `json:"name"`
	Value int64  `json:"value"`
}

// FieldDescriptor is one field of a Struct datatype.
type FieldDescriptor struct {
	Name       string `json:"name"`
	TypeName   string `json:"typeName"`
	IsNullable bool   `json:"isNullable"`
	IsSequence bool   `json:"isSequence"`
}

// DatatypeDescriptor is a tagged union over the four datatype variants:
// Primitive, Typedef, Enum, Struct. Only the fields relevant to Kind are
// populated.
type DatatypeDescriptor struct {
	Name        string       `json:"name"`
	Kind        DatatypeKind `json:"kind"`
	Description string       `json:"description,omitempty"`

	// Typedef
	ParentType string `json:"parentType,omitempty"`
	IsSequence bool   `json:"isSequence,omitempty"`

	// Enum
	Items []EnumItem `json:"items,omitempty"`

	// Struct
	Fields []FieldDescriptor `json:"fields,omitempty"`
}

// Clone returns an independent copy, safe to mutate or append to.
func (d DatatypeDescriptor) Clone() DatatypeDescriptor {
	out := d
	out.Items = append([]EnumItem(nil), d.Items...)
	out.Fields = append([]FieldDescriptor(nil), d.Fields...)
	return out
}
