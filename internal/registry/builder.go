package registry

import "github.com/cristian-recoseanu/nmos-control-serpenty-device/internal/model"

// BuildDefault constructs the registry for the six shipped classes and the
// full built-in datatype set. It is called once at bootstrap; the result is
// shared read-only thereafter.
func BuildDefault() *Registry {
	r := New()
	for _, c := range defaultClasses() {
		r.AddClass(c)
	}
	for _, d := range defaultDatatypes() {
		r.AddDatatype(d)
	}
	return r
}

func prop(level, index uint16, name, typeName string, readOnly, nullable, sequence bool) model.PropertyDescriptor {
	return model.PropertyDescriptor{
		Id:         model.NewElementId(level, index),
		Name:       name,
		TypeName:   typeName,
		IsReadOnly: readOnly,
		IsNullable: nullable,
		IsSequence: sequence,
	}
}

func meth(level, index uint16, name, resultType string) model.MethodDescriptor {
	return model.MethodDescriptor{Id: model.NewElementId(level, index), Name: name, ResultType: resultType}
}

func evt(level, index uint16, name, datatype string) model.EventDescriptor {
	return model.EventDescriptor{Id: model.NewElementId(level, index), Name: name, EventDatatype: datatype}
}

func defaultClasses() []model.ClassDescriptor {
	object := model.ClassDescriptor{
		Description: "Root of the class hierarchy",
		ClassId:     model.ClassId{1},
		Name:        "NcObject",
		Properties: []model.PropertyDescriptor{
			prop(1, 1, "classId", "NcClassId", true, false, true),
			prop(1, 2, "oid", "NcOid", true, false, false),
			prop(1, 3, "constantOid", "NcBoolean", true, false, false),
			prop(1, 4, "owner", "NcOid", true, true, false),
			prop(1, 5, "role", "NcString", true, false, false),
			prop(1, 6, "userLabel", "NcString", false, true, false),
			prop(1, 7, "touchpoints", "Touchpoint", true, true, true),
			prop(1, 8, "runtimePropertyConstraints", "PropertyConstraint", true, true, true),
		},
		Methods: []model.MethodDescriptor{
			meth(1, 1, "Get", "MethodResult"),
			meth(1, 2, "Set", "MethodResult"),
			meth(1, 3, "GetSequenceItem", "MethodResult"),
			meth(1, 4, "SetSequenceItem", "MethodResult"),
			meth(1, 5, "AddSequenceItem", "MethodResult"),
			meth(1, 6, "RemoveSequenceItem", "MethodResult"),
			meth(1, 7, "GetSequenceLength", "MethodResult"),
		},
		Events: []model.EventDescriptor{
			evt(1, 1, "PropertyChanged", "EventData"),
		},
	}

	worker := model.ClassDescriptor{
		Description: "A worker object performing a device function",
		ClassId:     model.ClassId{1, 1},
		Name:        "NcWorker",
		Parent:      model.ClassId{1},
		Properties: []model.PropertyDescriptor{
			prop(2, 1, "enabled", "NcBoolean", false, false, false),
		},
	}

	block := model.ClassDescriptor{
		Description: "A container of other Members",
		ClassId:     model.ClassId{1, 2},
		Name:        "NcBlock",
		Parent:      model.ClassId{1},
		Properties: []model.PropertyDescriptor{
			prop(2, 1, "enabled", "NcBoolean", true, false, false),
			prop(2, 2, "members", "BlockMemberDescriptor", true, false, true),
		},
		Methods: []model.MethodDescriptor{
			meth(2, 1, "GetMemberDescriptors", "MethodResult"),
			meth(2, 2, "FindMembersByPath", "MethodResult"),
			meth(2, 3, "FindMembersByRole", "MethodResult"),
			meth(2, 4, "FindMembersByClassId", "MethodResult"),
		},
	}

	manager := model.ClassDescriptor{
		Description: "Abstract grouping for manager objects",
		ClassId:     model.ClassId{1, 3},
		Name:        "NcManager",
		Parent:      model.ClassId{1},
	}

	deviceManager := model.ClassDescriptor{
		Description: "Identity and health of the device hosting this tree",
		ClassId:     model.ClassId{1, 3, 1},
		Name:        "NcDeviceManager",
		FixedRole:   "DeviceManager",
		Parent:      model.ClassId{1, 3},
		Properties: []model.PropertyDescriptor{
			prop(3, 1, "ncVersion", "NcString", true, false, false),
			prop(3, 2, "manufacturer", "Manufacturer", true, false, false),
			prop(3, 3, "product", "Product", true, false, false),
			prop(3, 4, "serialNumber", "NcString", true, false, false),
			prop(3, 5, "userInventoryCode", "NcString", false, true, false),
			prop(3, 6, "deviceName", "NcString", false, true, false),
			prop(3, 7, "deviceRole", "NcString", false, true, false),
			prop(3, 8, "operationalState", "OperationalState", true, false, false),
			prop(3, 9, "resetCause", "NcResetCause", true, false, false),
			prop(3, 10, "message", "NcString", true, true, false),
		},
	}

	classManager := model.ClassDescriptor{
		Description: "Reflective class and datatype registry",
		ClassId:     model.ClassId{1, 3, 2},
		Name:        "NcClassManager",
		FixedRole:   "ClassManager",
		Parent:      model.ClassId{1, 3},
		Properties: []model.PropertyDescriptor{
			prop(3, 1, "controlClasses", "ClassDescriptor", true, false, true),
			prop(3, 2, "datatypes", "DatatypeDescriptor", true, false, true),
		},
		Methods: []model.MethodDescriptor{
			meth(3, 1, "GetControlClass", "MethodResult"),
			meth(3, 2, "GetDatatype", "MethodResult"),
		},
	}

	return []model.ClassDescriptor{object, worker, block, manager, deviceManager, classManager}
}

func primitive(name string) model.DatatypeDescriptor {
	return model.DatatypeDescriptor{Name: name, Kind: model.DatatypePrimitive}
}

func typedef(name, parent string, sequence bool) model.DatatypeDescriptor {
	return model.DatatypeDescriptor{Name: name, Kind: model.DatatypeTypedef, ParentType: parent, IsSequence: sequence}
}

func enum(name string, items ...model.EnumItem) model.DatatypeDescriptor {
	return model.DatatypeDescriptor{Name: name, Kind: model.DatatypeEnum, Items: items}
}

func field(name, typeName string, nullable, sequence bool) model.FieldDescriptor {
	return model.FieldDescriptor{Name: name, TypeName: typeName, IsNullable: nullable, IsSequence: sequence}
}

func strct(name, parentType string, fields ...model.FieldDescriptor) model.DatatypeDescriptor {
	return model.DatatypeDescriptor{Name: name, Kind: model.DatatypeStruct, ParentType: parentType, Fields: fields}
}

func defaultDatatypes() []model.DatatypeDescriptor {
	out := []model.DatatypeDescriptor{
		primitive("NcBoolean"),
		primitive("NcInt16"), primitive("NcInt32"), primitive("NcInt64"),
		primitive("NcUint16"), primitive("NcUint32"), primitive("NcUint64"),
		primitive("NcFloat32"), primitive("NcFloat64"),
		primitive("NcString"),

		typedef("NcName", "NcString", false),
		typedef("NcRolePath", "NcString", true),
		typedef("NcRegex", "NcString", false),
		typedef("NcRole", "NcString", false),
		typedef("NcClassId", "NcInt32", true),
		typedef("NcId", "NcUint32", false),
		typedef("NcOid", "NcUint32", false),
		typedef("NcOrganizationId", "NcInt32", false),
		typedef("NcUri", "NcString", false),
		typedef("NcVersionCode", "NcString", false),
		typedef("NcUuid", "NcString", false),
		typedef("NcTimeInterval", "NcUint64", false),

		enum("NcMethodStatus",
			model.EnumItem{Name: "Ok", Value: 200},
			model.EnumItem{Name: "PropertyDeprecated", Value: 298},
			model.EnumItem{Name: "MethodDeprecated", Value: 299},
			model.EnumItem{Name: "BadCommandFormat", Value: 400},
			model.EnumItem{Name: "Unauthorized", Value: 401},
			model.EnumItem{Name: "BadOid", Value: 404},
			model.EnumItem{Name: "Readonly", Value: 405},
			model.EnumItem{Name: "InvalidRequest", Value: 406},
			model.EnumItem{Name: "Conflict", Value: 409},
			model.EnumItem{Name: "BufferOverflow", Value: 413},
			model.EnumItem{Name: "IndexOutOfBounds", Value: 414},
			model.EnumItem{Name: "ParameterError", Value: 417},
			model.EnumItem{Name: "Locked", Value: 423},
			model.EnumItem{Name: "DeviceError", Value: 500},
			model.EnumItem{Name: "MethodNotImplemented", Value: 501},
			model.EnumItem{Name: "PropertyNotImplemented", Value: 502},
			model.EnumItem{Name: "NotReady", Value: 503},
			model.EnumItem{Name: "Timeout", Value: 504},
		),
		enum("NcDatatypeType",
			model.EnumItem{Name: "Primitive", Value: 0},
			model.EnumItem{Name: "Typedef", Value: 1},
			model.EnumItem{Name: "Enum", Value: 2},
			model.EnumItem{Name: "Struct", Value: 3},
		),
		enum("NcDeviceGenericState",
			model.EnumItem{Name: "Unknown", Value: 0},
			model.EnumItem{Name: "Normal", Value: 1},
			model.EnumItem{Name: "Initializing", Value: 2},
			model.EnumItem{Name: "Updating", Value: 3},
			model.EnumItem{Name: "LicensingError", Value: 4},
			model.EnumItem{Name: "InternalError", Value: 5},
		),
		enum("NcResetCause",
			model.EnumItem{Name: "Unknown", Value: 0},
			model.EnumItem{Name: "PowerOn", Value: 1},
			model.EnumItem{Name: "InternalError", Value: 2},
			model.EnumItem{Name: "Upgrade", Value: 3},
			model.EnumItem{Name: "ControllerRequest", Value: 4},
			model.EnumItem{Name: "ManualReset", Value: 5},
		),
		enum("NcPropertyChangeType",
			model.EnumItem{Name: "ValueChanged", Value: 0},
			model.EnumItem{Name: "SequenceItemAdded", Value: 1},
			model.EnumItem{Name: "SequenceItemChanged", Value: 2},
			model.EnumItem{Name: "SequenceItemRemoved", Value: 3},
		),

		strct("ElementId", "",
			field("level", "NcUint16", false, false),
			field("index", "NcUint16", false, false),
		),
		strct("ClassDescriptor", "",
			field("description", "NcString", true, false),
			field("classId", "NcClassId", false, false),
			field("name", "NcString", false, false),
			field("fixedRole", "NcString", true, false),
			field("properties", "PropertyDescriptor", false, true),
			field("methods", "MethodDescriptor", false, true),
			field("events", "EventDescriptor", false, true),
		),
		strct("PropertyDescriptor", "",
			field("id", "ElementId", false, false),
			field("name", "NcString", false, false),
			field("typeName", "NcString", false, false),
			field("isReadOnly", "NcBoolean", false, false),
			field("isNullable", "NcBoolean", false, false),
			field("isSequence", "NcBoolean", false, false),
			field("isDeprecated", "NcBoolean", false, false),
		),
		strct("MethodDescriptor", "",
			field("id", "ElementId", false, false),
			field("name", "NcString", false, false),
			field("resultType", "NcString", false, false),
			field("isDeprecated", "NcBoolean", false, false),
		),
		strct("EventDescriptor", "",
			field("id", "ElementId", false, false),
			field("name", "NcString", false, false),
			field("eventDatatype", "NcString", false, false),
			field("isDeprecated", "NcBoolean", false, false),
		),
		strct("DatatypeDescriptor", "",
			field("name", "NcString", false, false),
			field("kind", "NcDatatypeType", false, false),
			field("parentType", "NcString", true, false),
			field("isSequence", "NcBoolean", false, false),
			field("items", "NcString", true, true),
			field("fields", "NcString", true, true),
		),
		strct("MethodResult", "",
			field("status", "NcMethodStatus", false, false),
			field("errorText", "NcString", true, false),
			field("value", "NcString", true, false),
		),
		strct("PropertyConstraint", "",
			field("propertyId", "ElementId", false, false),
			field("maximumLength", "NcUint32", true, false),
			field("minimumValue", "NcString", true, false),
			field("maximumValue", "NcString", true, false),
			field("stepValue", "NcString", true, false),
			field("enumValues", "NcString", true, true),
		),
		strct("Touchpoint", "",
			field("resourceType", "NcString", false, false),
			field("id", "NcString", false, false),
		),
		strct("EventData", "",
			field("propertyId", "ElementId", false, false),
			field("changeType", "NcPropertyChangeType", false, false),
			field("value", "NcString", true, false),
			field("sequenceItemIndex", "NcUint32", true, false),
		),
		strct("Manufacturer", "",
			field("name", "NcString", false, false),
			field("organizationId", "NcOrganizationId", true, false),
			field("website", "NcUri", true, false),
		),
		strct("Product", "",
			field("name", "NcString", false, false),
			field("key", "NcString", false, false),
			field("revisionLevel", "NcString", false, false),
			field("brand", "NcString", true, false),
			field("uuid", "NcUuid", true, false),
			field("description", "NcString", true, false),
		),
		strct("OperationalState", "",
			field("generalState", "NcDeviceGenericState", false, false),
			field("deviceSpecificDetails", "NcString", true, false),
		),
		strct("BlockMemberDescriptor", "",
			field("role", "NcRole", false, false),
			field("oid", "NcOid", false, false),
			field("constantOid", "NcBoolean", false, false),
			field("classId", "NcClassId", false, false),
			field("userLabel", "NcString", false, false),
			field("owner", "NcOid", false, false),
		),
	}
	return out
}
