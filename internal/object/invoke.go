package object

import "github.com/cristian-recoseanu/nmos-control-serpenty-device/internal/model"

// invokeBaseMethod services the seven level-1 base methods against any
// Member. ok is false when id is not a level-1 method index, meaning the
// caller should report MethodNotImplemented itself.
func invokeBaseMethod(m Member, id model.ElementId, args map[string]interface{}) (model.MethodResult, bool) {
	if id.Level != 1 {
		return model.MethodResult{}, false
	}
	switch id.Index {
	case 1: // Get
		propId, ok := argElementId(args, "id")
		if !ok {
			return model.Err(model.StatusBadCommandFormat, "missing or malformed id argument"), true
		}
		return m.GetProperty(propId), true
	case 2: // Set
		propId, ok := argElementId(args, "id")
		if !ok {
			return model.Err(model.StatusBadCommandFormat, "missing or malformed id argument"), true
		}
		value := args["value"]
		return m.SetProperty(propId, value), true
	case 3: // GetSequenceItem
		propId, ok := argElementId(args, "id")
		index, hasIndex := argInt(args, "index")
		if !ok || !hasIndex {
			return model.Err(model.StatusBadCommandFormat, "missing id or index argument"), true
		}
		value, status := m.SequenceItem(propId, index)
		if status != model.StatusOk {
			return model.Err(status, "sequence item not available"), true
		}
		return model.Ok(value), true
	case 4, 5, 6: // SetSequenceItem, AddSequenceItem, RemoveSequenceItem
		propId, ok := argElementId(args, "id")
		if !ok {
			return model.Err(model.StatusBadCommandFormat, "missing id argument"), true
		}
		if _, status := m.SequenceLength(propId); status == model.StatusOk {
			return model.Err(model.StatusReadonly, "sequence property is read-only"), true
		}
		return model.Err(model.StatusPropertyNotImplemented, "no such sequence property"), true
	case 7: // GetSequenceLength
		propId, ok := argElementId(args, "id")
		if !ok {
			return model.Err(model.StatusBadCommandFormat, "missing id argument"), true
		}
		length, status := m.SequenceLength(propId)
		if status != model.StatusOk {
			return model.Err(status, "no such sequence property"), true
		}
		return model.Ok(length), true
	default:
		return model.MethodResult{}, false
	}
}

// ArgElementId extracts an {level,index} argument by key; exported for the
// session dispatcher, which must resolve (1,1)/(1,2) to get_property/
// set_property itself before falling through to invoke_method.
func ArgElementId(args map[string]interface{}, key string) (model.ElementId, bool) {
	return argElementId(args, key)
}

func argElementId(args map[string]interface{}, key string) (model.ElementId, bool) {
	raw, ok := args[key]
	if !ok {
		return model.ElementId{}, false
	}
	m, ok := raw.(map[string]interface{})
	if !ok {
		return model.ElementId{}, false
	}
	level, lok := argInt(m, "level")
	index, iok := argInt(m, "index")
	if !lok || !iok {
		return model.ElementId{}, false
	}
	return model.NewElementId(uint16(level), uint16(index)), true
}

func argInt(args map[string]interface{}, key string) (int, bool) {
	raw, ok := args[key]
	if !ok {
		return 0, false
	}
	switch v := raw.(type) {
	case float64:
		return int(v), true
	case int:
		return v, true
	default:
		return 0, false
	}
}

func argString(args map[string]interface{}, key string) (string, bool) {
	raw, ok := args[key]
	if !ok {
		return "", false
	}
	s, ok := raw.(string)
	return s, ok
}

func argBool(args map[string]interface{}, key string) (bool, bool) {
	raw, ok := args[key]
	if !ok {
		return false, false
	}
	b, ok := raw.(bool)
	return b, ok
}

func argStringSlice(args map[string]interface{}, key string) ([]string, bool) {
	raw, ok := args[key]
	if !ok {
		return nil, false
	}
	list, ok := raw.([]interface{})
	if !ok {
		return nil, false
	}
	out := make([]string, 0, len(list))
	for _, item := range list {
		s, ok := item.(string)
		if !ok {
			return nil, false
		}
		out = append(out, s)
	}
	return out, true
}

func argClassId(args map[string]interface{}, key string) (model.ClassId, bool) {
	raw, ok := args[key]
	if !ok {
		return nil, false
	}
	list, ok := raw.([]interface{})
	if !ok {
		return nil, false
	}
	out := make(model.ClassId, 0, len(list))
	for _, item := range list {
		switch v := item.(type) {
		case float64:
			out = append(out, int32(v))
		default:
			return nil, false
		}
	}
	return out, true
}

// Locate performs depth-first oid routing: if root's own oid matches, it is
// the target; otherwise search its children (recursing into blocks) in tree
// order.
func Locate(root Member, oid model.Oid) (Member, bool) {
	if root.Core().Oid() == oid {
		return root, true
	}
	for _, child := range root.Children() {
		if found, ok := Locate(child, oid); ok {
			return found, true
		}
	}
	return nil, false
}
