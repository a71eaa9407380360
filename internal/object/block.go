package object

import (
	"strings"
	"sync"

	"github.com/cristian-recoseanu/nmos-control-serpenty-device/internal/model"
)

// Block is a Member containing an ordered list of child Members, exposing
// membership introspection. isRoot marks the single block with no owner:
// the entry point for command routing and the one block whose own
// descriptor can appear in FindMembersByClassId results.
type Block struct {
	core   *ObjectCore
	isRoot bool

	mu       sync.RWMutex
	children []Member
}

// NewBlock builds an empty block. isRoot must be true for exactly one block
// per tree; the one with no owner.
func NewBlock(core *ObjectCore, isRoot bool) *Block {
	return &Block{core: core, isRoot: isRoot}
}

func (b *Block) Core() *ObjectCore { return b.core }

func (b *Block) Children() []Member {
	b.mu.RLock()
	defer b.mu.RUnlock()
	out := make([]Member, len(b.children))
	copy(out, b.children)
	return out
}

// AddMember appends child and emits a ValueChanged event on (2,2) carrying
// the full regenerated member descriptor list. It is the only structural
// tree mutation, invoked only during bootstrap.
func (b *Block) AddMember(child Member) {
	b.mu.Lock()
	b.children = append(b.children, child)
	descriptors := b.memberDescriptorsLocked()
	b.mu.Unlock()
	b.core.emitChange(model.NewElementId(2, 2), model.ChangeValueChanged, descriptors)
}

func (b *Block) memberDescriptorsLocked() []model.BlockMemberDescriptor {
	out := make([]model.BlockMemberDescriptor, 0, len(b.children))
	for _, child := range b.children {
		out = append(out, memberDescriptor(child))
	}
	return out
}

func memberDescriptor(m Member) model.BlockMemberDescriptor {
	c := m.Core()
	label := ""
	if ul := c.UserLabel(); ul != nil {
		label = *ul
	}
	owner, _ := c.Owner()
	return model.BlockMemberDescriptor{
		Role:        c.Role(),
		Oid:         c.Oid(),
		ConstantOid: c.ConstantOid(),
		ClassId:     c.ClassId(),
		UserLabel:   label,
		Owner:       owner,
	}
}

// GetMemberDescriptors implements method (2,1): own children, and (if
// recurse) every descendant appended block-by-block, depth-first, in
// insertion order.
func (b *Block) GetMemberDescriptors(recurse bool) []model.BlockMemberDescriptor {
	b.mu.RLock()
	children := append([]Member(nil), b.children...)
	b.mu.RUnlock()

	out := make([]model.BlockMemberDescriptor, 0, len(children))
	for _, child := range children {
		out = append(out, memberDescriptor(child))
	}
	if recurse {
		for _, child := range children {
			if cb, ok := child.(*Block); ok {
				out = append(out, cb.GetMemberDescriptors(true)...)
			}
		}
	}
	return out
}

// FindMembersByPath implements method (2,2): each path segment selects a
// child by role, descending through blocks; the final segment's matches are
// returned in tree order.
func (b *Block) FindMembersByPath(path []string) []Member {
	if len(path) == 0 {
		return nil
	}
	current := []Member{b}
	for _, segment := range path {
		var next []Member
		for _, cur := range current {
			curBlock, ok := cur.(*Block)
			if !ok {
				continue
			}
			for _, child := range curBlock.Children() {
				if child.Core().Role() == segment {
					next = append(next, child)
				}
			}
		}
		current = next
	}
	return current
}

// FindMembersByRole implements method (2,3).
func (b *Block) FindMembersByRole(role string, caseSensitive, matchWholeString, recurse bool) []Member {
	if strings.TrimSpace(role) == "" {
		return nil
	}
	var out []Member
	var walk func(blk *Block)
	walk = func(blk *Block) {
		for _, child := range blk.Children() {
			r := child.Core().Role()
			candidate, target := r, role
			if !caseSensitive {
				candidate, target = strings.ToLower(r), strings.ToLower(role)
			}
			var match bool
			if matchWholeString {
				match = candidate == target
			} else {
				match = strings.Contains(candidate, target)
			}
			if match {
				out = append(out, child)
			}
			if recurse {
				if cb, ok := child.(*Block); ok {
					walk(cb)
				}
			}
		}
	}
	walk(b)
	return out
}

// FindMembersByClassId implements method (2,4), including the root's own
// descriptor when the root's class id itself matches the query.
func (b *Block) FindMembersByClassId(classId model.ClassId, includeDerived, recurse bool) []Member {
	if len(classId) == 0 {
		return nil
	}
	matches := func(c model.ClassId) bool {
		if includeDerived {
			return c.HasPrefix(classId)
		}
		return c.Equal(classId)
	}
	var out []Member
	var walk func(blk *Block)
	walk = func(blk *Block) {
		for _, child := range blk.Children() {
			if matches(child.Core().ClassId()) {
				out = append(out, child)
			}
			if recurse {
				if cb, ok := child.(*Block); ok {
					walk(cb)
				}
			}
		}
	}
	walk(b)
	if b.isRoot && matches(b.core.ClassId()) {
		out = append(out, b)
	}
	return out
}

func (b *Block) GetProperty(id model.ElementId) model.MethodResult {
	if id.Level == 2 {
		switch id.Index {
		case 1:
			return model.Ok(true)
		case 2:
			return model.Ok(b.GetMemberDescriptors(false))
		default:
			return model.Err(model.StatusPropertyNotImplemented, "no such property")
		}
	}
	if r, ok := b.core.baseGetProperty(id); ok {
		return r
	}
	return model.Err(model.StatusPropertyNotImplemented, "no such property")
}

func (b *Block) SetProperty(id model.ElementId, value interface{}) model.MethodResult {
	if id.Level == 2 {
		if id.Index == 1 || id.Index == 2 {
			return model.Err(model.StatusReadonly, "block property is read-only")
		}
		return model.Err(model.StatusPropertyNotImplemented, "no such property")
	}
	if r, ok := b.core.baseSetProperty(id, value); ok {
		return r
	}
	return model.Err(model.StatusPropertyNotImplemented, "no such property")
}

func (b *Block) InvokeMethod(id model.ElementId, args map[string]interface{}) model.MethodResult {
	if id.Level == 2 {
		switch id.Index {
		case 1:
			recurse, _ := argBool(args, "recurse")
			return model.Ok(b.GetMemberDescriptors(recurse))
		case 2:
			path, ok := argStringSlice(args, "path")
			if !ok {
				return model.Ok(memberDescriptorsOf(nil))
			}
			return model.Ok(memberDescriptorsOf(b.FindMembersByPath(path)))
		case 3:
			role, _ := argString(args, "role")
			caseSensitive, _ := argBool(args, "caseSensitive")
			matchWholeString, _ := argBool(args, "matchWholeString")
			recurse, _ := argBool(args, "recurse")
			return model.Ok(memberDescriptorsOf(b.FindMembersByRole(role, caseSensitive, matchWholeString, recurse)))
		case 4:
			classId, ok := argClassId(args, "classId")
			if !ok {
				return model.Ok(memberDescriptorsOf(nil))
			}
			includeDerived, _ := argBool(args, "includeDerived")
			recurse, _ := argBool(args, "recurse")
			return model.Ok(memberDescriptorsOf(b.FindMembersByClassId(classId, includeDerived, recurse)))
		default:
			return model.Err(model.StatusMethodNotImplemented, "no such method")
		}
	}
	if r, ok := invokeBaseMethod(b, id, args); ok {
		return r
	}
	return model.Err(model.StatusMethodNotImplemented, "no such method")
}

func memberDescriptorsOf(members []Member) []model.BlockMemberDescriptor {
	out := make([]model.BlockMemberDescriptor, 0, len(members))
	for _, m := range members {
		out = append(out, memberDescriptor(m))
	}
	return out
}

func (b *Block) SequenceLength(id model.ElementId) (int, model.Status) {
	if id.Level == 2 && id.Index == 2 {
		return len(b.GetMemberDescriptors(false)), model.StatusOk
	}
	if n, status, ok := b.core.baseSequenceLength(id); ok {
		return n, status
	}
	return 0, model.StatusPropertyNotImplemented
}

func (b *Block) SequenceItem(id model.ElementId, index int) (interface{}, model.Status) {
	if id.Level == 2 && id.Index == 2 {
		items := b.GetMemberDescriptors(false)
		if index < 0 || index >= len(items) {
			return nil, model.StatusIndexOutOfBounds
		}
		return items[index], model.StatusOk
	}
	if v, status, ok := b.core.baseSequenceItem(id, index); ok {
		return v, status
	}
	return nil, model.StatusPropertyNotImplemented
}
