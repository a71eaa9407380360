package object

// ResolveRolePath walks root's role-addressed path, mirroring the
// NcRolePath datatype: a thin convenience over FindMembersByPath for
// callers that want a single member by well-known role path instead of
// threading oids by hand. It reports false unless exactly one member
// matches.
func ResolveRolePath(root Member, path []string) (Member, bool) {
	block, ok := root.(*Block)
	if !ok {
		return nil, false
	}
	found := block.FindMembersByPath(path)
	if len(found) != 1 {
		return nil, false
	}
	return found[0], true
}
