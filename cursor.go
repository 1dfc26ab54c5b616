package ecscore

// rowCursor advances one row at a time through a single archetype. It is
// the innermost iteration primitive QueryIterator drives once it has
// settled on a matching archetype; see queryIteratingArchetype in
// query.go.
type rowCursor struct {
	archetype *Archetype
	row       int
}

func newRowCursor(arch *Archetype) *rowCursor {
	return &rowCursor{archetype: arch, row: -1}
}

// advance moves to the next row, returning false once the archetype is
// exhausted. A row cursor is invalidated by any structural mutation of
// its archetype; callers must not hold one across a Spawn/Despawn/
// AddComponent/RemoveComponent call.
func (c *rowCursor) advance() bool {
	c.row++
	return c.row < c.archetype.Len()
}

// entity returns the EntityId at the cursor's current row.
func (c *rowCursor) entity() EntityId {
	return c.archetype.EntityAt(c.row)
}

// remaining reports how many rows (including the current one) are left
// to visit.
func (c *rowCursor) remaining() int {
	return c.archetype.Len() - c.row
}
