package record

// Meta tracks a record's state relative to the server.
type Meta struct {
	New      bool
	Dirty    bool
	Fetching bool
}

// SetNew returns a copy with the new flag set.
func (m Meta) SetNew() Meta {
	m.New = true
	return m
}

// ClearNew returns a copy with the new flag cleared.
func (m Meta) ClearNew() Meta {
	m.New = false
	return m
}

// SetDirty returns a copy with the dirty flag set.
func (m Meta) SetDirty() Meta {
	m.Dirty = true
	return m
}

// ClearDirty returns a copy with the dirty flag cleared.
func (m Meta) ClearDirty() Meta {
	m.Dirty = false
	return m
}

// SetFetching returns a copy with the fetching flag set.
func (m Meta) SetFetching() Meta {
	m.Fetching = true
	return m
}

// ClearFetching returns a copy with the fetching flag cleared.
func (m Meta) ClearFetching() Meta {
	m.Fetching = false
	return m
}

// Idle reports whether all flags are clear.
func (m Meta) Idle() bool {
	return !m.New && !m.Dirty && !m.Fetching
}

// Record is the constraint for domain objects managed by the
// synchronization reducer. All operations are copy-on-write: they return
// a new value of the concrete type and leave the receiver untouched.
type Record[R any] interface {
	// ID returns the server-assigned identity, empty until assigned.
	ID() string
	// Meta returns the record's synchronization flags.
	Meta() Meta
	// WithMeta returns a copy of the record carrying the given flags.
	WithMeta(Meta) R
	// UpdateField returns a copy with the named field replaced and the
	// dirty flag set. Unrecognized field names return the record unchanged.
	UpdateField(field, value string) R
}

// CreateFinisher is implemented by records that reset transient fields
// after the server accepts a create.
type CreateFinisher[R any] interface {
	AfterCreateSuccess() R
}

// UpdateFinisher is implemented by records that reset transient fields
// after the server accepts an update.
type UpdateFinisher[R any] interface {
	AfterUpdateSuccess() R
}
