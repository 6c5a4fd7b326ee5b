package signet

import (
	"sort"

	"github.com/dimeproject/signet/catalog"
	"github.com/dimeproject/signet/fieldset"
	"github.com/dimeproject/signet/wire"
	"github.com/eluv-io/errors-go"
)

// builderEntry is one not-yet-serialized field awaiting assembly.
type builderEntry struct {
	id   uint8
	name []byte
	data []byte
}

// Builder assembles a new signet field by field before freezing it into an
// immutable Signet, the "empty → fields appended → signed → frozen"
// lifecycle of spec.md §3. Each SetField call checks the new field against
// the catalog (membership, name preamble, data length, uniqueness) and keeps
// fields in ascending id order; Freeze then runs Parse on the assembled
// bytes, so a built signet also passes exactly the same validation as a
// parsed one.
type Builder struct {
	kind    catalog.Kind
	table   *catalog.Table
	entries []builderEntry
	unique  *fieldset.Set[uint8]
	frozen  bool
}

// NewBuilder starts an empty builder for the given kind.
func NewBuilder(kind catalog.Kind) (*Builder, error) {
	table, err := catalog.ForKind(kind)
	if err != nil {
		return nil, errors.E("new builder", err)
	}
	return &Builder{kind: kind, table: table, unique: fieldset.New[uint8]()}, nil
}

// SetField appends an occurrence of a non-named field. Use SetNamedField
// for fields whose catalog entry carries a name preamble (currently only
// catalog.Undefined).
func (b *Builder) SetField(id uint8, data []byte) error {
	return b.setField(id, nil, data)
}

// SetNamedField appends an occurrence of a named field (catalog.Undefined).
func (b *Builder) SetNamedField(id uint8, name string, data []byte) error {
	return b.setField(id, []byte(name), data)
}

func (b *Builder) setField(id uint8, name, data []byte) error {
	if b.frozen {
		return errors.E("set field", errors.K.Invalid, "reason", "builder already frozen")
	}
	key, defined := b.table.Get(id)
	if !defined {
		if !b.table.Accepts(id) {
			return errors.E("set field", errors.K.Invalid, "reason", "field id undefined for kind", "id", id, "kind", b.kind)
		}
	}
	if key.BytesNameSize == 1 && name == nil {
		return errors.E("set field", errors.K.Invalid, "reason", "field requires a name", "id", id)
	}
	if key.BytesNameSize == 0 && len(name) > 0 {
		return errors.E("set field", errors.K.Invalid, "reason", "field does not accept a name", "id", id)
	}
	if len(name) > FieldNameMaxSize {
		return errors.E("set field", errors.K.Invalid, "reason", "name too long", "id", id)
	}
	if key.Variable() {
		if err := checkVariableLen(key.BytesDataSize, len(data)); err != nil {
			return errors.E("set field", err, "id", id)
		}
	} else if uint32(len(data)) != key.FixedDataSize {
		return errors.E("set field", errors.K.Invalid, "reason", "wrong data length for fixed-size field",
			"id", id, "want", key.FixedDataSize, "got", len(data))
	}
	if key.Unique {
		if !b.unique.Insert(id) {
			return errors.E("set field", errors.K.Invalid, "reason", "duplicate occurrence of unique field", "id", id)
		}
	}

	// Insert keeping entries in non-decreasing id order, appended after the
	// last existing occurrence of the same id.
	insertAt := sort.Search(len(b.entries), func(i int) bool { return b.entries[i].id > id })
	entry := builderEntry{id: id, name: name, data: data}
	b.entries = append(b.entries, builderEntry{})
	copy(b.entries[insertAt+1:], b.entries[insertAt:])
	b.entries[insertAt] = entry
	return nil
}

// RemoveField removes the occurrence-th (0-indexed) occurrence of id.
func (b *Builder) RemoveField(id uint8, occurrence int) error {
	if b.frozen {
		return errors.E("remove field", errors.K.Invalid, "reason", "builder already frozen")
	}
	count := 0
	for i, e := range b.entries {
		if e.id != id {
			continue
		}
		if count == occurrence {
			b.entries = append(b.entries[:i], b.entries[i+1:]...)
			b.unique.Remove(id)
			return nil
		}
		count++
	}
	return errors.E("remove field", errors.K.NotExist, "id", id, "occurrence", occurrence)
}

func checkVariableLen(bytesDataSize uint8, n int) error {
	var max int
	switch bytesDataSize {
	case 1:
		max = wire.MaxU1
	case 2:
		max = wire.MaxU2
	case 3:
		max = wire.MaxU3
	}
	if n > max {
		return errors.E("check variable length", errors.K.Invalid, "reason", "data too long for its length prefix", "max", max, "got", n)
	}
	return nil
}

// Freeze assembles the builder's entries into payload bytes and parses the
// result, returning the canonical Signet. Reusing Parse here is what
// guarantees Freeze produces exactly what Parse(Serialize(s)) would.
func (b *Builder) Freeze() (*Signet, error) {
	if b.frozen {
		return nil, errors.E("freeze", errors.K.Invalid, "reason", "builder already frozen")
	}
	var payload []byte
	for _, e := range b.entries {
		key, _ := b.table.Get(e.id)
		payload = append(payload, e.id)
		if key.BytesNameSize == 1 {
			payload = append(payload, byte(len(e.name)))
			payload = append(payload, e.name...)
		}
		if key.Variable() {
			switch key.BytesDataSize {
			case 1:
				payload = append(payload, byte(len(e.data)))
			case 2:
				payload = wire.PutU2(payload, uint32(len(e.data)))
			case 3:
				payload = wire.PutU3(payload, uint32(len(e.data)))
			}
		}
		payload = append(payload, e.data...)
	}

	num, err := NumberForKind(b.kind)
	if err != nil {
		return nil, errors.E("freeze", err)
	}
	header, err := Header(num, len(payload))
	if err != nil {
		return nil, errors.E("freeze", err)
	}
	full := append(header, payload...)

	s, err := Parse(full)
	if err != nil {
		return nil, errors.E("freeze", err)
	}
	b.frozen = true
	return s, nil
}
