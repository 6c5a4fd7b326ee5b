// Package catalog holds the static, per-signet-kind field metadata tables
// described in spec.md §4.2. Each table is built once in an init() and
// never mutated afterward - the same "compile-time constant data" stance
// the teacher takes for its code-to-prefix tables (see, e.g., the
// id/keys/sign packages' codeToPrefix maps built from a single literal
// map and self-checked in init()).
package catalog

import (
	"github.com/eluv-io/errors-go"
	"github.com/eluv-io/log-go"
)

// Kind identifies which of the three field tables a signet uses.
type Kind uint8

const (
	KindUnknown Kind = iota
	KindOrg
	KindUser
	KindSSR
)

func (k Kind) String() string {
	switch k {
	case KindOrg:
		return "org"
	case KindUser:
		return "user"
	case KindSSR:
		return "ssr"
	default:
		return "unknown"
	}
}

// DataType is the dump format a field's payload is rendered in.
type DataType uint8

const (
	B64 DataType = iota
	HEX
	PNG
	UNICODE
)

// ReservedFirst is the first id in the reserved 251-255 range that org and
// user signets accept structurally regardless of whether the table declares
// it (spec.md §3: "Ids 251..255 are reserved... and always accepted
// structurally"). An SSR does not accept that range (see Table.Accepts).
const ReservedFirst = 251

// Well-known reserved field ids, shared across all three kinds.
const (
	Undefined = 251
	Photo     = 252
	FullSig   = 253
	ID        = 254
	IDSig     = 255
)

// FieldKey is one catalog entry: the structural and descriptive metadata
// for a single field identifier within one kind's table.
type FieldKey struct {
	Defined       bool // false for ids with no catalog entry at all
	Required      bool
	Unique        bool
	BytesNameSize uint8 // 0 (no name preamble) or 1 (1-byte name length prefix)
	BytesDataSize uint8 // 0, 1, 2 or 3; 0 means FixedDataSize is authoritative
	FixedDataSize uint32
	DataType      DataType
	Label         string
	Description   string
}

// Variable reports whether this field's payload length is carried on the
// wire (BytesDataSize > 0) rather than fixed by the catalog.
func (k FieldKey) Variable() bool {
	return k.BytesDataSize > 0
}

// Table is one kind's full field catalog, indexed by field id.
type Table struct {
	Kind Kind
	keys [256]FieldKey
}

// Get returns the catalog entry for id. The second return value is false
// if id has no entry in this table at all (distinct from an entry that
// exists but is optional).
func (t *Table) Get(id uint8) (FieldKey, bool) {
	k := t.keys[id]
	return k, k.Defined
}

// Accepts reports whether id may structurally appear in a signet of this
// kind: either the catalog defines it, or it falls in the reserved
// 251-255 range that is always accepted (spec.md §3).
func (t *Table) Accepts(id uint8) bool {
	// An SSR's field range is pinned to 1-5 (spec.md §6); it has no
	// reserved 251-255 tail the way org and user signets do.
	if t.Kind == KindSSR {
		_, ok := t.Get(id)
		return ok
	}
	if id >= ReservedFirst {
		return true
	}
	_, ok := t.Get(id)
	return ok
}

// RequiredIDs returns the ids this kind's table marks as required. Neither
// Parse nor the classifier consults it; the classifier checks the key and
// signature fields of each stage itself.
func (t *Table) RequiredIDs() []uint8 {
	var out []uint8
	for id := 1; id < ReservedFirst; id++ {
		if t.keys[id].Defined && t.keys[id].Required {
			out = append(out, uint8(id))
		}
	}
	return out
}

// setReserved installs the 251-255 reserved entries shared by every kind:
// an undefined/freeform field, a photo, and the full/id signature pair.
// Declaring them explicitly (rather than relying solely on Table.Accepts'
// reserved-range fallback) lets the container compute correct record sizes
// and the classifier find FULL_SIG/ID/ID_SIG by id.
func setReserved(t *Table) {
	t.keys[Undefined] = FieldKey{Defined: true, Required: false, Unique: false, BytesNameSize: 1, BytesDataSize: 2, DataType: UNICODE, Label: "UNDEFINED", Description: "Freeform named field"}
	t.keys[Photo] = FieldKey{Defined: true, Required: false, Unique: false, BytesDataSize: 3, DataType: PNG, Label: "PHOTO", Description: "Portrait or logo image"}
	t.keys[FullSig] = FieldKey{Defined: true, Required: false, Unique: true, FixedDataSize: 64, DataType: B64, Label: "FULL_SIG", Description: "Signature covering all fields below this one"}
	t.keys[ID] = FieldKey{Defined: true, Required: false, Unique: true, BytesDataSize: 2, DataType: HEX, Label: "ID", Description: "Signet identifier assigned by the issuing organization"}
	t.keys[IDSig] = FieldKey{Defined: true, Required: false, Unique: true, FixedDataSize: 64, DataType: B64, Label: "ID_SIG", Description: "Signature covering all fields up to and including ID"}
}

func mustValidateTable(kind Kind, t *Table) *Table {
	for id, k := range t.keys {
		if !k.Defined {
			continue
		}
		if k.BytesNameSize > 1 {
			log.Fatal("invalid catalog entry", "kind", kind, "id", id, "reason", "bytes_name_size out of range")
		}
		if k.BytesDataSize > 3 {
			log.Fatal("invalid catalog entry", "kind", kind, "id", id, "reason", "bytes_data_size out of range")
		}
		if k.BytesDataSize == 0 && k.FixedDataSize == 0 {
			log.Fatal("invalid catalog entry", "kind", kind, "id", id, "reason", "fixed-size field with zero size")
		}
	}
	return t
}

// ForKind returns the static table for kind, or an error if kind is not one
// of the three defined kinds.
func ForKind(kind Kind) (*Table, error) {
	switch kind {
	case KindOrg:
		return orgTable, nil
	case KindUser:
		return userTable, nil
	case KindSSR:
		return ssrTable, nil
	default:
		return nil, errors.E("catalog for kind", errors.K.Invalid, "kind", kind)
	}
}
