package signet

import (
	"github.com/dimeproject/signet/catalog"
	"github.com/dimeproject/signet/dcrypto"
	"github.com/dimeproject/signet/fieldset"
	"github.com/dimeproject/signet/wire"
	"github.com/eluv-io/errors-go"
)

// fieldRecord is the fully-resolved location of one parsed field: its id,
// optional name, and the span of its data within the payload.
type fieldRecord struct {
	id        uint8
	name      []byte
	dataStart int
	dataLen   int
	end       int // offset just past this entire record (id+name+len-prefix+data)
}

// Signet is a parsed or built signet container: a kind, the raw payload
// bytes it was assembled from, and an index from field id to its first
// occurrence (spec.md §3). A Signet returned by Parse or Builder.Freeze is
// always complete and immutable; there is no separate "unfrozen" Signet
// value - mutation only ever happens through a Builder.
type Signet struct {
	kind    catalog.Kind
	table   *catalog.Table
	payload []byte
	records []fieldRecord

	// fieldEnd[id] is the offset of the byte immediately following the
	// first occurrence of id, or 0 if id is absent - the literal field
	// index described in spec.md §3.
	fieldEnd [256]uint32
	// firstRec[id] indexes into records for O(1) GetField; -1 if absent.
	firstRec [256]int
}

// Kind returns the signet's kind (org, user or SSR).
func (s *Signet) Kind() catalog.Kind {
	return s.kind
}

// Payload returns the signet's raw field-record bytes, the portion of the
// file following the 5-byte header. Callers must not mutate the result.
func (s *Signet) Payload() []byte {
	return s.payload
}

// Number returns the DIME number this signet serializes under.
func (s *Signet) Number() Number {
	n, _ := NumberForKind(s.kind)
	return n
}

// FieldEndOffset returns the offset of the byte immediately following the
// first occurrence of id, and whether id is present at all. This is the
// literal field_index semantics of spec.md §3, exposed mainly for testing
// the index-construction invariant.
func (s *Signet) FieldEndOffset(id uint8) (uint32, bool) {
	e := s.fieldEnd[id]
	return e, e != 0
}

// GetField returns the data bytes of the first occurrence of id (no id,
// length or name bytes), and false if id is not present.
func (s *Signet) GetField(id uint8) ([]byte, bool) {
	idx := s.firstRec[id]
	if idx < 0 {
		return nil, false
	}
	rec := s.records[idx]
	return s.payload[rec.dataStart : rec.dataStart+rec.dataLen], true
}

// Fields returns the data bytes of every occurrence of id, in the order
// they appear in the payload.
func (s *Signet) Fields(id uint8) [][]byte {
	var out [][]byte
	for _, rec := range s.records {
		if rec.id == id {
			out = append(out, s.payload[rec.dataStart:rec.dataStart+rec.dataLen])
		}
	}
	return out
}

// Header returns the 5-byte header (DIME number + payload length) that a
// signet of kind n carrying payloadLen bytes would be serialized with.
func Header(n Number, payloadLen int) ([]byte, error) {
	if payloadLen < 0 || payloadLen > MaxSignetSize-HeaderSize {
		return nil, errors.E("build header", errors.K.Invalid, "reason", "payload too large", "len", payloadLen)
	}
	buf := wire.PutU2(nil, uint32(n))
	buf = wire.PutU3(buf, uint32(payloadLen))
	return buf, nil
}

// Serialize returns the full on-wire bytes of the signet: header followed
// by payload.
func (s *Signet) Serialize() ([]byte, error) {
	header, err := Header(s.Number(), len(s.payload))
	if err != nil {
		return nil, errors.E("serialize signet", err)
	}
	out := make([]byte, 0, len(header)+len(s.payload))
	out = append(out, header...)
	out = append(out, s.payload...)
	return out, nil
}

// Fingerprint returns the SHA-256 digest of the header and every field
// record whose id is strictly less than cutoffID (spec.md §4.3). It is
// the payload a signature field at id cutoffID is expected to cover. The
// header's length is that of the covered prefix, so the digest does not
// change when fields at or above cutoffID are added later.
func (s *Signet) Fingerprint(crypto dcrypto.Provider, cutoffID uint8) ([32]byte, error) {
	cutoffOffset := 0
	for _, rec := range s.records {
		if rec.id >= cutoffID {
			break
		}
		cutoffOffset = rec.end
	}
	header, err := Header(s.Number(), cutoffOffset)
	if err != nil {
		return [32]byte{}, errors.E("fingerprint", err)
	}
	return crypto.SHA256(header, s.payload[:cutoffOffset]), nil
}

// Parse decodes a complete signet file (header + payload) into a Signet,
// validating every structural invariant from spec.md §3-§4.3: correct
// magic, exact length match, in-range and catalog-defined field ids,
// non-decreasing id order, at-most-one occurrence of unique fields, and no
// field record running past the end of the buffer. It does not check
// whether any required field is present or any signature verifies - that
// is the classifier's job (classify.Org, classify.User, classify.Request), since an incomplete or
// unsigned signet is still a structurally well-formed one.
func Parse(data []byte) (*Signet, error) {
	if len(data) < HeaderSize {
		return nil, errors.E("parse signet", errors.K.Invalid, "reason", "buffer shorter than header")
	}
	magic, _ := wire.GetU2(data, 0)
	num := Number(magic)
	kind, ok := num.Kind()
	if !ok {
		return nil, errors.E("parse signet", errors.K.Invalid, "reason", "not a signet DIME number", "number", num)
	}
	length, _ := wire.GetU3(data, 2)
	payload := data[HeaderSize:]
	if int(length) != len(payload) {
		return nil, errors.E("parse signet", errors.K.Invalid, "reason", "payload length mismatch",
			"declared", length, "actual", len(payload))
	}
	if len(data) > MaxSignetSize {
		return nil, errors.E("parse signet", errors.K.Invalid, "reason", "signet exceeds maximum size", "size", len(data))
	}

	table, err := catalog.ForKind(kind)
	if err != nil {
		return nil, errors.E("parse signet", err)
	}

	s := &Signet{kind: kind, table: table, payload: payload}
	for i := range s.firstRec {
		s.firstRec[i] = -1
	}

	off := 0
	lastID := -1
	seenUnique := fieldset.New[uint8]()
	for off < len(payload) {
		id := payload[off]
		if int(id) < lastID {
			return nil, errors.E("parse signet", errors.K.Invalid, "reason", "fields out of order",
				"id", id, "after", lastID)
		}
		key, defined := table.Get(id)
		if !defined {
			if !table.Accepts(id) {
				return nil, errors.E("parse signet", errors.K.Invalid, "reason", "field id undefined for kind",
					"id", id, "kind", kind)
			}
		}
		off++ // id byte

		var name []byte
		if key.BytesNameSize == 1 {
			if err := wire.CheckRemaining(payload, off, 1); err != nil {
				return nil, errors.E("parse signet", errors.K.Invalid, "reason", "truncated name length", err)
			}
			nameLen := int(payload[off])
			off++
			if nameLen > FieldNameMaxSize {
				return nil, errors.E("parse signet", errors.K.Invalid, "reason", "name too long", "id", id)
			}
			if err := wire.CheckRemaining(payload, off, nameLen); err != nil {
				return nil, errors.E("parse signet", errors.K.Invalid, "reason", "truncated name", err)
			}
			name = payload[off : off+nameLen]
			off += nameLen
		}

		dataLen := int(key.FixedDataSize)
		if key.BytesDataSize > 0 {
			if err := wire.CheckRemaining(payload, off, int(key.BytesDataSize)); err != nil {
				return nil, errors.E("parse signet", errors.K.Invalid, "reason", "truncated data length", err)
			}
			switch key.BytesDataSize {
			case 1:
				dataLen = int(payload[off])
				off++
			case 2:
				v, _ := wire.GetU2(payload, off)
				dataLen = int(v)
				off += 2
			case 3:
				v, _ := wire.GetU3(payload, off)
				dataLen = int(v)
				off += 3
			}
		}
		if err := wire.CheckRemaining(payload, off, dataLen); err != nil {
			return nil, errors.E("parse signet", errors.K.Invalid, "reason", "field data runs past end of buffer", "id", id, err)
		}
		dataStart := off
		off += dataLen

		if key.Unique {
			if !seenUnique.Insert(id) {
				return nil, errors.E("parse signet", errors.K.Invalid, "reason", "duplicate occurrence of unique field", "id", id)
			}
		}

		if kind == catalog.KindOrg && id == catalog.OrgSOK {
			if _, err := catalog.ParseSOKPermissions(payload[dataStart : dataStart+dataLen]); err != nil {
				return nil, errors.E("parse signet", err)
			}
		}

		s.records = append(s.records, fieldRecord{id: id, name: name, dataStart: dataStart, dataLen: dataLen, end: off})
		if s.fieldEnd[id] == 0 {
			s.fieldEnd[id] = uint32(off)
			s.firstRec[id] = len(s.records) - 1
		}
		lastID = int(id)
	}

	return s, nil
}
