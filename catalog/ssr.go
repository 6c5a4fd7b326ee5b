package catalog

// SSR field ids (original_source/include/signet/general.h,
// SIGNET_SSR_FIELD_T). An SSR only ever carries fields 1-5
// (spec.md §6: "SSR: 1-5 only").
const (
	SSRSignKey = 1
	SSREncKey  = 2
	SSRAltKey  = 3
	SSRCOCSig  = 4
	SSRSSRSig  = 5
)

var ssrTable = mustValidateTable(KindSSR, buildSSRTable())

func buildSSRTable() *Table {
	t := &Table{Kind: KindSSR}
	set := func(id int, k FieldKey) {
		k.Defined = true
		t.keys[id] = k
	}

	set(SSRSignKey, FieldKey{Required: true, Unique: true, FixedDataSize: 32, DataType: B64, Label: "SIGN_KEY", Description: "Proposed Ed25519 signing key"})
	set(SSREncKey, FieldKey{Required: true, Unique: true, FixedDataSize: 33, DataType: B64, Label: "ENC_KEY", Description: "Proposed encryption public key"})
	set(SSRAltKey, FieldKey{Required: false, Unique: false, BytesDataSize: 1, DataType: B64, Label: "ALT_KEY", Description: "Alternative encryption key"})
	set(SSRCOCSig, FieldKey{Required: false, Unique: true, FixedDataSize: 64, DataType: B64, Label: "COC_SIG", Description: "Chain-of-custody signature by the previous signing key"})
	set(SSRSSRSig, FieldKey{Required: true, Unique: true, FixedDataSize: 64, DataType: B64, Label: "SSR_SIG", Description: "Self-signature by the proposed signing key"})

	// An SSR has no reserved 251-255 range of its own in spec.md §6: no
	// entries are declared here and Table.Accepts rejects those ids for an
	// SSR, matching the "SSR: 1-5 only" restriction.
	return t
}
