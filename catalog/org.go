package catalog

// Organizational signet field ids (original_source/include/signet/general.h,
// SIGNET_ORG_FIELD_T).
const (
	OrgPOK        = 1 // Primary Organizational signing Key
	OrgSOK        = 2 // Secondary Organization signing Key(s)
	OrgEncKey     = 3
	OrgCryptoSig  = 4
	OrgName       = 16
	OrgAddress    = 17
	OrgProvince   = 18
	OrgCountry    = 19
	OrgPostal     = 20
	OrgPhone      = 21
	OrgLanguage   = 22
	OrgCurrency   = 23
	OrgCryptoCur  = 24
	OrgMotto      = 25
	OrgExtensions = 26
	OrgMsgSizeLim = 27
	OrgWebsite    = 160
	OrgAbuse      = 200
	OrgAdmin      = 201
	OrgSupport    = 202
	OrgWebHost    = 203
	OrgWebLoc     = 204
	OrgWebCert    = 205
	OrgMailHost   = 206
	OrgMailCert   = 207
	OrgOnionAHost = 208
	OrgOnionACert = 209
	OrgOnionDHost = 210
	OrgOnionDCert = 211
)

var orgTable = mustValidateTable(KindOrg, buildOrgTable())

func buildOrgTable() *Table {
	t := &Table{Kind: KindOrg}
	set := func(id int, k FieldKey) {
		k.Defined = true
		t.keys[id] = k
	}

	set(OrgPOK, FieldKey{Required: true, Unique: true, FixedDataSize: 32, DataType: B64, Label: "POK", Description: "Primary organizational Ed25519 signing key"})
	set(OrgSOK, FieldKey{Required: false, Unique: false, FixedDataSize: 33, DataType: B64, Label: "SOK", Description: "Secondary organizational signing key: 1 permission byte + 32-byte Ed25519 key"})
	set(OrgEncKey, FieldKey{Required: true, Unique: true, FixedDataSize: 33, DataType: B64, Label: "ENC_KEY", Description: "Organizational encryption public key"})
	set(OrgCryptoSig, FieldKey{Required: false, Unique: true, FixedDataSize: 64, DataType: B64, Label: "CRYPTO_SIG", Description: "Signature over all fields below this one, by POK"})

	textField := func(id int, label, desc string) {
		set(id, FieldKey{Required: false, Unique: true, BytesDataSize: 2, DataType: UNICODE, Label: label, Description: desc})
	}
	textField(OrgName, "NAME", "Organization name")
	textField(OrgAddress, "ADDRESS", "Street address")
	textField(OrgProvince, "PROVINCE", "Province or state")
	textField(OrgCountry, "COUNTRY", "Country")
	textField(OrgPostal, "POSTAL", "Postal code")
	textField(OrgPhone, "PHONE", "Phone number")
	textField(OrgLanguage, "LANGUAGE", "Preferred language")
	textField(OrgCurrency, "CURRENCY", "Preferred currency")
	textField(OrgCryptoCur, "CRYPTOCURRENCY", "Preferred cryptocurrency")
	textField(OrgMotto, "MOTTO", "Organization motto")
	textField(OrgExtensions, "EXTENSIONS", "Supported protocol extensions")
	set(OrgMsgSizeLim, FieldKey{Required: false, Unique: true, FixedDataSize: 4, DataType: HEX, Label: "MSG_SIZE_LIM", Description: "Maximum accepted message size, big-endian uint32"})
	textField(OrgWebsite, "WEBSITE", "Organization website")
	textField(OrgAbuse, "ABUSE", "Abuse contact address")
	textField(OrgAdmin, "ADMIN", "Administrative contact address")
	textField(OrgSupport, "SUPPORT", "Support contact address")
	textField(OrgWebHost, "WEB_HOST", "Web service hostname")
	textField(OrgWebLoc, "WEB_LOCATION", "Web service network location")
	set(OrgWebCert, FieldKey{Required: false, Unique: true, BytesDataSize: 2, DataType: B64, Label: "WEB_CERT", Description: "Web service TLS certificate"})
	textField(OrgMailHost, "MAIL_HOST", "Mail service hostname")
	set(OrgMailCert, FieldKey{Required: false, Unique: true, BytesDataSize: 2, DataType: B64, Label: "MAIL_CERT", Description: "Mail service TLS certificate"})
	textField(OrgOnionAHost, "ONION_ACCESS_HOST", "Onion access hostname")
	set(OrgOnionACert, FieldKey{Required: false, Unique: true, BytesDataSize: 2, DataType: B64, Label: "ONION_ACCESS_CERT", Description: "Onion access TLS certificate"})
	textField(OrgOnionDHost, "ONION_DELIVERY_HOST", "Onion delivery hostname")
	set(OrgOnionDCert, FieldKey{Required: false, Unique: true, BytesDataSize: 2, DataType: B64, Label: "ONION_DELIVERY_CERT", Description: "Onion delivery TLS certificate"})

	setReserved(t)
	return t
}
