package catalog

// User signet field ids (original_source/include/signet/general.h,
// SIGNET_USER_FIELD_T).
const (
	UserSignKey       = 1
	UserEncKey        = 2
	UserAltKey        = 3
	UserCOCSig        = 4
	UserSSRSig        = 5
	UserCryptoSig     = 6
	UserName          = 16
	UserAddress       = 17
	UserProvince      = 18
	UserCountry       = 19
	UserPostal        = 20
	UserPhone         = 21
	UserLanguage      = 22
	UserCurrency      = 23
	UserCryptoCur     = 24
	UserMotto         = 25
	UserExtensions    = 26
	UserMsgSizeLim    = 27
	UserCodecs        = 93
	UserTitle         = 94
	UserEmployer      = 95
	UserGender        = 96
	UserAlmaMater     = 97
	UserSupervisor    = 98
	UserPoliticalPty  = 99
	UserAltAddress    = 200
	UserResume        = 201
	UserEndorsements  = 202
)

var userTable = mustValidateTable(KindUser, buildUserTable())

func buildUserTable() *Table {
	t := &Table{Kind: KindUser}
	set := func(id int, k FieldKey) {
		k.Defined = true
		t.keys[id] = k
	}
	textField := func(id int, label, desc string) {
		set(id, FieldKey{Required: false, Unique: true, BytesDataSize: 2, DataType: UNICODE, Label: label, Description: desc})
	}

	set(UserSignKey, FieldKey{Required: true, Unique: true, FixedDataSize: 32, DataType: B64, Label: "SIGN_KEY", Description: "User's Ed25519 signing key"})
	set(UserEncKey, FieldKey{Required: true, Unique: true, FixedDataSize: 33, DataType: B64, Label: "ENC_KEY", Description: "User's encryption public key"})
	set(UserAltKey, FieldKey{Required: false, Unique: false, BytesDataSize: 1, DataType: B64, Label: "ALT_KEY", Description: "Alternative encryption key"})
	set(UserCOCSig, FieldKey{Required: false, Unique: true, FixedDataSize: 64, DataType: B64, Label: "COC_SIG", Description: "Chain-of-custody signature by the previous signing key"})
	set(UserSSRSig, FieldKey{Required: true, Unique: true, FixedDataSize: 64, DataType: B64, Label: "SSR_SIG", Description: "Self-signature by this signet's own signing key"})
	set(UserCryptoSig, FieldKey{Required: false, Unique: true, FixedDataSize: 64, DataType: B64, Label: "CRYPTO_SIG", Description: "Signature over all fields below this one, by the issuing org's POK"})

	textField(UserName, "NAME", "Full name")
	textField(UserAddress, "ADDRESS", "Street address")
	textField(UserProvince, "PROVINCE", "Province or state")
	textField(UserCountry, "COUNTRY", "Country")
	textField(UserPostal, "POSTAL", "Postal code")
	textField(UserPhone, "PHONE", "Phone number")
	textField(UserLanguage, "LANGUAGE", "Preferred language")
	textField(UserCurrency, "CURRENCY", "Preferred currency")
	textField(UserCryptoCur, "CRYPTOCURRENCY", "Preferred cryptocurrency")
	textField(UserMotto, "MOTTO", "Personal motto")
	textField(UserExtensions, "EXTENSIONS", "Supported protocol extensions")
	set(UserMsgSizeLim, FieldKey{Required: false, Unique: true, FixedDataSize: 4, DataType: HEX, Label: "MSG_SIZE_LIM", Description: "Maximum accepted message size, big-endian uint32"})
	textField(UserCodecs, "CODECS", "Supported media codecs")
	textField(UserTitle, "TITLE", "Job title")
	textField(UserEmployer, "EMPLOYER", "Employer")
	textField(UserGender, "GENDER", "Gender")
	textField(UserAlmaMater, "ALMA_MATER", "Alma mater")
	textField(UserSupervisor, "SUPERVISOR", "Supervisor")
	textField(UserPoliticalPty, "POLITICAL_PARTY", "Political party")
	textField(UserAltAddress, "ALTERNATE_ADDRESS", "Alternate address")
	set(UserResume, FieldKey{Required: false, Unique: true, BytesDataSize: 2, DataType: B64, Label: "RESUME", Description: "Resume document"})
	textField(UserEndorsements, "ENDORSEMENTS", "Endorsements")

	setReserved(t)
	return t
}
