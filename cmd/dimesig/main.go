// Command dimesig is the reference CLI for the signet/keychain core
// (spec.md §6): generate, sign, verify and dump signets and SSRs from the
// command line. It is a thin translation layer - argument parsing and exit
// codes only - over the library packages; all format and cryptographic
// logic lives there.
package main

import (
	"encoding/base64"
	"flag"
	"fmt"
	"os"

	"github.com/dimeproject/signet"
	"github.com/dimeproject/signet/catalog"
	"github.com/dimeproject/signet/classify"
	"github.com/dimeproject/signet/dcrypto"
	"github.com/dimeproject/signet/keychain"
	"github.com/dimeproject/signet/wire"
	"github.com/eluv-io/errors-go"
	"github.com/eluv-io/log-go"
	uuid "github.com/satori/go.uuid"
)

// Exit codes per spec.md §6.
const (
	exitOK            = 0
	exitArgError      = 1
	exitIOError       = 2
	exitStructFailure = 3
	exitSigFailure    = 4
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	if len(args) < 1 {
		fmt.Fprintln(os.Stderr, "usage: dimesig <generate|sign|verify|dump> [flags]")
		return exitArgError
	}

	switch args[0] {
	case "generate":
		return cmdGenerate(args[1:])
	case "sign":
		return cmdSign(args[1:])
	case "verify":
		return cmdVerify(args[1:])
	case "dump":
		return cmdDump(args[1:])
	default:
		fmt.Fprintf(os.Stderr, "dimesig: unknown subcommand %q\n", args[0])
		return exitArgError
	}
}

func parseKind(s string) (catalog.Kind, error) {
	switch s {
	case "org":
		return catalog.KindOrg, nil
	case "user":
		return catalog.KindUser, nil
	case "ssr":
		return catalog.KindSSR, nil
	default:
		return catalog.KindUnknown, fmt.Errorf("unknown kind %q (want org, user or ssr)", s)
	}
}

// cmdGenerate creates fresh signing and encryption keys for --kind, writes
// them to a keychain file at --keys-out (org and user kinds only; no
// keychain file is written for an SSR), and writes to --out a signet that
// carries only its self-signature: CRYPTO_SIG by the POK for an org,
// SSR_SIG for a user or an SSR.
func cmdGenerate(args []string) int {
	fs := flag.NewFlagSet("generate", flag.ContinueOnError)
	kindFlag := fs.String("kind", "user", "signet kind: org, user or ssr")
	out := fs.String("out", "", "path to write the signet PEM file")
	keysOut := fs.String("keys-out", "", "path to write the private keychain PEM file")
	if err := fs.Parse(args); err != nil {
		return exitArgError
	}
	kind, err := parseKind(*kindFlag)
	if err != nil {
		fmt.Fprintln(os.Stderr, "dimesig generate:", err)
		return exitArgError
	}
	if *out == "" || *keysOut == "" {
		fmt.Fprintln(os.Stderr, "dimesig generate: --out and --keys-out are required")
		return exitArgError
	}

	crypto := dcrypto.Default()
	signKP, err := crypto.Ed25519Generate()
	if err != nil {
		fmt.Fprintln(os.Stderr, "dimesig generate:", err)
		return exitStructFailure
	}
	encKP, err := crypto.ECGenerate()
	if err != nil {
		fmt.Fprintln(os.Stderr, "dimesig generate:", err)
		return exitStructFailure
	}
	kc := &keychain.Keychain{Kind: kind, SignKey: signKP.Private, EncKey: encKP.Private}
	defer kc.Close()
	if kind != catalog.KindSSR {
		if err := keychain.Create(kc, crypto, *keysOut); err != nil {
			fmt.Fprintln(os.Stderr, "dimesig generate:", err)
			return exitIOError
		}
	}

	b, err := signet.NewBuilder(kind)
	if err != nil {
		fmt.Fprintln(os.Stderr, "dimesig generate:", err)
		return exitStructFailure
	}
	signFID, encFID, sigFID := fieldsForKind(kind)
	if err := b.SetField(signFID, signKP.Public); err != nil {
		fmt.Fprintln(os.Stderr, "dimesig generate:", err)
		return exitStructFailure
	}
	if err := b.SetField(encFID, []byte(encKP.Public)); err != nil {
		fmt.Fprintln(os.Stderr, "dimesig generate:", err)
		return exitStructFailure
	}
	s, err := b.Freeze()
	if err != nil {
		fmt.Fprintln(os.Stderr, "dimesig generate:", err)
		return exitStructFailure
	}

	fp, err := s.Fingerprint(crypto, sigFID)
	if err != nil {
		fmt.Fprintln(os.Stderr, "dimesig generate:", err)
		return exitStructFailure
	}
	selfSig, err := crypto.Ed25519Sign(signKP.Private, fp[:])
	if err != nil {
		fmt.Fprintln(os.Stderr, "dimesig generate:", err)
		return exitStructFailure
	}

	b2, _ := signet.NewBuilder(kind)
	_ = b2.SetField(signFID, signKP.Public)
	_ = b2.SetField(encFID, []byte(encKP.Public))
	if err := b2.SetField(sigFID, selfSig); err != nil {
		fmt.Fprintln(os.Stderr, "dimesig generate:", err)
		return exitStructFailure
	}
	s2, err := b2.Freeze()
	if err != nil {
		fmt.Fprintln(os.Stderr, "dimesig generate:", err)
		return exitStructFailure
	}

	if err := writeSignet(s2, *out); err != nil {
		fmt.Fprintln(os.Stderr, "dimesig generate:", err)
		return exitIOError
	}
	// The correlation id has no wire presence; it only lets an operator
	// match a generate invocation's log line to the files it produced.
	correlationID := uuid.NewV4()
	log.Info("generated signet", "kind", kind.String(), "out", *out, "keys_out", *keysOut, "correlation_id", correlationID.String())
	return exitOK
}

// fieldsForKind returns the (sign-key, enc-key, self-signature) field ids
// common to all three kinds' SSR-equivalent stage.
func fieldsForKind(kind catalog.Kind) (signFID, encFID, sigFID uint8) {
	switch kind {
	case catalog.KindOrg:
		return catalog.OrgPOK, catalog.OrgEncKey, catalog.OrgCryptoSig
	case catalog.KindUser:
		return catalog.UserSignKey, catalog.UserEncKey, catalog.UserSSRSig
	default:
		return catalog.SSRSignKey, catalog.SSREncKey, catalog.SSRSSRSig
	}
}

// cmdSign adds an organizational CRYPTO_SIG, FULL_SIG or ID_SIG to an existing
// signet read from --in, using the private POK in the keychain at
// --org-key, writing the result to --out.
func cmdSign(args []string) int {
	fs := flag.NewFlagSet("sign", flag.ContinueOnError)
	in := fs.String("in", "", "path to the signet PEM file to sign")
	out := fs.String("out", "", "path to write the signed signet PEM file")
	orgKey := fs.String("org-key", "", "path to the organization's private keychain PEM file")
	field := fs.String("field", "crypto", "which signature to add: crypto, full or id")
	if err := fs.Parse(args); err != nil {
		return exitArgError
	}
	if *in == "" || *out == "" || *orgKey == "" {
		fmt.Fprintln(os.Stderr, "dimesig sign: --in, --out and --org-key are required")
		return exitArgError
	}

	crypto := dcrypto.Default()
	s, err := readSignet(*in)
	if err != nil {
		fmt.Fprintln(os.Stderr, "dimesig sign:", err)
		return exitForReadError(err)
	}

	orgSignKey, err := keychain.FetchSignKey(*orgKey, crypto)
	if err != nil {
		fmt.Fprintln(os.Stderr, "dimesig sign:", err)
		return exitIOError
	}
	defer dcrypto.Wipe(orgSignKey)

	var cutoffID uint8
	switch *field {
	case "crypto":
		cutoffID = catalog.OrgCryptoSig
		if s.Kind() == catalog.KindUser {
			cutoffID = catalog.UserCryptoSig
		}
	case "full":
		cutoffID = catalog.FullSig
	case "id":
		cutoffID = catalog.IDSig
	default:
		fmt.Fprintln(os.Stderr, "dimesig sign: --field must be crypto, full or id")
		return exitArgError
	}

	fp, err := s.Fingerprint(crypto, cutoffID)
	if err != nil {
		fmt.Fprintln(os.Stderr, "dimesig sign:", err)
		return exitStructFailure
	}
	sig, err := crypto.Ed25519Sign(orgSignKey, fp[:])
	if err != nil {
		fmt.Fprintln(os.Stderr, "dimesig sign:", err)
		return exitStructFailure
	}

	b, err := rebuildWithField(s, cutoffID, sig)
	if err != nil {
		fmt.Fprintln(os.Stderr, "dimesig sign:", err)
		return exitStructFailure
	}
	if err := writeSignet(b, *out); err != nil {
		fmt.Fprintln(os.Stderr, "dimesig sign:", err)
		return exitIOError
	}
	return exitOK
}

// rebuildWithField re-assembles s's existing fields plus one new field
// through a fresh Builder, since a frozen Signet cannot be mutated in
// place (spec.md §3: "After freeze, mutation is disallowed").
func rebuildWithField(s *signet.Signet, id uint8, data []byte) (*signet.Signet, error) {
	table, err := catalog.ForKind(s.Kind())
	if err != nil {
		return nil, err
	}
	b, err := signet.NewBuilder(s.Kind())
	if err != nil {
		return nil, err
	}
	for fid := 1; fid < 256; fid++ {
		key, ok := table.Get(uint8(fid))
		if !ok {
			continue
		}
		for _, existing := range s.Fields(uint8(fid)) {
			if key.BytesNameSize == 1 {
				if err := b.SetNamedField(uint8(fid), "", existing); err != nil {
					return nil, err
				}
			} else if err := b.SetField(uint8(fid), existing); err != nil {
				return nil, err
			}
		}
	}
	if err := b.SetField(id, data); err != nil {
		return nil, err
	}
	return b.Freeze()
}

// cmdVerify classifies the signet at --in and reports the resulting state.
// An org signet is checked against its own POK field and a user signet is
// classified to the SSR stage only; --org-key, when given, must name a
// readable keychain file but does not change the result.
func cmdVerify(args []string) int {
	fs := flag.NewFlagSet("verify", flag.ContinueOnError)
	in := fs.String("in", "", "path to the signet PEM file to verify")
	orgKey := fs.String("org-key", "", "path to the organization's private keychain PEM file (optional)")
	if err := fs.Parse(args); err != nil {
		return exitArgError
	}
	if *in == "" {
		fmt.Fprintln(os.Stderr, "dimesig verify: --in is required")
		return exitArgError
	}

	crypto := dcrypto.Default()
	s, err := readSignet(*in)
	if err != nil {
		fmt.Fprintln(os.Stderr, "dimesig verify:", err)
		return exitForReadError(err)
	}

	var orgPOK dcrypto.Ed25519PublicKey
	if *orgKey != "" {
		orgSignKey, err := keychain.FetchSignKey(*orgKey, crypto)
		if err != nil {
			fmt.Fprintln(os.Stderr, "dimesig verify:", err)
			return exitIOError
		}
		defer dcrypto.Wipe(orgSignKey)
		// An org signet is self-certifying (its own POK field is the
		// verification key); --org-key here only matters for a user
		// signet, where the org's *public* POK would need to come from
		// the org's own signet, not its private keychain. Until the CLI
		// takes a separate --org-signet flag, org verification reads POK
		// off the signet itself and user verification is SSR-stage only.
		if s.Kind() == catalog.KindOrg {
			if pok, ok := s.GetField(catalog.OrgPOK); ok {
				orgPOK = dcrypto.Ed25519PublicKey(pok)
			}
		}
	}

	var state classify.State
	switch s.Kind() {
	case catalog.KindOrg:
		state = classify.Org(s, crypto)
	case catalog.KindUser:
		state = classify.User(s, crypto, orgPOK)
	case catalog.KindSSR:
		state = classify.Request(s, crypto)
	}

	fmt.Println(state.String())
	if table, err := catalog.ForKind(s.Kind()); err == nil {
		if sigFID, ok := dumpFingerprintCutoff(table); ok {
			if fp, err := s.DisplayFingerprint(crypto, sigFID); err == nil {
				fmt.Printf("fingerprint (base58, fields below %d): %s\n", sigFID, fp)
			}
		}
	}
	switch state {
	case classify.Invalid, classify.BrokenCOC:
		return exitSigFailure
	case classify.Malformed, classify.Overflow, classify.Incomplete:
		return exitStructFailure
	default:
		return exitOK
	}
}

// cmdDump prints every field of the signet at --in in catalog order.
func cmdDump(args []string) int {
	fs := flag.NewFlagSet("dump", flag.ContinueOnError)
	in := fs.String("in", "", "path to the signet PEM file to dump")
	if err := fs.Parse(args); err != nil {
		return exitArgError
	}
	if *in == "" {
		fmt.Fprintln(os.Stderr, "dimesig dump: --in is required")
		return exitArgError
	}

	s, err := readSignet(*in)
	if err != nil {
		fmt.Fprintln(os.Stderr, "dimesig dump:", err)
		return exitForReadError(err)
	}

	table, err := catalog.ForKind(s.Kind())
	if err != nil {
		fmt.Fprintln(os.Stderr, "dimesig dump:", err)
		return exitStructFailure
	}
	fmt.Printf("kind: %s\n", s.Kind())
	for id := 1; id < 256; id++ {
		key, ok := table.Get(uint8(id))
		if !ok {
			continue
		}
		for _, data := range s.Fields(uint8(id)) {
			fmt.Printf("%3d %-12s %s\n", id, key.Label, renderField(s.Kind(), uint8(id), key.DataType, data))
		}
	}

	crypto := dcrypto.Default()
	if sigFID, ok := dumpFingerprintCutoff(table); ok {
		if fp, err := s.DisplayFingerprint(crypto, sigFID); err == nil {
			fmt.Printf("fingerprint (base58, fields below %d): %s\n", sigFID, fp)
		}
	}
	return exitOK
}

// dumpFingerprintCutoff picks the highest-stage signature field a signet's
// kind defines, so cmdDump/cmdVerify can show the fingerprint that field is
// expected to cover.
func dumpFingerprintCutoff(table *catalog.Table) (uint8, bool) {
	for _, id := range []uint8{catalog.IDSig, catalog.FullSig} {
		if _, ok := table.Get(id); ok {
			return id, true
		}
	}
	return 0, false
}

func renderField(kind catalog.Kind, id uint8, dt catalog.DataType, data []byte) string {
	if kind == catalog.KindOrg && id == catalog.OrgSOK {
		if perm, err := catalog.ParseSOKPermissions(data); err == nil {
			return fmt.Sprintf("%s (%s)", base64.StdEncoding.EncodeToString(data), perm)
		}
	}
	switch dt {
	case catalog.UNICODE:
		return string(data)
	case catalog.HEX:
		return fmt.Sprintf("%x", data)
	default:
		return base64.StdEncoding.EncodeToString(data)
	}
}

// readSignet reads and parses the signet PEM file at path. wire.ReadPEMFile
// already distinguishes a true I/O failure (missing file, permission -
// errors.K.IO) from a malformed PEM envelope or wrong tag (errors.K.Invalid);
// signet.Parse reports every further structural problem (bad magic, length
// mismatch, misordered or duplicate fields) the same way. Both are wrapped
// here without overriding their kind, so exitForReadError can route each to
// the separate I/O (2) and structural-failure (3) exit codes of spec.md §6.
func readSignet(path string) (*signet.Signet, error) {
	body, err := wire.ReadPEMFile(path, signet.PEMTag)
	if err != nil {
		return nil, errors.E("read signet", err)
	}
	s, err := signet.Parse(body)
	if err != nil {
		return nil, errors.E("read signet", err)
	}
	return s, nil
}

// exitForReadError maps readSignet's tagged error to the I/O or structural-
// failure exit code of spec.md §6/§7.
func exitForReadError(err error) int {
	if errors.IsKind(errors.K.Invalid, err) {
		return exitStructFailure
	}
	return exitIOError
}

func writeSignet(s *signet.Signet, path string) error {
	raw, err := s.Serialize()
	if err != nil {
		return err
	}
	return wire.WritePEMFile(path, signet.PEMTag, raw)
}
