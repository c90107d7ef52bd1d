package catalog

import "sort"

// Operation names as understood by backends.
const (
	OpSecretboxEasy                = "crypto_secretbox_easy"
	OpSecretboxOpenEasy            = "crypto_secretbox_open_easy"
	OpSignKeypair                  = "crypto_sign_keypair"
	OpSignSeedKeypair              = "crypto_sign_seed_keypair"
	OpSign                         = "crypto_sign"
	OpSignOpen                     = "crypto_sign_open"
	OpSignDetached                 = "crypto_sign_detached"
	OpSignVerifyDetached           = "crypto_sign_verify_detached"
	OpSignEd25519SkToSeed          = "crypto_sign_ed25519_sk_to_seed"
	OpSignEd25519SkToPk            = "crypto_sign_ed25519_sk_to_pk"
	OpSignEd25519SkToCurve25519    = "crypto_sign_ed25519_sk_to_curve25519"
	OpSignEd25519PkToCurve25519    = "crypto_sign_ed25519_pk_to_curve25519"
	OpScalarmultBase               = "crypto_scalarmult_base"
	OpScalarmult                   = "crypto_scalarmult"
	OpPwhashScryptSalsa208SHA256   = "crypto_pwhash_scryptsalsa208sha256"
	OpPwhashScryptSalsa208SHA256LL = "crypto_pwhash_scryptsalsa208sha256_ll"
	OpBoxKeypair                   = "crypto_box_keypair"
	OpBoxEasy                      = "crypto_box_easy"
	OpBoxOpenEasy                  = "crypto_box_open_easy"
	OpBoxSeal                      = "crypto_box_seal"
	OpBoxSealOpen                  = "crypto_box_seal_open"
	OpGenericHash                  = "crypto_generichash"
)

// Keypair record field names.
const (
	FieldPublicKey = "pk"
	FieldSecretKey = "sk"
)

var (
	buffer    = Shape{Kind: ShapeBuffer}
	scalar    = Shape{Kind: ShapeScalar}
	keyRecord = Shape{Kind: ShapeRecord, Fields: []Field{
		{Name: FieldPublicKey, Kind: FieldBuffer},
		{Name: FieldSecretKey, Kind: FieldBuffer},
	}}
)

func buf(name string) Param          { return Param{Name: name, Kind: BufferAny} }
func fixed(name string, n int) Param { return Param{Name: name, Kind: BufferFixed, Len: n} }
func positive(name string) Param     { return Param{Name: name, Kind: PositiveUint} }

var ops = map[string]Op{}

func register(o Op) {
	if _, dup := ops[o.Name]; dup {
		panic("catalog: duplicate operation " + o.Name)
	}
	ops[o.Name] = o
}

func init() {
	register(Op{Name: OpSecretboxEasy, Implemented: true, Result: buffer, Params: []Param{
		buf("message"), fixed("nonce", SecretboxNonceBytes), fixed("key", SecretboxKeyBytes),
	}})
	register(Op{Name: OpSecretboxOpenEasy, Implemented: true, Result: buffer, Params: []Param{
		buf("ciphertext"), fixed("nonce", SecretboxNonceBytes), fixed("key", SecretboxKeyBytes),
	}})

	register(Op{Name: OpSignKeypair, Implemented: true, Result: keyRecord})
	register(Op{Name: OpSignSeedKeypair, Implemented: true, Result: keyRecord, Params: []Param{
		fixed("seed", SignSeedBytes),
	}})
	register(Op{Name: OpSign, Implemented: true, Result: buffer, Params: []Param{
		buf("message"), fixed("secretKey", SignSecretKeyBytes),
	}})
	register(Op{Name: OpSignOpen, Implemented: true, Result: buffer, Params: []Param{
		{Name: "signedMessage", Kind: BufferMin, Len: SignBytes}, fixed("publicKey", SignPublicKeyBytes),
	}})
	register(Op{Name: OpSignDetached, Implemented: true, Result: buffer, Params: []Param{
		buf("message"), fixed("secretKey", SignSecretKeyBytes),
	}})
	register(Op{Name: OpSignVerifyDetached, Implemented: true, Result: scalar, Params: []Param{
		fixed("signature", SignBytes), buf("message"), fixed("publicKey", SignPublicKeyBytes),
	}})
	register(Op{Name: OpSignEd25519SkToSeed, Implemented: true, Result: buffer, Params: []Param{
		fixed("secretKey", SignSecretKeyBytes),
	}})
	register(Op{Name: OpSignEd25519SkToPk, Implemented: true, Result: buffer, Params: []Param{
		fixed("secretKey", SignSecretKeyBytes),
	}})
	register(Op{Name: OpSignEd25519SkToCurve25519, Implemented: true, Result: buffer, Params: []Param{
		fixed("ed25519Sk", SignSecretKeyBytes),
	}})
	register(Op{Name: OpSignEd25519PkToCurve25519, Implemented: true, Result: buffer, Params: []Param{
		fixed("ed25519Pk", SignPublicKeyBytes),
	}})

	register(Op{Name: OpScalarmultBase, Implemented: true, Result: buffer, Params: []Param{
		fixed("n", ScalarmultScalarBytes),
	}})
	register(Op{Name: OpScalarmult, Implemented: true, Result: buffer, Params: []Param{
		fixed("n", ScalarmultScalarBytes), fixed("p", ScalarmultBytes),
	}})

	register(Op{Name: OpPwhashScryptSalsa208SHA256, Implemented: true, Result: buffer, Params: []Param{
		positive("keyLength"), buf("password"), fixed("salt", PwhashSaltBytes),
		positive("opsLimit"), positive("memLimit"),
	}})
	register(Op{Name: OpPwhashScryptSalsa208SHA256LL, Implemented: true, Result: buffer, Params: []Param{
		buf("password"), buf("salt"), positive("opsLimit"), positive("r"), positive("p"),
		positive("keyLength"),
	}})

	for _, name := range []string{OpBoxKeypair, OpBoxEasy, OpBoxOpenEasy, OpBoxSeal, OpBoxSealOpen, OpGenericHash} {
		register(Op{Name: name})
	}
}

// Lookup returns the descriptor for name.
func Lookup(name string) (Op, bool) {
	o, ok := ops[name]
	return o, ok
}

// MustLookup is Lookup for names known at compile time.
func MustLookup(name string) Op {
	o, ok := ops[name]
	if !ok {
		panic("catalog: unknown operation " + name)
	}
	return o
}

// All returns every descriptor sorted by name.
func All() []Op {
	out := make([]Op, 0, len(ops))
	for _, o := range ops {
		out = append(out, o)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}
