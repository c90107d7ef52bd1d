package bridge

import "sodiumbridge/internal/catalog"

// Buffer arguments accept []byte or hex text. Integer arguments accept any Go
// integer type or an integral float.

// SecretboxEasy encrypts and authenticates message. The result is MAC‖ciphertext.
func (c *Client) SecretboxEasy(message, nonce, key any, done Completion) {
	c.Invoke(catalog.OpSecretboxEasy, []any{message, nonce, key}, done)
}

// SecretboxOpenEasy verifies and decrypts ciphertext.
func (c *Client) SecretboxOpenEasy(ciphertext, nonce, key any, done Completion) {
	c.Invoke(catalog.OpSecretboxOpenEasy, []any{ciphertext, nonce, key}, done)
}

// SignKeypair generates an Ed25519 key pair. The result record holds the
// buffers "pk" and "sk".
func (c *Client) SignKeypair(done Completion) {
	c.Invoke(catalog.OpSignKeypair, nil, done)
}

// SignSeedKeypair derives an Ed25519 key pair from a 32-byte seed.
func (c *Client) SignSeedKeypair(seed any, done Completion) {
	c.Invoke(catalog.OpSignSeedKeypair, []any{seed}, done)
}

// Sign returns signature‖message.
func (c *Client) Sign(message, secretKey any, done Completion) {
	c.Invoke(catalog.OpSign, []any{message, secretKey}, done)
}

// SignOpen verifies a signed message and returns the message.
func (c *Client) SignOpen(signedMessage, publicKey any, done Completion) {
	c.Invoke(catalog.OpSignOpen, []any{signedMessage, publicKey}, done)
}

// SignDetached returns the 64-byte signature of message.
func (c *Client) SignDetached(message, secretKey any, done Completion) {
	c.Invoke(catalog.OpSignDetached, []any{message, secretKey}, done)
}

// SignVerifyDetached reports through Result.Value whether signature is valid.
func (c *Client) SignVerifyDetached(signature, message, publicKey any, done Completion) {
	c.Invoke(catalog.OpSignVerifyDetached, []any{signature, message, publicKey}, done)
}

func (c *Client) SignEd25519SkToSeed(secretKey any, done Completion) {
	c.Invoke(catalog.OpSignEd25519SkToSeed, []any{secretKey}, done)
}

func (c *Client) SignEd25519SkToPk(secretKey any, done Completion) {
	c.Invoke(catalog.OpSignEd25519SkToPk, []any{secretKey}, done)
}

// SignEd25519SkToCurve25519 converts an Ed25519 secret key to an X25519 one.
func (c *Client) SignEd25519SkToCurve25519(ed25519Sk any, done Completion) {
	c.Invoke(catalog.OpSignEd25519SkToCurve25519, []any{ed25519Sk}, done)
}

// SignEd25519PkToCurve25519 converts an Ed25519 public key to an X25519 one.
func (c *Client) SignEd25519PkToCurve25519(ed25519Pk any, done Completion) {
	c.Invoke(catalog.OpSignEd25519PkToCurve25519, []any{ed25519Pk}, done)
}

// ScalarMultBase computes n·B.
func (c *Client) ScalarMultBase(n any, done Completion) {
	c.Invoke(catalog.OpScalarmultBase, []any{n}, done)
}

// ScalarMult computes n·p. A nil p, untyped or a nil []byte, selects the
// base point.
func (c *Client) ScalarMult(n, p any, done Completion) {
	if b, ok := p.([]byte); p == nil || (ok && b == nil) {
		c.ScalarMultBase(n, done)
		return
	}
	c.Invoke(catalog.OpScalarmult, []any{n, p}, done)
}

// PwhashScryptSalsa208SHA256 derives keyLength bytes from password with scrypt
// parameters chosen from opsLimit and memLimit.
func (c *Client) PwhashScryptSalsa208SHA256(keyLength, password, salt, opsLimit, memLimit any, done Completion) {
	c.Invoke(catalog.OpPwhashScryptSalsa208SHA256, []any{keyLength, password, salt, opsLimit, memLimit}, done)
}

// PwhashScryptSalsa208SHA256LL runs scrypt with explicit N (opsLimit), r and p.
func (c *Client) PwhashScryptSalsa208SHA256LL(password, salt, opsLimit, r, p, keyLength any, done Completion) {
	c.Invoke(catalog.OpPwhashScryptSalsa208SHA256LL, []any{password, salt, opsLimit, r, p, keyLength}, done)
}

// The box family and generic hashing are cataloged but not implemented; each
// call completes with a KindNotImplemented error.

func (c *Client) BoxKeypair(done Completion)  { c.Invoke(catalog.OpBoxKeypair, nil, done) }
func (c *Client) BoxEasy(done Completion)     { c.Invoke(catalog.OpBoxEasy, nil, done) }
func (c *Client) BoxOpenEasy(done Completion) { c.Invoke(catalog.OpBoxOpenEasy, nil, done) }
func (c *Client) BoxSeal(done Completion)     { c.Invoke(catalog.OpBoxSeal, nil, done) }
func (c *Client) BoxSealOpen(done Completion) { c.Invoke(catalog.OpBoxSealOpen, nil, done) }
func (c *Client) GenericHash(done Completion) { c.Invoke(catalog.OpGenericHash, nil, done) }
