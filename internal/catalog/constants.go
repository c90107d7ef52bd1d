package catalog

// Secretbox (XSalsa20-Poly1305).
const (
	SecretboxKeyBytes   = 32
	SecretboxNonceBytes = 24
	SecretboxMACBytes   = 16
)

// Ed25519 signatures.
const (
	SignBytes          = 64
	SignPublicKeyBytes = 32
	SignSecretKeyBytes = 64
	SignSeedBytes      = 32
)

// Curve25519 scalar multiplication.
const (
	ScalarmultBytes       = 32
	ScalarmultScalarBytes = 32
)

// scrypt password hashing.
const (
	PwhashSaltBytes           = 32
	PwhashOpsLimitInteractive = 524288
	PwhashMemLimitInteractive = 16777216
)

// Box and sealed box. Declared for callers; the operations are not implemented.
const (
	BoxPublicKeyBytes = 32
	BoxSecretKeyBytes = 32
	BoxNonceBytes     = 24
	BoxSeedBytes      = 32
	BoxMACBytes       = 16
	BoxSealBytes      = 48
)
