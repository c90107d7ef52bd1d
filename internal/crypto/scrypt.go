package crypto

import (
	"fmt"
	"math/bits"

	"golang.org/x/crypto/scrypt"
)

const (
	PwhashSaltBytes           = 32
	PwhashOpsLimitInteractive = 524288
	PwhashMemLimitInteractive = 16777216

	minOpsLimit = 32768
	maxRP       = 0x3fffffff
)

// ScryptParams are the cost parameters handed to scrypt.
type ScryptParams struct {
	N uint64
	R uint64
	P uint64
}

// Memory returns the working memory scrypt needs for p, in bytes.
func (p ScryptParams) Memory() uint64 {
	hi, lo := bits.Mul64(p.N, p.R)
	if hi != 0 || lo > ^uint64(0)>>7 {
		return ^uint64(0)
	}
	return lo << 7
}

// PickParams chooses N, r and p from an operations limit and a memory limit
// the way libsodium's crypto_pwhash_scryptsalsa208sha256 does, so that both
// sides derive the same key from the same limits.
func PickParams(opsLimit, memLimit uint64) ScryptParams {
	if opsLimit < minOpsLimit {
		opsLimit = minOpsLimit
	}
	const r = 8
	if opsLimit < memLimit/32 {
		maxN := opsLimit / (r * 4)
		return ScryptParams{N: 1 << nLog2(maxN), R: r, P: 1}
	}
	maxN := memLimit / (r * 128)
	shift := nLog2(maxN)
	maxrp := (opsLimit / 4) / (uint64(1) << shift)
	if maxrp > maxRP {
		maxrp = maxRP
	}
	p := maxrp / r
	if p == 0 {
		p = 1
	}
	return ScryptParams{N: 1 << shift, R: r, P: p}
}

// nLog2 returns the smallest k in [1, 62] with 2^k > maxN/2, or 63.
func nLog2(maxN uint64) uint {
	k := uint(1)
	for ; k < 63; k++ {
		if uint64(1)<<k > maxN/2 {
			break
		}
	}
	return k
}

// Scrypt derives keyLen bytes from password and a 32-byte salt with the
// parameters PickParams selects.
func Scrypt(password, salt []byte, opsLimit, memLimit uint64, keyLen int) ([]byte, error) {
	if len(salt) != PwhashSaltBytes {
		return nil, fmt.Errorf("%w: salt must be %d bytes", ErrSize, PwhashSaltBytes)
	}
	return ScryptLL(password, salt, PickParams(opsLimit, memLimit), keyLen)
}

// ScryptLL runs scrypt with explicit parameters. N must be a power of two
// greater than one.
func ScryptLL(password, salt []byte, params ScryptParams, keyLen int) ([]byte, error) {
	const maxInt = int(^uint(0) >> 1)
	if keyLen <= 0 || params.R == 0 || params.P == 0 || params.N < 2 ||
		params.N > uint64(maxInt) || params.R > maxRP || params.P > maxRP {
		return nil, fmt.Errorf("%w: N=%d r=%d p=%d keyLength=%d", ErrParams, params.N, params.R, params.P, keyLen)
	}
	key, err := scrypt.Key(password, salt, int(params.N), int(params.R), int(params.P), keyLen)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrParams, err)
	}
	return key, nil
}
