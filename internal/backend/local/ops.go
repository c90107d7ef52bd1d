package local

import (
	"fmt"

	"sodiumbridge/internal/catalog"
	"sodiumbridge/internal/codec"
	"sodiumbridge/internal/crypto"
	"sodiumbridge/internal/domain"
	"sodiumbridge/internal/util/memzero"
)

type handler struct {
	arity int
	fn    func(args) (domain.Reply, error)
}

func (b *Backend) routes() map[string]handler {
	return map[string]handler{
		catalog.OpSecretboxEasy:     {3, secretboxEasy},
		catalog.OpSecretboxOpenEasy: {3, secretboxOpenEasy},

		catalog.OpSignKeypair:        {0, signKeypair},
		catalog.OpSignSeedKeypair:    {1, signSeedKeypair},
		catalog.OpSign:               {2, sign},
		catalog.OpSignOpen:           {2, signOpen},
		catalog.OpSignDetached:       {2, signDetached},
		catalog.OpSignVerifyDetached: {3, signVerifyDetached},

		catalog.OpSignEd25519SkToSeed:       {1, secretKeyOp("secretKey", crypto.SkToSeed)},
		catalog.OpSignEd25519SkToPk:         {1, secretKeyOp("secretKey", crypto.SkToPk)},
		catalog.OpSignEd25519SkToCurve25519: {1, secretKeyOp("ed25519Sk", crypto.SkToCurve25519)},
		catalog.OpSignEd25519PkToCurve25519: {1, pkToCurve25519},

		catalog.OpScalarmultBase: {1, secretKeyOp("n", crypto.ScalarBaseMult)},
		catalog.OpScalarmult:     {2, scalarmult},

		catalog.OpPwhashScryptSalsa208SHA256:   {5, b.pwhash},
		catalog.OpPwhashScryptSalsa208SHA256LL: {6, b.pwhashLL},
	}
}

func secretboxEasy(a args) (domain.Reply, error) {
	in, err := a.buffers("message", "nonce", "key")
	if err != nil {
		return domain.Reply{}, err
	}
	defer memzero.Zero(in[0], in[2])
	box, err := crypto.SecretboxSeal(in[0], in[1], in[2])
	if err != nil {
		return domain.Reply{}, err
	}
	return bufferReply(box), nil
}

func secretboxOpenEasy(a args) (domain.Reply, error) {
	in, err := a.buffers("ciphertext", "nonce", "key")
	if err != nil {
		return domain.Reply{}, err
	}
	defer memzero.Zero(in[2])
	msg, err := crypto.SecretboxOpen(in[0], in[1], in[2])
	if err != nil {
		return domain.Reply{}, err
	}
	defer memzero.Zero(msg)
	return bufferReply(msg), nil
}

func keypairReply(pk, sk []byte) domain.Reply {
	defer memzero.Zero(sk)
	return domain.RecordReply(map[string]domain.Value{
		catalog.FieldPublicKey: domain.Text(codec.Encode(pk)),
		catalog.FieldSecretKey: domain.Text(codec.Encode(sk)),
	})
}

func signKeypair(args) (domain.Reply, error) {
	pk, sk, err := crypto.GenerateKeypair()
	if err != nil {
		return domain.Reply{}, err
	}
	return keypairReply(pk, sk), nil
}

func signSeedKeypair(a args) (domain.Reply, error) {
	seed, err := a.buffer(0, "seed")
	if err != nil {
		return domain.Reply{}, err
	}
	defer memzero.Zero(seed)
	pk, sk, err := crypto.SeedKeypair(seed)
	if err != nil {
		return domain.Reply{}, err
	}
	return keypairReply(pk, sk), nil
}

func sign(a args) (domain.Reply, error) {
	in, err := a.buffers("message", "secretKey")
	if err != nil {
		return domain.Reply{}, err
	}
	defer memzero.Zero(in[1])
	signed, err := crypto.Sign(in[1], in[0])
	if err != nil {
		return domain.Reply{}, err
	}
	return bufferReply(signed), nil
}

func signOpen(a args) (domain.Reply, error) {
	in, err := a.buffers("signedMessage", "publicKey")
	if err != nil {
		return domain.Reply{}, err
	}
	msg, err := crypto.Open(in[0], in[1])
	if err != nil {
		return domain.Reply{}, err
	}
	return bufferReply(msg), nil
}

func signDetached(a args) (domain.Reply, error) {
	in, err := a.buffers("message", "secretKey")
	if err != nil {
		return domain.Reply{}, err
	}
	defer memzero.Zero(in[1])
	sig, err := crypto.SignDetached(in[1], in[0])
	if err != nil {
		return domain.Reply{}, err
	}
	return bufferReply(sig), nil
}

func signVerifyDetached(a args) (domain.Reply, error) {
	in, err := a.buffers("signature", "message", "publicKey")
	if err != nil {
		return domain.Reply{}, err
	}
	return domain.ScalarReply(domain.Bool(crypto.VerifyDetached(in[0], in[1], in[2]))), nil
}

// secretKeyOp adapts a single-secret transform, wiping both the input and the
// output once encoded.
func secretKeyOp(name string, fn func([]byte) ([]byte, error)) func(args) (domain.Reply, error) {
	return func(a args) (domain.Reply, error) {
		in, err := a.buffer(0, name)
		if err != nil {
			return domain.Reply{}, err
		}
		defer memzero.Zero(in)
		out, err := fn(in)
		if err != nil {
			return domain.Reply{}, err
		}
		defer memzero.Zero(out)
		return bufferReply(out), nil
	}
}

func pkToCurve25519(a args) (domain.Reply, error) {
	pk, err := a.buffer(0, "ed25519Pk")
	if err != nil {
		return domain.Reply{}, err
	}
	out, err := crypto.PkToCurve25519(pk)
	if err != nil {
		return domain.Reply{}, err
	}
	return bufferReply(out), nil
}

func scalarmult(a args) (domain.Reply, error) {
	in, err := a.buffers("n", "p")
	if err != nil {
		return domain.Reply{}, err
	}
	defer memzero.Zero(in[0])
	out, err := crypto.ScalarMult(in[0], in[1])
	if err != nil {
		return domain.Reply{}, err
	}
	defer memzero.Zero(out)
	return bufferReply(out), nil
}

func (b *Backend) pwhash(a args) (domain.Reply, error) {
	keyLen, err := a.number(0, "keyLength")
	if err != nil {
		return domain.Reply{}, err
	}
	pw, err := a.buffer(1, "password")
	if err != nil {
		return domain.Reply{}, err
	}
	defer memzero.Zero(pw)
	salt, err := a.buffer(2, "salt")
	if err != nil {
		return domain.Reply{}, err
	}
	ops, err := a.number(3, "opsLimit")
	if err != nil {
		return domain.Reply{}, err
	}
	mem, err := a.number(4, "memLimit")
	if err != nil {
		return domain.Reply{}, err
	}
	if err := b.checkScrypt(crypto.PickParams(ops, mem), keyLen); err != nil {
		return domain.Reply{}, err
	}
	key, err := crypto.Scrypt(pw, salt, ops, mem, int(keyLen))
	if err != nil {
		return domain.Reply{}, err
	}
	defer memzero.Zero(key)
	return bufferReply(key), nil
}

func (b *Backend) pwhashLL(a args) (domain.Reply, error) {
	in, err := a.buffers("password", "salt")
	if err != nil {
		return domain.Reply{}, err
	}
	defer memzero.Zero(in[0])
	var nums [4]uint64
	for i, name := range []string{"opsLimit", "r", "p", "keyLength"} {
		if nums[i], err = a.number(2+i, name); err != nil {
			return domain.Reply{}, err
		}
	}
	params := crypto.ScryptParams{N: nums[0], R: nums[1], P: nums[2]}
	if err := b.checkScrypt(params, nums[3]); err != nil {
		return domain.Reply{}, err
	}
	key, err := crypto.ScryptLL(in[0], in[1], params, int(nums[3]))
	if err != nil {
		return domain.Reply{}, err
	}
	defer memzero.Zero(key)
	return bufferReply(key), nil
}

// checkScrypt rejects work whose memory, output included, exceeds the
// configured ceiling.
func (b *Backend) checkScrypt(p crypto.ScryptParams, keyLen uint64) error {
	mem := p.Memory()
	if mem > b.maxScrypt || keyLen > b.maxScrypt-mem {
		return fmt.Errorf("%w: N=%d r=%d needs more than %d bytes", crypto.ErrParams, p.N, p.R, b.maxScrypt)
	}
	return nil
}
