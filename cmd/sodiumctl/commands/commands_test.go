package commands

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("SODIUMBRIDGE_LOG_LEVEL", "disabled")
	root := newRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func fields(t *testing.T, out string) map[string]string {
	t.Helper()
	m := map[string]string{}
	for _, line := range strings.Split(strings.TrimSpace(out), "\n") {
		name, val, ok := strings.Cut(line, ": ")
		require.True(t, ok, line)
		m[name] = val
	}
	return m
}

func TestSecretboxSealOpenText(t *testing.T) {
	nonce := strings.Repeat("01", 24)
	key := strings.Repeat("02", 32)

	sealed, err := execute(t, "secretbox", "seal", "--text", nonce, key, "héllo")
	require.NoError(t, err)
	sealed = strings.TrimSpace(sealed)
	require.Len(t, sealed, 2*(16+len("héllo")))

	opened, err := execute(t, "secretbox", "open", "--text", sealed, nonce, key)
	require.NoError(t, err)
	require.Equal(t, "héllo\n", opened)

	_, err = execute(t, "secretbox", "open", sealed, nonce, strings.Repeat("03", 32))
	require.EqualError(t, err, "decryption failed")
}

func TestSignKeypairSignVerify(t *testing.T) {
	out, err := execute(t, "sign", "seed-keypair", strings.Repeat("00", 32))
	require.NoError(t, err)
	kp := fields(t, out)
	require.Equal(t, "3b6a27bcceb6a42d62a3a8d02a6f0d73653215771de243a63ac048a18b59da29", kp["pk"])
	require.Len(t, kp["sk"], 128)
	require.Len(t, kp["fingerprint"], 20)

	sig, err := execute(t, "sign", "detached", "--text", kp["sk"], "msg")
	require.NoError(t, err)
	sig = strings.TrimSpace(sig)

	out, err = execute(t, "sign", "verify", "--text", sig, kp["pk"], "msg")
	require.NoError(t, err)
	require.Equal(t, "true\n", out)

	_, err = execute(t, "sign", "verify", "--text", sig, kp["pk"], "tampered")
	require.EqualError(t, err, "signature does not verify")

	signed, err := execute(t, "sign", "sign", "--text", kp["sk"], "msg")
	require.NoError(t, err)
	out, err = execute(t, "sign", "open", "--text", strings.TrimSpace(signed), kp["pk"])
	require.NoError(t, err)
	require.Equal(t, "msg\n", out)

	out, err = execute(t, "sign", "sk-to-pk", kp["sk"])
	require.NoError(t, err)
	require.Equal(t, kp["pk"]+"\n", out)
}

func TestSignValidationSurfaces(t *testing.T) {
	_, err := execute(t, "sign", "sk-to-pk", "abcd")
	require.EqualError(t, err, "secretKey must be 64 bytes long")
}

func TestScalarmultBase(t *testing.T) {
	out, err := execute(t, "scalarmult", "77076d0a7318a57d3c16c17251b26645df4c2f87ebc0992ab177fba51db92c2a")
	require.NoError(t, err)
	require.Equal(t, "8520f0098930a754748b7ddcb43ef75a0dbf3a0d26381af4eba4a98eaa9b4e6a\n", out)
}

func TestHexAndText(t *testing.T) {
	out, err := execute(t, "hex", "encode", "hi")
	require.NoError(t, err)
	require.Equal(t, "6869\n", out)

	out, err = execute(t, "hex", "decode", "6869")
	require.NoError(t, err)
	require.Equal(t, "hi", out)

	out, err = execute(t, "text", "encode", "€")
	require.NoError(t, err)
	require.Equal(t, "e282ac\n", out)

	out, err = execute(t, "text", "decode", "--manual", "--chunk-size", "4", "41e282ac42")
	require.NoError(t, err)
	require.Equal(t, "A€B\n", out)

	_, err = execute(t, "text", "decode", "e282")
	require.Error(t, err)

	_, err = execute(t, "hex", "decode", "xyz")
	require.EqualError(t, err, "the provided string doesn't look like hex data")
}

func TestPwhashLL(t *testing.T) {
	// RFC 7914 section 12, second vector.
	out, err := execute(t, "pwhash", "--ll", "--text", "--ops", "1024", "--r", "8", "--p", "16",
		"--key-length", "64", "password", "4e61436c")
	require.NoError(t, err)
	require.Equal(t, "fdbabe1c9d3472007856e7190d01e9fe7c6ad7cbc8237830e77376634b373162"+
		"2eaf30d92e22a3886ff109279d9830dac727afb94a83ee6d8360cbdfa2cc0640\n", out)
}

func TestUnknownBackendFlag(t *testing.T) {
	_, err := execute(t, "--backend", "pigeon", "hex", "encode", "x")
	require.ErrorContains(t, err, "Config.Backend")
}

func TestKeysSaveShowExport(t *testing.T) {
	t.Setenv("SODIUMBRIDGE_HOME", t.TempDir())
	seed := strings.Repeat("11", 32)

	_, err := execute(t, "sign", "seed-keypair", "--save", "work", seed)
	require.ErrorContains(t, err, "passphrase required")

	out, err := execute(t, "-p", "hunter2", "sign", "seed-keypair", "--save", "work", seed)
	require.NoError(t, err)
	kp := fields(t, out)

	out, err = execute(t, "keys", "show", "work")
	require.NoError(t, err)
	shown := fields(t, out)
	require.Equal(t, kp["pk"], shown["pk"])
	require.Equal(t, kp["fingerprint"], shown["fingerprint"])

	out, err = execute(t, "keys", "list")
	require.NoError(t, err)
	require.Equal(t, "work\t"+kp["fingerprint"]+"\n", out)

	t.Setenv(EnvPassphrase, "hunter2")
	out, err = execute(t, "keys", "export", "work")
	require.NoError(t, err)
	require.Equal(t, kp["sk"]+"\n", out)

	_, err = execute(t, "-p", "wrong", "keys", "export", "work")
	require.EqualError(t, err, "wrong passphrase or corrupted key")

	_, err = execute(t, "keys", "delete", "work")
	require.NoError(t, err)
	_, err = execute(t, "keys", "show", "work")
	require.ErrorContains(t, err, "key not found")
}
