package store

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
	"sync"
	"time"

	"sodiumbridge/internal/catalog"
	"sodiumbridge/internal/crypto"
)

const (
	keysDir = "keys"
	keyExt  = ".json"
)

var (
	// ErrNotFound is returned for a name with no stored keypair.
	ErrNotFound = errors.New("key not found")
	// ErrExists is returned when saving over an existing name.
	ErrExists = errors.New("key already exists")
	// ErrInvalidName is returned for names that are not safe file names.
	ErrInvalidName = errors.New("key name must match [A-Za-z0-9._-]+")
)

var validName = regexp.MustCompile(`^[A-Za-z0-9._-]+$`)

// Entry is the public part of a stored keypair.
type Entry struct {
	Name        string
	PublicKey   []byte
	Fingerprint string
	Created     time.Time
}

type record struct {
	Name    string   `json:"name"`
	Public  []byte   `json:"pk"`
	Created int64    `json:"created"`
	Secret  envelope `json:"sk"`
}

func (r record) entry() Entry {
	return Entry{
		Name:        r.Name,
		PublicKey:   append([]byte(nil), r.Public...),
		Fingerprint: crypto.Fingerprint(r.Public),
		Created:     time.Unix(r.Created, 0).UTC(),
	}
}

// Keyring persists named Ed25519 keypairs under a home directory.
type Keyring struct {
	dir string
	mu  sync.Mutex
}

// NewKeyring returns a Keyring rooted at home. The directory is created on
// first save.
func NewKeyring(home string) *Keyring {
	return &Keyring{dir: filepath.Join(home, keysDir)}
}

func (k *Keyring) path(name string) (string, error) {
	if !validName.MatchString(name) || strings.Trim(name, ".") == "" {
		return "", ErrInvalidName
	}
	return filepath.Join(k.dir, name+keyExt), nil
}

// Save seals sk under passphrase and stores it with pk as name.
func (k *Keyring) Save(name string, pk, sk []byte, passphrase string) error {
	if len(pk) != catalog.SignPublicKeyBytes || len(sk) != catalog.SignSecretKeyBytes {
		return fmt.Errorf("save %s: %w", name, crypto.ErrSize)
	}
	if passphrase == "" {
		return errors.New("passphrase required")
	}
	path, err := k.path(name)
	if err != nil {
		return err
	}

	k.mu.Lock()
	defer k.mu.Unlock()

	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("save %s: %w", name, ErrExists)
	}
	if err := os.MkdirAll(k.dir, 0o700); err != nil {
		return err
	}

	N, r, p := scryptParamsDefault()
	env, err := seal(passphrase, sk, pk, N, r, p)
	if err != nil {
		return err
	}
	rec := record{Name: name, Public: append([]byte(nil), pk...), Created: time.Now().Unix(), Secret: env}
	return writeJSON(path, rec, 0o600)
}

func (k *Keyring) load(name string) (record, error) {
	path, err := k.path(name)
	if err != nil {
		return record{}, err
	}
	var rec record
	found, err := readJSON(path, &rec)
	if err != nil {
		return record{}, fmt.Errorf("load %s: %w", name, err)
	}
	if !found {
		return record{}, fmt.Errorf("load %s: %w", name, ErrNotFound)
	}
	return rec, nil
}

// Get returns the public part of name without needing the passphrase.
func (k *Keyring) Get(name string) (Entry, error) {
	k.mu.Lock()
	defer k.mu.Unlock()

	rec, err := k.load(name)
	if err != nil {
		return Entry{}, err
	}
	return rec.entry(), nil
}

// SecretKey unseals the 64-byte secret key of name.
func (k *Keyring) SecretKey(name, passphrase string) ([]byte, error) {
	k.mu.Lock()
	defer k.mu.Unlock()

	rec, err := k.load(name)
	if err != nil {
		return nil, err
	}
	return open(passphrase, rec.Secret, rec.Public)
}

// List returns every stored keypair sorted by name.
func (k *Keyring) List() ([]Entry, error) {
	k.mu.Lock()
	defer k.mu.Unlock()

	files, err := filepath.Glob(filepath.Join(k.dir, "*"+keyExt))
	if err != nil {
		return nil, err
	}
	out := make([]Entry, 0, len(files))
	for _, f := range files {
		rec, err := k.load(strings.TrimSuffix(filepath.Base(f), keyExt))
		if err != nil {
			return nil, err
		}
		out = append(out, rec.entry())
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

// Delete removes name.
func (k *Keyring) Delete(name string) error {
	path, err := k.path(name)
	if err != nil {
		return err
	}

	k.mu.Lock()
	defer k.mu.Unlock()

	if err := os.Remove(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("delete %s: %w", name, ErrNotFound)
		}
		return err
	}
	return nil
}
