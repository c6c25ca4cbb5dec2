package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"strings"
)

// Key kinds. Every key built by a keyer in this package starts with one of
// them, after the optional scope prefix.
const (
	KindScene    = "scene"
	KindArtifact = "artifact"
	KindOther    = "other"
)

// DefaultKeyer builds keys of the form "kind:sha256(inputs)".
type DefaultKeyer struct{}

// NewDefaultKeyer returns the standard keyer.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

// SceneKey implements Keyer.
func (DefaultKeyer) SceneKey(tableHash string, opts SceneKeyOpts) string {
	return kindKey(KindScene, tableHash, opts)
}

// ArtifactKey implements Keyer.
func (DefaultKeyer) ArtifactKey(sceneHash string, opts ArtifactKeyOpts) string {
	return kindKey(KindArtifact, sceneHash, opts)
}

// ScopedKeyer prefixes the keys of another Keyer so several deployments
// can share one Redis database.
//
//	keyer := NewScopedKeyer(nil, "stackbar:v1:")
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer wraps inner, or DefaultKeyer when inner is nil.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{inner: inner, prefix: prefix}
}

func (k *ScopedKeyer) SceneKey(tableHash string, opts SceneKeyOpts) string {
	return k.prefix + k.inner.SceneKey(tableHash, opts)
}

func (k *ScopedKeyer) ArtifactKey(sceneHash string, opts ArtifactKeyOpts) string {
	return k.prefix + k.inner.ArtifactKey(sceneHash, opts)
}

// KeyType returns the kind of a key, ignoring any scope prefix. Keys not
// built by this package report KindOther.
func KeyType(key string) string {
	for _, kind := range []string{KindScene, KindArtifact} {
		if strings.HasPrefix(key, kind+":") || strings.Contains(key, ":"+kind+":") {
			return kind
		}
	}
	return KindOther
}

// kindKey hashes the JSON encoding of parts under a kind prefix. The full
// 256-bit digest is kept.
func kindKey(kind string, parts ...any) string {
	data, _ := json.Marshal(parts)
	return kind + ":" + Hash(data)
}

// Hash returns the hex SHA-256 digest of data.
func Hash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// HashJSON hashes the JSON encoding of v. Values that cannot be encoded
// hash as their error text so the result is still stable.
func HashJSON(v any) string {
	data, err := json.Marshal(v)
	if err != nil {
		return Hash([]byte(err.Error()))
	}
	return Hash(data)
}
