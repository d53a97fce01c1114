// Package apikey verifies machine-client API keys. Keys are never stored in
// clear text: configuration carries a bcrypt hash per client ID and the
// checker compares the presented key against it.
package apikey

import "golang.org/x/crypto/bcrypt"

// Checker verifies presented API keys against configured bcrypt hashes.
type Checker struct {
	hashes map[string]string // client ID -> bcrypt hash
}

// New creates a checker from a clientID->hash map, typically from config.
func New(clients map[string]string) *Checker {
	return &Checker{hashes: clients}
}

// Verify reports whether the presented key matches the configured hash for
// the client. Unknown clients always fail.
func (c *Checker) Verify(clientID, key string) bool {
	hash, ok := c.hashes[clientID]
	if !ok {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(key)) == nil
}

// HashKey produces a bcrypt hash suitable for the api_clients config map.
// Used by provisioning tooling, not by the request path.
func HashKey(key string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(key), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}
