package mpkc

import (
	"crypto/rand"
	"io"

	"gopkg.in/op/go-logging.v1"

	"mpkc/goppa"
)

var log = logging.MustGetLogger("mpkc")

// GenerateKeyPair produces a fresh key pair under the given parameters: a
// random irreducible Goppa polynomial of degree T, a random support
// permutation yielding systematic form, and the derived public generator
// matrix. A nil rng selects crypto/rand.
func GenerateKeyPair(params *Parameters, rng io.Reader) (*PublicKey, *PrivateKey, error) {
	if rng == nil {
		rng = rand.Reader
	}
	field, err := params.Field()
	if err != nil {
		return nil, nil, err
	}
	code, err := goppa.Generate(field, params.T(), rng)
	if err != nil {
		return nil, nil, err
	}
	log.Debugf("generated key pair %s (n=%d, k=%d)", params, params.N(), params.K())
	priv := &PrivateKey{params: params, code: code}
	return priv.Public(), priv, nil
}
