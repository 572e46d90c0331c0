// Package signature verifies webhook authenticity with HMAC-SHA256.
//
// Each webhook source signs the raw request body with a pre-shared secret
// but differs in digest encoding and header name: the payment gateway
// sends a hex digest in X-Hub-Signature, the e-commerce platform a base64
// digest in X-Shopify-Hmac-Sha256. Both conventions live in a Profile so
// call sites stay uniform.
//
// Verification always runs over the exact raw bytes received on the wire.
// Parsing and re-serializing before verifying would break the signature
// whenever whitespace or key order differs.
package signature

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
)

// Encoding is the digest encoding a source uses.
type Encoding string

const (
	EncodingHex    Encoding = "hex"
	EncodingBase64 Encoding = "base64"
)

// Profile describes one webhook source's signing convention.
type Profile struct {
	// Header is the HTTP header the source sends the signature in.
	Header string
	// Encoding is how the source encodes the HMAC digest.
	Encoding Encoding
	// Secret is the pre-shared webhook secret.
	Secret []byte
}

// Verify reports whether signatureHeader is a valid HMAC-SHA256 of body
// under the profile's secret and encoding. It fails closed: a missing
// secret, empty signature, unknown encoding or undecodable digest all
// yield false. The comparison is constant-time.
func (p Profile) Verify(body []byte, signatureHeader string) bool {
	if len(p.Secret) == 0 || signatureHeader == "" {
		return false
	}

	provided, err := p.decode(signatureHeader)
	if err != nil {
		return false
	}

	mac := hmac.New(sha256.New, p.Secret)
	mac.Write(body)
	expected := mac.Sum(nil)

	return hmac.Equal(expected, provided)
}

func (p Profile) decode(s string) ([]byte, error) {
	switch p.Encoding {
	case EncodingHex:
		return hex.DecodeString(s)
	case EncodingBase64:
		return base64.StdEncoding.DecodeString(s)
	default:
		return nil, errUnknownEncoding
	}
}

type encodingError string

func (e encodingError) Error() string { return string(e) }

const errUnknownEncoding = encodingError("unknown signature encoding")

// Sign computes the encoded HMAC-SHA256 of body. Used by tests and the
// local webhook replay tooling.
func (p Profile) Sign(body []byte) string {
	mac := hmac.New(sha256.New, p.Secret)
	mac.Write(body)
	sum := mac.Sum(nil)

	switch p.Encoding {
	case EncodingBase64:
		return base64.StdEncoding.EncodeToString(sum)
	default:
		return hex.EncodeToString(sum)
	}
}
