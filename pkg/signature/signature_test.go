package signature

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func hexProfile(secret string) Profile {
	return Profile{Header: "X-Hub-Signature", Encoding: EncodingHex, Secret: []byte(secret)}
}

func base64Profile(secret string) Profile {
	return Profile{Header: "X-Shopify-Hmac-Sha256", Encoding: EncodingBase64, Secret: []byte(secret)}
}

func TestVerify(t *testing.T) {
	body := []byte(`{"id":"evt_1","type":"charge.dispute.created"}`)

	t.Run("accepts valid hex signature", func(t *testing.T) {
		p := hexProfile("secret-a")
		sig := p.Sign(body)

		assert.True(t, p.Verify(body, sig))
	})

	t.Run("accepts valid base64 signature", func(t *testing.T) {
		p := base64Profile("secret-b")
		sig := p.Sign(body)

		assert.True(t, p.Verify(body, sig))
	})

	t.Run("rejects altered body with unaltered signature", func(t *testing.T) {
		p := hexProfile("secret-a")
		sig := p.Sign(body)

		// a single trailing whitespace must invalidate the signature
		altered := append(append([]byte{}, body...), ' ')

		assert.False(t, p.Verify(altered, sig))
	})

	t.Run("rejects correct signature in wrong encoding", func(t *testing.T) {
		hexP := hexProfile("shared")
		b64P := base64Profile("shared")

		// digest computed under the other source's encoding convention
		assert.False(t, hexP.Verify(body, b64P.Sign(body)))
		assert.False(t, b64P.Verify(body, hexP.Sign(body)))
	})

	t.Run("rejects missing signature header", func(t *testing.T) {
		p := hexProfile("secret-a")

		assert.False(t, p.Verify(body, ""))
	})

	t.Run("rejects missing secret", func(t *testing.T) {
		signed := hexProfile("secret-a")
		sig := signed.Sign(body)

		unconfigured := Profile{Header: signed.Header, Encoding: EncodingHex}

		assert.False(t, unconfigured.Verify(body, sig))
	})

	t.Run("rejects undecodable digest", func(t *testing.T) {
		assert.False(t, hexProfile("secret-a").Verify(body, "not-hex-at-all"))
		assert.False(t, base64Profile("secret-b").Verify(body, "%%%"))
	})

	t.Run("rejects signature made with wrong secret", func(t *testing.T) {
		sig := hexProfile("wrong").Sign(body)

		assert.False(t, hexProfile("right").Verify(body, sig))
	})

	t.Run("rejects unknown encoding", func(t *testing.T) {
		p := Profile{Header: "X-Sig", Encoding: Encoding("rot13"), Secret: []byte("s")}

		assert.False(t, p.Verify(body, "anything"))
	})
}

func TestSignRoundTrip(t *testing.T) {
	p := base64Profile("s3cr3t")

	sig := p.Sign([]byte("payload"))
	require.NotEmpty(t, sig)
	assert.True(t, p.Verify([]byte("payload"), sig))
	assert.False(t, p.Verify([]byte("payload2"), sig))
}
