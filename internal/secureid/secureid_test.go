package secureid

import (
	"net/url"
	"strings"
	"testing"
)

func TestEncodeDecode_RoundTrip(t *testing.T) {
	c := New("test-secret")

	ids := []int64{1, 2, 42, 999, 1 << 31, 1<<62 + 7}
	for _, id := range ids {
		token := c.Encode(id)
		got, ok := c.Decode(token)
		if !ok {
			t.Fatalf("Decode(Encode(%d)): not ok", id)
		}
		if got != id {
			t.Errorf("Decode(Encode(%d)) = %d", id, got)
		}
	}
}

func TestEncode_Deterministic(t *testing.T) {
	c := New("test-secret")

	a := c.Encode(123)
	b := c.Encode(123)
	if a != b {
		t.Errorf("Encode(123) not stable: %q vs %q", a, b)
	}

	// Codecs built from the same secret mint identical tokens.
	if other := New("test-secret").Encode(123); other != a {
		t.Errorf("same secret, different token: %q vs %q", other, a)
	}
}

func TestDecode_RejectsGarbage(t *testing.T) {
	c := New("test-secret")

	inputs := []string{
		"",
		"not-a-token",
		"!!!%%%",
		"YWJjZGVm", // valid base64, not a ciphertext
		strings.Repeat("A", 500),
	}
	for _, in := range inputs {
		if id, ok := c.Decode(in); ok {
			t.Errorf("Decode(%q) = (%d, true), want not ok", in, id)
		}
	}
}

func TestDecode_RejectsForeignSecret(t *testing.T) {
	token := New("secret-one").Encode(7)

	if id, ok := New("secret-two").Decode(token); ok {
		t.Errorf("token minted under another secret decoded to %d", id)
	}
}

func TestDecode_RejectsTamperedToken(t *testing.T) {
	c := New("test-secret")
	token := c.Encode(55)

	// Flip a character somewhere past the nonce.
	b := []byte(token)
	i := len(b) / 2
	if b[i] == 'A' {
		b[i] = 'B'
	} else {
		b[i] = 'A'
	}
	if id, ok := c.Decode(string(b)); ok {
		t.Errorf("tampered token decoded to %d", id)
	}
}

func TestToken_IsURLSafe(t *testing.T) {
	c := New("test-secret")
	token := c.Encode(987654)

	// A token must survive URL escaping unchanged so it can be embedded
	// in a path segment or query parameter as-is.
	if escaped := url.PathEscape(token); escaped != token {
		t.Errorf("token changed by path escaping: %q -> %q", token, escaped)
	}
	if escaped := url.QueryEscape(token); escaped != token {
		t.Errorf("token changed by query escaping: %q -> %q", token, escaped)
	}
}

func TestDecode_RejectsNonPositiveIDs(t *testing.T) {
	c := New("test-secret")

	for _, id := range []int64{0, -1, -99} {
		if got, ok := c.Decode(c.Encode(id)); ok {
			t.Errorf("Decode accepted non-positive id %d (got %d)", id, got)
		}
	}
}
