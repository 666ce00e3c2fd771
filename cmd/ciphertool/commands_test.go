package main

import (
	"bytes"
	"encoding/hex"
	"encoding/json"
	"strings"
	"testing"

	cipher "github.com/go-i2p/go-cipher"
)

func TestRunListText(t *testing.T) {
	var buf bytes.Buffer
	if err := runList("text", &buf); err != nil {
		t.Fatalf("runList failed: %v", err)
	}

	out := buf.String()
	for _, want := range []string{"xxtea", "aes-256-cbc", "chacha20-ietf", "aes-256-gcm"} {
		if !strings.Contains(out, want) {
			t.Errorf("list output missing %q", want)
		}
	}
}

func TestRunListJSON(t *testing.T) {
	var buf bytes.Buffer
	if err := runList("json", &buf); err != nil {
		t.Fatalf("runList failed: %v", err)
	}

	var names []string
	if err := json.Unmarshal(buf.Bytes(), &names); err != nil {
		t.Fatalf("list JSON output did not parse: %v", err)
	}
	if len(names) == 0 {
		t.Error("expected at least one algorithm in JSON output")
	}
}

func TestRunInfo(t *testing.T) {
	var buf bytes.Buffer
	if err := runInfo("aes-256-gcm", "json", &buf); err != nil {
		t.Fatalf("runInfo failed: %v", err)
	}

	var details algorithmDetails
	if err := json.Unmarshal(buf.Bytes(), &details); err != nil {
		t.Fatalf("info JSON output did not parse: %v", err)
	}
	if !details.Available {
		t.Error("expected aes-256-gcm to be available")
	}
	if !details.AEAD {
		t.Error("expected aes-256-gcm to be flagged AEAD")
	}
	if details.KeyBits != 256 {
		t.Errorf("expected 256 key bits, got %d", details.KeyBits)
	}

	if err := runInfo("no-such-cipher", "text", &buf); err == nil {
		t.Error("expected an error for an unknown algorithm")
	}
}

func TestRunKeygen(t *testing.T) {
	var buf bytes.Buffer
	if err := runKeygen("aes-256-cbc", "hex", &buf); err != nil {
		t.Fatalf("runKeygen failed: %v", err)
	}

	key, err := hex.DecodeString(strings.TrimSpace(buf.String()))
	if err != nil {
		t.Fatalf("keygen output is not hex: %v", err)
	}
	if len(key) != 32 {
		t.Errorf("expected a 32-byte key, got %d bytes", len(key))
	}
}

func TestRunIVGenWithoutIV(t *testing.T) {
	var buf bytes.Buffer
	if err := runIVGen("rc4", "hex", &buf); err != nil {
		t.Fatalf("runIVGen failed: %v", err)
	}
	if strings.TrimSpace(buf.String()) != "" {
		t.Errorf("expected empty IV output for rc4, got %q", buf.String())
	}
}

func TestRunDeriveKeyDeterministic(t *testing.T) {
	var first, second bytes.Buffer
	salt := []byte{0x01, 0x02, 0x03, 0x04}

	if err := runDeriveKey("aes-256-gcm", "hex", "correct horse", salt, &first); err != nil {
		t.Fatalf("runDeriveKey failed: %v", err)
	}
	if err := runDeriveKey("aes-256-gcm", "hex", "correct horse", salt, &second); err != nil {
		t.Fatalf("runDeriveKey failed: %v", err)
	}

	if first.String() != second.String() {
		t.Error("derived keys differ for identical inputs")
	}
	if err := runDeriveKey("aes-256-gcm", "hex", "", salt, &first); err == nil {
		t.Error("expected an error for an empty passphrase")
	}
}

func TestFirstAvailable(t *testing.T) {
	tests := []struct {
		list string
		want string
	}{
		{"aes-256-gcm", "aes-256-gcm"},
		{"chacha20-poly1305-ietf;aes-256-gcm", "chacha20-poly1305-ietf"},
		// chacha20-poly1305 is registered but has no backend; the list
		// falls through to the next name.
		{"chacha20-poly1305, aes-256-gcm", "aes-256-gcm"},
		// Nothing available: the first entry is reported unchanged.
		{"no-such-cipher;also-missing", "no-such-cipher"},
		{"", ""},
	}

	for _, tt := range tests {
		if got := firstAvailable(tt.list); got != tt.want {
			t.Errorf("firstAvailable(%q) = %q, want %q", tt.list, got, tt.want)
		}
	}
}

func TestEncodeBytes(t *testing.T) {
	data := []byte{0xde, 0xad, 0xbe, 0xef}

	out, err := encodeBytes("hex", data)
	if err != nil || out != "deadbeef" {
		t.Errorf("hex encoding produced (%q, %v)", out, err)
	}

	out, err = encodeBytes("base64", data)
	if err != nil || out != "3q2+7w==" {
		t.Errorf("base64 encoding produced (%q, %v)", out, err)
	}

	if _, err := encodeBytes("rot13", data); err == nil {
		t.Error("expected an error for an invalid encoding")
	}
}

func TestRunVersion(t *testing.T) {
	var buf bytes.Buffer
	if err := runVersion("", &buf); err != nil {
		t.Fatalf("runVersion failed: %v", err)
	}
	if strings.TrimSpace(buf.String()) != cipher.CIPHER_LIB_VERSION {
		t.Errorf("expected version %s, got %q", cipher.CIPHER_LIB_VERSION, buf.String())
	}

	if err := runVersion("0.1.0", &buf); err != nil {
		t.Errorf("expected the minimum version check to pass: %v", err)
	}
	if err := runVersion("99.0.0", &buf); err == nil {
		t.Error("expected the minimum version check to fail")
	}
}

func TestTransformAEADRoundTrip(t *testing.T) {
	key := bytes.Repeat([]byte{0x42}, 32)
	nonce := bytes.Repeat([]byte{0x24}, 12)
	plaintext := []byte("file contents to protect")
	aad := []byte("header")

	enc := cipher.NewCipher()
	if err := enc.Init("aes-256-gcm", cipher.CIPHER_MODE_ENCRYPT); err != nil {
		t.Fatalf("encrypt init failed: %v", err)
	}
	defer enc.Close()
	if err := enc.SetKeyBytes(key); err != nil {
		t.Fatalf("encrypt SetKeyBytes failed: %v", err)
	}
	if err := enc.SetIV(nonce); err != nil {
		t.Fatalf("encrypt SetIV failed: %v", err)
	}

	sealed, err := transformAEAD(enc, cipher.CIPHER_MODE_ENCRYPT, plaintext, aad)
	if err != nil {
		t.Fatalf("transformAEAD encrypt failed: %v", err)
	}
	if len(sealed) != len(plaintext)+cipher.STREAM_TAG_SIZE {
		t.Errorf("expected %d sealed bytes, got %d", len(plaintext)+cipher.STREAM_TAG_SIZE, len(sealed))
	}

	dec := cipher.NewCipher()
	if err := dec.Init("aes-256-gcm", cipher.CIPHER_MODE_DECRYPT); err != nil {
		t.Fatalf("decrypt init failed: %v", err)
	}
	defer dec.Close()
	if err := dec.SetKeyBytes(key); err != nil {
		t.Fatalf("decrypt SetKeyBytes failed: %v", err)
	}
	if err := dec.SetIV(nonce); err != nil {
		t.Fatalf("decrypt SetIV failed: %v", err)
	}

	opened, err := transformAEAD(dec, cipher.CIPHER_MODE_DECRYPT, sealed, aad)
	if err != nil {
		t.Fatalf("transformAEAD decrypt failed: %v", err)
	}
	if !bytes.Equal(opened, plaintext) {
		t.Errorf("round trip mismatch: got %q, want %q", opened, plaintext)
	}

	if _, err := transformAEAD(dec, cipher.CIPHER_MODE_DECRYPT, sealed[:cipher.STREAM_TAG_SIZE-1], aad); err == nil {
		t.Error("expected an error for input shorter than the tag")
	}
}
