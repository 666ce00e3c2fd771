package go_cipher

import (
	"testing"
)

// TestParseVersion verifies segment parsing including malformed and
// missing segments defaulting to zero.
func TestParseVersion(t *testing.T) {
	tests := []struct {
		name                           string
		input                          string
		major, minor, micro, qualifier uint16
	}{
		{
			name:  "standard version",
			input: "0.3.2",
			major: 0, minor: 3, micro: 2, qualifier: 0,
		},
		{
			name:  "two digit minor",
			input: "2.10.0",
			major: 2, minor: 10, micro: 0, qualifier: 0,
		},
		{
			name:  "with qualifier",
			input: "1.2.3.4",
			major: 1, minor: 2, micro: 3, qualifier: 4,
		},
		{
			name:  "missing micro",
			input: "0.3",
			major: 0, minor: 3, micro: 0, qualifier: 0,
		},
		{
			name:  "garbage micro defaults to zero",
			input: "0.3.garbage",
			major: 0, minor: 3, micro: 0, qualifier: 0,
		},
		{
			name:  "empty string",
			input: "",
			major: 0, minor: 0, micro: 0, qualifier: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := ParseVersion(tt.input)
			if v.major != tt.major || v.minor != tt.minor || v.micro != tt.micro || v.qualifier != tt.qualifier {
				t.Errorf("ParseVersion(%q) = {%d %d %d %d}, want {%d %d %d %d}",
					tt.input, v.major, v.minor, v.micro, v.qualifier,
					tt.major, tt.minor, tt.micro, tt.qualifier)
			}
			if got := v.String(); got != tt.input {
				t.Errorf("String() = %q, want the original %q", got, tt.input)
			}
		})
	}
}

// TestLibVersion verifies the library reports its own version constant.
func TestLibVersion(t *testing.T) {
	v := LibVersion()
	if v.String() != CIPHER_LIB_VERSION {
		t.Errorf("LibVersion().String() = %q, want %q", v.String(), CIPHER_LIB_VERSION)
	}
}

// TestVersionCompare tests the three way comparison across all segments.
func TestVersionCompare(t *testing.T) {
	tests := []struct {
		name     string
		v        string
		other    string
		expected int
	}{
		{
			name:     "equal versions",
			v:        "0.9.43",
			other:    "0.9.43",
			expected: 0,
		},
		{
			name:     "greater major",
			v:        "1.0.0",
			other:    "0.9.99",
			expected: 1,
		},
		{
			name:     "greater minor",
			v:        "0.10.0",
			other:    "0.9.99",
			expected: 1,
		},
		{
			name:     "greater micro",
			v:        "0.9.44",
			other:    "0.9.43",
			expected: 1,
		},
		{
			name:     "greater qualifier",
			v:        "0.9.43.1",
			other:    "0.9.43",
			expected: 1,
		},
		{
			name:     "less micro",
			v:        "0.9.42",
			other:    "0.9.43",
			expected: -1,
		},
		{
			name:     "less minor with larger micro",
			v:        "0.8.99",
			other:    "0.9.0",
			expected: -1,
		},
		{
			name:     "missing segments compare as zero",
			v:        "0.9",
			other:    "0.9.0",
			expected: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ParseVersion(tt.v).Compare(ParseVersion(tt.other)); got != tt.expected {
				t.Errorf("ParseVersion(%q).Compare(ParseVersion(%q)) = %d, want %d",
					tt.v, tt.other, got, tt.expected)
			}
		})
	}
}

// TestVersionAtLeast tests the AtLeast method for version gating.
func TestVersionAtLeast(t *testing.T) {
	tests := []struct {
		name     string
		v        string
		other    string
		expected bool
	}{
		{
			name:     "equal versions",
			v:        "0.9.43",
			other:    "0.9.43",
			expected: true,
		},
		{
			name:     "newer micro",
			v:        "0.9.44",
			other:    "0.9.43",
			expected: true,
		},
		{
			name:     "newer major beats older minor",
			v:        "1.0.0",
			other:    "0.9.99",
			expected: true,
		},
		{
			name:     "older micro",
			v:        "0.9.42",
			other:    "0.9.43",
			expected: false,
		},
		{
			name:     "older minor with larger micro",
			v:        "0.8.99",
			other:    "0.9.0",
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ParseVersion(tt.v).AtLeast(ParseVersion(tt.other)); got != tt.expected {
				t.Errorf("ParseVersion(%q).AtLeast(ParseVersion(%q)) = %v, want %v",
					tt.v, tt.other, got, tt.expected)
			}
		})
	}
}
