package yin

import "testing"

func TestValidateIdentifier(t *testing.T) {
	cases := []struct {
		name string
		in   string
		ok   bool
	}{
		{"simple", "foo", true},
		{"underscore-start", "_foo", true},
		{"hyphen-and-dot", "foo-bar.baz", true},
		{"digit-start", "1foo", false},
		{"empty", "", false},
		{"colon", "foo:bar", false},
	}
	for _, tt := range cases {
		t.Run(tt.name, func(t *testing.T) {
			err := validateIdentifier(tt.in)
			if (err == nil) != tt.ok {
				t.Errorf("validateIdentifier(%q) error = %v, want ok=%v", tt.in, err, tt.ok)
			}
		})
	}
}

func TestValidatePrefixedIdentifier(t *testing.T) {
	cases := []struct {
		name string
		in   string
		ok   bool
	}{
		{"unprefixed", "foo", true},
		{"prefixed", "pfx:foo", true},
		{"two-colons", "a:b:c", false},
		{"empty-prefix", ":foo", false},
	}
	for _, tt := range cases {
		t.Run(tt.name, func(t *testing.T) {
			err := validatePrefixedIdentifier(tt.in)
			if (err == nil) != tt.ok {
				t.Errorf("validatePrefixedIdentifier(%q) error = %v, want ok=%v", tt.in, err, tt.ok)
			}
		})
	}
}

func TestParseStrictInt32(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want int32
		ok   bool
	}{
		{"zero", "0", 0, true},
		{"positive", "42", 42, true},
		{"negative", "-7", -7, true},
		{"leading-plus", "+1", 0, false},
		{"leading-zero", "01", 0, false},
		{"negative-leading-zero", "-01", 0, false},
		{"empty", "", 0, false},
		{"max", "2147483647", 2147483647, true},
		{"overflow", "2147483648", 0, false},
	}
	for _, tt := range cases {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseStrictInt32(tt.in)
			if (err == nil) != tt.ok {
				t.Fatalf("parseStrictInt32(%q) error = %v, want ok=%v", tt.in, err, tt.ok)
			}
			if tt.ok && got != tt.want {
				t.Errorf("parseStrictInt32(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestParseStrictUint32(t *testing.T) {
	cases := []struct {
		name string
		in   string
		ok   bool
	}{
		{"zero", "0", true},
		{"positive", "12", true},
		{"leading-zero", "01", false},
		{"leading-plus", "+1", false},
		{"negative", "-1", false},
		{"empty", "", false},
	}
	for _, tt := range cases {
		t.Run(tt.name, func(t *testing.T) {
			_, err := parseStrictUint32(tt.in)
			if (err == nil) != tt.ok {
				t.Errorf("parseStrictUint32(%q) error = %v, want ok=%v", tt.in, err, tt.ok)
			}
		})
	}
}

func TestParseFractionDigits(t *testing.T) {
	cases := []struct {
		name string
		in   string
		ok   bool
	}{
		{"min", "1", true},
		{"max", "18", true},
		{"zero", "0", false},
		{"over-max", "19", false},
		{"leading-zero", "01", false},
		{"empty", "", false},
	}
	for _, tt := range cases {
		t.Run(tt.name, func(t *testing.T) {
			_, err := parseFractionDigits(tt.in)
			if (err == nil) != tt.ok {
				t.Errorf("parseFractionDigits(%q) error = %v, want ok=%v", tt.in, err, tt.ok)
			}
		})
	}
}

func TestParseUnboundedUint(t *testing.T) {
	v, unbounded, err := parseUnboundedUint("unbounded", true)
	if err != nil || !unbounded {
		t.Fatalf("expected unbounded, got v=%v unbounded=%v err=%v", v, unbounded, err)
	}
	if _, _, err := parseUnboundedUint("unbounded", false); err == nil {
		t.Error("expected error: unbounded not allowed here")
	}
	if _, _, err := parseUnboundedUint("unboundedX", true); err == nil {
		t.Error("expected error: not exactly 'unbounded'")
	}
	v, unbounded, err = parseUnboundedUint("5", true)
	if err != nil || unbounded || v != 5 {
		t.Fatalf("parseUnboundedUint(5) = %v, %v, %v", v, unbounded, err)
	}
}

func TestParseDate(t *testing.T) {
	cases := []struct {
		name string
		in   string
		ok   bool
	}{
		{"ordinary", "2023-05-17", true},
		{"leap-day", "2024-02-29", true},
		{"non-leap-feb-29", "2023-02-29", false},
		{"century-non-leap", "1900-02-29", false},
		{"400-leap", "2000-02-29", true},
		{"month-13", "2023-13-01", false},
		{"bad-format", "2023/05/17", false},
	}
	for _, tt := range cases {
		t.Run(tt.name, func(t *testing.T) {
			_, _, _, err := parseDate(tt.in)
			if (err == nil) != tt.ok {
				t.Errorf("parseDate(%q) error = %v, want ok=%v", tt.in, err, tt.ok)
			}
		})
	}
}
