package analyzer

import "testing"

func TestNormalizer_Clean_RemovesURLs(t *testing.T) {
	n := NewNormalizer()

	cases := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "http url",
			in:   "I think she is great http://example.com/article",
			want: "I think she is great",
		},
		{
			name: "https url mid sentence",
			in:   "Check this https://t.co/abc123 out, it is amazing",
			want: "Check this out, it is amazing",
		},
		{
			name: "bare www link",
			in:   "Read more at www.example.com today",
			want: "Read more at today",
		},
		{
			name: "multiple urls",
			in:   "https://a.example http://b.example both gone",
			want: "both gone",
		},
		{
			name: "uppercase scheme",
			in:   "HTTPS://EXAMPLE.COM still matched",
			want: "still matched",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := n.Clean(tc.in)
			if got != tc.want {
				t.Errorf("Clean(%q) = %q, want %q", tc.in, got, tc.want)
			}
		})
	}
}

func TestNormalizer_Clean_CollapsesWhitespace(t *testing.T) {
	n := NewNormalizer()

	got := n.Clean("  so   much\t\twhitespace \n here  ")
	want := "so much whitespace here"
	if got != want {
		t.Errorf("Clean() = %q, want %q", got, want)
	}
}

func TestNormalizer_Clean_NoURLsUnchanged(t *testing.T) {
	n := NewNormalizer()

	in := "a perfectly ordinary opinion about a singer"
	if got := n.Clean(in); got != in {
		t.Errorf("Clean(%q) = %q, want input unchanged", in, got)
	}
}

func TestNormalizer_Clean_Idempotent(t *testing.T) {
	n := NewNormalizer()

	once := n.Clean("  noisy   text http://example.com  here ")
	twice := n.Clean(once)
	if once != twice {
		t.Errorf("Clean not idempotent: %q != %q", once, twice)
	}
}

func TestNormalizer_Clean_Empty(t *testing.T) {
	n := NewNormalizer()

	if got := n.Clean(""); got != "" {
		t.Errorf("Clean(\"\") = %q, want empty", got)
	}
	if got := n.Clean("   \t\n  "); got != "" {
		t.Errorf("Clean(whitespace) = %q, want empty", got)
	}
}
