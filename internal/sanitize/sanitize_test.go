package sanitize

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStripHTML(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"plain text", "  Please call before arrival ", "Please call before arrival"},
		{"simple tags", "<b>Hello</b> <i>world</i>", "Hello world"},
		{"script block", "<script>alert('x')</script>Hi", "Hi"},
		{"style block", "<style>body{display:none}</style>Text", "Text"},
		{"event handler inside tag", `<img src="x" onerror="alert(1)">photo`, "photo"},
		{"bare event handler", `onclick=steal() please`, "please"},
		{"javascript url", "go to javascript:alert(1)", "go to alert(1)"},
		{"nested scheme", "javajavascript:script:void(0)", "void(0)"},
		{"data html", "data:text/html;base64,AAAA", ";base64,AAAA"},
		{"comparison is not a tag", "2 < 3 and 5 > 4", "2 < 3 and 5 > 4"},
		{"null bytes", "ab\x00c", "abc"},
		{"unclosed trailing tag", "hello <script src=x", "hello"},
		{"unclosed trailing closing tag", "bye </b", "bye"},
		{"unclosed tag with handler", `see <img src=x onerror=alert(1)`, "see"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := StripHTML(tt.input)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, got, StripHTML(got), "must be idempotent")
		})
	}
}

func TestPhone(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"+38 (050) 123-45-67", "+380501234567"},
		{"380501234567", "+380501234567"},
		{"80501234567", "+380501234567"},
		{"050 123 45 67", "+380501234567"},
		{"501234567", "+380501234567"},
		{"+1 202 555 0143", "+1 202 555 0143"},
		{"12345", "12345"},
		{"not a phone", "not a phone"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got := Phone(tt.input)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, got, Phone(got), "must be idempotent")
		})
	}
}

func TestMoney(t *testing.T) {
	tests := []struct {
		input float64
		want  float64
	}{
		{1.005, 1.01},
		{2.675, 2.68},
		{0.125, 0.13},
		{10.004, 10},
		{19.99, 19.99},
		{99999.995, 100000},
		{0.001, 0},
	}

	for _, tt := range tests {
		got := Money(tt.input)
		assert.Equal(t, tt.want, got, "Money(%v)", tt.input)
		assert.Equal(t, got, Money(got), "must be idempotent for %v", tt.input)
	}
}

func TestEmailAndCase(t *testing.T) {
	assert.Equal(t, "user@example.com", Email("  User@Example.COM "))
	assert.Equal(t, "UAH", Upper(" uah"))
	assert.Equal(t, "desc", Lower("DESC "))
}
