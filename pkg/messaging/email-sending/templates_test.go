package emailsending

import (
	"strings"
	"testing"
)

func TestVerificationEmailContent(t *testing.T) {
	content := VerificationEmailContent(12345, 15)
	if !strings.Contains(content, "12345") {
		t.Error("content should contain the code")
	}
	if !strings.Contains(content, "15 minutes") {
		t.Error("content should name the validity window")
	}

	// leading-zero padding for safety, even though generated codes never
	// start with zero
	content = VerificationEmailContent(1234, 15)
	if !strings.Contains(content, "01234") {
		t.Error("code should be padded to 5 digits")
	}
}

func TestForgotPasswordEmailContent(t *testing.T) {
	url := "https://civik-link.example.com/password/reset/abcdef123456"
	content := ForgotPasswordEmailContent(url, 15)
	if strings.Count(content, url) != 2 {
		t.Error("content should contain the reset url as link and text")
	}
}
