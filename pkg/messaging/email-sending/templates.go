package emailsending

import "fmt"

const (
	SUBJECT_EMAIL_VERIFICATION = "CiviK-Link Email Verification"
	SUBJECT_PASSWORD_RECOVERY  = "CiviK-Link Password Recovery"
)

// VerificationEmailContent renders the OTP message for a fresh or repeated
// registration attempt.
func VerificationEmailContent(code int, validForMinutes int) string {
	return fmt.Sprintf(`<div style="font-family: sans-serif; max-width: 480px;">
	<h2>Verify your email address</h2>
	<p>Use the following code to verify your CiviK-Link account:</p>
	<p style="font-size: 28px; letter-spacing: 4px; font-weight: bold;">%05d</p>
	<p>The code expires in %d minutes. If you did not register, you can ignore this message.</p>
</div>`, code, validForMinutes)
}

// ForgotPasswordEmailContent renders the reset message, the URL carries the
// unhashed reset secret.
func ForgotPasswordEmailContent(resetURL string, validForMinutes int) string {
	return fmt.Sprintf(`<div style="font-family: sans-serif; max-width: 480px;">
	<h2>Reset your password</h2>
	<p>A password reset was requested for your CiviK-Link account. Open the link below to choose a new password:</p>
	<p><a href="%s">%s</a></p>
	<p>The link expires in %d minutes. If you did not request a reset, you can ignore this message.</p>
</div>`, resetURL, resetURL, validForMinutes)
}
