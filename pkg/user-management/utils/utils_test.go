package utils

import (
	"testing"
	"time"
)

func TestSanitizeEmail(t *testing.T) {
	t.Run("with different formats", func(t *testing.T) {
		email := SanitizeEmail("\nTester@test.DE")
		if email != "tester@test.de" {
			t.Errorf("unexpected email: %s", email)
		}

		email = SanitizeEmail("  \n tester@test.de \n\r")
		if email != "tester@test.de" {
			t.Errorf("unexpected email: %s", email)
		}
	})
}

func TestCheckEmailFormat(t *testing.T) {
	t.Run("with missing @", func(t *testing.T) {
		if CheckEmailFormat("t.t.com") {
			t.Error("should be false")
		}
	})

	t.Run("with missing top level domain", func(t *testing.T) {
		if CheckEmailFormat("t@com") {
			t.Error("should be false")
		}
	})

	t.Run("with correct format", func(t *testing.T) {
		if !CheckEmailFormat("t@t.com") {
			t.Error("should be true")
		}
		if !CheckEmailFormat("t+1@t.com") {
			t.Error("should be true")
		}
	})
}

func TestCheckPasswordFormat(t *testing.T) {
	t.Run("with too short password", func(t *testing.T) {
		if CheckPasswordFormat("1234567") {
			t.Error("7 characters should be rejected")
		}
	})

	t.Run("with too long password", func(t *testing.T) {
		if CheckPasswordFormat("12345678901234567") {
			t.Error("17 characters should be rejected")
		}
	})

	t.Run("with boundary lengths", func(t *testing.T) {
		if !CheckPasswordFormat("12345678") {
			t.Error("8 characters should be accepted")
		}
		if !CheckPasswordFormat("1234567890123456") {
			t.Error("16 characters should be accepted")
		}
	})
}

func TestAttemptWindows(t *testing.T) {
	now := time.Now().Unix()

	t.Run("has more attempts recently", func(t *testing.T) {
		attempts := []int64{now - 1, now - 2, now - 3, now - 5000}
		if HasMoreAttemptsRecently(attempts, 3, 60) {
			t.Error("only 3 attempts in window, should be false")
		}
		if !HasMoreAttemptsRecently(attempts, 2, 60) {
			t.Error("should be true")
		}
	})

	t.Run("remove attempts older than", func(t *testing.T) {
		attempts := []int64{now - 1, now - 5000}
		kept := RemoveAttemptsOlderThan(attempts, 3600)
		if len(kept) != 1 {
			t.Errorf("unexpected number of kept attempts: %d", len(kept))
		}
	})
}

func TestExpirationHelpers(t *testing.T) {
	exp := GetExpirationTime(15 * time.Minute)
	if ReachedExpirationTime(exp) {
		t.Error("future expiry should not be reached")
	}
	if !ReachedExpirationTime(time.Now().Add(-time.Second)) {
		t.Error("past expiry should be reached")
	}
}
