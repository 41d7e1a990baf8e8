package utils

import (
	"net/mail"
	"regexp"
	"strings"
	"time"
)

const (
	PASSWORD_MIN_LEN = 8
	PASSWORD_MAX_LEN = 16
)

func SanitizeEmail(email string) string {
	email = strings.ToLower(email)
	email = strings.Trim(email, " \n\r")
	return email
}

// CheckEmailFormat to check if input string is a correct email address
func CheckEmailFormat(email string) bool {
	if len(email) > 254 {
		return false
	}
	_, err := mail.ParseAddress(email)
	if err != nil {
		return false
	}
	// additional regex check for correct email format
	emailRule := regexp.MustCompile(`^[a-zA-Z0-9._%+'-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
	return emailRule.MatchString(email)
}

// CheckPasswordFormat to check if the plaintext password length is within
// the accepted range
func CheckPasswordFormat(password string) bool {
	pl := len(password)
	return pl >= PASSWORD_MIN_LEN && pl <= PASSWORD_MAX_LEN
}

func GetExpirationTime(validityPeriod time.Duration) time.Time {
	return time.Now().Add(validityPeriod)
}

func ReachedExpirationTime(t time.Time) bool {
	return time.Now().After(t)
}

// HasMoreAttemptsRecently counts how many of the attempt timestamps fall
// into the past window and compares against the threshold.
func HasMoreAttemptsRecently(attempts []int64, moreThan int, window int64) bool {
	counter := 0
	threshold := time.Now().Unix() - window
	for _, attempt := range attempts {
		if attempt > threshold {
			counter += 1
		}
	}
	return counter > moreThan
}

func RemoveAttemptsOlderThan(attempts []int64, olderThan int64) []int64 {
	threshold := time.Now().Unix() - olderThan
	kept := []int64{}
	for _, attempt := range attempts {
		if attempt > threshold {
			kept = append(kept, attempt)
		}
	}
	return kept
}
