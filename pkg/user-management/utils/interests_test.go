package utils

import (
	"testing"
)

func TestDecodeInterests(t *testing.T) {
	t.Run("with JSON array", func(t *testing.T) {
		interests, err := DecodeInterests([]interface{}{"Water", "Health"})
		if err != nil {
			t.Fatal(err)
		}
		if len(interests) != 2 || interests[0] != "Water" {
			t.Errorf("unexpected result: %v", interests)
		}
	})

	t.Run("with serialized list", func(t *testing.T) {
		interests, err := DecodeInterests(`["Road","Sanitation"]`)
		if err != nil {
			t.Fatal(err)
		}
		if len(interests) != 2 || interests[1] != "Sanitation" {
			t.Errorf("unexpected result: %v", interests)
		}
	})

	t.Run("with single scalar", func(t *testing.T) {
		interests, err := DecodeInterests("Education")
		if err != nil {
			t.Fatal(err)
		}
		if len(interests) != 1 || interests[0] != "Education" {
			t.Errorf("unexpected result: %v", interests)
		}
	})

	t.Run("with missing value", func(t *testing.T) {
		if _, err := DecodeInterests(nil); err == nil {
			t.Error("should fail")
		}
		if _, err := DecodeInterests(""); err == nil {
			t.Error("should fail")
		}
	})

	t.Run("with non string entries", func(t *testing.T) {
		if _, err := DecodeInterests([]interface{}{"Water", 42}); err == nil {
			t.Error("should fail")
		}
		if _, err := DecodeInterests(12.5); err == nil {
			t.Error("should fail")
		}
	})
}
