package utils

import (
	"encoding/json"
	"errors"
)

var ErrInterestsNotDecodable = errors.New("interests not decodable")

// DecodeInterests accepts the loosely typed interests payload of the
// registration request. Clients send a JSON array, a JSON-encoded string of
// an array, or a single scalar value from form submissions. The result is a
// plain list of strings, validation against the tag enumeration happens
// separately.
func DecodeInterests(raw interface{}) ([]string, error) {
	switch value := raw.(type) {
	case nil:
		return nil, ErrInterestsNotDecodable
	case []interface{}:
		interests := make([]string, 0, len(value))
		for _, entry := range value {
			s, ok := entry.(string)
			if !ok {
				return nil, ErrInterestsNotDecodable
			}
			interests = append(interests, s)
		}
		return interests, nil
	case []string:
		return value, nil
	case string:
		var interests []string
		if err := json.Unmarshal([]byte(value), &interests); err == nil {
			return interests, nil
		}
		// not a serialized list, treat as a single selected value
		if value == "" {
			return nil, ErrInterestsNotDecodable
		}
		return []string{value}, nil
	default:
		return nil, ErrInterestsNotDecodable
	}
}
