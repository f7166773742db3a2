package utils

import "encoding/json"

// SafeJSONParse parses an inbound frame without ever panicking on bad input.
func SafeJSONParse(data []byte, v interface{}) error {
	return json.Unmarshal(data, v)
}
