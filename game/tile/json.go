package tile

import (
	"encoding/json"
)

// MarshalJSON implements the encoding/json.Marshaler interface to marshal colors into their names.
func (c Color) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.String())
}

// UnmarshalJSON implements the encoding/json.UnMarshaler interface to unmarshal colors from their names.
func (c *Color) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	c2, err := ParseColor(s)
	if err != nil {
		return err
	}
	*c = c2
	return nil
}
