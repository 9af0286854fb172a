package event

import "encoding/json"

// DecodePayload returns the payload as T. In-process publishers hand over the
// typed struct (or a pointer to it); anything else, such as a map decoded from
// the dead-letter file, goes through a JSON round trip.
func DecodePayload[T any](payload interface{}) (T, error) {
	switch v := payload.(type) {
	case T:
		return v, nil
	case *T:
		if v != nil {
			return *v, nil
		}
	case json.RawMessage:
		var out T
		return out, json.Unmarshal(v, &out)
	}

	var out T
	raw, err := json.Marshal(payload)
	if err != nil {
		return out, err
	}
	return out, json.Unmarshal(raw, &out)
}
