package matchbook

import "encoding/json"

// decodePayload normalizes a JournalLog payload into a concrete struct.
// The payload is the concrete type when the entry was produced in this
// process and never serialized, or a map[string]interface{} when it came
// back from a JSON round trip (disk, network, a test fixture). The
// marshal/unmarshal round trip handles both uniformly.
func decodePayload(payload interface{}, out interface{}) error {
	raw, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	return json.Unmarshal(raw, out)
}
