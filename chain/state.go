package chain

import (
	"encoding/base64"

	"github.com/algorand/go-algorand-sdk/v2/client/v2/common/models"

	"github.com/voi-labs/vqs/domain"
)

// TEAL value type tags as reported by algod.
const (
	tealTypeBytes = 1
	tealTypeUint  = 2
)

// decodeTealState converts the raw key-value list into a map of decoded
// values keyed by the plain-text key. Keys that do not decode from base64
// are kept verbatim; some contracts store unencoded short keys.
func decodeTealState(kvs []models.TealKeyValue) (map[string]domain.StateValue, error) {
	state := make(map[string]domain.StateValue, len(kvs))

	for _, kv := range kvs {
		key := kv.Key
		if decoded, err := base64.StdEncoding.DecodeString(kv.Key); err == nil {
			key = string(decoded)
		}

		switch kv.Value.Type {
		case tealTypeBytes:
			raw, err := base64.StdEncoding.DecodeString(kv.Value.Bytes)
			if err != nil {
				return nil, err
			}
			state[key] = domain.StateValue{Bytes: raw, IsBytes: true}
		case tealTypeUint:
			state[key] = domain.StateValue{Uint: kv.Value.Uint}
		default:
			// Unknown value types are skipped rather than failing the read.
			continue
		}
	}

	return state, nil
}
