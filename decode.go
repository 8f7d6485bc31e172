package easel

import (
	"encoding/json"
	"fmt"

	"github.com/easelkit/easel/schema"
)

// decodeResponse validates a response body against the wire schema for T and
// unmarshals it. A body that fails the contract is a fetch-level error: it
// propagates to the caller and is never cached.
func decodeResponse[T any](schemaDoc string, body []byte) (*T, error) {
	if err := schema.ValidateJSON([]byte(schemaDoc), body); err != nil {
		return nil, fmt.Errorf("response failed contract validation: %w", err)
	}

	out := new(T)
	if err := json.Unmarshal(body, out); err != nil {
		return nil, fmt.Errorf("unable to unmarshal the data: %w", err)
	}

	return out, nil
}
