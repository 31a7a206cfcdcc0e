package gateway

import (
	"bytes"
	"encoding/json"

	"github.com/meppu/eight/proto"
)

// MarshalJSON renders {"id": "...", "results": [...]}, where each result
// uses proto.MarshalResponse's {"type", "value"} envelope.
func (r Response) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString(`{"id":`)

	id, err := json.Marshal(r.ID)
	if err != nil {
		return nil, err
	}
	buf.Write(id)
	buf.WriteString(`,"results":[`)

	for i, result := range r.Results {
		if i > 0 {
			buf.WriteByte(',')
		}
		raw, err := proto.MarshalResponse(result)
		if err != nil {
			return nil, err
		}
		buf.Write(raw)
	}

	buf.WriteString("]}")
	return buf.Bytes(), nil
}
