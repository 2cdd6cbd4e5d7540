package backend

import (
	"bytes"
	"encoding/json"
	"fmt"
)

var null = []byte("null")

// decodeList accepts {"data": [...]} or a bare array. A missing or null
// data key yields an empty, non-nil slice.
func decodeList[T any](body []byte) ([]T, error) {
	items := make([]T, 0)

	body = bytes.TrimSpace(body)
	if len(body) == 0 || bytes.Equal(body, null) {
		return items, nil
	}

	if body[0] != '[' {
		var envelope struct {
			Data json.RawMessage `json:"data"`
		}
		if err := json.Unmarshal(body, &envelope); err != nil {
			return nil, err
		}
		body = bytes.TrimSpace(envelope.Data)
		if len(body) == 0 || bytes.Equal(body, null) {
			return items, nil
		}
		if body[0] != '[' {
			return nil, fmt.Errorf("envelope data is not a list")
		}
	}

	if err := json.Unmarshal(body, &items); err != nil {
		return nil, err
	}
	if items == nil {
		items = make([]T, 0)
	}
	return items, nil
}

// decodeOne accepts a bare record or {"data": {...}}. An empty body decodes to the zero record.
func decodeOne[T any](body []byte) (T, error) {
	var record T

	body = bytes.TrimSpace(body)
	if len(body) == 0 || bytes.Equal(body, null) {
		return record, nil
	}

	var envelope map[string]json.RawMessage
	if err := json.Unmarshal(body, &envelope); err != nil {
		return record, err
	}
	if data, ok := envelope["data"]; ok {
		data = bytes.TrimSpace(data)
		if len(data) > 0 && data[0] == '{' {
			body = data
		}
	}

	if err := json.Unmarshal(body, &record); err != nil {
		return record, err
	}
	return record, nil
}
