// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Viktor Martynenko

package models

import (
	"encoding/json"
	"fmt"
)

// Query types carried by serialized sync-down targets. The tag is what lets
// a target be reconstructed from persisted JSON.
const (
	QueryTypeMRU    = "mru"
	QueryTypeSoql   = "soql"
	QueryTypeSosl   = "sosl"
	QueryTypeCustom = "custom"
)

// CustomTypeField is the extra tag carried by custom targets; it selects the
// constructor registered for that tag.
const CustomTypeField = "customType"

// TargetSpec is the serialized form of a sync-down target: its query-type
// tag plus the raw JSON it was read from, preserved verbatim so re-persisting
// a SyncState never loses fields a custom target may carry.
type TargetSpec struct {
	QueryType string
	Raw       json.RawMessage
}

// NewTargetSpec builds a spec from a query type and its payload fields.
func NewTargetSpec(queryType string, fields map[string]any) (TargetSpec, error) {
	body := map[string]any{"type": queryType}
	for k, v := range fields {
		body[k] = v
	}
	raw, err := json.Marshal(body)
	if err != nil {
		return TargetSpec{}, fmt.Errorf("encode target spec: %w", err)
	}
	return TargetSpec{QueryType: queryType, Raw: raw}, nil
}

// IsZero reports whether the spec is empty (sync-up states carry none).
func (t TargetSpec) IsZero() bool {
	return t.QueryType == "" && len(t.Raw) == 0
}

// CustomType returns the registered-constructor tag of a custom target.
func (t TargetSpec) CustomType() string {
	var body struct {
		CustomType string `json:"customType"`
	}
	_ = json.Unmarshal(t.Raw, &body)
	return body.CustomType
}

// Field decodes a single string field from the raw target payload.
func (t TargetSpec) Field(name string) string {
	var body map[string]any
	if err := json.Unmarshal(t.Raw, &body); err != nil {
		return ""
	}
	v, _ := body[name].(string)
	return v
}

// StringSliceField decodes a string-array field from the raw target payload.
func (t TargetSpec) StringSliceField(name string) []string {
	var body map[string]json.RawMessage
	if err := json.Unmarshal(t.Raw, &body); err != nil {
		return nil
	}
	var values []string
	_ = json.Unmarshal(body[name], &values)
	return values
}

func (t TargetSpec) MarshalJSON() ([]byte, error) {
	if len(t.Raw) > 0 {
		return t.Raw, nil
	}
	return json.Marshal(map[string]string{"type": t.QueryType})
}

func (t *TargetSpec) UnmarshalJSON(data []byte) error {
	var body struct {
		Type string `json:"type"`
	}
	if err := json.Unmarshal(data, &body); err != nil {
		return fmt.Errorf("decode target spec: %w", err)
	}
	t.QueryType = body.Type
	t.Raw = append(json.RawMessage(nil), data...)
	return nil
}
