package conversation

import (
	"encoding/json"
	"testing"
)

func TestOptDistinguishesAbsentNullAndValue(t *testing.T) {
	type payload struct {
		DisplayName Opt[string] `json:"displayName"`
		Duration    Opt[int]    `json:"durationSeconds"`
	}

	var absent payload
	if err := json.Unmarshal([]byte(`{}`), &absent); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if absent.DisplayName.Set {
		t.Error("absent key should leave Set false")
	}

	var null payload
	if err := json.Unmarshal([]byte(`{"displayName": null}`), &null); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !null.DisplayName.Set || null.DisplayName.Valid {
		t.Errorf("explicit null should give Set=true Valid=false, got Set=%v Valid=%v",
			null.DisplayName.Set, null.DisplayName.Valid)
	}

	var value payload
	if err := json.Unmarshal([]byte(`{"displayName": "Jane", "durationSeconds": 42}`), &value); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !value.DisplayName.Set || !value.DisplayName.Valid || value.DisplayName.Value != "Jane" {
		t.Errorf("unexpected displayName opt: %+v", value.DisplayName)
	}
	if !value.Duration.Valid || value.Duration.Value != 42 {
		t.Errorf("unexpected durationSeconds opt: %+v", value.Duration)
	}
}

func TestOptPtr(t *testing.T) {
	if ptr := Some("x").Ptr(); ptr == nil || *ptr != "x" {
		t.Errorf("Some(...).Ptr() = %v, want pointer to value", ptr)
	}
	if ptr := Null[string]().Ptr(); ptr != nil {
		t.Errorf("Null().Ptr() = %v, want nil", ptr)
	}
	var zero Opt[string]
	if ptr := zero.Ptr(); ptr != nil {
		t.Errorf("zero Opt Ptr() = %v, want nil", ptr)
	}
}

func TestUpdateParamsIsEmpty(t *testing.T) {
	var empty UpdateParams
	if !empty.IsEmpty() {
		t.Error("zero UpdateParams should be empty")
	}

	touched := UpdateParams{DisplayName: Null[string]()}
	if touched.IsEmpty() {
		t.Error("params with a cleared field should not be empty")
	}
}
