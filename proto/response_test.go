package proto_test

import (
	"encoding/json"
	"testing"

	"github.com/meppu/eight/errs"
	"github.com/meppu/eight/proto"
)

func TestMarshalResponseEnvelope(t *testing.T) {
	cases := []struct {
		name     string
		resp     proto.Response
		wantType string
	}{
		{"ok", proto.Ok{}, "ok"},
		{"value", proto.Value{Value: "hello"}, "text"},
		{"bool", proto.Bool{Value: true}, "boolean"},
		{"uint", proto.UInt{Value: 42}, "number"},
		{"keys", proto.Keys{Keys: []string{"a", "b"}}, "text_list"},
	}

	for _, c := range cases {
		raw, err := proto.MarshalResponse(c.resp)
		if err != nil {
			t.Fatalf("%s: %v", c.name, err)
		}

		var decoded struct {
			Type  string          `json:"type"`
			Value json.RawMessage `json:"value"`
		}
		if err := json.Unmarshal(raw, &decoded); err != nil {
			t.Fatalf("%s: %v", c.name, err)
		}

		if decoded.Type != c.wantType {
			t.Fatalf("%s: type = %q, want %q", c.name, decoded.Type, c.wantType)
		}
	}
}

func TestMarshalResponseErrorNotDoubleWrapped(t *testing.T) {
	inner := errs.New(errs.KeyTooShort)
	resp := proto.Error{Err: inner}

	raw, err := proto.MarshalResponse(resp)
	if err != nil {
		t.Fatal(err)
	}

	innerRaw, err := json.Marshal(inner)
	if err != nil {
		t.Fatal(err)
	}

	if string(raw) != string(innerRaw) {
		t.Fatalf("expected Error response to marshal identically to the underlying error, got %s vs %s", raw, innerRaw)
	}
}

func TestKindIsStable(t *testing.T) {
	if (proto.Ok{}).Kind() != proto.KindOk {
		t.Fatal("Ok.Kind() mismatch")
	}
	if (proto.Value{}).Kind() != proto.KindValue {
		t.Fatal("Value.Kind() mismatch")
	}
	if (proto.Error{}).Kind() != proto.KindError {
		t.Fatal("Error.Kind() mismatch")
	}
}
