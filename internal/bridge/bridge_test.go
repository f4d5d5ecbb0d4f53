package bridge

import (
	"testing"
)

func TestDecodeValidMessage(t *testing.T) {
	msg, err := Decode([]byte(`{"name":"onClick","args":[{"link_name":"Learn More","link_src":"message"}]}`))
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	if msg.Name != "onClick" || len(msg.Args) != 1 {
		t.Errorf("message = %+v", msg)
	}
	if msg.Args[0]["link_name"] != "Learn More" {
		t.Errorf("args = %v", msg.Args)
	}
}

func TestDecodeRejectsMalformedPayloads(t *testing.T) {
	cases := []string{
		`not json`,
		`{"args":[{}]}`,
		`{"name":"","args":[{}]}`,
		`{"name":"onClick"}`,
		`{"name":"onClick","args":"nope"}`,
		`{"name":"onClick","args":[42]}`,
	}
	for _, payload := range cases {
		if _, err := Decode([]byte(payload)); err == nil {
			t.Errorf("Decode(%q) accepted a malformed payload", payload)
		}
	}
}

func TestExtractShared(t *testing.T) {
	msg, err := Decode([]byte(`{"name":"onClick","args":[{"link_name":"x","__shared__":{"fdata":"abc"}}]}`))
	if err != nil {
		t.Fatal(err)
	}

	shared := ExtractShared(msg)
	if shared["fdata"] != "abc" {
		t.Errorf("shared = %v", shared)
	}
	if _, ok := msg.Args[0]["__shared__"]; ok {
		t.Error("__shared__ must be removed from the event payload")
	}
	if msg.Args[0]["link_name"] != "x" {
		t.Error("other fields must survive extraction")
	}
}

func TestExtractSharedAbsent(t *testing.T) {
	msg, _ := Decode([]byte(`{"name":"onReady","args":[{}]}`))
	if shared := ExtractShared(msg); shared != nil {
		t.Errorf("shared = %v, want nil", shared)
	}

	empty := &Message{Name: "onReady"}
	if shared := ExtractShared(empty); shared != nil {
		t.Errorf("shared = %v, want nil for empty args", shared)
	}
}

func TestUpdatePropsScript(t *testing.T) {
	script := UpdatePropsScript([]byte(`{"client_id":"abc"}`))
	want := `window.actions.updateProps({"client_id":"abc"})`
	if script != want {
		t.Errorf("script = %q, want %q", script, want)
	}
}
