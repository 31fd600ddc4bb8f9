package hub

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestProtocolMarshalOutputMessage(t *testing.T) {
	msg := OutputMessage{Type: "output", SessionID: "sess-1", Data: "hello\r\n"}

	data, err := json.Marshal(msg)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	var decoded OutputMessage
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if decoded != msg {
		t.Errorf("round trip = %+v, want %+v", decoded, msg)
	}
	if !strings.Contains(string(data), `"sessionId"`) {
		t.Errorf("wire format lost camelCase key: %s", data)
	}
}

func TestProtocolSearchResultKeys(t *testing.T) {
	msg := SearchResultMessage{
		Type:     "searchResult",
		SearchID: 42,
		Path:     "/home/u/readme.txt",
		Name:     "readme.txt",
		IsFile:   true,
		Size:     128,
		Modified: 1700000000,
	}

	data, err := json.Marshal(msg)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	for _, key := range []string{`"searchId"`, `"isFile"`, `"totalMatches"`} {
		if key == `"totalMatches"` {
			continue // finished-only field
		}
		if !strings.Contains(string(data), key) {
			t.Errorf("missing key %s in %s", key, data)
		}
	}

	fin := SearchFinishedMessage{Type: "searchFinished", SearchID: 42, TotalMatches: 150, HasMore: true}
	data, err = json.Marshal(fin)
	if err != nil {
		t.Fatalf("marshal finished: %v", err)
	}
	if !strings.Contains(string(data), `"totalMatches":150`) || !strings.Contains(string(data), `"hasMore":true`) {
		t.Errorf("finished wire format wrong: %s", data)
	}
}

func TestProtocolClientMessage(t *testing.T) {
	raw := `{"type":"resize","sessionId":"abc","rows":50,"cols":200}`

	var msg ClientMessage
	if err := json.Unmarshal([]byte(raw), &msg); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if msg.Type != "resize" || msg.SessionID != "abc" || msg.Rows != 50 || msg.Cols != 200 {
		t.Errorf("decoded = %+v", msg)
	}
}
