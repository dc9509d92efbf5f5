package chatstream

import "testing"

func TestSelectEngineKnown(t *testing.T) {
	tests := []struct {
		id          string
		wantAdapter string
	}{
		{"chatgpt", "chatgpt"},
		{"deepseek", "deepseek"},
		{"moonshot", "moonshot"},
		{"chatglm", "chatglm"},
		{"ernie", "ernie"},
		{"gemini", "gemini"},
	}
	for _, tt := range tests {
		t.Run(tt.id, func(t *testing.T) {
			engine := SelectEngine(tt.id)
			if engine == nil {
				t.Fatalf("SelectEngine(%q) = nil", tt.id)
			}
			if got := engine.Adapter().Name(); got != tt.wantAdapter {
				t.Errorf("adapter name = %q, want %q", got, tt.wantAdapter)
			}
		})
	}
}

func TestSelectEngineUnknownReturnsNil(t *testing.T) {
	if engine := SelectEngine("hal9000"); engine != nil {
		t.Errorf("SelectEngine(unknown) = %+v, want nil", engine)
	}
}

func TestEnginesReturnsCopy(t *testing.T) {
	list := Engines()
	if len(list) != 6 {
		t.Fatalf("catalog size = %d, want 6", len(list))
	}
	list[0].ID = "mutated"
	if Engines()[0].ID == "mutated" {
		t.Error("Engines leaked the internal catalog slice")
	}
}

func TestEngineNewSessionBindsAdapter(t *testing.T) {
	engine := SelectEngine("gemini")
	session := engine.NewSession()
	if got := session.Engine(); got != "gemini" {
		t.Errorf("session engine = %q, want %q", got, "gemini")
	}
	if session.Status() != StatusIdle {
		t.Errorf("initial status = %q, want %q", session.Status(), StatusIdle)
	}
}
