package diag

import "testing"

func TestCallErrorFormatsOpPCAndMessage(t *testing.T) {
	err := NewCallError("call", 42, "value of tag %s is not callable", "string")
	want := "call at pc=42: value of tag string is not callable"
	if got := err.Error(); got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}

func TestInvariantErrorFormatsOpPCAndMessage(t *testing.T) {
	err := NewInvariantError("pop", 7, "stack underflow")
	want := "pop at pc=7: stack underflow"
	if got := err.Error(); got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}

func TestAnalysisErrorHasNoPC(t *testing.T) {
	err := NewAnalysisError("assign", "target is neither identifier nor member")
	want := "analysis error in assign: target is neither identifier nor member"
	if got := err.Error(); got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}
