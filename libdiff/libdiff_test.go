package libdiff

import (
	"testing"
)

func TestLines(t *testing.T) {
	from := "a = 1\nb = 2\nc = 3\n"
	to := "a = 1\nb = 5\nc = 3\n"
	got := Changed(Lines(from, to))
	if len(got) != 2 {
		t.Fatalf("got %v", got)
	}
	if got[0] != "- b = 2" || got[1] != "+ b = 5" {
		t.Errorf("got %v", got)
	}
}

func TestLinesEqual(t *testing.T) {
	text := "a = 1\n"
	if got := Changed(Lines(text, text)); len(got) != 0 {
		t.Errorf("got %v", got)
	}
}

func TestLinesMultiple(t *testing.T) {
	from := "@App\nreplicas = 3\nname = api\n"
	to := "@App\nreplicas = 5\nname = api\nowner = infra\n"
	got := Changed(Lines(from, to))
	want := []string{"- replicas = 3", "+ replicas = 5", "+ owner = infra"}
	if len(got) != len(want) {
		t.Fatalf("got %v", got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("line %d: got %q, want %q", i, got[i], want[i])
		}
	}
}
