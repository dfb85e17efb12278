package game

import (
	"strings"
	"testing"
)

func TestSimLog_Queries(t *testing.T) {
	sl := NewSimLog(false)
	sl.Add(5, "M1", "opfor", "launch", "interceptor", "from Northern Grid", 0)
	sl.Add(9, "M2", "opfor", "launch", "offensive", "from Southern Base stock=5", 0)
	sl.Add(14, "M3", "opfor", "launch", "offensive", "from Northern Grid stock=9", 0)
	sl.AddVerbose(14, "M3", "opfor", "motion", "position", "(1,2)", 0)

	if sl.Verbose() || sl.Len() != 3 {
		t.Fatalf("verbose entry recorded on a quiet log: len=%d", sl.Len())
	}
	loud := NewSimLog(true)
	loud.AddVerbose(1, "M3", "opfor", "motion", "position", "(1,2)", 0)
	if !loud.Verbose() || loud.Len() != 1 {
		t.Fatal("verbose log dropped a verbose entry")
	}
	if got := sl.FirstTick("launch", "offensive", ""); got != 9 {
		t.Fatalf("first offensive = %d, want 9", got)
	}
	if got := sl.FirstTick("launch", "offensive", "Northern"); got != 14 {
		t.Fatalf("first Northern offensive = %d, want 14", got)
	}
	if got := sl.FirstTick("hit", "base", ""); got != -1 {
		t.Fatalf("missing event = %d, want -1", got)
	}
	if got := sl.CountCategory("launch", ""); got != 3 {
		t.Fatalf("launch count = %d", got)
	}
	if got := len(sl.Select(Query{Contains: "Northern"})); got != 2 {
		t.Fatalf("Northern entries = %d", got)
	}
	if !sl.HasEntry("", "", "stock=5") || sl.HasEntry("launch", "strike", "") {
		t.Fatal("HasEntry matched wrongly")
	}
	if got := sl.Since(2); len(got) != 1 || got[0].Tick != 14 {
		t.Fatalf("Since(2) = %+v", got)
	}

	out := sl.Format()
	if strings.Count(out, "\n") != 3 || !strings.HasPrefix(out, "[T=0005] M1") {
		t.Fatalf("Format:\n%s", out)
	}
	sl.Reset()
	if sl.Len() != 0 || sl.Format() != "" || sl.Since(0) != nil {
		t.Fatal("Reset left entries behind")
	}
}
