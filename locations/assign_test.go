package locations

import (
	"reflect"
	"testing"
)

func TestMergeGuideIDsIsAdditive(t *testing.T) {
	existing := []string{"g1", "g2"}

	merged, added := MergeGuideIDs(existing, []string{"g2", "g3", "g3", "g4"})
	if added != 2 {
		t.Fatalf("expected 2 newly added, got %d", added)
	}
	want := []string{"g1", "g2", "g3", "g4"}
	if !reflect.DeepEqual(merged, want) {
		t.Fatalf("expected %v, got %v", want, merged)
	}
}

func TestMergeGuideIDsIdempotent(t *testing.T) {
	merged, added := MergeGuideIDs([]string{"g1"}, []string{"g2", "g3"})
	if added != 2 {
		t.Fatalf("first merge: expected 2 added, got %d", added)
	}

	again, added := MergeGuideIDs(merged, []string{"g2", "g3"})
	if added != 0 {
		t.Fatalf("second merge: expected 0 added, got %d", added)
	}
	if !reflect.DeepEqual(again, merged) {
		t.Fatalf("second merge changed the list: %v vs %v", again, merged)
	}
}

func TestMergeGuideIDsSkipsEmpty(t *testing.T) {
	merged, added := MergeGuideIDs(nil, []string{"", "g1"})
	if added != 1 || len(merged) != 1 || merged[0] != "g1" {
		t.Fatalf("expected only g1 added, got %v (added=%d)", merged, added)
	}
}

func TestRemoveGuideID(t *testing.T) {
	remaining, removed := RemoveGuideID([]string{"g1", "g2", "g3"}, "g2")
	if !removed {
		t.Fatal("expected g2 to be removed")
	}
	if !reflect.DeepEqual(remaining, []string{"g1", "g3"}) {
		t.Fatalf("unexpected remaining list: %v", remaining)
	}

	_, removed = RemoveGuideID([]string{"g1"}, "g9")
	if removed {
		t.Fatal("expected miss for absent guide")
	}
}
