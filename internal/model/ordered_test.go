package model

import "testing"

func TestOrderedStrings_SetPreservesInsertionOrder(t *testing.T) {
	t.Parallel()
	o := NewOrderedStrings(nil, nil)
	o.Set("BAR", "2")
	o.Set("FOO", "1")
	o.Set("BAR", "9") // update, not a new key
	if got := o.Keys(); len(got) != 2 || got[0] != "BAR" || got[1] != "FOO" {
		t.Fatalf("expected [BAR FOO], got %v", got)
	}
	if v, ok := o.Get("BAR"); !ok || v != "9" {
		t.Fatalf("expected BAR=9, got %q ok=%v", v, ok)
	}
}

func TestOrderedStrings_Merge(t *testing.T) {
	t.Parallel()
	base := NewOrderedStrings([]string{"FOO", "BAR"}, map[string]string{"FOO": "1", "BAR": "2"})
	override := NewOrderedStrings([]string{"BAR", "BAZ"}, map[string]string{"BAR": "9", "BAZ": "3"})

	merged := base.Merge(override)
	wantKeys := []string{"FOO", "BAR", "BAZ"}
	if got := merged.Keys(); len(got) != len(wantKeys) {
		t.Fatalf("expected %d keys, got %v", len(wantKeys), got)
	} else {
		for i, k := range wantKeys {
			if got[i] != k {
				t.Fatalf("expected key %d to be %q, got %q (%v)", i, k, got[i], got)
			}
		}
	}
	if v, _ := merged.Get("BAR"); v != "9" {
		t.Fatalf("expected BAR overridden to 9, got %q", v)
	}
	if v, _ := merged.Get("FOO"); v != "1" {
		t.Fatalf("expected FOO unchanged at 1, got %q", v)
	}
}

func TestOrderedStrings_MergeWithNilSides(t *testing.T) {
	t.Parallel()
	base := NewOrderedStrings([]string{"FOO"}, map[string]string{"FOO": "1"})
	if merged := base.Merge(nil); merged.Len() != 1 {
		t.Fatalf("merging nil override should return base unchanged, got %d entries", merged.Len())
	}

	var nilBase *OrderedStrings
	override := NewOrderedStrings([]string{"FOO"}, map[string]string{"FOO": "1"})
	if merged := nilBase.Merge(override); merged.Len() != 1 {
		t.Fatalf("merging onto a nil base should yield override's entries, got %d", merged.Len())
	}
}

func TestOrderedStrings_Idempotent(t *testing.T) {
	t.Parallel()
	base := NewOrderedStrings([]string{"FOO", "BAR"}, map[string]string{"FOO": "1", "BAR": "2"})
	merged := base.Merge(base)
	if merged.Len() != base.Len() {
		t.Fatalf("merge(c, c) should equal c, got %d entries vs %d", merged.Len(), base.Len())
	}
	for _, k := range base.Keys() {
		v1, _ := base.Get(k)
		v2, _ := merged.Get(k)
		if v1 != v2 {
			t.Fatalf("key %q: expected %q, got %q", k, v1, v2)
		}
	}
}
