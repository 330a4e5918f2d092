package f

import (
	"reflect"
	"testing"
)

func TestSlicesItemsMatch(t *testing.T) {
	tt := []struct {
		s1          []string
		s2          []string
		result      bool
		failMessage string
	}{
		{[]string{"a", "b", "c"}, []string{"a", "b"}, false, "Different size slices should not match"},
		{[]string{"a", "b", "b"}, []string{"a", "b"}, false, "Different size slices should not match even with same items"},
		{[]string{"a", "b", "c"}, []string{"a", "b", "c"}, true, "Same order same items should match"},
		{[]string{"a", "b", "c"}, []string{"b", "a", "c"}, true, "Different order same items should match"},
		{[]string{"a", "b", "c"}, []string{"a", "b", "d"}, false, "Different items should not match"},
		{[]string{"a", "b", "c"}, []string{"a", "a", "c"}, false, "Different multiplicity should not match"},
	}

	for _, tc := range tt {
		if SlicesItemsMatch(tc.s1, tc.s2) != tc.result {
			t.Error(tc.failMessage)
		}
	}
}

func TestSet(t *testing.T) {
	s := NewSet[string]()
	s.Add("@owner")
	if !s.Contains("@owner") {
		t.Error("Set should contain added item")
	}
	s.Remove("@owner")
	if s.Contains("@owner") {
		t.Error("Set should not contain removed item")
	}
	s.Add("@a")
	s.Add("@b")
	if !SlicesItemsMatch(s.Items(), []string{"@a", "@b"}) {
		t.Error("Items should return all items in the set")
	}
}

func TestMap(t *testing.T) {
	owners := []string{"alice", "bob"}
	got := Map(owners, func(s string) string { return "@" + s })
	if !reflect.DeepEqual(got, []string{"@alice", "@bob"}) {
		t.Errorf("expected @-prefixed owners, got %v", got)
	}
}

func TestMapMap(t *testing.T) {
	m := map[string]int{"a": 1, "b": 2}
	got := MapMap(m, func(v int) int { return v * 2 })
	if !reflect.DeepEqual(got, map[string]int{"a": 2, "b": 4}) {
		t.Errorf("expected doubled values, got %v", got)
	}
}

func TestFiltered(t *testing.T) {
	paths := []string{"a.go", "b.md", "c.go"}
	got := Filtered(paths, func(p string) bool { return len(p) > 0 && p[len(p)-1] == 'o' })
	if !reflect.DeepEqual(got, []string{"a.go", "c.go"}) {
		t.Errorf("expected go files, got %v", got)
	}
}

func TestFilteredMap(t *testing.T) {
	m := map[string]int{"a": 1, "b": 2, "c": 3}
	got := FilteredMap(m, func(v int) bool { return v%2 == 1 })
	if !reflect.DeepEqual(got, map[string]int{"a": 1, "c": 3}) {
		t.Errorf("expected odd values, got %v", got)
	}
}

func TestFind(t *testing.T) {
	paths := []string{"a.go", "b.md", "c.go"}
	got, found := Find(paths, func(p string) bool { return p == "b.md" })
	if !found || got != "b.md" {
		t.Errorf("expected to find b.md, got %q (found=%v)", got, found)
	}
	_, found = Find(paths, func(p string) bool { return p == "missing" })
	if found {
		t.Error("should not find missing item")
	}
}

func TestRemoveValue(t *testing.T) {
	tt := []struct {
		slice       []string
		value       string
		result      []string
		failMessage string
	}{
		{[]string{"a", "b", "c"}, "b", []string{"a", "c"}, "Value in slice should be removed"},
		{[]string{"a", "b", "c"}, "d", []string{"a", "b", "c"}, "Value not in slice should remove nothing"},
		{[]string{"a", "b", "c", "b"}, "b", []string{"a", "c"}, "All occurrences should be removed"},
	}

	for _, tc := range tt {
		if !SlicesItemsMatch(RemoveValue(tc.slice, tc.value), tc.result) {
			t.Error(tc.failMessage)
		}
	}
}

func TestRemoveDuplicates(t *testing.T) {
	if !SlicesItemsMatch(RemoveDuplicates([]string{"a", "b", "b", "c"}), []string{"a", "b", "c"}) {
		t.Error("Should remove duplicates")
	}
}

func TestIntersection(t *testing.T) {
	tt := []struct {
		s1          []string
		s2          []string
		result      []string
		failMessage string
	}{
		{[]string{"a", "b", "c"}, []string{"b", "c", "d"}, []string{"b", "c"}, "Should work for simple case"},
		{[]string{"a", "b", "b", "c"}, []string{"b", "c", "d"}, []string{"b", "c"}, "Duplicates in one slice only should not repeat"},
		{[]string{"a", "b", "b", "c"}, []string{"b", "b", "c"}, []string{"b", "b", "c"}, "Duplicates in both slices should repeat"},
	}

	for _, tc := range tt {
		if !SlicesItemsMatch(Intersection(tc.s1, tc.s2), tc.result) {
			t.Error(tc.failMessage)
		}
	}
}
