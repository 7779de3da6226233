package service

import (
	"reflect"
	"testing"
)

func TestSelection(t *testing.T) {
	s := NewSelection()

	s.Toggle("a")
	s.Toggle("b")
	if !s.Has("a") || s.Count() != 2 {
		t.Fatalf("unexpected state %v", s.IDs())
	}

	s.Toggle("a")
	if s.Has("a") {
		t.Fatal("toggle did not deselect")
	}

	s.Set([]string{"c", "a"})
	if !reflect.DeepEqual(s.IDs(), []string{"a", "c"}) {
		t.Fatalf("unexpected ids %v", s.IDs())
	}

	s.Remove("c")
	if s.Has("c") || s.Count() != 1 {
		t.Fatalf("remove failed: %v", s.IDs())
	}

	s.Clear()
	if s.Count() != 0 {
		t.Fatalf("clear failed: %v", s.IDs())
	}
}
