package utils

import "testing"

func TestContains(t *testing.T) {
	items := []string{"a", "b", "c"}

	if !Contains(items, "b") {
		t.Error("Contains() = false for present element")
	}
	if Contains(items, "z") {
		t.Error("Contains() = true for absent element")
	}
	if Contains([]string(nil), "a") {
		t.Error("Contains() = true for nil slice")
	}
}
