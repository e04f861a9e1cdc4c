package entities

import (
	"strings"
	"testing"
)

func TestStableIDDeterministic(t *testing.T) {
	first := StableID("cell", "P1", "S010")
	second := StableID("cell", "P1", "S010")
	if first != second {
		t.Errorf("одинаковый ключ дал разные id: %s vs %s", first, second)
	}
}

func TestStableIDNormalizesParts(t *testing.T) {
	canonical := StableID("cell", "p1", "s010")
	spaced := StableID("cell", "  P1  ", "S010")
	if canonical != spaced {
		t.Errorf("регистр и пробелы должны игнорироваться: %s vs %s", canonical, spaced)
	}
}

func TestStableIDKindSeparation(t *testing.T) {
	cell := StableID("cell", "P1", "S010")
	robot := StableID("robot", "P1", "S010")
	if cell == robot {
		t.Error("разные виды сущностей не должны коллизировать")
	}
	if !strings.HasPrefix(cell, "cell_") {
		t.Errorf("id должен начинаться с вида: %s", cell)
	}
}

func TestStableIDPartBoundaries(t *testing.T) {
	// Разделитель частей не позволяет склейке ("ab","c") == ("a","bc")
	if StableID("x", "ab", "c") == StableID("x", "a", "bc") {
		t.Error("границы частей ключа должны различаться")
	}
}

func TestStableIDFormat(t *testing.T) {
	id := StableID("tool", "S010", "GUN_A")
	// вид + подчеркивание + 16 шестнадцатеричных символов
	if len(id) != len("tool")+1+16 {
		t.Errorf("неожиданная длина id %s", id)
	}
}
