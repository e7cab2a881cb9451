package errors

import (
	"errors"
	"fmt"
	"testing"
)

func TestErrorMessage(t *testing.T) {
	err := New(TypeInput, "bad input")
	if err.Error() != "[INPUT_ERROR] bad input" {
		t.Errorf("unexpected message: %s", err.Error())
	}

	wrapped := Wrap(TypeStorage, "insert failed", fmt.Errorf("disk full"))
	if wrapped.Error() != "[STORAGE_ERROR] insert failed: disk full" {
		t.Errorf("unexpected message: %s", wrapped.Error())
	}
}

func TestIsType(t *testing.T) {
	err := InvalidStackItem("item 0: name is required")
	if !IsType(err, TypeInvalidStackItem) {
		t.Error("expected invalid stack item type")
	}
	if IsType(err, TypeStorage) {
		t.Error("did not expect storage type")
	}
	if IsType(fmt.Errorf("plain"), TypeStorage) {
		t.Error("plain errors carry no type")
	}
}

func TestUnwrap(t *testing.T) {
	cause := fmt.Errorf("root cause")
	err := Wrap(TypeConfig, "load failed", cause)
	if !errors.Is(err, cause) {
		t.Error("expected wrapped cause to be reachable via errors.Is")
	}
}

func TestWithContext(t *testing.T) {
	err := New(TypeKnowledgeBase, "bad rule").WithContext("rule_id", "r1")
	if err.Context["rule_id"] != "r1" {
		t.Errorf("unexpected context: %+v", err.Context)
	}
}

func TestDomainConstructors(t *testing.T) {
	if !IsType(UnresolvedIngredient("x"), TypeUnresolvedIngredient) {
		t.Error("unexpected type for unresolved ingredient")
	}
	if !IsType(UnitMismatch("iu", "mg"), TypeUnitMismatch) {
		t.Error("unexpected type for unit mismatch")
	}
	if !IsType(NotFound("analysis", "abc"), TypeNotFound) {
		t.Error("unexpected type for not found")
	}
}
