package renderer

import (
	"context"
	stderrors "errors"
	"strings"
	"testing"

	"hearthside/cookbook/pkg/cookbook/recipe"
)

type fakeRenderer struct {
	name string
}

func (f *fakeRenderer) Name() string { return f.name }

func (f *fakeRenderer) Render(ctx context.Context, c *recipe.Collection, opts Options) error {
	return nil
}

func fakeFactory(name string) Factory {
	return func() (Renderer, error) {
		return &fakeRenderer{name: name}, nil
	}
}

func TestRegisterAndNew(t *testing.T) {
	if err := Register("test-plain", fakeFactory("test-plain")); err != nil {
		t.Fatalf("Register returned error: %v", err)
	}

	r, err := New("test-plain")
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	if r.Name() != "test-plain" {
		t.Errorf("Name() = %q, want %q", r.Name(), "test-plain")
	}
}

func TestRegisterRejectsDuplicates(t *testing.T) {
	if err := Register("test-dup", fakeFactory("test-dup")); err != nil {
		t.Fatalf("first Register returned error: %v", err)
	}
	err := Register("test-dup", fakeFactory("test-dup"))
	if err == nil {
		t.Fatal("duplicate Register succeeded, want error")
	}
	if !strings.Contains(err.Error(), "already registered") {
		t.Errorf("error = %q, want already-registered message", err)
	}
}

func TestRegisterRejectsBadArguments(t *testing.T) {
	if err := Register("", fakeFactory("")); err == nil {
		t.Error("Register with empty name succeeded, want error")
	}
	if err := Register("test-nil-factory", nil); err == nil {
		t.Error("Register with nil factory succeeded, want error")
	}
}

func TestNewUnknown(t *testing.T) {
	MustRegister("test-known", fakeFactory("test-known"))

	_, err := New("no-such-backend")
	if err == nil {
		t.Fatal("New succeeded for unregistered name, want error")
	}

	var unknownErr *UnknownRendererError
	if !stderrors.As(err, &unknownErr) {
		t.Fatalf("error type = %T, want *UnknownRendererError", err)
	}
	if unknownErr.Name != "no-such-backend" {
		t.Errorf("error name = %q, want requested name", unknownErr.Name)
	}
	if !strings.Contains(err.Error(), "test-known") {
		t.Errorf("error = %q, should list registered backends", err)
	}
}

func TestNamesSorted(t *testing.T) {
	MustRegister("test-zz", fakeFactory("test-zz"))
	MustRegister("test-aa", fakeFactory("test-aa"))

	names := Names()
	for i := 1; i < len(names); i++ {
		if names[i-1] > names[i] {
			t.Fatalf("Names() not sorted: %v", names)
		}
	}
}

func TestMustRegisterPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("MustRegister with empty name did not panic")
		}
	}()
	MustRegister("", fakeFactory(""))
}
