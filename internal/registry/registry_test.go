package registry

import (
	"testing"

	"github.com/vovakirdan/polycollide/internal/config"
	"github.com/vovakirdan/polycollide/internal/scene"
)

func TestBuiltinsRegistered(t *testing.T) {
	for _, id := range []string{"stack", "bullet", "sensors", "billiards", "ramp", "rain", "pyramid"} {
		if !Exists(id) {
			t.Errorf("scene %q not registered", id)
		}
	}

	list := List()
	for i := 1; i < len(list); i++ {
		if list[i-1].ID >= list[i].ID {
			t.Errorf("List() not sorted: %s before %s", list[i-1].ID, list[i].ID)
		}
	}
}

func TestCreateUnknown(t *testing.T) {
	if _, err := Create("nope", 0); err == nil {
		t.Error("Create() of an unknown scene should fail")
	}
}

func TestRegisterDuplicatePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("duplicate Register() did not panic")
		}
	}()
	Register("stack", false, func(int64) (*scene.Scene, error) {
		return &scene.Scene{ID: "stack"}, nil
	})
}

func TestCreateReturnsIndependentCopies(t *testing.T) {
	a, err := Create("stack", 0)
	if err != nil {
		t.Fatalf("Create() failed: %v", err)
	}
	a.Bodies[0].Pos.X = -1
	b, _ := Create("stack", 0)
	if b.Bodies[0].Pos.X == -1 {
		t.Error("Create() returned shared bodies")
	}
}

func TestProceduralSeeds(t *testing.T) {
	for _, id := range []string{"rain", "pyramid"} {
		t.Run(id, func(t *testing.T) {
			a, err := Create(id, 7)
			if err != nil {
				t.Fatalf("Create() failed: %v", err)
			}
			b, _ := Create(id, 7)
			c, _ := Create(id, 8)

			last := len(a.Bodies) - 1
			if a.Bodies[last].Pos != b.Bodies[last].Pos {
				t.Error("same seed produced different layouts")
			}
			if a.Bodies[last].Pos == c.Bodies[last].Pos {
				t.Error("different seeds produced the same layout")
			}
			if _, _, err := a.Build(config.Default(), nil); err != nil {
				t.Errorf("Build() failed: %v", err)
			}
		})
	}
}
