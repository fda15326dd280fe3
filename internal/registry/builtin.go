package registry

import (
	"github.com/vovakirdan/polycollide/internal/scene"
)

func init() {
	scenes, err := scene.Builtin()
	if err != nil {
		panic(err)
	}
	for i := range scenes {
		s := scenes[i]
		Register(s.ID, false, func(int64) (*scene.Scene, error) {
			return s.Clone(), nil
		})
	}

	Register("rain", true, Rain)
	Register("pyramid", true, Pyramid)
}
