package hunt_test

import (
	"fmt"

	"github.com/katalvlaran/manahunt/hunt"
)

// ExampleAgent_Run climbs a small ramp with 4-connectivity.
//
//	1 2 3
//	2 3 4
//	3 4 9
func ExampleAgent_Run() {
	g := grid{
		{1, 2, 3},
		{2, 3, 4},
		{3, 4, 9},
	}
	a := hunt.New(1, 0, 0, g, hunt.Options{Conn: hunt.Conn4, RecordPath: true})
	v, _ := a.Run()
	fmt.Println("peak:", v, "steps:", a.Steps())
	fmt.Println("path:", a.Path())
	// Output:
	// peak: 9 steps: 4
	// path: [{0 0} {0 1} {0 2} {1 2} {2 2}]
}
