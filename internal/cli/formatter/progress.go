package formatter

import (
	"fmt"
	"strings"
)

const (
	stepDone    = "●"
	stepPending = "○"

	// TotalSteps is the number of screens in the flow.
	TotalSteps = 3
)

var stepNames = [TotalSteps]string{"Dump", "Clusters", "Focus"}

// RenderSteps renders the flow progress like "● ● ○  Step 2 of 3 · Clusters".
// step is 1-based and clamped to [1, TotalSteps].
func RenderSteps(step int) string {
	if step < 1 {
		step = 1
	}
	if step > TotalSteps {
		step = TotalSteps
	}

	dots := make([]string, TotalSteps)
	for i := range dots {
		if i < step {
			dots[i] = StyleGreen.Render(stepDone)
		} else {
			dots[i] = StyleDim.Render(stepPending)
		}
	}
	label := fmt.Sprintf("Step %d of %d · %s", step, TotalSteps, stepNames[step-1])
	return strings.Join(dots, " ") + "  " + Dim(label)
}
