// Package deps checks the external binaries the tool shells out to.
package deps

import (
	"fmt"
	"os/exec"
	"strings"
)

// Requirement defines an external binary the tool relies on.
type Requirement struct {
	Name    string
	Command string
}

// Status reports the availability of a dependency. Detail carries the
// resolved path when available and the failure reason otherwise.
type Status struct {
	Requirement
	Available bool
	Detail    string
}

// CheckBinaries evaluates the provided requirements in order.
func CheckBinaries(requirements []Requirement) []Status {
	statuses := make([]Status, len(requirements))
	for i, req := range requirements {
		statuses[i] = check(req)
	}
	return statuses
}

func check(req Requirement) Status {
	status := Status{Requirement: req}
	status.Command = strings.TrimSpace(req.Command)
	if status.Command == "" {
		status.Detail = "command not configured"
		return status
	}
	resolved, err := exec.LookPath(status.Command)
	if err != nil {
		status.Detail = fmt.Sprintf("binary %q not found", status.Command)
		return status
	}
	status.Available = true
	status.Detail = resolved
	return status
}
