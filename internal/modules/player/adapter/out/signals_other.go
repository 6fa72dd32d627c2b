//go:build !unix

package out

import (
	"fmt"
	"os"
	"runtime"
)

func suspend(*os.Process) error { return fmt.Errorf("pausing the player is not supported on %s", runtime.GOOS) }

func resume(*os.Process) error { return fmt.Errorf("resuming the player is not supported on %s", runtime.GOOS) }
