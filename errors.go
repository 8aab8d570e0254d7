package sim

import (
	"errors"

	"github.com/gogpu/sim/platform"
)

// Host errors.
var (
	// ErrAlreadyInitialized is returned by Initialize on a host that has
	// already been initialized.
	ErrAlreadyInitialized = errors.New("sim: host already initialized")

	// ErrSimulationAlreadyRunning is returned by Start while another
	// simulation is current.
	ErrSimulationAlreadyRunning = errors.New("sim: simulation already running")

	// ErrNoPlatformAvailable is returned when no platform factory succeeds.
	ErrNoPlatformAvailable = platform.ErrNoPlatformAvailable

	// ErrHostDisposed is returned by operations on a disposed host.
	ErrHostDisposed = errors.New("sim: host disposed")

	// ErrNotInitialized is returned by lookups before Initialize.
	ErrNotInitialized = errors.New("sim: host not initialized")

	// ErrStopped is returned by Start once a simulation has run to
	// completion. A stopped host cannot be restarted.
	ErrStopped = errors.New("sim: host stopped")

	// ErrNilSimulation is returned by Start(nil).
	ErrNilSimulation = errors.New("sim: nil simulation")
)
