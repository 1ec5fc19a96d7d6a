// Package supervisor owns the single API worker process.
//
// A Supervisor keeps one slot, empty or holding a running *Process, behind a
// mutex. Start spawns a worker and stores it; Stop takes whatever is stored
// and sends it a forceful termination signal. Both are safe to call from
// different goroutines, which is how host frameworks deliver their ready and
// close-requested callbacks.
//
// State machine:
//
//	Empty --Start ok--> Running --Stop--> Empty
//	Empty --Start err-> Empty
//	Running --Start ok--> Running (previous worker terminated first)
//
// There is no restart-on-crash and no health check: a nil error from Start
// only means the OS accepted the spawn.
package supervisor
