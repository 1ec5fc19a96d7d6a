// Package launch decides what to execute for the API worker.
//
// A Plan names the interpreter, the entry artifact passed as its only
// argument, and the working directory. Interpreter selection is an explicit
// two-step ExecutablePolicy: the bundled binary under the resource directory
// when it exists, otherwise a bare command name left to the OS search path at
// spawn time.
//
// Planning fails with an *EntryMissingError (matching ErrEntryMissing) when
// the entry artifact is absent. The artifact's contents are never read.
package launch
