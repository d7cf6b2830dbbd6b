// Package app runs one inspector command against a world file.
//
// The Dispatcher owns the command flow: open the world, build its tree, then
// route to one of the commands:
//   - ls: list a folder, or echo the path of a file
//   - read: render a file by suffix
//   - edit: reserved, reports that it is not implemented
//
// Navigation errors from ls are printed inline as "error: ..." and the run
// still succeeds. Setup and read failures are fatal: a diagnostic goes to
// stderr and Run returns a non-zero exit code.
//
// Example Usage:
//
//	d := &app.Dispatcher{Program: "brdbfs", Stdout: os.Stdout, Stderr: os.Stderr}
//	os.Exit(d.Run(ctx, []string{"my.brdb", "ls", "/World"}))
package app
