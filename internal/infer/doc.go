// Package infer implements the cooperative-concurrent inference engine
// (§4.F, §5): a table of inference variables carrying predicate facts and
// reduced-term bounds, plus a single-threaded, deterministic scheduler that
// drives tasks suspended at exactly the three points described in §5 —
// awaiting the next bound on a variable, awaiting another task's resolution,
// and awaiting the next item in a bound-iteration stream.
//
// Grounded on the teacher's internal/sema/task_tracking.go, whose
// TaskInfo/TaskTracker/arena-with-nextID idiom tracked the checked
// language's own spawned tasks; here the same shape tracks the compiler's
// own coroutines instead. The scheduler is built from real goroutines
// baton-passed through unbuffered channels rather than an explicit
// state-machine Poll method: the engine's driver loop only ever has one
// task's channel unblocked at a time, so execution is still single-threaded
// and deterministic even though each task is its own goroutine.
package infer
