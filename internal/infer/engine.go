package infer

import "dada/internal/ir"

type signalKind uint8

const (
	sigAwaitVar signalKind = iota
	sigAwaitTask
	sigDone
)

type signal struct {
	kind   signalKind
	v      ir.InferVarID
	waitOn *Task
	result any
}

// Task is one coroutine spawned on an Engine, grounded on the teacher's
// TaskInfo/TaskTracker idiom but tracking the compiler's own suspended
// work instead of the checked program's spawned tasks.
type Task struct {
	id     uint32
	resume chan struct{}
	yield  chan signal

	done   bool
	result any

	// waitingTasks holds every task currently suspended awaiting this
	// task's completion, in the order each started waiting — woken in
	// that order once this task finishes, preserving deterministic FIFO
	// wake ordering (§5).
	waitingTasks []*Task
}

// ID identifies the task within its engine, in spawn order.
func (t *Task) ID() uint32 { return t.id }

// Done reports whether the task has produced a result.
func (t *Task) Done() bool { return t.done }

// Result returns the task's final value; valid only once Done is true.
func (t *Task) Result() any { return t.result }

// Ctx is the handle a task body uses to reach the engine's three
// suspension points (§4.F, §5): awaiting a variable's next bound, awaiting
// another task's resolution, and awaiting the next item of a
// bound-iteration stream (built atop the same per-variable wake list as
// the first point, since both are "this variable grew" events).
type Ctx struct {
	task   *Task
	engine *Engine
}

// Table is the shared inference-variable table this task's engine owns.
func (c *Ctx) Table() *Table { return c.engine.Table }

// AwaitBound suspends the calling task until a new bound, fact, or
// poison arrives on v, or until end-of-stream, whichever happens first.
// Returns a snapshot of v's record and whether it reflects genuinely new
// data (false at end-of-stream, when the snapshot is merely the
// best-effort final state).
func (c *Ctx) AwaitBound(v ir.InferVarID) (Record, bool) {
	if c.engine.endOfStream {
		return c.engine.Table.Snapshot(v), false
	}
	c.task.yield <- signal{kind: sigAwaitVar, v: v}
	<-c.task.resume
	return c.engine.Table.Snapshot(v), !c.engine.endOfStream
}

// AwaitTask suspends until other has completed, or until end-of-stream if
// other never completes (which should not happen in practice: every task
// is forced to run to a result no later than the final end-of-stream pass).
func (c *Ctx) AwaitTask(other *Task) (any, bool) {
	if other.done {
		return other.result, true
	}
	if c.engine.endOfStream {
		return nil, false
	}
	c.task.yield <- signal{kind: sigAwaitTask, waitOn: other}
	<-c.task.resume
	if other.done {
		return other.result, true
	}
	return nil, false
}

// NextTypeBound returns the index-th lower/upper RedTy bound recorded for
// v once it exists, suspending (via the same mechanism as AwaitBound)
// until it does. A type variable only ever carries one lower and one upper
// bound (§4.F), so index beyond 0 never resolves before end-of-stream.
func (c *Ctx) NextTypeBound(v ir.InferVarID, dir Direction, index int) (Record, bool) {
	for {
		rec := c.engine.Table.Snapshot(v)
		has := rec.HasLowerTy
		if dir == Upper {
			has = rec.HasUpperTy
		}
		if index == 0 && has {
			return rec, true
		}
		if c.engine.endOfStream {
			return rec, false
		}
		c.task.yield <- signal{kind: sigAwaitVar, v: v}
		<-c.task.resume
	}
}

// NextPermissionBound returns the index-th chain of v's lower/upper bound
// set, suspending until that many chains have arrived or end-of-stream.
func (c *Ctx) NextPermissionBound(v ir.InferVarID, dir Direction, index int) (Record, bool) {
	for {
		rec := c.engine.Table.Snapshot(v)
		n := len(rec.LowerChains)
		if dir == Upper {
			n = len(rec.UpperChains)
		}
		if index < n {
			return rec, true
		}
		if c.engine.endOfStream {
			return rec, false
		}
		c.task.yield <- signal{kind: sigAwaitVar, v: v}
		<-c.task.resume
	}
}

// Engine owns a variable Table and the deterministic FIFO scheduler that
// drives every task spawned on it. Per §5 there is never more than one
// task's body actually executing at once — Spawn's goroutines exist only
// so a task body can be written as ordinary blocking Go code around the
// three suspension points, not to introduce real parallelism.
type Engine struct {
	Table *Table

	nextID uint32
	tasks  []*Task
	ready  []*Task

	// varWakers holds, per variable, the tasks currently suspended
	// awaiting its next bound — in the order each suspended, so waking
	// them (by moving them to the back of ready) preserves FIFO fairness.
	varWakers map[ir.InferVarID][]*Task

	endOfStream bool
}

// NewEngine builds an Engine over a fresh (or supplied) variable table.
func NewEngine(table *Table) *Engine {
	if table == nil {
		table = NewTable()
	}
	return &Engine{Table: table, varWakers: map[ir.InferVarID][]*Task{}}
}

// Spawn starts body as a new task, queued to run on the next Run pass.
func (e *Engine) Spawn(body func(ctx *Ctx) any) *Task {
	e.nextID++
	t := &Task{id: e.nextID, resume: make(chan struct{}), yield: make(chan signal)}
	ctx := &Ctx{task: t, engine: e}
	go func() {
		<-t.resume
		res := body(ctx)
		t.yield <- signal{kind: sigDone, result: res}
	}()
	e.tasks = append(e.tasks, t)
	e.ready = append(e.ready, t)
	return t
}

// NotifyVar marks v as having just grown a new bound/fact, waking every
// task currently suspended on it (moved to the ready queue in the order
// they originally suspended). Callers that mutate the Table directly
// (insert_bound, require_is) should call this whenever the mutating
// operation reports it actually changed something.
func (e *Engine) NotifyVar(v ir.InferVarID) {
	woken := e.varWakers[v]
	if len(woken) == 0 {
		return
	}
	delete(e.varWakers, v)
	e.ready = append(e.ready, woken...)
}

// Run drives every spawned task to completion or end-of-stream and
// returns each task's final result in spawn order.
func (e *Engine) Run() []any {
	for {
		for len(e.ready) > 0 {
			t := e.ready[0]
			e.ready = e.ready[1:]
			t.resume <- struct{}{}
			msg := <-t.yield
			switch msg.kind {
			case sigAwaitVar:
				e.varWakers[msg.v] = append(e.varWakers[msg.v], t)
			case sigAwaitTask:
				if msg.waitOn.done {
					e.ready = append(e.ready, t)
				} else {
					msg.waitOn.waitingTasks = append(msg.waitOn.waitingTasks, t)
				}
			case sigDone:
				t.done = true
				t.result = msg.result
				woken := t.waitingTasks
				t.waitingTasks = nil
				e.ready = append(e.ready, woken...)
			}
		}

		if e.endOfStream || !e.hasUnfinished() {
			break
		}

		e.endOfStream = true
		for v, ws := range e.varWakers {
			e.ready = append(e.ready, ws...)
			delete(e.varWakers, v)
		}
		for _, t := range e.tasks {
			if !t.done && len(t.waitingTasks) > 0 {
				e.ready = append(e.ready, t.waitingTasks...)
				t.waitingTasks = nil
			}
		}
	}

	results := make([]any, len(e.tasks))
	for i, t := range e.tasks {
		results[i] = t.result
	}
	return results
}

func (e *Engine) hasUnfinished() bool {
	for _, t := range e.tasks {
		if !t.done {
			return true
		}
	}
	return false
}
