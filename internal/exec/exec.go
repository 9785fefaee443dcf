package exec

import (
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/veldin/keyweave/internal/input/command"
	"github.com/veldin/keyweave/internal/register"
	"github.com/veldin/keyweave/internal/surface"
)

var (
	// ErrNoHandler means no handler is registered for the action name.
	ErrNoHandler = errors.New("no handler for action")

	// ErrMissingArgument means the command lacks the argument its handler
	// needs, e.g. an operator without a motion.
	ErrMissingArgument = errors.New("missing command argument")

	// ErrTargetNotFound means a search motion found no target, which
	// aborts the whole command.
	ErrTargetNotFound = errors.New("motion target not found")
)

// Transaction tags one command execution for tracing and log correlation.
type Transaction struct {
	ID      string
	Seq     uint64
	Started time.Time
}

// Context carries everything a handler acts on.
type Context struct {
	Tx        Transaction
	Surface   surface.Surface
	Registers *register.Store

	// Marks is the shared mark table (m / ` / '). It lives as long as
	// the executor.
	Marks map[rune]surface.Position
}

// Handler executes one named action.
type Handler func(ctx *Context, cmd *command.Command) error

// Registry maps action names to handlers. Safe for concurrent use.
type Registry struct {
	mu       sync.RWMutex
	handlers map[string]Handler
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{handlers: make(map[string]Handler)}
}

// Register adds a handler, replacing any existing one for the name.
func (r *Registry) Register(name string, h Handler) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.handlers[name] = h
}

// Unregister removes the handler for an action name.
func (r *Registry) Unregister(name string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.handlers, name)
}

// Resolve returns the handler for an action name.
func (r *Registry) Resolve(name string) (Handler, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	h, ok := r.handlers[name]
	return h, ok
}

// Has reports whether a handler exists for the name.
func (r *Registry) Has(name string) bool {
	_, ok := r.Resolve(name)
	return ok
}

// Names returns the registered action names, sorted.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.handlers))
	for name := range r.handlers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Executor runs commands against one surface. Executions are serialized:
// a handler always sees the surface state its predecessors left behind.
type Executor struct {
	mu        sync.Mutex
	registry  *Registry
	surf      surface.Surface
	registers *register.Store
	marks     map[rune]surface.Position
	seq       uint64
}

// New builds an executor over a surface and register store with the
// built-in handler set installed.
func New(surf surface.Surface, registers *register.Store) *Executor {
	if registers == nil {
		registers = register.NewStore()
	}
	e := &Executor{
		registry:  NewRegistry(),
		surf:      surf,
		registers: registers,
		marks:     make(map[rune]surface.Position),
	}
	registerBuiltins(e.registry)
	return e
}

// Registry exposes the handler registry so hosts can add actions, e.g.
// user-scripted ones.
func (e *Executor) Registry() *Registry { return e.registry }

// Execute runs one command inside a fresh transaction.
func (e *Executor) Execute(cmd *command.Command) error {
	if cmd == nil || cmd.Action == nil {
		return fmt.Errorf("%w: empty command", ErrNoHandler)
	}
	e.mu.Lock()
	defer e.mu.Unlock()

	h, ok := e.registry.Resolve(cmd.Action.Name)
	if !ok {
		return fmt.Errorf("%w: %s", ErrNoHandler, cmd.Action.Name)
	}

	e.seq++
	ctx := &Context{
		Tx: Transaction{
			ID:      uuid.New().String(),
			Seq:     e.seq,
			Started: time.Now(),
		},
		Surface:   e.surf,
		Registers: e.registers,
		Marks:     e.marks,
	}
	return h(ctx, cmd)
}
