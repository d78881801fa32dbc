package interactions

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/bwmarrin/discordgo"
)

var (
	ErrDuplicateCommand  = errors.New("duplicate command name")
	ErrInvalidDescriptor = errors.New("invalid command descriptor")
)

// HandlerFunc renders a view for an invocation
type HandlerFunc func(ctx context.Context, req *Request) (*View, error)

// Descriptor binds a command definition to its handler
type Descriptor struct {
	Definition *discordgo.ApplicationCommand
	Handler    HandlerFunc
	Ephemeral  bool
}

// Name is the command name
func (d Descriptor) Name() string {
	if d.Definition == nil {
		return ""
	}
	return d.Definition.Name
}

// CommandProvider is implemented by every feature
type CommandProvider interface {
	Commands() []Descriptor
}

// Registry maps command names to descriptors. It is filled once at startup
// and only read afterwards.
type Registry struct {
	commands map[string]Descriptor
}

// NewRegistry creates an empty registry
func NewRegistry() *Registry {
	return &Registry{commands: make(map[string]Descriptor)}
}

// Register adds a descriptor, rejecting duplicates
func (r *Registry) Register(d Descriptor) error {
	name := d.Name()
	if name == "" || d.Handler == nil {
		return fmt.Errorf("%w: %q", ErrInvalidDescriptor, name)
	}
	if _, exists := r.commands[name]; exists {
		return fmt.Errorf("%w: %s", ErrDuplicateCommand, name)
	}
	r.commands[name] = d
	return nil
}

// Load registers every command of every provider
func (r *Registry) Load(providers ...CommandProvider) error {
	for _, p := range providers {
		for _, d := range p.Commands() {
			if err := r.Register(d); err != nil {
				return err
			}
		}
	}
	return nil
}

// Lookup finds a descriptor by command name
func (r *Registry) Lookup(name string) (Descriptor, bool) {
	d, ok := r.commands[name]
	return d, ok
}

// Definitions returns the command definitions sorted by name
func (r *Registry) Definitions() []*discordgo.ApplicationCommand {
	defs := make([]*discordgo.ApplicationCommand, 0, len(r.commands))
	for _, d := range r.commands {
		defs = append(defs, d.Definition)
	}
	sort.Slice(defs, func(i, j int) bool { return defs[i].Name < defs[j].Name })
	return defs
}

// Len is the number of registered commands
func (r *Registry) Len() int {
	return len(r.commands)
}
