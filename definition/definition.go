// Package definition loads state machine tables from YAML or TOML files.
//
// A definition names the closed set of states, the optional initial state and
// the legal transitions, each optionally reachable through a named link:
//
//	name: worker
//	initial: idle
//	states: [idle, running, stopped]
//	transitions:
//	  - {name: start, from: idle, to: running}
//	  - {from: running, to: stopped}
//	routes:
//	  - {state: running, data: halt, to: stopped}
//
// Routes become data listeners: sending the route's data while its state is
// current requests a change to the route's target.
package definition

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/atlekbai/hookfsm"
)

var (
	ErrUnknownFormat    = errors.New("unknown definition format")
	ErrFailedToParse    = errors.New("failed to parse definition")
	ErrInvalid          = errors.New("invalid definition")
	ErrFailedToReadFile = errors.New("failed to read definition file")
)

// Format is the encoding of a definition file.
type Format string

const (
	YAML Format = "yaml"
	TOML Format = "toml"
)

// FormatFromPath picks the format from a file extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(strings.TrimPrefix(filepath.Ext(path), ".")) {
	case "yaml", "yml":
		return YAML, nil
	case "toml":
		return TOML, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownFormat, path)
	}
}

// Transition declares a legal pair and, with a non-empty Name, a named link.
type Transition struct {
	Name string `yaml:"name,omitempty" toml:"name,omitempty"`
	From string `yaml:"from" toml:"from"`
	To   string `yaml:"to" toml:"to"`
}

// Route maps a data value received in State to a change to To.
type Route struct {
	State string `yaml:"state" toml:"state"`
	Data  string `yaml:"data" toml:"data"`
	To    string `yaml:"to" toml:"to"`
}

// Definition is the decoded form of a definition file.
type Definition struct {
	Name        string       `yaml:"name" toml:"name"`
	Initial     string       `yaml:"initial,omitempty" toml:"initial,omitempty"`
	States      []string     `yaml:"states" toml:"states"`
	Transitions []Transition `yaml:"transitions" toml:"transitions"`
	Routes      []Route      `yaml:"routes,omitempty" toml:"routes,omitempty"`
}

// Parse decodes a definition. Unknown fields are rejected.
func Parse(data []byte, format Format) (*Definition, error) {
	var def Definition

	switch format {
	case YAML:
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&def); err != nil {
			return nil, errors.Join(ErrFailedToParse, err)
		}
	case TOML:
		dec := toml.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&def); err != nil {
			return nil, errors.Join(ErrFailedToParse, err)
		}
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}

	return &def, nil
}

// Load reads and validates the definition file at path.
func Load(path string) (*Definition, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Join(ErrFailedToReadFile, err)
	}

	def, err := Parse(data, format)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if def.Name == "" {
		def.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	if err := def.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return def, nil
}

// Validate checks that the definition builds into a table, that the initial
// state, if set, is declared and that every route follows a declared transition.
func (d *Definition) Validate() error {
	_, err := d.Table()
	return err
}

// Table builds the immutable transition table of the definition.
func (d *Definition) Table() (*hookfsm.Table[string], error) {
	for i, s := range d.States {
		if strings.TrimSpace(s) == "" {
			return nil, fmt.Errorf("%w: state #%d has an empty name", ErrInvalid, i+1)
		}
	}

	b := hookfsm.NewTableBuilder(d.States...)
	for _, tr := range d.Transitions {
		b.Register(tr.Name, tr.From, tr.To)
	}

	table, err := b.Build()
	if err != nil {
		return nil, errors.Join(ErrInvalid, err)
	}

	if d.Initial != "" && !table.Contains(d.Initial) {
		return nil, fmt.Errorf("%w: initial state %q is not declared", ErrInvalid, d.Initial)
	}

	seen := make(map[[2]string]bool, len(d.Routes))
	for _, r := range d.Routes {
		if !table.IsLegal(r.State, r.To) {
			return nil, fmt.Errorf("%w: route %q from %q to %q has no declared transition", ErrInvalid, r.Data, r.State, r.To)
		}
		key := [2]string{r.State, r.Data}
		if seen[key] {
			return nil, fmt.Errorf("%w: route %q from %q is declared more than once", ErrInvalid, r.Data, r.State)
		}
		seen[key] = true
	}

	return table, nil
}

// InitialState returns the declared initial state, or the first state.
func (d *Definition) InitialState() string {
	if d.Initial != "" {
		return d.Initial
	}
	if len(d.States) > 0 {
		return d.States[0]
	}
	return ""
}

// NewStateMachine builds a state machine over the definition's table,
// starting in its initial state, with one data listener per routed state.
// opts are applied after the initial state.
func (d *Definition) NewStateMachine(opts ...hookfsm.Option[string]) (*hookfsm.StateMachine[string], error) {
	table, err := d.Table()
	if err != nil {
		return nil, err
	}

	opts = append([]hookfsm.Option[string]{hookfsm.WithInitialState(d.InitialState())}, opts...)
	sm, err := hookfsm.NewStateMachine(table, opts...)
	if err != nil {
		return nil, err
	}

	for state, routes := range d.routesByState() {
		sm.OnData(state, routeListener(routes))
	}
	return sm, nil
}

func (d *Definition) routesByState() map[string]map[string]string {
	byState := make(map[string]map[string]string)
	for _, r := range d.Routes {
		if byState[r.State] == nil {
			byState[r.State] = make(map[string]string)
		}
		byState[r.State][r.Data] = r.To
	}
	return byState
}

func routeListener(routes map[string]string) hookfsm.DataListener[string] {
	return func(data any) (hookfsm.Result[string], error) {
		if to, ok := routes[fmt.Sprint(data)]; ok {
			return hookfsm.Next(to), nil
		}
		return hookfsm.NoResult[string](), nil
	}
}
