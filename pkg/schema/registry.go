// Package schema validates serialized setup documents against CUE schemas.
// The schemas guard the top-level wire shape of a document before it is
// handed to the engine; field-level constraints live in the builder types
// themselves.
package schema

import (
	"context"
	"fmt"
	"sync"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"

	"github.com/stormbird-sim/stormbird-setup/pkg/document"
)

// Registry manages CUE schemas for setup document validation.
type Registry struct {
	ctx     *cue.Context
	schemas map[string]cue.Value
	mu      sync.RWMutex
}

// NewRegistry creates a registry with the built-in schemas.
func NewRegistry() *Registry {
	ctx := cuecontext.New()
	r := &Registry{
		ctx:     ctx,
		schemas: make(map[string]cue.Value),
	}

	r.registerBuiltInSchemas()

	return r
}

// registerBuiltInSchemas panics on a compile failure so that an edit to a
// built-in schema constant cannot silently leave the name unregistered.
func (r *Registry) registerBuiltInSchemas() {
	builtins := map[string]string{
		"simulation":       builtinSimulationSchema,
		"sail_model":       builtinSailModelSchema,
		"controller":       builtinControllerSchema,
		"wind_environment": builtinWindEnvironmentSchema,
	}
	for name, src := range builtins {
		if err := r.RegisterSchema(name, src); err != nil {
			panic(err)
		}
	}
}

// RegisterSchema compiles and registers a CUE schema under the given name.
func (r *Registry) RegisterSchema(name, schema string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	val := r.ctx.CompileString(schema)
	if err := val.Err(); err != nil {
		return fmt.Errorf("failed to compile schema %s: %w", name, err)
	}

	r.schemas[name] = val
	return nil
}

// GetSchema retrieves a schema by name.
func (r *Registry) GetSchema(name string) (cue.Value, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	val, ok := r.schemas[name]
	return val, ok
}

// ListSchemas returns all registered schema names.
func (r *Registry) ListSchemas() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.schemas))
	for name := range r.schemas {
		names = append(names, name)
	}
	return names
}

// ValidateJSON validates a serialized document against a named schema.
func (r *Registry) ValidateJSON(ctx context.Context, schemaName string, data []byte) error {
	schema, ok := r.GetSchema(schemaName)
	if !ok {
		return fmt.Errorf("schema %s not found", schemaName)
	}

	// JSON is a subset of CUE, so the document compiles directly.
	dataVal := r.ctx.CompileBytes(data)
	if err := dataVal.Err(); err != nil {
		return document.NewSchemaViolation("document is not valid JSON: " + err.Error())
	}

	unified := schema.Unify(dataVal)
	if err := unified.Validate(cue.Concrete(true)); err != nil {
		return document.NewSchemaViolation("schema " + schemaName + ": " + err.Error())
	}

	return nil
}

// ValidateDocument serializes a document and validates the result against a
// named schema.
func (r *Registry) ValidateDocument(ctx context.Context, schemaName string, doc document.Document) error {
	data, err := document.Marshal(doc)
	if err != nil {
		return err
	}
	return r.ValidateJSON(ctx, schemaName, data)
}

// Built-in schema definitions

const builtinSimulationSchema = `
// Root layout of a lifting line simulation document
#Vector: {x: number, y: number, z: number}

line_force_model: {
	wing_builders: [...{
		section_points: [...#Vector]
		chord_vectors: [...#Vector]
		...
	}]
	nr_sections: int & >=1
	density:     number & >0
	...
}

simulation_settings: {QuasiSteady: {...}} | {Dynamic: {...}}
`

const builtinSailModelSchema = `
// Root layout of a complete sail model document
lifting_line_simulation: {
	line_force_model: {...}
	simulation_settings: {QuasiSteady: {...}} | {Dynamic: {...}}
}

controller: {
	logic: {...}
	...
}

wind_environment: {...}

input_power?: _
`

const builtinControllerSchema = `
// Layout of a controller document
logic: {
	apparent_wind_directions_data: [...number]
	angle_of_attack_set_points_data?: [...number]
	section_model_internal_state_set_points_data?: [...number]
	internal_state_type: "Generic" | {SpinRatio: {diameter: number & >0, max_rps: number & >0}}
	use_effective_angle_of_attack: bool
}

flow_measurement_settings: {
	angle_of_attack: #Measurement
	wind_direction:  #Measurement
	wind_velocity:   #Measurement
}

time_steps_between_updates: int & >=1
start_time:                 number & >=0

max_local_wing_angle_change_rate?:       number
max_internal_section_state_change_rate?: number
moving_average_window_size?:             int & >=1

use_input_velocity_for_apparent_wind_direction: bool

#Measurement: {
	measurement_type: "Mean" | "Max" | "Min"
	start_index:      int & >=0
	end_offset:       int & >=0
}
`

const builtinWindEnvironmentSchema = `
// Layout of a wind environment document
#Vector: {x: number, y: number, z: number}

height_variation_model?: {PowerModel: {...}} | {LogarithmicModel: {...}}

up_direction:          #Vector
wind_rotation_axis:    #Vector
zero_direction_vector: #Vector

water_plane_height: number

inflow_corrections?: {individual_corrections: [...{...}]}
`
