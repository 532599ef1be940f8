// Package simulation assembles the root setup documents: the lifting line
// simulation builder, its solver and wake settings, and the complete sail
// model that pairs a simulation with a controller and a wind environment.
//
// The package owns the top-level wire layout. Builder serializes to the two
// keys line_force_model and simulation_settings; CompleteSailModelBuilder
// adds the controller and wind environment around it.
package simulation
