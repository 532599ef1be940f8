// Package lineforce builds the line force model: the ordered collection of
// wing elements composing one simulated configuration, plus the circulation
// corrections applied to the solved distribution.
package lineforce
