// Package document defines the build/validate/serialize/deserialize contract
// shared by every stormbird setup model, and the generic tagged-union codec
// behind it.
//
// # Overview
//
// Setup documents are handed to the external stormbird engine as UTF-8 JSON
// text. The engine decodes them with serde's externally tagged enum
// convention, so this package implements that convention once, generically,
// and every union type in the module goes through it. A wrong encoding here
// silently breaks interoperability with the engine, which is why the rules
// are centralized rather than repeated per union.
//
// # Contract
//
// Every model implements Document. Marshal validates before emitting, so an
// invalid document is never handed to the engine. Unmarshal is strict: an
// unknown field at any nesting level is a SchemaViolation, never silently
// dropped, which rejects stale documents early. Optional fields that were
// never set are omitted from the output entirely rather than emitted as
// null, keeping documents sparse and letting the engine fill its own
// defaults.
//
// # Errors
//
// All failures are typed through Error with a closed ErrorKind set:
// SchemaViolation, UnknownVariantTag, AmbiguousVariant,
// UnsupportedConfiguration, and IOFailure. Errors are local, synchronous,
// and non-retryable; no recovery is attempted at this layer.
package document
