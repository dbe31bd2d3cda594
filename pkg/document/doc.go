// Package document defines the canonical in-memory model for PROV
// documents: an ordered collection of element and relation statements,
// optionally grouped into one level of named bundles, plus the namespace
// declarations the document carries.
//
// The model sits between the PROV-JSON importer and the PROV-JSONLD
// exporter. Statement order is preserved exactly as declared, because
// both serializations are order-sensitive; category grouping is the
// exporter's job, not the model's. Relations reference nodes by
// identifier only - references are not resolved against the node set, so
// a relation may legally point at identifiers declared elsewhere.
//
// A Document is built once during import and read afterwards; it is not
// safe for concurrent mutation.
package document
