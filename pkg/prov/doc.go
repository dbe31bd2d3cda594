// Package prov defines the PROV statement vocabulary and the relation
// schema registry that drives every translation in provgraph.
//
// The W3C PROV data model has three element kinds (entities, activities,
// agents) and fourteen relation kinds (generation, usage, derivation, and
// so on). Each kind appears under a different category key in PROV-JSON,
// a different @type in PROV-JSONLD, and with different endpoint roles and
// styling in the visual graph. The registry unifies all of that per-kind
// knowledge into a single ordered table so that importers, exporters, and
// the visual builder dispatch from one source of truth instead of keeping
// parallel switch statements.
//
// The registry is populated at init time and never mutated afterwards, so
// lookups are safe for concurrent use without locking.
//
// # Usage
//
//	schema, ok := prov.Lookup("wasDerivedFrom")
//	if ok && schema.Kind == prov.KindRelation {
//	    src, dst := schema.Source, schema.Target // "usedEntity", "generatedEntity"
//	}
package prov
