// Package jsonld serializes canonical documents as PROV-JSONLD and
// parses PROV-JSONLD input for visualization.
//
// # Output Shape
//
// [Marshal] produces a single JSON-LD object:
//
//	{
//	  "@context": [
//	    {"ex": "https://example.org/"},
//	    "https://openprovenance.org/prov-jsonld/context.json"
//	  ],
//	  "@graph": [
//	    {"@type": "prov:Entity", "@id": "ex:report", ...},
//	    {"@type": "prov:Generation", "entity": "ex:report", ...}
//	  ]
//	}
//
// The namespace object is present only when the document declares
// prefixes; the canonical context IRI is always last. @graph lists
// bundles first, then statements grouped by registry category in
// registry order, keeping per-category declaration order. Bundles carry
// their own @context (their own prefixes only, never the inherited ones)
// and a nested @graph; nesting stops there.
//
// # Parsing
//
// [Parse] reads the subset of PROV-JSONLD the visual pipeline consumes:
// namespace objects from the @context array and the raw @graph items.
// It does not validate statements; the visual builder decides what each
// item means.
package jsonld
