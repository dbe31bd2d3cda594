// Package provjson decodes PROV-JSON documents into the canonical model.
//
// # Overview
//
// PROV-JSON groups statements by category, with one JSON object per
// category mapping statement identifiers to attribute objects:
//
//	{
//	  "prefix": {"ex": "https://example.org/"},
//	  "entity": {
//	    "ex:report": {"prov:label": "Report", "ex:version": 2}
//	  },
//	  "activity": {
//	    "ex:compile": {"prov:startTime": "2024-01-01T10:00:00"}
//	  },
//	  "wasGeneratedBy": {
//	    "_:gen1": {"prov:entity": "ex:report", "prov:activity": "ex:compile"}
//	  },
//	  "bundle": {
//	    "ex:run1": {"prefix": {...}, "entity": {...}}
//	  }
//	}
//
// [Decode] walks the recognized categories in registry order and builds
// a [document.Document]. Statement order within each category, attribute
// order within each statement, and namespace declaration order are all
// preserved. Unrecognized categories are ignored; attribute keys without
// a namespace prefix are dropped.
//
// # Attribute Values
//
// PROV-JSON attribute values come in three shapes, all accepted per
// value (and values may be single or listed):
//
//   - a bare scalar, converted to a plain string literal
//   - a typed literal {"$": ..., "type": ..., "lang": ...}, where "$"
//     is carried without modification
//   - any other object, passed through opaquely
//
// Relation properties named in the category's registry schema (endpoint
// references and qualifiers such as prov:time) are carried raw and
// ordered by the schema table, not by their position in the input.
package provjson
