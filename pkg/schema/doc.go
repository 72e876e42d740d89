// Package schema decodes story documents.
//
// A story document is JSON or YAML with two top-level fields:
//
//	startId: intro
//	scenes:
//	  intro:
//	    title: The Forest
//	    text: Lotka walks into the forest. It is quiet.
//	    choices:
//	      - text: Follow the path
//	        nextId: path
//	  path:
//	    title: The Path
//	    text: The path ends at a lake.
//
// Parse accepts raw bytes (YAML is a superset of JSON, so both go through the
// same decoder). Decode accepts an already parsed generic map, which is what the
// remote and key-value loaders produce. Both report syntax problems as
// domain.ErrLoad and missing fields as domain.ErrStructure.
package schema
