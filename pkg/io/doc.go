// Package io provides JSON and YAML import and export for member collections.
//
// # Overview
//
// A member document is the flat list of family members that the editor
// works on. The format matches what the original web editor kept in memory,
// so documents can be exchanged with it:
//
//	[
//	  {"id": "root-1", "parentId": null, "name": "Grandfather",
//	   "regionalName": "दादाजी", "relationType": "Root", "gender": "male"},
//	  {"id": "member-1", "parentId": "root-1", "name": "Son",
//	   "relationType": "Son", "gender": "male"}
//	]
//
// A top-level object with a "members" array is accepted as well. YAML
// documents use the same field names.
//
// # Validation
//
// Import checks what a document can get wrong on its own: malformed
// syntax, missing or unsafe identities, duplicate identities and unknown
// gender tags. Structural checks (exactly one root, resolvable parents, no
// cycles) belong to the hierarchy package and run on every rebuild, so a
// structurally broken document still imports and renders a diagnostic.
//
// The root is written with "parentId": null so that re-imported documents
// are byte-for-byte stable.
package io
