// Package layoutdoc reads declarative layout documents and turns them into
// compose widget trees.
//
// A document is YAML:
//
//	key: profile-card
//	canvas:
//	  width: 400
//	  height: 200
//	  background: {type: fill, color: "#202830"}
//	root:
//	  type: vsplit
//	  separator: 8
//	  padding: [12]
//	  children:
//	    - type: text
//	      id: title
//	      text: Hello World
//	      style: {size: 24, color: "#fff"}
//	    - type: image
//	      src: avatar.png
//	      width: 64
//
// Parse decodes and validates a document once; every value a widget needs
// is normalized there, so Build never inspects raw input again. Unknown
// fields, unknown node types and unknown alignment tokens are reported as
// compose.ErrInvalidConfiguration.
package layoutdoc
