// Package manifest holds ordered collections of parsed manifest documents.
//
// Documents are kept as yaml.Node trees rather than Go maps so that key
// order and scalar styles survive verbatim into the generated bundle.
// A Set preserves input order: files contribute their documents in file
// order, multi-document files in document order.
package manifest
