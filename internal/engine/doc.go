// Package engine implements the question-flow and content-selection core:
// dependency-ordered question traversal, answer validation, declarative rule
// evaluation, document assembly, and the generation pipeline that ties them
// together. The package is pure computation over in-memory data; loading
// content and writing files belong to the content and output packages.
package engine
