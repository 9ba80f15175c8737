// Package models defines the shared data types for guidekit: the generated
// document kinds and the fully-resolved project configuration produced from a
// completed wizard run. These types are consumed by the selection engine, the
// content repository, and the output sink.
package models
