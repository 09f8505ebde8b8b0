// Package pgtree models the generic parse tree emitted by the grammar
// engine. Each node kind is one struct implementing Node; the package
// decodes the engine's JSON wire shape and nothing more. Policy, such as
// which node kinds and clause combinations the front end accepts, lives
// in pkg/transform.
//
// The wire document is {"version":N,"stmts":[{"stmt":{...}},...]} where
// every node-valued field is a one-key envelope naming the kind, for
// example {"SelectStmt":{...}} or {"A_Const":{"val":{"Integer":
// {"val":4}}}}. Field names are snake_case. Node kinds this package does
// not know decode to Unknown so the transform can report them by name.
package pgtree
