// Package orchestrator wires the loader, group builder, transformers and
// renderer registry behind a single Generate call.
package orchestrator
