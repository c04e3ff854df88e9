// Package rbx implements the core instance model for rbxdoc: arena-backed
// instance trees, tagged property values, the runtime instance registry,
// and the reflection database of known classes.
//
// Instances are lightweight handles into a shared Arena. Copying an
// Instance copies the handle, not the node; every handle to the same node
// observes the same state. The Arena is the unit of ownership and the
// unit of locking: all host-side mutation and all background codec reads
// go through it.
package rbx
