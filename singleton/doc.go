// Package singleton keeps one lazily created instance per type.
//
// The first access to a type seeds it with the constructor registered in
// [create], if any. [Instance] falls back to the synthesized constructor of
// [create.Lookup] when nothing was registered.
package singleton
