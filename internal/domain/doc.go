// Package domain contains the core business entities, value objects, and
// domain logic of the tutoring engine: learning profiles, conversation
// analyses, messages, replies, and the badge catalog. It is independent
// of any specific infrastructure or delivery mechanism; entities validate
// themselves and expose clamped mutators so invariants hold regardless of
// caller behavior.
package domain
