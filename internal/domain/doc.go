// Package domain contains the core entities of the couple diary: diary entries,
// profiles and the emotion vocabularies they use. The analytics engines live in
// sub-packages and depend only on these types, never on storage or transport.
package domain
