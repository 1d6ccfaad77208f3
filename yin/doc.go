/*
Package yin implements a statement-driven descent parser for the YIN XML
serialization of YANG schema modules.

The parser turns a YIN byte stream into an in-memory parsed-schema tree while
enforcing YANG's structural, cardinality, ordering, value and version rules.
It does not interpret the semantics of an assembled module (reference
resolution, type compilation, augment application); that is left to a
downstream compiler operating on the tree this package produces.
*/
package yin
