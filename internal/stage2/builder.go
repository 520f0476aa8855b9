package stage2

// Builder receives one callback per grammar production as StructuralParser
// walks the structural index array. It is the seam between grammar
// recognition and the two consumers that sit on top of it: the DOM tape
// writer in package tape, and NoopBuilder below which only validates.
//
// Every method is handed the iterator so it can read the raw bytes at a
// reported offset (a key, a number, a string, a `true`/`false`/`null`
// literal) without the parser having to pre-decode anything it might not
// need. Field methods report a key offset pointing at the opening '"' of
// the field name; value/primitive methods report the offset of the value's
// first byte.
type Builder interface {
	StartDocument(iter *StructuralIterator) ErrorCode
	EndDocument(iter *StructuralIterator) ErrorCode

	// RootPrimitive is called when the document's single top-level value is
	// a number, string, or literal rather than an object or array.
	RootPrimitive(iter *StructuralIterator, valueOffset uint32) ErrorCode

	EmptyObject(iter *StructuralIterator) ErrorCode
	StartObject(iter *StructuralIterator) ErrorCode
	EndObject(iter *StructuralIterator) ErrorCode
	TryResumeObject(iter *StructuralIterator) ErrorCode
	TryEndObject(iter *StructuralIterator) ErrorCode

	EmptyObjectField(iter *StructuralIterator, keyOffset uint32) ErrorCode
	StartObjectField(iter *StructuralIterator, keyOffset uint32) ErrorCode
	PrimitiveField(iter *StructuralIterator, keyOffset, valueOffset uint32) ErrorCode
	EmptyArrayField(iter *StructuralIterator, keyOffset uint32) ErrorCode
	StartArrayField(iter *StructuralIterator, keyOffset uint32) ErrorCode

	EmptyArray(iter *StructuralIterator) ErrorCode
	StartArray(iter *StructuralIterator) ErrorCode
	EndArray(iter *StructuralIterator) ErrorCode
	TryResumeArray(iter *StructuralIterator) ErrorCode
	// TryResumeArrayValue is TryResumeArray for generic_next's lookahead
	// branch that has already advanced past a string value followed by ','
	// ("value",). It is a checkpoint only: that branch still reaches
	// array_value's own Primitive call for the value (the "value"] branch
	// does not call this method and calls Primitive directly before
	// EndArray), so this method itself must not write anything.
	TryResumeArrayValue(iter *StructuralIterator, valueOffset uint32) ErrorCode
	TryEndArray(iter *StructuralIterator) ErrorCode
	Primitive(iter *StructuralIterator, valueOffset uint32) ErrorCode
}
