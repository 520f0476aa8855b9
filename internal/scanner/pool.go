package scanner

import "sync"

// indexPool recycles structural-index slices for callers that need a
// short-lived scratch slice outside of a pooled Scanner.
var indexPool = sync.Pool{
	New: func() interface{} {
		return make([]uint32, 0, 1024)
	},
}

// GetIndexSlice returns a zero-length []uint32 with spare capacity.
func GetIndexSlice() []uint32 {
	return indexPool.Get().([]uint32)
}

// PutIndexSlice returns a slice obtained from GetIndexSlice for reuse.
func PutIndexSlice(indexes []uint32) {
	if cap(indexes) > 1<<16 {
		return // don't pool very large slices
	}
	indexPool.Put(indexes[:0])
}
