package core

// DefaultBatchSize is the number of records sent per insert call.
const DefaultBatchSize = 50

// Batch is a contiguous slice of records with its position in the file.
// Start and End are 1-based, inclusive.
type Batch struct {
	Start   int
	End     int
	Records []Record
}

// Chunk partitions records into batches of at most size, preserving order.
// The batches share the backing array of records. A non-positive size
// falls back to DefaultBatchSize.
func Chunk(records []Record, size int) []Batch {
	if size <= 0 {
		size = DefaultBatchSize
	}

	batches := make([]Batch, 0, (len(records)+size-1)/size)
	for i := 0; i < len(records); i += size {
		end := min(i+size, len(records))
		batches = append(batches, Batch{
			Start:   i + 1,
			End:     end,
			Records: records[i:end:end],
		})
	}
	return batches
}
