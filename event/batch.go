package event

// Batch is a set of logs decoded together and the block range they cover.
type Batch struct {
	Logs      []Log
	FromBlock uint64
	ToBlock   uint64
}

// NewBatch wraps logs, which need not be sorted, and computes their range.
func NewBatch(logs []Log) Batch {
	b := Batch{Logs: logs}
	for i, l := range logs {
		if i == 0 || l.BlockNumber < b.FromBlock {
			b.FromBlock = l.BlockNumber
		}
		if l.BlockNumber > b.ToBlock {
			b.ToBlock = l.BlockNumber
		}
	}
	return b
}

func (b Batch) Len() int { return len(b.Logs) }

func (b Batch) IsEmpty() bool { return len(b.Logs) == 0 }
