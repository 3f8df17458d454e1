package domain

// DefaultHistoryLimit is the default maximum depth of the undo stack.
const DefaultHistoryLimit = 50

// RecordStack is a bounded stack of change records. When a push grows it
// past its limit, the oldest record (index 0) is evicted.
type RecordStack struct {
	records []ChangeRecord
	limit   int
}

// NewRecordStack creates a stack holding at most limit records.
func NewRecordStack(limit int) (*RecordStack, error) {
	if limit <= 0 {
		return nil, ErrInvalidHistoryLimit
	}
	return &RecordStack{
		records: make([]ChangeRecord, 0, limit+1),
		limit:   limit,
	}, nil
}

// Push adds r on top and returns the evicted record, if any.
func (s *RecordStack) Push(r ChangeRecord) (evicted ChangeRecord) {
	s.records = append(s.records, r)
	if len(s.records) > s.limit {
		evicted = s.records[0]
		copy(s.records, s.records[1:])
		s.records[len(s.records)-1] = nil
		s.records = s.records[:len(s.records)-1]
	}
	return evicted
}

// Pop removes and returns the top record.
func (s *RecordStack) Pop() (ChangeRecord, bool) {
	if len(s.records) == 0 {
		return nil, false
	}
	top := s.records[len(s.records)-1]
	s.records[len(s.records)-1] = nil
	s.records = s.records[:len(s.records)-1]
	return top, true
}

// Peek returns the top record without removing it.
func (s *RecordStack) Peek() (ChangeRecord, bool) {
	if len(s.records) == 0 {
		return nil, false
	}
	return s.records[len(s.records)-1], true
}

// Len returns the number of records on the stack.
func (s *RecordStack) Len() int {
	return len(s.records)
}

// Limit returns the maximum depth.
func (s *RecordStack) Limit() int {
	return s.limit
}

// Clear removes every record.
func (s *RecordStack) Clear() {
	clear(s.records)
	s.records = s.records[:0]
}

// Records returns a copy of the stack, oldest first.
func (s *RecordStack) Records() []ChangeRecord {
	out := make([]ChangeRecord, len(s.records))
	copy(out, s.records)
	return out
}
