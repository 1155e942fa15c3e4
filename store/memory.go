package store

import (
	"sync"

	"handin/model"

	"github.com/zeromicro/go-zero/core/logx"
)

// Memory is the process-lifetime Store.
type Memory struct {
	mu     sync.RWMutex
	states map[string]model.SubmissionState

	seqMu    sync.Mutex
	lastID   int64
	sequence Sequence

	pendingMu sync.Mutex
	pending   *model.PendingComment
}

// Option configures a Memory store.
type Option func(*Memory)

// WithSequence draws submission ids from seq. Ids stay strictly increasing
// even if seq fails or goes backwards.
func WithSequence(seq Sequence) Option {
	return func(m *Memory) {
		m.sequence = seq
	}
}

// NewMemory creates an empty store.
func NewMemory(opts ...Option) *Memory {
	m := &Memory{states: make(map[string]model.SubmissionState)}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

func (m *Memory) GetOrCreate(userID string) model.SubmissionState {
	m.mu.RLock()
	st, ok := m.states[userID]
	m.mu.RUnlock()
	if ok {
		return st.Clone()
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if st, ok = m.states[userID]; !ok {
		st = model.NewSubmissionState()
		m.states[userID] = st
	}
	return st.Clone()
}

func (m *Memory) Put(userID string, state model.SubmissionState) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.states[userID] = state.Clone()
}

func (m *Memory) Reset(userID string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.states[userID] = model.NewSubmissionState()
}

func (m *Memory) NextSubmissionID() int64 {
	m.seqMu.Lock()
	defer m.seqMu.Unlock()

	next := m.lastID + 1
	if m.sequence != nil {
		id, err := m.sequence.Next()
		switch {
		case err != nil:
			logx.Errorw("submission sequence failed, using in-memory counter",
				logx.Field("err", err), logx.Field("next", next))
			m.catchUp(next)
		case id > next:
			next = id
		case id < next:
			// 之前回退到内存计数器, 把持久化序列追上来
			m.catchUp(next)
		}
	}
	m.lastID = next
	return next
}

// catchUp keeps the sequence from handing out next again after a restart.
func (m *Memory) catchUp(next int64) {
	if err := m.sequence.AtLeast(next); err != nil {
		logx.Errorw("submission sequence catch-up failed",
			logx.Field("err", err), logx.Field("next", next))
	}
}

func (m *Memory) SetPendingComment(pc *model.PendingComment) {
	m.pendingMu.Lock()
	defer m.pendingMu.Unlock()
	if pc == nil {
		m.pending = nil
		return
	}
	cp := *pc
	m.pending = &cp
}

func (m *Memory) PendingComment() *model.PendingComment {
	m.pendingMu.Lock()
	defer m.pendingMu.Unlock()
	if m.pending == nil {
		return nil
	}
	cp := *m.pending
	return &cp
}

func (m *Memory) TakePendingComment(match func(model.PendingComment) bool) (model.PendingComment, bool) {
	m.pendingMu.Lock()
	defer m.pendingMu.Unlock()
	if m.pending == nil || !match(*m.pending) {
		return model.PendingComment{}, false
	}
	pc := *m.pending
	m.pending = nil
	return pc, true
}
