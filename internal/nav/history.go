package nav

// History is the address projection of the navigation state.
type History interface {
	// Path returns the current entry.
	Path() string
	// Push appends an entry after the current one, dropping any forward entries.
	Push(path string)
	// Back moves to the previous entry; false when there is none.
	Back() bool
	// Forward moves to the next entry; false when there is none.
	Forward() bool
	// CanBack and CanForward report whether Back or Forward would move.
	CanBack() bool
	CanForward() bool
}

// MemoryHistory is a browser-like session history held in memory.
type MemoryHistory struct {
	entries []string
	cursor  int
}

// NewMemoryHistory starts a history at the given path.
func NewMemoryHistory(initial string) *MemoryHistory {
	return &MemoryHistory{entries: []string{initial}}
}

func (h *MemoryHistory) Path() string {
	return h.entries[h.cursor]
}

func (h *MemoryHistory) Push(path string) {
	h.entries = append(h.entries[:h.cursor+1], path)
	h.cursor = len(h.entries) - 1
}

func (h *MemoryHistory) Back() bool {
	if h.cursor == 0 {
		return false
	}
	h.cursor--
	return true
}

func (h *MemoryHistory) Forward() bool {
	if h.cursor >= len(h.entries)-1 {
		return false
	}
	h.cursor++
	return true
}

func (h *MemoryHistory) CanBack() bool { return h.cursor > 0 }

func (h *MemoryHistory) CanForward() bool { return h.cursor < len(h.entries)-1 }
