package ledger

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Warning is a single disciplinary record. It is immutable once written.
type Warning struct {
	Timestamp   time.Time `json:"timestamp"`
	ModeratorID int64     `json:"moderator_id"`
	Reason      string    `json:"reason"`
}

// store maps guild id -> user id -> warnings in chronological order. Keys are
// the string form of the Discord snowflakes.
type store map[string]map[string][]Warning

// Ledger is the durable warning history, mirrored to a JSON snapshot file on
// every mutation. The file is the whole store; there is no incremental write.
type Ledger struct {
	mu     sync.Mutex
	path   string
	logger *zap.Logger
	store  store
	now    func() time.Time
}

func New(path string, logger *zap.Logger) *Ledger {
	l := &Ledger{
		path:   path,
		logger: logger,
		store:  store{},
		now:    time.Now,
	}
	l.load()
	return l
}

// load reads the snapshot file. A missing file is an empty store; a corrupt
// file is logged and treated the same, never fatal.
func (l *Ledger) load() {
	data, err := os.ReadFile(l.path)
	if err != nil {
		if !os.IsNotExist(err) {
			l.logger.Warn("warning store unreadable, starting empty", zap.String("path", l.path), zap.Error(err))
		}
		return
	}
	var parsed store
	if err := json.Unmarshal(data, &parsed); err != nil {
		l.logger.Warn("warning store corrupt, starting empty", zap.String("path", l.path), zap.Error(err))
		return
	}
	if parsed != nil {
		l.store = parsed
	}
}

// Record appends a warning for (guildID, userID) and rewrites the snapshot.
// It returns the 1-based position of the new record, which is also the user's
// warning count. The in-memory append always takes effect, even when the
// snapshot write fails.
func (l *Ledger) Record(guildID, userID string, moderatorID int64, reason string) (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	users := l.store[guildID]
	if users == nil {
		users = map[string][]Warning{}
		l.store[guildID] = users
	}
	users[userID] = append(users[userID], Warning{
		Timestamp:   l.now().UTC(),
		ModeratorID: moderatorID,
		Reason:      reason,
	})
	count := len(users[userID])

	if err := l.persistLocked(); err != nil {
		return count, err
	}
	return count, nil
}

// List returns a copy of the warning history for (guildID, userID), oldest
// first. Unknown pairs yield an empty slice, never an error.
func (l *Ledger) List(guildID, userID string) []Warning {
	l.mu.Lock()
	defer l.mu.Unlock()

	records := l.store[guildID][userID]
	out := make([]Warning, len(records))
	copy(out, records)
	return out
}

func (l *Ledger) persistLocked() error {
	data, err := json.MarshalIndent(l.store, "", "  ")
	if err != nil {
		return err
	}
	if dir := filepath.Dir(l.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	return os.WriteFile(l.path, data, 0o644)
}
