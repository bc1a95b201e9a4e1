// /internal/storage/storage.go
package storage

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/keshon/datastore"
)

const (
	modLogLimit      int = 50
	voteHistoryLimit int = 20
)

type Storage struct {
	ds *datastore.DataStore
}

type ModLogEntry struct {
	Action     string    `json:"action"` // "edit" or "delete"
	ChannelID  string    `json:"channel_id"`
	MessageID  string    `json:"message_id"`
	AuthorID   string    `json:"author_id"`
	AuthorName string    `json:"author_name"`
	Before     string    `json:"before"`
	After      string    `json:"after"`
	Datetime   time.Time `json:"datetime"`
}

type MuteRecord struct {
	UserID   string    `json:"user_id"`
	Username string    `json:"username"`
	MutedBy  string    `json:"muted_by"`
	Reason   string    `json:"reason"`
	Until    time.Time `json:"until"`
	Datetime time.Time `json:"datetime"`
}

type SeenRecord struct {
	UserID    string    `json:"user_id"`
	Username  string    `json:"username"`
	ChannelID string    `json:"channel_id"`
	Datetime  time.Time `json:"datetime"`
}

type VoteRecord struct {
	Question  string    `json:"question"`
	ChannelID string    `json:"channel_id"`
	StartedBy string    `json:"started_by"`
	Yes       int       `json:"yes"`
	No        int       `json:"no"`
	Datetime  time.Time `json:"datetime"`
}

type Record struct {
	ModLog   []ModLogEntry         `json:"mod_log"`
	Mutes    map[string]MuteRecord `json:"mutes"`     // key = userID
	LastSeen map[string]SeenRecord `json:"last_seen"` // key = userID
	Votes    []VoteRecord          `json:"votes"`
}

func New(filePath string) (*Storage, error) {
	ds, err := datastore.New(filePath)
	if err != nil {
		return nil, err
	}
	return &Storage{ds: ds}, nil
}

func (s *Storage) Close() error {
	return s.ds.Close()
}

// Helper to get or create a Record for a guild. Histories are trimmed
// to their caps here so old guild data converges on load.
func (s *Storage) getOrCreateGuildRecord(guildID string) (*Record, error) {
	data, exists := s.ds.Get(guildID)
	if !exists {
		newRecord := &Record{
			Mutes:    map[string]MuteRecord{},
			LastSeen: map[string]SeenRecord{},
		}
		s.ds.Add(guildID, newRecord)
		return newRecord, nil
	}

	jsonData, err := json.Marshal(data)
	if err != nil {
		return nil, fmt.Errorf("error marshalling data: %w", err)
	}

	var record Record
	err = json.Unmarshal(jsonData, &record)
	if err != nil {
		return nil, fmt.Errorf("error unmarshalling to *Record: %w", err)
	}

	if record.Mutes == nil {
		record.Mutes = map[string]MuteRecord{}
	}
	if record.LastSeen == nil {
		record.LastSeen = map[string]SeenRecord{}
	}
	if len(record.ModLog) > modLogLimit {
		record.ModLog = record.ModLog[len(record.ModLog)-modLogLimit:]
	}
	if len(record.Votes) > voteHistoryLimit {
		record.Votes = record.Votes[len(record.Votes)-voteHistoryLimit:]
	}

	return &record, nil
}
