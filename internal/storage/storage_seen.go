package storage

import "fmt"

func (s *Storage) SetLastSeen(guildID string, seen SeenRecord) error {
	record, err := s.getOrCreateGuildRecord(guildID)
	if err != nil {
		return err
	}

	record.LastSeen[seen.UserID] = seen
	s.ds.Add(guildID, record)
	return nil
}

func (s *Storage) GetLastSeen(guildID, userID string) (*SeenRecord, error) {
	record, err := s.getOrCreateGuildRecord(guildID)
	if err != nil {
		return nil, err
	}

	seen, exists := record.LastSeen[userID]
	if !exists {
		return nil, fmt.Errorf("no sighting of user %s", userID)
	}
	return &seen, nil
}
