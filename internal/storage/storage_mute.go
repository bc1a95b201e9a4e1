package storage

import (
	"sort"
	"time"
)

func (s *Storage) SetMute(guildID string, mute MuteRecord) error {
	record, err := s.getOrCreateGuildRecord(guildID)
	if err != nil {
		return err
	}

	record.Mutes[mute.UserID] = mute
	s.ds.Add(guildID, record)
	return nil
}

func (s *Storage) ClearMute(guildID, userID string) error {
	record, err := s.getOrCreateGuildRecord(guildID)
	if err != nil {
		return err
	}

	delete(record.Mutes, userID)
	s.ds.Add(guildID, record)
	return nil
}

// ActiveMutes returns unexpired mutes ordered by expiry. Expired
// entries are dropped from the record on the way.
func (s *Storage) ActiveMutes(guildID string) ([]MuteRecord, error) {
	record, err := s.getOrCreateGuildRecord(guildID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	dirty := false
	var active []MuteRecord
	for userID, mute := range record.Mutes {
		if mute.Until.Before(now) {
			delete(record.Mutes, userID)
			dirty = true
			continue
		}
		active = append(active, mute)
	}
	if dirty {
		s.ds.Add(guildID, record)
	}

	sort.Slice(active, func(i, j int) bool {
		return active[i].Until.Before(active[j].Until)
	})
	return active, nil
}
