package storage

// AppendModLog appends an edit or delete audit entry for a guild.
func (s *Storage) AppendModLog(guildID string, entry ModLogEntry) error {
	record, err := s.getOrCreateGuildRecord(guildID)
	if err != nil {
		return err
	}

	record.ModLog = append(record.ModLog, entry)
	if len(record.ModLog) > modLogLimit {
		record.ModLog = record.ModLog[len(record.ModLog)-modLogLimit:]
	}
	s.ds.Add(guildID, record)
	return nil
}

// FetchModLog returns audit entries, newest first, at most limit of
// them. A limit of zero or less means all retained entries.
func (s *Storage) FetchModLog(guildID string, limit int) ([]ModLogEntry, error) {
	record, err := s.getOrCreateGuildRecord(guildID)
	if err != nil {
		return nil, err
	}

	entries := record.ModLog
	if limit > 0 && len(entries) > limit {
		entries = entries[len(entries)-limit:]
	}

	out := make([]ModLogEntry, 0, len(entries))
	for i := len(entries) - 1; i >= 0; i-- {
		out = append(out, entries[i])
	}
	return out, nil
}
