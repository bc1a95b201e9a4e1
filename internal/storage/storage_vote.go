package storage

// AppendVote stores a finished vote for a guild.
func (s *Storage) AppendVote(guildID string, vote VoteRecord) error {
	record, err := s.getOrCreateGuildRecord(guildID)
	if err != nil {
		return err
	}

	record.Votes = append(record.Votes, vote)
	if len(record.Votes) > voteHistoryLimit {
		record.Votes = record.Votes[len(record.Votes)-voteHistoryLimit:]
	}
	s.ds.Add(guildID, record)
	return nil
}

func (s *Storage) FetchVotes(guildID string) ([]VoteRecord, error) {
	record, err := s.getOrCreateGuildRecord(guildID)
	if err != nil {
		return nil, err
	}
	return record.Votes, nil
}
