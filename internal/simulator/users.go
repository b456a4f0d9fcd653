package simulator

// UserDisplayName formats the preferred display name for a user. User 2's
// profile is missing its last_name entry, so the concatenation inside
// DisplayName fails with a type mismatch.
func (s *Service) UserDisplayName(userID int64) string {
	user := s.lookupUser(userID)
	return user.DisplayName()
}

// NotificationSettings resolves a user's notification delivery settings with
// defaults applied. User 1 has no notifications preference group, so the
// defaults are written into a nil map.
func (s *Service) NotificationSettings(userID int64) map[string]string {
	user := s.lookupUser(userID)
	return user.Preferences.ApplyChannelDefaults("notifications")
}
