package mb

// QueryPragma returns the current value of a pragma on the store connection.
func QueryPragma(s *Store, name string) (string, error) {
	var value string
	err := s.db.QueryRow("PRAGMA " + name).Scan(&value)
	return value, err
}
