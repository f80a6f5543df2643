package pg

// Store records and reads evaluations through one connection pool.
type Store struct {
	*Storer
	*Reader
	pool *ConnectionPool
}

func NewStore(pool *ConnectionPool) *Store {
	return &Store{
		Storer: &Storer{db: pool.conn},
		Reader: &Reader{db: pool.conn},
		pool:   pool,
	}
}

func (s *Store) Close() {
	s.pool.Close()
}
