package replay

import (
	"crypto/sha256"
	"database/sql"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"git.lost.host/meutraa/keyfall/internal/game"
	_ "github.com/mattn/go-sqlite3"
)

var ErrNoSession = errors.New("no recorded session for this score")

// Session is one recorded game.
type Session struct {
	ID         int64
	Sum        string
	TickPeriod float64
	Ticks      uint64
	Journal    []game.Stamped
	Recorded   time.Time
}

type Store struct {
	db *sql.DB
}

func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite3", path)
	if nil != err {
		return nil, err
	}

	initStatement := `
	create table if not exists sessions
	  (
		  id integer not null primary key,
		  sum text not null,
		  tick_period real not null,
		  ticks integer not null,
		  inputs blob not null,
		  recorded integer not null
	  );
	create index if not exists sessions_sum on sessions(sum);
	`
	if _, err := db.Exec(initStatement); nil != err {
		db.Close()
		return nil, fmt.Errorf("unable to create sessions table: %w", err)
	}
	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// Sum identifies a score by the contents of its file.
func Sum(score []byte) string {
	sum := sha256.Sum256(score)
	return base64.StdEncoding.EncodeToString(sum[:])
}

func (s *Store) Save(session Session) (int64, error) {
	data, err := json.Marshal(compactInputs(session.Journal))
	if nil != err {
		return 0, fmt.Errorf("unable to marshal inputs: %w", err)
	}
	recorded := session.Recorded
	if recorded.IsZero() {
		recorded = time.Now()
	}
	res, err := s.db.Exec(
		"insert into sessions(sum, tick_period, ticks, inputs, recorded) values(?, ?, ?, ?, ?)",
		session.Sum, session.TickPeriod, int64(session.Ticks), data, recorded.UnixNano(),
	)
	if nil != err {
		return 0, fmt.Errorf("unable to save session: %w", err)
	}
	return res.LastInsertId()
}

// Load returns every session recorded for the score, oldest first.
func (s *Store) Load(sum string) ([]Session, error) {
	return s.query("select id, sum, tick_period, ticks, inputs, recorded from sessions where sum = ? order by id", sum)
}

// Latest returns the most recent session recorded for the score.
func (s *Store) Latest(sum string) (Session, error) {
	sessions, err := s.query("select id, sum, tick_period, ticks, inputs, recorded from sessions where sum = ? order by id desc limit 1", sum)
	if nil != err {
		return Session{}, err
	}
	if len(sessions) == 0 {
		return Session{}, ErrNoSession
	}
	return sessions[0], nil
}

func (s *Store) query(q string, args ...interface{}) ([]Session, error) {
	rows, err := s.db.Query(q, args...)
	if nil != err {
		return nil, fmt.Errorf("unable to load sessions: %w", err)
	}
	defer rows.Close()

	sessions := []Session{}
	for rows.Next() {
		var session Session
		var ticks, recorded int64
		var inputs []byte
		if err := rows.Scan(&session.ID, &session.Sum, &session.TickPeriod, &ticks, &inputs, &recorded); nil != err {
			return nil, err
		}
		var ins []InputsCompact
		if err := json.Unmarshal(inputs, &ins); nil != err {
			return nil, fmt.Errorf("unable to unmarshal session %v: %w", session.ID, err)
		}
		session.Journal, err = uncompactInputs(ins)
		if nil != err {
			return nil, fmt.Errorf("session %v: %w", session.ID, err)
		}
		session.Ticks = uint64(ticks)
		session.Recorded = time.Unix(0, recorded)
		sessions = append(sessions, session)
	}
	return sessions, rows.Err()
}
