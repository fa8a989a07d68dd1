package main

import (
	"context"
	"fmt"

	gocql "github.com/apache/cassandra-gocql-driver/v2"
	"github.com/sirupsen/logrus"
)

const resultQuery = `SELECT district_id, party_id, candidate_id, votes FROM votes WHERE district_id = ?`

// VoteSource reports the votes cast in a district, keyed by party id.
type VoteSource interface {
	DistrictVotes(ctx context.Context, districtID int) (map[int]int, error)
	Close()
}

type cassandraSource struct {
	session     *gocql.Session
	consistency gocql.Consistency
}

var _ VoteSource = (*cassandraSource)(nil)

// newVoteSource is replaced in tests.
var newVoteSource = func(cfg cassandraConfig) (VoteSource, error) {
	return newCassandraSource(cfg)
}

func newCassandraSource(cfg cassandraConfig) (*cassandraSource, error) {
	var consistency gocql.Consistency
	if err := consistency.UnmarshalText([]byte(cfg.Consistency)); err != nil {
		return nil, fmt.Errorf("invalid consistency %q: %w", cfg.Consistency, err)
	}

	cluster := gocql.NewCluster(cfg.Hosts...)
	cluster.Keyspace = cfg.Keyspace
	cluster.Timeout = cfg.Timeout
	cluster.Consistency = consistency

	session, err := cluster.CreateSession()
	if err != nil {
		return nil, fmt.Errorf("failed to connect to Cassandra: %w", err)
	}
	logrus.WithFields(logrus.Fields{
		"hosts":    cfg.Hosts,
		"keyspace": cfg.Keyspace,
	}).Debug("connected to Cassandra")

	return &cassandraSource{session: session, consistency: consistency}, nil
}

// DistrictVotes sums the per-candidate counters of a district by party.
func (s *cassandraSource) DistrictVotes(ctx context.Context, districtID int) (map[int]int, error) {
	iter := s.session.Query(resultQuery, districtID).Consistency(s.consistency).IterContext(ctx)

	totals := make(map[int]int)
	var rowDistrict, partyID, candidateID, votes int
	for iter.Scan(&rowDistrict, &partyID, &candidateID, &votes) {
		totals[partyID] += votes
	}
	if err := iter.Close(); err != nil {
		return nil, fmt.Errorf("failed to read votes of district %d: %w", districtID, err)
	}
	return totals, nil
}

func (s *cassandraSource) Close() {
	s.session.Close()
}
