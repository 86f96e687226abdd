package memdb

import (
	"sync"

	"chiroportaal/internal/domain"
)

// PairKey identifies a composite-key record (memberId+workYearId and the
// like).
type PairKey [2]int64

// DB is an explicit in-memory database backing the memory repositories. It
// holds every table in one place so cross-entity reference counting works the
// same way it does in Postgres. Construct one per test or per demo process;
// it is never package-level state.
type DB struct {
	mu     sync.Mutex
	nextID map[string]int64

	Addresses     map[int64]domain.Address
	Groups        map[int64]domain.Group
	WorkYears     map[int64]domain.WorkYear
	Members       map[int64]domain.Member
	Parents       map[int64]domain.Parent
	Sponsors      map[int64]domain.Sponsor
	Events        map[int64]domain.Event
	Memberships   map[PairKey]domain.YearlyMembership
	Agreements    map[PairKey]domain.SponsorshipAgreement
	Registrations map[PairKey]domain.EventRegistration
	ParentLinks   map[PairKey]domain.MemberParentLink
}

// New returns an empty database.
func New() *DB {
	return &DB{
		nextID:        make(map[string]int64),
		Addresses:     make(map[int64]domain.Address),
		Groups:        make(map[int64]domain.Group),
		WorkYears:     make(map[int64]domain.WorkYear),
		Members:       make(map[int64]domain.Member),
		Parents:       make(map[int64]domain.Parent),
		Sponsors:      make(map[int64]domain.Sponsor),
		Events:        make(map[int64]domain.Event),
		Memberships:   make(map[PairKey]domain.YearlyMembership),
		Agreements:    make(map[PairKey]domain.SponsorshipAgreement),
		Registrations: make(map[PairKey]domain.EventRegistration),
		ParentLinks:   make(map[PairKey]domain.MemberParentLink),
	}
}

// Lock takes the database-wide mutex. Every repository operation runs under
// it, which stands in for the single-connection serialization a test store
// needs.
func (db *DB) Lock() { db.mu.Lock() }

// Unlock releases the database-wide mutex.
func (db *DB) Unlock() { db.mu.Unlock() }

// NextID hands out the next identity for a table. IDs are monotonically
// increasing and never reused, even after deletions.
func (db *DB) NextID(table string) int64 {
	db.nextID[table]++
	return db.nextID[table]
}
