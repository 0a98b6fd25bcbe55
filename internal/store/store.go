package store

import (
	jsoniter "github.com/json-iterator/go"
	"go.uber.org/zap"

	"beulahpos/internal/domain"
)

const (
	// RecordKey holds the serialized dataset shared by every station.
	RecordKey = "pdv_data"
	// LogoKey holds the company logo blob, settable independently.
	LogoKey = "company_logo"
	// BackupKey receives a copy of the record from the scheduled backup job.
	BackupKey = "pdv_data.backup"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Store persists the shared record and publishes a change notification
// for every successful write.
type Store struct {
	kv  *KV
	bus *Bus
}

func New(kv *KV, bus *Bus) *Store {
	return &Store{kv: kv, bus: bus}
}

func (s *Store) Bus() *Bus { return s.bus }

// Load reads the record from the store. A missing or corrupt value
// degrades to empty collections; callers always get a usable record.
func (s *Store) Load() domain.Record {
	var rec domain.Record
	raw, ok, err := s.kv.Get(RecordKey)
	if err != nil {
		zap.S().Errorf("store: load failed: %v", err)
		return rec
	}
	if !ok {
		return rec
	}
	if err := json.Unmarshal([]byte(raw), &rec); err != nil {
		zap.S().Errorf("store: corrupt record, starting empty: %v", err)
		return domain.Record{}
	}
	migrate(&rec)
	return rec
}

// migrate patches legacy records in place: expenses written before the
// payment-status field existed default to pending.
func migrate(rec *domain.Record) {
	for i := range rec.Expenses {
		if rec.Expenses[i].PaymentStatus == "" {
			rec.Expenses[i].PaymentStatus = domain.PaymentPending
		}
	}
}

// Save overwrites the whole record.
func (s *Store) Save(rec domain.Record, writer string) error {
	return s.write(rec, writer)
}

// SaveFields merges only the collections named by fields into the
// stored record, preserving everything else. This read-merge-write is
// how a station avoids clobbering collections it never loaded.
func (s *Store) SaveFields(rec domain.Record, fields domain.FieldSet, writer string) error {
	if fields == domain.AllFields {
		return s.write(rec, writer)
	}
	cur := s.Load()
	cur.Merge(rec, fields)
	return s.write(cur, writer)
}

func (s *Store) write(rec domain.Record, writer string) error {
	b, err := json.Marshal(rec)
	if err != nil {
		return err
	}
	if err := s.kv.Set(RecordKey, string(b)); err != nil {
		return err
	}
	s.bus.Publish(RecordKey, writer)
	return nil
}

// Logo returns the stored logo blob, if any.
func (s *Store) Logo() (string, bool) {
	v, ok, err := s.kv.Get(LogoKey)
	if err != nil {
		zap.S().Errorf("store: logo read failed: %v", err)
		return "", false
	}
	return v, ok
}

func (s *Store) SetLogo(data, writer string) error {
	if err := s.kv.Set(LogoKey, data); err != nil {
		return err
	}
	s.bus.Publish(LogoKey, writer)
	return nil
}

func (s *Store) RemoveLogo(writer string) error {
	if err := s.kv.Delete(LogoKey); err != nil {
		return err
	}
	s.bus.Publish(LogoKey, writer)
	return nil
}

// Backup copies the current record value under BackupKey. Run on a
// schedule; a best-effort safety net, not a transaction log.
func (s *Store) Backup() error {
	raw, ok, err := s.kv.Get(RecordKey)
	if err != nil {
		return err
	}
	if !ok {
		return nil
	}
	return s.kv.Set(BackupKey, raw)
}
