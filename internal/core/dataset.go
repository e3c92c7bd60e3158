package core

// dataset.go reads and writes the dataset snapshot consumed by the store.
//
// The snapshot is a single JSON object mapping id -> record body:
//
//	{"123456789012":{"name":"Asha","age":30,"gender":"Female","address":{"city":"Pune","state":"Maharashtra"}}, ...}
//
// Decoding is streamed entry by entry and keeps the key order of the file,
// which becomes the store's iteration order. A JavaScript module wrapper
// around the object ("const mockData = {...}; module.exports = mockData;")
// is tolerated: anything before the opening brace and after the closing
// brace is ignored.

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/jackc/pgx/v5"
)

// datasetEntry is the on-disk record body; the id is the object key.
type datasetEntry struct {
	Name    string  `json:"name"`
	Age     int     `json:"age"`
	Gender  string  `json:"gender"`
	Address Address `json:"address"`
}

// ReadDataset decodes a dataset snapshot in file order.
// Records are not validated here; NewStore does that.
func ReadDataset(r io.Reader) ([]Record, error) {
	br := bufio.NewReaderSize(r, 64*1024)
	if err := skipToObject(br); err != nil {
		return nil, err
	}

	dec := json.NewDecoder(br)
	if _, err := dec.Token(); err != nil { // opening brace
		return nil, fmt.Errorf("%w: %w", ErrInvalidDataset, err)
	}

	var records []Record
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, fmt.Errorf("%w: read key: %w", ErrInvalidDataset, err)
		}
		id, ok := tok.(string)
		if !ok {
			return nil, fmt.Errorf("%w: expected string key, got %v", ErrInvalidDataset, tok)
		}

		var e datasetEntry
		if err := dec.Decode(&e); err != nil {
			return nil, fmt.Errorf("%w: record %s: %w", ErrInvalidDataset, id, err)
		}
		records = append(records, Record{
			ID:      id,
			Name:    e.Name,
			Age:     e.Age,
			Gender:  e.Gender,
			Address: e.Address,
		})
	}

	if _, err := dec.Token(); err != nil { // closing brace
		return nil, fmt.Errorf("%w: %w", ErrInvalidDataset, err)
	}
	return records, nil
}

// skipToObject discards input up to (not including) the first '{'.
func skipToObject(br *bufio.Reader) error {
	for {
		b, err := br.ReadByte()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return fmt.Errorf("%w: no JSON object found", ErrInvalidDataset)
			}
			return fmt.Errorf("%w: %w", ErrInvalidDataset, err)
		}
		if b == '{' {
			return br.UnreadByte()
		}
	}
}

// WriteDataset encodes records as a compact dataset snapshot in the given order.
func WriteDataset(w io.Writer, records []Record) error {
	bw := bufio.NewWriterSize(w, 64*1024)

	if err := bw.WriteByte('{'); err != nil {
		return err
	}
	for i, rec := range records {
		if i > 0 {
			if err := bw.WriteByte(','); err != nil {
				return err
			}
		}
		key, err := json.Marshal(rec.ID)
		if err != nil {
			return fmt.Errorf("encode id %s: %w", rec.ID, err)
		}
		body, err := json.Marshal(datasetEntry{
			Name:    rec.Name,
			Age:     rec.Age,
			Gender:  rec.Gender,
			Address: rec.Address,
		})
		if err != nil {
			return fmt.Errorf("encode record %s: %w", rec.ID, err)
		}
		if _, err := bw.Write(key); err != nil {
			return err
		}
		if err := bw.WriteByte(':'); err != nil {
			return err
		}
		if _, err := bw.Write(body); err != nil {
			return err
		}
	}
	if err := bw.WriteByte('}'); err != nil {
		return err
	}
	return bw.Flush()
}

// LoadFile reads a dataset snapshot from path.
func LoadFile(path string) ([]Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open dataset: %w", err)
	}
	defer f.Close()

	records, err := ReadDataset(f)
	if err != nil {
		return nil, fmt.Errorf("read dataset %s: %w", path, err)
	}
	return records, nil
}

// Querier is the subset of pgx used to read a dataset.
// Satisfied by *pgxpool.Pool, *pgx.Conn and pgx.Tx.
type Querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

// LoadPostgres reads a dataset from a table with columns
// id, name, age, gender, city, state, ordered by id.
// table may be schema-qualified ("registry.identity_records").
func LoadPostgres(ctx context.Context, db Querier, table string) ([]Record, error) {
	ident := pgx.Identifier(strings.Split(table, "."))
	query := fmt.Sprintf(`SELECT id, name, age, gender, city, state FROM %s ORDER BY id`, ident.Sanitize())

	rows, err := db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query dataset: %w", err)
	}

	records, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (Record, error) {
		var rec Record
		err := row.Scan(&rec.ID, &rec.Name, &rec.Age, &rec.Gender, &rec.Address.City, &rec.Address.State)
		return rec, err
	})
	if err != nil {
		return nil, fmt.Errorf("scan dataset: %w", err)
	}
	return records, nil
}
