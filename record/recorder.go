// Package record persists per-operation access outcomes into a SQLite
// database, one row per protocol invocation, for offline analysis of a run.
package record

import (
	"database/sql"
	"fmt"
	"os"
	"strings"

	"github.com/fatih/structs"

	// Need to use SQLite connections.
	_ "github.com/mattn/go-sqlite3"
	"github.com/rs/xid"
	"github.com/tebeka/atexit"
)

// An OutcomeRecord is one protocol invocation as stored in the database. A
// modify operation produces two records, one for its load phase and one for
// its store phase, sharing the same sequence number.
type OutcomeRecord struct {
	Seq     int
	Kind    string
	Phase   string
	Address uint64
	Size    int

	L1Cache   string
	L1SetID   int
	L1Hit     bool
	L1Miss    bool
	L1Evicted bool

	L2SetID   int
	L2Hit     bool
	L2Miss    bool
	L2Evicted bool

	PlacedInL1   bool
	PlacedInL2   bool
	WroteToStore bool
}

// A Recorder stores outcome records.
type Recorder interface {
	Record(r OutcomeRecord)
	Flush()
}

const tableName = "outcomes"

// SQLiteRecorder is a Recorder that batches records into a SQLite database.
type SQLiteRecorder struct {
	*sql.DB

	dbName    string
	batchSize int
	pending   []OutcomeRecord
}

// NewSQLiteRecorder creates a recorder writing to path + ".sqlite3". If path
// is empty, a unique name is generated. The recorder flushes its last batch
// at exit.
func NewSQLiteRecorder(path string) *SQLiteRecorder {
	r := &SQLiteRecorder{
		dbName:    path,
		batchSize: 100000,
	}

	r.init()

	atexit.Register(func() { r.Flush() })

	return r
}

func (r *SQLiteRecorder) init() {
	if r.dbName == "" {
		r.dbName = "cachesim_run_" + xid.New().String()
	}

	filename := r.dbName + ".sqlite3"

	_, err := os.Stat(filename)
	if err == nil {
		panic(fmt.Errorf("file %s already exists", filename))
	}

	fmt.Fprintf(os.Stderr, "Database created for recording: %s\n", filename)

	db, err := sql.Open("sqlite3", filename)
	if err != nil {
		panic(err)
	}
	r.DB = db

	r.createTable()
}

func (r *SQLiteRecorder) createTable() {
	fields := structs.Names(OutcomeRecord{})

	createTableSQL := `CREATE TABLE ` + tableName +
		` (` + "\n\t" + strings.Join(fields, ", \n\t") + "\n" + `);`
	r.mustExecute(createTableSQL)
}

// Record buffers one outcome, flushing when the batch is full.
func (r *SQLiteRecorder) Record(record OutcomeRecord) {
	r.pending = append(r.pending, record)

	if len(r.pending) >= r.batchSize {
		r.Flush()
	}
}

// Flush writes all the buffered records into the database.
func (r *SQLiteRecorder) Flush() {
	if len(r.pending) == 0 {
		return
	}

	r.mustExecute("BEGIN TRANSACTION")
	defer r.mustExecute("COMMIT TRANSACTION")

	stmt := r.prepareStatement()
	defer stmt.Close()

	for _, record := range r.pending {
		_, err := stmt.Exec(structs.Values(record)...)
		if err != nil {
			panic(err)
		}
	}

	r.pending = nil
}

func (r *SQLiteRecorder) mustExecute(query string) sql.Result {
	res, err := r.Exec(query)
	if err != nil {
		fmt.Printf("Failed to execute: %s\n", query)
		panic(err)
	}

	return res
}

func (r *SQLiteRecorder) prepareStatement() *sql.Stmt {
	fields := structs.Names(OutcomeRecord{})
	placeholders := make([]string, len(fields))
	for i := range placeholders {
		placeholders[i] = "?"
	}

	sqlStr := "INSERT INTO " + tableName +
		" VALUES (" + strings.Join(placeholders, ", ") + ")"

	stmt, err := r.Prepare(sqlStr)
	if err != nil {
		panic(err)
	}

	return stmt
}
