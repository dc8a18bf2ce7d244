// Package sqlite implements the repositories on top of an SQLite database file.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/asakaida/edurecords/internal/entities"
	"github.com/asakaida/edurecords/internal/repositories"
)

const (
	insertPersonQuery   = "INSERT INTO persons (name, age, type, attribute) VALUES (?, ?, ?, ?)"
	selectPersonsQuery  = "SELECT name, age, type, attribute FROM persons"
	updatePersonAgeStmt = "UPDATE persons SET age = ? WHERE name = ?"
	deletePersonStmt    = "DELETE FROM persons WHERE name = ?"
)

// SQLitePersonRepository implements PersonRepository using SQLite
type SQLitePersonRepository struct {
	db *sql.DB
}

// NewSQLitePersonRepository creates a new SQLite person repository
func NewSQLitePersonRepository(db *sql.DB) repositories.PersonRepository {
	return &SQLitePersonRepository{db: db}
}

// Save inserts a row for the person
func (r *SQLitePersonRepository) Save(ctx context.Context, person entities.Person) error {
	row, err := entities.ToRow(person)
	if err != nil {
		return fmt.Errorf("invalid person: %w", err)
	}

	_, err = r.exec(ctx, "save person", insertPersonQuery, row.Name, row.Age, row.Type, row.Attribute)
	return err
}

// FindAll returns every stored person
func (r *SQLitePersonRepository) FindAll(ctx context.Context) ([]entities.Person, error) {
	conn, err := r.db.Conn(ctx)
	if err != nil {
		return nil, repositories.NewStorageError("acquire connection", err)
	}
	defer conn.Close()

	rows, err := conn.QueryContext(ctx, selectPersonsQuery)
	if err != nil {
		return nil, repositories.NewStorageError("find persons", err)
	}
	defer rows.Close()

	persons := make([]entities.Person, 0)
	for rows.Next() {
		var row entities.PersonRow
		if err := rows.Scan(&row.Name, &row.Age, &row.Type, &row.Attribute); err != nil {
			return nil, repositories.NewStorageError("scan person", err)
		}

		person, err := entities.FromRow(row)
		if err != nil {
			return nil, fmt.Errorf("failed to map person %q: %w", row.Name, err)
		}
		persons = append(persons, person)
	}

	if err := rows.Err(); err != nil {
		return nil, repositories.NewStorageError("iterate persons", err)
	}

	return persons, nil
}

// UpdateAge sets the age of every person with the given name
func (r *SQLitePersonRepository) UpdateAge(ctx context.Context, name string, newAge int) (int64, error) {
	return r.exec(ctx, "update person age", updatePersonAgeStmt, newAge, name)
}

// Delete removes every person with the given name
func (r *SQLitePersonRepository) Delete(ctx context.Context, name string) (int64, error) {
	return r.exec(ctx, "delete person", deletePersonStmt, name)
}

// exec runs a single statement on a dedicated connection and returns the affected row count
func (r *SQLitePersonRepository) exec(ctx context.Context, op string, query string, args ...interface{}) (int64, error) {
	conn, err := r.db.Conn(ctx)
	if err != nil {
		return 0, repositories.NewStorageError("acquire connection", err)
	}
	defer conn.Close()

	result, err := conn.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, repositories.NewStorageError(op, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return 0, repositories.NewStorageError("get rows affected", err)
	}

	return affected, nil
}
