package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/asakaida/edurecords/internal/entities"
	"github.com/asakaida/edurecords/internal/repositories"
)

// PostgresPersonRepository implements PersonRepository using PostgreSQL
type PostgresPersonRepository struct {
	db *sql.DB
}

// NewPostgresPersonRepository creates a new PostgreSQL person repository
func NewPostgresPersonRepository(db *sql.DB) repositories.PersonRepository {
	return &PostgresPersonRepository{db: db}
}

// Save inserts a row for the person
func (r *PostgresPersonRepository) Save(ctx context.Context, person entities.Person) error {
	row, err := entities.ToRow(person)
	if err != nil {
		return fmt.Errorf("invalid person: %w", err)
	}

	conn, err := r.db.Conn(ctx)
	if err != nil {
		return repositories.NewStorageError("acquire connection", err)
	}
	defer conn.Close()

	query := `
		INSERT INTO persons (name, age, type, attribute)
		VALUES ($1, $2, $3, $4)
	`
	if _, err := conn.ExecContext(ctx, query, row.Name, row.Age, row.Type, row.Attribute); err != nil {
		return repositories.NewStorageError("save person", err)
	}

	return nil
}

// FindAll returns every stored person
func (r *PostgresPersonRepository) FindAll(ctx context.Context) ([]entities.Person, error) {
	conn, err := r.db.Conn(ctx)
	if err != nil {
		return nil, repositories.NewStorageError("acquire connection", err)
	}
	defer conn.Close()

	query := `
		SELECT name, age, type, attribute
		FROM persons
	`
	rows, err := conn.QueryContext(ctx, query)
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
func (r *PostgresPersonRepository) UpdateAge(ctx context.Context, name string, newAge int) (int64, error) {
	conn, err := r.db.Conn(ctx)
	if err != nil {
		return 0, repositories.NewStorageError("acquire connection", err)
	}
	defer conn.Close()

	query := `
		UPDATE persons
		SET age = $1
		WHERE name = $2
	`
	result, err := conn.ExecContext(ctx, query, newAge, name)
	if err != nil {
		return 0, repositories.NewStorageError("update person age", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return 0, repositories.NewStorageError("get rows affected", err)
	}

	return affected, nil
}

// Delete removes every person with the given name
func (r *PostgresPersonRepository) Delete(ctx context.Context, name string) (int64, error) {
	conn, err := r.db.Conn(ctx)
	if err != nil {
		return 0, repositories.NewStorageError("acquire connection", err)
	}
	defer conn.Close()

	query := `
		DELETE FROM persons
		WHERE name = $1
	`
	result, err := conn.ExecContext(ctx, query, name)
	if err != nil {
		return 0, repositories.NewStorageError("delete person", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return 0, repositories.NewStorageError("get rows affected", err)
	}

	return affected, nil
}
