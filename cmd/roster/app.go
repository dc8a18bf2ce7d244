package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/asakaida/edurecords/internal/entities"
	"github.com/asakaida/edurecords/internal/repositories"
	"github.com/asakaida/edurecords/internal/spreadsheet"
)

// app runs roster commands against a person repository and reports to out
type app struct {
	repo repositories.PersonRepository
	out  io.Writer
}

func (a *app) save(ctx context.Context, person entities.Person) error {
	if err := a.repo.Save(ctx, person); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Person saved: %s\n", person.Name)
	return nil
}

func (a *app) add(ctx context.Context, kind, name, age, attribute string) error {
	n, err := strconv.Atoi(age)
	if err != nil {
		return fmt.Errorf("invalid age %q", age)
	}

	person, err := entities.NewPerson(kind, name, n, attribute)
	if err != nil {
		return err
	}
	return a.save(ctx, person)
}

func (a *app) list(ctx context.Context, title string) error {
	persons, err := a.repo.FindAll(ctx)
	if err != nil {
		return err
	}

	fmt.Fprintln(a.out, title)
	for _, p := range persons {
		fmt.Fprintln(a.out, p)
		fmt.Fprintln(a.out, p.DisplayRole())
	}
	return nil
}

func (a *app) updateAge(ctx context.Context, name, age string) error {
	n, err := strconv.Atoi(age)
	if err != nil {
		return fmt.Errorf("invalid age %q", age)
	}

	affected, err := a.repo.UpdateAge(ctx, name, n)
	if err != nil {
		return err
	}
	if affected == 0 {
		fmt.Fprintf(a.out, "Person not found: %s\n", name)
		return nil
	}
	fmt.Fprintf(a.out, "Person updated: %s, new age: %d\n", name, n)
	return nil
}

func (a *app) delete(ctx context.Context, name string) error {
	affected, err := a.repo.Delete(ctx, name)
	if err != nil {
		return err
	}
	if affected == 0 {
		fmt.Fprintf(a.out, "Person not found: %s\n", name)
		return nil
	}
	fmt.Fprintf(a.out, "Person deleted: %s\n", name)
	return nil
}

// demo runs the reference scenario: two saves, a listing, an age update, a delete and a second listing
func (a *app) demo(ctx context.Context) error {
	for _, p := range []entities.Person{
		entities.NewStudent("Alice", 20, "Computer Science"),
		entities.NewTeacher("Dr. Smith", 45, "Mathematics"),
	} {
		if err := a.save(ctx, p); err != nil {
			return err
		}
	}

	if err := a.list(ctx, "Persons in database:"); err != nil {
		return err
	}
	if err := a.updateAge(ctx, "Alice", "21"); err != nil {
		return err
	}
	if err := a.delete(ctx, "Dr. Smith"); err != nil {
		return err
	}
	return a.list(ctx, "Persons in database after updates:")
}

func (a *app) export(ctx context.Context, path string) (err error) {
	persons, err := a.repo.FindAll(ctx)
	if err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil && err == nil {
			err = closeErr
		}
	}()

	if err := spreadsheet.WriteRoster(f, persons); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Exported %d persons to %s\n", len(persons), path)
	return nil
}

func (a *app) importRoster(ctx context.Context, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	persons, err := spreadsheet.ReadRoster(f)
	if err != nil {
		return err
	}
	for _, p := range persons {
		if err := a.save(ctx, p); err != nil {
			return err
		}
	}
	fmt.Fprintf(a.out, "Imported %d persons from %s\n", len(persons), path)
	return nil
}
