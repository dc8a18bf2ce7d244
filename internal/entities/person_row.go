package entities

// PersonRow is the flat, storage-facing projection of a Person
type PersonRow struct {
	Name      string // Natural key, not unique
	Age       int
	Type      string // "Student" or "Teacher"
	Attribute string // Major or subject depending on Type
}

// ToRow maps a Person to its storage row
func ToRow(p Person) (PersonRow, error) {
	row := PersonRow{Name: p.Name, Age: p.Age}

	switch p.Kind {
	case KindStudent:
		row.Type = string(KindStudent)
		row.Attribute, _ = p.Major()
	case KindTeacher:
		row.Type = string(KindTeacher)
		row.Attribute, _ = p.Subject()
	default:
		return PersonRow{}, &UnknownTypeError{Type: string(p.Kind)}
	}

	return row, nil
}

// FromRow rebuilds a Person from its storage row
func FromRow(row PersonRow) (Person, error) {
	return NewPerson(row.Type, row.Name, row.Age, row.Attribute)
}
