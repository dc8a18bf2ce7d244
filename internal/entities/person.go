package entities

import "fmt"

// Kind is the type tag that discriminates the Person variants
type Kind string

const (
	KindStudent Kind = "Student"
	KindTeacher Kind = "Teacher"
)

// Kinds lists every recognized type tag
var Kinds = []Kind{KindStudent, KindTeacher}

// Person represents either a student or a teacher
// The discriminator holds the student's major or the teacher's subject depending on Kind.
type Person struct {
	Kind Kind
	Name string
	Age  int

	discriminator string
}

// NewStudent creates a student with the given major
func NewStudent(name string, age int, major string) Person {
	return Person{Kind: KindStudent, Name: name, Age: age, discriminator: major}
}

// NewTeacher creates a teacher with the given subject
func NewTeacher(name string, age int, subject string) Person {
	return Person{Kind: KindTeacher, Name: name, Age: age, discriminator: subject}
}

// NewPerson creates a Person from a stored type tag and a generic attribute value
// Example: NewPerson("Student", "Alice", 20, "Computer Science")
func NewPerson(typ string, name string, age int, attribute string) (Person, error) {
	switch Kind(typ) {
	case KindStudent:
		return NewStudent(name, age, attribute), nil
	case KindTeacher:
		return NewTeacher(name, age, attribute), nil
	default:
		return Person{}, &UnknownTypeError{Type: typ}
	}
}

// Major returns the student's major. ok is false for teachers.
func (p Person) Major() (major string, ok bool) {
	if p.Kind != KindStudent {
		return "", false
	}
	return p.discriminator, true
}

// Subject returns the teacher's subject. ok is false for students.
func (p Person) Subject() (subject string, ok bool) {
	if p.Kind != KindTeacher {
		return "", false
	}
	return p.discriminator, true
}

// Attribute returns the discriminator value regardless of the variant
func (p Person) Attribute() string {
	return p.discriminator
}

// DisplayRole returns a role-specific description of the person
func (p Person) DisplayRole() string {
	switch p.Kind {
	case KindStudent:
		return fmt.Sprintf("I am a Student majoring in %s.", p.discriminator)
	case KindTeacher:
		return fmt.Sprintf("I am a Teacher, and I teach %s.", p.discriminator)
	default:
		return fmt.Sprintf("I am a person of unknown type %q.", string(p.Kind))
	}
}

// String returns a string representation of the person
// Format: Student{name='Alice', age=20, major='Computer Science'}
func (p Person) String() string {
	switch p.Kind {
	case KindStudent:
		return fmt.Sprintf("Student{name='%s', age=%d, major='%s'}", p.Name, p.Age, p.discriminator)
	case KindTeacher:
		return fmt.Sprintf("Teacher{name='%s', age=%d, subject='%s'}", p.Name, p.Age, p.discriminator)
	default:
		return fmt.Sprintf("Person{name='%s', age=%d}", p.Name, p.Age)
	}
}
