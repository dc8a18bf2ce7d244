package entities

import (
	"errors"
	"testing"
)

func TestNewPerson(t *testing.T) {
	tests := []struct {
		name      string
		typ       string
		attribute string
		wantKind  Kind
		wantErr   bool
	}{
		{
			name:      "student",
			typ:       "Student",
			attribute: "Computer Science",
			wantKind:  KindStudent,
		},
		{
			name:      "teacher",
			typ:       "Teacher",
			attribute: "Mathematics",
			wantKind:  KindTeacher,
		},
		{
			name:    "lowercase tag is not recognized",
			typ:     "student",
			wantErr: true,
		},
		{
			name:    "empty tag",
			typ:     "",
			wantErr: true,
		},
		{
			name:    "unrelated tag",
			typ:     "Janitor",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := NewPerson(tt.typ, "Alice", 20, tt.attribute)
			if (err != nil) != tt.wantErr {
				t.Fatalf("NewPerson() error = %v, wantErr %v", err, tt.wantErr)
			}

			if tt.wantErr {
				var unknown *UnknownTypeError
				if !errors.As(err, &unknown) {
					t.Fatalf("NewPerson() error = %T, want *UnknownTypeError", err)
				}
				if unknown.Type != tt.typ {
					t.Errorf("UnknownTypeError.Type = %q, want %q", unknown.Type, tt.typ)
				}
				return
			}

			if p.Kind != tt.wantKind {
				t.Errorf("Kind = %v, want %v", p.Kind, tt.wantKind)
			}
			if p.Name != "Alice" || p.Age != 20 {
				t.Errorf("NewPerson() = %+v, want name Alice age 20", p)
			}
			if p.Attribute() != tt.attribute {
				t.Errorf("Attribute() = %q, want %q", p.Attribute(), tt.attribute)
			}
		})
	}
}

func TestPerson_Discriminator(t *testing.T) {
	student := NewStudent("Alice", 20, "Computer Science")
	teacher := NewTeacher("Dr. Smith", 45, "Mathematics")

	if major, ok := student.Major(); !ok || major != "Computer Science" {
		t.Errorf("student.Major() = %q, %v", major, ok)
	}
	if _, ok := student.Subject(); ok {
		t.Error("student.Subject() should not be available")
	}
	if subject, ok := teacher.Subject(); !ok || subject != "Mathematics" {
		t.Errorf("teacher.Subject() = %q, %v", subject, ok)
	}
	if _, ok := teacher.Major(); ok {
		t.Error("teacher.Major() should not be available")
	}
}

func TestPerson_String(t *testing.T) {
	tests := []struct {
		name   string
		person Person
		want   string
	}{
		{
			name:   "student",
			person: NewStudent("Alice", 20, "Computer Science"),
			want:   "Student{name='Alice', age=20, major='Computer Science'}",
		},
		{
			name:   "teacher",
			person: NewTeacher("Dr. Smith", 45, "Mathematics"),
			want:   "Teacher{name='Dr. Smith', age=45, subject='Mathematics'}",
		},
		{
			name:   "zero value",
			person: Person{Name: "Nobody"},
			want:   "Person{name='Nobody', age=0}",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.person.String(); got != tt.want {
				t.Errorf("Person.String() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestPerson_DisplayRole(t *testing.T) {
	tests := []struct {
		name   string
		person Person
		want   string
	}{
		{
			name:   "student",
			person: NewStudent("Alice", 20, "Computer Science"),
			want:   "I am a Student majoring in Computer Science.",
		},
		{
			name:   "teacher",
			person: NewTeacher("Dr. Smith", 45, "Mathematics"),
			want:   "I am a Teacher, and I teach Mathematics.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.person.DisplayRole(); got != tt.want {
				t.Errorf("Person.DisplayRole() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestUnknownTypeError_Error(t *testing.T) {
	err := &UnknownTypeError{Type: "Janitor"}
	want := `unknown person type: "Janitor"`
	if err.Error() != want {
		t.Errorf("Error() = %v, want %v", err.Error(), want)
	}
}
