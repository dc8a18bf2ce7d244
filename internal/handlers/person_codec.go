package handlers

import (
	"fmt"
	"math"
	"strings"

	"github.com/asakaida/edurecords/internal/entities"
	"google.golang.org/protobuf/types/known/structpb"
)

// Struct field names used on the wire
const (
	fieldType      = "type"
	fieldName      = "name"
	fieldAge       = "age"
	fieldAttribute = "attribute"
	fieldRole      = "role"
	fieldPersons   = "persons"
	fieldAffected  = "affected"
)

// maxExactInt is the largest magnitude a Struct number holds without losing integer precision
const maxExactInt = 1 << 53

// personToMap converts a person to the wire representation
func personToMap(p entities.Person) map[string]interface{} {
	return map[string]interface{}{
		fieldType:      string(p.Kind),
		fieldName:      p.Name,
		fieldAge:       p.Age,
		fieldAttribute: p.Attribute(),
		fieldRole:      p.DisplayRole(),
	}
}

// PersonToStruct converts a person to a request/response message
func PersonToStruct(p entities.Person) (*structpb.Struct, error) {
	return structpb.NewStruct(personToMap(p))
}

// StructToPerson converts a message to a person through the factory
// type, name and age must be present; attribute defaults to the empty string.
func StructToPerson(s *structpb.Struct) (entities.Person, error) {
	typ, err := requiredString(s, fieldType)
	if err != nil {
		return entities.Person{}, err
	}
	name, err := requiredString(s, fieldName)
	if err != nil {
		return entities.Person{}, err
	}
	age, err := requiredInt(s, fieldAge)
	if err != nil {
		return entities.Person{}, err
	}
	attribute, err := optionalString(s, fieldAttribute)
	if err != nil {
		return entities.Person{}, err
	}

	return entities.NewPerson(typ, name, age, attribute)
}

// PersonsToStruct builds the ListPersons response
// Stored strings that are not valid UTF-8 are listed with U+FFFD in place of the invalid bytes.
func PersonsToStruct(persons []entities.Person) (*structpb.Struct, error) {
	list := make([]interface{}, 0, len(persons))
	for _, p := range persons {
		m := personToMap(p)
		for key, v := range m {
			if str, ok := v.(string); ok {
				m[key] = strings.ToValidUTF8(str, "\uFFFD")
			}
		}
		list = append(list, m)
	}
	return structpb.NewStruct(map[string]interface{}{fieldPersons: list})
}

// StructToPersons parses a ListPersons response
func StructToPersons(s *structpb.Struct) ([]entities.Person, error) {
	value, ok := s.GetFields()[fieldPersons]
	if !ok {
		return nil, fmt.Errorf("%s is required", fieldPersons)
	}
	list := value.GetListValue()
	if list == nil {
		return nil, fmt.Errorf("%s must be a list", fieldPersons)
	}

	persons := make([]entities.Person, 0, len(list.GetValues()))
	for i, v := range list.GetValues() {
		item := v.GetStructValue()
		if item == nil {
			return nil, fmt.Errorf("person at index %d must be an object", i)
		}
		p, err := StructToPerson(item)
		if err != nil {
			return nil, fmt.Errorf("invalid person at index %d: %w", i, err)
		}
		persons = append(persons, p)
	}

	return persons, nil
}

// AffectedFromStruct reads the affected row count of an update or delete response
func AffectedFromStruct(s *structpb.Struct) (int64, error) {
	n, err := requiredInt(s, fieldAffected)
	return int64(n), err
}

func requiredString(s *structpb.Struct, key string) (string, error) {
	value, ok := s.GetFields()[key]
	if !ok {
		return "", fmt.Errorf("%s is required", key)
	}
	str, ok := value.GetKind().(*structpb.Value_StringValue)
	if !ok {
		return "", fmt.Errorf("%s must be a string", key)
	}
	return str.StringValue, nil
}

func optionalString(s *structpb.Struct, key string) (string, error) {
	if _, ok := s.GetFields()[key]; !ok {
		return "", nil
	}
	return requiredString(s, key)
}

func requiredInt(s *structpb.Struct, key string) (int, error) {
	value, ok := s.GetFields()[key]
	if !ok {
		return 0, fmt.Errorf("%s is required", key)
	}
	num, ok := value.GetKind().(*structpb.Value_NumberValue)
	if !ok {
		return 0, fmt.Errorf("%s must be a number", key)
	}
	f := num.NumberValue
	if f != math.Trunc(f) {
		return 0, fmt.Errorf("%s must be an integer", key)
	}
	if f > maxExactInt || f < -maxExactInt || f > math.MaxInt || f < math.MinInt {
		return 0, fmt.Errorf("%s out of range", key)
	}
	return int(f), nil
}
