package handlers

import (
	"context"
	"errors"

	"github.com/asakaida/edurecords/internal/entities"
	"github.com/asakaida/edurecords/internal/repositories"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"
)

// AffectedRecorder receives the affected row counts of name-keyed mutations
type AffectedRecorder interface {
	RecordAffected(operation string, affected int64)
}

// PersonHandler handles PersonService gRPC requests
type PersonHandler struct {
	personRepo repositories.PersonRepository
	recorder   AffectedRecorder
}

// NewPersonHandler creates a new PersonHandler
// recorder may be nil.
func NewPersonHandler(personRepo repositories.PersonRepository, recorder AffectedRecorder) *PersonHandler {
	return &PersonHandler{
		personRepo: personRepo,
		recorder:   recorder,
	}
}

// SavePerson handles the SavePerson RPC
func (h *PersonHandler) SavePerson(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	person, err := StructToPerson(req)
	if err != nil {
		return nil, status.Errorf(codes.InvalidArgument, "invalid person: %v", err)
	}

	if err := h.personRepo.Save(ctx, person); err != nil {
		return nil, toStatusError(err, codes.InvalidArgument)
	}

	return structpb.NewStruct(map[string]interface{}{fieldName: person.Name})
}

// ListPersons handles the ListPersons RPC
func (h *PersonHandler) ListPersons(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	persons, err := h.personRepo.FindAll(ctx)
	if err != nil {
		// An unknown type tag here comes from stored data, not from the request
		return nil, toStatusError(err, codes.DataLoss)
	}

	resp, err := PersonsToStruct(persons)
	if err != nil {
		return nil, status.Errorf(codes.Internal, "failed to encode persons: %v", err)
	}
	return resp, nil
}

// UpdatePersonAge handles the UpdatePersonAge RPC
func (h *PersonHandler) UpdatePersonAge(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	name, err := requiredString(req, fieldName)
	if err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}
	age, err := requiredInt(req, fieldAge)
	if err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}

	affected, err := h.personRepo.UpdateAge(ctx, name, age)
	if err != nil {
		return nil, toStatusError(err, codes.Internal)
	}
	h.recordAffected("update_age", affected)

	return structpb.NewStruct(map[string]interface{}{fieldAffected: affected})
}

// DeletePerson handles the DeletePerson RPC
func (h *PersonHandler) DeletePerson(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	name, err := requiredString(req, fieldName)
	if err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}

	affected, err := h.personRepo.Delete(ctx, name)
	if err != nil {
		return nil, toStatusError(err, codes.Internal)
	}
	h.recordAffected("delete", affected)

	return structpb.NewStruct(map[string]interface{}{fieldAffected: affected})
}

func (h *PersonHandler) recordAffected(operation string, affected int64) {
	if h.recorder != nil {
		h.recorder.RecordAffected(operation, affected)
	}
}

// toStatusError maps repository errors to gRPC status errors
// unknownTypeCode is used for *entities.UnknownTypeError, which means different things per RPC.
func toStatusError(err error, unknownTypeCode codes.Code) error {
	var unknown *entities.UnknownTypeError
	if errors.As(err, &unknown) {
		return status.Error(unknownTypeCode, err.Error())
	}

	var storageErr *repositories.StorageError
	if errors.As(err, &storageErr) {
		return status.Errorf(codes.Internal, "storage failure: %v", err)
	}

	return status.Error(codes.Internal, err.Error())
}
