package handlers

import (
	"context"
	"fmt"

	"github.com/asakaida/edurecords/internal/entities"
	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/structpb"
)

// Client is a typed wrapper around PersonServiceClient
type Client struct {
	rpc PersonServiceClient
}

// NewClient creates a typed person service client on cc
func NewClient(cc grpc.ClientConnInterface) *Client {
	return &Client{rpc: NewPersonServiceClient(cc)}
}

// Save stores a person
func (c *Client) Save(ctx context.Context, person entities.Person) error {
	req, err := PersonToStruct(person)
	if err != nil {
		return fmt.Errorf("failed to encode person: %w", err)
	}
	_, err = c.rpc.SavePerson(ctx, req)
	return err
}

// List returns every stored person
func (c *Client) List(ctx context.Context) ([]entities.Person, error) {
	resp, err := c.rpc.ListPersons(ctx, &structpb.Struct{})
	if err != nil {
		return nil, err
	}
	return StructToPersons(resp)
}

// UpdateAge sets the age of every person with the given name and returns the affected count
func (c *Client) UpdateAge(ctx context.Context, name string, age int) (int64, error) {
	req, err := structpb.NewStruct(map[string]interface{}{fieldName: name, fieldAge: age})
	if err != nil {
		return 0, fmt.Errorf("failed to encode request: %w", err)
	}
	resp, err := c.rpc.UpdatePersonAge(ctx, req)
	if err != nil {
		return 0, err
	}
	return AffectedFromStruct(resp)
}

// Delete removes every person with the given name and returns the affected count
func (c *Client) Delete(ctx context.Context, name string) (int64, error) {
	req, err := structpb.NewStruct(map[string]interface{}{fieldName: name})
	if err != nil {
		return 0, fmt.Errorf("failed to encode request: %w", err)
	}
	resp, err := c.rpc.DeletePerson(ctx, req)
	if err != nil {
		return 0, err
	}
	return AffectedFromStruct(resp)
}
