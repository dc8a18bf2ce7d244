package handlers

import (
	"context"
	"net"
	"testing"

	"github.com/asakaida/edurecords/internal/entities"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"
)

func startTestServer(t *testing.T, repo *mockPersonRepository, opts ...grpc.ServerOption) *Client {
	t.Helper()

	listener := bufconn.Listen(1024 * 1024)
	server := grpc.NewServer(opts...)
	RegisterPersonServiceServer(server, NewPersonHandler(repo, nil))

	go func() {
		_ = server.Serve(listener)
	}()
	t.Cleanup(server.Stop)

	conn, err := grpc.NewClient(
		"passthrough://bufconn",
		grpc.WithContextDialer(func(context.Context, string) (net.Conn, error) {
			return listener.Dial()
		}),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	if err != nil {
		t.Fatalf("failed to dial bufconn: %v", err)
	}
	t.Cleanup(func() { conn.Close() })

	return NewClient(conn)
}

func TestPersonService_RoundTrip(t *testing.T) {
	var stored []entities.Person
	repo := &mockPersonRepository{
		saveFunc: func(ctx context.Context, person entities.Person) error {
			stored = append(stored, person)
			return nil
		},
		findAllFunc: func(ctx context.Context) ([]entities.Person, error) {
			return stored, nil
		},
		updateAgeFunc: func(ctx context.Context, name string, newAge int) (int64, error) {
			return 1, nil
		},
	}
	client := startTestServer(t, repo)
	ctx := context.Background()

	alice := entities.NewStudent("Alice", 20, "Computer Science")
	if err := client.Save(ctx, alice); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	persons, err := client.List(ctx)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(persons) != 1 || persons[0] != alice {
		t.Errorf("List() = %v, want [%v]", persons, alice)
	}

	affected, err := client.UpdateAge(ctx, "Alice", 21)
	if err != nil {
		t.Fatalf("UpdateAge() error = %v", err)
	}
	if affected != 1 {
		t.Errorf("UpdateAge() affected = %d, want 1", affected)
	}

	affected, err = client.Delete(ctx, "Nobody")
	if err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if affected != 0 {
		t.Errorf("Delete() affected = %d, want 0", affected)
	}
}

func TestPersonService_InterceptorSeesFullMethod(t *testing.T) {
	var methods []string
	interceptor := func(ctx context.Context, req interface{}, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (interface{}, error) {
		methods = append(methods, info.FullMethod)
		return handler(ctx, req)
	}

	client := startTestServer(t, &mockPersonRepository{}, grpc.UnaryInterceptor(interceptor))

	if _, err := client.List(context.Background()); err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(methods) != 1 || methods[0] != PersonService_ListPersons_FullMethod {
		t.Errorf("intercepted methods = %v, want [%s]", methods, PersonService_ListPersons_FullMethod)
	}
}

func TestPersonService_InvalidArgument(t *testing.T) {
	client := startTestServer(t, &mockPersonRepository{})

	err := client.Save(context.Background(), entities.Person{Kind: "Janitor", Name: "Bob"})
	if code := status.Code(err); code != codes.InvalidArgument {
		t.Errorf("Save() code = %v, want %v", code, codes.InvalidArgument)
	}
}
