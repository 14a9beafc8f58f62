package services

import (
	"context"

	"freelancebook/internal/domain"
	"freelancebook/internal/repository/sqlite"
	"freelancebook/internal/validation"
)

// clientServiceImpl implements the ClientService interface
type clientServiceImpl struct {
	repo      sqlite.Repository
	mapper    *domain.Mapper
	validator *validation.Validator
}

// NewClientService creates a new ClientService instance
func NewClientService(repo sqlite.Repository) ClientService {
	return &clientServiceImpl{
		repo:      repo,
		mapper:    domain.NewMapper(),
		validator: validation.NewValidator(),
	}
}

// Create stores a new client. The name is required; everything else is
// optional contact detail.
func (s *clientServiceImpl) Create(ctx context.Context, client domain.Client) (*domain.Client, error) {
	ve := validation.NewValidationError()
	name := s.validator.TrimAndValidateString(client.Name)
	if name == "" {
		ve.AddRequiredError("name")
	}
	if ve.HasErrors() {
		return nil, ve
	}
	client.Name = name
	if client.Status == "" {
		client.Status = "active"
	}

	dbClient := s.mapper.Client.ToDatabase(client)
	if err := s.repo.CreateClient(ctx, &dbClient); err != nil {
		return nil, err
	}
	client.ID = dbClient.ID
	return &client, nil
}

// Get retrieves a client by ID
func (s *clientServiceImpl) Get(ctx context.Context, id int64) (*domain.Client, error) {
	if !s.validator.IsValidID(id) {
		ve := validation.NewValidationError()
		ve.AddInvalidValueError("id", id, "must be a positive integer")
		return nil, ve
	}
	dbClient, err := s.repo.GetClient(ctx, id)
	if err != nil {
		return nil, err
	}
	client := s.mapper.Client.FromDatabase(*dbClient)
	return &client, nil
}

// List retrieves all clients
func (s *clientServiceImpl) List(ctx context.Context) ([]domain.Client, error) {
	dbClients, err := s.repo.ListClients(ctx)
	if err != nil {
		return nil, err
	}
	clients := make([]domain.Client, 0, len(dbClients))
	for _, dbClient := range dbClients {
		clients = append(clients, s.mapper.Client.FromDatabase(*dbClient))
	}
	return clients, nil
}
