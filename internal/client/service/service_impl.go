package service

import (
	"context"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/portal/internal/client/domain"
	pkgdb "github.com/smallbiznis/portal/pkg/db"
	"github.com/smallbiznis/portal/pkg/repository"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB    *gorm.DB
	Log   *zap.Logger
	GenID *snowflake.Node
}

type Service struct {
	db    *gorm.DB
	log   *zap.Logger
	genID *snowflake.Node
	repo  repository.Repository[domain.Client]
}

func New(p Params) domain.Service {
	return &Service{
		db:    p.DB,
		log:   p.Log.Named("client.service"),
		genID: p.GenID,
		repo:  repository.ProvideStore[domain.Client](p.DB),
	}
}

func (s *Service) List(ctx context.Context) ([]domain.Client, error) {
	rows, err := s.repo.Find(ctx, &domain.Client{})
	if err != nil {
		return nil, err
	}
	clients := make([]domain.Client, 0, len(rows))
	for _, row := range rows {
		clients = append(clients, *row)
	}
	return clients, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (domain.Client, error) {
	parsed, err := snowflake.ParseString(strings.TrimSpace(id))
	if err != nil {
		return domain.Client{}, domain.ErrInvalidClientID
	}

	row, err := s.repo.FindOne(ctx, &domain.Client{ID: parsed})
	if err != nil {
		return domain.Client{}, err
	}
	if row == nil {
		return domain.Client{}, domain.ErrClientNotFound
	}
	return *row, nil
}

func (s *Service) Create(ctx context.Context, req domain.CreateClientRequest) (domain.Client, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return domain.Client{}, domain.ErrInvalidName
	}

	email := strings.TrimSpace(req.Email)
	if email == "" || !strings.Contains(email, "@") {
		return domain.Client{}, domain.ErrInvalidEmail
	}

	now := time.Now().UTC()
	client := domain.Client{
		ID:           s.genID.Generate(),
		Name:         name,
		Email:        email,
		Address:      strings.TrimSpace(req.Address),
		PaymentTerms: strings.TrimSpace(req.PaymentTerms),
		Metadata:     datatypes.JSONMap{},
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.repo.Create(ctx, &client); err != nil {
		if pkgdb.IsDuplicateKeyErr(err) {
			return domain.Client{}, domain.ErrDuplicateEmail
		}
		return domain.Client{}, err
	}

	s.log.Info("client created", zap.String("client_id", client.ID.String()))
	return client, nil
}

func (s *Service) Update(ctx context.Context, id string, req domain.UpdateClientRequest) (domain.Client, error) {
	existing, err := s.GetByID(ctx, id)
	if err != nil {
		return domain.Client{}, err
	}

	updates := map[string]any{"updated_at": time.Now().UTC()}
	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return domain.Client{}, domain.ErrInvalidName
		}
		updates["name"] = name
	}
	if req.Email != nil {
		email := strings.TrimSpace(*req.Email)
		if email == "" || !strings.Contains(email, "@") {
			return domain.Client{}, domain.ErrInvalidEmail
		}
		updates["email"] = email
	}
	if req.Address != nil {
		updates["address"] = strings.TrimSpace(*req.Address)
	}
	if req.PaymentTerms != nil {
		updates["payment_terms"] = strings.TrimSpace(*req.PaymentTerms)
	}

	if err := s.repo.Update(ctx, existing.ID.String(), updates); err != nil {
		if pkgdb.IsDuplicateKeyErr(err) {
			return domain.Client{}, domain.ErrDuplicateEmail
		}
		return domain.Client{}, err
	}

	return s.GetByID(ctx, id)
}

func (s *Service) Delete(ctx context.Context, id string) error {
	existing, err := s.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, existing.ID.String()); err != nil {
		return err
	}

	s.log.Info("client deleted", zap.String("client_id", existing.ID.String()))
	return nil
}
