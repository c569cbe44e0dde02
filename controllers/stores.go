package controllers

import (
	"context"

	"ringback/backend/models"
)

// UserStore is the user side of database.Store.
type UserStore interface {
	CreateUser(ctx context.Context, name, email, passwordHash, phone string) (int64, error)
	UserByID(ctx context.Context, id int64) (models.User, error)
	UserByEmail(ctx context.Context, email string) (models.User, error)
}

type BusinessStore interface {
	BusinessByID(ctx context.Context, id int64) (models.Business, error)
	SaveBusiness(ctx context.Context, b models.Business) (models.Business, error)
	ListBusinesses(ctx context.Context, pendingOnly bool) ([]models.Business, error)
	CompleteOnboarding(ctx context.Context, businessID int64) error
}

type OptInStore interface {
	ListOptIns(ctx context.Context) ([]models.OptIn, error)
}
