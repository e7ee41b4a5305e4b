package services

import (
	"context"
	"log"

	"taskly/internal/models/db_models"
	"taskly/internal/models/request_models"
	"taskly/internal/models/response_models"
	"taskly/internal/repositories"
	"taskly/pkg/utils"
)

type AccountServiceInterface interface {
	CreateAccount(ctx context.Context, request request_models.SignUpRequest) error
	Login(ctx context.Context, request request_models.LoginRequest) (*response_models.LoginResponse, error)
	GetAllAccounts(ctx context.Context, page, pageSize int) ([]response_models.AccountResponse, error)
}

type AccountService struct {
	accountRepo    repositories.AccountRepository
	entitlementSvc EntitlementServiceInterface
}

func NewAccountService(accountRepo repositories.AccountRepository, entitlementSvc EntitlementServiceInterface) AccountServiceInterface {
	return &AccountService{
		accountRepo:    accountRepo,
		entitlementSvc: entitlementSvc,
	}
}

func (a *AccountService) CreateAccount(ctx context.Context, request request_models.SignUpRequest) error {
	existingAccount, err := a.accountRepo.FindByEmail(ctx, request.Email)
	if err != nil {
		return utils.ErrDatabaseError
	}
	if existingAccount != nil {
		return utils.ErrEmailAlreadyExists
	}

	hashedPassword, err := utils.HashPassword(request.Password)
	if err != nil {
		return utils.ErrDatabaseError
	}

	newAccount := &db_models.Account{
		Name:         request.DisplayName,
		Email:        request.Email,
		PasswordHash: hashedPassword,
		Role:         "user",
	}

	if err := a.accountRepo.Insert(ctx, newAccount); err != nil {
		return utils.ErrDatabaseError
	}

	return nil
}

func (a *AccountService) Login(ctx context.Context, request request_models.LoginRequest) (*response_models.LoginResponse, error) {
	account, err := a.accountRepo.FindByEmail(ctx, request.Email)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if account == nil {
		return nil, utils.ErrInvalidCredentials
	}

	if err := utils.ComparePasswords(account.PasswordHash, request.Password); err != nil {
		return nil, utils.ErrInvalidCredentials
	}

	token, err := utils.CreateToken(account.ID, account.Email, account.Role)
	if err != nil {
		return nil, utils.ErrInvalidCredentials
	}

	isPremium, err := a.entitlementSvc.IsPremium(ctx, account.Email)
	if err != nil {
		// Login still succeeds; the client falls back to the free tier view.
		log.Printf("login: entitlement lookup for %s: %v", account.Email, err)
		isPremium = false
	}

	return &response_models.LoginResponse{
		Token:             token,
		IsUserHavePremium: isPremium,
	}, nil
}

func (a *AccountService) GetAllAccounts(ctx context.Context, page, pageSize int) ([]response_models.AccountResponse, error) {
	accounts, err := a.accountRepo.ListAll(ctx, page, pageSize)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}

	result := make([]response_models.AccountResponse, 0, len(accounts))
	for _, account := range accounts {
		result = append(result, response_models.AccountResponse{
			ID:        account.ID.String(),
			Name:      account.Name,
			Email:     account.Email,
			Role:      account.Role,
			CreatedAt: account.CreatedAt,
		})
	}
	return result, nil
}
