package commands

import (
	"context"

	"github.com/karenkairiyama/mobirent-sub000/internal/domain/user"
	reqdto "github.com/karenkairiyama/mobirent-sub000/internal/handler/dto/request"
	"github.com/karenkairiyama/mobirent-sub000/internal/pkg/errs"
	"github.com/karenkairiyama/mobirent-sub000/internal/pkg/jwt"
	"github.com/karenkairiyama/mobirent-sub000/internal/pkg/password"
	"github.com/karenkairiyama/mobirent-sub000/internal/usecase/queries"

	"github.com/google/uuid"
)

var (
	ErrUserNotFound         = errs.New("user not found")
	ErrInvalidCredentials   = errs.New("invalid credentials")
	ErrUserInactive         = errs.New("user inactive")
	ErrAuthenticationFailed = errs.New("authentication failed")
	ErrTokenGeneration      = errs.New("token generation failed")
)

type LoginResult struct {
	UserID      uuid.UUID
	AccessToken string
}

type AuthCommands interface {
	Login(ctx context.Context, req reqdto.LoginRequest) (*LoginResult, error)
}

type authCommandsImpl struct {
	readStore  queries.UserReadStore
	jwtService *jwt.Service
}

func NewAuthCommands(readStore queries.UserReadStore, jwtService *jwt.Service) AuthCommands {
	return &authCommandsImpl{
		readStore:  readStore,
		jwtService: jwtService,
	}
}

func (a *authCommandsImpl) Login(ctx context.Context, req reqdto.LoginRequest) (*LoginResult, error) {
	credentials, err := req.ToDomain()
	if err != nil {
		return nil, errs.Mark(err, ErrAuthenticationFailed)
	}

	record, err := a.validateUser(ctx, credentials)
	if err != nil {
		return nil, err
	}

	role, err := user.NewRole(record.Role)
	if err != nil {
		return nil, errs.Mark(err, ErrAuthenticationFailed)
	}

	token, err := a.jwtService.GenerateToken(record.ID, role)
	if err != nil {
		return nil, errs.Mark(err, ErrTokenGeneration)
	}

	return &LoginResult{
		UserID:      record.ID,
		AccessToken: token,
	}, nil
}

func (a *authCommandsImpl) validateUser(ctx context.Context, credentials user.Credentials) (*queries.AuthorizedUser, error) {
	record, err := a.readStore.FindByEmail(ctx, credentials.Email.String())
	if err != nil {
		// Same error as a password mismatch so attackers cannot enumerate
		// registered emails.
		return nil, ErrInvalidCredentials
	}
	if record == nil {
		return nil, ErrUserNotFound
	}
	if !record.IsActive {
		return nil, ErrUserInactive
	}

	if err := password.ComparePassword(record.PasswordHash, credentials.Password); err != nil {
		return nil, ErrInvalidCredentials
	}

	return record, nil
}
