//go:build wireinject
// +build wireinject

package user

import (
	"github.com/google/wire"
	"gorm.io/gorm"

	settingsrepo "github.com/kipharma/pharmacy-platform/internal/settings/repository"
	"github.com/kipharma/pharmacy-platform/internal/user/delivery/http"
	"github.com/kipharma/pharmacy-platform/internal/user/domain"
	"github.com/kipharma/pharmacy-platform/internal/user/repository"
	"github.com/kipharma/pharmacy-platform/internal/user/usecase/command"
	"github.com/kipharma/pharmacy-platform/internal/user/usecase/query"
)

// ProvideUserRepository provides the user repository
func ProvideUserRepository(db *gorm.DB) domain.UserRepository {
	return repository.NewGormUserRepository(db)
}

// ProvidePortalCodeSource provides the settings-backed portal code lookup
func ProvidePortalCodeSource(db *gorm.DB) command.PortalCodeSource {
	return settingsrepo.NewGormSettingRepository(db)
}

// Command Handlers Providers
func ProvideLoginUserHandler(repo domain.UserRepository, codes command.PortalCodeSource) *command.LoginUserHandler {
	return command.NewLoginUserHandler(repo, codes)
}

func ProvideCreateUserHandler(repo domain.UserRepository) *command.CreateUserHandler {
	return command.NewCreateUserHandler(repo)
}

func ProvideUpdateUserHandler(repo domain.UserRepository) *command.UpdateUserHandler {
	return command.NewUpdateUserHandler(repo)
}

func ProvideDeleteUserHandler(repo domain.UserRepository) *command.DeleteUserHandler {
	return command.NewDeleteUserHandler(repo)
}

func ProvideChangePasswordHandler(repo domain.UserRepository) *command.ChangePasswordHandler {
	return command.NewChangePasswordHandler(repo)
}

func ProvideResetPasswordHandler(repo domain.UserRepository) *command.ResetPasswordHandler {
	return command.NewResetPasswordHandler(repo)
}

// Query Handlers Providers
func ProvideGetUserHandler(repo domain.UserRepository) *query.GetUserHandler {
	return query.NewGetUserHandler(repo)
}

func ProvideListUsersHandler(repo domain.UserRepository) *query.ListUsersHandler {
	return query.NewListUsersHandler(repo)
}

// Wire sets
var RepositorySet = wire.NewSet(
	ProvideUserRepository,
	ProvidePortalCodeSource,
)

var CommandHandlerSet = wire.NewSet(
	ProvideLoginUserHandler,
	ProvideCreateUserHandler,
	ProvideUpdateUserHandler,
	ProvideDeleteUserHandler,
	ProvideChangePasswordHandler,
	ProvideResetPasswordHandler,
)

var QueryHandlerSet = wire.NewSet(
	ProvideGetUserHandler,
	ProvideListUsersHandler,
)

var AllHandlersSet = wire.NewSet(
	RepositorySet,
	CommandHandlerSet,
	QueryHandlerSet,
)

// InitializeHTTPHandler initializes HTTP handler with all dependencies
func InitializeHTTPHandler(db *gorm.DB) (*http.UserHandler, error) {
	wire.Build(
		AllHandlersSet,
		http.NewUserHandlerWithDI,
	)
	return nil, nil
}
