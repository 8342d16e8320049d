package services

import (
	"errors"
	"fmt"

	"github.com/yungbote/neurotutor-backend/internal/data/repos"
	types "github.com/yungbote/neurotutor-backend/internal/domain"
	"github.com/yungbote/neurotutor-backend/internal/platform/apierr"
	"github.com/yungbote/neurotutor-backend/internal/platform/dbctx"
	"github.com/yungbote/neurotutor-backend/internal/platform/logger"
)

type UserService interface {
	GetMe(dbc dbctx.Context, p types.Principal) (*types.User, error)
}

type userService struct {
	log   *logger.Logger
	users repos.UserRepo
}

func NewUserService(baseLog *logger.Logger, userRepo repos.UserRepo) UserService {
	return &userService{log: baseLog.With("service", "UserService"), users: userRepo}
}

func (s *userService) GetMe(dbc dbctx.Context, p types.Principal) (*types.User, error) {
	if !p.Valid() {
		return nil, apierr.Unauthorized(nil)
	}
	users, err := s.users.GetByIDs(dbc, []uint{p.UserID})
	if err != nil {
		return nil, fmt.Errorf("load user: %w", err)
	}
	if len(users) == 0 {
		return nil, apierr.Unauthorized(errors.New("user no longer exists"))
	}
	return users[0], nil
}
