package user

import "context"

// AuthService authenticates console operators. Role gates live in the
// HTTP router; the payroll core never reads session state.
type AuthService interface {
	Login(ctx context.Context, req LoginRequest) (LoginResponse, error)
	GetUser(ctx context.Context, id string) (UserResponse, error)
}
